package parsetree

import "github.com/yaklabco/mdtree/pkg/mdstream"

// TokenKind classifies a sub-span of literal text for highlight rendering.
type TokenKind uint8

// Text token kinds.
const (
	// TokenNormal is plain text with no highlight.
	TokenNormal TokenKind = iota

	// TokenMatchOther is part of a search match that is not the selected one.
	TokenMatchOther

	// TokenMatchCurrent is part of the currently selected search match.
	TokenMatchCurrent
)

// TextTokenizer splits literal text into highlight-classified sub-spans.
//
// Tokenize receives a text slice and the byte range it occupies in the
// source, and returns a classification together with the prefix of the
// slice it applies to. The serializer emits the prefix, advances past it,
// and calls Tokenize again on the remainder until the slice is empty.
//
// Implementations must consume at least one byte per call for non-empty
// input. The serializer guards against a zero-length return by emitting
// the whole remaining slice as normal text, but implementations should
// not rely on that.
type TextTokenizer interface {
	Tokenize(text string, r mdstream.Range) (TokenKind, string)
}

// NullTokenizer classifies all text as normal in a single call.
type NullTokenizer struct{}

// Tokenize implements TextTokenizer.
func (NullTokenizer) Tokenize(text string, _ mdstream.Range) (TokenKind, string) {
	return TokenNormal, text
}

// Accumulator observes every literal text token emitted during one
// serialization pass, including both halves of a token split by the
// modified offset. It is invoked before tokenization classifies the text,
// and can build auxiliary derived data such as a flat plain-text index.
type Accumulator interface {
	OnText(text string, r mdstream.Range)
}

// NullAccumulator ignores all text tokens.
type NullAccumulator struct{}

// OnText implements Accumulator.
func (NullAccumulator) OnText(string, mdstream.Range) {}
