package search

import (
	"github.com/yaklabco/mdtree/pkg/mdstream"
	"github.com/yaklabco/mdtree/pkg/parsetree"
)

// HighlightTokenizer is a parsetree.TextTokenizer that classifies text
// prefixes against a sorted list of match spans. Spans whose match ordinal
// equals the current index render as the selected match.
//
// A tokenizer holds a cursor into the span list and is therefore good for
// exactly one serialization pass.
type HighlightTokenizer struct {
	spans   []MatchSpan
	current int
	pos     int
}

// NewHighlightTokenizer builds a tokenizer over spans as returned by
// Index.Search. current selects the match rendered as match-current; pass a
// negative value when no match is selected.
func NewHighlightTokenizer(spans []MatchSpan, current int) *HighlightTokenizer {
	return &HighlightTokenizer{spans: spans, current: current}
}

// Tokenize implements parsetree.TextTokenizer.
func (ht *HighlightTokenizer) Tokenize(text string, r mdstream.Range) (parsetree.TokenKind, string) {
	// Synthetic text whose range does not cover it cannot be positioned.
	if r.Len() != len(text) {
		return parsetree.TokenNormal, text
	}

	for ht.pos < len(ht.spans) && ht.spans[ht.pos].Range.End <= r.Start {
		ht.pos++
	}
	if ht.pos == len(ht.spans) {
		return parsetree.TokenNormal, text
	}

	sp := ht.spans[ht.pos]
	if sp.Range.Start >= r.End {
		return parsetree.TokenNormal, text
	}

	if sp.Range.Start > r.Start {
		return parsetree.TokenNormal, text[:sp.Range.Start-r.Start]
	}

	end := min(sp.Range.End, r.End)
	kind := parsetree.TokenMatchOther
	if sp.Match == ht.current {
		kind = parsetree.TokenMatchCurrent
	}
	return kind, text[:end-r.Start]
}
