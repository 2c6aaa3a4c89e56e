// Package parsetree serializes a Markdown event stream into the nested
// parse-tree JSON consumed by the preview frontend.
//
// The output is streamed directly to the destination writer; no
// intermediate tree is materialized, so auxiliary memory is bounded by
// nesting depth rather than document size. A single pass interleaves two
// orthogonal concerns with the structural walk: positional text
// tokenization for search highlighting (TextTokenizer) and single-point
// modified-offset marking. Each Render call is fully independent and uses
// only the state it creates.
package parsetree

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdstream"
)

// tableState selects whether table cells render as header or data cells.
type tableState uint8

const (
	tableInHead tableState = iota
	tableInRow
)

// Options configures one serialization pass.
type Options struct {
	// ModifiedOffset is an optional byte position marking the start of
	// changed content. It is consumed at most once: the first text token
	// that resolves it emits a single "modified" marker node. If no text
	// token ever resolves it, the marker is appended once after all
	// events as a fallback.
	ModifiedOffset *int

	// Tokenizer splits text spans for highlight rendering.
	// Nil means no highlighting.
	Tokenizer TextTokenizer

	// Accumulator observes every literal text token.
	// Nil means no observation.
	Accumulator Accumulator
}

// Render serializes the event stream to w using the wire grammar:
//
//	{"kind":"parse_tree","tree":[ <node>* ]}
//
// The stream must be well nested; that is the event source's contract and
// is not re-validated here. Any write failure aborts the pass immediately
// and is returned wrapped; partial output must be discarded by the caller.
func Render(w io.Writer, events []mdstream.Event, opts Options) error {
	s := newSerializer(w, opts)
	if err := s.render(events); err != nil {
		return fmt.Errorf("render parse tree: %w", err)
	}
	return nil
}

type serializer struct {
	out         io.Writer
	table       tableState
	isStart     bool
	ids         map[string]int
	modified    int
	hasModified bool
	tokenizer   TextTokenizer
	accum       Accumulator
}

func newSerializer(w io.Writer, opts Options) *serializer {
	s := &serializer{
		out:       w,
		table:     tableInHead,
		isStart:   true,
		ids:       make(map[string]int),
		tokenizer: opts.Tokenizer,
		accum:     opts.Accumulator,
	}
	if opts.ModifiedOffset != nil {
		s.modified = *opts.ModifiedOffset
		s.hasModified = true
	}
	if s.tokenizer == nil {
		s.tokenizer = NullTokenizer{}
	}
	if s.accum == nil {
		s.accum = NullAccumulator{}
	}
	return s
}

func (s *serializer) render(events []mdstream.Event) error {
	if err := s.str(`{"kind":"parse_tree","tree":`); err != nil {
		return err
	}
	if err := s.push(events); err != nil {
		return err
	}
	return s.ch('}')
}

func (s *serializer) push(events []mdstream.Event) error {
	if err := s.ch('['); err != nil {
		return err
	}

	for _, ev := range events {
		if err := s.event(ev); err != nil {
			return err
		}
	}

	// The modified offset was not consumed by any text, meaning some
	// non-text part after all text was modified. As a fallback, set the
	// marker once after the last node. Positionally inexact but stable.
	if s.hasModified {
		if err := s.tag("modified"); err != nil {
			return err
		}
		if err := s.ch('}'); err != nil {
			return err
		}
	}

	return s.ch(']')
}

func (s *serializer) str(v string) error {
	_, err := io.WriteString(s.out, v)
	return err
}

func (s *serializer) ch(b byte) error {
	_, err := s.out.Write([]byte{b})
	return err
}

func (s *serializer) quote(v string) error {
	return writeQuoted(s.out, v)
}

// comma separates sibling nodes. The first element after an opening
// bracket consumes the start flag instead of writing a separator.
func (s *serializer) comma() error {
	if s.isStart {
		s.isStart = false
		return nil
	}
	return s.ch(',')
}

func (s *serializer) tag(name string) error {
	if err := s.comma(); err != nil {
		return err
	}
	return s.str(`{"t":"` + name + `"`)
}

func (s *serializer) childrenBegin() error {
	s.isStart = true
	return s.str(`,"c":[`)
}

func (s *serializer) childrenEnd() error {
	s.isStart = false
	return s.str(`]}`)
}

func (s *serializer) alignment(a mdstream.Alignment) error {
	switch a {
	case mdstream.AlignLeft:
		return s.str(`"left"`)
	case mdstream.AlignCenter:
		return s.str(`"center"`)
	case mdstream.AlignRight:
		return s.str(`"right"`)
	default:
		return s.str("null")
	}
}

// id returns the sequential identifier for a footnote name, assigning the
// next id on first occurrence. Ids start at 1 and are scoped to this pass.
func (s *serializer) id(name string) int {
	if id, ok := s.ids[name]; ok {
		return id
	}
	id := len(s.ids) + 1
	s.ids[name] = id
	return id
}

// textTokens runs the tokenize loop over one text span, emitting each
// classified prefix and advancing until the span is exhausted.
func (s *serializer) textTokens(input string, r mdstream.Range) error {
	for input != "" {
		kind, text := s.tokenizer.Tokenize(input, r)
		if text == "" {
			// A tokenizer that consumes nothing would stall the loop.
			// Emit the remainder as normal text instead.
			kind, text = TokenNormal, input
		}

		switch kind {
		case TokenNormal:
			if err := s.comma(); err != nil {
				return err
			}
			if err := s.quote(text); err != nil {
				return err
			}
		case TokenMatchOther:
			if err := s.matchNode("match", text); err != nil {
				return err
			}
		case TokenMatchCurrent:
			if err := s.matchNode("match-current", text); err != nil {
				return err
			}
		default:
			panic(fmt.Sprintf("parsetree: unknown token kind %d", kind))
		}

		input = input[len(text):]
		r.Start += len(text)
	}
	return nil
}

func (s *serializer) matchNode(name, text string) error {
	if err := s.tag(name); err != nil {
		return err
	}
	if err := s.childrenBegin(); err != nil {
		return err
	}
	if err := s.quote(text); err != nil {
		return err
	}
	return s.childrenEnd()
}

// modifiedMarker emits the single {"t":"modified"} leaf node.
func (s *serializer) modifiedMarker() error {
	if err := s.tag("modified"); err != nil {
		return err
	}
	return s.ch('}')
}

// text emits one text-bearing token, resolving the modified offset against
// its range. The offset is consumed irreversibly the first time any of the
// marker cases applies.
func (s *serializer) text(text string, r mdstream.Range) error {
	s.accum.OnText(text, r)

	if !s.hasModified {
		return s.textTokens(text, r)
	}

	offset := s.modified
	if r.End < offset {
		// Not yet reached.
		return s.textTokens(text, r)
	}

	s.hasModified = false

	switch {
	case offset <= r.Start:
		if err := s.modifiedMarker(); err != nil {
			return err
		}
		return s.textTokens(text, r)
	case offset == r.End:
		if err := s.textTokens(text, r); err != nil {
			return err
		}
		return s.modifiedMarker()
	default:
		i := offset - r.Start
		if err := s.textTokens(text[:i], mdstream.Range{Start: r.Start, End: offset}); err != nil {
			return err
		}
		if err := s.modifiedMarker(); err != nil {
			return err
		}
		return s.textTokens(text[i:], mdstream.Range{Start: offset, End: r.End})
	}
}

func (s *serializer) event(ev mdstream.Event) error {
	switch ev.Kind {
	case mdstream.EventStartTag:
		return s.startTag(ev.Tag)
	case mdstream.EventEndTag:
		return s.endTag(ev.Tag)
	case mdstream.EventText:
		return s.text(ev.Text, ev.Range)
	case mdstream.EventCode:
		// The raw range includes the surrounding delimiter characters.
		// Trim symmetric padding so the inner range covers the text only.
		pad := (ev.Range.Len() - len(ev.Text)) / 2
		inner := mdstream.Range{Start: ev.Range.Start + pad, End: ev.Range.End - pad}
		if err := s.tag("code"); err != nil {
			return err
		}
		if err := s.childrenBegin(); err != nil {
			return err
		}
		if err := s.text(ev.Text, inner); err != nil {
			return err
		}
		return s.childrenEnd()
	case mdstream.EventHTML:
		if err := s.tag("html"); err != nil {
			return err
		}
		if err := s.str(`,"raw":`); err != nil {
			return err
		}
		if err := s.quote(ev.Text); err != nil {
			return err
		}
		return s.ch('}')
	case mdstream.EventSoftBreak:
		return s.text("\n", ev.Range)
	case mdstream.EventHardBreak:
		return s.leaf("br")
	case mdstream.EventRule:
		return s.leaf("hr")
	case mdstream.EventFootnoteRef:
		if err := s.tag("fn-ref"); err != nil {
			return err
		}
		return s.str(`,"id":` + strconv.Itoa(s.id(ev.Name)) + "}")
	case mdstream.EventTaskMarker:
		if err := s.tag("checkbox"); err != nil {
			return err
		}
		return s.str(`,"checked":` + strconv.FormatBool(ev.Checked) + "}")
	default:
		panic(fmt.Sprintf("parsetree: unknown event kind %d", ev.Kind))
	}
}

func (s *serializer) leaf(name string) error {
	if err := s.tag(name); err != nil {
		return err
	}
	return s.ch('}')
}

func (s *serializer) startTag(t mdstream.Tag) error {
	switch t.Kind {
	case mdstream.TagParagraph:
		if err := s.tag("p"); err != nil {
			return err
		}
	case mdstream.TagHeading:
		if err := s.tag("h"); err != nil {
			return err
		}
		if err := s.str(`,"level":` + strconv.Itoa(t.Level)); err != nil {
			return err
		}
		if t.HasID {
			if err := s.str(`,"id":`); err != nil {
				return err
			}
			if err := s.quote(t.ID); err != nil {
				return err
			}
		}
	case mdstream.TagTable:
		if err := s.tag("table"); err != nil {
			return err
		}
		if err := s.str(`,"align":[`); err != nil {
			return err
		}
		for i, a := range t.Alignments {
			if i > 0 {
				if err := s.ch(','); err != nil {
					return err
				}
			}
			if err := s.alignment(a); err != nil {
				return err
			}
		}
		if err := s.ch(']'); err != nil {
			return err
		}
	case mdstream.TagTableHead:
		s.table = tableInHead
		if err := s.tag("thead"); err != nil {
			return err
		}
		if err := s.childrenBegin(); err != nil {
			return err
		}
		if err := s.tag("tr"); err != nil {
			return err
		}
	case mdstream.TagTableRow:
		s.table = tableInRow
		if err := s.tag("tr"); err != nil {
			return err
		}
	case mdstream.TagTableCell:
		name := "td"
		if s.table == tableInHead {
			name = "th"
		}
		if err := s.tag(name); err != nil {
			return err
		}
	case mdstream.TagBlockQuote:
		if err := s.tag("blockquote"); err != nil {
			return err
		}
	case mdstream.TagCodeBlock:
		if err := s.tag("pre"); err != nil {
			return err
		}
		if err := s.childrenBegin(); err != nil {
			return err
		}
		if err := s.tag("code"); err != nil {
			return err
		}
		// The first space-delimited token of the fence info string is the
		// language; an indented block has no info and no language.
		lang, _, _ := strings.Cut(t.Info, " ")
		if lang != "" {
			if err := s.str(`,"lang":`); err != nil {
				return err
			}
			if err := s.quote(lang); err != nil {
				return err
			}
		}
	case mdstream.TagList:
		if !t.Ordered {
			if err := s.tag("ul"); err != nil {
				return err
			}
		} else {
			if err := s.tag("ol"); err != nil {
				return err
			}
			// Start 1 is the implicit default and is omitted.
			if t.ListStart != 1 {
				if err := s.str(`,"start":` + strconv.Itoa(t.ListStart)); err != nil {
					return err
				}
			}
		}
	case mdstream.TagItem:
		if err := s.tag("li"); err != nil {
			return err
		}
	case mdstream.TagEmphasis:
		if err := s.tag("em"); err != nil {
			return err
		}
	case mdstream.TagStrong:
		if err := s.tag("strong"); err != nil {
			return err
		}
	case mdstream.TagStrikethrough:
		if err := s.tag("del"); err != nil {
			return err
		}
	case mdstream.TagLink:
		if err := s.tag("a"); err != nil {
			return err
		}
		if err := s.str(`,"href":`); err != nil {
			return err
		}
		href := t.Destination
		if t.LinkKind == mdstream.LinkEmail {
			href = "mailto:" + href
		}
		if err := s.quote(href); err != nil {
			return err
		}
		if t.Title != "" {
			if err := s.str(`,"title":`); err != nil {
				return err
			}
			if err := s.quote(t.Title); err != nil {
				return err
			}
		}
	case mdstream.TagImage:
		if err := s.tag("img"); err != nil {
			return err
		}
		if t.Title != "" {
			if err := s.str(`,"title":`); err != nil {
				return err
			}
			if err := s.quote(t.Title); err != nil {
				return err
			}
		}
		if err := s.str(`,"src":`); err != nil {
			return err
		}
		if err := s.quote(t.Destination); err != nil {
			return err
		}
	case mdstream.TagFootnoteDef:
		if err := s.tag("fn-def"); err != nil {
			return err
		}
		if t.Name != "" {
			if err := s.str(`,"name":`); err != nil {
				return err
			}
			if err := s.quote(t.Name); err != nil {
				return err
			}
		}
		if err := s.str(`,"id":` + strconv.Itoa(s.id(t.Name))); err != nil {
			return err
		}
	default:
		panic(fmt.Sprintf("parsetree: unknown tag kind %d", t.Kind))
	}

	// Every tag node carries its children array, possibly empty.
	return s.childrenBegin()
}

func (s *serializer) endTag(t mdstream.Tag) error {
	switch t.Kind {
	case mdstream.TagParagraph, mdstream.TagHeading, mdstream.TagTableRow,
		mdstream.TagTableCell, mdstream.TagBlockQuote, mdstream.TagList,
		mdstream.TagItem, mdstream.TagEmphasis, mdstream.TagStrong,
		mdstream.TagStrikethrough, mdstream.TagLink, mdstream.TagImage,
		mdstream.TagFootnoteDef:
		return s.childrenEnd()
	case mdstream.TagTable, mdstream.TagCodeBlock:
		// Close the inner node (tbody or code) and the outer one.
		if err := s.childrenEnd(); err != nil {
			return err
		}
		return s.childrenEnd()
	case mdstream.TagTableHead:
		// Close the implicit head row and the thead itself, then open a
		// synthetic body group for the rows that follow. The matching
		// Table end closes it.
		if err := s.childrenEnd(); err != nil {
			return err
		}
		if err := s.childrenEnd(); err != nil {
			return err
		}
		if err := s.tag("tbody"); err != nil {
			return err
		}
		return s.childrenBegin()
	default:
		panic(fmt.Sprintf("parsetree: unknown tag kind %d in end tag", t.Kind))
	}
}
