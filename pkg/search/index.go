package search

import (
	"strings"

	"github.com/yaklabco/mdtree/pkg/mdstream"
)

// chunk records one appended text token and where it came from.
type chunk struct {
	off int // offset of the token in the flat text
	len int
	src mdstream.Range
}

// Index is a parsetree.Accumulator that collects the document's flat plain
// text during a serialization pass together with the mapping from flat-text
// positions back to source byte ranges.
type Index struct {
	text   strings.Builder
	chunks []chunk
}

// OnText appends one literal text token.
func (ix *Index) OnText(text string, r mdstream.Range) {
	ix.chunks = append(ix.chunks, chunk{off: ix.text.Len(), len: len(text), src: r})
	ix.text.WriteString(text)
}

// Text returns the flat text accumulated so far.
func (ix *Index) Text() string {
	return ix.text.String()
}

// MatchSpan is one source byte range belonging to a match. A single match
// crossing token boundaries yields several spans with the same ordinal.
type MatchSpan struct {
	Range mdstream.Range
	Match int
}

// Search runs the matcher over the flat text and maps every match back to
// source spans. It returns the spans sorted in source order, and the number
// of matches found.
func (ix *Index) Search(m *Matcher) ([]MatchSpan, int) {
	locs := m.FindAll(ix.text.String())
	var spans []MatchSpan
	for i, loc := range locs {
		for _, r := range ix.sourceRanges(loc[0], loc[1]) {
			spans = append(spans, MatchSpan{Range: r, Match: i})
		}
	}
	return spans, len(locs)
}

// sourceRanges maps the flat-text interval [start, end) back to source byte
// ranges. Tokens whose text length differs from their source span (synthetic
// text with no stable source position) are skipped; matches are in flat-text
// order, so the chunk list is scanned once per call at worst.
func (ix *Index) sourceRanges(start, end int) []mdstream.Range {
	var out []mdstream.Range
	for _, c := range ix.chunks {
		if c.off+c.len <= start {
			continue
		}
		if c.off >= end {
			break
		}
		if c.src.Len() != c.len {
			continue
		}

		from := max(start, c.off)
		to := min(end, c.off+c.len)
		out = append(out, mdstream.Range{
			Start: c.src.Start + (from - c.off),
			End:   c.src.Start + (to - c.off),
		})
	}
	return out
}
