package search

import (
	"io"
	"strings"
	"testing"

	"github.com/yaklabco/mdtree/pkg/mdstream"
	"github.com/yaklabco/mdtree/pkg/parsetree"
)

func r(start, end int) mdstream.Range {
	return mdstream.Range{Start: start, End: end}
}

func TestIndexAccumulatesText(t *testing.T) {
	t.Parallel()

	var ix Index
	ix.OnText("hello", r(0, 5))
	ix.OnText(" ", r(5, 6))
	ix.OnText("world", r(6, 11))

	if ix.Text() != "hello world" {
		t.Errorf("expected %q, got %q", "hello world", ix.Text())
	}
}

func TestIndexSearchSingleToken(t *testing.T) {
	t.Parallel()

	var ix Index
	ix.OnText("hello world hello", r(10, 27))

	m, err := NewMatcher("hello", ModeSmartCase)
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}

	spans, count := ix.Search(m)
	if count != 2 {
		t.Fatalf("expected 2 matches, got %d", count)
	}
	expected := []MatchSpan{
		{Range: r(10, 15), Match: 0},
		{Range: r(22, 27), Match: 1},
	}
	if len(spans) != len(expected) {
		t.Fatalf("expected %d spans, got %d", len(expected), len(spans))
	}
	for i, sp := range spans {
		if sp != expected[i] {
			t.Errorf("span %d: expected %+v, got %+v", i, expected[i], sp)
		}
	}
}

func TestIndexSearchAcrossTokens(t *testing.T) {
	t.Parallel()

	// "foo" and "bar" are adjacent in the flat text but live in separate
	// source ranges; a match crossing the seam yields one span per token.
	var ix Index
	ix.OnText("foo", r(0, 3))
	ix.OnText("bar", r(10, 13))

	m, err := NewMatcher("ooba", ModeSmartCase)
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}

	spans, count := ix.Search(m)
	if count != 1 {
		t.Fatalf("expected 1 match, got %d", count)
	}
	expected := []MatchSpan{
		{Range: r(1, 3), Match: 0},
		{Range: r(10, 12), Match: 0},
	}
	if len(spans) != len(expected) {
		t.Fatalf("expected %d spans, got %+v", len(expected), spans)
	}
	for i, sp := range spans {
		if sp != expected[i] {
			t.Errorf("span %d: expected %+v, got %+v", i, expected[i], sp)
		}
	}
}

func TestIndexSkipsSyntheticText(t *testing.T) {
	t.Parallel()

	// A token whose range does not cover its text has no stable source
	// position and cannot contribute spans.
	var ix Index
	ix.OnText("synthetic", mdstream.Range{})
	ix.OnText("real", r(20, 24))

	m, err := NewMatcher("c", ModeSmartCase)
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}

	spans, count := ix.Search(m)
	if count != 1 {
		t.Fatalf("expected 1 match, got %d", count)
	}
	if len(spans) != 0 {
		t.Errorf("expected no mappable spans, got %+v", spans)
	}
}

func TestSearchHighlightRoundTrip(t *testing.T) {
	t.Parallel()

	events := []mdstream.Event{
		mdstream.Start(mdstream.Paragraph(), r(0, 17)),
		mdstream.TextEvent("hello world hello", r(0, 17)),
		mdstream.End(mdstream.Paragraph(), r(0, 17)),
	}

	// First pass collects the flat text.
	var ix Index
	if err := parsetree.Render(io.Discard, events, parsetree.Options{Accumulator: &ix}); err != nil {
		t.Fatalf("index pass failed: %v", err)
	}

	m, err := NewMatcher("hello", ModeSmartCase)
	if err != nil {
		t.Fatalf("NewMatcher failed: %v", err)
	}
	spans, count := ix.Search(m)
	if count != 2 {
		t.Fatalf("expected 2 matches, got %d", count)
	}

	// Second pass renders with the second match selected.
	var sb strings.Builder
	opts := parsetree.Options{Tokenizer: NewHighlightTokenizer(spans, 1)}
	if err := parsetree.Render(&sb, events, opts); err != nil {
		t.Fatalf("highlight pass failed: %v", err)
	}

	expected := `{"kind":"parse_tree","tree":[{"t":"p","c":[` +
		`{"t":"match","c":["hello"]}," world ",{"t":"match-current","c":["hello"]}]}]}`
	if sb.String() != expected {
		t.Errorf("expected %s, got %s", expected, sb.String())
	}
}

func TestHighlightTokenizerCrossTokenMatch(t *testing.T) {
	t.Parallel()

	events := []mdstream.Event{
		mdstream.Start(mdstream.Paragraph(), r(0, 13)),
		mdstream.TextEvent("foo", r(0, 3)),
		mdstream.TextEvent("bar", r(10, 13)),
		mdstream.End(mdstream.Paragraph(), r(0, 13)),
	}

	spans := []MatchSpan{
		{Range: r(1, 3), Match: 0},
		{Range: r(10, 12), Match: 0},
	}

	var sb strings.Builder
	opts := parsetree.Options{Tokenizer: NewHighlightTokenizer(spans, -1)}
	if err := parsetree.Render(&sb, events, opts); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	expected := `{"kind":"parse_tree","tree":[{"t":"p","c":[` +
		`"f",{"t":"match","c":["oo"]},{"t":"match","c":["ba"]},"r"]}]}`
	if sb.String() != expected {
		t.Errorf("expected %s, got %s", expected, sb.String())
	}
}

func TestHighlightTokenizerSyntheticTextPassesThrough(t *testing.T) {
	t.Parallel()

	ht := NewHighlightTokenizer([]MatchSpan{{Range: r(0, 5), Match: 0}}, -1)
	kind, text := ht.Tokenize("label", mdstream.Range{})
	if kind != parsetree.TokenNormal || text != "label" {
		t.Errorf("expected whole text as normal, got %v %q", kind, text)
	}
}
