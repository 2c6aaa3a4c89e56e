package goldmark

import (
	"context"
	"io"
	"testing"

	"github.com/yaklabco/mdtree/pkg/mdstream"
	"github.com/yaklabco/mdtree/pkg/parsetree"
)

// FuzzParse fuzzes the whole pipeline: arbitrary bytes must flatten to a
// well-nested event stream that the serializer can render without panicking.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"Hello, world!",
		"# Heading",
		"- list item",
		"1. ordered item",
		"> blockquote",
		"```\ncode\n```",
		"```go\nfunc main() {}\n```",
		"*emphasis* **strong** ~~strike~~",
		"`code` ``a`b``",
		"[link](url \"title\") ![image](src)",
		"<https://example.com> <user@example.com>",
		"---",
		"\\*escaped\\*",
		"<div>html</div>",
		"a <b>inline</b> html",
		"Title\n=====",
		"line1\nline2",
		"line1\r\nline2",
		"a  \nhard break",
		"| a | b |\n|---|--:|\n| 1 | 2 |",
		"- [x] done\n- [ ] open",
		"ref[^n]\n\n[^n]: note",
		"# H\n\nPara with *em* and `code`.\n\n- item 1\n- item 2\n",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		events, err := New(Options{HeadingIDs: true}).Parse(context.Background(), data)
		if err != nil {
			t.Fatalf("Parse failed: %v", err)
		}

		depth := 0
		for i, ev := range events {
			switch ev.Kind {
			case mdstream.EventStartTag:
				depth++
			case mdstream.EventEndTag:
				depth--
				if depth < 0 {
					t.Fatalf("event %d: end tag below document level", i)
				}
			}
		}
		if depth != 0 {
			t.Fatalf("unbalanced stream: depth %d at end", depth)
		}

		if err := parsetree.Render(io.Discard, events, parsetree.Options{}); err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	})
}
