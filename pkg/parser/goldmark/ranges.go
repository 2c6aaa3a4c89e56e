package goldmark

import (
	"github.com/yaklabco/mdtree/pkg/mdstream"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// nodeRange computes the source span a node covers. Block nodes report their
// own line segments when they have them; containers without lines (lists,
// block quotes, tables) report the union of their children. Inline nodes
// report their text segments. Nodes with no resolvable position report the
// zero range.
func nodeRange(n ast.Node) mdstream.Range {
	if n.Type() != ast.TypeInline {
		if lines := n.Lines(); lines != nil && lines.Len() > 0 {
			return mdstream.Range{
				Start: lines.At(0).Start,
				End:   lines.At(lines.Len() - 1).Stop,
			}
		}
		return childUnion(n)
	}

	switch t := n.(type) {
	case *ast.Text:
		return mdstream.Range{Start: t.Segment.Start, End: t.Segment.Stop}
	case *ast.RawHTML:
		return segmentsUnion(t.Segments)
	default:
		return childUnion(n)
	}
}

func childUnion(n ast.Node) mdstream.Range {
	var r mdstream.Range
	found := false
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		cr := nodeRange(child)
		if cr == (mdstream.Range{}) {
			continue
		}
		if !found {
			r = cr
			found = true
			continue
		}
		if cr.Start < r.Start {
			r.Start = cr.Start
		}
		if cr.End > r.End {
			r.End = cr.End
		}
	}
	return r
}

func segmentsUnion(segs *text.Segments) mdstream.Range {
	var r mdstream.Range
	for i := range segs.Len() {
		seg := segs.At(i)
		if i == 0 {
			r = mdstream.Range{Start: seg.Start, End: seg.Stop}
			continue
		}
		if seg.Start < r.Start {
			r.Start = seg.Start
		}
		if seg.Stop > r.End {
			r.End = seg.Stop
		}
	}
	return r
}
