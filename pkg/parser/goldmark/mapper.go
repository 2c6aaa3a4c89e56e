package goldmark

import (
	"github.com/yaklabco/mdtree/pkg/mdstream"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// mapper flattens a goldmark AST into the mdstream event sequence.
type mapper struct {
	content    []byte
	headingIDs bool
	footnotes  map[int]string
	events     []mdstream.Event
}

func newMapper(content []byte, headingIDs bool) *mapper {
	return &mapper{
		content:    content,
		headingIDs: headingIDs,
		footnotes:  make(map[int]string),
	}
}

func (m *mapper) flatten(doc ast.Node) []mdstream.Event {
	// Footnote links only carry a numeric index; the labels live on the
	// definition nodes, which goldmark collects at the end of the document.
	// Resolve index to label up front so references can be emitted in order.
	m.collectFootnoteLabels(doc)
	m.mapChildren(doc)
	return m.events
}

func (m *mapper) collectFootnoteLabels(n ast.Node) {
	if fn, ok := n.(*east.Footnote); ok {
		m.footnotes[fn.Index] = string(fn.Ref)
	}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		m.collectFootnoteLabels(child)
	}
}

func (m *mapper) emit(ev mdstream.Event) {
	m.events = append(m.events, ev)
}

func (m *mapper) mapChildren(parent ast.Node) {
	for child := parent.FirstChild(); child != nil; child = child.NextSibling() {
		m.mapNode(child)
	}
}

// container emits a Start/End pair around the node's flattened children.
func (m *mapper) container(n ast.Node, tag mdstream.Tag) {
	r := nodeRange(n)
	m.emit(mdstream.Start(tag, r))
	m.mapChildren(n)
	m.emit(mdstream.End(tag, r))
}

func (m *mapper) mapNode(n ast.Node) {
	switch gmn := n.(type) {
	// Block-level nodes.
	case *ast.Document:
		m.mapChildren(gmn)

	case *ast.Heading:
		m.container(gmn, m.headingTag(gmn))

	case *ast.Paragraph:
		m.container(gmn, mdstream.Paragraph())

	case *ast.TextBlock:
		// Tight list item content; transparent, no paragraph wrapper.
		m.mapChildren(gmn)

	case *ast.Blockquote:
		m.container(gmn, mdstream.BlockQuote())

	case *ast.List:
		m.container(gmn, listTag(gmn))

	case *ast.ListItem:
		m.container(gmn, mdstream.Item())

	case *ast.FencedCodeBlock:
		info := ""
		if gmn.Info != nil {
			info = string(gmn.Info.Value(m.content))
		}
		m.mapCodeBlock(gmn, info)

	case *ast.CodeBlock:
		m.mapCodeBlock(gmn, "")

	case *ast.ThematicBreak:
		m.emit(mdstream.Event{Kind: mdstream.EventRule, Range: nodeRange(gmn)})

	case *ast.HTMLBlock:
		m.mapHTMLBlock(gmn)

	// Inline-level nodes.
	case *ast.Text:
		m.mapText(gmn)

	case *ast.String:
		m.emit(mdstream.TextEvent(string(gmn.Value), mdstream.Range{}))

	case *ast.Emphasis:
		tag := mdstream.Emphasis()
		if gmn.Level == 2 {
			tag = mdstream.Strong()
		}
		m.container(gmn, tag)

	case *ast.CodeSpan:
		m.mapCodeSpan(gmn)

	case *ast.Link:
		m.container(gmn, mdstream.Link(
			mdstream.LinkInline, string(gmn.Destination), string(gmn.Title)))

	case *ast.Image:
		m.container(gmn, mdstream.Image(
			string(gmn.Destination), string(gmn.Title)))

	case *ast.AutoLink:
		m.mapAutoLink(gmn)

	case *ast.RawHTML:
		m.mapRawHTML(gmn)

	// GFM extension nodes.
	case *east.Strikethrough:
		m.container(gmn, mdstream.Strikethrough())

	case *east.Table:
		m.container(gmn, mdstream.Table(alignments(gmn)))

	case *east.TableHeader:
		m.container(gmn, mdstream.TableHead())

	case *east.TableRow:
		m.container(gmn, mdstream.TableRow())

	case *east.TableCell:
		m.container(gmn, mdstream.TableCell())

	case *east.TaskCheckBox:
		m.emit(mdstream.Event{Kind: mdstream.EventTaskMarker, Checked: gmn.IsChecked})

	case *east.FootnoteLink:
		m.emit(mdstream.Event{Kind: mdstream.EventFootnoteRef, Name: m.footnotes[gmn.Index]})

	case *east.FootnoteList:
		// Wrapper around the definitions; transparent.
		m.mapChildren(gmn)

	case *east.Footnote:
		m.container(gmn, mdstream.FootnoteDef(string(gmn.Ref)))

	case *east.FootnoteBacklink:
		// Rendering detail of goldmark's own HTML output; not part of the tree.

	default:
		// Unknown containers pass their children through transparently.
		m.mapChildren(gmn)
	}
}

func (m *mapper) headingTag(h *ast.Heading) mdstream.Tag {
	if m.headingIDs {
		if v, ok := h.AttributeString("id"); ok {
			switch id := v.(type) {
			case []byte:
				return mdstream.HeadingWithID(h.Level, string(id))
			case string:
				return mdstream.HeadingWithID(h.Level, id)
			}
		}
	}
	return mdstream.Heading(h.Level)
}

func listTag(l *ast.List) mdstream.Tag {
	if l.IsOrdered() {
		return mdstream.OrderedList(l.Start)
	}
	return mdstream.BulletList()
}

func alignments(t *east.Table) []mdstream.Alignment {
	out := make([]mdstream.Alignment, len(t.Alignments))
	for i, a := range t.Alignments {
		switch a {
		case east.AlignLeft:
			out[i] = mdstream.AlignLeft
		case east.AlignCenter:
			out[i] = mdstream.AlignCenter
		case east.AlignRight:
			out[i] = mdstream.AlignRight
		default:
			out[i] = mdstream.AlignNone
		}
	}
	return out
}

// mapCodeBlock emits a code block with one text event per source line. Line
// segments include their trailing newlines, so the joined text reproduces
// the block content exactly.
func (m *mapper) mapCodeBlock(n ast.Node, info string) {
	tag := mdstream.CodeBlock(info)
	r := nodeRange(n)
	m.emit(mdstream.Start(tag, r))

	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		m.emit(mdstream.TextEvent(
			string(seg.Value(m.content)),
			mdstream.Range{Start: seg.Start, End: seg.Stop}))
	}

	m.emit(mdstream.End(tag, r))
}

// mapText emits the literal segment, then the break the segment's flags
// record. The segment itself never includes the line terminator.
func (m *mapper) mapText(t *ast.Text) {
	seg := t.Segment
	if seg.Len() > 0 {
		m.emit(mdstream.TextEvent(
			string(seg.Value(m.content)),
			mdstream.Range{Start: seg.Start, End: seg.Stop}))
	}

	switch {
	case t.HardLineBreak():
		m.emit(mdstream.Event{
			Kind:  mdstream.EventHardBreak,
			Range: mdstream.Range{Start: seg.Stop, End: seg.Stop},
		})
	case t.SoftLineBreak():
		m.emit(mdstream.Event{
			Kind:  mdstream.EventSoftBreak,
			Range: mdstream.Range{Start: seg.Stop, End: seg.Stop + 1},
		})
	}
}

// mapCodeSpan joins the span's text segments and widens the range outward
// over the backtick delimiters, keeping the padding symmetric so the inner
// span can be recovered by trimming an equal count from both sides.
func (m *mapper) mapCodeSpan(cs *ast.CodeSpan) {
	var buf []byte
	start, end := -1, -1
	for child := cs.FirstChild(); child != nil; child = child.NextSibling() {
		t, ok := child.(*ast.Text)
		if !ok {
			continue
		}
		seg := t.Segment
		buf = append(buf, seg.Value(m.content)...)
		if start == -1 {
			start = seg.Start
		}
		end = seg.Stop
	}

	if start == -1 {
		m.emit(mdstream.CodeEvent("", mdstream.Range{}))
		return
	}

	left := start
	for left > 0 && m.content[left-1] == '`' {
		left--
	}
	right := end
	for right < len(m.content) && m.content[right] == '`' {
		right++
	}
	pad := min(start-left, right-end)

	m.emit(mdstream.CodeEvent(string(buf), mdstream.Range{Start: start - pad, End: end + pad}))
}

func (m *mapper) mapAutoLink(al *ast.AutoLink) {
	kind := mdstream.LinkAutolink
	if al.AutoLinkType == ast.AutoLinkEmail {
		kind = mdstream.LinkEmail
	}

	// goldmark does not expose the label's source segment, so the text
	// event carries an empty range and stays invisible to offset-based
	// consumers.
	tag := mdstream.Link(kind, string(al.URL(m.content)), "")
	m.emit(mdstream.Start(tag, mdstream.Range{}))
	m.emit(mdstream.TextEvent(string(al.Label(m.content)), mdstream.Range{}))
	m.emit(mdstream.End(tag, mdstream.Range{}))
}

func (m *mapper) mapHTMLBlock(n *ast.HTMLBlock) {
	var buf []byte
	r := mdstream.Range{Start: -1}

	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf = append(buf, seg.Value(m.content)...)
		if r.Start == -1 {
			r.Start = seg.Start
		}
		r.End = seg.Stop
	}
	if n.HasClosure() {
		seg := n.ClosureLine
		buf = append(buf, seg.Value(m.content)...)
		if r.Start == -1 {
			r.Start = seg.Start
		}
		r.End = seg.Stop
	}
	if r.Start == -1 {
		r = mdstream.Range{}
	}

	m.emit(mdstream.HTMLEvent(string(buf), r))
}

func (m *mapper) mapRawHTML(n *ast.RawHTML) {
	var buf []byte
	r := mdstream.Range{Start: -1}

	segs := n.Segments
	for i := range segs.Len() {
		seg := segs.At(i)
		buf = append(buf, seg.Value(m.content)...)
		if r.Start == -1 {
			r.Start = seg.Start
		}
		r.End = seg.Stop
	}
	if r.Start == -1 {
		r = mdstream.Range{}
	}

	m.emit(mdstream.HTMLEvent(string(buf), r))
}
