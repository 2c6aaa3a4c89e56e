package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yaklabco/mdtree/pkg/docinfo"
)

// headingIndent is the per-level indentation of outline entries.
const headingIndent = 2

// FormatOutline renders the heading outline of a document. Width caps each
// line; pass TerminalWidth(w) or 0 for no cap.
func (s *Styles) FormatOutline(path string, info *docinfo.Info, width int) string {
	var builder strings.Builder

	builder.WriteString(s.Title.Render(path))
	builder.WriteString("\n")

	if len(info.Headings) == 0 {
		builder.WriteString(s.Dim.Render("  (no headings)"))
		builder.WriteString("\n")
		return builder.String()
	}

	for _, h := range info.Headings {
		indent := strings.Repeat(" ", headingIndent*h.Level)
		line := indent + s.Bullet.Render("•") + " " + s.Heading.Render(clip(h.Text, width-len(indent)-2))
		if h.ID != "" {
			line += " " + s.Dim.Render("#"+h.ID)
		}
		builder.WriteString(line)
		builder.WriteString("\n")
	}

	return builder.String()
}

// FormatStats renders the document statistics block under the outline.
func (s *Styles) FormatStats(info *docinfo.Info) string {
	var builder strings.Builder

	stat := func(label string, value int) {
		if value == 0 {
			return
		}
		builder.WriteString("  " + s.StatLabel.Render(fmt.Sprintf("%-12s", label)) +
			s.StatValue.Render(strconv.Itoa(value)) + "\n")
	}

	builder.WriteString("\n")
	stat("words", info.Words)
	stat("links", info.Links)
	stat("images", info.Images)
	stat("tables", info.Tables)
	stat("footnotes", info.Footnotes)

	if len(info.CodeBlocks) > 0 {
		builder.WriteString("  " + s.StatLabel.Render(fmt.Sprintf("%-12s", "code")))
		builder.WriteString(s.StatValue.Render(strconv.Itoa(len(info.CodeBlocks))))
		builder.WriteString(" " + s.Dim.Render("(") + s.formatLanguages(info.CodeBlocks) + s.Dim.Render(")"))
		builder.WriteString("\n")
	}

	return builder.String()
}

// formatLanguages lists the distinct code block languages in first-seen
// order. Detected languages are marked with a trailing question mark.
func (s *Styles) formatLanguages(blocks []docinfo.CodeBlock) string {
	seen := make(map[string]bool)
	var parts []string
	for _, b := range blocks {
		name := b.Language
		if name == "" {
			name = "unknown"
		}
		if b.Detected {
			name += "?"
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		if b.Detected {
			parts = append(parts, s.Guessed.Render(name))
		} else {
			parts = append(parts, s.Language.Render(name))
		}
	}
	return strings.Join(parts, s.Dim.Render(", "))
}

// clip truncates a line to width runes with an ellipsis. Width 0 or less
// means no cap.
func clip(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width <= 1 {
		return "…"
	}
	return string(runes[:width-1]) + "…"
}
