// Package docinfo derives display-oriented facts about a document from its
// event stream: the heading outline, code block inventory, and reference
// counts. It consumes the same events the serializer does and never touches
// the wire output.
package docinfo

import (
	"strings"

	"github.com/yaklabco/mdtree/pkg/langdetect"
	"github.com/yaklabco/mdtree/pkg/mdstream"
)

// Heading is one outline entry.
type Heading struct {
	Level int
	Text  string
	ID    string
}

// CodeBlock describes one fenced or indented code block.
type CodeBlock struct {
	// Language is the fence language, or a detected guess for blocks
	// without an info string. Empty when neither is available.
	Language string

	// Detected is true when Language came from content detection rather
	// than the fence info string.
	Detected bool

	Lines int
}

// Info is the collected document summary.
type Info struct {
	Headings   []Heading
	CodeBlocks []CodeBlock
	Links      int
	Images     int
	Tables     int
	Footnotes  int
	Words      int
}

// Collect walks the event stream once and builds the summary.
func Collect(events []mdstream.Event) *Info {
	info := &Info{}

	var heading *Heading
	var block *codeCollector
	var words strings.Builder

	for _, ev := range events {
		switch ev.Kind {
		case mdstream.EventStartTag:
			switch ev.Tag.Kind {
			case mdstream.TagHeading:
				heading = &Heading{Level: ev.Tag.Level, ID: ev.Tag.ID}
			case mdstream.TagCodeBlock:
				block = &codeCollector{info: ev.Tag.Info}
			case mdstream.TagLink:
				info.Links++
			case mdstream.TagImage:
				info.Images++
			case mdstream.TagTable:
				info.Tables++
			}

		case mdstream.EventEndTag:
			switch ev.Tag.Kind {
			case mdstream.TagHeading:
				if heading != nil {
					heading.Text = strings.TrimSpace(heading.Text)
					info.Headings = append(info.Headings, *heading)
					heading = nil
				}
			case mdstream.TagCodeBlock:
				if block != nil {
					info.CodeBlocks = append(info.CodeBlocks, block.finish())
					block = nil
				}
			}

		case mdstream.EventText, mdstream.EventCode:
			switch {
			case block != nil:
				block.content.WriteString(ev.Text)
			case heading != nil:
				heading.Text += ev.Text
				words.WriteString(ev.Text)
				words.WriteByte(' ')
			default:
				words.WriteString(ev.Text)
				words.WriteByte(' ')
			}

		case mdstream.EventFootnoteRef:
			info.Footnotes++
		}
	}

	info.Words = len(strings.Fields(words.String()))
	return info
}

type codeCollector struct {
	info    string
	content strings.Builder
}

func (c *codeCollector) finish() CodeBlock {
	lang, _, _ := strings.Cut(c.info, " ")

	block := CodeBlock{
		Language: lang,
		Lines:    strings.Count(c.content.String(), "\n"),
	}
	if block.Language == "" {
		if detected := langdetect.Detect([]byte(c.content.String())); detected != "" {
			block.Language = detected
			block.Detected = true
		}
	}
	return block
}
