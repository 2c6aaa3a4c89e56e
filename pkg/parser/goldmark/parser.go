// Package goldmark turns Markdown source into the flat, well-nested event
// stream the parse-tree serializer consumes, using the goldmark library with
// the GFM extensions the wire format requires (strikethrough, footnotes,
// tables, task lists).
package goldmark

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdtree/pkg/mdstream"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Options configures the event source.
type Options struct {
	// HeadingIDs enables auto-generated slug ids on heading tags.
	HeadingIDs bool
}

// Parser produces mdstream event sequences from Markdown documents.
type Parser struct {
	md         goldmark.Markdown
	headingIDs bool
}

// New creates a parser with the fixed GFM extension set.
func New(opts Options) *Parser {
	var parserOpts []parser.Option
	if opts.HeadingIDs {
		parserOpts = append(parserOpts, parser.WithAutoHeadingID())
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Table,
			extension.TaskList,
			extension.Footnote,
		),
		goldmark.WithParserOptions(parserOpts...),
	)

	return &Parser{md: md, headingIDs: opts.HeadingIDs}
}

// Parse flattens one document into its event sequence.
//
// The returned events carry half-open byte ranges into content. The sequence
// is well nested: every StartTag is closed by a matching EndTag, which is the
// contract downstream consumers dispatch on.
func (p *Parser) Parse(ctx context.Context, content []byte) ([]mdstream.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	reader := text.NewReader(content)
	doc := p.md.Parser().Parse(reader, parser.WithContext(parser.NewContext()))

	return newMapper(content, p.headingIDs).flatten(doc), nil
}
