package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/pkg/fsutil"
	"github.com/yaklabco/mdtree/pkg/mdstream"
	goldmarkparser "github.com/yaklabco/mdtree/pkg/parser/goldmark"
	"github.com/yaklabco/mdtree/pkg/parsetree"
	"github.com/yaklabco/mdtree/pkg/search"
	"github.com/yaklabco/mdtree/pkg/textdiff"
)

// stdinPath is the pseudo-path naming standard input.
const stdinPath = "-"

type renderFlags struct {
	search         string
	matchIndex     int
	modifiedOffset int
	prevFile       string
	headingIDs     bool
	output         string
}

func newRenderCommand() *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a Markdown document as parse-tree JSON",
		Long:  renderLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.search, "search", "", "query to highlight as match nodes")
	cmd.Flags().IntVar(&flags.matchIndex, "match-index", -1,
		"ordinal of the match rendered as match-current (-1 = none)")
	cmd.Flags().IntVar(&flags.modifiedOffset, "modified-offset", -1,
		"byte offset to mark with a modified node")
	cmd.Flags().StringVar(&flags.prevFile, "prev-file", "",
		"previous revision; the first differing byte becomes the modified offset")
	cmd.Flags().BoolVar(&flags.headingIDs, "heading-ids", false, "add slug ids to heading nodes")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "write output to file instead of stdout")

	return cmd
}

const renderLongDescription = `Parse a Markdown document and stream it out as parse-tree JSON.

Reads from the named file, or from stdin when no file (or "-") is given.

Examples:
  mdtree render README.md                      # Render a file
  cat notes.md | mdtree render                 # Render stdin
  mdtree render --search TODO README.md        # Highlight matches
  mdtree render --prev-file old.md new.md      # Mark where the text changed
  mdtree render --heading-ids README.md        # Slug ids on headings`

func runRender(cmd *cobra.Command, args []string, flags *renderFlags) error {
	ctx := commandContext(cmd)
	logger := logging.FromContext(ctx)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	content, path, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	if path != stdinPath && !cfg.IsMarkdownFile(path) {
		logger.Warn("input does not have a Markdown extension", logging.FieldPath, path)
	}

	headingIDs := cfg.Render.HeadingIDs
	if cmd.Flags().Changed("heading-ids") {
		headingIDs = flags.headingIDs
	}

	parser := goldmarkparser.New(goldmarkparser.Options{HeadingIDs: headingIDs})
	events, err := parser.Parse(ctx, content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	logger.Debug("parsed document",
		logging.FieldPath, path,
		logging.FieldBytes, len(content),
		logging.FieldEvents, len(events),
	)

	opts := parsetree.Options{}

	offset, err := resolveModifiedOffset(cmd, flags, string(content))
	if err != nil {
		return err
	}
	opts.ModifiedOffset = offset

	if flags.search != "" {
		tokenizer, err := buildHighlighter(flags, cfg.MatcherMode(), events)
		if err != nil {
			return err
		}
		opts.Tokenizer = tokenizer
	}

	if flags.output != "" && flags.output != stdinPath {
		return writeOutputFile(ctx, flags.output, events, opts)
	}

	out := cmd.OutOrStdout()
	if err := parsetree.Render(out, events, opts); err != nil {
		return err
	}
	if _, err := io.WriteString(out, "\n"); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// writeOutputFile renders into memory and swaps the file in atomically, so a
// frontend watching the output path never reads a half-written tree. The
// write is skipped when the rendered tree is unchanged.
func writeOutputFile(ctx context.Context, path string, events []mdstream.Event, opts parsetree.Options) error {
	var buf bytes.Buffer
	if err := parsetree.Render(&buf, events, opts); err != nil {
		return err
	}
	buf.WriteByte('\n')

	written, err := fsutil.WriteAtomicIfChanged(ctx, path, buf.Bytes(), 0)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if !written {
		logging.Default().Debug("output unchanged", logging.FieldOutput, path)
	}
	return nil
}

// resolveModifiedOffset picks the modified offset: an explicit
// --modified-offset wins, otherwise --prev-file is diffed against the
// current content. Nil means no marker.
func resolveModifiedOffset(cmd *cobra.Command, flags *renderFlags, content string) (*int, error) {
	if cmd.Flags().Changed("modified-offset") {
		if flags.modifiedOffset < 0 {
			return nil, fmt.Errorf("modified-offset must not be negative: %d", flags.modifiedOffset)
		}
		return &flags.modifiedOffset, nil
	}

	if flags.prevFile == "" {
		return nil, nil
	}

	prev, err := os.ReadFile(flags.prevFile)
	if err != nil {
		return nil, fmt.Errorf("read previous revision: %w", err)
	}

	offset, changed := textdiff.FirstChange(string(prev), content)
	if !changed {
		return nil, nil
	}

	logging.Default().Debug("revisions differ",
		logging.FieldPrevFile, flags.prevFile,
		logging.FieldOffset, offset,
	)
	return &offset, nil
}

// buildHighlighter runs the index pass over the events and compiles the
// query into a tokenizer for the output pass.
func buildHighlighter(flags *renderFlags, mode search.Mode, events []mdstream.Event) (parsetree.TextTokenizer, error) {
	matcher, err := search.NewMatcher(flags.search, mode)
	if err != nil {
		return nil, err
	}

	index := &search.Index{}
	if err := parsetree.Render(io.Discard, events, parsetree.Options{Accumulator: index}); err != nil {
		return nil, fmt.Errorf("index document text: %w", err)
	}

	spans, matches := index.Search(matcher)
	logging.Default().Debug("search complete",
		logging.FieldQuery, flags.search,
		logging.FieldMatcher, string(mode),
		logging.FieldMatches, matches,
	)

	return search.NewHighlightTokenizer(spans, flags.matchIndex), nil
}

// readInput reads the document from the argument file, or stdin when no
// argument (or "-") is given. The returned path is for messages only.
func readInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == stdinPath {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return content, stdinPath, nil
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	return content, args[0], nil
}
