package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtree/internal/logging"
	"github.com/yaklabco/mdtree/internal/ui/pretty"
	"github.com/yaklabco/mdtree/pkg/docinfo"
	goldmarkparser "github.com/yaklabco/mdtree/pkg/parser/goldmark"
)

type outlineFlags struct {
	stats bool
}

func newOutlineCommand() *cobra.Command {
	flags := &outlineFlags{}

	cmd := &cobra.Command{
		Use:   "outline [file]",
		Short: "Print the heading outline of a Markdown document",
		Long: `Print the heading outline of a Markdown document.

Reads from the named file, or from stdin when no file (or "-") is given.

Examples:
  mdtree outline README.md           # Heading outline
  mdtree outline --stats README.md   # Outline plus document statistics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOutline(cmd, args, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.stats, "stats", false, "include word, link, and code block counts")

	return cmd
}

func runOutline(cmd *cobra.Command, args []string, flags *outlineFlags) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	content, path, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	if path == stdinPath {
		path = "(stdin)"
	}

	parser := goldmarkparser.New(goldmarkparser.Options{HeadingIDs: cfg.Render.HeadingIDs})
	events, err := parser.Parse(commandContext(cmd), content)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	info := docinfo.Collect(events)
	logging.Default().Debug("collected document info",
		logging.FieldPath, path,
		logging.FieldEvents, len(events),
		"headings", len(info.Headings),
	)

	out := cmd.OutOrStdout()
	styles := pretty.NewStyles(pretty.IsColorEnabled(cfg.Color, out))
	width := pretty.TerminalWidth(out)

	if _, err := io.WriteString(out, styles.FormatOutline(path, info, width)); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	if flags.stats {
		if _, err := io.WriteString(out, styles.FormatStats(info)); err != nil {
			return fmt.Errorf("write stats: %w", err)
		}
	}
	return nil
}
