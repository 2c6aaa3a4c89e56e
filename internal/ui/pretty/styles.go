// Package pretty provides Lipgloss-based styled output for the outline
// command.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultWidth is used when the output is not a terminal.
const defaultWidth = 80

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Outline components
	Title    lipgloss.Style
	Heading  lipgloss.Style
	Bullet   lipgloss.Style
	Language lipgloss.Style
	Guessed  lipgloss.Style

	// Stats components
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

func newColorStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true),
		Heading:  lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Bullet:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Language: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Guessed:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Italic(true),

		StatLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		StatValue: lipgloss.NewStyle().Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Title:     plain,
		Heading:   plain,
		Bullet:    plain,
		Language:  plain,
		Guessed:   plain,
		StatLabel: plain,
		StatValue: plain,
		Dim:       plain,
		Bold:      plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// Check NO_COLOR environment variable (https://no-color.org/)
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}

// TerminalWidth returns the column width of writer when it is a terminal,
// and a conventional default otherwise.
func TerminalWidth(writer io.Writer) int {
	if f, ok := writer.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return defaultWidth
}
