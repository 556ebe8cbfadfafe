// Package pretty provides Lipgloss-based styled output for the CLI.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Preview blocks
	Title      lipgloss.Style
	Heading    lipgloss.Style
	SubHeading lipgloss.Style
	Paragraph  lipgloss.Style
	Code       lipgloss.Style
	CodeLabel  lipgloss.Style
	Math       lipgloss.Style
	Quote      lipgloss.Style
	Literal    lipgloss.Style

	// Frontmatter
	Key   lipgloss.Style
	Value lipgloss.Style

	// Outline table
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableLegend    lipgloss.Style

	// Summary
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Warning      lipgloss.Style

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

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Title:      lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true).Underline(true),
		Heading:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		SubHeading: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Paragraph:  lipgloss.NewStyle(),
		Code:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		CodeLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		Math:       lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Quote:      lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Italic(true),
		Literal:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),

		Key:   lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Value: lipgloss.NewStyle(),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		TableLegend:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Warning:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Title:          plain,
		Heading:        plain,
		SubHeading:     plain,
		Paragraph:      plain,
		Code:           plain,
		CodeLabel:      plain,
		Math:           plain,
		Quote:          plain,
		Literal:        plain,
		Key:            plain,
		Value:          plain,
		TableHeader:    plain,
		TableSeparator: plain,
		TableLegend:    plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		Warning:        plain,
		Dim:            plain,
		Bold:           plain,
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
