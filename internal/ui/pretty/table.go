package pretty

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/inkwell/pkg/extension"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 4 // LINES, KIND, CLASS, TEXT
	minLinesWidth    = 7
	minKindWidth     = 10
	minClassWidth    = 9
	minTextWidth     = 20
	heavySeparator   = "="
	defaultTermWidth = 100
	ellipsis         = "..."
)

// TableRow represents a single row in the block outline.
type TableRow struct {
	Lines string
	Kind  string
	Class extension.Class
	Text  string
}

// TableFormatter formats a block outline as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

// BlockToTableRow converts a display block to an outline row. Only the
// first line of the block text, or of a heading's title, is kept.
func BlockToTableRow(block extension.Block) TableRow {
	text := block.Text
	if block.Title != "" {
		text = block.Title
	}
	text, _, _ = strings.Cut(text, "\n")
	kind := block.Kind.String()
	if block.Language != "" {
		kind += ":" + block.Language
	}
	return TableRow{
		Lines: fmt.Sprintf("%d-%d", block.Lines.First+1, block.Lines.Last+1),
		Kind:  kind,
		Class: block.Class,
		Text:  text,
	}
}

// FormatTable formats pipeline output as an outline of its blocks.
func (t *TableFormatter) FormatTable(result *extension.Result) string {
	if result == nil || len(result.Blocks) == 0 {
		return ""
	}

	rows := make([]TableRow, 0, len(result.Blocks))
	for _, block := range result.Blocks {
		rows = append(rows, BlockToTableRow(block))
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder

	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

type columnWidths struct {
	lines int
	kind  int
	class int
	text  int
}

// calculateColumnWidths determines column widths from content, shrinking
// the text column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []TableRow) columnWidths {
	widths := columnWidths{
		lines: minLinesWidth,
		kind:  minKindWidth,
		class: minClassWidth,
		text:  minTextWidth,
	}

	for _, row := range rows {
		widths.lines = max(widths.lines, runewidth.StringWidth(row.Lines))
		widths.kind = max(widths.kind, runewidth.StringWidth(row.Kind))
		widths.class = max(widths.class, len(row.Class.String()))
		widths.text = max(widths.text, runewidth.StringWidth(row.Text))
	}

	if total := t.calculateTotalWidth(widths); total > t.termWidth {
		widths.text = max(minTextWidth, widths.text-(total-t.termWidth))
	}

	return widths
}

func (t *TableFormatter) calculateTotalWidth(widths columnWidths) int {
	return widths.lines + widths.kind + widths.class + widths.text + tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := " " + pad("LINES", widths.lines) + "  " +
		pad("KIND", widths.kind) + "  " +
		pad("CLASS", widths.class) + "  " +
		pad("TEXT", widths.text)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, t.calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row TableRow, widths columnWidths) string {
	class := pad(row.Class.String(), widths.class)
	content := " " + pad(row.Lines, widths.lines) + "  " +
		pad(truncateString(row.Kind, widths.kind), widths.kind) + "  " +
		t.classStyle(row.Class).Render(class) + "  " +
		pad(truncateString(row.Text, widths.text), widths.text)
	return content
}

func (t *TableFormatter) classStyle(class extension.Class) lipgloss.Style {
	switch class {
	case extension.ClassCode:
		return t.styles.Code
	case extension.ClassMath:
		return t.styles.Math
	case extension.ClassShortcode:
		return t.styles.Key
	default:
		return t.styles.Dim
	}
}

// formatLegend explains the CLASS column.
func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return t.styles.TableLegend.Render(" Legend: lines are 1-based and inclusive")
	}
	return t.styles.TableLegend.Render(fmt.Sprintf(" Legend: %s  %s  %s  %s",
		t.styles.Code.Render(extension.ClassCode.String()),
		t.styles.Math.Render(extension.ClassMath.String()),
		t.styles.Key.Render(extension.ClassShortcode.String()),
		t.styles.Dim.Render(extension.ClassPlain.String()),
	))
}

// pad right-pads str with spaces to the given display width.
func pad(str string, width int) string {
	return runewidth.FillRight(str, width)
}

// truncateString truncates a string to maxLen display columns, adding
// "..." if truncated.
func truncateString(str string, maxLen int) string {
	if runewidth.StringWidth(str) <= maxLen {
		return str
	}
	if maxLen <= len(ellipsis) {
		return runewidth.Truncate(str, maxLen, "")
	}
	return runewidth.Truncate(str, maxLen, ellipsis)
}

// truncatePath truncates a file path, preserving the end (filename) rather
// than the beginning.
func truncatePath(path string, maxLen int) string {
	if len(path) <= maxLen {
		return path
	}
	if maxLen <= len(ellipsis) {
		return path[len(path)-maxLen:]
	}
	return ellipsis + path[len(path)-maxLen+len(ellipsis):]
}
