package pretty

import (
	"fmt"
	"sort"
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/yaklabco/inkwell/pkg/extension"
	"github.com/yaklabco/inkwell/pkg/mdast"
)

const quoteBar = "│ "

// FormatPreview renders pipeline output as terminal text. Paragraph-like
// blocks wrap at width; zero or less disables wrapping.
func (s *Styles) FormatPreview(result *extension.Result, width int) string {
	var builder strings.Builder

	if title := result.Frontmatter.Title(); title != "" {
		builder.WriteString(s.Title.Render(title))
		builder.WriteString("\n\n")
	}

	for i, block := range result.Blocks {
		if i > 0 {
			builder.WriteString("\n\n")
		}
		builder.WriteString(s.FormatBlock(block, width))
	}
	if len(result.Blocks) > 0 {
		builder.WriteString("\n")
	}

	return builder.String()
}

// FormatBlock renders one display block.
func (s *Styles) FormatBlock(block extension.Block, width int) string {
	switch {
	case block.Class == extension.ClassCode:
		return s.formatCode(block)
	case block.Class == extension.ClassMath:
		return s.Math.Render(block.Text)
	}

	switch block.Kind {
	case mdast.NodeHeading:
		style := s.SubHeading
		if block.HeadingLevel == 1 {
			style = s.Heading
		}
		if block.Title == "" {
			return style.Render(block.Text)
		}
		return style.Render(strings.Repeat("#", max(block.HeadingLevel, 1)) + " " + block.Title)
	case mdast.NodeBlockquote:
		lines := strings.Split(block.Text, "\n")
		for i, line := range lines {
			lines[i] = quoteBar + strings.TrimPrefix(strings.TrimPrefix(line, ">"), " ")
		}
		return s.Quote.Render(strings.Join(lines, "\n"))
	case mdast.NodeRaw, mdast.NodeHTMLBlock, mdast.NodeTable, mdast.NodeList:
		return s.Literal.Render(block.Text)
	default:
		return s.Paragraph.Render(wrap(block.Text, width))
	}
}

func (s *Styles) formatCode(block extension.Block) string {
	label := block.Language
	switch {
	case block.Diagram != extension.DiagramNone:
		label = fmt.Sprintf("%s (%s diagram)", label, block.Diagram)
	case block.Detected:
		label += " (detected)"
	}

	var builder strings.Builder
	if label != "" {
		builder.WriteString(s.CodeLabel.Render(label))
		builder.WriteString("\n")
	}
	builder.WriteString(s.Code.Render(block.Text))
	return builder.String()
}

// wrap breaks text at word boundaries to fit width.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}

// FormatFrontmatter renders decoded frontmatter as sorted key: value lines.
func (s *Styles) FormatFrontmatter(fm *extension.Frontmatter) string {
	if fm == nil || len(fm.Data) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fm.Data))
	for k := range fm.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var builder strings.Builder
	for _, k := range keys {
		builder.WriteString(s.Key.Render(k + ":"))
		builder.WriteString(" ")
		builder.WriteString(s.Value.Render(fmt.Sprint(fm.Data[k])))
		builder.WriteString("\n")
	}
	return builder.String()
}
