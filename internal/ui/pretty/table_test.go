package pretty_test

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inkwell/internal/ui/pretty"
	"github.com/yaklabco/inkwell/pkg/extension"
	"github.com/yaklabco/inkwell/pkg/mdast"
)

func outlineResult() *extension.Result {
	return &extension.Result{
		Blocks: []extension.Block{
			{Kind: mdast.NodeHeading, Lines: mdast.LineSpan{First: 0, Last: 0}, Text: "# Title", Title: "Title"},
			{
				Kind: mdast.NodeCodeBlock, Class: extension.ClassCode, Language: "go",
				Lines: mdast.LineSpan{First: 2, Last: 5}, Text: "package main\n\nfunc main() {}",
			},
			{
				Kind: mdast.NodeParagraph, Class: extension.ClassMath,
				Lines: mdast.LineSpan{First: 7, Last: 7}, Text: strings.Repeat("x", 200),
			},
		},
	}
}

func TestBlockToTableRow(t *testing.T) {
	t.Parallel()

	row := pretty.BlockToTableRow(outlineResult().Blocks[1])

	assert.Equal(t, pretty.TableRow{
		Lines: "3-6",
		Kind:  "CodeBlock:go",
		Class: extension.ClassCode,
		Text:  "package main",
	}, row)
}

func TestFormatTable(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 80)
	out := formatter.FormatTable(outlineResult())

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 7) // header, separator, 3 rows, separator, legend

	assert.Contains(t, lines[0], "LINES")
	assert.Contains(t, lines[0], "CLASS")
	assert.Contains(t, lines[2], "1-1")
	assert.Contains(t, lines[2], "Title")
	assert.NotContains(t, lines[2], "#", "outline shows the heading title")
	assert.Contains(t, lines[3], "CodeBlock:go")
	assert.Contains(t, lines[3], "code")
	assert.Contains(t, lines[4], "...")
	assert.Contains(t, lines[6], "Legend")

	for _, line := range lines[:6] {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 80)
	}
}

func TestFormatTable_Empty(t *testing.T) {
	t.Parallel()

	formatter := pretty.NewTableFormatter(pretty.NewStyles(false), false, 0)
	assert.Empty(t, formatter.FormatTable(nil))
	assert.Empty(t, formatter.FormatTable(&extension.Result{}))
}
