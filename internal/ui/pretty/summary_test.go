package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/inkwell/internal/ui/pretty"
	"github.com/yaklabco/inkwell/pkg/extension"
	"github.com/yaklabco/inkwell/pkg/mdast"
)

func TestCollectStats(t *testing.T) {
	t.Parallel()

	result := &extension.Result{
		Frontmatter: &extension.Frontmatter{},
		Blocks: []extension.Block{
			{Kind: mdast.NodeParagraph},
			{Kind: mdast.NodeCodeBlock, Class: extension.ClassCode, Detected: true},
			{Kind: mdast.NodeCodeBlock, Class: extension.ClassCode, Diagram: extension.DiagramPie},
			{Kind: mdast.NodeParagraph, Class: extension.ClassMath},
			{Kind: mdast.NodeParagraph, Class: extension.ClassShortcode},
		},
	}

	assert.Equal(t, pretty.Stats{
		Blocks:      5,
		Code:        2,
		Math:        1,
		Shortcode:   1,
		Detected:    1,
		Diagrams:    1,
		Frontmatter: true,
	}, pretty.CollectStats(result))
	assert.Equal(t, pretty.Stats{}, pretty.CollectStats(nil))
}

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats pretty.Stats
		want  string
	}{
		{name: "empty", stats: pretty.Stats{}, want: "0 blocks\n"},
		{name: "single", stats: pretty.Stats{Blocks: 1}, want: "1 block\n"},
		{
			name:  "classes",
			stats: pretty.Stats{Blocks: 4, Code: 2, Math: 1, Path: "notes.md"},
			want:  "4 blocks (2 code, 1 math) in notes.md\n",
		},
		{
			name:  "degraded",
			stats: pretty.Stats{Blocks: 1, Degraded: true},
			want:  "1 block, shown as literal text\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}

func TestFormatSummary(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	out := styles.FormatSummary(pretty.Stats{Path: "a.md", Revision: 3, Blocks: 2, Code: 1})
	assert.Contains(t, out, "File:              a.md")
	assert.Contains(t, out, "Revision:          3")
	assert.Contains(t, out, "Code:            1")
	assert.Contains(t, out, "Rendered")
	assert.NotContains(t, out, "Math")

	out = styles.FormatSummary(pretty.Stats{Degraded: true})
	assert.Contains(t, out, "Parse failed")
}
