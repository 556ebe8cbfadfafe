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

func TestFormatBlock(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		block extension.Block
		want  string
	}{
		{
			name:  "heading",
			block: extension.Block{Kind: mdast.NodeHeading, HeadingLevel: 2, Text: "Setup\n-----", Title: "Setup"},
			want:  "## Setup",
		},
		{
			name:  "heading without title",
			block: extension.Block{Kind: mdast.NodeHeading, HeadingLevel: 1, Text: "# "},
			want:  "# ",
		},
		{
			name:  "paragraph",
			block: extension.Block{Kind: mdast.NodeParagraph, Text: "hello 😃"},
			want:  "hello 😃",
		},
		{
			name:  "math",
			block: extension.Block{Kind: mdast.NodeParagraph, Class: extension.ClassMath, Text: "α + β"},
			want:  "α + β",
		},
		{
			name: "fenced code",
			block: extension.Block{
				Kind: mdast.NodeCodeBlock, Class: extension.ClassCode,
				Language: "go", Text: "x := 1",
			},
			want: "go\nx := 1",
		},
		{
			name: "detected code",
			block: extension.Block{
				Kind: mdast.NodeCodeBlock, Class: extension.ClassCode,
				Language: "json", Detected: true, Text: `{"a": 1}`,
			},
			want: "json (detected)\n" + `{"a": 1}`,
		},
		{
			name: "diagram",
			block: extension.Block{
				Kind: mdast.NodeCodeBlock, Class: extension.ClassCode,
				Language: "mermaid", Diagram: extension.DiagramFlowchart, Text: "graph TD",
			},
			want: "mermaid (flowchart diagram)\ngraph TD",
		},
		{
			name:  "unlabelled code",
			block: extension.Block{Kind: mdast.NodeCodeBlock, Class: extension.ClassCode, Text: "plain"},
			want:  "plain",
		},
		{
			name:  "blockquote",
			block: extension.Block{Kind: mdast.NodeBlockquote, Text: "> one\n> two"},
			want:  "│ one\n│ two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatBlock(tt.block, 0))
		})
	}
}

func TestFormatBlock_WrapsParagraphs(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	block := extension.Block{
		Kind: mdast.NodeParagraph,
		Text: "the quick brown fox jumps over the lazy dog again and again",
	}

	out := styles.FormatBlock(block, 20)
	lines := strings.Split(out, "\n")
	require.Greater(t, len(lines), 1)
	for _, line := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 20)
	}
}

func TestFormatPreview(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	result := &extension.Result{
		Frontmatter: &extension.Frontmatter{Data: map[string]any{"title": "Notes"}},
		Blocks: []extension.Block{
			{Kind: mdast.NodeHeading, HeadingLevel: 1, Text: "# Intro", Title: "Intro"},
			{Kind: mdast.NodeParagraph, Text: "body"},
		},
	}

	assert.Equal(t, "Notes\n\n# Intro\n\nbody\n", styles.FormatPreview(result, 0))
	assert.Empty(t, styles.FormatPreview(&extension.Result{}, 0))
}

func TestFormatFrontmatter(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	fm := &extension.Frontmatter{Data: map[string]any{"title": "Notes", "draft": true}}

	assert.Equal(t, "draft: true\ntitle: Notes\n", styles.FormatFrontmatter(fm))
	assert.Empty(t, styles.FormatFrontmatter(nil))
	assert.Empty(t, styles.FormatFrontmatter(&extension.Frontmatter{}))
}
