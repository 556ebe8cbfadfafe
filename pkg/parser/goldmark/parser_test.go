package goldmark

import (
	"context"
	"testing"

	"github.com/yaklabco/inkwell/pkg/mdast"
)

func TestParser_New(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		flavor     string
		wantFlavor string
	}{
		{"commonmark", FlavorCommonMark, FlavorCommonMark},
		{"gfm", FlavorGFM, FlavorGFM},
		{"invalid defaults to commonmark", "invalid", FlavorCommonMark},
		{"empty defaults to commonmark", "", FlavorCommonMark},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if p := New(tt.flavor); p.Flavor() != tt.wantFlavor {
				t.Errorf("Flavor() = %q, want %q", p.Flavor(), tt.wantFlavor)
			}
		})
	}
}

func parse(t *testing.T, flavor, content string) *mdast.FileSnapshot {
	t.Helper()

	snapshot, err := New(flavor).Parse(context.Background(), "test.md", []byte(content))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if snapshot.Root == nil {
		t.Fatal("expected non-nil root")
	}
	return snapshot
}

type wantBlock struct {
	kind mdast.NodeKind
	span mdast.LineSpan
}

func TestParser_BlockSpans(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []wantBlock
	}{
		{
			name:    "heading and paragraph",
			content: "# Hello\n\nWorld",
			want: []wantBlock{
				{mdast.NodeHeading, mdast.LineSpan{First: 0, Last: 0}},
				{mdast.NodeParagraph, mdast.LineSpan{First: 2, Last: 2}},
			},
		},
		{
			name:    "fenced code includes both fences",
			content: "```go\nfmt.Println()\n```\n\nafter",
			want: []wantBlock{
				{mdast.NodeCodeBlock, mdast.LineSpan{First: 0, Last: 2}},
				{mdast.NodeParagraph, mdast.LineSpan{First: 4, Last: 4}},
			},
		},
		{
			name:    "empty fence",
			content: "```\n```\ntext",
			want: []wantBlock{
				{mdast.NodeCodeBlock, mdast.LineSpan{First: 0, Last: 1}},
				{mdast.NodeParagraph, mdast.LineSpan{First: 2, Last: 2}},
			},
		},
		{
			name:    "setext heading includes underline",
			content: "Title\n=====\n\ntext",
			want: []wantBlock{
				{mdast.NodeHeading, mdast.LineSpan{First: 0, Last: 1}},
				{mdast.NodeParagraph, mdast.LineSpan{First: 3, Last: 3}},
			},
		},
		{
			name:    "thematic break between paragraphs",
			content: "a\n\n---\n\nb",
			want: []wantBlock{
				{mdast.NodeParagraph, mdast.LineSpan{First: 0, Last: 0}},
				{mdast.NodeThematicBreak, mdast.LineSpan{First: 2, Last: 2}},
				{mdast.NodeParagraph, mdast.LineSpan{First: 4, Last: 4}},
			},
		},
		{
			name:    "multi-line paragraph",
			content: "one\ntwo\nthree\n",
			want: []wantBlock{
				{mdast.NodeParagraph, mdast.LineSpan{First: 0, Last: 2}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			blocks := parse(t, FlavorGFM, tt.content).Blocks()
			if len(blocks) != len(tt.want) {
				t.Fatalf("got %d blocks, want %d", len(blocks), len(tt.want))
			}
			for i, want := range tt.want {
				if blocks[i].Kind != want.kind {
					t.Errorf("block %d: kind %s, want %s", i, blocks[i].Kind, want.kind)
				}
				if blocks[i].Span != want.span {
					t.Errorf("block %d: span %+v, want %+v", i, blocks[i].Span, want.span)
				}
			}
		})
	}
}

func TestParser_CodeBlockAttrs(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, FlavorGFM, "~~~python title=x\nprint(1)\n~~~\n")
	code := snapshot.Blocks()[0].CodeBlock()
	if code == nil {
		t.Fatal("expected code block attributes")
	}
	if code.Info != "python title=x" || code.Language() != "python" {
		t.Errorf("Info = %q, Language = %q", code.Info, code.Language())
	}
	if code.FenceChar != '~' {
		t.Errorf("FenceChar = %q, want '~'", code.FenceChar)
	}
	if string(code.Content) != "print(1)\n" {
		t.Errorf("Content = %q", code.Content)
	}
}

func TestParser_Frontmatter(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		blocks := parse(t, FlavorGFM, "---\ntitle: x\n---\n# Head\n").Blocks()
		if len(blocks) != 2 {
			t.Fatalf("got %d blocks, want 2", len(blocks))
		}

		fm := blocks[0]
		if fm.Kind != mdast.NodeFrontmatter {
			t.Fatalf("first block is %s", fm.Kind)
		}
		if fm.Span != (mdast.LineSpan{First: 0, Last: 2}) {
			t.Errorf("frontmatter span = %+v", fm.Span)
		}
		if attrs := fm.Block.Frontmatter; attrs.Format != mdast.FrontmatterYAML || string(attrs.Raw) != "title: x\n" {
			t.Errorf("frontmatter attrs = %+v", attrs)
		}

		if blocks[1].Kind != mdast.NodeHeading || blocks[1].Span != (mdast.LineSpan{First: 3, Last: 3}) {
			t.Errorf("heading = %s %+v", blocks[1].Kind, blocks[1].Span)
		}
		if string(blocks[1].Text()) != "# Head" {
			t.Errorf("heading text = %q", blocks[1].Text())
		}
	})

	t.Run("toml", func(t *testing.T) {
		t.Parallel()

		blocks := parse(t, FlavorGFM, "+++\ntitle = \"x\"\n+++\nbody").Blocks()
		if blocks[0].Kind != mdast.NodeFrontmatter || blocks[0].Block.Frontmatter.Format != mdast.FrontmatterTOML {
			t.Fatalf("expected TOML frontmatter, got %s", blocks[0].Kind)
		}
	})

	t.Run("crlf", func(t *testing.T) {
		t.Parallel()

		for _, src := range []string{"---\r\ntitle: x\r\n---\r\nbody\r\n", "---\r\ntitle: x\r\n---\r"} {
			blocks := parse(t, FlavorGFM, src).Blocks()
			if len(blocks) == 0 || blocks[0].Kind != mdast.NodeFrontmatter {
				t.Fatalf("%q: expected frontmatter", src)
			}
			if blocks[0].Span != (mdast.LineSpan{First: 0, Last: 2}) {
				t.Errorf("%q: frontmatter span = %+v", src, blocks[0].Span)
			}
			if raw := string(blocks[0].Block.Frontmatter.Raw); raw != "title: x\r\n" {
				t.Errorf("%q: raw = %q", src, raw)
			}
		}
	})

	t.Run("not at start", func(t *testing.T) {
		t.Parallel()

		blocks := parse(t, FlavorGFM, "intro\n\n---\ntitle: x\n---\n").Blocks()
		for _, b := range blocks {
			if b.Kind == mdast.NodeFrontmatter {
				t.Fatal("frontmatter must only be recognized on line 0")
			}
		}
	})

	t.Run("unclosed", func(t *testing.T) {
		t.Parallel()

		blocks := parse(t, FlavorGFM, "---\ntitle: x\n").Blocks()
		if len(blocks) > 0 && blocks[0].Kind == mdast.NodeFrontmatter {
			t.Fatal("unclosed delimiter is not frontmatter")
		}
	})
}

func TestParser_Inlines(t *testing.T) {
	t.Parallel()

	para := parse(t, FlavorCommonMark, "a\nb `c`").Blocks()[0]

	kinds := []mdast.NodeKind{}
	for _, child := range para.Children() {
		kinds = append(kinds, child.Kind)
	}

	want := []mdast.NodeKind{mdast.NodeText, mdast.NodeSoftBreak, mdast.NodeText, mdast.NodeCodeSpan}
	if len(kinds) != len(want) {
		t.Fatalf("children = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("child %d = %s, want %s", i, kinds[i], want[i])
		}
	}

	if got := mdast.InlineText(para); got != "a\nb c" {
		t.Errorf("InlineText() = %q", got)
	}
}

func TestParser_GFMTable(t *testing.T) {
	t.Parallel()

	content := "| a | b |\n|---|---|\n| 1 | 2 |\n"

	gfm := parse(t, FlavorGFM, content).Blocks()
	if len(gfm) != 1 || gfm[0].Kind != mdast.NodeTable {
		t.Fatalf("gfm blocks = %v", gfm)
	}
	if gfm[0].Span != (mdast.LineSpan{First: 0, Last: 2}) {
		t.Errorf("table span = %+v", gfm[0].Span)
	}

	plain := parse(t, FlavorCommonMark, content).Blocks()
	if len(plain) != 1 || plain[0].Kind != mdast.NodeParagraph {
		t.Fatalf("commonmark should see a paragraph, got %v", plain)
	}
}

func TestParser_EmptyAndCancelled(t *testing.T) {
	t.Parallel()

	snapshot := parse(t, FlavorGFM, "")
	if len(snapshot.Blocks()) != 0 {
		t.Error("empty content should have no blocks")
	}
	if snapshot.LineCount() != 1 {
		t.Errorf("LineCount() = %d, want 1", snapshot.LineCount())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(FlavorGFM).Parse(ctx, "x.md", []byte("# x")); err == nil {
		t.Error("expected an error for a cancelled context")
	}
}

func TestParser_ContentIsCopied(t *testing.T) {
	t.Parallel()

	content := []byte("hello")
	snapshot, err := New(FlavorGFM).Parse(context.Background(), "", content)
	if err != nil {
		t.Fatal(err)
	}

	content[0] = 'J'
	if string(snapshot.Content) != "hello" {
		t.Error("snapshot must not alias the input")
	}
}
