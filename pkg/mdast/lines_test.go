package mdast_test

import (
	"testing"

	"github.com/yaklabco/inkwell/pkg/mdast"
)

func TestBuildLines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected []mdast.LineInfo
	}{
		{
			name:    "empty content",
			content: "",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 0, EndOffset: 0},
			},
		},
		{
			name:    "single line no newline",
			content: "hello",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 5},
			},
		},
		{
			name:    "single line with LF",
			content: "hello\n",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 6, EndOffset: 6},
			},
		},
		{
			name:    "single line with CRLF",
			content: "hello\r\n",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 7},
				{StartOffset: 7, NewlineStart: 7, EndOffset: 7},
			},
		},
		{
			name:    "multiple lines LF",
			content: "line1\nline2\nline3",
			expected: []mdast.LineInfo{
				{StartOffset: 0, NewlineStart: 5, EndOffset: 6},
				{StartOffset: 6, NewlineStart: 11, EndOffset: 12},
				{StartOffset: 12, NewlineStart: 17, EndOffset: 17},
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			got := mdast.BuildLines([]byte(testCase.content))
			if len(got) != len(testCase.expected) {
				t.Fatalf("got %d lines, want %d", len(got), len(testCase.expected))
			}
			for i := range got {
				if got[i] != testCase.expected[i] {
					t.Errorf("line %d: got %+v, want %+v", i, got[i], testCase.expected[i])
				}
			}
		})
	}
}

func TestLineOfAndLineText(t *testing.T) {
	t.Parallel()

	snap := mdast.NewFileSnapshot("", []byte("ab\n\ncd\n"))

	if snap.LineCount() != 4 {
		t.Fatalf("LineCount() = %d, want 4", snap.LineCount())
	}

	lineOf := map[int]int{-3: 0, 0: 0, 2: 0, 3: 1, 4: 2, 6: 2, 7: 3, 99: 3}
	for offset, want := range lineOf {
		if got := snap.LineOf(offset); got != want {
			t.Errorf("LineOf(%d) = %d, want %d", offset, got, want)
		}
	}

	if got := string(snap.LineText(2)); got != "cd" {
		t.Errorf("LineText(2) = %q, want %q", got, "cd")
	}
	if snap.LineText(4) != nil {
		t.Error("LineText past the end should be nil")
	}
	if !snap.IsBlankLine(1) || snap.IsBlankLine(0) {
		t.Error("IsBlankLine misclassified lines")
	}
}

func TestLiteral(t *testing.T) {
	t.Parallel()

	snap := mdast.Literal("x.md", []byte("one\ntwo"))

	if !snap.Degraded {
		t.Error("literal snapshot should be marked degraded")
	}

	blocks := snap.Blocks()
	if len(blocks) != 1 || blocks[0].Kind != mdast.NodeRaw {
		t.Fatalf("expected one raw block, got %v", blocks)
	}
	if got := string(blocks[0].Text()); got != "one\ntwo" {
		t.Errorf("Text() = %q", got)
	}
	if blocks[0].Span != (mdast.LineSpan{First: 0, Last: 1}) {
		t.Errorf("Span = %+v", blocks[0].Span)
	}
	if blocks[0].File != snap {
		t.Error("File back-reference not set")
	}
}
