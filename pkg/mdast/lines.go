package mdast

import (
	"bytes"
	"sort"
)

// BuildLines constructs line metadata from file content.
// It handles both LF (\n) and CRLF (\r\n) line endings. Empty content has
// one empty line, matching the editor's line count rule.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}

		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// Last line, possibly empty after a trailing newline.
	return append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineOf returns the 0-based line containing the byte offset. Offsets past
// the end belong to the last line; negative offsets to the first.
func (f *FileSnapshot) LineOf(offset int) int {
	if offset <= 0 || len(f.Lines) == 0 {
		return 0
	}

	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})

	return min(idx, len(f.Lines)-1)
}

// LineText returns the content of a 0-based line, excluding the newline.
// Returns nil if the line is out of range.
func (f *FileSnapshot) LineText(line int) []byte {
	if line < 0 || line >= len(f.Lines) {
		return nil
	}

	info := f.Lines[line]
	return f.Content[info.StartOffset:info.NewlineStart]
}

// IsBlankLine reports whether a 0-based line holds only spaces and tabs.
func (f *FileSnapshot) IsBlankLine(line int) bool {
	return len(bytes.TrimSpace(f.LineText(line))) == 0
}
