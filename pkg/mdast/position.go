package mdast

// SourceRange represents a byte range in the source content.
type SourceRange struct {
	// StartOffset is the byte index where the range begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the range ends (exclusive).
	EndOffset int
}

// Len returns the length of the range in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty returns true if the range has zero length.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains returns true if the given offset is within this range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// LineSpan is an inclusive range of 0-based line indexes.
type LineSpan struct {
	First int
	Last  int
}

// Contains reports whether line lies within the span.
func (s LineSpan) Contains(line int) bool {
	return line >= s.First && line <= s.Last
}

// Count returns the number of lines in the span.
func (s LineSpan) Count() int {
	return s.Last - s.First + 1
}

// Text returns the source bytes of the node's range.
// Returns nil if the node has no associated file.
func (n *Node) Text() []byte {
	if n.File == nil {
		return nil
	}

	r := n.Range
	if r.StartOffset < 0 || r.EndOffset > len(n.File.Content) || r.StartOffset > r.EndOffset {
		return nil
	}

	return n.File.Content[r.StartOffset:r.EndOffset]
}

// SpanText returns the full source lines covered by the node's span,
// without the final newline.
func (n *Node) SpanText() []byte {
	if n.File == nil || len(n.File.Lines) == 0 {
		return nil
	}

	lines := n.File.Lines
	first := clampLine(n.Span.First, len(lines))
	last := clampLine(n.Span.Last, len(lines))
	if last < first {
		return nil
	}

	return n.File.Content[lines[first].StartOffset:lines[last].NewlineStart]
}

func clampLine(line, count int) int {
	return max(0, min(line, count-1))
}
