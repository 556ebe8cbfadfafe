package rope

import (
	"errors"
	"fmt"
	"strings"
)

// ErrOutOfRange is returned when an offset, range, or line lies outside the
// current text.
var ErrOutOfRange = errors.New("position out of range")

// Position is a 0-indexed line and rune column.
type Position struct {
	Line   int
	Column int
}

// Less reports whether p comes before other.
func (p Position) Less(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Column < other.Column
}

// Rope is the text store. The zero value is an empty document.
type Rope struct {
	root *node
}

// New creates an empty rope.
func New() Rope {
	return Rope{}
}

// FromString creates a rope holding text. Invalid UTF-8 is replaced with
// U+FFFD so every stored rune is a Unicode scalar value.
func FromString(text string) Rope {
	return Rope{root: build(chunk(Sanitize(text)))}
}

// Len returns the number of runes.
func (r Rope) Len() int {
	if r.root == nil {
		return 0
	}
	return r.root.runes
}

// LineCount returns the number of lines: newlines plus one.
func (r Rope) LineCount() int {
	if r.root == nil {
		return 1
	}
	return r.root.lines + 1
}

// Height returns the tree height. An empty rope has height 0.
func (r Rope) Height() int {
	return height(r.root)
}

// String returns the whole text.
func (r Rope) String() string {
	if r.root == nil {
		return ""
	}

	var sb strings.Builder
	sb.Grow(r.root.runes)
	r.root.appendTo(&sb)
	return sb.String()
}

// Slice returns the runes in [start, end), clamped to the text.
func (r Rope) Slice(start, end int) string {
	start = clamp(start, 0, r.Len())
	end = clamp(end, 0, r.Len())
	if r.root == nil || start >= end {
		return ""
	}

	var sb strings.Builder
	r.root.appendRange(&sb, start, end)
	return sb.String()
}

// Insert splices text in at offset.
func (r *Rope) Insert(offset int, text string) error {
	if offset < 0 || offset > r.Len() {
		return fmt.Errorf("%w: insert at %d (length %d)", ErrOutOfRange, offset, r.Len())
	}
	if text == "" {
		return nil
	}

	left, right := split(r.root, offset)
	r.root = concat(concat(left, build(chunk(Sanitize(text)))), right)
	return nil
}

// Delete removes length runes starting at offset and returns them.
func (r *Rope) Delete(offset, length int) (string, error) {
	if offset < 0 || length < 0 || offset+length > r.Len() {
		return "", fmt.Errorf("%w: delete [%d, %d) (length %d)",
			ErrOutOfRange, offset, offset+length, r.Len())
	}
	if length == 0 {
		return "", nil
	}

	left, rest := split(r.root, offset)
	removed, right := split(rest, length)

	var sb strings.Builder
	removed.appendTo(&sb)

	r.root = concat(left, right)
	return sb.String(), nil
}

// LineToOffset returns the offset of the first rune of line.
func (r Rope) LineToOffset(line int) (int, error) {
	if line < 0 || line >= r.LineCount() {
		return 0, fmt.Errorf("%w: line %d (lines %d)", ErrOutOfRange, line, r.LineCount())
	}
	if line == 0 {
		return 0, nil
	}
	return newlineOffset(r.root, line) + 1, nil
}

// OffsetToLine returns the line containing offset. The offset just past the
// last rune belongs to the last line.
func (r Rope) OffsetToLine(offset int) (int, error) {
	if offset < 0 || offset > r.Len() {
		return 0, fmt.Errorf("%w: offset %d (length %d)", ErrOutOfRange, offset, r.Len())
	}
	return newlinesBefore(r.root, offset), nil
}

// LineLen returns the rune length of line, excluding its newline.
// Lines outside the text have length 0.
func (r Rope) LineLen(line int) int {
	start, end, ok := r.lineBounds(line)
	if !ok {
		return 0
	}
	return end - start
}

// Line returns the text of line without its newline.
func (r Rope) Line(line int) string {
	start, end, ok := r.lineBounds(line)
	if !ok {
		return ""
	}
	return r.Slice(start, end)
}

// Position converts an offset to a line and column, clamping the offset to
// the text first.
func (r Rope) Position(offset int) Position {
	offset = clamp(offset, 0, r.Len())

	line, _ := r.OffsetToLine(offset)
	start, _ := r.LineToOffset(line)
	return Position{Line: line, Column: offset - start}
}

// Offset converts a position to an offset after clamping it.
func (r Rope) Offset(pos Position) int {
	pos = r.Clamp(pos)
	start, _ := r.LineToOffset(pos.Line)
	return start + pos.Column
}

// Clamp moves pos onto the nearest valid position: the line into
// [0, LineCount), then the column into [0, LineLen(line)].
func (r Rope) Clamp(pos Position) Position {
	pos.Line = clamp(pos.Line, 0, r.LineCount()-1)
	pos.Column = clamp(pos.Column, 0, r.LineLen(pos.Line))
	return pos
}

// lineBounds returns the rune range of line excluding the newline.
func (r Rope) lineBounds(line int) (int, int, bool) {
	start, err := r.LineToOffset(line)
	if err != nil {
		return 0, 0, false
	}

	end := r.Len()
	if line+1 < r.LineCount() {
		next, _ := r.LineToOffset(line + 1)
		end = next - 1
	}

	return start, end, true
}

// Sanitize returns text as the rope stores it: each run of invalid UTF-8
// bytes becomes a single U+FFFD.
func Sanitize(text string) string {
	return strings.ToValidUTF8(text, "\uFFFD")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
