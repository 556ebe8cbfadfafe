package document

import "github.com/yaklabco/inkwell/pkg/rope"

// Direction is a cursor or scroll movement.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	LineStart
	LineEnd
	DocumentStart
	DocumentEnd
)

// MoveCursor moves the cursor count steps in dir, clamping at the edges of
// the text, and collapses any selection onto it. Left and Right step by
// grapheme cluster and wrap across lines. Up and Down keep a preferred
// column: moving through a short line and back returns to the original
// column.
func (d *Document) MoveCursor(dir Direction, count int) {
	d.move(dir, count)
	d.anchor = d.cursor
}

// ExtendSelection moves the cursor like MoveCursor but leaves the anchor in
// place, growing or shrinking the selection.
func (d *Document) ExtendSelection(dir Direction, count int) {
	d.move(dir, count)
}

// SetCursor places the cursor at the clamped position and clears the
// selection.
func (d *Document) SetCursor(line, column int) {
	d.cursor = d.text.Clamp(rope.Position{Line: line, Column: column})
	d.anchor = d.cursor
	d.preferredCol = -1
}

// SetSelection selects from anchor to head after clamping both.
func (d *Document) SetSelection(anchor, head rope.Position) {
	sel := d.text.ClampSelection(rope.Selection{Anchor: anchor, Head: head})
	d.anchor = sel.Anchor
	d.cursor = sel.Head
	d.preferredCol = -1
}

// SelectAll selects the whole text with the cursor at the end.
func (d *Document) SelectAll() {
	d.SetSelection(rope.Position{}, d.text.Position(d.text.Len()))
}

func (d *Document) move(dir Direction, count int) {
	count = max(count, 1)

	switch dir {
	case Up, Down:
		d.moveVertical(dir, count)
		return
	}

	d.preferredCol = -1

	for range count {
		switch dir {
		case Left:
			d.stepLeft()
		case Right:
			d.stepRight()
		case LineStart:
			d.cursor.Column = 0
		case LineEnd:
			d.cursor.Column = d.text.LineLen(d.cursor.Line)
		case DocumentStart:
			d.cursor = rope.Position{}
		case DocumentEnd:
			d.cursor = d.text.Position(d.text.Len())
		}
	}
}

func (d *Document) moveVertical(dir Direction, count int) {
	if d.preferredCol < 0 {
		d.preferredCol = d.cursor.Column
	}

	line := d.cursor.Line
	if dir == Up {
		line -= count
	} else {
		line += count
	}

	d.cursor = d.text.Clamp(rope.Position{Line: line, Column: d.preferredCol})
}

func (d *Document) stepLeft() {
	if d.cursor.Column > 0 {
		d.cursor.Column = prevBoundary(d.text.Line(d.cursor.Line), d.cursor.Column)
		return
	}
	if d.cursor.Line > 0 {
		d.cursor.Line--
		d.cursor.Column = d.text.LineLen(d.cursor.Line)
	}
}

func (d *Document) stepRight() {
	line := d.text.Line(d.cursor.Line)
	if d.cursor.Column < runeLen(line) {
		d.cursor.Column = nextBoundary(line, d.cursor.Column)
		return
	}
	if d.cursor.Line+1 < d.text.LineCount() {
		d.cursor.Line++
		d.cursor.Column = 0
	}
}

// ScrollBy moves the scroll offset by delta lines.
func (d *Document) ScrollBy(delta int) {
	d.SetScroll(d.scroll + delta)
}

// SetScroll sets the first visible line, clamped to the document.
func (d *Document) SetScroll(line int) {
	d.scroll = clamp(line, 0, d.text.LineCount()-1)
}

// PageScroll scrolls count lines in dir and carries the cursor the same
// distance. Only Up and Down are meaningful.
func (d *Document) PageScroll(dir Direction, count int) {
	count = max(count, 1)

	switch dir {
	case Up:
		d.ScrollBy(-count)
	case Down:
		d.ScrollBy(count)
	default:
		return
	}

	d.moveVertical(dir, count)
	d.anchor = d.cursor
}

// EnsureVisible adjusts the scroll offset so the cursor line lies within a
// viewport of height lines.
func (d *Document) EnsureVisible(height int) {
	if height <= 0 {
		return
	}

	switch {
	case d.cursor.Line < d.scroll:
		d.SetScroll(d.cursor.Line)
	case d.cursor.Line >= d.scroll+height:
		d.SetScroll(d.cursor.Line - height + 1)
	}
}
