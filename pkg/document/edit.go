package document

import (
	"errors"

	"github.com/yaklabco/inkwell/internal/logging"
	"github.com/yaklabco/inkwell/pkg/history"
	"github.com/yaklabco/inkwell/pkg/rope"
)

// EditKind selects what an Edit does.
type EditKind int

const (
	// EditInsert inserts Text at Offset.
	EditInsert EditKind = iota
	// EditDelete removes Length runes starting at Offset.
	EditDelete
	// EditReplace removes Length runes starting at Offset and inserts Text
	// in their place, as one undo step.
	EditReplace
)

// Edit is a requested change in rune offsets.
type Edit struct {
	Kind   EditKind
	Offset int
	Text   string
	Length int
}

// Apply performs e. An offset or range outside the text is clamped to it; an
// edit that clamps to nothing is a no-op. Invalid UTF-8 in Text is stored as
// U+FFFD. The cursor keeps its place in the surrounding text and any
// selection collapses onto it. Apply reports whether the text changed.
func (d *Document) Apply(e Edit) bool {
	size := d.text.Len()
	offset := clamp(e.Offset, 0, size)
	text := rope.Sanitize(e.Text)
	before := d.Selection()
	cursorOff := d.text.Offset(d.cursor)

	var length int
	if e.Kind == EditDelete || e.Kind == EditReplace {
		length = clamp(e.Length, 0, size-offset)
	}

	var op history.Op

	switch {
	case e.Kind == EditInsert, e.Kind == EditReplace && length == 0:
		if text == "" {
			return false
		}
		op = history.Insert(offset, text)

	case e.Kind == EditDelete, e.Kind == EditReplace && text == "":
		if length == 0 {
			return false
		}
		op = history.Delete(offset, d.text.Slice(offset, offset+length))

	case e.Kind == EditReplace:
		op = history.Replace(offset, d.text.Slice(offset, offset+length), text)

	default:
		return false
	}

	if err := op.Apply(&d.text); err != nil {
		// Offsets were clamped above, so the store cannot reject the op.
		d.logger.Error("edit rejected", logging.FieldError, err)
		return false
	}

	after := d.text.Position(shift(cursorOff, op))
	d.log.Push(op.WithSelections(before, rope.Caret(after)))
	d.cursor = after
	d.anchor = after
	d.preferredCol = -1
	d.SetScroll(d.scroll)
	d.bump()
	return true
}

// InsertText inserts text at the cursor and moves the cursor past it. A
// non-empty selection is replaced by text.
func (d *Document) InsertText(text string) bool {
	if !d.Selection().Empty() {
		return d.ReplaceSelection(text)
	}
	return d.Apply(Edit{Kind: EditInsert, Offset: d.text.Offset(d.cursor), Text: text})
}

// DeleteSelection removes the selected text. It returns false when the
// selection is empty.
func (d *Document) DeleteSelection() bool {
	sel := d.Selection()
	if sel.Empty() {
		return false
	}

	start, end := d.text.Offset(sel.Start()), d.text.Offset(sel.End())
	return d.Apply(Edit{Kind: EditDelete, Offset: start, Length: end - start})
}

// ReplaceSelection swaps the selected text for text as a single undo step
// and leaves the cursor after the inserted text. With an empty selection it
// inserts at the cursor.
func (d *Document) ReplaceSelection(text string) bool {
	sel := d.Selection()
	start, end := d.text.Offset(sel.Start()), d.text.Offset(sel.End())
	return d.Apply(Edit{Kind: EditReplace, Offset: start, Length: end - start, Text: text})
}

// DeleteBackward removes the grapheme cluster before the cursor. At the start
// of a line it joins the line with the one above. A non-empty selection is
// deleted instead.
func (d *Document) DeleteBackward() bool {
	if !d.Selection().Empty() {
		return d.DeleteSelection()
	}

	offset := d.text.Offset(d.cursor)
	if offset == 0 {
		return false
	}

	if d.cursor.Column == 0 {
		return d.Apply(Edit{Kind: EditDelete, Offset: offset - 1, Length: 1})
	}

	start := prevBoundary(d.text.Line(d.cursor.Line), d.cursor.Column)
	return d.Apply(Edit{Kind: EditDelete, Offset: offset - (d.cursor.Column - start), Length: d.cursor.Column - start})
}

// DeleteForward removes the grapheme cluster after the cursor. At the end of
// a line it joins the next line onto this one. A non-empty selection is
// deleted instead.
func (d *Document) DeleteForward() bool {
	if !d.Selection().Empty() {
		return d.DeleteSelection()
	}

	offset := d.text.Offset(d.cursor)
	if offset == d.text.Len() {
		return false
	}

	line := d.text.Line(d.cursor.Line)
	if d.cursor.Column >= runeLen(line) {
		return d.Apply(Edit{Kind: EditDelete, Offset: offset, Length: 1})
	}

	end := nextBoundary(line, d.cursor.Column)
	return d.Apply(Edit{Kind: EditDelete, Offset: offset, Length: end - d.cursor.Column})
}

// Undo reverts the newest edit and restores the selection it started from.
// It returns false when there is nothing to undo.
func (d *Document) Undo() bool {
	op, err := d.log.Undo(&d.text)
	if !d.replayed(err, "undo") {
		return false
	}

	d.restore(op.SelectionBefore)
	return true
}

// Redo reapplies the newest undone edit and restores the selection it ended
// with. It returns false when there is nothing to redo.
func (d *Document) Redo() bool {
	op, err := d.log.Redo(&d.text)
	if !d.replayed(err, "redo") {
		return false
	}

	d.restore(op.SelectionAfter)
	return true
}

func (d *Document) restore(sel rope.Selection) {
	sel = d.text.ClampSelection(sel)
	d.anchor = sel.Anchor
	d.cursor = sel.Head
	d.SetScroll(d.scroll)
}

func (d *Document) replayed(err error, action string) bool {
	switch {
	case err == nil:
		d.preferredCol = -1
		d.bump()
		return true
	case errors.Is(err, history.ErrEmptyHistory):
		return false
	default:
		d.logger.Error(action+" failed", logging.FieldError, err, logging.FieldRevision, d.revision)
		return false
	}
}

// shift maps a cursor offset across op.
func shift(cursor int, op history.Op) int {
	n := op.Len()

	switch op.Kind {
	case history.OpInsert:
		if cursor >= op.Offset {
			return cursor + n
		}
	case history.OpDelete:
		switch {
		case cursor >= op.Offset+n:
			return cursor - n
		case cursor > op.Offset:
			return op.Offset
		}
	case history.OpReplace:
		removed := op.RemovedLen()
		switch {
		case cursor >= op.Offset+removed:
			return cursor - removed + n
		case cursor >= op.Offset:
			return op.Offset + n
		}
	}

	return cursor
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
