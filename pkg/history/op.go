// Package history records reversible text mutations and replays them for
// undo and redo.
//
// History is linear. Pushing a new operation after an undo discards every
// redo entry; there is no branching.
package history

import (
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/inkwell/pkg/rope"
)

// Kind identifies the mutation an Op performs.
type Kind int

const (
	// OpInsert inserts Text at Offset.
	OpInsert Kind = iota
	// OpDelete removes Text, which starts at Offset.
	OpDelete
	// OpReplace removes Removed, which starts at Offset, and inserts Text in
	// its place.
	OpReplace
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	case OpReplace:
		return "replace"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Op is a single reversible mutation. Deletes and replaces carry the removed
// text so the inverse can restore it.
type Op struct {
	Kind    Kind
	Offset  int
	Text    string
	Removed string // OpReplace only

	// Selections around the edit, restored by the document owner.
	SelectionBefore rope.Selection
	SelectionAfter  rope.Selection
}

// Insert returns an insert op.
func Insert(offset int, text string) Op {
	return Op{Kind: OpInsert, Offset: offset, Text: text}
}

// Delete returns a delete op for text removed at offset.
func Delete(offset int, text string) Op {
	return Op{Kind: OpDelete, Offset: offset, Text: text}
}

// Replace returns an op that swaps removed, starting at offset, for text.
func Replace(offset int, removed, text string) Op {
	return Op{Kind: OpReplace, Offset: offset, Text: text, Removed: removed}
}

// WithCursors returns a copy of op carrying empty selections at the given
// cursor positions.
func (op Op) WithCursors(before, after rope.Position) Op {
	return op.WithSelections(rope.Caret(before), rope.Caret(after))
}

// WithSelections returns a copy of op carrying the given selections.
func (op Op) WithSelections(before, after rope.Selection) Op {
	op.SelectionBefore = before
	op.SelectionAfter = after
	return op
}

// Inverse returns the op that reverses op. Selections swap so that applying
// the inverse lands on the selection the original started from.
func (op Op) Inverse() Op {
	inv := op
	inv.SelectionBefore, inv.SelectionAfter = op.SelectionAfter, op.SelectionBefore

	switch op.Kind {
	case OpInsert:
		inv.Kind = OpDelete
	case OpDelete:
		inv.Kind = OpInsert
	case OpReplace:
		inv.Text, inv.Removed = op.Removed, op.Text
	}

	return inv
}

// Len returns the rune length of the op's text.
func (op Op) Len() int {
	return utf8.RuneCountInString(op.Text)
}

// RemovedLen returns the rune length of the text a replace removes.
func (op Op) RemovedLen() int {
	return utf8.RuneCountInString(op.Removed)
}

// IsNoop reports whether applying op changes nothing.
func (op Op) IsNoop() bool {
	return op.Text == "" && op.Removed == ""
}

// Target is the store an op is applied to. *rope.Rope satisfies it.
type Target interface {
	Insert(offset int, text string) error
	Delete(offset, length int) (string, error)
}

var _ Target = (*rope.Rope)(nil)

// Apply performs op on target.
func (op Op) Apply(target Target) error {
	switch op.Kind {
	case OpInsert:
		if err := target.Insert(op.Offset, op.Text); err != nil {
			return fmt.Errorf("apply %s: %w", op.Kind, err)
		}
	case OpDelete:
		if _, err := target.Delete(op.Offset, op.Len()); err != nil {
			return fmt.Errorf("apply %s: %w", op.Kind, err)
		}
	case OpReplace:
		if _, err := target.Delete(op.Offset, op.RemovedLen()); err != nil {
			return fmt.Errorf("apply %s: %w", op.Kind, err)
		}
		if err := target.Insert(op.Offset, op.Text); err != nil {
			return fmt.Errorf("apply %s: %w", op.Kind, err)
		}
	default:
		return fmt.Errorf("apply: unknown op kind %d", int(op.Kind))
	}

	return nil
}
