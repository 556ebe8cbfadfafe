package history

import "errors"

// ErrEmptyHistory is returned by Undo and Redo when there is nothing to replay.
var ErrEmptyHistory = errors.New("history is empty")

// DefaultLimit is the number of undo entries kept when no limit is given.
const DefaultLimit = 1000

// State describes where the log sits in its lifecycle.
type State int

const (
	// StateIdle means nothing has been recorded.
	StateIdle State = iota
	// StateRecorded means the newest entry is a recorded op.
	StateRecorded
	// StateReverted means at least one op has been undone and can be redone.
	StateReverted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecorded:
		return "recorded"
	case StateReverted:
		return "reverted"
	default:
		return "unknown"
	}
}

// Log is a bounded linear undo/redo history. It is not safe for concurrent
// use; the owning document serializes access.
type Log struct {
	undo  []Op
	redo  []Op
	limit int
}

// NewLog creates a log keeping at most limit undo entries. A non-positive
// limit selects DefaultLimit.
func NewLog(limit int) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{limit: limit}
}

// Limit returns the maximum number of undo entries.
func (l *Log) Limit() int {
	return l.limit
}

// Push records an op that has already been applied. The redo stack is
// always cleared; a no-op is not recorded. The oldest entries are dropped
// past the limit.
func (l *Log) Push(op Op) {
	l.redo = nil
	if op.IsNoop() {
		return
	}

	l.undo = append(l.undo, op)

	if excess := len(l.undo) - l.limit; excess > 0 {
		l.undo = append(l.undo[:0:0], l.undo[excess:]...)
	}
}

// Undo pops the newest op, applies its inverse to target, and moves it to
// the redo stack. The returned op carries SelectionBefore for the owner to
// restore. If applying fails the log is left unchanged.
func (l *Log) Undo(target Target) (Op, error) {
	if len(l.undo) == 0 {
		return Op{}, ErrEmptyHistory
	}

	op := l.undo[len(l.undo)-1]
	if err := op.Inverse().Apply(target); err != nil {
		return Op{}, err
	}

	l.undo = l.undo[:len(l.undo)-1]
	l.redo = append(l.redo, op)
	return op, nil
}

// Redo pops the newest undone op, reapplies it to target, and moves it back
// to the undo stack. The returned op carries SelectionAfter for the owner to
// restore.
func (l *Log) Redo(target Target) (Op, error) {
	if len(l.redo) == 0 {
		return Op{}, ErrEmptyHistory
	}

	op := l.redo[len(l.redo)-1]
	if err := op.Apply(target); err != nil {
		return Op{}, err
	}

	l.redo = l.redo[:len(l.redo)-1]
	l.undo = append(l.undo, op)
	return op, nil
}

// CanUndo reports whether Undo has an entry to replay.
func (l *Log) CanUndo() bool { return len(l.undo) > 0 }

// CanRedo reports whether Redo has an entry to replay.
func (l *Log) CanRedo() bool { return len(l.redo) > 0 }

// UndoCount returns the number of undo entries.
func (l *Log) UndoCount() int { return len(l.undo) }

// RedoCount returns the number of redo entries.
func (l *Log) RedoCount() int { return len(l.redo) }

// Clear drops both stacks.
func (l *Log) Clear() {
	l.undo = nil
	l.redo = nil
}

// State returns the lifecycle state.
func (l *Log) State() State {
	switch {
	case len(l.redo) > 0:
		return StateReverted
	case len(l.undo) > 0:
		return StateRecorded
	default:
		return StateIdle
	}
}
