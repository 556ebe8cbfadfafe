// Package document holds the editable state of one open Markdown file: its
// text, undo history, cursor, scroll offset, and revision.
//
// Every committed edit and every undo or redo bumps the revision. Derived
// data such as the parse cache compares revisions to decide whether it is
// stale. A document is dirty exactly when its revision differs from the
// revision last written to disk, so undoing back to the saved text still
// leaves it dirty.
//
// Out-of-range edits and cursor moves are clamped and never fail. Only file
// I/O and saving without a path return errors.
//
// A Document is not safe for concurrent use.
package document
