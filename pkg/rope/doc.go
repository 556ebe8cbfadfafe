// Package rope provides the text store of a document: a balanced rope of
// Unicode scalar values with a line index kept in the tree.
//
// Every node records the number of runes and newlines beneath it, so
// offset and line lookups descend a single path and an edit only re-indexes
// the nodes on the path it touches. Insert and Delete split and join
// subtrees; both are logarithmic in the document size.
//
// Offsets are rune offsets, lines and columns are 0-indexed, and a newline
// ('\n') belongs to the line it terminates. A store always has at least one
// line: the line count is the newline count plus one.
//
// Nodes are immutable once built. A Rope value is a handle to a root, so
// copying a Rope is a cheap snapshot that later edits to the original do
// not affect. A Rope is not safe for concurrent mutation.
package rope
