// Package mdast is the parsed structure of a Markdown document: the text it
// was parsed from, a line index over that text, and a tree of block and
// inline nodes carrying their source byte ranges and line spans.
//
// A FileSnapshot is built once per parse and never modified afterwards, so
// a cached snapshot can be handed to any number of readers.
package mdast

// FileSnapshot is an immutable view of a document at one revision.
type FileSnapshot struct {
	// Path is the file path (may be empty for an untitled document).
	Path string

	// Content is the full document bytes.
	Content []byte

	// Lines contains metadata for each line.
	Lines []LineInfo

	// Root is the AST root node (Document).
	Root *Node

	// Degraded is set when the parser could not build a tree and Root holds
	// a single literal node covering the whole text.
	Degraded bool
}

// LineInfo holds metadata for a single line.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a snapshot shell with the line index built but no
// tree; parsers fill in Root.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// Literal returns a snapshot whose tree is one NodeRaw block spanning the
// whole content. It is the fallback when parsing fails.
func Literal(path string, content []byte) *FileSnapshot {
	snap := NewFileSnapshot(path, content)
	snap.Degraded = true

	doc := NewDocument()
	raw := NewNode(NodeRaw)
	raw.Range = SourceRange{StartOffset: 0, EndOffset: len(content)}
	raw.Span = LineSpan{First: 0, Last: max(snap.LineCount()-1, 0)}
	AppendChild(doc, raw)

	doc.Range = raw.Range
	doc.Span = raw.Span
	snap.Root = doc
	SetFile(doc, snap)

	return snap
}

// Blocks returns the top-level blocks of the document in source order.
func (f *FileSnapshot) Blocks() []*Node {
	if f == nil || f.Root == nil {
		return nil
	}
	return f.Root.Children()
}
