package document

import (
	"context"
	"errors"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/inkwell/internal/logging"
	"github.com/yaklabco/inkwell/pkg/history"
	"github.com/yaklabco/inkwell/pkg/rope"
)

var (
	// ErrNoPath is returned by Save when the document has never been
	// associated with a file.
	ErrNoPath = errors.New("document has no file path")

	// ErrNoFileIO is returned when a file operation is attempted on a
	// document built without a FileIO.
	ErrNoFileIO = errors.New("document has no file I/O")
)

// UntitledName is the title of a document without a path.
const UntitledName = "Untitled"

// FileIO moves document bytes to and from storage. fsutil.FileIO is the
// filesystem implementation.
type FileIO interface {
	Open(ctx context.Context, path string) ([]byte, error)
	Write(ctx context.Context, path string, content []byte) error
}

// Options configures a new document.
type Options struct {
	// IO performs file reads and writes.
	IO FileIO

	// HistoryLimit bounds the undo stack; zero selects history.DefaultLimit.
	HistoryLimit int

	// Indent is the text a Tab intent inserts. Empty means a tab character.
	Indent string

	Logger *log.Logger
}

// Document is the editable state of one file.
type Document struct {
	text rope.Rope
	log  *history.Log

	cursor rope.Position
	// anchor is the fixed end of the selection; it equals cursor when
	// nothing is selected.
	anchor rope.Position
	// preferredCol is the column vertical moves aim for; -1 when unset.
	preferredCol int
	scroll       int

	revision      uint64
	savedRevision uint64
	savedText     string

	path   string
	io     FileIO
	indent string
	logger *log.Logger
}

// New creates an empty untitled document.
func New(opts Options) *Document {
	return NewFromText("", opts)
}

// NewFromText creates an untitled document holding text. The text counts as
// saved, so the document starts clean.
func NewFromText(text string, opts Options) *Document {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	indent := opts.Indent
	if indent == "" {
		indent = "\t"
	}

	r := rope.FromString(text)

	return &Document{
		text:         r,
		log:          history.NewLog(opts.HistoryLimit),
		preferredCol: -1,
		savedText:    r.String(),
		io:           opts.IO,
		indent:       indent,
		logger:       logger,
	}
}

// Open reads path through opts.IO and returns a clean document for it.
func Open(ctx context.Context, path string, opts Options) (*Document, error) {
	if opts.IO == nil {
		return nil, ErrNoFileIO
	}

	content, err := opts.IO.Open(ctx, path)
	if err != nil {
		return nil, err
	}

	doc := NewFromText(string(content), opts)
	doc.path = path
	doc.logger.Debug("opened document", logging.FieldPath, path, logging.FieldLines, doc.text.LineCount())
	return doc, nil
}

// SetIndent changes the text a Tab intent inserts. Empty means a tab
// character.
func (d *Document) SetIndent(indent string) {
	if indent == "" {
		indent = "\t"
	}
	d.indent = indent
}

// Text returns the whole document text.
func (d *Document) Text() string { return d.text.String() }

// Snapshot returns an immutable copy of the text store.
func (d *Document) Snapshot() rope.Rope { return d.text }

// LineCount returns the number of lines.
func (d *Document) LineCount() int { return d.text.LineCount() }

// Line returns the text of line without its newline.
func (d *Document) Line(line int) string { return d.text.Line(line) }

// Revision returns the current revision.
func (d *Document) Revision() uint64 { return d.revision }

// Dirty reports whether the document differs from what was last saved.
func (d *Document) Dirty() bool { return d.revision != d.savedRevision }

// Path returns the associated file path, or "" for an untitled document.
func (d *Document) Path() string { return d.path }

// Title returns the file name, or UntitledName.
func (d *Document) Title() string {
	if d.path == "" {
		return UntitledName
	}
	return filepath.Base(d.path)
}

// Cursor returns the cursor position.
func (d *Document) Cursor() rope.Position { return d.cursor }

// Selection returns the selection. Its head is the cursor.
func (d *Document) Selection() rope.Selection {
	return rope.Selection{Anchor: d.anchor, Head: d.cursor}
}

// SelectedText returns the selected text, or "" when the selection is empty.
func (d *Document) SelectedText() string {
	sel := d.Selection()
	return d.text.Slice(d.text.Offset(sel.Start()), d.text.Offset(sel.End()))
}

// Scroll returns the first visible source line.
func (d *Document) Scroll() int { return d.scroll }

// CanUndo reports whether Undo would change the document.
func (d *Document) CanUndo() bool { return d.log.CanUndo() }

// CanRedo reports whether Redo would change the document.
func (d *Document) CanRedo() bool { return d.log.CanRedo() }

// History exposes the lifecycle state of the undo log.
func (d *Document) History() history.State { return d.log.State() }

// Status is what a status bar shows.
type Status struct {
	Cursor    rope.Position
	Selection rope.Selection
	Scroll    int
	Lines     int
	Dirty     bool
	Revision  uint64
	Path      string
	Title     string
}

// Status returns the current status.
func (d *Document) Status() Status {
	return Status{
		Cursor:    d.cursor,
		Selection: d.Selection(),
		Scroll:    d.scroll,
		Lines:     d.text.LineCount(),
		Dirty:     d.Dirty(),
		Revision:  d.revision,
		Path:      d.path,
		Title:     d.Title(),
	}
}

func (d *Document) bump() {
	d.revision++
}
