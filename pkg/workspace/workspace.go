// Package workspace holds the documents an editor has open. Each document
// is an independent session; nothing is shared between them.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yaklabco/inkwell/internal/logging"
	"github.com/yaklabco/inkwell/pkg/config"
	"github.com/yaklabco/inkwell/pkg/document"
	"github.com/yaklabco/inkwell/pkg/session"
)

var (
	// ErrUnknownDocument is returned for an id that is not open.
	ErrUnknownDocument = errors.New("no such document")

	// ErrUnsavedChanges is returned when closing a dirty document without
	// force.
	ErrUnsavedChanges = errors.New("document has unsaved changes")
)

// ID identifies an open document.
type ID = uuid.UUID

// Workspace is the set of open documents, in the order they were opened.
// It is not safe for concurrent use.
type Workspace struct {
	provider config.Provider
	io       document.FileIO
	logger   *log.Logger

	order    []ID
	sessions map[ID]*session.Session
}

// New creates an empty workspace. Documents read settings from provider
// when they are opened.
func New(provider config.Provider, io document.FileIO, logger *log.Logger) *Workspace {
	if logger == nil {
		logger = logging.Default()
	}
	return &Workspace{
		provider: provider,
		io:       io,
		logger:   logger,
		sessions: make(map[ID]*session.Session),
	}
}

// Open reads path into a new document. Opening the same path twice yields
// two independent documents.
func (w *Workspace) Open(ctx context.Context, path string) (ID, *session.Session, error) {
	s, err := session.Open(ctx, path, w.io, w.options())
	if err != nil {
		return uuid.Nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	return w.add(s), s, nil
}

// NewDocument adds an untitled document holding text.
func (w *Workspace) NewDocument(text string) (ID, *session.Session) {
	opts := w.options()
	doc := document.NewFromText(text, session.DocumentOptions(opts.Settings, w.io, w.logger))
	s := session.New(doc, opts)
	return w.add(s), s
}

// Get returns an open document.
func (w *Workspace) Get(id ID) (*session.Session, error) {
	s, ok := w.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, id)
	}
	return s, nil
}

// Close removes a document. A dirty document is kept and ErrUnsavedChanges
// returned unless force is set.
func (w *Workspace) Close(id ID, force bool) error {
	s, err := w.Get(id)
	if err != nil {
		return err
	}
	if s.Document().Dirty() && !force {
		return fmt.Errorf("%w: %s", ErrUnsavedChanges, s.Document().Title())
	}

	delete(w.sessions, id)
	w.order = slices.DeleteFunc(w.order, func(other ID) bool { return other == id })
	w.logger.Debug("closed document", logging.FieldDocument, s.Document().Title())
	return nil
}

// List returns the open document ids in open order.
func (w *Workspace) List() []ID {
	return slices.Clone(w.order)
}

// Len returns the number of open documents.
func (w *Workspace) Len() int { return len(w.order) }

// Dirty returns the ids of documents with unsaved changes.
func (w *Workspace) Dirty() []ID {
	var ids []ID
	for _, id := range w.order {
		if w.sessions[id].Document().Dirty() {
			ids = append(ids, id)
		}
	}
	return ids
}

// Reload re-reads settings and applies them to every open document.
func (w *Workspace) Reload(ctx context.Context) error {
	if err := w.provider.Reload(ctx); err != nil {
		return fmt.Errorf("reload settings: %w", err)
	}

	settings := w.provider.Settings()
	for _, id := range w.order {
		w.sessions[id].ApplySettings(settings)
	}
	return nil
}

func (w *Workspace) add(s *session.Session) ID {
	id := uuid.New()
	w.sessions[id] = s
	w.order = append(w.order, id)
	w.logger.Debug("opened document", logging.FieldDocument, s.Document().Title())
	return id
}

func (w *Workspace) options() session.Options {
	return session.Options{Settings: w.provider.Settings(), Logger: w.logger}
}
