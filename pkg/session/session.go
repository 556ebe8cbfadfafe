// Package session ties one document to its parse cache, preview pipeline,
// and scroll sync, and decides when the preview is recomputed.
//
// Edits only mark the preview pending. Render does the work: one parse and
// one pipeline pass for the current revision, however many edits came
// before. Prepare and Install split Render for callers that compute frames
// away from the edit loop; Install drops a frame whose revision is no
// longer current, so an out-of-date preview is never shown as fresh.
//
// A Session is not safe for concurrent use.
package session

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/inkwell/internal/logging"
	"github.com/yaklabco/inkwell/pkg/config"
	"github.com/yaklabco/inkwell/pkg/document"
	"github.com/yaklabco/inkwell/pkg/extension"
	"github.com/yaklabco/inkwell/pkg/parsecache"
	"github.com/yaklabco/inkwell/pkg/parser/goldmark"
	"github.com/yaklabco/inkwell/pkg/viewsync"
)

// DefaultQuiet is the idle time after an edit before Tick renders.
const DefaultQuiet = 150 * time.Millisecond

// Frame is the preview computed for one revision.
type Frame struct {
	Revision uint64
	Entry    *parsecache.Entry
	Result   *extension.Result
}

// Options configures a Session.
type Options struct {
	Settings config.Settings
	Logger   *log.Logger

	// Quiet overrides DefaultQuiet when positive.
	Quiet time.Duration

	// Now overrides time.Now for the debouncer.
	Now func() time.Time
}

// Session is an open document with its derived preview state.
type Session struct {
	doc      *document.Document
	settings config.Settings
	cache    *parsecache.Cache
	pipeline *extension.Pipeline
	sync     *viewsync.Sync
	mode     config.ViewMode

	frame    *Frame
	pending  bool
	debounce *Debouncer
	now      func() time.Time
	logger   *log.Logger
}

// DocumentOptions returns the document options implied by settings.
func DocumentOptions(settings config.Settings, io document.FileIO, logger *log.Logger) document.Options {
	return document.Options{
		IO:           io,
		HistoryLimit: settings.Editor.HistoryLimit,
		Indent:       settings.Indent(),
		Logger:       logger,
	}
}

// New wraps doc in a Session.
func New(doc *document.Document, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}
	quiet := opts.Quiet
	if quiet <= 0 {
		quiet = DefaultQuiet
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	s := &Session{
		doc:      doc,
		sync:     viewsync.New(),
		pending:  true,
		debounce: NewDebouncer(quiet),
		now:      now,
		logger:   logger,
	}
	s.configure(opts.Settings)
	s.mode = modeOrDefault(opts.Settings.Editor.DefaultView)

	return s
}

// Open reads path and returns a Session for it.
func Open(ctx context.Context, path string, io document.FileIO, opts Options) (*Session, error) {
	doc, err := document.Open(ctx, path, DocumentOptions(opts.Settings, io, opts.Logger))
	if err != nil {
		return nil, err
	}
	return New(doc, opts), nil
}

// Document returns the underlying document.
func (s *Session) Document() *document.Document { return s.doc }

// Sync returns the scroll sync state.
func (s *Session) Sync() *viewsync.Sync { return s.sync }

// Cache returns the parse cache.
func (s *Session) Cache() *parsecache.Cache { return s.cache }

// Settings returns the settings in effect.
func (s *Session) Settings() config.Settings { return s.settings }

// Mode returns the pane layout.
func (s *Session) Mode() config.ViewMode { return s.mode }

// SetMode changes the pane layout. Leaving raw mode does not render; the
// next Render catches up.
func (s *Session) SetMode(mode config.ViewMode) {
	s.mode = modeOrDefault(mode)
}

// Pending reports whether the preview is behind the document.
func (s *Session) Pending() bool {
	return s.pending || s.frame == nil || s.frame.Revision != s.doc.Revision()
}

// Frame returns the last installed frame, which may be stale. It is nil
// before the first render.
func (s *Session) Frame() *Frame { return s.frame }

// Dispatch applies an input intent to the document. Edits mark the preview
// pending; every intent re-aligns the preview with the source scroll.
func (s *Session) Dispatch(in document.Intent) document.Result {
	before := s.doc.Revision()
	res := s.doc.Dispatch(in)

	if s.doc.Revision() != before {
		s.markPending()
	}
	s.sync.ScrollSource(s.doc.Scroll())

	return res
}

// ScrollSource scrolls the source pane and follows with the preview.
func (s *Session) ScrollSource(line int) {
	s.doc.SetScroll(line)
	s.sync.ScrollSource(s.doc.Scroll())
}

// ScrollPreview scrolls the preview pane and follows with the source.
func (s *Session) ScrollPreview(block int) {
	s.sync.ScrollPreview(block)
	if s.sync.State() != viewsync.Unsynced {
		s.doc.SetScroll(s.sync.SourceLine())
	}
}

// Prepare computes a frame for the current revision without installing
// it. It returns nil in raw mode, where there is no preview.
func (s *Session) Prepare(ctx context.Context) *Frame {
	if s.mode == config.ViewRaw {
		return nil
	}

	entry := s.cache.Get(ctx)
	return &Frame{
		Revision: entry.Revision,
		Entry:    entry,
		Result:   s.pipeline.Run(entry.Snapshot),
	}
}

// Install makes frame the current preview. A nil frame, or one computed
// for a revision other than the current one, is discarded and Install
// returns false.
func (s *Session) Install(frame *Frame) bool {
	if frame == nil {
		return false
	}
	if frame.Revision != s.doc.Revision() {
		s.logger.Debug("discarding stale preview",
			logging.FieldDocument, s.doc.Title(),
			logging.FieldRevision, frame.Revision,
		)
		return false
	}

	s.frame = frame
	s.pending = false
	s.debounce.Clear()
	s.sync.ScrollSource(s.doc.Scroll())
	s.sync.Install(frame.Result.Map)
	return true
}

// Render brings the preview up to date and returns it. It runs at most one
// pipeline pass and none when nothing changed. In raw mode it returns nil.
func (s *Session) Render(ctx context.Context) *Frame {
	if s.mode == config.ViewRaw {
		return nil
	}
	if !s.Pending() {
		return s.frame
	}

	s.Install(s.Prepare(ctx))
	return s.frame
}

// Tick renders when the preview is pending and no edit happened for the
// quiet period. It reports whether a render ran.
func (s *Session) Tick(ctx context.Context) bool {
	if s.mode == config.ViewRaw || !s.Pending() {
		return false
	}
	if s.debounce.Armed() && !s.debounce.Ready(s.now()) {
		return false
	}

	s.Render(ctx)
	return true
}

// Save writes the document through its FileIO.
func (s *Session) Save(ctx context.Context) error {
	return s.doc.Save(ctx)
}

// ApplySettings switches to new settings. The preview is recomputed on the
// next Render even though the text did not change.
func (s *Session) ApplySettings(settings config.Settings) {
	s.configure(settings)
	s.doc.SetIndent(settings.Indent())
	s.pending = true
	s.sync.Invalidate()
}

func (s *Session) configure(settings config.Settings) {
	flavorChanged := s.cache == nil || settings.Markdown.Flavor != s.settings.Markdown.Flavor
	s.settings = settings

	if flavorChanged {
		parser := goldmark.New(string(settings.Markdown.Flavor))
		s.cache = parsecache.New(s.doc, parser, s.logger)
	}
	s.pipeline = extension.New(extension.OptionsFrom(settings), s.logger)
}

func (s *Session) markPending() {
	s.pending = true
	s.debounce.Touch(s.now())
	s.sync.Invalidate()
}

func modeOrDefault(mode config.ViewMode) config.ViewMode {
	switch mode {
	case config.ViewRaw, config.ViewRendered, config.ViewSplit:
		return mode
	default:
		return config.ViewSplit
	}
}
