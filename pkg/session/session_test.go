package session_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inkwell/internal/logging"
	"github.com/yaklabco/inkwell/pkg/config"
	"github.com/yaklabco/inkwell/pkg/document"
	"github.com/yaklabco/inkwell/pkg/fsutil"
	"github.com/yaklabco/inkwell/pkg/session"
	"github.com/yaklabco/inkwell/pkg/viewsync"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newSession(t *testing.T, text string) (*session.Session, *clock) {
	t.Helper()

	clk := &clock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	settings := config.NewSettings()
	doc := document.NewFromText(text, session.DocumentOptions(settings, nil, logging.Discard()))
	s := session.New(doc, session.Options{
		Settings: settings,
		Logger:   logging.Discard(),
		Quiet:    100 * time.Millisecond,
		Now:      clk.now,
	})
	return s, clk
}

func typeText(s *session.Session, text string) {
	for _, r := range text {
		s.Dispatch(document.Intent{Kind: document.IntentInsertChar, Char: r})
	}
}

func TestRenderCoalescesEdits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newSession(t, "# Title\n")
	assert.True(t, s.Pending())
	assert.Equal(t, config.ViewSplit, s.Mode())

	first := s.Render(ctx)
	require.NotNil(t, first)
	assert.False(t, s.Pending())
	assert.Equal(t, 1, s.Cache().Misses())

	assert.Same(t, first, s.Render(ctx), "no edit, no new frame")
	assert.Equal(t, 1, s.Cache().Misses())

	s.Dispatch(document.Intent{Kind: document.IntentMoveCursor, Direction: document.Down})
	assert.False(t, s.Pending(), "cursor motion is not an edit")

	typeText(s, "abc")
	assert.True(t, s.Pending())
	assert.Equal(t, viewsync.Stale, s.Sync().State())

	frame := s.Render(ctx)
	require.NotNil(t, frame)
	assert.Equal(t, s.Document().Revision(), frame.Revision)
	assert.Equal(t, 2, s.Cache().Misses(), "three keystrokes, one parse")
	assert.Equal(t, viewsync.Mapped, s.Sync().State())
	assert.Equal(t, []string{"# Title", "abc"}, frame.Result.Texts())
}

func TestInstallDiscardsStaleFrame(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newSession(t, "one\n")

	frame := s.Prepare(ctx)
	require.NotNil(t, frame)

	typeText(s, "x")
	assert.False(t, s.Install(frame))
	assert.Nil(t, s.Frame())
	assert.True(t, s.Pending())

	fresh := s.Prepare(ctx)
	assert.True(t, s.Install(fresh))
	assert.Same(t, fresh, s.Frame())
	assert.False(t, s.Install(nil))
}

func TestRawModeSkipsPipeline(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newSession(t, "text\n")
	s.SetMode(config.ViewRaw)

	assert.Nil(t, s.Render(ctx))
	assert.Nil(t, s.Prepare(ctx))
	assert.False(t, s.Tick(ctx))
	assert.Equal(t, 0, s.Cache().Misses())

	s.SetMode(config.ViewRendered)
	require.NotNil(t, s.Render(ctx))
	assert.Equal(t, 1, s.Cache().Misses())

	s.SetMode("bogus")
	assert.Equal(t, config.ViewSplit, s.Mode())
}

func TestTickWaitsForQuietPeriod(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, clk := newSession(t, "a\n")

	assert.True(t, s.Tick(ctx), "initial render does not wait")
	assert.False(t, s.Tick(ctx), "nothing pending")

	typeText(s, "b")
	clk.advance(50 * time.Millisecond)
	assert.False(t, s.Tick(ctx))

	typeText(s, "c")
	clk.advance(99 * time.Millisecond)
	assert.False(t, s.Tick(ctx), "the second keystroke restarted the quiet period")

	clk.advance(time.Millisecond)
	assert.True(t, s.Tick(ctx))
	assert.False(t, s.Pending())
}

func TestScrollSync(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newSession(t, "# A\n\npara\n\n\n\n# B\n")

	s.ScrollSource(6)
	assert.Equal(t, 0, s.Sync().PreviewBlock(), "unsynced preview stays put")

	require.NotNil(t, s.Render(ctx))
	assert.Equal(t, 2, s.Sync().PreviewBlock())

	s.ScrollPreview(1)
	assert.Equal(t, 2, s.Document().Scroll())
	assert.Equal(t, 2, s.Sync().SourceLine())
}

func TestApplySettingsRerenders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newSession(t, "$x^2$ :rocket:\n")

	frame := s.Render(ctx)
	require.NotNil(t, frame)
	assert.Equal(t, []string{"x² 🚀"}, frame.Result.Texts())

	settings := config.NewSettings()
	settings.Markdown.Math = config.MathSource
	settings.Markdown.RenderEmoji = false
	settings.Editor.UseSpaces = false
	s.ApplySettings(settings)
	assert.True(t, s.Pending())

	frame = s.Render(ctx)
	require.NotNil(t, frame)
	assert.Equal(t, []string{"$x^2$ :rocket:"}, frame.Result.Texts())
	assert.Equal(t, 1, s.Cache().Misses(), "same flavor reuses the cached parse")

	s.Document().SetCursor(0, 0)
	s.Dispatch(document.Intent{Kind: document.IntentTab})
	assert.Equal(t, "\t$x^2$ :rocket:\n", s.Document().Text())
}

func TestOpenAndSave(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("hello\n"), 0o600))

	settings := config.NewSettings()
	s, err := session.Open(ctx, path, fsutil.NewFileIO(false), session.Options{Settings: settings, Logger: logging.Discard()})
	require.NoError(t, err)
	assert.Equal(t, "notes.md", s.Document().Title())

	s.Document().SetCursor(0, 5)
	typeText(s, "!")
	assert.True(t, s.Document().Dirty())

	require.NoError(t, s.Save(ctx))
	assert.False(t, s.Document().Dirty())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello!\n", string(got))

	_, err = session.Open(ctx, filepath.Join(t.TempDir(), "missing.md"), fsutil.NewFileIO(false), session.Options{Settings: settings})
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}

func TestDebouncer(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	d := session.NewDebouncer(time.Second)
	assert.False(t, d.Ready(start))

	d.Touch(start)
	assert.True(t, d.Armed())
	assert.False(t, d.Ready(start.Add(999*time.Millisecond)))
	assert.True(t, d.Ready(start.Add(time.Second)))

	d.Clear()
	assert.False(t, d.Ready(start.Add(time.Hour)))
}
