package viewsync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inkwell/pkg/viewsync"
)

// Blocks at lines 0, 2-4, and 8-9, mirroring "# h\n\np\np\np\n\n\n\nq\nq".
func sampleMap() viewsync.Map {
	return viewsync.NewMap([]viewsync.Entry{
		{FirstLine: 2, LastLine: 4, Block: 1, Rendered: "p\np\np"},
		{FirstLine: 0, LastLine: 0, Block: 0, Rendered: "h"},
		{FirstLine: 8, LastLine: 9, Block: 2, Rendered: "q\nq"},
	})
}

func TestBlockForLine(t *testing.T) {
	t.Parallel()

	m := sampleMap()
	tests := []struct {
		name string
		line int
		want int
	}{
		{"first entry", 0, 0},
		{"gap of one picks next on tie", 1, 1},
		{"inside entry start", 2, 1},
		{"inside entry end", 4, 1},
		{"gap nearer previous", 5, 1},
		{"gap tie picks next", 6, 2},
		{"gap nearer next", 7, 2},
		{"last entry", 9, 2},
		{"after last", 50, 2},
		{"negative", -3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.BlockForLine(tt.line))
		})
	}
}

func TestBlockForLineBeforeFirstEntry(t *testing.T) {
	t.Parallel()

	m := viewsync.NewMap([]viewsync.Entry{{FirstLine: 3, LastLine: 4, Block: 0}})
	assert.Equal(t, 0, m.BlockForLine(0))
	assert.Equal(t, 3, m.LineForBlock(0))
}

func TestEmptyMap(t *testing.T) {
	t.Parallel()

	var m viewsync.Map
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.BlockForLine(10))
	assert.Equal(t, 0, m.LineForBlock(3))
	assert.Equal(t, 0, m.RowOffset(3, 80))
}

func TestLineForBlock(t *testing.T) {
	t.Parallel()

	m := sampleMap()
	assert.Equal(t, 0, m.LineForBlock(0))
	assert.Equal(t, 2, m.LineForBlock(1))
	assert.Equal(t, 8, m.LineForBlock(2))
	assert.Equal(t, 8, m.LineForBlock(9), "past the end clamps to the last block")
}

func TestRoundTripIsStableOnBlockStarts(t *testing.T) {
	t.Parallel()

	m := sampleMap()
	for _, e := range m.Entries() {
		assert.Equal(t, e.Block, m.BlockForLine(m.LineForBlock(e.Block)))
	}
}

func TestSyncStates(t *testing.T) {
	t.Parallel()

	s := viewsync.New()
	assert.Equal(t, viewsync.Unsynced, s.State())

	s.ScrollSource(8)
	assert.Equal(t, 8, s.SourceLine())
	assert.Equal(t, 0, s.PreviewBlock(), "unsynced does not move the preview")

	s.ScrollPreview(1)
	assert.Equal(t, 8, s.SourceLine(), "unsynced does not move the source")

	s.Install(sampleMap())
	assert.Equal(t, viewsync.Mapped, s.State())
	assert.Equal(t, 2, s.PreviewBlock(), "install follows the source pane")

	s.Invalidate()
	assert.Equal(t, viewsync.Stale, s.State())
	s.ScrollSource(3)
	assert.Equal(t, 1, s.PreviewBlock(), "stale keeps using the previous map")

	s.Install(viewsync.NewMap(nil))
	assert.Equal(t, viewsync.Mapped, s.State())
	assert.Equal(t, 0, s.PreviewBlock())
}

func TestInvalidateBeforeInstallStaysUnsynced(t *testing.T) {
	t.Parallel()

	s := viewsync.New()
	s.Invalidate()
	assert.Equal(t, viewsync.Unsynced, s.State())
	assert.Equal(t, "unsynced", s.State().String())
}

func TestScrollPreviewMovesSource(t *testing.T) {
	t.Parallel()

	s := viewsync.New()
	s.Install(sampleMap())

	s.ScrollPreview(2)
	assert.Equal(t, 8, s.SourceLine())

	s.ScrollPreview(99)
	assert.Equal(t, 2, s.PreviewBlock())

	s.ScrollPreview(-1)
	assert.Equal(t, 0, s.PreviewBlock())
	assert.Equal(t, 0, s.SourceLine())
}

func TestRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		text  string
		width int
		want  int
	}{
		{"single short line", "abc", 10, 1},
		{"empty", "", 10, 1},
		{"exact fit", "abcde", 5, 1},
		{"wraps", "abcdefghijk", 5, 3},
		{"wide runes count double", "日本語", 4, 2},
		{"multiple lines", "a\nb\nc", 10, 3},
		{"no wrapping", "abcdefghijk", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, viewsync.Rows(tt.text, tt.width))
		})
	}
}

func TestPreviewRow(t *testing.T) {
	t.Parallel()

	s := viewsync.New()
	s.Install(sampleMap())
	require.Equal(t, 0, s.PreviewRow(80))

	s.ScrollPreview(2)
	// "h" (1 row) + gap + "p\np\np" (3 rows) + gap.
	assert.Equal(t, 6, s.PreviewRow(80))
}
