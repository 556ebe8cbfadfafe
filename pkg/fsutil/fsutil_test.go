package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/yaklabco/inkwell/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content and metadata", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "note.md")
		content := []byte("# Title\n")
		if err := os.WriteFile(path, content, 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		got, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile() error = %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("content = %q, want %q", got, content)
		}
		if info.Size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", info.Size, len(content))
		}
		if info.Mode.Perm() != 0o600 {
			t.Errorf("Mode = %o, want %o", info.Mode.Perm(), 0o600)
		}
	})

	t.Run("missing file is ErrNotFound", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "absent.md"))
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory is ErrIsDirectory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir())
		if !errors.Is(err, fsutil.ErrIsDirectory) {
			t.Fatalf("error = %v, want ErrIsDirectory", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, _, err := fsutil.ReadFile(ctx, "any.md"); !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (string, *fsutil.FileInfo) {
		t.Helper()

		path := filepath.Join(t.TempDir(), "note.md")
		if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
		_, info, err := fsutil.ReadFile(context.Background(), path)
		if err != nil {
			t.Fatalf("ReadFile: %v", err)
		}
		return path, info
	}

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		_, info := setup(t)
		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if modified {
			t.Error("expected unmodified")
		}
	})

	t.Run("content changed with same size and time", func(t *testing.T) {
		t.Parallel()

		path, info := setup(t)
		if err := os.WriteFile(path, []byte("HELLO"), 0o644); err != nil {
			t.Fatalf("rewrite: %v", err)
		}
		if err := os.Chtimes(path, info.ModTime, info.ModTime); err != nil {
			t.Fatalf("chtimes: %v", err)
		}

		quick, err := fsutil.CheckModifiedQuick(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModifiedQuick() error = %v", err)
		}
		if quick {
			t.Error("quick check should not see a same-size same-time change")
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if !modified {
			t.Error("hash check should see the change")
		}
	})

	t.Run("mod time changed", func(t *testing.T) {
		t.Parallel()

		path, info := setup(t)
		later := info.ModTime.Add(time.Hour)
		if err := os.Chtimes(path, later, later); err != nil {
			t.Fatalf("chtimes: %v", err)
		}

		modified, err := fsutil.CheckModifiedQuick(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModifiedQuick() error = %v", err)
		}
		if !modified {
			t.Error("expected modified")
		}
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path, info := setup(t)
		if err := os.Remove(path); err != nil {
			t.Fatalf("remove: %v", err)
		}

		modified, err := fsutil.CheckModified(context.Background(), info)
		if err != nil {
			t.Fatalf("CheckModified() error = %v", err)
		}
		if !modified {
			t.Error("deleted file should count as modified")
		}
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		if _, err := fsutil.CheckModified(context.Background(), nil); !errors.Is(err, fsutil.ErrNilFileInfo) {
			t.Fatalf("error = %v, want ErrNilFileInfo", err)
		}
	})
}
