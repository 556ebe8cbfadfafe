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

func TestFileIO_OpenWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.md")
	io := fsutil.NewFileIO(false)

	if _, err := io.Open(ctx, path); !errors.Is(err, fsutil.ErrNotFound) {
		t.Fatalf("Open() error = %v, want ErrNotFound", err)
	}

	if err := io.Write(ctx, path, []byte("first")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := io.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if string(got) != "first" {
		t.Errorf("content = %q, want %q", got, "first")
	}
	if fsutil.BackupExists(path) {
		t.Error("no backup expected when backups are off")
	}
}

func TestFileIO_KeepsModeAndBacksUp(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("old"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	io := fsutil.NewFileIO(true)
	if err := io.Write(ctx, path, []byte("new")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if stat.Mode().Perm() != 0o600 {
		t.Errorf("mode = %o, want %o", stat.Mode().Perm(), 0o600)
	}

	backup, err := os.ReadFile(fsutil.BackupPath(path))
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(backup) != "old" {
		t.Errorf("backup = %q, want %q", backup, "old")
	}
}

func TestFileIO_Modified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.md")
	io := fsutil.NewFileIO(false)

	if modified, err := io.Modified(ctx, path); err != nil || modified {
		t.Fatalf("Modified() on unknown path = %v, %v", modified, err)
	}

	if err := io.Write(ctx, path, []byte("mine")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if modified, err := io.Modified(ctx, path); err != nil || modified {
		t.Fatalf("Modified() after own write = %v, %v", modified, err)
	}

	if err := os.WriteFile(path, []byte("someone else"), 0o644); err != nil {
		t.Fatalf("external write: %v", err)
	}
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	modified, err := io.Modified(ctx, path)
	if err != nil {
		t.Fatalf("Modified() error = %v", err)
	}
	if !modified {
		t.Error("external write should be detected")
	}
}

func TestFileIO_WriteDirectory(t *testing.T) {
	t.Parallel()

	io := fsutil.NewFileIO(false)
	if err := io.Write(context.Background(), t.TempDir(), []byte("x")); !errors.Is(err, fsutil.ErrIsDirectory) {
		t.Fatalf("Write() error = %v, want ErrIsDirectory", err)
	}
}
