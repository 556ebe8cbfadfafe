package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/inkwell/pkg/fsutil"
)

func TestCreateAndRestoreBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "doc.md")

	created, err := fsutil.CreateBackup(ctx, path)
	if err != nil {
		t.Fatalf("CreateBackup() on missing file error = %v", err)
	}
	if created {
		t.Error("no backup expected for a file that does not exist")
	}

	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	created, err = fsutil.CreateBackup(ctx, path)
	if err != nil || !created {
		t.Fatalf("CreateBackup() = %v, %v; want true, nil", created, err)
	}
	if !fsutil.BackupExists(path) {
		t.Fatal("backup should exist")
	}

	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	restored, err := fsutil.RestoreBackup(ctx, path)
	if err != nil || !restored {
		t.Fatalf("RestoreBackup() = %v, %v; want true, nil", restored, err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(got) != "v1" {
		t.Errorf("restored content = %q, want %q", got, "v1")
	}
}

func TestRestoreBackup_None(t *testing.T) {
	t.Parallel()

	restored, err := fsutil.RestoreBackup(context.Background(), filepath.Join(t.TempDir(), "doc.md"))
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if restored {
		t.Error("nothing should be restored without a backup")
	}
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	if got := fsutil.BackupPath("/tmp/a.md"); got != "/tmp/a.md"+fsutil.BackupSuffix {
		t.Errorf("BackupPath() = %q", got)
	}
}
