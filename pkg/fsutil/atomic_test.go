package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/inkwell/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing []byte
		content  []byte
		mode     os.FileMode
		wantMode os.FileMode
	}{
		{name: "new file", content: []byte("hello\n"), mode: 0o600, wantMode: 0o600},
		{name: "overwrite", existing: []byte("old"), content: []byte("new"), mode: 0o644, wantMode: 0o644},
		{name: "default mode", content: []byte("x"), wantMode: fsutil.DefaultFileMode},
		{name: "empty content", existing: []byte("old"), content: []byte{}, mode: 0o644, wantMode: 0o644},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "doc.md")
			if testCase.existing != nil {
				if err := os.WriteFile(path, testCase.existing, 0o644); err != nil {
					t.Fatalf("setup: %v", err)
				}
			}

			if err := fsutil.WriteAtomic(context.Background(), path, testCase.content, testCase.mode); err != nil {
				t.Fatalf("WriteAtomic() error = %v", err)
			}

			got, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("read back: %v", err)
			}
			if string(got) != string(testCase.content) {
				t.Errorf("content = %q, want %q", got, testCase.content)
			}

			stat, err := os.Stat(path)
			if err != nil {
				t.Fatalf("stat: %v", err)
			}
			if stat.Mode().Perm() != testCase.wantMode {
				t.Errorf("mode = %o, want %o", stat.Mode().Perm(), testCase.wantMode)
			}
		})
	}
}

func TestWriteAtomic_Failures(t *testing.T) {
	t.Parallel()

	t.Run("missing parent leaves no temp files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		err := fsutil.WriteAtomic(context.Background(), filepath.Join(dir, "missing", "doc.md"), []byte("x"), 0)
		if !errors.Is(err, fsutil.ErrNotFound) {
			t.Fatalf("error = %v, want ErrNotFound", err)
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatalf("readdir: %v", err)
		}
		for _, entry := range entries {
			if strings.Contains(entry.Name(), ".tmp.") {
				t.Errorf("temp file left behind: %s", entry.Name())
			}
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		path := filepath.Join(t.TempDir(), "doc.md")
		if err := fsutil.WriteAtomic(ctx, path, []byte("x"), 0); err == nil {
			t.Fatal("expected error for cancelled context")
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("file should not have been created")
		}
	})
}

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("---\ntitle: x\n---\nbody\n"))
	f.Add([]byte("\x00\xff\xfe"))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "doc.md")
		if err := fsutil.WriteAtomic(context.Background(), path, content, 0o644); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if string(got) != string(content) {
			t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(content))
		}
	})
}
