package fsutil

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
)

// FileIO reads and writes whole documents. Writes are atomic and keep the
// existing file mode. It remembers the state of every path it touched so
// Modified can tell when another program changed the file.
//
// FileIO is safe for concurrent use; documents in a workspace share one.
type FileIO struct {
	// Backups makes Write copy the previous content to a sidecar first.
	Backups bool

	mu    sync.Mutex
	known map[string]*FileInfo
}

// NewFileIO creates a FileIO.
func NewFileIO(backups bool) *FileIO {
	return &FileIO{Backups: backups, known: make(map[string]*FileInfo)}
}

// Open reads the document at path.
func (f *FileIO) Open(ctx context.Context, path string) ([]byte, error) {
	content, info, err := ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	f.remember(info)
	return content, nil
}

// Write replaces the document at path with content.
func (f *FileIO) Write(ctx context.Context, path string, content []byte) error {
	var mode os.FileMode

	stat, err := os.Stat(path)
	switch {
	case err == nil:
		if stat.IsDir() {
			return fmt.Errorf("%w: %s", ErrIsDirectory, path)
		}
		mode = stat.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return classify(path, err)
	}

	if f.Backups && stat != nil {
		if _, err := CreateBackup(ctx, path); err != nil {
			return err
		}
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return err
	}

	if info, err := Stat(path, content); err == nil {
		f.remember(info)
	}
	return nil
}

// Modified reports whether path changed on disk since this FileIO last read
// or wrote it. Paths it has never seen report false.
func (f *FileIO) Modified(ctx context.Context, path string) (bool, error) {
	f.mu.Lock()
	info := f.known[path]
	f.mu.Unlock()

	if info == nil {
		return false, nil
	}
	return CheckModified(ctx, info)
}

func (f *FileIO) remember(info *FileInfo) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.known == nil {
		f.known = make(map[string]*FileInfo)
	}
	f.known[info.Path] = info
}
