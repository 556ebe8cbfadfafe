package fsutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultFileMode is the mode of files that did not exist before.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content through a temp file in the same
// directory followed by a rename, so readers see either the old bytes or the
// new ones. A zero mode selects DefaultFileMode. On failure the temp file is
// removed and the target is untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write atomic: %w", err)
	}

	if mode == 0 {
		mode = DefaultFileMode
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return classify(path, err)
	}
	tmpPath := tmp.Name()

	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(content); err != nil {
		return classify(tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		return classify(tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return classify(tmpPath, err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		return classify(tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return classify(path, err)
	}

	committed = true
	return nil
}
