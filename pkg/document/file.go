package document

import (
	"context"
	"fmt"

	"github.com/yaklabco/inkwell/internal/logging"
	"github.com/yaklabco/inkwell/pkg/diff"
)

// modChecker is implemented by FileIO values that can tell whether a file
// changed on disk since they last touched it.
type modChecker interface {
	Modified(ctx context.Context, path string) (bool, error)
}

// Save writes the text to the associated path. Only a successful write
// marks the document clean; on failure it stays dirty and the error is
// returned. Save never retries.
func (d *Document) Save(ctx context.Context) error {
	if d.path == "" {
		return ErrNoPath
	}
	return d.write(ctx, d.path)
}

// SaveAs writes the text to path and, on success, associates the document
// with it.
func (d *Document) SaveAs(ctx context.Context, path string) error {
	if path == "" {
		return ErrNoPath
	}
	if err := d.write(ctx, path); err != nil {
		return err
	}

	d.path = path
	return nil
}

func (d *Document) write(ctx context.Context, path string) error {
	if d.io == nil {
		return ErrNoFileIO
	}

	text := d.text.String()
	if err := d.io.Write(ctx, path, []byte(text)); err != nil {
		d.logger.Warn("save failed", logging.FieldPath, path, logging.FieldError, err)
		return fmt.Errorf("save %s: %w", path, err)
	}

	d.savedRevision = d.revision
	d.savedText = text
	d.logger.Info("saved", logging.FieldPath, path, logging.FieldRevision, d.revision)
	return nil
}

// ExternallyModified reports whether the file changed on disk since it was
// opened or last saved. It is false for untitled documents and for FileIO
// implementations that do not track file state.
func (d *Document) ExternallyModified(ctx context.Context) (bool, error) {
	checker, ok := d.io.(modChecker)
	if !ok || d.path == "" {
		return false, nil
	}
	return checker.Modified(ctx, d.path)
}

// UnsavedDiff returns a unified diff from the last saved text to the current
// text, or "" when they match.
func (d *Document) UnsavedDiff() string {
	return diff.Compute(d.Title(), d.savedText, d.text.String()).String()
}
