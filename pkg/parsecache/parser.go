package parsecache

import (
	"context"

	"github.com/yaklabco/inkwell/pkg/mdast"
)

// Parser parses Markdown content into a FileSnapshot.
//
// The cache defines this interface because it is the consumer; parser/goldmark
// provides the implementation.
//
// Implementations must be:
//   - deterministic for a given (path, content) pair,
//   - side-effect free (no I/O, no global state mutation).
type Parser interface {
	// Parse converts raw Markdown bytes into a FileSnapshot. On error it
	// returns nil and no partial snapshot.
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}

// Source is the document the cache parses. *document.Document satisfies it.
type Source interface {
	Revision() uint64
	Text() string
	Path() string
}
