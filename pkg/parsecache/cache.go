// Package parsecache keeps the parsed structure of one document, keyed by
// the document revision.
//
// # Invalidation
//
// An entry is valid exactly when its revision equals the document's current
// revision. Every edit, undo, and redo bumps the revision, so there is no
// explicit invalidation call: the next Get after any of them sees a
// mismatch and reparses. Undoing back to earlier text still reparses,
// because the revision is new even when the content is not.
//
// # Whole-document parsing
//
// Get always reparses the full text. There is no incremental reparse;
// render requests are coalesced by the session instead, so a burst of
// keystrokes costs one parse.
//
// # Failure policy
//
// Get never fails. A parser error or panic is logged at warn level and the
// entry holds mdast.Literal: one raw block covering the whole text.
//
// # Thread Safety
//
// A Cache is NOT thread-safe. It belongs to one document and runs on the
// same logical thread as the document's edits.
package parsecache

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/inkwell/internal/logging"
	"github.com/yaklabco/inkwell/pkg/mdast"
)

// Entry is a parse of the document at one revision. Entries are immutable;
// a newer revision produces a new Entry.
type Entry struct {
	Revision uint64
	Snapshot *mdast.FileSnapshot
}

// Cache lazily parses a Source and keeps the result for its revision.
type Cache struct {
	source Source
	parser Parser
	logger *log.Logger

	entry  *Entry
	hits   int
	misses int
}

// New creates a cache over source. A nil logger selects the default.
func New(source Source, parser Parser, logger *log.Logger) *Cache {
	if logger == nil {
		logger = logging.Default()
	}
	return &Cache{source: source, parser: parser, logger: logger}
}

// Get returns the entry for the current revision, parsing first when the
// cached entry is stale or missing. Repeated calls without an intervening
// mutation return the identical *Entry.
func (c *Cache) Get(ctx context.Context) *Entry {
	revision := c.source.Revision()
	if c.entry != nil && c.entry.Revision == revision {
		c.hits++
		return c.entry
	}

	c.misses++
	start := time.Now()

	path := c.source.Path()
	content := []byte(c.source.Text())
	snapshot := c.parse(ctx, path, content)

	c.entry = &Entry{Revision: revision, Snapshot: snapshot}
	c.logger.Debug("parsed document",
		logging.FieldPath, path,
		logging.FieldRevision, revision,
		logging.FieldBlocks, len(snapshot.Blocks()),
		logging.FieldDuration, time.Since(start),
	)

	return c.entry
}

// Stale reports whether the next Get will reparse.
func (c *Cache) Stale() bool {
	return c.entry == nil || c.entry.Revision != c.source.Revision()
}

// Peek returns the cached entry without checking or refreshing it. It may
// be stale or nil.
func (c *Cache) Peek() *Entry {
	return c.entry
}

// Hits returns the number of Get calls served from the cache.
func (c *Cache) Hits() int { return c.hits }

// Misses returns the number of Get calls that reparsed.
func (c *Cache) Misses() int { return c.misses }

// parse runs the parser and degrades any failure to a literal snapshot.
func (c *Cache) parse(ctx context.Context, path string, content []byte) (snapshot *mdast.FileSnapshot) {
	defer func() {
		if r := recover(); r != nil {
			c.degrade(path, fmt.Errorf("parser panic: %v", r))
			snapshot = mdast.Literal(path, content)
		}
	}()

	snapshot, err := c.parser.Parse(ctx, path, content)
	if err != nil || snapshot == nil || snapshot.Root == nil {
		if err == nil {
			err = fmt.Errorf("parser returned no tree")
		}
		c.degrade(path, err)
		return mdast.Literal(path, content)
	}

	return snapshot
}

func (c *Cache) degrade(path string, err error) {
	c.logger.Warn("parse failed; showing literal text",
		logging.FieldPath, path,
		logging.FieldRevision, c.source.Revision(),
		logging.FieldError, err,
	)
}
