// Package viewsync keeps the raw source pane and the rendered preview pane
// scrolled to the same place.
//
// The preview is a list of rendered blocks; the source is a list of lines.
// A Map built by the extension pipeline records which source lines produced
// each block, and a Sync holds the two pane offsets plus the most recent
// Map. Scrolling either pane moves the other through the Map.
//
// # Lookup rules
//
// A source line covered by an entry maps to that entry's block. A line in a
// gap between entries (blank lines, or text the parser dropped) maps to the
// nearer neighbour: the distance to the previous entry is measured from its
// last line and the distance to the next entry from its first line; equal
// distances pick the next entry. Lines before the first entry map to the
// first block, lines after the last entry to the last block, and any line
// maps to block 0 in an empty Map. A block maps back to its entry's first
// line.
//
// Wrapped preview rows are not part of the Map, so positions near the end of
// a long document can drift by a few rows. That drift is tolerated.
package viewsync

import (
	"slices"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Entry maps the source lines [FirstLine, LastLine] to a rendered block.
type Entry struct {
	FirstLine int
	LastLine  int
	Block     int

	// Rendered is the block's display text, used for row arithmetic.
	Rendered string
}

// Map is an immutable table of entries ordered by FirstLine.
type Map struct {
	entries []Entry
}

// NewMap builds a Map, ordering entries by first line.
func NewMap(entries []Entry) Map {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry) int { return a.FirstLine - b.FirstLine })
	return Map{entries: sorted}
}

// Len returns the number of entries.
func (m Map) Len() int { return len(m.entries) }

// Entries returns a copy of the entries.
func (m Map) Entries() []Entry { return slices.Clone(m.entries) }

// BlockForLine returns the block shown for a source line.
func (m Map) BlockForLine(line int) int {
	n := len(m.entries)
	if n == 0 {
		return 0
	}

	// First entry starting after line.
	next, _ := slices.BinarySearchFunc(m.entries, line+1, func(e Entry, target int) int {
		return e.FirstLine - target
	})

	if next == 0 {
		return m.entries[0].Block
	}

	prev := m.entries[next-1]
	if line <= prev.LastLine {
		return prev.Block
	}
	if next == n {
		return m.entries[n-1].Block
	}

	after := m.entries[next]
	if after.FirstLine-line <= line-prev.LastLine {
		return after.Block
	}
	return prev.Block
}

// LineForBlock returns the first source line of a block. Blocks outside
// the map clamp to the nearest end.
func (m Map) LineForBlock(block int) int {
	if len(m.entries) == 0 {
		return 0
	}
	for _, e := range m.entries {
		if e.Block >= block {
			return e.FirstLine
		}
	}
	return m.entries[len(m.entries)-1].FirstLine
}

// RowOffset returns the number of wrapped preview rows above block when the
// preview is width cells wide. Blocks are separated by one blank row. A
// non-positive width disables wrapping.
func (m Map) RowOffset(block, width int) int {
	rows := 0
	for _, e := range m.entries {
		if e.Block >= block {
			break
		}
		rows += Rows(e.Rendered, width) + 1
	}
	return rows
}

// Rows returns the number of terminal rows text occupies at width cells,
// counting East Asian wide runes as two cells.
func Rows(text string, width int) int {
	total := 0
	for line := range strings.SplitSeq(text, "\n") {
		w := runewidth.StringWidth(line)
		if width <= 0 || w <= width {
			total++
			continue
		}
		total += (w + width - 1) / width
	}
	return total
}
