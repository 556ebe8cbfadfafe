// Package diff renders line-based unified diffs, used to show a document's
// unsaved changes against the text it was last saved with.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Context is the number of unchanged lines kept around each change.
const Context = 3

// LineKind marks a diff line as kept, added, or removed.
type LineKind int

const (
	// Keep is an unchanged line.
	Keep LineKind = iota
	// Add is a line only in the new text.
	Add
	// Remove is a line only in the old text.
	Remove
)

func (k LineKind) prefix() byte {
	switch k {
	case Add:
		return '+'
	case Remove:
		return '-'
	default:
		return ' '
	}
}

// Line is one line of a hunk, without its prefix or newline.
type Line struct {
	Kind LineKind
	Text string
}

// Hunk is a run of changes with surrounding context. Starts are 1-based.
type Hunk struct {
	OldStart, OldCount int
	NewStart, NewCount int
	Lines              []Line
}

// Unified is the diff between two texts.
type Unified struct {
	Name    string
	Hunks   []Hunk
	Added   int
	Removed int
}

// Compute diffs oldText against newText. It returns nil when they are equal.
func Compute(name, oldText, newText string) *Unified {
	if oldText == newText {
		return nil
	}

	script := editScript(oldText, newText)

	u := &Unified{Name: name, Hunks: hunks(script)}
	for _, line := range script {
		switch line.Kind {
		case Add:
			u.Added++
		case Remove:
			u.Removed++
		}
	}

	if len(u.Hunks) == 0 {
		return nil
	}
	return u
}

// Empty reports whether the diff has no changes.
func (u *Unified) Empty() bool {
	return u == nil || len(u.Hunks) == 0
}

// String renders the diff with ---/+++ headers.
func (u *Unified) String() string {
	if u.Empty() {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- a/%s\n+++ b/%s\n", u.Name, u.Name)

	for _, h := range u.Hunks {
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", h.OldStart, h.OldCount, h.NewStart, h.NewCount)
		for _, line := range h.Lines {
			sb.WriteByte(line.Kind.prefix())
			sb.WriteString(line.Text)
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// withNewline makes a missing final newline not count as a change.
func withNewline(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}
	return text + "\n"
}

// editScript returns the full line script turning oldText into newText.
// diffmatchpatch runs in line mode: every distinct line is mapped to one
// rune, diffed, then mapped back.
func editScript(oldText, newText string) []Line {
	dmp := diffmatchpatch.New()
	oldChars, newChars, lines := dmp.DiffLinesToChars(withNewline(oldText), withNewline(newText))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(oldChars, newChars, false), lines)

	var script []Line
	for _, d := range diffs {
		kind := Keep
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			kind = Remove
		case diffmatchpatch.DiffInsert:
			kind = Add
		}
		for _, text := range splitLines(d.Text) {
			script = append(script, Line{kind, text})
		}
	}
	return script
}

// hunks cuts a script into hunks, merging changes separated by at most
// twice the context.
func hunks(script []Line) []Hunk {
	var out []Hunk

	oldLine, newLine := 1, 1
	for idx := 0; idx < len(script); {
		if script[idx].Kind == Keep {
			oldLine++
			newLine++
			idx++
			continue
		}

		start := max(idx-Context, 0)
		h := Hunk{OldStart: oldLine - (idx - start), NewStart: newLine - (idx - start)}

		end := idx
		for end < len(script) {
			if script[end].Kind != Keep {
				end++
				continue
			}
			run := end
			for run < len(script) && script[run].Kind == Keep {
				run++
			}
			if run == len(script) || run-end > 2*Context {
				end = min(end+Context, len(script))
				break
			}
			end = run
		}

		for _, line := range script[start:end] {
			h.Lines = append(h.Lines, line)
			if line.Kind != Add {
				h.OldCount++
			}
			if line.Kind != Remove {
				h.NewCount++
			}
		}
		// An empty side names the line before it, as diff(1) does.
		if h.OldCount == 0 {
			h.OldStart--
		}
		if h.NewCount == 0 {
			h.NewStart--
		}

		for _, line := range script[idx:end] {
			if line.Kind != Add {
				oldLine++
			}
			if line.Kind != Remove {
				newLine++
			}
		}

		out = append(out, h)
		idx = end
	}

	return out
}
