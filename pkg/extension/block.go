package extension

import (
	"github.com/yaklabco/inkwell/pkg/mdast"
	"github.com/yaklabco/inkwell/pkg/viewsync"
)

// Class is the transform a block receives.
type Class int

const (
	ClassPlain Class = iota
	ClassCode
	ClassMath
	ClassShortcode
)

func (c Class) String() string {
	switch c {
	case ClassPlain:
		return "plain"
	case ClassCode:
		return "code"
	case ClassMath:
		return "math"
	case ClassShortcode:
		return "shortcode"
	default:
		return "unknown"
	}
}

// Block is one rendered unit of the preview.
type Block struct {
	// Index is the block's position in Result.Blocks.
	Index int

	Kind  mdast.NodeKind
	Class Class

	// Lines is the source line range the block was built from.
	Lines mdast.LineSpan

	// Source is the block text before any substitution; Text is what the
	// preview shows.
	Source string
	Text   string

	// HeadingLevel is 1-6 for headings and 0 otherwise. Title is the
	// heading text without its # or underline markers, after substitution.
	HeadingLevel int
	Title        string

	// Language is the code block language: the info string's first word,
	// or a guess when Detected is set.
	Language string
	Detected bool

	// Diagram is set for mermaid code blocks.
	Diagram DiagramKind
}

// Result is the output of one pipeline run. It holds no reference to the
// document it came from.
type Result struct {
	Blocks      []Block
	Frontmatter *Frontmatter
	Map         viewsync.Map
}

// Texts returns the display text of every block.
func (r *Result) Texts() []string {
	texts := make([]string, len(r.Blocks))
	for i, b := range r.Blocks {
		texts[i] = b.Text
	}
	return texts
}
