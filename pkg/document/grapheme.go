package document

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// boundaries returns the rune offsets at which grapheme clusters of line
// start, followed by the line length.
func boundaries(line string) []int {
	out := make([]int, 0, len(line)+1)
	offset := 0

	g := uniseg.NewGraphemes(line)
	for g.Next() {
		out = append(out, offset)
		offset += len(g.Runes())
	}

	return append(out, offset)
}

// prevBoundary returns the start of the cluster ending at or spanning col.
func prevBoundary(line string, col int) int {
	prev := 0
	for _, b := range boundaries(line) {
		if b >= col {
			break
		}
		prev = b
	}
	return prev
}

// nextBoundary returns the end of the cluster starting at or spanning col.
func nextBoundary(line string, col int) int {
	bounds := boundaries(line)
	for _, b := range bounds {
		if b > col {
			return b
		}
	}
	return bounds[len(bounds)-1]
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}
