package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/inkwell/pkg/extension"
)

const (
	summaryDividerWidth = 40
	summaryPathWidth    = 48
)

// Stats counts what a render produced.
type Stats struct {
	Path        string
	Revision    uint64
	Blocks      int
	Code        int
	Math        int
	Shortcode   int
	Detected    int
	Diagrams    int
	Degraded    bool
	Frontmatter bool
	Duration    time.Duration
}

// CollectStats tallies the blocks of a pipeline result.
func CollectStats(result *extension.Result) Stats {
	var stats Stats
	if result == nil {
		return stats
	}

	stats.Blocks = len(result.Blocks)
	stats.Frontmatter = result.Frontmatter != nil
	for _, block := range result.Blocks {
		switch block.Class {
		case extension.ClassCode:
			stats.Code++
		case extension.ClassMath:
			stats.Math++
		case extension.ClassShortcode:
			stats.Shortcode++
		}
		if block.Detected {
			stats.Detected++
		}
		if block.Diagram != extension.DiagramNone {
			stats.Diagrams++
		}
	}
	return stats
}

// FormatSummaryOneLine formats render statistics as a single line.
// Example: "12 blocks (3 code, 1 math) in notes.md".
func (s *Styles) FormatSummaryOneLine(stats Stats) string {
	blockWord := "blocks"
	if stats.Blocks == 1 {
		blockWord = "block"
	}

	var classParts []string
	if stats.Code > 0 {
		classParts = append(classParts, s.Code.Render(fmt.Sprintf("%d code", stats.Code)))
	}
	if stats.Math > 0 {
		classParts = append(classParts, s.Math.Render(fmt.Sprintf("%d math", stats.Math)))
	}
	if stats.Shortcode > 0 {
		classParts = append(classParts, s.Key.Render(fmt.Sprintf("%d shortcode", stats.Shortcode)))
	}

	line := fmt.Sprintf("%d %s", stats.Blocks, blockWord)
	if len(classParts) > 0 {
		line += " (" + strings.Join(classParts, ", ") + ")"
	}
	if stats.Path != "" {
		line += " in " + truncatePath(stats.Path, summaryPathWidth)
	}
	if stats.Degraded {
		line += ", " + s.Warning.Render("shown as literal text")
	}
	if stats.Duration > 0 {
		line += s.Dim.Render(" (" + stats.Duration.Round(time.Microsecond).String() + ")")
	}
	return line + "\n"
}

// FormatSummary formats render statistics as a summary block.
func (s *Styles) FormatSummary(stats Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	if stats.Path != "" {
		builder.WriteString("  File:              " + s.SummaryValue.Render(truncatePath(stats.Path, summaryPathWidth)) + "\n")
	}
	builder.WriteString("  Revision:          " + s.SummaryValue.Render(strconv.FormatUint(stats.Revision, 10)) + "\n")
	builder.WriteString("  Blocks:            " + s.SummaryValue.Render(strconv.Itoa(stats.Blocks)) + "\n")

	if stats.Code > 0 {
		builder.WriteString("    Code:            " + s.Code.Render(strconv.Itoa(stats.Code)) + "\n")
	}
	if stats.Detected > 0 {
		builder.WriteString("      Detected:      " + s.Dim.Render(strconv.Itoa(stats.Detected)) + "\n")
	}
	if stats.Diagrams > 0 {
		builder.WriteString("      Diagrams:      " + s.Dim.Render(strconv.Itoa(stats.Diagrams)) + "\n")
	}
	if stats.Math > 0 {
		builder.WriteString("    Math:            " + s.Math.Render(strconv.Itoa(stats.Math)) + "\n")
	}
	if stats.Shortcode > 0 {
		builder.WriteString("    Shortcode:       " + s.Key.Render(strconv.Itoa(stats.Shortcode)) + "\n")
	}
	if stats.Frontmatter {
		builder.WriteString("  Frontmatter:       " + s.SummaryValue.Render("yes") + "\n")
	}

	builder.WriteString("\n")
	if stats.Degraded {
		builder.WriteString(s.Warning.Render("Parse failed; showing literal text"))
	} else {
		builder.WriteString(s.Bold.Render("Rendered"))
	}
	builder.WriteString("\n")

	return builder.String()
}
