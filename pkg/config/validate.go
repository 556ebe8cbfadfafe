package config

import (
	"errors"
	"fmt"
	"slices"
)

// ValidationError describes one invalid setting.
type ValidationError struct {
	// Field is the dotted key, e.g. "editor.tab_width".
	Field string
	Value any
	// Message says what is allowed.
	Message string
	// Source is the file the value came from, when known.
	Source string
}

func (e *ValidationError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("%s: %s: %s", e.Source, e.Field, e.Message)
	}
	return e.Field + ": " + e.Message
}

const maxTabWidth = 16

// Validate checks every setting and returns all problems joined, or nil.
func (s Settings) Validate() error {
	var errs []error

	check := func(ok bool, field string, value any, format string, args ...any) {
		if !ok {
			errs = append(errs, &ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
		}
	}

	check(s.Editor.TabWidth >= 1 && s.Editor.TabWidth <= maxTabWidth,
		"editor.tab_width", s.Editor.TabWidth, "must be between 1 and %d", maxTabWidth)
	check(s.Editor.HistoryLimit >= 1,
		"editor.history_limit", s.Editor.HistoryLimit, "must be at least 1")
	check(slices.Contains([]ViewMode{ViewRaw, ViewRendered, ViewSplit}, s.Editor.DefaultView),
		"editor.default_view", s.Editor.DefaultView, "invalid view %q; must be one of: raw, rendered, split", s.Editor.DefaultView)
	check(slices.Contains([]Flavor{FlavorGFM, FlavorCommonMark}, s.Markdown.Flavor),
		"markdown.flavor", s.Markdown.Flavor, "invalid flavor %q; must be one of: gfm, commonmark", s.Markdown.Flavor)
	check(slices.Contains([]MathMode{MathUnicode, MathSource}, s.Markdown.Math),
		"markdown.math", s.Markdown.Math, "invalid math mode %q; must be one of: unicode, source", s.Markdown.Math)
	check(slices.Contains([]string{"debug", "info", "warn", "error"}, s.LogLevel),
		"log_level", s.LogLevel, "invalid level %q; must be one of: debug, info, warn, error", s.LogLevel)
	check(s.Theme != "", "theme", s.Theme, "must not be empty")

	return errors.Join(errs...)
}
