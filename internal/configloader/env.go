package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/inkwell/pkg/config"
)

// envVarPrefix is the prefix for all inkwell environment variables.
const envVarPrefix = "INKWELL_"

// envMapping binds one environment variable to a settings field.
type envMapping struct {
	description string
	apply       func(s *config.Settings, value string) error
}

func stringField(set func(*config.Settings, string)) func(*config.Settings, string) error {
	return func(s *config.Settings, value string) error {
		set(s, value)
		return nil
	}
}

func boolField(set func(*config.Settings, bool)) func(*config.Settings, string) error {
	return func(s *config.Settings, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		set(s, b)
		return nil
	}
}

func intField(set func(*config.Settings, int)) func(*config.Settings, string) error {
	return func(s *config.Settings, value string) error {
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer %q", value)
		}
		set(s, i)
		return nil
	}
}

// envMappings maps environment variable names (without prefix) to fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"TAB_WIDTH": {"Spaces per Tab when use_spaces is set",
		intField(func(s *config.Settings, v int) { s.Editor.TabWidth = v })},
	"USE_SPACES": {"Tab inserts spaces: true or false",
		boolField(func(s *config.Settings, v bool) { s.Editor.UseSpaces = v })},
	"HISTORY_LIMIT": {"Undo steps kept per document",
		intField(func(s *config.Settings, v int) { s.Editor.HistoryLimit = v })},
	"DEFAULT_VIEW": {"Initial layout: raw, rendered, or split",
		stringField(func(s *config.Settings, v string) { s.Editor.DefaultView = config.ViewMode(v) })},
	"FLAVOR": {"Markdown flavor: commonmark or gfm",
		stringField(func(s *config.Settings, v string) { s.Markdown.Flavor = config.Flavor(v) })},
	"MATH": {"Math display: unicode or source",
		stringField(func(s *config.Settings, v string) { s.Markdown.Math = config.MathMode(v) })},
	"RENDER_EMOJI": {"Expand :shortcodes: in the preview: true or false",
		boolField(func(s *config.Settings, v bool) { s.Markdown.RenderEmoji = v })},
	"DETECT_LANGUAGE": {"Guess untagged code block languages: true or false",
		boolField(func(s *config.Settings, v bool) { s.Markdown.DetectLanguage = v })},
	"THEME": {"Colour theme name",
		stringField(func(s *config.Settings, v string) { s.Theme = v })},
	"LOG_LEVEL": {"Log level: debug, info, warn, or error",
		stringField(func(s *config.Settings, v string) { s.LogLevel = strings.ToLower(v) })},
	"BACKUPS": {"Keep a sidecar copy on save: true or false",
		boolField(func(s *config.Settings, v bool) { s.Backups = v })},
}

// LoadFromEnv applies INKWELL_* overrides read through getenv. A nil getenv
// reads the process environment.
func LoadFromEnv(s *config.Settings, getenv func(string) string) error {
	if s == nil {
		return nil
	}
	if getenv == nil {
		getenv = os.Getenv
	}

	for _, suffix := range envSuffixes() {
		envVar := envVarPrefix + suffix
		value := getenv(envVar)
		if value == "" {
			continue
		}
		if err := envMappings[suffix].apply(s, value); err != nil {
			return fmt.Errorf("%s: %w", envVar, err)
		}
	}

	return nil
}

// ListEnvVars returns every supported environment variable with a
// description.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, m := range envMappings {
		vars[envVarPrefix+suffix] = m.description
	}
	return vars
}

// envSuffixes returns the mapping keys in a stable order so errors are
// reported deterministically.
func envSuffixes() []string {
	keys := make([]string, 0, len(envMappings))
	for k := range envMappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
