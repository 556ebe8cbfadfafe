// Package config defines the editor's configuration values. The types are
// plain data; discovery, layering, and reloading live in the loader.
package config

import "context"

// Flavor selects the Markdown dialect the parser accepts.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// MathMode controls how math spans are shown in the preview.
type MathMode string

const (
	// MathUnicode substitutes a Unicode approximation for LaTeX commands.
	MathUnicode MathMode = "unicode"
	// MathSource shows math spans as written.
	MathSource MathMode = "source"
)

// ViewMode is the pane layout a document opens in.
type ViewMode string

const (
	ViewRaw      ViewMode = "raw"
	ViewRendered ViewMode = "rendered"
	ViewSplit    ViewMode = "split"
)

// EditorSettings controls text entry and history.
type EditorSettings struct {
	// TabWidth is the number of spaces a Tab inserts when UseSpaces is set.
	TabWidth int `mapstructure:"tab_width" yaml:"tab_width" toml:"tab_width"`

	// UseSpaces makes Tab insert spaces instead of a tab character.
	UseSpaces bool `mapstructure:"use_spaces" yaml:"use_spaces" toml:"use_spaces"`

	// HistoryLimit bounds the undo stack of each document.
	HistoryLimit int `mapstructure:"history_limit" yaml:"history_limit" toml:"history_limit"`

	// DefaultView is the layout new sessions start in.
	DefaultView ViewMode `mapstructure:"default_view" yaml:"default_view" toml:"default_view"`
}

// MarkdownSettings controls parsing and the preview pipeline.
type MarkdownSettings struct {
	Flavor         Flavor   `mapstructure:"flavor" yaml:"flavor" toml:"flavor"`
	Math           MathMode `mapstructure:"math" yaml:"math" toml:"math"`
	RenderEmoji    bool     `mapstructure:"render_emoji" yaml:"render_emoji" toml:"render_emoji"`
	DetectLanguage bool     `mapstructure:"detect_language" yaml:"detect_language" toml:"detect_language"`
}

// Settings is the resolved configuration. Consumers treat it as read-only.
type Settings struct {
	Editor   EditorSettings   `mapstructure:"editor" yaml:"editor" toml:"editor"`
	Markdown MarkdownSettings `mapstructure:"markdown" yaml:"markdown" toml:"markdown"`

	// Theme names the colour theme; the table itself belongs to the UI.
	Theme string `mapstructure:"theme" yaml:"theme" toml:"theme"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level" toml:"log_level"`

	// Backups writes a sidecar copy of the previous file content on save.
	Backups bool `mapstructure:"backups" yaml:"backups" toml:"backups"`
}

// NewSettings returns the defaults.
func NewSettings() Settings {
	return Settings{
		Editor: EditorSettings{
			TabWidth:     4,
			UseSpaces:    true,
			HistoryLimit: 1000,
			DefaultView:  ViewSplit,
		},
		Markdown: MarkdownSettings{
			Flavor:         FlavorGFM,
			Math:           MathUnicode,
			RenderEmoji:    true,
			DetectLanguage: true,
		},
		Theme:    "dracula",
		LogLevel: "info",
	}
}

// Indent returns the text one Tab inserts.
func (s Settings) Indent() string {
	if !s.Editor.UseSpaces || s.Editor.TabWidth <= 0 {
		return "\t"
	}

	buf := make([]byte, s.Editor.TabWidth)
	for i := range buf {
		buf[i] = ' '
	}
	return string(buf)
}

// Provider supplies settings. Reload re-reads the underlying sources.
type Provider interface {
	Settings() Settings
	Reload(ctx context.Context) error
}

// Static is a Provider over fixed settings.
type Static Settings

// Settings returns the wrapped settings.
func (s Static) Settings() Settings { return Settings(s) }

// Reload is a no-op.
func (Static) Reload(context.Context) error { return nil }
