package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/inkwell/pkg/config"
)

func TestNewSettings(t *testing.T) {
	t.Parallel()

	s := config.NewSettings()
	assert.Equal(t, 4, s.Editor.TabWidth)
	assert.True(t, s.Editor.UseSpaces)
	assert.Equal(t, 1000, s.Editor.HistoryLimit)
	assert.Equal(t, config.ViewSplit, s.Editor.DefaultView)
	assert.Equal(t, config.FlavorGFM, s.Markdown.Flavor)
	assert.Equal(t, config.MathUnicode, s.Markdown.Math)
	assert.True(t, s.Markdown.RenderEmoji)
	assert.True(t, s.Markdown.DetectLanguage)
	assert.Equal(t, "dracula", s.Theme)
	assert.False(t, s.Backups)
	require.NoError(t, s.Validate())
}

func TestIndent(t *testing.T) {
	t.Parallel()

	s := config.NewSettings()
	assert.Equal(t, "    ", s.Indent())

	s.Editor.TabWidth = 2
	assert.Equal(t, "  ", s.Indent())

	s.Editor.UseSpaces = false
	assert.Equal(t, "\t", s.Indent())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Settings)
		field  string
	}{
		{"tab width zero", func(s *config.Settings) { s.Editor.TabWidth = 0 }, "editor.tab_width"},
		{"history limit", func(s *config.Settings) { s.Editor.HistoryLimit = 0 }, "editor.history_limit"},
		{"view", func(s *config.Settings) { s.Editor.DefaultView = "tabs" }, "editor.default_view"},
		{"flavor", func(s *config.Settings) { s.Markdown.Flavor = "mdx" }, "markdown.flavor"},
		{"math", func(s *config.Settings) { s.Markdown.Math = "mathml" }, "markdown.math"},
		{"log level", func(s *config.Settings) { s.LogLevel = "trace" }, "log_level"},
		{"theme", func(s *config.Settings) { s.Theme = "" }, "theme"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			s := config.NewSettings()
			testCase.mutate(&s)

			err := s.Validate()
			require.Error(t, err)

			var verr *config.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, testCase.field, verr.Field)
		})
	}
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	t.Parallel()

	t.Run("yaml", func(t *testing.T) {
		t.Parallel()

		s, err := config.FromYAML([]byte("editor:\n  tab_width: 2\nmarkdown:\n  render_emoji: false\n"))
		require.NoError(t, err)
		assert.Equal(t, 2, s.Editor.TabWidth)
		assert.True(t, s.Editor.UseSpaces)
		assert.False(t, s.Markdown.RenderEmoji)
		assert.Equal(t, "dracula", s.Theme)
	})

	t.Run("toml", func(t *testing.T) {
		t.Parallel()

		s, err := config.FromTOML([]byte("theme = \"nord\"\n\n[markdown]\nmath = \"source\"\n"))
		require.NoError(t, err)
		assert.Equal(t, "nord", s.Theme)
		assert.Equal(t, config.MathSource, s.Markdown.Math)
		assert.Equal(t, 4, s.Editor.TabWidth)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := config.FromYAML([]byte("editor: [unclosed"))
		require.Error(t, err)
	})
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	s := config.NewSettings()
	s.Theme = "nord"
	s.Editor.TabWidth = 8

	data, err := s.ToYAML()
	require.NoError(t, err)
	got, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)

	data, err = s.ToTOML()
	require.NoError(t, err)
	got, err = config.FromTOML(data)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestTemplateDecodesToDefaults(t *testing.T) {
	t.Parallel()

	for _, format := range []config.Format{config.FormatYAML, config.FormatTOML} {
		data, err := config.Template(format)
		require.NoError(t, err)

		s := config.Settings{}
		require.NoError(t, s.Decode(format, data))
		assert.Equal(t, config.NewSettings(), s, "format %s", format)
	}
}

func TestStaticProvider(t *testing.T) {
	t.Parallel()

	p := config.Static(config.NewSettings())
	require.NoError(t, p.Reload(context.Background()))
	assert.Equal(t, config.NewSettings(), p.Settings())
}
