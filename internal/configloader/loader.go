// Package configloader resolves editor settings from defaults, config
// files, and the environment, and keeps them current while the editor
// runs.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/inkwell/pkg/config"
)

// configFilePermissions is the file mode for configuration files written
// by init.
const configFilePermissions = 0o644

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// UserDir overrides UserConfigDir.
	UserDir string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Getenv replaces os.Getenv for INKWELL_* lookups.
	Getenv func(string) string
}

// LoadResult contains the resolved settings and where they came from.
type LoadResult struct {
	Settings config.Settings

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string
}

// Load resolves the settings by overlaying each source on the previous.
// Precedence (highest to lowest):
//  1. Environment variables (INKWELL_*)
//  2. Explicit config file (opts.ExplicitPath)
//  3. Project config (.inkwell.yaml upward search)
//  4. User config ($XDG_CONFIG_HOME/inkwell/config.yaml)
//  5. Defaults
//
// Keys a file does not mention keep the value from the layer below.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	userDir := opts.UserDir
	if userDir == "" && !opts.IgnoreUserConfig {
		userDir = UserConfigDir()
	}

	paths, err := DiscoverPaths(ctx, workDir, userDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Settings: config.NewSettings(), Paths: paths}

	layers := []struct {
		name string
		path string
		skip bool
	}{
		{"user", paths.User, opts.IgnoreUserConfig},
		{"project", paths.Project, opts.IgnoreProjectConfig},
		{"explicit", paths.Explicit, false},
	}
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		if err := loadConfigFile(&result.Settings, layer.path); err != nil {
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(&result.Settings, opts.Getenv); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if err := result.Settings.Validate(); err != nil {
		return nil, err
	}

	return result, nil
}

// loadConfigFile overlays the file at path onto s.
func loadConfigFile(s *config.Settings, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read file: %w", err)
	}

	if err := s.Decode(FormatOf(path), content); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// WriteDefault writes the default configuration template to path in the
// format its extension names. It refuses to overwrite unless force is set.
func WriteDefault(path string, force bool) error {
	if !force && fileExists(path) {
		return fmt.Errorf("%s already exists", path)
	}

	content, err := config.Template(FormatOf(path))
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}
