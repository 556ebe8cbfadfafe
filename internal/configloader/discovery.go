package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/inkwell/pkg/config"
)

// appName names the user config directory and the environment prefix.
const appName = "inkwell"

// ConfigPaths represents discovered configuration file paths. Missing files
// are empty strings.
type ConfigPaths struct {
	// User is the user-level config, e.g. ~/.config/inkwell/config.yaml.
	User string

	// Project is the nearest .inkwell.{yaml,yml,toml} above the working
	// directory.
	Project string

	// Explicit is a config path provided via --config.
	Explicit string
}

// userConfigFiles are searched in the user config directory, in order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var userConfigFiles = []string{"config.yaml", "config.yml", "config.toml"}

// projectConfigFiles are searched in each directory on the way up.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigFiles = []string{".inkwell.yaml", ".inkwell.yml", ".inkwell.toml"}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds the user config in userDir (see UserConfigDir) and
// the project config by searching upward from workDir.
func DiscoverPaths(ctx context.Context, workDir, userDir string) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	paths := &ConfigPaths{}
	if userDir != "" {
		paths.User = findConfigInDir(userDir, userConfigFiles)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = project

	return paths, nil
}

// UserConfigDir returns $XDG_CONFIG_HOME/inkwell, falling back to
// ~/.config/inkwell. It returns "" when neither can be determined.
func UserConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, appName)
}

// findConfigInDir returns the first of names present in dir, or "".
func findConfigInDir(dir string, names []string) string {
	for _, name := range names {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for a project config file.
// Returns the path to the first config file found, or empty string if none.
// Stops at VCS roots, the home directory, or the filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		homeDir = ""
	}

	currentDir := absDir
	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if path := findConfigInDir(currentDir, projectConfigFiles); path != "" {
			return path, nil
		}

		if isVCSRoot(currentDir) {
			return "", nil
		}
		if homeDir != "" && currentDir == homeDir {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// FormatOf returns the syntax of a config file from its extension.
func FormatOf(path string) config.Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return config.FormatTOML
	}
	return config.FormatYAML
}

// isConfigName reports whether base is a name discovery looks for.
func isConfigName(base string) bool {
	for _, names := range [][]string{userConfigFiles, projectConfigFiles} {
		for _, name := range names {
			if base == name {
				return true
			}
		}
	}
	return false
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
