// Package cli provides the Cobra command structure for inkwell.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/inkwell/internal/configloader"
	"github.com/yaklabco/inkwell/internal/logging"
	"github.com/yaklabco/inkwell/pkg/config"
)

var (
	// ErrInvalidUsage is returned for flag values a command does not accept.
	ErrInvalidUsage = errors.New("invalid usage")

	errConfig = errors.New("load configuration")
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags holds the persistent flags shared by every subcommand.
type globalFlags struct {
	debug      bool
	configPath string
	color      string
	noUser     bool
}

// NewRootCommand creates the root inkwell command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "inkwell",
		Short: "A terminal Markdown editor with a live preview",
		Long: `inkwell is a terminal Markdown editor with a live, scroll-synchronised
preview.

The preview understands GitHub Flavored Markdown, YAML and TOML frontmatter,
LaTeX math (shown as Unicode), emoji shortcodes, and fenced code with
language detection. The subcommands here run the same preview pipeline
headlessly.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().BoolVar(&flags.noUser, "no-user-config", false,
		"ignore the user configuration file")

	// Add subcommands.
	rootCmd.AddCommand(newRenderCommand(flags))
	rootCmd.AddCommand(newFrontmatterCommand(flags))
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}

// loadSettings resolves the layered configuration for a command and applies
// its log level unless --debug already raised it.
func loadSettings(cmd *cobra.Command, flags *globalFlags) (config.Settings, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	workDir, err := os.Getwd()
	if err != nil {
		return config.Settings{}, fmt.Errorf("get working directory: %w", err)
	}

	result, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:       workDir,
		ExplicitPath:     flags.configPath,
		IgnoreUserConfig: flags.noUser,
	})
	if err != nil {
		return config.Settings{}, fmt.Errorf("%w: %w", errConfig, err)
	}

	logger := logging.Default()
	if !flags.debug {
		logger.SetLevel(logging.ParseLevel(result.Settings.LogLevel))
	}
	if len(result.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, result.LoadedFrom)
	}

	return result.Settings, nil
}

// commandLogger returns the package logger, or one writing to the
// command's error stream when a test redirected it.
func commandLogger(cmd *cobra.Command) *log.Logger {
	if cmd.ErrOrStderr() == os.Stderr {
		return logging.Default()
	}
	logger := logging.NewWithWriter(cmd.ErrOrStderr(), "info")
	logger.SetLevel(logging.Default().GetLevel())
	return logger
}
