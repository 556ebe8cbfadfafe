package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/inkwell/internal/configloader"
	"github.com/yaklabco/inkwell/internal/logging"
)

// configDirPermissions is the mode for a newly created user config directory.
const configDirPermissions = 0o755

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	format string
	output string
	user   bool
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default inkwell configuration file",
		Long: `Create a .inkwell.yaml configuration file in the current directory with
every setting at its default value.

Examples:
  inkwell init                       Create .inkwell.yaml
  inkwell init --format toml         Create .inkwell.toml instead
  inkwell init --user                Create the user config file
  inkwell init --output custom.yaml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVar(&flags.force, "force", false, "Overwrite existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "Output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .inkwell.yaml or .inkwell.toml)")
	cmd.Flags().BoolVar(&flags.user, "user", false, "Write the user config file instead of a project file")

	return cmd
}

// initPath resolves where init writes.
func initPath(flags *initFlags) (string, error) {
	if flags.format != "yaml" && flags.format != "toml" {
		return "", fmt.Errorf("%w: invalid format %q: must be yaml or toml", ErrInvalidUsage, flags.format)
	}

	switch {
	case flags.output != "":
		return flags.output, nil
	case flags.user:
		return filepath.Join(configloader.UserConfigDir(), "config."+flags.format), nil
	default:
		return ".inkwell." + flags.format, nil
	}
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := commandLogger(cmd)

	outputPath, err := initPath(flags)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if flags.user {
		if err := os.MkdirAll(filepath.Dir(absPath), configDirPermissions); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := configloader.WriteDefault(absPath, flags.force); err != nil {
		return fmt.Errorf("%w: %w", errConfig, err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("every key is optional; delete the ones you do not change")

	return nil
}
