package cli

import (
	"errors"
	"fmt"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/inkwell/internal/ui/pretty"
)

// ErrNoFrontmatter is returned when a file has no frontmatter block.
var ErrNoFrontmatter = errors.New("no frontmatter")

type frontmatterFlags struct {
	format string
	key    string
}

func newFrontmatterCommand(global *globalFlags) *cobra.Command {
	flags := &frontmatterFlags{}

	cmd := &cobra.Command{
		Use:   "frontmatter <file>",
		Short: "Print the decoded frontmatter of a Markdown file",
		Long: `Decode the YAML (---) or TOML (+++) frontmatter block at the top of a
Markdown file and print it.

Examples:
  inkwell frontmatter post.md
  inkwell frontmatter --format toml post.md
  inkwell frontmatter --key title post.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrontmatter(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "yaml", "output format: yaml, toml, text")
	cmd.Flags().StringVarP(&flags.key, "key", "k", "", "print a single top-level key")

	return cmd
}

func runFrontmatter(cmd *cobra.Command, path string, global *globalFlags, flags *frontmatterFlags) error {
	switch flags.format {
	case "yaml", "toml", formatText:
	default:
		return fmt.Errorf("%w: unknown format %q; valid formats: yaml, toml, text", ErrInvalidUsage, flags.format)
	}

	settings, err := loadSettings(cmd, global)
	if err != nil {
		return err
	}

	out, err := renderFile(cmd.Context(), path, settings, commandLogger(cmd))
	if err != nil {
		return err
	}

	fm := out.frame.Result.Frontmatter
	if fm == nil {
		return fmt.Errorf("%s: %w", path, ErrNoFrontmatter)
	}

	writer := cmd.OutOrStdout()
	if flags.key != "" {
		value, ok := fm.Get(flags.key)
		if !ok {
			return fmt.Errorf("%s: key %q not found", path, flags.key)
		}
		_, err := fmt.Fprintln(writer, value)
		return err
	}

	var content []byte
	switch flags.format {
	case "toml":
		content, err = toml.Marshal(fm.Data)
	case formatText:
		styles := pretty.NewStyles(pretty.IsColorEnabled(global.color, writer))
		content = []byte(styles.FormatFrontmatter(fm))
	default:
		content, err = yaml.Marshal(fm.Data)
	}
	if err != nil {
		return fmt.Errorf("encode frontmatter: %w", err)
	}

	if _, err := writer.Write(content); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
