package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/inkwell/internal/logging"
	"github.com/yaklabco/inkwell/internal/ui/pretty"
	"github.com/yaklabco/inkwell/pkg/config"
	"github.com/yaklabco/inkwell/pkg/extension"
	"github.com/yaklabco/inkwell/pkg/fsutil"
	"github.com/yaklabco/inkwell/pkg/session"
)

// Render output formats.
const (
	formatText    = "text"
	formatOutline = "outline"
	formatJSON    = "json"
	formatSummary = "summary"

	fallbackWidth = 80
)

type renderFlags struct {
	width   int
	format  string
	noColor bool
	math    string
	flavor  string
	noEmoji bool
}

func newRenderCommand(global *globalFlags) *cobra.Command {
	flags := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a Markdown file the way the preview pane shows it",
		Long: `Run the preview pipeline over a Markdown file and print the result.

Formats:
  text      styled display blocks (default)
  outline   a table of blocks with their source lines
  json      display blocks and frontmatter as JSON
  summary   block counts for the file

Examples:
  inkwell render README.md
  inkwell render --width 60 notes.md
  inkwell render --format json --math source paper.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, args[0], global, flags)
		},
	}

	cmd.Flags().IntVarP(&flags.width, "width", "w", 0, "wrap width for paragraphs (0 = terminal width)")
	cmd.Flags().StringVarP(&flags.format, "format", "f", formatText, "output format: text, outline, json, summary")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	cmd.Flags().StringVar(&flags.math, "math", "", "math display: unicode or source (default from config)")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "", "Markdown flavor: gfm or commonmark (default from config)")
	cmd.Flags().BoolVar(&flags.noEmoji, "no-emoji", false, "leave emoji shortcodes as written")

	return cmd
}

// renderOutput is what a headless render produced.
type renderOutput struct {
	frame    *session.Frame
	duration time.Duration
}

func runRender(cmd *cobra.Command, path string, global *globalFlags, flags *renderFlags) error {
	switch flags.format {
	case formatText, formatOutline, formatJSON, formatSummary:
	default:
		return fmt.Errorf("%w: unknown format %q; valid formats: text, outline, json, summary",
			ErrInvalidUsage, flags.format)
	}

	settings, err := loadSettings(cmd, global)
	if err != nil {
		return err
	}
	if err := applyRenderFlags(&settings, flags); err != nil {
		return err
	}

	out, err := renderFile(cmd.Context(), path, settings, commandLogger(cmd))
	if err != nil {
		return err
	}

	writer := cmd.OutOrStdout()
	colorMode := global.color
	if flags.noColor {
		colorMode = "never"
	}
	colorEnabled := pretty.IsColorEnabled(colorMode, writer)
	styles := pretty.NewStyles(colorEnabled)

	stats := pretty.CollectStats(out.frame.Result)
	stats.Path = path
	stats.Revision = out.frame.Revision
	stats.Degraded = out.frame.Entry.Snapshot.Degraded
	stats.Duration = out.duration

	switch flags.format {
	case formatJSON:
		return writeJSON(writer, path, out.frame)
	case formatOutline:
		formatter := pretty.NewTableFormatter(styles, colorEnabled, outputWidth(writer, flags.width))
		_, err = io.WriteString(writer, formatter.FormatTable(out.frame.Result)+styles.FormatSummaryOneLine(stats))
	case formatSummary:
		_, err = io.WriteString(writer, styles.FormatSummary(stats))
	default:
		_, err = io.WriteString(writer, styles.FormatPreview(out.frame.Result, outputWidth(writer, flags.width)))
	}
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

// applyRenderFlags overlays command-line overrides onto settings.
func applyRenderFlags(settings *config.Settings, flags *renderFlags) error {
	if flags.math != "" {
		settings.Markdown.Math = config.MathMode(flags.math)
	}
	if flags.flavor != "" {
		settings.Markdown.Flavor = config.Flavor(flags.flavor)
	}
	if flags.noEmoji {
		settings.Markdown.RenderEmoji = false
	}
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	return nil
}

// renderFile opens path in a session and renders it once.
func renderFile(ctx context.Context, path string, settings config.Settings, logger *log.Logger) (*renderOutput, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	sess, err := session.Open(ctx, path, fsutil.NewFileIO(false), session.Options{
		Settings: settings,
		Logger:   logger,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	sess.SetMode(config.ViewRendered)

	start := time.Now()
	frame := sess.Render(ctx)
	duration := time.Since(start)

	logger.Debug("rendered",
		logging.FieldPath, path,
		logging.FieldRevision, frame.Revision,
		logging.FieldBlocks, len(frame.Result.Blocks),
		logging.FieldDuration, duration,
	)

	return &renderOutput{frame: frame, duration: duration}, nil
}

// outputWidth picks the wrap width: an explicit flag wins, then the
// terminal size, then a fixed fallback.
func outputWidth(writer io.Writer, flagWidth int) int {
	if flagWidth > 0 {
		return flagWidth
	}
	if f, ok := writer.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return fallbackWidth
}

// JSONOutput is the top-level JSON structure of a render.
type JSONOutput struct {
	Path        string         `json:"path"`
	Revision    uint64         `json:"revision"`
	Degraded    bool           `json:"degraded,omitempty"`
	Frontmatter map[string]any `json:"frontmatter,omitempty"`
	Blocks      []JSONBlock    `json:"blocks"`
}

// JSONBlock represents a single display block. Lines are 1-based.
type JSONBlock struct {
	Index     int    `json:"index"`
	Kind      string `json:"kind"`
	Class     string `json:"class"`
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Text      string `json:"text"`
	Title     string `json:"title,omitempty"`
	Level     int    `json:"level,omitempty"`
	Language  string `json:"language,omitempty"`
	Detected  bool   `json:"detected,omitempty"`
	Diagram   string `json:"diagram,omitempty"`
}

func writeJSON(writer io.Writer, path string, frame *session.Frame) error {
	output := JSONOutput{
		Path:     path,
		Revision: frame.Revision,
		Degraded: frame.Entry.Snapshot.Degraded,
		Blocks:   make([]JSONBlock, 0, len(frame.Result.Blocks)),
	}
	if fm := frame.Result.Frontmatter; fm != nil {
		output.Frontmatter = fm.Data
	}
	for _, block := range frame.Result.Blocks {
		output.Blocks = append(output.Blocks, jsonBlock(block))
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func jsonBlock(block extension.Block) JSONBlock {
	return JSONBlock{
		Index:     block.Index,
		Kind:      block.Kind.String(),
		Class:     block.Class.String(),
		StartLine: block.Lines.First + 1,
		EndLine:   block.Lines.Last + 1,
		Text:      block.Text,
		Title:     block.Title,
		Level:     block.HeadingLevel,
		Language:  block.Language,
		Detected:  block.Detected,
		Diagram:   string(block.Diagram),
	}
}
