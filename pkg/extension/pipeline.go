// Package extension turns a parsed document into the blocks the preview
// pane shows.
//
// A Pipeline run has three stages:
//
//  1. Frontmatter extraction. A leading frontmatter block is decoded into
//     Result.Frontmatter and dropped from the block stream. When it cannot
//     be decoded as a mapping it is shown as literal text instead.
//  2. Classification. Each top-level block is code, display math, a block
//     holding shortcodes, or plain.
//  3. Substitution. Code blocks get a language tag. Other blocks have math
//     spans replaced by Unicode approximations and :shortcodes: replaced by
//     emoji, subject to Options.
//
// Nothing else is rewritten: a block without math or shortcodes keeps its
// source text exactly, heading markers included. Headings additionally carry
// their bare Title for renderers that style them.
//
// Run reads the snapshot and never modifies it. The same snapshot and
// Options always produce the same Result.
package extension

import (
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/inkwell/internal/logging"
	"github.com/yaklabco/inkwell/pkg/config"
	"github.com/yaklabco/inkwell/pkg/langdetect"
	"github.com/yaklabco/inkwell/pkg/mdast"
	"github.com/yaklabco/inkwell/pkg/viewsync"
)

// detectionTTL bounds how long an unused language guess is remembered.
const detectionTTL = 10 * time.Minute

// Options selects the substitutions a Pipeline performs.
type Options struct {
	Math           config.MathMode
	RenderEmoji    bool
	DetectLanguage bool
}

// OptionsFrom extracts pipeline options from settings.
func OptionsFrom(s config.Settings) Options {
	return Options{
		Math:           s.Markdown.Math,
		RenderEmoji:    s.Markdown.RenderEmoji,
		DetectLanguage: s.Markdown.DetectLanguage,
	}
}

// Pipeline transforms snapshots into display blocks.
type Pipeline struct {
	opts     Options
	detector *langdetect.Detector
	logger   *log.Logger
}

// New creates a Pipeline. A nil logger selects the default.
func New(opts Options, logger *log.Logger) *Pipeline {
	if logger == nil {
		logger = logging.Default()
	}
	return &Pipeline{
		opts:     opts,
		detector: langdetect.NewDetector(detectionTTL),
		logger:   logger,
	}
}

// Options returns the options the pipeline was built with.
func (p *Pipeline) Options() Options { return p.opts }

// Run transforms snap. A nil snapshot yields an empty Result.
func (p *Pipeline) Run(snap *mdast.FileSnapshot) *Result {
	result := &Result{}
	if snap == nil {
		return result
	}

	subs := substitutions{
		math:      p.opts.Math != config.MathSource,
		shortcode: p.opts.RenderEmoji,
	}

	var entries []viewsync.Entry
	for _, node := range snap.Blocks() {
		block, keep := p.block(snap, node, subs, result)
		if !keep {
			continue
		}

		block.Index = len(result.Blocks)
		result.Blocks = append(result.Blocks, block)
		entries = append(entries, viewsync.Entry{
			FirstLine: node.Span.First,
			LastLine:  node.Span.Last,
			Block:     block.Index,
			Rendered:  block.Text,
		})
	}

	result.Map = viewsync.NewMap(entries)
	return result
}

// block builds the display block for node. It returns false when the node
// was consumed without producing a block.
func (p *Pipeline) block(snap *mdast.FileSnapshot, node *mdast.Node, subs substitutions, result *Result) (Block, bool) {
	b := Block{Kind: node.Kind, Lines: node.Span}

	switch {
	case snap.Degraded:
		b.Source = string(node.SpanText())
		b.Text = b.Source
		return b, true

	case node.Kind == mdast.NodeFrontmatter:
		if result.Frontmatter == nil && node.Block != nil {
			fm, err := DecodeFrontmatter(node.Block.Frontmatter)
			if err == nil {
				result.Frontmatter = fm
				return b, false
			}
			p.logger.Warn("frontmatter not decoded; showing as text",
				logging.FieldPath, snap.Path,
				logging.FieldError, err,
			)
		}
		b.Kind = mdast.NodeRaw
		b.Source = string(node.SpanText())
		b.Text = b.Source
		return b, true

	case node.Kind == mdast.NodeCodeBlock:
		b.Class = ClassCode
		p.code(&b, node)
		return b, true
	}

	b.Source = string(node.SpanText())
	switch {
	case node.Kind == mdast.NodeParagraph && isDisplayMath(b.Source):
		b.Class = ClassMath
	case hasShortcode(b.Source):
		b.Class = ClassShortcode
	}
	b.Text = subs.rewrite(b.Source)

	if node.Kind == mdast.NodeHeading {
		b.HeadingLevel = node.HeadingLevel()
		b.Title = subs.rewrite(headingTitle(node, b.Source))
	}

	return b, true
}

func (p *Pipeline) code(b *Block, node *mdast.Node) {
	attrs := node.CodeBlock()
	if attrs == nil {
		b.Source = string(node.SpanText())
		b.Text = b.Source
		return
	}

	b.Source = strings.TrimSuffix(string(attrs.Content), "\n")
	b.Text = b.Source
	b.Language = strings.ToLower(attrs.Language())

	if b.Language == "" && p.opts.DetectLanguage {
		if lang := p.detector.Detect(attrs.Content); lang != langdetect.Text {
			b.Language = lang
			b.Detected = true
			p.logger.Debug("detected code language",
				logging.FieldLanguage, lang,
				logging.FieldLines, node.Span.Count(),
			)
		}
	}

	if b.Language == "mermaid" {
		b.Diagram = DetectDiagram(b.Source)
	}
}

// headingTitle strips the ATX markers or setext underline from a heading's
// source lines.
func headingTitle(node *mdast.Node, src string) string {
	if node.Block != nil && node.Block.Setext {
		lines := strings.Split(src, "\n")
		if len(lines) > 1 {
			lines = lines[:len(lines)-1]
		}
		for i := range lines {
			lines[i] = strings.TrimSpace(lines[i])
		}
		return strings.Join(lines, "\n")
	}

	line, _, _ := strings.Cut(src, "\n")
	line = strings.TrimSpace(line)
	line = strings.TrimSpace(strings.TrimLeft(line, "#"))
	if closed := strings.TrimRight(line, "#"); closed != line && (closed == "" || strings.HasSuffix(closed, " ")) {
		line = strings.TrimSpace(closed)
	}
	return line
}
