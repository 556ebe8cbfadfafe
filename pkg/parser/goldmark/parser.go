// Package goldmark parses Markdown into mdast snapshots using the goldmark
// library. Parsing is whole-document; the parser is stateless after
// construction and can be shared by every document that uses the same
// flavor.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/inkwell/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser parses Markdown with goldmark.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a FileSnapshot.
//
// The method:
//  1. Checks for context cancellation.
//  2. Builds a FileSnapshot shell with path, content, and lines.
//  3. Splits off a leading frontmatter block, if any.
//  4. Parses the remaining body with goldmark.
//  5. Maps the goldmark AST onto mdast nodes with byte ranges.
//  6. Settles the line spans of the top-level blocks.
//  7. Sets File back-references throughout the tree.
//
// Malformed Markdown never fails: goldmark accepts any input, and
// unrecognized nodes map to NodeRaw.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot := mdast.NewFileSnapshot(path, copyContent(content))
	root := mdast.NewDocument()

	bodyStart := 0
	if fm := extractFrontmatter(snapshot); fm != nil {
		mdast.AppendChild(root, fm)
		bodyStart = snapshot.Lines[fm.Span.Last].EndOffset
	}

	body := snapshot.Content[bodyStart:]
	gmDoc := p.md.Parser().Parse(text.NewReader(body), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	m := newMapper(snapshot, bodyStart)
	m.mapChildren(gmDoc, root)
	m.settleSpans(root)

	root.Range = mdast.SourceRange{StartOffset: 0, EndOffset: len(snapshot.Content)}
	root.Span = mdast.LineSpan{First: 0, Last: snapshot.LineCount() - 1}
	snapshot.Root = root
	mdast.SetFile(root, snapshot)

	return snapshot, nil
}

// extractFrontmatter returns a NodeFrontmatter when line 0 is exactly
// "---" or "+++" and a matching closing line follows.
func extractFrontmatter(snap *mdast.FileSnapshot) *mdast.Node {
	var format mdast.FrontmatterFormat

	delim := bytes.TrimSuffix(snap.LineText(0), []byte{'\r'})
	switch string(delim) {
	case "---":
		format = mdast.FrontmatterYAML
	case "+++":
		format = mdast.FrontmatterTOML
	default:
		return nil
	}

	for line := 1; line < snap.LineCount(); line++ {
		// CRLF lines already end before the '\r'; a final line may not.
		if !bytes.Equal(bytes.TrimSuffix(snap.LineText(line), []byte{'\r'}), delim) {
			continue
		}

		node := mdast.NewNode(mdast.NodeFrontmatter)
		node.Range = mdast.SourceRange{StartOffset: 0, EndOffset: snap.Lines[line].NewlineStart}
		node.Span = mdast.LineSpan{First: 0, Last: line}
		node.Block = &mdast.BlockAttrs{Frontmatter: &mdast.FrontmatterAttrs{
			Format: format,
			Raw:    snap.Content[snap.Lines[1].StartOffset:snap.Lines[line].StartOffset],
		}}
		return node
	}

	return nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option

	switch flavor {
	case FlavorGFM:
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
