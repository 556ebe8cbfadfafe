package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/inkwell/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree. Goldmark
// segments are relative to the body it parsed; base shifts them back into
// snapshot offsets.
type mapper struct {
	snap    *mdast.FileSnapshot
	content []byte
	base    int

	// unplaced holds top-level blocks goldmark gave no segments, such as
	// thematic breaks and empty fences. settleSpans places them.
	unplaced map[*mdast.Node]bool
}

// newMapper creates a new mapper for the body of snap starting at base.
func newMapper(snap *mdast.FileSnapshot, base int) *mapper {
	return &mapper{
		snap:     snap,
		content:  snap.Content[base:],
		base:     base,
		unplaced: make(map[*mdast.Node]bool),
	}
}

// mapChildren recursively maps all children of a goldmark node to mdast nodes.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		mdNode := m.mapNode(child)
		m.place(mdNode, child)
		mdast.AppendChild(parent, mdNode)

		// A text node that ends a line is followed by an explicit break.
		if t, ok := child.(*ast.Text); ok {
			switch {
			case t.HardLineBreak():
				mdast.AppendChild(parent, mdast.NewNode(mdast.NodeHardBreak))
			case t.SoftLineBreak():
				mdast.AppendChild(parent, mdast.NewNode(mdast.NodeSoftBreak))
			}
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		node = mdast.NewNode(mdast.NodeHeading)
		node.Block = mdast.NewBlockAttrs().WithHeadingLevel(gmn.Level)
		m.mapChildren(gmNode, node)

	case *ast.Paragraph, *ast.TextBlock:
		node = mdast.NewNode(mdast.NodeParagraph)
		m.mapChildren(gmNode, node)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = mdast.NewNode(mdast.NodeListItem)
		m.mapChildren(gmNode, node)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapChildren(gmNode, node)

	case *ast.FencedCodeBlock:
		node = mdast.NewNode(mdast.NodeCodeBlock)
		info := ""
		if gmn.Info != nil {
			info = string(gmn.Info.Value(m.content))
		}
		node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
			FenceChar: m.fenceChar(gmn),
			Info:      info,
			Content:   m.linesValue(gmn),
		})

	case *ast.CodeBlock:
		node = mdast.NewNode(mdast.NodeCodeBlock)
		node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
			Indented: true,
			Content:  m.linesValue(gmn),
		})

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node = mdast.NewNode(mdast.NodeHTMLBlock)

	// Inline-level nodes.
	case *ast.Text:
		node = mdast.NewNode(mdast.NodeText)
		node.Inline = mdast.NewInlineAttrs().WithText(gmn.Value(m.content))

	case *ast.String:
		node = mdast.NewNode(mdast.NodeText)
		node.Inline = mdast.NewInlineAttrs().WithText(gmn.Value)

	case *ast.Emphasis:
		if gmn.Level == 2 {
			node = mdast.NewNode(mdast.NodeStrong)
		} else {
			node = mdast.NewNode(mdast.NodeEmphasis)
		}
		node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(gmn.Level)
		m.mapChildren(gmNode, node)

	case *ast.CodeSpan:
		node = mdast.NewNode(mdast.NodeCodeSpan)
		var text []byte
		for child := gmn.FirstChild(); child != nil; child = child.NextSibling() {
			if textNode, ok := child.(*ast.Text); ok {
				text = append(text, textNode.Value(m.content)...)
			}
		}
		node.Inline = mdast.NewInlineAttrs().WithText(text)

	case *ast.Link:
		node = mdast.NewNode(mdast.NodeLink)
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		})
		m.mapChildren(gmNode, node)

	case *ast.Image:
		node = mdast.NewNode(mdast.NodeImage)
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(gmn.Destination),
			Title:       string(gmn.Title),
		})
		m.mapChildren(gmNode, node)

	case *ast.AutoLink:
		node = mdast.NewNode(mdast.NodeLink)
		node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
			Destination: string(gmn.URL(m.content)),
			Autolink:    true,
		})
		label := mdast.NewNode(mdast.NodeText)
		label.Inline = mdast.NewInlineAttrs().WithText(gmn.Label(m.content))
		mdast.AppendChild(node, label)

	case *ast.RawHTML:
		node = mdast.NewNode(mdast.NodeHTMLInline)

	// GFM extension nodes.
	case *east.Strikethrough:
		node = mdast.NewNode(mdast.NodeEmphasis)
		node.Ext = map[string]any{"strikethrough": true}
		m.mapChildren(gmNode, node)

	case *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeText)
		node.Ext = map[string]any{"taskCheckbox": true, "checked": gmn.IsChecked}

	case *east.Table:
		node = mdast.NewNode(mdast.NodeTable)
		node.Ext = map[string]any{"alignments": gmn.Alignments}
		m.mapChildren(gmNode, node)

	case *east.TableHeader, *east.TableRow:
		node = mdast.NewNode(mdast.NodeRaw)
		node.Ext = map[string]any{"tableRow": true}
		m.mapChildren(gmNode, node)

	case *east.TableCell:
		node = mdast.NewNode(mdast.NodeRaw)
		node.Ext = map[string]any{"tableCell": true, "alignment": gmn.Alignment}
		m.mapChildren(gmNode, node)

	default:
		// Fallback for unknown node types.
		node = mdast.NewNode(mdast.NodeRaw)
		m.mapChildren(gmNode, node)
	}

	return node
}

// mapList converts a goldmark List to an mdast node.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	attrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if !list.IsOrdered() {
		attrs.BulletMarker = string(list.Marker)
	}

	node.Block = mdast.NewBlockAttrs().WithList(attrs)
	m.mapChildren(list, node)
	return node
}

// place records the byte range and line span of node from its goldmark
// source segments.
func (m *mapper) place(node *mdast.Node, gmNode ast.Node) {
	start, stop, ok := m.segmentRange(gmNode)
	if !ok {
		if node.IsBlock() {
			m.unplaced[node] = true
		}
		return
	}

	node.Range = mdast.SourceRange{StartOffset: start + m.base, EndOffset: stop + m.base}
	node.Span = mdast.LineSpan{
		First: m.snap.LineOf(node.Range.StartOffset),
		Last:  m.snap.LineOf(max(node.Range.EndOffset-1, node.Range.StartOffset)),
	}

	switch gmNode.(type) {
	case *ast.FencedCodeBlock:
		// Segments hold the code only; the opening fence is the line above.
		node.Span.First = max(node.Span.First-1, 0)
		node.Range.StartOffset = m.snap.Lines[node.Span.First].StartOffset
	case *ast.Heading:
		if gmNode.Parent().Kind() == ast.KindDocument && m.isSetext(node.Span.First) {
			node.Block.Setext = true
			node.Span.Last = min(node.Span.Last+1, m.snap.LineCount()-1)
			node.Range.EndOffset = m.snap.Lines[node.Span.Last].NewlineStart
		}
	}
}

// segmentRange returns the smallest byte range covering every segment
// beneath n, relative to the parsed body.
func (m *mapper) segmentRange(n ast.Node) (int, int, bool) {
	start, stop := -1, -1
	extend := func(s, e int) {
		if start < 0 || s < start {
			start = s
		}
		if e > stop {
			stop = e
		}
	}

	// Inline nodes panic on Lines().
	if n.Type() == ast.TypeBlock {
		lines := n.Lines()
		for i := range lines.Len() {
			seg := lines.At(i)
			extend(seg.Start, seg.Stop)
		}
	}

	switch t := n.(type) {
	case *ast.Text:
		extend(t.Segment.Start, t.Segment.Stop)
	case *ast.RawHTML:
		for i := range t.Segments.Len() {
			seg := t.Segments.At(i)
			extend(seg.Start, seg.Stop)
		}
	}

	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if s, e, ok := m.segmentRange(child); ok {
			extend(s, e)
		}
	}

	return start, stop, start >= 0 && stop >= start
}

// settleSpans fixes the spans of the top-level blocks so that together
// they describe which source lines each block occupies. Blocks without
// segments start at the first non-blank line after their predecessor, and
// every block extends over trailing markup (closing fences, lazy lines) up
// to the last non-blank line before the next block.
func (m *mapper) settleSpans(root *mdast.Node) {
	blocks := root.Children()
	prevLast := -1

	for _, block := range blocks {
		if m.unplaced[block] {
			first := m.nextNonBlank(prevLast + 1)
			block.Span = mdast.LineSpan{First: first, Last: first}
		}
		if block.Span.First <= prevLast {
			block.Span.First = min(prevLast+1, m.snap.LineCount()-1)
		}
		block.Span.Last = max(block.Span.Last, block.Span.First)
		prevLast = block.Span.Last
	}

	for i, block := range blocks {
		limit := m.snap.LineCount() - 1
		if i+1 < len(blocks) {
			limit = blocks[i+1].Span.First - 1
		}
		for limit > block.Span.Last && m.snap.IsBlankLine(limit) {
			limit--
		}
		block.Span.Last = max(block.Span.Last, limit)

		block.Range = mdast.SourceRange{
			StartOffset: m.snap.Lines[block.Span.First].StartOffset,
			EndOffset:   m.snap.Lines[block.Span.Last].NewlineStart,
		}
	}
}

func (m *mapper) nextNonBlank(line int) int {
	last := m.snap.LineCount() - 1
	for line < last && m.snap.IsBlankLine(line) {
		line++
	}
	return min(line, last)
}

// isSetext reports whether the heading starting on line is underlined
// rather than opened with '#'.
func (m *mapper) isSetext(line int) bool {
	return !bytes.HasPrefix(bytes.TrimLeft(m.snap.LineText(line), " "), []byte("#"))
}

// fenceChar reads the fence character from the line above the code.
func (m *mapper) fenceChar(codeBlock *ast.FencedCodeBlock) byte {
	lines := codeBlock.Lines()
	if lines.Len() == 0 {
		return '`'
	}

	fenceLine := m.snap.LineOf(lines.At(0).Start+m.base) - 1
	trimmed := bytes.TrimLeft(m.snap.LineText(fenceLine), " \t")
	if len(trimmed) > 0 && trimmed[0] == '~' {
		return '~'
	}
	return '`'
}

// linesValue concatenates the line segments of a block.
func (m *mapper) linesValue(n ast.Node) []byte {
	var buf bytes.Buffer

	lines := n.Lines()
	for i := range lines.Len() {
		seg := lines.At(i)
		buf.Write(seg.Value(m.content))
	}

	return buf.Bytes()
}
