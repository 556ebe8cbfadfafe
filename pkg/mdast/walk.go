package mdast

import "iter"

// All yields n and then its descendants in document order. Breaking out of
// the range stops the traversal.
func (n *Node) All() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		n.walk(yield)
	}
}

func (n *Node) walk(yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	if !yield(n) {
		return false
	}
	for child := n.FirstChild; child != nil; child = child.Next {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

// FindByKind returns every node of kind at or below root.
func FindByKind(root *Node, kind NodeKind) []*Node {
	var found []*Node
	for n := range root.All() {
		if n.Kind == kind {
			found = append(found, n)
		}
	}
	return found
}

// InlineText concatenates the literal text beneath n: text and code span
// contents, with soft and hard breaks as newlines.
func InlineText(n *Node) string {
	var buf []byte
	for child := range n.All() {
		switch child.Kind {
		case NodeText, NodeCodeSpan:
			if child.Inline != nil {
				buf = append(buf, child.Inline.Text...)
			}
		case NodeSoftBreak, NodeHardBreak:
			buf = append(buf, '\n')
		}
	}
	return string(buf)
}
