package rope

import (
	"strings"
	"unicode/utf8"
)

// maxLeafRunes is the largest chunk a leaf holds. Adjacent small leaves are
// merged on concatenation, so leaves stay between a few runes and this bound.
const maxLeafRunes = 512

// node is a rope tree node. Leaves (no children) hold text; internal nodes
// always have both children. Counts are totals for the subtree.
type node struct {
	left, right *node

	text string // leaves only

	runes  int // rune count
	lines  int // newline count
	height int // 1 for leaves
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func newLeaf(text string) *node {
	return &node{
		text:   text,
		runes:  utf8.RuneCountInString(text),
		lines:  strings.Count(text, "\n"),
		height: 1,
	}
}

// newInternal joins two non-nil subtrees without rebalancing.
func newInternal(left, right *node) *node {
	return &node{
		left:   left,
		right:  right,
		runes:  left.runes + right.runes,
		lines:  left.lines + right.lines,
		height: 1 + max(left.height, right.height),
	}
}

// rebalance joins two subtrees whose heights differ by at most two,
// rotating once or twice to restore the AVL bound.
func rebalance(left, right *node) *node {
	hl, hr := height(left), height(right)

	switch {
	case hl > hr+1:
		if height(left.left) >= height(left.right) {
			return newInternal(left.left, newInternal(left.right, right))
		}
		lr := left.right
		return newInternal(newInternal(left.left, lr.left), newInternal(lr.right, right))

	case hr > hl+1:
		if height(right.right) >= height(right.left) {
			return newInternal(newInternal(left, right.left), right.right)
		}
		rl := right.left
		return newInternal(newInternal(left, rl.left), newInternal(rl.right, right.right))

	default:
		return newInternal(left, right)
	}
}

// concat joins two subtrees in order, descending the taller one until the
// heights are close enough to rebalance.
func concat(left, right *node) *node {
	if left == nil || left.runes == 0 && left.isLeaf() {
		return right
	}
	if right == nil || right.runes == 0 && right.isLeaf() {
		return left
	}

	if left.isLeaf() && right.isLeaf() && left.runes+right.runes <= maxLeafRunes {
		return newLeaf(left.text + right.text)
	}

	switch hl, hr := left.height, right.height; {
	case hl > hr+1:
		return rebalance(left.left, concat(left.right, right))
	case hr > hl+1:
		return rebalance(concat(left, right.left), right.right)
	default:
		return newInternal(left, right)
	}
}

// split cuts a subtree at rune offset k. The left result holds [0, k).
func split(n *node, k int) (*node, *node) {
	if n == nil {
		return nil, nil
	}
	if k <= 0 {
		return nil, n
	}
	if k >= n.runes {
		return n, nil
	}

	if n.isLeaf() {
		b := byteOffset(n.text, k)
		return newLeaf(n.text[:b]), newLeaf(n.text[b:])
	}

	if k <= n.left.runes {
		a, b := split(n.left, k)
		return a, concat(b, n.right)
	}

	a, b := split(n.right, k-n.left.runes)
	return concat(n.left, a), b
}

// build assembles a height-balanced tree from a run of leaves.
func build(leaves []*node) *node {
	switch len(leaves) {
	case 0:
		return nil
	case 1:
		return leaves[0]
	}

	mid := len(leaves) / 2
	return newInternal(build(leaves[:mid]), build(leaves[mid:]))
}

// chunk cuts text into leaves of at most maxLeafRunes runes.
func chunk(text string) []*node {
	if text == "" {
		return nil
	}

	leaves := make([]*node, 0, len(text)/maxLeafRunes+1)
	start, count := 0, 0

	for i := range text {
		if count == maxLeafRunes {
			leaves = append(leaves, newLeaf(text[start:i]))
			start, count = i, 0
		}
		count++
	}

	return append(leaves, newLeaf(text[start:]))
}

// newlineOffset returns the rune offset of the k-th newline (1-based)
// within n. k must be in [1, n.lines].
func newlineOffset(n *node, k int) int {
	off := 0

	for !n.isLeaf() {
		if k <= n.left.lines {
			n = n.left
			continue
		}
		k -= n.left.lines
		off += n.left.runes
		n = n.right
	}

	i := 0
	for _, r := range n.text {
		if r == '\n' {
			k--
			if k == 0 {
				return off + i
			}
		}
		i++
	}

	return off + i
}

// newlinesBefore counts the newlines in [0, off) of n.
func newlinesBefore(n *node, off int) int {
	count := 0

	for n != nil && !n.isLeaf() {
		if off <= n.left.runes {
			n = n.left
			continue
		}
		off -= n.left.runes
		count += n.left.lines
		n = n.right
	}

	if n == nil {
		return count
	}

	i := 0
	for _, r := range n.text {
		if i >= off {
			break
		}
		if r == '\n' {
			count++
		}
		i++
	}

	return count
}

func (n *node) appendTo(sb *strings.Builder) {
	if n == nil {
		return
	}
	if n.isLeaf() {
		sb.WriteString(n.text)
		return
	}
	n.left.appendTo(sb)
	n.right.appendTo(sb)
}

// appendRange writes the runes in [start, end) of n.
func (n *node) appendRange(sb *strings.Builder, start, end int) {
	if n == nil || start >= end {
		return
	}

	if start <= 0 && end >= n.runes {
		n.appendTo(sb)
		return
	}

	if n.isLeaf() {
		sb.WriteString(n.text[byteOffset(n.text, start):byteOffset(n.text, end)])
		return
	}

	mid := n.left.runes
	if start < mid {
		n.left.appendRange(sb, start, min(end, mid))
	}
	if end > mid {
		n.right.appendRange(sb, max(start-mid, 0), end-mid)
	}
}

// byteOffset converts a rune index within s to a byte index, clamped to
// [0, len(s)].
func byteOffset(s string, runeIdx int) int {
	if runeIdx <= 0 {
		return 0
	}

	count := 0
	for i := range s {
		if count == runeIdx {
			return i
		}
		count++
	}

	return len(s)
}
