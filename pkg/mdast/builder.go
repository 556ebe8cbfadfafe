package mdast

// NewNode returns a detached node of the given kind.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return NewNode(NodeDocument)
}

// AppendChild adds child as the last child of parent. A child that is
// already attached somewhere is detached first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	Detach(child)

	child.Parent = parent
	child.Prev = parent.LastChild
	if parent.LastChild == nil {
		parent.FirstChild = child
	} else {
		parent.LastChild.Next = child
	}
	parent.LastChild = child
}

// Detach unlinks n from its parent and siblings. Its own children stay.
func Detach(n *Node) {
	if n == nil || n.Parent == nil {
		return
	}
	parent := n.Parent

	if n.Prev == nil {
		parent.FirstChild = n.Next
	} else {
		n.Prev.Next = n.Next
	}
	if n.Next == nil {
		parent.LastChild = n.Prev
	} else {
		n.Next.Prev = n.Prev
	}

	n.Parent, n.Prev, n.Next = nil, nil, nil
}

// SetFile points root and every node beneath it at file.
func SetFile(root *Node, file *FileSnapshot) {
	for n := range root.All() {
		n.File = file
	}
}
