package rope

// Selection is a range between an anchor and a head. The head is where the
// cursor sits; the anchor stays put while the selection is extended. A
// selection whose anchor equals its head is a bare cursor.
type Selection struct {
	Anchor Position
	Head   Position
}

// Caret returns the empty selection at pos.
func Caret(pos Position) Selection {
	return Selection{Anchor: pos, Head: pos}
}

// Empty reports whether s selects nothing.
func (s Selection) Empty() bool {
	return s.Anchor == s.Head
}

// Start returns the earlier of anchor and head.
func (s Selection) Start() Position {
	if s.Head.Less(s.Anchor) {
		return s.Head
	}
	return s.Anchor
}

// End returns the later of anchor and head.
func (s Selection) End() Position {
	if s.Head.Less(s.Anchor) {
		return s.Anchor
	}
	return s.Head
}

// ClampSelection clamps both ends of s onto the text.
func (r Rope) ClampSelection(s Selection) Selection {
	return Selection{Anchor: r.Clamp(s.Anchor), Head: r.Clamp(s.Head)}
}
