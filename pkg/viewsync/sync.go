package viewsync

// State is the lifecycle of a Sync.
type State int

const (
	// Unsynced means no Map has been installed yet.
	Unsynced State = iota
	// Mapped means the installed Map matches the document.
	Mapped
	// Stale means the document changed since the Map was built. Lookups
	// keep using the old Map until a new one is installed.
	Stale
)

func (s State) String() string {
	switch s {
	case Unsynced:
		return "unsynced"
	case Mapped:
		return "mapped"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}

// Sync holds the source line offset, the preview block offset, and the last
// installed Map. It is not safe for concurrent use.
type Sync struct {
	state State
	m     Map
	line  int
	block int
}

// New returns an Unsynced Sync at the top of both panes.
func New() *Sync {
	return &Sync{}
}

// State returns the current state.
func (s *Sync) State() State { return s.state }

// Map returns the installed map.
func (s *Sync) Map() Map { return s.m }

// SourceLine returns the source pane offset.
func (s *Sync) SourceLine() int { return s.line }

// PreviewBlock returns the preview pane offset.
func (s *Sync) PreviewBlock() int { return s.block }

// Install replaces the map and moves the preview to follow the source pane.
func (s *Sync) Install(m Map) {
	s.m = m
	s.state = Mapped
	s.block = m.BlockForLine(s.line)
}

// Invalidate marks the map as out of date after a document edit.
func (s *Sync) Invalidate() {
	if s.state == Mapped {
		s.state = Stale
	}
}

// ScrollSource moves the source pane and, once a map exists, the preview.
func (s *Sync) ScrollSource(line int) {
	s.line = max(line, 0)
	if s.state != Unsynced {
		s.block = s.m.BlockForLine(s.line)
	}
}

// ScrollPreview moves the preview pane and, once a map exists, the source.
func (s *Sync) ScrollPreview(block int) {
	block = max(block, 0)
	if s.state != Unsynced && s.m.Len() > 0 {
		block = min(block, s.m.entries[s.m.Len()-1].Block)
	}
	s.block = block
	if s.state != Unsynced {
		s.line = s.m.LineForBlock(block)
	}
}

// PreviewRow returns the preview offset in wrapped rows at width cells.
func (s *Sync) PreviewRow(width int) int {
	return s.m.RowOffset(s.block, width)
}
