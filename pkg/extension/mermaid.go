package extension

import "strings"

// DiagramKind names the kind of a mermaid diagram.
type DiagramKind string

const (
	DiagramNone      DiagramKind = ""
	DiagramFlowchart DiagramKind = "flowchart"
	DiagramSequence  DiagramKind = "sequence"
	DiagramState     DiagramKind = "state"
	DiagramPie       DiagramKind = "pie"
	DiagramUnknown   DiagramKind = "unknown"
)

var diagramPrefixes = []struct {
	prefix string
	kind   DiagramKind
}{
	{"graph", DiagramFlowchart},
	{"flowchart", DiagramFlowchart},
	{"sequencediagram", DiagramSequence},
	{"statediagram", DiagramState},
	{"pie", DiagramPie},
}

// DetectDiagram classifies mermaid source by its first non-blank line.
func DetectDiagram(src string) DiagramKind {
	for line := range strings.SplitSeq(src, "\n") {
		line = strings.ToLower(strings.TrimSpace(line))
		if line == "" {
			continue
		}
		for _, p := range diagramPrefixes {
			if strings.HasPrefix(line, p.prefix) {
				return p.kind
			}
		}
		return DiagramUnknown
	}
	return DiagramUnknown
}
