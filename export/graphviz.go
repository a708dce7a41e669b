package export

import (
	"fmt"
	"strings"

	"sadt/diagram"
)

// GraphvizExporter exports diagrams to Graphviz DOT syntax
type GraphvizExporter struct{}

// NewGraphvizExporter creates a new Graphviz exporter
func NewGraphvizExporter() *GraphvizExporter {
	return &GraphvizExporter{}
}

// Export converts the diagram to DOT. Nodes are pinned at their diagram
// position (for neato -n) and arrows attach to the compass port of their
// connection side.
func (e *GraphvizExporter) Export(d diagram.View) (string, error) {
	nodes, arrows, keys, err := graph(d)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("digraph sadt {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=box];\n")
	sb.WriteString("  edge [arrowhead=normal];\n\n")

	for _, n := range nodes {
		c := n.Rect.Center()
		// DOT's y axis points up.
		fmt.Fprintf(&sb, "  %s [label=\"%s\", pos=\"%g,%g!\", width=%g, height=%g];\n",
			keys[n.ID], e.escapeLabel(n.Name), c.X, -c.Y, n.Rect.Width()/72, n.Rect.Height()/72)
	}

	if len(arrows) > 0 {
		sb.WriteString("\n")
	}
	for _, a := range arrows {
		attrs := []string{fmt.Sprintf("color=%s", ArrowColor(a.Type))}
		if a.Type == diagram.Control {
			attrs = append(attrs, "style=dashed")
		}
		if a.HasLabel() {
			attrs = append(attrs, fmt.Sprintf("label=\"%s\"", e.escapeLabel(a.Label)))
		}
		fmt.Fprintf(&sb, "  %s:%s -> %s:%s [%s];\n",
			keys[a.Source.Node], port(a.Source.Side),
			keys[a.Target.Node], port(a.Target.Side),
			strings.Join(attrs, ", "))
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}

// port maps a side to a DOT compass point.
func port(s diagram.Side) string {
	switch s {
	case diagram.Left:
		return "w"
	case diagram.Right:
		return "e"
	case diagram.Top:
		return "n"
	default:
		return "s"
	}
}

// escapeLabel escapes special characters in labels
func (e *GraphvizExporter) escapeLabel(label string) string {
	label = strings.ReplaceAll(label, `\`, `\\`)
	label = strings.ReplaceAll(label, `"`, `\"`)
	return strings.ReplaceAll(label, "\n", `\n`)
}

// GetFileExtension returns the recommended file extension
func (e *GraphvizExporter) GetFileExtension() string {
	return ".dot"
}

// GetFormatName returns the format name
func (e *GraphvizExporter) GetFormatName() string {
	return "Graphviz DOT"
}
