package export

import (
	"fmt"
	"strings"

	"sadt/diagram"
)

// D2Exporter exports diagrams to D2 syntax
type D2Exporter struct{}

// NewD2Exporter creates a new D2 exporter
func NewD2Exporter() *D2Exporter {
	return &D2Exporter{}
}

// Export converts the diagram to D2. Nodes keep their diagram position
// through D2's top and left fields.
func (e *D2Exporter) Export(d diagram.View) (string, error) {
	nodes, arrows, keys, err := graph(d)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("direction: right\n\n")
	for _, n := range nodes {
		id := keys[n.ID]
		fmt.Fprintf(&sb, "%s: %s {\n", id, e.escapeLabel(n.Name))
		sb.WriteString("  shape: rectangle\n")
		fmt.Fprintf(&sb, "  width: %d\n  height: %d\n", int(n.Rect.Width()), int(n.Rect.Height()))
		fmt.Fprintf(&sb, "  top: %d\n  left: %d\n", int(n.Rect.Top()), int(n.Rect.Left()))
		sb.WriteString("}\n")
	}

	if len(arrows) > 0 {
		sb.WriteString("\n")
	}
	for _, a := range arrows {
		fmt.Fprintf(&sb, "%s -> %s", keys[a.Source.Node], keys[a.Target.Node])
		if a.HasLabel() {
			fmt.Fprintf(&sb, ": %s", e.escapeLabel(a.Label))
		}
		fmt.Fprintf(&sb, " {\n  style.stroke: %s\n", ArrowColor(a.Type))
		if a.Type == diagram.Control {
			sb.WriteString("  style.stroke-dash: 5\n")
		}
		sb.WriteString("}\n")
	}
	return sb.String(), nil
}

// escapeLabel quotes labels containing characters D2 treats as syntax
func (e *D2Exporter) escapeLabel(label string) string {
	if strings.ContainsAny(label, ":;{}|#\"'\n") || strings.TrimSpace(label) != label || label == "" {
		return fmt.Sprintf("%q", label)
	}
	return label
}

// GetFileExtension returns the recommended file extension
func (e *D2Exporter) GetFileExtension() string {
	return ".d2"
}

// GetFormatName returns the format name
func (e *D2Exporter) GetFormatName() string {
	return "D2"
}
