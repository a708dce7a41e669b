package export

import (
	"fmt"
	"strings"

	"sadt/diagram"
)

// MermaidExporter exports diagrams as a Mermaid flowchart
type MermaidExporter struct{}

// NewMermaidExporter creates a new Mermaid exporter
func NewMermaidExporter() *MermaidExporter {
	return &MermaidExporter{}
}

// Export converts the diagram to Mermaid syntax. Each arrow type gets its own
// link style and the SVG colour through linkStyle.
func (e *MermaidExporter) Export(d diagram.View) (string, error) {
	nodes, arrows, keys, err := graph(d)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("graph LR\n")
	for _, n := range nodes {
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", keys[n.ID], e.escapeLabel(n.Name))
	}

	if len(arrows) > 0 {
		sb.WriteString("\n")
	}
	for _, a := range arrows {
		link := e.link(a.Type)
		if a.HasLabel() {
			fmt.Fprintf(&sb, "    %s %s|\"%s\"| %s\n", keys[a.Source.Node], link, e.escapeLabel(a.Label), keys[a.Target.Node])
		} else {
			fmt.Fprintf(&sb, "    %s %s %s\n", keys[a.Source.Node], link, keys[a.Target.Node])
		}
	}
	for i, a := range arrows {
		fmt.Fprintf(&sb, "    linkStyle %d stroke:%s\n", i, ArrowColor(a.Type))
	}
	return sb.String(), nil
}

func (e *MermaidExporter) link(t diagram.ArrowType) string {
	switch t {
	case diagram.Output:
		return "==>"
	case diagram.Control:
		return "-.->"
	case diagram.Mechanism:
		return "--o"
	default:
		return "-->"
	}
}

// mermaidEscaper writes the characters that end a quoted Mermaid string or
// a |label| as entity codes. '#' is escaped too so decoding is exact.
var mermaidEscaper = strings.NewReplacer(
	"#", "#35;",
	`"`, "#quot;",
	"|", "#124;",
	"<", "#lt;",
	">", "#gt;",
	"\n", "<br/>",
)

// escapeLabel makes a label safe inside a quoted Mermaid string
func (e *MermaidExporter) escapeLabel(label string) string {
	return mermaidEscaper.Replace(label)
}

// GetFileExtension returns the recommended file extension
func (e *MermaidExporter) GetFileExtension() string {
	return ".mmd"
}

// GetFormatName returns the format name
func (e *MermaidExporter) GetFormatName() string {
	return "Mermaid"
}
