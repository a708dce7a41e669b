// Package export renders diagrams into other formats: JSON, SVG, plain text
// and the text syntaxes of common diagram tools.
package export

import (
	"errors"
	"fmt"
	"strings"

	"sadt/diagram"
)

// Format represents an export format
type Format string

const (
	FormatJSON     Format = "json"
	FormatSVG      Format = "svg"
	FormatASCII    Format = "ascii"
	FormatMermaid  Format = "mermaid"
	FormatDOT      Format = "dot"
	FormatPlantUML Format = "plantuml"
	FormatD2       Format = "d2"
)

var (
	// ErrEmptyDiagram is returned by the graph-syntax exporters when there
	// is nothing to draw.
	ErrEmptyDiagram = errors.New("diagram has no nodes")
	// ErrUnsupportedFormat is returned for unknown format names.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// Exporter interface for different export formats
type Exporter interface {
	// Export converts a diagram to the target format
	Export(d diagram.View) (string, error)
	// GetFileExtension returns the recommended file extension for this format
	GetFileExtension() string
	// GetFormatName returns a human-readable name for this format
	GetFormatName() string
}

// NewExporter creates an exporter for the specified format
func NewExporter(format Format) (Exporter, error) {
	switch format {
	case FormatJSON:
		return NewJSONExporter(), nil
	case FormatSVG:
		return NewSVGExporter(), nil
	case FormatASCII:
		return NewASCIIExporter(), nil
	case FormatMermaid:
		return NewMermaidExporter(), nil
	case FormatDOT:
		return NewGraphvizExporter(), nil
	case FormatPlantUML:
		return NewPlantUMLExporter(), nil
	case FormatD2:
		return NewD2Exporter(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// ParseFormat converts a string, or one of its common aliases, to a Format
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "svg":
		return FormatSVG, nil
	case "ascii", "text", "txt":
		return FormatASCII, nil
	case "mermaid", "mmd":
		return FormatMermaid, nil
	case "dot", "graphviz", "gv":
		return FormatDOT, nil
	case "plantuml", "puml":
		return FormatPlantUML, nil
	case "d2":
		return FormatD2, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// GetAvailableFormats returns a list of all available export formats
func GetAvailableFormats() []Format {
	return []Format{
		FormatJSON,
		FormatSVG,
		FormatASCII,
		FormatMermaid,
		FormatDOT,
		FormatPlantUML,
		FormatD2,
	}
}

// GetFormatDescriptions returns human-readable descriptions of all formats
func GetFormatDescriptions() map[Format]string {
	return map[Format]string{
		FormatJSON:     "Diagram document (the editor's own file format)",
		FormatSVG:      "Scalable Vector Graphics image",
		FormatASCII:    "Unicode box drawing for terminals and plain text",
		FormatMermaid:  "Mermaid flowchart syntax (for Markdown)",
		FormatDOT:      "Graphviz DOT syntax",
		FormatPlantUML: "PlantUML diagram syntax",
		FormatD2:       "D2 diagram syntax",
	}
}

// ArrowColor is the colour an arrow type is drawn with.
func ArrowColor(t diagram.ArrowType) string {
	switch t {
	case diagram.Output:
		return "lightblue"
	case diagram.Control:
		return "lightcoral"
	case diagram.Mechanism:
		return "yellow"
	default:
		return "lightgreen"
	}
}

// nodeKeys assigns short identifiers N1, N2, ... in insertion order.
func nodeKeys(nodes []diagram.Node) map[diagram.NodeID]string {
	keys := make(map[diagram.NodeID]string, len(nodes))
	for i, n := range nodes {
		keys[n.ID] = fmt.Sprintf("N%d", i+1)
	}
	return keys
}

// graph collects what the graph-syntax exporters need and rejects empty
// diagrams.
func graph(d diagram.View) ([]diagram.Node, []diagram.Arrow, map[diagram.NodeID]string, error) {
	if d == nil {
		return nil, nil, nil, fmt.Errorf("diagram is nil")
	}
	nodes := d.Nodes()
	if len(nodes) == 0 {
		return nil, nil, nil, ErrEmptyDiagram
	}
	return nodes, d.Arrows(), nodeKeys(nodes), nil
}
