package export

import (
	"fmt"
	"strings"

	"sadt/diagram"
)

// PlantUMLExporter exports diagrams to PlantUML syntax
type PlantUMLExporter struct{}

// NewPlantUMLExporter creates a new PlantUML exporter
func NewPlantUMLExporter() *PlantUMLExporter {
	return &PlantUMLExporter{}
}

// Export converts the diagram to a PlantUML component diagram of rectangles.
func (e *PlantUMLExporter) Export(d diagram.View) (string, error) {
	nodes, arrows, keys, err := graph(d)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("@startuml\n")
	sb.WriteString("left to right direction\n\n")
	for _, n := range nodes {
		fmt.Fprintf(&sb, "rectangle \"%s\" as %s\n", e.escapeLabel(n.Name), keys[n.ID])
	}

	if len(arrows) > 0 {
		sb.WriteString("\n")
	}
	for _, a := range arrows {
		style := "#" + ArrowColor(a.Type)
		if a.Type == diagram.Control {
			style += ",dashed"
		}
		fmt.Fprintf(&sb, "%s -[%s]-> %s", keys[a.Source.Node], style, keys[a.Target.Node])
		if a.HasLabel() {
			fmt.Fprintf(&sb, " : %s", e.escapeLabel(a.Label))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("@enduml\n")
	return sb.String(), nil
}

// plantumlEscaper writes quotes, ampersands and backslashes as creole
// character references, leaving \n free to mean a line break.
var plantumlEscaper = strings.NewReplacer(
	"&", "&#38;",
	`"`, "&#34;",
	`\`, "&#92;",
	"\n", `\n`,
)

// escapeLabel escapes special characters in labels
func (e *PlantUMLExporter) escapeLabel(label string) string {
	return plantumlEscaper.Replace(label)
}

// GetFileExtension returns the recommended file extension
func (e *PlantUMLExporter) GetFileExtension() string {
	return ".puml"
}

// GetFormatName returns the format name
func (e *PlantUMLExporter) GetFormatName() string {
	return "PlantUML"
}
