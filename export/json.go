package export

import (
	"encoding/json"
	"fmt"

	"sadt/diagram"
)

// JSONExporter writes the diagram document the editor loads and saves.
type JSONExporter struct {
	Indent string
}

// NewJSONExporter creates a new JSON exporter
func NewJSONExporter() *JSONExporter {
	return &JSONExporter{Indent: "  "}
}

// Export checks the diagram's invariants and serialises it.
func (e *JSONExporter) Export(d diagram.View) (string, error) {
	if d == nil {
		return "", fmt.Errorf("diagram is nil")
	}
	doc, err := diagram.FromParts(d.Nodes(), d.Arrows())
	if err != nil {
		return "", fmt.Errorf("invalid diagram: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", e.Indent)
	if err != nil {
		return "", fmt.Errorf("failed to marshal diagram: %w", err)
	}
	return string(data) + "\n", nil
}

// GetFileExtension returns the recommended file extension
func (e *JSONExporter) GetFileExtension() string {
	return ".json"
}

// GetFormatName returns the format name
func (e *JSONExporter) GetFormatName() string {
	return "JSON"
}
