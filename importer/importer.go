// Package importer turns diagrams written for other tools into SADT
// diagrams. Activities come from the nodes, and the arrow type is read back
// from the link style or colour the exporters use for it.
package importer

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"sadt/diagram"
	"sadt/export"
)

var (
	// ErrUnknownFormat is returned when no importer accepts the content or
	// the requested format name.
	ErrUnknownFormat = errors.New("unknown import format")
	// ErrEmpty is returned for sources without any node.
	ErrEmpty = errors.New("no nodes to import")
)

// Importer interface defines methods for importing diagrams from various formats
type Importer interface {
	// CanImport checks if the given content can be imported by this importer
	CanImport(content string) bool

	// Import converts the input content into a diagram
	Import(content string) (*diagram.Diagram, error)

	// GetFormatName returns the human-readable name of the format
	GetFormatName() string

	// GetFileExtensions returns common file extensions for this format
	GetFileExtensions() []string
}

// ImporterRegistry manages available importers
type ImporterRegistry struct {
	importers []Importer
}

// NewImporterRegistry creates a registry with every built-in importer.
// Detection tries them in order, so Mermaid's "graph" header is claimed
// before DOT's.
func NewImporterRegistry() *ImporterRegistry {
	return &ImporterRegistry{
		importers: []Importer{
			NewMermaidImporter(),
			NewPlantUMLImporter(),
			NewGraphvizImporter(),
			NewD2Importer(),
		},
	}
}

// Register adds a new importer to the registry
func (r *ImporterRegistry) Register(importer Importer) {
	r.importers = append(r.importers, importer)
}

// DetectFormat attempts to detect the format of the given content
func (r *ImporterRegistry) DetectFormat(content string) (Importer, error) {
	for _, imp := range r.importers {
		if imp.CanImport(content) {
			return imp, nil
		}
	}
	return nil, fmt.Errorf("%w: unable to detect format", ErrUnknownFormat)
}

// Import attempts to import content using auto-detection
func (r *ImporterRegistry) Import(content string) (*diagram.Diagram, error) {
	importer, err := r.DetectFormat(content)
	if err != nil {
		return nil, err
	}
	return importer.Import(content)
}

// ImportWithFormat imports content using a specific format. The format may
// be the importer's name, one of its extensions without the dot, or any
// alias the exporters accept.
func (r *ImporterRegistry) ImportWithFormat(content, format string) (*diagram.Diagram, error) {
	imp, err := r.Lookup(format)
	if err != nil {
		return nil, err
	}
	return imp.Import(content)
}

// Lookup finds the importer for a format name.
func (r *ImporterRegistry) Lookup(format string) (Importer, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	alias, aliasErr := export.ParseFormat(format)
	for _, imp := range r.importers {
		if strings.ToLower(imp.GetFormatName()) == format {
			return imp, nil
		}
		for _, ext := range imp.GetFileExtensions() {
			ext = strings.TrimPrefix(ext, ".")
			if ext == format {
				return imp, nil
			}
			if f, err := export.ParseFormat(ext); aliasErr == nil && err == nil && f == alias {
				return imp, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// ForFile picks the importer by the extension of path.
func (r *ImporterRegistry) ForFile(path string) (Importer, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, imp := range r.importers {
		for _, e := range imp.GetFileExtensions() {
			if e == ext {
				return imp, true
			}
		}
	}
	return nil, false
}

// GetAvailableFormats returns a list of available import formats
func (r *ImporterRegistry) GetAvailableFormats() []string {
	formats := make([]string, len(r.importers))
	for i, imp := range r.importers {
		formats[i] = imp.GetFormatName()
	}
	return formats
}
