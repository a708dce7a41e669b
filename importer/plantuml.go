package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"sadt/diagram"
)

// PlantUMLImporter imports PlantUML component and deployment diagrams.
type PlantUMLImporter struct{}

// NewPlantUMLImporter creates a new PlantUML importer
func NewPlantUMLImporter() *PlantUMLImporter {
	return &PlantUMLImporter{}
}

var (
	pumlElement = regexp.MustCompile(`^(?:rectangle|component|node|card|agent|process|usecase)\s+("[^"]*"|\[[^\]]*\]|[\w.]+)(?:\s+as\s+([\w.]+))?`)
	pumlCharRef = regexp.MustCompile(`&#(\d+);`)
	pumlArrow   = regexp.MustCompile(`^("[^"]*"|\[[^\]]*\]|[\w.]+)\s*([-.]+)(?:\[([^\]]*)\])?([-.]*)(?:(?:left|right|up|down)[-.]*)?>\s*("[^"]*"|\[[^\]]*\]|[\w.]+)\s*(?::\s*(.*))?$`)
)

// CanImport checks if the content is a PlantUML diagram
func (p *PlantUMLImporter) CanImport(content string) bool {
	ls := lines(content, "'")
	return len(ls) > 0 && strings.HasPrefix(ls[0], "@startuml")
}

// Import converts rectangles and the arrows between them. The colour in an
// arrow's brackets picks its type; a dashed or dotted arrow without one is
// a control.
func (p *PlantUMLImporter) Import(content string) (*diagram.Diagram, error) {
	b := newBuilder()
	for i, line := range lines(content, "'") {
		if line == "@enduml" {
			break
		}
		if m := pumlElement.FindStringSubmatch(line); m != nil {
			name := pumlName(m[1])
			key := m[2]
			if key == "" {
				key = name
			}
			b.node(key, name)
			continue
		}
		if m := pumlArrow.FindStringSubmatch(line); m != nil {
			typ := pumlType(m[2]+m[4], m[3])
			label := pumlText(strings.TrimSpace(m[6]))
			if _, err := b.arrow(pumlName(m[1]), pumlName(m[5]), typ, label); err != nil {
				return nil, fmt.Errorf("plantuml line %d: %w", i+1, err)
			}
		}
	}
	return b.finish()
}

// pumlName strips the quotes or brackets around an element reference.
func pumlName(ref string) string {
	if strings.HasPrefix(ref, "[") {
		return strings.TrimSuffix(strings.TrimPrefix(ref, "["), "]")
	}
	return pumlText(unquote(ref))
}

// pumlText turns \n into line breaks and decodes creole character
// references such as &#34;.
func pumlText(s string) string {
	s = strings.ReplaceAll(s, `\n`, "\n")
	return pumlCharRef.ReplaceAllStringFunc(s, func(ref string) string {
		n, err := strconv.Atoi(ref[2 : len(ref)-1])
		if err != nil || n <= 0 || n > unicode.MaxRune {
			return ref
		}
		return string(rune(n))
	})
}

func pumlType(body, style string) diagram.ArrowType {
	for _, part := range strings.Split(style, ",") {
		if typ, ok := typeFromColor(part); ok && strings.HasPrefix(strings.TrimSpace(part), "#") {
			return typ
		}
	}
	if strings.Contains(style, "dashed") || strings.Contains(style, "dotted") || strings.Contains(body, ".") {
		return diagram.Control
	}
	return diagram.Input
}

// GetFormatName returns the format name
func (p *PlantUMLImporter) GetFormatName() string {
	return "PlantUML"
}

// GetFileExtensions returns common file extensions
func (p *PlantUMLImporter) GetFileExtensions() []string {
	return []string{".puml", ".plantuml", ".pu"}
}
