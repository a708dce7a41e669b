package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sadt/diagram"
	"sadt/geometry"
)

// D2Importer imports D2 diagram format
type D2Importer struct{}

// NewD2Importer creates a new D2 importer
func NewD2Importer() *D2Importer {
	return &D2Importer{}
}

var (
	d2Key   = `("(?:[^"\\]|\\.)*"|[^:{}<>"]+?)`
	d2Edge  = regexp.MustCompile(`^` + d2Key + `\s*(<->|->|<-|--)\s*` + d2Key + `\s*(?::\s*(.*?))?\s*(\{)?\s*;?$`)
	d2Shape = regexp.MustCompile(`^` + d2Key + `\s*(?::\s*(.*?))?\s*(\{)?\s*;?$`)
	d2Prop  = regexp.MustCompile(`^([\w.-]+)\s*:\s*(.*?)\s*;?$`)
)

// d2Settings are top-level keys that configure the drawing rather than name
// a shape.
var d2Settings = map[string]bool{
	"direction": true, "vars": true, "classes": true, "title": true,
	"layout-engine": true, "style": true,
}

// d2Block is the shape or connection whose properties are being read.
type d2Block struct {
	key   string
	arrow bool
	props map[string]string
	from  string
	to    string
	label string
	depth int
}

// CanImport checks if the content is a D2 diagram. D2 has no header, so
// this only rules out the formats with one.
func (d *D2Importer) CanImport(content string) bool {
	ls := lines(content, "#")
	if len(ls) == 0 {
		return false
	}
	first := ls[0]
	if strings.HasPrefix(first, "@startuml") || mermaidHeader.MatchString(first) || dotHeader.MatchString(first) {
		return false
	}
	for _, l := range ls {
		if d2Edge.MatchString(l) || strings.HasPrefix(l, "direction:") || strings.Contains(l, "shape:") {
			return true
		}
	}
	return false
}

// Import converts shapes and connections. Shapes placed with top and left
// keep their position.
func (d *D2Importer) Import(content string) (*diagram.Diagram, error) {
	b := newBuilder()
	var block *d2Block
	for i, line := range lines(content, "#") {
		if block != nil {
			switch {
			case strings.HasSuffix(line, "{"):
				block.depth++
			case line == "}":
				if block.depth > 0 {
					block.depth--
					continue
				}
				if err := d.flush(b, block); err != nil {
					return nil, fmt.Errorf("d2 line %d: %w", i+1, err)
				}
				block = nil
			case block.depth == 0:
				if m := d2Prop.FindStringSubmatch(line); m != nil {
					block.props[m[1]] = m[2]
				}
			}
			continue
		}

		if m := d2Edge.FindStringSubmatch(line); m != nil {
			from, to := d2Text(m[1]), d2Text(m[3])
			if m[2] == "<-" {
				from, to = to, from
			}
			block = &d2Block{arrow: true, from: from, to: to, label: d2Text(m[4]), props: map[string]string{}}
		} else if m := d2Shape.FindStringSubmatch(line); m != nil {
			key := d2Text(m[1])
			switch {
			case d2Settings[key] || strings.Contains(key, "."):
				if m[3] == "" {
					continue
				}
				// Read and drop the block.
				block = &d2Block{props: map[string]string{}}
			default:
				block = &d2Block{key: key, label: d2Text(m[2]), props: map[string]string{}}
			}
		} else {
			continue
		}

		if !strings.HasSuffix(line, "{") {
			if err := d.flush(b, block); err != nil {
				return nil, fmt.Errorf("d2 line %d: %w", i+1, err)
			}
			block = nil
		}
	}
	if block != nil {
		return nil, fmt.Errorf("d2: unclosed block")
	}
	return b.finish()
}

func (d *D2Importer) flush(b *builder, block *d2Block) error {
	if label, ok := block.props["label"]; ok {
		block.label = d2Text(label)
	}
	if block.arrow {
		typ, known := typeFromColor(block.props["style.stroke"])
		if !known {
			typ = diagram.Input
			if _, dashed := block.props["style.stroke-dash"]; dashed {
				typ = diagram.Control
			}
		}
		_, err := b.arrow(block.from, block.to, typ, block.label)
		return err
	}
	if block.key == "" {
		return nil
	}

	b.node(block.key, block.label)
	width, height := number(block.props["width"]), number(block.props["height"])
	top, hasTop := block.props["top"]
	left, hasLeft := block.props["left"]
	if hasTop || hasLeft {
		b.place(block.key, geometry.Pt(number(left), number(top)), width, height)
	} else {
		b.resize(block.key, width, height)
	}
	return nil
}

// d2Text unquotes a D2 string. Unquoted text is returned trimmed.
func d2Text(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `"`) {
		if u, err := strconv.Unquote(s); err == nil {
			return u
		}
		return unquote(s)
	}
	return s
}

func number(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v
}

// GetFormatName returns the format name
func (d *D2Importer) GetFormatName() string {
	return "D2"
}

// GetFileExtensions returns common file extensions
func (d *D2Importer) GetFileExtensions() []string {
	return []string{".d2"}
}
