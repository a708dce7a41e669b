package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"sadt/diagram"
)

// MermaidImporter imports Mermaid flowcharts.
type MermaidImporter struct{}

// NewMermaidImporter creates a new Mermaid importer
func NewMermaidImporter() *MermaidImporter {
	return &MermaidImporter{}
}

var (
	mermaidHeader = regexp.MustCompile(`^(graph|flowchart)(\s+(LR|RL|TD|TB|BT))?\s*;?$`)
	mermaidNode   = regexp.MustCompile(`^([A-Za-z0-9_]+)\s*(\[\[.*?\]\]|\(\(.*?\)\)|\(\[.*?\]\)|\{\{.*?\}\}|\[".*?"\]|\(".*?"\)|\[.*?\]|\(.*?\)|\{.*?\})?`)
	mermaidLink   = regexp.MustCompile(`^\s*(-->|==>|-\.->|--o|---|===|-\.-)\s*(?:\|("[^"]*"|[^|]*)\|)?\s*`)
	mermaidStyle  = regexp.MustCompile(`^linkStyle\s+([\d,\s]+?)\s+(.*)$`)
	mermaidStroke = regexp.MustCompile(`stroke:\s*([#\w]+)`)
	mermaidEntity = regexp.MustCompile(`#(\w+);`)
)

// mermaidEntities are the named entity codes Mermaid understands besides
// the numeric ones.
var mermaidEntities = map[string]string{
	"quot": `"`, "amp": "&", "lt": "<", "gt": ">", "apos": "'", "nbsp": "\u00a0",
}

// mermaidLinks maps each link style to the arrow type the exporter writes
// it for. Links without a head count as their headed form.
var mermaidLinks = map[string]diagram.ArrowType{
	"-->":  diagram.Input,
	"---":  diagram.Input,
	"==>":  diagram.Output,
	"===":  diagram.Output,
	"-.->": diagram.Control,
	"-.-":  diagram.Control,
	"--o":  diagram.Mechanism,
}

// CanImport checks if the content is a Mermaid flowchart
func (m *MermaidImporter) CanImport(content string) bool {
	ls := lines(content, "%%")
	return len(ls) > 0 && mermaidHeader.MatchString(ls[0])
}

// Import converts a Mermaid flowchart. Node positions are not part of the
// syntax, so the result is always laid out.
func (m *MermaidImporter) Import(content string) (*diagram.Diagram, error) {
	ls := lines(content, "%%")
	if len(ls) == 0 || !mermaidHeader.MatchString(ls[0]) {
		return nil, fmt.Errorf("mermaid: missing graph or flowchart header")
	}

	b := newBuilder()
	var arrows []diagram.ArrowID
	for i, line := range ls[1:] {
		line = strings.TrimSuffix(line, ";")
		if match := mermaidStyle.FindStringSubmatch(line); match != nil {
			m.applyLinkStyle(b, arrows, match[1], match[2])
			continue
		}
		if skipMermaidLine(line) {
			continue
		}
		ids, err := m.statement(b, line)
		if err != nil {
			return nil, fmt.Errorf("mermaid line %d: %w", i+2, err)
		}
		arrows = append(arrows, ids...)
	}
	return b.finish()
}

func skipMermaidLine(line string) bool {
	for _, kw := range []string{"classDef ", "class ", "style ", "click ", "subgraph", "direction ", "linkStyle "} {
		if strings.HasPrefix(line, kw) {
			return true
		}
	}
	return line == "end"
}

// statement reads a node declaration or a chain of links such as
// A --> B ==> C.
func (m *MermaidImporter) statement(b *builder, line string) ([]diagram.ArrowID, error) {
	from, rest, ok := m.nodeRef(b, line)
	if !ok {
		return nil, nil
	}
	var ids []diagram.ArrowID
	for rest != "" {
		link := mermaidLink.FindStringSubmatch(rest)
		if link == nil {
			break
		}
		rest = rest[len(link[0]):]
		to, next, ok := m.nodeRef(b, rest)
		if !ok {
			return ids, fmt.Errorf("link %s has no target", link[1])
		}
		id, err := b.arrow(from, to, mermaidLinks[link[1]], mermaidText(link[2]))
		if err != nil {
			return ids, err
		}
		ids = append(ids, id)
		from, rest = to, next
	}
	return ids, nil
}

// nodeRef reads one node reference with an optional shape and returns its
// key and the rest of the line.
func (m *MermaidImporter) nodeRef(b *builder, s string) (string, string, bool) {
	match := mermaidNode.FindStringSubmatch(s)
	if match == nil {
		return "", s, false
	}
	key, shape := match[1], match[2]
	name := ""
	if shape != "" {
		open := 1
		for _, p := range []string{"[[", "((", "([", "{{"} {
			if strings.HasPrefix(shape, p) {
				open = 2
			}
		}
		name = mermaidText(shape[open : len(shape)-open])
	}
	b.node(key, name)
	return key, strings.TrimSpace(s[len(match[0]):]), true
}

// applyLinkStyle retypes links whose stroke is one of the arrow colours.
func (m *MermaidImporter) applyLinkStyle(b *builder, arrows []diagram.ArrowID, indexes, props string) {
	stroke := mermaidStroke.FindStringSubmatch(props)
	if stroke == nil {
		return
	}
	typ, ok := typeFromColor(stroke[1])
	if !ok {
		return
	}
	for _, s := range strings.Split(indexes, ",") {
		i, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || i < 0 || i >= len(arrows) {
			continue
		}
		b.retype(arrows[i], typ)
	}
}

// mermaidText undoes the escaping of a quoted Mermaid string. Line breaks
// are replaced before entity codes are decoded, so an escaped "<br/>" stays
// text.
func mermaidText(s string) string {
	s = strings.ReplaceAll(unquote(s), "<br/>", "\n")
	return mermaidEntity.ReplaceAllStringFunc(s, func(code string) string {
		name := code[1 : len(code)-1]
		if r, ok := mermaidEntities[name]; ok {
			return r
		}
		if n, err := strconv.Atoi(name); err == nil && n > 0 && n <= unicode.MaxRune {
			return string(rune(n))
		}
		return code
	})
}

// GetFormatName returns the format name
func (m *MermaidImporter) GetFormatName() string {
	return "Mermaid"
}

// GetFileExtensions returns common file extensions
func (m *MermaidImporter) GetFileExtensions() []string {
	return []string{".mmd", ".mermaid"}
}
