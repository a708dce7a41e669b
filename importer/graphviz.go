package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"sadt/diagram"
	"sadt/geometry"
)

// GraphvizImporter imports Graphviz DOT format
type GraphvizImporter struct{}

// NewGraphvizImporter creates a new Graphviz importer
func NewGraphvizImporter() *GraphvizImporter {
	return &GraphvizImporter{}
}

// pointsPerInch converts DOT sizes, given in inches, to diagram units.
const pointsPerInch = 72

var (
	dotHeader  = regexp.MustCompile(`^(strict\s+)?(di)?graph\b[^{]*\{`)
	dotID      = `("(?:[^"\\]|\\.)+"|[A-Za-z0-9_.]+)`
	dotPort    = `(?::(n|ne|e|se|s|sw|w|nw|c|_))?`
	dotEdge    = regexp.MustCompile(`^` + dotID + dotPort + `\s*->\s*` + dotID + dotPort + `\s*(?:\[(.*)\])?\s*;?$`)
	dotNode    = regexp.MustCompile(`^` + dotID + `\s*(?:\[(.*)\])?\s*;?$`)
	dotAttr    = regexp.MustCompile(`(\w+)\s*=\s*("((?:[^"\\]|\\.)*)"|([^,;\s\]]+))`)
	dotSetting = regexp.MustCompile(`^\w+\s*=`)
)

// CanImport checks if the content is a Graphviz DOT diagram
func (g *GraphvizImporter) CanImport(content string) bool {
	ls := lines(content, "//", "#")
	return len(ls) > 0 && dotHeader.MatchString(ls[0])
}

// Import converts a DOT digraph. Nodes with a pos attribute keep it, the
// y axis flipped back to point down. Arrow types come from the edge colour,
// then from the compass ports, then from a dashed style.
func (g *GraphvizImporter) Import(content string) (*diagram.Diagram, error) {
	b := newBuilder()
	for i, line := range lines(content, "//", "#") {
		switch {
		case dotHeader.MatchString(line), dotSetting.MatchString(line):
			continue
		case line == "{" || line == "}" || strings.HasPrefix(line, "subgraph"):
			continue
		case strings.HasPrefix(line, "node ") || strings.HasPrefix(line, "edge ") || strings.HasPrefix(line, "graph "):
			continue
		}

		if m := dotEdge.FindStringSubmatch(line); m != nil {
			if err := g.edge(b, m); err != nil {
				return nil, fmt.Errorf("dot line %d: %w", i+1, err)
			}
			continue
		}
		if m := dotNode.FindStringSubmatch(line); m != nil {
			if err := g.node(b, dotUnquote(m[1]), g.parseAttributes(m[2])); err != nil {
				return nil, fmt.Errorf("dot line %d: %w", i+1, err)
			}
		}
	}
	return b.finish()
}

func (g *GraphvizImporter) node(b *builder, key string, attrs map[string]string) error {
	b.node(key, attrs["label"])
	width, height := inches(attrs["width"]), inches(attrs["height"])
	pos, ok := attrs["pos"]
	if !ok {
		b.resize(key, width, height)
		return nil
	}
	xs, ys, found := strings.Cut(strings.TrimSuffix(pos, "!"), ",")
	if !found {
		return fmt.Errorf("node %s: bad pos %q", key, pos)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if errX != nil || errY != nil {
		return fmt.Errorf("node %s: bad pos %q", key, pos)
	}
	if width <= 0 || height <= 0 {
		n, _ := b.d.GetNode(b.node(key, ""))
		width, height = n.Rect.Width(), n.Rect.Height()
	}
	b.place(key, geometry.Pt(x-width/2, -y-height/2), width, height)
	return nil
}

func (g *GraphvizImporter) edge(b *builder, m []string) error {
	from, to := dotUnquote(m[1]), dotUnquote(m[3])
	attrs := g.parseAttributes(m[5])
	src, srcOK := compassSide(m[2])
	dst, dstOK := compassSide(m[4])

	typ, known := typeFromColor(attrs["color"])
	switch {
	case known:
	case srcOK && dstOK:
		typ = diagram.InferArrowType(src, dst)
	case strings.Contains(attrs["style"], "dashed"):
		typ = diagram.Control
	default:
		typ = diagram.Input
	}

	defSrc, defDst := defaultSides(typ)
	if !srcOK {
		src = defSrc
	}
	if !dstOK {
		dst = defDst
	}
	_, err := b.connect(from, to, typ, attrs["label"], src, dst)
	return err
}

// parseAttributes parses DOT attribute string into a map
func (g *GraphvizImporter) parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)
	for _, match := range dotAttr.FindAllStringSubmatch(attrStr, -1) {
		value := match[4]
		if strings.HasPrefix(match[2], `"`) {
			value = dotUnescape(match[3])
		}
		attrs[match[1]] = value
	}
	return attrs
}

func compassSide(port string) (diagram.Side, bool) {
	switch port {
	case "w":
		return diagram.Left, true
	case "e":
		return diagram.Right, true
	case "n":
		return diagram.Top, true
	case "s":
		return diagram.Bottom, true
	default:
		return diagram.Left, false
	}
}

func inches(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return v * pointsPerInch
}

func dotUnquote(s string) string {
	if strings.HasPrefix(s, `"`) {
		return dotUnescape(unquote(s))
	}
	return s
}

// dotUnescape reverses the escaping of a quoted DOT string.
func dotUnescape(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		i++
		switch s[i] {
		case 'n', 'l', 'r':
			sb.WriteByte('\n')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// GetFormatName returns the format name
func (g *GraphvizImporter) GetFormatName() string {
	return "Graphviz"
}

// GetFileExtensions returns common file extensions
func (g *GraphvizImporter) GetFileExtensions() []string {
	return []string{".dot", ".gv"}
}
