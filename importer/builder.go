package importer

import (
	"fmt"
	"strings"

	"sadt/diagram"
	"sadt/export"
	"sadt/geometry"
	"sadt/layout"
)

// builder collects the nodes and arrows of a text diagram by the keys the
// source format uses for them.
type builder struct {
	d      *diagram.Diagram
	keys   map[string]diagram.NodeID
	placed map[diagram.NodeID]bool
}

func newBuilder() *builder {
	return &builder{
		d:      diagram.New(),
		keys:   make(map[string]diagram.NodeID),
		placed: make(map[diagram.NodeID]bool),
	}
}

// node returns the node for key, creating it when first seen. A non-empty
// name renames it, so a declaration after first use still wins.
func (b *builder) node(key, name string) diagram.NodeID {
	id, ok := b.keys[key]
	if !ok {
		if name == "" {
			name = key
		}
		id = b.d.AddNode(name, geometry.Pt(0, 0))
		b.keys[key] = id
		return id
	}
	if name != "" {
		b.d.RenameNode(id, name)
	}
	return id
}

// place fixes the rectangle of key. Sizes that are not positive keep the
// default node size.
func (b *builder) place(key string, min geometry.Point, width, height float64) {
	id := b.node(key, "")
	n, _ := b.d.GetNodeMut(id)
	if width <= 0 {
		width = n.Rect.Width()
	}
	if height <= 0 {
		height = n.Rect.Height()
	}
	n.Rect = geometry.RectFromMinSize(min, width, height)
	b.placed[id] = true
}

// resize changes the size of key without fixing its position.
func (b *builder) resize(key string, width, height float64) {
	n, _ := b.d.GetNodeMut(b.node(key, ""))
	if width > 0 && height > 0 {
		n.Rect = geometry.RectFromMinSize(n.Rect.Min, width, height)
	}
}

// defaultSides are the sides an arrow of typ attaches to when the source
// format says nothing about them.
func defaultSides(typ diagram.ArrowType) (diagram.Side, diagram.Side) {
	switch typ {
	case diagram.Control:
		return diagram.Bottom, diagram.Top
	case diagram.Mechanism:
		return diagram.Top, diagram.Bottom
	default:
		return diagram.Right, diagram.Left
	}
}

// arrow connects two keys on the default sides for typ, creating the nodes
// as needed.
func (b *builder) arrow(from, to string, typ diagram.ArrowType, label string) (diagram.ArrowID, error) {
	src, dst := defaultSides(typ)
	return b.connect(from, to, typ, label, src, dst)
}

func (b *builder) connect(from, to string, typ diagram.ArrowType, label string, src, dst diagram.Side) (diagram.ArrowID, error) {
	if from == to {
		return diagram.ArrowID{}, fmt.Errorf("%s -> %s: %w", from, to, diagram.ErrSelfLoop)
	}
	id, _ := b.d.AddArrow(
		diagram.ConnectionPoint{Node: b.node(from, ""), Side: src},
		diagram.ConnectionPoint{Node: b.node(to, ""), Side: dst},
		typ, label)
	return id, nil
}

// retype changes the type of an arrow already added.
func (b *builder) retype(id diagram.ArrowID, typ diagram.ArrowType) {
	if a, ok := b.d.GetArrowMut(id); ok {
		a.Type = typ
	}
}

// finish lays the diagram out when the source had no positions. Nodes the
// source left unplaced next to placed ones go in a row under the rest.
func (b *builder) finish() (*diagram.Diagram, error) {
	if b.d.NodeCount() == 0 {
		return nil, ErrEmpty
	}
	if len(b.placed) == 0 {
		layout.NewLayered().Layout(b.d)
		return b.d, nil
	}
	if len(b.placed) == b.d.NodeCount() {
		return b.d, nil
	}

	var bounds geometry.Rect
	first := true
	for _, n := range b.d.Nodes() {
		if !b.placed[n.ID] {
			continue
		}
		if first {
			bounds, first = n.Rect, false
		} else {
			bounds = bounds.Union(n.Rect)
		}
	}
	x, y := bounds.Left(), bounds.Bottom()+60
	for _, n := range b.d.Nodes() {
		if b.placed[n.ID] {
			continue
		}
		m, _ := b.d.GetNodeMut(n.ID)
		m.Rect = geometry.RectFromMinSize(geometry.Pt(x, y), n.Rect.Width(), n.Rect.Height())
		x += n.Rect.Width() + 80
	}
	return b.d, nil
}

// typeFromColor reverses export.ArrowColor. Unknown colours give false.
func typeFromColor(color string) (diagram.ArrowType, bool) {
	color = strings.Trim(strings.ToLower(strings.TrimSpace(color)), `"#`)
	for _, t := range diagram.ArrowTypes {
		if export.ArrowColor(t) == color {
			return t, true
		}
	}
	return diagram.Input, false
}

// unquote strips one pair of surrounding double quotes.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

// lines yields trimmed, non-empty lines, skipping those starting with one
// of the comment prefixes.
func lines(content string, comments ...string) []string {
	var out []string
next:
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, c := range comments {
			if strings.HasPrefix(line, c) {
				continue next
			}
		}
		out = append(out, line)
	}
	return out
}
