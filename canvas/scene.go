package canvas

import (
	"math"

	"github.com/mattn/go-runewidth"

	"sadt/diagram"
	"sadt/geometry"
	"sadt/hittest"
)

// Scene draws a diagram onto a canvas. World positions go through Transform
// to screen units, and each cell covers CellWidth x CellHeight screen units.
type Scene struct {
	View       diagram.View
	Transform  geometry.Transform
	CellWidth  float64
	CellHeight float64
	Glyphs     Glyphs

	SelectedNode  diagram.NodeID
	SelectedArrow diagram.ArrowID
	// ShowPoints marks the four connection points of every node.
	ShowPoints bool
	// Preview, when set, is drawn as a dotted line between two world points.
	Preview *[2]geometry.Point
}

func (s Scene) cellSize() (float64, float64) {
	cw, ch := s.CellWidth, s.CellHeight
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}
	return cw, ch
}

// Cell returns the cell containing a screen point.
func (s Scene) Cell(p geometry.Point) (x, y int) {
	cw, ch := s.cellSize()
	return int(math.Floor(p.X / cw)), int(math.Floor(p.Y / ch))
}

// CellCenter returns the screen point at the centre of cell (x, y).
func (s Scene) CellCenter(x, y int) geometry.Point {
	cw, ch := s.cellSize()
	return geometry.Pt((float64(x)+0.5)*cw, (float64(y)+0.5)*ch)
}

func (s Scene) worldCell(p geometry.Point) (int, int) {
	return s.Cell(s.Transform.WorldToScreen(p))
}

// Draw renders arrows, labels, nodes, arrowheads, connection points and
// the preview line, in that order.
func (s Scene) Draw(c *Canvas) {
	if s.Glyphs == (Glyphs{}) {
		s.Glyphs = UnicodeGlyphs
	}
	arrows := s.View.Arrows()
	for _, a := range arrows {
		from, to, ok := hittest.Endpoints(s.View, a)
		if !ok {
			continue
		}
		x1, y1 := s.worldCell(from)
		x2, y2 := s.worldCell(to)
		c.DrawLine(x1, y1, x2, y2, s.shaft(x2-x1, y2-y1), s.arrowStyle(a))
	}
	for _, a := range arrows {
		if !a.HasLabel() {
			continue
		}
		from, to, ok := hittest.Endpoints(s.View, a)
		if !ok {
			continue
		}
		x, y := s.worldCell(from.Lerp(to, 0.5))
		w := runewidth.StringWidth(a.Label)
		c.DrawText(x-w/2, y-1, a.Label, StyleLabel)
	}
	for _, n := range s.View.Nodes() {
		s.drawNode(c, n)
	}
	for _, a := range arrows {
		to, ok := hittest.PointPosition(s.View, a.Target)
		if !ok {
			continue
		}
		x, y := s.worldCell(to)
		x, y = outward(x, y, a.Target.Side)
		c.Set(x, y, s.Glyphs.Heads.entering(a.Target.Side), s.arrowStyle(a))
	}
	if s.ShowPoints {
		for _, n := range s.View.Nodes() {
			for _, side := range diagram.Sides {
				x, y := s.worldCell(hittest.ConnectionPosition(n, side))
				c.Set(x, y, s.Glyphs.Point, StylePoint)
			}
		}
	}
	if s.Preview != nil {
		x1, y1 := s.worldCell(s.Preview[0])
		x2, y2 := s.worldCell(s.Preview[1])
		c.DrawLine(x1, y1, x2, y2, s.Glyphs.Preview, StylePreview)
	}
}

func (s Scene) drawNode(c *Canvas, n diagram.Node) {
	r := s.Transform.WorldRectToScreen(n.Rect)
	x0, y0 := s.Cell(r.Min)
	x1, y1 := s.Cell(r.Max)
	w, h := x1-x0+1, y1-y0+1

	box, style := s.Glyphs.Box, StyleNode
	if n.ID == s.SelectedNode {
		box, style = s.Glyphs.Selected, StyleSelected
	}
	if w < 3 || h < 3 {
		c.Fill(x0, y0, w, h, box.Horizontal, style)
		return
	}
	c.Fill(x0+1, y0+1, w-2, h-2, ' ', style)
	c.DrawBox(x0, y0, w, h, box, style)

	inner := w - 2
	name := runewidth.Truncate(n.Name, inner, s.Glyphs.Ellipsis)
	c.DrawText(x0+1+(inner-runewidth.StringWidth(name))/2, y0+h/2, name, style)
}

func (s Scene) arrowStyle(a diagram.Arrow) Style {
	if a.ID == s.SelectedArrow {
		return StyleSelected
	}
	return ArrowStyle(a.Type)
}

func (s Scene) shaft(dx, dy int) rune {
	switch {
	case dy == 0:
		return s.Glyphs.Horizontal
	case dx == 0:
		return s.Glyphs.Vertical
	case (dx > 0) == (dy > 0):
		return s.Glyphs.Falling
	default:
		return s.Glyphs.Rising
	}
}

// outward steps one cell away from a node through side s.
func outward(x, y int, s diagram.Side) (int, int) {
	switch s {
	case diagram.Left:
		return x - 1, y
	case diagram.Right:
		return x + 1, y
	case diagram.Top:
		return x, y - 1
	default:
		return x, y + 1
	}
}

// Fit returns a transform and canvas size that frame every node of d with
// a margin of one cell, for rendering outside an interactive session.
func Fit(d diagram.View, cellWidth, cellHeight float64) (geometry.Transform, int, int) {
	nodes := d.Nodes()
	if len(nodes) == 0 {
		return geometry.Identity(), 1, 1
	}
	b := nodes[0].Rect
	for _, n := range nodes[1:] {
		b = b.Union(n.Rect)
	}
	pan := geometry.V(b.Min.X-2*cellWidth, b.Min.Y-2*cellHeight)
	w := int(math.Ceil(b.Width()/cellWidth)) + 5
	h := int(math.Ceil(b.Height()/cellHeight)) + 5
	return geometry.NewTransform(pan, 1), w, h
}
