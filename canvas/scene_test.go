package canvas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sadt/canvas"
	"sadt/diagram"
	"sadt/geometry"
)

func twoNodes(t *testing.T) (*diagram.Diagram, diagram.NodeID, diagram.ArrowID) {
	t.Helper()
	d := diagram.New()
	a := d.AddNode("A", geometry.Pt(0, 0))
	b := d.AddNode("Bee", geometry.Pt(200, 0))
	id, ok := d.AddArrow(
		diagram.ConnectionPoint{Node: a, Side: diagram.Right},
		diagram.ConnectionPoint{Node: b, Side: diagram.Left},
		diagram.Input, "data")
	require.True(t, ok)
	return d, a, id
}

func TestSceneDraw(t *testing.T) {
	d, _, _ := twoNodes(t)
	c := canvas.New(40, 6)
	canvas.Scene{View: d, Transform: geometry.Identity(), CellWidth: 10, CellHeight: 20}.Draw(c)

	// Node A spans cells x 0..12, y 0..3.
	assert.Equal(t, '╭', c.Get(0, 0).Rune)
	assert.Equal(t, '╯', c.Get(12, 3).Rune)
	assert.Equal(t, 'A', c.Get(6, 2).Rune)
	assert.Equal(t, canvas.StyleNode, c.Get(6, 2).Style)

	// The shaft runs between the borders, the head sits outside B.
	assert.Equal(t, '─', c.Get(15, 1).Rune)
	assert.Equal(t, canvas.StyleInput, c.Get(15, 1).Style)
	assert.Equal(t, '▶', c.Get(19, 1).Rune)
	assert.Equal(t, '│', c.Get(20, 1).Rune)

	// Label centred one row above the midpoint cell (16, 1).
	assert.Equal(t, "data", string([]rune(c.Row(0))[14:18]))
	assert.Equal(t, canvas.StyleLabel, c.Get(14, 0).Style)
}

func TestSceneSelectionAndPoints(t *testing.T) {
	d, a, arrow := twoNodes(t)
	c := canvas.New(40, 6)
	canvas.Scene{
		View: d, Transform: geometry.Identity(), CellWidth: 10, CellHeight: 20,
		SelectedNode: a, SelectedArrow: arrow, ShowPoints: true,
	}.Draw(c)

	assert.Equal(t, '╔', c.Get(0, 0).Rune)
	assert.Equal(t, canvas.StyleSelected, c.Get(15, 1).Style)
	// Right and top connection points of A.
	assert.Equal(t, 'o', c.Get(12, 1).Rune)
	assert.Equal(t, 'o', c.Get(6, 0).Rune)
}

func TestSceneZoomAndPreview(t *testing.T) {
	d := diagram.New()
	d.AddNode("Long activity name", geometry.Pt(0, 0))
	c := canvas.New(20, 10)
	from, to := geometry.Pt(0, 150), geometry.Pt(90, 150)
	canvas.Scene{
		View: d, Transform: geometry.NewTransform(geometry.V(0, 0), 0.5),
		CellWidth: 5, CellHeight: 10, Glyphs: canvas.ASCIIGlyphs,
		Preview: &[2]geometry.Point{from, to},
	}.Draw(c)

	// 120x60 world at zoom 0.5 is 60x30 screen: cells 0..12, 0..3.
	assert.Equal(t, '+', c.Get(12, 3).Rune)
	assert.Equal(t, "|Long activ~|", c.Row(2)[:13])
	assert.Equal(t, '.', c.Get(5, 7).Rune)
	assert.Equal(t, canvas.StylePreview, c.Get(9, 7).Style)
}

func TestSceneCellMapping(t *testing.T) {
	s := canvas.Scene{CellWidth: 8, CellHeight: 16}
	x, y := s.Cell(geometry.Pt(17, -1))
	assert.Equal(t, 2, x)
	assert.Equal(t, -1, y)
	assert.Equal(t, geometry.Pt(20, 24), s.CellCenter(2, 1))
}

func TestFit(t *testing.T) {
	d := diagram.New()
	d.AddNode("A", geometry.Pt(100, 50))
	d.AddNode("B", geometry.Pt(300, 50))

	tr, w, h := canvas.Fit(d, 10, 20)
	assert.Equal(t, geometry.V(80, 10), tr.Pan)
	assert.Equal(t, 37, w)
	assert.Equal(t, 8, h)

	_, w, h = canvas.Fit(diagram.New(), 10, 20)
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}
