package hittest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sadt/diagram"
	"sadt/geometry"
	"sadt/hittest"
)

func TestConnectionPosition(t *testing.T) {
	n := diagram.Node{Rect: geometry.RectFromMinSize(geometry.Pt(100, 100), 120, 60)}

	tests := []struct {
		side diagram.Side
		want geometry.Point
	}{
		{diagram.Left, geometry.Pt(100, 130)},
		{diagram.Right, geometry.Pt(220, 130)},
		{diagram.Top, geometry.Pt(160, 100)},
		{diagram.Bottom, geometry.Pt(160, 160)},
	}
	for _, tt := range tests {
		t.Run(tt.side.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, hittest.ConnectionPosition(n, tt.side))
		})
	}
}

func TestConnectionPositionFollowsMove(t *testing.T) {
	d := diagram.New()
	a := d.AddNode("A", geometry.Pt(0, 0))
	cp := diagram.ConnectionPoint{Node: a, Side: diagram.Right}

	before, ok := hittest.PointPosition(d, cp)
	require.True(t, ok)
	d.MoveNode(a, geometry.V(15, 5))
	after, _ := hittest.PointPosition(d, cp)
	assert.Equal(t, before.Add(geometry.V(15, 5)), after)

	_, ok = hittest.PointPosition(d, diagram.ConnectionPoint{Node: diagram.NewNodeID()})
	assert.False(t, ok)
}

func TestNearestConnectionPoint(t *testing.T) {
	d := diagram.New()
	a := d.AddNode("A", geometry.Pt(100, 100))
	b := d.AddNode("B", geometry.Pt(300, 100))

	t.Run("none in range", func(t *testing.T) {
		_, ok := hittest.NearestConnectionPoint(d, geometry.Pt(0, 0), 10)
		assert.False(t, ok)
	})

	t.Run("empty diagram", func(t *testing.T) {
		_, ok := hittest.NearestConnectionPoint(diagram.New(), geometry.Pt(0, 0), 1e9)
		assert.False(t, ok)
	})

	t.Run("single point in range", func(t *testing.T) {
		got, ok := hittest.NearestConnectionPoint(d, geometry.Pt(223, 131), 12)
		require.True(t, ok)
		assert.Equal(t, diagram.ConnectionPoint{Node: a, Side: diagram.Right}, got)
	})

	t.Run("closest of several", func(t *testing.T) {
		// A.Right at (220,130), B.Left at (300,130).
		got, ok := hittest.NearestConnectionPoint(d, geometry.Pt(270, 130), 100)
		require.True(t, ok)
		assert.Equal(t, diagram.ConnectionPoint{Node: b, Side: diagram.Left}, got)
	})

	t.Run("strictly less than max", func(t *testing.T) {
		_, ok := hittest.NearestConnectionPoint(d, geometry.Pt(230, 130), 10)
		assert.False(t, ok)
		_, ok = hittest.NearestConnectionPoint(d, geometry.Pt(230, 130), 10.0001)
		assert.True(t, ok)
	})

	t.Run("tie goes to first visited", func(t *testing.T) {
		got, ok := hittest.NearestConnectionPoint(d, geometry.Pt(260, 130), 50)
		require.True(t, ok)
		assert.Equal(t, diagram.ConnectionPoint{Node: a, Side: diagram.Right}, got)
	})
}

func TestNodeAt(t *testing.T) {
	d := diagram.New()
	a := d.AddNode("A", geometry.Pt(0, 0))
	b := d.AddNode("B", geometry.Pt(60, 30))

	n, ok := hittest.NodeAt(d, geometry.Pt(70, 40))
	require.True(t, ok)
	assert.Equal(t, a, n.ID, "overlap resolves to the earlier node")

	n, ok = hittest.NodeAt(d, geometry.Pt(170, 80))
	require.True(t, ok)
	assert.Equal(t, b, n.ID)

	_, ok = hittest.NodeAt(d, geometry.Pt(-1, -1))
	assert.False(t, ok)

	assert.True(t, hittest.PointInNode(n, geometry.Pt(180, 90)))
	assert.False(t, hittest.PointInNode(n, geometry.Pt(181, 90)))
}

func TestDistanceSquaredPointToSegment(t *testing.T) {
	a, b := geometry.Pt(0, 0), geometry.Pt(10, 0)

	tests := []struct {
		name string
		p    geometry.Point
		a, b geometry.Point
		want float64
	}{
		{"above middle", geometry.Pt(5, 3), a, b, 9},
		{"on segment", geometry.Pt(7, 0), a, b, 0},
		{"before start clamps", geometry.Pt(-3, 4), a, b, 25},
		{"past end clamps", geometry.Pt(13, -4), a, b, 25},
		{"collinear beyond end", geometry.Pt(20, 0), a, b, 100},
		{"degenerate segment", geometry.Pt(3, 4), a, a, 25},
		{"diagonal", geometry.Pt(0, 10), geometry.Pt(0, 0), geometry.Pt(10, 10), 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, hittest.DistanceSquaredPointToSegment(tt.p, tt.a, tt.b), 1e-9)
		})
	}
}

func TestArrowAt(t *testing.T) {
	d := diagram.New()
	a := d.AddNode("A", geometry.Pt(100, 100))
	b := d.AddNode("B", geometry.Pt(300, 100))
	c := d.AddNode("C", geometry.Pt(300, 300))
	ab, _ := d.AddArrow(diagram.ConnectionPoint{Node: a, Side: diagram.Right}, diagram.ConnectionPoint{Node: b, Side: diagram.Left}, diagram.Output, "")
	ac, _ := d.AddArrow(diagram.ConnectionPoint{Node: a, Side: diagram.Right}, diagram.ConnectionPoint{Node: c, Side: diagram.Top}, diagram.Control, "")

	got, ok := hittest.ArrowAt(d, geometry.Pt(260, 133), 5)
	require.True(t, ok)
	assert.Equal(t, ab, got.ID)

	// Near both, closer to the diagonal one.
	got, ok = hittest.ArrowAt(d, geometry.Pt(240, 150), 30)
	require.True(t, ok)
	assert.Equal(t, ac, got.ID)

	_, ok = hittest.ArrowAt(d, geometry.Pt(260, 140), 5)
	assert.False(t, ok)
}
