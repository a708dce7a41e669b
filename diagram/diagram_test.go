package diagram_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sadt/diagram"
	"sadt/geometry"
)

func cp(id diagram.NodeID, s diagram.Side) diagram.ConnectionPoint {
	return diagram.ConnectionPoint{Node: id, Side: s}
}

func TestAddNodeDefaults(t *testing.T) {
	var d diagram.Diagram
	id := d.AddNode("A", geometry.Pt(100, 100))

	n, ok := d.GetNode(id)
	require.True(t, ok)
	assert.Equal(t, "A", n.Name)
	assert.Equal(t, geometry.RectFromMinSize(geometry.Pt(100, 100), 120, 60), n.Rect)
	assert.Equal(t, "add", n.Algorithm)
	assert.False(t, id.IsZero())

	other := diagram.New(diagram.WithNodeSize(80, 40), diagram.WithDefaultAlgorithm("divide"))
	n2, _ := other.GetNode(other.AddNode("B", geometry.Pt(0, 0)))
	assert.Equal(t, 80.0, n2.Rect.Width())
	assert.Equal(t, 40.0, n2.Rect.Height())
	assert.Equal(t, "divide", n2.Algorithm)
}

func TestAddArrow(t *testing.T) {
	d := diagram.New()
	a := d.AddNode("A", geometry.Pt(0, 0))
	b := d.AddNode("B", geometry.Pt(300, 0))
	ghost := diagram.NewNodeID()

	t.Run("all side pairs between distinct nodes", func(t *testing.T) {
		for _, s1 := range diagram.Sides {
			for _, s2 := range diagram.Sides {
				id, ok := d.AddArrow(cp(a, s1), cp(b, s2), diagram.Input, "")
				require.True(t, ok, "%s -> %s", s1, s2)
				arrow, ok := d.GetArrow(id)
				require.True(t, ok)
				assert.Equal(t, a, arrow.Source.Node)
				assert.Equal(t, b, arrow.Target.Node)
				assert.Equal(t, s1, arrow.Source.Side)
				assert.Equal(t, s2, arrow.Target.Side)
			}
		}
		assert.Equal(t, 16, d.ArrowCount())
	})

	t.Run("self loop rejected", func(t *testing.T) {
		before := d.ArrowCount()
		for _, s1 := range diagram.Sides {
			for _, s2 := range diagram.Sides {
				_, ok := d.AddArrow(cp(a, s1), cp(a, s2), diagram.Output, "x")
				assert.False(t, ok)
			}
		}
		assert.Equal(t, before, d.ArrowCount())
	})

	t.Run("missing endpoints rejected", func(t *testing.T) {
		_, ok := d.AddArrow(cp(ghost, diagram.Right), cp(b, diagram.Left), diagram.Input, "")
		assert.False(t, ok)
		_, ok = d.AddArrow(cp(a, diagram.Right), cp(ghost, diagram.Left), diagram.Input, "")
		assert.False(t, ok)
	})
}

func TestRemoveNodeCascades(t *testing.T) {
	d := diagram.New()
	ids := make([]diagram.NodeID, 5)
	for i := range ids {
		ids[i] = d.AddNode(fmt.Sprintf("N%d", i), geometry.Pt(float64(i)*200, 0))
	}
	for i := range ids {
		for j := range ids {
			if i != j {
				_, ok := d.AddArrow(cp(ids[i], diagram.Right), cp(ids[j], diagram.Left), diagram.Output, "")
				require.True(t, ok)
			}
		}
	}

	for k, victim := range ids {
		removed, ok := d.RemoveNode(victim)
		require.True(t, ok)
		assert.Equal(t, victim, removed.ID)

		for _, a := range d.Arrows() {
			assert.False(t, a.References(victim), "arrow %s still references %s", a.ID, victim)
		}
		remaining := len(ids) - k - 1
		assert.Equal(t, remaining, d.NodeCount())
		assert.Equal(t, remaining*(remaining-1), d.ArrowCount())
		require.NoError(t, d.Validate())
	}
}

func TestRemoveNodeScenario(t *testing.T) {
	d := diagram.New()
	a := d.AddNode("A", geometry.Pt(100, 100))
	b := d.AddNode("B", geometry.Pt(300, 100))
	_, ok := d.AddArrow(cp(a, diagram.Right), cp(b, diagram.Left), diagram.Output, "")
	require.True(t, ok)
	before, _ := d.GetNode(b)

	_, ok = d.RemoveNode(a)
	require.True(t, ok)

	assert.Empty(t, d.Arrows())
	after, ok := d.GetNode(b)
	require.True(t, ok)
	assert.Equal(t, before.Rect, after.Rect)
}

func TestRemoveIsIdempotent(t *testing.T) {
	d := diagram.New()
	a := d.AddNode("A", geometry.Pt(0, 0))
	b := d.AddNode("B", geometry.Pt(200, 0))
	arrow, _ := d.AddArrow(cp(a, diagram.Right), cp(b, diagram.Left), diagram.Output, "")

	_, ok := d.RemoveArrow(arrow)
	assert.True(t, ok)
	_, ok = d.RemoveArrow(arrow)
	assert.False(t, ok)

	_, ok = d.RemoveNode(a)
	assert.True(t, ok)
	_, ok = d.RemoveNode(a)
	assert.False(t, ok)

	_, ok = d.GetNode(a)
	assert.False(t, ok)
	_, ok = d.GetNodeMut(a)
	assert.False(t, ok)
}

func TestEditOperations(t *testing.T) {
	d := diagram.New()
	a := d.AddNode("A", geometry.Pt(0, 0))
	b := d.AddNode("B", geometry.Pt(200, 0))
	arrow, _ := d.AddArrow(cp(a, diagram.Right), cp(b, diagram.Left), diagram.Output, "old")

	assert.True(t, d.MoveNode(a, geometry.V(20, -10)))
	assert.True(t, d.RenameNode(a, "Assemble"))
	assert.True(t, d.SetAlgorithm(a, "multiply"))
	assert.True(t, d.SetArrowLabel(arrow, ""))

	n, _ := d.GetNode(a)
	assert.Equal(t, geometry.Pt(20, -10), n.Rect.Min)
	assert.Equal(t, "Assemble", n.Name)
	assert.Equal(t, "multiply", n.Algorithm)
	got, _ := d.GetArrow(arrow)
	assert.False(t, got.HasLabel())

	ghost := diagram.NewNodeID()
	assert.False(t, d.MoveNode(ghost, geometry.V(1, 1)))
	assert.False(t, d.RenameNode(ghost, "x"))
	assert.False(t, d.SetArrowLabel(diagram.NewArrowID(), "x"))

	m, ok := d.GetNodeMut(b)
	require.True(t, ok)
	m.Name = "Changed in place"
	n, _ = d.GetNode(b)
	assert.Equal(t, "Changed in place", n.Name)
}

func TestInsertionOrder(t *testing.T) {
	d := diagram.New()
	var want []string
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("N%02d", i)
		d.AddNode(name, geometry.Pt(0, 0))
		want = append(want, name)
	}
	var got []string
	for _, n := range d.Nodes() {
		got = append(got, n.Name)
	}
	assert.Equal(t, want, got)
}

func TestCloneIsDeep(t *testing.T) {
	d := diagram.New()
	a := d.AddNode("A", geometry.Pt(0, 0))
	b := d.AddNode("B", geometry.Pt(200, 0))
	d.AddArrow(cp(a, diagram.Right), cp(b, diagram.Left), diagram.Output, "x")

	c := d.Clone()
	c.RenameNode(a, "changed")
	c.RemoveNode(b)

	n, _ := d.GetNode(a)
	assert.Equal(t, "A", n.Name)
	assert.Equal(t, 2, d.NodeCount())
	assert.Equal(t, 1, d.ArrowCount())
	assert.Equal(t, 0, c.ArrowCount())
}

func TestJSONRoundTrip(t *testing.T) {
	d := diagram.New()
	a := d.AddNode("Receive order", geometry.Pt(10, 20))
	b := d.AddNode("Ship", geometry.Pt(300, 20))
	c := d.AddNode("Bill", geometry.Pt(300, 200))
	d.SetAlgorithm(c, "subtract")
	d.AddArrow(cp(a, diagram.Right), cp(b, diagram.Left), diagram.Output, "order")
	d.AddArrow(cp(a, diagram.Bottom), cp(c, diagram.Top), diagram.Control, "")

	data, err := json.Marshal(d)
	require.NoError(t, err)

	back, err := diagram.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, d.Nodes(), back.Nodes())
	assert.Equal(t, d.Arrows(), back.Arrows())

	var raw map[string][]map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Len(t, raw["nodes"], 3)
	assert.Equal(t, "right", raw["arrows"][0]["source"].(map[string]any)["side"])
	assert.Equal(t, "control", raw["arrows"][1]["type"])
	assert.NotContains(t, raw["arrows"][1], "label")
}

func TestParseRejectsInvalid(t *testing.T) {
	a := diagram.Node{ID: diagram.NewNodeID(), Name: "A"}
	b := diagram.Node{ID: diagram.NewNodeID(), Name: "B"}

	tests := []struct {
		name   string
		nodes  []diagram.Node
		arrows []diagram.Arrow
		want   error
	}{
		{
			name:  "duplicate node",
			nodes: []diagram.Node{a, a},
			want:  diagram.ErrDuplicateID,
		},
		{
			name:   "dangling target",
			nodes:  []diagram.Node{a},
			arrows: []diagram.Arrow{{ID: diagram.NewArrowID(), Source: cp(a.ID, diagram.Right), Target: cp(b.ID, diagram.Left)}},
			want:   diagram.ErrUnknownNode,
		},
		{
			name:   "self loop",
			nodes:  []diagram.Node{a, b},
			arrows: []diagram.Arrow{{ID: diagram.NewArrowID(), Source: cp(a.ID, diagram.Right), Target: cp(a.ID, diagram.Left)}},
			want:   diagram.ErrSelfLoop,
		},
		{
			name:  "missing id",
			nodes: []diagram.Node{{Name: "anonymous"}},
			want:  diagram.ErrZeroID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(map[string]any{"nodes": tt.nodes, "arrows": tt.arrows})
			require.NoError(t, err)

			_, err = diagram.Parse(data)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestUnmarshalFailureLeavesDiagramUnchanged(t *testing.T) {
	d := diagram.New()
	d.AddNode("keep", geometry.Pt(0, 0))

	err := json.Unmarshal([]byte(`{"nodes":[{"id":"not-a-uuid"}]}`), d)
	require.Error(t, err)
	assert.Equal(t, 1, d.NodeCount())
}

func TestBounds(t *testing.T) {
	d := diagram.New()
	_, ok := d.Bounds()
	assert.False(t, ok)

	d.AddNode("A", geometry.Pt(-50, 10))
	d.AddNode("B", geometry.Pt(200, 300))
	r, ok := d.Bounds()
	require.True(t, ok)
	assert.Equal(t, geometry.Pt(-50, 10), r.Min)
	assert.Equal(t, geometry.Pt(320, 360), r.Max)
}
