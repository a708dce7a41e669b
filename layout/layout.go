// Package layout places the activities of a diagram that has no positions,
// such as one imported from a text format.
package layout

import (
	"sort"

	"sadt/diagram"
	"sadt/geometry"
)

// Layered arranges activities left to right along their Input and Output
// arrows. A node only linked as the source of Control or Mechanism arrows
// joins the column of its first target, above it for Control and below it
// for Mechanism, the way an IDEF0 sheet draws them.
type Layered struct {
	HorizontalSpacing float64
	VerticalSpacing   float64
	Origin            geometry.Point
}

// NewLayered returns a layout with spacing suited to the default node size.
func NewLayered() *Layered {
	return &Layered{HorizontalSpacing: 80, VerticalSpacing: 60}
}

// band orders nodes within a column.
type band int

const (
	bandControl band = iota - 1
	bandFlow
	bandMechanism
)

// Layout moves every node of d. Node sizes are kept.
func (l *Layered) Layout(d *diagram.Diagram) {
	nodes := d.Nodes()
	if len(nodes) == 0 {
		return
	}
	index := make(map[diagram.NodeID]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
	}

	outgoing := make([][]int, len(nodes))
	inFlow := make([]bool, len(nodes))
	anchor := make([]int, len(nodes))
	bands := make([]band, len(nodes))
	for i := range anchor {
		anchor[i] = -1
	}
	for _, a := range d.Arrows() {
		from, to := index[a.Source.Node], index[a.Target.Node]
		switch a.Type {
		case diagram.Input, diagram.Output:
			outgoing[from] = append(outgoing[from], to)
			inFlow[from], inFlow[to] = true, true
		case diagram.Control, diagram.Mechanism:
			if anchor[from] < 0 {
				anchor[from] = to
				bands[from] = bandControl
				if a.Type == diagram.Mechanism {
					bands[from] = bandMechanism
				}
			}
		}
	}

	layer := assignLayers(outgoing)
	for i := range nodes {
		if inFlow[i] || anchor[i] < 0 {
			bands[i] = bandFlow
			continue
		}
		// Follow chains of providers to a node with a column of its own.
		t, hops := anchor[i], 0
		for !inFlow[t] && anchor[t] >= 0 && hops < len(nodes) {
			t, hops = anchor[t], hops+1
		}
		layer[i] = layer[t]
	}

	columns := map[int][]int{}
	maxLayer := 0
	for i, ly := range layer {
		columns[ly] = append(columns[ly], i)
		maxLayer = max(maxLayer, ly)
	}

	x := l.Origin.X
	for ly := 0; ly <= maxLayer; ly++ {
		col := columns[ly]
		if len(col) == 0 {
			continue
		}
		sort.SliceStable(col, func(a, b int) bool { return bands[col[a]] < bands[col[b]] })
		width := 0.0
		y := l.Origin.Y
		for _, i := range col {
			n, _ := d.GetNodeMut(nodes[i].ID)
			n.Rect = geometry.RectFromMinSize(geometry.Pt(x, y), nodes[i].Rect.Width(), nodes[i].Rect.Height())
			y += nodes[i].Rect.Height() + l.VerticalSpacing
			width = max(width, nodes[i].Rect.Width())
		}
		x += width + l.HorizontalSpacing
	}
}

// assignLayers gives each node its longest distance from a source. Edges
// closing a cycle are ignored.
func assignLayers(outgoing [][]int) []int {
	n := len(outgoing)
	dag := removeBackEdges(outgoing)

	inDegree := make([]int, n)
	for _, succ := range dag {
		for _, s := range succ {
			inDegree[s]++
		}
	}
	layer := make([]int, n)
	var queue []int
	for i := range n {
		if inDegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for _, s := range dag[i] {
			layer[s] = max(layer[s], layer[i]+1)
			inDegree[s]--
			if inDegree[s] == 0 {
				queue = append(queue, s)
			}
		}
	}
	return layer
}

// removeBackEdges drops the edges a depth-first search finds pointing at a
// node still on the stack, which leaves an acyclic graph.
func removeBackEdges(outgoing [][]int) [][]int {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(outgoing))
	dag := make([][]int, len(outgoing))

	var visit func(i int)
	visit = func(i int) {
		state[i] = visiting
		for _, s := range outgoing[i] {
			switch state[s] {
			case visiting:
				continue
			case unvisited:
				visit(s)
			}
			if s != i {
				dag[i] = append(dag[i], s)
			}
		}
		state[i] = done
	}
	for i := range outgoing {
		if state[i] == unvisited {
			visit(i)
		}
	}
	return dag
}
