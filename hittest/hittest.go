// Package hittest answers "what is under this world point" for a diagram.
//
// Every query is total: a miss is reported with ok == false, never an error.
// All positions and distances are in world units.
package hittest

import (
	"sadt/diagram"
	"sadt/geometry"
)

// ConnectionPosition returns the world position of the midpoint of one side
// of a node's rectangle.
func ConnectionPosition(n diagram.Node, side diagram.Side) geometry.Point {
	r := n.Rect
	c := r.Center()
	switch side {
	case diagram.Left:
		return geometry.Pt(r.Left(), c.Y)
	case diagram.Right:
		return geometry.Pt(r.Right(), c.Y)
	case diagram.Top:
		return geometry.Pt(c.X, r.Top())
	case diagram.Bottom:
		return geometry.Pt(c.X, r.Bottom())
	}
	return c
}

// PointPosition resolves a connection point against the diagram.
func PointPosition(d diagram.View, cp diagram.ConnectionPoint) (geometry.Point, bool) {
	n, ok := d.GetNode(cp.Node)
	if !ok {
		return geometry.Point{}, false
	}
	return ConnectionPosition(n, cp.Side), true
}

// Endpoints returns the current world positions of both ends of an arrow.
func Endpoints(d diagram.View, a diagram.Arrow) (from, to geometry.Point, ok bool) {
	from, ok = PointPosition(d, a.Source)
	if !ok {
		return
	}
	to, ok = PointPosition(d, a.Target)
	return
}

// NearestConnectionPoint finds the connection point closest to p among all
// nodes and sides, provided it is strictly closer than maxDist. Nodes are
// visited in insertion order and sides in diagram.Sides order; on an exact
// tie the first one visited wins.
func NearestConnectionPoint(d diagram.View, p geometry.Point, maxDist float64) (diagram.ConnectionPoint, bool) {
	var (
		best   diagram.ConnectionPoint
		bestD2 = maxDist * maxDist
		found  bool
	)
	for _, n := range d.Nodes() {
		for _, side := range diagram.Sides {
			d2 := ConnectionPosition(n, side).DistanceSquared(p)
			if d2 < bestD2 {
				best = diagram.ConnectionPoint{Node: n.ID, Side: side}
				bestD2 = d2
				found = true
			}
		}
	}
	return best, found
}

// PointInNode reports whether p lies inside the node's rectangle, edges
// included.
func PointInNode(n diagram.Node, p geometry.Point) bool {
	return n.Rect.Contains(p)
}

// NodeAt returns the first node, in insertion order, containing p.
func NodeAt(d diagram.View, p geometry.Point) (diagram.Node, bool) {
	for _, n := range d.Nodes() {
		if PointInNode(n, p) {
			return n, true
		}
	}
	return diagram.Node{}, false
}

// DistanceSquaredPointToSegment returns the squared distance from p to the
// segment ab. A degenerate segment is treated as the point a.
func DistanceSquaredPointToSegment(p, a, b geometry.Point) float64 {
	ab := b.Sub(a)
	l2 := ab.LengthSquared()
	if l2 == 0 {
		return p.DistanceSquared(a)
	}
	t := p.Sub(a).Dot(ab) / l2
	t = max(0, min(1, t))
	return p.DistanceSquared(a.Add(ab.Scale(t)))
}

// ArrowAt returns the arrow whose segment passes closest to p, if that
// distance is strictly below tolerance. Ties go to the earlier arrow.
func ArrowAt(d diagram.View, p geometry.Point, tolerance float64) (diagram.Arrow, bool) {
	var (
		best   diagram.Arrow
		bestD2 = tolerance * tolerance
		found  bool
	)
	for _, a := range d.Arrows() {
		from, to, ok := Endpoints(d, a)
		if !ok {
			continue
		}
		d2 := DistanceSquaredPointToSegment(p, from, to)
		if d2 < bestD2 {
			best, bestD2, found = a, d2, true
		}
	}
	return best, found
}
