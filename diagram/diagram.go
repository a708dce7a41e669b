package diagram

import (
	"slices"

	"sadt/geometry"
)

// Default node size in world units.
const (
	DefaultNodeWidth  = 120
	DefaultNodeHeight = 60
)

// Diagram owns the nodes and arrows of one SADT diagram.
//
// Lookups are by id; iteration follows insertion order so that everything
// derived from a diagram (hit-testing, generated code, exports) is stable.
// The zero value is an empty diagram ready to use.
//
// After every exported method returns, each arrow references two distinct
// nodes present in the diagram.
type Diagram struct {
	nodes      map[NodeID]*Node
	arrows     map[ArrowID]*Arrow
	nodeOrder  []NodeID
	arrowOrder []ArrowID

	nodeWidth, nodeHeight float64
	algorithm             string
}

// Option configures a new Diagram.
type Option func(*Diagram)

// WithNodeSize sets the size given to nodes created by AddNode.
func WithNodeSize(width, height float64) Option {
	return func(d *Diagram) {
		if width > 0 && height > 0 {
			d.nodeWidth, d.nodeHeight = width, height
		}
	}
}

// WithDefaultAlgorithm sets the algorithm given to nodes created by AddNode.
func WithDefaultAlgorithm(name string) Option {
	return func(d *Diagram) {
		if name != "" {
			d.algorithm = name
		}
	}
}

// New creates an empty diagram.
func New(opts ...Option) *Diagram {
	d := &Diagram{}
	for _, opt := range opts {
		opt(d)
	}
	d.init()
	return d
}

func (d *Diagram) init() {
	if d.nodes == nil {
		d.nodes = make(map[NodeID]*Node)
	}
	if d.arrows == nil {
		d.arrows = make(map[ArrowID]*Arrow)
	}
}

// NodeSize returns the size given to new nodes.
func (d *Diagram) NodeSize() (width, height float64) {
	if d.nodeWidth <= 0 || d.nodeHeight <= 0 {
		return DefaultNodeWidth, DefaultNodeHeight
	}
	return d.nodeWidth, d.nodeHeight
}

func (d *Diagram) defaultAlgorithm() string {
	if d.algorithm == "" {
		return DefaultAlgorithm
	}
	return d.algorithm
}

// AddNode creates a node with the default size whose top-left corner is at
// pos and returns its id.
func (d *Diagram) AddNode(name string, pos geometry.Point) NodeID {
	d.init()
	w, h := d.NodeSize()
	n := &Node{
		ID:        NewNodeID(),
		Name:      name,
		Rect:      geometry.RectFromMinSize(pos, w, h),
		Algorithm: d.defaultAlgorithm(),
	}
	d.nodes[n.ID] = n
	d.nodeOrder = append(d.nodeOrder, n.ID)
	return n.ID
}

// AddArrow connects source to target. It returns false, and changes nothing,
// when either node is missing or both ends are on the same node.
func (d *Diagram) AddArrow(source, target ConnectionPoint, typ ArrowType, label string) (ArrowID, bool) {
	if source.Node == target.Node {
		return ArrowID{}, false
	}
	if _, ok := d.nodes[source.Node]; !ok {
		return ArrowID{}, false
	}
	if _, ok := d.nodes[target.Node]; !ok {
		return ArrowID{}, false
	}
	d.init()
	a := &Arrow{
		ID:     NewArrowID(),
		Label:  label,
		Type:   typ,
		Source: source,
		Target: target,
	}
	d.arrows[a.ID] = a
	d.arrowOrder = append(d.arrowOrder, a.ID)
	return a.ID, true
}

// RemoveNode deletes the node together with every arrow attached to it.
// Removing an absent node is a no-op that returns false.
func (d *Diagram) RemoveNode(id NodeID) (Node, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return Node{}, false
	}
	delete(d.nodes, id)
	d.nodeOrder = slices.DeleteFunc(d.nodeOrder, func(x NodeID) bool { return x == id })
	d.arrowOrder = slices.DeleteFunc(d.arrowOrder, func(x ArrowID) bool {
		if d.arrows[x].References(id) {
			delete(d.arrows, x)
			return true
		}
		return false
	})
	return *n, true
}

// RemoveArrow deletes an arrow. Removing an absent arrow is a no-op that
// returns false.
func (d *Diagram) RemoveArrow(id ArrowID) (Arrow, bool) {
	a, ok := d.arrows[id]
	if !ok {
		return Arrow{}, false
	}
	delete(d.arrows, id)
	d.arrowOrder = slices.DeleteFunc(d.arrowOrder, func(x ArrowID) bool { return x == id })
	return *a, true
}

// GetNode returns a copy of the node.
func (d *Diagram) GetNode(id NodeID) (Node, bool) {
	n, ok := d.nodes[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// GetNodeMut returns the stored node for in-place edits of its name,
// rectangle or algorithm. The ID field must not be changed.
func (d *Diagram) GetNodeMut(id NodeID) (*Node, bool) {
	n, ok := d.nodes[id]
	return n, ok
}

// GetArrow returns a copy of the arrow.
func (d *Diagram) GetArrow(id ArrowID) (Arrow, bool) {
	a, ok := d.arrows[id]
	if !ok {
		return Arrow{}, false
	}
	return *a, true
}

// GetArrowMut returns the stored arrow for in-place edits of its label or
// type. Endpoints and ID must not be changed.
func (d *Diagram) GetArrowMut(id ArrowID) (*Arrow, bool) {
	a, ok := d.arrows[id]
	return a, ok
}

// Nodes returns copies of all nodes in insertion order.
func (d *Diagram) Nodes() []Node {
	out := make([]Node, 0, len(d.nodeOrder))
	for _, id := range d.nodeOrder {
		out = append(out, *d.nodes[id])
	}
	return out
}

// Arrows returns copies of all arrows in insertion order.
func (d *Diagram) Arrows() []Arrow {
	out := make([]Arrow, 0, len(d.arrowOrder))
	for _, id := range d.arrowOrder {
		out = append(out, *d.arrows[id])
	}
	return out
}

func (d *Diagram) NodeCount() int  { return len(d.nodeOrder) }
func (d *Diagram) ArrowCount() int { return len(d.arrowOrder) }

// MoveNode translates a node's rectangle by a world-space delta. A move
// that would leave the rectangle non-finite is refused.
func (d *Diagram) MoveNode(id NodeID, delta geometry.Vec) bool {
	n, ok := d.nodes[id]
	if !ok {
		return false
	}
	moved := n.Rect.Translate(delta)
	if !moved.IsFinite() {
		return false
	}
	n.Rect = moved
	return true
}

// RenameNode sets a node's display name.
func (d *Diagram) RenameNode(id NodeID, name string) bool {
	n, ok := d.nodes[id]
	if !ok {
		return false
	}
	n.Name = name
	return true
}

// SetArrowLabel sets an arrow's label; the empty string removes it.
func (d *Diagram) SetArrowLabel(id ArrowID, label string) bool {
	a, ok := d.arrows[id]
	if !ok {
		return false
	}
	a.Label = label
	return true
}

// SetAlgorithm sets the algorithm tag of a node.
func (d *Diagram) SetAlgorithm(id NodeID, name string) bool {
	n, ok := d.nodes[id]
	if !ok {
		return false
	}
	n.Algorithm = name
	return true
}

// Bounds returns the smallest rectangle enclosing every node, and false for
// an empty diagram.
func (d *Diagram) Bounds() (geometry.Rect, bool) {
	if len(d.nodeOrder) == 0 {
		return geometry.Rect{}, false
	}
	r := d.nodes[d.nodeOrder[0]].Rect
	for _, id := range d.nodeOrder[1:] {
		r = r.Union(d.nodes[id].Rect)
	}
	return r, true
}

// Clone creates a deep copy of the diagram, ids included.
func (d *Diagram) Clone() *Diagram {
	if d == nil {
		return nil
	}
	clone := &Diagram{
		nodes:      make(map[NodeID]*Node, len(d.nodes)),
		arrows:     make(map[ArrowID]*Arrow, len(d.arrows)),
		nodeOrder:  slices.Clone(d.nodeOrder),
		arrowOrder: slices.Clone(d.arrowOrder),
		nodeWidth:  d.nodeWidth,
		nodeHeight: d.nodeHeight,
		algorithm:  d.algorithm,
	}
	for id, n := range d.nodes {
		cp := *n
		clone.nodes[id] = &cp
	}
	for id, a := range d.arrows {
		cp := *a
		clone.arrows[id] = &cp
	}
	return clone
}
