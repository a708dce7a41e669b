package diagram

// View is read-only access to a diagram. Hit-testing, rendering, exporters
// and the code generator only need this much.
type View interface {
	Nodes() []Node
	Arrows() []Arrow
	GetNode(id NodeID) (Node, bool)
	GetArrow(id ArrowID) (Arrow, bool)
}

var _ View = (*Diagram)(nil)
