package editor

import (
	"fmt"

	"sadt/diagram"
	"sadt/geometry"
)

// Mutation is a change to the diagram requested by the state machine. Apply
// reports whether the diagram changed.
type Mutation interface {
	Apply(d *diagram.Diagram) bool
	String() string
}

type AddNode struct {
	Name string
	Pos  geometry.Point
}

type MoveNode struct {
	Node  diagram.NodeID
	Delta geometry.Vec
}

type AddArrow struct {
	Source, Target diagram.ConnectionPoint
	Type           diagram.ArrowType
	Label          string
}

type RenameNode struct {
	Node diagram.NodeID
	Name string
}

type RelabelArrow struct {
	Arrow diagram.ArrowID
	Label string
}

type SetAlgorithm struct {
	Node      diagram.NodeID
	Algorithm string
}

type RemoveNode struct {
	Node diagram.NodeID
}

type RemoveArrow struct {
	Arrow diagram.ArrowID
}

func (m AddNode) Apply(d *diagram.Diagram) bool {
	d.AddNode(m.Name, m.Pos)
	return true
}

func (m MoveNode) Apply(d *diagram.Diagram) bool {
	if m.Delta.IsZero() {
		return false
	}
	return d.MoveNode(m.Node, m.Delta)
}

func (m AddArrow) Apply(d *diagram.Diagram) bool {
	_, ok := d.AddArrow(m.Source, m.Target, m.Type, m.Label)
	return ok
}

func (m RenameNode) Apply(d *diagram.Diagram) bool {
	n, ok := d.GetNode(m.Node)
	if !ok || n.Name == m.Name {
		return false
	}
	return d.RenameNode(m.Node, m.Name)
}

func (m RelabelArrow) Apply(d *diagram.Diagram) bool {
	a, ok := d.GetArrow(m.Arrow)
	if !ok || a.Label == m.Label {
		return false
	}
	return d.SetArrowLabel(m.Arrow, m.Label)
}

func (m SetAlgorithm) Apply(d *diagram.Diagram) bool {
	return d.SetAlgorithm(m.Node, m.Algorithm)
}

func (m RemoveNode) Apply(d *diagram.Diagram) bool {
	_, ok := d.RemoveNode(m.Node)
	return ok
}

func (m RemoveArrow) Apply(d *diagram.Diagram) bool {
	_, ok := d.RemoveArrow(m.Arrow)
	return ok
}

func (m AddNode) String() string {
	return fmt.Sprintf("add node %q at (%.1f, %.1f)", m.Name, m.Pos.X, m.Pos.Y)
}

func (m MoveNode) String() string {
	return fmt.Sprintf("move %s by (%.1f, %.1f)", m.Node.Short(), m.Delta.X, m.Delta.Y)
}

func (m AddArrow) String() string {
	return fmt.Sprintf("add %s arrow %s -> %s", m.Type, m.Source, m.Target)
}

func (m RenameNode) String() string {
	return fmt.Sprintf("rename %s to %q", m.Node.Short(), m.Name)
}

func (m RelabelArrow) String() string {
	return fmt.Sprintf("label %s %q", m.Arrow.Short(), m.Label)
}

func (m SetAlgorithm) String() string {
	return fmt.Sprintf("set %s algorithm %s", m.Node.Short(), m.Algorithm)
}

func (m RemoveNode) String() string  { return "remove node " + m.Node.Short() }
func (m RemoveArrow) String() string { return "remove arrow " + m.Arrow.Short() }
