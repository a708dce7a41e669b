package editor

import (
	"sadt/diagram"
)

// Mode is the single interaction state of an edit session. Exactly one
// variant is active; each carries only the ids it needs.
type Mode interface {
	// String returns the mode name for display
	String() string
	isMode()
}

// Idle: nothing selected, no gesture in progress.
type Idle struct{}

// NodeSelected: a node is selected.
type NodeSelected struct {
	Node diagram.NodeID
}

// ArrowSelected: an arrow is selected.
type ArrowSelected struct {
	Arrow diagram.ArrowID
}

// DraggingNode: the primary button went down on a node body and each pointer
// move translates the node.
type DraggingNode struct {
	Node diagram.NodeID
}

// CreatingArrow: the primary button went down on a connection point, which
// is the pending source of a new arrow.
type CreatingArrow struct {
	Source diagram.ConnectionPoint
}

// RenamingNode: a node name is being edited in Text.
type RenamingNode struct {
	Node diagram.NodeID
	Text string
}

// RenamingArrow: an arrow label is being edited in Text.
type RenamingArrow struct {
	Arrow diagram.ArrowID
	Text  string
}

func (Idle) isMode()          {}
func (NodeSelected) isMode()  {}
func (ArrowSelected) isMode() {}
func (DraggingNode) isMode()  {}
func (CreatingArrow) isMode() {}
func (RenamingNode) isMode()  {}
func (RenamingArrow) isMode() {}

func (Idle) String() string          { return "IDLE" }
func (NodeSelected) String() string  { return "NODE" }
func (ArrowSelected) String() string { return "ARROW" }
func (DraggingNode) String() string  { return "DRAG" }
func (CreatingArrow) String() string { return "CONNECT" }
func (RenamingNode) String() string  { return "RENAME" }
func (RenamingArrow) String() string { return "LABEL" }

// IsExclusive reports whether m is one of the gesture or text-entry modes
// during which selection shortcuts, deletion and undo are unavailable.
func IsExclusive(m Mode) bool {
	switch m.(type) {
	case DraggingNode, CreatingArrow, RenamingNode, RenamingArrow:
		return true
	}
	return false
}

// SelectedNode returns the node highlighted by m, if any.
func SelectedNode(m Mode) (diagram.NodeID, bool) {
	switch m := m.(type) {
	case NodeSelected:
		return m.Node, true
	case DraggingNode:
		return m.Node, true
	case RenamingNode:
		return m.Node, true
	}
	return diagram.NodeID{}, false
}

// SelectedArrow returns the arrow highlighted by m, if any.
func SelectedArrow(m Mode) (diagram.ArrowID, bool) {
	switch m := m.(type) {
	case ArrowSelected:
		return m.Arrow, true
	case RenamingArrow:
		return m.Arrow, true
	}
	return diagram.ArrowID{}, false
}

// RenameText returns the edit buffer when m is a renaming mode.
func RenameText(m Mode) (string, bool) {
	switch m := m.(type) {
	case RenamingNode:
		return m.Text, true
	case RenamingArrow:
		return m.Text, true
	}
	return "", false
}

// Revalidate drops a mode whose node or arrow is no longer in d.
func Revalidate(m Mode, d diagram.View) Mode {
	var alive bool
	switch m := m.(type) {
	case nil:
		return Idle{}
	case NodeSelected:
		_, alive = d.GetNode(m.Node)
	case DraggingNode:
		_, alive = d.GetNode(m.Node)
	case RenamingNode:
		_, alive = d.GetNode(m.Node)
	case CreatingArrow:
		_, alive = d.GetNode(m.Source.Node)
	case ArrowSelected:
		_, alive = d.GetArrow(m.Arrow)
	case RenamingArrow:
		_, alive = d.GetArrow(m.Arrow)
	default:
		return m
	}
	if !alive {
		return Idle{}
	}
	return m
}

// afterRename is where a rename lands once it is committed or cancelled.
func afterRename(m Mode) Mode {
	switch m := m.(type) {
	case RenamingNode:
		return NodeSelected{Node: m.Node}
	case RenamingArrow:
		return ArrowSelected{Arrow: m.Arrow}
	}
	return m
}
