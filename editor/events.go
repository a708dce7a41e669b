package editor

import (
	"sadt/geometry"
)

// Event is one raw input sample. Positions and deltas are in screen space;
// the state machine converts them with the session's transform.
type Event interface {
	isEvent()
}

// PointerPress: a button went down at Pos.
type PointerPress struct {
	Pos    geometry.Point
	Button Button
}

// PointerMove: the pointer moved to Pos, Delta since the previous sample.
type PointerMove struct {
	Pos   geometry.Point
	Delta geometry.Vec
}

// PointerRelease: a button went up at Pos.
type PointerRelease struct {
	Pos    geometry.Point
	Button Button
}

// KeyPress: a key was typed. Rune is set for KeyRune.
type KeyPress struct {
	Key  Key
	Rune rune
}

// Scroll: the wheel turned by Delta notches at Pos. Positive zooms in.
type Scroll struct {
	Pos   geometry.Point
	Delta float64
}

// FocusLost: the editing surface lost keyboard focus.
type FocusLost struct{}

// CommandKind names a context-menu action.
type CommandKind int

const (
	CmdAddNode CommandKind = iota
	CmdRename
	CmdDelete
	CmdCycleAlgorithm
)

func (k CommandKind) String() string {
	switch k {
	case CmdAddNode:
		return "add-node"
	case CmdRename:
		return "rename"
	case CmdDelete:
		return "delete"
	case CmdCycleAlgorithm:
		return "cycle-algorithm"
	default:
		return "unknown"
	}
}

// Command is an explicit action, typically chosen from a context menu. Pos
// is where the menu was opened; only CmdAddNode uses it.
type Command struct {
	Kind CommandKind
	Pos  geometry.Point
}

func (PointerPress) isEvent()   {}
func (PointerMove) isEvent()    {}
func (PointerRelease) isEvent() {}
func (KeyPress) isEvent()       {}
func (Scroll) isEvent()         {}
func (FocusLost) isEvent()      {}
func (Command) isEvent()        {}
