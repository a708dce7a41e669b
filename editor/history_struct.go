package editor

import (
	"sadt/diagram"
)

// StructHistory is a bounded list of diagram snapshots with a cursor at the
// state currently on screen. Snapshots are deep copies and are never handed
// out directly.
type StructHistory struct {
	snapshots []*diagram.Diagram
	at        int
	depth     int
}

// NewStructHistory keeps at most depth snapshots; anything below two falls
// back to 50.
func NewStructHistory(depth int) *StructHistory {
	if depth < 2 {
		depth = 50
	}
	return &StructHistory{
		snapshots: make([]*diagram.Diagram, 0, min(depth, 64)),
		at:        -1,
		depth:     depth,
	}
}

// SaveState pushes a copy of d after the cursor. Redo states are dropped and
// the oldest snapshot falls off once depth is exceeded.
func (sh *StructHistory) SaveState(d *diagram.Diagram) {
	sh.snapshots = append(sh.snapshots[:sh.at+1], d.Clone())
	if over := len(sh.snapshots) - sh.depth; over > 0 {
		clear(sh.snapshots[:over])
		sh.snapshots = sh.snapshots[over:]
	}
	sh.at = len(sh.snapshots) - 1
}

// Reset forgets every snapshot and starts again from d.
func (sh *StructHistory) Reset(d *diagram.Diagram) {
	clear(sh.snapshots)
	sh.snapshots = sh.snapshots[:0]
	sh.at = -1
	sh.SaveState(d)
}

func (sh *StructHistory) CanUndo() bool { return sh.at > 0 }

func (sh *StructHistory) CanRedo() bool { return sh.at < len(sh.snapshots)-1 }

// Undo moves the cursor back and returns a copy of that snapshot.
func (sh *StructHistory) Undo() (*diagram.Diagram, bool) {
	if !sh.CanUndo() {
		return nil, false
	}
	sh.at--
	return sh.snapshots[sh.at].Clone(), true
}

// Redo moves the cursor forward and returns a copy of that snapshot.
func (sh *StructHistory) Redo() (*diagram.Diagram, bool) {
	if !sh.CanRedo() {
		return nil, false
	}
	sh.at++
	return sh.snapshots[sh.at].Clone(), true
}

// Clear drops every snapshot.
func (sh *StructHistory) Clear() {
	clear(sh.snapshots)
	sh.snapshots = sh.snapshots[:0]
	sh.at = -1
}

// Stats reports the 1-based cursor position and the snapshot count.
func (sh *StructHistory) Stats() (current, total int) {
	return sh.at + 1, len(sh.snapshots)
}
