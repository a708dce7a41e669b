package editor

import (
	"testing"

	"sadt/diagram"
	"sadt/geometry"
)

func TestStructHistory(t *testing.T) {
	h := NewStructHistory(5)

	d := diagram.New()
	var ids []diagram.NodeID
	for i := 0; i < 3; i++ {
		ids = append(ids, d.AddNode("Node", geometry.Pt(0, 0)))
		h.SaveState(d)
	}

	current, total := h.Stats()
	if current != 3 || total != 3 {
		t.Fatalf("Stats() = %d/%d, want 3/3", current, total)
	}

	undone, ok := h.Undo()
	if !ok || undone.NodeCount() != 2 {
		t.Fatalf("Undo returned wrong state: ok=%v", ok)
	}
	// The returned copy must not alias history.
	undone.RemoveNode(ids[0])
	redone, ok := h.Redo()
	if !ok || redone.NodeCount() != 3 {
		t.Fatalf("Redo returned wrong state")
	}
	again, _ := h.Undo()
	if again.NodeCount() != 2 {
		t.Errorf("history was modified through an undone copy")
	}

	// A new save after undo drops the redo branch.
	h.SaveState(diagram.New())
	if h.CanRedo() {
		t.Error("Should not be able to redo after new save")
	}
}

func TestStructHistoryCapacity(t *testing.T) {
	h := NewStructHistory(3)
	d := diagram.New()
	for i := 0; i < 10; i++ {
		d.AddNode("n", geometry.Pt(0, 0))
		h.SaveState(d)
	}
	_, total := h.Stats()
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	n := 0
	for h.CanUndo() {
		h.Undo()
		n++
	}
	if n != 2 {
		t.Errorf("undid %d times, want 2", n)
	}

	h.Reset(diagram.New())
	if current, total := h.Stats(); current != 1 || total != 1 {
		t.Errorf("after Reset Stats() = %d/%d, want 1/1", current, total)
	}

	h.Clear()
	if h.CanUndo() || h.CanRedo() {
		t.Error("cleared history still navigable")
	}
}

func TestEditorUndoGroupsDrag(t *testing.T) {
	d := diagram.New()
	a := d.AddNode("A", geometry.Pt(100, 100))
	e := New(d)

	e.Handle(PointerPress{Pos: geometry.Pt(130, 110)})
	for i := 0; i < 10; i++ {
		e.Handle(PointerMove{Pos: geometry.Pt(130+float64(i+1)*5, 110), Delta: geometry.V(5, 0)})
	}
	if e.Undo() {
		t.Fatal("undo must be refused during a drag")
	}
	e.Handle(PointerRelease{Pos: geometry.Pt(180, 110)})

	n, _ := e.Diagram().GetNode(a)
	if n.Rect.Min.X != 150 {
		t.Fatalf("node at %v after drag", n.Rect.Min)
	}

	if !e.Undo() {
		t.Fatal("undo failed")
	}
	n, _ = e.Diagram().GetNode(a)
	if n.Rect.Min.X != 100 {
		t.Errorf("one undo should revert the whole drag, node at %v", n.Rect.Min)
	}
	if e.Undo() {
		t.Error("nothing left to undo")
	}

	e.Handle(KeyPress{Key: KeyRedo})
	n, _ = e.Diagram().GetNode(a)
	if n.Rect.Min.X != 150 {
		t.Errorf("redo: node at %v", n.Rect.Min)
	}
}

func TestUndoResetsStaleMode(t *testing.T) {
	e := New(nil)
	e.AddNodeAt(geometry.Pt(0, 0))
	id := e.Diagram().Nodes()[0].ID

	e.Handle(PointerPress{Pos: geometry.Pt(30, 20)})
	e.Handle(PointerRelease{Pos: geometry.Pt(30, 20)})
	if m, ok := e.Mode().(NodeSelected); !ok || m.Node != id {
		t.Fatalf("mode = %v", e.Mode())
	}

	e.Handle(KeyPress{Key: KeyUndo})
	if e.Diagram().NodeCount() != 0 {
		t.Fatal("undo did not remove the added node")
	}
	if _, ok := e.Mode().(Idle); !ok {
		t.Errorf("mode = %v, want IDLE", e.Mode())
	}
}

func TestSetDiagramResetsHistory(t *testing.T) {
	e := New(nil)
	e.AddNodeAt(geometry.Pt(0, 0))
	if !e.HasChanges() {
		t.Fatal("expected unsaved changes")
	}
	e.SetDiagram(diagram.New())
	if e.HasChanges() || e.History().CanUndo() {
		t.Error("SetDiagram should start clean")
	}
}

func TestReplaceIsUndoable(t *testing.T) {
	e := New(nil)
	e.AddNodeAt(geometry.Pt(0, 0))
	e.MarkSaved()

	e.Replace(diagram.New())
	if e.Diagram().NodeCount() != 0 || !e.HasChanges() {
		t.Fatal("Replace should install the new diagram as a change")
	}
	e.Handle(KeyPress{Key: KeyUndo})
	if e.Diagram().NodeCount() != 1 {
		t.Error("undo should bring back the replaced diagram")
	}
}
