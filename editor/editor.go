// Package editor turns pointer and keyboard input into edits of an SADT
// diagram.
//
// The state machine itself is the pure function Step. Editor wraps it with
// the diagram it edits, undo history and logging.
package editor

import (
	"io"
	"log/slog"

	"sadt/diagram"
	"sadt/geometry"
	"sadt/hittest"
)

// Editor owns one diagram and the session editing it. It is not safe for
// concurrent use; feed it from a single event loop.
type Editor struct {
	diagram  *diagram.Diagram
	session  Session
	settings Settings
	history  *StructHistory
	logger   *slog.Logger

	// pending is set when mutations were applied since the last history
	// checkpoint.
	pending    bool
	hasChanges bool
}

// Option configures an Editor.
type Option func(*Editor)

// WithSettings replaces the default interaction settings.
func WithSettings(s Settings) Option {
	return func(e *Editor) { e.settings = s }
}

// WithLogger sets the logger for transitions and mutations.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTransform sets the initial view.
func WithTransform(t geometry.Transform) Option {
	return func(e *Editor) { e.session.Transform = t }
}

// WithHistoryDepth bounds the number of undo states kept.
func WithHistoryDepth(n int) Option {
	return func(e *Editor) { e.history = NewStructHistory(n) }
}

// New creates an editor for d. A nil d starts an empty diagram.
func New(d *diagram.Diagram, opts ...Option) *Editor {
	if d == nil {
		d = diagram.New()
	}
	e := &Editor{
		diagram:  d,
		session:  NewSession(geometry.Identity()),
		settings: DefaultSettings(),
		history:  NewStructHistory(500),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.session = NewSession(e.session.Transform)

	// Save initial state
	e.history.SaveState(e.diagram)
	return e
}

// Handle processes one input event.
func (e *Editor) Handle(ev Event) {
	if k, ok := ev.(KeyPress); ok {
		switch k.Key {
		case KeyUndo:
			e.Undo()
			return
		case KeyRedo:
			e.Redo()
			return
		}
	}

	prev := e.session.Mode
	if fresh := Revalidate(prev, e.diagram); fresh != prev {
		e.logger.Debug("stale selection reset", "mode", prev.String())
		e.session.Mode = fresh
		prev = fresh
	}

	next, muts := Step(e.session, e.diagram, e.settings, ev)
	for _, m := range muts {
		if m.Apply(e.diagram) {
			e.pending = true
			e.hasChanges = true
			e.logger.Debug("apply", "mutation", m.String())
		} else {
			e.logger.Debug("mutation had no effect", "mutation", m.String())
		}
	}
	e.session = next
	e.logTransition(prev, next.Mode, ev, muts)

	// A drag is one undo step: checkpoint once it is over.
	if _, dragging := next.Mode.(DraggingNode); e.pending && !dragging {
		e.history.SaveState(e.diagram)
		e.pending = false
	}
}

// HandleFrame processes the events collected during one frame, in order.
// Each event sees the transform left by the previous one.
func (e *Editor) HandleFrame(events []Event) {
	for _, ev := range events {
		e.Handle(ev)
	}
}

func (e *Editor) logTransition(prev, next Mode, ev Event, muts []Mutation) {
	if c, ok := prev.(CreatingArrow); ok {
		if _, released := ev.(PointerRelease); released && len(muts) == 0 {
			e.logger.Debug("arrow creation cancelled", "source", c.Source.String(), "reason", "no target")
		}
	}
	if prev == next {
		return
	}
	e.logger.Debug("mode", "from", prev.String(), "to", next.String())
}

// Undo restores the previous checkpoint. It is refused while a gesture or
// rename is in progress.
func (e *Editor) Undo() bool {
	if IsExclusive(e.session.Mode) {
		return false
	}
	d, ok := e.history.Undo()
	if !ok {
		return false
	}
	e.restore(d)
	e.logger.Debug("undo")
	return true
}

// Redo reapplies the checkpoint undone last.
func (e *Editor) Redo() bool {
	if IsExclusive(e.session.Mode) {
		return false
	}
	d, ok := e.history.Redo()
	if !ok {
		return false
	}
	e.restore(d)
	e.logger.Debug("redo")
	return true
}

func (e *Editor) restore(d *diagram.Diagram) {
	e.diagram = d
	e.session.Mode = Revalidate(e.session.Mode, d)
	e.pending = false
	e.hasChanges = true
}

// AddNodeAt adds a new activity at a screen position.
func (e *Editor) AddNodeAt(screen geometry.Point) {
	e.Handle(Command{Kind: CmdAddNode, Pos: screen})
}

// BeginRename starts editing the selected node's name or arrow's label.
func (e *Editor) BeginRename() { e.Handle(Command{Kind: CmdRename}) }

// DeleteSelected removes the selected node or arrow.
func (e *Editor) DeleteSelected() { e.Handle(Command{Kind: CmdDelete}) }

// CycleAlgorithm moves the selected node to the next known algorithm.
func (e *Editor) CycleAlgorithm() { e.Handle(Command{Kind: CmdCycleAlgorithm}) }

// SetDiagram replaces the edited diagram, for instance after a reload. The
// history restarts from d.
func (e *Editor) SetDiagram(d *diagram.Diagram) {
	if d == nil {
		d = diagram.New()
	}
	e.diagram = d
	e.session.Mode = Revalidate(e.session.Mode, d)
	if IsExclusive(e.session.Mode) {
		e.session.Mode = Idle{}
	}
	e.history.Reset(d)
	e.pending = false
	e.hasChanges = false
}

// Replace swaps in d as an ordinary edit: it is one undo step and counts
// as an unsaved change.
func (e *Editor) Replace(d *diagram.Diagram) {
	if d == nil {
		d = diagram.New()
	}
	e.diagram = d
	e.session.Mode = Revalidate(e.session.Mode, d)
	if IsExclusive(e.session.Mode) {
		e.session.Mode = Idle{}
	}
	e.history.SaveState(d)
	e.pending = false
	e.hasChanges = true
}

// SetTransform replaces the view transform.
func (e *Editor) SetTransform(t geometry.Transform) {
	e.session.Transform = geometry.NewTransform(t.Pan, t.Zoom)
}

// Diagram returns the edited diagram. Callers must not modify it; use
// View for read-only consumers.
func (e *Editor) Diagram() *diagram.Diagram { return e.diagram }

// View returns read-only access to the edited diagram.
func (e *Editor) View() diagram.View { return e.diagram }

func (e *Editor) Session() Session        { return e.session }
func (e *Editor) Mode() Mode              { return e.session.Mode }
func (e *Editor) Settings() Settings      { return e.settings }
func (e *Editor) History() *StructHistory { return e.history }

// HasChanges reports whether the diagram changed since the last MarkSaved.
func (e *Editor) HasChanges() bool { return e.hasChanges }

// MarkSaved clears the unsaved-changes flag.
func (e *Editor) MarkSaved() { e.hasChanges = false }

// PreviewLine returns, while an arrow is being created, the world positions
// of its source point and of the pointer.
func (e *Editor) PreviewLine() (from, to geometry.Point, ok bool) {
	c, creating := e.session.Mode.(CreatingArrow)
	if !creating {
		return from, to, false
	}
	from, ok = hittest.PointPosition(e.diagram, c.Source)
	return from, e.session.Pointer, ok
}
