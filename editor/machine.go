package editor

import (
	"fmt"
	"math"

	"sadt/diagram"
	"sadt/geometry"
	"sadt/hittest"
)

// Step advances the session by one event and returns the new session along
// with the diagram mutations the caller should apply, in order.
//
// Step only reads d. Any mode referring to an element missing from d is
// reset to Idle before the event is handled. Events carrying NaN or
// infinite coordinates are ignored.
func Step(s Session, d diagram.View, cfg Settings, ev Event) (Session, []Mutation) {
	if !s.Transform.Valid() {
		s.Transform = geometry.Identity()
	}
	s.Mode = Revalidate(s.Mode, d)
	if !finite(ev) {
		return s, nil
	}

	switch ev := ev.(type) {
	case PointerPress:
		return press(s, d, cfg, ev)
	case PointerMove:
		return move(s, ev)
	case PointerRelease:
		return release(s, d, cfg, ev)
	case KeyPress:
		return key(s, ev)
	case Scroll:
		return scroll(s, cfg, ev)
	case FocusLost:
		return focusLost(s)
	case Command:
		return command(s, d, cfg, ev)
	}
	return s, nil
}

func finite(ev Event) bool {
	switch ev := ev.(type) {
	case PointerPress:
		return ev.Pos.IsFinite()
	case PointerMove:
		return ev.Pos.IsFinite() && ev.Delta.IsFinite()
	case PointerRelease:
		return ev.Pos.IsFinite()
	case Scroll:
		return ev.Pos.IsFinite() && geometry.Finite(ev.Delta)
	case Command:
		return ev.Pos.IsFinite()
	}
	return true
}

func (s *Session) track(screen geometry.Point) {
	s.PointerScreen = screen
	s.Pointer = s.Transform.ScreenToWorld(screen)
}

func press(s Session, d diagram.View, cfg Settings, ev PointerPress) (Session, []Mutation) {
	s.track(ev.Pos)
	if ev.Button != ButtonPrimary {
		s.Panning = true
		return s, nil
	}
	s.PrimaryDown = true

	// Whatever was in progress, including an unconfirmed rename, is dropped:
	// the press alone decides the next mode.
	t := s.Transform
	probe := t.ScreenDistanceToWorld(cfg.StartProbeFactor * cfg.ConnectionPointRadius)
	if cp, ok := hittest.NearestConnectionPoint(d, s.Pointer, probe); ok {
		s.Mode = CreatingArrow{Source: cp}
		return s, nil
	}
	if n, ok := hittest.NodeAt(d, s.Pointer); ok {
		s.Mode = DraggingNode{Node: n.ID}
		return s, nil
	}
	if a, ok := hittest.ArrowAt(d, s.Pointer, t.ScreenDistanceToWorld(cfg.ArrowTolerance)); ok {
		s.Mode = ArrowSelected{Arrow: a.ID}
		return s, nil
	}
	s.Mode = Idle{}
	return s, nil
}

func move(s Session, ev PointerMove) (Session, []Mutation) {
	var muts []Mutation
	// Both the drag and the pan use the transform in effect before this
	// sample.
	world := s.Transform.ScreenVecToWorld(ev.Delta)
	if !world.IsFinite() {
		return s, nil
	}
	if m, ok := s.Mode.(DraggingNode); ok && s.PrimaryDown && !world.IsZero() {
		muts = append(muts, MoveNode{Node: m.Node, Delta: world})
	}
	if s.Panning {
		if t := s.Transform.Panned(ev.Delta); t.Valid() {
			s.Transform = t
		}
	}
	s.track(ev.Pos)
	return s, muts
}

func release(s Session, d diagram.View, cfg Settings, ev PointerRelease) (Session, []Mutation) {
	s.track(ev.Pos)
	if ev.Button != ButtonPrimary {
		s.Panning = false
		return s, nil
	}
	s.PrimaryDown = false

	switch m := s.Mode.(type) {
	case DraggingNode:
		s.Mode = NodeSelected{Node: m.Node}
	case CreatingArrow:
		s.Mode = Idle{}
		probe := s.Transform.ScreenDistanceToWorld(cfg.EndProbeFactor * cfg.ConnectionPointRadius)
		target, ok := hittest.NearestConnectionPoint(d, s.Pointer, probe)
		if !ok || target.Node == m.Source.Node {
			return s, nil
		}
		return s, []Mutation{AddArrow{
			Source: m.Source,
			Target: target,
			Type:   diagram.InferArrowType(m.Source.Side, target.Side),
		}}
	}
	return s, nil
}

func key(s Session, ev KeyPress) (Session, []Mutation) {
	switch m := s.Mode.(type) {
	case RenamingNode:
		switch ev.Key {
		case KeyEnter:
			s.Mode = afterRename(m)
			return s, []Mutation{RenameNode{Node: m.Node, Name: m.Text}}
		case KeyEscape:
			s.Mode = afterRename(m)
		default:
			m.Text = editText(m.Text, ev)
			s.Mode = m
		}
	case RenamingArrow:
		switch ev.Key {
		case KeyEnter:
			s.Mode = afterRename(m)
			return s, []Mutation{RelabelArrow{Arrow: m.Arrow, Label: m.Text}}
		case KeyEscape:
			s.Mode = afterRename(m)
		default:
			m.Text = editText(m.Text, ev)
			s.Mode = m
		}
	case CreatingArrow:
		if ev.Key == KeyEscape {
			s.Mode = Idle{}
		}
	case DraggingNode:
		if ev.Key == KeyEscape {
			s.Mode = NodeSelected{Node: m.Node}
		}
	case NodeSelected:
		switch ev.Key {
		case KeyDelete, KeyBackspace:
			s.Mode = Idle{}
			return s, []Mutation{RemoveNode{Node: m.Node}}
		case KeyEscape:
			s.Mode = Idle{}
		}
	case ArrowSelected:
		switch ev.Key {
		case KeyDelete, KeyBackspace:
			s.Mode = Idle{}
			return s, []Mutation{RemoveArrow{Arrow: m.Arrow}}
		case KeyEscape:
			s.Mode = Idle{}
		}
	}
	return s, nil
}

func scroll(s Session, cfg Settings, ev Scroll) (Session, []Mutation) {
	s.track(ev.Pos)
	if ev.Delta == 0 || cfg.ZoomStep <= 0 {
		return s, nil
	}
	zoom := s.Transform.Zoom * math.Pow(cfg.ZoomStep, ev.Delta)
	if t := s.Transform.ZoomAround(ev.Pos, zoom, cfg.Zoom); t.Valid() {
		s.Transform = t
	}
	s.track(ev.Pos)
	return s, nil
}

func focusLost(s Session) (Session, []Mutation) {
	s.PrimaryDown = false
	s.Panning = false
	switch m := s.Mode.(type) {
	case RenamingNode, RenamingArrow:
		s.Mode = afterRename(m)
	case DraggingNode:
		s.Mode = NodeSelected{Node: m.Node}
	case CreatingArrow:
		s.Mode = Idle{}
	}
	return s, nil
}

func command(s Session, d diagram.View, cfg Settings, ev Command) (Session, []Mutation) {
	if IsExclusive(s.Mode) {
		return s, nil
	}
	switch ev.Kind {
	case CmdAddNode:
		pos := s.Transform.ScreenToWorld(ev.Pos)
		if !pos.IsFinite() {
			return s, nil
		}
		name := fmt.Sprintf(cfg.NodeName, len(d.Nodes())+1)
		return s, []Mutation{AddNode{Name: name, Pos: pos}}
	case CmdRename:
		switch m := s.Mode.(type) {
		case NodeSelected:
			n, _ := d.GetNode(m.Node)
			s.Mode = RenamingNode{Node: m.Node, Text: n.Name}
		case ArrowSelected:
			a, _ := d.GetArrow(m.Arrow)
			s.Mode = RenamingArrow{Arrow: m.Arrow, Text: a.Label}
		}
	case CmdDelete:
		return key(s, KeyPress{Key: KeyDelete})
	case CmdCycleAlgorithm:
		if m, ok := s.Mode.(NodeSelected); ok {
			n, _ := d.GetNode(m.Node)
			return s, []Mutation{SetAlgorithm{Node: m.Node, Algorithm: diagram.NextAlgorithm(n.Algorithm)}}
		}
	}
	return s, nil
}
