package diagram

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownNode is returned when an arrow refers to a node that is not
	// in the diagram.
	ErrUnknownNode = errors.New("unknown node")
	// ErrSelfLoop is returned when both ends of an arrow are on one node.
	ErrSelfLoop = errors.New("arrow connects a node to itself")
	// ErrDuplicateID is returned when an id is already taken.
	ErrDuplicateID = errors.New("duplicate id")
	// ErrZeroID is returned for elements without an id.
	ErrZeroID = errors.New("missing id")
)

// InsertNode adds a fully specified node, keeping its id. It is meant for
// loaders; interactive code uses AddNode.
func (d *Diagram) InsertNode(n Node) error {
	if n.ID.IsZero() {
		return fmt.Errorf("node %q: %w", n.Name, ErrZeroID)
	}
	if _, ok := d.nodes[n.ID]; ok {
		return fmt.Errorf("node %s: %w", n.ID, ErrDuplicateID)
	}
	if err := checkRect(n); err != nil {
		return err
	}
	d.init()
	d.nodes[n.ID] = &n
	d.nodeOrder = append(d.nodeOrder, n.ID)
	return nil
}

// InsertArrow adds a fully specified arrow, keeping its id. Both endpoint
// nodes must already be present.
func (d *Diagram) InsertArrow(a Arrow) error {
	if a.ID.IsZero() {
		return fmt.Errorf("arrow: %w", ErrZeroID)
	}
	if _, ok := d.arrows[a.ID]; ok {
		return fmt.Errorf("arrow %s: %w", a.ID, ErrDuplicateID)
	}
	if err := d.checkArrow(a); err != nil {
		return err
	}
	d.init()
	d.arrows[a.ID] = &a
	d.arrowOrder = append(d.arrowOrder, a.ID)
	return nil
}

func checkRect(n Node) error {
	if !n.Rect.IsFinite() {
		return fmt.Errorf("node %s: non-finite rectangle", n.ID)
	}
	if n.Rect.Width() < 0 || n.Rect.Height() < 0 {
		return fmt.Errorf("node %s: negative size", n.ID)
	}
	return nil
}

func (d *Diagram) checkArrow(a Arrow) error {
	if a.Source.Node == a.Target.Node {
		return fmt.Errorf("arrow %s: %w", a.ID, ErrSelfLoop)
	}
	if _, ok := d.nodes[a.Source.Node]; !ok {
		return fmt.Errorf("arrow %s source %s: %w", a.ID, a.Source.Node, ErrUnknownNode)
	}
	if _, ok := d.nodes[a.Target.Node]; !ok {
		return fmt.Errorf("arrow %s target %s: %w", a.ID, a.Target.Node, ErrUnknownNode)
	}
	return nil
}

// Validate checks that every node has a finite rectangle and every arrow
// joins two distinct nodes of the diagram. All violations are reported,
// joined.
func (d *Diagram) Validate() error {
	var errs []error
	if len(d.nodeOrder) != len(d.nodes) || len(d.arrowOrder) != len(d.arrows) {
		errs = append(errs, fmt.Errorf("index out of sync: %w", ErrDuplicateID))
	}
	for _, id := range d.nodeOrder {
		if n, ok := d.nodes[id]; ok {
			if err := checkRect(*n); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for _, id := range d.arrowOrder {
		if err := d.checkArrow(*d.arrows[id]); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
