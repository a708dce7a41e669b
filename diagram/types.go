// Package diagram contains the SADT diagram model: activities (nodes), the
// typed arrows between their sides, and the operations that keep the two
// consistent.
package diagram

import (
	"fmt"
	"strings"

	"sadt/geometry"
)

// Side names one of the four connection points of a node.
type Side int

const (
	Left Side = iota
	Right
	Top
	Bottom
)

// Sides is the fixed order in which connection points of a node are
// visited. Hit-testing relies on it for deterministic tie-breaks.
var Sides = [4]Side{Left, Right, Top, Bottom}

// String returns the string representation of a Side.
func (s Side) String() string {
	switch s {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Top:
		return "Top"
	case Bottom:
		return "Bottom"
	default:
		return "Unknown"
	}
}

// ParseSide accepts a side name in any case.
func ParseSide(s string) (Side, error) {
	for _, side := range Sides {
		if strings.EqualFold(s, side.String()) {
			return side, nil
		}
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

func (s Side) MarshalText() ([]byte, error) {
	if s < Left || s > Bottom {
		return nil, fmt.Errorf("invalid side %d", int(s))
	}
	return []byte(strings.ToLower(s.String())), nil
}

func (s *Side) UnmarshalText(b []byte) error {
	v, err := ParseSide(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ArrowType is the SADT role an arrow plays for the activity it enters or
// leaves.
type ArrowType int

const (
	Input ArrowType = iota
	Output
	Control
	Mechanism
)

// ArrowTypes lists every arrow type in declaration order.
var ArrowTypes = [4]ArrowType{Input, Output, Control, Mechanism}

func (t ArrowType) String() string {
	switch t {
	case Input:
		return "Input"
	case Output:
		return "Output"
	case Control:
		return "Control"
	case Mechanism:
		return "Mechanism"
	default:
		return "Unknown"
	}
}

// ParseArrowType accepts an arrow type name in any case.
func ParseArrowType(s string) (ArrowType, error) {
	for _, t := range ArrowTypes {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown arrow type %q", s)
}

func (t ArrowType) MarshalText() ([]byte, error) {
	if t < Input || t > Mechanism {
		return nil, fmt.Errorf("invalid arrow type %d", int(t))
	}
	return []byte(strings.ToLower(t.String())), nil
}

func (t *ArrowType) UnmarshalText(b []byte) error {
	v, err := ParseArrowType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// InferArrowType picks the arrow type for a new connection from the sides it
// joins. Earlier rows win:
//
//	Right -> Left   Output
//	Left  -> Right  Input
//	any   -> Top    Control
//	any   -> Bottom Mechanism
//	Right -> any    Output
//	any   -> Left   Input
//	otherwise       Input
func InferArrowType(source, target Side) ArrowType {
	switch {
	case source == Right && target == Left:
		return Output
	case source == Left && target == Right:
		return Input
	case target == Top:
		return Control
	case target == Bottom:
		return Mechanism
	case source == Right:
		return Output
	case target == Left:
		return Input
	default:
		return Input
	}
}

// ConnectionPoint refers to the midpoint of one side of a node. It holds no
// position; the position is derived from the node's current rectangle.
type ConnectionPoint struct {
	Node NodeID `json:"node"`
	Side Side   `json:"side"`
}

func (cp ConnectionPoint) String() string {
	return fmt.Sprintf("%s:%s", cp.Node.Short(), cp.Side)
}

// Node represents an activity box.
type Node struct {
	ID        NodeID        `json:"id"`
	Name      string        `json:"name"`
	Rect      geometry.Rect `json:"rect"`
	Algorithm string        `json:"algorithm"`
}

// Arrow is a directed, typed connection between sides of two distinct nodes.
// An empty Label means the arrow has no label.
type Arrow struct {
	ID     ArrowID         `json:"id"`
	Label  string          `json:"label,omitempty"`
	Type   ArrowType       `json:"type"`
	Source ConnectionPoint `json:"source"`
	Target ConnectionPoint `json:"target"`
}

// HasLabel reports whether the arrow carries a label.
func (a Arrow) HasLabel() bool { return a.Label != "" }

// References reports whether either end of the arrow is attached to id.
func (a Arrow) References(id NodeID) bool {
	return a.Source.Node == id || a.Target.Node == id
}

// Algorithms are the behaviour tags a node can carry. They only feed code
// generation.
var Algorithms = []string{"add", "subtract", "multiply", "divide"}

// DefaultAlgorithm is given to new nodes.
const DefaultAlgorithm = "add"

// NextAlgorithm returns the algorithm after current in Algorithms, wrapping
// around. Unknown names restart the cycle.
func NextAlgorithm(current string) string {
	for i, a := range Algorithms {
		if a == current {
			return Algorithms[(i+1)%len(Algorithms)]
		}
	}
	return Algorithms[0]
}

// IsKnownAlgorithm reports whether name is one of Algorithms.
func IsKnownAlgorithm(name string) bool {
	for _, a := range Algorithms {
		if a == name {
			return true
		}
	}
	return false
}
