// Package codegen derives per-activity signatures from a diagram and renders
// them as a Go source skeleton or a Markdown document.
package codegen

import (
	"sadt/diagram"
)

// Param is one parameter or result of a generated function. Name is a Go
// identifier derived from Label, the arrow label as drawn (empty when the
// arrow has none). Type is the placeholder type for the arrow's role.
type Param struct {
	Name  string          `json:"name"`
	Type  string          `json:"type"`
	Label string          `json:"label,omitempty"`
	Arrow diagram.ArrowID `json:"arrow"`
}

// Signature groups the arrows of one activity by role. Inputs, Controls and
// Mechanisms come from arrows entering the node; Outputs from Output arrows
// leaving it. Each bucket follows arrow insertion order.
type Signature struct {
	Node       diagram.NodeID `json:"node"`
	Name       string         `json:"name"`
	Func       string         `json:"func"`
	Algorithm  string         `json:"algorithm"`
	Inputs     []Param        `json:"inputs"`
	Controls   []Param        `json:"controls"`
	Mechanisms []Param        `json:"mechanisms"`
	Outputs    []Param        `json:"outputs"`
}

// Params returns Inputs, Controls and Mechanisms in that order.
func (s Signature) Params() []Param {
	out := make([]Param, 0, len(s.Inputs)+len(s.Controls)+len(s.Mechanisms))
	out = append(out, s.Inputs...)
	out = append(out, s.Controls...)
	return append(out, s.Mechanisms...)
}

// PlaceholderType names the generated type standing in for an arrow type.
func PlaceholderType(t diagram.ArrowType) string {
	switch t {
	case diagram.Output:
		return "OutputData"
	case diagram.Control:
		return "ControlParam"
	case diagram.Mechanism:
		return "MechanismResource"
	default:
		return "InputData"
	}
}

// Classify builds the signature of one node. It reports false when the node
// is not in the diagram.
func Classify(d diagram.View, id diagram.NodeID) (Signature, bool) {
	n, ok := d.GetNode(id)
	if !ok {
		return Signature{}, false
	}
	sig := Signature{
		Node:      n.ID,
		Name:      n.Name,
		Func:      Identifier(n.Name),
		Algorithm: n.Algorithm,
	}
	names := uniquer{}
	param := func(a diagram.Arrow) Param {
		return Param{
			Name:  names.take(ParamName(a.Label)),
			Type:  PlaceholderType(a.Type),
			Label: a.Label,
			Arrow: a.ID,
		}
	}
	for _, a := range d.Arrows() {
		switch {
		case a.Target.Node == id:
			switch a.Type {
			case diagram.Input:
				sig.Inputs = append(sig.Inputs, param(a))
			case diagram.Control:
				sig.Controls = append(sig.Controls, param(a))
			case diagram.Mechanism:
				sig.Mechanisms = append(sig.Mechanisms, param(a))
			}
		case a.Source.Node == id && a.Type == diagram.Output:
			sig.Outputs = append(sig.Outputs, param(a))
		}
	}
	return sig, true
}

// reserved are names declared by the generated module itself.
var reserved = []string{"InputData", "OutputData", "ControlParam", "MechanismResource", "Algorithms"}

// ClassifyAll returns the signature of every node in insertion order, with
// function names made unique across the set.
func ClassifyAll(d diagram.View) []Signature {
	funcs := uniquer{}
	for _, name := range reserved {
		funcs.take(name)
	}
	nodes := d.Nodes()
	out := make([]Signature, 0, len(nodes))
	for _, n := range nodes {
		sig, _ := Classify(d, n.ID)
		sig.Func = funcs.take(sig.Func)
		out = append(out, sig)
	}
	return out
}
