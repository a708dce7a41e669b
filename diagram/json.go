package diagram

import (
	"encoding/json"
	"fmt"
)

// document is the serialized form of a diagram. Slices keep insertion order.
type document struct {
	Nodes  []Node  `json:"nodes"`
	Arrows []Arrow `json:"arrows"`
}

// MarshalJSON writes the diagram as {"nodes": [...], "arrows": [...]}.
func (d *Diagram) MarshalJSON() ([]byte, error) {
	return json.Marshal(document{Nodes: d.Nodes(), Arrows: d.Arrows()})
}

// UnmarshalJSON replaces the diagram's contents. Documents with duplicate
// ids, dangling endpoints or self-loops are rejected and leave d unchanged.
func (d *Diagram) UnmarshalJSON(b []byte) error {
	var doc document
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	fresh, err := FromParts(doc.Nodes, doc.Arrows)
	if err != nil {
		return err
	}
	d.nodes, d.arrows = fresh.nodes, fresh.arrows
	d.nodeOrder, d.arrowOrder = fresh.nodeOrder, fresh.arrowOrder
	return nil
}

// FromParts builds a diagram from already identified nodes and arrows.
func FromParts(nodes []Node, arrows []Arrow, opts ...Option) (*Diagram, error) {
	d := New(opts...)
	for i, n := range nodes {
		if err := d.InsertNode(n); err != nil {
			return nil, fmt.Errorf("nodes[%d]: %w", i, err)
		}
	}
	for i, a := range arrows {
		if err := d.InsertArrow(a); err != nil {
			return nil, fmt.Errorf("arrows[%d]: %w", i, err)
		}
	}
	return d, nil
}

// Parse decodes a JSON document into a new diagram.
func Parse(data []byte, opts ...Option) (*Diagram, error) {
	d := New(opts...)
	if err := json.Unmarshal(data, d); err != nil {
		return nil, err
	}
	return d, nil
}
