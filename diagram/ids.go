package diagram

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeID identifies a node for its whole lifetime.
type NodeID uuid.UUID

// ArrowID identifies an arrow for its whole lifetime.
type ArrowID uuid.UUID

// NewNodeID returns a fresh random node id.
func NewNodeID() NodeID { return NodeID(uuid.New()) }

// NewArrowID returns a fresh random arrow id.
func NewArrowID() ArrowID { return ArrowID(uuid.New()) }

// ParseNodeID parses the canonical textual form of a node id.
func ParseNodeID(s string) (NodeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return NodeID{}, fmt.Errorf("node id %q: %w", s, err)
	}
	return NodeID(u), nil
}

// ParseArrowID parses the canonical textual form of an arrow id.
func ParseArrowID(s string) (ArrowID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ArrowID{}, fmt.Errorf("arrow id %q: %w", s, err)
	}
	return ArrowID(u), nil
}

func (id NodeID) String() string  { return uuid.UUID(id).String() }
func (id ArrowID) String() string { return uuid.UUID(id).String() }

// Short returns the first eight hex digits, enough to tell ids apart in
// logs and generated identifiers.
func (id NodeID) Short() string  { return id.String()[:8] }
func (id ArrowID) Short() string { return id.String()[:8] }

func (id NodeID) IsZero() bool  { return id == NodeID{} }
func (id ArrowID) IsZero() bool { return id == ArrowID{} }

func (id NodeID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id ArrowID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *NodeID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *ArrowID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}
