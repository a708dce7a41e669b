// Package store persists diagrams by name.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"sadt/diagram"
)

var (
	ErrNotFound    = errors.New("store: diagram not found")
	ErrInvalidName = errors.New("store: invalid diagram name")
)

// Store defines the contract for persisting and retrieving diagrams.
type Store interface {
	// List returns the names of all stored diagrams, sorted.
	List(ctx context.Context) ([]string, error)
	// Load returns ErrNotFound when no diagram has that name.
	Load(ctx context.Context, name string) (*diagram.Diagram, error)
	// Save creates or replaces a diagram.
	Save(ctx context.Context, name string, d *diagram.Diagram) error
	// Delete returns ErrNotFound when no diagram has that name.
	Delete(ctx context.Context, name string) error
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,127}$`)

// ValidName checks that name is usable as a file name and URL segment.
func ValidName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
