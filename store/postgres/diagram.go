package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"sadt/diagram"
	"sadt/geometry"
	"sadt/store"
)

func (s *PGStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.Query(ctx, `SELECT name FROM sadt_diagrams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("postgres: list: %w", err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("postgres: list: %w", err)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// Save replaces the stored diagram in one transaction.
func (s *PGStore) Save(ctx context.Context, name string, d *diagram.Diagram) error {
	if err := store.ValidName(name); err != nil {
		return err
	}
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO sadt_diagrams (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET updated_at = NOW()`, name); err != nil {
		return fmt.Errorf("postgres: upsert diagram: %w", err)
	}
	// Arrows go with their nodes through the cascade.
	if _, err := tx.Exec(ctx, `DELETE FROM sadt_nodes WHERE diagram = $1`, name); err != nil {
		return fmt.Errorf("postgres: delete nodes: %w", err)
	}

	for i, n := range d.Nodes() {
		if _, err := tx.Exec(ctx,
			`INSERT INTO sadt_nodes (diagram, id, position, name, x, y, width, height, algorithm)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			name, n.ID.String(), i, n.Name,
			n.Rect.Min.X, n.Rect.Min.Y, n.Rect.Width(), n.Rect.Height(), n.Algorithm,
		); err != nil {
			return fmt.Errorf("postgres: insert node %s: %w", n.ID, err)
		}
	}
	for i, a := range d.Arrows() {
		if _, err := tx.Exec(ctx,
			`INSERT INTO sadt_arrows (diagram, id, position, label, type, source_node, source_side, target_node, target_side)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			name, a.ID.String(), i, a.Label, lower(a.Type),
			a.Source.Node.String(), lower(a.Source.Side),
			a.Target.Node.String(), lower(a.Target.Side),
		); err != nil {
			return fmt.Errorf("postgres: insert arrow %s: %w", a.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func (s *PGStore) Load(ctx context.Context, name string) (*diagram.Diagram, error) {
	if err := store.ValidName(name); err != nil {
		return nil, err
	}
	var exists bool
	if err := s.db.QueryRow(ctx,
		`SELECT TRUE FROM sadt_diagrams WHERE name = $1`, name,
	).Scan(&exists); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", store.ErrNotFound, name)
		}
		return nil, fmt.Errorf("postgres: get diagram: %w", err)
	}

	nodes, err := s.loadNodes(ctx, name)
	if err != nil {
		return nil, err
	}
	arrows, err := s.loadArrows(ctx, name)
	if err != nil {
		return nil, err
	}
	d, err := diagram.FromParts(nodes, arrows)
	if err != nil {
		return nil, fmt.Errorf("postgres: diagram %s: %w", name, err)
	}
	return d, nil
}

func (s *PGStore) loadNodes(ctx context.Context, name string) ([]diagram.Node, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, x, y, width, height, algorithm
		 FROM sadt_nodes WHERE diagram = $1 ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("postgres: query nodes: %w", err)
	}
	defer rows.Close()

	var nodes []diagram.Node
	for rows.Next() {
		var (
			id         string
			n          diagram.Node
			x, y, w, h float64
		)
		if err := rows.Scan(&id, &n.Name, &x, &y, &w, &h, &n.Algorithm); err != nil {
			return nil, fmt.Errorf("postgres: scan node: %w", err)
		}
		if n.ID, err = diagram.ParseNodeID(id); err != nil {
			return nil, fmt.Errorf("postgres: node id: %w", err)
		}
		n.Rect = geometry.RectFromMinSize(geometry.Pt(x, y), w, h)
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows nodes: %w", err)
	}
	return nodes, nil
}

func (s *PGStore) loadArrows(ctx context.Context, name string) ([]diagram.Arrow, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, label, type, source_node, source_side, target_node, target_side
		 FROM sadt_arrows WHERE diagram = $1 ORDER BY position`, name)
	if err != nil {
		return nil, fmt.Errorf("postgres: query arrows: %w", err)
	}
	defer rows.Close()

	var arrows []diagram.Arrow
	for rows.Next() {
		var id, typ, srcNode, srcSide, dstNode, dstSide string
		var a diagram.Arrow
		if err := rows.Scan(&id, &a.Label, &typ, &srcNode, &srcSide, &dstNode, &dstSide); err != nil {
			return nil, fmt.Errorf("postgres: scan arrow: %w", err)
		}
		if err := parseArrow(&a, id, typ, srcNode, srcSide, dstNode, dstSide); err != nil {
			return nil, fmt.Errorf("postgres: arrow %s: %w", id, err)
		}
		arrows = append(arrows, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: rows arrows: %w", err)
	}
	return arrows, nil
}

func parseArrow(a *diagram.Arrow, id, typ, srcNode, srcSide, dstNode, dstSide string) error {
	var err error
	if a.ID, err = diagram.ParseArrowID(id); err != nil {
		return err
	}
	if a.Type, err = diagram.ParseArrowType(typ); err != nil {
		return err
	}
	if a.Source.Node, err = diagram.ParseNodeID(srcNode); err != nil {
		return err
	}
	if a.Source.Side, err = diagram.ParseSide(srcSide); err != nil {
		return err
	}
	if a.Target.Node, err = diagram.ParseNodeID(dstNode); err != nil {
		return err
	}
	a.Target.Side, err = diagram.ParseSide(dstSide)
	return err
}

// Delete removes a diagram with all its nodes and arrows.
func (s *PGStore) Delete(ctx context.Context, name string) error {
	if err := store.ValidName(name); err != nil {
		return err
	}
	ct, err := s.db.Exec(ctx, `DELETE FROM sadt_diagrams WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("postgres: delete diagram: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", store.ErrNotFound, name)
	}
	return nil
}

func lower(s fmt.Stringer) string {
	return strings.ToLower(s.String())
}
