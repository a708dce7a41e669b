package postgres

import (
	"context"
	"fmt"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sadt_diagrams (
    name       TEXT PRIMARY KEY,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS sadt_nodes (
    diagram   TEXT NOT NULL REFERENCES sadt_diagrams(name) ON DELETE CASCADE,
    id        TEXT NOT NULL,
    position  INTEGER NOT NULL,
    name      TEXT NOT NULL,
    x         DOUBLE PRECISION NOT NULL,
    y         DOUBLE PRECISION NOT NULL,
    width     DOUBLE PRECISION NOT NULL,
    height    DOUBLE PRECISION NOT NULL,
    algorithm TEXT NOT NULL DEFAULT 'add',
    PRIMARY KEY (diagram, id)
);

CREATE TABLE IF NOT EXISTS sadt_arrows (
    diagram     TEXT NOT NULL REFERENCES sadt_diagrams(name) ON DELETE CASCADE,
    id          TEXT NOT NULL,
    position    INTEGER NOT NULL,
    label       TEXT NOT NULL DEFAULT '',
    type        TEXT NOT NULL,
    source_node TEXT NOT NULL,
    source_side TEXT NOT NULL,
    target_node TEXT NOT NULL,
    target_side TEXT NOT NULL,
    PRIMARY KEY (diagram, id),
    FOREIGN KEY (diagram, source_node) REFERENCES sadt_nodes(diagram, id) ON DELETE CASCADE,
    FOREIGN KEY (diagram, target_node) REFERENCES sadt_nodes(diagram, id) ON DELETE CASCADE,
    CHECK (source_node <> target_node)
);
`

// CreateSchema creates the tables if they don't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("postgres: create schema: %w", err)
	}
	return nil
}

// DropSchema drops all tables of the store.
func (s *PGStore) DropSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS sadt_arrows, sadt_nodes, sadt_diagrams CASCADE;`)
	return err
}
