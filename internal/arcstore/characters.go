// Copyright AuthorForge, 2026. All rights reserved.

package arcstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/authorforge/arc-engine/pkg/types"
)

// PutCharacterArc inserts or replaces a character arc document.
func (s *Store) PutCharacterArc(ctx context.Context, arc *types.CharacterArc) error {
	if err := s.ready(); err != nil {
		return err
	}
	if arc.ID == "" {
		return fmt.Errorf("character arc has no id")
	}

	doc, err := json.Marshal(arc)
	if err != nil {
		return fmt.Errorf("encoding character arc: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO character_arcs (id, project_id, doc) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET project_id=excluded.project_id, doc=excluded.doc`,
		arc.ID, arc.ProjectID, string(doc),
	)
	if err != nil {
		return fmt.Errorf("upserting character arc: %w", err)
	}
	return nil
}

// CharacterArcs returns every character arc for a project in insertion
// order. Insertion order is what beat integration folds by, so it is
// preserved across restarts.
func (s *Store) CharacterArcs(ctx context.Context, projectID string) ([]types.CharacterArc, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT doc FROM character_arcs WHERE project_id = ? ORDER BY rowid`, projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying character arcs: %w", err)
	}
	defer rows.Close()

	var arcs []types.CharacterArc
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning character arc: %w", err)
		}
		var arc types.CharacterArc
		if err := json.Unmarshal([]byte(doc), &arc); err != nil {
			return nil, fmt.Errorf("decoding character arc: %w", err)
		}
		arcs = append(arcs, arc)
	}
	return arcs, rows.Err()
}

// CharacterArc returns one character arc by id, or sql.ErrNoRows
// wrapped as a not-found error.
func (s *Store) CharacterArc(ctx context.Context, id string) (*types.CharacterArc, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM character_arcs WHERE id = ?`, id,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("character arc %s not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying character arc: %w", err)
	}

	var arc types.CharacterArc
	if err := json.Unmarshal([]byte(doc), &arc); err != nil {
		return nil, fmt.Errorf("decoding character arc: %w", err)
	}
	return &arc, nil
}
