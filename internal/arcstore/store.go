// Copyright AuthorForge, 2026. All rights reserved.

// Package arcstore persists story arc graphs and character arcs in a
// project-keyed SQLite database. Graphs are stored whole, one JSON
// document per project, with a version counter compared and swapped on
// every save so concurrent read-modify-write cycles cannot silently
// overwrite each other.
package arcstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/authorforge/arc-engine/pkg/types"
)

const dbFile = "arc.db"

// Store manages the arc SQLite database. A Store is ready after Open
// and unusable after Close; operations on an unready store return
// ErrStoreClosed.
type Store struct {
	db *sql.DB
}

// Open opens or creates the arc database at dataDir/arc.db, creating
// the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "arcdata"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection. A closed store rejects all
// further operations.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Store) ready() error {
	if s == nil || s.db == nil {
		return ErrStoreClosed
	}
	return nil
}

func (s *Store) createSchema() error {
	statements := []string{
		// One graph per project: UNIQUE(project_id) replaces the
		// caller-side convention and keeps earlier documents from
		// being orphaned behind the project-keyed lookup.
		`CREATE TABLE IF NOT EXISTS graphs (
			id TEXT PRIMARY KEY,
			project_id TEXT NOT NULL UNIQUE,
			version INTEGER NOT NULL,
			doc TEXT NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS character_arcs (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			project_id TEXT NOT NULL,
			doc TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_character_arcs_project ON character_arcs(project_id)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// GetGraph returns the graph for a project, or ErrGraphNotFound.
func (s *Store) GetGraph(ctx context.Context, projectID string) (*types.StoryArcGraph, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}

	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM graphs WHERE project_id = ?`, projectID,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, ErrGraphNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying graph: %w", err)
	}

	var graph types.StoryArcGraph
	if err := json.Unmarshal([]byte(doc), &graph); err != nil {
		return nil, fmt.Errorf("decoding graph document: %w", err)
	}
	return &graph, nil
}

// SaveGraph writes the whole graph document for its project. The save
// is conditional on the graph's version matching the stored version; a
// mismatch returns ErrVersionConflict and writes nothing. On success
// the graph's Version and UpdatedAt are advanced in place. A graph with
// Version zero is inserted; inserting when a row already exists for the
// project also reports ErrVersionConflict.
func (s *Store) SaveGraph(ctx context.Context, graph *types.StoryArcGraph) error {
	if err := s.ready(); err != nil {
		return err
	}

	now := time.Now().UTC()
	if graph.CreatedAt.IsZero() {
		graph.CreatedAt = now
	}

	next := *graph
	next.Version = graph.Version + 1
	next.UpdatedAt = now

	doc, err := json.Marshal(&next)
	if err != nil {
		return fmt.Errorf("encoding graph document: %w", err)
	}

	if graph.Version == 0 {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO graphs (id, project_id, version, doc, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			next.ID, next.ProjectID, next.Version, string(doc),
			next.CreatedAt.Format(time.RFC3339Nano),
			next.UpdatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			if isProjectUniqueViolation(err) {
				return ErrVersionConflict
			}
			return fmt.Errorf("inserting graph: %w", err)
		}
	} else {
		res, err := s.db.ExecContext(ctx,
			`UPDATE graphs SET id = ?, version = ?, doc = ?, updated_at = ?
			 WHERE project_id = ? AND version = ?`,
			next.ID, next.Version, string(doc),
			next.UpdatedAt.Format(time.RFC3339Nano),
			next.ProjectID, graph.Version,
		)
		if err != nil {
			return fmt.Errorf("updating graph: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("checking update result: %w", err)
		}
		if affected == 0 {
			var exists int
			if err := s.db.QueryRowContext(ctx,
				`SELECT count(*) FROM graphs WHERE project_id = ?`, next.ProjectID,
			).Scan(&exists); err != nil {
				return fmt.Errorf("checking graph existence: %w", err)
			}
			if exists == 0 {
				return ErrGraphNotFound
			}
			return ErrVersionConflict
		}
	}

	graph.Version = next.Version
	graph.UpdatedAt = next.UpdatedAt
	return nil
}

// Clear removes the graph for a project. Clearing a project with no
// graph is not an error.
func (s *Store) Clear(ctx context.Context, projectID string) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM graphs WHERE project_id = ?`, projectID,
	); err != nil {
		return fmt.Errorf("clearing graph: %w", err)
	}
	return nil
}

// ClearAll removes every graph in the store.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.ready(); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM graphs`); err != nil {
		return fmt.Errorf("clearing graphs: %w", err)
	}
	return nil
}

// isProjectUniqueViolation reports whether err is the UNIQUE violation
// on graphs.project_id, the only constraint failure that means a
// concurrent insert won the race. Matched on message text to avoid
// depending on driver error codes across sqlite3 versions; other
// constraint failures (id collisions, NOT NULL) are not conflicts and
// surface as wrapped save errors.
func isProjectUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed: graphs.project_id")
}
