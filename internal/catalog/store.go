// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog indexes persisted snapshots in a SQLite database so that
// sections and citation counts can be queried across years without
// loading whole snapshots.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/uscode-graph/pkg/types"
)

const (
	dbFile            = "uscode.db"
	defaultMaxResults = 20
)

// Store manages the catalog database.
type Store struct {
	db         *sql.DB
	indexDir   string
	maxResults int
}

// Open opens or creates the catalog at cfg.IndexDir/uscode.db and creates
// the schema if it does not exist.
func Open(cfg types.CatalogConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, indexDir: cfg.IndexDir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			year INTEGER PRIMARY KEY,
			date TEXT NOT NULL,
			snapshot_path TEXT,
			sections INTEGER,
			nodes INTEGER,
			edges INTEGER,
			possible_cites INTEGER,
			refs INTEGER,
			indexed_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS sections (
			year INTEGER NOT NULL,
			ord INTEGER NOT NULL,
			itempath TEXT NOT NULL,
			expcite TEXT,
			title TEXT,
			section TEXT,
			head TEXT,
			statute TEXT,
			PRIMARY KEY (year, ord)
		)`,
		`CREATE TABLE IF NOT EXISTS possible_cites (
			year INTEGER NOT NULL,
			title TEXT NOT NULL,
			section TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_possible_cites ON possible_cites(year, title, section)`,
		`CREATE TABLE IF NOT EXISTS refs (
			year INTEGER NOT NULL,
			source_title TEXT,
			source_section TEXT,
			target_title TEXT NOT NULL,
			target_section TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_refs_target ON refs(year, target_title, target_section)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Index records snap, persisted at path, replacing any rows previously
// indexed for the same year. The replacement happens in one transaction.
func (s *Store) Index(ctx context.Context, snap *types.Snapshot, path string) error {
	year := snap.Year()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"snapshots", "sections", "possible_cites", "refs"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE year = ?`, year); err != nil {
			return fmt.Errorf("clearing %s for %d: %w", table, year, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO snapshots (year, date, snapshot_path, sections, nodes, edges, possible_cites, refs, indexed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		year, snap.Date.Format(time.DateOnly), path,
		len(snap.Sections), len(snap.Nodes), len(snap.Edges), len(snap.PossibleCites), len(snap.References),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot %d: %w", year, err)
	}

	if err := insertSections(ctx, tx, year, snap.Sections); err != nil {
		return err
	}
	if err := insertPossibleCites(ctx, tx, year, snap.PossibleCites); err != nil {
		return err
	}
	if err := insertRefs(ctx, tx, year, snap.References); err != nil {
		return err
	}

	return tx.Commit()
}

func insertSections(ctx context.Context, tx *sql.Tx, year int, sections []types.Section) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sections (year, ord, itempath, expcite, title, section, head, statute)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing section insert: %w", err)
	}
	defer stmt.Close()

	for i, sec := range sections {
		if _, err := stmt.ExecContext(ctx, year, i, sec.ItemPath, sec.ExpCite,
			sec.Title, sec.Section, sec.Head, sec.Statute); err != nil {
			return fmt.Errorf("inserting section %s: %w", sec.ItemPath, err)
		}
	}
	return nil
}

func insertPossibleCites(ctx context.Context, tx *sql.Tx, year int, cites []types.PossibleCitation) error {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO possible_cites (year, title, section) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing possible citation insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range cites {
		if _, err := stmt.ExecContext(ctx, year, c.Title, c.Section); err != nil {
			return fmt.Errorf("inserting possible citation %s/%s: %w", c.Title, c.Section, err)
		}
	}
	return nil
}

func insertRefs(ctx context.Context, tx *sql.Tx, year int, refs []types.Reference) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO refs (year, source_title, source_section, target_title, target_section)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing reference insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range refs {
		if _, err := stmt.ExecContext(ctx, year, r.SourceTitle, r.SourceSection, r.TargetTitle, r.TargetSection); err != nil {
			return fmt.Errorf("inserting reference: %w", err)
		}
	}
	return nil
}
