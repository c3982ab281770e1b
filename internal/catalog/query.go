// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"fmt"
	"strings"
)

// YearSummary describes one indexed snapshot.
type YearSummary struct {
	Year          int    `json:"year" yaml:"year"`
	Date          string `json:"date" yaml:"date"`
	SnapshotPath  string `json:"snapshot_path" yaml:"snapshot_path"`
	Sections      int    `json:"sections" yaml:"sections"`
	Nodes         int    `json:"nodes" yaml:"nodes"`
	Edges         int    `json:"edges" yaml:"edges"`
	PossibleCites int    `json:"possible_cites" yaml:"possible_cites"`
	References    int    `json:"references" yaml:"references"`
	IndexedAt     string `json:"indexed_at" yaml:"indexed_at"`
}

// CitedSection is a reference target with its reference count.
type CitedSection struct {
	Title   string `json:"title" yaml:"title"`
	Section string `json:"section" yaml:"section"`
	Count   int    `json:"count" yaml:"count"`
	// Known reports whether the target is among the year's possible citations.
	Known bool `json:"known" yaml:"known"`
}

// SectionHit is a section matching a text search.
type SectionHit struct {
	Year     int    `json:"year" yaml:"year"`
	ItemPath string `json:"itempath" yaml:"itempath"`
	Title    string `json:"title" yaml:"title"`
	Section  string `json:"section" yaml:"section"`
	Head     string `json:"head" yaml:"head"`
}

// Years returns a summary per indexed year in ascending order.
func (s *Store) Years(ctx context.Context) ([]YearSummary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT year, date, COALESCE(snapshot_path, ''), sections, nodes, edges, possible_cites, refs, COALESCE(indexed_at, '')
		 FROM snapshots ORDER BY year`)
	if err != nil {
		return nil, fmt.Errorf("querying snapshots: %w", err)
	}
	defer rows.Close()

	var out []YearSummary
	for rows.Next() {
		var y YearSummary
		if err := rows.Scan(&y.Year, &y.Date, &y.SnapshotPath, &y.Sections, &y.Nodes,
			&y.Edges, &y.PossibleCites, &y.References, &y.IndexedAt); err != nil {
			return nil, fmt.Errorf("scanning snapshot row: %w", err)
		}
		out = append(out, y)
	}
	return out, rows.Err()
}

// TopCited returns the most referenced targets in year. Every reference
// counts, including repeats from the same source. A limit of zero or less
// uses the store default.
func (s *Store) TopCited(ctx context.Context, year, limit int) ([]CitedSection, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT r.target_title, r.target_section, COUNT(*) AS n,
			EXISTS (SELECT 1 FROM possible_cites p
			        WHERE p.year = ? AND p.title = r.target_title AND p.section = r.target_section)
		 FROM refs r
		 WHERE r.year = ?
		 GROUP BY r.target_title, r.target_section
		 ORDER BY n DESC, r.target_title, r.target_section
		 LIMIT ?`,
		year, year, limit)
	if err != nil {
		return nil, fmt.Errorf("querying references: %w", err)
	}
	defer rows.Close()

	var out []CitedSection
	for rows.Next() {
		var c CitedSection
		if err := rows.Scan(&c.Title, &c.Section, &c.Count, &c.Known); err != nil {
			return nil, fmt.Errorf("scanning reference row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Search returns sections whose heading or statute contains text,
// case-insensitively for ASCII. A year of zero searches every year.
func (s *Store) Search(ctx context.Context, year int, text string, limit int) ([]SectionHit, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("search text required")
	}
	if limit <= 0 {
		limit = s.maxResults
	}
	pattern := "%" + escapeLike(text) + "%"

	rows, err := s.db.QueryContext(ctx,
		`SELECT year, itempath, COALESCE(title, ''), COALESCE(section, ''), COALESCE(head, '')
		 FROM sections
		 WHERE (? = 0 OR year = ?)
		   AND (statute LIKE ? ESCAPE '\' OR head LIKE ? ESCAPE '\')
		 ORDER BY year, ord
		 LIMIT ?`,
		year, year, pattern, pattern, limit)
	if err != nil {
		return nil, fmt.Errorf("searching sections: %w", err)
	}
	defer rows.Close()

	var out []SectionHit
	for rows.Next() {
		var h SectionHit
		if err := rows.Scan(&h.Year, &h.ItemPath, &h.Title, &h.Section, &h.Head); err != nil {
			return nil, fmt.Errorf("scanning section row: %w", err)
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
