// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package snapshot assembles and persists the per-year dataset: sections,
// structural graph, possible citations, and references. Each year is an
// independent unit of work; nothing is carried from one year to the next.
package snapshot

import (
	"slices"
	"time"

	"github.com/pdiddy/uscode-graph/pkg/types"
)

// New assembles a snapshot for date. The inputs are copied, so later
// changes by the caller do not reach the snapshot.
func New(date time.Time, sections []types.Section, nodes []string, edges []types.Edge,
	possible []types.PossibleCitation, refs []types.Reference) *types.Snapshot {
	return &types.Snapshot{
		Date:          date,
		Sections:      slices.Clone(sections),
		Nodes:         slices.Clone(nodes),
		Edges:         slices.Clone(edges),
		PossibleCites: slices.Clone(possible),
		References:    slices.Clone(refs),
	}
}

// YearDate returns January 1 of year in UTC.
func YearDate(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}
