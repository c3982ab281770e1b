// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Snapshot is the complete dataset extracted from one yearly archive.
// Snapshots are built once by the snapshot package and are treated as
// read-only afterwards by every consumer.
type Snapshot struct {
	// Date is January 1 of the year the archive represents.
	Date time.Time `json:"date" yaml:"date"`

	Sections []Section `json:"sections" yaml:"sections"`

	// Nodes and Edges form the structural containment forest rooted at
	// the ROOT node. Both are sorted.
	Nodes []string `json:"nodes" yaml:"nodes"`
	Edges []Edge   `json:"edges" yaml:"edges"`

	PossibleCites []PossibleCitation `json:"possible_cites" yaml:"possible_cites"`
	References    []Reference        `json:"reference_list" yaml:"reference_list"`
}

// Year returns the calendar year of the snapshot.
func (s *Snapshot) Year() int {
	return s.Date.Year()
}
