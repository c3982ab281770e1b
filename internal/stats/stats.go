// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package stats computes token counts over persisted snapshots: per
// section, per year, and as a time series across years. It only reads
// snapshots.
package stats

import (
	"fmt"

	"github.com/jdkato/prose/tokenize"

	"github.com/pdiddy/uscode-graph/pkg/types"
)

// treebank holds no state between calls and is safe to share.
var treebank = tokenize.NewTreebankWordTokenizer()

// Tokenize splits text into Penn Treebank word and punctuation tokens.
// Hyphenated section numbers such as "101a-1" stay whole; clitics and
// sentence-final periods are split off.
func Tokenize(text string) []string {
	return treebank.Tokenize(text)
}

// SectionStats holds token counts for one section record.
type SectionStats struct {
	ItemPath     string `json:"itempath" yaml:"itempath"`
	Title        string `json:"title" yaml:"title"`
	Section      string `json:"section" yaml:"section"`
	IsSection    bool   `json:"is_section" yaml:"is_section"`
	Tokens       int    `json:"tokens" yaml:"tokens"`
	UniqueTokens int    `json:"unique_tokens" yaml:"unique_tokens"`
}

// YearStats aggregates one snapshot.
type YearStats struct {
	Year int `json:"year" yaml:"year"`
	// Records counts every section record, Sections only section-level ones.
	Records    int `json:"records" yaml:"records"`
	Sections   int `json:"sections" yaml:"sections"`
	Tokens     int `json:"tokens" yaml:"tokens"`
	References int `json:"references" yaml:"references"`
}

// Sections returns token counts for every statute in snap.
func Sections(snap *types.Snapshot) []SectionStats {
	out := make([]SectionStats, 0, len(snap.Sections))
	for _, s := range snap.Sections {
		tokens := Tokenize(s.Statute)
		unique := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			unique[tok] = struct{}{}
		}
		out = append(out, SectionStats{
			ItemPath:     s.ItemPath,
			Title:        s.Title,
			Section:      s.Section,
			IsSection:    s.IsSection(),
			Tokens:       len(tokens),
			UniqueTokens: len(unique),
		})
	}
	return out
}

// Year aggregates the section counts of snap.
func Year(snap *types.Snapshot) YearStats {
	ys := YearStats{Year: snap.Year(), References: len(snap.References)}
	for _, s := range Sections(snap) {
		ys.Records++
		if s.IsSection {
			ys.Sections++
		}
		ys.Tokens += s.Tokens
	}
	return ys
}

// Source lists and loads snapshots. *snapshot.Store satisfies it.
type Source interface {
	Years() ([]int, error)
	Load(year int) (*types.Snapshot, error)
}

// Series computes YearStats for every snapshot in src, in year order.
// Snapshots are loaded one at a time.
func Series(src Source) ([]YearStats, error) {
	years, err := src.Years()
	if err != nil {
		return nil, err
	}

	out := make([]YearStats, 0, len(years))
	for _, y := range years {
		snap, err := src.Load(y)
		if err != nil {
			return nil, fmt.Errorf("loading snapshot %d: %w", y, err)
		}
		out = append(out, Year(snap))
	}
	return out, nil
}
