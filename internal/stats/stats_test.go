// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package stats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/uscode-graph/internal/snapshot"
	"github.com/pdiddy/uscode-graph/pkg/types"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{text: "The Secretary shall act.", want: []string{"The", "Secretary", "shall", "act", "."}},
		{text: "section 101a-1 of title 17", want: []string{"section", "101a-1", "of", "title", "17"}},
		{text: "(a) In general, the", want: []string{"(", "a", ")", "In", "general", ",", "the"}},
		{text: "the Secretary's duty", want: []string{"the", "Secretary", "'s", "duty"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.text))
		})
	}
}

func TestTokenize_Blank(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize(" \n\t"))
}

func testSnapshot(year int) *types.Snapshot {
	return snapshot.New(snapshot.YearDate(year),
		[]types.Section{
			{ItemPath: "/17/CHAPTER 1", Statute: ""},
			{ItemPath: "/17/CHAPTER 1/Sec. 101", Title: "17", Section: "101", Statute: "a work is a work."},
			{ItemPath: "/17/CHAPTER 1/Sec. 102", Title: "17", Section: "102", Statute: "see section 101 of this title"},
		},
		nil, nil, nil,
		[]types.Reference{{SourceTitle: "17", SourceSection: "102", TargetTitle: "17", TargetSection: "101"}},
	)
}

func TestSections(t *testing.T) {
	got := Sections(testSnapshot(1994))
	require.Len(t, got, 3)

	assert.False(t, got[0].IsSection)
	assert.Zero(t, got[0].Tokens)

	assert.True(t, got[1].IsSection)
	assert.Equal(t, 6, got[1].Tokens)
	assert.Equal(t, 4, got[1].UniqueTokens)
	assert.Equal(t, "101", got[1].Section)
}

func TestYear(t *testing.T) {
	assert.Equal(t, YearStats{Year: 1994, Records: 3, Sections: 2, Tokens: 12, References: 1}, Year(testSnapshot(1994)))
}

func TestSeries(t *testing.T) {
	store := snapshot.NewStore(t.TempDir())
	for _, y := range []int{1996, 1994} {
		_, err := store.Save(testSnapshot(y))
		require.NoError(t, err)
	}

	series, err := Series(store)
	require.NoError(t, err)
	require.Len(t, series, 2)
	assert.Equal(t, 1994, series[0].Year)
	assert.Equal(t, 1996, series[1].Year)
	assert.Equal(t, 12, series[1].Tokens)
}

type brokenSource struct{}

func (brokenSource) Years() ([]int, error) { return []int{2000}, nil }

func (brokenSource) Load(int) (*types.Snapshot, error) {
	return nil, errors.New("truncated")
}

func TestSeries_LoadError(t *testing.T) {
	_, err := Series(brokenSource{})
	assert.ErrorContains(t, err, "loading snapshot 2000")
}
