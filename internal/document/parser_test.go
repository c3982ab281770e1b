// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/uscode-graph/internal/citation"
	"github.com/pdiddy/uscode-graph/pkg/types"
)

const titleDoc = `<html><body>
<!-- documentid:17_1_101 -->
<!-- itempath:/170/CHAPTER 1 -->
<!-- expcite:TITLE 17-COPYRIGHTS!@!CHAPTER 1-SUBJECT MATTER AND SCOPE OF COPYRIGHT -->
<!-- field-start:head -->
<h3>CHAPTER 1&mdash;SUBJECT MATTER AND SCOPE OF COPYRIGHT</h3>
<!-- field-end:head -->
<!-- itempath:/170/CHAPTER 1/Sec. 101 -->
<!-- expcite:TITLE 17-COPYRIGHTS!@!CHAPTER 1-SUBJECT MATTER AND SCOPE OF COPYRIGHT!@!Sec. 101 -->
<!-- field-start:head -->
<h3>&sect;101. Definitions</h3>
<!-- field-end:head -->
<!-- field-start:statute -->
<p>Except as otherwise provided in <em>section 102 of this title</em>,</p>
<p>as used in this title the following terms mean:</p>
<!-- field-end:statute -->
<!-- itempath:/170/CHAPTER 1/Sec. 102 -->
<!-- expcite:TITLE 17-COPYRIGHTS!@!CHAPTER 1-SUBJECT MATTER AND SCOPE OF COPYRIGHT!@!Sec. 102 -->
<!-- field-start:statute -->
<p>Copyright protection subsists.</p>
<!-- field-end:statute -->
</body></html>`

func TestParse(t *testing.T) {
	sections, err := Parse(strings.NewReader(titleDoc))
	require.NoError(t, err)
	require.Len(t, sections, 3)

	chapter := sections[0]
	assert.Equal(t, "/170/CHAPTER 1", chapter.ItemPath)
	assert.Equal(t, "17", chapter.Title)
	assert.Empty(t, chapter.Section)
	assert.Contains(t, chapter.Head, "SUBJECT MATTER AND SCOPE OF COPYRIGHT")
	assert.Empty(t, chapter.Statute)

	sec101 := sections[1]
	assert.Equal(t, "/170/CHAPTER 1/Sec. 101", sec101.ItemPath)
	assert.Equal(t, "17", sec101.Title)
	assert.Equal(t, "101", sec101.Section)
	assert.Contains(t, sec101.Head, "§101. Definitions")
	assert.Contains(t, sec101.Statute, "section 102 of this title")
	assert.Contains(t, sec101.Statute, "the following terms mean")
	assert.Less(t,
		strings.Index(sec101.Statute, "Except"),
		strings.Index(sec101.Statute, "as used"),
		"statute text keeps document order")

	// The last section is flushed without a trailing itempath marker.
	assert.Equal(t, "102", sections[2].Section)
	assert.Contains(t, sections[2].Statute, "Copyright protection subsists.")
}

func TestParse_SectionCountMatchesItemPaths(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want int
	}{
		{name: "no markers", doc: `<p>plain text</p>`, want: 0},
		{name: "only unrelated markers", doc: `<!-- documentid:1 --><p>x</p><!-- searchable -->`, want: 0},
		{name: "one path", doc: `<!-- itempath:/1 --><p>x</p>`, want: 1},
		{name: "three paths", doc: `<!-- itempath:/1 --><!-- itempath:/1/a --><div><!-- itempath:/1/a/Sec. 1 --></div>`, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections, err := Parse(strings.NewReader(tt.doc))
			require.NoError(t, err)
			assert.Len(t, sections, tt.want)
		})
	}
}

func TestParse_UnterminatedFieldStaysOpen(t *testing.T) {
	doc := `<!-- itempath:/5/Sec. 1 -->
<!-- field-start:statute --><p>first</p>
<!-- itempath:/5/Sec. 2 --><p>second</p>`

	sections, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Contains(t, sections[0].Statute, "first")
	assert.NotContains(t, sections[0].Statute, "second")
	assert.Contains(t, sections[1].Statute, "second")
}

func TestParse_NestedMarkers(t *testing.T) {
	doc := `<div><!-- itempath:/5/Sec. 1 --><table><tr><td>
<!-- field-start:statute -->alpha<span>beta</span>
</td></tr></table><p>gamma<!-- field-end:statute -->delta</p></div>`

	sections, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	st := sections[0].Statute
	assert.Contains(t, st, "alpha")
	assert.Contains(t, st, "beta")
	assert.Contains(t, st, "gamma")
	assert.NotContains(t, st, "delta")
	assert.Equal(t, 1, strings.Count(st, "beta"), "nested text is appended once")
}

func TestParse_DeclaredCharset(t *testing.T) {
	// 0xA7 is the section sign in ISO-8859-1.
	doc := "<html><head><meta http-equiv=\"Content-Type\" content=\"text/html; charset=iso-8859-1\"></head><body>\n" +
		"<!-- itempath:/170/CHAPTER 1/Sec. 101 -->\n" +
		"<!-- expcite:TITLE 17-COPYRIGHTS!@!CHAPTER 1-SUBJECT MATTER AND SCOPE OF COPYRIGHT!@!Sec. 101 -->\n" +
		"<!-- field-start:statute -->see \xa7 102 of this title<!-- field-end:statute -->\n" +
		"</body></html>"

	sections, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "see § 102 of this title", sections[0].Statute)

	refs := citation.NewExtractor(nil).References(sections)
	assert.Equal(t, []types.Reference{
		{SourceTitle: "17", SourceSection: "101", TargetTitle: "17", TargetSection: "102"},
	}, refs)
}

func TestParse_TableTextStaysInField(t *testing.T) {
	doc := `<div><!-- itempath:/5/Sec. 1 --><table><!-- field-start:statute -->section 5 of this title<tr><td>x</td></tr><!-- field-end:statute --></table>after</div>`

	sections, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "section 5 of this titlex", sections[0].Statute)
}

func TestParse_SkipsScriptAndStyle(t *testing.T) {
	doc := `<!-- itempath:/5/Sec. 1 --><!-- field-start:statute -->` +
		`<style>p { color: red }</style><p>kept</p><script>var s = "<!-- itempath:/x -->";</script>` +
		`<!-- field-end:statute -->`

	sections, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "kept", sections[0].Statute)
}

func TestParseBytes(t *testing.T) {
	sections, err := ParseBytes("usc01.htm", []byte(`<!-- itempath:/1 --><!-- itempath:/1/Sec. 1 -->`))
	require.NoError(t, err)
	assert.Len(t, sections, 2)
}

func TestParseError_Unwrap(t *testing.T) {
	inner := errors.New("unexpected EOF")
	var err error = &types.ParseError{Document: "usc02.htm", Err: inner}

	var pe *types.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "usc02.htm", pe.Document)
	assert.ErrorIs(t, err, inner)
}
