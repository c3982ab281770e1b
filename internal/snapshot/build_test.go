// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/uscode-graph/pkg/types"
)

const title17 = `<html><body>
<!-- itempath:/17 -->
<!-- expcite:TITLE 17-COPYRIGHTS -->
<!-- itempath:/17/CHAPTER 1/Sec. 101 -->
<!-- expcite:TITLE 17-COPYRIGHTS!@!CHAPTER 1-SUBJECT MATTER!@!Sec. 101 -->
<!-- field-start:statute --><p>Except as provided in section 102 of this title.</p><!-- field-end:statute -->
<!-- itempath:/17/CHAPTER 1/Sec. 102 -->
<!-- expcite:TITLE 17-COPYRIGHTS!@!CHAPTER 1-SUBJECT MATTER!@!Sec. 102 -->
<!-- field-start:statute --><p>See sections 2311, 2319 of title 18.</p><!-- field-end:statute -->
</body></html>`

const title18 = `<html><body>
<!-- itempath:/18/PART I/CHAPTER 113/Sec. 2319 -->
<!-- expcite:TITLE 18-CRIMES!@!PART I-CRIMES!@!Sec. 2319 -->
<!-- field-start:statute --><p>Violation of § 506 of title 17.</p><!-- field-end:statute -->
</body></html>`

func writeZip(t *testing.T, path string, docs map[string]string) {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"usc17.htm", "usc18.htm"} {
		body, ok := docs[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

type fakeIndexer struct {
	years []int
	err   error
}

func (f *fakeIndexer) Index(_ context.Context, snap *types.Snapshot, path string) error {
	f.years = append(f.years, snap.Year())
	return f.err
}

func TestYearFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    int
		wantErr bool
	}{
		{path: "data/input/1994.zip", want: 1994},
		{path: "/archive/2011usc.zip", want: 2011},
		{path: "/2020/usc-release-1999-2.zip", want: 1999},
		{path: "release.zip", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := YearFromPath(tt.path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"1996.zip", "1994.zip", "README.txt", "nodate.zip"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	archives, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, []Archive{
		{Year: 1994, Path: filepath.Join(dir, "1994.zip")},
		{Year: 1996, Path: filepath.Join(dir, "1996.zip")},
	}, archives)
}

func TestBuildYear(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "snapshots")
	archive := filepath.Join(in, "1994.zip")
	writeZip(t, archive, map[string]string{"usc17.htm": title17, "usc18.htm": title18})

	ix := &fakeIndexer{}
	b := NewBuilder(types.ParseConfig{OutputDir: out, Workers: 2}, nil).WithIndexer(ix)

	res, err := b.BuildYear(context.Background(), Archive{Year: 1994, Path: archive})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Documents)
	assert.Equal(t, 4, res.Sections)
	assert.Equal(t, []int{1994}, ix.years)

	snap, err := b.Store().Load(1994)
	require.NoError(t, err)
	assert.Equal(t, 1994, snap.Year())
	assert.Contains(t, snap.Nodes, "ROOT/17/CHAPTER 1/Sec. 101")
	assert.Contains(t, snap.Edges, types.Edge{Parent: "ROOT", Child: "ROOT/18"})
	assert.Equal(t, []types.PossibleCitation{
		{Title: "17", Section: "101"},
		{Title: "17", Section: "102"},
		{Title: "18", Section: "2319"},
	}, snap.PossibleCites)
	assert.Equal(t, []types.Reference{
		{SourceTitle: "17", SourceSection: "101", TargetTitle: "17", TargetSection: "102"},
		{SourceTitle: "17", SourceSection: "102", TargetTitle: "18", TargetSection: "2311"},
		{SourceTitle: "17", SourceSection: "102", TargetTitle: "18", TargetSection: "2319"},
		{SourceTitle: "18", SourceSection: "2319", TargetTitle: "17", TargetSection: "506"},
	}, snap.References)
}

func TestBuildAll_YearIsolation(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()

	writeZip(t, filepath.Join(in, "1994.zip"), map[string]string{"usc17.htm": title17})
	require.NoError(t, os.WriteFile(filepath.Join(in, "1995.zip"), []byte("not a zip archive"), 0o644))
	writeZip(t, filepath.Join(in, "1996.zip"), map[string]string{"usc18.htm": title18})

	archives, err := Discover(in)
	require.NoError(t, err)

	var log bytes.Buffer
	b := NewBuilder(types.ParseConfig{OutputDir: out, Workers: 1}, nil)
	summary, err := b.BuildAll(context.Background(), archives, &log)
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Built)
	assert.Equal(t, 1, summary.Failed)
	assert.True(t, summary.HasFailures())
	assert.Equal(t, 3, summary.Total())

	var ie *types.IngestError
	assert.True(t, errors.As(summary.Errors[1995], &ie))

	years, err := b.Store().Years()
	require.NoError(t, err)
	assert.Equal(t, []int{1994, 1996}, years)
	assert.NoFileExists(t, filepath.Join(out, "1995.yaml"))

	assert.Contains(t, log.String(), "failed  1995")
	assert.Contains(t, log.String(), "built   1996")
	assert.Contains(t, log.String(), "built: 2, failed: 1")
}

func TestBuildAll_IndexFailureKeepsSnapshot(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeZip(t, filepath.Join(in, "1994.zip"), map[string]string{"usc17.htm": title17})

	archives, err := Discover(in)
	require.NoError(t, err)

	b := NewBuilder(types.ParseConfig{OutputDir: out}, nil).WithIndexer(&fakeIndexer{err: errors.New("database is locked")})
	summary, err := b.BuildAll(context.Background(), archives, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, 1, summary.Failed)
	assert.FileExists(t, filepath.Join(out, "1994.yaml"))
}

func TestBuildAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	b := NewBuilder(types.ParseConfig{OutputDir: t.TempDir()}, nil)
	_, err := b.BuildAll(ctx, []Archive{{Year: 1994, Path: "unused.zip"}}, &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
}
