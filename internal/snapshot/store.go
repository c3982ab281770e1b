// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/uscode-graph/pkg/types"
)

const snapshotExt = ".yaml"

// Store reads and writes one snapshot file per year in a directory.
type Store struct {
	dir string
}

// NewStore returns a Store rooted at dir. The directory is created on
// first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the snapshot file path for year.
func (s *Store) Path(year int) string {
	return filepath.Join(s.dir, strconv.Itoa(year)+snapshotExt)
}

// Save writes snap to <dir>/<year>.yaml, replacing any existing file. The
// snapshot is written to a temporary file in the same directory and then
// renamed, so a failed save never leaves a partial snapshot behind.
// Failures are reported as *types.PersistError.
func (s *Store) Save(snap *types.Snapshot) (string, error) {
	year := snap.Year()
	dest := s.Path(year)
	fail := func(err error) (string, error) {
		return "", &types.PersistError{Year: year, Path: dest, Err: err}
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fail(fmt.Errorf("creating snapshot directory: %w", err))
	}

	tmp, err := os.CreateTemp(s.dir, "."+strconv.Itoa(year)+"-*.tmp")
	if err != nil {
		return fail(fmt.Errorf("creating temp file: %w", err))
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	bw := bufio.NewWriterSize(tmp, 1<<20)
	enc := yaml.NewEncoder(bw)
	if err := enc.Encode(snap); err != nil {
		return fail(fmt.Errorf("encoding snapshot: %w", err))
	}
	if err := enc.Close(); err != nil {
		return fail(fmt.Errorf("encoding snapshot: %w", err))
	}
	if err := bw.Flush(); err != nil {
		return fail(fmt.Errorf("writing snapshot: %w", err))
	}
	if err := tmp.Sync(); err != nil {
		return fail(fmt.Errorf("syncing snapshot: %w", err))
	}
	if err := tmp.Close(); err != nil {
		return fail(fmt.Errorf("closing snapshot: %w", err))
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fail(fmt.Errorf("setting snapshot mode: %w", err))
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fail(fmt.Errorf("renaming snapshot: %w", err))
	}
	committed = true

	return dest, nil
}

// Load reads the snapshot for year.
func (s *Store) Load(year int) (*types.Snapshot, error) {
	f, err := os.Open(s.Path(year))
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %d: %w", year, err)
	}
	defer f.Close()

	var snap types.Snapshot
	if err := yaml.NewDecoder(bufio.NewReader(f)).Decode(&snap); err != nil {
		return nil, fmt.Errorf("decoding snapshot %d: %w", year, err)
	}
	return &snap, nil
}

// Years lists the years that have a snapshot, in ascending order. A
// missing directory has no snapshots.
func (s *Store) Years() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading snapshot directory %s: %w", s.dir, err)
	}

	var years []int
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSuffix(name, snapshotExt))
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	sort.Ints(years)
	return years, nil
}
