// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package snapshot

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/pdiddy/uscode-graph/internal/citation"
	"github.com/pdiddy/uscode-graph/internal/graph"
	"github.com/pdiddy/uscode-graph/internal/ingest"
	"github.com/pdiddy/uscode-graph/pkg/types"
)

const archiveExt = ".zip"

var yearRe = regexp.MustCompile(`[0-9]{4,}`)

// Archive is one yearly release on disk.
type Archive struct {
	Year int
	Path string
}

// YearFromPath returns the last run of four or more digits in the file
// name of path, e.g. 1994 for "data/input/1994usc.zip".
func YearFromPath(path string) (int, error) {
	matches := yearRe.FindAllString(filepath.Base(path), -1)
	if len(matches) == 0 {
		return 0, fmt.Errorf("no year in archive name %s", filepath.Base(path))
	}
	return strconv.Atoi(matches[len(matches)-1])
}

// ArchiveFor builds an Archive from a path, deriving its year.
func ArchiveFor(path string) (Archive, error) {
	year, err := YearFromPath(path)
	if err != nil {
		return Archive{}, err
	}
	return Archive{Year: year, Path: path}, nil
}

// Discover lists the *.zip archives in dir in path order. Files without a
// year in their name are skipped.
func Discover(dir string) ([]Archive, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory %s: %w", dir, err)
	}

	var archives []Archive
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), archiveExt) {
			continue
		}
		a, err := ArchiveFor(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		archives = append(archives, a)
	}
	sort.Slice(archives, func(i, j int) bool { return archives[i].Path < archives[j].Path })
	return archives, nil
}

// Indexer records a persisted snapshot somewhere else, such as the catalog.
type Indexer interface {
	Index(ctx context.Context, snap *types.Snapshot, path string) error
}

// YearResult summarizes one built snapshot.
type YearResult struct {
	Year            int
	Path            string
	Documents       int
	FailedDocuments int
	Sections        int
	Nodes           int
	Edges           int
	PossibleCites   int
	References      int
}

// BatchSummary holds counts from a multi-year run.
type BatchSummary struct {
	Built  int
	Failed int
	// Errors maps each failed year to its error.
	Errors map[int]error
}

// Total returns the number of years processed.
func (s BatchSummary) Total() int {
	return s.Built + s.Failed
}

// HasFailures reports whether any year failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// Builder runs the per-year pipeline: ingest, build the structural graph
// and citation lists, assemble, persist, and optionally index.
type Builder struct {
	store     *Store
	ingestor  *ingest.Ingestor
	extractor *citation.Extractor
	indexer   Indexer
	logger    *slog.Logger
}

// NewBuilder returns a Builder writing snapshots to cfg.OutputDir and
// parsing with cfg.Workers workers. A nil logger uses slog.Default().
func NewBuilder(cfg types.ParseConfig, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		store:     NewStore(cfg.OutputDir),
		ingestor:  ingest.New(cfg.Workers, logger),
		extractor: citation.NewExtractor(logger),
		logger:    logger,
	}
}

// WithIndexer makes the Builder index every saved snapshot.
func (b *Builder) WithIndexer(ix Indexer) *Builder {
	b.indexer = ix
	return b
}

// Store returns the snapshot store.
func (b *Builder) Store() *Store {
	return b.store
}

// BuildYear processes one archive. Ingest and persist failures abort the
// year; because Save is atomic, no snapshot file is written for a failed
// year. An index failure is reported after the snapshot is saved.
func (b *Builder) BuildYear(ctx context.Context, a Archive) (YearResult, error) {
	if err := ctx.Err(); err != nil {
		return YearResult{}, err
	}

	ingested, err := b.ingestor.Ingest(a.Path)
	if err != nil {
		return YearResult{}, err
	}
	sections := ingested.Sections

	// Graph building and citation extraction only read sections.
	var (
		wg       sync.WaitGroup
		nodes    []string
		edges    []types.Edge
		possible []types.PossibleCitation
		refs     []types.Reference
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		nodes, edges = graph.BuildStructural(sections)
	}()
	go func() {
		defer wg.Done()
		possible = citation.PossibleCitations(sections)
		refs = b.extractor.References(sections)
	}()
	wg.Wait()

	snap := New(YearDate(a.Year), sections, nodes, edges, possible, refs)
	path, err := b.store.Save(snap)
	if err != nil {
		return YearResult{}, err
	}

	result := YearResult{
		Year:            a.Year,
		Path:            path,
		Documents:       ingested.Documents,
		FailedDocuments: len(ingested.Failed),
		Sections:        len(snap.Sections),
		Nodes:           len(snap.Nodes),
		Edges:           len(snap.Edges),
		PossibleCites:   len(snap.PossibleCites),
		References:      len(snap.References),
	}

	if b.indexer != nil {
		if err := b.indexer.Index(ctx, snap, path); err != nil {
			return result, fmt.Errorf("indexing snapshot %d: %w", a.Year, err)
		}
	}
	return result, nil
}

// BuildAll processes archives one year at a time, printing a status line
// per year to w. A failed year is recorded and the run continues with the
// next year.
func (b *Builder) BuildAll(ctx context.Context, archives []Archive, w io.Writer) (BatchSummary, error) {
	summary := BatchSummary{Errors: make(map[int]error)}

	for _, a := range archives {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		b.logger.Info("building snapshot", "year", a.Year, "archive", a.Path)

		res, err := b.BuildYear(ctx, a)
		if err != nil {
			fmt.Fprintf(w, "failed  %d: %v\n", a.Year, err)
			b.logger.Error("snapshot failed", "year", a.Year, "error", err)
			summary.Failed++
			summary.Errors[a.Year] = err
			continue
		}

		fmt.Fprintf(w, "built   %d: %d sections, %d nodes, %d edges, %d possible cites, %d references",
			res.Year, res.Sections, res.Nodes, res.Edges, res.PossibleCites, res.References)
		if res.FailedDocuments > 0 {
			fmt.Fprintf(w, " (%d of %d documents skipped)", res.FailedDocuments, res.Documents)
		}
		fmt.Fprintln(w)
		summary.Built++
	}

	fmt.Fprintf(w, "\nbuilt: %d, failed: %d (total: %d)\n", summary.Built, summary.Failed, summary.Total())
	return summary, nil
}
