// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest unpacks a yearly U.S. Code archive and parses every title
// document it contains, fanning the documents out over a worker pool and
// joining the section lists in archive order.
package ingest

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pdiddy/uscode-graph/internal/document"
	"github.com/pdiddy/uscode-graph/pkg/types"
)

// ParseFunc parses one named document into sections.
type ParseFunc func(name string, data []byte) ([]types.Section, error)

// Result holds the merged output of one archive.
type Result struct {
	// Sections is the concatenation of every document's sections in
	// archive entry order.
	Sections []types.Section

	// Documents is the number of title documents read.
	Documents int

	// Failed lists documents that could not be parsed. They contribute
	// no sections.
	Failed []*types.ParseError
}

// Ingestor parses archives with a fixed-size worker pool.
type Ingestor struct {
	workers int
	parse   ParseFunc
	logger  *slog.Logger
}

// New returns an Ingestor using document.ParseBytes. A nil logger uses
// slog.Default().
func New(workers int, logger *slog.Logger) *Ingestor {
	return NewWithParser(workers, document.ParseBytes, logger)
}

// NewWithParser returns an Ingestor that parses documents with parse.
func NewWithParser(workers int, parse ParseFunc, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{workers: workers, parse: parse, logger: logger}
}

type docResult struct {
	name     string
	sections []types.Section
	readErr  error
	parseErr error
}

// Ingest opens the archive at path and parses every entry. An archive
// that cannot be opened, or an entry that cannot be read, fails the whole
// archive with a *types.IngestError. Documents that fail to parse are
// reported in Result.Failed and skipped.
func (in *Ingestor) Ingest(path string) (Result, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return Result{}, &types.IngestError{Archive: path, Err: err}
	}
	defer zr.Close()

	var files []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
			continue
		}
		files = append(files, f)
	}

	in.logger.Debug("ingesting archive", "archive", path, "documents", len(files), "workers", in.workers)

	docs := Map(files, in.workers, func(f *zip.File) docResult {
		data, err := readEntry(f)
		if err != nil {
			return docResult{name: f.Name, readErr: err}
		}
		sections, err := in.parse(f.Name, data)
		return docResult{name: f.Name, sections: sections, parseErr: err}
	})

	result := Result{Documents: len(docs)}
	for _, d := range docs {
		if d.readErr != nil {
			return Result{}, &types.IngestError{Archive: path, Entry: d.name, Err: d.readErr}
		}
		if d.parseErr != nil {
			var pe *types.ParseError
			if !errors.As(d.parseErr, &pe) {
				pe = &types.ParseError{Document: d.name, Err: d.parseErr}
			}
			in.logger.Warn("skipping unparseable document", "archive", path, "document", d.name, "error", pe.Err)
			result.Failed = append(result.Failed, pe)
			continue
		}
		result.Sections = append(result.Sections, d.sections...)
	}

	return result, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading entry: %w", err)
	}
	return data, nil
}
