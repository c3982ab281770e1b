// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// ParseError reports a title document that could not be parsed. Parse
// errors are never fatal for an archive: the document contributes no
// sections and ingestion continues.
type ParseError struct {
	Document string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing document %s: %v", e.Document, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// IngestError reports an archive or archive entry that could not be read.
// It aborts processing of the affected year only.
type IngestError struct {
	Archive string
	// Entry is empty when the archive itself could not be opened.
	Entry string
	Err   error
}

func (e *IngestError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("opening archive %s: %v", e.Archive, e.Err)
	}
	return fmt.Sprintf("reading %s from archive %s: %v", e.Entry, e.Archive, e.Err)
}

func (e *IngestError) Unwrap() error { return e.Err }

// ResolutionError reports a citation phrase whose target title or section
// could not be resolved. The candidate is dropped; it is not propagated
// past the citation extractor.
type ResolutionError struct {
	// Title and Section identify the citing section.
	Title   string
	Section string
	// Phrase is the matched text.
	Phrase string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("resolving %q in title %q section %q: %s", e.Phrase, e.Title, e.Section, e.Reason)
}

// PersistError reports a snapshot that could not be written. It aborts
// processing of the affected year only.
type PersistError struct {
	Year int
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persisting snapshot %d to %s: %v", e.Year, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }
