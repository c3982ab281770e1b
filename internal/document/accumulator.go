// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package document

import (
	"strings"

	"github.com/pdiddy/uscode-graph/pkg/types"
)

// Field identifies which section field is currently receiving text.
type Field int

const (
	FieldNone Field = iota
	FieldHead
	FieldStatute
)

// Marker keywords recognized in annotation comments. Matching is done on
// the lowercased, trimmed comment text.
const (
	markerItemPath     = "itempath:"
	markerExpCite      = "expcite:"
	markerStatuteStart = "field-start:statute"
	markerStatuteEnd   = "field-end:statute"
	markerHeadStart    = "field-start:head"
	markerHeadEnd      = "field-end:head"
)

// Accumulator is the section-building state machine driven by a document
// walk. Feed it annotation markers and text in document order, then call
// Finish to collect the sections.
//
// The zero value is ready to use.
type Accumulator struct {
	current  types.Section
	head     strings.Builder
	statute  strings.Builder
	field    Field
	sections []types.Section
}

// Field returns the field currently receiving text.
func (a *Accumulator) Field() Field {
	return a.field
}

// Marker applies one annotation marker. Unrecognized markers are ignored.
func (a *Accumulator) Marker(comment string) {
	raw := strings.TrimSpace(comment)
	kind := strings.ToLower(raw)

	switch {
	case strings.HasPrefix(kind, markerItemPath):
		path := markerValue(raw)
		if a.current.ItemPath != "" {
			a.emit()
		}
		a.current.ItemPath = path
	case strings.HasPrefix(kind, markerExpCite):
		a.setExpCite(markerValue(raw))
	case strings.HasPrefix(kind, markerStatuteStart):
		a.field = FieldStatute
	case strings.HasPrefix(kind, markerHeadStart):
		a.field = FieldHead
	case strings.HasPrefix(kind, markerStatuteEnd), strings.HasPrefix(kind, markerHeadEnd):
		a.field = FieldNone
	}
}

// Text appends rendered text to the open field, if any.
func (a *Accumulator) Text(s string) {
	switch a.field {
	case FieldHead:
		a.head.WriteString(s)
	case FieldStatute:
		a.statute.WriteString(s)
	}
}

// Finish flushes the in-progress section, if it has an itempath, and
// returns every section in document order. The accumulator is reset.
func (a *Accumulator) Finish() []types.Section {
	if a.current.ItemPath != "" {
		a.emit()
	}
	out := a.sections
	*a = Accumulator{}
	return out
}

func (a *Accumulator) setExpCite(cite string) {
	a.current.ExpCite = cite
	trimmed := strings.TrimSpace(cite)

	if strings.Contains(strings.ToLower(cite), "title") {
		lead, _, _ := strings.Cut(trimmed, "-")
		if fields := strings.Fields(lead); len(fields) > 0 {
			a.current.Title = fields[len(fields)-1]
		}
	}
	if strings.Contains(cite, types.SectionMarker) {
		if fields := strings.Fields(trimmed); len(fields) > 0 {
			a.current.Section = fields[len(fields)-1]
		}
	}
}

// emit appends the current section and starts a blank one. The open
// field is left as is; a later field-end marker closes it.
func (a *Accumulator) emit() {
	a.current.Head = a.head.String()
	a.current.Statute = a.statute.String()
	a.sections = append(a.sections, a.current)
	a.current = types.Section{}
	a.head.Reset()
	a.statute.Reset()
}

// markerValue returns the text after the first colon.
func markerValue(raw string) string {
	_, v, _ := strings.Cut(raw, ":")
	return strings.TrimSpace(v)
}
