// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "strings"

// SectionMarker is the literal that identifies a section-level segment in
// an itempath or expcite (e.g. "Sec. 101").
const SectionMarker = "Sec."

// Section is one record extracted from a title document. A record is
// delimited by itempath markers and may describe a title, chapter,
// subchapter, or an individual section.
type Section struct {
	// ItemPath is the slash-delimited hierarchy path
	// (e.g. "/17/1/Sec. 101" or "Title 17/Chapter 1/Sec. 101").
	ItemPath string `json:"itempath" yaml:"itempath"`

	// ExpCite is the explicit citation string as printed in the source
	// (e.g. "TITLE 17-COPYRIGHTS!@!CHAPTER 1-SUBJECT MATTER!@!Sec. 101").
	ExpCite string `json:"expcite" yaml:"expcite"`

	// Head is the accumulated heading text.
	Head string `json:"head" yaml:"head"`

	// Statute is the accumulated body text.
	Statute string `json:"statute" yaml:"statute"`

	// Title is the title number derived from ExpCite, empty when ExpCite
	// does not name a title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Section is the section identifier derived from ExpCite, empty when
	// ExpCite has no "Sec." component.
	Section string `json:"section,omitempty" yaml:"section,omitempty"`
}

// LastSegment returns the final itempath segment, trimmed of whitespace.
func (s Section) LastSegment() string {
	p := strings.TrimRight(strings.TrimSpace(s.ItemPath), "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		p = p[i+1:]
	}
	return strings.TrimSpace(p)
}

// IsSection reports whether the record is a section rather than a
// structural heading such as a chapter.
func (s Section) IsSection() bool {
	return strings.Contains(s.LastSegment(), SectionMarker)
}

// Edge is a direct containment relation between two structural nodes.
type Edge struct {
	Parent string `json:"parent" yaml:"parent"`
	Child  string `json:"child" yaml:"child"`
}

// PossibleCitation is a (title, section) identity declared by a section's
// own expcite. The set of possible citations catalogs valid targets.
type PossibleCitation struct {
	Title   string `json:"title" yaml:"title"`
	Section string `json:"section" yaml:"section"`
}

// Reference is an inferred citation from one section's statute text to
// another section. Duplicates are meaningful: each occurrence counts.
type Reference struct {
	SourceTitle   string `json:"source_title" yaml:"source_title"`
	SourceSection string `json:"source_section" yaml:"source_section"`
	TargetTitle   string `json:"target_title" yaml:"target_title"`
	TargetSection string `json:"target_section" yaml:"target_section"`
}
