// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation derives the citation graph of the Code: the catalog of
// (title, section) identities that sections declare for themselves, and
// the cross-references found by pattern matching over statute text.
//
// Detection is pattern based. It misses citations phrased in other ways
// and may pick up phrases that are not citations.
package citation

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/pdiddy/uscode-graph/pkg/types"
)

// expciteSep separates hierarchy levels within an expcite string.
const expciteSep = "!@!"

var (
	titleRe   = regexp.MustCompile(`(?i)title ([0-9]+)`)
	sectionRe = regexp.MustCompile(`(?i)sec. (.+)`)
	numberRe  = regexp.MustCompile(`(?i)[0-9]+[0-9a-z\-]*`)
)

// Identity is the (title, section) a section claims through its expcite.
type Identity struct {
	Title   string
	Section string
}

// ParseIdentity reads the title from the first expcite component, falling
// back to the raw component when it has no "title N", and the section from
// "Sec. <value>" in the last component. Blank expcites have no identity.
func ParseIdentity(expcite string) Identity {
	if strings.TrimSpace(expcite) == "" {
		return Identity{}
	}

	parts := strings.Split(expcite, expciteSep)

	var id Identity
	if m := titleRe.FindStringSubmatch(parts[0]); m != nil {
		id.Title = strings.TrimSpace(m[1])
	} else {
		id.Title = strings.TrimSpace(parts[0])
	}

	if strings.Contains(expcite, types.SectionMarker) {
		if m := sectionRe.FindStringSubmatch(parts[len(parts)-1]); m != nil {
			id.Section = strings.TrimSpace(m[1])
		}
	}
	return id
}

// PossibleCitations returns the (title, section) pair of every record whose
// itempath has a section segment. The title comes from the expcite text
// before the first hyphen and the section from the last itempath segment.
func PossibleCitations(sections []types.Section) []types.PossibleCitation {
	var out []types.PossibleCitation
	for _, s := range sections {
		if !strings.Contains(s.ItemPath, "/"+types.SectionMarker) {
			continue
		}
		lead, _, _ := strings.Cut(s.ExpCite, "-")
		out = append(out, types.PossibleCitation{
			Title:   strings.TrimSpace(strings.ReplaceAll(lead, "TITLE", "")),
			Section: strings.TrimSpace(strings.ReplaceAll(s.LastSegment(), types.SectionMarker, "")),
		})
	}
	return out
}

// Extractor finds cross-references with an ordered list of rules.
type Extractor struct {
	rules  []Rule
	logger *slog.Logger
}

// NewExtractor returns an Extractor using rules, or DefaultRules when none
// are given. A nil logger uses slog.Default().
func NewExtractor(logger *slog.Logger, rules ...Rule) *Extractor {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{rules: rules, logger: logger}
}

// References returns every cross-reference in sections, in section order
// and then rule order. Candidates that cannot be resolved are dropped.
func (e *Extractor) References(sections []types.Section) []types.Reference {
	var out []types.Reference
	for _, s := range sections {
		out = append(out, e.SectionReferences(s)...)
	}
	return out
}

// SectionReferences returns the cross-references in one section's statute.
func (e *Extractor) SectionReferences(s types.Section) []types.Reference {
	if s.Statute == "" {
		return nil
	}

	id := ParseIdentity(s.ExpCite)

	var out []types.Reference
	for _, rule := range e.rules {
		for _, c := range rule.Match(s.Statute) {
			refs, err := Resolve(id, c)
			if err != nil {
				e.logger.Debug("dropping citation", "rule", rule.Name, "error", err)
				continue
			}
			out = append(out, refs...)
		}
	}
	return out
}

// Resolve turns a candidate found in the section identified by id into
// references, one per listed section number. "this title" resolves to
// id.Title. It returns a *types.ResolutionError when the target title
// cannot be determined.
func Resolve(id Identity, c Candidate) ([]types.Reference, error) {
	var target string
	if strings.Contains(strings.ToLower(c.TitleRef), "this title") {
		target = id.Title
		if target == "" {
			return nil, &types.ResolutionError{Title: id.Title, Section: id.Section, Phrase: c.Phrase, Reason: "citing section has no title"}
		}
	} else {
		target = numberRe.FindString(c.TitleRef)
		if target == "" {
			return nil, &types.ResolutionError{Title: id.Title, Section: id.Section, Phrase: c.Phrase, Reason: "no title number"}
		}
	}

	numbers := numberRe.FindAllString(c.Sections, -1)
	refs := make([]types.Reference, 0, len(numbers))
	for _, n := range numbers {
		refs = append(refs, types.Reference{
			SourceTitle:   id.Title,
			SourceSection: id.Section,
			TargetTitle:   target,
			TargetSection: n,
		})
	}
	return refs, nil
}
