// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import "regexp"

// Candidate is one citation phrase found by a Rule, before resolution.
type Candidate struct {
	// Sections is the captured section list, e.g. "102, 103".
	Sections string
	// TitleRef is either "this title" or "title N".
	TitleRef string
	// Phrase is the full matched text.
	Phrase string
}

// Rule is one independent citation matcher. Its pattern must have two
// capture groups: the section list and the title reference.
type Rule struct {
	Name string
	re   *regexp.Regexp
}

// NewRule compiles a case-insensitive rule. It panics on an invalid
// pattern, like regexp.MustCompile.
func NewRule(name, pattern string) Rule {
	re := regexp.MustCompile(`(?i)` + pattern)
	if re.NumSubexp() < 2 {
		panic("citation: rule " + name + " needs two capture groups")
	}
	return Rule{Name: name, re: re}
}

// Match returns every non-overlapping candidate in text.
func (r Rule) Match(text string) []Candidate {
	var out []Candidate
	for _, m := range r.re.FindAllStringSubmatch(text, -1) {
		out = append(out, Candidate{Sections: m[1], TitleRef: m[2], Phrase: m[0]})
	}
	return out
}

// Section numbers start with a digit and may carry letters and hyphens
// (e.g. "101a-1"). Lists may also contain commas and spaces.
const (
	sectionNumber = `([0-9]+[0-9a-z\-]*)`
	sectionList   = `([0-9]+[0-9a-z\-, ]*)`
	thisTitle     = `(this title)`
	otherTitle    = `(title [0-9a-z]{1,3})`
)

// DefaultRules covers singular and plural "section(s) N of this title" /
// "of title N" phrasing and the same forms written with the § glyph.
func DefaultRules() []Rule {
	return []Rule{
		NewRule("section-this-title", `section `+sectionNumber+` of `+thisTitle),
		NewRule("section-other-title", `section `+sectionNumber+` of `+otherTitle),
		NewRule("sections-this-title", `sections `+sectionList+` of `+thisTitle),
		NewRule("sections-other-title", `sections `+sectionList+` of `+otherTitle),
		NewRule("glyph-this-title", `§ `+sectionList+` of `+thisTitle),
		NewRule("glyph-other-title", `§ `+sectionList+` of `+otherTitle),
	}
}
