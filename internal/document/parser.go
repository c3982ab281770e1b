// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package document extracts section records from a single annotated
// U.S. Code title document. Section boundaries and field regions are
// carried by HTML comments (itempath:, expcite:, field-start:<name>,
// field-end:<name>); everything else is rendered text.
package document

import (
	"bytes"
	"errors"
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"

	"github.com/pdiddy/uscode-graph/pkg/types"
)

// Parse reads one title document and returns its sections in document
// order. A document without itempath markers yields no sections.
//
// The input is decoded using the charset it declares (meta tag or BOM),
// falling back to UTF-8 or windows-1252. Tokens are consumed in source
// order; the HTML5 tree builder is not used because it moves stray table
// text away from the comments that delimit its field.
func Parse(r io.Reader) ([]types.Section, error) {
	decoded, err := charset.NewReader(r, "")
	if err != nil {
		return nil, err
	}

	var (
		acc  Accumulator
		skip bool
	)
	z := html.NewTokenizer(decoded)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, err
			}
			return acc.Finish(), nil
		}

		tok := z.Token()
		switch tt {
		case html.CommentToken:
			acc.Marker(tok.Data)
		case html.TextToken:
			if !skip {
				acc.Text(tok.Data)
			}
		case html.StartTagToken:
			if isRawText(tok.DataAtom) {
				skip = true
			}
		case html.EndTagToken:
			if isRawText(tok.DataAtom) {
				skip = false
			}
		}
	}
}

// ParseBytes parses an in-memory document. Failures are reported as a
// *types.ParseError naming the document.
func ParseBytes(name string, data []byte) ([]types.Section, error) {
	sections, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &types.ParseError{Document: name, Err: err}
	}
	return sections, nil
}

// isRawText reports whether a's content is never rendered text.
func isRawText(a atom.Atom) bool {
	return a == atom.Script || a == atom.Style
}
