// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package graph builds the structural containment graph of the Code from
// section itempaths: ROOT -> title -> ... -> section.
package graph

import (
	"cmp"
	"slices"
	"strings"

	"github.com/pdiddy/uscode-graph/pkg/types"
)

// Root is the node anchoring every title.
const Root = "ROOT"

const sep = "/"

// BuildStructural returns the deduplicated nodes and edges implied by the
// sections' itempaths. Nodes are sorted lexicographically and edges by
// (parent, child), so the result does not depend on section order.
// Sections with a blank itempath are skipped.
func BuildStructural(sections []types.Section) ([]string, []types.Edge) {
	nodeSet := make(map[string]struct{})
	edgeSet := make(map[types.Edge]struct{})

	for _, s := range sections {
		path := strings.Trim(strings.TrimSpace(s.ItemPath), sep)
		if path == "" {
			continue
		}

		tokens := strings.Split(Root+sep+path, sep)
		for i := 1; i < len(tokens); i++ {
			parent := strings.Join(tokens[:i], sep)
			if parent == "" {
				parent = Root
			}
			child := strings.Join(tokens[:i+1], sep)

			nodeSet[parent] = struct{}{}
			nodeSet[child] = struct{}{}
			edgeSet[types.Edge{Parent: parent, Child: child}] = struct{}{}
		}
	}

	nodes := make([]string, 0, len(nodeSet))
	for n := range nodeSet {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)

	edges := make([]types.Edge, 0, len(edgeSet))
	for e := range edgeSet {
		edges = append(edges, e)
	}
	slices.SortFunc(edges, func(a, b types.Edge) int {
		if c := cmp.Compare(a.Parent, b.Parent); c != 0 {
			return c
		}
		return cmp.Compare(a.Child, b.Child)
	})

	return nodes, edges
}

// Children indexes edges by parent node.
func Children(edges []types.Edge) map[string][]string {
	out := make(map[string][]string)
	for _, e := range edges {
		out[e.Parent] = append(out[e.Parent], e.Child)
	}
	return out
}
