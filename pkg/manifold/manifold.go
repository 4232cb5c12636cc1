// Package manifold implements a pure function over a mesh Store that
// reports duplicate faces, hole edges, and excess edges. It is advisory —
// a non-manifold mesh can still be sliced — unless the caller (the CLI)
// enforces validation.
//
// This is a cheap edge/facet reference-count scan over the
// already-interned mesh rather than a CGo boolean-operation backend, so
// it stays pure Go and always available.
package manifold

import (
	"fmt"

	"github.com/MehmetBener/Slicer-Julia/pkg/meshstore"
)

// Report is the result of checking a Store for manifoldness.
type Report struct {
	DuplicateFaces []meshstore.FacetID
	HoleEdges []meshstore.EdgeID
	ExcessEdges []meshstore.EdgeID
}

// Manifold reports whether the mesh satisfies: every edge has
// Count == 2 and every facet has Count == 1.
func (r Report) Manifold() bool {
	return len(r.DuplicateFaces) == 0 && len(r.HoleEdges) == 0 && len(r.ExcessEdges) == 0
}

// Diagnostics renders one human-readable line per problem, in the order
// duplicate faces, then hole edges, then excess edges.
func (r Report) Diagnostics(s *meshstore.Store) []string {
	var lines []string
	for _, id := range r.DuplicateFaces {
		f := s.Facet(id)
		lines = append(lines, fmt.Sprintf("duplicate face: facet %d referenced %d times (vertices %v)", id, f.Count, f.V))
	}
	for _, id := range r.HoleEdges {
		e := s.Edge(id)
		lines = append(lines, fmt.Sprintf("hole edge: edge %d between vertices %d,%d borders only 1 facet", id, e.A, e.B))
	}
	for _, id := range r.ExcessEdges {
		e := s.Edge(id)
		lines = append(lines, fmt.Sprintf("excess edge: edge %d between vertices %d,%d borders %d facets", id, e.A, e.B, s.Edge(id).Count))
	}
	return lines
}

// Check scans s and builds a Report. It never mutates s.
func Check(s *meshstore.Store) Report {
	return Report{
		DuplicateFaces: s.DuplicateFaces(),
		HoleEdges: s.HoleEdges(),
		ExcessEdges: s.ExcessEdges(),
	}
}
