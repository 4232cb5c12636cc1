package stlio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/MehmetBener/Slicer-Julia/pkg/meshstore"
)

// WriteASCII serializes every interned facet of s as an ASCII STL solid
// named name, in the "facet normal / outer loop / vertex x3 / endloop /
// endfacet" grammar of, grounded on
// other_examples/kortschak-stl__triangle.go's TextEncoder. This exists to
// satisfy round-trip law: writing and re-reading a mesh must
// yield an isomorphic Store (same facets up to winding normalization).
func WriteASCII(w io.Writer, s *meshstore.Store, name string) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "solid %s\n", name); err != nil {
		return err
	}
	for _, f := range s.AllFacets() {
		p1, p2, p3 := s.FacetVertices(f)
		fmt.Fprintf(bw, " facet normal %g %g %g\n", f.N.X, f.N.Y, f.N.Z)
		fmt.Fprintf(bw, " outer loop\n")
		fmt.Fprintf(bw, " vertex %g %g %g\n", p1.X, p1.Y, p1.Z)
		fmt.Fprintf(bw, " vertex %g %g %g\n", p2.X, p2.Y, p2.Z)
		fmt.Fprintf(bw, " vertex %g %g %g\n", p3.X, p3.Y, p3.Z)
		fmt.Fprintf(bw, " endloop\n")
		fmt.Fprintf(bw, " endfacet\n")
	}
	if _, err := fmt.Fprintf(bw, "endsolid %s\n", name); err != nil {
		return err
	}
	return bw.Flush()
}
