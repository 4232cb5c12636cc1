package manifold

import (
	"testing"

	"github.com/MehmetBener/Slicer-Julia/pkg/meshstore"
)

func buildTetrahedron() *meshstore.Store {
	s := meshstore.New()
	a := s.AddPoint(0, 0, 0)
	b := s.AddPoint(1, 0, 0)
	c := s.AddPoint(0, 1, 0)
	d := s.AddPoint(0, 0, 1)

	faces := [][3]meshstore.VertexID{
		{a, c, b},
		{a, b, d},
		{b, c, d},
		{a, d, c},
	}
	for _, f := range faces {
		s.AddEdge(f[0], f[1])
		s.AddEdge(f[1], f[2])
		s.AddEdge(f[2], f[0])
		s.AddFacet(f[0], f[1], f[2], meshstore.Normal{})
	}
	return s
}

func TestCheckManifoldTetrahedron(t *testing.T) {
	s := buildTetrahedron()
	r := Check(s)
	if !r.Manifold() {
		t.Fatalf("Check() = %+v, want manifold tetrahedron", r)
	}
}

func TestCheckHoleEdge(t *testing.T) {
	s := buildTetrahedron()
	// Drop one facet's edges/facet registration to leave a hole.
	a := s.AddPoint(0, 0, 0)
	b := s.AddPoint(1, 0, 0)
	c := s.AddPoint(0, 1, 0)
	e := s.AddPoint(5, 5, 5)
	s.AddEdge(a, b)
	s.AddEdge(b, c)
	s.AddEdge(c, a)
	s.AddFacet(a, b, c, meshstore.Normal{})

	s.AddEdge(a, e) // only one facet will ever reference this edge
	s.AddEdge(e, b)
	s.AddEdge(b, a)
	s.AddFacet(a, e, b, meshstore.Normal{})

	r := Check(s)
	if len(r.HoleEdges) == 0 {
		t.Fatalf("Check() found no hole edges, want at least one")
	}
	if r.Manifold() {
		t.Fatalf("Check().Manifold() = true, want false with a hole edge present")
	}
}

func TestCheckDuplicateFace(t *testing.T) {
	s := meshstore.New()
	a := s.AddPoint(0, 0, 0)
	b := s.AddPoint(1, 0, 0)
	c := s.AddPoint(0, 1, 0)
	s.AddFacet(a, b, c, meshstore.Normal{})
	s.AddFacet(a, b, c, meshstore.Normal{})

	r := Check(s)
	if len(r.DuplicateFaces) != 1 {
		t.Fatalf("DuplicateFaces = %v, want exactly one duplicated facet", r.DuplicateFaces)
	}
}

func TestReportDiagnostics(t *testing.T) {
	s := meshstore.New()
	a := s.AddPoint(0, 0, 0)
	b := s.AddPoint(1, 0, 0)
	c := s.AddPoint(0, 1, 0)
	s.AddEdge(a, b) // only referenced once: a hole edge
	r := Check(s)
	lines := r.Diagnostics(s)
	if len(lines) == 0 {
		t.Fatalf("Diagnostics() returned no lines for a non-manifold mesh")
	}
	_ = c
}
