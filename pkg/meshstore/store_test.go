package meshstore

import "testing"

func TestAddPointInternsByQuantizedKey(t *testing.T) {
	s := New()
	a := s.AddPoint(1.00001, 2, 3)
	b := s.AddPoint(1.00002, 2, 3)
	if a != b {
		t.Fatalf("expected points within a quantum to share an ID, got %d and %d", a, b)
	}
	if s.NumPoints() != 1 {
		t.Fatalf("expected exactly one interned point, got %d", s.NumPoints())
	}
}

func TestAddEdgeCanonicalizesAndCounts(t *testing.T) {
	s := New()
	v0 := s.AddPoint(0, 0, 0)
	v1 := s.AddPoint(1, 0, 0)

	id1 := s.AddEdge(v0, v1)
	id2 := s.AddEdge(v1, v0)
	if id1 != id2 {
		t.Fatalf("expected (a,b) and (b,a) to canonicalize to the same edge")
	}
	if got := s.Edge(id1).Count; got != 2 {
		t.Fatalf("expected Count == 2 after two insertions, got %d", got)
	}
}

func TestAddFacetFixesUpDisagreeingNormal(t *testing.T) {
	s := New()
	v0 := s.AddPoint(0, 0, 0)
	v1 := s.AddPoint(1, 0, 0)
	v2 := s.AddPoint(0, 1, 0)

	// The cross-product winding of (v0,v1,v2) points +Z; supply -Z and
	// expect AddFacet to swap v1/v2 so winding and normal agree.
	id := s.AddFacet(v0, v1, v2, Normal{X: 0, Y: 0, Z: -1})
	f := s.Facet(id)
	if f.N.Z >= 0 {
		t.Fatalf("expected the supplied -Z normal to be kept after winding fixup, got %+v", f.N)
	}
	if f.V[1] != v2 || f.V[2] != v1 {
		t.Fatalf("expected v1/v2 swapped to match the corrected winding, got %v", f.V)
	}
}

func TestDuplicateFacetIncrementsCount(t *testing.T) {
	s := New()
	v0 := s.AddPoint(0, 0, 0)
	v1 := s.AddPoint(1, 0, 0)
	v2 := s.AddPoint(0, 1, 0)

	id1 := s.AddFacet(v0, v1, v2, Normal{X: 0, Y: 0, Z: 1})
	id2 := s.AddFacet(v1, v2, v0, Normal{X: 0, Y: 0, Z: 1}) // same triangle, rotated
	if id1 != id2 {
		t.Fatalf("expected a rotated duplicate to intern to the same FacetID")
	}
	if got := s.Facet(id1).Count; got != 2 {
		t.Fatalf("expected Count == 2, got %d", got)
	}
	if len(s.DuplicateFaces()) != 1 {
		t.Fatalf("expected exactly one duplicate face")
	}
}

func TestHoleAndExcessEdges(t *testing.T) {
	s := New()
	v0 := s.AddPoint(0, 0, 0)
	v1 := s.AddPoint(1, 0, 0)
	v2 := s.AddPoint(0, 1, 0)
	v3 := s.AddPoint(1, 1, 0)
	v4 := s.AddPoint(1, -1, 0)

	// AddFacet does not count edges; register each facet's edges the way
	// the STL reader does.
	addTri := func(a, b, c VertexID) {
		s.AddEdge(a, b)
		s.AddEdge(b, c)
		s.AddEdge(c, a)
		s.AddFacet(a, b, c, Normal{})
	}
	addTri(v0, v1, v2)
	addTri(v0, v1, v3) // shares edge v0-v1 with facet 0
	addTri(v1, v2, v3) // shares edge v1-v2 with facet 0 and v1-v3 with facet 1
	addTri(v0, v1, v4) // a third facet on edge v0-v1 -> excess

	if len(s.HoleEdges()) == 0 {
		t.Fatalf("expected at least one hole edge in this open surface")
	}
	if len(s.ExcessEdges()) == 0 {
		t.Fatalf("expected edge v0-v1, shared by three facets, to be an excess edge")
	}
}

func TestLayerAssignmentCoversFullZRange(t *testing.T) {
	s := New()
	v0 := s.AddPoint(0, 0, 0)
	v1 := s.AddPoint(1, 0, 0)
	v2 := s.AddPoint(0, 1, 2)

	s.AddFacet(v0, v1, v2, Normal{})

	assignment, numLayers := s.LayerAssignment(0.5)
	if numLayers != 4 {
		t.Fatalf("expected ceil(2/0.5) == 4 layers, got %d", numLayers)
	}
	total := 0
	for layer := 0; layer < numLayers; layer++ {
		total += len(assignment[layer])
	}
	if total == 0 {
		t.Fatalf("expected the single facet to be assigned to at least one layer")
	}
}

func TestTranslateShiftsBounds(t *testing.T) {
	s := New()
	s.AddPoint(0, 0, 0)
	s.AddPoint(1, 1, 1)
	before := s.Bounds()

	s.Translate(10, 0, 0)
	after := s.Bounds()

	if after.MinX != before.MinX+10 || after.MaxX != before.MaxX+10 {
		t.Fatalf("expected bounds shifted by 10 in X, got before=%+v after=%+v", before, after)
	}
}
