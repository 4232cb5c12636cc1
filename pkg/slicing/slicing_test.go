package slicing

import (
	"math"
	"testing"

	"github.com/MehmetBener/Slicer-Julia/pkg/diag"
	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
	"github.com/MehmetBener/Slicer-Julia/pkg/meshstore"
)

// buildUnitCube returns a manifold unit cube [0,1]^3 in a fresh Store.
func buildUnitCube(t *testing.T) *meshstore.Store {
	t.Helper()
	s := meshstore.New()
	corner := func(x, y, z float64) meshstore.VertexID { return s.AddPoint(x, y, z) }

	v000 := corner(0, 0, 0)
	v100 := corner(1, 0, 0)
	v110 := corner(1, 1, 0)
	v010 := corner(0, 1, 0)
	v001 := corner(0, 0, 1)
	v101 := corner(1, 0, 1)
	v111 := corner(1, 1, 1)
	v011 := corner(0, 1, 1)

	quad := func(a, b, c, d meshstore.VertexID, n meshstore.Normal) {
		s.AddEdge(a, b)
		s.AddEdge(b, c)
		s.AddEdge(c, a)
		s.AddFacet(a, b, c, n)
		s.AddEdge(a, c)
		s.AddEdge(c, d)
		s.AddEdge(d, a)
		s.AddFacet(a, c, d, n)
	}

	quad(v000, v100, v110, v010, meshstore.Normal{X: 0, Y: 0, Z: -1}) // bottom
	quad(v001, v011, v111, v101, meshstore.Normal{X: 0, Y: 0, Z: 1}) // top
	quad(v000, v010, v011, v001, meshstore.Normal{X: -1, Y: 0, Z: 0}) // left
	quad(v100, v101, v111, v110, meshstore.Normal{X: 1, Y: 0, Z: 0}) // right
	quad(v000, v001, v101, v100, meshstore.Normal{X: 0, Y: -1, Z: 0}) // front
	quad(v010, v110, v111, v011, meshstore.Normal{X: 0, Y: 1, Z: 0}) // back

	return s
}

func TestSliceFacetMidPlane(t *testing.T) {
	s := buildUnitCube(t)
	segs := SliceLayer(s, allFacetIDs(s), 0.5)
	if len(segs) == 0 {
		t.Fatalf("expected some segments crossing z=0.5")
	}
	for _, seg := range segs {
		if seg.A.X < -1e-9 || seg.A.X > 1+1e-9 {
			t.Fatalf("segment endpoint out of expected cube bounds: %+v", seg)
		}
	}
}

func TestSliceFacetOutsideRange(t *testing.T) {
	s := buildUnitCube(t)
	segs := SliceLayer(s, allFacetIDs(s), 5.0)
	if len(segs) != 0 {
		t.Fatalf("expected no segments above the mesh, got %d", len(segs))
	}
}

func TestAssembleClosesSquareLoop(t *testing.T) {
	segs := []Segment{
		{A: pt(0, 0), B: pt(1, 0)},
		{A: pt(1, 0), B: pt(1, 1)},
		{A: pt(1, 1), B: pt(0, 1)},
		{A: pt(0, 1), B: pt(0, 0)},
	}
	var sink diag.Sink
	paths := Assemble(segs, 0, &sink)
	if len(paths) != 1 {
		t.Fatalf("len(paths) = %d, want 1", len(paths))
	}
	if sink.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Items())
	}
}

func TestAssembleReportsDeadPath(t *testing.T) {
	segs := []Segment{
		{A: pt(0, 0), B: pt(1, 0)},
		{A: pt(1, 0), B: pt(1, 1)},
		// missing closing segment back to (0,0)
	}
	var sink diag.Sink
	paths := Assemble(segs, 3, &sink)
	if len(paths) != 0 {
		t.Fatalf("len(paths) = %d, want 0 for a dead path", len(paths))
	}
	if sink.Len() == 0 {
		t.Fatalf("expected a dead-path diagnostic")
	}
}

func TestSliceCubeProducesClosedSquare(t *testing.T) {
	s := buildUnitCube(t)
	segs := SliceLayer(s, allFacetIDs(s), 0.5)
	var sink diag.Sink
	paths := Assemble(segs, 0, &sink)
	if len(paths) != 1 {
		t.Fatalf("len(paths) = %d, want 1 closed loop, diagnostics=%v", len(paths), sink.Items())
	}
	area := 0.0
	p := paths[0]
	for i := range p {
		j := (i + 1) % len(p)
		area += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	area = math.Abs(area) / 2
	if math.Abs(area-1.0) > 1e-6 {
		t.Fatalf("cross-section area = %v, want 1.0", area)
	}
}

func allFacetIDs(s *meshstore.Store) []meshstore.FacetID {
	var ids []meshstore.FacetID
	for i := 0; i < s.NumFacets(); i++ {
		ids = append(ids, meshstore.FacetID(i))
	}
	return ids
}

func pt(x, y float64) geom2d.Point2D {
	return geom2d.Point2D{X: x, Y: y}
}
