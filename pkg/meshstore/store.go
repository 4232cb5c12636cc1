package meshstore

import "math"

// Store holds three interning tables — points, edges, facets — with
// identity semantics, write-once during STL read and read-only for the
// rest of the pipeline.
type Store struct {
	points *pointArena
	edges *edgeArena
	facets *facetArena
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		points: newPointArena(),
		edges: newEdgeArena(),
		facets: newFacetArena(),
	}
}

// AddPoint interns a point, see pointArena.AddPoint.
func (s *Store) AddPoint(x, y, z float64) VertexID { return s.points.AddPoint(x, y, z) }

// Point returns the canonical coordinates for id.
func (s *Store) Point(id VertexID) Point { return s.points.Point(id) }

// AddEdge interns an edge between two already-interned vertices.
func (s *Store) AddEdge(a, b VertexID) EdgeID { return s.edges.AddEdge(a, b) }

// Edge returns the edge record for id.
func (s *Store) Edge(id EdgeID) Edge { return s.edges.Edge(id) }

// IncidentEdges returns the edges touching v.
func (s *Store) IncidentEdges(v VertexID) []EdgeID { return s.edges.Incident(v) }

// AllEdges returns every interned edge.
func (s *Store) AllEdges() []Edge { return s.edges.All() }

// HoleEdges returns edges with Count == 1.
func (s *Store) HoleEdges() []EdgeID { return s.edges.HoleEdges() }

// ExcessEdges returns edges with Count > 2.
func (s *Store) ExcessEdges() []EdgeID { return s.edges.ExcessEdges() }

// AddFacet interns a triangle given three already-interned vertices and a
// caller-supplied normal (which may be the zero value; it will be
// recomputed from the winding).
func (s *Store) AddFacet(v1, v2, v3 VertexID, n Normal) FacetID {
	return s.facets.AddFacet(s.points, v1, v2, v3, n)
}

// Facet returns the facet record for id.
func (s *Store) Facet(id FacetID) Facet { return s.facets.Facet(id) }

// AllFacets returns every interned facet, in insertion order. This is the
// triangle soup the rest of the pipeline slices.
func (s *Store) AllFacets() []Facet { return s.facets.All() }

// DuplicateFaces returns facets with Count != 1.
func (s *Store) DuplicateFaces() []FacetID { return s.facets.DuplicateFaces() }

// NumFacets and NumPoints report arena sizes, mainly for logging.
func (s *Store) NumFacets() int { return len(s.facets.facets) }
func (s *Store) NumPoints() int { return len(s.points.points) }

// Bounds returns the running axis-aligned bounds of all interned points.
func (s *Store) Bounds() Bounds { return s.points.bounds }

// Translate mutates every interned point's coordinates by (dx, dy, dz) and
// rehashes the point cache. Edge and facet arenas are untouched: they
// reference vertices by index, which Translate preserves.
func (s *Store) Translate(dx, dy, dz float64) {
	s.points.translate(dx, dy, dz)
}

// FacetVertices resolves a facet's VertexIDs to Points, in stored winding
// order.
func (s *Store) FacetVertices(f Facet) (Point, Point, Point) {
	return s.points.Point(f.V[0]), s.points.Point(f.V[1]), s.points.Point(f.V[2])
}

// FacetZRange returns the min/max Z of a facet's three vertices.
func (s *Store) FacetZRange(f Facet) (minZ, maxZ float64) {
	p1, p2, p3 := s.FacetVertices(f)
	minZ = math.Min(p1.Z, math.Min(p2.Z, p3.Z))
	maxZ = math.Max(p1.Z, math.Max(p2.Z, p3.Z))
	return
}

// LayerRange returns [lo, hi] inclusive layer indices a facet spans, using
// the assignment rule floor(minz/h + 0.01) .. ceil(maxz/h - 0.01),
// measured from the mesh's own minZ so layer 0 is the bottom layer.
func (s *Store) LayerRange(f Facet, layerHeight float64) (lo, hi int) {
	minZ, maxZ := s.FacetZRange(f)
	base := s.Bounds().MinZ
	lo = int(math.Floor((minZ-base)/layerHeight + 0.01))
	hi = int(math.Ceil((maxZ-base)/layerHeight - 0.01))
	return
}

// LayerAssignment builds "layer-index -> facets" map for
// every layer between 0 and the number of layers implied by the mesh's Z
// extent and layerHeight.
func (s *Store) LayerAssignment(layerHeight float64) (map[int][]FacetID, int) {
	b := s.Bounds()
	numLayers := int(math.Ceil((b.MaxZ - b.MinZ) / layerHeight))
	assignment := make(map[int][]FacetID, numLayers)
	for i, f := range s.facets.facets {
		lo, hi := s.LayerRange(f, layerHeight)
		if lo < 0 {
			lo = 0
		}
		if hi > numLayers-1 {
			hi = numLayers - 1
		}
		for layer := lo; layer <= hi; layer++ {
			assignment[layer] = append(assignment[layer], FacetID(i))
		}
	}
	return assignment, numLayers
}
