package meshstore

import "math"

// Normal is a unit 3D vector.
type Normal struct {
	X, Y, Z float64
}

func sub(p, q Point) Normal { return Normal{p.X - q.X, p.Y - q.Y, p.Z - q.Z} }
func cross(a, b Normal) Normal {
	return Normal{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
func length(n Normal) float64 { return math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z) }

func normalize(n Normal) Normal {
	l := length(n)
	if l < 1e-12 {
		return Normal{}
	}
	return Normal{n.X / l, n.Y / l, n.Z / l}
}

// Facet is a triangle: three vertices rotated so the smallest VertexID is
// first, a unit normal consistent with the winding by the right-hand
// rule, and a reference count (>1 marks a duplicated face).
type Facet struct {
	V [3]VertexID
	N Normal
	Count int
}

type facetKey [3]VertexID

// rotateMin rotates v so that its smallest element is first, preserving
// winding order.
func rotateMin(v [3]VertexID) [3]VertexID {
	i := 0
	if v[1] < v[i] {
		i = 1
	}
	if v[2] < v[i] {
		i = 2
	}
	return [3]VertexID{v[i], v[(i+1)%3], v[(i+2)%3]}
}

type facetArena struct {
	facets []Facet
	byKey map[facetKey]FacetID
	byVert map[VertexID][]FacetID
	byEdgeKey map[edgeKey][]FacetID
}

func newFacetArena() *facetArena {
	return &facetArena{
		byKey: make(map[facetKey]FacetID),
		byVert: make(map[VertexID][]FacetID),
		byEdgeKey: make(map[edgeKey][]FacetID),
	}
}

// AddFacet canonicalizes the vertex order of (v1, v2, v3), fixes up the
// normal against the cross-product winding, and interns the result, incrementing Count on repeats.
func (fa *facetArena) AddFacet(pa *pointArena, v1, v2, v3 VertexID, given Normal) FacetID {
	p1, p2, p3 := pa.Point(v1), pa.Point(v2), pa.Point(v3)
	computed := normalize(cross(sub(p2, p1), sub(p3, p1)))

	n := given
	if length(Normal{n.X, n.Y, n.Z}) < 1e-9 {
		n = computed
	} else {
		n = normalize(n)
		// If the given normal disagrees with the cross-product winding,
		// swap v2/v3 so the stored winding matches the stored normal.
		if dot(n, computed) < 0 {
			v2, v3 = v3, v2
			p2, p3 = p3, p2
			computed = normalize(cross(sub(p2, p1), sub(p3, p1)))
		}
	}

	verts := rotateMin([3]VertexID{v1, v2, v3})
	k := facetKey(verts)
	if id, ok := fa.byKey[k]; ok {
		fa.facets[id].Count++
		return id
	}

	id := FacetID(len(fa.facets))
	fa.facets = append(fa.facets, Facet{V: verts, N: n, Count: 1})
	fa.byKey[k] = id
	for _, v := range verts {
		fa.byVert[v] = append(fa.byVert[v], id)
	}
	edgeKeys := [3]edgeKey{
		canonicalPair(verts[0], verts[1]),
		canonicalPair(verts[1], verts[2]),
		canonicalPair(verts[2], verts[0]),
	}
	for _, ek := range edgeKeys {
		fa.byEdgeKey[ek] = append(fa.byEdgeKey[ek], id)
	}
	return id
}

func dot(a, b Normal) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

// Facet returns the facet record for id.
func (fa *facetArena) Facet(id FacetID) Facet {
	return fa.facets[id]
}

// All returns every interned facet, in insertion order.
func (fa *facetArena) All() []Facet {
	return fa.facets
}

// DuplicateFaces returns facets with Count != 1.
func (fa *facetArena) DuplicateFaces() []FacetID {
	var out []FacetID
	for i, f := range fa.facets {
		if f.Count != 1 {
			out = append(out, FacetID(i))
		}
	}
	return out
}
