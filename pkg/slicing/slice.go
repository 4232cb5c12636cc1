// Package slicing implements the Facet Slicer and the
// Layer Assembler: intersecting facets with a Z plane to
// produce oriented 2D segments, then stitching those segments into closed
// LayerPaths per layer.
package slicing

import (
	"math"

	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
	"github.com/MehmetBener/Slicer-Julia/pkg/meshstore"
)

// Segment is an oriented 2D intersection of one facet with the slicing
// plane: direction is chosen so the facet's projected normal points to
// the right of A->B.
type Segment struct {
	A, B geom2d.Point2D
}

// SnapPlaneZ implements plane pre-snap:
// floor(k/q+0.5)*q + q/2, landing the slicing plane at the mid-height of
// its quantum band rather than exactly on a quantized vertex Z.
func SnapPlaneZ(k, q float64) float64 {
	return math.Floor(k/q+0.5)*q + q/2
}

// SliceFacet intersects facet f (resolved through s) with the plane z=planeZ,
// returning (segment, true) or (zero, false) if there is no intersection
//.
func SliceFacet(s *meshstore.Store, f meshstore.Facet, planeZ float64) (Segment, bool) {
	p1, p2, p3 := s.FacetVertices(f)
	minZ := math.Min(p1.Z, math.Min(p2.Z, p3.Z))
	maxZ := math.Max(p1.Z, math.Max(p2.Z, p3.Z))
	if planeZ < minZ || planeZ > maxZ {
		return Segment{}, false // case 1
	}

	// 2D-projected normal: drop Z from the facet normal.
	nx, ny := f.N.X, f.N.Y
	if math.Hypot(nx, ny) < 1e-6 {
		return Segment{}, false // case 2: nearly horizontal facet
	}

	verts := [3]meshstore.Point{p1, p2, p3}

	// Case 3: an edge lies exactly on the plane.
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		if verts[i].Z == planeZ && verts[j].Z == planeZ {
			return orient(Segment{
				A: geom2d.Point2D{X: verts[i].X, Y: verts[i].Y},
				B: geom2d.Point2D{X: verts[j].X, Y: verts[j].Y},
			}, nx, ny), true
		}
	}

	// Case 4: exactly one vertex on the plane; intercept the opposite edge.
	for i := 0; i < 3; i++ {
		if verts[i].Z == planeZ {
			j, k := (i+1)%3, (i+2)%3
			if (verts[j].Z > planeZ) == (verts[k].Z > planeZ) {
				continue // opposite edge does not cross the plane
			}
			u := (planeZ - verts[j].Z) / (verts[k].Z - verts[j].Z)
			ix := verts[j].X + u*(verts[k].X-verts[j].X)
			iy := verts[j].Y + u*(verts[k].Y-verts[j].Y)
			return orient(Segment{
				A: geom2d.Point2D{X: verts[i].X, Y: verts[i].Y},
				B: geom2d.Point2D{X: ix, Y: iy},
			}, nx, ny), true
		}
	}

	// Case 5: two edges cross the plane by linear interpolation.
	var pts []geom2d.Point2D
	for i := 0; i < 3; i++ {
		j := (i + 1) % 3
		v1, v2 := verts[i], verts[j]
		if (v1.Z > planeZ) == (v2.Z > planeZ) {
			continue
		}
		u := (planeZ - v1.Z) / (v2.Z - v1.Z)
		pts = append(pts, geom2d.Point2D{X: v1.X + u*(v2.X-v1.X), Y: v1.Y + u*(v2.Y-v1.Y)})
	}
	if len(pts) != 2 {
		return Segment{}, false
	}
	return orient(Segment{A: pts[0], B: pts[1]}, nx, ny), true
}

// orient enforces winding rule: a probe point offset from
// the segment's midpoint by the 2D normal must lie to the right of A->B;
// if it lies to the left, the endpoints are swapped.
func orient(seg Segment, nx, ny float64) Segment {
	mx, my := (seg.A.X+seg.B.X)/2, (seg.A.Y+seg.B.Y)/2
	probe := geom2d.Point2D{X: mx + nx, Y: my + ny}
	dx, dy := seg.B.X-seg.A.X, seg.B.Y-seg.A.Y
	cross := dx*(probe.Y-seg.A.Y) - dy*(probe.X-seg.A.X)
	if cross < 0 {
		// probe lies to the right already (cross<0 means right-hand side
		// in a standard CCW-positive frame); keep as is.
		return seg
	}
	// Probe is to the left: swap to make it lie to the right.
	return Segment{A: seg.B, B: seg.A}
}

// SliceLayer slices every facet assigned to layer against its plane,
// returning the unstitched segment soup.
func SliceLayer(s *meshstore.Store, facets []meshstore.FacetID, planeZ float64) []Segment {
	segs := make([]Segment, 0, len(facets))
	for _, fid := range facets {
		f := s.Facet(fid)
		if seg, ok := SliceFacet(s, f, planeZ); ok {
			segs = append(segs, seg)
		}
	}
	return segs
}

// LayerPlaneZ returns the Z height of layer i's slicing plane, using
// SnapPlaneZ relative to the mesh's own minZ.
func LayerPlaneZ(baseZ float64, layer int, layerHeight, quantum float64) float64 {
	k := baseZ + float64(layer)*layerHeight + layerHeight/2
	return SnapPlaneZ(k, quantum)
}

