// Package geom2d is the Geometry Library Interface of / §6:
// offset, union, diff, clip, orient, and bounds over closed 2D path sets
// (outer loops CCW, holes CW). this module treats this as an external
// collaborator; here the boolean/offset primitives are backed by
// github.com/ctessum/go.clipper (a real dependency grounded on
// other_examples/ctessum-go.clipper__use_xyz.go, the Clipper polygon
// library's Go port), while the purely combinatorial helpers — orient,
// point-in-polygon, bounds, close — are plain functions with no external
// dependency, since nothing in the retrieved pack offers those at a finer
// grain than Clipper's own boolean ops already require.
package geom2d

import "math"

// Point2D is a single (x, y) vertex.
type Point2D struct {
	X, Y float64
}

// Path is an ordered list of vertices. A closed Path has Path[0] ==
// Path[len-1].
type Path []Point2D

// Paths is a set of rings: outer loops wind CCW, holes wind CW.
type Paths []Path

// Bounds2D is an axis-aligned bounding rectangle.
type Bounds2D struct {
	MinX, MinY, MaxX, MaxY float64
}

// IsEmpty reports whether the bounds were never extended.
func (b Bounds2D) IsEmpty() bool { return b.MinX > b.MaxX || b.MinY > b.MaxY }

// Width and Height of the bounds.
func (b Bounds2D) Width() float64 { return b.MaxX - b.MinX }
func (b Bounds2D) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the bounds.
func (b Bounds2D) Center() Point2D {
	return Point2D{(b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2}
}

// approxEqual compares two points to within 1e-4, the same tolerance
// meshstore uses for XY quantization.
func approxEqual(a, b Point2D) bool {
	return math.Abs(a.X-b.X) < 1e-4 && math.Abs(a.Y-b.Y) < 1e-4
}

// ClosePath ensures p's first and last vertices coincide, appending a
// closing copy of p[0] if needed. Idempotent.
func ClosePath(p Path) Path {
	if len(p) == 0 {
		return p
	}
	if approxEqual(p[0], p[len(p)-1]) {
		return p
	}
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = p[0]
	return out
}

// ClosePaths applies ClosePath to every ring.
func ClosePaths(ps Paths) Paths {
	out := make(Paths, len(ps))
	for i, p := range ps {
		out[i] = ClosePath(p)
	}
	return out
}

// SignedArea computes the shoelace-formula area; positive for CCW
// winding, negative for CW.
func SignedArea(p Path) float64 {
	if len(p) < 3 {
		return 0
	}
	var sum float64
	n := len(p)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += p[i].X*p[j].Y - p[j].X*p[i].Y
	}
	return sum / 2
}

// IsCCW reports whether p winds counter-clockwise.
func IsCCW(p Path) bool { return SignedArea(p) > 0 }

func reversed(p Path) Path {
	out := make(Path, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// OrientPath reorients p to wind CCW if ccw is true, CW otherwise.
func OrientPath(p Path, ccw bool) Path {
	if IsCCW(p) == ccw {
		return p
	}
	return reversed(p)
}

// containsPoint performs an odd/even point-in-polygon test (ray casting),
// ignoring the closing duplicate vertex if present.
func containsPoint(pt Point2D, ring Path) bool {
	n := len(ring)
	if n > 1 && approxEqual(ring[0], ring[n-1]) {
		n--
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := ring[i], ring[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			xIntersect := a.X + (pt.Y-a.Y)/(b.Y-a.Y)*(b.X-a.X)
			if pt.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}

// PathsContain implements paths_contain: an odd winding
// count over every ring in paths (so a point inside an outer loop but
// also inside a hole ring counts as outside, matching even-odd fill).
func PathsContain(pt Point2D, paths Paths) bool {
	count := 0
	for _, ring := range paths {
		if containsPoint(pt, ring) {
			count++
		}
	}
	return count%2 == 1
}

// pathContainsPath reports whether inner's first vertex lies inside
// outer, used by OrientPaths to detect hole/outer relationships.
func pathContainsPath(outer, inner Path) bool {
	if len(inner) == 0 {
		return false
	}
	return containsPoint(inner[0], outer)
}

// OrientPaths reorients every ring in ps: a ring not contained by any
// other ring is an outer loop and winds CCW; a ring contained by another
// ring is a hole and winds CW.
//
// flags the source algorithm's orient-by-containment step as
// possibly buggy: it tests containment with "!paths_contain(...)" against
// the list still being drained, so orientation depends on iteration
// order. This implementation resolves that Open Question by testing each
// ring for containment against the full set of *other* rings (computed
// once, before any ring is reoriented), not against whatever remains in a
// mutating worklist.
func OrientPaths(ps Paths) Paths {
	out := make(Paths, len(ps))
	for i, p := range ps {
		isHole := false
		for j, other := range ps {
			if i == j {
				continue
			}
			if pathContainsPath(other, p) {
				isHole = true
				break
			}
		}
		out[i] = OrientPath(p, !isHole)
	}
	return out
}

// PathsBounds computes the axis-aligned bounding rectangle of every vertex
// across every ring. Returns an empty Bounds2D (MinX > MaxX) for an empty
// path set, matching EmptyGeometry treatment.
func PathsBounds(paths Paths) Bounds2D {
	b := Bounds2D{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
	for _, ring := range paths {
		for _, v := range ring {
			b.MinX = math.Min(b.MinX, v.X)
			b.MinY = math.Min(b.MinY, v.Y)
			b.MaxX = math.Max(b.MaxX, v.X)
			b.MaxY = math.Max(b.MaxY, v.Y)
		}
	}
	return b
}
