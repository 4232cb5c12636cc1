package geom2d

import (
	clipper "github.com/ctessum/go.clipper"
)

// clipperScale converts between the library's millimeter float
// coordinates and Clipper's fixed-point integer space. notes
// paths are "scaled to fixed-point internally" — 1e4 gives four decimal
// digits of precision, matching meshstore's XY quantum.
const clipperScale = 1e4

// Ops is the 2D boolean/offset geometry interface. The rest of the
// pipeline (perimeter, mask, support, adhesion, infill) depends only on
// this interface, never on Clipper directly, so a different boolean/offset
// backend could be swapped in without touching those packages.
type Ops interface {
	Offset(paths Paths, delta float64) Paths
	Union(a, b Paths) Paths
	Diff(a, b Paths) Paths
	Intersect(a, b Paths) Paths
	Clip(subject, clipPaths Paths) Paths
	OrientPath(p Path, ccw bool) Path
	OrientPaths(ps Paths) Paths
	PathsContain(pt Point2D, ps Paths) bool
	PathsBounds(ps Paths) Bounds2D
	ClosePath(p Path) Path
	ClosePaths(ps Paths) Paths
}

// ClipperOps implements Ops with github.com/ctessum/go.clipper for the
// offset/union/diff/clip primitives and the plain functions in geom2d.go
// for everything else.
type ClipperOps struct{}

// New returns the default Ops implementation.
func New() Ops { return ClipperOps{} }

func toClipperPath(p Path) clipper.Path {
	cp := make(clipper.Path, 0, len(p))
	for _, v := range p {
		cp = append(cp, &clipper.IntPoint{
			X: clipper.CInt(v.X * clipperScale),
			Y: clipper.CInt(v.Y * clipperScale),
		})
	}
	return cp
}

func toClipperPaths(ps Paths) clipper.Paths {
	out := make(clipper.Paths, 0, len(ps))
	for _, p := range ps {
		out = append(out, toClipperPath(p))
	}
	return out
}

func fromClipperPath(cp clipper.Path) Path {
	out := make(Path, 0, len(cp))
	for _, v := range cp {
		out = append(out, Point2D{X: float64(v.X) / clipperScale, Y: float64(v.Y) / clipperScale})
	}
	return ClosePath(out)
}

func fromClipperPaths(cps clipper.Paths) Paths {
	out := make(Paths, 0, len(cps))
	for _, cp := range cps {
		if len(cp) < 3 {
			continue
		}
		out = append(out, fromClipperPath(cp))
	}
	return out
}

// fromClipperPathsOpen converts Clip's line-fragment output without
// forcing each fragment closed: a clipped infill line is not a ring.
func fromClipperPathsOpen(cps clipper.Paths) Paths {
	out := make(Paths, 0, len(cps))
	for _, cp := range cps {
		if len(cp) < 2 {
			continue
		}
		seg := make(Path, 0, len(cp))
		for _, v := range cp {
			seg = append(seg, Point2D{X: float64(v.X) / clipperScale, Y: float64(v.Y) / clipperScale})
		}
		out = append(out, seg)
	}
	return out
}

// Offset inflates (delta > 0) or erodes (delta < 0) paths with square
// joins.M.
func (ClipperOps) Offset(paths Paths, delta float64) Paths {
	if len(paths) == 0 {
		return nil
	}
	co := clipper.NewClipperOffset()
	co.AddPaths(toClipperPaths(paths), clipper.JtSquare, clipper.EtClosedPolygon)
	solution := co.Execute(delta * clipperScale)
	return fromClipperPaths(solution)
}

func (ClipperOps) boolOp(op clipper.ClipType, a, b Paths) Paths {
	c := clipper.NewClipper(clipper.IoNone)
	if len(a) > 0 {
		c.AddPaths(toClipperPaths(a), clipper.PtSubject, true)
	}
	if len(b) > 0 {
		c.AddPaths(toClipperPaths(b), clipper.PtClip, true)
	}
	solution, ok := c.Execute2(op, clipper.PftEvenOdd, clipper.PftEvenOdd)
	if !ok {
		return nil
	}
	return fromClipperPaths(solution)
}

// Union returns the even-odd union of a and b.
func (o ClipperOps) Union(a, b Paths) Paths { return o.boolOp(clipper.CtUnion, a, b) }

// Diff returns a minus b under the even-odd fill rule.
func (o ClipperOps) Diff(a, b Paths) Paths { return o.boolOp(clipper.CtDifference, a, b) }

// Intersect returns the closed-ring intersection of a and b — used
// whenever both operands are regions (e.g. clipping a solid mask to an
// innermost perimeter), as distinct from Clip's open-polyline semantics.
func (o ClipperOps) Intersect(a, b Paths) Paths { return o.boolOp(clipper.CtIntersection, a, b) }

// Clip intersects subject against clipPaths. subject may be an open
// polyline set; Clipper's polytree output is flattened back to Paths.
func (o ClipperOps) Clip(subject, clipPaths Paths) Paths {
	c := clipper.NewClipper(clipper.IoNone)
	c.AddPaths(toClipperPaths(subject), clipper.PtSubject, false)
	c.AddPaths(toClipperPaths(clipPaths), clipper.PtClip, true)
	tree, ok := c.Execute2(clipper.CtIntersection, clipper.PftEvenOdd, clipper.PftEvenOdd)
	if !ok {
		return nil
	}
	return fromClipperPathsOpen(tree)
}

func (ClipperOps) OrientPath(p Path, ccw bool) Path { return OrientPath(p, ccw) }
func (ClipperOps) OrientPaths(ps Paths) Paths { return OrientPaths(ps) }
func (ClipperOps) PathsContain(pt Point2D, ps Paths) bool { return PathsContain(pt, ps) }
func (ClipperOps) PathsBounds(ps Paths) Bounds2D { return PathsBounds(ps) }
func (ClipperOps) ClosePath(p Path) Path { return ClosePath(p) }
func (ClipperOps) ClosePaths(ps Paths) Paths { return ClosePaths(ps) }
