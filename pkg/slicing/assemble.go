package slicing

import (
	"math"

	"github.com/MehmetBener/Slicer-Julia/pkg/diag"
	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
)

// endpointQuantum is the grid size used to hash segment endpoints for
// stitching ; coarser than meshstore's point quantum since
// slicing-plane intersections carry their own rounding error.
const endpointQuantum = 1e-3

type endpointKey struct {
	x, y int64
}

func keyOf(p geom2d.Point2D) endpointKey {
	return endpointKey{
		x: int64(math.Round(p.X / endpointQuantum)),
		y: int64(math.Round(p.Y / endpointQuantum)),
	}
}

// Assemble stitches a layer's unordered Segment soup into closed,
// CCW-outer/CW-hole oriented LayerPaths.E. Segments whose
// far endpoint never finds a match become "dead paths": reported as
// diagnostics and dropped rather than force-closed, since forcing closure
// would fabricate geometry that was never on the mesh surface.
func Assemble(segs []Segment, layer int, sink *diag.Sink) geom2d.Paths {
	if len(segs) == 0 {
		return nil
	}

	byStart := make(map[endpointKey][]int)
	used := make([]bool, len(segs))
	for i, s := range segs {
		byStart[keyOf(s.A)] = append(byStart[keyOf(s.A)], i)
	}

	takeNext := func(cur geom2d.Point2D) (Segment, bool) {
		for _, idx := range byStart[keyOf(cur)] {
			if !used[idx] {
				used[idx] = true
				return segs[idx], true
			}
		}
		return Segment{}, false
	}

	var paths geom2d.Paths
	deadPaths := 0

	for start := 0; start < len(segs); start++ {
		if used[start] {
			continue
		}
		used[start] = true
		path := geom2d.Path{segs[start].A, segs[start].B}
		cur := segs[start].B
		closed := false

		for steps := 0; steps < len(segs)+1; steps++ {
			if keyOf(cur) == keyOf(path[0]) {
				closed = true
				break
			}
			next, ok := takeNext(cur)
			if !ok {
				break
			}
			path = append(path, next.B)
			cur = next.B
		}

		if !closed {
			deadPaths++
			sink.Addf(diag.KindIncompletePoly, "slicing.Assemble", layer,
				"dead path with %d vertices could not be closed", len(path))
			continue
		}
		paths = append(paths, path)
	}

	if deadPaths > 0 {
		sink.Addf(diag.KindIncompletePoly, "slicing.Assemble", layer,
			"%d dead path(s) dropped out of %d total segments", deadPaths, len(segs))
	}

	return geom2d.OrientPaths(paths)
}
