// Package chain implements the Path Chainer: joining
// polylines whose endpoints lie within maxdist of each other into longer
// chained extrusion paths, per (layer, nozzle) bucket.
package chain

import (
	"math"

	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
)

// MaxDist is the maximum endpoint gap, in millimeters, that the chainer
// will bridge.
const MaxDist = 2.0

// Chain repeatedly extends the current open polyline by splicing in the
// nearest remaining polyline whose closest endpoint pairing is within
// MaxDist, reversing it if needed so the endpoints meet; when no
// remaining polyline qualifies, the current polyline is committed and a
// new one starts from the next available polyline. Candidates are
// identified by position index into paths, never by value identity, so
// the fix flags (the original's object-identity endpoint
// comparison) does not resurface here.
func Chain(paths geom2d.Paths) geom2d.Paths {
	n := len(paths)
	if n == 0 {
		return nil
	}
	used := make([]bool, n)

	var out geom2d.Paths
	for start := 0; start < n; start++ {
		if used[start] {
			continue
		}
		used[start] = true
		current := append(geom2d.Path(nil), paths[start]...)

		for {
			bestIdx := -1
			bestDist := MaxDist
			bestReverseCurrent := false
			bestReverseOther := false

			for i := 0; i < n; i++ {
				if used[i] {
					continue
				}
				for _, pairing := range endpointPairings(current, paths[i]) {
					if pairing.dist <= bestDist {
						bestDist = pairing.dist
						bestIdx = i
						bestReverseCurrent = pairing.reverseCurrent
						bestReverseOther = pairing.reverseOther
					}
				}
			}

			if bestIdx == -1 {
				break
			}
			used[bestIdx] = true
			current = splice(current, paths[bestIdx], bestReverseCurrent, bestReverseOther)
		}

		out = append(out, current)
	}
	return out
}

type pairing struct {
	dist float64
	reverseCurrent, reverseOther bool
}

// endpointPairings evaluates the four front/back endpoint combinations
// between current and other.K.
func endpointPairings(current, other geom2d.Path) []pairing {
	if len(current) == 0 || len(other) == 0 {
		return nil
	}
	cFront, cBack := current[0], current[len(current)-1]
	oFront, oBack := other[0], other[len(other)-1]

	return []pairing{
		{dist: dist(cBack, oFront), reverseCurrent: false, reverseOther: false},
		{dist: dist(cBack, oBack), reverseCurrent: false, reverseOther: true},
		{dist: dist(cFront, oFront), reverseCurrent: true, reverseOther: false},
		{dist: dist(cFront, oBack), reverseCurrent: true, reverseOther: true},
	}
}

func dist(a, b geom2d.Point2D) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

func reversePath(p geom2d.Path) geom2d.Path {
	out := make(geom2d.Path, len(p))
	for i, v := range p {
		out[len(p)-1-i] = v
	}
	return out
}

// splice joins other onto current, reversing either as indicated so the
// matched endpoints become adjacent, preserving extrusion direction
// within each original polyline otherwise.
func splice(current, other geom2d.Path, reverseCurrent, reverseOther bool) geom2d.Path {
	c := current
	if reverseCurrent {
		c = reversePath(current)
	}
	o := other
	if reverseOther {
		o = reversePath(other)
	}
	return append(c, o...)
}
