// Package perimeter implements the Perimeter Builder:
// tracing shell_count concentric inward-offset rings from each layer's
// union-reconstructed outer paths, outermost first.
package perimeter

import (
	"math"
	"math/rand"

	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
)

// Shells holds the shell_count rings for one layer, outermost (shell 0)
// first, as produced by Build.
type Shells []geom2d.Paths

// Outermost returns shell 0, or nil if there are no shells.
func (s Shells) Outermost() geom2d.Paths {
	if len(s) == 0 {
		return nil
	}
	return s[0]
}

// Build produces shellCount inward-offset rings from p0 (a layer's
// assembled outer paths).F: shell[k] = offset(p0,
// -(k+0.5)*w). If randomStarts is enabled, shells other than 0 have each
// polyline's starting vertex rotated by a uniform random fraction of its
// length, using rng for reproducibility in tests.
func Build(ops geom2d.Ops, p0 geom2d.Paths, shellCount int, width float64, randomStarts bool, rng *rand.Rand) Shells {
	if shellCount <= 0 || len(p0) == 0 {
		return nil
	}
	shells := make(Shells, shellCount)
	for k := 0; k < shellCount; k++ {
		delta := -(float64(k) + 0.5) * width
		ring := ops.ClosePaths(ops.Offset(p0, delta))
		if randomStarts && k > 0 && rng != nil {
			ring = rotateStarts(ring, rng)
		}
		shells[k] = ring
	}
	return shells
}

// rotateStarts shifts each polyline's starting vertex by floor(r*(n-1))
// positions for a uniform random r in [0,1).F.
func rotateStarts(paths geom2d.Paths, rng *rand.Rand) geom2d.Paths {
	out := make(geom2d.Paths, len(paths))
	for i, p := range paths {
		out[i] = rotatePath(p, rng.Float64())
	}
	return out
}

// rotatePath rotates a closed path (first == last) by floor(r*(n-1))
// positions among its n-1 distinct vertices, re-closing the result.
func rotatePath(p geom2d.Path, r float64) geom2d.Path {
	if len(p) < 2 {
		return p
	}
	body := p[:len(p)-1] // drop the duplicated closing vertex
	n := len(body)
	if n == 0 {
		return p
	}
	shift := int(math.Floor(r * float64(n-1)))
	if shift < 0 {
		shift = 0
	}
	shift %= n
	rotated := make(geom2d.Path, 0, n+1)
	rotated = append(rotated, body[shift:]...)
	rotated = append(rotated, body[:shift]...)
	rotated = append(rotated, rotated[0])
	return rotated
}
