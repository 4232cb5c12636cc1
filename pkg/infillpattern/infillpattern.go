// Package infillpattern generates the tiled straight-line families this module
// §4.J describes: lines spanning a bounding rectangle, rotated by
// base_ang + rot for each rot in a pattern's rotation set, centered on
// the snapped midpoint of the bounds. Infill and Support both clip this
// raw line soup to a mask with the geom2d.Ops.Clip primitive; this
// package only produces the unclipped lines.
package infillpattern

import (
	"math"

	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
)

// Pattern selects the sparse infill tiling
// enum.
type Pattern int

const (
	Lines Pattern = iota
	Triangles
	Grid
	Hexagons
)

// rotationSet returns the additional rotation angles (degrees) unioned
// on top of a pattern's base angle.J.
func rotationSet(p Pattern) []float64 {
	switch p {
	case Triangles:
		return []float64{0, 60, 120}
	case Grid:
		return []float64{0, 90}
	case Hexagons:
		return []float64{0, 60, 120}
	default: // Lines
		return []float64{0}
	}
}

// spacing computes the pattern-specific spacing formula for a
// given extrusion width w and density d (0 < d <= 1). Hexagons returns
// its column spacing; callers needing the row spacing use HexRowSpacing.
func spacing(p Pattern, w, d float64) float64 {
	if d <= 0 {
		return math.Inf(1)
	}
	switch p {
	case Triangles:
		return 3 * w / d
	case Grid:
		return 2 * w / d
	case Hexagons:
		return (4.0 / 3.0) * w / d
	default: // Lines
		return w / d
	}
}

// HexRowSpacing returns the Hexagons pattern's row spacing given its
// column spacing.J: column * 3 / sin(60deg).
func HexRowSpacing(column float64) float64 {
	return column * 3 / math.Sin(60*math.Pi/180)
}

// Generate produces the raw (unclipped) line soup for pattern at base
// angle baseAngleDeg, density d, width w, over bounds.
func Generate(pattern Pattern, bounds geom2d.Bounds2D, baseAngleDeg, d, w float64) geom2d.Paths {
	if bounds.IsEmpty() {
		return nil
	}
	column := spacing(pattern, w, d)
	if math.IsInf(column, 1) || column <= 0 {
		return nil
	}
	var out geom2d.Paths
	for _, rot := range rotationSet(pattern) {
		sp := column
		if pattern == Hexagons && rot == 0 {
			sp = HexRowSpacing(column)
		}
		out = append(out, linesAtAngle(bounds, baseAngleDeg+rot, sp)...)
	}
	return out
}

// linesAtAngle tiles parallel, bounds-spanning line segments rotated by
// angleDeg, spaced sp apart, centered on bounds' midpoint snapped to the
// spacing grid.
func linesAtAngle(bounds geom2d.Bounds2D, angleDeg, sp float64) geom2d.Paths {
	c := bounds.Center()
	cx := math.Round(c.X/sp) * sp
	cy := math.Round(c.Y/sp) * sp

	diag := math.Hypot(bounds.Width(), bounds.Height()) + 2*sp
	rad := angleDeg * math.Pi / 180
	dirX, dirY := math.Cos(rad), math.Sin(rad)
	normX, normY := -math.Sin(rad), math.Cos(rad)

	n := int(math.Ceil(diag/(2*sp))) + 1

	var out geom2d.Paths
	for i := -n; i <= n; i++ {
		ox := cx + float64(i)*sp*normX
		oy := cy + float64(i)*sp*normY
		ax := ox - diag/2*dirX
		ay := oy - diag/2*dirY
		bx := ox + diag/2*dirX
		by := oy + diag/2*dirY
		out = append(out, geom2d.Path{{X: ax, Y: ay}, {X: bx, Y: by}})
	}
	return out
}
