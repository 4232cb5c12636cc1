// Package infill implements the Infill Builder: solid
// mask/infill from the Mask Builder's top/bottom ranges and sparse
// infill over the remaining area, per pattern.
package infill

import (
	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
	"github.com/MehmetBener/Slicer-Julia/pkg/infillpattern"
	"github.com/MehmetBener/Slicer-Julia/pkg/mask"
	"github.com/MehmetBener/Slicer-Julia/pkg/perimeter"
)

// Params bundles the configuration values the Infill Builder reads
//.
type Params struct {
	TopLayers int
	BotLayers int
	Density float64
	Width float64
	InfillOverlap float64
	Pattern infillpattern.Pattern
}

// Layer is one layer's solid and sparse infill line sets.
type Layer struct {
	Solid geom2d.Paths
	Sparse geom2d.Paths
}

// Build computes solid and sparse infill for every layer
// §4.J. masks is the Mask Builder's per-layer top/bottom output; shells
// is the Perimeter Builder's per-layer shell rings (innermost shell is
// shells[L][len(shells[L])-1]).
func Build(ops geom2d.Ops, masks []mask.Layer, shells []perimeter.Shells, p Params) []Layer {
	n := len(masks)
	out := make([]Layer, n)
	for L := 0; L < n; L++ {
		innermost := innermostShell(shells[L])

		solidMask := solidUnionOverRange(ops, masks, L, p)
		solidMask = ops.Intersect(solidMask, innermost)

		angle := -45.0
		if L%2 == 0 {
			angle = 45
		}
		bounds := ops.PathsBounds(innermost)
		solidLines := infillpattern.Generate(infillpattern.Lines, bounds, angle, 1.0, p.Width)
		solidClipTo := ops.Offset(solidMask, p.InfillOverlap-p.Width)
		solidInfill := ops.Clip(solidLines, solidClipTo)

		sparseInfill := buildSparse(ops, innermost, solidMask, L, p, bounds)

		out[L] = Layer{Solid: solidInfill, Sparse: sparseInfill}
	}
	return out
}

func innermostShell(s perimeter.Shells) geom2d.Paths {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

// solidUnionOverRange unions top_mask[i] for i in top_range(L) and
// bot_mask[i] for i in bot_range(L).J's range formulas.
func solidUnionOverRange(ops geom2d.Ops, masks []mask.Layer, L int, p Params) geom2d.Paths {
	lMax := len(masks) - 1
	var acc geom2d.Paths

	topHi := L + p.TopLayers - 1
	if topHi > lMax {
		topHi = lMax
	}
	for i := L; i <= topHi; i++ {
		acc = ops.Union(acc, masks[i].Top)
	}

	botLo := L - p.BotLayers + 1
	if botLo < 0 {
		botLo = 0
	}
	for i := botLo; i <= L; i++ {
		acc = ops.Union(acc, masks[i].Bot)
	}
	return acc
}

// buildSparse implements sparse infill: mask =
// diff(offset(innermost_perim, infill_overlap-infill_w), solid_mask);
// density >= 0.99 promotes any pattern to Lines; density <= 0 yields
// empty sparse infill.
func buildSparse(ops geom2d.Ops, innermost, solidMask geom2d.Paths, L int, p Params, bounds geom2d.Bounds2D) geom2d.Paths {
	if p.Density <= 0 {
		return nil
	}
	sparseMask := ops.Diff(ops.Offset(innermost, p.InfillOverlap-p.Width), solidMask)
	if len(sparseMask) == 0 {
		return nil
	}

	pattern := p.Pattern
	if p.Density >= 0.99 {
		pattern = infillpattern.Lines
	}

	var angle float64
	switch pattern {
	case infillpattern.Triangles:
		angle = 60 * float64(L%3)
	case infillpattern.Grid:
		if L%2 == 0 {
			angle = 135
		} else {
			angle = 45
		}
	case infillpattern.Hexagons:
		angle = 120 * float64(L%3)
	default: // Lines
		if L%2 == 0 {
			angle = 135
		} else {
			angle = 45
		}
	}

	lines := infillpattern.Generate(pattern, bounds, angle, p.Density, p.Width)
	return ops.Clip(lines, sparseMask)
}
