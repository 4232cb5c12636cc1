// Package support implements the Support Builder:
// detecting overhanging facets, accumulating a top-down drop mask,
// expanding a bottom-up printed-shadow mask, refining the overhang
// region, and filling it with outline and sparse infill.
package support

import (
	"math"

	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
	"github.com/MehmetBener/Slicer-Julia/pkg/infillpattern"
	"github.com/MehmetBener/Slicer-Julia/pkg/meshstore"
)

// Type selects the support strategy.
type Type int

const (
	None Type = iota
	Everywhere
	External
)

// Params bundles the tunables the Support Builder needs from the
// configuration.
type Params struct {
	Type Type
	OverhangAngle float64 // degrees; facets steeper than this get support
	Outset float64 // mm; shadow-mask outward offset
	Width float64 // mm; extrusion width w
	Density float64 // 0..1; infill density
	InfillOverlap float64 // mm
}

// Layer is one layer's support outline and infill, possibly both empty.
type Layer struct {
	Outline geom2d.Paths
	Infill geom2d.Paths
}

// Build runs the full Support Builder pipeline over numLayers layers of
// height h, given the mesh's facets and each layer's already-assembled
// outer paths (layerPaths[i] corresponds to layer i; may be nil for
// layers outside the mesh's footprint).
func Build(ops geom2d.Ops, s *meshstore.Store, layerPaths []geom2d.Paths, numLayers int, h float64, p Params) []Layer {
	out := make([]Layer, numLayers)
	if p.Type == None || numLayers == 0 {
		return out
	}

	base := s.Bounds().MinZ
	facetsByLayer := indexFacetsByLayer(s, numLayers, h, base)
	dropPaths := accumulateDropMasks(ops, s, facetsByLayer, numLayers, p.OverhangAngle)
	shadowMasks := expandShadowMasks(ops, layerPaths, numLayers, p)

	for L := 0; L < numLayers; L++ {
		overhang := ops.Diff(dropPaths[L], shadowMasks[L])
		overhang = refineOverhang(ops, overhang, p.Width)
		if len(overhang) == 0 {
			continue
		}
		outline := ops.Offset(overhang, -p.Width/2)
		bounds := ops.PathsBounds(outline)
		lines := infillpattern.Generate(infillpattern.Lines, bounds, 0, p.Density, p.Width)
		clipTo := ops.Offset(outline, p.InfillOverlap-p.Width)
		infill := ops.Clip(lines, clipTo)
		out[L] = Layer{Outline: outline, Infill: infill}
	}
	return out
}

// indexFacetsByLayer assigns each facet to every layer in
// [ceil((minz-base)/h), floor((maxz-base)/h)], measured from the mesh's
// own minZ the same way Store.LayerRange does, so a facet's layer bucket
// lines up with layerPaths[]'s 0-based indexing regardless of where the
// mesh sits in world Z.
func indexFacetsByLayer(s *meshstore.Store, numLayers int, h, base float64) [][]meshstore.FacetID {
	byLayer := make([][]meshstore.FacetID, numLayers)
	for i := 0; i < s.NumFacets(); i++ {
		id := meshstore.FacetID(i)
		f := s.Facet(id)
		minZ, maxZ := s.FacetZRange(f)
		lo := int(math.Ceil((minZ - base) / h))
		hi := int(math.Floor((maxZ - base) / h))
		if lo < 0 {
			lo = 0
		}
		if hi >= numLayers {
			hi = numLayers - 1
		}
		for L := lo; L <= hi; L++ {
			byLayer[L] = append(byLayer[L], id)
		}
	}
	return byLayer
}

// overhangAngle computes 90deg - angle_between(normal, (0,0,-1)), per
// step 2.
func overhangAngle(n meshstore.Normal) float64 {
	l := math.Sqrt(n.X*n.X + n.Y*n.Y + n.Z*n.Z)
	if l < 1e-12 {
		return 0
	}
	cos := -n.Z / l
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	angleBetween := math.Acos(cos) * 180 / math.Pi
	return 90 - angleBetween
}

// footprint projects a facet's three vertices onto the XY plane as a
// closed triangular path.
func footprint(s *meshstore.Store, f meshstore.Facet) geom2d.Paths {
	p1, p2, p3 := s.FacetVertices(f)
	tri := geom2d.Path{
		{X: p1.X, Y: p1.Y},
		{X: p2.X, Y: p2.Y},
		{X: p3.X, Y: p3.Y},
	}
	return geom2d.Paths{geom2d.ClosePath(tri)}
}

// accumulateDropMasks implements step 2: iterate layers
// top-down, maintaining a running drop_mask unioned with overhanging
// facet footprints and diffed by non-overhanging ones.
func accumulateDropMasks(ops geom2d.Ops, s *meshstore.Store, facetsByLayer [][]meshstore.FacetID, numLayers int, thresholdDeg float64) []geom2d.Paths {
	dropPaths := make([]geom2d.Paths, numLayers)
	var dropMask geom2d.Paths
	for L := numLayers - 1; L >= 0; L-- {
		var adds, diffs geom2d.Paths
		for _, fid := range facetsByLayer[L] {
			f := s.Facet(fid)
			fp := footprint(s, f)
			if overhangAngle(f.N) >= thresholdDeg {
				adds = append(adds, fp...)
			} else {
				diffs = append(diffs, fp...)
			}
		}
		dropMask = ops.Union(dropMask, adds)
		dropMask = ops.Diff(dropMask, diffs)
		dropPaths[L] = dropMask
	}
	return dropPaths
}

// expandShadowMasks implements step 3: for each layer L,
// the printed shadow is offset(layerPaths[L], outset) unioned with
// layerPaths[L+1], plus layerPaths[L-1] in Everywhere mode, or unioned
// into a running cumulative mask in External mode.
func expandShadowMasks(ops geom2d.Ops, layerPaths []geom2d.Paths, numLayers int, p Params) []geom2d.Paths {
	shadow := make([]geom2d.Paths, numLayers)
	var cumulative geom2d.Paths
	for L := 0; L < numLayers; L++ {
		m := ops.Offset(layerPaths[L], p.Outset)
		if L+1 < numLayers {
			m = ops.Union(m, layerPaths[L+1])
		}
		switch p.Type {
		case Everywhere:
			if L-1 >= 0 {
				m = ops.Union(m, layerPaths[L-1])
			}
		case External:
			cumulative = ops.Union(cumulative, m)
			m = cumulative
		}
		shadow[L] = m
	}
	return shadow
}

// refineOverhang applies the open-close morphology offset(+w) offset(-2w)
// offset(+w) to remove slivers.H step 4.
func refineOverhang(ops geom2d.Ops, overhang geom2d.Paths, w float64) geom2d.Paths {
	if len(overhang) == 0 {
		return nil
	}
	o := ops.Offset(overhang, w)
	o = ops.Offset(o, -2*w)
	o = ops.Offset(o, w)
	return o
}
