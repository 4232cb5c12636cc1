// Package adhesion implements the Adhesion Builder: skirt,
// brim rings, and raft outline + raft infill layers.
package adhesion

import (
	"math"

	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
	"github.com/MehmetBener/Slicer-Julia/pkg/infillpattern"
)

// Type selects which adhesion aid is active.
type Type int

const (
	NoAdhesion Type = iota
	Brim
	Raft
)

// Params bundles the configuration values the Adhesion Builder reads
//.
type Params struct {
	Type Type
	SkirtOutset float64
	BrimWidth float64
	RaftOutset float64
	Width float64 // extrusion width w
	InfillOverlap float64
}

// Result holds every adhesion structure Build may produce; unused fields
// are left nil.
type Result struct {
	Skirt geom2d.Paths
	BrimRings []geom2d.Paths
	RaftOutline geom2d.Paths
	RaftLayers []geom2d.Paths // index 0 is the raft layer nearest the bed
}

// Build constructs the common skirt plus whichever of Brim/Raft is
// selected, given layer 0's outer paths and (if support is active)
// layer 0's support outline. raftLayerCount is only consulted when
// p.Type == Raft.
func Build(ops geom2d.Ops, layerPaths0, supportOutline0 geom2d.Paths, raftLayerCount int, p Params) Result {
	base := ops.Union(layerPaths0, supportOutline0)

	skirtMask := ops.Offset(base, p.SkirtOutset)
	skirt := ops.ClosePaths(ops.Offset(skirtMask, p.BrimWidth+p.SkirtOutset+p.Width/2))

	res := Result{Skirt: skirt}

	switch p.Type {
	case Brim:
		res.BrimRings = buildBrim(ops, layerPaths0, p.BrimWidth, p.Width)
	case Raft:
		res.RaftOutline, res.RaftLayers = buildRaft(ops, base, raftLayerCount, p)
	}
	return res
}

// buildBrim emits ceil(brim_width/w) adhering rings, ring i being
// offset(layerPaths0, (i+0.5)*w).
func buildBrim(ops geom2d.Ops, layerPaths0 geom2d.Paths, brimWidth, w float64) []geom2d.Paths {
	if brimWidth <= 0 || w <= 0 {
		return nil
	}
	n := int(math.Ceil(brimWidth / w))
	rings := make([]geom2d.Paths, n)
	for i := 0; i < n; i++ {
		rings[i] = ops.ClosePaths(ops.Offset(layerPaths0, (float64(i)+0.5)*w))
	}
	return rings
}

// buildRaft implements raft outline and per-layer infill.
//
// outset_val deliberately double-counts raft_outset, reproducing the
// source slicer's documented quirk: max(skirt_outset+w, raft_outset+w) +
// raft_outset rather than just the max term. Preserved for bit-for-bit
// behavioral parity; see DESIGN.md.
func buildRaft(ops geom2d.Ops, base geom2d.Paths, layerCount int, p Params) (geom2d.Paths, []geom2d.Paths) {
	outsetVal := math.Max(p.SkirtOutset+p.Width, p.RaftOutset+p.Width) + p.RaftOutset
	outline := ops.ClosePaths(ops.Offset(base, outsetVal))
	if layerCount <= 0 {
		return outline, nil
	}

	bounds := ops.PathsBounds(outline)
	clipTo := ops.Offset(outline, p.InfillOverlap-p.Width)

	layers := make([]geom2d.Paths, layerCount)
	for i := 0; i < layerCount; i++ {
		var angle, density float64
		if i == 0 {
			angle, density = 0, 0.75
		} else if i%2 == 1 {
			angle, density = 90, 1.0
		} else {
			angle, density = 0, 1.0
		}
		lines := infillpattern.Generate(infillpattern.Lines, bounds, angle, density, p.Width)
		layers[i] = ops.Clip(lines, clipTo)
	}
	return outline, layers
}
