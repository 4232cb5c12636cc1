// Package mask implements the Mask Builder: the top/bottom
// solid-region masks derived from differencing a layer's outermost shell
// against its neighbors' outermost shells.
package mask

import "github.com/MehmetBener/Slicer-Julia/pkg/geom2d"

// Layer is one layer's top and bottom solid masks.
type Layer struct {
	Top geom2d.Paths
	Bot geom2d.Paths
}

// Build computes top_mask[i] = diff(perim0[i], perim0[i+1]) and
// bot_mask[i] = diff(perim0[i], perim0[i-1]) for every layer, treating
// missing neighbors at the top and bottom of the stack as empty, per
// perim0 is indexed by layer, one outermost-shell path set
// per layer.
func Build(ops geom2d.Ops, perim0 []geom2d.Paths) []Layer {
	out := make([]Layer, len(perim0))
	for i := range perim0 {
		var above, below geom2d.Paths
		if i+1 < len(perim0) {
			above = perim0[i+1]
		}
		if i-1 >= 0 {
			below = perim0[i-1]
		}
		out[i] = Layer{
			Top: ops.Diff(perim0[i], above),
			Bot: ops.Diff(perim0[i], below),
		}
	}
	return out
}
