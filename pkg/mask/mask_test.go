package mask

import (
	"testing"

	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
)

func square(side float64) geom2d.Paths {
	return geom2d.Paths{geom2d.ClosePath(geom2d.Path{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	})}
}

func TestBuildTopAndBottomOfStack(t *testing.T) {
	ops := geom2d.New()
	perim0 := []geom2d.Paths{square(10), square(10), square(10)}
	layers := Build(ops, perim0)

	if len(layers) != 3 {
		t.Fatalf("len(layers) = %d, want 3", len(layers))
	}
	// Identical squares at every layer: top/bot masks of interior layers
	// should be empty since diff(same, same) == empty.
	if len(layers[1].Top) != 0 {
		t.Fatalf("interior layer's top mask should be empty for an identical stack, got %v", layers[1].Top)
	}
	// Top layer has no neighbor above: top_mask == perim0 itself (diff of empty set is identity-ish).
	if len(layers[2].Top) == 0 {
		t.Fatalf("top layer's top mask should equal its own perimeter when there is no layer above")
	}
	if len(layers[0].Bot) == 0 {
		t.Fatalf("bottom layer's bot mask should equal its own perimeter when there is no layer below")
	}
}

func TestBuildSingleLayer(t *testing.T) {
	ops := geom2d.New()
	layers := Build(ops, []geom2d.Paths{square(10)})
	if len(layers) != 1 {
		t.Fatalf("len(layers) = %d, want 1", len(layers))
	}
	if len(layers[0].Top) == 0 || len(layers[0].Bot) == 0 {
		t.Fatalf("a lone layer has no neighbors on either side, so top and bot masks equal its own perimeter")
	}
}
