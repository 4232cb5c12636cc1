package adhesion

import (
	"testing"

	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
)

func square(side float64) geom2d.Paths {
	return geom2d.Paths{geom2d.ClosePath(geom2d.Path{
		{X: 0, Y: 0}, {X: side, Y: 0}, {X: side, Y: side}, {X: 0, Y: side},
	})}
}

func TestBuildAlwaysProducesSkirt(t *testing.T) {
	ops := geom2d.New()
	res := Build(ops, square(10), nil, 0, Params{Type: NoAdhesion, SkirtOutset: 2, Width: 0.4})
	if len(res.Skirt) == 0 {
		t.Fatalf("expected a non-empty skirt regardless of adhesion type")
	}
}

func TestBuildBrimRingCount(t *testing.T) {
	ops := geom2d.New()
	res := Build(ops, square(10), nil, 0, Params{Type: Brim, SkirtOutset: 2, BrimWidth: 2, Width: 0.5})
	if len(res.BrimRings) != 4 { // ceil(2/0.5) == 4
		t.Fatalf("len(BrimRings) = %d, want 4", len(res.BrimRings))
	}
}

func TestBuildRaftProducesOutlineAndLayers(t *testing.T) {
	ops := geom2d.New()
	res := Build(ops, square(10), nil, 3, Params{Type: Raft, SkirtOutset: 2, RaftOutset: 3, Width: 0.4, InfillOverlap: 0.2})
	if len(res.RaftOutline) == 0 {
		t.Fatalf("expected a non-empty raft outline")
	}
	if len(res.RaftLayers) != 3 {
		t.Fatalf("len(RaftLayers) = %d, want 3", len(res.RaftLayers))
	}
}

func TestBuildNoAdhesionSkipsBrimAndRaft(t *testing.T) {
	ops := geom2d.New()
	res := Build(ops, square(10), nil, 0, Params{Type: NoAdhesion, SkirtOutset: 2, Width: 0.4})
	if res.BrimRings != nil || res.RaftOutline != nil || res.RaftLayers != nil {
		t.Fatalf("expected brim/raft outputs to stay nil for NoAdhesion")
	}
}
