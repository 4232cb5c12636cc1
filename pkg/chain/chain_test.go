package chain

import (
	"testing"

	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
)

func TestChainJoinsTouchingPolylines(t *testing.T) {
	paths := geom2d.Paths{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 1.5, Y: 0}, {X: 2, Y: 0}}, // gap of 0.5mm, within MaxDist
	}
	out := Chain(paths)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1 chained polyline", len(out))
	}
	if len(out[0]) != 4 {
		t.Fatalf("len(out[0]) = %d, want 4 vertices", len(out[0]))
	}
}

func TestChainKeepsDistantPolylinesSeparate(t *testing.T) {
	paths := geom2d.Paths{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 10, Y: 0}, {X: 11, Y: 0}}, // far beyond MaxDist
	}
	out := Chain(paths)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2 separate polylines", len(out))
	}
}

func TestChainReversesToMeetClosestEndpoints(t *testing.T) {
	paths := geom2d.Paths{
		{{X: 0, Y: 0}, {X: 1, Y: 0}},
		{{X: 2, Y: 0}, {X: 1.1, Y: 0}}, // reversed relative to current's direction
	}
	out := Chain(paths)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	last := out[0][len(out[0])-1]
	if last.X != 2 || last.Y != 0 {
		t.Fatalf("expected chained path to end at (2,0) after reversal, got %+v", last)
	}
}

func TestChainEmptyInput(t *testing.T) {
	if out := Chain(nil); out != nil {
		t.Fatalf("expected nil for empty input, got %v", out)
	}
}
