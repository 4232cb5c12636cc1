package geom2d

import "testing"

func TestClipperOffsetInward(t *testing.T) {
	ops := New()
	outer := Paths{square(0, 0, 10)}
	shrunk := ops.Offset(outer, -1)
	if len(shrunk) != 1 {
		t.Fatalf("Offset(-1) on a 10x10 square produced %d rings, want 1", len(shrunk))
	}
	b := PathsBounds(shrunk)
	if b.Width() <= 0 || b.Width() >= 10 {
		t.Fatalf("Offset(-1) bounds width = %f, want in (0, 10)", b.Width())
	}
}

func TestClipperUnionDisjoint(t *testing.T) {
	ops := New()
	a := Paths{square(0, 0, 5)}
	b := Paths{square(20, 0, 5)}
	u := ops.Union(a, b)
	if len(u) != 2 {
		t.Fatalf("Union of disjoint squares produced %d rings, want 2", len(u))
	}
}

func TestClipperDiffRemovesOverlap(t *testing.T) {
	ops := New()
	a := Paths{square(0, 0, 10)}
	b := Paths{square(0, 0, 10)}
	d := ops.Diff(a, b)
	if len(d) != 0 {
		t.Fatalf("Diff of identical squares produced %d rings, want 0", len(d))
	}
}
