// Package meshstore implements the Mesh Store: three
// interning tables — points, edges, facets — addressed by integer handles
// rather than pointers, per the arena approach prescribes for
// the mesh's cyclic vertex↔edge↔facet references.
package meshstore

import (
	"fmt"
	"math"
)

// VertexID is a handle into the Store's point arena.
type VertexID int32

// EdgeID is a handle into the Store's edge arena.
type EdgeID int32

// FacetID is a handle into the Store's facet arena.
type FacetID int32

const invalidID = -1

// XYQuantum and ZQuantum set the quantization grid specifies:
// 4 decimal digits for X/Y, a separate (coarser) default for Z.
const (
	XYQuantum = 1e-4
	ZQuantum = 1e-3
)

// Point is an immutable 3D coordinate triple, identified by value after
// quantization.
type Point struct {
	X, Y, Z float64
}

// quantKey is the rounded-to-grid key used to intern points. Two points
// within half a quantum of each other collapse to the same canonical
// Point.
type quantKey struct {
	qx, qy, qz int64
}

func quantize(v, q float64) int64 {
	return int64(math.Floor(v/q + 0.5))
}

func keyOf(x, y, z float64) quantKey {
	return quantKey{
		qx: quantize(x, XYQuantum),
		qy: quantize(y, XYQuantum),
		qz: quantize(z, ZQuantum),
	}
}

// Bounds is an axis-aligned bounding box, tracked incrementally as points
// are interned.
type Bounds struct {
	MinX, MinY, MinZ float64
	MaxX, MaxY, MaxZ float64
	initialized bool
}

func (b *Bounds) extend(p Point) {
	if !b.initialized {
		b.MinX, b.MaxX = p.X, p.X
		b.MinY, b.MaxY = p.Y, p.Y
		b.MinZ, b.MaxZ = p.Z, p.Z
		b.initialized = true
		return
	}
	b.MinX, b.MaxX = math.Min(b.MinX, p.X), math.Max(b.MaxX, p.X)
	b.MinY, b.MaxY = math.Min(b.MinY, p.Y), math.Max(b.MaxY, p.Y)
	b.MinZ, b.MaxZ = math.Min(b.MinZ, p.Z), math.Max(b.MaxZ, p.Z)
}

// pointArena is the Point Cache: quantized-key interning plus running bounds.
type pointArena struct {
	points []Point
	byKey map[quantKey]VertexID
	bounds Bounds
}

func newPointArena() *pointArena {
	return &pointArena{byKey: make(map[quantKey]VertexID)}
}

// AddPoint interns (x, y, z), returning the canonical VertexID. Quantization
// is idempotent: interning the canonical point's own coordinates again
// returns the same ID.
func (a *pointArena) AddPoint(x, y, z float64) VertexID {
	qx := float64(quantize(x, XYQuantum)) * XYQuantum
	qy := float64(quantize(y, XYQuantum)) * XYQuantum
	qz := float64(quantize(z, ZQuantum)) * ZQuantum
	k := keyOf(qx, qy, qz)
	if id, ok := a.byKey[k]; ok {
		return id
	}
	id := VertexID(len(a.points))
	p := Point{X: qx, Y: qy, Z: qz}
	a.points = append(a.points, p)
	a.byKey[k] = id
	a.bounds.extend(p)
	return id
}

// Point returns the canonical coordinates for id.
func (a *pointArena) Point(id VertexID) Point {
	return a.points[id]
}

// QuantizeZ applies the Z-quantization rule in isolation, used by the STL
// reader and the Facet Slicer's plane-snapping step.
func QuantizeZ(z float64) float64 {
	return float64(quantize(z, ZQuantum)) * ZQuantum
}

func (a *pointArena) translate(dx, dy, dz float64) {
	newPoints := make([]Point, 0, len(a.points))
	newByKey := make(map[quantKey]VertexID, len(a.byKey))
	var newBounds Bounds
	for _, p := range a.points {
		np := Point{X: p.X + dx, Y: p.Y + dy, Z: p.Z + dz}
		qx := float64(quantize(np.X, XYQuantum)) * XYQuantum
		qy := float64(quantize(np.Y, XYQuantum)) * XYQuantum
		qz := float64(quantize(np.Z, ZQuantum)) * ZQuantum
		np = Point{X: qx, Y: qy, Z: qz}
		id := VertexID(len(newPoints))
		newPoints = append(newPoints, np)
		newByKey[keyOf(qx, qy, qz)] = id
		newBounds.extend(np)
	}
	a.points = newPoints
	a.byKey = newByKey
	a.bounds = newBounds
}

func (p Point) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", p.X, p.Y, p.Z)
}
