package stlio

import (
	"bufio"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/MehmetBener/Slicer-Julia/pkg/diag"
	"github.com/MehmetBener/Slicer-Julia/pkg/meshstore"
)

// collinearToleranceRad is the angle, in radians, below which the two
// edges emanating from a facet's second vertex are treated as collinear
//.
const collinearToleranceRad = 1e-8

// parseASCII implements the ASCII grammar is a whitespace
// tokens, "facet normal nx ny nz / outer loop / vertex x y z (x3) /
// endloop / endfacet", terminated by "endsolid" or true EOF. A malformed
// facet block is skipped silently by scanning forward to the next "facet"
// keyword (StlMalformedLine).
func parseASCII(br *bufio.Reader, s *meshstore.Store, sink *diag.Sink) error {
	sc := bufio.NewScanner(br)
	sc.Buffer(make([]byte, 64*1024), 1<<20)
	sc.Split(bufio.ScanLines)

	// Consume the "solid <name>" header line.
	if sc.Scan() {
		// nothing to validate; name is informational only.
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch strings.ToLower(fields[0]) {
		case "endsolid":
			return nil
		case "facet":
			if err := parseFacetBlock(sc, fields, s, sink); err != nil {
				if err == errMalformedFacet {
					sink.Addf(diag.KindMalformedLine, "stlio.parseASCII", -1, "malformed facet block near %q", line)
					continue
				}
				return err
			}
		default:
			// Unexpected top-level token outside a facet block; skip it.
			continue
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("stlio: ascii scan: %w", err)
	}
	return nil // clean EOF StlEndOfFile
}

var errMalformedFacet = fmt.Errorf("malformed facet block")

// parseFacetBlock consumes one "facet normal... outer loop vertex x3
// endloop endfacet" block, given the already-scanned "facet normal..."
// fields.
func parseFacetBlock(sc *bufio.Scanner, facetFields []string, s *meshstore.Store, sink *diag.Sink) error {
	if len(facetFields) < 5 || strings.ToLower(facetFields[1]) != "normal" {
		return errMalformedFacet
	}
	nx, e1 := strconv.ParseFloat(facetFields[2], 64)
	ny, e2 := strconv.ParseFloat(facetFields[3], 64)
	nz, e3 := strconv.ParseFloat(facetFields[4], 64)
	if e1 != nil || e2 != nil || e3 != nil {
		return errMalformedFacet
	}

	if !sc.Scan() {
		return errMalformedFacet
	}
	if !strings.EqualFold(strings.TrimSpace(sc.Text()), "outer loop") {
		return errMalformedFacet
	}

	var verts [3][3]float64
	for i := 0; i < 3; i++ {
		if !sc.Scan() {
			return errMalformedFacet
		}
		fields := strings.Fields(strings.TrimSpace(sc.Text()))
		if len(fields) < 4 || strings.ToLower(fields[0]) != "vertex" {
			return errMalformedFacet
		}
		x, e1 := strconv.ParseFloat(fields[1], 64)
		y, e2 := strconv.ParseFloat(fields[2], 64)
		z, e3 := strconv.ParseFloat(fields[3], 64)
		if e1 != nil || e2 != nil || e3 != nil {
			return errMalformedFacet
		}
		verts[i] = [3]float64{x, y, z}
	}

	if !sc.Scan() || !strings.EqualFold(strings.TrimSpace(sc.Text()), "endloop") {
		return errMalformedFacet
	}
	if !sc.Scan() || !strings.EqualFold(strings.TrimSpace(sc.Text()), "endfacet") {
		return errMalformedFacet
	}

	addFacet(s, sink, verts, meshstore.Normal{X: nx, Y: ny, Z: nz})
	return nil
}

// addFacet quantizes Z, drops degenerate facets.B, and
// interns the remainder.
func addFacet(s *meshstore.Store, sink *diag.Sink, verts [3][3]float64, n meshstore.Normal) {
	for i := range verts {
		verts[i][2] = meshstore.QuantizeZ(verts[i][2])
	}

	v1 := s.AddPoint(verts[0][0], verts[0][1], verts[0][2])
	v2 := s.AddPoint(verts[1][0], verts[1][1], verts[1][2])
	v3 := s.AddPoint(verts[2][0], verts[2][1], verts[2][2])

	p1, p2, p3 := s.Point(v1), s.Point(v2), s.Point(v3)
	if coincide(p1, p2) || coincide(p2, p3) || coincide(p1, p3) {
		sink.Addf(diag.KindZeroAreaFacet, "stlio", -1, "coincident vertices in facet")
		return
	}
	if collinearAtV2(p1, p2, p3) {
		sink.Addf(diag.KindZeroAreaFacet, "stlio", -1, "collinear edges at v2 in facet")
		return
	}

	s.AddEdge(v1, v2)
	s.AddEdge(v2, v3)
	s.AddEdge(v3, v1)
	s.AddFacet(v1, v2, v3, n)
}

func coincide(a, b meshstore.Point) bool {
	return a.X == b.X && a.Y == b.Y && a.Z == b.Z
}

// collinearAtV2 reports whether the two edges emanating from v2 (v2->v1
// and v2->v3) are collinear within collinearToleranceRad.
func collinearAtV2(v1, v2, v3 meshstore.Point) bool {
	e1 := normalize3(v1.X-v2.X, v1.Y-v2.Y, v1.Z-v2.Z)
	e2 := normalize3(v3.X-v2.X, v3.Y-v2.Y, v3.Z-v2.Z)
	dot := e1[0]*e2[0] + e1[1]*e2[1] + e1[2]*e2[2]
	// Clamp for acos stability near the +-1 boundary.
	if dot > 1 {
		dot = 1
	} else if dot < -1 {
		dot = -1
	}
	angle := math.Acos(dot)
	// Collinear means the edges point in opposite directions (angle ~ pi,
	// v2 between v1 and v3) or the same direction (angle ~ 0).
	return angle < collinearToleranceRad || math.Abs(math.Pi-angle) < collinearToleranceRad
}

func normalize3(x, y, z float64) [3]float64 {
	l := math.Sqrt(x*x + y*y + z*z)
	if l < 1e-15 {
		return [3]float64{0, 0, 0}
	}
	return [3]float64{x / l, y / l, z / l}
}
