package stlio

import (
	"bytes"
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/MehmetBener/Slicer-Julia/pkg/diag"
	"github.com/MehmetBener/Slicer-Julia/pkg/meshstore"
)

const unitTriangleASCII = `solid cube
 facet normal 0 0 1
 outer loop
 vertex 0 0 0
 vertex 1 0 0
 vertex 0 1 0
 endloop
 endfacet
endsolid cube
`

func TestLooksASCII(t *testing.T) {
	if !looksASCII([]byte("solid foo\n facet normal")) {
		t.Fatalf("expected ASCII prefix to be detected")
	}
	if looksASCII([]byte("solid foo\x00\x01\x02binarystuff")) {
		t.Fatalf("NUL byte in prefix should defeat ASCII sniff")
	}
	if looksASCII([]byte("not stl at all")) {
		t.Fatalf("non-STL prefix should not be detected as ASCII")
	}
}

func TestParseASCIISingleFacet(t *testing.T) {
	s := meshstore.New()
	var sink diag.Sink
	if err := Read(strings.NewReader(unitTriangleASCII), s, &sink); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if s.NumFacets() != 1 {
		t.Fatalf("NumFacets() = %d, want 1", s.NumFacets())
	}
	if sink.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Items())
	}
}

func TestParseASCIISkipsDegenerateFacet(t *testing.T) {
	src := `solid d
 facet normal 0 0 1
 outer loop
 vertex 0 0 0
 vertex 0 0 0
 vertex 1 1 0
 endloop
 endfacet
endsolid d
`
	s := meshstore.New()
	var sink diag.Sink
	if err := Read(strings.NewReader(src), s, &sink); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if s.NumFacets() != 0 {
		t.Fatalf("NumFacets() = %d, want 0 (degenerate facet should be dropped)", s.NumFacets())
	}
	if sink.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 diagnostic for the degenerate facet", sink.Len())
	}
}

func TestParseASCIISkipsMalformedBlock(t *testing.T) {
	src := `solid d
 facet normal 0 0 1
 outer loop
 vertex garbage here
 endloop
 endfacet
 facet normal 0 0 1
 outer loop
 vertex 0 0 0
 vertex 1 0 0
 vertex 0 1 0
 endloop
 endfacet
endsolid d
`
	s := meshstore.New()
	var sink diag.Sink
	if err := Read(strings.NewReader(src), s, &sink); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if s.NumFacets() != 1 {
		t.Fatalf("NumFacets() = %d, want 1 (malformed block skipped, valid one kept)", s.NumFacets())
	}
}

func writeBinarySTL(t *testing.T, verts [][3][3]float32) []byte {
	t.Helper()
	var buf bytes.Buffer
	var header [80]byte
	buf.Write(header[:])
	binary.Write(&buf, binary.LittleEndian, uint32(len(verts)))
	for _, tri := range verts {
		var rec [50]byte
		binary.LittleEndian.PutUint32(rec[0:], math.Float32bits(0))
		binary.LittleEndian.PutUint32(rec[4:], math.Float32bits(0))
		binary.LittleEndian.PutUint32(rec[8:], math.Float32bits(1))
		off := 12
		for _, v := range tri {
			binary.LittleEndian.PutUint32(rec[off:], math.Float32bits(v[0]))
			binary.LittleEndian.PutUint32(rec[off+4:], math.Float32bits(v[1]))
			binary.LittleEndian.PutUint32(rec[off+8:], math.Float32bits(v[2]))
			off += 12
		}
		buf.Write(rec[:])
	}
	return buf.Bytes()
}

func TestParseBinarySingleFacet(t *testing.T) {
	data := writeBinarySTL(t, [][3][3]float32{
		{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
	})
	s := meshstore.New()
	var sink diag.Sink
	if err := Read(bytes.NewReader(data), s, &sink); err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if s.NumFacets() != 1 {
		t.Fatalf("NumFacets() = %d, want 1", s.NumFacets())
	}
}

func TestRoundTripASCII(t *testing.T) {
	s := meshstore.New()
	var sink diag.Sink
	if err := Read(strings.NewReader(unitTriangleASCII), s, &sink); err != nil {
		t.Fatalf("Read() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteASCII(&buf, s, "cube"); err != nil {
		t.Fatalf("WriteASCII() error = %v", err)
	}

	s2 := meshstore.New()
	var sink2 diag.Sink
	if err := Read(&buf, s2, &sink2); err != nil {
		t.Fatalf("re-Read() error = %v", err)
	}
	if s2.NumFacets() != s.NumFacets() {
		t.Fatalf("round trip facet count = %d, want %d", s2.NumFacets(), s.NumFacets())
	}
}
