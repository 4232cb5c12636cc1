package stlio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/MehmetBener/Slicer-Julia/pkg/diag"
	"github.com/MehmetBener/Slicer-Julia/pkg/meshstore"
)

// binaryRecord mirrors the 50-byte little-endian STL triangle record:
// {nx,ny,nz, v1x..v1z, v2x..v2z, v3x..v3z, attr}.
type binaryRecord struct {
	Normal [3]float32
	Vertex1 [3]float32
	Vertex2 [3]float32
	Vertex3 [3]float32
	Attr uint16
}

// parseBinary reads the 80-byte header, the uint32 facet count, and then
// that many 50-byte records, grounded on
// other_examples/soypat-sdf__stl.go and
// other_examples/jeffallen-jra-go__stl.go's use of encoding/binary for the
// same layout.
func parseBinary(br *bufio.Reader, s *meshstore.Store, sink *diag.Sink) error {
	var header [binaryHeaderSize]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return fmt.Errorf("stlio: binary header: %w", err)
	}

	var count uint32
	if err := binary.Read(br, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("stlio: binary facet count: %w", err)
	}

	var buf [binaryRecordSize]byte
	for i := uint32(0); i < count; i++ {
		n, err := io.ReadFull(br, buf[:])
		if err != nil {
			if err == io.EOF || err == io.ErrUnexpectedEOF {
				sink.Addf(diag.KindMalformedLine, "stlio.parseBinary", -1,
					"truncated at record %d/%d (read %d of %d bytes)", i, count, n, binaryRecordSize)
				return nil
			}
			return fmt.Errorf("stlio: binary record %d: %w", i, err)
		}

		rec := decodeRecord(buf[:])
		verts := [3][3]float64{
			{float64(rec.Vertex1[0]), float64(rec.Vertex1[1]), float64(rec.Vertex1[2])},
			{float64(rec.Vertex2[0]), float64(rec.Vertex2[1]), float64(rec.Vertex2[2])},
			{float64(rec.Vertex3[0]), float64(rec.Vertex3[1]), float64(rec.Vertex3[2])},
		}
		n3 := meshstore.Normal{X: float64(rec.Normal[0]), Y: float64(rec.Normal[1]), Z: float64(rec.Normal[2])}
		addFacet(s, sink, verts, n3)
	}
	return nil
}

func decodeRecord(b []byte) binaryRecord {
	var r binaryRecord
	get3f32(b[0:12], &r.Normal)
	get3f32(b[12:24], &r.Vertex1)
	get3f32(b[24:36], &r.Vertex2)
	get3f32(b[36:48], &r.Vertex3)
	r.Attr = binary.LittleEndian.Uint16(b[48:50])
	return r
}

func get3f32(b []byte, out *[3]float32) {
	for i := 0; i < 3; i++ {
		bits := binary.LittleEndian.Uint32(b[i*4:])
		out[i] = math.Float32frombits(bits)
	}
}
