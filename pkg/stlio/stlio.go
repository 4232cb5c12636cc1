// Package stlio reads STL models: sniff ASCII-vs-binary, parse into a
// meshstore.Store, quantize Z, and drop degenerate facets. Grounded on
// other_examples/kortschak-stl__triangle.go
// (the ASCII "facet/outer loop/vertex.../endloop/endfacet" state machine)
// and other_examples/soypat-sdf__stl.go plus
// other_examples/jeffallen-jra-go__stl.go (the 50-byte little-endian
// binary triangle record via encoding/binary).
package stlio

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode"

	"github.com/MehmetBener/Slicer-Julia/pkg/diag"
	"github.com/MehmetBener/Slicer-Julia/pkg/meshstore"
)

const binaryHeaderSize = 80
const binaryRecordSize = 50

// Read sniffs r's format and parses it into s, quantizing Z and skipping
// zero-area/collinear facets (silently recording them in sink). Any
// io.Reader works: Read buffers r and peeks at the sniff prefix, so r
// never has to support re-reading its first bytes.
func Read(r io.Reader, s *meshstore.Store, sink *diag.Sink) error {
	br := bufio.NewReaderSize(r, 1<<16)
	prefix, err := br.Peek(binaryHeaderSize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("stlio: read header: %w", err)
	}

	if looksASCII(prefix) {
		return parseASCII(br, s, sink)
	}
	return parseBinary(br, s, sink)
}

// looksASCII implements sniff: the first bytes
// case-insensitively start with "solid " *and* the file appears to be
// human-readable text (printable ASCII/whitespace), since a binary STL's
// 80-byte header is free-form and may itself start with "solid ".
func looksASCII(prefix []byte) bool {
	trimmed := bytes.TrimLeft(prefix, " \t\r\n")
	if len(trimmed) < 6 || !bytes.EqualFold(trimmed[:6], []byte("solid ")) {
		return false
	}
	for _, b := range prefix {
		if b == 0 {
			return false
		}
		if b >= 0x80 {
			return false
		}
		r := rune(b)
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
