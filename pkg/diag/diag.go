// Package diag carries the non-fatal diagnostics produced while reading
// STL files, checking manifoldness, assembling layers, and parsing
// configuration. Most error kinds in the pipeline are advisory: the stage
// that notices a problem keeps going and records a Diagnostic instead of
// returning a Go error, mirroring the distinction this module draws between
// fatal I/O errors and everything else.
package diag

import "fmt"

// Kind classifies a Diagnostic by which error kind in it
// corresponds to.
type Kind string

const (
	KindMalformedLine Kind = "StlMalformedLine"
	KindZeroAreaFacet Kind = "ZeroAreaFacet"
	KindDegenerateNorm Kind = "DegenerateNormal"
	KindNonManifold Kind = "NonManifold"
	KindIncompletePoly Kind = "IncompletePolygon"
	KindConfigRange Kind = "ConfigOutOfRange"
	KindConfigUnknown Kind = "UnknownConfigKey"
	KindConfigWrongType Kind = "WrongConfigType"
	KindEmptyGeometry Kind = "EmptyGeometry"
)

// Diagnostic is one advisory message attached to a stage and, where
// applicable, a layer index.
type Diagnostic struct {
	Kind Kind
	Stage string
	Layer int // -1 when not layer-specific
	Detail string
}

func (d Diagnostic) String() string {
	if d.Layer >= 0 {
		return fmt.Sprintf("[%s] %s (layer %d): %s", d.Kind, d.Stage, d.Layer, d.Detail)
	}
	return fmt.Sprintf("[%s] %s: %s", d.Kind, d.Stage, d.Detail)
}

// Sink collects Diagnostics in emission order. A nil *Sink is a valid,
// silent discard target, so callers that don't care about diagnostics can
// pass nil without a nil check at every call site.
type Sink struct {
	items []Diagnostic
}

// Add appends d to the sink. Safe to call on a nil *Sink.
func (s *Sink) Add(d Diagnostic) {
	if s == nil {
		return
	}
	s.items = append(s.items, d)
}

// Addf builds a Diagnostic from a format string and appends it.
func (s *Sink) Addf(kind Kind, stage string, layer int, format string, args...interface{}) {
	s.Add(Diagnostic{Kind: kind, Stage: stage, Layer: layer, Detail: fmt.Sprintf(format, args...)})
}

// Items returns the collected diagnostics in emission order.
func (s *Sink) Items() []Diagnostic {
	if s == nil {
		return nil
	}
	return s.items
}

// Len reports how many diagnostics have been collected.
func (s *Sink) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}
