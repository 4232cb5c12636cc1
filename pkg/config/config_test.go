package config

import (
	"strings"
	"testing"

	"github.com/MehmetBener/Slicer-Julia/pkg/diag"
)

func TestNewHasAllDefaults(t *testing.T) {
	c := New()
	if c.GetFloat("layer_height") != 0.2 {
		t.Fatalf("layer_height default = %v, want 0.2", c.GetFloat("layer_height"))
	}
	if c.GetString("infill_type") != "Grid" {
		t.Fatalf("infill_type default = %q, want Grid", c.GetString("infill_type"))
	}
	if c.GetBool("validate_manifold") != true {
		t.Fatalf("validate_manifold default = %v, want true", c.GetBool("validate_manifold"))
	}
}

func TestSetValidValue(t *testing.T) {
	c := New()
	var sink diag.Sink
	if err := c.Set("layer_height", "0.3", &sink); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if c.GetFloat("layer_height") != 0.3 {
		t.Fatalf("layer_height = %v, want 0.3", c.GetFloat("layer_height"))
	}
	if sink.Len() != 0 {
		t.Fatalf("unexpected diagnostics: %v", sink.Items())
	}
}

func TestSetWrongTypeLeavesPreviousValue(t *testing.T) {
	c := New()
	var sink diag.Sink
	if err := c.Set("layer_height", "abc", &sink); err == nil {
		t.Fatalf("expected an error for a malformed float")
	}
	if c.GetFloat("layer_height") != 0.2 {
		t.Fatalf("layer_height should remain at default 0.2, got %v", c.GetFloat("layer_height"))
	}
	if sink.Len() != 1 {
		t.Fatalf("expected one diagnostic, got %d", sink.Len())
	}
}

func TestSetOutOfRangeReportsRangeDiagnostic(t *testing.T) {
	c := New()
	var sink diag.Sink
	if err := c.Set("layer_height", "5.0", &sink); err == nil {
		t.Fatalf("expected an out-of-range error")
	}
	found := false
	for _, d := range sink.Items() {
		if d.Kind == diag.KindConfigRange {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a KindConfigRange diagnostic, got %v", sink.Items())
	}
}

func TestSetUnknownKeyIsIgnoredWithDiagnostic(t *testing.T) {
	c := New()
	var sink diag.Sink
	if err := c.Set("unknown_key", "5", &sink); err == nil {
		t.Fatalf("expected an error for an unknown key")
	}
	if sink.Len() != 1 || sink.Items()[0].Kind != diag.KindConfigUnknown {
		t.Fatalf("expected one KindConfigUnknown diagnostic, got %v", sink.Items())
	}
}

func TestLoadParsesKeyValueLinesAndSkipsComments(t *testing.T) {
	c := New()
	var sink diag.Sink
	src := "# Quality\nlayer_height=0.3\n\nunknown_key=5\n"
	if err := Load(strings.NewReader(src), c, &sink); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.GetFloat("layer_height") != 0.3 {
		t.Fatalf("layer_height = %v, want 0.3", c.GetFloat("layer_height"))
	}
	if sink.Len() != 1 {
		t.Fatalf("expected one diagnostic for the unknown key, got %d: %v", sink.Len(), sink.Items())
	}
}

func TestSaveRoundTrip(t *testing.T) {
	c := New()
	var sink diag.Sink
	c.Set("layer_height", "0.3", &sink)

	var buf strings.Builder
	if err := Save(&buf, c); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	c2 := New()
	var sink2 diag.Sink
	if err := Load(strings.NewReader(buf.String()), c2, &sink2); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c2.GetFloat("layer_height") != 0.3 {
		t.Fatalf("round-tripped layer_height = %v, want 0.3", c2.GetFloat("layer_height"))
	}
}

func TestEnumRejectsInvalidChoice(t *testing.T) {
	c := New()
	var sink diag.Sink
	if err := c.Set("infill_type", "Sparkles", &sink); err == nil {
		t.Fatalf("expected an error for an invalid enum choice")
	}
	if c.GetString("infill_type") != "Grid" {
		t.Fatalf("infill_type should remain at default Grid, got %q", c.GetString("infill_type"))
	}
}
