// Package config implements the slicer's configuration schema and
// loader: a compile-time-known table of typed
// options organized into sections, a key=value text file format with
// "#"-prefixed comments, and one validated setter every load/set path
// goes through.
package config

import "fmt"

// Type identifies an Option's value kind.
type Type int

const (
	TypeBool Type = iota
	TypeInt
	TypeFloat
	TypeEnum
)

// Option describes one configuration key: its type, default, valid
// range or enum choices, and a human-readable description used in
// diagnostics and --help-configs output.
type Option struct {
	Section string
	Name string
	Type Type
	Default interface{}
	Min, Max float64 // for TypeInt/TypeFloat
	Choices []string // for TypeEnum
	Description string
}

// Schema is the full ordered option table, grouped by section in
// declaration order.
var Schema = []Option{
	// Quality
	{Section: "Quality", Name: "layer_height", Type: TypeFloat, Default: 0.2, Min: 0.01, Max: 0.50, Description: "Height of each printed layer"},
	{Section: "Quality", Name: "nozzle_diameter", Type: TypeFloat, Default: 0.4, Min: 0.1, Max: 1.2, Description: "Nozzle orifice diameter"},
	{Section: "Quality", Name: "extrusion_ratio", Type: TypeFloat, Default: 1.0, Min: 0.5, Max: 2.0, Description: "Extrusion width as a multiple of nozzle diameter"},
	{Section: "Quality", Name: "shell_count", Type: TypeInt, Default: 2, Min: 0, Max: 10, Description: "Number of perimeter shells"},
	{Section: "Quality", Name: "top_layers", Type: TypeInt, Default: 3, Min: 0, Max: 10, Description: "Solid top layer count"},
	{Section: "Quality", Name: "bot_layers", Type: TypeInt, Default: 3, Min: 0, Max: 10, Description: "Solid bottom layer count"},
	{Section: "Quality", Name: "infill_density", Type: TypeFloat, Default: 0.2, Min: 0.0, Max: 1.0, Description: "Sparse infill fraction, 0..1"},
	{Section: "Quality", Name: "infill_type", Type: TypeEnum, Default: "Grid", Choices: []string{"Lines", "Triangles", "Grid", "Hexagons"}, Description: "Sparse infill pattern"},
	{Section: "Quality", Name: "infill_overlap", Type: TypeFloat, Default: 0.1, Min: -1.0, Max: 1.0, Description: "Infill-to-perimeter overlap distance"},
	{Section: "Quality", Name: "random_starts", Type: TypeBool, Default: false, Description: "Randomize each inner shell's start vertex"},
	{Section: "Quality", Name: "validate_manifold", Type: TypeBool, Default: true, Description: "Abort before slicing if the mesh is non-manifold"},

	// Support
	{Section: "Support", Name: "support_type", Type: TypeEnum, Default: "None", Choices: []string{"None", "Everywhere", "External"}, Description: "Support generation strategy"},
	{Section: "Support", Name: "overhang_angle", Type: TypeFloat, Default: 45, Min: 0, Max: 90, Description: "Overhang angle, degrees, above which support is generated"},
	{Section: "Support", Name: "support_density", Type: TypeFloat, Default: 0.15, Min: 0.0, Max: 1.0, Description: "Support infill density"},
	{Section: "Support", Name: "support_outset", Type: TypeFloat, Default: 0.6, Min: 0.0, Max: 5.0, Description: "Horizontal gap between support and model"},

	// Adhesion
	{Section: "Adhesion", Name: "adhesion_type", Type: TypeEnum, Default: "None", Choices: []string{"None", "Brim", "Raft"}, Description: "Bed adhesion aid"},
	{Section: "Adhesion", Name: "skirt_outset", Type: TypeFloat, Default: 3.0, Min: 0.0, Max: 20.0, Description: "Skirt offset from the model's first-layer footprint"},
	{Section: "Adhesion", Name: "brim_width", Type: TypeFloat, Default: 4.0, Min: 0.0, Max: 30.0, Description: "Brim ring width"},
	{Section: "Adhesion", Name: "raft_outset", Type: TypeFloat, Default: 3.0, Min: 0.0, Max: 20.0, Description: "Raft outline offset from the model footprint"},
	{Section: "Adhesion", Name: "raft_layers", Type: TypeInt, Default: 2, Min: 0, Max: 6, Description: "Number of raft base layers"},

	// Retraction
	{Section: "Retraction", Name: "retract_dist", Type: TypeFloat, Default: 1.0, Min: 0.0, Max: 10.0, Description: "Retraction distance"},
	{Section: "Retraction", Name: "retract_speed", Type: TypeFloat, Default: 2400, Min: 60, Max: 6000, Description: "Retraction speed, mm/min"},
	{Section: "Retraction", Name: "retract_lift", Type: TypeFloat, Default: 0.0, Min: 0.0, Max: 5.0, Description: "Z-hop height during travel moves"},
	{Section: "Retraction", Name: "retract_extruder", Type: TypeFloat, Default: 2.0, Min: 0.0, Max: 10.0, Description: "Tool-change retraction distance; not read by the G-code emitter, whose tool changes retract by retract_dist"},

	// Materials (per-nozzle, 4 nozzles)
	{Section: "Materials", Name: "nozzle_0_filament", Type: TypeEnum, Default: "PLA", Choices: []string{"PLA", "ABS", "PETG", "TPU"}, Description: "Material loaded in nozzle 0"},
	{Section: "Materials", Name: "nozzle_0_diam", Type: TypeFloat, Default: 1.75, Min: 1.0, Max: 3.5, Description: "Filament diameter for nozzle 0"},
	{Section: "Materials", Name: "nozzle_0_temp", Type: TypeFloat, Default: 200, Min: 0, Max: 300, Description: "Hotend temperature for nozzle 0"},
	{Section: "Materials", Name: "nozzle_1_filament", Type: TypeEnum, Default: "PLA", Choices: []string{"PLA", "ABS", "PETG", "TPU"}, Description: "Material loaded in nozzle 1"},
	{Section: "Materials", Name: "nozzle_1_diam", Type: TypeFloat, Default: 1.75, Min: 1.0, Max: 3.5, Description: "Filament diameter for nozzle 1"},
	{Section: "Materials", Name: "nozzle_1_temp", Type: TypeFloat, Default: 200, Min: 0, Max: 300, Description: "Hotend temperature for nozzle 1"},
	{Section: "Materials", Name: "nozzle_2_filament", Type: TypeEnum, Default: "PLA", Choices: []string{"PLA", "ABS", "PETG", "TPU"}, Description: "Material loaded in nozzle 2"},
	{Section: "Materials", Name: "nozzle_2_diam", Type: TypeFloat, Default: 1.75, Min: 1.0, Max: 3.5, Description: "Filament diameter for nozzle 2"},
	{Section: "Materials", Name: "nozzle_2_temp", Type: TypeFloat, Default: 200, Min: 0, Max: 300, Description: "Hotend temperature for nozzle 2"},
	{Section: "Materials", Name: "nozzle_3_filament", Type: TypeEnum, Default: "PLA", Choices: []string{"PLA", "ABS", "PETG", "TPU"}, Description: "Material loaded in nozzle 3"},
	{Section: "Materials", Name: "nozzle_3_diam", Type: TypeFloat, Default: 1.75, Min: 1.0, Max: 3.5, Description: "Filament diameter for nozzle 3"},
	{Section: "Materials", Name: "nozzle_3_temp", Type: TypeFloat, Default: 200, Min: 0, Max: 300, Description: "Hotend temperature for nozzle 3"},
	{Section: "Materials", Name: "bed_temp", Type: TypeFloat, Default: 60, Min: 0, Max: 150, Description: "Heated bed temperature, 0 disables bed heating"},

	// Machine
	{Section: "Machine", Name: "bed_size_x", Type: TypeFloat, Default: 220, Min: 10, Max: 1000, Description: "Bed width, mm"},
	{Section: "Machine", Name: "bed_size_y", Type: TypeFloat, Default: 220, Min: 10, Max: 1000, Description: "Bed depth, mm"},
	{Section: "Machine", Name: "feed_rate", Type: TypeFloat, Default: 1800, Min: 60, Max: 12000, Description: "Print move speed, mm/min"},
	{Section: "Machine", Name: "travel_rate_xy", Type: TypeFloat, Default: 6000, Min: 60, Max: 24000, Description: "Travel move speed in XY, mm/min"},
	{Section: "Machine", Name: "travel_rate_z", Type: TypeFloat, Default: 1200, Min: 60, Max: 12000, Description: "Travel move speed in Z, mm/min"},
	{Section: "Machine", Name: "nozzle_max_speed", Type: TypeFloat, Default: 3000, Min: 60, Max: 24000, Description: "Hard speed ceiling applied to every print move"},
}

// Find returns the Option named key, or (zero, false).
func Find(key string) (Option, bool) {
	for _, o := range Schema {
		if o.Name == key {
			return o, true
		}
	}
	return Option{}, false
}

// Sections returns the section names in declaration order, each once.
func Sections() []string {
	var out []string
	seen := map[string]bool{}
	for _, o := range Schema {
		if !seen[o.Section] {
			seen[o.Section] = true
			out = append(out, o.Section)
		}
	}
	return out
}

func (t Type) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeEnum:
		return "enum"
	default:
		return fmt.Sprintf("Type(%d)", t)
	}
}
