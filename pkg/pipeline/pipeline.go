// Package pipeline orchestrates the slicer's stages in order: read the
// input, run each stage, collect diagnostics, and return a single
// result the caller (the CLI) renders or reports on.
package pipeline

import (
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/MehmetBener/Slicer-Julia/pkg/adhesion"
	"github.com/MehmetBener/Slicer-Julia/pkg/chain"
	"github.com/MehmetBener/Slicer-Julia/pkg/config"
	"github.com/MehmetBener/Slicer-Julia/pkg/diag"
	"github.com/MehmetBener/Slicer-Julia/pkg/gcode"
	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
	"github.com/MehmetBener/Slicer-Julia/pkg/infill"
	"github.com/MehmetBener/Slicer-Julia/pkg/infillpattern"
	"github.com/MehmetBener/Slicer-Julia/pkg/manifold"
	"github.com/MehmetBener/Slicer-Julia/pkg/mask"
	"github.com/MehmetBener/Slicer-Julia/pkg/meshstore"
	"github.com/MehmetBener/Slicer-Julia/pkg/perimeter"
	"github.com/MehmetBener/Slicer-Julia/pkg/progress"
	"github.com/MehmetBener/Slicer-Julia/pkg/slicing"
	"github.com/MehmetBener/Slicer-Julia/pkg/stlio"
	"github.com/MehmetBener/Slicer-Julia/pkg/support"
)

// nozzlePerimeters, nozzleSolidInfill, nozzleSparseInfill, and
// nozzleAuxiliary assign the G-code emitter's four nozzle buckets:
// shells and solid infill share the main nozzle, sparse infill gets its
// own bucket so it could be switched to a second material, and support
// plus every adhesion structure share the auxiliary bucket.
const (
	nozzlePerimeters = 0
	nozzleSolidInfill = 0
	nozzleSparseInfill = 1
	nozzleAuxiliary = 2
)

// ErrNonManifold is returned when validation is enabled and the mesh
// fails the manifold check.
var ErrNonManifold = fmt.Errorf("pipeline: mesh failed manifold validation")

// Result is everything a caller might want to report after a run.
type Result struct {
	RunID string
	NumLayers int
	Diagnostics []diag.Diagnostic
	ManifoldOK bool
}

// Run reads an STL mesh from r, slices it per cfg, and writes the
// resulting G-code program to gcodeOut. therm receives per-layer
// progress updates; pass progress.NewNoop() for a silent run.
func Run(r io.Reader, gcodeOut io.Writer, cfg *config.Config, therm progress.Thermometer) (Result, error) {
	runID := uuid.New().String()
	var sink diag.Sink
	res := Result{RunID: runID}

	log.Printf("pipeline[%s]: reading STL", runID)
	store := meshstore.New()
	if err := stlio.Read(r, store, &sink); err != nil {
		return res, fmt.Errorf("pipeline: reading STL: %w", err)
	}

	report := manifold.Check(store)
	res.ManifoldOK = report.Manifold()
	for _, d := range report.Diagnostics(store) {
		sink.Addf(diag.KindNonManifold, "pipeline.manifold", -1, "%s", d)
	}
	if !res.ManifoldOK && cfg.GetBool("validate_manifold") {
		res.Diagnostics = sink.Items()
		return res, ErrNonManifold
	}

	ops := geom2d.New()
	layerHeight := cfg.GetFloat("layer_height")
	width := cfg.GetFloat("nozzle_diameter") * cfg.GetFloat("extrusion_ratio")
	shellCount := cfg.GetInt("shell_count")

	assignment, numLayers := store.LayerAssignment(layerHeight)
	res.NumLayers = numLayers
	therm.SetTarget(numLayers)
	defer therm.Clear()

	base := store.Bounds().MinZ

	layerPaths := make([]geom2d.Paths, numLayers)
	shells := make([]perimeter.Shells, numLayers)
	perim0 := make([]geom2d.Paths, numLayers)

	// A fixed seed keeps repeated runs of the same input byte-identical.
	rng := rand.New(rand.NewSource(1))

	for L := 0; L < numLayers; L++ {
		planeZ := slicing.LayerPlaneZ(base, L, layerHeight, meshstore.ZQuantum)
		segs := slicing.SliceLayer(store, assignment[L], planeZ)
		layerPaths[L] = slicing.Assemble(segs, L, &sink)

		sh := perimeter.Build(ops, layerPaths[L], shellCount, width, cfg.GetBool("random_starts"), rng)
		shells[L] = sh
		perim0[L] = sh.Outermost()

		therm.Update(L + 1)
	}

	masks := mask.Build(ops, perim0)

	supportLayers := support.Build(ops, store, layerPaths, numLayers, layerHeight, support.Params{
		Type: supportTypeFromString(cfg.GetString("support_type")),
		OverhangAngle: cfg.GetFloat("overhang_angle"),
		Outset: cfg.GetFloat("support_outset"),
		Width: width,
		Density: cfg.GetFloat("support_density"),
		InfillOverlap: cfg.GetFloat("infill_overlap"),
	})

	var supportOutline0 geom2d.Paths
	if len(supportLayers) > 0 {
		supportOutline0 = supportLayers[0].Outline
	}

	var layerPaths0 geom2d.Paths
	if numLayers > 0 {
		layerPaths0 = layerPaths[0]
	}

	raftLayerCount := cfg.GetInt("raft_layers")
	adhesionRes := adhesion.Build(ops, layerPaths0, supportOutline0, raftLayerCount, adhesion.Params{
		Type: adhesionTypeFromString(cfg.GetString("adhesion_type")),
		SkirtOutset: cfg.GetFloat("skirt_outset"),
		BrimWidth: cfg.GetFloat("brim_width"),
		RaftOutset: cfg.GetFloat("raft_outset"),
		Width: width,
		InfillOverlap: cfg.GetFloat("infill_overlap"),
	})

	infillLayers := infill.Build(ops, masks, shells, infill.Params{
		TopLayers: cfg.GetInt("top_layers"),
		BotLayers: cfg.GetInt("bot_layers"),
		Density: cfg.GetFloat("infill_density"),
		Width: width,
		InfillOverlap: cfg.GetFloat("infill_overlap"),
		Pattern: infillPatternFromString(cfg.GetString("infill_type")),
	})

	gcodeLayers := buildGcodeLayers(shells, infillLayers, supportLayers, adhesionRes, width, layerHeight)

	m := machineFromConfig(cfg)
	if _, err := gcode.Emit(gcodeOut, gcodeLayers, m); err != nil {
		return res, fmt.Errorf("pipeline: emitting G-code: %w", err)
	}

	res.Diagnostics = sink.Items()
	log.Printf("pipeline[%s]: done, %d layers, %d diagnostics", runID, numLayers, len(res.Diagnostics))
	return res, nil
}

// buildGcodeLayers assembles the raw per-layer path set: raft layers
// first, then one gcode.Layer per model layer with its shells, solid and
// sparse infill, support, skirt/brim chained per nozzle bucket. Z climbs
// by layerHeight every layer, raft included, so each layer prints at its
// own height above the bed rather than all piling onto one plane.
func buildGcodeLayers(shells []perimeter.Shells, infillLayers []infill.Layer, supportLayers []support.Layer, adh adhesion.Result, width, layerHeight float64) []gcode.Layer {
	var out []gcode.Layer
	z := 0.0

	for _, raftLines := range adh.RaftLayers {
		z += layerHeight
		var layer gcode.Layer
		layer.Z = z
		layer.Buckets[nozzleAuxiliary] = gcode.NozzleBucket{Paths: chain.Chain(raftLines), Width: width}
		out = append(out, layer)
	}

	for L := range shells {
		z += layerHeight
		var layer gcode.Layer
		layer.Z = z

		var perimeterPaths geom2d.Paths
		for _, ring := range shells[L] {
			perimeterPaths = append(perimeterPaths, ring...)
		}
		layer.Buckets[nozzlePerimeters] = gcode.NozzleBucket{Paths: chain.Chain(perimeterPaths), Width: width}

		if L < len(infillLayers) {
			solid := append(geom2d.Paths{}, infillLayers[L].Solid...)
			layer.Buckets[nozzleSolidInfill] = mergeBucket(layer.Buckets[nozzleSolidInfill], solid, width)
			layer.Buckets[nozzleSparseInfill] = gcode.NozzleBucket{Paths: chain.Chain(infillLayers[L].Sparse), Width: width}
		}

		var aux geom2d.Paths
		if L < len(supportLayers) {
			aux = append(aux, supportLayers[L].Outline...)
			aux = append(aux, supportLayers[L].Infill...)
		}
		if L == 0 {
			aux = append(aux, adh.Skirt...)
			for _, ring := range adh.BrimRings {
				aux = append(aux, ring...)
			}
		}
		layer.Buckets[nozzleAuxiliary] = gcode.NozzleBucket{Paths: chain.Chain(aux), Width: width}

		out = append(out, layer)
	}

	return out
}

// mergeBucket appends newPaths onto an existing bucket's chained output,
// re-chaining the combined set so paths contributed in separate calls
// still join when their endpoints are close.
func mergeBucket(existing gcode.NozzleBucket, newPaths geom2d.Paths, width float64) gcode.NozzleBucket {
	combined := append(existing.Paths, newPaths...)
	return gcode.NozzleBucket{Paths: chain.Chain(combined), Width: width}
}

func supportTypeFromString(s string) support.Type {
	switch s {
	case "Everywhere":
		return support.Everywhere
	case "External":
		return support.External
	default:
		return support.None
	}
}

func adhesionTypeFromString(s string) adhesion.Type {
	switch s {
	case "Brim":
		return adhesion.Brim
	case "Raft":
		return adhesion.Raft
	default:
		return adhesion.NoAdhesion
	}
}

func infillPatternFromString(s string) infillpattern.Pattern {
	switch s {
	case "Lines":
		return infillpattern.Lines
	case "Triangles":
		return infillpattern.Triangles
	case "Hexagons":
		return infillpattern.Hexagons
	default:
		return infillpattern.Grid
	}
}

// machineFromConfig reads the Machine/Materials/Retraction sections into
// a gcode.Machine, using lo.Range to fan the four nozzle sub-keys out
// without four copy-pasted lines.
func machineFromConfig(cfg *config.Config) gcode.Machine {
	m := gcode.Machine{
		BedTempC: cfg.GetFloat("bed_temp"),
		LayerHeight: cfg.GetFloat("layer_height"),
		FeedRate: cfg.GetFloat("feed_rate"),
		TravelRateXY: cfg.GetFloat("travel_rate_xy"),
		TravelRateZ: cfg.GetFloat("travel_rate_z"),
		RetractDist: cfg.GetFloat("retract_dist"),
		RetractSpeed: cfg.GetFloat("retract_speed"),
		RetractLift: cfg.GetFloat("retract_lift"),
		NozzleMaxSpeed: cfg.GetFloat("nozzle_max_speed"),
	}
	nozzleIndices := lo.Range(4)
	for _, n := range nozzleIndices {
		m.NozzleTempC[n] = cfg.GetFloat(fmt.Sprintf("nozzle_%d_temp", n))
		m.NozzleFilamentDiam[n] = cfg.GetFloat(fmt.Sprintf("nozzle_%d_diam", n))
	}
	return m
}
