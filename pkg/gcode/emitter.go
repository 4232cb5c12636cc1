// Package gcode implements the G-code Emitter: the Marlin
// prelude, per-layer/per-nozzle tool changes and extrusion/travel moves,
// and cumulative build-time accounting. Grounded on
// _examples/madewithlinux-sierpinski-pyramid-gcode/main.go's
// writeStartGcode/writeToGcode/writeEndGcode shape.
package gcode

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
)

const numNozzles = 4

// NozzleBucket is one (paths, width) tuple for one nozzle on one layer,
// the unit the RawLayerPaths buffer is built from.
type NozzleBucket struct {
	Paths geom2d.Paths
	Width float64
}

// Layer is the per-nozzle bucket array for one layer, plus the print
// height the nozzle sits at while depositing this layer.
type Layer struct {
	Buckets [numNozzles]NozzleBucket
	Z float64
}

// Machine bundles the machine/material settings the emitter needs
//.
type Machine struct {
	BedTempC float64 // 0 disables M140/M190
	NozzleTempC [numNozzles]float64
	NozzleFilamentDiam [numNozzles]float64 // the "_diam" key
	LayerHeight float64
	FeedRate float64 // mm/min, extrusion moves
	TravelRateXY float64 // mm/min
	TravelRateZ float64 // mm/min
	RetractDist float64 // mm
	RetractSpeed float64 // mm/min
	RetractLift float64 // mm; 0 disables Z-hop
	NozzleMaxSpeed float64 // mm/min
}

// ExtrusionState is the mutable tuple the emitter threads through every
// move.
type ExtrusionState struct {
	X, Y, Z float64
	E float64
	CurrentNozzle int
	BuildTimeSec float64
}

// Emit writes the full G-code program for layers to w. Raft layers, if
// any, are already part of layers (the caller prepends them); Emit is
// agnostic to the raft/model split and just emits ;LAYER_COUNT and
// ;LAYER markers for len(layers) layers.
func Emit(w io.Writer, layers []Layer, m Machine) (ExtrusionState, error) {
	bw := bufio.NewWriter(w)
	st := ExtrusionState{Z: 15}

	writePrelude(bw, m, len(layers))

	for layerIdx, layer := range layers {
		fmt.Fprintf(bw, ";LAYER:%d\n", layerIdx)
		if layer.Z != st.Z {
			fmt.Fprintf(bw, "G0 Z%.2f\n", layer.Z)
			st.BuildTimeSec += 60 * math.Abs(layer.Z-st.Z) / safeRate(m.TravelRateZ)
			st.Z = layer.Z
		}
		for nozzle := 0; nozzle < numNozzles; nozzle++ {
			bucket := layer.Buckets[nozzle]
			if len(bucket.Paths) == 0 {
				continue
			}
			if st.CurrentNozzle != nozzle {
				toolChange(bw, &st, nozzle, m)
			}
			for _, p := range bucket.Paths {
				emitPolyline(bw, &st, p, bucket.Width, m)
			}
		}
	}

	writeEpilogue(bw)
	if err := bw.Flush(); err != nil {
		return st, fmt.Errorf("gcode: flush: %w", err)
	}
	return st, nil
}

// writePrelude emits the Marlin-flavor startup block: fan off, units,
// absolute coordinates, bed and nozzle heat-up.
func writePrelude(w *bufio.Writer, m Machine, numLayers int) {
	fmt.Fprintln(w, ";FLAVOR:Marlin")
	fmt.Fprintln(w, "M82 ; absolute extrusion")
	fmt.Fprintln(w, "G21 ; millimeters")
	fmt.Fprintln(w, "G90 ; absolute coordinates")
	fmt.Fprintln(w, "M107 ; fan off")
	if m.BedTempC > 0 {
		fmt.Fprintf(w, "M140 S%.0f\n", m.BedTempC)
		fmt.Fprintf(w, "M190 S%.0f\n", m.BedTempC)
	}
	fmt.Fprintf(w, "M104 S%.0f T0\n", m.NozzleTempC[0])
	fmt.Fprintf(w, "M109 S%.0f T0\n", m.NozzleTempC[0])
	fmt.Fprintln(w, "G28 X0 Y0")
	fmt.Fprintln(w, "G28 Z0")
	fmt.Fprintln(w, "G1 Z15")
	fmt.Fprintln(w, "G92 E0")
	fmt.Fprintf(w, ";LAYER_COUNT:%d\n", numLayers)
}

func writeEpilogue(w *bufio.Writer) {
	fmt.Fprintln(w, "M104 S0")
	fmt.Fprintln(w, "M140 S0")
}

// toolChange retracts, switches nozzle, and primes.L
// step 1.
func toolChange(w *bufio.Writer, st *ExtrusionState, nozzle int, m Machine) {
	st.E -= m.RetractDist
	fmt.Fprintf(w, "G1 E%.3f F%.0f\n", st.E, m.RetractSpeed)
	fmt.Fprintf(w, "T%d\n", nozzle)
	st.E += m.RetractDist
	fmt.Fprintf(w, "G1 E%.3f F%.0f\n", st.E, m.RetractSpeed)
	st.CurrentNozzle = nozzle
}

// emitPolyline writes one chained polyline's moves: lift, rapid to
// start, lower, prime, per-vertex extrusion moves, then retract, per
// step 2.
func emitPolyline(w *bufio.Writer, st *ExtrusionState, p geom2d.Path, width float64, m Machine) {
	if len(p) == 0 {
		return
	}
	start := p[0]
	lifted := m.RetractLift > 0

	if lifted {
		liftZ := st.Z + m.RetractLift
		fmt.Fprintf(w, "G0 Z%.2f\n", liftZ)
		st.BuildTimeSec += 60 * m.RetractLift / safeRate(m.TravelRateZ)
	}

	fmt.Fprintf(w, "G0 X%.2f Y%.2f F%.0f\n", start.X, start.Y, safeRate(m.TravelRateXY))
	travel := math.Hypot(start.X-st.X, start.Y-st.Y)
	st.BuildTimeSec += 60 * travel / safeRate(m.TravelRateXY)
	st.X, st.Y = start.X, start.Y

	if lifted {
		fmt.Fprintf(w, "G0 Z%.2f\n", st.Z)
		st.BuildTimeSec += 60 * m.RetractLift / safeRate(m.TravelRateZ)
	}

	st.E += m.RetractDist
	fmt.Fprintf(w, "G1 E%.3f F%.0f\n", st.E, m.RetractSpeed)

	filDiam := m.NozzleFilamentDiam[st.CurrentNozzle]
	speed := m.FeedRate
	if m.NozzleMaxSpeed > 0 && m.NozzleMaxSpeed < speed {
		speed = m.NozzleMaxSpeed
	}

	for _, v := range p[1:] {
		d := math.Hypot(v.X-st.X, v.Y-st.Y)
		dE := extrusionDelta(d, width, m.LayerHeight, filDiam)
		st.E += dE
		fmt.Fprintf(w, "G1 X%.2f Y%.2f E%.3f F%.0f\n", v.X, v.Y, st.E, speed)
		st.BuildTimeSec += 60 * d / safeRate(speed)
		st.X, st.Y = v.X, v.Y
	}

	st.E -= m.RetractDist
	fmt.Fprintf(w, "G1 E%.3f F%.0f\n", st.E, m.RetractSpeed)
}

// extrusionDelta computes dE = d * (pi*w/2 * h/2) / (pi*(filDiam/2)^2),
//.L step 2.e.
func extrusionDelta(d, w, h, filDiam float64) float64 {
	if filDiam <= 0 {
		return 0
	}
	beadArea := math.Pi * w / 2 * h / 2
	filArea := math.Pi * (filDiam / 2) * (filDiam / 2)
	return d * beadArea / filArea
}

func safeRate(rate float64) float64 {
	if rate <= 0 {
		return 1
	}
	return rate
}
