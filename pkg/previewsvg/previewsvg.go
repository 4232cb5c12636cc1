// Package previewsvg renders one SVG per layer showing perimeters,
// masks, support, and infill, useful for visually inspecting a slice
// before printing it. Built on github.com/ajstarks/svgo for path-to-SVG
// rendering.
package previewsvg

import (
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/MehmetBener/Slicer-Julia/pkg/geom2d"
)

// Layer bundles everything about one layer worth previewing.
type Layer struct {
	Perimeters []geom2d.Paths // one entry per shell
	TopMask geom2d.Paths
	BotMask geom2d.Paths
	SupportLines geom2d.Paths
	InfillLines geom2d.Paths
}

// marginMM pads the SVG canvas around the layer's bounds so perimeter
// strokes aren't clipped at the edge.
const marginMM = 5.0

// scalePxPerMM controls output resolution; 10px/mm keeps a 220mm bed
// under 2500px on a side.
const scalePxPerMM = 10.0

// Write renders l to w as a standalone SVG document sized to bounds
// (typically the machine bed, so every layer in a sequence lines up).
func Write(w io.Writer, l Layer, bounds geom2d.Bounds2D) error {
	width := int((bounds.Width() + 2*marginMM) * scalePxPerMM)
	height := int((bounds.Height() + 2*marginMM) * scalePxPerMM)
	if width <= 0 {
		width = 100
	}
	if height <= 0 {
		height = 100
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	project := func(p geom2d.Point2D) (int, int) {
		x := (p.X - bounds.MinX + marginMM) * scalePxPerMM
		// SVG's Y axis points down; flip so the preview reads like a
		// build plate viewed from above.
		y := (bounds.MaxY - p.Y + marginMM) * scalePxPerMM
		return int(x), int(y)
	}

	drawPaths := func(paths geom2d.Paths, style string) {
		for _, p := range paths {
			xs := make([]int, len(p))
			ys := make([]int, len(p))
			for i, v := range p {
				xs[i], ys[i] = project(v)
			}
			canvas.Polyline(xs, ys, style)
		}
	}

	for shellIdx, shell := range l.Perimeters {
		style := "fill:none;stroke:black;stroke-width:1"
		if shellIdx == 0 {
			style = "fill:none;stroke:black;stroke-width:2"
		}
		drawPaths(shell, style)
	}
	drawPaths(l.TopMask, "fill:none;stroke:red;stroke-width:1;stroke-dasharray:3,2")
	drawPaths(l.BotMask, "fill:none;stroke:blue;stroke-width:1;stroke-dasharray:3,2")
	drawPaths(l.SupportLines, "fill:none;stroke:orange;stroke-width:0.5")
	drawPaths(l.InfillLines, "fill:none;stroke:gray;stroke-width:0.5")

	canvas.End()
	return nil
}
