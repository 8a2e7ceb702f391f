package viz

import (
	"strings"

	"github.com/curvelab/lissalab/internal/curve"
)

// margin keeps the trace off the canvas border, matching the 0.75
// scale the original on-screen sketcher used.
const margin = 0.9

// Plot draws the sampled figure as a connected path onto a fresh
// canvas. The amplitude box of p maps to the full drawing area, so a
// parameter change rescales rather than clips.
func Plot(p curve.Params, pts []curve.Point, width, height int) *Canvas {
	c := NewCanvas(width, height)
	PlotOn(c, p, pts)
	return c
}

// PlotOn clears c and draws the figure onto it.
func PlotOn(c *Canvas, p curve.Params, pts []curve.Point) {
	c.Clear()
	if len(pts) == 0 {
		return
	}
	pw, ph := c.PixelSize()
	prevX, prevY := 0, 0
	for i, pt := range pts {
		x, y := project(pt, p, pw, ph)
		if i > 0 {
			c.Line(prevX, prevY, x, y)
		}
		prevX, prevY = x, y
	}
}

// project maps a figure point into pixel space. The y axis flips so
// positive y is up on screen.
func project(pt curve.Point, p curve.Params, pw, ph int) (int, int) {
	nx := pt.X / p.AmpX * margin // in [-margin, margin]
	ny := pt.Y / p.AmpY * margin
	x := int((nx + 1) / 2 * float64(pw-1))
	y := int((1 - ny) / 2 * float64(ph-1))
	return x, y
}

// heatRamp orders characters by apparent brightness.
var heatRamp = []rune(" .:-=+*#%@")

// Heatmap shades a row-major scalar grid, one character per cell,
// normalized to the grid's own maximum. Row 0 renders at the bottom so
// the map reads in plot orientation.
func Heatmap(grid [][]float64) string {
	maxVal := 0.0
	for _, row := range grid {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}

	var b strings.Builder
	for i := len(grid) - 1; i >= 0; i-- {
		for _, v := range grid[i] {
			idx := 0
			if maxVal > 0 {
				idx = int(v / maxVal * float64(len(heatRamp)-1))
			}
			if idx >= len(heatRamp) {
				idx = len(heatRamp) - 1
			}
			b.WriteRune(heatRamp[idx])
		}
		b.WriteByte('\n')
	}
	return b.String()
}
