package gui

import (
	"fmt"

	"github.com/curvelab/lissalab/internal/curve"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// trailLen is how much of the recent beam path stays visible, as a
// fraction of the full parameter range.
const trailLen = 0.15

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	a.drawCurve()
	a.drawBeam()
	a.drawSidebar()
	if a.ShowHelp {
		a.drawHelp()
	}

	rl.EndDrawing()
}

// toScreen maps figure coordinates into the window with a margin.
func (a *App) toScreen(x, y float64) (int32, int32) {
	scale := 0.75 * float64(a.height) / 2
	cx, cy := float64(a.width)/2, float64(a.height)/2
	sx := cx + x/a.Params.AmpX*scale
	sy := cy - y/a.Params.AmpY*scale
	return int32(sx), int32(sy)
}

func (a *App) drawCurve() {
	pts := curve.Sample(a.Params)
	if len(pts) < 2 {
		return
	}
	col := ColTrace
	if a.Animating {
		// Dim the static trace so the beam trail reads on top.
		col = rl.NewColor(ColTrace.R/3, ColTrace.G/3, ColTrace.B/3, 255)
	}
	prevX, prevY := a.toScreen(pts[0].X, pts[0].Y)
	for _, pt := range pts[1:] {
		x, y := a.toScreen(pt.X, pt.Y)
		rl.DrawLine(prevX, prevY, x, y, col)
		prevX, prevY = x, y
	}
}

// drawBeam draws the scanning spot and its fading trail.
func (a *App) drawBeam() {
	window := a.Params.TRange() * trailLen
	steps := 120
	dt := window / float64(steps)

	for i := 0; i < steps; i++ {
		t := a.BeamT - window + float64(i)*dt
		if t < 0 {
			continue
		}
		pt := a.Params.At(t)
		sx, sy := a.toScreen(pt.X, pt.Y)
		alpha := uint8(255 * float64(i) / float64(steps))
		rl.DrawCircle(sx, sy, 1.5, rl.NewColor(ColTrace.R, ColTrace.G, ColTrace.B, alpha))
	}

	head := a.Params.At(a.BeamT)
	sx, sy := a.toScreen(head.X, head.Y)
	rl.DrawCircle(sx, sy, 4, ColBeam)
}

func (a *App) drawSidebar() {
	y := int32(20)
	for i, gp := range guiParams {
		col := ColText
		prefix := "  "
		if i == a.ParamSel {
			col = ColSelect
			prefix = "> "
		}
		label := fmt.Sprintf("%s%-8s %7.3f", prefix, gp.name, gp.get(&a.Params))
		rl.DrawText(label, 20, y, 20, col)
		y += 26
	}

	y += 10
	if a.Animating {
		rl.DrawText("animating", 20, y, 20, ColTrace)
	} else {
		rl.DrawText("frozen", 20, y, 20, ColTextDim)
	}
	y += 26
	if a.AudioOn {
		rl.DrawText("audio on", 20, y, 20, ColTrace)
	}

	if cycles, ok := curve.CyclesToClose(a.Params.FreqX, a.Params.FreqY); ok {
		txt := fmt.Sprintf("closes in %.1f cycles", cycles)
		rl.DrawText(txt, 20, int32(a.height)-30, 20, ColTextDim)
	} else {
		rl.DrawText("non-closing", 20, int32(a.height)-30, 20, ColTextDim)
	}
}

func (a *App) drawHelp() {
	help := "arrows adjust   space animate   r reset   m audio   ? hide   q quit"
	w := rl.MeasureText(help, 20)
	rl.DrawText(help, int32(a.width)-w-20, int32(a.height)-30, 20, ColTextDim)
}
