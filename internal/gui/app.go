package gui

import (
	"math"
	"os"

	"github.com/curvelab/lissalab/internal/audio"
	"github.com/curvelab/lissalab/internal/config"
	"github.com/curvelab/lissalab/internal/curve"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColTrace   = rl.NewColor(0, 255, 0, 255)
	ColBeam    = rl.NewColor(200, 255, 200, 255)
	ColText    = rl.NewColor(140, 180, 140, 255)
	ColTextDim = rl.NewColor(50, 80, 50, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
)

type guiParam struct {
	name string
	step float64
	get  func(*curve.Params) float64
	set  func(*curve.Params, float64)
}

var guiParams = []guiParam{
	{"freq x", 0.1,
		func(p *curve.Params) float64 { return p.FreqX },
		func(p *curve.Params, v float64) { p.FreqX = v }},
	{"freq y", 0.1,
		func(p *curve.Params) float64 { return p.FreqY },
		func(p *curve.Params, v float64) { p.FreqY = v }},
	{"amp x", 0.1,
		func(p *curve.Params) float64 { return p.AmpX },
		func(p *curve.Params, v float64) { p.AmpX = v }},
	{"amp y", 0.1,
		func(p *curve.Params) float64 { return p.AmpY },
		func(p *curve.Params, v float64) { p.AmpY = v }},
	{"phase x", curve.TwoPi / 24,
		func(p *curve.Params) float64 { return p.PhaseX },
		func(p *curve.Params, v float64) { p.PhaseX = v }},
	{"phase y", curve.TwoPi / 24,
		func(p *curve.Params) float64 { return p.PhaseY },
		func(p *curve.Params, v float64) { p.PhaseY = v }},
	{"cycles", 0.5,
		func(p *curve.Params) float64 { return p.Cycles },
		func(p *curve.Params, v float64) { p.Cycles = v }},
}

type App struct {
	Params  curve.Params
	Initial curve.Params
	Anim    config.AnimationConfig

	ParamSel  int
	Animating bool

	// BeamT tracks the scanning spot along the curve.
	BeamT float64

	Audio    *audio.Player
	AudioOn  bool
	ShowHelp bool

	width, height int
}

func initWindow(w, h int) {
	rl.InitWindow(int32(w), int32(h), "lissalab")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

func NewApp(cfg config.Config) *App {
	p := cfg.Params()
	return &App{
		Params:   p,
		Initial:  p,
		Anim:     cfg.Animation,
		Audio:    audio.NewPlayer(p),
		ShowHelp: true,
		width:    900,
		height:   900,
	}
}

// Run opens the window and blocks until it closes.
func Run(cfg config.Config) {
	app := NewApp(cfg)
	initWindow(app.width, app.height)
	defer rl.CloseWindow()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
	a.Audio.Stop()
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.Audio.Stop()
		rl.CloseWindow()
		os.Exit(0)
	}

	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.ParamSel = (a.ParamSel + 1) % len(guiParams)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.ParamSel--
		if a.ParamSel < 0 {
			a.ParamSel = len(guiParams) - 1
		}
	}

	sel := guiParams[a.ParamSel]
	step := sel.step
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step *= 10
	}
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
		a.adjust(sel, +step)
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
		a.adjust(sel, -step)
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		a.Animating = !a.Animating
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Params = a.Initial
		a.Animating = false
		a.BeamT = 0
		a.Audio.SetParams(a.Params)
	}
	if rl.IsKeyPressed(rl.KeyM) {
		a.toggleAudio()
	}
	if rl.IsKeyPressed(rl.KeySlash) {
		a.ShowHelp = !a.ShowHelp
	}

	if a.Animating {
		a.Params.PhaseY = curve.WrapPhase(a.Params.PhaseY + a.Anim.PhaseStep)
		a.Audio.SetParams(a.Params)
	}

	// The beam sweeps the figure once per second regardless of length.
	a.BeamT += a.Params.TRange() / 60
	if a.BeamT > a.Params.TRange() {
		a.BeamT = math.Mod(a.BeamT, a.Params.TRange())
	}
}

func (a *App) adjust(sel guiParam, delta float64) {
	next := a.Params
	sel.set(&next, sel.get(&next)+delta)
	if next.Validate() != nil {
		return
	}
	a.Params = next
	a.Audio.SetParams(a.Params)
}

func (a *App) toggleAudio() {
	if a.AudioOn {
		a.Audio.Stop()
		a.AudioOn = false
		return
	}
	a.Audio.SetParams(a.Params)
	if err := a.Audio.Start(); err == nil {
		a.AudioOn = true
	}
}
