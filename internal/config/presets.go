package config

import (
	"math"
	"sort"

	"github.com/curvelab/lissalab/internal/curve"
)

// Presets are the classic figures used in the A-Level material plus a
// scanner-style sweep.
var Presets = map[string]*Config{
	"diagonal": {
		Curve: CurveConfig{FreqX: 1, FreqY: 1, AmpX: 1, AmpY: 1,
			Resolution: DefaultResolution, Cycles: 1},
	},
	"circle": {
		Curve: CurveConfig{FreqX: 1, FreqY: 1, AmpX: 1, AmpY: 1,
			PhaseY: math.Pi / 2, Resolution: DefaultResolution, Cycles: 1},
	},
	"figure8": {
		Curve: CurveConfig{FreqX: 1, FreqY: 2, AmpX: 1, AmpY: 1,
			Resolution: DefaultResolution, Cycles: 1},
	},
	"three-two": {
		Curve: CurveConfig{FreqX: 3, FreqY: 2, AmpX: 1, AmpY: 1,
			PhaseY: math.Pi / 2, Resolution: 1500, Cycles: 1},
	},
	"five-four": {
		Curve: CurveConfig{FreqX: 5, FreqY: 4, AmpX: 1, AmpY: 1,
			PhaseY: math.Pi / 2, Resolution: 3000, Cycles: 1},
	},
	"scanner": {
		// Near-rational ratio: the trace precesses slowly and fills
		// the treatment area, the pattern used for laser coverage.
		Curve: CurveConfig{FreqX: 13, FreqY: 12, AmpX: 1, AmpY: 1,
			Resolution: 8000, Cycles: 10},
		Animation: AnimationConfig{PhaseStep: curve.TwoPi / 960, FrameRate: 30},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	if out.Animation.PhaseStep == 0 {
		out.Animation.PhaseStep = DefaultPhaseStep
	}
	if out.Animation.FrameRate == 0 {
		out.Animation.FrameRate = DefaultFrameRate
	}
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
