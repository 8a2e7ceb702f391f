package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/curvelab/lissalab/internal/curve"
)

const (
	DefaultFreqX      = 1.0
	DefaultFreqY      = 2.0
	DefaultAmp        = 1.0
	DefaultResolution = 1000
	DefaultCycles     = 1.0
	DefaultPhaseStep  = curve.TwoPi / 240
	DefaultFrameRate  = 60
)

type Config struct {
	Curve     CurveConfig     `yaml:"curve"`
	Animation AnimationConfig `yaml:"animation"`
}

type CurveConfig struct {
	FreqX      float64 `yaml:"freq_x"`
	FreqY      float64 `yaml:"freq_y"`
	AmpX       float64 `yaml:"amp_x"`
	AmpY       float64 `yaml:"amp_y"`
	PhaseX     float64 `yaml:"phase_x"`
	PhaseY     float64 `yaml:"phase_y"`
	Resolution int     `yaml:"resolution"`
	Cycles     float64 `yaml:"cycles"`
}

type AnimationConfig struct {
	PhaseStep float64 `yaml:"phase_step"`
	FrameRate int     `yaml:"frame_rate"`
}

func DefaultConfig() *Config {
	return &Config{
		Curve: CurveConfig{
			FreqX:      DefaultFreqX,
			FreqY:      DefaultFreqY,
			AmpX:       DefaultAmp,
			AmpY:       DefaultAmp,
			Resolution: DefaultResolution,
			Cycles:     DefaultCycles,
		},
		Animation: AnimationConfig{
			PhaseStep: DefaultPhaseStep,
			FrameRate: DefaultFrameRate,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the animation section. The frame rate divides tick
// intervals and GIF delays, so zero is as fatal as negative.
func (a AnimationConfig) Validate() error {
	if a.FrameRate < 1 {
		return fmt.Errorf("frame_rate must be >= 1, got %d", a.FrameRate)
	}
	if a.PhaseStep <= 0 {
		return fmt.Errorf("phase_step must be > 0, got %g", a.PhaseStep)
	}
	return nil
}

// Validate checks both sections.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	return c.Animation.Validate()
}

// Params converts the curve section into the sampling record.
func (c *Config) Params() curve.Params {
	return curve.Params{
		FreqX:      c.Curve.FreqX,
		FreqY:      c.Curve.FreqY,
		AmpX:       c.Curve.AmpX,
		AmpY:       c.Curve.AmpY,
		PhaseX:     c.Curve.PhaseX,
		PhaseY:     c.Curve.PhaseY,
		Resolution: c.Curve.Resolution,
		Cycles:     c.Curve.Cycles,
	}
}

// SetParams writes a sampling record back into the curve section.
func (c *Config) SetParams(p curve.Params) {
	c.Curve = CurveConfig{
		FreqX:      p.FreqX,
		FreqY:      p.FreqY,
		AmpX:       p.AmpX,
		AmpY:       p.AmpY,
		PhaseX:     p.PhaseX,
		PhaseY:     p.PhaseY,
		Resolution: p.Resolution,
		Cycles:     p.Cycles,
	}
}
