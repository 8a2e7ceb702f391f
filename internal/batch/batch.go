// Package batch runs scripted rendering jobs: a YAML scenario lists
// figures and the outputs to produce for each.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/curvelab/lissalab/internal/config"
	"github.com/curvelab/lissalab/internal/curve"
	"github.com/curvelab/lissalab/internal/export"
	"github.com/curvelab/lissalab/internal/store"
	"gopkg.in/yaml.v3"
)

// Scenario is a scripted sequence of figures to render.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step describes one figure. Preset resolves first, then any curve
// fields set in the step override it.
type Step struct {
	Name    string         `yaml:"name"`
	Preset  string         `yaml:"preset"`
	Curve   *CurveOverride `yaml:"curve"`
	Outputs []string       `yaml:"outputs"`
}

// CurveOverride names the curve fields a step changes. Pointer fields
// keep "set to zero" distinct from "not set", so a step can cancel a
// preset's phase offset.
type CurveOverride struct {
	FreqX      *float64 `yaml:"freq_x"`
	FreqY      *float64 `yaml:"freq_y"`
	AmpX       *float64 `yaml:"amp_x"`
	AmpY       *float64 `yaml:"amp_y"`
	PhaseX     *float64 `yaml:"phase_x"`
	PhaseY     *float64 `yaml:"phase_y"`
	Resolution *int     `yaml:"resolution"`
	Cycles     *float64 `yaml:"cycles"`
}

type StepResult struct {
	Name    string
	Params  curve.Params
	Files   []string
	TraceID string
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Runner writes rendered files under OutDir and traces under DataDir.
type Runner struct {
	OutDir  string
	DataDir string
}

func (r *Runner) Run(ctx context.Context, scenario *Scenario) ([]StepResult, error) {
	if err := os.MkdirAll(r.OutDir, 0755); err != nil {
		return nil, err
	}

	results := make([]StepResult, 0, len(scenario.Steps))
	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		p, err := r.stepParams(step)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}

		res, err := r.runStep(step, p)
		if err != nil {
			return results, fmt.Errorf("step %d (%s): %w", i+1, step.Name, err)
		}
		results = append(results, res)
	}

	return results, nil
}

func (r *Runner) stepParams(step Step) (curve.Params, error) {
	cfg := config.DefaultConfig()
	if step.Preset != "" {
		preset := config.GetPreset(step.Preset)
		if preset == nil {
			return curve.Params{}, fmt.Errorf("unknown preset: %s", step.Preset)
		}
		cfg = preset
	}
	if step.Curve != nil {
		overlayCurve(&cfg.Curve, *step.Curve)
	}

	p := cfg.Params()
	if err := p.Validate(); err != nil {
		return curve.Params{}, err
	}
	return p, nil
}

// overlayCurve copies the set fields of src over dst, so a step only
// has to name the fields it changes.
func overlayCurve(dst *config.CurveConfig, src CurveOverride) {
	if src.FreqX != nil {
		dst.FreqX = *src.FreqX
	}
	if src.FreqY != nil {
		dst.FreqY = *src.FreqY
	}
	if src.AmpX != nil {
		dst.AmpX = *src.AmpX
	}
	if src.AmpY != nil {
		dst.AmpY = *src.AmpY
	}
	if src.PhaseX != nil {
		dst.PhaseX = *src.PhaseX
	}
	if src.PhaseY != nil {
		dst.PhaseY = *src.PhaseY
	}
	if src.Resolution != nil {
		dst.Resolution = *src.Resolution
	}
	if src.Cycles != nil {
		dst.Cycles = *src.Cycles
	}
}

func (r *Runner) runStep(step Step, p curve.Params) (StepResult, error) {
	pts := curve.Sample(p)
	res := StepResult{Name: step.Name, Params: p}

	for _, out := range step.Outputs {
		switch out {
		case "svg":
			path := filepath.Join(r.OutDir, step.Name+".svg")
			if err := export.SaveCurveSVG(path, pts, 800, 800, "#00ff00"); err != nil {
				return res, err
			}
			res.Files = append(res.Files, path)
		case "csv":
			path := filepath.Join(r.OutDir, step.Name+".csv")
			f, err := os.Create(path)
			if err != nil {
				return res, err
			}
			err = store.ExportCSV(f, pts)
			f.Close()
			if err != nil {
				return res, err
			}
			res.Files = append(res.Files, path)
		case "json":
			path := filepath.Join(r.OutDir, step.Name+".json")
			if err := store.ExportJSON(path, p, pts, curve.Metrics(p, pts)); err != nil {
				return res, err
			}
			res.Files = append(res.Files, path)
		case "trace":
			st := store.New(r.DataDir)
			if err := st.Init(); err != nil {
				return res, err
			}
			id, err := st.Save(p, curve.Metrics(p, pts), pts)
			if err != nil {
				return res, err
			}
			res.TraceID = id
		default:
			return res, fmt.Errorf("unknown output: %s", out)
		}
	}

	return res, nil
}
