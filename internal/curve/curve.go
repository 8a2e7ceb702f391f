package curve

import (
	"fmt"
	"math"
)

const TwoPi = 2 * math.Pi

// Point is a single sample of the figure.
type Point struct {
	T float64
	X float64
	Y float64
}

// Params describes one Lissajous figure. PhaseY is the field the
// viewer animates.
type Params struct {
	FreqX      float64
	FreqY      float64
	AmpX       float64
	AmpY       float64
	PhaseX     float64
	PhaseY     float64
	Resolution int
	Cycles     float64
}

func DefaultParams() Params {
	return Params{
		FreqX:      1.0,
		FreqY:      2.0,
		AmpX:       1.0,
		AmpY:       1.0,
		PhaseX:     0.0,
		PhaseY:     0.0,
		Resolution: 1000,
		Cycles:     1.0,
	}
}

func (p Params) Validate() error {
	if p.FreqX <= 0 {
		return fmt.Errorf("freq_x must be positive, got %g", p.FreqX)
	}
	if p.FreqY <= 0 {
		return fmt.Errorf("freq_y must be positive, got %g", p.FreqY)
	}
	if p.AmpX <= 0 {
		return fmt.Errorf("amp_x must be positive, got %g", p.AmpX)
	}
	if p.AmpY <= 0 {
		return fmt.Errorf("amp_y must be positive, got %g", p.AmpY)
	}
	if p.Resolution < 2 {
		return fmt.Errorf("resolution must be at least 2, got %d", p.Resolution)
	}
	if p.Cycles <= 0 {
		return fmt.Errorf("cycles must be positive, got %g", p.Cycles)
	}
	return nil
}

// At evaluates the figure at parameter t.
func (p Params) At(t float64) Point {
	return Point{
		T: t,
		X: p.AmpX * math.Sin(p.FreqX*t+p.PhaseX),
		Y: p.AmpY * math.Sin(p.FreqY*t+p.PhaseY),
	}
}

// TRange returns the sweep domain [0, 2π*cycles].
func (p Params) TRange() float64 {
	return TwoPi * p.Cycles
}

// Sample evaluates the figure at exactly p.Resolution uniformly spaced
// values of t spanning the closed sweep interval, both endpoints
// included.
func Sample(p Params) []Point {
	s := NewSampler(p)
	pts := make([]Point, 0, p.Resolution)
	for {
		pt, ok := s.Next()
		if !ok {
			break
		}
		pts = append(pts, pt)
	}
	return pts
}

// Sampler walks the figure point by point. Reset rewinds to t=0.
type Sampler struct {
	params Params
	step   float64
	i      int
}

func NewSampler(p Params) *Sampler {
	return &Sampler{
		params: p,
		step:   p.TRange() / float64(p.Resolution-1),
	}
}

func (s *Sampler) Next() (Point, bool) {
	if s.i >= s.params.Resolution {
		return Point{}, false
	}
	t := float64(s.i) * s.step
	s.i++
	return s.params.At(t), true
}

func (s *Sampler) Reset() {
	s.i = 0
}

// Remaining reports how many points Next will still yield.
func (s *Sampler) Remaining() int {
	return s.params.Resolution - s.i
}

// WrapPhase maps any phase to the canonical interval [0, 2π).
func WrapPhase(phase float64) float64 {
	w := math.Mod(phase, TwoPi)
	if w < 0 {
		w += TwoPi
	}
	return w
}
