package analysis

import (
	"math"
	"math/cmplx"

	"github.com/curvelab/lissalab/internal/curve"
	"github.com/mjibson/go-dsp/fft"
)

// Spectrum is the one-sided magnitude spectrum of a sampled signal.
type Spectrum struct {
	Magnitudes []float64
	// Freqs holds the angular frequency of each bin, in rad per unit
	// of the curve's parameter t.
	Freqs []float64
}

// ComputeSpectrum runs an FFT over one axis of a sampled figure. The
// signal is Hann-windowed and zero-padded to a power of two.
func ComputeSpectrum(pts []curve.Point, axis func(curve.Point) float64, tRange float64) Spectrum {
	n := len(pts)
	if n < 2 || tRange <= 0 {
		return Spectrum{}
	}

	padded := nextPow2(n)
	signal := make([]float64, padded)
	for i, pt := range pts {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		signal[i] = axis(pt) * window
	}

	spectrum := fft.FFTReal(signal)

	// Sample spacing in t, so bin k sits at 2*pi*k/(padded*dt) rad.
	dt := tRange / float64(n-1)
	half := padded / 2
	mags := make([]float64, half)
	freqs := make([]float64, half)
	for i := 0; i < half; i++ {
		mags[i] = cmplx.Abs(spectrum[i])
		freqs[i] = 2 * math.Pi * float64(i) / (float64(padded) * dt)
	}

	return Spectrum{Magnitudes: mags, Freqs: freqs}
}

// XSpectrum computes the spectrum of the x axis of a sampled figure.
func XSpectrum(p curve.Params, pts []curve.Point) Spectrum {
	return ComputeSpectrum(pts, func(pt curve.Point) float64 { return pt.X }, p.TRange())
}

// YSpectrum computes the spectrum of the y axis.
func YSpectrum(p curve.Params, pts []curve.Point) Spectrum {
	return ComputeSpectrum(pts, func(pt curve.Point) float64 { return pt.Y }, p.TRange())
}

// Dominant returns the angular frequency of the strongest non-DC bin.
func (s Spectrum) Dominant() float64 {
	best, bestMag := 0, 0.0
	for i := 1; i < len(s.Magnitudes); i++ {
		if s.Magnitudes[i] > bestMag {
			best, bestMag = i, s.Magnitudes[i]
		}
	}
	if best == 0 {
		return 0
	}
	return s.Freqs[best]
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
