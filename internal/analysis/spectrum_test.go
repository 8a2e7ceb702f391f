package analysis

import (
	"math"
	"testing"

	"github.com/curvelab/lissalab/internal/curve"
)

func TestDominantRecoversFrequency(t *testing.T) {
	p := curve.DefaultParams()
	p.FreqX, p.FreqY = 3, 2
	p.Resolution = 1024
	p.Cycles = 8
	pts := curve.Sample(p)

	// Bin spacing at this resolution is about 0.125 rad, so the peak
	// should land within a bin of each axis frequency.
	got := XSpectrum(p, pts).Dominant()
	if math.Abs(got-p.FreqX) > 0.2 {
		t.Errorf("x dominant: expected ~%g, got %g", p.FreqX, got)
	}

	got = YSpectrum(p, pts).Dominant()
	if math.Abs(got-p.FreqY) > 0.2 {
		t.Errorf("y dominant: expected ~%g, got %g", p.FreqY, got)
	}
}

func TestSpectrumShape(t *testing.T) {
	p := curve.DefaultParams()
	p.Resolution = 300
	pts := curve.Sample(p)

	s := XSpectrum(p, pts)
	if len(s.Magnitudes) != 256 {
		t.Errorf("expected 256 bins after padding to 512, got %d", len(s.Magnitudes))
	}
	if len(s.Freqs) != len(s.Magnitudes) {
		t.Errorf("freqs and magnitudes disagree: %d vs %d", len(s.Freqs), len(s.Magnitudes))
	}
	if s.Freqs[0] != 0 {
		t.Errorf("first bin should be DC, got %g", s.Freqs[0])
	}
}

func TestSpectrumDegenerate(t *testing.T) {
	s := ComputeSpectrum(nil, func(pt curve.Point) float64 { return pt.X }, 1)
	if len(s.Magnitudes) != 0 {
		t.Errorf("empty input should give empty spectrum")
	}
	if s.Dominant() != 0 {
		t.Errorf("empty spectrum has no dominant frequency")
	}
}

func TestNextPow2(t *testing.T) {
	cases := map[int]int{1: 1, 2: 2, 3: 4, 500: 512, 1024: 1024}
	for in, want := range cases {
		if got := nextPow2(in); got != want {
			t.Errorf("nextPow2(%d) = %d, want %d", in, got, want)
		}
	}
}
