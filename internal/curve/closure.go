package curve

import "math"

// maxDenominator bounds the rational search. Ratios needing a larger
// denominator are treated as irrational for display purposes.
const maxDenominator = 1000

// Ratio approximates r as a fraction p/q in lowest terms using a
// continued fraction expansion. ok is false when no denominator up to
// maxDenominator reproduces r within tol.
func Ratio(r, tol float64) (p, q int, ok bool) {
	if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, 0, false
	}

	// Convergents h/k of the continued fraction of r.
	h0, h1 := 1, int(math.Floor(r))
	k0, k1 := 0, 1
	frac := r - math.Floor(r)

	for k1 <= maxDenominator {
		if math.Abs(r-float64(h1)/float64(k1)) < tol {
			return h1, k1, true
		}
		if frac == 0 {
			break
		}
		frac = 1 / frac
		a := int(math.Floor(frac))
		frac -= math.Floor(frac)
		h0, h1 = h1, a*h1+h0
		k0, k1 = k1, a*k1+k0
	}
	return 0, 0, false
}

// CyclesToClose returns the number of 2π sweeps after which the figure
// retraces itself. ok is false when fx/fy is not recognizably rational,
// in which case the figure never closes.
func CyclesToClose(fx, fy float64) (float64, bool) {
	p, _, ok := Ratio(fx/fy, 1e-9)
	if !ok {
		return 0, false
	}
	return float64(p) / fx, true
}
