package curve

import "math"

// PathLength sums the straight-line segments between consecutive
// samples. Under-resolution shows up as a shorter path for the same
// parameters.
func PathLength(pts []Point) float64 {
	total := 0.0
	for i := 1; i < len(pts); i++ {
		dx := pts[i].X - pts[i-1].X
		dy := pts[i].Y - pts[i-1].Y
		total += math.Hypot(dx, dy)
	}
	return total
}

// ClosureError is the gap between the last and first sample. Near zero
// when the sweep spans a whole closure period.
func ClosureError(pts []Point) float64 {
	if len(pts) < 2 {
		return 0
	}
	first, last := pts[0], pts[len(pts)-1]
	return math.Hypot(last.X-first.X, last.Y-first.Y)
}

// Bounds returns the bounding box of the sampled points.
func Bounds(pts []Point) (minX, minY, maxX, maxY float64) {
	if len(pts) == 0 {
		return 0, 0, 0, 0
	}
	minX, maxX = pts[0].X, pts[0].X
	minY, maxY = pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}

// Metrics computes the summary values stored with a trace.
func Metrics(p Params, pts []Point) map[string]float64 {
	m := map[string]float64{
		"path_length":   PathLength(pts),
		"closure_error": ClosureError(pts),
	}
	if cycles, ok := CyclesToClose(p.FreqX, p.FreqY); ok {
		m["closure_cycles"] = cycles
	}
	return m
}
