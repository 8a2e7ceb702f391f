// Package curve implements Lissajous figure sampling.
//
// A Lissajous figure is the parametric curve
//
//	x(t) = Ax * sin(fx*t + px)
//	y(t) = Ay * sin(fy*t + py)
//
// traced as t sweeps [0, 2π*cycles]. The package defines:
//
//   - [Params]: the full parameter record for a figure
//   - [Sample]: eager evaluation into a point slice
//   - [Sampler]: lazy, restartable point stream
//   - [CyclesToClose]: closure analysis (the figure closes iff fx/fy
//     is rational)
//
// Sampling is pure: the same Params always yield the same points.
package curve
