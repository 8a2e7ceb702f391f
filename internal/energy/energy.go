// Package energy computes the exposure map of a scanned figure: the
// time integral of a Gaussian spot sweeping along the curve, evaluated
// on a position grid with the trapezium rule.
package energy

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"

	"github.com/curvelab/lissalab/internal/curve"
)

type Options struct {
	// GridSize is the side length of the square output grid.
	GridSize int
	// SigmaX2 and SigmaY2 are the squared spot widths.
	SigmaX2 float64
	SigmaY2 float64
	// Dt is the integration step along the curve parameter.
	Dt      float64
	Workers int
}

func DefaultOptions() Options {
	return Options{
		GridSize: 201,
		SigmaX2:  0.005,
		SigmaY2:  0.005,
		Dt:       0.001,
		Workers:  runtime.NumCPU(),
	}
}

func (o Options) validate() error {
	if o.GridSize < 2 {
		return fmt.Errorf("grid size must be at least 2, got %d", o.GridSize)
	}
	if o.SigmaX2 <= 0 || o.SigmaY2 <= 0 {
		return fmt.Errorf("spot widths must be positive, got %g and %g", o.SigmaX2, o.SigmaY2)
	}
	if o.Dt <= 0 {
		return fmt.Errorf("integration step must be positive, got %g", o.Dt)
	}
	return nil
}

// Map integrates the spot power over the curve for every grid cell.
// The grid spans the figure's amplitude box, row-major with grid[j][i]
// at (x[i], y[j]) and row 0 at the bottom. Rows are distributed over
// opts.Workers goroutines.
func Map(ctx context.Context, p curve.Params, opts Options) ([][]float64, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	n := opts.GridSize
	steps := int(p.TRange() / opts.Dt)
	if steps < 2 {
		return nil, fmt.Errorf("integration step %g too large for range %g", opts.Dt, p.TRange())
	}

	tx := make([]float64, steps)
	ty := make([]float64, steps)
	for k := 0; k < steps; k++ {
		pt := p.At(float64(k) * opts.Dt)
		tx[k] = pt.X
		ty[k] = pt.Y
	}

	xs := linspace(-p.AmpX, p.AmpX, n)
	ys := linspace(-p.AmpY, p.AmpY, n)

	// Per-column squared x distances, shared read-only by all rows.
	dx2 := make([][]float64, n)
	for i := range dx2 {
		dx2[i] = make([]float64, steps)
		for k := 0; k < steps; k++ {
			d := xs[i] - tx[k]
			dx2[i][k] = d * d / opts.SigmaX2
		}
	}

	grid := make([][]float64, n)
	for j := range grid {
		grid[j] = make([]float64, n)
	}

	rows := make(chan int)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			dy2 := make([]float64, steps)
			for j := range rows {
				if err := ctx.Err(); err != nil {
					errs[idx] = err
					return
				}
				for k := 0; k < steps; k++ {
					d := ys[j] - ty[k]
					dy2[k] = d * d / opts.SigmaY2
				}
				for i := 0; i < n; i++ {
					grid[j][i] = integrateRow(dx2[i], dy2, opts.Dt)
				}
			}
		}(w)
	}

feed:
	for j := 0; j < n; j++ {
		select {
		case rows <- j:
		case <-ctx.Done():
			break feed
		}
	}
	close(rows)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return grid, nil
}

// integrateRow applies the trapezium rule to the spot power at one
// grid cell: endpoints weigh half, interior points weigh full.
func integrateRow(dx2, dy2 []float64, dt float64) float64 {
	last := len(dx2) - 1
	sum := 0.0
	for k := 1; k < last; k++ {
		sum += math.Exp(-0.5 * (dx2[k] + dy2[k]))
	}
	edges := (math.Exp(-0.5*(dx2[0]+dy2[0])) + math.Exp(-0.5*(dx2[last]+dy2[last]))) / 2
	return dt * (sum + edges)
}

func linspace(lo, hi float64, n int) []float64 {
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}
