// Package sweep evaluates a grid of frequency ratios in parallel,
// scoring each resulting figure so interesting ratios stand out.
package sweep

import (
	"context"
	"sort"
	"sync"

	"github.com/curvelab/lissalab/internal/curve"
)

type Result struct {
	FreqX   float64
	FreqY   float64
	Metrics map[string]float64
	// Closes reports whether the ratio is rational within tolerance.
	Closes bool
	// Cycles is the base periods until the figure closes, when it does.
	Cycles float64
}

type Grid struct {
	FreqsX []float64
	FreqsY []float64
}

// Range builds an inclusive frequency grid with the given step.
func Range(lo, hi, step float64) []float64 {
	if step <= 0 || hi < lo {
		return nil
	}
	out := make([]float64, 0, int((hi-lo)/step)+1)
	for v := lo; v <= hi+step/2; v += step {
		out = append(out, v)
	}
	return out
}

// Run samples every frequency pair of the grid, using base for all
// other parameters. Pairs are distributed over workers goroutines and
// results come back ordered by (FreqX, FreqY).
func Run(ctx context.Context, base curve.Params, grid Grid, workers int) ([]Result, error) {
	if err := base.Validate(); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	type job struct {
		fx, fy float64
	}
	jobs := make(chan job)
	results := make([]Result, 0, len(grid.FreqsX)*len(grid.FreqsY))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				if ctx.Err() != nil {
					return
				}
				p := base
				p.FreqX, p.FreqY = j.fx, j.fy
				pts := curve.Sample(p)

				r := Result{
					FreqX:   j.fx,
					FreqY:   j.fy,
					Metrics: curve.Metrics(p, pts),
				}
				r.Cycles, r.Closes = curve.CyclesToClose(j.fx, j.fy)

				mu.Lock()
				results = append(results, r)
				mu.Unlock()
			}
		}()
	}

feed:
	for _, fx := range grid.FreqsX {
		for _, fy := range grid.FreqsY {
			select {
			case jobs <- job{fx, fy}:
			case <-ctx.Done():
				break feed
			}
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Slice(results, func(i, k int) bool {
		if results[i].FreqX != results[k].FreqX {
			return results[i].FreqX < results[k].FreqX
		}
		return results[i].FreqY < results[k].FreqY
	})
	return results, nil
}
