package energy

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/curvelab/lissalab/internal/curve"
)

// small options keep the n^2 * steps integration fast in tests
func testOptions() Options {
	opts := DefaultOptions()
	opts.GridSize = 21
	opts.Dt = 0.01
	return opts
}

func TestMapPositive(t *testing.T) {
	grid, err := Map(context.Background(), curve.DefaultParams(), testOptions())
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}
	if len(grid) != 21 || len(grid[0]) != 21 {
		t.Fatalf("expected 21x21 grid, got %dx%d", len(grid), len(grid[0]))
	}
	for j, row := range grid {
		for i, v := range row {
			if v < 0 || math.IsNaN(v) {
				t.Fatalf("cell (%d,%d) not a valid exposure: %g", j, i, v)
			}
		}
	}
}

func TestMapCircleSymmetry(t *testing.T) {
	// A circle deposits the same energy at (x, y) and (-x, -y). The
	// discrete t grid breaks the symmetry only at quadrature-error
	// level, so compare with a coarse tolerance.
	p := curve.DefaultParams()
	p.FreqX, p.FreqY = 1, 1
	p.PhaseY = math.Pi / 2

	opts := testOptions()
	opts.Dt = 0.001
	opts.SigmaX2, opts.SigmaY2 = 0.1, 0.1

	grid, err := Map(context.Background(), p, opts)
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}

	n := len(grid)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			a := grid[j][i]
			b := grid[n-1-j][n-1-i]
			if math.Abs(a-b) > 1e-2*(1+math.Abs(a)) {
				t.Fatalf("symmetry broken at (%d,%d): %g vs %g", j, i, a, b)
			}
		}
	}
}

func TestMapSerialMatchesParallel(t *testing.T) {
	p := curve.DefaultParams()
	p.FreqX, p.FreqY = 3, 2

	serial := testOptions()
	serial.Workers = 1
	parallel := testOptions()
	parallel.Workers = 8

	a, err := Map(context.Background(), p, serial)
	if err != nil {
		t.Fatalf("serial map failed: %v", err)
	}
	b, err := Map(context.Background(), p, parallel)
	if err != nil {
		t.Fatalf("parallel map failed: %v", err)
	}

	for j := range a {
		for i := range a[j] {
			if a[j][i] != b[j][i] {
				t.Fatalf("worker count changed result at (%d,%d)", j, i)
			}
		}
	}
}

func TestMapCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Map(ctx, curve.DefaultParams(), testOptions()); err == nil {
		t.Error("cancelled context should abort the map")
	}
}

func TestMapRejectsBadOptions(t *testing.T) {
	opts := testOptions()
	opts.SigmaX2 = 0
	if _, err := Map(context.Background(), curve.DefaultParams(), opts); err == nil {
		t.Error("zero spot width should be rejected")
	}

	opts = testOptions()
	opts.Dt = 100
	if _, err := Map(context.Background(), curve.DefaultParams(), opts); err == nil {
		t.Error("oversized integration step should be rejected")
	}
}

func TestSavePNG(t *testing.T) {
	grid, err := Map(context.Background(), curve.DefaultParams(), testOptions())
	if err != nil {
		t.Fatalf("map failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "exposure.png")
	if err := SavePNG(path, grid); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Size() == 0 {
		t.Error("png file is empty")
	}
}
