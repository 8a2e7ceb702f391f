package viz

import (
	"strings"
	"testing"

	"github.com/curvelab/lissalab/internal/curve"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(4, 2)

	c.Set(0, 0)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1 set, got %x", c.Grid[0][0])
	}

	c.Set(1, 3)
	if c.Grid[0][0]&0x80 == 0 {
		t.Errorf("expected dot 8 set, got %x", c.Grid[0][0])
	}

	// Out of range is a no-op.
	c.Set(-1, 0)
	c.Set(100, 100)
}

func TestCanvasClear(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Set(2, 2)
	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("clear left residue: %x", r)
			}
		}
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Line(0, 0, 19, 0)

	px, _ := c.PixelSize()
	for x := 0; x < px; x++ {
		if c.Grid[0][x/2]&dotBits[0][x%2] == 0 {
			t.Fatalf("horizontal line missing pixel %d", x)
		}
	}
}

func TestCanvasString(t *testing.T) {
	c := NewCanvas(5, 2)
	s := c.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(lines))
	}
	for _, line := range lines {
		if len([]rune(line)) != 5 {
			t.Errorf("expected 5 cells per row, got %d", len([]rune(line)))
		}
	}
}

func TestPlotStaysInBounds(t *testing.T) {
	p := curve.DefaultParams()
	p.FreqX, p.FreqY = 5, 4
	pts := curve.Sample(p)

	// Must not panic and must set at least one dot.
	c := Plot(p, pts, 40, 20)
	set := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				set++
			}
		}
	}
	if set == 0 {
		t.Error("plot drew nothing")
	}
}

func TestHeatmapRampOrder(t *testing.T) {
	grid := [][]float64{{0, 0.5, 1}}
	out := strings.TrimRight(Heatmap(grid), "\n")
	cells := []rune(out)
	if len(cells) != 3 {
		t.Fatalf("expected 3 cells, got %d", len(cells))
	}
	if cells[0] != ' ' {
		t.Errorf("zero cell should be blank, got %q", cells[0])
	}
	if cells[2] != '@' {
		t.Errorf("max cell should be brightest, got %q", cells[2])
	}
}

func TestThemeCycle(t *testing.T) {
	defer SetTheme("scope")

	if !SetTheme("laser") {
		t.Fatal("laser theme missing")
	}
	start := CurrentTheme.Name
	for range ThemeNames() {
		NextTheme()
	}
	if CurrentTheme.Name != start {
		t.Errorf("full cycle should return to %s, got %s", start, CurrentTheme.Name)
	}

	if SetTheme("nope") {
		t.Error("unknown theme should not apply")
	}
}
