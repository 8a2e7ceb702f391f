package export

import (
	"image/gif"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/curvelab/lissalab/internal/curve"
	"github.com/curvelab/lissalab/internal/viz"
)

func TestCurveSVGContainsPath(t *testing.T) {
	pts := curve.Sample(curve.DefaultParams())
	svg := CurveSVG(pts, 800, 600, "#00ff00")

	if !strings.HasPrefix(svg, `<?xml`) {
		t.Errorf("missing xml declaration")
	}
	for _, want := range []string{`width="800"`, `height="600"`, `stroke="#00ff00"`, `d="M`, `</svg>`} {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
}

func TestCurveSVGTooFewPoints(t *testing.T) {
	if svg := CurveSVG([]curve.Point{{T: 0, X: 0, Y: 1}}, 100, 100, "#fff"); svg != "" {
		t.Errorf("expected empty string for a single point, got %d bytes", len(svg))
	}
}

func TestSaveCurveSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figure.svg")
	pts := curve.Sample(curve.DefaultParams())

	if err := SaveCurveSVG(path, pts, 400, 400, "#00ff00"); err != nil {
		t.Fatalf("SaveCurveSVG: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "</svg>") {
		t.Errorf("written file is not closed svg")
	}
}

func TestSaveCurveSVGRejectsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.svg")
	if err := SaveCurveSVG(path, nil, 400, 400, "#00ff00"); err == nil {
		t.Errorf("expected error for no points")
	}
}

func TestCanvasSVGDots(t *testing.T) {
	c := viz.NewCanvas(4, 4)
	c.Set(3, 5)

	svg := CanvasSVG(c, 4, "#ffffff")
	if !strings.Contains(svg, "<circle") {
		t.Errorf("lit dot produced no circle")
	}

	if blank := CanvasSVG(viz.NewCanvas(4, 4), 4, "#ffffff"); strings.Contains(blank, "<circle") {
		t.Errorf("blank canvas produced circles")
	}
}

func TestRecorderRoundTrip(t *testing.T) {
	p := curve.DefaultParams()
	rec := NewRecorder(5)

	for i := 0; i < 3; i++ {
		rec.Capture(viz.Plot(p, curve.Sample(p), 20, 10))
		p.PhaseY = curve.WrapPhase(p.PhaseY + 0.1)
	}
	if rec.FrameCount() != 3 {
		t.Fatalf("FrameCount = %d, want 3", rec.FrameCount())
	}

	path := filepath.Join(t.TempDir(), "anim.gif")
	if err := rec.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.FrameCount() != 0 {
		t.Errorf("recorder not cleared after save")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	decoded, err := gif.DecodeAll(f)
	if err != nil {
		t.Fatalf("DecodeAll: %v", err)
	}
	if len(decoded.Image) != 3 {
		t.Errorf("decoded %d frames, want 3", len(decoded.Image))
	}
	if decoded.Delay[0] != 5 {
		t.Errorf("frame delay = %d, want 5", decoded.Delay[0])
	}
	if decoded.LoopCount != 0 {
		t.Errorf("LoopCount = %d, want 0 (loop forever)", decoded.LoopCount)
	}
}

func TestRecorderEmptySave(t *testing.T) {
	rec := NewRecorder(2)
	if err := rec.Save(filepath.Join(t.TempDir(), "none.gif")); err == nil {
		t.Errorf("expected error saving with no frames")
	}
}
