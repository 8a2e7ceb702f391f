package store

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/curvelab/lissalab/internal/curve"
)

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	p := curve.DefaultParams()
	p.FreqX, p.FreqY = 3, 2
	p.Resolution = 50
	pts := curve.Sample(p)
	metrics := map[string]float64{"path_length": 12.5}

	traceID, err := st.Save(p, metrics, pts)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(traceID, "trace_") {
		t.Errorf("unexpected trace id %q", traceID)
	}

	meta, err := st.Load(traceID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Params.FreqX != 3 || meta.Params.FreqY != 2 {
		t.Errorf("params round trip broke: %+v", meta.Params)
	}
	if meta.Metrics["path_length"] != 12.5 {
		t.Errorf("expected path_length 12.5, got %f", meta.Metrics["path_length"])
	}

	loaded, err := st.LoadPoints(traceID)
	if err != nil {
		t.Fatalf("load points failed: %v", err)
	}
	if len(loaded) != len(pts) {
		t.Fatalf("expected %d points, got %d", len(pts), len(loaded))
	}
	for i := range loaded {
		if math.Abs(loaded[i].X-pts[i].X) > 1e-5 {
			t.Fatalf("point %d x drifted: %f vs %f", i, loaded[i].X, pts[i].X)
		}
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	traces, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(traces) != 0 {
		t.Errorf("expected empty list, got %d", len(traces))
	}

	p := curve.DefaultParams()
	p.Resolution = 10
	if _, err := st.Save(p, nil, curve.Sample(p)); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	traces, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(traces) != 1 {
		t.Errorf("expected 1 trace, got %d", len(traces))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New("/nonexistent/path/for/test")
	traces, err := st.List()
	if err != nil {
		t.Fatalf("missing base dir should list empty, got %v", err)
	}
	if len(traces) != 0 {
		t.Errorf("expected empty list, got %d", len(traces))
	}
}

func TestExportCSV(t *testing.T) {
	pts := []curve.Point{
		{T: 0, X: 0, Y: 1},
		{T: 0.5, X: 0.25, Y: 0.75},
	}

	var buf bytes.Buffer
	if err := ExportCSV(&buf, pts); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %d lines", len(lines))
	}
	if lines[0] != "t,x,y" {
		t.Errorf("bad header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[2], "0.500000,0.250000,0.750000") {
		t.Errorf("bad row: %q", lines[2])
	}
}

func TestExportJSONRoundTrip(t *testing.T) {
	p := curve.DefaultParams()
	p.Resolution = 5
	pts := curve.Sample(p)

	var buf bytes.Buffer
	if err := writeJSON(&buf, p, pts, map[string]float64{"closure_error": 0}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if data.Steps != 5 || len(data.Points) != 5 {
		t.Errorf("expected 5 points, got steps=%d len=%d", data.Steps, len(data.Points))
	}
	if data.Params.Resolution != 5 {
		t.Errorf("params did not round trip: %+v", data.Params)
	}
}
