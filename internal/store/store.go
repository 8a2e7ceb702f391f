package store

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/curvelab/lissalab/internal/curve"
)

// Store persists sampled figures under a base directory, one
// subdirectory per trace holding metadata.json and points.csv.
type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type TraceMetadata struct {
	ID        string             `json:"id"`
	Timestamp time.Time          `json:"timestamp"`
	Params    curve.Params       `json:"params"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes a trace and returns its ID.
func (s *Store) Save(p curve.Params, metrics map[string]float64, pts []curve.Point) (string, error) {
	traceID := fmt.Sprintf("trace_%d", time.Now().Unix())
	traceDir := filepath.Join(s.baseDir, traceID)

	if err := os.MkdirAll(traceDir, 0755); err != nil {
		return "", err
	}

	meta := TraceMetadata{
		ID:        traceID,
		Timestamp: time.Now(),
		Params:    p,
		Metrics:   metrics,
	}

	metaPath := filepath.Join(traceDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvPath := filepath.Join(traceDir, "points.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"t", "x", "y"}); err != nil {
		return "", err
	}
	for _, pt := range pts {
		row := []string{
			strconv.FormatFloat(pt.T, 'f', 6, 64),
			strconv.FormatFloat(pt.X, 'f', 6, 64),
			strconv.FormatFloat(pt.Y, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return traceID, nil
}

// List returns metadata for every readable trace. Directories without
// valid metadata are skipped.
func (s *Store) List() ([]TraceMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []TraceMetadata{}, nil
		}
		return nil, err
	}

	traces := make([]TraceMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta TraceMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		traces = append(traces, meta)
	}

	return traces, nil
}

func (s *Store) Load(traceID string) (*TraceMetadata, error) {
	metaPath := filepath.Join(s.baseDir, traceID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta TraceMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadPoints reads back the sampled points of a trace.
func (s *Store) LoadPoints(traceID string) ([]curve.Point, error) {
	csvPath := filepath.Join(s.baseDir, traceID, "points.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []curve.Point{}, nil
	}

	pts := make([]curve.Point, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		x, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		pts = append(pts, curve.Point{T: t, X: x, Y: y})
	}

	return pts, nil
}
