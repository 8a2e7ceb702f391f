package store

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/curvelab/lissalab/internal/curve"
)

type ExportData struct {
	Params  curve.Params       `json:"params"`
	Steps   int                `json:"steps"`
	Points  []curve.Point      `json:"points"`
	Metrics map[string]float64 `json:"metrics"`
}

// ExportJSON writes a sampled figure and its metrics as indented JSON.
func ExportJSON(path string, p curve.Params, pts []curve.Point, metrics map[string]float64) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, p, pts, metrics)
}

// ExportJSONStdout writes the same payload to standard output.
func ExportJSONStdout(p curve.Params, pts []curve.Point, metrics map[string]float64) error {
	return writeJSON(os.Stdout, p, pts, metrics)
}

func writeJSON(w io.Writer, p curve.Params, pts []curve.Point, metrics map[string]float64) error {
	data := ExportData{
		Params:  p,
		Steps:   len(pts),
		Points:  pts,
		Metrics: metrics,
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportCSV writes the sampled points as t,x,y rows.
func ExportCSV(w io.Writer, pts []curve.Point) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"t", "x", "y"}); err != nil {
		return err
	}
	for _, pt := range pts {
		row := []string{
			strconv.FormatFloat(pt.T, 'f', 6, 64),
			strconv.FormatFloat(pt.X, 'f', 6, 64),
			strconv.FormatFloat(pt.Y, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return cw.Error()
}
