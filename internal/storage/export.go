package storage

import (
	"encoding/json"
	"os"
)

type ExportData struct {
	Meta      RunMetadata `json:"meta"`
	Ticks     []int       `json:"ticks"`
	Times     []float64   `json:"times"`
	Fill      []float64   `json:"fill"`
	Angle     []float64   `json:"angle"`
	Positions [][]float64 `json:"positions"`
}

func ExportJSON(path string, meta RunMetadata, records []Record) error {
	data := ExportData{
		Meta:      meta,
		Ticks:     make([]int, len(records)),
		Times:     make([]float64, len(records)),
		Fill:      make([]float64, len(records)),
		Angle:     make([]float64, len(records)),
		Positions: make([][]float64, len(records)),
	}
	for i, r := range records {
		data.Ticks[i] = r.Tick
		data.Times[i] = r.Time
		data.Fill[i] = r.Fill
		data.Angle[i] = r.Angle
		data.Positions[i] = r.Positions
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
