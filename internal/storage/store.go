package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/slosh/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
	fixedCols    = 6
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir(runID string) string {
	return filepath.Join(s.baseDir, runID)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Preset    string             `json:"preset"`
	Source    string             `json:"source"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	TickRate  float64            `json:"tick_rate"`
	Ticks     int                `json:"ticks"`
	Nodes     int                `json:"nodes"`
	Params    map[string]float64 `json:"params,omitempty"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Record is one stored tick.
type Record struct {
	Tick      int
	Time      float64
	Fill      float64
	Target    float64
	Angle     float64
	Phase     float64
	Positions []float64
}

func FromSnapshot(s dynamo.Snapshot) Record {
	return Record{
		Tick:      s.Tick,
		Time:      s.Time,
		Fill:      s.Fill,
		Target:    s.FillTarget,
		Angle:     s.Angle,
		Phase:     s.Phase,
		Positions: s.Positions,
	}
}

// Save writes a run and returns its ID. An empty meta.ID gets a fresh one.
func (s *Store) Save(meta RunMetadata, records []Record) (string, error) {
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = time.Now()
	}
	meta.Ticks = len(records)
	if meta.Nodes == 0 && len(records) > 0 {
		meta.Nodes = len(records[0].Positions)
	}

	runDir := s.Dir(meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, framesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	header := []string{"tick", "time", "fill", "target", "angle", "phase"}
	for i := 0; i < meta.Nodes; i++ {
		header = append(header, fmt.Sprintf("n%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for _, r := range records {
		row := make([]string, 0, fixedCols+len(r.Positions))
		row = append(row,
			strconv.Itoa(r.Tick),
			formatFloat(r.Time),
			formatFloat(r.Fill),
			formatFloat(r.Target),
			formatFloat(r.Angle),
			formatFloat(r.Phase),
		)
		for _, p := range r.Positions {
			row = append(row, formatFloat(p))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// List returns stored runs, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir(runID), metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadRecords(runID string) ([]Record, error) {
	file, err := os.Open(filepath.Join(s.Dir(runID), framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("run %s: %w", runID, dynamo.ErrNoData)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < fixedCols {
			continue
		}
		tick, err := strconv.Atoi(row[0])
		if err != nil {
			continue
		}
		vals := make([]float64, len(row)-1)
		bad := false
		for j, field := range row[1:] {
			if vals[j], err = strconv.ParseFloat(field, 64); err != nil {
				bad = true
				break
			}
		}
		if bad {
			continue
		}
		records = append(records, Record{
			Tick:      tick,
			Time:      vals[0],
			Fill:      vals[1],
			Target:    vals[2],
			Angle:     vals[3],
			Phase:     vals[4],
			Positions: vals[fixedCols-1:],
		})
	}
	return records, nil
}

// Series extracts one column from stored records by name: a fixed column
// ("fill", "angle", ...) or a node ("n12").
func Series(records []Record, column string) ([]float64, error) {
	pick, err := picker(column)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(records))
	for i, r := range records {
		out[i] = pick(r)
	}
	return out, nil
}

func picker(column string) (func(Record) float64, error) {
	switch column {
	case "time":
		return func(r Record) float64 { return r.Time }, nil
	case "fill":
		return func(r Record) float64 { return r.Fill }, nil
	case "target":
		return func(r Record) float64 { return r.Target }, nil
	case "angle":
		return func(r Record) float64 { return r.Angle }, nil
	case "phase":
		return func(r Record) float64 { return r.Phase }, nil
	}
	var node int
	if _, err := fmt.Sscanf(column, "n%d", &node); err != nil || node < 0 {
		return nil, fmt.Errorf("unknown column %q", column)
	}
	return func(r Record) float64 {
		if node >= len(r.Positions) {
			return 0
		}
		return r.Positions[node]
	}, nil
}
