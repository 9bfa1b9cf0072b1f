package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/numeric"
)

const (
	metadataFile = "metadata.json"
	pointsFile   = "points.csv"
)

// Series is one named curve of a run, e.g. "f", "rk4" or "exact".
type Series struct {
	Name   string          `json:"name"`
	Points []numeric.Point `json:"points"`
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string               `json:"id"`
	Lab       string               `json:"lab"`
	Timestamp time.Time            `json:"timestamp"`
	Config    *config.Config       `json:"config"`
	Metrics   map[string]float64   `json:"metrics"`
	Values    map[string][]float64 `json:"values,omitempty"`
	Series    []string             `json:"series"`
}

// Run is everything a lab produced that is worth keeping.
type Run struct {
	Config  *config.Config
	Metrics map[string]float64

	// Values holds result lists such as roots per method.
	Values map[string][]float64
	Series []Series
}

// Save writes metadata.json and points.csv under a fresh run directory.
func (s *Store) Save(run Run) (string, error) {
	if run.Config == nil {
		return "", fmt.Errorf("storage: %w: run without config", numeric.ErrInvalidInput)
	}

	runID := fmt.Sprintf("%s_%s", run.Config.Lab, uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Lab:       run.Config.Lab,
		Timestamp: time.Now(),
		Config:    run.Config,
		Metrics:   run.Metrics,
		Values:    run.Values,
		Series:    make([]string, 0, len(run.Series)),
	}
	for _, sr := range run.Series {
		meta.Series = append(meta.Series, sr.Name)
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writePoints(filepath.Join(runDir, pointsFile), run.Series); err != nil {
		return "", err
	}

	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writePoints(path string, series []Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"series", "x", "y"}); err != nil {
		return err
	}
	for _, sr := range series {
		for _, p := range sr.Points {
			row := []string{
				sr.Name,
				strconv.FormatFloat(p.X, 'g', -1, 64),
				strconv.FormatFloat(p.Y, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) runDir(runID string) (string, error) {
	if runID == "" || strings.ContainsAny(runID, `/\`) || runID == "." || runID == ".." {
		return "", fmt.Errorf("storage: %w: bad run id %q", numeric.ErrInvalidInput, runID)
	}
	return filepath.Join(s.baseDir, runID), nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(dir, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadSeries reads points.csv back, keeping the series order of the file.
func (s *Store) LoadSeries(runID string) ([]Series, error) {
	dir, err := s.runDir(runID)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(filepath.Join(dir, pointsFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := make([]Series, 0)
	index := make(map[string]int)
	for i := 1; i < len(records); i++ {
		rec := records[i]

		x, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", pointsFile, i+1, err)
		}
		y, err := strconv.ParseFloat(rec[2], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", pointsFile, i+1, err)
		}

		idx, ok := index[rec[0]]
		if !ok {
			idx = len(series)
			index[rec[0]] = idx
			series = append(series, Series{Name: rec[0]})
		}
		series[idx].Points = append(series[idx].Points, numeric.Point{X: x, Y: y})
	}

	return series, nil
}

// Find returns the named series of a run.
func Find(series []Series, name string) (Series, bool) {
	for _, sr := range series {
		if sr.Name == name {
			return sr, true
		}
	}
	return Series{}, false
}
