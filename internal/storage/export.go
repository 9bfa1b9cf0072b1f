package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/numlab/internal/config"
)

type ExportData struct {
	ID      string               `json:"id"`
	Lab     string               `json:"lab"`
	Config  *config.Config       `json:"config"`
	Metrics map[string]float64   `json:"metrics"`
	Values  map[string][]float64 `json:"values,omitempty"`
	Series  []Series             `json:"series"`
}

// Export gathers a stored run into one document.
func (s *Store) Export(runID string) (*ExportData, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	series, err := s.LoadSeries(runID)
	if err != nil {
		return nil, err
	}
	return &ExportData{
		ID:      meta.ID,
		Lab:     meta.Lab,
		Config:  meta.Config,
		Metrics: meta.Metrics,
		Values:  meta.Values,
		Series:  series,
	}, nil
}

func WriteJSON(w io.Writer, data *ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, data *ExportData) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}

// WriteCSV writes the series side by side as x,<name> column pairs. Shorter
// series leave their cells empty.
func WriteCSV(w io.Writer, series []Series) error {
	cw := csv.NewWriter(w)

	header := make([]string, 0, 2*len(series))
	rows := 0
	for _, sr := range series {
		header = append(header, sr.Name+"_x", sr.Name+"_y")
		if len(sr.Points) > rows {
			rows = len(sr.Points)
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for i := 0; i < rows; i++ {
		row := make([]string, 0, len(header))
		for _, sr := range series {
			if i < len(sr.Points) {
				row = append(row,
					strconv.FormatFloat(sr.Points[i].X, 'g', -1, 64),
					strconv.FormatFloat(sr.Points[i].Y, 'g', -1, 64))
			} else {
				row = append(row, "", "")
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
