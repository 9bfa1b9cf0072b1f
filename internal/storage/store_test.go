package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/numeric"
)

func sampleRun() Run {
	return Run{
		Config:  config.GetPreset("ode", "riccati"),
		Metrics: map[string]float64{"max_abs_error": 1.5e-9},
		Values:  map[string][]float64{"roots": {1.2}},
		Series: []Series{
			{Name: "rk4", Points: []numeric.Point{{X: 1, Y: 0.5}, {X: 1.1, Y: 0.47619047619047616}}},
			{Name: "exact", Points: []numeric.Point{{X: 1, Y: 0.5}}},
		},
	}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "ode_") || len(runID) != len("ode_")+8 {
		t.Errorf("unexpected run id %q", runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Lab != "ode" {
		t.Errorf("expected lab 'ode', got '%s'", meta.Lab)
	}
	if meta.Config == nil || meta.Config.Step != 0.1 {
		t.Errorf("config not stored: %+v", meta.Config)
	}
	if meta.Metrics["max_abs_error"] != 1.5e-9 {
		t.Errorf("expected metric 1.5e-9, got %g", meta.Metrics["max_abs_error"])
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}
	if len(series) != 2 || series[0].Name != "rk4" || series[1].Name != "exact" {
		t.Fatalf("unexpected series: %+v", series)
	}
	// full precision survives the CSV round trip
	if series[0].Points[1].Y != 0.47619047619047616 {
		t.Errorf("precision lost: %v", series[0].Points[1].Y)
	}

	rk4, ok := Find(series, "rk4")
	if !ok || len(rk4.Points) != 2 {
		t.Errorf("find rk4 failed: %+v", rk4)
	}
	if _, ok := Find(series, "euler"); ok {
		t.Error("found a series that was never saved")
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	for i := 0; i < 2; i++ {
		if _, err := st.Save(sampleRun()); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}
	// stray entries are skipped
	if err := os.Mkdir(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "points.csv"} {
		if _, err := os.Stat(filepath.Join(tmpDir, runID, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestStoreRejects(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Save(Run{}); !errors.Is(err, numeric.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for missing config, got %v", err)
	}
	for _, id := range []string{"", "..", "../etc", `a\b`} {
		if _, err := st.Load(id); !errors.Is(err, numeric.ErrInvalidInput) {
			t.Errorf("Load(%q): expected ErrInvalidInput, got %v", id, err)
		}
	}
	if _, err := st.Load("missing"); err == nil {
		t.Error("expected error for missing run")
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)

	runID, err := st.Save(sampleRun())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := st.Export(runID)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	path := filepath.Join(dir, "out.json")
	if err := ExportJSON(path, data); err != nil {
		t.Fatalf("export json failed: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var decoded ExportData
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("exported json invalid: %v", err)
	}
	if decoded.ID != runID || len(decoded.Series) != 2 || decoded.Values["roots"][0] != 1.2 {
		t.Errorf("unexpected export: %+v", decoded)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRun().Series); err != nil {
		t.Fatalf("write csv failed: %v", err)
	}

	want := "rk4_x,rk4_y,exact_x,exact_y\n" +
		"1,0.5,1,0.5\n" +
		"1.1,0.47619047619047616,,\n"
	if buf.String() != want {
		t.Errorf("csv mismatch:\n got %q\nwant %q", buf.String(), want)
	}
}
