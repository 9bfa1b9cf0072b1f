package config

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/san-kum/numlab/internal/numeric"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Lab != "roots" {
		t.Errorf("expected lab roots, got %s", cfg.Lab)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("ode", "riccati")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Y0 != 0.5 {
		t.Errorf("expected y0 0.5, got %f", cfg.Y0)
	}
}

func TestGetPresetIsCopy(t *testing.T) {
	cfg := GetPreset("regress", "decay")
	cfg.Y[0] = 0

	if again := GetPreset("regress", "decay"); again.Y[0] != 521 {
		t.Errorf("preset was mutated through a copy: %v", again.Y)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("roots", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "tanh"); cfg != nil {
		t.Error("expected nil for nonexistent lab")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("integrate")
	want := []string{"cos-ratio", "inv-sqrt", "rational"}
	if len(presets) != len(want) {
		t.Fatalf("expected %v, got %v", want, presets)
	}
	for i := range want {
		if presets[i] != want[i] {
			t.Errorf("expected %v, got %v", want, presets)
		}
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent lab")
	}
}

func TestAllPresetsValidate(t *testing.T) {
	for _, lab := range Labs {
		names := ListPresets(lab)
		if len(names) == 0 {
			t.Errorf("lab %s has no presets", lab)
		}
		for _, name := range names {
			if err := GetPreset(lab, name).Validate(); err != nil {
				t.Errorf("%s/%s: %v", lab, name, err)
			}
		}
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		want   error
	}{
		{"unknown lab", func(c *Config) { c.Lab = "fft" }, numeric.ErrInvalidInput},
		{"tolerance off menu", func(c *Config) { c.Tolerance = 1e-5 }, numeric.ErrInvalidInput},
		{"negative tolerance", func(c *Config) { c.Tolerance = -1 }, numeric.ErrInvalidInput},
		{"divisions off menu", func(c *Config) { c.Divisions = 30 }, numeric.ErrInvalidInput},
		{"unknown method", func(c *Config) { c.Method = "secant" }, numeric.ErrInvalidInput},
		{"method of another lab", func(c *Config) { c.Method = "rk4" }, numeric.ErrInvalidInput},
		{"empty expr", func(c *Config) { c.Expr = "" }, numeric.ErrInvalidInput},
		{"reversed range", func(c *Config) { c.A, c.B = 2, -2 }, numeric.ErrDegenerateRange},
		{"regress mismatch", func(c *Config) { c.Lab = "regress"; c.X = []float64{1, 2}; c.Y = []float64{1} }, numeric.ErrDegenerateRange},
		{"interpolate display range", func(c *Config) { c.Lab = "interpolate"; c.XMin, c.XMax = 1, 1 }, numeric.ErrDegenerateRange},
		{"ode zero step", func(c *Config) { c.Lab = "ode"; c.X0 = 1; c.B = 4; c.Step = 0 }, numeric.ErrInvalidStep},
		{"ode wrong direction", func(c *Config) { c.Lab = "ode"; c.X0 = 1; c.B = 4; c.Step = -0.1 }, numeric.ErrInvalidStep},
		{"ode tiny step", func(c *Config) { c.Lab = "ode"; c.X0 = 1; c.B = 4; c.Step = 1e-300 }, numeric.ErrInvalidStep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.yaml")

	cfg := GetPreset("regress", "decay")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Lab != "regress" || len(loaded.Y) != 8 || loaded.Y[7] != 152 {
		t.Errorf("round trip lost data: %+v", loaded)
	}
	if err := loaded.Validate(); err != nil {
		t.Errorf("loaded config should validate: %v", err)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lab.yaml")
	cfg := &Config{Lab: "integrate", Expr: "x", A: 0, B: 1}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Divisions != DefaultDivisions {
		t.Errorf("expected default divisions %d, got %d", DefaultDivisions, loaded.Divisions)
	}
}
