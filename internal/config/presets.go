package config

import "sort"

var Presets = map[string]map[string]*Config{
	"roots": {
		"tanh": {
			Lab: "roots", Expr: "x*tanh(x) - 1", A: -2, B: 2, Tolerance: 1e-6,
		},
		"cubic": {
			Lab: "roots", Expr: "x*x*x - 2*x - 5", A: -3, B: 3, Tolerance: 1e-8, Method: "newton",
		},
	},
	"integrate": {
		"inv-sqrt": {
			Lab: "integrate", Expr: "1/sqrt(x*x + 1)", A: 0.2, B: 1.2, Divisions: 100, Seed: 1,
		},
		"cos-ratio": {
			Lab: "integrate", Expr: "cos(x)/(x + 1)", A: 0.6, B: 1.4, Divisions: 100, Seed: 1,
		},
		"rational": {
			Lab: "integrate", Expr: "1/(1.5*x*x + 0.7)", A: 1.4, B: 2.6, Divisions: 100, Seed: 1,
		},
	},
	"regress": {
		"decay": {
			Lab: "regress",
			X:   []float64{1, 2, 3, 4, 5, 6, 7, 8},
			Y:   []float64{521, 308, 240, 204, 183, 175, 159, 152},
		},
	},
	"interpolate": {
		"sin": {
			Lab: "interpolate", Expr: "sin(x)", A: -3, B: 3, XMin: -4, XMax: 4, Nodes: 10,
		},
	},
	"ode": {
		"riccati": {
			Lab: "ode", Expr: "(y*y - y)/x", X0: 1, Y0: 0.5, B: 4, Step: 0.1, Exact: true,
		},
		"riccati-coarse": {
			Lab: "ode", Expr: "(y*y - y)/x", X0: 1, Y0: 0.5, B: 4, Step: 0.5, Exact: true,
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(lab, preset string) *Config {
	presets, ok := Presets[lab]
	if !ok {
		return nil
	}
	cfg, ok := presets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets(lab string) []string {
	presets, ok := Presets[lab]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
