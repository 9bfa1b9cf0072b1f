package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/numlab/internal/numeric"
)

func TestMaxAbsError(t *testing.T) {
	m := NewMaxAbsError(func(x float64) float64 { return 2 * x })

	m.Observe(numeric.Point{X: 1, Y: 2.5})
	m.Observe(numeric.Point{X: 2, Y: 3})
	m.Observe(numeric.Point{X: 3, Y: 6.1})

	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected max error 1, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("expected 0 after reset, got %f", m.Value())
	}
}

func TestMaxAbsErrorKeepsNaN(t *testing.T) {
	m := NewMaxAbsError(func(float64) float64 { return 0 })

	m.Observe(numeric.Point{X: 0, Y: math.NaN()})
	m.Observe(numeric.Point{X: 1, Y: 1})

	if !math.IsNaN(m.Value()) {
		t.Errorf("expected NaN to stick, got %f", m.Value())
	}
}

func TestFinalMetrics(t *testing.T) {
	exact := func(x float64) float64 { return x }
	fe := NewFinalError(exact)
	fv := NewFinalValue()

	for _, p := range []numeric.Point{{X: 0, Y: 5}, {X: 1, Y: 1.25}} {
		fe.Observe(p)
		fv.Observe(p)
	}

	if fe.Value() != 0.25 {
		t.Errorf("final error = %f, want 0.25", fe.Value())
	}
	if fv.Value() != 1.25 {
		t.Errorf("final value = %f, want 1.25", fv.Value())
	}
}

func TestStability(t *testing.T) {
	s := NewStability(10)

	s.Observe(numeric.Point{Y: 1})
	s.Observe(numeric.Point{Y: -20})
	s.Observe(numeric.Point{Y: math.Inf(1)})
	s.Observe(numeric.Point{Y: 3})

	if s.Value() != 0.5 {
		t.Errorf("expected stability 0.5, got %f", s.Value())
	}

	s.Reset()
	if s.Value() != 1.0 {
		t.Errorf("expected 1.0 after reset, got %f", s.Value())
	}
}
