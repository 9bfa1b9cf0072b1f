package metrics

import (
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

// MaxAbsError tracks max |y - exact(x)| over a trajectory.
type MaxAbsError struct {
	name  string
	exact numeric.Func
	max   float64
}

func NewMaxAbsError(exact numeric.Func) *MaxAbsError {
	return &MaxAbsError{
		name:  "max_abs_error",
		exact: exact,
	}
}

func (m *MaxAbsError) Name() string { return m.name }

func (m *MaxAbsError) Observe(p numeric.Point) {
	d := math.Abs(p.Y - m.exact(p.X))
	if d > m.max || math.IsNaN(d) {
		m.max = d
	}
}

func (m *MaxAbsError) Value() float64 { return m.max }

func (m *MaxAbsError) Reset() { m.max = 0 }

// FinalError is |y - exact(x)| at the last observed state.
type FinalError struct {
	name  string
	exact numeric.Func
	last  float64
}

func NewFinalError(exact numeric.Func) *FinalError {
	return &FinalError{
		name:  "final_error",
		exact: exact,
	}
}

func (f *FinalError) Name() string { return f.name }

func (f *FinalError) Observe(p numeric.Point) {
	f.last = math.Abs(p.Y - f.exact(p.X))
}

func (f *FinalError) Value() float64 { return f.last }

func (f *FinalError) Reset() { f.last = 0 }

// FinalValue is the y of the last observed state.
type FinalValue struct {
	name string
	y    float64
}

func NewFinalValue() *FinalValue {
	return &FinalValue{name: "final_y"}
}

func (f *FinalValue) Name() string { return f.name }

func (f *FinalValue) Observe(p numeric.Point) { f.y = p.Y }

func (f *FinalValue) Value() float64 { return f.y }

func (f *FinalValue) Reset() { f.y = 0 }
