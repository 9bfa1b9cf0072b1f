package sim

import "github.com/san-kum/numlab/internal/numeric"

// Stepper advances y' = f(x, y) by one step of size h from (x, y).
type Stepper interface {
	Step(f numeric.Func2, x, y, h float64) float64
}

type Metric interface {
	Name() string
	Observe(p numeric.Point)
	Value() float64
	Reset()
}

// Config describes one run from x0 to End with constant Step.
type Config struct {
	End  float64 `json:"end"`
	Step float64 `json:"step"`

	// ValidateState stops the run at the first non-finite y.
	ValidateState bool `json:"validate_state"`
}

type Result struct {
	Trajectory numeric.Trajectory `json:"trajectory"`
	Metrics    map[string]float64 `json:"metrics"`
	StepsTaken int                `json:"steps_taken"`
}
