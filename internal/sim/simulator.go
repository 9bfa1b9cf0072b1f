package sim

import (
	"context"
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

type Simulator struct {
	f       numeric.Func2
	stepper Stepper
	metrics []Metric
}

func New(f numeric.Func2, stepper Stepper) *Simulator {
	return &Simulator{
		f:       f,
		stepper: stepper,
		metrics: make([]Metric, 0),
	}
}

func (s *Simulator) AddMetric(m Metric) { s.metrics = append(s.metrics, m) }

// MaxSteps bounds the trajectory length of a single run.
const MaxSteps = 10_000_000

// Steps returns the fewest steps of size h after which x0 + n*h reaches b.
// A step that points away from b or needs more than MaxSteps fails with
// ErrInvalidStep.
func Steps(x0, b, h float64) (int, error) {
	if x0 == b {
		return 0, nil
	}
	ratio := (b - x0) / h
	if !numeric.IsFinite(ratio) || ratio <= 0 || ratio > MaxSteps {
		return 0, &numeric.Error{Op: "ode", X: x0, Wrapped: numeric.ErrInvalidStep}
	}

	reached := func(n int) bool {
		x := x0 + float64(n)*h
		if h > 0 {
			return x >= b
		}
		return x <= b
	}

	n := int(math.Ceil(ratio))
	for n > 1 && reached(n-1) {
		n--
	}
	for n < MaxSteps && !reached(n) {
		n++
	}
	if !reached(n) {
		return 0, &numeric.Error{Op: "ode", X: x0, Iteration: n, Wrapped: numeric.ErrInvalidStep}
	}
	return n, nil
}

// Run integrates from (x0, y0) until x reaches cfg.End. Abscissae are
// x0 + i*cfg.Step, so the last one may overshoot End by less than one step.
// On cancellation or an invalid state the partial result is returned with the error.
func (s *Simulator) Run(ctx context.Context, x0, y0 float64, cfg Config) (*Result, error) {
	if err := validateConfig(x0, y0, cfg); err != nil {
		return nil, err
	}

	steps, err := Steps(x0, cfg.End, cfg.Step)
	if err != nil {
		return nil, err
	}
	result := &Result{
		Trajectory: make(numeric.Trajectory, 0, steps+1),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	h := cfg.Step
	p := numeric.Point{X: x0, Y: y0}
	s.record(result, p)

	var runErr error
	for i := 1; i <= steps; i++ {
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		y := s.stepper.Step(s.f, p.X, p.Y, h)
		x := x0 + float64(i)*h

		if cfg.ValidateState && !numeric.IsFinite(y) {
			runErr = &numeric.Error{Op: "ode", X: x, Iteration: i, Wrapped: numeric.ErrInvalidState}
			break
		}

		p = numeric.Point{X: x, Y: y}
		result.StepsTaken++
		s.record(result, p)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, runErr
}

func (s *Simulator) record(r *Result, p numeric.Point) {
	r.Trajectory = append(r.Trajectory, p)
	for _, m := range s.metrics {
		m.Observe(p)
	}
}

func validateConfig(x0, y0 float64, cfg Config) error {
	if !numeric.IsFinite(x0) || !numeric.IsFinite(y0) || !numeric.IsFinite(cfg.End) {
		return &numeric.Error{Op: "ode", X: x0, Wrapped: numeric.ErrInvalidInput}
	}
	h := cfg.Step
	if h == 0 || !numeric.IsFinite(h) {
		return &numeric.Error{Op: "ode", X: x0, Wrapped: numeric.ErrInvalidStep}
	}
	if span := cfg.End - x0; span != 0 && math.Signbit(span) != math.Signbit(h) {
		return &numeric.Error{Op: "ode", X: x0, Wrapped: numeric.ErrInvalidStep}
	}
	return nil
}
