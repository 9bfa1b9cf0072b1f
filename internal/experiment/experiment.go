package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/sim"
)

// Config names one ODE run: a stepper and the problem.
type Config struct {
	Stepper string
	X0, Y0  float64
	End     float64
	Step    float64

	ValidateState bool
}

// Experiment binds a compiled right-hand side and a stepper to a Config.
type Experiment struct {
	cfg       Config
	simulator *sim.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(f numeric.Func2, stepper sim.Stepper, metrics []sim.Metric) error {
	if f == nil || stepper == nil {
		return fmt.Errorf("experiment: %w: missing function or stepper", numeric.ErrInvalidInput)
	}
	e.simulator = sim.New(f, stepper)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	return nil
}

// SetupFromRegistry resolves cfg.Stepper and attaches the default metrics for
// exact, which may be nil.
func (e *Experiment) SetupFromRegistry(r *Registry, f numeric.Func2, exact numeric.Func) error {
	stepper, err := r.GetStepper(e.cfg.Stepper)
	if err != nil {
		return err
	}
	return e.Setup(f, stepper, r.DefaultMetrics(exact))
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	simCfg := sim.Config{
		End:           e.cfg.End,
		Step:          e.cfg.Step,
		ValidateState: e.cfg.ValidateState,
	}

	return e.simulator.Run(ctx, e.cfg.X0, e.cfg.Y0, simCfg)
}

func (e *Experiment) Config() Config { return e.cfg }
