package labs

import (
	"context"
	"fmt"
	"time"

	"github.com/san-kum/numlab/internal/experiment"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/sim"
)

// ODEProblem is y' = F(x, y), y(X0) = Y0, integrated to End with Step.
type ODEProblem struct {
	F      numeric.Func2
	X0, Y0 float64
	End    float64
	Step   float64

	// Exact is optional; when set, error metrics and an exact curve are added.
	Exact numeric.Func

	ValidateState bool
}

type ODEResult struct {
	// Steppers lists the run names in execution order.
	Steppers []string               `json:"steppers"`
	Runs     map[string]*sim.Result `json:"runs"`
	Exact    []numeric.Point        `json:"exact,omitempty"`
}

// ODE integrates the problem once per stepper; no steppers means all of them.
func (l *Lab) ODE(ctx context.Context, p ODEProblem, steppers ...string) (*ODEResult, error) {
	if p.F == nil {
		return nil, fmt.Errorf("ode: %w: missing right-hand side", numeric.ErrInvalidInput)
	}
	if len(steppers) == 0 {
		steppers = l.reg.ListSteppers()
	}

	res := &ODEResult{
		Steppers: steppers,
		Runs:     make(map[string]*sim.Result, len(steppers)),
	}

	for _, name := range steppers {
		start := time.Now()

		exp := experiment.New(experiment.Config{
			Stepper:       name,
			X0:            p.X0,
			Y0:            p.Y0,
			End:           p.End,
			Step:          p.Step,
			ValidateState: p.ValidateState,
		})
		if err := exp.SetupFromRegistry(l.reg, p.F, p.Exact); err != nil {
			return nil, err
		}

		run, err := exp.Run(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		res.Runs[name] = run

		l.log.Debug("ode integrated", "stepper", name, "steps", run.StepsTaken, "metrics", run.Metrics, "elapsed", time.Since(start))
		if s, ok := run.Metrics["stability"]; ok && s < 1 {
			l.log.Warn("solution left the stable range", "stepper", name, "stability", s)
		}
	}

	if p.Exact != nil {
		lo, hi := p.X0, p.End
		if hi < lo {
			lo, hi = hi, lo
		}
		if lo < hi {
			res.Exact = numeric.Sample(p.Exact, lo, hi, DetailPoints)
		}
	}

	return res, nil
}

