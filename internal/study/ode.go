package study

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/numlab/internal/experiment"
	"github.com/san-kum/numlab/internal/metrics"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/regression"
	"github.com/san-kum/numlab/internal/sim"
)

type StepRow struct {
	Step        float64 `json:"step"`
	Steps       int     `json:"steps"`
	MaxAbsError float64 `json:"max_abs_error"`
	FinalError  float64 `json:"final_error"`
}

type StepSweep struct {
	Stepper string    `json:"stepper"`
	Rows    []StepRow `json:"rows"`

	// Order is the slope of log(max error) against log(step); NaN when fewer
	// than two rows have a positive error.
	Order float64 `json:"order"`
}

// SweepSteps integrates the problem with stepper once per step size, all step
// sizes in parallel, and measures the error against exact.
func SweepSteps(
	ctx context.Context,
	reg *experiment.Registry,
	stepper string,
	f numeric.Func2,
	exact numeric.Func,
	x0, y0, end float64,
	steps []float64,
) (*StepSweep, error) {
	if exact == nil || len(steps) == 0 {
		return nil, fmt.Errorf("sweep: %w: need an exact solution and step sizes", numeric.ErrInvalidInput)
	}
	if _, err := reg.GetStepper(stepper); err != nil {
		return nil, err
	}

	ens := sim.NewEnsemble(func() *sim.Simulator {
		s, _ := reg.GetStepper(stepper)
		simulator := sim.New(f, s)
		simulator.AddMetric(metrics.NewMaxAbsError(exact))
		simulator.AddMetric(metrics.NewFinalError(exact))
		return simulator
	})

	cfgs := make([]sim.Config, len(steps))
	for i, h := range steps {
		cfgs[i] = sim.Config{End: end, Step: h}
	}

	results, err := ens.Run(ctx, x0, y0, cfgs)
	if err != nil {
		return nil, err
	}

	sweep := &StepSweep{Stepper: stepper, Rows: make([]StepRow, len(steps))}
	var logH, logErr []float64
	for i, res := range results {
		row := StepRow{
			Step:        steps[i],
			Steps:       res.StepsTaken,
			MaxAbsError: res.Metrics["max_abs_error"],
			FinalError:  res.Metrics["final_error"],
		}
		sweep.Rows[i] = row

		if row.MaxAbsError > 0 && numeric.IsFinite(row.MaxAbsError) {
			logH = append(logH, math.Log(math.Abs(row.Step)))
			logErr = append(logErr, math.Log(row.MaxAbsError))
		}
	}

	sweep.Order = math.NaN()
	if line, err := regression.Fit(logH, logErr); err == nil {
		sweep.Order = line.K
	}
	return sweep, nil
}
