package labs

import (
	"context"
	"fmt"

	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/evaluator"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/storage"
)

// Outcome is the result of Run: the lab-specific result for display and the
// flattened run for storage.
type Outcome struct {
	Lab    string
	Result any
	Run    storage.Run
}

// Run validates cfg, compiles its expression and dispatches to the lab.
func (l *Lab) Run(ctx context.Context, cfg *config.Config) (*Outcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l.log.Debug("running lab", "lab", cfg.Lab, "expr", cfg.Expr, "method", cfg.Method)

	out := &Outcome{
		Lab: cfg.Lab,
		Run: storage.Run{
			Config:  cfg.Clone(),
			Metrics: make(map[string]float64),
			Values:  make(map[string][]float64),
		},
	}

	var err error
	switch cfg.Lab {
	case "roots":
		err = l.runRoots(cfg, out)
	case "integrate":
		err = l.runIntegrals(cfg, out)
	case "regress":
		err = l.runRegress(cfg, out)
	case "interpolate":
		err = l.runInterpolate(cfg, out)
	case "ode":
		err = l.runODE(ctx, cfg, out)
	default:
		err = fmt.Errorf("unknown lab: %s", cfg.Lab)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (l *Lab) runRoots(cfg *config.Config, out *Outcome) error {
	f, err := evaluator.Func(cfg.Expr)
	if err != nil {
		return err
	}
	res, err := l.Roots(f, cfg.A, cfg.B, cfg.Tolerance, cfg.Method)
	if err != nil {
		return err
	}

	out.Result = res
	out.Run.Metrics["intervals"] = float64(len(res.Intervals))
	putValues(out.Run.Values, "iteration", res.Iteration)
	putValues(out.Run.Values, "bisection", res.Bisection)
	putValues(out.Run.Values, "newton", res.NewtonRoots())
	out.Run.Series = []storage.Series{{Name: "f", Points: res.Curve}}
	return nil
}

func (l *Lab) runIntegrals(cfg *config.Config, out *Outcome) error {
	f, err := evaluator.Func(cfg.Expr)
	if err != nil {
		return err
	}
	res, err := l.Integrals(f, cfg.A, cfg.B, cfg.Divisions, cfg.Method, cfg.Seed)
	if err != nil {
		return err
	}

	if fn, ok := l.reg.MatchFunction(cfg.Expr); ok {
		if v, ok := fn.Integral(cfg.A, cfg.B); ok {
			res.Exact = &v
			out.Run.Metrics["exact"] = v
		}
	}

	out.Result = res
	for name, v := range res.Estimates() {
		out.Run.Metrics[name] = v
	}
	series := []storage.Series{{Name: "f", Points: res.Curve}}
	if res.Trapezoid != nil {
		series = append(series, storage.Series{Name: "trapezoid", Points: res.Trapezoid.Nodes})
	}
	if res.MonteCarlo != nil {
		series = append(series, storage.Series{Name: "monte-carlo", Points: res.MonteCarlo.Samples})
	}
	out.Run.Series = series
	return nil
}

func (l *Lab) runRegress(cfg *config.Config, out *Outcome) error {
	res, err := l.Regress(cfg.X, cfg.Y)
	if err != nil {
		return err
	}

	out.Result = res
	out.Run.Metrics["k"] = res.Line.K
	out.Run.Metrics["b"] = res.Line.B
	out.Run.Metrics["rmse"] = res.Summary.RMSE
	out.Run.Metrics["r2"] = res.Summary.R2
	out.Run.Series = []storage.Series{
		{Name: "samples", Points: res.Samples},
		{Name: "fit", Points: res.Fitted},
	}
	return nil
}

func (l *Lab) runInterpolate(cfg *config.Config, out *Outcome) error {
	f, err := evaluator.Func(cfg.Expr)
	if err != nil {
		return err
	}
	res, err := l.Interpolate(f, cfg.A, cfg.B, cfg.Nodes, cfg.XMin, cfg.XMax)
	if err != nil {
		return err
	}

	out.Result = res
	out.Run.Metrics["max_error"] = res.MaxError
	out.Run.Series = []storage.Series{
		{Name: "f", Points: res.Function},
		{Name: "lagrange", Points: res.Curve},
		{Name: "nodes", Points: res.Nodes},
	}
	return nil
}

func (l *Lab) runODE(ctx context.Context, cfg *config.Config, out *Outcome) error {
	f, err := evaluator.Func2(cfg.Expr)
	if err != nil {
		return err
	}

	p := ODEProblem{F: f, X0: cfg.X0, Y0: cfg.Y0, End: cfg.B, Step: cfg.Step}
	if cfg.Exact {
		p.Exact, err = l.exactSolution(cfg)
		if err != nil {
			return err
		}
	}

	var steppers []string
	if cfg.Method != "" {
		steppers = []string{cfg.Method}
	}
	res, err := l.ODE(ctx, p, steppers...)
	if err != nil {
		return err
	}

	out.Result = res
	for _, name := range res.Steppers {
		run := res.Runs[name]
		for metric, v := range run.Metrics {
			out.Run.Metrics[name+"."+metric] = v
		}
		out.Run.Series = append(out.Run.Series, storage.Series{Name: name, Points: run.Trajectory})
	}
	if res.Exact != nil {
		out.Run.Series = append(out.Run.Series, storage.Series{Name: "exact", Points: res.Exact})
	}
	return nil
}

func (l *Lab) exactSolution(cfg *config.Config) (numeric.Func, error) {
	ode, ok := l.reg.MatchODE(cfg.Expr)
	if !ok || ode.Exact == nil {
		return nil, fmt.Errorf("ode: %w: no exact solution known for %q", numeric.ErrInvalidInput, cfg.Expr)
	}
	return ode.Exact(cfg.X0, cfg.Y0)
}

func putValues(values map[string][]float64, key string, v []float64) {
	if v != nil {
		values[key] = v
	}
}
