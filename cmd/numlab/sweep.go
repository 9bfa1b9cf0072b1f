package main

import (
	"fmt"
	"math"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/numlab/internal/evaluator"
	"github.com/san-kum/numlab/internal/experiment"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/report"
	"github.com/san-kum/numlab/internal/study"
)

var (
	sweepExpr   string
	sweepA      float64
	sweepB      float64
	sweepRule   string
	sweepCounts string
	sweepSeeds  int
	sweepExact  string

	sweepODEExpr  string
	sweepX0       float64
	sweepY0       float64
	sweepEnd      float64
	sweepSteps    string
	sweepSteppers []string
)

func sweepCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "convergence tables for quadrature and ODE steppers",
	}
	cmd.AddCommand(sweepMCCmd(), sweepODECmd())
	return cmd
}

func sweepMCCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mc",
		Short: "estimate an integral for several division counts and seeds",
		Args:  cobra.NoArgs,
		RunE:  sweepQuadrature,
	}
	cmd.Flags().StringVar(&sweepExpr, "expr", "1/sqrt(x*x + 1)", "function of x")
	cmd.Flags().Float64Var(&sweepA, "a", 0.2, "lower bound")
	cmd.Flags().Float64Var(&sweepB, "b", 1.2, "upper bound")
	cmd.Flags().StringVar(&sweepRule, "rule", "monte-carlo", "rectangle, trapezoid or monte-carlo")
	cmd.Flags().StringVar(&sweepCounts, "counts", "10 20 50 100 1000", "division counts")
	cmd.Flags().IntVar(&sweepSeeds, "seeds", 20, "seeds per count")
	cmd.Flags().StringVar(&sweepExact, "exact", "", "exact value (default: known antiderivative)")
	return cmd
}

func sweepODECmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ode",
		Short: "measure stepper error and observed order over step sizes",
		Args:  cobra.NoArgs,
		RunE:  sweepODE,
	}
	cmd.Flags().StringVar(&sweepODEExpr, "expr", "(y*y - y)/x", "right-hand side with a known exact solution")
	cmd.Flags().Float64Var(&sweepX0, "x0", 1, "initial x")
	cmd.Flags().Float64Var(&sweepY0, "y0", 0.5, "initial y")
	cmd.Flags().Float64Var(&sweepEnd, "b", 4, "end of integration")
	cmd.Flags().StringVar(&sweepSteps, "steps", "0.5 0.25 0.1 0.05 0.025", "step sizes")
	cmd.Flags().StringSliceVar(&sweepSteppers, "method", nil, "steppers (default all)")
	return cmd
}

func sweepQuadrature(cmd *cobra.Command, args []string) error {
	f, err := evaluator.Func(sweepExpr)
	if err != nil {
		return err
	}

	counts, err := parseCounts(sweepCounts)
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	var want float64
	if sweepExact != "" {
		if want, err = numeric.ParseFloat("exact", sweepExact); err != nil {
			return err
		}
	} else {
		fn, ok := reg.MatchFunction(sweepExpr)
		if !ok {
			return fmt.Errorf("no known antiderivative for %q, pass --exact", sweepExpr)
		}
		v, ok := fn.Integral(sweepA, sweepB)
		if !ok {
			return fmt.Errorf("no known antiderivative for %s, pass --exact", fn.Name)
		}
		want = v
	}

	sweep, err := study.SweepQuadrature(cmd.Context(), reg, sweepRule, f, sweepA, sweepB, want, counts, sweepSeeds)
	if err != nil {
		return err
	}
	logger.Debug("quadrature sweep", "rule", sweepRule, "best_n", sweep.Best.Params["n"], "best_seed", sweep.Best.Params["seed"])

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, report.QuadratureSweep(sweep))

	errs := make([]float64, len(sweep.Rows))
	for i, r := range sweep.Rows {
		errs[i] = math.Log10(r.MeanAbsError)
	}
	if graph := plotValues(errs, "log10 mean |err| by division count"); graph != "" {
		fmt.Fprintln(w, graph)
	}
	return nil
}

func sweepODE(cmd *cobra.Command, args []string) error {
	f, err := evaluator.Func2(sweepODEExpr)
	if err != nil {
		return err
	}
	steps, err := numeric.ParseFloats("steps", sweepSteps)
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	ode, ok := reg.MatchODE(sweepODEExpr)
	if !ok || ode.Exact == nil {
		return fmt.Errorf("%w: no exact solution known for %q", numeric.ErrInvalidInput, sweepODEExpr)
	}
	exactFn, err := ode.Exact(sweepX0, sweepY0)
	if err != nil {
		return err
	}

	steppers := sweepSteppers
	if len(steppers) == 0 {
		steppers = reg.ListSteppers()
	}

	w := cmd.OutOrStdout()
	for _, name := range steppers {
		sweep, err := study.SweepSteps(cmd.Context(), reg, name, f, exactFn, sweepX0, sweepY0, sweepEnd, steps)
		if err != nil {
			return err
		}
		logger.Debug("step sweep", "stepper", name, "order", sweep.Order)
		fmt.Fprintln(w, report.StepSweep(sweep))
	}
	return nil
}

func parseCounts(text string) ([]int, error) {
	vals, err := numeric.ParseFloats("counts", text)
	if err != nil {
		return nil, err
	}
	counts := make([]int, len(vals))
	for i, v := range vals {
		if v < 1 || v != math.Trunc(v) {
			return nil, fmt.Errorf("%w: count %s is not a positive integer", numeric.ErrInvalidInput, strconv.FormatFloat(v, 'g', -1, 64))
		}
		counts[i] = int(v)
	}
	return counts, nil
}

func plotValues(data []float64, caption string) string {
	finite := data[:0:0]
	for _, v := range data {
		if numeric.IsFinite(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) < 2 {
		return ""
	}
	return asciigraph.Plot(finite,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
	)
}
