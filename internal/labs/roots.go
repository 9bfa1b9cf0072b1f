package labs

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/roots"
)

// RootsResult holds the brackets and the roots of every refiner. A method
// that was not requested leaves its slice nil.
type RootsResult struct {
	Intervals []numeric.Interval   `json:"intervals"`
	Display   []numeric.Interval   `json:"display"`
	Iteration []float64            `json:"iteration,omitempty"`
	Bisection []float64            `json:"bisection,omitempty"`
	Newton    []roots.NewtonResult `json:"newton,omitempty"`
	Curve     []numeric.Point      `json:"curve"`

	// Errors holds the failure of each method that did not finish.
	Errors map[string]error `json:"-"`
}

// NewtonRoots returns the Newton roots without iteration counts.
func (r *RootsResult) NewtonRoots() []float64 {
	if r.Newton == nil {
		return nil
	}
	out := make([]float64, len(r.Newton))
	for i, n := range r.Newton {
		out[i] = n.Root
	}
	return out
}

// Roots brackets f on [a, b] and refines every bracket with the registry
// refiner named method, or with every registered refiner when method is empty.
// When several methods run, a failing one is recorded in Errors and the others
// keep their roots; the call fails only when every method failed.
func (l *Lab) Roots(f numeric.Func, a, b, eps float64, method string) (*RootsResult, error) {
	names := []string{method}
	if method == "" {
		names = l.reg.ListRefiners()
	}
	refiners := make(map[string]roots.Method, len(names))
	for _, name := range names {
		refine, err := l.reg.GetRefiner(name)
		if err != nil {
			return nil, err
		}
		refiners[name] = refine
	}

	start := time.Now()

	intervals, err := roots.Bracket(f, a, b)
	if err != nil {
		return nil, err
	}
	l.log.Debug("bracketed", "a", a, "b", b, "intervals", len(intervals))

	res := &RootsResult{
		Intervals: intervals,
		Display:   roots.Round(intervals),
	}

	var failed []error
	for _, name := range names {
		found, err := refiners[name](f, intervals, eps)
		if err == nil && name == "newton" {
			// iteration counts and convergence flags for the report
			res.Newton, err = roots.NewtonAll(f, intervals, eps)
		}
		if err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			if res.Errors == nil {
				res.Errors = make(map[string]error)
			}
			res.Errors[name] = err
			failed = append(failed, err)
			l.log.Warn("root method failed", "method", name, "err", err)
			continue
		}

		switch name {
		case "iteration":
			res.Iteration = found
		case "bisection":
			res.Bisection = found
		case "newton":
			for i, n := range res.Newton {
				if !n.Converged {
					l.log.Warn("newton did not converge", "interval", intervals[i], "iterations", n.Iterations, "last", n.Root)
				}
			}
		}
	}
	if len(failed) == len(names) && len(failed) > 0 {
		return nil, errors.Join(failed...)
	}
	res.Curve = numeric.Sample(f, a, b, CurvePoints)

	l.log.Debug("roots refined", "eps", eps, "method", method, "elapsed", time.Since(start))
	return res, nil
}
