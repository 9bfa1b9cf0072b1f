package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/san-kum/numlab/internal/labs"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/study"
)

const sparkWidth = 40

func num(v float64) string { return fmt.Sprintf("%.10g", v) }

func list(vs []float64) string {
	if len(vs) == 0 {
		return "none"
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = num(v)
	}
	return strings.Join(parts, ", ")
}

func ys(pts []numeric.Point) []float64 {
	out := make([]float64, len(pts))
	for i, p := range pts {
		out[i] = p.Y
	}
	return out
}

// Roots renders the rounded brackets and the roots of each method.
func Roots(res *labs.RootsResult, eps float64) string {
	var b strings.Builder

	brackets := make([]string, len(res.Display))
	for i, iv := range res.Display {
		brackets[i] = fmt.Sprintf("[%.2f, %.2f]", iv.Low, iv.High)
	}
	if len(brackets) == 0 {
		brackets = []string{"none"}
	}
	b.WriteString(metric("intervals", strings.Join(brackets, " ")) + "\n")
	b.WriteString(metric("tolerance", fmt.Sprintf("%g", eps)) + "\n")

	if res.Iteration != nil {
		b.WriteString(metric("iteration", list(res.Iteration)) + "\n")
	}
	if res.Bisection != nil {
		b.WriteString(metric("bisection", list(res.Bisection)) + "\n")
	}
	if res.Newton != nil {
		b.WriteString(metric("newton", list(res.NewtonRoots())) + "\n")
		for _, n := range res.Newton {
			if !n.Converged {
				b.WriteString(Warning.Render(fmt.Sprintf("newton stopped after %d iterations at %s", n.Iterations, num(n.Root))) + "\n")
			}
		}
	}

	failed := make([]string, 0, len(res.Errors))
	for name := range res.Errors {
		failed = append(failed, name)
	}
	sort.Strings(failed)
	for _, name := range failed {
		b.WriteString(Warning.Render(res.Errors[name].Error()) + "\n")
	}
	b.WriteString(Sparkline(ys(res.Curve), sparkWidth))

	return Box("Roots", b.String())
}

// Integrals renders each estimate and its error when the exact value is known.
func Integrals(res *labs.IntegralsResult) string {
	var b strings.Builder

	est := res.Estimates()
	for _, name := range []string{"rectangle", "trapezoid", "monte-carlo"} {
		v, ok := est[name]
		if !ok {
			continue
		}
		line := num(v)
		if res.Exact != nil {
			line += Subtle.Render(fmt.Sprintf("  (error %.3e)", v-*res.Exact))
		}
		b.WriteString(metric(name, line) + "\n")
	}
	if res.Exact != nil {
		b.WriteString(metric("exact", num(*res.Exact)) + "\n")
	}
	b.WriteString(Sparkline(ys(res.Curve), sparkWidth))

	return Box("Integrals", b.String())
}

func Regression(res *labs.RegressionResult) string {
	var b strings.Builder
	b.WriteString(metric("k", num(res.Line.K)) + "\n")
	b.WriteString(metric("b", num(res.Line.B)) + "\n")
	b.WriteString(metric("line", res.Line.String()) + "\n")
	b.WriteString(metric("rmse", num(res.Summary.RMSE)) + "\n")
	b.WriteString(metric("max |residual|", num(res.Summary.MaxAbsError)) + "\n")
	b.WriteString(metric("r²", fmt.Sprintf("%.4f", res.Summary.R2)))
	return Box("Least squares", b.String())
}

func Interpolation(res *labs.InterpolationResult) string {
	var b strings.Builder
	b.WriteString(metric("nodes", fmt.Sprintf("%d (degree %d)", len(res.Nodes), res.Poly.Degree())) + "\n")
	b.WriteString(metric("max |P - f|", fmt.Sprintf("%.3e", res.MaxError)) + "\n")
	b.WriteString(Sparkline(ys(res.Curve), sparkWidth))
	return Box("Lagrange", b.String())
}

func ODE(res *labs.ODEResult) string {
	var b strings.Builder
	for i, name := range res.Steppers {
		run := res.Runs[name]
		last := run.Trajectory.Last()

		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Title.Render(name) + "\n")
		b.WriteString(metric("steps", fmt.Sprintf("%d", run.StepsTaken)) + "\n")
		b.WriteString(metric("y("+num(last.X)+")", num(last.Y)) + "\n")

		keys := make([]string, 0, len(run.Metrics))
		for k := range run.Metrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString(metric(k, fmt.Sprintf("%.6g", run.Metrics[k])) + "\n")
		}
		b.WriteString(Sparkline(run.Trajectory.Ys(), sparkWidth))
	}
	return Box("ODE", b.String())
}

func QuadratureSweep(s *study.QuadratureSweep) string {
	var b strings.Builder
	b.WriteString(Subtle.Render(fmt.Sprintf("%8s  %16s  %12s  %12s", "n", "mean", "std dev", "mean |err|")) + "\n")
	for _, r := range s.Rows {
		b.WriteString(fmt.Sprintf("%8d  %16.10f  %12.3e  %12.3e\n", r.N, r.Mean, r.StdDev, r.MeanAbsError))
	}
	b.WriteString(metric("exact", num(s.Exact)))
	return Box("Sweep: "+s.Rule, b.String())
}

func StepSweep(s *study.StepSweep) string {
	var b strings.Builder
	b.WriteString(Subtle.Render(fmt.Sprintf("%10s  %8s  %12s  %12s", "h", "steps", "max |err|", "final |err|")) + "\n")
	for _, r := range s.Rows {
		b.WriteString(fmt.Sprintf("%10g  %8d  %12.3e  %12.3e\n", r.Step, r.Steps, r.MaxAbsError, r.FinalError))
	}
	b.WriteString(metric("observed order", fmt.Sprintf("%.2f", s.Order)))
	return Box("Sweep: "+s.Stepper, b.String())
}
