package labs

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/quadrature"
)

// IntegralsResult holds the estimate and geometry of each requested rule.
type IntegralsResult struct {
	Rectangle  *quadrature.RectangleResult  `json:"rectangle,omitempty"`
	Trapezoid  *quadrature.TrapezoidResult  `json:"trapezoid,omitempty"`
	MonteCarlo *quadrature.MonteCarloResult `json:"monte_carlo,omitempty"`

	// Exact is set when the formula has a known antiderivative.
	Exact *float64        `json:"exact,omitempty"`
	Curve []numeric.Point `json:"curve"`
}

// Estimates returns rule name to value for the rules that ran.
func (r *IntegralsResult) Estimates() map[string]float64 {
	out := make(map[string]float64, 3)
	if r.Rectangle != nil {
		out["rectangle"] = r.Rectangle.Value
	}
	if r.Trapezoid != nil {
		out["trapezoid"] = r.Trapezoid.Value
	}
	if r.MonteCarlo != nil {
		out["monte-carlo"] = r.MonteCarlo.Value
	}
	return out
}

// Integrals estimates the integral of f over [a, b] with n divisions (or n
// samples for Monte Carlo). An empty method runs every rule. Monte Carlo draws
// from a source seeded with seed.
func (l *Lab) Integrals(f numeric.Func, a, b float64, n int, method string, seed int64) (*IntegralsResult, error) {
	switch method {
	case "", "rectangle", "trapezoid", "monte-carlo":
	default:
		return nil, fmt.Errorf("unknown quadrature rule: %s", method)
	}

	start := time.Now()
	res := &IntegralsResult{}

	if method == "" || method == "rectangle" {
		r, err := quadrature.Rectangle(f, a, b, n)
		if err != nil {
			return nil, err
		}
		res.Rectangle = &r
	}
	if method == "" || method == "trapezoid" {
		t, err := quadrature.Trapezoid(f, a, b, n)
		if err != nil {
			return nil, err
		}
		res.Trapezoid = &t
	}
	if method == "" || method == "monte-carlo" {
		mc, err := quadrature.MonteCarlo(f, a, b, n, rand.New(rand.NewSource(seed)))
		if err != nil {
			return nil, err
		}
		res.MonteCarlo = &mc
	}
	res.Curve = numeric.Sample(f, a, b, CurvePoints)

	l.log.Debug("integrated", "a", a, "b", b, "n", n, "method", method, "seed", seed, "elapsed", time.Since(start))
	return res, nil
}
