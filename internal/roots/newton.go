package roots

import (
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

const (
	// MaxNewtonIterations caps the Newton updates per bracket.
	MaxNewtonIterations = 50
	// DerivativeStep is the half-width of the central difference.
	DerivativeStep = 1e-5
)

// NewtonResult is the outcome of one Newton refinement.
type NewtonResult struct {
	Root       float64 `json:"root"`
	Iterations int     `json:"iterations"`
	Converged  bool    `json:"converged"`
}

// Derivative estimates f'(x) by central difference.
func Derivative(f numeric.Func, x float64) float64 {
	return (f(x+DerivativeStep) - f(x-DerivativeStep)) / (2 * DerivativeStep)
}

// Newton iterates x <- x - f(x)/f'(x) from iv.Low + eps. It stops when the
// update or |f| drops below eps, or after MaxNewtonIterations; in the latter
// case the last iterate is returned with Converged unset. A flat or non-finite
// derivative fails with ErrDegenerateDenominator.
func Newton(f numeric.Func, iv numeric.Interval, eps float64) (NewtonResult, error) {
	if err := checkTolerance("newton", eps); err != nil {
		return NewtonResult{Root: math.NaN()}, err
	}

	x := iv.Low + eps
	for i := 1; i <= MaxNewtonIterations; i++ {
		d := Derivative(f, x)
		if d == 0 || !numeric.IsFinite(d) {
			return NewtonResult{Root: x, Iterations: i}, &numeric.Error{
				Op: "newton", X: x, Iteration: i, Wrapped: numeric.ErrDegenerateDenominator,
			}
		}

		next := x - f(x)/d
		if !numeric.IsFinite(next) {
			return NewtonResult{Root: x, Iterations: i}, &numeric.Error{
				Op: "newton", X: x, Iteration: i, Wrapped: numeric.ErrInvalidState,
			}
		}

		if math.Abs(next-x) < eps || math.Abs(f(next)) < eps {
			return NewtonResult{Root: next, Iterations: i, Converged: true}, nil
		}
		x = next
	}

	return NewtonResult{Root: x, Iterations: MaxNewtonIterations}, nil
}

// NewtonAll runs Newton on every interval and stops at the first failure.
func NewtonAll(f numeric.Func, intervals []numeric.Interval, eps float64) ([]NewtonResult, error) {
	results := make([]NewtonResult, 0, len(intervals))
	for _, iv := range intervals {
		res, err := Newton(f, iv, eps)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}

// NewtonRoots adapts NewtonAll to the Method signature.
func NewtonRoots(f numeric.Func, intervals []numeric.Interval, eps float64) ([]float64, error) {
	results, err := NewtonAll(f, intervals, eps)
	if err != nil {
		return nil, err
	}
	roots := make([]float64, len(results))
	for i, r := range results {
		roots[i] = r.Root
	}
	return roots, nil
}

var (
	_ Method = Iterate
	_ Method = BisectAll
	_ Method = NewtonRoots
)
