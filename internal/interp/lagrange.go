// Package interp builds Lagrange interpolating polynomials from node sets.
package interp

import (
	"github.com/san-kum/numlab/internal/numeric"
)

// DefaultNodeCount is the number of intervals between generated nodes, so
// Nodes produces DefaultNodeCount+1 points.
const DefaultNodeCount = 10

// Lagrange is the interpolating polynomial of a node set. It keeps only the
// nodes and evaluates in Lagrange form.
type Lagrange struct {
	xs []float64
	ys []float64
}

// NewLagrange copies the nodes. Lengths must match, there must be at least one
// node and no two nodes may share an abscissa.
func NewLagrange(xs, ys []float64) (*Lagrange, error) {
	if len(xs) != len(ys) || len(xs) == 0 {
		return nil, &numeric.Error{Op: "lagrange", X: float64(len(xs)), Wrapped: numeric.ErrDegenerateRange}
	}
	seen := make(map[float64]struct{}, len(xs))
	for _, x := range xs {
		if !numeric.IsFinite(x) {
			return nil, &numeric.Error{Op: "lagrange", X: x, Wrapped: numeric.ErrInvalidInput}
		}
		if _, dup := seen[x]; dup {
			return nil, &numeric.Error{Op: "lagrange", X: x, Wrapped: numeric.ErrDegenerateRange}
		}
		seen[x] = struct{}{}
	}

	return &Lagrange{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
	}, nil
}

// FromFunc interpolates f on n+1 equally spaced nodes of [a, b].
func FromFunc(f numeric.Func, a, b float64, n int) (*Lagrange, error) {
	xs, ys, err := Nodes(f, a, b, n)
	if err != nil {
		return nil, err
	}
	return NewLagrange(xs, ys)
}

// Nodes returns n+1 equally spaced abscissae of [a, b] and f at each of them.
func Nodes(f numeric.Func, a, b float64, n int) ([]float64, []float64, error) {
	if err := numeric.CheckRange("nodes", a, b); err != nil {
		return nil, nil, err
	}
	if n < 1 {
		return nil, nil, &numeric.Error{Op: "nodes", X: float64(n), Wrapped: numeric.ErrInvalidInput}
	}

	xs := numeric.Linspace(a, b, n+1)
	ys := make([]float64, len(xs))
	for i, x := range xs {
		ys[i] = f(x)
	}
	return xs, ys, nil
}

// Eval returns Σ y_i Π_{j≠i} (x - x_j)/(x_i - x_j).
func (l *Lagrange) Eval(x float64) float64 {
	sum := 0.0
	for i, xi := range l.xs {
		term := l.ys[i]
		for j, xj := range l.xs {
			if j != i {
				term *= (x - xj) / (xi - xj)
			}
		}
		sum += term
	}
	return sum
}

func (l *Lagrange) EvalAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = l.Eval(x)
	}
	return out
}

// Curve samples the polynomial at n evenly spaced points of [xmin, xmax].
func (l *Lagrange) Curve(xmin, xmax float64, n int) []numeric.Point {
	return numeric.Sample(l.Eval, xmin, xmax, n)
}

// Nodes returns copies of the node abscissae and values.
func (l *Lagrange) Nodes() ([]float64, []float64) {
	return append([]float64(nil), l.xs...), append([]float64(nil), l.ys...)
}

func (l *Lagrange) Degree() int { return len(l.xs) - 1 }
