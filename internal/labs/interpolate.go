package labs

import (
	"math"

	"github.com/san-kum/numlab/internal/interp"
	"github.com/san-kum/numlab/internal/numeric"
)

type InterpolationResult struct {
	Poly     *interp.Lagrange `json:"-"`
	Nodes    []numeric.Point  `json:"nodes"`
	Curve    []numeric.Point  `json:"curve"`
	Function []numeric.Point  `json:"function"`

	// MaxError is max |P(x) - f(x)| over the plotted points.
	MaxError float64 `json:"max_error"`
}

// Interpolate builds the Lagrange polynomial of f on n+1 equally spaced nodes
// of [a, b] and samples both on the display range [xmin, xmax].
func (l *Lab) Interpolate(f numeric.Func, a, b float64, n int, xmin, xmax float64) (*InterpolationResult, error) {
	if err := numeric.CheckRange("interpolate", xmin, xmax); err != nil {
		return nil, err
	}

	poly, err := interp.FromFunc(f, a, b, n)
	if err != nil {
		return nil, err
	}

	xs, ys := poly.Nodes()
	res := &InterpolationResult{
		Poly:     poly,
		Nodes:    make([]numeric.Point, len(xs)),
		Curve:    poly.Curve(xmin, xmax, DetailPoints),
		Function: numeric.Sample(f, xmin, xmax, DetailPoints),
	}
	for i := range xs {
		res.Nodes[i] = numeric.Point{X: xs[i], Y: ys[i]}
	}
	for i, p := range res.Curve {
		res.MaxError = math.Max(res.MaxError, math.Abs(p.Y-res.Function[i].Y))
	}

	l.log.Debug("interpolated", "nodes", len(xs), "degree", poly.Degree(), "max_error", res.MaxError)
	return res, nil
}
