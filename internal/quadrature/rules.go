// Package quadrature estimates definite integrals of a scalar function over
// [a, b] with the rectangle (midpoint), trapezoid and Monte Carlo rules.
//
// Every rule returns, next to the estimate, the geometry a renderer needs to
// draw it: rectangle midpoints and heights, trapezoid nodes, Monte Carlo
// samples and hits.
package quadrature

import (
	"github.com/san-kum/numlab/internal/numeric"
)

// RectangleResult is a midpoint-rule estimate and its rectangles.
type RectangleResult struct {
	Value     float64   `json:"value"`
	Step      float64   `json:"step"`
	Midpoints []float64 `json:"midpoints"`
	Heights   []float64 `json:"heights"`
}

// TrapezoidResult is a trapezoid-rule estimate and its partition nodes.
type TrapezoidResult struct {
	Value float64         `json:"value"`
	Step  float64         `json:"step"`
	Nodes []numeric.Point `json:"nodes"`
}

func checkArgs(op string, a, b float64, n int) error {
	if err := numeric.CheckRange(op, a, b); err != nil {
		return err
	}
	if n <= 0 {
		return &numeric.Error{Op: op, X: float64(n), Wrapped: numeric.ErrInvalidInput}
	}
	return nil
}

// Rectangle sums f(midpoint)*step over n equal cells of [a, b].
func Rectangle(f numeric.Func, a, b float64, n int) (RectangleResult, error) {
	if err := checkArgs("rectangle", a, b, n); err != nil {
		return RectangleResult{}, err
	}

	step := (b - a) / float64(n)
	res := RectangleResult{
		Step:      step,
		Midpoints: make([]float64, n),
		Heights:   make([]float64, n),
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		mid := a + (float64(i)+0.5)*step
		h := f(mid)
		res.Midpoints[i] = mid
		res.Heights[i] = h
		sum += h
	}
	// Scaling once keeps constant integrands exact.
	res.Value = sum * (b - a) / float64(n)

	return res, nil
}

// Trapezoid sums 0.5*(f(x)+f(x+step))*step over n equal cells of [a, b].
func Trapezoid(f numeric.Func, a, b float64, n int) (TrapezoidResult, error) {
	if err := checkArgs("trapezoid", a, b, n); err != nil {
		return TrapezoidResult{}, err
	}

	step := (b - a) / float64(n)
	res := TrapezoidResult{
		Step:  step,
		Nodes: make([]numeric.Point, n+1),
	}

	for i := 0; i <= n; i++ {
		x := a + float64(i)*step
		if i == n {
			x = b
		}
		res.Nodes[i] = numeric.Point{X: x, Y: f(x)}
	}

	sum := 0.0
	for i := 0; i < n; i++ {
		sum += 0.5 * (res.Nodes[i].Y + res.Nodes[i+1].Y)
	}
	res.Value = sum * (b - a) / float64(n)

	return res, nil
}
