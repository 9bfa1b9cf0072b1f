// Package regression fits a straight line y = k*x + b to paired samples by
// ordinary least squares.
package regression

import (
	"fmt"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/san-kum/numlab/internal/numeric"
)

// Line is y = K*x + B.
type Line struct {
	K float64 `json:"k"`
	B float64 `json:"b"`
}

func (l Line) At(x float64) float64 { return l.K*x + l.B }

// Func returns the line as a plottable function.
func (l Line) Func() numeric.Func { return l.At }

// Residuals returns y[i] - At(x[i]) for every sample.
func (l Line) Residuals(x, y []float64) ([]float64, error) {
	if err := checkSamples("residuals", x, y); err != nil {
		return nil, err
	}
	r := make([]float64, len(x))
	for i := range x {
		r[i] = y[i] - l.At(x[i])
	}
	return r, nil
}

func (l Line) String() string {
	return fmt.Sprintf("y = %gx %+g", l.K, l.B)
}

func checkSamples(op string, x, y []float64) error {
	if len(x) != len(y) {
		return &numeric.Error{Op: op, X: float64(len(x)), Wrapped: numeric.ErrDegenerateRange}
	}
	if len(x) < 2 {
		return &numeric.Error{Op: op, X: float64(len(x)), Wrapped: numeric.ErrDegenerateRange}
	}
	return nil
}

// Fit returns the least-squares line through the samples:
//
//	k = (nΣxy - ΣxΣy) / (nΣx² - (Σx)²)
//	b = (Σy - kΣx) / n
//
// All x equal makes the denominator zero and fails with ErrDegenerateDenominator.
func Fit(x, y []float64) (Line, error) {
	if err := checkSamples("fit", x, y); err != nil {
		return Line{}, err
	}

	n := float64(len(x))
	var sx, sy, sxy, sxx float64
	for i := range x {
		sx += x[i]
		sy += y[i]
		sxy += x[i] * y[i]
		sxx += x[i] * x[i]
	}

	den := n*sxx - sx*sx
	if den == 0 {
		return Line{}, &numeric.Error{Op: "fit", X: x[0], Wrapped: numeric.ErrDegenerateDenominator}
	}

	k := (n*sxy - sx*sy) / den
	return Line{K: k, B: (sy - k*sx) / n}, nil
}

// Summary describes how well a line explains the samples.
type Summary struct {
	RMSE        float64 `json:"rmse"`
	MaxAbsError float64 `json:"max_abs_error"`
	R2          float64 `json:"r2"`
}

// Summarize computes the residual statistics of line over the samples.
// R2 is 1 for a perfect fit, including constant y.
func Summarize(line Line, x, y []float64) (Summary, error) {
	res, err := line.Residuals(x, y)
	if err != nil {
		return Summary{}, err
	}

	sq := make(stats.Float64Data, len(res))
	abs := make(stats.Float64Data, len(res))
	for i, r := range res {
		sq[i] = r * r
		abs[i] = math.Abs(r)
	}

	mse, err := stats.Mean(sq)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize: %w", err)
	}
	maxAbs, err := stats.Max(abs)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize: %w", err)
	}
	variance, err := stats.PopulationVariance(y)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize: %w", err)
	}

	s := Summary{RMSE: math.Sqrt(mse), MaxAbsError: maxAbs, R2: 1}
	if variance > 0 {
		s.R2 = 1 - mse/variance
	} else if mse > 0 {
		s.R2 = 0
	}
	return s, nil
}
