package labs

import (
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/regression"
)

type RegressionResult struct {
	Line    regression.Line    `json:"line"`
	Summary regression.Summary `json:"summary"`
	Samples []numeric.Point    `json:"samples"`
	Fitted  []numeric.Point    `json:"fitted"`
}

// Regress fits y = kx + b to the samples and samples the line over their x range.
func (l *Lab) Regress(x, y []float64) (*RegressionResult, error) {
	line, err := regression.Fit(x, y)
	if err != nil {
		return nil, err
	}
	summary, err := regression.Summarize(line, x, y)
	if err != nil {
		return nil, err
	}

	lo, hi := x[0], x[0]
	samples := make([]numeric.Point, len(x))
	for i := range x {
		samples[i] = numeric.Point{X: x[i], Y: y[i]}
		if x[i] < lo {
			lo = x[i]
		}
		if x[i] > hi {
			hi = x[i]
		}
	}

	l.log.Debug("regressed", "points", len(x), "k", line.K, "b", line.B, "r2", summary.R2)
	return &RegressionResult{
		Line:    line,
		Summary: summary,
		Samples: samples,
		Fitted:  numeric.Sample(line.At, lo, hi, CurvePoints),
	}, nil
}
