package study

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/montanaflynn/stats"

	"github.com/san-kum/numlab/internal/experiment"
	"github.com/san-kum/numlab/internal/numeric"
)

// QuadratureRow summarizes one division count over all seeds.
type QuadratureRow struct {
	N            int     `json:"n"`
	Mean         float64 `json:"mean"`
	StdDev       float64 `json:"std_dev"`
	MeanAbsError float64 `json:"mean_abs_error"`
}

type QuadratureSweep struct {
	Rule  string          `json:"rule"`
	Exact float64         `json:"exact"`
	Rows  []QuadratureRow `json:"rows"`
	Best  Evaluation      `json:"best"`
}

// SweepQuadrature estimates the integral with rule for every count, once per
// seed 1..seeds, and compares against exact.
func SweepQuadrature(
	ctx context.Context,
	reg *experiment.Registry,
	rule string,
	f numeric.Func,
	a, b, exact float64,
	counts []int,
	seeds int,
) (*QuadratureSweep, error) {
	integrate, err := reg.GetRule(rule)
	if err != nil {
		return nil, err
	}
	if len(counts) == 0 || seeds < 1 {
		return nil, fmt.Errorf("sweep: %w: need counts and at least one seed", numeric.ErrInvalidInput)
	}

	ns := make([]float64, len(counts))
	for i, n := range counts {
		ns[i] = float64(n)
	}
	seedRange := make([]float64, seeds)
	for i := range seedRange {
		seedRange[i] = float64(i + 1)
	}

	estimates := make(map[int][]float64, len(counts))
	gs := NewGridSearch([]string{"n", "seed"}, [][]float64{ns, seedRange})
	best, _, err := gs.Search(ctx, func(p map[string]float64) (float64, error) {
		n := int(p["n"])
		v, err := integrate(f, a, b, n, rand.New(rand.NewSource(int64(p["seed"]))))
		if err != nil {
			return math.NaN(), err
		}
		estimates[n] = append(estimates[n], v)
		return math.Abs(v - exact), nil
	})
	if err != nil {
		return nil, err
	}

	sweep := &QuadratureSweep{Rule: rule, Exact: exact, Best: best}
	for _, n := range counts {
		row, err := summarize(n, estimates[n], exact)
		if err != nil {
			return nil, err
		}
		sweep.Rows = append(sweep.Rows, row)
	}
	return sweep, nil
}

func summarize(n int, values []float64, exact float64) (QuadratureRow, error) {
	data := stats.Float64Data(values)

	mean, err := data.Mean()
	if err != nil {
		return QuadratureRow{}, err
	}
	sd, err := data.StandardDeviation()
	if err != nil {
		return QuadratureRow{}, err
	}

	errs := make(stats.Float64Data, len(values))
	for i, v := range values {
		errs[i] = math.Abs(v - exact)
	}
	mae, err := errs.Mean()
	if err != nil {
		return QuadratureRow{}, err
	}

	return QuadratureRow{N: n, Mean: mean, StdDev: sd, MeanAbsError: mae}, nil
}
