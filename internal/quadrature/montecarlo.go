package quadrature

import (
	"math"
	"math/rand"

	"github.com/san-kum/numlab/internal/numeric"
)

// SamplingPoints is the number of evenly spaced points used to bound f.
const SamplingPoints = 100000

// MonteCarloResult is a hit-or-miss estimate and the samples behind it.
type MonteCarloResult struct {
	Value   float64         `json:"value"`
	YMin    float64         `json:"y_min"`
	YMax    float64         `json:"y_max"`
	Samples []numeric.Point `json:"samples"`
	Hits    []bool          `json:"hits"`
}

// Bounds samples f densely over [a, b] and returns its smallest and largest values.
func Bounds(f numeric.Func, a, b float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range numeric.Linspace(a, b, SamplingPoints) {
		y := f(x)
		if y < lo {
			lo = y
		}
		if y > hi {
			hi = y
		}
	}
	return lo, hi
}

// MonteCarlo draws n uniform points in the box [a, b] x [min(0, ymin), max(0, ymax)]
// and counts the ones between the axis and the curve, negatively below the axis.
// The estimate is the signed hit fraction times the box area. For f >= 0 the box
// is [a, b] x [0, ymax].
func MonteCarlo(f numeric.Func, a, b float64, n int, rng *rand.Rand) (MonteCarloResult, error) {
	if err := checkArgs("monte-carlo", a, b, n); err != nil {
		return MonteCarloResult{}, err
	}

	ymin, ymax := Bounds(f, a, b)
	if !numeric.IsFinite(ymin) || !numeric.IsFinite(ymax) {
		return MonteCarloResult{}, &numeric.Error{Op: "monte-carlo", X: a, Wrapped: numeric.ErrInvalidState}
	}

	lo, hi := math.Min(0, ymin), math.Max(0, ymax)
	res := MonteCarloResult{
		YMin:    ymin,
		YMax:    ymax,
		Samples: make([]numeric.Point, n),
		Hits:    make([]bool, n),
	}

	signed := 0
	for i := 0; i < n; i++ {
		x := a + rng.Float64()*(b-a)
		y := lo + rng.Float64()*(hi-lo)
		fx := f(x)

		switch {
		case y >= 0 && y <= fx:
			signed++
			res.Hits[i] = true
		case y < 0 && y >= fx:
			signed--
			res.Hits[i] = true
		}
		res.Samples[i] = numeric.Point{X: x, Y: y}
	}

	res.Value = float64(signed) / float64(n) * (b - a) * (hi - lo)
	return res, nil
}
