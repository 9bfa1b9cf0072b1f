package roots

import (
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

// Bisect halves iv until its width is at most eps and returns the midpoint.
// Each step checks f(c) == 0, then the left half, then the right half; an
// interval without a sign change in either half fails with ErrNoSignChange.
func Bisect(f numeric.Func, iv numeric.Interval, eps float64) (float64, error) {
	if err := checkTolerance("bisect", eps); err != nil {
		return math.NaN(), err
	}
	if iv.Low > iv.High {
		return math.NaN(), &numeric.Error{Op: "bisect", X: iv.Low, Wrapped: numeric.ErrDegenerateRange}
	}
	if iv.Degenerate() {
		return iv.Low, nil
	}

	l, r := iv.Low, iv.High
	fl, fr := f(l), f(r)
	if fl == 0 {
		return l, nil
	}
	if fr == 0 {
		return r, nil
	}

	for i := 0; r-l > eps; i++ {
		c := (l + r) / 2
		if c == l || c == r {
			break
		}
		fc := f(c)

		switch {
		case fc == 0:
			return c, nil
		case fl*fc < 0:
			r, fr = c, fc
		case fc*fr < 0:
			l, fl = c, fc
		default:
			return math.NaN(), &numeric.Error{Op: "bisect", X: c, Iteration: i, Wrapped: numeric.ErrNoSignChange}
		}
	}

	return (l + r) / 2, nil
}

// BisectAll bisects every interval and stops at the first failure.
func BisectAll(f numeric.Func, intervals []numeric.Interval, eps float64) ([]float64, error) {
	roots := make([]float64, 0, len(intervals))
	for _, iv := range intervals {
		root, err := Bisect(f, iv, eps)
		if err != nil {
			return nil, err
		}
		roots = append(roots, root)
	}
	return roots, nil
}
