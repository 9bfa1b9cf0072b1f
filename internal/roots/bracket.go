// Package roots locates and refines the real roots of a scalar function.
//
// Root finding runs in two stages: [Bracket] scans a domain for sign changes,
// then a refiner ([Iterate], [Bisect], [Newton]) narrows every bracket down to
// a root estimate within a tolerance.
package roots

import (
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

const (
	// CoarseStep is the scan step of the first bracketing pass.
	CoarseStep = 1.0
	// FineStep is the scan step of the second bracketing pass.
	FineStep = 0.1
	// DisplayDecimals is the precision brackets are rounded to for display.
	DisplayDecimals = 2
)

// Bracket returns the sub-intervals of [a, b] that contain a sign change of f,
// found by a coarse scan with step 1 followed by a fine scan with step 0.1.
// Exact zeros at scan nodes come back as degenerate intervals.
func Bracket(f numeric.Func, a, b float64) ([]numeric.Interval, error) {
	if err := numeric.CheckRange("bracket", a, b); err != nil {
		return nil, err
	}

	intervals := []numeric.Interval{{Low: a, High: b}}
	for _, step := range []float64{CoarseStep, FineStep} {
		intervals = rescan(f, intervals, step)
	}
	return intervals, nil
}

// Round returns a display copy of intervals rounded to two decimals.
func Round(intervals []numeric.Interval) []numeric.Interval {
	out := make([]numeric.Interval, len(intervals))
	for i, iv := range intervals {
		out[i] = iv.Round(DisplayDecimals)
	}
	return out
}

// rescan partitions every non-degenerate interval with the given step and keeps
// the cells that hold a sign change. Degenerate intervals are carried over.
func rescan(f numeric.Func, intervals []numeric.Interval, step float64) []numeric.Interval {
	out := make([]numeric.Interval, 0, len(intervals))
	for _, iv := range intervals {
		if iv.Degenerate() {
			out = appendUnique(out, iv)
			continue
		}
		out = scan(f, iv, step, out)
	}
	return out
}

// scan walks [iv.Low, iv.High] in cells of width step and appends sign-change
// cells to out.
func scan(f numeric.Func, iv numeric.Interval, step float64, out []numeric.Interval) []numeric.Interval {
	cells := int(math.Ceil(iv.Width()/step - 1e-9))
	if cells < 1 {
		cells = 1
	}

	a1 := iv.Low
	f1 := f(a1)
	for i := 1; i <= cells; i++ {
		a2 := math.Min(iv.Low+float64(i)*step, iv.High)
		if i == cells {
			a2 = iv.High
		}
		f2 := f(a2)

		switch {
		case f1*f2 < 0:
			out = append(out, numeric.Interval{Low: a1, High: a2})
		case f1 == 0:
			out = appendUnique(out, numeric.Interval{Low: a1, High: a1})
		case f2 == 0:
			out = appendUnique(out, numeric.Interval{Low: a2, High: a2})
		}

		a1, f1 = a2, f2
	}
	return out
}

// appendUnique skips a degenerate interval equal to the last one recorded, the
// case of a zero on a node shared by two neighbouring cells.
func appendUnique(out []numeric.Interval, iv numeric.Interval) []numeric.Interval {
	if n := len(out); n > 0 && out[n-1] == iv {
		return out
	}
	return append(out, iv)
}
