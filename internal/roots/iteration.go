package roots

import (
	"math"

	"github.com/san-kum/numlab/internal/numeric"
)

const (
	// InitialIterationStep is the scan step of the first refinement round.
	InitialIterationStep = 0.01
	// MaxIterationRounds bounds the refinement to steps of 1e-15 and above,
	// below which scan nodes stop being distinct floats.
	MaxIterationRounds = 14
)

// Method refines a list of brackets into one root estimate per bracket.
type Method func(f numeric.Func, intervals []numeric.Interval, eps float64) ([]float64, error)

// Iterate refines brackets by rescanning them with steps 0.01, 0.001, ... for as
// long as the step is not below eps, then returns the midpoints of the brackets
// found by the finest round.
func Iterate(f numeric.Func, intervals []numeric.Interval, eps float64) ([]float64, error) {
	if err := checkTolerance("iterate", eps); err != nil {
		return nil, err
	}

	current := intervals
	for _, step := range iterationSteps(eps) {
		current = rescan(f, current, step)
	}

	roots := make([]float64, len(current))
	for i, iv := range current {
		roots[i] = iv.Mid()
	}
	return roots, nil
}

// iterationSteps lists the decimal steps used for tolerance eps.
func iterationSteps(eps float64) []float64 {
	steps := make([]float64, 0, 4)
	for k := 0; k < MaxIterationRounds; k++ {
		step := InitialIterationStep * math.Pow(10, -float64(k))
		if step < eps*(1-1e-9) {
			break
		}
		steps = append(steps, step)
	}
	return steps
}

func checkTolerance(op string, eps float64) error {
	if eps <= 0 || !numeric.IsFinite(eps) {
		return &numeric.Error{Op: op, X: eps, Wrapped: numeric.ErrInvalidInput}
	}
	return nil
}
