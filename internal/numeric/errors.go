package numeric

import (
	"errors"
	"fmt"
)

// Domain errors for numerical operations.
var (
	// ErrInvalidInput indicates non-numeric text or a non-positive count or tolerance.
	ErrInvalidInput = errors.New("numeric: invalid input")

	// ErrDegenerateRange indicates a >= b, mismatched coordinate lengths or coincident nodes.
	ErrDegenerateRange = errors.New("numeric: degenerate range")

	// ErrDegenerateDenominator indicates a zero denominator inside an algorithm.
	ErrDegenerateDenominator = errors.New("numeric: zero denominator")

	// ErrNoSignChange indicates an interval that does not bracket a sign change.
	ErrNoSignChange = errors.New("numeric: no sign change in interval")

	// ErrInvalidStep indicates a zero ODE step, one pointing away from the end or
	// one needing more steps than a run allows.
	ErrInvalidStep = errors.New("numeric: invalid step")

	// ErrInvalidState indicates a trajectory value that became NaN or Inf.
	ErrInvalidState = errors.New("numeric: invalid state (NaN or Inf detected)")
)

// Error wraps a domain error with the operation and the point where it happened.
type Error struct {
	Op        string
	X         float64
	Iteration int
	Wrapped   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: x=%g iteration %d: %v", e.Op, e.X, e.Iteration, e.Wrapped)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}
