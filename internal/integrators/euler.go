package integrators

import "github.com/san-kum/numlab/internal/numeric"

// Euler is the explicit first-order method y + h*f(x, y).
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Name() string { return "euler" }

func (e *Euler) Order() int { return 1 }

func (e *Euler) Step(f numeric.Func2, x, y, h float64) float64 {
	return y + h*f(x, y)
}
