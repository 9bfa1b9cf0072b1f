package integrators

import "github.com/san-kum/numlab/internal/numeric"

// RK4 is the classical fourth-order Runge-Kutta method.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Name() string { return "rk4" }

func (r *RK4) Order() int { return 4 }

func (r *RK4) Step(f numeric.Func2, x, y, h float64) float64 {
	half := h * 0.5

	k1 := f(x, y)
	k2 := f(x+half, y+half*k1)
	k3 := f(x+half, y+half*k2)
	k4 := f(x+h, y+h*k3)

	return y + h/6.0*(k1+2*k2+2*k3+k4)
}
