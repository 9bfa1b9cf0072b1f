package numeric

import "math"

// Func is a real-valued function of one real variable.
type Func func(x float64) float64

// Func2 is the right-hand side of a first-order ODE y' = f(x, y).
type Func2 func(x, y float64) float64

// Tolerances is the menu of accepted root-finding tolerances.
var Tolerances = []float64{1e-4, 1e-6, 1e-8}

// Divisions is the menu of accepted quadrature division counts.
var Divisions = []int{10, 20, 50, 100, 1000}

// IsTolerance reports whether eps is one of the menu tolerances.
func IsTolerance(eps float64) bool {
	for _, t := range Tolerances {
		if eps == t {
			return true
		}
	}
	return false
}

// IsDivision reports whether n is one of the menu division counts.
func IsDivision(n int) bool {
	for _, d := range Divisions {
		if n == d {
			return true
		}
	}
	return false
}

// Interval is a closed bracket [Low, High] with Low <= High.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Degenerate reports whether the interval is a single point (an exact root).
func (iv Interval) Degenerate() bool { return iv.Low == iv.High }

func (iv Interval) Width() float64 { return iv.High - iv.Low }

func (iv Interval) Mid() float64 { return (iv.Low + iv.High) / 2 }

// Round returns the interval with both ends rounded to the given number of decimals.
func (iv Interval) Round(decimals int) Interval {
	return Interval{Low: RoundTo(iv.Low, decimals), High: RoundTo(iv.High, decimals)}
}

// Point is one (x, y) sample.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Trajectory is an append-only sequence of ODE states.
type Trajectory []Point

// Last returns the final state. It panics on an empty trajectory.
func (t Trajectory) Last() Point { return t[len(t)-1] }

// Xs returns the abscissae in order.
func (t Trajectory) Xs() []float64 {
	xs := make([]float64, len(t))
	for i, p := range t {
		xs[i] = p.X
	}
	return xs
}

// Ys returns the ordinates in order.
func (t Trajectory) Ys() []float64 {
	ys := make([]float64, len(t))
	for i, p := range t {
		ys[i] = p.Y
	}
	return ys
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RoundTo rounds v half away from zero to the given number of decimals.
func RoundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

// Linspace returns n evenly spaced values from a to b inclusive.
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{a}
	}
	xs := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range xs {
		xs[i] = a + float64(i)*step
	}
	xs[n-1] = b
	return xs
}

// Sample evaluates f at n evenly spaced points of [a, b].
func Sample(f Func, a, b float64, n int) []Point {
	xs := Linspace(a, b, n)
	pts := make([]Point, len(xs))
	for i, x := range xs {
		pts[i] = Point{X: x, Y: f(x)}
	}
	return pts
}

// CheckRange validates a < b for an operation.
func CheckRange(op string, a, b float64) error {
	if !IsFinite(a) || !IsFinite(b) {
		return &Error{Op: op, X: a, Wrapped: ErrInvalidInput}
	}
	if a >= b {
		return &Error{Op: op, X: a, Wrapped: ErrDegenerateRange}
	}
	return nil
}
