package experiment

import (
	"math"
	"strings"

	"github.com/san-kum/numlab/internal/evaluator"
	"github.com/san-kum/numlab/internal/numeric"
)

// Function is a named single-variable formula with its default borders.
type Function struct {
	Name        string
	Expr        string
	A, B        float64
	Description string

	// Antiderivative is nil when no closed form is known.
	Antiderivative numeric.Func
}

// Compile returns the callable formula.
func (fn Function) Compile() (numeric.Func, error) {
	return evaluator.Func(fn.Expr)
}

// Integral returns the exact integral over [a, b] and false when no
// antiderivative is known.
func (fn Function) Integral(a, b float64) (float64, bool) {
	if fn.Antiderivative == nil {
		return 0, false
	}
	return fn.Antiderivative(b) - fn.Antiderivative(a), true
}

// ODE is a named right-hand side y' = f(x, y) with its default problem.
type ODE struct {
	Name        string
	Expr        string
	X0, Y0      float64
	End, Step   float64
	Description string

	// Exact builds the solution through (x0, y0); nil when unknown.
	Exact func(x0, y0 float64) (numeric.Func, error)
}

func (o ODE) Compile() (numeric.Func2, error) {
	return evaluator.Func2(o.Expr)
}

var rationalScale = math.Sqrt(1.5 * 0.7)

var catalog = []Function{
	{
		Name: "tanh", Expr: "x*tanh(x) - 1", A: -2, B: 2,
		Description: "x*tanh(x) = 1, two symmetric roots",
	},
	{
		Name: "inv-sqrt", Expr: "1/sqrt(x*x + 1)", A: 0.2, B: 1.2,
		Description:    "1/sqrt(x^2+1)",
		Antiderivative: math.Asinh,
	},
	{
		Name: "cos-ratio", Expr: "cos(x)/(x + 1)", A: 0.6, B: 1.4,
		Description: "cos(x)/(x+1)",
	},
	{
		Name: "rational", Expr: "1/(1.5*x*x + 0.7)", A: 1.4, B: 2.6,
		Description: "1/(1.5x^2+0.7)",
		Antiderivative: func(x float64) float64 {
			return math.Atan(x*1.5/rationalScale) / rationalScale
		},
	},
	{
		Name: "sin", Expr: "sin(x)", A: -3, B: 3,
		Description:    "sin(x)",
		Antiderivative: func(x float64) float64 { return -math.Cos(x) },
	},
}

var odeCatalog = []ODE{
	{
		Name: "riccati", Expr: "(y*y - y)/x",
		X0: 1, Y0: 0.5, End: 4, Step: 0.1,
		Description: "y' = (y^2 - y)/x, y = 1/(1 - Cx)",
		Exact:       RiccatiExact,
	},
	{
		Name: "decay", Expr: "-y",
		X0: 0, Y0: 1, End: 5, Step: 0.1,
		Description: "y' = -y, y = y0*exp(x0 - x)",
		Exact: func(x0, y0 float64) (numeric.Func, error) {
			return func(x float64) float64 { return y0 * math.Exp(x0-x) }, nil
		},
	},
}

// RiccatiExact returns the solution of y' = (y^2 - y)/x through (x0, y0),
// y = 1/(1 - Cx) with C = (1 - 1/y0)/x0. y0 = 0 gives y = 0.
func RiccatiExact(x0, y0 float64) (numeric.Func, error) {
	if x0 == 0 || !numeric.IsFinite(x0) || !numeric.IsFinite(y0) {
		return nil, &numeric.Error{Op: "riccati", X: x0, Wrapped: numeric.ErrInvalidInput}
	}
	if y0 == 0 {
		return func(float64) float64 { return 0 }, nil
	}
	c := (1 - 1/y0) / x0
	return func(x float64) float64 { return 1 / (1 - c*x) }, nil
}

func compact(expr string) string {
	return strings.Join(strings.Fields(expr), "")
}

// MatchFunction finds the catalog entry with the same formula, ignoring spaces.
func (r *Registry) MatchFunction(expr string) (Function, bool) {
	want := compact(expr)
	for _, name := range r.ListFunctions() {
		if fn := r.functions[name]; compact(fn.Expr) == want {
			return fn, true
		}
	}
	return Function{}, false
}

// MatchODE finds the catalog entry with the same right-hand side, ignoring spaces.
func (r *Registry) MatchODE(expr string) (ODE, bool) {
	want := compact(expr)
	for _, name := range r.ListODEs() {
		if ode := r.odes[name]; compact(ode.Expr) == want {
			return ode, true
		}
	}
	return ODE{}, false
}
