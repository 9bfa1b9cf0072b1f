// Package evaluator turns expression text such as "x*tanh(x) - 1" into callable
// functions for the numerical labs.
package evaluator

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/san-kum/numlab/internal/numeric"
)

// Functions and constants available inside expressions.
var mathEnv = map[string]any{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"sinh":  math.Sinh,
	"cosh":  math.Cosh,
	"tanh":  math.Tanh,
	"exp":   math.Exp,
	"ln":    math.Log,
	"log":   math.Log,
	"log10": math.Log10,
	"sqrt":  math.Sqrt,
	"pow":   math.Pow,
	"pi":    math.Pi,
	"e":     math.E,
}

// Expression is a compiled formula over a fixed set of variables.
type Expression struct {
	source string
	vars   []string
	prog   *vm.Program

	mu  sync.Mutex
	env map[string]any
}

// Compile parses src as a formula of the named variables. An equation of the
// form "lhs = rhs" is compiled as lhs - rhs.
func Compile(src string, vars ...string) (*Expression, error) {
	body := normalize(src)
	if body == "" {
		return nil, fmt.Errorf("%w: empty expression", numeric.ErrInvalidInput)
	}

	env := make(map[string]any, len(mathEnv)+len(vars))
	for k, v := range mathEnv {
		env[k] = v
	}
	for _, name := range vars {
		if _, ok := mathEnv[name]; ok {
			return nil, fmt.Errorf("%w: variable %q shadows a builtin", numeric.ErrInvalidInput, name)
		}
		env[name] = 0.0
	}

	prog, err := expr.Compile(body, expr.Env(env), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", numeric.ErrInvalidInput, src, err)
	}

	return &Expression{source: src, vars: vars, prog: prog, env: env}, nil
}

func normalize(src string) string {
	s := strings.TrimSpace(src)
	if strings.Count(s, "=") != 1 || strings.ContainsAny(s, "<>!") {
		return s
	}
	parts := strings.SplitN(s, "=", 2)
	lhs, rhs := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if rhs == "" || rhs == "0" {
		return lhs
	}
	return fmt.Sprintf("(%s) - (%s)", lhs, rhs)
}

func (e *Expression) String() string { return e.source }

// Eval evaluates the expression with values bound to the variables in order.
func (e *Expression) Eval(values ...float64) (float64, error) {
	if len(values) != len(e.vars) {
		return math.NaN(), fmt.Errorf("%w: %q expects %d values, got %d", numeric.ErrInvalidInput, e.source, len(e.vars), len(values))
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for i, name := range e.vars {
		e.env[name] = values[i]
	}
	out, err := expr.Run(e.prog, e.env)
	if err != nil {
		return math.NaN(), err
	}
	v, ok := out.(float64)
	if !ok {
		return math.NaN(), fmt.Errorf("%w: %q is not real-valued", numeric.ErrInvalidInput, e.source)
	}
	return v, nil
}

// Func compiles a formula in x.
func Func(src string) (numeric.Func, error) {
	e, err := Compile(src, "x")
	if err != nil {
		return nil, err
	}
	return func(x float64) float64 {
		v, err := e.Eval(x)
		if err != nil {
			return math.NaN()
		}
		return v
	}, nil
}

// Func2 compiles a formula in x and y, the right-hand side of y' = f(x, y).
func Func2(src string) (numeric.Func2, error) {
	e, err := Compile(src, "x", "y")
	if err != nil {
		return nil, err
	}
	return func(x, y float64) float64 {
		v, err := e.Eval(x, y)
		if err != nil {
			return math.NaN()
		}
		return v
	}, nil
}
