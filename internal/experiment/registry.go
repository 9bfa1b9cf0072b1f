package experiment

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/numlab/internal/integrators"
	"github.com/san-kum/numlab/internal/metrics"
	"github.com/san-kum/numlab/internal/numeric"
	"github.com/san-kum/numlab/internal/quadrature"
	"github.com/san-kum/numlab/internal/roots"
	"github.com/san-kum/numlab/internal/sim"
)

// Rule is a quadrature rule reduced to its estimate. rng is only used by
// randomized rules.
type Rule func(f numeric.Func, a, b float64, n int, rng *rand.Rand) (float64, error)

// StabilityBound is the |y| above which a trajectory counts as unstable.
const StabilityBound = 1e6

type Registry struct {
	steppers  map[string]func() sim.Stepper
	rules     map[string]Rule
	refiners  map[string]roots.Method
	functions map[string]Function
	odes      map[string]ODE
}

func NewRegistry() *Registry {
	r := &Registry{
		steppers:  make(map[string]func() sim.Stepper),
		rules:     make(map[string]Rule),
		refiners:  make(map[string]roots.Method),
		functions: make(map[string]Function),
		odes:      make(map[string]ODE),
	}

	r.steppers["euler"] = func() sim.Stepper { return integrators.NewEuler() }
	r.steppers["rk4"] = func() sim.Stepper { return integrators.NewRK4() }

	r.rules["rectangle"] = func(f numeric.Func, a, b float64, n int, _ *rand.Rand) (float64, error) {
		res, err := quadrature.Rectangle(f, a, b, n)
		return res.Value, err
	}
	r.rules["trapezoid"] = func(f numeric.Func, a, b float64, n int, _ *rand.Rand) (float64, error) {
		res, err := quadrature.Trapezoid(f, a, b, n)
		return res.Value, err
	}
	r.rules["monte-carlo"] = func(f numeric.Func, a, b float64, n int, rng *rand.Rand) (float64, error) {
		if rng == nil {
			return math.NaN(), fmt.Errorf("monte-carlo: %w: nil random source", numeric.ErrInvalidInput)
		}
		res, err := quadrature.MonteCarlo(f, a, b, n, rng)
		return res.Value, err
	}

	r.refiners["iteration"] = roots.Iterate
	r.refiners["bisection"] = roots.BisectAll
	r.refiners["newton"] = roots.NewtonRoots

	for _, fn := range catalog {
		r.functions[fn.Name] = fn
	}
	for _, ode := range odeCatalog {
		r.odes[ode.Name] = ode
	}

	return r
}

func (r *Registry) GetStepper(name string) (sim.Stepper, error) {
	fn, ok := r.steppers[name]
	if !ok {
		return nil, fmt.Errorf("unknown stepper: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetRule(name string) (Rule, error) {
	rule, ok := r.rules[name]
	if !ok {
		return nil, fmt.Errorf("unknown quadrature rule: %s", name)
	}
	return rule, nil
}

func (r *Registry) GetRefiner(name string) (roots.Method, error) {
	m, ok := r.refiners[name]
	if !ok {
		return nil, fmt.Errorf("unknown root method: %s", name)
	}
	return m, nil
}

func (r *Registry) GetFunction(name string) (Function, error) {
	fn, ok := r.functions[name]
	if !ok {
		return Function{}, fmt.Errorf("unknown function: %s", name)
	}
	return fn, nil
}

func (r *Registry) GetODE(name string) (ODE, error) {
	ode, ok := r.odes[name]
	if !ok {
		return ODE{}, fmt.Errorf("unknown ode: %s", name)
	}
	return ode, nil
}

func (r *Registry) ListSteppers() []string  { return sortedKeys(r.steppers) }
func (r *Registry) ListRules() []string     { return sortedKeys(r.rules) }
func (r *Registry) ListRefiners() []string  { return sortedKeys(r.refiners) }
func (r *Registry) ListFunctions() []string { return sortedKeys(r.functions) }
func (r *Registry) ListODEs() []string      { return sortedKeys(r.odes) }

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns fresh trajectory metrics. Error metrics are added
// only when an exact solution is known.
func (r *Registry) DefaultMetrics(exact numeric.Func) []sim.Metric {
	ms := []sim.Metric{
		metrics.NewFinalValue(),
		metrics.NewStability(StabilityBound),
	}
	if exact != nil {
		ms = append(ms, metrics.NewMaxAbsError(exact), metrics.NewFinalError(exact))
	}
	return ms
}
