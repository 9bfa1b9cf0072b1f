// Package study runs convergence sweeps: quadrature error over division
// counts and seeds, ODE error over step sizes.
package study

import (
	"context"
	"math"
)

// Evaluation is one grid point and its objective value.
type Evaluation struct {
	Params map[string]float64 `json:"params"`
	Value  float64            `json:"value"`
}

// GridSearch evaluates an objective on the cartesian product of parameter ranges.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search visits every grid point in order, the last parameter varying
// fastest. It returns the point with the smallest finite value (Value is +Inf
// when there is none) and every evaluation. The first objective error stops
// the search.
func (g *GridSearch) Search(
	ctx context.Context,
	objective func(params map[string]float64) (float64, error),
) (Evaluation, []Evaluation, error) {

	best := Evaluation{Value: math.Inf(1)}
	all := make([]Evaluation, 0)

	err := g.searchRecursive(ctx, 0, make(map[string]float64), objective, &best, &all)
	return best, all, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	objective func(map[string]float64) (float64, error),
	best *Evaluation,
	all *[]Evaluation,
) error {
	if depth == len(g.paramNames) {
		if err := ctx.Err(); err != nil {
			return err
		}

		val, err := objective(current)
		if err != nil {
			return err
		}

		*all = append(*all, Evaluation{Params: current, Value: val})
		if val < best.Value {
			best.Value = val
			best.Params = current
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, objective, best, all); err != nil {
			return err
		}
	}
	return nil
}
