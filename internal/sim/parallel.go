package sim

import (
	"context"
	"sync"
)

// Ensemble runs one problem under several configurations at once. Every run
// gets its own Simulator from the factory, so metrics are never shared.
type Ensemble struct {
	factory func() *Simulator
}

func NewEnsemble(factory func() *Simulator) *Ensemble {
	return &Ensemble{factory: factory}
}

// Run returns one result per configuration, in order. The first error wins.
func (e *Ensemble) Run(ctx context.Context, x0, y0 float64, cfgs []Config) ([]*Result, error) {
	results := make([]*Result, len(cfgs))
	errs := make([]error, len(cfgs))

	var wg sync.WaitGroup
	for i := range cfgs {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = e.factory().Run(ctx, x0, y0, cfgs[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
