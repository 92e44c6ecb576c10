package sim

import (
	"context"
	"fmt"
	"sync"

	"github.com/san-kum/pondsim/internal/pond"
)

// Build constructs the program and script for one ensemble member.
type Build func(idx int, seed int64) (pond.Program, Script, error)

// Ensemble runs independent programs in parallel, one goroutine each. Every
// member gets its own simulator and metric set; no program is shared.
type Ensemble struct {
	numRuns    int
	seedStart  int64
	newMetrics func() []Metric
	pools      *PixelPools
}

func NewEnsemble(numRuns int, seedStart int64, newMetrics func() []Metric) *Ensemble {
	return &Ensemble{numRuns: numRuns, seedStart: seedStart, newMetrics: newMetrics, pools: NewPixelPools()}
}

func (e *Ensemble) Run(ctx context.Context, build Build, cfg Config) ([]*Result, error) {
	if e.numRuns <= 0 {
		return nil, fmt.Errorf("%w: ensemble size must be positive, got %d", ErrInvalidConfig, e.numRuns)
	}
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			prog, script, err := build(idx, cfgCopy.Seed)
			if err != nil {
				errs[idx] = fmt.Errorf("member %d: %w", idx, err)
				return
			}

			sim := New()
			sim.SetPools(e.pools)
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					sim.AddMetric(m)
				}
			}

			results[idx], errs[idx] = sim.Run(ctx, prog, script, cfgCopy)
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
