package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/pondsim/internal/pond"
)

func TestEnsembleRun(t *testing.T) {
	seeds := make([]int64, 4)
	build := func(idx int, seed int64) (pond.Program, Script, error) {
		seeds[idx] = seed
		return &countingProgram{w: 2, h: 2}, nil, nil
	}

	ens := NewEnsemble(4, 100, func() []Metric { return []Metric{&testMetric{}} })
	results, err := ens.Run(context.Background(), build, Config{Ticks: 5, SampleEvery: 1})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Ticks != 5 {
			t.Errorf("member %d: expected 5 ticks, got %d", i, r.Ticks)
		}
		if _, ok := r.Metrics["test"]; !ok {
			t.Errorf("member %d: missing metric", i)
		}
		if seeds[i] != 100+int64(i) {
			t.Errorf("member %d: expected seed %d, got %d", i, 100+i, seeds[i])
		}
	}
	if ens.pools.Len() != 1 {
		t.Errorf("expected members to share one frame pool, got %d", ens.pools.Len())
	}
}

func TestEnsembleBuildError(t *testing.T) {
	boom := errors.New("boom")
	build := func(idx int, seed int64) (pond.Program, Script, error) {
		if idx == 1 {
			return nil, nil, boom
		}
		return &countingProgram{w: 1, h: 1}, nil, nil
	}
	_, err := NewEnsemble(3, 0, nil).Run(context.Background(), build, Config{Ticks: 1, SampleEvery: 1})
	if !errors.Is(err, boom) {
		t.Errorf("expected build error, got %v", err)
	}
}
