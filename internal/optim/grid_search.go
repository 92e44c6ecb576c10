package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/pondsim/internal/experiment"
)

var (
	ErrNoCandidates  = errors.New("optim: no parameter combination could be evaluated")
	ErrUnknownMetric = errors.New("optim: metric not produced by run")
	ErrBadRange      = errors.New("optim: invalid range")
)

// GridSearch evaluates every combination of parameter values and keeps the
// one with the lowest (or highest, with Maximize) metric.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	Maximize   bool
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Best is the outcome of a search.
type Best struct {
	Params    map[string]float64
	Value     float64
	Evaluated int
}

// Build turns one parameter combination into a ready-to-run experiment.
type Build func(params map[string]float64) (*experiment.Experiment, error)

func (g *GridSearch) Search(ctx context.Context, build Build, metricName string) (Best, error) {
	best := Best{Value: math.Inf(1)}
	if g.Maximize {
		best.Value = math.Inf(-1)
	}
	if len(g.paramNames) != len(g.ranges) {
		return best, fmt.Errorf("%w: %d names for %d ranges", ErrBadRange, len(g.paramNames), len(g.ranges))
	}

	if err := g.searchRecursive(ctx, 0, map[string]float64{}, build, metricName, &best); err != nil {
		return best, err
	}
	if best.Params == nil {
		return best, ErrNoCandidates
	}
	return best, nil
}

func (g *GridSearch) better(v, than float64) bool {
	if g.Maximize {
		return v > than
	}
	return v < than
}

func (g *GridSearch) searchRecursive(ctx context.Context, depth int, current map[string]float64, build Build, metricName string, best *Best) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		exp, err := build(current)
		if err != nil {
			return fmt.Errorf("building %v: %w", current, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return err
		}
		best.Evaluated++

		val, ok := result.Metrics[metricName]
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMetric, metricName)
		}
		if best.Params == nil || g.better(val, best.Value) {
			best.Value = val
			best.Params = make(map[string]float64, len(current))
			for k, v := range current {
				best.Params[k] = v
			}
		}
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		next := make(map[string]float64, len(current)+1)
		for k, v := range current {
			next[k] = v
		}
		next[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, next, build, metricName, best); err != nil {
			return err
		}
	}
	return nil
}

// Linspace returns n evenly spaced values from lo to hi inclusive.
func Linspace(lo, hi float64, n int) []float64 {
	if n <= 1 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

// ParseRange parses "name=lo:hi:n" (or "name=v" for a single value).
func ParseRange(s string) (string, []float64, error) {
	name, values, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return "", nil, fmt.Errorf("%w: %q, want name=lo:hi:n", ErrBadRange, s)
	}
	parts := strings.Split(values, ":")
	nums := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return "", nil, fmt.Errorf("%w: %q: %v", ErrBadRange, s, err)
		}
		nums[i] = v
	}
	switch len(nums) {
	case 1:
		return name, nums, nil
	case 3:
		n := int(nums[2])
		if n < 1 || float64(n) != nums[2] {
			return "", nil, fmt.Errorf("%w: %q: count must be a positive integer", ErrBadRange, s)
		}
		return name, Linspace(nums[0], nums[1], n), nil
	}
	return "", nil, fmt.Errorf("%w: %q, want name=lo:hi:n", ErrBadRange, s)
}
