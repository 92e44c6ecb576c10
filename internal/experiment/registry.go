package experiment

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"github.com/san-kum/pondsim/internal/metrics"
	"github.com/san-kum/pondsim/internal/pond"
	"github.com/san-kum/pondsim/internal/sim"
)

var (
	ErrUnknownScript = errors.New("experiment: unknown script")
	ErrNotSetup      = errors.New("experiment: not set up")
)

// ScriptParams tunes the built-in scripts. Interval is in ticks; Count is the
// number of presses in a burst.
type ScriptParams struct {
	Interval int
	Count    int
	Seed     int64
}

type ScriptFactory func(p ScriptParams) sim.Script

type Registry struct {
	scripts map[string]ScriptFactory
}

func NewRegistry() *Registry {
	r := &Registry{
		scripts: make(map[string]ScriptFactory),
	}

	r.scripts["idle"] = func(ScriptParams) sim.Script { return sim.Idle }
	r.scripts["tap"] = func(ScriptParams) sim.Script { return Tap(0) }
	r.scripts["hold"] = func(p ScriptParams) sim.Script { return Hold(0, interval(p)) }
	r.scripts["pulse"] = func(p ScriptParams) sim.Script { return Pulse(interval(p)) }
	r.scripts["rain"] = func(p ScriptParams) sim.Script { return Rain(interval(p), p.Seed) }
	r.scripts["burst"] = func(p ScriptParams) sim.Script {
		n := p.Count
		if n <= 0 {
			n = 16
		}
		return Burst(0, n)
	}

	return r
}

func interval(p ScriptParams) int {
	if p.Interval <= 0 {
		return 60
	}
	return p.Interval
}

// Register adds or replaces a script.
func (r *Registry) Register(name string, fn ScriptFactory) {
	r.scripts[name] = fn
}

func (r *Registry) GetScript(name string, p ScriptParams) (sim.Script, error) {
	fn, ok := r.scripts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScript, name)
	}
	return fn(p), nil
}

func (r *Registry) ListScripts() []string {
	names := make([]string, 0, len(r.scripts))
	for name := range r.scripts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) DefaultMetrics(rest float64, probe pond.Coordinate) []sim.Metric {
	return metrics.Default(rest, probe)
}

// Tap presses and releases in the same batch at tick at.
func Tap(at int) sim.Script {
	return sim.ScriptFunc(func(tick int) []pond.Event {
		if tick == at {
			return []pond.Event{pond.Press(), pond.Release()}
		}
		return nil
	})
}

// Hold presses at tick at and releases duration ticks later.
func Hold(at, duration int) sim.Script {
	return sim.ScriptFunc(func(tick int) []pond.Event {
		switch tick {
		case at:
			return []pond.Event{pond.Press()}
		case at + duration:
			return []pond.Event{pond.Release()}
		}
		return nil
	})
}

// Pulse taps at tick 0 and every every ticks after.
func Pulse(every int) sim.Script {
	return sim.ScriptFunc(func(tick int) []pond.Event {
		if tick%every == 0 {
			return []pond.Event{pond.Press(), pond.Release()}
		}
		return nil
	})
}

// Burst delivers n presses followed by one release in a single batch.
func Burst(at, n int) sim.Script {
	return sim.ScriptFunc(func(tick int) []pond.Event {
		if tick != at {
			return nil
		}
		events := make([]pond.Event, 0, n+1)
		for i := 0; i < n; i++ {
			events = append(events, pond.Press())
		}
		return append(events, pond.Release())
	})
}

// Rain taps with probability 1/every on each tick. The schedule depends only
// on seed and tick, so scripts are replayable in any order.
func Rain(every int, seed int64) sim.Script {
	return sim.ScriptFunc(func(tick int) []pond.Event {
		rng := rand.New(rand.NewSource(seed ^ int64(tick)*0x5851F42D4C957F2D))
		if rng.Intn(every) == 0 {
			return []pond.Event{pond.Press(), pond.Release()}
		}
		return nil
	})
}
