package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/pondsim/internal/config"
	"github.com/san-kum/pondsim/internal/pond"
	"github.com/san-kum/pondsim/internal/sim"
)

// Experiment binds a configuration to a pond, a script and a metric set.
type Experiment struct {
	cfg       *config.Config
	pond      *pond.Pond
	script    sim.Script
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup validates the configuration and builds the pond, the script named by
// cfg.Run.Script and the default metrics.
func (e *Experiment) Setup(registry *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	pc, err := e.cfg.ToPond()
	if err != nil {
		return err
	}
	p, err := pond.New(pc)
	if err != nil {
		return err
	}
	script, err := registry.GetScript(e.cfg.Run.Script, ScriptParams{
		Interval: e.cfg.Run.Interval,
		Seed:     e.cfg.Run.Seed,
	})
	if err != nil {
		return err
	}

	e.pond = p
	e.script = script
	e.simulator = sim.New()
	for _, m := range registry.DefaultMetrics(pc.DefaultValue, e.cfg.Probe()) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) SimConfig() sim.Config {
	return sim.Config{
		Ticks:       e.cfg.Run.Ticks,
		SampleEvery: e.cfg.Run.SampleEvery,
		Probe:       e.cfg.Probe(),
		Seed:        e.cfg.Run.Seed,
	}
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, ErrNotSetup
	}
	result, err := e.simulator.Run(ctx, e.pond, e.script, e.SimConfig())
	if err != nil {
		return result, fmt.Errorf("running %s/%s: %w", e.cfg.Pond.Mode, e.cfg.Run.Script, err)
	}
	return result, nil
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Pond returns the simulated pond, or nil before Setup.
func (e *Experiment) Pond() *pond.Pond { return e.pond }

func (e *Experiment) Script() sim.Script { return e.script }

// GetSimulator returns the underlying simulator for adding observers.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
