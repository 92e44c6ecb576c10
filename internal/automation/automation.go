package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/pondsim/internal/config"
	"github.com/san-kum/pondsim/internal/experiment"
	"github.com/san-kum/pondsim/internal/metrics"
	"github.com/san-kum/pondsim/internal/pond"
	"github.com/san-kum/pondsim/internal/sim"
	"github.com/san-kum/pondsim/internal/storage"
)

var (
	ErrEmptyScenario = errors.New("automation: scenario has no steps")
	ErrUnknownParam  = errors.New("automation: unknown sweep parameter")
)

// Scenario is a YAML-defined sequence of scripted runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run. Mode and Preset select a base configuration;
// the remaining fields override it when set.
type ScenarioStep struct {
	Mode     string             `yaml:"mode"`
	Preset   string             `yaml:"preset"`
	Script   string             `yaml:"script"`
	Ticks    int                `yaml:"ticks"`
	Interval int                `yaml:"interval"`
	Seed     int64              `yaml:"seed"`
	Params   map[string]float64 `yaml:"params"`
	SaveAs   string             `yaml:"save_as"`
}

// StepResult pairs a step's result with the run ID it was stored under.
type StepResult struct {
	Step   ScenarioStep
	RunID  string
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScenario(data)
}

func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, ErrEmptyScenario
	}
	return &scenario, nil
}

// StepConfig resolves the configuration a step runs with.
func StepConfig(step ScenarioStep) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if step.Preset != "" {
		mode := step.Mode
		if mode == "" {
			mode = cfg.Pond.Mode
		}
		cfg = config.GetPreset(mode, step.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %s/%s", mode, step.Preset)
		}
	}
	if step.Mode != "" {
		cfg.Pond.Mode = step.Mode
	}
	if step.Script != "" {
		cfg.Run.Script = step.Script
	}
	if step.Ticks > 0 {
		cfg.Run.Ticks = step.Ticks
	}
	if step.Interval > 0 {
		cfg.Run.Interval = step.Interval
	}
	if step.Seed != 0 {
		cfg.Run.Seed = step.Seed
	}
	for k, v := range step.Params {
		if err := SetParam(cfg, k, v); err != nil {
			return nil, err
		}
	}
	return cfg, cfg.Validate()
}

// SetParam sets a numeric pond parameter by its YAML name.
func SetParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "finger_width":
		cfg.Pond.FingerWidth = int(v)
	case "max_age":
		cfg.Pond.MaxAge = v
	case "default_value":
		cfg.Pond.DefaultValue = v
	case "touched_value":
		cfg.Pond.TouchedValue = v
	case "anchor_x":
		cfg.Pond.AnchorX = int(v)
	case "anchor_y":
		cfg.Pond.AnchorY = int(v)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}

// RunScenario executes all steps in order. Steps with save_as are written to
// store when it is non-nil.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry, store *storage.Store, logger *slog.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := StepConfig(step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		logger.Info("running step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps),
			"mode", cfg.Pond.Mode, "script", cfg.Run.Script, "ticks", cfg.Run.Ticks)

		exp := experiment.New(cfg)
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		sr := StepResult{Step: step, Result: result}
		if step.SaveAs != "" && store != nil {
			sr.RunID, err = store.Save(step.SaveAs, storage.NewMetadata(cfg, result), result.Samples)
			if err != nil {
				return results, fmt.Errorf("step %d save: %w", i+1, err)
			}
			logger.Info("saved step", "step", i+1, "run", sr.RunID)
		}
		results = append(results, sr)
	}

	return results, nil
}

// ParameterSweep runs the same script across a range of one pond parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	MeanLevel  float64
	PeakLevel  float64
	Energy     float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry, logger *slog.Logger) ([]SweepResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := *sweep.Base
		if err := SetParam(&cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		exp := experiment.New(&cfg)
		if err := exp.Setup(registry); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			MeanLevel:  result.Metrics["mean_level"],
			PeakLevel:  result.Metrics["peak_level"],
			Energy:     result.Metrics["energy"],
		})

		logger.Debug("sweep step", "step", i+1, "of", sweep.NumSteps, "param", sweep.ParamName, "value", paramVal)
	}

	return results, nil
}

// MonteCarloConfig defines randomized rain trials.
type MonteCarloConfig struct {
	Base      *config.Config
	NumTrials int
	Seed      int64
}

// MonteCarloResult holds statistics from one trial.
type MonteCarloResult struct {
	TrialID   int
	Seed      int64
	Taps      int
	MeanLevel float64
	PeakLevel float64
	Saturated bool // did any frame reach full level?
}

// RunMonteCarlo runs NumTrials rain scripts with consecutive seeds in
// parallel, one pond per trial.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	if err := cfg.Base.Validate(); err != nil {
		return nil, err
	}
	pc, err := cfg.Base.ToPond()
	if err != nil {
		return nil, err
	}
	probe := cfg.Base.Probe()

	build := func(idx int, seed int64) (pond.Program, sim.Script, error) {
		p, err := pond.New(pc)
		if err != nil {
			return nil, nil, err
		}
		script, err := registry.GetScript("rain", experiment.ScriptParams{Interval: cfg.Base.Run.Interval, Seed: seed})
		if err != nil {
			return nil, nil, err
		}
		return p, script, nil
	}
	newMetrics := func() []sim.Metric {
		return []sim.Metric{metrics.NewMeanLevel(), metrics.NewPeakLevel()}
	}

	ens := sim.NewEnsemble(cfg.NumTrials, cfg.Seed, newMetrics)
	runs, err := ens.Run(ctx, build, sim.Config{
		Ticks:       cfg.Base.Run.Ticks,
		SampleEvery: cfg.Base.Run.SampleEvery,
		Probe:       probe,
	})
	if err != nil {
		return nil, err
	}

	results := make([]MonteCarloResult, len(runs))
	for i, r := range runs {
		peak := r.Metrics["peak_level"]
		results[i] = MonteCarloResult{
			TrialID:   i,
			Seed:      cfg.Seed + int64(i),
			Taps:      r.Events / 2,
			MeanLevel: r.Metrics["mean_level"],
			PeakLevel: peak,
			Saturated: peak >= 1,
		}
	}
	return results, nil
}

// MonteCarloStats counts saturated and unsaturated trials.
func MonteCarloStats(results []MonteCarloResult) (saturated int, calm int) {
	for _, r := range results {
		if r.Saturated {
			saturated++
		} else {
			calm++
		}
	}
	return
}
