package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/pondsim/internal/config"
	"github.com/san-kum/pondsim/internal/experiment"
	"github.com/san-kum/pondsim/internal/storage"
)

const scenarioYAML = `
name: demo
description: tap then hold
steps:
  - mode: ripple
    preset: small
    script: tap
    ticks: 20
    save_as: tap
  - mode: instant
    preset: hold
    ticks: 40
    params:
      finger_width: 6
`

func TestParseScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if sc.Name != "demo" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Steps[1].Params["finger_width"] != 6 {
		t.Errorf("params not parsed: %+v", sc.Steps[1])
	}

	if _, err := ParseScenario([]byte("name: empty\n")); !errors.Is(err, ErrEmptyScenario) {
		t.Errorf("expected ErrEmptyScenario, got %v", err)
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(scenarioYAML), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
}

func TestStepConfig(t *testing.T) {
	cfg, err := StepConfig(ScenarioStep{Mode: "instant", Preset: "hold", Ticks: 10, Params: map[string]float64{"finger_width": 6}})
	if err != nil {
		t.Fatalf("step config failed: %v", err)
	}
	if cfg.Pond.Mode != "instant" || cfg.Run.Ticks != 10 || cfg.Pond.FingerWidth != 6 {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	tests := []struct {
		name string
		step ScenarioStep
	}{
		{"unknown preset", ScenarioStep{Preset: "fog"}},
		{"unknown param", ScenarioStep{Params: map[string]float64{"gravity": 1}}},
		{"invalid value", ScenarioStep{Params: map[string]float64{"default_value": 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := StepConfig(tt.step); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := ParseScenario([]byte(scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	store := storage.New(t.TempDir())

	results, err := RunScenario(context.Background(), sc, experiment.NewRegistry(), store, nil)
	if err != nil {
		t.Fatalf("scenario failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].RunID == "" || results[1].RunID != "" {
		t.Errorf("expected only the first step saved, got %q and %q", results[0].RunID, results[1].RunID)
	}
	if results[1].Result.Ticks != 40 {
		t.Errorf("expected 40 ticks, got %d", results[1].Result.Ticks)
	}

	runs, err := store.List()
	if err != nil || len(runs) != 1 {
		t.Errorf("expected one stored run, got %d (%v)", len(runs), err)
	}
}

func TestRunSweep(t *testing.T) {
	base := config.GetPreset("ripple", "small")
	base.Run.Ticks = 30

	results, err := RunSweep(context.Background(), &ParameterSweep{
		Base:      base,
		ParamName: "default_value",
		ParamMin:  0.2,
		ParamMax:  0.6,
		NumSteps:  3,
	}, experiment.NewRegistry(), nil)
	if err != nil {
		t.Fatalf("sweep failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].MeanLevel >= results[2].MeanLevel {
		t.Errorf("expected mean level to rise with resting value: %+v", results)
	}
	if base.Pond.DefaultValue != 0.5 {
		t.Errorf("sweep mutated base config: %f", base.Pond.DefaultValue)
	}

	_, err = RunSweep(context.Background(), &ParameterSweep{Base: base, ParamName: "gravity", NumSteps: 1}, experiment.NewRegistry(), nil)
	if !errors.Is(err, ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestRunMonteCarlo(t *testing.T) {
	base := config.GetPreset("ripple", "small")
	base.Run.Ticks = 40
	base.Run.Interval = 5

	results, err := RunMonteCarlo(context.Background(), &MonteCarloConfig{Base: base, NumTrials: 4, Seed: 11}, experiment.NewRegistry())
	if err != nil {
		t.Fatalf("monte carlo failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("expected 4 trials, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != 11+int64(i) {
			t.Errorf("trial %d: expected seed %d, got %d", i, 11+i, r.Seed)
		}
	}
	sat, calm := MonteCarloStats(results)
	if sat+calm != 4 {
		t.Errorf("expected counts to sum to 4, got %d+%d", sat, calm)
	}
}
