package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/pondsim/internal/config"
	"github.com/san-kum/pondsim/internal/pond"
	"github.com/san-kum/pondsim/internal/sim"
)

func countEvents(s sim.Script, ticks int) (presses, releases int) {
	for tick := 0; tick < ticks; tick++ {
		for _, ev := range s.Events(tick) {
			be, ok := ev.(pond.ButtonEvent)
			if !ok || be.Button != pond.ButtonAction {
				continue
			}
			if be.State == pond.Pressed {
				presses++
			} else {
				releases++
			}
		}
	}
	return
}

func TestScripts(t *testing.T) {
	tests := []struct {
		name     string
		script   sim.Script
		ticks    int
		presses  int
		releases int
	}{
		{"tap", Tap(3), 10, 1, 1},
		{"hold", Hold(0, 5), 10, 1, 1},
		{"hold past end", Hold(0, 50), 10, 1, 0},
		{"pulse", Pulse(4), 10, 3, 3},
		{"burst", Burst(0, 5), 10, 5, 1},
		{"idle", sim.Idle, 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, r := countEvents(tt.script, tt.ticks)
			if p != tt.presses || r != tt.releases {
				t.Errorf("expected %d/%d presses/releases, got %d/%d", tt.presses, tt.releases, p, r)
			}
		})
	}
}

func TestRainReplayable(t *testing.T) {
	a := Rain(5, 7)
	b := Rain(5, 7)
	taps := 0
	for tick := 999; tick >= 0; tick-- {
		ea, eb := a.Events(tick), b.Events(tick)
		if len(ea) != len(eb) {
			t.Fatalf("tick %d: schedules differ", tick)
		}
		if len(ea) > 0 {
			taps++
		}
	}
	if taps < 100 || taps > 300 {
		t.Errorf("expected about 200 taps, got %d", taps)
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"tap", "hold", "pulse", "rain", "burst", "idle"} {
		if _, err := r.GetScript(name, ScriptParams{}); err != nil {
			t.Errorf("script %s: %v", name, err)
		}
	}
	if _, err := r.GetScript("drizzle", ScriptParams{}); !errors.Is(err, ErrUnknownScript) {
		t.Errorf("expected ErrUnknownScript, got %v", err)
	}

	r.Register("drizzle", func(ScriptParams) sim.Script { return sim.Idle })
	if _, err := r.GetScript("drizzle", ScriptParams{}); err != nil {
		t.Errorf("registered script missing: %v", err)
	}
	if names := r.ListScripts(); names[0] != "burst" {
		t.Errorf("expected sorted names, got %v", names)
	}
}

func TestExperimentRun(t *testing.T) {
	cfg := config.GetPreset("ripple", "small")
	cfg.Run.Ticks = 50

	exp := New(cfg)
	if _, err := exp.Run(context.Background()); !errors.Is(err, ErrNotSetup) {
		t.Errorf("expected ErrNotSetup, got %v", err)
	}
	if err := exp.Setup(NewRegistry()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Ticks != 50 || len(result.Samples) != 50 {
		t.Errorf("expected 50 ticks and samples, got %d/%d", result.Ticks, len(result.Samples))
	}
	if result.Metrics["active_ripples"] != 1 {
		t.Errorf("expected one ripple from a tap, got %f", result.Metrics["active_ripples"])
	}
	if exp.Pond().Spawned() != 1 {
		t.Errorf("expected one spawned ripple, got %d", exp.Pond().Spawned())
	}
}

func TestExperimentSetupErrors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Run.Script = "drizzle"
	if err := New(cfg).Setup(NewRegistry()); !errors.Is(err, ErrUnknownScript) {
		t.Errorf("expected ErrUnknownScript, got %v", err)
	}

	cfg = config.DefaultConfig()
	cfg.Pond.FingerWidth = -1
	if err := New(cfg).Setup(NewRegistry()); !errors.Is(err, pond.ErrInvalidConfig) {
		t.Errorf("expected pond.ErrInvalidConfig, got %v", err)
	}
}
