package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/pondsim/internal/pond"
	"github.com/san-kum/pondsim/internal/sim"
)

func frame(tick int, levels ...float32) sim.Frame {
	px := make([]pond.Pixel, len(levels))
	for i, l := range levels {
		px[i] = pond.Pixel{B: l, A: 1}
	}
	return sim.Frame{Tick: tick, Width: len(levels), Height: 1, Pixels: px}
}

func TestLevelMetrics(t *testing.T) {
	frames := []sim.Frame{
		frame(1, 0.5, 0.5, 0.5, 0.5),
		frame(2, 0.5, 1.0, 0.25, 0.25),
	}

	tests := []struct {
		metric sim.Metric
		want   float64
	}{
		{NewMeanLevel(), 0.5},
		{NewPeakLevel(), 1.0},
		{NewLitFraction(0.5), 0.125},
		{NewEnergy(0.5), (0.25 + 0.0625 + 0.0625) / 4 / 2},
		{NewStability(0.5, 0.1), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.metric.Name(), func(t *testing.T) {
			for _, f := range frames {
				tt.metric.Observe(f)
			}
			if got := tt.metric.Value(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}

			tt.metric.Reset()
			if tt.metric.Name() == "stability" {
				if tt.metric.Value() != 1 {
					t.Errorf("expected 1 after reset, got %f", tt.metric.Value())
				}
				return
			}
			if tt.metric.Value() != 0 {
				t.Errorf("expected zero after reset, got %f", tt.metric.Value())
			}
		})
	}
}

func TestStabilitySettledAt(t *testing.T) {
	s := NewStability(0.5, 0.05)
	s.Observe(frame(1, 0.5, 0.9))
	s.Observe(frame(2, 0.5, 0.6))
	s.Observe(frame(3, 0.5, 0.52))
	if got := s.SettledAt(); got != 3 {
		t.Errorf("expected settled at 3, got %d", got)
	}
}

func TestActiveRipplesAndTouchRate(t *testing.T) {
	ar := NewActiveRipples()
	tr := NewTouchRate()
	for i, n := range []int{1, 3, 2} {
		f := frame(i+1, 0.5)
		f.Ripples = n
		f.Events = n - 1
		ar.Observe(f)
		tr.Observe(f)
	}
	if ar.Value() != 3 {
		t.Errorf("expected max ripples 3, got %f", ar.Value())
	}
	if tr.Value() != 1 {
		t.Errorf("expected touch rate 1, got %f", tr.Value())
	}
}

func TestProbe(t *testing.T) {
	p := NewProbe(pond.Coordinate{X: 1, Y: 0})
	p.Observe(frame(1, 0, 0.25))
	p.Observe(frame(2, 0, 0.75))

	series := p.Series()
	if len(series) != 2 || series[0] != 0.25 || series[1] != 0.75 {
		t.Fatalf("unexpected series %v", series)
	}
	want := math.Sqrt(0.125)
	if math.Abs(p.Value()-want) > 1e-9 {
		t.Errorf("expected stddev %f, got %f", want, p.Value())
	}
}

func TestEnergyDrift(t *testing.T) {
	d := NewEnergyDrift(0.5)
	d.Observe(frame(1, 0.5, 0.5))
	d.Observe(frame(2, 0.5, 1.0))
	d.Observe(frame(3, 0.5, 0.5))
	if math.Abs(d.Value()-0.125) > 1e-9 {
		t.Errorf("expected drift 0.125, got %f", d.Value())
	}
}

func TestDefaultNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, m := range Default(0.5, pond.Coordinate{}) {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	for _, name := range []string{"mean_level", "peak_level", "lit_fraction", "active_ripples", "probe"} {
		if !seen[name] {
			t.Errorf("missing metric %s", name)
		}
	}
}
