package analysis

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/pondsim/internal/pond"
	"github.com/san-kum/pondsim/internal/sim"
)

func TestDominantFrequency(t *testing.T) {
	tests := []struct {
		name   string
		period float64
		dt     float64
		want   float64
	}{
		{"period 16", 16, 1, 1.0 / 16},
		{"period 8", 8, 1, 1.0 / 8},
		{"sampled every 2 ticks", 8, 2, 1.0 / 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]float64, 256)
			for i := range data {
				data[i] = 0.5 + 0.2*math.Sin(2*math.Pi*float64(i)/tt.period)
			}
			freq, power := DominantFrequency(data, tt.dt)
			if math.Abs(freq-tt.want) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.want, freq)
			}
			if power <= 0 {
				t.Errorf("expected positive power, got %f", power)
			}
		})
	}
}

func TestPowerSpectrumPadding(t *testing.T) {
	ps := PowerSpectrum(make([]float64, 100))
	if len(ps) != 65 {
		t.Errorf("expected 65 bins for 128-point transform, got %d", len(ps))
	}
	for i, v := range ps {
		if v > 1e-12 {
			t.Errorf("bin %d: expected zero power for constant input, got %g", i, v)
		}
	}
	if PowerSpectrum(nil) != nil {
		t.Error("expected nil spectrum for empty input")
	}
	if got := Frequencies(100, 1); len(got) != 65 || got[64] != 0.5 {
		t.Errorf("unexpected frequencies: len %d", len(got))
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize([]float64{4, 1, 3, 2, 5, 6, 7, 8, 9, 10})
	if s.Count != 10 || s.Min != 1 || s.Max != 10 {
		t.Errorf("unexpected bounds %+v", s)
	}
	if s.Mean != 5.5 {
		t.Errorf("expected mean 5.5, got %f", s.Mean)
	}
	if s.P50 != 5 || s.P90 != 9 {
		t.Errorf("expected p50 5 and p90 9, got %f %f", s.P50, s.P90)
	}
	if s.StdDev <= 0 {
		t.Error("expected positive stddev")
	}
	if !strings.Contains(s.String(), "n=10") {
		t.Errorf("unexpected string %q", s.String())
	}

	if (Summarize(nil) != Summary{}) {
		t.Error("expected zero summary for empty input")
	}
}

func TestDecayExponent(t *testing.T) {
	series := make([]float64, 400)
	for i := range series {
		age := float64(i + 1)
		series[i] = 0.5 + math.Sin(age)/age
	}
	k, err := DecayExponent(series, 0.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(k+1) > 0.1 {
		t.Errorf("expected exponent near -1, got %f", k)
	}

	if _, err := DecayExponent([]float64{0.5, 0.5, 0.5}, 0.5); !errors.Is(err, ErrTooFewPeaks) {
		t.Errorf("expected ErrTooFewPeaks, got %v", err)
	}
}

func TestCrossings(t *testing.T) {
	got := Crossings([]float64{0, 1, 0, 1, 1, 0}, 0.5)
	if len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Errorf("unexpected crossings %v", got)
	}
}

func TestPhasePortrait(t *testing.T) {
	p := GeneratePhasePortrait([]float64{0, 1, 3})
	if p == nil || len(p.Points) != 2 {
		t.Fatalf("unexpected portrait %+v", p)
	}
	if p.Points[1].X != 1 || p.Points[1].Y != 2 {
		t.Errorf("unexpected point %+v", p.Points[1])
	}

	art := PhasePortraitToASCII(p, 20, 10)
	if strings.Count(art, "\n") != 10 || !strings.Contains(art, "•") {
		t.Errorf("unexpected ascii portrait:\n%s", art)
	}
	if GeneratePhasePortrait([]float64{1}) != nil {
		t.Error("expected nil portrait for single sample")
	}
}

func TestRadialProfile(t *testing.T) {
	f := sim.Frame{Width: 5, Height: 5, Pixels: make([]pond.Pixel, 25)}
	f.Pixels[2+2*5].B = 1
	for _, i := range []int{1 + 2*5, 3 + 2*5, 2 + 1*5, 2 + 3*5} {
		f.Pixels[i].B = 0.5
	}

	prof := RadialProfile(f, pond.Coordinate{X: 2, Y: 2}, 10)
	if prof[0] != 1 {
		t.Errorf("expected centre 1, got %f", prof[0])
	}
	// ring 1 holds the four neighbours and the four diagonals
	if math.Abs(prof[1]-0.25) > 1e-6 {
		t.Errorf("expected ring 1 average 0.25, got %f", prof[1])
	}
	if !math.IsNaN(prof[9]) {
		t.Errorf("expected empty ring to be NaN, got %f", prof[9])
	}
}
