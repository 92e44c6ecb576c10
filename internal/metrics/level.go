package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/pondsim/internal/pond"
	"github.com/san-kum/pondsim/internal/sim"
)

// MeanLevel averages the per-frame mean level.
type MeanLevel struct {
	means []float64
}

func NewMeanLevel() *MeanLevel { return &MeanLevel{} }

func (m *MeanLevel) Name() string { return "mean_level" }

func (m *MeanLevel) Observe(f sim.Frame) { m.means = append(m.means, f.Mean()) }

func (m *MeanLevel) Value() float64 {
	if len(m.means) == 0 {
		return 0
	}
	return stat.Mean(m.means, nil)
}

func (m *MeanLevel) Reset() { m.means = m.means[:0] }

// PeakLevel is the highest level seen in any frame.
type PeakLevel struct {
	peaks []float64
}

func NewPeakLevel() *PeakLevel { return &PeakLevel{} }

func (m *PeakLevel) Name() string { return "peak_level" }

func (m *PeakLevel) Observe(f sim.Frame) { m.peaks = append(m.peaks, f.Peak()) }

func (m *PeakLevel) Value() float64 {
	if len(m.peaks) == 0 {
		return 0
	}
	return floats.Max(m.peaks)
}

func (m *PeakLevel) Reset() { m.peaks = m.peaks[:0] }

// LitFraction is the average fraction of cells above the resting value.
type LitFraction struct {
	rest      float64
	fractions []float64
}

func NewLitFraction(rest float64) *LitFraction { return &LitFraction{rest: rest} }

func (m *LitFraction) Name() string { return "lit_fraction" }

func (m *LitFraction) Observe(f sim.Frame) {
	if len(f.Pixels) == 0 {
		return
	}
	lit := 0
	// rest is compared in float32 so cells sitting exactly at rest are not lit
	rest := float32(m.rest)
	for _, p := range f.Pixels {
		if p.B > rest {
			lit++
		}
	}
	m.fractions = append(m.fractions, float64(lit)/float64(len(f.Pixels)))
}

func (m *LitFraction) Value() float64 {
	if len(m.fractions) == 0 {
		return 0
	}
	return stat.Mean(m.fractions, nil)
}

func (m *LitFraction) Reset() { m.fractions = m.fractions[:0] }

// ActiveRipples is the largest number of concurrent ripples seen.
type ActiveRipples struct {
	max int
}

func NewActiveRipples() *ActiveRipples { return &ActiveRipples{} }

func (m *ActiveRipples) Name() string { return "active_ripples" }

func (m *ActiveRipples) Observe(f sim.Frame) {
	if f.Ripples > m.max {
		m.max = f.Ripples
	}
}

func (m *ActiveRipples) Value() float64 { return float64(m.max) }

func (m *ActiveRipples) Reset() { m.max = 0 }

// Probe records the level at a single cell every frame. Value is the
// standard deviation of that signal.
type Probe struct {
	at     pond.Coordinate
	series []float64
}

func NewProbe(at pond.Coordinate) *Probe { return &Probe{at: at} }

func (m *Probe) Name() string { return "probe" }

func (m *Probe) Observe(f sim.Frame) { m.series = append(m.series, f.Level(m.at)) }

func (m *Probe) Value() float64 {
	if len(m.series) < 2 {
		return 0
	}
	return stat.StdDev(m.series, nil)
}

func (m *Probe) Series() []float64 { return m.series }

func (m *Probe) Reset() { m.series = m.series[:0] }

// Default returns the standard metric set for a pond resting at rest.
func Default(rest float64, probe pond.Coordinate) []sim.Metric {
	return []sim.Metric{
		NewMeanLevel(),
		NewPeakLevel(),
		NewLitFraction(rest),
		NewActiveRipples(),
		NewProbe(probe),
		NewEnergy(rest),
		NewEnergyDrift(rest),
		NewStability(rest, 0.01),
		NewTouchRate(),
	}
}
