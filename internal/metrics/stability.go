package metrics

import (
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/pondsim/internal/sim"
)

// Stability is the fraction of frames in which every cell lies within
// threshold of the resting value.
type Stability struct {
	name       string
	rest       float64
	threshold  float64
	violations int
	samples    int
	lastUnrest int
	scratch    []float64
}

func NewStability(rest, threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		rest:      rest,
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f sim.Frame) {
	s.samples++
	s.scratch = levels(f, s.scratch)
	if len(s.scratch) == 0 {
		return
	}
	hi := floats.Max(s.scratch) - s.rest
	lo := s.rest - floats.Min(s.scratch)
	if hi > s.threshold || lo > s.threshold {
		s.violations++
		s.lastUnrest = f.Tick
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

// SettledAt is the first tick after which no frame left the threshold, or
// zero if the field never moved.
func (s *Stability) SettledAt() int {
	if s.lastUnrest == 0 {
		return 0
	}
	return s.lastUnrest + 1
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
	s.lastUnrest = 0
}
