package metrics

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/pondsim/internal/sim"
)

// Energy is the mean squared deviation of the field from its resting value,
// averaged over all observed frames.
type Energy struct {
	name    string
	rest    float64
	scratch []float64
	perTick []float64
}

func NewEnergy(rest float64) *Energy {
	return &Energy{
		name: "energy",
		rest: rest,
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(f sim.Frame) {
	if len(f.Pixels) == 0 {
		return
	}
	e.scratch = levels(f, e.scratch)
	floats.AddConst(-e.rest, e.scratch)
	e.perTick = append(e.perTick, floats.Dot(e.scratch, e.scratch)/float64(len(e.scratch)))
}

func (e *Energy) Value() float64 {
	if len(e.perTick) == 0 {
		return 0
	}
	return stat.Mean(e.perTick, nil)
}

func (e *Energy) Reset() {
	e.perTick = e.perTick[:0]
}

// EnergyDrift is the largest absolute change in energy between consecutive
// frames.
type EnergyDrift struct {
	energy   *Energy
	maxDrift float64
}

func NewEnergyDrift(rest float64) *EnergyDrift {
	return &EnergyDrift{energy: NewEnergy(rest)}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(f sim.Frame) {
	e.energy.Observe(f)
	s := e.energy.perTick
	if n := len(s); n > 1 {
		d := s[n-1] - s[n-2]
		if d < 0 {
			d = -d
		}
		if d > e.maxDrift {
			e.maxDrift = d
		}
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.energy.Reset()
	e.maxDrift = 0
}

// levels copies the blue channel of f into dst, growing it as needed.
func levels(f sim.Frame, dst []float64) []float64 {
	if cap(dst) < len(f.Pixels) {
		dst = make([]float64, len(f.Pixels))
	}
	dst = dst[:len(f.Pixels)]
	for i, p := range f.Pixels {
		dst[i] = float64(p.B)
	}
	return dst
}
