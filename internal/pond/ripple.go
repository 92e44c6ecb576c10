package pond

import "math"

// Ripple is a decaying radial wave centred on Origin. Age counts ticks since
// the touch that created it.
type Ripple struct {
	Origin Coordinate
	Radius int
	Age    float64
}

// NewRipple returns a ripple of age zero.
func NewRipple(origin Coordinate, radius int) Ripple {
	return Ripple{Origin: origin, Radius: radius}
}

// Tick returns the successor one time unit older, or false once the ripple
// has reached maxAge.
func (r Ripple) Tick(maxAge float64) (Ripple, bool) {
	if r.Age >= maxAge {
		return Ripple{}, false
	}
	r.Age++
	return r, true
}

// Height is sin(age) / (age * distance). A ripple of age zero contributes
// nothing. At distance zero the formula is undefined and ok is false; the
// caller applies an OriginPolicy.
func (r Ripple) Height(distance float64) (h float64, ok bool) {
	if r.Age == 0 {
		return 0, true
	}
	if distance <= 0 {
		return 0, false
	}
	return r.amplitude() / distance, true
}

// amplitude is the distance-independent factor sin(age)/age.
func (r Ripple) amplitude() float64 {
	if r.Age == 0 {
		return 0
	}
	return math.Sin(r.Age) / r.Age
}

// originHeight resolves the contribution at distance zero.
func (r Ripple) originHeight(policy OriginPolicy, touched float64) float64 {
	if r.Age == 0 {
		return 0
	}
	switch policy {
	case OriginPeak:
		return 1
	case OriginTouched:
		return touched
	default:
		return r.amplitude()
	}
}

// RippleSet is the ordered collection of active ripples. Order never affects
// compositing since contributions are summed.
type RippleSet struct {
	ripples []Ripple
}

func (s *RippleSet) Add(r Ripple) {
	s.ripples = append(s.ripples, r)
}

func (s *RippleSet) Len() int { return len(s.ripples) }

// All returns a copy of the active ripples in insertion order.
func (s *RippleSet) All() []Ripple {
	out := make([]Ripple, len(s.ripples))
	copy(out, s.ripples)
	return out
}

// Advance ticks every ripple and removes those that expired or whose age
// reached maxAge, keeping the survivors in insertion order.
// It returns the number of ripples removed.
func (s *RippleSet) Advance(maxAge float64) int {
	kept := s.ripples[:0]
	for _, r := range s.ripples {
		next, ok := r.Tick(maxAge)
		if !ok || next.Age >= maxAge {
			continue
		}
		kept = append(kept, next)
	}
	removed := len(s.ripples) - len(kept)
	for i := len(kept); i < len(s.ripples); i++ {
		s.ripples[i] = Ripple{}
	}
	s.ripples = kept
	return removed
}

// Reset drops every ripple.
func (s *RippleSet) Reset() {
	s.ripples = s.ripples[:0]
}
