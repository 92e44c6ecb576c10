package pond

import (
	"fmt"
	"math"
	"strings"
)

// Mode selects how a touch affects the pond.
type Mode int

const (
	// InstantSet writes the touched value into the epicenter on press and
	// restores the default value on release.
	InstantSet Mode = iota
	// PropagatingRipple spawns a decaying wave at the anchor on every press.
	PropagatingRipple
)

func (m Mode) String() string {
	switch m {
	case InstantSet:
		return "instant"
	case PropagatingRipple:
		return "ripple"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the names produced by Mode.String plus a few aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "instant", "instant_set", "instantset", "set":
		return InstantSet, nil
	case "ripple", "propagating", "propagating_ripple", "propagatingripple", "wave":
		return PropagatingRipple, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// OriginPolicy defines the contribution of a ripple to the cell that sits
// exactly on its origin, where the wave formula divides by zero.
type OriginPolicy int

const (
	// OriginNearest evaluates the formula at distance 1, the nearest
	// lattice distance, giving sin(age)/age.
	OriginNearest OriginPolicy = iota
	// OriginPeak contributes 1.0, the limit of sin(a)/a as a approaches 0.
	OriginPeak
	// OriginTouched contributes the configured touched value.
	OriginTouched
)

func (o OriginPolicy) String() string {
	switch o {
	case OriginNearest:
		return "nearest"
	case OriginPeak:
		return "peak"
	case OriginTouched:
		return "touched"
	default:
		return fmt.Sprintf("OriginPolicy(%d)", int(o))
	}
}

// ParseOriginPolicy parses the names produced by OriginPolicy.String.
func ParseOriginPolicy(s string) (OriginPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return OriginNearest, nil
	case "peak":
		return OriginPeak, nil
	case "touched":
		return OriginTouched, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOriginPolicy, s)
}

// Default configuration values.
const (
	DefaultWidth        = 1024
	DefaultHeight       = 1024
	DefaultAnchorX      = 100
	DefaultAnchorY      = 100
	DefaultFingerWidth  = 10
	DefaultRestingValue = 0.5
	DefaultTouchedValue = 0.0
	DefaultMaxAge       = 500.0
)

// Config is fixed when a Pond is constructed and never mutated afterwards.
type Config struct {
	Width        int
	Height       int
	Anchor       Coordinate
	FingerWidth  int
	DefaultValue float64
	TouchedValue float64
	MaxAge       float64
	Mode         Mode
	Origin       OriginPolicy
}

func DefaultConfig() Config {
	return Config{
		Width:        DefaultWidth,
		Height:       DefaultHeight,
		Anchor:       Coordinate{X: DefaultAnchorX, Y: DefaultAnchorY},
		FingerWidth:  DefaultFingerWidth,
		DefaultValue: DefaultRestingValue,
		TouchedValue: DefaultTouchedValue,
		MaxAge:       DefaultMaxAge,
		Mode:         PropagatingRipple,
		Origin:       OriginNearest,
	}
}

// Validate reports the first field outside its valid range. The anchor may
// lie partly or wholly outside the grid; the epicenter is clipped instead.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return &ConfigError{Field: "width", Reason: fmt.Sprintf("must be positive, got %d", c.Width)}
	}
	if c.Height <= 0 {
		return &ConfigError{Field: "height", Reason: fmt.Sprintf("must be positive, got %d", c.Height)}
	}
	if c.Anchor.X < 0 || c.Anchor.Y < 0 {
		return &ConfigError{Field: "anchor", Reason: fmt.Sprintf("must be non-negative, got %v", c.Anchor)}
	}
	if c.FingerWidth <= 0 {
		return &ConfigError{Field: "finger_width", Reason: fmt.Sprintf("must be positive, got %d", c.FingerWidth)}
	}
	if !unitInterval(c.DefaultValue) {
		return &ConfigError{Field: "default_value", Reason: fmt.Sprintf("must be in [0,1], got %g", c.DefaultValue)}
	}
	if !unitInterval(c.TouchedValue) {
		return &ConfigError{Field: "touched_value", Reason: fmt.Sprintf("must be in [0,1], got %g", c.TouchedValue)}
	}
	if !(c.MaxAge > 0) || math.IsInf(c.MaxAge, 0) {
		return &ConfigError{Field: "max_age", Reason: fmt.Sprintf("must be positive and finite, got %g", c.MaxAge)}
	}
	if c.Mode != InstantSet && c.Mode != PropagatingRipple {
		return &ConfigError{Field: "mode", Reason: c.Mode.String()}
	}
	if c.Origin < OriginNearest || c.Origin > OriginTouched {
		return &ConfigError{Field: "origin_policy", Reason: c.Origin.String()}
	}
	return nil
}

func unitInterval(v float64) bool {
	return v >= 0 && v <= 1
}
