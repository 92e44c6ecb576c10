package pond

import (
	"errors"
	"fmt"
)

// Domain errors for pond operations.
var (
	// ErrOutOfBounds indicates a coordinate or index outside the grid.
	ErrOutOfBounds = errors.New("pond: out of bounds")

	// ErrInvalidConfig indicates a configuration value outside its valid range.
	ErrInvalidConfig = errors.New("pond: invalid configuration")

	// ErrUnknownMode indicates a simulation mode name that cannot be parsed.
	ErrUnknownMode = errors.New("pond: unknown simulation mode")

	// ErrUnknownOriginPolicy indicates an origin policy name that cannot be parsed.
	ErrUnknownOriginPolicy = errors.New("pond: unknown origin policy")
)

// ConfigError reports the configuration field that failed validation.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("pond: invalid %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidConfig
}

// BufferSizeError is the panic value raised by Render when the destination
// buffer does not hold exactly width*height pixels.
type BufferSizeError struct {
	Want int
	Got  int
}

func (e *BufferSizeError) Error() string {
	return fmt.Sprintf("pond: render buffer has %d pixels, want %d", e.Got, e.Want)
}
