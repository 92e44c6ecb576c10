package sim

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfig = errors.New("sim: invalid config")
	ErrNilProgram    = errors.New("sim: nil program")
)

// RunError reports the tick at which a run stopped.
type RunError struct {
	Tick int
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("sim: tick %d: %v", e.Tick, e.Err)
}

func (e *RunError) Unwrap() error { return e.Err }
