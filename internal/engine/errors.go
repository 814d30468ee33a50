package engine

import "errors"

// Domain errors for phase operations.
var (
	// ErrInvalidConfig indicates a phase config that failed validation; no
	// phase state is created and no ticks fire.
	ErrInvalidConfig = errors.New("engine: invalid phase config")
)
