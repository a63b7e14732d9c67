package engine

import (
	"errors"
	"fmt"
)

// Rejection errors returned by Engine operations. A rejected call never
// mutates the grid.
var (
	// ErrInvalidPosition is returned when a position lies outside the grid.
	ErrInvalidPosition = errors.New("engine: position out of bounds")

	// ErrNonAdjacentSwap is returned when the two swap positions are not
	// orthogonal neighbours.
	ErrNonAdjacentSwap = errors.New("engine: positions are not adjacent")

	// ErrEngineBusy is returned while a cascade is being resolved.
	ErrEngineBusy = errors.New("engine: busy")

	// ErrGameEnded is returned once the game is over. It wraps ErrEngineBusy.
	ErrGameEnded = fmt.Errorf("%w: game has ended", ErrEngineBusy)

	// ErrInvalidConfig is returned for unusable sizes or kind sets.
	ErrInvalidConfig = errors.New("engine: invalid config")
)

func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...)
}
