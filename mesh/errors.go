package mesh

import (
	"errors"
	"fmt"
)

// ErrNilGrid is returned when extraction is invoked without a grid.
var ErrNilGrid = errors.New("grid must not be nil")

// ErrInvalidSurfacePoint is a named error type for an interpolation point
// outside the open interval (0, 1).
type ErrInvalidSurfacePoint struct {
	T float32
}

// Error returns the error message for an invalid surface point.
func (e *ErrInvalidSurfacePoint) Error() string {
	return fmt.Sprintf("invalid surface point %g: must be in (0, 1)", e.T)
}
