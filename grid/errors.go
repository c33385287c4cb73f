package grid

import (
	"errors"
	"fmt"
)

// ErrNilRandomSource is returned when FillRandom is called without a source.
var ErrNilRandomSource = errors.New("random source must not be nil")

// ErrInvalidDimensions is a named error type for non-positive grid axes.
type ErrInvalidDimensions struct {
	Width  int
	Height int
	Depth  int // 1 for 2D grids
}

// Error returns the error message for invalid dimensions.
func (e *ErrInvalidDimensions) Error() string {
	return fmt.Sprintf("invalid grid dimensions %dx%dx%d: every axis must be positive", e.Width, e.Height, e.Depth)
}

// ErrInvalidDensity is a named error type for a fill density outside [0, 1].
type ErrInvalidDensity struct {
	Density float64
}

// Error returns the error message for an invalid density.
func (e *ErrInvalidDensity) Error() string {
	return fmt.Sprintf("invalid fill density %g: must be in [0, 1]", e.Density)
}

// ErrOutOfBounds is a named error type for a coordinate outside the grid.
type ErrOutOfBounds struct {
	X, Y, Z int
	Width   int
	Height  int
	Depth   int // 1 for 2D grids
}

// Error returns the error message for an out-of-bounds coordinate.
func (e *ErrOutOfBounds) Error() string {
	return fmt.Sprintf("coordinate (%d, %d, %d) outside grid %dx%dx%d", e.X, e.Y, e.Z, e.Width, e.Height, e.Depth)
}
