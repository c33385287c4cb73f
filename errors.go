package cavegen

import (
	"errors"
	"fmt"

	"github.com/hupe1980/cavegen/grid"
	"github.com/hupe1980/cavegen/mesh"
	"github.com/hupe1980/cavegen/rule"
)

// ErrInvalidConfig is the root cause of every configuration error returned
// by the facade. The subpackage error carrying the details can be accessed
// via errors.As.
var ErrInvalidConfig = errors.New("invalid configuration")

// ErrInvalidIterations is a named error type for a negative smoothing
// iteration count.
type ErrInvalidIterations struct {
	Iterations int
}

// Error returns the error message for an invalid iteration count.
func (e *ErrInvalidIterations) Error() string {
	return fmt.Sprintf("invalid iterations %d: must not be negative", e.Iterations)
}

// translateError unifies subpackage validation errors under ErrInvalidConfig
// so callers can match one sentinel regardless of which layer rejected the
// input.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var (
		dims    *grid.ErrInvalidDimensions
		density *grid.ErrInvalidDensity
		point   *mesh.ErrInvalidSurfacePoint
		rng     *rule.ErrInvalidRange
		bits    *rule.ErrInvalidBits
		iters   *ErrInvalidIterations
	)
	switch {
	case errors.As(err, &dims),
		errors.As(err, &density),
		errors.As(err, &point),
		errors.As(err, &rng),
		errors.As(err, &bits),
		errors.As(err, &iters),
		errors.Is(err, grid.ErrNilRandomSource):
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return err
}
