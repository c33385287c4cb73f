package grid

import "runtime"

// Point2 is an integer cell coordinate in a 2D grid.
type Point2 struct {
	X, Y int
}

// Point3 is an integer cell coordinate in a 3D grid.
type Point3 struct {
	X, Y, Z int
}

// Boundary decides the value of cells outside the grid, both for neighbor
// counting and for surface extraction sampling.
type Boundary int

const (
	// BoundaryDead treats out-of-grid cells as dead. This is the default:
	// edge cells never pick up phantom alive neighbors and extracted
	// surfaces close at the grid borders.
	BoundaryDead Boundary = iota
	// BoundaryAlive treats out-of-grid cells as alive, embedding the grid
	// in an infinite solid.
	BoundaryAlive
)

// String returns a string representation of the boundary policy.
func (b Boundary) String() string {
	switch b {
	case BoundaryDead:
		return "Dead"
	case BoundaryAlive:
		return "Alive"
	default:
		return "Unknown"
	}
}

// RandomSource supplies independent uniform draws in [0, 1).
// *math/rand.Rand satisfies this interface.
type RandomSource interface {
	Float64() float64
}

type options struct {
	boundary Boundary
	workers  int
}

// Option configures grid construction.
type Option func(*options)

// WithBoundary sets the out-of-grid cell policy. Default is BoundaryDead.
func WithBoundary(b Boundary) Option {
	return func(o *options) {
		o.boundary = b
	}
}

// WithWorkers caps the number of goroutines used by the bulk neighbor-count
// pass during Smooth. Values below 1 select runtime.GOMAXPROCS(0).
//
// The worker count never changes results: every worker reads the frozen
// pre-step buffer and writes a disjoint slice of the next buffer, and the
// buffers are swapped only after all workers have joined.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		boundary: BoundaryDead,
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	return o
}

// Grids below this cell count always run single-threaded; goroutine
// scheduling costs more than the pass itself.
const parallelThreshold = 1 << 15

// maxCells caps the total cell count so that cell indices fit in uint32
// (AliveSet) and the dense buffer stays allocatable.
const maxCells = int64(1) << 31

func boundaryValue(b Boundary) bool { return b == BoundaryAlive }
