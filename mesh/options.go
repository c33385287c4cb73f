package mesh

import "runtime"

type options struct {
	surfacePoint float32
	workers      int
}

// Option configures surface extraction.
type Option func(*options)

// WithSurfacePoint sets where on a crossing lattice edge the surface vertex
// is placed, measured from the alive endpoint toward the dead endpoint.
// Must lie strictly between 0 and 1; the default 0.5 places vertices at edge
// midpoints. Values below 0.5 pull the surface toward the alive cells,
// values above push it out.
func WithSurfacePoint(t float32) Option {
	return func(o *options) {
		o.surfacePoint = t
	}
}

// WithWorkers caps the number of goroutines used by FromGrid3. Values below
// 1 select runtime.GOMAXPROCS(0).
//
// The worker count never changes the result: workers march disjoint z-slabs
// of the frozen grid and their local buffers are merged in slab order, so
// vertex and triangle ordering match a single-threaded run exactly.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

func applyOptions(optFns []Option) (options, error) {
	o := options{
		surfacePoint: 0.5,
		workers:      runtime.GOMAXPROCS(0),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.workers < 1 {
		o.workers = runtime.GOMAXPROCS(0)
	}
	if o.surfacePoint <= 0 || o.surfacePoint >= 1 {
		return o, &ErrInvalidSurfacePoint{T: o.surfacePoint}
	}
	return o, nil
}

// Grids below this cell count always extract single-threaded.
const parallelThreshold = 1 << 15
