package cavegen

import (
	"log/slog"

	"github.com/hupe1980/cavegen/grid"
	"github.com/hupe1980/cavegen/rule"
)

type options struct {
	rule2            rule.Rule2
	rule3            rule.Rule3
	density          float64
	iterations       int
	boundary         grid.Boundary
	workers          int
	surfacePoint     float32
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a generator.
type Option func(*options)

// WithRule2 sets the birth/survive rule used by 2D generators.
// Default is rule.Smooth2.
func WithRule2(r rule.Rule2) Option {
	return func(o *options) {
		o.rule2 = r
	}
}

// WithRule3 sets the birth/survive rule used by 3D generators.
// Default is rule.Smooth3.
func WithRule3(r rule.Rule3) Option {
	return func(o *options) {
		o.rule3 = r
	}
}

// WithDensity sets the fraction of cells seeded alive by the initial random
// fill, in [0, 1]. Default is 0.5.
//
// Density steers the output shape: low densities produce scattered blobs,
// values around 0.5 produce connected caves, high densities produce a solid
// with pockets.
func WithDensity(density float64) Option {
	return func(o *options) {
		o.density = density
	}
}

// WithIterations sets how many smoothing generations Generate runs after the
// fill. Default is 4; more iterations give smoother, rounder shapes with
// diminishing returns after roughly 6.
func WithIterations(n int) Option {
	return func(o *options) {
		o.iterations = n
	}
}

// WithBoundary sets the out-of-grid cell policy for smoothing and
// extraction. Default is grid.BoundaryDead, which erodes the grid border and
// closes extracted surfaces there.
func WithBoundary(b grid.Boundary) Option {
	return func(o *options) {
		o.boundary = b
	}
}

// WithWorkers caps the number of goroutines used by smoothing and
// extraction. Values below 1 select runtime.GOMAXPROCS(0). Results never
// depend on the worker count.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithSurfacePoint sets where on a crossing lattice edge extracted surface
// vertices are placed, strictly between 0 and 1. Default is 0.5 (edge
// midpoints); see mesh.WithSurfacePoint.
func WithSurfacePoint(t float32) Option {
	return func(o *options) {
		o.surfacePoint = t
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations.
//
// Example with BasicMetricsCollector:
//
//	metrics := &cavegen.BasicMetricsCollector{}
//	gen, _ := cavegen.New3(64, 64, 64, cavegen.WithMetricsCollector(metrics))
//	// ... use gen ...
//	stats := metrics.GetStats()
//	fmt.Printf("Extractions: %d, Avg latency: %dns\n", stats.ExtractCount, stats.ExtractAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := cavegen.NewJSONLogger(slog.LevelInfo)
//	gen, _ := cavegen.New3(64, 64, 64, cavegen.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) (options, error) {
	o := options{
		rule2:            rule.Smooth2,
		rule3:            rule.Smooth3,
		density:          0.5,
		iterations:       4,
		boundary:         grid.BoundaryDead,
		surfacePoint:     0.5,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.iterations < 0 {
		return o, translateError(&ErrInvalidIterations{Iterations: o.iterations})
	}
	return o, nil
}
