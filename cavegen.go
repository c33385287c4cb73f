package cavegen

import (
	"context"
	"time"

	"github.com/hupe1980/cavegen/grid"
	"github.com/hupe1980/cavegen/mesh"
)

// Generator2 runs the fill, smooth, extract pipeline over a 2D grid.
// It is not safe for concurrent use.
type Generator2 struct {
	grid *grid.Grid2
	opts options
}

// New2 creates a 2D generator with the given grid dimensions.
func New2(width, height int, optFns ...Option) (*Generator2, error) {
	opts, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}
	if err := validatePipeline(opts); err != nil {
		return nil, err
	}

	g, err := grid.New2(width, height,
		grid.WithBoundary(opts.boundary),
		grid.WithWorkers(opts.workers),
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &Generator2{
		grid: g,
		opts: opts,
	}, nil
}

// Grid exposes the generator's grid for inspection, cell editing or
// snapshots between pipeline steps.
func (g *Generator2) Grid() *grid.Grid2 {
	return g.grid
}

// Fill reseeds the grid from src at the configured density, replacing any
// previous state.
func (g *Generator2) Fill(ctx context.Context, src grid.RandomSource) error {
	start := time.Now()
	err := g.grid.FillRandom(g.opts.density, src)
	g.opts.metricsCollector.RecordFill(time.Since(start), err)
	g.opts.logger.LogFill(ctx, g.opts.density, g.grid.Population(), err)

	return translateError(err)
}

// Smooth steps the automaton n generations with the configured rule,
// checking ctx between steps.
func (g *Generator2) Smooth(ctx context.Context, n int) error {
	start := time.Now()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.grid.Smooth(g.opts.rule2)
		g.opts.logger.LogSmooth(ctx, i+1, g.grid.Population())
	}
	g.opts.metricsCollector.RecordSmooth(n, time.Since(start))

	return nil
}

// Extract outlines the current grid state.
func (g *Generator2) Extract(ctx context.Context) (*mesh.LineMesh, error) {
	start := time.Now()
	m, err := mesh.FromGrid2(g.grid, mesh.WithSurfacePoint(g.opts.surfacePoint))

	vertices, faces := 0, 0
	if m != nil {
		vertices, faces = m.NumVertices(), m.NumSegments()
	}
	g.opts.metricsCollector.RecordExtract(faces, time.Since(start), err)
	g.opts.logger.LogExtract(ctx, vertices, faces, err)

	return m, translateError(err)
}

// Generate runs fill, smoothing and extraction in one call.
func (g *Generator2) Generate(ctx context.Context, src grid.RandomSource) (*mesh.LineMesh, error) {
	if err := g.Fill(ctx, src); err != nil {
		return nil, err
	}
	if err := g.Smooth(ctx, g.opts.iterations); err != nil {
		return nil, err
	}
	return g.Extract(ctx)
}

// Generator3 runs the fill, smooth, extract pipeline over a 3D grid.
// It is not safe for concurrent use.
type Generator3 struct {
	grid *grid.Grid3
	opts options
}

// New3 creates a 3D generator with the given grid dimensions.
func New3(width, height, depth int, optFns ...Option) (*Generator3, error) {
	opts, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}
	if err := validatePipeline(opts); err != nil {
		return nil, err
	}

	g, err := grid.New3(width, height, depth,
		grid.WithBoundary(opts.boundary),
		grid.WithWorkers(opts.workers),
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &Generator3{
		grid: g,
		opts: opts,
	}, nil
}

// Grid exposes the generator's grid for inspection, cell editing or
// snapshots between pipeline steps.
func (g *Generator3) Grid() *grid.Grid3 {
	return g.grid
}

// Fill reseeds the grid from src at the configured density, replacing any
// previous state.
func (g *Generator3) Fill(ctx context.Context, src grid.RandomSource) error {
	start := time.Now()
	err := g.grid.FillRandom(g.opts.density, src)
	g.opts.metricsCollector.RecordFill(time.Since(start), err)
	g.opts.logger.LogFill(ctx, g.opts.density, g.grid.Population(), err)

	return translateError(err)
}

// Smooth steps the automaton n generations with the configured rule,
// checking ctx between steps.
func (g *Generator3) Smooth(ctx context.Context, n int) error {
	start := time.Now()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		g.grid.Smooth(g.opts.rule3)
		g.opts.logger.LogSmooth(ctx, i+1, g.grid.Population())
	}
	g.opts.metricsCollector.RecordSmooth(n, time.Since(start))

	return nil
}

// Extract meshes the current grid state.
func (g *Generator3) Extract(ctx context.Context) (*mesh.TriangleMesh, error) {
	start := time.Now()
	m, err := mesh.FromGrid3(g.grid,
		mesh.WithSurfacePoint(g.opts.surfacePoint),
		mesh.WithWorkers(g.opts.workers),
	)

	vertices, faces := 0, 0
	if m != nil {
		vertices, faces = m.NumVertices(), m.NumTriangles()
	}
	g.opts.metricsCollector.RecordExtract(faces, time.Since(start), err)
	g.opts.logger.LogExtract(ctx, vertices, faces, err)

	return m, translateError(err)
}

// Generate runs fill, smoothing and extraction in one call.
func (g *Generator3) Generate(ctx context.Context, src grid.RandomSource) (*mesh.TriangleMesh, error) {
	if err := g.Fill(ctx, src); err != nil {
		return nil, err
	}
	if err := g.Smooth(ctx, g.opts.iterations); err != nil {
		return nil, err
	}
	return g.Extract(ctx)
}

// validatePipeline rejects configuration the downstream steps would reject,
// so a bad generator never constructs.
func validatePipeline(o options) error {
	if o.density < 0 || o.density > 1 {
		return translateError(&grid.ErrInvalidDensity{Density: o.density})
	}
	if o.surfacePoint <= 0 || o.surfacePoint >= 1 {
		return translateError(&mesh.ErrInvalidSurfacePoint{T: o.surfacePoint})
	}
	return nil
}
