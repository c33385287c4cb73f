package cavegen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cavegen/grid"
	"github.com/hupe1980/cavegen/mesh"
	"github.com/hupe1980/cavegen/rule"
	"github.com/hupe1980/cavegen/testutil"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		fn   func() error
	}{
		{"ZeroWidth2D", func() error {
			_, err := New2(0, 8)
			return err
		}},
		{"ZeroDepth3D", func() error {
			_, err := New3(8, 8, 0)
			return err
		}},
		{"BadDensity", func() error {
			_, err := New3(8, 8, 8, WithDensity(1.5))
			return err
		}},
		{"BadSurfacePoint", func() error {
			_, err := New2(8, 8, WithSurfacePoint(1))
			return err
		}},
		{"NegativeIterations", func() error {
			_, err := New3(8, 8, 8, WithIterations(-1))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.fn(), ErrInvalidConfig)
		})
	}

	// The detailed cause stays reachable behind the sentinel.
	_, err := New3(8, 8, 0)
	var id *grid.ErrInvalidDimensions
	require.ErrorAs(t, err, &id)
}

func TestGenerator2Generate(t *testing.T) {
	ctx := context.Background()

	gen, err := New2(32, 32, WithDensity(0.6), WithIterations(2))
	require.NoError(t, err)

	m, err := gen.Generate(ctx, testutil.NewRNG(42))
	require.NoError(t, err)
	require.False(t, m.IsEmpty())

	for _, s := range m.Segments() {
		assert.Less(t, int(s[0]), m.NumVertices())
		assert.Less(t, int(s[1]), m.NumVertices())
	}

	// Same seed, same mesh.
	again, err := New2(32, 32, WithDensity(0.6), WithIterations(2))
	require.NoError(t, err)
	m2, err := again.Generate(ctx, testutil.NewRNG(42))
	require.NoError(t, err)
	assert.Equal(t, m.Positions(), m2.Positions())
	assert.Equal(t, m.Segments(), m2.Segments())
}

func TestGenerator3Generate(t *testing.T) {
	ctx := context.Background()

	gen, err := New3(24, 24, 24, WithDensity(0.6), WithIterations(3))
	require.NoError(t, err)

	m, err := gen.Generate(ctx, testutil.NewRNG(42))
	require.NoError(t, err)
	require.False(t, m.IsEmpty())
	require.Len(t, m.Normals(), m.NumVertices())

	for _, tri := range m.Triangles() {
		for _, idx := range tri {
			assert.Less(t, int(idx), m.NumVertices())
		}
	}

	again, err := New3(24, 24, 24, WithDensity(0.6), WithIterations(3))
	require.NoError(t, err)
	m2, err := again.Generate(ctx, testutil.NewRNG(42))
	require.NoError(t, err)
	assert.Equal(t, m.Positions(), m2.Positions())
	assert.Equal(t, m.Triangles(), m2.Triangles())
}

func TestGeneratorFillNilSource(t *testing.T) {
	gen, err := New3(8, 8, 8)
	require.NoError(t, err)

	err = gen.Fill(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
	require.ErrorIs(t, err, grid.ErrNilRandomSource)
}

func TestGeneratorSmoothHonorsContext(t *testing.T) {
	gen, err := New3(8, 8, 8)
	require.NoError(t, err)
	require.NoError(t, gen.Fill(context.Background(), testutil.NewRNG(1)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	before := gen.Grid().Clone()
	require.ErrorIs(t, gen.Smooth(ctx, 3), context.Canceled)
	assert.True(t, gen.Grid().Equal(before), "canceled smooth must not step the grid")
}

// The grid is live between pipeline steps: cells painted after the fill show
// up in the extraction.
func TestGeneratorGridEditing(t *testing.T) {
	ctx := context.Background()

	gen, err := New3(3, 3, 3)
	require.NoError(t, err)
	require.NoError(t, gen.Grid().Set(grid.Point3{X: 1, Y: 1, Z: 1}, true))

	m, err := gen.Extract(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, m.NumVertices())
	assert.Equal(t, 8, m.NumTriangles())
}

func TestGeneratorCustomRule(t *testing.T) {
	ctx := context.Background()

	// A rule with empty birth and survive sets kills every cell, so one
	// iteration leaves nothing to mesh.
	gen, err := New2(16, 16, WithDensity(0.9), WithIterations(1), WithRule2(rule.Rule2{}))
	require.NoError(t, err)

	m, err := gen.Generate(ctx, testutil.NewRNG(3))
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
	assert.Equal(t, 0, gen.Grid().Population())
}

func TestGeneratorMetrics(t *testing.T) {
	ctx := context.Background()
	metrics := &BasicMetricsCollector{}

	gen, err := New3(8, 8, 8,
		WithDensity(0.7),
		WithIterations(2),
		WithMetricsCollector(metrics),
	)
	require.NoError(t, err)

	m, err := gen.Generate(ctx, testutil.NewRNG(5))
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.EqualValues(t, 1, stats.FillCount)
	assert.EqualValues(t, 0, stats.FillErrors)
	assert.EqualValues(t, 1, stats.SmoothCount)
	assert.EqualValues(t, 2, stats.SmoothIterations)
	assert.EqualValues(t, 1, stats.ExtractCount)
	assert.EqualValues(t, m.NumTriangles(), stats.ExtractFaces)
}

func TestGeneratorBoundaryOption(t *testing.T) {
	gen, err := New2(4, 4, WithBoundary(grid.BoundaryAlive))
	require.NoError(t, err)
	assert.Equal(t, grid.BoundaryAlive, gen.Grid().Boundary())
}

func TestGeneratorSurfacePointOption(t *testing.T) {
	ctx := context.Background()

	gen, err := New2(3, 3, WithSurfacePoint(0.25))
	require.NoError(t, err)
	require.NoError(t, gen.Grid().Set(grid.Point2{X: 1, Y: 1}, true))

	m, err := gen.Extract(ctx)
	require.NoError(t, err)
	assert.Contains(t, m.Positions(), mesh.Vector2{X: 1.25, Y: 1})
}
