package grid

import (
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cavegen/rule"
	"github.com/hupe1980/cavegen/testutil"
)

func TestNew2(t *testing.T) {
	tests := []struct {
		name    string
		width   int
		height  int
		wantErr bool
	}{
		{"Valid", 8, 4, false},
		{"Single", 1, 1, false},
		{"ZeroWidth", 0, 4, true},
		{"ZeroHeight", 8, 0, true},
		{"Negative", -1, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New2(tt.width, tt.height)
			if tt.wantErr {
				var id *ErrInvalidDimensions
				require.ErrorAs(t, err, &id)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.width, g.Width())
			assert.Equal(t, tt.height, g.Height())
			assert.Equal(t, tt.width*tt.height, g.Len())
			assert.Equal(t, 0, g.Population())
		})
	}
}

func TestGrid2FillRandom(t *testing.T) {
	g, err := New2(16, 16)
	require.NoError(t, err)

	// Density 0 leaves every cell dead, density 1 makes every cell alive.
	require.NoError(t, g.FillRandom(0, testutil.NewRNG(1)))
	assert.Equal(t, 0, g.Population())

	require.NoError(t, g.FillRandom(1, testutil.NewRNG(1)))
	assert.Equal(t, g.Len(), g.Population())

	// Same seed, same fill.
	a, err := New2(16, 16)
	require.NoError(t, err)
	b, err := New2(16, 16)
	require.NoError(t, err)
	require.NoError(t, a.FillRandom(0.45, testutil.NewRNG(42)))
	require.NoError(t, b.FillRandom(0.45, testutil.NewRNG(42)))
	assert.True(t, a.Equal(b))

	var id *ErrInvalidDensity
	require.ErrorAs(t, g.FillRandom(-0.1, testutil.NewRNG(1)), &id)
	require.ErrorAs(t, g.FillRandom(1.5, testutil.NewRNG(1)), &id)
	require.ErrorIs(t, g.FillRandom(0.5, nil), ErrNilRandomSource)
}

func TestGrid2GetSet(t *testing.T) {
	g, err := New2(4, 3)
	require.NoError(t, err)

	require.NoError(t, g.Set(Point2{X: 2, Y: 1}, true))
	alive, err := g.Get(Point2{X: 2, Y: 1})
	require.NoError(t, err)
	assert.True(t, alive)

	var oob *ErrOutOfBounds
	_, err = g.Get(Point2{X: 4, Y: 0})
	require.ErrorAs(t, err, &oob)
	_, err = g.Get(Point2{X: 0, Y: -1})
	require.ErrorAs(t, err, &oob)
	require.ErrorAs(t, g.Set(Point2{X: -1, Y: 0}, true), &oob)
}

func TestGrid2CountAliveNeighbors(t *testing.T) {
	g, err := New2(3, 3)
	require.NoError(t, err)
	require.NoError(t, g.Set(Point2{X: 1, Y: 1}, true))

	// Every cell around the alive center sees exactly one neighbor; the
	// center itself sees none (self excluded), and no count exceeds 8.
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			n, err := g.CountAliveNeighbors(Point2{X: x, Y: y})
			require.NoError(t, err)
			if x == 1 && y == 1 {
				assert.Equal(t, 0, n)
			} else {
				assert.Equal(t, 1, n)
			}
		}
	}

	_, err = g.CountAliveNeighbors(Point2{X: 3, Y: 0})
	var oob *ErrOutOfBounds
	require.ErrorAs(t, err, &oob)
}

func TestGrid2BoundaryPolicy(t *testing.T) {
	dead, err := New2(3, 3)
	require.NoError(t, err)
	alive, err := New2(3, 3, WithBoundary(BoundaryAlive))
	require.NoError(t, err)
	require.NoError(t, dead.Set(Point2{X: 1, Y: 1}, true))
	require.NoError(t, alive.Set(Point2{X: 1, Y: 1}, true))

	// Corner cell: 3 in-bounds neighbors (one alive) plus 5 out-of-bounds
	// ones that only count under BoundaryAlive.
	n, err := dead.CountAliveNeighbors(Point2{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = alive.CountAliveNeighbors(Point2{X: 0, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	// Edge cell: 5 in-bounds neighbors, 3 outside.
	n, err = alive.CountAliveNeighbors(Point2{X: 1, Y: 0})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	assert.False(t, dead.Sample(Point2{X: -1, Y: 0}))
	assert.True(t, alive.Sample(Point2{X: -1, Y: 0}))
}

func TestGrid2SmoothPurity(t *testing.T) {
	g, err := New2(64, 64)
	require.NoError(t, err)
	require.NoError(t, g.FillRandom(0.45, testutil.NewRNG(99)))

	cp := g.Clone()
	g.Smooth(rule.Smooth2)
	cp.Smooth(rule.Smooth2)

	assert.True(t, g.Equal(cp))
}

func TestGrid2SmoothWorkerIndependence(t *testing.T) {
	serial, err := New2(256, 256, WithWorkers(1))
	require.NoError(t, err)
	parallel, err := New2(256, 256, WithWorkers(8))
	require.NoError(t, err)
	require.NoError(t, serial.FillRandom(0.45, testutil.NewRNG(7)))
	require.NoError(t, parallel.FillRandom(0.45, testutil.NewRNG(7)))

	for i := 0; i < 3; i++ {
		serial.Smooth(rule.Smooth2)
		parallel.Smooth(rule.Smooth2)
	}

	assert.True(t, serial.Equal(parallel))
}

func TestGrid2SmoothEmptyRule(t *testing.T) {
	g, err := New2(32, 32)
	require.NoError(t, err)
	require.NoError(t, g.FillRandom(0.8, testutil.NewRNG(3)))

	// A rule with empty birth and survive sets kills every cell in one step.
	g.Smooth(rule.Rule2{})

	assert.Equal(t, 0, g.Population())
}

func TestGrid2SmoothFixedPoints(t *testing.T) {
	// All dead stays dead under the dead-outside convention.
	g, err := New2(8, 8)
	require.NoError(t, err)
	g.Smooth(rule.Smooth2)
	assert.Equal(t, 0, g.Population())

	// All alive is a fixed point when the boundary is alive too.
	solid, err := New2(8, 8, WithBoundary(BoundaryAlive))
	require.NoError(t, err)
	solid.Fill(true)
	solid.Smooth(rule.Smooth2)
	assert.Equal(t, solid.Len(), solid.Population())
}

func TestGrid2SmoothErodesCorners(t *testing.T) {
	// Under the dead-outside convention an all-alive grid loses exactly its
	// corners in one smoothing step: a corner has 3 alive neighbors, an edge
	// cell 5, the interior 8.
	g, err := New2(4, 4)
	require.NoError(t, err)
	g.Fill(true)

	g.Smooth(rule.Smooth2)

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			alive, err := g.Get(Point2{X: x, Y: y})
			require.NoError(t, err)
			corner := (x == 0 || x == 3) && (y == 0 || y == 3)
			assert.Equal(t, !corner, alive, "cell (%d,%d)", x, y)
		}
	}
}

func TestGrid2NeighborCountsMatchesSingle(t *testing.T) {
	g, err := New2(17, 13)
	require.NoError(t, err)
	require.NoError(t, g.FillRandom(0.5, testutil.NewRNG(11)))

	counts := g.NeighborCounts()
	require.Len(t, counts, g.Len())

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			n, err := g.CountAliveNeighbors(Point2{X: x, Y: y})
			require.NoError(t, err)
			assert.Equal(t, uint8(n), counts[y*g.Width()+x], "cell (%d,%d)", x, y)
		}
	}
}

func TestGrid2AliveSetRoundTrip(t *testing.T) {
	g, err := New2(10, 10)
	require.NoError(t, err)
	require.NoError(t, g.FillRandom(0.3, testutil.NewRNG(5)))

	seed := g.AliveSet()
	assert.Equal(t, uint64(g.Population()), seed.GetCardinality())

	restored, err := New2(10, 10)
	require.NoError(t, err)
	require.NoError(t, restored.SetAliveSet(seed))
	assert.True(t, g.Equal(restored))

	// Out-of-range seed indices leave the grid untouched.
	before := restored.Clone()
	bad := roaring.New()
	bad.Add(uint32(restored.Len()))
	var oob *ErrOutOfBounds
	require.ErrorAs(t, restored.SetAliveSet(bad), &oob)
	assert.True(t, restored.Equal(before))
}
