package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cavegen/grid"
	"github.com/hupe1980/cavegen/testutil"
)

func TestFromGrid2Validation(t *testing.T) {
	_, err := FromGrid2(nil)
	require.ErrorIs(t, err, ErrNilGrid)

	g, err := grid.New2(2, 2)
	require.NoError(t, err)

	var isp *ErrInvalidSurfacePoint
	_, err = FromGrid2(g, WithSurfacePoint(1.5))
	require.ErrorAs(t, err, &isp)
}

func TestFromGrid2UniformGridsAreEmpty(t *testing.T) {
	dead, err := grid.New2(4, 4)
	require.NoError(t, err)
	m, err := FromGrid2(dead)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
	assert.Zero(t, m.NumVertices())

	solid, err := grid.New2(4, 4, grid.WithBoundary(grid.BoundaryAlive))
	require.NoError(t, err)
	solid.Fill(true)
	m, err = FromGrid2(solid)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
}

// A single alive cell outlines into a diamond: one vertex toward each
// neighbor, four segments walking counter-clockwise so the cell stays on
// the left.
func TestFromGrid2SingleCell(t *testing.T) {
	g, err := grid.New2(3, 3)
	require.NoError(t, err)
	require.NoError(t, g.Set(grid.Point2{X: 1, Y: 1}, true))

	m, err := FromGrid2(g)
	require.NoError(t, err)

	assert.Equal(t, 4, m.NumVertices())
	assert.Equal(t, 4, m.NumSegments())

	assert.ElementsMatch(t, []Vector2{
		{X: 0.5, Y: 1}, {X: 1.5, Y: 1},
		{X: 1, Y: 0.5}, {X: 1, Y: 1.5},
	}, m.Positions())

	// Counter-clockwise loop: positive signed area.
	assert.Positive(t, signedArea(m))
}

func TestFromGrid2SurfacePoint(t *testing.T) {
	g, err := grid.New2(3, 3)
	require.NoError(t, err)
	require.NoError(t, g.Set(grid.Point2{X: 1, Y: 1}, true))

	m, err := FromGrid2(g, WithSurfacePoint(0.25))
	require.NoError(t, err)

	assert.ElementsMatch(t, []Vector2{
		{X: 0.75, Y: 1}, {X: 1.25, Y: 1},
		{X: 1, Y: 0.75}, {X: 1, Y: 1.25},
	}, m.Positions())
}

// Outlines are closed loops: every vertex starts exactly one segment and
// ends exactly one, and the alive region stays on the left so the loops
// enclose positive net area.
func TestFromGrid2ClosedLoops(t *testing.T) {
	g, err := grid.New2(24, 16)
	require.NoError(t, err)
	require.NoError(t, g.FillRandom(0.5, testutil.NewRNG(33)))

	m, err := FromGrid2(g)
	require.NoError(t, err)
	require.False(t, m.IsEmpty())

	outDeg := make([]int, m.NumVertices())
	inDeg := make([]int, m.NumVertices())
	for _, s := range m.Segments() {
		require.Less(t, int(s[0]), m.NumVertices())
		require.Less(t, int(s[1]), m.NumVertices())
		outDeg[s[0]]++
		inDeg[s[1]]++
	}
	for i := range outDeg {
		assert.Equal(t, 1, outDeg[i], "vertex %d out-degree", i)
		assert.Equal(t, 1, inDeg[i], "vertex %d in-degree", i)
	}

	assert.Positive(t, signedArea(m))

	// Shared lattice edges are welded.
	seen := make(map[Vector2]bool, m.NumVertices())
	for _, p := range m.Positions() {
		assert.False(t, seen[p], "duplicate vertex at %v", p)
		seen[p] = true
	}
}

// signedArea sums the cross products of the segment endpoints; loops wound
// counter-clockwise contribute positively.
func signedArea(m *LineMesh) float64 {
	var sum float64
	for _, s := range m.Segments() {
		a := m.Positions()[s[0]]
		b := m.Positions()[s[1]]
		sum += float64(a.X)*float64(b.Y) - float64(b.X)*float64(a.Y)
	}
	return sum / 2
}
