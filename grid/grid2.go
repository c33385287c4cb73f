package grid

import (
	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/cavegen/rule"
)

// Grid2 is a dense 2D boolean cell grid with fixed dimensions.
//
// Cells are stored row-major: index = y*width + x.
type Grid2 struct {
	width    int
	height   int
	boundary Boundary
	workers  int
	cells    []bool
}

// New2 allocates a width x height grid with all cells dead.
func New2(width, height int, optFns ...Option) (*Grid2, error) {
	if width < 1 || height < 1 || int64(width)*int64(height) > maxCells {
		return nil, &ErrInvalidDimensions{Width: width, Height: height, Depth: 1}
	}
	o := applyOptions(optFns)
	return &Grid2{
		width:    width,
		height:   height,
		boundary: o.boundary,
		workers:  o.workers,
		cells:    make([]bool, width*height),
	}, nil
}

// Width returns the number of cells along the X axis.
func (g *Grid2) Width() int { return g.width }

// Height returns the number of cells along the Y axis.
func (g *Grid2) Height() int { return g.height }

// Len returns the total cell count.
func (g *Grid2) Len() int { return len(g.cells) }

// Boundary returns the out-of-grid cell policy.
func (g *Grid2) Boundary() Boundary { return g.boundary }

// Cells exposes the backing slice so read-only consumers (viewers, editors)
// can scan cell state directly. Callers must not mutate it.
func (g *Grid2) Cells() []bool { return g.cells }

func (g *Grid2) index(x, y int) int { return y*g.width + x }

func (g *Grid2) inBounds(p Point2) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Fill sets every cell to the given state.
func (g *Grid2) Fill(alive bool) {
	for i := range g.cells {
		g.cells[i] = alive
	}
}

// FillRandom sets every cell alive independently with probability density.
func (g *Grid2) FillRandom(density float64, src RandomSource) error {
	if density < 0 || density > 1 {
		return &ErrInvalidDensity{Density: density}
	}
	if src == nil {
		return ErrNilRandomSource
	}
	for i := range g.cells {
		g.cells[i] = src.Float64() < density
	}
	return nil
}

// Get returns the state of the cell at p.
func (g *Grid2) Get(p Point2) (bool, error) {
	if !g.inBounds(p) {
		return false, &ErrOutOfBounds{X: p.X, Y: p.Y, Width: g.width, Height: g.height, Depth: 1}
	}
	return g.cells[g.index(p.X, p.Y)], nil
}

// Set stores the state of the cell at p.
func (g *Grid2) Set(p Point2, alive bool) error {
	if !g.inBounds(p) {
		return &ErrOutOfBounds{X: p.X, Y: p.Y, Width: g.width, Height: g.height, Depth: 1}
	}
	g.cells[g.index(p.X, p.Y)] = alive
	return nil
}

// Sample returns the state of the cell at p, substituting the boundary
// policy value outside the grid. It is total over all coordinates.
func (g *Grid2) Sample(p Point2) bool {
	if !g.inBounds(p) {
		return boundaryValue(g.boundary)
	}
	return g.cells[g.index(p.X, p.Y)]
}

// CountAliveNeighbors counts the alive cells in the full Moore neighborhood
// of p (8 cells, self excluded), applying the boundary policy to neighbors
// outside the grid.
func (g *Grid2) CountAliveNeighbors(p Point2) (int, error) {
	if !g.inBounds(p) {
		return 0, &ErrOutOfBounds{X: p.X, Y: p.Y, Width: g.width, Height: g.height, Depth: 1}
	}
	return g.countNeighbors(p.X, p.Y), nil
}

func (g *Grid2) countNeighbors(x, y int) int {
	if x > 0 && x < g.width-1 && y > 0 && y < g.height-1 {
		// Interior fast path: no bounds checks.
		i := g.index(x, y)
		w := g.width
		count := 0
		for _, j := range [8]int{i - w - 1, i - w, i - w + 1, i - 1, i + 1, i + w - 1, i + w, i + w + 1} {
			if g.cells[j] {
				count++
			}
		}
		return count
	}
	count := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.Sample(Point2{X: x + dx, Y: y + dy}) {
				count++
			}
		}
	}
	return count
}

// NeighborCounts computes the alive-neighbor count of every cell in one
// pass over the current grid, in cell index order. Counts never exceed 8.
func (g *Grid2) NeighborCounts() []uint8 {
	counts := make([]uint8, len(g.cells))
	g.forEachRowBand(func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < g.width; x++ {
				counts[g.index(x, y)] = uint8(g.countNeighbors(x, y))
			}
		}
	})
	return counts
}

// Smooth applies one synchronous generation of r to the whole grid.
//
// Every next state is a pure function of the pre-step grid: dead cells
// consult r.Birth, alive cells r.Survive, each with the cell's alive
// neighbor count. The grid contents are replaced only after the full pass.
func (g *Grid2) Smooth(r rule.Rule2) {
	counts := g.NeighborCounts()
	next := make([]bool, len(g.cells))
	for i, alive := range g.cells {
		if alive {
			next[i] = r.Survive.Contains(int(counts[i]))
		} else {
			next[i] = r.Birth.Contains(int(counts[i]))
		}
	}
	g.cells = next
}

// forEachRowBand runs fn over disjoint [y0, y1) bands, in parallel for
// large grids. fn must only write state owned by its band.
func (g *Grid2) forEachRowBand(fn func(y0, y1 int)) {
	workers := g.workers
	if len(g.cells) < parallelThreshold || workers < 2 || g.height < 2 {
		fn(0, g.height)
		return
	}
	if workers > g.height {
		workers = g.height
	}
	band := (g.height + workers - 1) / workers

	var eg errgroup.Group
	for y0 := 0; y0 < g.height; y0 += band {
		y0 := y0
		y1 := min(y0+band, g.height)
		eg.Go(func() error {
			fn(y0, y1)
			return nil
		})
	}
	_ = eg.Wait() // workers never fail; Wait is the publish barrier
}

// Population returns the number of alive cells.
func (g *Grid2) Population() int {
	count := 0
	for _, alive := range g.cells {
		if alive {
			count++
		}
	}
	return count
}

// Clone returns an independent deep copy of the grid.
func (g *Grid2) Clone() *Grid2 {
	cp := *g
	cp.cells = make([]bool, len(g.cells))
	copy(cp.cells, g.cells)
	return &cp
}

// Equal reports whether both grids have identical dimensions and cells.
func (g *Grid2) Equal(other *Grid2) bool {
	if other == nil || g.width != other.width || g.height != other.height {
		return false
	}
	for i, alive := range g.cells {
		if alive != other.cells[i] {
			return false
		}
	}
	return true
}

// AliveSet returns the set of alive cell indices as a bitmap snapshot.
// Mutating the bitmap does not affect the grid.
func (g *Grid2) AliveSet() *roaring.Bitmap {
	bm := roaring.New()
	for i, alive := range g.cells {
		if alive {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// SetAliveSet replaces the grid contents with the seeded state described by
// bm: exactly the cells whose index is in bm become alive. Indices outside
// the grid fail with ErrOutOfBounds and leave the grid untouched.
func (g *Grid2) SetAliveSet(bm *roaring.Bitmap) error {
	if bm != nil && !bm.IsEmpty() && uint64(bm.Maximum()) >= uint64(len(g.cells)) {
		i := int(bm.Maximum())
		return &ErrOutOfBounds{X: i % g.width, Y: i / g.width, Width: g.width, Height: g.height, Depth: 1}
	}
	g.Fill(false)
	if bm == nil {
		return nil
	}
	it := bm.Iterator()
	for it.HasNext() {
		g.cells[it.Next()] = true
	}
	return nil
}
