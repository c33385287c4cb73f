package grid

import (
	"github.com/RoaringBitmap/roaring/v2"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/cavegen/rule"
)

// Grid3 is a dense 3D boolean cell grid with fixed dimensions.
//
// Cells are stored plane-major: index = (z*height + y)*width + x.
type Grid3 struct {
	width    int
	height   int
	depth    int
	boundary Boundary
	workers  int
	cells    []bool
}

// New3 allocates a width x height x depth grid with all cells dead.
func New3(width, height, depth int, optFns ...Option) (*Grid3, error) {
	if width < 1 || height < 1 || depth < 1 ||
		int64(width)*int64(height)*int64(depth) > maxCells {
		return nil, &ErrInvalidDimensions{Width: width, Height: height, Depth: depth}
	}
	o := applyOptions(optFns)
	return &Grid3{
		width:    width,
		height:   height,
		depth:    depth,
		boundary: o.boundary,
		workers:  o.workers,
		cells:    make([]bool, width*height*depth),
	}, nil
}

// Width returns the number of cells along the X axis.
func (g *Grid3) Width() int { return g.width }

// Height returns the number of cells along the Y axis.
func (g *Grid3) Height() int { return g.height }

// Depth returns the number of cells along the Z axis.
func (g *Grid3) Depth() int { return g.depth }

// Len returns the total cell count.
func (g *Grid3) Len() int { return len(g.cells) }

// Boundary returns the out-of-grid cell policy.
func (g *Grid3) Boundary() Boundary { return g.boundary }

// Cells exposes the backing slice so read-only consumers (viewers, editors)
// can scan cell state directly. Callers must not mutate it.
func (g *Grid3) Cells() []bool { return g.cells }

func (g *Grid3) index(x, y, z int) int { return (z*g.height+y)*g.width + x }

func (g *Grid3) inBounds(p Point3) bool {
	return p.X >= 0 && p.X < g.width &&
		p.Y >= 0 && p.Y < g.height &&
		p.Z >= 0 && p.Z < g.depth
}

func (g *Grid3) outOfBounds(p Point3) *ErrOutOfBounds {
	return &ErrOutOfBounds{X: p.X, Y: p.Y, Z: p.Z, Width: g.width, Height: g.height, Depth: g.depth}
}

// Fill sets every cell to the given state.
func (g *Grid3) Fill(alive bool) {
	for i := range g.cells {
		g.cells[i] = alive
	}
}

// FillRandom sets every cell alive independently with probability density.
func (g *Grid3) FillRandom(density float64, src RandomSource) error {
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
func (g *Grid3) Get(p Point3) (bool, error) {
	if !g.inBounds(p) {
		return false, g.outOfBounds(p)
	}
	return g.cells[g.index(p.X, p.Y, p.Z)], nil
}

// Set stores the state of the cell at p.
func (g *Grid3) Set(p Point3, alive bool) error {
	if !g.inBounds(p) {
		return g.outOfBounds(p)
	}
	g.cells[g.index(p.X, p.Y, p.Z)] = alive
	return nil
}

// Sample returns the state of the cell at p, substituting the boundary
// policy value outside the grid. It is total over all coordinates.
func (g *Grid3) Sample(p Point3) bool {
	if !g.inBounds(p) {
		return boundaryValue(g.boundary)
	}
	return g.cells[g.index(p.X, p.Y, p.Z)]
}

// CountAliveNeighbors counts the alive cells in the full Moore neighborhood
// of p (26 cells, self excluded), applying the boundary policy to neighbors
// outside the grid.
func (g *Grid3) CountAliveNeighbors(p Point3) (int, error) {
	if !g.inBounds(p) {
		return 0, g.outOfBounds(p)
	}
	return g.countNeighbors(p.X, p.Y, p.Z), nil
}

func (g *Grid3) countNeighbors(x, y, z int) int {
	if x > 0 && x < g.width-1 && y > 0 && y < g.height-1 && z > 0 && z < g.depth-1 {
		// Interior fast path: no bounds checks.
		count := 0
		for dz := -1; dz <= 1; dz++ {
			for dy := -1; dy <= 1; dy++ {
				i := g.index(x-1, y+dy, z+dz)
				for dx := 0; dx < 3; dx++ {
					if g.cells[i+dx] {
						count++
					}
				}
			}
		}
		if g.cells[g.index(x, y, z)] {
			count--
		}
		return count
	}
	count := 0
	for dz := -1; dz <= 1; dz++ {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 && dz == 0 {
					continue
				}
				if g.Sample(Point3{X: x + dx, Y: y + dy, Z: z + dz}) {
					count++
				}
			}
		}
	}
	return count
}

// NeighborCounts computes the alive-neighbor count of every cell in one
// pass over the current grid, in cell index order. Counts never exceed 26.
func (g *Grid3) NeighborCounts() []uint8 {
	counts := make([]uint8, len(g.cells))
	g.forEachPlaneBand(func(z0, z1 int) {
		for z := z0; z < z1; z++ {
			for y := 0; y < g.height; y++ {
				for x := 0; x < g.width; x++ {
					counts[g.index(x, y, z)] = uint8(g.countNeighbors(x, y, z))
				}
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
func (g *Grid3) Smooth(r rule.Rule3) {
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

// forEachPlaneBand runs fn over disjoint [z0, z1) plane bands, in parallel
// for large grids. fn must only write state owned by its band.
func (g *Grid3) forEachPlaneBand(fn func(z0, z1 int)) {
	workers := g.workers
	if len(g.cells) < parallelThreshold || workers < 2 || g.depth < 2 {
		fn(0, g.depth)
		return
	}
	if workers > g.depth {
		workers = g.depth
	}
	band := (g.depth + workers - 1) / workers

	var eg errgroup.Group
	for z0 := 0; z0 < g.depth; z0 += band {
		z0 := z0
		z1 := min(z0+band, g.depth)
		eg.Go(func() error {
			fn(z0, z1)
			return nil
		})
	}
	_ = eg.Wait() // workers never fail; Wait is the publish barrier
}

// Population returns the number of alive cells.
func (g *Grid3) Population() int {
	count := 0
	for _, alive := range g.cells {
		if alive {
			count++
		}
	}
	return count
}

// Clone returns an independent deep copy of the grid.
func (g *Grid3) Clone() *Grid3 {
	cp := *g
	cp.cells = make([]bool, len(g.cells))
	copy(cp.cells, g.cells)
	return &cp
}

// Equal reports whether both grids have identical dimensions and cells.
func (g *Grid3) Equal(other *Grid3) bool {
	if other == nil || g.width != other.width || g.height != other.height || g.depth != other.depth {
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
func (g *Grid3) AliveSet() *roaring.Bitmap {
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
func (g *Grid3) SetAliveSet(bm *roaring.Bitmap) error {
	if bm != nil && !bm.IsEmpty() && uint64(bm.Maximum()) >= uint64(len(g.cells)) {
		i := int(bm.Maximum())
		plane := g.width * g.height
		return g.outOfBounds(Point3{X: i % g.width, Y: (i % plane) / g.width, Z: i / plane})
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
