package mesh

import (
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/cavegen/grid"
)

// edgeKey names a unit edge of the cell lattice by its lower corner and its
// direction (0=x, 1=y, 2=z). Every surface vertex lives on exactly one such
// edge, so deduplicating on the key welds the triangles of neighboring cubes
// without any float comparison.
type edgeKey struct {
	x, y, z int32
	axis    uint8
}

// cubeEdgeKey returns the lattice edge holding edge e of the cube whose
// lowest corner is (ox, oy, oz).
func cubeEdgeKey(ox, oy, oz, e int) edgeKey {
	a := cubeCorners[cubeEdges[e][0]]
	b := cubeCorners[cubeEdges[e][1]]

	k := edgeKey{
		x: int32(ox + min(a[0], b[0])),
		y: int32(oy + min(a[1], b[1])),
		z: int32(oz + min(a[2], b[2])),
	}
	switch {
	case a[0] != b[0]:
		k.axis = 0
	case a[1] != b[1]:
		k.axis = 1
	default:
		k.axis = 2
	}

	return k
}

// FromGrid3 extracts the surface separating alive from dead cells of g as an
// indexed triangle mesh, using marching cubes over every 2x2x2 cell block.
// Blocks straddling the grid border sample the out-of-grid side through the
// grid's boundary policy, so with the default dead boundary the surface
// closes around alive cells at the border.
//
// Vertex positions sit on the lattice edges between alive and dead cells
// (see WithSurfacePoint), normals point away from the alive region, and both
// are independent of the worker count. A grid with no alive/dead transitions
// yields an empty mesh.
func FromGrid3(g *grid.Grid3, optFns ...Option) (*TriangleMesh, error) {
	if g == nil {
		return nil, ErrNilGrid
	}

	opts, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}

	// Cube origins run from -1 to dim-1 on every axis; slabs shard them
	// along z.
	slabs := g.Depth() + 1

	workers := opts.workers
	if g.Len() < parallelThreshold {
		workers = 1
	}
	if workers > slabs {
		workers = slabs
	}

	if workers == 1 {
		w := newCubeWalker(g, opts.surfacePoint)
		w.walk(-1, g.Depth())

		return w.build(), nil
	}

	locals := make([]*cubeWalker, workers)
	band := (slabs + workers - 1) / workers

	eg := errgroup.Group{}
	for i := 0; i < workers; i++ {
		z0 := -1 + i*band
		z1 := min(z0+band, g.Depth())
		if z0 >= z1 {
			break
		}

		w := newCubeWalker(g, opts.surfacePoint)
		locals[i] = w

		eg.Go(func() error {
			w.walk(z0, z1)
			return nil
		})
	}
	_ = eg.Wait() // workers never fail; Wait is the publish barrier

	return mergeWalkers(g, opts.surfacePoint, locals), nil
}

// cubeWalker accumulates deduplicated vertices and triangles over a range of
// cube slabs.
type cubeWalker struct {
	g     *grid.Grid3
	t     float32
	index map[edgeKey]uint32
	keys  []edgeKey
	pos   []Vector3
	tris  []Triangle
}

func newCubeWalker(g *grid.Grid3, t float32) *cubeWalker {
	return &cubeWalker{
		g:     g,
		t:     t,
		index: make(map[edgeKey]uint32),
	}
}

// walk processes every cube origin with oz in [z0, z1).
func (w *cubeWalker) walk(z0, z1 int) {
	width, height := w.g.Width(), w.g.Height()
	for oz := z0; oz < z1; oz++ {
		for oy := -1; oy < height; oy++ {
			for ox := -1; ox < width; ox++ {
				w.emit(ox, oy, oz)
			}
		}
	}
}

// emit triangulates the single cube at (ox, oy, oz).
func (w *cubeWalker) emit(ox, oy, oz int) {
	var (
		cfg   int
		alive [8]bool
	)
	for i, c := range cubeCorners {
		alive[i] = w.g.Sample(grid.Point3{X: ox + c[0], Y: oy + c[1], Z: oz + c[2]})
		if !alive[i] {
			cfg |= 1 << i
		}
	}

	if cfg == 0 || cfg == 0xFF {
		return
	}

	row := &triTable[cfg]
	for i := 0; row[i] >= 0; i += 3 {
		w.tris = append(w.tris, Triangle{
			w.vertex(ox, oy, oz, int(row[i]), &alive),
			w.vertex(ox, oy, oz, int(row[i+1]), &alive),
			w.vertex(ox, oy, oz, int(row[i+2]), &alive),
		})
	}
}

// vertex returns the index of the surface vertex on cube edge e, creating it
// on first use.
func (w *cubeWalker) vertex(ox, oy, oz, e int, alive *[8]bool) uint32 {
	k := cubeEdgeKey(ox, oy, oz, e)
	if idx, ok := w.index[k]; ok {
		return idx
	}

	ca, cd := cubeEdges[e][0], cubeEdges[e][1]
	if !alive[ca] {
		ca, cd = cd, ca
	}

	pa := Vector3{
		X: float32(ox + cubeCorners[ca][0]),
		Y: float32(oy + cubeCorners[ca][1]),
		Z: float32(oz + cubeCorners[ca][2]),
	}
	pd := Vector3{
		X: float32(ox + cubeCorners[cd][0]),
		Y: float32(oy + cubeCorners[cd][1]),
		Z: float32(oz + cubeCorners[cd][2]),
	}

	idx := uint32(len(w.pos))
	w.index[k] = idx
	w.keys = append(w.keys, k)
	w.pos = append(w.pos, Vector3{
		X: pa.X + w.t*(pd.X-pa.X),
		Y: pa.Y + w.t*(pd.Y-pa.Y),
		Z: pa.Z + w.t*(pd.Z-pa.Z),
	})

	return idx
}

// build finalizes the walker into a mesh, computing area-weighted vertex
// normals from the accumulated triangles.
func (w *cubeWalker) build() *TriangleMesh {
	normals := make([]Vector3, len(w.pos))
	for _, tri := range w.tris {
		a, b, c := w.pos[tri[0]], w.pos[tri[1]], w.pos[tri[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		normals[tri[0]] = normals[tri[0]].Add(n)
		normals[tri[1]] = normals[tri[1]].Add(n)
		normals[tri[2]] = normals[tri[2]].Add(n)
	}
	for i := range normals {
		normals[i] = normals[i].Normalize()
	}

	return &TriangleMesh{positions: w.pos, normals: normals, triangles: w.tris}
}

// mergeWalkers concatenates per-slab walkers in slab order, re-deduplicating
// the vertices shared across slab seams. Replaying triangles in slab order
// reproduces the exact vertex and triangle ordering of a serial walk.
func mergeWalkers(g *grid.Grid3, t float32, locals []*cubeWalker) *TriangleMesh {
	merged := newCubeWalker(g, t)
	for _, lw := range locals {
		if lw == nil {
			continue
		}

		remap := make([]uint32, len(lw.pos))
		seen := make([]bool, len(lw.pos))

		for _, tri := range lw.tris {
			var out Triangle
			for j, li := range tri {
				if !seen[li] {
					k := lw.keys[li]
					gi, ok := merged.index[k]
					if !ok {
						gi = uint32(len(merged.pos))
						merged.index[k] = gi
						merged.keys = append(merged.keys, k)
						merged.pos = append(merged.pos, lw.pos[li])
					}
					remap[li] = gi
					seen[li] = true
				}
				out[j] = remap[li]
			}
			merged.tris = append(merged.tris, out)
		}
	}

	return merged.build()
}
