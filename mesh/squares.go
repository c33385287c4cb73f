package mesh

import "github.com/hupe1980/cavegen/grid"

// edgeKey2 names a unit edge of the 2D cell lattice by its lower corner and
// its direction (0=x, 1=y).
type edgeKey2 struct {
	x, y int32
	axis uint8
}

func squareEdgeKey(ox, oy, e int) edgeKey2 {
	a := squareCorners[squareEdges[e][0]]
	b := squareCorners[squareEdges[e][1]]

	k := edgeKey2{
		x: int32(ox + min(a[0], b[0])),
		y: int32(oy + min(a[1], b[1])),
	}
	if a[1] != b[1] {
		k.axis = 1
	}

	return k
}

// FromGrid2 extracts the boundary between alive and dead cells of g as an
// indexed polyline set, using marching squares over every 2x2 cell block.
// Blocks straddling the grid border sample the out-of-grid side through the
// grid's boundary policy, so with the default dead boundary the outline
// closes around alive cells at the border.
//
// Vertices sit on the lattice edges between alive and dead cells (see
// WithSurfacePoint) and every segment is directed with the alive region on
// its left. A grid with no alive/dead transitions yields an empty mesh.
func FromGrid2(g *grid.Grid2, optFns ...Option) (*LineMesh, error) {
	if g == nil {
		return nil, ErrNilGrid
	}

	opts, err := applyOptions(optFns)
	if err != nil {
		return nil, err
	}

	w := &squareWalker{
		g:     g,
		t:     opts.surfacePoint,
		index: make(map[edgeKey2]uint32),
	}
	for oy := -1; oy < g.Height(); oy++ {
		for ox := -1; ox < g.Width(); ox++ {
			w.emit(ox, oy)
		}
	}

	return &LineMesh{positions: w.pos, segments: w.segs}, nil
}

type squareWalker struct {
	g     *grid.Grid2
	t     float32
	index map[edgeKey2]uint32
	pos   []Vector2
	segs  []Segment
}

func (w *squareWalker) emit(ox, oy int) {
	var (
		cfg   int
		alive [4]bool
	)
	for i, c := range squareCorners {
		alive[i] = w.g.Sample(grid.Point2{X: ox + c[0], Y: oy + c[1]})
		if alive[i] {
			cfg |= 1 << i
		}
	}

	row := segTable[cfg]
	for i := 0; i < len(row); i += 2 {
		w.segs = append(w.segs, Segment{
			w.vertex(ox, oy, int(row[i]), &alive),
			w.vertex(ox, oy, int(row[i+1]), &alive),
		})
	}
}

func (w *squareWalker) vertex(ox, oy, e int, alive *[4]bool) uint32 {
	k := squareEdgeKey(ox, oy, e)
	if idx, ok := w.index[k]; ok {
		return idx
	}

	ca, cd := squareEdges[e][0], squareEdges[e][1]
	if !alive[ca] {
		ca, cd = cd, ca
	}

	pa := Vector2{X: float32(ox + squareCorners[ca][0]), Y: float32(oy + squareCorners[ca][1])}
	pd := Vector2{X: float32(ox + squareCorners[cd][0]), Y: float32(oy + squareCorners[cd][1])}

	idx := uint32(len(w.pos))
	w.index[k] = idx
	w.pos = append(w.pos, Vector2{
		X: pa.X + w.t*(pd.X-pa.X),
		Y: pa.Y + w.t*(pd.Y-pa.Y),
	})

	return idx
}
