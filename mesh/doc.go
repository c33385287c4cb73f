// Package mesh extracts polygonal surfaces from boolean cell grids.
//
// FromGrid3 runs marching cubes over a 3D grid and returns an indexed
// triangle mesh separating alive from dead cells; FromGrid2 runs marching
// squares over a 2D grid and returns an indexed boundary polyline. Cell
// samples sit on the integer lattice, surface vertices on the lattice edges
// where aliveness flips (midpoints by default, see WithSurfacePoint).
//
// Vertices shared between adjacent cells are deduplicated by lattice edge,
// not by float position, so downstream consumers get clean adjacency.
// Triangles are wound so normals point from the alive region toward the
// dead region; in 2D the alive region lies to the left of each directed
// segment.
//
// A uniformly dead or uniformly alive grid has no surface and yields an
// empty mesh with no error.
package mesh
