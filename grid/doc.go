// Package grid implements dense 2D and 3D boolean cell grids with
// neighbor-counting cellular automaton stepping.
//
// A grid has fixed dimensions and owns exactly width*height(*depth) cells,
// all dead after construction. Smooth applies one synchronous generation of
// a rule: every next state is derived from the frozen pre-step grid
// (double-buffered), then the whole grid is replaced at once.
//
// Cells outside the grid are governed by a named boundary policy. The
// default treats them as dead, so edge cells never survive or are born due
// to an implicit alive border and extracted surfaces close at the grid
// edges.
//
// A grid is not safe for concurrent use; the internal parallel passes are
// joined before any call returns.
package grid
