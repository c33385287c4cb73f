// Package cavegen generates organic cave and blob meshes from cellular
// automata.
//
// A generator fills a boolean cell grid at a seed density, smooths it with a
// configurable birth/survive rule over the full Moore neighborhood, and
// extracts the boundary between alive and dead cells as a mesh: marching
// cubes in 3D, marching squares in 2D.
//
// # Quick start
//
//	ctx := context.Background()
//
//	gen, err := cavegen.New3(64, 64, 64,
//	    cavegen.WithDensity(0.55),
//	    cavegen.WithIterations(5),
//	)
//	if err != nil {
//	    panic(err)
//	}
//
//	m, err := gen.Generate(ctx, testutil.NewRNG(42))
//	if err != nil {
//	    panic(err)
//	}
//	fmt.Println(m.NumTriangles())
//
// The intermediate grid stays accessible through Grid() between the Fill,
// Smooth and Extract steps, so editors can paint cells or persist state with
// the snapshot package before extraction.
//
// The subpackages are usable on their own: grid holds the automaton, rule
// the birth/survive bitsets, mesh the extractors and snapshot the binary
// grid codec. The facade adds configuration, structured logging and metrics
// on top; the core packages never log.
package cavegen
