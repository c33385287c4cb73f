// Package testutil provides deterministic helpers for tests and examples.
//
// This package is intended for use in tests and benchmarks only. Its RNG is
// a seeded, thread-safe random source satisfying grid.RandomSource:
//
//	rng := testutil.NewRNG(seed)
//	_ = g.FillRandom(0.45, rng)
package testutil
