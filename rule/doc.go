// Package rule defines neighbor-count rules for cellular automata.
//
// A rule pairs two fixed-width bitsets: one deciding when a dead cell is
// born, one deciding when an alive cell survives. Bit k of a bitset is set
// when the rule applies to a cell with exactly k alive Moore neighbors
// (0..8 in 2D, 0..26 in 3D).
//
// Bitsets are small immutable value types. Build them from inclusive
// ranges and combine them with Or:
//
//	birth, _ := rule.NewBitset3Range(13, 14)
//	extra, _ := rule.NewBitset3Range(17, 19)
//	survive, _ := rule.NewBitset3Range(13, 26)
//	r := rule.Rule3{Birth: birth.Or(extra), Survive: survive}
package rule
