package rule

// Rule2 is a 2D cellular automaton rule.
//
// Birth applies to dead cells, Survive to alive cells; both are evaluated
// against the alive count of the full 8-cell Moore neighborhood.
type Rule2 struct {
	Birth   Bitset2
	Survive Bitset2
}

// Rule3 is a 3D cellular automaton rule.
//
// Birth applies to dead cells, Survive to alive cells; both are evaluated
// against the alive count of the full 26-cell Moore neighborhood.
type Rule3 struct {
	Birth   Bitset3
	Survive Bitset3
}

// Smooth2 is the 2D cave-smoothing rule 5-8/4-8/2/M: a dead cell is born
// with 5..8 alive neighbors, an alive cell survives with 4..8.
var Smooth2 = Rule2{
	Birth:   Bitset2(0x1E0), // 5..8
	Survive: Bitset2(0x1F0), // 4..8
}

// Smooth3 is the 3D cave-smoothing rule 13-26/13-14,17-19/2/M: a dead cell
// is born with 13, 14 or 17..19 alive neighbors, an alive cell survives
// with 13..26.
var Smooth3 = Rule3{
	Birth:   Bitset3(0x6000 | 0xE0000), // 13..14, 17..19
	Survive: Bitset3(0x7FFE000),        // 13..26
}
