package rule

import "math/bits"

const (
	// MaxNeighbors2 is the size of the full Moore neighborhood in 2D.
	MaxNeighbors2 = 8
	// MaxNeighbors3 is the size of the full Moore neighborhood in 3D.
	MaxNeighbors3 = 26

	width2 = MaxNeighbors2 + 1 // counts 0..8
	width3 = MaxNeighbors3 + 1 // counts 0..26

	mask2 = uint16(1<<width2) - 1
	mask3 = uint32(1<<width3) - 1
)

// Bitset2 encodes a 2D rule as one bit per neighbor count.
//
// Bit k is set when the rule applies to a cell with exactly k alive
// neighbors, for k in 0..8. The upper 7 bits are always zero.
type Bitset2 uint16

// NewBitset2Range returns a bitset with all bits in [low, high] set.
func NewBitset2Range(low, high int) (Bitset2, error) {
	bits, err := rangeBits(low, high, MaxNeighbors2)
	if err != nil {
		return 0, err
	}
	return Bitset2(bits), nil
}

// Bitset2FromBits validates and converts a raw bit pattern.
func Bitset2FromBits(b uint16) (Bitset2, error) {
	if b&^mask2 != 0 {
		return 0, &ErrInvalidBits{Bits: uint32(b), Width: width2}
	}
	return Bitset2(b), nil
}

// Or returns the union of the two bitsets.
func (b Bitset2) Or(other Bitset2) Bitset2 { return b | other }

// Contains reports whether the rule applies to the given neighbor count.
// Counts outside 0..8 are never members.
func (b Bitset2) Contains(count int) bool {
	if count < 0 || count > MaxNeighbors2 {
		return false
	}
	return b&(1<<count) != 0
}

// Bits returns the raw bit representation. The upper 7 bits are zero.
func (b Bitset2) Bits() uint16 { return uint16(b) }

// Counts returns the neighbor counts the rule applies to, ascending.
func (b Bitset2) Counts() []int { return setBits(uint32(b), width2) }

// Len returns the number of neighbor counts the rule applies to.
func (b Bitset2) Len() int { return bits.OnesCount16(uint16(b)) }

// Bitset3 encodes a 3D rule as one bit per neighbor count.
//
// Bit k is set when the rule applies to a cell with exactly k alive
// neighbors, for k in 0..26. The upper 5 bits are always zero.
type Bitset3 uint32

// NewBitset3Range returns a bitset with all bits in [low, high] set.
func NewBitset3Range(low, high int) (Bitset3, error) {
	bits, err := rangeBits(low, high, MaxNeighbors3)
	if err != nil {
		return 0, err
	}
	return Bitset3(bits), nil
}

// Bitset3FromBits validates and converts a raw bit pattern.
func Bitset3FromBits(b uint32) (Bitset3, error) {
	if b&^mask3 != 0 {
		return 0, &ErrInvalidBits{Bits: b, Width: width3}
	}
	return Bitset3(b), nil
}

// Or returns the union of the two bitsets.
func (b Bitset3) Or(other Bitset3) Bitset3 { return b | other }

// Contains reports whether the rule applies to the given neighbor count.
// Counts outside 0..26 are never members.
func (b Bitset3) Contains(count int) bool {
	if count < 0 || count > MaxNeighbors3 {
		return false
	}
	return b&(1<<count) != 0
}

// Bits returns the raw bit representation. The upper 5 bits are zero.
func (b Bitset3) Bits() uint32 { return uint32(b) }

// Counts returns the neighbor counts the rule applies to, ascending.
func (b Bitset3) Counts() []int { return setBits(uint32(b), width3) }

// Len returns the number of neighbor counts the rule applies to.
func (b Bitset3) Len() int { return bits.OnesCount32(uint32(b)) }

func rangeBits(low, high, maxCount int) (uint32, error) {
	if low < 0 || low > high || high > maxCount {
		return 0, &ErrInvalidRange{Low: low, High: high, Max: maxCount}
	}
	var b uint32
	for k := low; k <= high; k++ {
		b |= 1 << k
	}
	return b, nil
}

func setBits(b uint32, width int) []int {
	counts := make([]int, 0, bits.OnesCount32(b))
	for k := 0; k < width; k++ {
		if b&(1<<k) != 0 {
			counts = append(counts, k)
		}
	}
	return counts
}
