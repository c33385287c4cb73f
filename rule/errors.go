package rule

import "fmt"

// ErrInvalidRange is a named error type for a bad bitset range.
type ErrInvalidRange struct {
	Low  int // Inclusive lower bound
	High int // Inclusive upper bound
	Max  int // Highest representable neighbor count
}

// Error returns the error message for an invalid range.
func (e *ErrInvalidRange) Error() string {
	return fmt.Sprintf("invalid rule range [%d, %d]: bounds must satisfy 0 <= low <= high <= %d", e.Low, e.High, e.Max)
}

// ErrInvalidBits is a named error type for a bit pattern with bits set
// beyond the bitset width.
type ErrInvalidBits struct {
	Bits  uint32 // Offending bit pattern
	Width int    // Bitset width in bits
}

// Error returns the error message for an invalid bit pattern.
func (e *ErrInvalidBits) Error() string {
	return fmt.Sprintf("invalid bit pattern %#x: only the low %d bits may be set", e.Bits, e.Width)
}
