package snapshot

import (
	"errors"
	"fmt"
)

// ErrNilGrid is returned when a snapshot is written without a grid.
var ErrNilGrid = errors.New("grid must not be nil")

// ErrInvalidFormat is a named error type for malformed snapshot data.
type ErrInvalidFormat struct {
	Reason string
}

// Error returns the error message for malformed snapshot data.
func (e *ErrInvalidFormat) Error() string {
	return fmt.Sprintf("invalid snapshot: %s", e.Reason)
}

// ErrUnsupportedVersion is a named error type for a snapshot written by a
// newer format revision.
type ErrUnsupportedVersion struct {
	Version uint16
}

// Error returns the error message for an unsupported snapshot version.
func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("unsupported snapshot version %d", e.Version)
}

// ErrUnknownCompression is a named error type for an unrecognized
// compression identifier.
type ErrUnknownCompression struct {
	Compression uint8
}

// Error returns the error message for an unknown compression identifier.
func (e *ErrUnknownCompression) Error() string {
	return fmt.Sprintf("unknown snapshot compression %d", e.Compression)
}
