// Package snapshot serializes grids to a compact binary format.
//
// A snapshot starts with a fixed header (magic, format version, grid rank,
// boundary policy, compression, dimensions) followed by the cells bit-packed
// into a single compressed block. LZ4 favors speed, zstd ratio; blocks that
// do not shrink are stored raw, so pathological inputs never grow beyond the
// bit-packed size plus the block header.
//
// Snapshots are portable across architectures: all integers are
// little-endian.
package snapshot
