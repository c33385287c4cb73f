package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/cavegen/grid"
)

var snapshotMagic = [4]byte{'C', 'G', 'S', '0'}

const (
	snapshotVersion = uint16(1)

	// Header layout:
	// [Magic 4][Version 2][Rank 1][Boundary 1][Compression 1][Reserved 3]
	// [Width 4][Height 4][Depth 4]
	headerLen = 24

	rank2 uint8 = 2
	rank3 uint8 = 3
)

type options struct {
	compression Compression
}

// Option configures snapshot writing.
type Option func(*options)

// WithCompression sets the compression scheme for the cell payload.
// Default is CompressionLZ4.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

func applyOptions(optFns []Option) (options, error) {
	o := options{
		compression: CompressionLZ4,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if !o.compression.valid() {
		return o, &ErrUnknownCompression{Compression: uint8(o.compression)}
	}
	return o, nil
}

type header struct {
	rank        uint8
	boundary    grid.Boundary
	compression Compression
	width       uint32
	height      uint32
	depth       uint32
}

func writeHeader(w io.Writer, h header) error {
	buf := make([]byte, headerLen)
	copy(buf, snapshotMagic[:])
	binary.LittleEndian.PutUint16(buf[4:], snapshotVersion)
	buf[6] = h.rank
	buf[7] = uint8(h.boundary)
	buf[8] = uint8(h.compression)
	// buf[9:12] reserved
	binary.LittleEndian.PutUint32(buf[12:], h.width)
	binary.LittleEndian.PutUint32(buf[16:], h.height)
	binary.LittleEndian.PutUint32(buf[20:], h.depth)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write snapshot header: %w", err)
	}
	return nil
}

func readHeader(r io.Reader) (header, error) {
	buf := make([]byte, headerLen)
	if _, err := io.ReadFull(r, buf); err != nil {
		return header{}, fmt.Errorf("read snapshot header: %w", err)
	}

	if [4]byte(buf[:4]) != snapshotMagic {
		return header{}, &ErrInvalidFormat{Reason: "bad magic"}
	}
	if v := binary.LittleEndian.Uint16(buf[4:]); v != snapshotVersion {
		return header{}, &ErrUnsupportedVersion{Version: v}
	}

	h := header{
		rank:        buf[6],
		boundary:    grid.Boundary(buf[7]),
		compression: Compression(buf[8]),
		width:       binary.LittleEndian.Uint32(buf[12:]),
		height:      binary.LittleEndian.Uint32(buf[16:]),
		depth:       binary.LittleEndian.Uint32(buf[20:]),
	}

	if h.rank != rank2 && h.rank != rank3 {
		return header{}, &ErrInvalidFormat{Reason: "unknown grid rank"}
	}
	if h.boundary != grid.BoundaryDead && h.boundary != grid.BoundaryAlive {
		return header{}, &ErrInvalidFormat{Reason: "unknown boundary policy"}
	}
	if !h.compression.valid() {
		return header{}, &ErrUnknownCompression{Compression: uint8(h.compression)}
	}

	return h, nil
}

func packCells(cells []bool) []byte {
	data := make([]byte, (len(cells)+7)/8)
	for i, alive := range cells {
		if alive {
			data[i>>3] |= 1 << (i & 7)
		}
	}
	return data
}

// unpackCells converts the bit-packed payload into an alive set for bulk
// seeding.
func unpackCells(data []byte, n int) *roaring.Bitmap {
	alive := roaring.New()
	for i := 0; i < n; i++ {
		if data[i>>3]&(1<<(i&7)) != 0 {
			alive.Add(uint32(i))
		}
	}
	return alive
}

// Write2 serializes a 2D grid to w.
func Write2(w io.Writer, g *grid.Grid2, optFns ...Option) error {
	if g == nil {
		return ErrNilGrid
	}

	opts, err := applyOptions(optFns)
	if err != nil {
		return err
	}

	h := header{
		rank:        rank2,
		boundary:    g.Boundary(),
		compression: opts.compression,
		width:       uint32(g.Width()),
		height:      uint32(g.Height()),
		depth:       1,
	}
	if err := writeHeader(w, h); err != nil {
		return err
	}

	return writeBlock(w, packCells(g.Cells()), opts.compression)
}

// Read2 deserializes a 2D grid from r. The grid's boundary policy is
// restored from the snapshot.
func Read2(r io.Reader) (*grid.Grid2, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if h.rank != rank2 {
		return nil, &ErrInvalidFormat{Reason: "not a 2D snapshot"}
	}

	g, err := grid.New2(int(h.width), int(h.height), grid.WithBoundary(h.boundary))
	if err != nil {
		return nil, err
	}

	data, err := readBlock(r, h.compression, uint32((g.Len()+7)/8))
	if err != nil {
		return nil, err
	}

	if err := g.SetAliveSet(unpackCells(data, g.Len())); err != nil {
		return nil, err
	}

	return g, nil
}

// Write3 serializes a 3D grid to w.
func Write3(w io.Writer, g *grid.Grid3, optFns ...Option) error {
	if g == nil {
		return ErrNilGrid
	}

	opts, err := applyOptions(optFns)
	if err != nil {
		return err
	}

	h := header{
		rank:        rank3,
		boundary:    g.Boundary(),
		compression: opts.compression,
		width:       uint32(g.Width()),
		height:      uint32(g.Height()),
		depth:       uint32(g.Depth()),
	}
	if err := writeHeader(w, h); err != nil {
		return err
	}

	return writeBlock(w, packCells(g.Cells()), opts.compression)
}

// Read3 deserializes a 3D grid from r. The grid's boundary policy is
// restored from the snapshot.
func Read3(r io.Reader) (*grid.Grid3, error) {
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}
	if h.rank != rank3 {
		return nil, &ErrInvalidFormat{Reason: "not a 3D snapshot"}
	}

	g, err := grid.New3(int(h.width), int(h.height), int(h.depth), grid.WithBoundary(h.boundary))
	if err != nil {
		return nil, err
	}

	data, err := readBlock(r, h.compression, uint32((g.Len()+7)/8))
	if err != nil {
		return nil, err
	}

	if err := g.SetAliveSet(unpackCells(data, g.Len())); err != nil {
		return nil, err
	}

	return g, nil
}
