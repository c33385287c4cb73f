package snapshot

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the block compression applied to the cell payload.
type Compression uint8

const (
	// CompressionNone stores the bit-packed cells raw.
	CompressionNone Compression = 0
	// CompressionLZ4 applies LZ4 block compression (fast, decent ratio).
	CompressionLZ4 Compression = 1
	// CompressionZstd applies zstd block compression (better ratio).
	CompressionZstd Compression = 2
)

// String returns a string representation of the compression scheme.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZstd:
		return "Zstd"
	default:
		return "Unknown"
	}
}

func (c Compression) valid() bool { return c <= CompressionZstd }

// zstd encoders and decoders are stateful and expensive to build, so they
// are pooled across snapshots.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// Block format: [UncompressedSize uint32][CompressedSize uint32][Data...].
// CompressedSize 0 means the data is stored raw; writers fall back to raw
// whenever compression does not shrink the payload.
const blockHeaderSize = 8

func writeBlock(w io.Writer, data []byte, c Compression) error {
	var (
		compressed []byte
		err        error
	)
	switch c {
	case CompressionLZ4:
		compressed, err = compressLZ4(data)
	case CompressionZstd:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		putZstdEncoder(enc)
	}
	if err != nil {
		return fmt.Errorf("compress cells: %w", err)
	}

	if len(compressed) == 0 || len(compressed) >= len(data) {
		compressed = nil
	}

	var hdr [blockHeaderSize]byte
	binary.LittleEndian.PutUint32(hdr[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(hdr[4:], uint32(len(compressed)))
	if _, err := w.Write(hdr[:]); err != nil {
		return fmt.Errorf("write block header: %w", err)
	}

	if compressed == nil {
		_, err = w.Write(data)
	} else {
		_, err = w.Write(compressed)
	}
	if err != nil {
		return fmt.Errorf("write block data: %w", err)
	}

	return nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}

	return compressed[:n], nil
}

// readBlock reads one block and returns exactly want decompressed bytes.
// The expected size is known from the grid dimensions, which bounds every
// allocation against corrupt length fields.
func readBlock(r io.Reader, c Compression, want uint32) ([]byte, error) {
	var hdr [blockHeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("read block header: %w", err)
	}

	uncompressedSize := binary.LittleEndian.Uint32(hdr[0:])
	compressedSize := binary.LittleEndian.Uint32(hdr[4:])

	if uncompressedSize != want {
		return nil, &ErrInvalidFormat{Reason: "cell payload size does not match dimensions"}
	}

	if compressedSize == 0 {
		data := make([]byte, uncompressedSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, fmt.Errorf("read block data: %w", err)
		}
		return data, nil
	}

	if c == CompressionNone {
		return nil, &ErrInvalidFormat{Reason: "compressed block in an uncompressed snapshot"}
	}
	if compressedSize >= uncompressedSize {
		return nil, &ErrInvalidFormat{Reason: "compressed block larger than payload"}
	}

	compressed := make([]byte, compressedSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, fmt.Errorf("read block data: %w", err)
	}

	data := make([]byte, uncompressedSize)
	switch c {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(compressed, data)
		if err != nil {
			return nil, fmt.Errorf("decompress cells: %w", err)
		}
		if uint32(n) != uncompressedSize {
			return nil, &ErrInvalidFormat{Reason: "decompressed size mismatch"}
		}
		return data, nil

	case CompressionZstd:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(compressed, data[:0])
		if err != nil {
			return nil, fmt.Errorf("decompress cells: %w", err)
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, &ErrInvalidFormat{Reason: "decompressed size mismatch"}
		}
		return decoded, nil

	default:
		return nil, &ErrUnknownCompression{Compression: uint8(c)}
	}
}
