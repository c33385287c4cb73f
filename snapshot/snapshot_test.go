package snapshot

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cavegen/grid"
	"github.com/hupe1980/cavegen/testutil"
)

func TestSnapshot2RoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		compression Compression
	}{
		{"None", CompressionNone},
		{"LZ4", CompressionLZ4},
		{"Zstd", CompressionZstd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := grid.New2(33, 17, grid.WithBoundary(grid.BoundaryAlive))
			require.NoError(t, err)
			require.NoError(t, g.FillRandom(0.45, testutil.NewRNG(4)))

			var buf bytes.Buffer
			require.NoError(t, Write2(&buf, g, WithCompression(tt.compression)))

			restored, err := Read2(&buf)
			require.NoError(t, err)
			assert.True(t, g.Equal(restored))
			assert.Equal(t, grid.BoundaryAlive, restored.Boundary())
		})
	}
}

func TestSnapshot3RoundTrip(t *testing.T) {
	tests := []struct {
		name        string
		compression Compression
	}{
		{"None", CompressionNone},
		{"LZ4", CompressionLZ4},
		{"Zstd", CompressionZstd},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := grid.New3(13, 9, 7)
			require.NoError(t, err)
			require.NoError(t, g.FillRandom(0.55, testutil.NewRNG(8)))

			var buf bytes.Buffer
			require.NoError(t, Write3(&buf, g, WithCompression(tt.compression)))

			restored, err := Read3(&buf)
			require.NoError(t, err)
			assert.True(t, g.Equal(restored))
			assert.Equal(t, grid.BoundaryDead, restored.Boundary())
		})
	}
}

// A solid grid compresses to nearly nothing; an uncompressed snapshot stays
// close to one bit per cell.
func TestSnapshotCompressionShrinks(t *testing.T) {
	g, err := grid.New3(32, 32, 32)
	require.NoError(t, err)
	g.Fill(true)

	var raw, lz4Buf bytes.Buffer
	require.NoError(t, Write3(&raw, g, WithCompression(CompressionNone)))
	require.NoError(t, Write3(&lz4Buf, g, WithCompression(CompressionLZ4)))

	assert.Equal(t, headerLen+blockHeaderSize+g.Len()/8, raw.Len())
	assert.Less(t, lz4Buf.Len(), raw.Len()/10)
}

func TestSnapshotWriteValidation(t *testing.T) {
	var buf bytes.Buffer
	require.ErrorIs(t, Write2(&buf, nil), ErrNilGrid)
	require.ErrorIs(t, Write3(&buf, nil), ErrNilGrid)

	g, err := grid.New2(4, 4)
	require.NoError(t, err)

	var uc *ErrUnknownCompression
	require.ErrorAs(t, Write2(&buf, g, WithCompression(Compression(9))), &uc)
	assert.EqualValues(t, 9, uc.Compression)
}

func TestSnapshotMalformed(t *testing.T) {
	g, err := grid.New2(8, 8)
	require.NoError(t, err)
	require.NoError(t, g.FillRandom(0.5, testutil.NewRNG(2)))

	var buf bytes.Buffer
	require.NoError(t, Write2(&buf, g))
	good := buf.Bytes()

	t.Run("Truncated", func(t *testing.T) {
		_, err := Read2(bytes.NewReader(good[:len(good)-3]))
		require.Error(t, err)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := Read2(bytes.NewReader(nil))
		require.Error(t, err)
	})

	t.Run("BadMagic", func(t *testing.T) {
		bad := append([]byte(nil), good...)
		bad[0] = 'X'
		var inv *ErrInvalidFormat
		_, err := Read2(bytes.NewReader(bad))
		require.ErrorAs(t, err, &inv)
	})

	t.Run("BadVersion", func(t *testing.T) {
		bad := append([]byte(nil), good...)
		bad[4] = 0xFF
		var uv *ErrUnsupportedVersion
		_, err := Read2(bytes.NewReader(bad))
		require.ErrorAs(t, err, &uv)
	})

	t.Run("BadBoundary", func(t *testing.T) {
		bad := append([]byte(nil), good...)
		bad[7] = 7
		var inv *ErrInvalidFormat
		_, err := Read2(bytes.NewReader(bad))
		require.ErrorAs(t, err, &inv)
	})

	t.Run("BadCompression", func(t *testing.T) {
		bad := append([]byte(nil), good...)
		bad[8] = 9
		var uc *ErrUnknownCompression
		_, err := Read2(bytes.NewReader(bad))
		require.ErrorAs(t, err, &uc)
	})

	t.Run("RankMismatch", func(t *testing.T) {
		var inv *ErrInvalidFormat
		_, err := Read3(bytes.NewReader(good))
		require.ErrorAs(t, err, &inv)
	})

	t.Run("ZeroDimensions", func(t *testing.T) {
		bad := append([]byte(nil), good...)
		bad[12], bad[13], bad[14], bad[15] = 0, 0, 0, 0
		var id *grid.ErrInvalidDimensions
		_, err := Read2(bytes.NewReader(bad))
		require.ErrorAs(t, err, &id)
	})

	t.Run("PayloadSizeMismatch", func(t *testing.T) {
		bad := append([]byte(nil), good...)
		// Shrink the grid without touching the payload.
		bad[12] = 4
		var inv *ErrInvalidFormat
		_, err := Read2(bytes.NewReader(bad))
		require.ErrorAs(t, err, &inv)
	})
}

func TestCompressionString(t *testing.T) {
	assert.Equal(t, "None", CompressionNone.String())
	assert.Equal(t, "LZ4", CompressionLZ4.String())
	assert.Equal(t, "Zstd", CompressionZstd.String())
	assert.Equal(t, "Unknown", Compression(9).String())
}
