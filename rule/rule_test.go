package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmooth2(t *testing.T) {
	birth, err := NewBitset2Range(5, 8)
	require.NoError(t, err)
	survive, err := NewBitset2Range(4, 8)
	require.NoError(t, err)

	assert.Equal(t, Rule2{Birth: birth, Survive: survive}, Smooth2)
}

func TestSmooth3(t *testing.T) {
	b1, err := NewBitset3Range(13, 14)
	require.NoError(t, err)
	b2, err := NewBitset3Range(17, 19)
	require.NoError(t, err)
	survive, err := NewBitset3Range(13, 26)
	require.NoError(t, err)

	assert.Equal(t, Rule3{Birth: b1.Or(b2), Survive: survive}, Smooth3)
}
