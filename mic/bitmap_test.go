package mic

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func random(n int) []byte {
	b := make([]byte, n)
	rand.New(rand.NewSource(int64(n))).Read(b)
	return b
}

func TestUnpackBitOrder(t *testing.T) {
	m, err := Unpack([]byte{0xe4, 0x1b}, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Height)
	assert.Equal(t, []uint8{3, 2, 1, 0, 0, 1, 2, 3}, m.Pix)
	assert.Equal(t, uint8(1), m.At(2, 0))
	assert.Empty(t, m.Trailer)
}

func TestUnpackFullScreen(t *testing.T) {
	b := random(5600)
	m, err := Unpack(b, 160, 0)
	require.NoError(t, err)
	assert.Equal(t, 160, m.Width)
	assert.Equal(t, 140, m.Height)
	assert.Len(t, m.Pix, 22400)
	for i, p := range m.Pix {
		require.LessOrEqual(t, p, uint8(3), "pixel %d", i)
	}
	assert.Equal(t, 5600, RasterSize(160, 140))

	out, err := m.Pack()
	require.NoError(t, err)
	assert.Equal(t, b, out)
}

func TestUnpackTrailer(t *testing.T) {
	b := random(5605)
	m, err := Unpack(b, 160, 0)
	require.NoError(t, err)
	assert.Equal(t, 140, m.Height)
	assert.Equal(t, b[5600:], m.Trailer)

	out, err := m.Pack()
	require.NoError(t, err)
	assert.Equal(t, b, out)

	// Explicit height leaves the rest as trailer
	m, err = Unpack(b, 160, 100)
	require.NoError(t, err)
	assert.Len(t, m.Trailer, 5605-4000)
}

func TestUnpackErrors(t *testing.T) {
	for _, w := range []int{0, -4, 6, 161} {
		_, err := Unpack(make([]byte, 100), w, 0)
		assert.Equal(t, ErrWidth, err, "width %d", w)
	}

	_, err := Unpack(make([]byte, 5599), 160, 140)
	assert.True(t, errors.Is(err, ErrSize))

	_, err = Unpack(make([]byte, 100), 8, -1)
	assert.Equal(t, ErrHeight, err)
	_, err = NewBitmap(8, -1)
	assert.Equal(t, ErrHeight, err)
}

func TestSet(t *testing.T) {
	m, err := NewBitmap(8, 1)
	require.NoError(t, err)
	m.Set(0, 0, 3)
	m.Set(7, 0, 0xff)
	b, err := m.Pack()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xc0, 0x03}, b)
}
