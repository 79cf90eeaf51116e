package col

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayouts(t *testing.T) {
	b := make([]byte, 1280)
	for reg := 0; reg < 5; reg++ {
		for y := 0; y < Lines; y++ {
			b[reg*Lines+y] = byte(reg<<4 | y&0x0f)
		}
	}

	tb := Decode(b)
	assert.Equal(t, LayoutBAK, tb.Layout())
	assert.Equal(t, [Registers]byte{0x13, 0x23, 0x33, 0x43}, tb.ForScanline(3))
	assert.Equal(t, byte(0x03), tb.Background(3))

	tp := Decode(b[:1024])
	assert.Equal(t, LayoutPlayfield, tp.Layout())
	assert.Equal(t, [Registers]byte{0x03, 0x13, 0x23, 0x33}, tp.ForScanline(3))
	assert.Equal(t, byte(0), tp.Background(3))
}

func TestUnderrun(t *testing.T) {
	var missing *Table
	assert.Equal(t, [Registers]byte{}, missing.ForScanline(0))

	b := make([]byte, 1280)
	for i := range b {
		b[i] = 0x0f
	}
	tb := Decode(b)
	assert.Equal(t, [Registers]byte{}, tb.ForScanline(-1))
	assert.Equal(t, [Registers]byte{}, tb.ForScanline(Lines))

	// Truncated in the middle of the PF3 block
	tb = Decode(b[:4*Lines+100])
	assert.Equal(t, [Registers]byte{0x0f, 0x0f, 0x0f, 0x0f}, tb.ForScanline(99))
	assert.Equal(t, [Registers]byte{0x0f, 0x0f, 0x0f, 0x00}, tb.ForScanline(100))

	_, err := tb.Scanline(99)
	assert.NoError(t, err)
	_, err = tb.Scanline(100)
	assert.True(t, errors.Is(err, ErrScanlineRange))
	_, err = tb.Scanline(Lines)
	assert.True(t, errors.Is(err, ErrScanlineRange))
}

func TestSetScanline(t *testing.T) {
	for _, layout := range []Layout{LayoutBAK, LayoutPlayfield} {
		tb := New(layout)
		require.NoError(t, tb.SetScanline(139, [Registers]byte{0x00, 0x36, 0x86, 0x0e}))
		assert.Equal(t, [Registers]byte{0x00, 0x36, 0x86, 0x0e}, tb.ForScanline(139))
		assert.Equal(t, [Registers]byte{}, tb.ForScanline(138))

		b, err := tb.MarshalBinary()
		require.NoError(t, err)
		require.Len(t, b, layout.Size())

		again := Decode(b)
		assert.Equal(t, layout, again.Layout())
		assert.Equal(t, tb.ForScanline(139), again.ForScanline(139))

		assert.True(t, errors.Is(tb.SetScanline(Lines, [Registers]byte{}), ErrScanlineRange))
	}

	tb := New(LayoutBAK)
	require.NoError(t, tb.SetBackground(5, 0x94))
	assert.Equal(t, byte(0x94), tb.Background(5))
	assert.True(t, errors.Is(New(LayoutPlayfield).SetBackground(5, 1), ErrScanlineRange))
}

func TestDecodeCopies(t *testing.T) {
	b := make([]byte, LayoutPlayfield.Size())
	b[3*Lines+7] = 0x86

	tb := Decode(b)
	b[3*Lines+7] = 0
	assert.Equal(t, [Registers]byte{0, 0, 0, 0x86}, tb.ForScanline(7))

	var u Table
	require.NoError(t, u.UnmarshalBinary(b[:600]))
	assert.Equal(t, LayoutBAK, u.Layout())
	_, err := u.Scanline(0)
	assert.True(t, errors.Is(err, ErrScanlineRange))
}
