package atr

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestDisk returns an image holding a 5605 byte file OP1.1 spread over
// 45 non-contiguous sectors with a short final sector, and a two sector file
// with short sectors in the middle.
func newTestDisk(t *testing.T) (*Disk, []byte) {
	t.Helper()
	d := Blank(720)

	data := pattern(5605)
	sectors := make([]int, 45)
	for i := range sectors {
		sectors[i] = 600 + i*2
	}
	writeChain(t, d, 0, sectors, data)

	// Second file with 10 and 20 byte sectors
	for i, n := range []int{20, 21} {
		b := make([]byte, SectorSize)
		copy(b, bytes.Repeat([]byte{byte(i + 1)}, 125))
		b[125] = 1 << 2
		if i == 0 {
			b[126] = 21
		}
		b[127] = byte(10 * (i + 1))
		require.NoError(t, d.WriteSector(n, b))
	}

	require.NoError(t, d.WriteDirectory([]Entry{
		{Flag: 0x42, Count: 45, Start: 600, Name: "OP1", Ext: "1"},
		{Flag: 0x42, Count: 2, Start: 20, Name: "SHORT"},
	}))
	return d, data
}

func TestReadFile(t *testing.T) {
	d, data := newTestDisk(t)

	f, err := d.Open("OP1.1")
	require.NoError(t, err)
	assert.Equal(t, 5605, f.Size())
	assert.Equal(t, data, f.Data)
	assert.Equal(t, 600, f.Start)

	f, err = d.Open("short")
	require.NoError(t, err)
	assert.Equal(t, 30, f.Size())
	assert.Equal(t, append(bytes.Repeat([]byte{1}, 10), bytes.Repeat([]byte{2}, 20)...), f.Data)

	_, err = d.Open("NOPE")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestWriteFile(t *testing.T) {
	d, data := newTestDisk(t)
	f, err := d.Open("SHORT")
	require.NoError(t, err)

	before := append([]byte(nil), d.Bytes()...)
	replacement := bytes.Repeat([]byte{0xee}, 30)
	require.NoError(t, d.WriteFile(f, replacement))
	assert.Equal(t, replacement, f.Data)

	g, err := d.Open("SHORT")
	require.NoError(t, err)
	assert.Equal(t, replacement, g.Data)

	// Only the payload bytes changed, trailers and padding did not
	s, err := d.ReadSector(20)
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xee}, 10), s[:10])
	assert.Equal(t, before[HeaderSize+19*SectorSize+10:HeaderSize+20*SectorSize], s[10:])

	// The other file is untouched
	o, err := d.Open("OP1.1")
	require.NoError(t, err)
	assert.Equal(t, data, o.Data)
}

func TestWriteFileRoundTrip(t *testing.T) {
	d, data := newTestDisk(t)
	before := append([]byte(nil), d.Bytes()...)

	f, err := d.Open("OP1.1")
	require.NoError(t, err)
	require.NoError(t, d.WriteFile(f, data))
	assert.Equal(t, before, d.Bytes())
}

func TestWriteFileSizeMismatch(t *testing.T) {
	d, data := newTestDisk(t)
	f, err := d.Open("OP1.1")
	require.NoError(t, err)
	before := append([]byte(nil), d.Bytes()...)

	for _, n := range []int{len(data) - 1, len(data) + 1, 0} {
		err := d.WriteFile(f, make([]byte, n))
		assert.True(t, errors.Is(err, ErrSizeMismatch), "length %d", n)
		assert.Equal(t, before, d.Bytes(), "length %d", n)
	}
}

func TestWriteFileShortChain(t *testing.T) {
	d, _ := newTestDisk(t)
	f, err := d.Open("SHORT")
	require.NoError(t, err)

	// Shrink the last sector's count behind the file's back
	s, err := d.ReadSector(21)
	require.NoError(t, err)
	s[127] = 5
	require.NoError(t, d.WriteSector(21, s))
	before := append([]byte(nil), d.Bytes()...)

	err = d.WriteFile(f, make([]byte, 30))
	assert.True(t, errors.Is(err, ErrShortWrite))
	assert.Equal(t, before, d.Bytes())
}
