package atr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLink(t *testing.T) {
	s := make([]byte, SectorSize)
	s[125] = 0x0d // file 3, high bits 01
	s[126] = 0x2c
	s[127] = 0x7d
	assert.Equal(t, Link{FileNo: 3, Next: 0x12c, Count: 125}, ParseLink(s))

	s[127] = 0xff
	assert.Equal(t, DataSize, ParseLink(s).Count)
}

func TestChain(t *testing.T) {
	d := Blank(720)
	sectors := []int{10, 300, 11, 719}
	writeChain(t, d, 1, sectors, pattern(4*DataSize))

	chain, err := d.Chain(10)
	require.NoError(t, err)
	assert.Equal(t, sectors, chain)

	chain, err = d.Chain(0)
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestChainSelfLoop(t *testing.T) {
	d := Blank(20)
	s := make([]byte, SectorSize)
	s[126] = 5
	s[127] = DataSize
	require.NoError(t, d.WriteSector(5, s))

	_, err := d.Chain(5)
	assert.True(t, errors.Is(err, ErrChainTooLong))
}

func TestChainCycle(t *testing.T) {
	d := Blank(20)
	writeChain(t, d, 0, []int{4, 5, 6}, pattern(3*DataSize))
	s, err := d.ReadSector(6)
	require.NoError(t, err)
	s[126] = 4
	require.NoError(t, d.WriteSector(6, s))

	_, err = d.Chain(4)
	assert.True(t, errors.Is(err, ErrChainTooLong))
}

func TestChainLongest(t *testing.T) {
	d := Blank(MaxChain + 1)
	sectors := make([]int, MaxChain)
	for i := range sectors {
		sectors[i] = i + 2
	}
	writeChain(t, d, 0, sectors, pattern(MaxChain*DataSize))

	chain, err := d.Chain(2)
	require.NoError(t, err)
	assert.Len(t, chain, MaxChain)
}

func TestChainOutOfImage(t *testing.T) {
	d := Blank(20)
	s := make([]byte, SectorSize)
	s[125] = 0x03
	s[126] = 0xff
	require.NoError(t, d.WriteSector(3, s))

	_, err := d.Chain(3)
	assert.True(t, errors.Is(err, ErrSectorRange))
}
