/*
Package col implements the per-scanline colour register tables that
accompany MIC bitmaps.

A table stores one 256 byte block per hardware colour register, indexed by
scanline. The common layout has five blocks, the background register BAK
followed by the playfield registers PF0 to PF3, for 1280 bytes in all. Some
tools write only the four playfield blocks. A 2-bit pixel value selects one of
the four playfield registers of its scanline and the register value indexes
the master palette.
*/
package col

import (
	"errors"
	"fmt"
)

const (
	// Lines is the number of scanlines a table can describe
	Lines = 256
	// Registers is the number of playfield registers per scanline
	Registers = 4
)

// Layout describes which register blocks a table holds.
type Layout int

const (
	// LayoutBAK is BAK, PF0, PF1, PF2, PF3
	LayoutBAK Layout = iota
	// LayoutPlayfield is PF0, PF1, PF2, PF3
	LayoutPlayfield
)

func (l Layout) blocks() int {
	if l == LayoutPlayfield {
		return Registers
	}
	return Registers + 1
}

// Size returns the size of a complete table in the layout.
func (l Layout) Size() int {
	return l.blocks() * Lines
}

// ErrScanlineRange is returned by the strict accessors when the table does
// not hold every register for a scanline.
var ErrScanlineRange = errors.New("col: scanline outside table")

// Table is a colour register table.
type Table struct {
	layout Layout
	b      []byte
}

// New returns a zeroed, complete table.
func New(layout Layout) *Table {
	return &Table{
		layout: layout,
		b:      make([]byte, layout.Size()),
	}
}

// Decode wraps b, which may be truncated. A table of exactly 1024 bytes is
// taken to be LayoutPlayfield, anything else LayoutBAK.
func Decode(b []byte) *Table {
	layout := LayoutBAK
	if len(b) == LayoutPlayfield.Size() {
		layout = LayoutPlayfield
	}
	return &Table{
		layout: layout,
		b:      append([]byte(nil), b...),
	}
}

// Layout returns the layout of the table.
func (t *Table) Layout() Layout {
	return t.layout
}

func (t *Table) offset(reg, y int) int {
	if t.layout == LayoutBAK {
		reg++
	}
	return reg*Lines + y
}

// ForScanline returns the playfield register values for scanline y. Any
// register the table does not hold reads as 0 so truncated or missing tables
// display as black rather than failing. Encoders should use Scanline.
func (t *Table) ForScanline(y int) [Registers]byte {
	var r [Registers]byte
	if t == nil || y < 0 || y >= Lines {
		return r
	}
	for i := range r {
		if o := t.offset(i, y); o < len(t.b) {
			r[i] = t.b[o]
		}
	}
	return r
}

// Scanline is like ForScanline but fails if any register is missing.
func (t *Table) Scanline(y int) ([Registers]byte, error) {
	var r [Registers]byte
	if y < 0 || y >= Lines || t.offset(Registers-1, y) >= len(t.b) {
		return r, fmt.Errorf("%w: %d", ErrScanlineRange, y)
	}
	return t.ForScanline(y), nil
}

// SetScanline sets the playfield registers for scanline y.
func (t *Table) SetScanline(y int, r [Registers]byte) error {
	if y < 0 || y >= Lines || t.offset(Registers-1, y) >= len(t.b) {
		return fmt.Errorf("%w: %d", ErrScanlineRange, y)
	}
	for i, v := range r {
		t.b[t.offset(i, y)] = v
	}
	return nil
}

// Background returns the BAK register for scanline y, or 0 when the table
// has no background block.
func (t *Table) Background(y int) byte {
	if t.layout != LayoutBAK || y < 0 || y >= Lines || y >= len(t.b) {
		return 0
	}
	return t.b[y]
}

// SetBackground sets the BAK register for scanline y.
func (t *Table) SetBackground(y int, v byte) error {
	if t.layout != LayoutBAK || y < 0 || y >= Lines || y >= len(t.b) {
		return fmt.Errorf("%w: %d", ErrScanlineRange, y)
	}
	t.b[y] = v
	return nil
}

// MarshalBinary returns the encoded table.
func (t *Table) MarshalBinary() ([]byte, error) {
	return append([]byte(nil), t.b...), nil
}

// UnmarshalBinary decodes a table, see Decode.
func (t *Table) UnmarshalBinary(b []byte) error {
	*t = *Decode(b)
	return nil
}
