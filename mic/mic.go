/*
Package mic implements a decoder and encoder for MIC bitmaps, the packed
2-bit-per-pixel format of ANTIC mode E (BASIC graphics mode 15).

Each row is width/4 bytes and each byte holds four pixels, the leftmost in
the two most significant bits. A pixel value selects one of the four
playfield colour registers of its scanline, and the register value indexes
the 256 colour master palette. Register values come from a COL table (see
package col) or are fixed for the whole picture.

Files may carry bytes after the packed raster. They have no known meaning and
are kept as an opaque trailer so that a decode and encode round trip
reproduces the file exactly. The Strip Poker pictures are 160 by 140 pixels,
5600 bytes of raster, with a 5 byte trailer on most of them.
*/
package mic

import "errors"

const (
	// PixelsPerByte is the number of pixels packed into each byte
	PixelsPerByte = 4
	bitsPerPixel  = 8 / PixelsPerByte

	// DefaultWidth is the width of a full screen mode 15 picture
	DefaultWidth = 160
)

var (
	// ErrWidth is returned for widths that are not a positive multiple of 4
	ErrWidth = errors.New("mic: width must be a positive multiple of 4")
	// ErrHeight is returned for negative heights
	ErrHeight = errors.New("mic: height must not be negative")
	// ErrSize is returned when the data is too small for the bitmap
	ErrSize = errors.New("mic: not enough image data")
	// ErrTrailer is returned when encoding into a buffer larger than the
	// raster without the original bytes to fill the remainder
	ErrTrailer = errors.New("mic: original data too short to preserve trailer")
)

// Registers supplies the four playfield register values of each scanline.
// *col.Table implements it.
type Registers interface {
	ForScanline(y int) [4]byte
}

// StrictRegisters is implemented by register sources that may not hold every
// register for a scanline. Encoding checks every row with Scanline before
// writing anything. *col.Table implements it.
type StrictRegisters interface {
	Registers
	Scanline(y int) ([4]byte, error)
}

// Uniform uses the same four register values on every scanline.
type Uniform [4]byte

// ForScanline implements Registers.
func (u Uniform) ForScanline(int) [4]byte {
	return u
}

// Identity maps pixel values straight onto the first four palette entries,
// for use with a four colour palette such as palette.Mode15.
var Identity = Uniform{0, 1, 2, 3}
