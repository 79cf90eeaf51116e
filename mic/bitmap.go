package mic

import (
	"bytes"
	"fmt"

	"github.com/icza/bitio"
)

// Bitmap is an unpacked MIC raster. Pix holds one pixel value (0-3) per byte,
// row by row.
type Bitmap struct {
	Width, Height int
	Pix           []uint8
	Trailer       []byte
}

// NewBitmap returns a blank bitmap.
func NewBitmap(width, height int) (*Bitmap, error) {
	if width <= 0 || width%PixelsPerByte != 0 {
		return nil, ErrWidth
	}
	if height < 0 {
		return nil, ErrHeight
	}
	return &Bitmap{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height),
	}, nil
}

// RasterSize returns the number of bytes a packed raster of the given size
// occupies.
func RasterSize(width, height int) int {
	return width / PixelsPerByte * height
}

// Unpack decodes packed pixels. If height is 0 it is the number of whole rows
// in b. Anything after the raster is kept as the trailer.
func Unpack(b []byte, width, height int) (*Bitmap, error) {
	if width <= 0 || width%PixelsPerByte != 0 {
		return nil, ErrWidth
	}
	if height == 0 {
		height = len(b) / (width / PixelsPerByte)
	}

	m, err := NewBitmap(width, height)
	if err != nil {
		return nil, err
	}

	n := RasterSize(width, height)
	if len(b) < n {
		return nil, fmt.Errorf("%w: %dx%d needs %d bytes, got %d", ErrSize, width, height, n, len(b))
	}

	r := bitio.NewReader(bytes.NewReader(b[:n]))
	for i := range m.Pix {
		v, err := r.ReadBits(bitsPerPixel)
		if err != nil {
			return nil, err
		}
		m.Pix[i] = uint8(v)
	}
	m.Trailer = append([]byte(nil), b[n:]...)

	return m, nil
}

// Pack encodes the bitmap followed by its trailer.
func (m *Bitmap) Pack() ([]byte, error) {
	var b bytes.Buffer
	b.Grow(RasterSize(m.Width, m.Height) + len(m.Trailer))

	w := bitio.NewWriter(&b)
	for _, p := range m.Pix {
		if err := w.WriteBits(uint64(p&0x03), bitsPerPixel); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	b.Write(m.Trailer)

	return b.Bytes(), nil
}

// At returns the pixel value at (x, y).
func (m *Bitmap) At(x, y int) uint8 {
	return m.Pix[y*m.Width+x]
}

// Set sets the pixel value at (x, y).
func (m *Bitmap) Set(x, y int, v uint8) {
	m.Pix[y*m.Width+x] = v & 0x03
}
