package mic

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/astroforgit/pokergenerator/palette"
)

// EncodeOptions control Encode.
//
// Size is the total number of bytes to write; zero means just the raster.
// When Size is larger than the raster the remainder is copied from Original
// at the same offsets, so Original is normally the decoded bytes the picture
// came from. Bitmap, if set, is the bitmap the image was rendered from; pixels
// whose colour is unchanged keep their register even when another register
// on the scanline holds the same colour.
type EncodeOptions struct {
	Finder   Finder
	Size     int
	Original []byte
	Bitmap   *Bitmap
}

func samePalette(p1, p2 color.Palette) bool {
	if len(p1) != len(p2) {
		return false
	}
	for i := range p1 {
		if !sameColor(p1[i], p2[i]) {
			return false
		}
	}
	return true
}

// ToBitmap converts m to a bitmap using f, or Nearest(palette.Mode15) if f is
// nil. The width of m must be a multiple of 4. If prev has the same size as m
// its pixel values are kept wherever they still select the colour in m.
func ToBitmap(m image.Image, f Finder, prev *Bitmap) (*Bitmap, error) {
	if f == nil {
		f = Nearest(palette.Mode15)
	}

	b := m.Bounds()
	bm, err := NewBitmap(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	if c, ok := f.(Checker); ok {
		if err := c.Check(bm.Height); err != nil {
			return nil, err
		}
	}

	if prev != nil && (prev.Width != bm.Width || prev.Height != bm.Height) {
		prev = nil
	}

	var exact IndexFinder
	pm, _ := m.(*image.Paletted)
	if xf, ok := f.(IndexFinder); ok && pm != nil && samePalette(pm.Palette, xf.Palette()) {
		exact = xf
	}
	cf, _ := f.(candidater)

	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			var old uint8
			if prev != nil {
				old = prev.At(x, y)
			}
			if exact != nil {
				if v, ok := exact.FindIndex(pm.ColorIndexAt(b.Min.X+x, b.Min.Y+y), y, old); ok {
					bm.Set(x, y, v)
					continue
				}
			}
			c := m.At(b.Min.X+x, b.Min.Y+y)
			if prev != nil && cf != nil && sameColor(c, cf.candidates(y)[old]) {
				bm.Set(x, y, old)
				continue
			}
			bm.Set(x, y, f.Find(c, y))
		}
	}
	return bm, nil
}

// Encode writes the Image m to w in MIC format.
func Encode(w io.Writer, m image.Image, o *EncodeOptions) error {
	if o == nil {
		o = &EncodeOptions{}
	}

	bm, err := ToBitmap(m, o.Finder, o.Bitmap)
	if err != nil {
		return err
	}

	n := RasterSize(bm.Width, bm.Height)
	switch {
	case o.Size == 0 || o.Size == n:
	case o.Size < n:
		return fmt.Errorf("%w: %dx%d needs %d bytes, have %d", ErrSize, bm.Width, bm.Height, n, o.Size)
	case len(o.Original) < o.Size:
		return fmt.Errorf("%w: need %d bytes, have %d", ErrTrailer, o.Size, len(o.Original))
	default:
		bm.Trailer = o.Original[n:o.Size]
	}

	b, err := bm.Pack()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
