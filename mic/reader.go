package mic

import (
	"image"
	"image/color"
	"io"

	"github.com/astroforgit/pokergenerator/palette"
)

// Options describe how to interpret a MIC bitmap. A nil *Options or zero
// fields use the defaults: DefaultWidth, height from the data length,
// Identity registers and palette.Mode15.
type Options struct {
	Width     int
	Height    int
	Registers Registers
	Palette   color.Palette
}

func (o *Options) width() int {
	if o == nil || o.Width == 0 {
		return DefaultWidth
	}
	return o.Width
}

func (o *Options) height() int {
	if o == nil {
		return 0
	}
	return o.Height
}

func (o *Options) registers() Registers {
	if o == nil || o.Registers == nil {
		return Identity
	}
	return o.Registers
}

func (o *Options) palette() color.Palette {
	if o == nil || o.Palette == nil {
		return palette.Mode15
	}
	return o.Palette
}

// Render converts m to an image using the register values of each scanline
// as palette indices. Register values beyond the end of p display as black.
func Render(m *Bitmap, regs Registers, p color.Palette) *image.Paletted {
	rows := make([][4]byte, m.Height)
	last := len(p) - 1
	for y := range rows {
		rows[y] = regs.ForScanline(y)
		for _, r := range rows[y] {
			if int(r) > last {
				last = int(r)
			}
		}
	}

	if last >= len(p) {
		padded := make(color.Palette, last+1)
		copy(padded, p)
		for i := len(p); i < len(padded); i++ {
			padded[i] = color.RGBA{0, 0, 0, 0xff}
		}
		p = padded
	}

	img := image.NewPaletted(image.Rect(0, 0, m.Width, m.Height), p)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			img.SetColorIndex(x, y, rows[y][m.At(x, y)])
		}
	}
	return img
}

// Decode reads a MIC bitmap from r and returns it as an image whose palette
// is the master palette and whose pixels are master palette indices. Any
// trailer is discarded; use Unpack to keep it.
func Decode(r io.Reader, o *Options) (*image.Paletted, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m, err := Unpack(b, o.width(), o.height())
	if err != nil {
		return nil, err
	}
	return Render(m, o.registers(), o.palette()), nil
}

// DecodeConfig returns the colour model and dimensions of a MIC bitmap
// without decoding the pixels.
func DecodeConfig(r io.Reader, o *Options) (image.Config, error) {
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return image.Config{}, err
	}
	w := o.width()
	if w <= 0 || w%PixelsPerByte != 0 {
		return image.Config{}, ErrWidth
	}
	h := o.height()
	if h == 0 {
		h = int(n) / (w / PixelsPerByte)
	}
	if int(n) < RasterSize(w, h) {
		return image.Config{}, ErrSize
	}
	return image.Config{
		ColorModel: o.palette(),
		Width:      w,
		Height:     h,
	}, nil
}
