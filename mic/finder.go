package mic

import (
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
)

// Finder chooses the pixel value for a colour on a given scanline.
type Finder interface {
	Find(c color.Color, y int) uint8
}

// IndexFinder is implemented by finders that can map a master palette index
// exactly. Encode uses it for *image.Paletted images drawn with the same
// palette, which keeps registers holding identical colours apart. FindIndex
// returns prefer when that register holds i, otherwise the first register
// that does.
type IndexFinder interface {
	Finder
	Palette() color.Palette
	FindIndex(i uint8, y int, prefer uint8) (uint8, bool)
}

// Checker is implemented by finders that can only encode some scanlines.
type Checker interface {
	Check(height int) error
}

// candidater exposes the four colours a finder chooses between on a
// scanline.
type candidater interface {
	candidates(y int) [4]color.Color
}

func sameColor(c1, c2 color.Color) bool {
	r1, g1, b1, a1 := c1.RGBA()
	r2, g2, b2, a2 := c2.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2 && a1 == a2
}

// Copied from color.sqDiff
func sqDiff(x, y uint32) uint32 {
	d := x - y
	return (d * d) >> 2
}

func distance(c1, c2 color.Color) uint32 {
	r1, g1, b1, _ := c1.RGBA()
	r2, g2, b2, _ := c2.RGBA()
	return sqDiff(r1, r2) + sqDiff(g1, g2) + sqDiff(b1, b2)
}

// closest returns the position of the colour in candidates nearest to c,
// earliest first on ties.
func closest(c color.Color, candidates [4]color.Color) uint8 {
	var best uint8
	bestSum := uint32(1<<32 - 1)
	for i, cc := range candidates {
		if sum := distance(c, cc); sum < bestSum {
			best, bestSum = uint8(i), sum
			if sum == 0 {
				break
			}
		}
	}
	return best
}

type nearest [4]color.Color

// Nearest matches every pixel against the same four colours. Palettes with
// fewer colours are padded with black.
func Nearest(p color.Palette) Finder {
	var n nearest
	for i := range n {
		n[i] = color.RGBA{0, 0, 0, 0xff}
		if i < len(p) {
			n[i] = p[i]
		}
	}
	return n
}

func (n nearest) Find(c color.Color, _ int) uint8 {
	return closest(c, n)
}

func (n nearest) candidates(int) [4]color.Color {
	return n
}

type scanline struct {
	regs Registers
	p    color.Palette
	rows map[int][4]color.Color
}

// Scanline matches pixels against the four register colours of their own
// scanline.
func Scanline(regs Registers, p color.Palette) IndexFinder {
	return &scanline{
		regs: regs,
		p:    p,
		rows: make(map[int][4]color.Color),
	}
}

func (s *scanline) colors(y int) [4]color.Color {
	if c, ok := s.rows[y]; ok {
		return c
	}
	var c [4]color.Color
	for i, r := range s.regs.ForScanline(y) {
		c[i] = color.RGBA{0, 0, 0, 0xff}
		if int(r) < len(s.p) {
			c[i] = s.p[r]
		}
	}
	s.rows[y] = c
	return c
}

func (s *scanline) Find(c color.Color, y int) uint8 {
	return closest(c, s.colors(y))
}

func (s *scanline) candidates(y int) [4]color.Color {
	return s.colors(y)
}

// Check fails if the registers cannot describe every one of the first height
// scanlines.
func (s *scanline) Check(height int) error {
	strict, ok := s.regs.(StrictRegisters)
	if !ok {
		return nil
	}
	for y := 0; y < height; y++ {
		if _, err := strict.Scanline(y); err != nil {
			return err
		}
	}
	return nil
}

func (s *scanline) Palette() color.Palette {
	return s.p
}

func (s *scanline) FindIndex(i uint8, y int, prefer uint8) (uint8, bool) {
	regs := s.regs.ForScanline(y)
	if prefer < 4 && regs[prefer] == i {
		return prefer, true
	}
	for j, r := range regs {
		if r == i {
			return uint8(j), true
		}
	}
	return 0, false
}

// Quantize picks four colours for m by median cut and maps each to its
// nearest entry in the master palette p. Unused registers are set to the
// entry nearest black.
func Quantize(m image.Image, p color.Palette) Uniform {
	q := quantize.MedianCutQuantizer{}
	colors := q.Quantize(make(color.Palette, 0, 4), m)

	var u Uniform
	black := uint8(p.Index(color.Black))
	for i := range u {
		u[i] = black
		if i < len(colors) {
			u[i] = uint8(p.Index(colors[i]))
		}
	}
	return u
}
