/*
Package palette implements the 256 colour master palette of the Atari 8-bit
computers.

Colour register values are an index into the master palette; the high nibble
selects the hue and the low nibble the luminance. Palettes are usually shared
as 768 byte Adobe Color Table (.act) files holding 256 RGB triples.
*/
package palette

import (
	"image/color"
	"io"
	"math"
	"os"
)

const (
	// Colors is the number of entries in a master palette
	Colors = 256
	// Size is the size of an encoded master palette
	Size = Colors * 3
)

// Master is a full hardware palette.
type Master [Colors]color.RGBA

// Mode15 is the fixed four colour palette used to display the game pictures
// when no colour registers are known: black, skin, blue and white.
var Mode15 = color.Palette{
	color.RGBA{0, 0, 0, 0xff},
	color.RGBA{255, 180, 140, 0xff},
	color.RGBA{80, 80, 255, 0xff},
	color.RGBA{255, 255, 255, 0xff},
}

// Default returns an approximation of the NTSC palette. Hue 0 is grey, hues
// 1-15 are spaced evenly around the colour wheel.
func Default() *Master {
	var m Master
	for h := 0; h < 16; h++ {
		for l := 0; l < 16; l++ {
			y := float64(l) / 15
			var i, q float64
			if h > 0 {
				a := float64(h-1) * 2 * math.Pi / 15
				i = 0.2 * math.Cos(a)
				q = 0.2 * math.Sin(a)
			}
			m[h<<4|l] = color.RGBA{
				clamp(y + 0.956*i + 0.621*q),
				clamp(y - 0.272*i - 0.647*q),
				clamp(y - 1.106*i + 1.703*q),
				0xff,
			}
		}
	}
	return &m
}

func clamp(v float64) uint8 {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 0xff
	}
	return uint8(math.Round(v * 0xff))
}

// Palette returns the master palette as a color.Palette.
func (m *Master) Palette() color.Palette {
	p := make(color.Palette, Colors)
	for i, c := range m {
		p[i] = c
	}
	return p
}

// MarshalBinary encodes the palette as 768 bytes of RGB triples.
func (m *Master) MarshalBinary() ([]byte, error) {
	b := make([]byte, 0, Size)
	for _, c := range m {
		b = append(b, c.R, c.G, c.B)
	}
	return b, nil
}

// UnmarshalBinary decodes RGB triples. Colours missing from a short table are
// black and anything after the 256th colour, such as the optional ACT
// trailer, is ignored.
func (m *Master) UnmarshalBinary(b []byte) error {
	for i := range m {
		m[i] = color.RGBA{0, 0, 0, 0xff}
		if j := i * 3; j+3 <= len(b) {
			m[i] = color.RGBA{b[j], b[j+1], b[j+2], 0xff}
		}
	}
	return nil
}

// Load reads an ACT palette from r.
func Load(r io.Reader) (*Master, error) {
	b, err := io.ReadAll(io.LimitReader(r, Size))
	if err != nil {
		return nil, err
	}
	m := new(Master)
	if err := m.UnmarshalBinary(b); err != nil {
		return nil, err
	}
	return m, nil
}

// LoadFile reads the ACT palette stored in file.
func LoadFile(file string) (*Master, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}
