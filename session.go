package pokergenerator

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/astroforgit/pokergenerator/atr"
	"github.com/astroforgit/pokergenerator/mic"
	"github.com/astroforgit/pokergenerator/xor"
)

// SeedSource records where the seed of a picture came from.
type SeedSource string

const (
	// SeedOverride is a seed supplied by the caller
	SeedOverride SeedSource = "override"
	// SeedKnown is a seed recorded for the asset name
	SeedKnown SeedSource = "known"
	// SeedDetected is the best guess of xor.DetectSeed
	SeedDetected SeedSource = "detected"
)

// defaultSeeds are used when the asset database has no entry. OPP has large
// areas of detail and is not reliably detected.
var defaultSeeds = map[string]byte{
	"OPP": 0x00,
}

// Session is one disk image being edited.
type Session struct {
	editor *Editor
	name   string
	disk   *atr.Disk
}

// Name returns the file the image was opened from, if any.
func (s *Session) Name() string {
	return s.name
}

// Disk returns the underlying image.
func (s *Session) Disk() *atr.Disk {
	return s.disk
}

// Files returns the directory of the image.
func (s *Session) Files() (atr.Directory, error) {
	return s.disk.Directory()
}

// Pictures returns the directory entries that look like pictures.
func (s *Session) Pictures() (atr.Directory, error) {
	dir, err := s.disk.Directory()
	if err != nil {
		return nil, err
	}
	var pics atr.Directory
	for _, e := range dir {
		if e.IsPicture() {
			pics = append(pics, e)
		}
	}
	return pics, nil
}

// OpenOptions control how a picture is opened. Seed, if set, overrides both
// known and detected seeds. Width defaults to mic.DefaultWidth.
type OpenOptions struct {
	Seed  *byte
	Width int
}

// Picture is a deciphered picture file.
type Picture struct {
	File   *atr.File
	Seed   byte
	Source SeedSource
	Plain  []byte
	Bitmap *mic.Bitmap
}

// Image renders the picture with the given registers and master palette, see
// mic.Render. A nil regs uses mic.Identity.
func (p *Picture) Image(regs mic.Registers, pal color.Palette) *image.Paletted {
	if regs == nil {
		regs = mic.Identity
	}
	return mic.Render(p.Bitmap, regs, pal)
}

// Seed resolves the seed for f: override, then a seed known for its name,
// then detection.
func (s *Session) Seed(f *atr.File, override *byte) (byte, SeedSource, error) {
	if override != nil {
		return *override, SeedOverride, nil
	}

	if s.editor.db != nil {
		seed, ok, err := s.editor.db.KnownSeed(f.Filename())
		if err != nil {
			return 0, "", err
		}
		if ok {
			return seed, SeedKnown, nil
		}
	}
	if seed, ok := defaultSeeds[f.Filename()]; ok {
		return seed, SeedKnown, nil
	}

	seed, score := xor.DetectSeed(f.Data)
	s.editor.logger.Printf("Detected seed %#02x for \"%s\" (%d of %d solid bytes)\n", seed, f.Filename(), score, min(len(f.Data), xor.SampleSize))
	return seed, SeedDetected, nil
}

// OpenPicture reads, deciphers and unpacks the file called name.
func (s *Session) OpenPicture(name string, o *OpenOptions) (*Picture, error) {
	if o == nil {
		o = &OpenOptions{}
	}
	width := o.Width
	if width == 0 {
		width = mic.DefaultWidth
	}

	f, err := s.disk.Open(name)
	if err != nil {
		return nil, err
	}

	seed, source, err := s.Seed(f, o.Seed)
	if err != nil {
		return nil, err
	}

	plain := xor.Transform(f.Data, seed)
	bm, err := mic.Unpack(plain, width, 0)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", f.Filename(), err)
	}

	return &Picture{
		File:   f,
		Seed:   seed,
		Source: source,
		Plain:  plain,
		Bitmap: bm,
	}, nil
}

// Commit encodes m over the picture with finder f, keeping any bytes after
// the raster and the register of every pixel whose colour is unchanged, and
// writes the ciphered result back into the image. m must have
// the same dimensions as the picture. A nil f uses the nearest mode 15
// colour.
func (s *Session) Commit(p *Picture, m image.Image, f mic.Finder) error {
	if b := m.Bounds(); b.Dx() != p.Bitmap.Width || b.Dy() != p.Bitmap.Height {
		return fmt.Errorf("%w: picture is %dx%d, image is %dx%d", mic.ErrSize, p.Bitmap.Width, p.Bitmap.Height, b.Dx(), b.Dy())
	}

	var b bytes.Buffer
	if err := mic.Encode(&b, m, &mic.EncodeOptions{
		Finder:   f,
		Size:     len(p.Plain),
		Original: p.Plain,
		Bitmap:   p.Bitmap,
	}); err != nil {
		return err
	}

	bm, err := mic.Unpack(b.Bytes(), p.Bitmap.Width, p.Bitmap.Height)
	if err != nil {
		return err
	}
	if err := s.write(p, b.Bytes()); err != nil {
		return err
	}
	p.Bitmap = bm
	return nil
}

// Save packs the picture's bitmap, after any pixel edits, and writes it back
// into the image.
func (s *Session) Save(p *Picture) error {
	b, err := p.Bitmap.Pack()
	if err != nil {
		return err
	}
	return s.write(p, b)
}

func (s *Session) write(p *Picture, plain []byte) error {
	if err := s.disk.WriteFile(p.File, xor.Transform(plain, p.Seed)); err != nil {
		return err
	}
	p.Plain = append(p.Plain[:0], plain...)
	s.editor.logger.Printf("Updated \"%s\" (%d bytes, seed %#02x)\n", p.File.Filename(), len(plain), p.Seed)
	return nil
}

// Bytes returns the image including all committed changes.
func (s *Session) Bytes() []byte {
	return s.disk.Bytes()
}

// SaveFile writes the image to file.
func (s *Session) SaveFile(file string) error {
	return os.WriteFile(file, s.disk.Bytes(), 0o644)
}
