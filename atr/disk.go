package atr

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Header is the decoded ATR preamble.
type Header struct {
	Magic      uint16
	Paragraphs uint32 // image size excluding the header, in 16 byte units
	SectorSize uint16
}

// Disk is an ATR image held in memory. All sector access works directly on
// the underlying buffer.
type Disk struct {
	buf []byte
}

// New wraps buf without checking the header. The Disk takes ownership of buf.
func New(buf []byte) *Disk {
	return &Disk{buf: buf}
}

// Blank returns a zero filled image of the given number of sectors with a
// valid header.
func Blank(sectors int) *Disk {
	buf := make([]byte, HeaderSize+sectors*SectorSize)
	p := uint32(sectors * SectorSize / 16)
	binary.LittleEndian.PutUint16(buf[0:], Magic)
	binary.LittleEndian.PutUint16(buf[2:], uint16(p))
	binary.LittleEndian.PutUint16(buf[4:], SectorSize)
	buf[6] = byte(p >> 16)
	return New(buf)
}

// Load reads a whole image from r and checks it is a single density ATR.
func Load(r io.Reader) (*Disk, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	d := New(buf)
	h, err := d.Header()
	if err != nil {
		return nil, err
	}
	if h.Magic != Magic {
		return nil, fmt.Errorf("%w: magic %#04x", ErrBadHeader, h.Magic)
	}
	if h.SectorSize != SectorSize {
		return nil, fmt.Errorf("%w: unsupported sector size %d", ErrBadHeader, h.SectorSize)
	}

	return d, nil
}

// LoadFile reads the image stored in file.
func LoadFile(file string) (*Disk, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Load(f)
}

// Header decodes the ATR preamble.
func (d *Disk) Header() (Header, error) {
	if len(d.buf) < HeaderSize {
		return Header{}, fmt.Errorf("%w: image is %d bytes", ErrBadHeader, len(d.buf))
	}
	return Header{
		Magic:      binary.LittleEndian.Uint16(d.buf[0:]),
		Paragraphs: uint32(binary.LittleEndian.Uint16(d.buf[2:])) | uint32(d.buf[6])<<16,
		SectorSize: binary.LittleEndian.Uint16(d.buf[4:]),
	}, nil
}

// Bytes returns the image including any changes made to it.
func (d *Disk) Bytes() []byte {
	return d.buf
}

// Sectors returns the number of whole sectors in the image.
func (d *Disk) Sectors() int {
	if len(d.buf) < HeaderSize {
		return 0
	}
	return (len(d.buf) - HeaderSize) / SectorSize
}

func (d *Disk) offset(n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: %d", ErrSectorRange, n)
	}
	off := HeaderSize + (n-1)*SectorSize
	if off+SectorSize > len(d.buf) {
		return 0, fmt.Errorf("%w: %d", ErrSectorRange, n)
	}
	return off, nil
}

// ReadSector returns a copy of sector n.
func (d *Disk) ReadSector(n int) ([]byte, error) {
	off, err := d.offset(n)
	if err != nil {
		return nil, err
	}
	b := make([]byte, SectorSize)
	copy(b, d.buf[off:])
	return b, nil
}

// WriteSector replaces sector n with data, which must be exactly one sector.
func (d *Disk) WriteSector(n int, data []byte) error {
	if len(data) != SectorSize {
		return ErrShortSector
	}
	off, err := d.offset(n)
	if err != nil {
		return err
	}
	copy(d.buf[off:off+SectorSize], data)
	return nil
}
