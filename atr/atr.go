/*
Package atr implements access to Atari 8-bit ATR disk images formatted with
Atari DOS 2.

An image is a 16 byte header followed by 128 byte sectors numbered from 1.
The last three bytes of every data sector link it to the next sector of the
same file:

	byte 125  bits 7-2 directory slot of the owning file, bits 1-0 high bits of next sector
	byte 126  low eight bits of next sector
	byte 127  number of valid data bytes in this sector (0-125)

A next sector of zero ends the chain. The directory occupies eight sectors
starting at sector 361, each holding eight 16 byte entries:

	[flag:1][sectors:u16 LE][start:u16 LE][name:8][ext:3]

The package works on the image in memory; nothing is written anywhere until
the caller saves Bytes.
*/
package atr

import "errors"

const (
	// HeaderSize is the size of the ATR preamble
	HeaderSize = 16
	// SectorSize is the size of every sector on a single density disk
	SectorSize = 128
	// DataSize is the maximum number of payload bytes in a sector
	DataSize = 125
	// MaxChain is the most sectors a single file can span
	MaxChain = 720

	// highest sector a ten bit link can address
	maxLink = 0x3ff

	// Magic is the value of the first two header bytes, little-endian
	Magic = 0x0296

	// DirectoryStart is the first directory sector
	DirectoryStart = 361
	// DirectorySectors is the number of consecutive directory sectors
	DirectorySectors = 8
	// EntrySize is the size of a directory entry
	EntrySize        = 16
	entriesPerSector = SectorSize / EntrySize
)

var (
	// ErrBadHeader is returned when an image does not carry a valid ATR header
	ErrBadHeader = errors.New("atr: invalid header")
	// ErrSectorRange is returned for sector numbers outside the image
	ErrSectorRange = errors.New("atr: sector out of range")
	// ErrShortSector is returned when writing anything other than a whole sector
	ErrShortSector = errors.New("atr: sector data must be 128 bytes")
	// ErrChainTooLong is returned when following a sector chain does not
	// terminate, the image is corrupt or the chain is cyclic
	ErrChainTooLong = errors.New("atr: sector chain too long, corrupt or cyclic chain")
	// ErrShortEntry is returned when decoding less than a whole directory entry
	ErrShortEntry = errors.New("atr: directory entry must be 16 bytes")
	// ErrBadName is returned when a filename cannot be stored in a directory entry
	ErrBadName = errors.New("atr: invalid filename")
	// ErrEntryRange is returned when a sector count or start sector cannot be
	// stored in a directory entry
	ErrEntryRange = errors.New("atr: directory entry count or start out of range")
	// ErrDirectoryFull is returned when there are more entries than slots
	ErrDirectoryFull = errors.New("atr: directory full")
	// ErrNotFound is returned when a file is not in the directory
	ErrNotFound = errors.New("atr: file not found")
	// ErrSizeMismatch is returned when replacing a file with data of a
	// different length
	ErrSizeMismatch = errors.New("atr: data length does not match file size")
	// ErrShortWrite is returned when the sector chain cannot hold all of the
	// data being written
	ErrShortWrite = errors.New("atr: not all data was written")
)
