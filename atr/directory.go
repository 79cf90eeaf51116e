package atr

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"
)

// Directory entry flag bits
const (
	FlagOpen    = 0x01
	FlagDOS2    = 0x02
	FlagLocked  = 0x20
	FlagInUse   = 0x40
	FlagDeleted = 0x80
)

// Entry is a single directory entry.
type Entry struct {
	Slot  int // position in the directory, 0-63
	Flag  byte
	Count int // length in sectors
	Start int // first sector
	Name  string
	Ext   string
}

// Filename returns NAME or NAME.EXT.
func (e Entry) Filename() string {
	if e.Ext != "" {
		return e.Name + "." + e.Ext
	}
	return e.Name
}

// IsPicture reports whether the entry looks like one of the game's pictures.
func (e Entry) IsPicture() bool {
	return (strings.HasPrefix(e.Name, "OP") || e.Name == "TITLE2") && e.Count > 40
}

func decodeName(b []byte) string {
	s := make([]byte, len(b))
	for i, c := range b {
		s[i] = c & 0x7f
	}
	return strings.TrimRight(string(s), " ")
}

func encodeName(b []byte, name string) error {
	if len(name) > len(b) {
		return fmt.Errorf("%w: %q longer than %d characters", ErrBadName, name, len(b))
	}
	for i := 0; i < len(name); i++ {
		if name[i] >= 0x80 || name[i] == ' ' || name[i] == '.' {
			return fmt.Errorf("%w: %q", ErrBadName, name)
		}
	}
	copy(b, name)
	for i := len(name); i < len(b); i++ {
		b[i] = ' '
	}
	return nil
}

// UnmarshalBinary decodes a 16 byte directory entry. Slot is left unchanged.
func (e *Entry) UnmarshalBinary(b []byte) error {
	if len(b) < EntrySize {
		return ErrShortEntry
	}
	e.Flag = b[0]
	e.Count = int(binary.LittleEndian.Uint16(b[1:]))
	e.Start = int(binary.LittleEndian.Uint16(b[3:]))
	e.Name = decodeName(b[5:13])
	e.Ext = decodeName(b[13:16])
	return nil
}

// MarshalBinary encodes the entry into its 16 byte form.
func (e Entry) MarshalBinary() ([]byte, error) {
	if e.Count < 0 || e.Count > 0xffff || e.Start < 0 || e.Start > maxLink {
		return nil, fmt.Errorf("%w: count %d, start %d", ErrEntryRange, e.Count, e.Start)
	}
	b := make([]byte, EntrySize)
	b[0] = e.Flag
	binary.LittleEndian.PutUint16(b[1:], uint16(e.Count))
	binary.LittleEndian.PutUint16(b[3:], uint16(e.Start))
	if err := encodeName(b[5:13], e.Name); err != nil {
		return nil, err
	}
	if err := encodeName(b[13:16], e.Ext); err != nil {
		return nil, err
	}
	return b, nil
}

// Directory is the list of live files in directory order.
type Directory []Entry

// Find returns the entry matching filename, ignoring case.
func (d Directory) Find(filename string) (Entry, error) {
	for _, e := range d {
		if strings.EqualFold(e.Filename(), filename) {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, filename)
}

// Directory reads every directory sector and returns the live entries in slot
// order. Free (flag 0) and deleted (flag 0x80) slots are skipped; a free slot
// does not end the scan.
func (d *Disk) Directory() (Directory, error) {
	var dir Directory
	for i := 0; i < DirectorySectors; i++ {
		sector, err := d.ReadSector(DirectoryStart + i)
		if err != nil {
			return nil, err
		}
		for j := 0; j < entriesPerSector; j++ {
			b := sector[j*EntrySize : (j+1)*EntrySize]
			if b[0] == 0 || b[0] == FlagDeleted {
				continue
			}
			e := Entry{Slot: i*entriesPerSector + j}
			if err := e.UnmarshalBinary(b); err != nil {
				return nil, err
			}
			dir = append(dir, e)
		}
	}
	return dir, nil
}

// WriteDirectory stores entries in consecutive slots from the first and
// clears the remaining slots. The Slot field of each entry is ignored.
func (d *Disk) WriteDirectory(entries []Entry) error {
	if len(entries) > DirectorySectors*entriesPerSector {
		return ErrDirectoryFull
	}

	var b bytes.Buffer
	for _, e := range entries {
		eb, err := e.MarshalBinary()
		if err != nil {
			return err
		}
		b.Write(eb)
	}
	b.Write(make([]byte, DirectorySectors*SectorSize-b.Len()))

	for i := 0; i < DirectorySectors; i++ {
		if err := d.WriteSector(DirectoryStart+i, b.Next(SectorSize)); err != nil {
			return err
		}
	}
	return nil
}
