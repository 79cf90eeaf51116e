package atr

import "fmt"

// File is the logical content of a file as read from the image. The size is
// remembered so that writes can be checked against it, the sector count in
// the directory is not an exact byte count.
type File struct {
	Entry
	Data []byte
	size int
}

// Size returns the number of bytes the file held when it was read.
func (f *File) Size() int {
	return f.size
}

// ReadFile follows the chain of e and concatenates the valid bytes of each
// sector.
func (d *Disk) ReadFile(e Entry) (*File, error) {
	chain, err := d.Chain(e.Start)
	if err != nil {
		return nil, err
	}

	var data []byte
	for _, n := range chain {
		sector, err := d.ReadSector(n)
		if err != nil {
			return nil, err
		}
		data = append(data, sector[:ParseLink(sector).Count]...)
	}

	return &File{
		Entry: e,
		Data:  data,
		size:  len(data),
	}, nil
}

// Open reads the file called filename.
func (d *Disk) Open(filename string) (*File, error) {
	dir, err := d.Directory()
	if err != nil {
		return nil, err
	}
	e, err := dir.Find(filename)
	if err != nil {
		return nil, err
	}
	return d.ReadFile(e)
}

// WriteFile replaces the content of f with data in place. The sector chain
// and each sector's byte count are left exactly as they are so data must be
// the same length as the file. Nothing is written if the length differs or
// the chain cannot hold all of data.
func (d *Disk) WriteFile(f *File, data []byte) error {
	if len(data) != f.size {
		return fmt.Errorf("%w: %s is %d bytes, got %d", ErrSizeMismatch, f.Filename(), f.size, len(data))
	}

	chain, err := d.Chain(f.Start)
	if err != nil {
		return err
	}

	sectors := make([][]byte, len(chain))
	var capacity int
	for i, n := range chain {
		if sectors[i], err = d.ReadSector(n); err != nil {
			return err
		}
		capacity += ParseLink(sectors[i]).Count
	}
	if capacity < len(data) {
		return fmt.Errorf("%w: %s holds %d of %d bytes", ErrShortWrite, f.Filename(), capacity, len(data))
	}

	var placed int
	for i, n := range chain {
		placed += copy(sectors[i][:ParseLink(sectors[i]).Count], data[placed:])
		if err := d.WriteSector(n, sectors[i]); err != nil {
			return err
		}
	}
	if placed != len(data) {
		return fmt.Errorf("%w: %s placed %d of %d bytes", ErrShortWrite, f.Filename(), placed, len(data))
	}

	f.Data = append(f.Data[:0], data...)
	return nil
}
