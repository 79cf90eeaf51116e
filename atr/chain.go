package atr

import "fmt"

// Link is the decoded trailer of a data sector.
type Link struct {
	FileNo byte // directory slot of the owning file, informational only
	Next   int
	Count  int
}

// ParseLink decodes the trailer bytes of sector. Counts above DataSize are
// clamped.
func ParseLink(sector []byte) Link {
	l := Link{
		FileNo: sector[125] >> 2,
		Next:   int(sector[125]&0x03)<<8 | int(sector[126]),
		Count:  int(sector[127]),
	}
	if l.Count > DataSize {
		l.Count = DataSize
	}
	return l
}

// Chain follows the links from start and returns the sectors visited in
// order, start included. A start of zero is an empty chain.
func (d *Disk) Chain(start int) ([]int, error) {
	var chain []int
	for n := start; n != 0; {
		if len(chain) == MaxChain {
			return nil, fmt.Errorf("%w: starting at sector %d", ErrChainTooLong, start)
		}
		sector, err := d.ReadSector(n)
		if err != nil {
			return nil, err
		}
		chain = append(chain, n)
		n = ParseLink(sector).Next
	}
	return chain, nil
}
