/*
Package pokergenerator is a library for extracting and replacing the pictures
stored on the Atari 8-bit Strip Poker disk.

The pictures live in ordinary DOS 2 files on an ATR image, ciphered with a
position-incrementing XOR key and packed as MIC bitmaps. An Editor opens
disk images as Sessions; each Session owns its image buffer and all changes
are made to it in memory until saved.
*/
package pokergenerator

import (
	"io"
	"log"
	"os"

	"github.com/astroforgit/pokergenerator/atr"
)

// Editor holds what is shared between sessions.
type Editor struct {
	db     *AssetDB
	logger *log.Logger
}

// New returns an Editor. db may be nil, in which case no known seeds are
// looked up and Scan is unavailable.
func New(db *AssetDB, logger *log.Logger) *Editor {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Editor{
		db:     db,
		logger: logger,
	}
}

// Load starts a session on the ATR image read from r.
func (e *Editor) Load(r io.Reader) (*Session, error) {
	d, err := atr.Load(r)
	if err != nil {
		return nil, err
	}
	return &Session{
		editor: e,
		disk:   d,
	}, nil
}

// Open starts a session on the ATR image stored in file.
func (e *Editor) Open(file string) (*Session, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := e.Load(f)
	if err != nil {
		return nil, err
	}
	s.name = file
	return s, nil
}
