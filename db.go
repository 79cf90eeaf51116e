package pokergenerator

import (
	"crypto/sha1"
	"database/sql"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// AssetDB is the catalog of known seeds and of pictures found by Scan.
type AssetDB struct {
	db *sql.DB
}

// Asset is one picture file found on a disk image.
type Asset struct {
	Image  string
	Name   string
	SHA1   string
	Size   int
	Seed   byte
	Source SeedSource
	Score  int
}

// NewAssetDB opens, creating if necessary, the database in file.
func NewAssetDB(file string) (*AssetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on&_busy_timeout=5000", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS seed (name TEXT PRIMARY KEY NOT NULL, seed INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS asset (id INTEGER PRIMARY KEY NOT NULL, image TEXT NOT NULL, name TEXT NOT NULL, sha1 TEXT NOT NULL, size INTEGER NOT NULL, seed INTEGER NOT NULL, source TEXT NOT NULL, score INTEGER NOT NULL, UNIQUE(image, name))"); err != nil {
		return nil, err
	}

	return &AssetDB{
		db: db,
	}, nil
}

// Close closes the database.
func (db *AssetDB) Close() error {
	return db.db.Close()
}

type xmlSeeds struct {
	XMLName xml.Name   `xml:"Seeds"`
	Assets  []xmlAsset `xml:"Asset"`
}

type xmlAsset struct {
	XMLName xml.Name `xml:"Asset"`
	Name    string   `xml:"Name"`
	Seed    string   `xml:"Seed"`
}

// parseSeed accepts decimal or 0x prefixed hexadecimal.
func parseSeed(s string) (byte, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 8)
	if err != nil {
		return 0, err
	}
	return byte(v), nil
}

// ImportXML replaces the known seeds with those listed in file.
func (db *AssetDB) ImportXML(file string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	var seeds xmlSeeds
	if err := xml.Unmarshal(b, &seeds); err != nil {
		return err
	}

	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM seed"); err != nil {
		return err
	}

	for _, a := range seeds.Assets {
		seed, err := parseSeed(a.Seed)
		if err != nil {
			return fmt.Errorf("seed for %s: %w", a.Name, err)
		}
		if _, err := tx.Exec("INSERT OR REPLACE INTO seed (name, seed) VALUES (?, ?)", strings.ToUpper(a.Name), seed); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// SetSeed records the seed for the asset called name.
func (db *AssetDB) SetSeed(name string, seed byte) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO seed (name, seed) VALUES (?, ?)", strings.ToUpper(name), seed); err != nil {
		return err
	}
	return nil
}

// KnownSeed returns the seed recorded for name.
func (db *AssetDB) KnownSeed(name string) (byte, bool, error) {
	var seed int
	switch err := db.db.QueryRow("SELECT seed FROM seed WHERE name = ?", strings.ToUpper(name)).Scan(&seed); err {
	case sql.ErrNoRows:
		return 0, false, nil
	case nil:
		return byte(seed), true, nil
	default:
		return 0, false, err
	}
}

// AddAsset records a, replacing any earlier record for the same file on the
// same image.
func (db *AssetDB) AddAsset(a Asset) error {
	if _, err := db.db.Exec("INSERT OR REPLACE INTO asset (image, name, sha1, size, seed, source, score) VALUES (?, ?, ?, ?, ?, ?, ?)", a.Image, a.Name, a.SHA1, a.Size, a.Seed, string(a.Source), a.Score); err != nil {
		return err
	}
	return nil
}

// Assets returns every recorded asset ordered by image and name.
func (db *AssetDB) Assets() ([]Asset, error) {
	rows, err := db.db.Query("SELECT image, name, sha1, size, seed, source, score FROM asset ORDER BY image, name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []Asset
	for rows.Next() {
		var a Asset
		var seed int
		var source string
		if err := rows.Scan(&a.Image, &a.Name, &a.SHA1, &a.Size, &seed, &source, &a.Score); err != nil {
			return nil, err
		}
		a.Seed, a.Source = byte(seed), SeedSource(source)
		assets = append(assets, a)
	}
	return assets, rows.Err()
}

func digest(b []byte) string {
	return fmt.Sprintf("%X", sha1.Sum(b))
}
