package pokergenerator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/astroforgit/pokergenerator/xor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeImage(t *testing.T, file string, files []testFile) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(file), 0o755))
	require.NoError(t, os.WriteFile(file, buildDisk(t, files).Bytes(), 0o644))
}

func TestScan(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.SetSeed("OP1.1", 0x32))

	dir := t.TempDir()
	plain := picture(7)
	writeImage(t, filepath.Join(dir, "side1.atr"), []testFile{
		{name: "OP1", ext: "1", start: 100, data: xor.Transform(plain, 0x32)},
		{name: "OP1", ext: "2", start: 200, data: xor.Transform(plain, 0x40)},
	})
	writeImage(t, filepath.Join(dir, "sub", "SIDE2.ATR"), []testFile{
		{name: "TITLE2", start: 100, data: xor.Transform(plain[:5600], 0xbb)},
	})
	writeImage(t, filepath.Join(dir, ".hidden", "side3.atr"), []testFile{
		{name: "OP9", ext: "1", start: 100, data: plain},
	})
	writeImage(t, filepath.Join(dir, "empty.atr"), nil)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("OP1.1"), 0o644))

	require.NoError(t, New(db, nil).Scan(dir))

	assets, err := db.Assets()
	require.NoError(t, err)
	require.Len(t, assets, 3)

	tables := []struct {
		image, name string
		seed        byte
		source      SeedSource
		size        int
	}{
		{filepath.Join(dir, "side1.atr"), "OP1.1", 0x32, SeedKnown, 5605},
		{filepath.Join(dir, "side1.atr"), "OP1.2", 0x40, SeedDetected, 5605},
		{filepath.Join(dir, "sub", "SIDE2.ATR"), "TITLE2", 0xbb, SeedDetected, 5600},
	}

	for i, table := range tables {
		assert.Equal(t, table.image, assets[i].Image)
		assert.Equal(t, table.name, assets[i].Name)
		assert.Equal(t, table.seed, assets[i].Seed, table.name)
		assert.Equal(t, table.source, assets[i].Source, table.name)
		assert.Equal(t, table.size, assets[i].Size)
		assert.Equal(t, xor.SampleSize, assets[i].Score)
	}
}

func TestScanBadImage(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.atr"), make([]byte, 64), 0o644))

	assert.Error(t, New(newTestDB(t), nil).Scan(dir))
}

func TestScanNoDB(t *testing.T) {
	assert.Equal(t, ErrNoDB, New(nil, nil).Scan(t.TempDir()))
}
