package rom

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danhawkins/gopherboy/internal/cartridge"
)

func writeTempROM(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func minimalROM(title string) []byte {
	rom := make([]byte, 0x8000)
	copy(rom[0x134:0x144], title)
	rom[0x147] = 0x00 // ROM ONLY
	rom[0x148] = 0x00 // 32KB, 2 banks
	rom[0x149] = 0x00 // no RAM
	return rom
}

func TestLoad_RawROM(t *testing.T) {
	dir := t.TempDir()
	path := writeTempROM(t, dir, "game.gb", minimalROM("GOPHERBOY"))

	data, err := Load(path)
	require.NoError(t, err)
	require.Len(t, data, 0x8000)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.gb"))
	require.ErrorIs(t, err, ErrROMMissing)
}

func TestLoad_TooSmall(t *testing.T) {
	dir := t.TempDir()
	path := writeTempROM(t, dir, "tiny.gb", []byte{1, 2, 3})

	_, err := Load(path)
	require.ErrorIs(t, err, ErrROMTooSmall)
}

func TestLoad_Zip(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("game.gbc")
	require.NoError(t, err)
	_, err = w.Write(minimalROM("ZIPPED"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := writeTempROM(t, dir, "game.zip", buf.Bytes())

	data, err := Load(path)
	require.NoError(t, err)
	require.Len(t, data, 0x8000)
}

func TestLoad_ZipNoROMEntry(t *testing.T) {
	dir := t.TempDir()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("readme.txt")
	require.NoError(t, err)
	_, err = w.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	path := writeTempROM(t, dir, "empty.zip", buf.Bytes())

	_, err = Load(path)
	require.ErrorIs(t, err, ErrNoROMInArchive)
}

func TestLoadBootROM_ValidSizes(t *testing.T) {
	dir := t.TempDir()

	dmg := writeTempROM(t, dir, "dmg_boot.bin", make([]byte, 256))
	data, err := LoadBootROM(dmg)
	require.NoError(t, err)
	require.Len(t, data, 256)

	cgb := writeTempROM(t, dir, "cgb_boot.bin", make([]byte, 2304))
	data, err = LoadBootROM(cgb)
	require.NoError(t, err)
	require.Len(t, data, 2304)
}

func TestLoadBootROM_BadSize(t *testing.T) {
	dir := t.TempDir()
	path := writeTempROM(t, dir, "boot.bin", make([]byte, 100))

	_, err := LoadBootROM(path)
	require.ErrorIs(t, err, ErrBootROMSize)
}

func TestLoadBootROM_Empty(t *testing.T) {
	data, err := LoadBootROM("")
	require.NoError(t, err)
	require.Nil(t, data)
}

func TestSaveFilename(t *testing.T) {
	h := cartridge.ParseHeader(minimalROM("SAVETEST"))
	got := SaveFilename("/roms/savetest.gb", h)
	require.Equal(t, filepath.Dir("/roms/savetest.gb"), filepath.Dir(got))
	require.True(t, filepathHasSuffix(got, ".sav"))
}

func filepathHasSuffix(path, suffix string) bool {
	return len(path) >= len(suffix) && path[len(path)-len(suffix):] == suffix
}
