// Package rom loads cartridge and boot ROM images from disk, including
// unwrapping ZIP and 7z archives, and defines the sentinel error
// taxonomy the CLI surfaces on init failure (spec §7).
package rom

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"

	"github.com/danhawkins/gopherboy/internal/cartridge"
)

var (
	// ErrROMMissing is returned when the ROM file cannot be opened.
	ErrROMMissing = errors.New("rom: file missing or unreadable")
	// ErrROMTooSmall is returned when a ROM is too short to hold a header.
	ErrROMTooSmall = errors.New("rom: file too small to contain a cartridge header")
	// ErrNoROMInArchive is returned when a ZIP/7z archive contains no
	// .gb/.gbc entry.
	ErrNoROMInArchive = errors.New("rom: archive contains no .gb or .gbc entry")
	// ErrBootROMSize is returned when a supplied boot ROM is neither 256
	// (DMG) nor 2304 (CGB) bytes.
	ErrBootROMSize = errors.New("rom: boot ROM must be 256 or 2304 bytes")
)

const headerEnd = 0x150

// Load reads a cartridge image from path, which may be a raw .gb/.gbc
// file or a .zip/.7z archive containing exactly one such entry. It
// does not construct the MBC; call cartridge.New on the result.
func Load(path string) ([]byte, error) {
	data, err := readWholeFile(path)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zip":
		data, err = extractFromZip(data)
	case ".7z":
		data, err = extractFrom7z(data)
	}
	if err != nil {
		return nil, err
	}

	if len(data) < headerEnd {
		return nil, fmt.Errorf("%w: %d bytes", ErrROMTooSmall, len(data))
	}
	return data, nil
}

// LoadBootROM reads a boot ROM image and validates its size.
func LoadBootROM(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := readWholeFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) != 256 && len(data) != 2304 {
		return nil, fmt.Errorf("%w: got %d bytes", ErrBootROMSize, len(data))
	}
	return data, nil
}

func readWholeFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrROMMissing, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrROMMissing, err)
	}
	return data, nil
}

func isROMEntry(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".gb") || strings.HasSuffix(lower, ".gbc")
}

func extractFromZip(archive []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("rom: opening zip: %w", err)
	}
	for _, f := range r.File {
		if !isROMEntry(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("rom: reading %s from zip: %w", f.Name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, ErrNoROMInArchive
}

func extractFrom7z(archive []byte) ([]byte, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("rom: opening 7z: %w", err)
	}
	for _, f := range r.File {
		if !isROMEntry(f.Name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("rom: reading %s from 7z: %w", f.Name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, ErrNoROMInArchive
}

// SaveFilename derives the sidecar save-file path for the given ROM
// path and parsed header (spec §6: suffix ".sav").
func SaveFilename(romPath string, h cartridge.Header) string {
	dir := filepath.Dir(romPath)
	cart := cartridge.Cartridge{Header: h}
	return filepath.Join(dir, cart.SaveFilename())
}
