// Package cartridge implements ROM header parsing and the memory bank
// controllers (ROM-only, MBC1, MBC2, MBC3, MBC5) that decode CPU reads and
// writes in the $0000-$7FFF and $A000-$BFFF ranges.
package cartridge

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrUnsupportedMBC is returned by New when the header names a mapper this
// emulator does not implement.
var ErrUnsupportedMBC = errors.New("cartridge: unsupported memory bank controller")

// MBC is the interface every memory bank controller implements. Reads and
// writes are in full CPU address space; the controller is responsible for
// mapping into its owned ROM/RAM slices.
type MBC interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)

	// SaveRAM returns the external RAM (and RTC state, if any) for
	// persistence. Returns nil if the controller has nothing to save; it
	// does not check the header's battery flag.
	SaveRAM() []byte
	// LoadRAM restores previously-saved RAM/RTC state.
	LoadRAM(data []byte)
}

// RumbleMBC is implemented by controllers that drive a rumble motor
// (MBC5+RUMBLE).
type RumbleMBC interface {
	SetRumbleCallback(func(on bool))
}

// Cartridge wraps a parsed header and its bank controller.
type Cartridge struct {
	Header Header
	MBC    MBC
}

// New parses rom's header and constructs the matching MBC.
func New(rom []byte) (*Cartridge, error) {
	h := ParseHeader(rom)

	var mbc MBC
	switch {
	case h.Type == TypeROMOnly || h.Type == TypeROMRAM || h.Type == TypeROMRAMBattery:
		mbc = newROM(rom, h)
	case h.Type == TypeMBC1 || h.Type == TypeMBC1RAM || h.Type == TypeMBC1RAMBattery:
		mbc = newMBC1(rom, h)
	case h.Type == TypeMBC2 || h.Type == TypeMBC2Battery:
		mbc = newMBC2(rom, h)
	case h.Type == TypeMBC3 || h.Type == TypeMBC3RAM || h.Type == TypeMBC3RAMBattery ||
		h.Type == TypeMBC3TimerBattery || h.Type == TypeMBC3TimerRAMBattery:
		mbc = newMBC3(rom, h)
	case h.Type == TypeMBC5 || h.Type == TypeMBC5RAM || h.Type == TypeMBC5RAMBattery ||
		h.Type == TypeMBC5Rumble || h.Type == TypeMBC5RumbleRAM || h.Type == TypeMBC5RumbleRAMBatt:
		mbc = newMBC5(rom, h)
	default:
		return nil, fmt.Errorf("%w: %s (0x%02X)", ErrUnsupportedMBC, h.Type, uint8(h.Type))
	}

	return &Cartridge{Header: h, MBC: mbc}, nil
}

// SaveFilename derives a stable save-file name from the cartridge title,
// matching the teacher's md5-of-title scheme so two copies of the same ROM
// (different filenames) share a save slot.
func (c *Cartridge) SaveFilename() string {
	sum := md5.Sum([]byte(c.Header.Title))
	return hex.EncodeToString(sum[:]) + ".sav"
}

// romBankMask is shared bank-count arithmetic: given a header's ROMBanks,
// mask a requested bank number into range.
func romBankMask(banks int) int {
	return banks - 1
}
