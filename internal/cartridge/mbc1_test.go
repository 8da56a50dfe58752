package cartridge

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// make2MiBROM builds a 2 MiB (128 bank) MBC1 ROM whose banks are each
// stamped with their own bank index at offset 0, so reads can be checked
// against the expected bank number directly.
func make2MiBROM() []byte {
	const bankSize = 0x4000
	rom := make([]byte, 128*bankSize)
	for bank := 0; bank < 128; bank++ {
		rom[bank*bankSize] = byte(bank)
	}
	rom[0x147] = 0x01 // MBC1
	rom[0x148] = 0x06 // 2MB, 128 banks
	rom[0x149] = 0x00 // no RAM
	return rom
}

// TestMBC1_ModeSwitch exercises spec §8 scenario 6: in mode 0, $0000
// always reads bank 0 regardless of the upper bank bits; in mode 1 with
// bank2=0b10 it reads bank 0x40.
func TestMBC1_ModeSwitch(t *testing.T) {
	rom := make2MiBROM()
	h := ParseHeader(rom)
	m := newMBC1(rom, h)

	m.Write(0x4000, 0x02) // bank2 = 0b10

	// Mode 0 (default): $0000 is always bank 0.
	require.Equal(t, uint8(0x00), m.Read(0x0000))

	// Switch to mode 1: $0000 now follows bank2<<5 = 0x40.
	m.Write(0x6000, 0x01)
	require.Equal(t, uint8(0x40), m.Read(0x0000))
}

// TestMBC1_BankZeroCoercion checks the "low 5 bits never zero" quirk on
// the $4000-mapped window.
func TestMBC1_BankZeroCoercion(t *testing.T) {
	rom := make2MiBROM()
	h := ParseHeader(rom)
	m := newMBC1(rom, h)

	m.Write(0x2000, 0x00) // would select bank 0; coerced to 1
	require.Equal(t, uint8(0x01), m.Read(0x4000))

	m.Write(0x2000, 0x00) // request bank 0x20 with bank2=1
	m.Write(0x4000, 0x01)
	require.Equal(t, uint8(0x21), m.Read(0x4000))
}

func TestMBC1_RAMEnableGate(t *testing.T) {
	rom := make2MiBROM()
	rom[0x149] = 0x02 // 8KB RAM
	h := ParseHeader(rom)
	m := newMBC1(rom, h)

	require.Equal(t, uint8(0xFF), m.Read(0xA000))
	m.Write(0xA000, 0x42)
	require.Equal(t, uint8(0xFF), m.Read(0xA000), "writes while disabled must be dropped")

	m.Write(0x0000, 0x0A)
	m.Write(0xA000, 0x42)
	require.Equal(t, uint8(0x42), m.Read(0xA000))
}
