// Package model identifies which hardware revision the emulator is acting
// as, since the CPU's post-boot register values and a handful of PPU/APU
// behaviours differ between DMG and CGB.
package model

// Model is a Game Boy hardware revision.
type Model uint8

const (
	// DMG is the original Game Boy.
	DMG Model = iota
	// CGB is the Game Boy Color.
	CGB
)

// String implements fmt.Stringer.
func (m Model) String() string {
	switch m {
	case CGB:
		return "CGB"
	default:
		return "DMG"
	}
}

// FromString parses the --model flag value ("auto" is resolved by the
// caller against the cartridge header, not here).
func FromString(s string) Model {
	switch s {
	case "cgb", "gbc":
		return CGB
	default:
		return DMG
	}
}
