package gameboy

import "github.com/danhawkins/gopherboy/internal/model"

// applyPostBootState seeds CPU registers and IO registers to the
// documented values the real boot ROM leaves behind, for the case
// where no boot ROM image was supplied and execution starts directly
// at the cartridge entry point, $0100 (spec §4.7).
func (gb *System) applyPostBootState() {
	gb.CPU.SP = 0xFFFE
	gb.CPU.PC = 0x0100

	if gb.Model == model.CGB {
		gb.CPU.A, gb.CPU.F = 0x11, 0x80
		gb.CPU.B, gb.CPU.C = 0x00, 0x00
		gb.CPU.D, gb.CPU.E = 0xFF, 0x56
		gb.CPU.H, gb.CPU.L = 0x00, 0x0D
	} else {
		gb.CPU.A, gb.CPU.F = 0x01, 0xB0
		gb.CPU.B, gb.CPU.C = 0x00, 0x13
		gb.CPU.D, gb.CPU.E = 0x00, 0xD8
		gb.CPU.H, gb.CPU.L = 0x01, 0x4D
	}

	for _, w := range []struct {
		addr uint16
		v    uint8
	}{
		{0xFF26, 0xF1}, // NR52 first: the APU must be powered on before
		// any other sound register write takes effect.
		{0xFF05, 0x00}, {0xFF06, 0x00}, {0xFF07, 0x00},
		{0xFF10, 0x80}, {0xFF11, 0xBF}, {0xFF12, 0xF3}, {0xFF14, 0xBF},
		{0xFF16, 0x3F}, {0xFF17, 0x00}, {0xFF19, 0xBF},
		{0xFF1A, 0x7F}, {0xFF1B, 0xFF}, {0xFF1C, 0x9F}, {0xFF1E, 0xBF},
		{0xFF20, 0xFF}, {0xFF21, 0x00}, {0xFF22, 0x00}, {0xFF23, 0xBF},
		{0xFF24, 0x77}, {0xFF25, 0xF3},
		{0xFF40, 0x91}, {0xFF42, 0x00}, {0xFF43, 0x00}, {0xFF45, 0x00},
		{0xFF47, 0xFC}, {0xFF48, 0xFF}, {0xFF49, 0xFF},
		{0xFF4A, 0x00}, {0xFF4B, 0x00}, {0xFFFF, 0x00},
	} {
		gb.Bus.Write(w.addr, w.v)
	}
}
