package cartridge

// mbc5 implements the MBC5 mapper: a full 9-bit ROM bank register (bank 0
// is a valid, uncoerced selection, unlike MBC1/MBC3) split across two
// write registers, a 4-bit RAM bank register, and an optional rumble motor
// wired through bit 3 of the RAM-bank write.
type mbc5 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBank    uint16 // 9 bits
	ramBank    uint8  // 4 bits (bit 3 is rumble on RUMBLE variants)

	romBanks int
	rumble   bool
	onRumble func(on bool)
}

func newMBC5(rom []byte, h Header) *mbc5 {
	return &mbc5{
		rom:      rom,
		ram:      make([]byte, h.RAMSize),
		romBank:  1,
		romBanks: h.ROMBanks,
		rumble:   h.Type.HasRumble(),
	}
}

func (m *mbc5) SetRumbleCallback(fn func(bool)) {
	m.onRumble = fn
}

func (m *mbc5) effectiveRAMBank() uint8 {
	if m.rumble {
		return m.ramBank & 0x07
	}
	return m.ramBank & 0x0F
}

func (m *mbc5) Read(addr uint16) uint8 {
	switch {
	case addr < 0x4000:
		if int(addr) < len(m.rom) {
			return m.rom[addr]
		}
	case addr < 0x8000:
		bank := int(m.romBank) & romBankMask(max(m.romBanks, 2))
		off := bank*0x4000 + int(addr-0x4000)
		if off < len(m.rom) {
			return m.rom[off]
		}
	case addr >= 0xA000 && addr < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		off := int(m.effectiveRAMBank())*0x2000 + int(addr-0xA000)
		if off < len(m.ram) {
			return m.ram[off]
		}
	}
	return 0xFF
}

func (m *mbc5) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case addr < 0x3000:
		m.romBank = m.romBank&0x100 | uint16(value)
	case addr < 0x4000:
		m.romBank = m.romBank&0xFF | uint16(value&0x01)<<8
	case addr < 0x6000:
		m.ramBank = value & 0x0F
		if m.rumble && m.onRumble != nil {
			m.onRumble(value&0x08 != 0)
		}
	case addr >= 0xA000 && addr < 0xC000:
		if m.ramEnabled && len(m.ram) > 0 {
			off := int(m.effectiveRAMBank())*0x2000 + int(addr-0xA000)
			if off < len(m.ram) {
				m.ram[off] = value
			}
		}
	}
}

func (m *mbc5) SaveRAM() []byte {
	if len(m.ram) == 0 {
		return nil
	}
	return append([]byte(nil), m.ram...)
}

func (m *mbc5) LoadRAM(data []byte) {
	copy(m.ram, data)
}
