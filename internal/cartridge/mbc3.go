package cartridge

import (
	"encoding/binary"
	"time"
)

// rtc holds the MBC3 real-time clock's registers plus the wall-clock
// bookkeeping needed to advance them when the cartridge is not running.
// Persistence resolves the spec's open question on RTC save format: the
// counters plus a Unix-seconds timestamp of the last update are appended
// to the battery RAM blob.
type rtc struct {
	seconds, minutes, hours uint8
	days                    uint16 // 9 bits: low 8 in DL, high 1 + halt + carry in DH
	halt                    bool
	dayCarry                bool

	latched bool
	// latched copies, returned while latched
	lSeconds, lMinutes, lHours uint8
	lDays                      uint16
	lHalt, lDayCarry           bool

	selectWrite uint8 // tracks the 0->1 latch sequence
	lastUnix    int64
}

func (r *rtc) advance(now int64) {
	if r.halt || r.lastUnix == 0 {
		r.lastUnix = now
		return
	}
	delta := now - r.lastUnix
	if delta <= 0 {
		return
	}
	r.lastUnix = now

	total := int64(r.seconds) + int64(r.minutes)*60 + int64(r.hours)*3600 + int64(r.days)*86400 + delta
	r.seconds = uint8(total % 60)
	total /= 60
	r.minutes = uint8(total % 60)
	total /= 60
	r.hours = uint8(total % 24)
	total /= 24
	if total > 511 {
		r.dayCarry = true
		total %= 512
	}
	r.days = uint16(total)
}

// latch copies the live counters into the latched snapshot the CPU reads
// from, on a 0->1 write to $6000-$7FFF.
func (r *rtc) latch(now int64) {
	r.advance(now)
	r.lSeconds, r.lMinutes, r.lHours, r.lDays = r.seconds, r.minutes, r.hours, r.days
	r.lHalt, r.lDayCarry = r.halt, r.dayCarry
}

func (r *rtc) readRegister(reg uint8) uint8 {
	switch reg {
	case 0x08:
		return r.lSeconds
	case 0x09:
		return r.lMinutes
	case 0x0A:
		return r.lHours
	case 0x0B:
		return uint8(r.lDays)
	case 0x0C:
		v := uint8(r.lDays>>8) & 0x01
		if r.lHalt {
			v |= 0x40
		}
		if r.lDayCarry {
			v |= 0x80
		}
		return v
	}
	return 0xFF
}

func (r *rtc) writeRegister(reg, value uint8, now int64) {
	r.advance(now)
	switch reg {
	case 0x08:
		r.seconds = value % 60
	case 0x09:
		r.minutes = value % 60
	case 0x0A:
		r.hours = value % 24
	case 0x0B:
		r.days = r.days&0x100 | uint16(value)
	case 0x0C:
		r.days = r.days&0xFF | uint16(value&0x01)<<8
		r.halt = value&0x40 != 0
		r.dayCarry = value&0x80 != 0
	}
}

func (r *rtc) marshal() []byte {
	out := make([]byte, 17)
	out[0], out[1], out[2] = r.seconds, r.minutes, r.hours
	binary.LittleEndian.PutUint16(out[3:5], r.days)
	if r.halt {
		out[5] = 1
	}
	if r.dayCarry {
		out[6] = 1
	}
	binary.LittleEndian.PutUint64(out[9:17], uint64(r.lastUnix))
	return out
}

func (r *rtc) unmarshal(data []byte) {
	if len(data) < 17 {
		return
	}
	r.seconds, r.minutes, r.hours = data[0], data[1], data[2]
	r.days = binary.LittleEndian.Uint16(data[3:5])
	r.halt = data[5] != 0
	r.dayCarry = data[6] != 0
	r.lastUnix = int64(binary.LittleEndian.Uint64(data[9:17]))
	r.latch(r.lastUnix)
}

// mbc3 implements the MBC3 mapper: a 7-bit ROM bank register (with the
// 0->1 coercion applied, unlike some hand-rolled implementations), a RAM
// bank register that aliases into RTC register selection for values
// 0x08-0x0C, and the latch-clock-data sequence on $6000-$7FFF.
type mbc3 struct {
	rom []byte
	ram []byte

	ramEnabled bool
	romBank    uint8 // 7 bits
	ramBank    uint8 // 0-3 RAM bank, 0x08-0x0C RTC register

	romBanks int
	hasRTC   bool
	clock    rtc

	nowFunc func() int64
}

func newMBC3(rom []byte, h Header) *mbc3 {
	m := &mbc3{
		rom:      rom,
		ram:      make([]byte, h.RAMSize),
		romBank:  1,
		romBanks: h.ROMBanks,
		hasRTC:   h.Type.HasRTC(),
		nowFunc:  func() int64 { return time.Now().Unix() },
	}
	m.clock.lastUnix = m.nowFunc()
	return m
}

func (m *mbc3) Read(addr uint16) uint8 {
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
		if !m.ramEnabled {
			return 0xFF
		}
		if m.hasRTC && m.ramBank >= 0x08 && m.ramBank <= 0x0C {
			return m.clock.readRegister(m.ramBank)
		}
		off := int(m.ramBank)*0x2000 + int(addr-0xA000)
		if off < len(m.ram) {
			return m.ram[off]
		}
	}
	return 0xFF
}

func (m *mbc3) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case addr < 0x4000:
		bank := value & 0x7F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case addr < 0x6000:
		m.ramBank = value
	case addr < 0x8000:
		if m.hasRTC {
			if m.clock.selectWrite == 0 && value == 1 {
				m.clock.latch(m.nowFunc())
			}
			m.clock.selectWrite = value
		}
	case addr >= 0xA000 && addr < 0xC000:
		if !m.ramEnabled {
			return
		}
		if m.hasRTC && m.ramBank >= 0x08 && m.ramBank <= 0x0C {
			m.clock.writeRegister(m.ramBank, value, m.nowFunc())
			return
		}
		off := int(m.ramBank)*0x2000 + int(addr-0xA000)
		if off < len(m.ram) {
			m.ram[off] = value
		}
	}
}

func (m *mbc3) SaveRAM() []byte {
	if len(m.ram) == 0 && !m.hasRTC {
		return nil
	}
	out := append([]byte(nil), m.ram...)
	if m.hasRTC {
		out = append(out, m.clock.marshal()...)
	}
	return out
}

func (m *mbc3) LoadRAM(data []byte) {
	n := copy(m.ram, data)
	if m.hasRTC && len(data) > n {
		m.clock.unmarshal(data[n:])
	}
}
