package apu

import "github.com/danhawkins/gopherboy/internal/bits"

// Read implements the $FF10-$FF3F register window (NR10-NR52 and wave
// RAM).
func (a *APU) Read(addr uint16) uint8 {
	switch addr {
	case 0xFF10:
		return a.ch1.sweepPeriod<<4 | bits.Val(a.ch1.sweepDirection, bits.Bit3) | a.ch1.sweepShift | 0x80
	case 0xFF11:
		return a.ch1.duty<<6 | 0x3F
	case 0xFF12:
		return nrX2(a.ch1.initVolume, a.ch1.envDirection, a.ch1.envPeriod)
	case 0xFF13:
		return 0xFF
	case 0xFF14:
		return bits.Val(a.ch1.lengthEnabled, bits.Bit6) | 0xBF

	case 0xFF16:
		return a.ch2.duty<<6 | 0x3F
	case 0xFF17:
		return nrX2(a.ch2.initVolume, a.ch2.envDirection, a.ch2.envPeriod)
	case 0xFF18:
		return 0xFF
	case 0xFF19:
		return bits.Val(a.ch2.lengthEnabled, bits.Bit6) | 0xBF

	case 0xFF1A:
		return bits.Val(a.ch3.dacEnabled, bits.Bit7) | 0x7F
	case 0xFF1B:
		return 0xFF
	case 0xFF1C:
		return a.ch3.volumeShift<<5 | 0x9F
	case 0xFF1D:
		return 0xFF
	case 0xFF1E:
		return bits.Val(a.ch3.lengthEnabled, bits.Bit6) | 0xBF

	case 0xFF20:
		return 0xFF
	case 0xFF21:
		return nrX2(a.ch4.initVolume, a.ch4.envDirection, a.ch4.envPeriod)
	case 0xFF22:
		return a.ch4.shiftAmount<<4 | bits.Val(a.ch4.widthMode, bits.Bit3) | a.ch4.divisorCode
	case 0xFF23:
		return bits.Val(a.ch4.lengthEnabled, bits.Bit6) | 0xBF

	case 0xFF24:
		return a.ReadNR50()
	case 0xFF25:
		return a.ReadNR51()
	case 0xFF26:
		return a.ReadNR52()
	}
	if addr >= 0xFF30 && addr <= 0xFF3F {
		return a.ch3.ram[addr-0xFF30]
	}
	return 0xFF
}

func nrX2(vol uint8, dir bool, period uint8) uint8 {
	return vol<<4 | bits.Val(dir, bits.Bit3) | period
}

// Write implements the $FF10-$FF3F register window. Per spec §4.5,
// writes to disabled channels are ignored except for length-counter
// writes (NRx1) while the APU is powered off.
func (a *APU) Write(addr uint16, v uint8) {
	if addr >= 0xFF30 && addr <= 0xFF3F {
		a.ch3.ram[addr-0xFF30] = v
		return
	}
	if !a.enabled {
		switch addr {
		case 0xFF11:
			a.ch1.duty = v >> 6
			a.ch1.lengthCounter = 64 - uint16(v&0x3F)
		case 0xFF16:
			a.ch2.duty = v >> 6
			a.ch2.lengthCounter = 64 - uint16(v&0x3F)
		case 0xFF1B:
			a.ch3.lengthCounter = 256 - uint16(v)
		case 0xFF20:
			a.ch4.lengthCounter = 64 - uint16(v&0x3F)
		case 0xFF26:
			a.WriteNR52(v)
		}
		return
	}

	switch addr {
	case 0xFF10:
		a.ch1.sweepPeriod = (v >> 4) & 0x07
		a.ch1.sweepDirection = v&bits.Bit3 != 0
		a.ch1.sweepShift = v & 0x07
	case 0xFF11:
		a.ch1.duty = v >> 6
		a.ch1.lengthCounter = 64 - uint16(v&0x3F)
	case 0xFF12:
		a.ch1.initVolume = v >> 4
		a.ch1.envDirection = v&bits.Bit3 != 0
		a.ch1.envPeriod = v & 0x07
		a.ch1.dacEnabled = v&0xF8 != 0
		if !a.ch1.dacEnabled {
			a.ch1.active = false
		}
	case 0xFF13:
		a.ch1.freq = a.ch1.freq&0x700 | uint16(v)
	case 0xFF14:
		a.ch1.freq = a.ch1.freq&0x0FF | uint16(v&0x07)<<8
		a.ch1.lengthEnabled = v&bits.Bit6 != 0
		if v&bits.Bit7 != 0 {
			a.ch1.trigger()
		}

	case 0xFF16:
		a.ch2.duty = v >> 6
		a.ch2.lengthCounter = 64 - uint16(v&0x3F)
	case 0xFF17:
		a.ch2.initVolume = v >> 4
		a.ch2.envDirection = v&bits.Bit3 != 0
		a.ch2.envPeriod = v & 0x07
		a.ch2.dacEnabled = v&0xF8 != 0
		if !a.ch2.dacEnabled {
			a.ch2.active = false
		}
	case 0xFF18:
		a.ch2.freq = a.ch2.freq&0x700 | uint16(v)
	case 0xFF19:
		a.ch2.freq = a.ch2.freq&0x0FF | uint16(v&0x07)<<8
		a.ch2.lengthEnabled = v&bits.Bit6 != 0
		if v&bits.Bit7 != 0 {
			a.ch2.trigger()
		}

	case 0xFF1A:
		a.ch3.dacEnabled = v&bits.Bit7 != 0
		if !a.ch3.dacEnabled {
			a.ch3.active = false
		}
	case 0xFF1B:
		a.ch3.lengthCounter = 256 - uint16(v)
	case 0xFF1C:
		a.ch3.volumeShift = (v >> 5) & 0x03
	case 0xFF1D:
		a.ch3.freq = a.ch3.freq&0x700 | uint16(v)
	case 0xFF1E:
		a.ch3.freq = a.ch3.freq&0x0FF | uint16(v&0x07)<<8
		a.ch3.lengthEnabled = v&bits.Bit6 != 0
		if v&bits.Bit7 != 0 {
			a.ch3.trigger()
		}

	case 0xFF20:
		a.ch4.lengthCounter = 64 - uint16(v&0x3F)
	case 0xFF21:
		a.ch4.initVolume = v >> 4
		a.ch4.envDirection = v&bits.Bit3 != 0
		a.ch4.envPeriod = v & 0x07
		a.ch4.dacEnabled = v&0xF8 != 0
		if !a.ch4.dacEnabled {
			a.ch4.active = false
		}
	case 0xFF22:
		a.ch4.shiftAmount = v >> 4
		a.ch4.widthMode = v&bits.Bit3 != 0
		a.ch4.divisorCode = v & 0x07
	case 0xFF23:
		a.ch4.lengthEnabled = v&bits.Bit6 != 0
		if v&bits.Bit7 != 0 {
			a.ch4.trigger()
		}

	case 0xFF24:
		a.WriteNR50(v)
	case 0xFF25:
		a.WriteNR51(v)
	case 0xFF26:
		a.WriteNR52(v)
	}
}
