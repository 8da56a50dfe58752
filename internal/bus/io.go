package bus

import (
	"github.com/danhawkins/gopherboy/internal/bits"
	"github.com/danhawkins/gopherboy/internal/model"
)

func (b *Bus) readIO(addr uint16) uint8 {
	switch addr {
	case 0xFF00:
		return b.Joypad.Read()
	case 0xFF01:
		return b.Serial.ReadSB()
	case 0xFF02:
		return b.Serial.ReadSC()
	case 0xFF04:
		return b.Timer.ReadDIV()
	case 0xFF05:
		return b.Timer.ReadTIMA()
	case 0xFF06:
		return b.Timer.ReadTMA()
	case 0xFF07:
		return b.Timer.ReadTAC()
	case 0xFF0F:
		return b.IRQ.ReadIF()
	case 0xFF40:
		return b.PPU.ReadLCDC()
	case 0xFF41:
		return b.PPU.ReadSTAT()
	case 0xFF42:
		return b.PPU.ReadSCY()
	case 0xFF43:
		return b.PPU.ReadSCX()
	case 0xFF44:
		return b.PPU.ReadLY()
	case 0xFF45:
		return b.PPU.ReadLYC()
	case 0xFF46:
		return uint8(b.dma.source >> 8)
	case 0xFF47:
		return b.PPU.ReadBGP()
	case 0xFF48:
		return b.PPU.ReadOBP0()
	case 0xFF49:
		return b.PPU.ReadOBP1()
	case 0xFF4A:
		return b.PPU.ReadWY()
	case 0xFF4B:
		return b.PPU.ReadWX()
	case 0xFF4D:
		if b.Model != model.CGB {
			return 0xFF
		}
		v := uint8(0x7E)
		if b.doubleSpeed {
			v |= bits.Bit7
		}
		if b.key1Armed {
			v |= bits.Bit0
		}
		return v
	case 0xFF4F:
		return b.PPU.ReadVBK()
	case 0xFF50:
		return 0xFF
	case 0xFF51, 0xFF52, 0xFF53, 0xFF54:
		return 0xFF
	case 0xFF55:
		return b.readHDMAStatus()
	case 0xFF56:
		return 0xFF // infrared port, not emulated
	case 0xFF68:
		return b.PPU.ReadBCPS()
	case 0xFF69:
		return b.PPU.ReadBCPD()
	case 0xFF6A:
		return b.PPU.ReadOCPS()
	case 0xFF6B:
		return b.PPU.ReadOCPD()
	case 0xFF6C:
		return 0xFF
	case 0xFF70:
		if b.Model != model.CGB {
			return 0xFF
		}
		return b.wramBank | 0xF8
	case 0xFF76, 0xFF77:
		return 0x00
	}
	if addr >= 0xFF10 && addr <= 0xFF3F {
		return b.APU.Read(addr)
	}
	return 0xFF
}

func (b *Bus) writeIO(addr uint16, v uint8) {
	switch addr {
	case 0xFF00:
		b.Joypad.Write(v)
	case 0xFF01:
		b.Serial.WriteSB(v)
	case 0xFF02:
		b.Serial.WriteSC(v)
	case 0xFF04:
		b.Timer.WriteDIV(v)
	case 0xFF05:
		b.Timer.WriteTIMA(v)
	case 0xFF06:
		b.Timer.WriteTMA(v)
	case 0xFF07:
		b.Timer.WriteTAC(v)
	case 0xFF0F:
		b.IRQ.WriteIF(v)
	case 0xFF40:
		b.PPU.WriteLCDC(v)
	case 0xFF41:
		b.PPU.WriteSTAT(v)
	case 0xFF42:
		b.PPU.WriteSCY(v)
	case 0xFF43:
		b.PPU.WriteSCX(v)
	case 0xFF44:
		b.PPU.WriteLY(v)
	case 0xFF45:
		b.PPU.WriteLYC(v)
	case 0xFF46:
		b.startOAMDMA(v)
	case 0xFF47:
		b.PPU.WriteBGP(v)
	case 0xFF48:
		b.PPU.WriteOBP0(v)
	case 0xFF49:
		b.PPU.WriteOBP1(v)
	case 0xFF4A:
		b.PPU.WriteWY(v)
	case 0xFF4B:
		b.PPU.WriteWX(v)
	case 0xFF4D:
		if b.Model == model.CGB {
			b.key1Armed = v&bits.Bit0 != 0
		}
	case 0xFF4F:
		b.PPU.WriteVBK(v)
	case 0xFF50:
		if v != 0 {
			b.bootROMEnabled = false
		}
	case 0xFF51:
		b.hdma.srcHi = v
	case 0xFF52:
		b.hdma.srcLo = v & 0xF0
	case 0xFF53:
		b.hdma.dstHi = v & 0x1F
	case 0xFF54:
		b.hdma.dstLo = v & 0xF0
	case 0xFF55:
		b.writeHDMAStart(v)
	case 0xFF56:
		// infrared port, not emulated
	case 0xFF68:
		b.PPU.WriteBCPS(v)
	case 0xFF69:
		b.PPU.WriteBCPD(v)
	case 0xFF6A:
		b.PPU.WriteOCPS(v)
	case 0xFF6B:
		b.PPU.WriteOCPD(v)
	case 0xFF6C:
		// OPRI sprite-priority mode select: not modelled; sprite priority
		// follows the model (X then OAM index on DMG, OAM index on CGB).
	case 0xFF70:
		if b.Model == model.CGB {
			b.wramBank = v & 0x07
		}
	case 0xFF76, 0xFF77:
		// PCM12/PCM34 digital audio readback, not exposed.
	default:
		if addr >= 0xFF10 && addr <= 0xFF3F {
			b.APU.Write(addr, v)
		}
	}
}

// PerformSpeedSwitch implements cpu.Bus: it completes a speed switch
// armed by a KEY1 write, toggling the bus's own double-speed state (so
// subsequent ticks fan out to PPU/APU/timer at the right rate) and
// resetting DIV, matching the documented STOP behaviour.
func (b *Bus) PerformSpeedSwitch() bool {
	if !b.key1Armed {
		return false
	}
	b.key1Armed = false
	b.doubleSpeed = !b.doubleSpeed
	b.Timer.SetDoubleSpeed(b.doubleSpeed)
	b.Timer.WriteDIV(0)
	return true
}
