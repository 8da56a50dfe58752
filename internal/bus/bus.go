// Package bus implements the Game Boy's address space: it decodes CPU
// reads and writes across the cartridge, VRAM/OAM, work RAM (banked on
// CGB via SVBK), HRAM, and the I/O register window, and owns the
// pieces of system state that don't belong to any one peripheral: the
// boot ROM overlay, OAM DMA, CGB HDMA/GDMA, and the KEY1 speed switch.
package bus

import (
	"github.com/danhawkins/gopherboy/internal/apu"
	"github.com/danhawkins/gopherboy/internal/cartridge"
	"github.com/danhawkins/gopherboy/internal/interrupt"
	"github.com/danhawkins/gopherboy/internal/joypad"
	"github.com/danhawkins/gopherboy/internal/model"
	"github.com/danhawkins/gopherboy/internal/ppu"
	"github.com/danhawkins/gopherboy/internal/serial"
	"github.com/danhawkins/gopherboy/internal/timer"
)

// Bus wires every peripheral into one address space and fans out the
// shared clock tick the CPU drives through ReadCycle/WriteCycle/TickCycle.
type Bus struct {
	Model  model.Model
	Cart   *cartridge.Cartridge
	PPU    *ppu.PPU
	APU    *apu.APU
	Timer  *timer.Controller
	Joypad *joypad.Controller
	Serial *serial.Controller
	IRQ    *interrupt.Controller

	wram     [8][0x1000]byte
	wramBank uint8 // SVBK, 1-7; 0 reads back as bank 1
	hram     [0x7F]byte

	bootROM        []byte
	bootROMEnabled bool

	key1Armed   bool
	doubleSpeed bool

	dma  dmaState
	hdma hdmaState
}

type dmaState struct {
	active bool
	source uint16
	index  int
	// startupDelay models the documented one-M-cycle gap between the
	// $FF46 write landing and the first OAM byte actually transferring.
	startupDelay int
}

type hdmaState struct {
	srcHi, srcLo uint8
	dstHi, dstLo uint8
	length     uint8 // (transferLen/16)-1; 0xFF means idle
	active     bool
	hblankMode bool
	lastMode   ppu.Mode
}

// New returns a Bus with every peripheral wired to irq, for the given
// model and cartridge.
func New(m model.Model, cart *cartridge.Cartridge, irq *interrupt.Controller, p *ppu.PPU, a *apu.APU, t *timer.Controller, jp *joypad.Controller, sr *serial.Controller) *Bus {
	b := &Bus{
		Model:  m,
		Cart:   cart,
		PPU:    p,
		APU:    a,
		Timer:  t,
		Joypad: jp,
		Serial: sr,
		IRQ:    irq,
	}
	b.hdma.length = 0xFF
	return b
}

// SetBootROM installs a boot ROM image (256 bytes for DMG, up to 2304
// for CGB) and enables its overlay of the low cartridge addresses.
func (b *Bus) SetBootROM(data []byte) {
	b.bootROM = data
	b.bootROMEnabled = len(data) > 0
}

// DoubleSpeed reports the bus's view of the current CPU speed.
func (b *Bus) DoubleSpeed() bool { return b.doubleSpeed }

// ReadCycle/WriteCycle/TickCycle implement cpu.Bus: each advances the
// shared clock by one machine cycle before/after the raw access.
func (b *Bus) ReadCycle(addr uint16) uint8 {
	b.tickMCycle()
	return b.Read(addr)
}

func (b *Bus) WriteCycle(addr uint16, v uint8) {
	b.tickMCycle()
	b.Write(addr, v)
}

func (b *Bus) TickCycle(n int) {
	for i := 0; i < n; i++ {
		b.tickMCycle()
	}
}

func (b *Bus) tickMCycle() {
	dots := 4
	if b.doubleSpeed {
		dots = 2
	}
	b.PPU.Tick(dots)
	b.APU.Tick(dots)
	b.Timer.Tick(1)
	b.Serial.Tick(1)
	b.stepOAMDMA()
	b.stepHDMA()
}

func (b *Bus) wramBankIndex() int {
	if b.Model != model.CGB {
		return 1
	}
	n := int(b.wramBank)
	if n == 0 {
		n = 1
	}
	return n
}

// Read performs a raw memory read with no clock side effect, for use
// by DMA engines and by ReadCycle.
func (b *Bus) Read(addr uint16) uint8 {
	if b.dma.active && b.dma.startupDelay == 0 && !b.inHRAMOrIE(addr) {
		return 0xFF
	}
	if b.bootROMEnabled && b.inBootROM(addr) {
		return b.bootROM[addr]
	}
	switch {
	case addr < 0x8000:
		return b.Cart.MBC.Read(addr)
	case addr < 0xA000:
		return b.PPU.ReadVRAM(addr)
	case addr < 0xC000:
		return b.Cart.MBC.Read(addr)
	case addr < 0xD000:
		return b.wram[0][addr-0xC000]
	case addr < 0xE000:
		return b.wram[b.wramBankIndex()][addr-0xD000]
	case addr < 0xF000:
		return b.wram[0][addr-0xE000]
	case addr < 0xFE00:
		return b.wram[b.wramBankIndex()][addr-0xF000]
	case addr < 0xFEA0:
		return b.PPU.ReadOAM(addr)
	case addr < 0xFF00:
		return 0xFF
	case addr < 0xFF80:
		return b.readIO(addr)
	case addr < 0xFFFF:
		return b.hram[addr-0xFF80]
	default:
		return b.IRQ.ReadIE()
	}
}

// Write performs a raw memory write with no clock side effect.
func (b *Bus) Write(addr uint16, v uint8) {
	if b.dma.active && b.dma.startupDelay == 0 && addr != 0xFF46 && !b.inHRAMOrIE(addr) {
		return
	}
	switch {
	case addr < 0x8000:
		b.Cart.MBC.Write(addr, v)
	case addr < 0xA000:
		b.PPU.WriteVRAM(addr, v)
	case addr < 0xC000:
		b.Cart.MBC.Write(addr, v)
	case addr < 0xD000:
		b.wram[0][addr-0xC000] = v
	case addr < 0xE000:
		b.wram[b.wramBankIndex()][addr-0xD000] = v
	case addr < 0xF000:
		b.wram[0][addr-0xE000] = v
	case addr < 0xFE00:
		b.wram[b.wramBankIndex()][addr-0xF000] = v
	case addr < 0xFEA0:
		b.PPU.WriteOAM(addr, v)
	case addr < 0xFF00:
		// unusable, writes discarded
	case addr < 0xFF80:
		b.writeIO(addr, v)
	case addr < 0xFFFF:
		b.hram[addr-0xFF80] = v
	default:
		b.IRQ.WriteIE(v)
	}
}

// inHRAMOrIE reports whether addr is one of the two regions the CPU can
// still reach while an OAM DMA is in flight (spec §4.2/§8 scenario 5):
// HRAM and the IE register. Everything else reads back as 0xFF and
// discards writes for the duration of the transfer.
func (b *Bus) inHRAMOrIE(addr uint16) bool {
	return addr >= 0xFF80
}

// inBootROM reports whether addr currently reads from the boot ROM
// overlay instead of the cartridge. The CGB boot ROM has a gap at
// $0100-$01FF where the cartridge header is always visible (the boot
// ROM itself reads it from there to validate the header/CGB flag).
func (b *Bus) inBootROM(addr uint16) bool {
	if addr < 0x100 {
		return len(b.bootROM) >= 0x100
	}
	if b.Model == model.CGB && addr >= 0x200 && addr < 0x900 {
		return len(b.bootROM) >= 0x900
	}
	return false
}
