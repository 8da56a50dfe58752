package bus

import (
	"github.com/danhawkins/gopherboy/internal/model"
	"github.com/danhawkins/gopherboy/internal/ppu"
)

// startOAMDMA implements the $FF46 write: copies 160 bytes from
// source*0x100 into OAM over 160 machine cycles, blocking ordinary CPU
// access to OAM for the duration (spec §4.7).
func (b *Bus) startOAMDMA(v uint8) {
	b.dma.source = uint16(v) << 8
	b.dma.index = 0
	b.dma.active = true
	b.dma.startupDelay = 1
	b.PPU.SetDMAActive(true)
}

// stepOAMDMA is called once per machine cycle; it copies one byte per
// call once the startup delay has elapsed.
func (b *Bus) stepOAMDMA() {
	if !b.dma.active {
		return
	}
	if b.dma.startupDelay > 0 {
		b.dma.startupDelay--
		return
	}
	src := b.dma.source + uint16(b.dma.index)
	b.PPU.WriteOAMDMA(uint8(b.dma.index), b.dmaSourceByte(src))
	b.dma.index++
	if b.dma.index >= 160 {
		b.dma.active = false
		b.PPU.SetDMAActive(false)
	}
}

// dmaSourceByte reads a DMA source byte directly, bypassing OAM's own
// access lock (the DMA engine is exempt from the lock it imposes).
func (b *Bus) dmaSourceByte(addr uint16) uint8 {
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
	default:
		return b.wram[b.wramBankIndex()][(addr-0xF000)&0x0FFF]
	}
}

// readHDMAStatus implements the $FF55 read: bit 7 clear + remaining
// length while a general-purpose or HBlank transfer is outstanding,
// 0xFF once complete or never started.
func (b *Bus) readHDMAStatus() uint8 {
	if !b.hdma.active {
		return 0xFF
	}
	return b.hdma.length
}

// writeHDMAStart implements the $FF55 write, which both configures and
// (for a general-purpose transfer) immediately executes an HDMA/GDMA
// copy from ROM/RAM into VRAM (spec §4.8). Writing bit 7 clear while an
// HBlank-mode transfer is active cancels it.
func (b *Bus) writeHDMAStart(v uint8) {
	if b.Model != model.CGB {
		return
	}
	if b.hdma.active && v&0x80 == 0 {
		b.hdma.active = false
		return
	}
	b.hdma.length = v & 0x7F
	b.hdma.hblankMode = v&0x80 != 0
	b.hdma.active = true

	if !b.hdma.hblankMode {
		b.runGDMABlock(int(b.hdma.length) + 1)
		b.hdma.active = false
		b.hdma.length = 0xFF
	}
}

// stepHDMA drives an HBlank-mode transfer: one 16-byte block copies
// each time the PPU enters HBlank while a transfer is outstanding.
func (b *Bus) stepHDMA() {
	if !b.hdma.active || !b.hdma.hblankMode {
		b.hdma.lastMode = b.PPU.Mode()
		return
	}
	mode := b.PPU.Mode()
	enteredHBlank := mode == ppu.HBlank && b.hdma.lastMode != ppu.HBlank
	b.hdma.lastMode = mode
	if !enteredHBlank {
		return
	}
	b.runGDMABlock(1)
	if b.hdma.length == 0xFF || b.hdma.length == 0 {
		b.hdma.active = false
		b.hdma.length = 0xFF
		return
	}
	b.hdma.length--
}

// runGDMABlock copies blocks*16 bytes from the HDMA source to VRAM,
// advancing the source/destination registers.
func (b *Bus) runGDMABlock(blocks int) {
	src := uint16(b.hdma.srcHi)<<8 | uint16(b.hdma.srcLo)
	dst := 0x8000 + (uint16(b.hdma.dstHi)<<8 | uint16(b.hdma.dstLo))
	for i := 0; i < blocks*16; i++ {
		b.PPU.WriteVRAMDMA(dst, b.dmaSourceByte(src))
		src++
		dst++
	}
	b.hdma.srcHi, b.hdma.srcLo = uint8(src>>8), uint8(src)&0xF0
	b.hdma.dstHi, b.hdma.dstLo = uint8(dst>>8)&0x1F, uint8(dst)&0xF0
}
