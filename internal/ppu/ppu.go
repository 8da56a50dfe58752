// Package ppu implements the Game Boy's picture processing unit: the
// LCDC/STAT mode state machine, OAM, VRAM banking, CGB palettes, and a
// scanline-granularity renderer.
package ppu

import (
	"github.com/cespare/xxhash"

	"github.com/danhawkins/gopherboy/internal/bits"
	"github.com/danhawkins/gopherboy/internal/interrupt"
	"github.com/danhawkins/gopherboy/internal/model"
)

// Mode is one of the four PPU states a scanline cycles through.
type Mode uint8

const (
	HBlank Mode = iota
	VBlank
	OAMScan
	Drawing
)

const (
	// ScreenWidth is the visible framebuffer width in pixels.
	ScreenWidth = 160
	// ScreenHeight is the visible framebuffer height in pixels.
	ScreenHeight = 144

	dotsOAMScan = 80
	dotsDrawing = 172
	dotsHBlank  = 204
	dotsPerLine = dotsOAMScan + dotsDrawing + dotsHBlank // 456
	linesVisible = 144
	linesTotal   = 154
)

// PPU renders the 160x144 framebuffer and drives the LCD STAT interrupt
// state machine.
type PPU struct {
	model model.Model
	irq   *interrupt.Controller

	// registers
	lcdc, stat           uint8
	scy, scx, wy, wx     uint8
	ly, lyc              uint8
	bgp, obp0, obp1      uint8
	windowLineCounter    uint8
	vbk                  uint8 // CGB VRAM bank select

	mode    Mode
	dot     int
	statLine bool // last computed OR of STAT interrupt sources, for edge detection

	vram [2][0x2000]byte
	oam  [160]byte

	bgPalette  cramPalette
	objPalette cramPalette
	bgpsIdx    uint8
	bgpsAuto   bool
	ocpsIdx    uint8
	ocpsAuto   bool

	front, back []byte // 160*144*4 RGBA, double buffered
	frameDone   bool

	// dmaActive blocks CPU-side OAM access while the bus's OAM DMA
	// engine is copying into oam via WriteOAMDMA.
	dmaActive bool

	// DMG colour scheme: greenish (default) or plain grayscale.
	Grayscale bool
}

// New returns a PPU for the given hardware model, wired to irq for
// VBlank/STAT interrupts.
func New(m model.Model, irq *interrupt.Controller) *PPU {
	p := &PPU{
		model: m,
		irq:   irq,
		mode:  OAMScan,
		front: make([]byte, ScreenWidth*ScreenHeight*4),
		back:  make([]byte, ScreenWidth*ScreenHeight*4),
	}
	for i := range p.front {
		p.front[i] = 0xFF
		p.back[i] = 0xFF
	}
	return p
}

// Framebuffer returns the most recently completed frame, row-major RGBA.
func (p *PPU) Framebuffer() []byte { return p.front }

// HasFrame reports whether a new frame completed since the last call to
// ClearFrame.
func (p *PPU) HasFrame() bool { return p.frameDone }

// ClearFrame resets the completed-frame latch.
func (p *PPU) ClearFrame() { p.frameDone = false }

// FrameHash returns an xxhash digest of the current front buffer, used
// by acid2-style test oracles to compare against a reference image hash.
func (p *PPU) FrameHash() uint64 { return xxhash.Sum64(p.front) }

func (p *PPU) enabled() bool { return p.lcdc&bits.Bit7 != 0 }

// Tick advances the PPU by dots base-clock ticks (always at the base
// 4.194304 MHz rate; double speed only changes how many dots a given
// CPU machine cycle corresponds to, not the PPU's own rate).
func (p *PPU) Tick(dots int) {
	if !p.enabled() {
		return
	}
	for i := 0; i < dots; i++ {
		p.tickOnce()
	}
}

func (p *PPU) tickOnce() {
	p.dot++
	switch p.mode {
	case OAMScan:
		if p.dot >= dotsOAMScan {
			p.dot = 0
			p.mode = Drawing
			p.checkStatInterrupt()
		}
	case Drawing:
		if p.dot >= dotsDrawing {
			p.dot = 0
			p.mode = HBlank
			p.renderLine()
			p.checkStatInterrupt()
		}
	case HBlank:
		if p.dot >= dotsHBlank {
			p.dot = 0
			p.ly++
			if p.ly == linesVisible {
				p.mode = VBlank
				p.swapBuffers()
				p.irq.Request(interrupt.VBlank)
			} else {
				p.mode = OAMScan
			}
			p.checkStatInterrupt()
		}
	case VBlank:
		if p.dot >= dotsPerLine {
			p.dot = 0
			p.ly++
			if p.ly >= linesTotal {
				p.ly = 0
				p.windowLineCounter = 0
				p.mode = OAMScan
			}
			p.checkStatInterrupt()
		}
	}
}

func (p *PPU) swapBuffers() {
	p.front, p.back = p.back, p.front
	p.frameDone = true
}

// checkStatInterrupt recomputes the OR of the four STAT interrupt
// sources and raises the interrupt on a rising edge only (spec §4.4,
// §9: no bug-for-bug spurious-block emulation).
func (p *PPU) checkStatInterrupt() {
	line := false
	if p.stat&bits.Bit6 != 0 && p.ly == p.lyc {
		line = true
	}
	switch p.mode {
	case HBlank:
		line = line || p.stat&bits.Bit3 != 0
	case VBlank:
		line = line || p.stat&bits.Bit4 != 0
	case OAMScan:
		line = line || p.stat&bits.Bit5 != 0
	}
	if line && !p.statLine {
		p.irq.Request(interrupt.LCDStat)
	}
	p.statLine = line
}

// ReadLCDC/WriteLCDC etc. implement the $FF40-$FF4B register window.

func (p *PPU) ReadLCDC() uint8 { return p.lcdc }

func (p *PPU) WriteLCDC(v uint8) {
	wasEnabled := p.enabled()
	p.lcdc = v
	if wasEnabled && !p.enabled() {
		p.mode = HBlank
		p.dot = 0
		p.ly = 0
		for i := range p.back {
			p.back[i] = 0xFF
		}
		p.front, p.back = p.back, p.front
		p.frameDone = true
	} else if !wasEnabled && p.enabled() {
		p.mode = OAMScan
		p.dot = 0
	}
}

func (p *PPU) ReadSTAT() uint8 {
	v := p.stat&0x78 | 0x80
	if p.ly == p.lyc {
		v |= bits.Bit2
	}
	if p.enabled() {
		v |= uint8(p.mode)
	}
	return v
}

func (p *PPU) WriteSTAT(v uint8) {
	p.stat = v & 0x78
	p.checkStatInterrupt()
}

func (p *PPU) ReadSCY() uint8  { return p.scy }
func (p *PPU) WriteSCY(v uint8) { p.scy = v }
func (p *PPU) ReadSCX() uint8  { return p.scx }
func (p *PPU) WriteSCX(v uint8) { p.scx = v }
func (p *PPU) ReadLY() uint8   { return p.ly }
func (p *PPU) WriteLY(uint8)   {} // LY is read-only; writes are no-ops
func (p *PPU) ReadLYC() uint8  { return p.lyc }
func (p *PPU) WriteLYC(v uint8) {
	p.lyc = v
	p.checkStatInterrupt()
}
func (p *PPU) ReadWY() uint8  { return p.wy }
func (p *PPU) WriteWY(v uint8) { p.wy = v }
func (p *PPU) ReadWX() uint8  { return p.wx }
func (p *PPU) WriteWX(v uint8) { p.wx = v }
func (p *PPU) ReadBGP() uint8  { return p.bgp }
func (p *PPU) WriteBGP(v uint8) { p.bgp = v }
func (p *PPU) ReadOBP0() uint8 { return p.obp0 }
func (p *PPU) WriteOBP0(v uint8) { p.obp0 = v }
func (p *PPU) ReadOBP1() uint8 { return p.obp1 }
func (p *PPU) WriteOBP1(v uint8) { p.obp1 = v }

func (p *PPU) ReadVBK() uint8 {
	if p.model != model.CGB {
		return 0xFF
	}
	return p.vbk | 0xFE
}

func (p *PPU) WriteVBK(v uint8) {
	if p.model == model.CGB {
		p.vbk = v & 1
	}
}

// vramAccessible reports whether the CPU may read/write VRAM right now
// (blocked during Drawing, like OAM during OAMScan/Drawing).
func (p *PPU) vramAccessible() bool { return !p.enabled() || p.mode != Drawing }
func (p *PPU) oamAccessible() bool {
	return !p.enabled() || (p.mode != OAMScan && p.mode != Drawing)
}

// ReadVRAM/WriteVRAM implement $8000-$9FFF, banked by VBK on CGB.
func (p *PPU) ReadVRAM(addr uint16) uint8 {
	if !p.vramAccessible() {
		return 0xFF
	}
	return p.vram[p.vbk][addr-0x8000]
}

func (p *PPU) WriteVRAM(addr uint16, v uint8) {
	if !p.vramAccessible() {
		return
	}
	p.vram[p.vbk][addr-0x8000] = v
}

// WriteVRAMDMA is used by HDMA/GDMA, which bypass the normal mode-lock
// (the PPU is typically in HBlank, or disabled, whenever these run).
func (p *PPU) WriteVRAMDMA(addr uint16, v uint8) {
	p.vram[p.vbk][addr&0x1FFF] = v
}

// ReadOAM/WriteOAM implement $FE00-$FE9F.
func (p *PPU) ReadOAM(addr uint16) uint8 {
	if p.dmaActive || !p.oamAccessible() {
		return 0xFF
	}
	return p.oam[addr-0xFE00]
}

func (p *PPU) WriteOAM(addr uint16, v uint8) {
	if p.dmaActive || !p.oamAccessible() {
		return
	}
	p.oam[addr-0xFE00] = v
}

// WriteOAMDMA writes directly into OAM, bypassing the mode lock (used
// by the OAM DMA engine itself).
func (p *PPU) WriteOAMDMA(index uint8, v uint8) {
	p.oam[index] = v
}

// SetDMAActive is called by the bus's OAM DMA engine to block ordinary
// CPU access to OAM for the duration of the transfer.
func (p *PPU) SetDMAActive(active bool) { p.dmaActive = active }

// Mode returns the current PPU mode, for HDMA stepping decisions.
func (p *PPU) Mode() Mode { return p.mode }

// LY returns the current scanline.
func (p *PPU) LY() uint8 { return p.ly }
