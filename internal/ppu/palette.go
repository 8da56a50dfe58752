package ppu

import "github.com/danhawkins/gopherboy/internal/bits"

// cramPalette is the CGB's 64-byte BG or OBJ colour RAM: 8 palettes of 4
// colours, each colour stored little-endian BGR555.
type cramPalette struct {
	data [64]byte
}

func (c *cramPalette) read(index uint8) uint8 { return c.data[index&0x3F] }

func (c *cramPalette) write(index uint8, v uint8) { c.data[index&0x3F] = v }

// rgba returns the 8-bit RGBA colour for palette group (0-7), colour
// index (0-3), expanding 5-bit-per-channel CRAM with correct (a linear
// per-channel scale; no LCD colour correction is applied).
func (c *cramPalette) rgba(group, colorIndex uint8) (r, g, b, a uint8) {
	off := int(group&7)*8 + int(colorIndex&3)*2
	lo := c.data[off]
	hi := c.data[off+1]
	word := uint16(lo) | uint16(hi)<<8
	r5 := uint8(word & 0x1F)
	g5 := uint8((word >> 5) & 0x1F)
	b5 := uint8((word >> 10) & 0x1F)
	return correct(r5), correct(g5), correct(b5), 0xFF
}

// correct expands a 5-bit channel to 8 bits by scaling linearly to the
// 0-255 range (c5*255/31). Each channel is handled on its own: there is
// no curve and no channel mixing to imitate the console LCD.
func correct(c5 uint8) uint8 {
	v := uint16(c5) * 255 / 31
	return uint8(v)
}

// dmgGreenShades is the classic four-shade greenish palette.
var dmgGreenShades = [4][3]uint8{
	{0x9B, 0xBC, 0x0F},
	{0x8B, 0xAC, 0x0F},
	{0x30, 0x62, 0x30},
	{0x0F, 0x38, 0x0F},
}

// dmgGrayShades is a plain pass-through grayscale palette.
var dmgGrayShades = [4][3]uint8{
	{0xFF, 0xFF, 0xFF},
	{0xAA, 0xAA, 0xAA},
	{0x55, 0x55, 0x55},
	{0x00, 0x00, 0x00},
}

// dmgShade maps a 2-bit colour index through a BGP/OBP-style palette
// byte to a shade 0-3.
func dmgShade(paletteByte uint8, colorIndex uint8) uint8 {
	return (paletteByte >> (colorIndex * 2)) & 0x3
}

func (p *PPU) dmgRGBA(paletteByte, colorIndex uint8) (r, g, b, a uint8) {
	shade := dmgShade(paletteByte, colorIndex)
	shades := dmgGreenShades
	if p.Grayscale {
		shades = dmgGrayShades
	}
	c := shades[shade]
	return c[0], c[1], c[2], 0xFF
}

// ReadBCPS/WriteBCPS and ReadBCPD/WriteBCPD implement the CGB BG
// palette index/data registers ($FF68/$FF69).
func (p *PPU) ReadBCPS() uint8 {
	v := p.bgpsIdx
	if p.bgpsAuto {
		v |= bits.Bit7
	}
	return v | 0x40
}

func (p *PPU) WriteBCPS(v uint8) {
	p.bgpsIdx = v & 0x3F
	p.bgpsAuto = v&bits.Bit7 != 0
}

func (p *PPU) ReadBCPD() uint8 {
	if p.mode == Drawing {
		return 0xFF
	}
	return p.bgPalette.read(p.bgpsIdx)
}

func (p *PPU) WriteBCPD(v uint8) {
	if p.mode != Drawing {
		p.bgPalette.write(p.bgpsIdx, v)
	}
	if p.bgpsAuto {
		p.bgpsIdx = (p.bgpsIdx + 1) & 0x3F
	}
}

// ReadOCPS/WriteOCPS and ReadOCPD/WriteOCPD implement the CGB OBJ
// palette index/data registers ($FF6A/$FF6B).
func (p *PPU) ReadOCPS() uint8 {
	v := p.ocpsIdx
	if p.ocpsAuto {
		v |= bits.Bit7
	}
	return v | 0x40
}

func (p *PPU) WriteOCPS(v uint8) {
	p.ocpsIdx = v & 0x3F
	p.ocpsAuto = v&bits.Bit7 != 0
}

func (p *PPU) ReadOCPD() uint8 {
	if p.mode == Drawing {
		return 0xFF
	}
	return p.objPalette.read(p.ocpsIdx)
}

func (p *PPU) WriteOCPD(v uint8) {
	if p.mode != Drawing {
		p.objPalette.write(p.ocpsIdx, v)
	}
	if p.ocpsAuto {
		p.ocpsIdx = (p.ocpsIdx + 1) & 0x3F
	}
}
