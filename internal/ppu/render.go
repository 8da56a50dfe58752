package ppu

import "github.com/danhawkins/gopherboy/internal/model"

// renderLine composes the full 160-pixel visible scanline at p.ly in one
// pass: background, then window, then up to 10 sprites (spec §4.4). This
// is a scanline renderer, not a cycle-accurate pixel FIFO, per the
// spec's Non-goals.
func (p *PPU) renderLine() {
	if p.ly >= ScreenHeight {
		return
	}
	cgb := p.model == model.CGB

	var colorIdx [ScreenWidth]uint8
	var bgPriority [ScreenWidth]bool

	bgWindowEnabled := p.lcdc&bit0 != 0
	if bgWindowEnabled || cgb {
		p.renderBackground(&colorIdx, &bgPriority)
	} else {
		for x := range colorIdx {
			p.setPixel(x, 0xFF, 0xFF, 0xFF, 0xFF)
		}
	}

	windowDrawn := false
	if p.lcdc&bit5 != 0 && (bgWindowEnabled || cgb) && p.wy <= p.ly && p.wx <= 166 {
		windowDrawn = p.renderWindow(&colorIdx, &bgPriority)
	}
	if windowDrawn {
		p.windowLineCounter++
	}

	if p.lcdc&bit1 != 0 {
		p.renderSprites(&colorIdx, &bgPriority)
	}
}

const (
	bit0 = 1 << 0
	bit1 = 1 << 1
	bit2 = 1 << 2
	bit3 = 1 << 3
	bit4 = 1 << 4
	bit5 = 1 << 5
	bit6 = 1 << 6
)

// tileDataAddr resolves a tile ID to a VRAM offset (within its bank),
// honouring LCDC bit 4's signed/unsigned addressing mode.
func tileDataAddr(lcdc uint8, tileID uint8) uint16 {
	if lcdc&bit4 != 0 {
		return 0x0000 + uint16(tileID)*16
	}
	return uint16(0x1000 + int16(int8(tileID))*16)
}

// bgAttr unpacks a CGB background-map attribute byte.
type bgAttr struct {
	palette  uint8
	bank     uint8
	xflip    bool
	yflip    bool
	priority bool
}

func decodeBGAttr(v uint8) bgAttr {
	return bgAttr{
		palette:  v & 0x07,
		bank:     (v >> 3) & 1,
		xflip:    v&0x20 != 0,
		yflip:    v&0x40 != 0,
		priority: v&0x80 != 0,
	}
}

func (p *PPU) tilePixel(bank uint8, dataAddr uint16, row, col uint8) uint8 {
	lo := p.vram[bank][dataAddr+uint16(row)*2]
	hi := p.vram[bank][dataAddr+uint16(row)*2+1]
	bit := 7 - col
	return (lo>>bit)&1 | ((hi>>bit)&1)<<1
}

func (p *PPU) renderBackground(colorIdx *[ScreenWidth]uint8, bgPriority *[ScreenWidth]bool) {
	mapBase := uint16(0x9800)
	if p.lcdc&bit3 != 0 {
		mapBase = 0x9C00
	}
	cgb := p.model == model.CGB

	for x := 0; x < ScreenWidth; x++ {
		bgX := uint8(x) + p.scx
		bgY := p.ly + p.scy
		mapIdx := uint16(bgY/8)*32 + uint16(bgX/8)
		tileID := p.vram[0][mapBase-0x8000+mapIdx]

		var attr bgAttr
		if cgb {
			attr = decodeBGAttr(p.vram[1][mapBase-0x8000+mapIdx])
		}

		row := bgY % 8
		col := bgX % 8
		if attr.yflip {
			row = 7 - row
		}
		if attr.xflip {
			col = 7 - col
		}

		ci := p.tilePixel(attr.bank, tileDataAddr(p.lcdc, tileID), row, col)
		colorIdx[x] = ci
		bgPriority[x] = attr.priority

		if cgb {
			r, g, b, a := p.bgPalette.rgba(attr.palette, ci)
			p.setPixel(x, r, g, b, a)
		} else {
			r, g, b, a := p.dmgRGBA(p.bgp, ci)
			p.setPixel(x, r, g, b, a)
		}
	}
}

func (p *PPU) renderWindow(colorIdx *[ScreenWidth]uint8, bgPriority *[ScreenWidth]bool) bool {
	if p.wx < 7 {
		return p.renderWindowFrom(0, colorIdx, bgPriority)
	}
	start := int(p.wx) - 7
	if start >= ScreenWidth {
		return false
	}
	return p.renderWindowFrom(start, colorIdx, bgPriority)
}

func (p *PPU) renderWindowFrom(startX int, colorIdx *[ScreenWidth]uint8, bgPriority *[ScreenWidth]bool) bool {
	mapBase := uint16(0x9800)
	if p.lcdc&bit6 != 0 {
		mapBase = 0x9C00
	}
	cgb := p.model == model.CGB
	wy := p.windowLineCounter

	drawn := false
	for x := startX; x < ScreenWidth; x++ {
		wx := uint8(x - startX)
		mapIdx := uint16(wy/8)*32 + uint16(wx/8)
		tileID := p.vram[0][mapBase-0x8000+mapIdx]

		var attr bgAttr
		if cgb {
			attr = decodeBGAttr(p.vram[1][mapBase-0x8000+mapIdx])
		}

		row := wy % 8
		col := wx % 8
		if attr.yflip {
			row = 7 - row
		}
		if attr.xflip {
			col = 7 - col
		}

		ci := p.tilePixel(attr.bank, tileDataAddr(p.lcdc, tileID), row, col)
		colorIdx[x] = ci
		bgPriority[x] = attr.priority

		if cgb {
			r, g, b, a := p.bgPalette.rgba(attr.palette, ci)
			p.setPixel(x, r, g, b, a)
		} else {
			r, g, b, a := p.dmgRGBA(p.bgp, ci)
			p.setPixel(x, r, g, b, a)
		}
		drawn = true
	}
	return drawn
}

type spriteEntry struct {
	y, x, tile, attr uint8
	oamIndex         int
}

func (p *PPU) renderSprites(colorIdx *[ScreenWidth]uint8, bgPriority *[ScreenWidth]bool) {
	height := uint8(8)
	if p.lcdc&bit2 != 0 {
		height = 16
	}

	var selected []spriteEntry
	for i := 0; i < 40 && len(selected) < 10; i++ {
		base := i * 4
		y := p.oam[base]
		spriteY := int(y) - 16
		if int(p.ly) < spriteY || int(p.ly) >= spriteY+int(height) {
			continue
		}
		selected = append(selected, spriteEntry{
			y: y, x: p.oam[base+1], tile: p.oam[base+2], attr: p.oam[base+3], oamIndex: i,
		})
	}

	cgb := p.model == model.CGB
	// Highest priority first: DMG sorts by X then OAM index; CGB by OAM
	// index only (spec §4.4).
	for i := 1; i < len(selected); i++ {
		for j := i; j > 0; j-- {
			a, b := selected[j-1], selected[j]
			swap := false
			if cgb {
				swap = a.oamIndex > b.oamIndex
			} else {
				swap = a.x > b.x || (a.x == b.x && a.oamIndex > b.oamIndex)
			}
			if swap {
				selected[j-1], selected[j] = selected[j], selected[j-1]
			} else {
				break
			}
		}
	}

	drawn := [ScreenWidth]bool{}
	masterPriority := !cgb || p.lcdc&bit0 != 0

	for _, s := range selected {
		spriteY := int(s.y) - 16
		spriteX := int(s.x) - 8
		row := uint8(int(p.ly) - spriteY)
		if s.attr&0x40 != 0 { // Y flip
			row = height - 1 - row
		}
		tile := s.tile
		if height == 16 {
			tile &^= 1
			if row >= 8 {
				tile |= 1
				row -= 8
			}
		}
		bank := uint8(0)
		palette := s.attr & 0x07
		if cgb {
			bank = (s.attr >> 3) & 1
		}
		behindBG := s.attr&0x80 != 0

		for col := uint8(0); col < 8; col++ {
			x := spriteX + int(col)
			if x < 0 || x >= ScreenWidth {
				continue
			}
			if drawn[x] {
				continue
			}
			srcCol := col
			if s.attr&0x20 != 0 { // X flip
				srcCol = 7 - col
			}
			ci := p.tilePixel(bank, tileDataAddr(0x10, tile), row, srcCol) // bit4 forced set: sprites always use unsigned $8000 addressing
			if ci == 0 {
				continue
			}
			if masterPriority && behindBG && colorIdx[x] != 0 {
				continue
			}
			if masterPriority && bgPriority[x] && colorIdx[x] != 0 {
				continue
			}

			var r, g, b, a uint8
			if cgb {
				r, g, b, a = p.objPalette.rgba(palette, ci)
			} else if s.attr&0x10 == 0 {
				r, g, b, a = p.dmgRGBA(p.obp0, ci)
			} else {
				r, g, b, a = p.dmgRGBA(p.obp1, ci)
			}
			p.setPixel(x, r, g, b, a)
			drawn[x] = true
		}
	}
}

func (p *PPU) setPixel(x int, r, g, b, a uint8) {
	off := (int(p.ly)*ScreenWidth + x) * 4
	p.back[off] = r
	p.back[off+1] = g
	p.back[off+2] = b
	p.back[off+3] = a
}
