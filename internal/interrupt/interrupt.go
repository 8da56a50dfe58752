// Package interrupt implements the Game Boy's interrupt controller: the IE
// and IF registers, IME, and priority-ordered vector dispatch.
package interrupt

import "github.com/danhawkins/gopherboy/internal/bits"

// Kind identifies one of the five interrupt sources, in priority order.
type Kind uint8

const (
	VBlank Kind = iota
	LCDStat
	Timer
	Serial
	Joypad
)

var vectors = [5]uint16{0x40, 0x48, 0x50, 0x58, 0x60}
var flagBits = [5]uint8{bits.Bit0, bits.Bit1, bits.Bit2, bits.Bit3, bits.Bit4}

// Controller holds IE, IF and the IME master-enable flag, and the
// EI-instruction one-instruction latch.
type Controller struct {
	Enable uint8 // IE, 0xFFFF
	Flag   uint8 // IF, 0xFF0F
	IME    bool

	// imePending is set by the EI instruction; IME actually becomes true
	// after the *next* instruction completes.
	imePending bool
}

// NewController returns a Controller with IF primed the way hardware boots
// with (joypad+serial+timer+lcd low, vblank pending is cartridge/boot-rom
// dependent so callers leave this at zero and let the PPU raise it).
func NewController() *Controller {
	return &Controller{}
}

// Request flags kind as pending.
func (c *Controller) Request(kind Kind) {
	c.Flag |= flagBits[kind]
}

// Pending reports whether any enabled interrupt is flagged, independent of
// IME (used to wake the CPU from HALT/STOP).
func (c *Controller) Pending() bool {
	return c.Enable&c.Flag&0x1F != 0
}

// RequestEI schedules IME to become true after the current instruction.
func (c *Controller) RequestEI() {
	c.imePending = true
}

// TickEIDelay applies the one-instruction EI latency. Callers invoke this
// once per instruction boundary.
func (c *Controller) TickEIDelay() {
	if c.imePending {
		c.IME = true
		c.imePending = false
	}
}

// Next returns the highest-priority pending+enabled interrupt and clears
// its IF bit, along with its vector address. ok is false if none is
// pending.
func (c *Controller) Next() (vector uint16, ok bool) {
	pending := c.Enable & c.Flag & 0x1F
	for k := VBlank; k <= Joypad; k++ {
		if pending&flagBits[k] != 0 {
			c.Flag &^= flagBits[k]
			return vectors[k], true
		}
	}
	return 0, false
}

// Read implements the IE ($FFFF) and IF ($FF0F) registers. IF's top three
// bits always read back as 1.
func (c *Controller) ReadIF() uint8 { return c.Flag | 0xE0 }
func (c *Controller) WriteIF(v uint8) { c.Flag = v & 0x1F }
func (c *Controller) ReadIE() uint8 { return c.Enable }
func (c *Controller) WriteIE(v uint8) { c.Enable = v }
