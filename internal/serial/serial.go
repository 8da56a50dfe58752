// Package serial implements the Game Boy's serial port registers as a
// stub: bytes shifted out are delivered to an observer callback instead
// of a second console, per spec §1's "serial link stub" scope. This is
// enough to drive test ROMs (e.g. cpu_instrs.gb) that report pass/fail
// over the serial port.
package serial

import "github.com/danhawkins/gopherboy/internal/interrupt"

// Controller implements $FF01 (SB) and $FF02 (SC).
type Controller struct {
	sb uint8
	sc uint8

	transferCycles int
	irq            *interrupt.Controller

	// OnByte, if set, is invoked with each byte shifted out by an
	// internal-clock transfer (the common case for test ROMs, which act
	// as the clock master with no cable attached).
	OnByte func(b uint8)
}

// New returns a Controller wired to irq for the serial interrupt.
func New(irq *interrupt.Controller) *Controller {
	return &Controller{irq: irq}
}

func (c *Controller) ReadSB() uint8 { return c.sb }
func (c *Controller) WriteSB(v uint8) { c.sb = v }

func (c *Controller) ReadSC() uint8 { return c.sc | 0x7C }

func (c *Controller) WriteSC(v uint8) {
	c.sc = v & 0x83
	if v&0x81 == 0x81 { // transfer start + internal clock
		c.transferCycles = 8 * 512 // ~8192 Hz bit clock, 8 bits
	}
}

// Tick advances any in-flight transfer by cycles machine cycles. With no
// cable attached there is no incoming data; the shifted-out byte is
// reported via OnByte and SB reads back 0xFF afterward, matching an
// unconnected link port.
func (c *Controller) Tick(cycles int) {
	if c.transferCycles <= 0 {
		return
	}
	c.transferCycles -= cycles * 4
	if c.transferCycles <= 0 {
		c.transferCycles = 0
		if c.OnByte != nil {
			c.OnByte(c.sb)
		}
		c.sb = 0xFF
		c.sc &^= 0x80
		c.irq.Request(interrupt.Serial)
	}
}
