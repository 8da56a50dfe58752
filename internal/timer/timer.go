// Package timer implements the Game Boy's DIV/TIMA/TMA/TAC timer: a
// 16-bit internal counter whose upper byte is DIV, and an edge-triggered
// TIMA incrementer selected by TAC.
package timer

import (
	"github.com/danhawkins/gopherboy/internal/bits"
	"github.com/danhawkins/gopherboy/internal/interrupt"
)

// timerBits maps TAC's clock-select bits (0-3) to the internal-counter
// bit whose falling edge clocks TIMA, in single speed. Double speed taps
// one bit higher (see tapMask).
var timerBits = [4]uint16{1 << 9, 1 << 3, 1 << 5, 1 << 7}
var timerBitsDouble = [4]uint16{1 << 10, 1 << 4, 1 << 6, 1 << 8}

// Controller owns the internal 16-bit DIV counter and TIMA/TMA/TAC.
type Controller struct {
	internal uint16 // free-running counter; DIV is its high byte

	tima uint8
	tma  uint8
	tac  uint8

	enabled    bool
	selectBit  uint8
	lastAndBit bool // value of (internal&timerBits[selectBit] != 0) at last tick, for edge detection

	reloadPending bool // TIMA overflowed; reload lands one M-cycle later (flag held through the reload cycle)
	reloadDelay   int

	// doubleSpeed is set by the bus on a CGB speed switch. The internal
	// counter is clocked by the CPU's own oscillator, so it free-runs at
	// twice the rate in double speed; tapping one bit higher than usual
	// keeps TIMA's real-world frequency unchanged (spec §4.2/§4.3).
	doubleSpeed bool

	irq *interrupt.Controller
}

// SetDoubleSpeed is called by the bus when a CGB speed switch completes.
func (c *Controller) SetDoubleSpeed(on bool) { c.doubleSpeed = on }

func (c *Controller) tapMask() uint16 {
	if c.doubleSpeed {
		return timerBitsDouble[c.selectBit]
	}
	return timerBits[c.selectBit]
}

// New returns a Controller wired to irq for the timer interrupt.
// internal starts at 0xABCC, matching the post-boot DIV value on
// hardware (DIV reads back 0xAB immediately after the boot ROM hands
// off).
func New(irq *interrupt.Controller) *Controller {
	c := &Controller{internal: 0xABCC, irq: irq}
	return c
}

// Tick advances the timer by cycles machine cycles (each = 4 internal
// counter ticks).
func (c *Controller) Tick(cycles int) {
	for i := 0; i < cycles; i++ {
		c.tickOnce()
	}
}

func (c *Controller) tickOnce() {
	if c.reloadPending && c.reloadDelay == 0 {
		c.reloadPending = false // the reload cycle has passed
	}
	if c.reloadDelay > 0 {
		c.reloadDelay--
		if c.reloadDelay == 0 && c.reloadPending {
			// reloadPending stays set for the rest of this cycle so
			// WriteTIMA/WriteTMA can see that the reload just landed.
			c.tima = c.tma
			c.irq.Request(interrupt.Timer)
		}
	}

	for i := 0; i < 4; i++ {
		c.internal++
		c.checkEdge()
	}
}

func (c *Controller) checkEdge() {
	bit := c.enabled && c.internal&c.tapMask() != 0
	if c.lastAndBit && !bit {
		c.incrementTIMA()
	}
	c.lastAndBit = bit
}

func (c *Controller) incrementTIMA() {
	c.tima++
	if c.tima == 0 {
		c.reloadPending = true
		c.reloadDelay = 1 // reload and interrupt land one machine cycle later
	}
}

// ReadDIV returns the visible DIV register (internal counter's high
// byte).
func (c *Controller) ReadDIV() uint8 { return uint8(c.internal >> 8) }

// WriteDIV resets the internal counter to zero. Since this can clear a
// bit that was high, it may itself trigger a falling-edge TIMA
// increment.
func (c *Controller) WriteDIV(uint8) {
	c.internal = 0
	c.checkEdge()
}

// ReadTIMA returns TIMA.
func (c *Controller) ReadTIMA() uint8 { return c.tima }

// WriteTIMA writes TIMA, unless a reload is about to land on this exact
// cycle, in which case the write is overridden by the pending reload
// (the well-known "write during reload window" quirk).
func (c *Controller) WriteTIMA(v uint8) {
	if c.reloadPending && c.reloadDelay == 0 {
		return
	}
	c.tima = v
	c.reloadPending = false
}

// ReadTMA returns TMA.
func (c *Controller) ReadTMA() uint8 { return c.tma }

// WriteTMA writes TMA. If a reload is in flight, the new value also
// retroactively becomes the reloaded TIMA value.
func (c *Controller) WriteTMA(v uint8) {
	c.tma = v
	if c.reloadPending && c.reloadDelay == 0 {
		c.tima = v
	}
}

// ReadTAC returns TAC with its unused upper bits set.
func (c *Controller) ReadTAC() uint8 {
	return 0xF8 | bits.Val(c.enabled, bits.Bit2) | c.selectBit
}

// WriteTAC updates enable and clock-select, checking for a falling edge
// on the multiplexer output caused purely by the reconfiguration (a
// documented quirk: disabling the timer, or changing select bits, can
// itself clock TIMA once).
func (c *Controller) WriteTAC(v uint8) {
	c.tac = v & 0x07
	newEnabled := v&bits.Bit2 != 0
	newBit := v & 0x03

	wasHigh := c.lastAndBit
	c.enabled = newEnabled
	c.selectBit = newBit
	nowHigh := c.enabled && c.internal&c.tapMask() != 0
	if wasHigh && !nowHigh {
		c.incrementTIMA()
	}
	c.lastAndBit = nowHigh
}
