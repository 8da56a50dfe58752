// Package joypad implements the Game Boy's button matrix register, $FF00.
package joypad

import (
	"github.com/danhawkins/gopherboy/internal/bits"
	"github.com/danhawkins/gopherboy/internal/interrupt"
)

// Button identifies one of the eight physical buttons.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonRight
	ButtonLeft
	ButtonUp
	ButtonDown
)

// direction/action bit groups, as laid out in the $FF00 register: the low
// nibble holds whichever group is selected, the high bits select groups.
const (
	selectAction    = bits.Bit5
	selectDirection = bits.Bit4
)

// Controller tracks button state and produces the $FF00 matrix read.
type Controller struct {
	register uint8 // raw value last written (selection bits)
	action   uint8 // bit set => pressed, for A/B/Select/Start
	dir      uint8 // bit set => pressed, for Right/Left/Up/Down

	irq *interrupt.Controller
}

// New returns a Controller wired to irq for the joypad interrupt on
// press.
func New(irq *interrupt.Controller) *Controller {
	return &Controller{register: 0x30, irq: irq}
}

// Press marks btn as held down, requesting a joypad interrupt if the
// button was not already held and its group is currently selected
// (transition high->low on the matrix line wakes the CPU from STOP).
func (c *Controller) Press(btn Button) {
	var wasPressed bool
	switch {
	case btn <= ButtonStart:
		wasPressed = c.action&(1<<uint(btn)) != 0
		c.action |= 1 << uint(btn)
	default:
		wasPressed = c.dir&(1<<uint(btn-ButtonRight)) != 0
		c.dir |= 1 << uint(btn-ButtonRight)
	}
	if !wasPressed && c.lineLow(btn) {
		c.irq.Request(interrupt.Joypad)
	}
}

// Release marks btn as no longer held.
func (c *Controller) Release(btn Button) {
	switch {
	case btn <= ButtonStart:
		c.action &^= 1 << uint(btn)
	default:
		c.dir &^= 1 << uint(btn-ButtonRight)
	}
}

func (c *Controller) lineLow(btn Button) bool {
	if btn <= ButtonStart {
		return c.register&selectAction == 0
	}
	return c.register&selectDirection == 0
}

// Read returns the $FF00 value: low nibble is active-low, reflecting
// whichever group(s) are selected.
func (c *Controller) Read() uint8 {
	result := c.register | 0xC0
	low := uint8(0x0F)
	if c.register&selectAction == 0 {
		low &^= c.action
	}
	if c.register&selectDirection == 0 {
		low &^= c.dir
	}
	return result&0xF0 | low
}

// Write stores the selection bits (bits 4-5); bits 0-3 are read-only from
// the CPU's perspective.
func (c *Controller) Write(v uint8) {
	c.register = v & 0x30
}
