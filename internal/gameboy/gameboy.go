// Package gameboy is the system driver: it owns one instance of every
// component, wires them together through the bus, and exposes the
// host-facing API (spec §6) that a CLI or GUI front end drives.
package gameboy

import (
	"fmt"

	"github.com/danhawkins/gopherboy/internal/apu"
	"github.com/danhawkins/gopherboy/internal/bus"
	"github.com/danhawkins/gopherboy/internal/cartridge"
	"github.com/danhawkins/gopherboy/internal/cpu"
	"github.com/danhawkins/gopherboy/internal/interrupt"
	"github.com/danhawkins/gopherboy/internal/joypad"
	"github.com/danhawkins/gopherboy/internal/model"
	"github.com/danhawkins/gopherboy/internal/ppu"
	"github.com/danhawkins/gopherboy/internal/serial"
	"github.com/danhawkins/gopherboy/internal/timer"
)

// Options configures a new System.
type Options struct {
	Model      model.Model
	BootROM    []byte
	SampleRate int
	Grayscale  bool
}

// System is one running Game Boy: a cartridge plus every shared
// component, stepped one instruction at a time by RunFrame.
type System struct {
	Model model.Model

	Cart *cartridge.Cartridge
	IRQ  *interrupt.Controller
	PPU  *ppu.PPU
	APU  *apu.APU
	Timer *timer.Controller
	Joypad *joypad.Controller
	Serial *serial.Controller
	Bus  *bus.Bus
	CPU  *cpu.CPU

	// OnSerialByte, if set, observes bytes shifted out the serial port
	// (wired through to serial.Controller.OnByte; useful for test ROMs
	// like cpu_instrs.gb that report results over the link port).
	OnSerialByte func(b uint8)

	running  bool
	stop     bool
	rumbleOn bool

	tracer *instructionTracer
}

// Button identifies one of the eight physical buttons (re-exported so
// callers don't need to import internal/joypad directly).
type Button = joypad.Button

const (
	ButtonA      = joypad.ButtonA
	ButtonB      = joypad.ButtonB
	ButtonSelect = joypad.ButtonSelect
	ButtonStart  = joypad.ButtonStart
	ButtonRight  = joypad.ButtonRight
	ButtonLeft   = joypad.ButtonLeft
	ButtonUp     = joypad.ButtonUp
	ButtonDown   = joypad.ButtonDown
)

// New constructs a System from ROM bytes, an audio sink, and options.
// It resolves the effective hardware model from opts.Model and the
// cartridge's CGB flag, builds every component, and either maps the
// supplied boot ROM or seeds post-boot register state directly.
func New(romBytes []byte, sink apu.Sink, opts Options) (*System, error) {
	cart, err := cartridge.New(romBytes)
	if err != nil {
		return nil, fmt.Errorf("gameboy: %w", err)
	}

	m := resolveModel(opts.Model, cart.Header)

	gb := &System{Model: m, Cart: cart}
	gb.IRQ = interrupt.NewController()
	gb.PPU = ppu.New(m, gb.IRQ)
	gb.PPU.Grayscale = opts.Grayscale
	gb.APU = apu.New(sink, opts.SampleRate)
	gb.Timer = timer.New(gb.IRQ)
	gb.Joypad = joypad.New(gb.IRQ)
	gb.Serial = serial.New(gb.IRQ)
	gb.Serial.OnByte = func(b uint8) {
		if gb.OnSerialByte != nil {
			gb.OnSerialByte(b)
		}
	}

	gb.Bus = bus.New(m, cart, gb.IRQ, gb.PPU, gb.APU, gb.Timer, gb.Joypad, gb.Serial)
	gb.CPU = cpu.New(gb.Bus, gb.IRQ)

	if rumble, ok := cart.MBC.(cartridge.RumbleMBC); ok {
		rumble.SetRumbleCallback(func(on bool) { gb.rumbleOn = on })
	}

	if len(opts.BootROM) > 0 {
		gb.Bus.SetBootROM(opts.BootROM)
		gb.CPU.PC = 0
	} else {
		gb.applyPostBootState()
	}

	return gb, nil
}

// resolveModel decides the effective hardware model: a CGB request
// forces CGB, otherwise the cartridge's CGB-support flag decides. A DMG
// request is not distinguished from auto, so a CGB-capable cartridge
// always runs as CGB.
func resolveModel(requested model.Model, h cartridge.Header) model.Model {
	if requested == model.CGB {
		return model.CGB
	}
	if h.CGBSupport() != cartridge.CGBUnsupported {
		return model.CGB
	}
	return model.DMG
}

// SetButtons atomically replaces the full button state from an 8-bit
// mask (spec §6): bit order A,B,Select,Start,Right,Left,Up,Down.
func (gb *System) SetButtons(mask uint8) {
	buttons := []joypad.Button{
		joypad.ButtonA, joypad.ButtonB, joypad.ButtonSelect, joypad.ButtonStart,
		joypad.ButtonRight, joypad.ButtonLeft, joypad.ButtonUp, joypad.ButtonDown,
	}
	for i, btn := range buttons {
		if mask&(1<<uint(i)) != 0 {
			gb.Joypad.Press(btn)
		} else {
			gb.Joypad.Release(btn)
		}
	}
}

// Framebuffer returns the most recently completed frame (160x144 RGBA,
// row-major).
func (gb *System) Framebuffer() []byte { return gb.PPU.Framebuffer() }

// RumbleSignal reports the most recent rumble-motor state reported by
// the cartridge (MBC5+RUMBLE only; always false otherwise).
func (gb *System) RumbleSignal() bool { return gb.rumbleOn }

// Stop requests that RunFrame return after the current instruction,
// for a clean shutdown from another goroutine.
func (gb *System) Stop() { gb.stop = true }

// Shutdown persists battery-backed save RAM, if the cartridge has a
// battery, through save.
func (gb *System) Shutdown(save func(data []byte) error) error {
	if !gb.Cart.Header.Type.HasBattery() {
		return nil
	}
	data := gb.Cart.MBC.SaveRAM()
	if data == nil {
		return nil
	}
	return save(data)
}

// LoadSaveRAM restores previously persisted save RAM into the
// cartridge's MBC.
func (gb *System) LoadSaveRAM(data []byte) {
	gb.Cart.MBC.LoadRAM(data)
}

// RunFrame drives the system until the PPU reports a completed frame
// (VBlank entry on line 144), per the spec §4.7 driver loop: step the
// CPU one instruction at a time; every memory access along the way
// fans out to the PPU/APU/timer/DMA through the bus's own tick.
func (gb *System) RunFrame() {
	gb.PPU.ClearFrame()
	for !gb.PPU.HasFrame() {
		if gb.stop {
			return
		}
		if gb.tracer != nil {
			gb.tracer.trace(gb)
		}
		gb.CPU.Step()
	}
}
