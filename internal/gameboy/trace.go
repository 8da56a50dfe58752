package gameboy

import "github.com/danhawkins/gopherboy/pkg/log"

// instructionTracer logs one line per CPU instruction in the stable
// PC/opcode/register/flag format spec §6 requires for --log-to-file:
// a test ROM diff or a SingleStepTests comparison reads this as plain
// text, so the field order and width never change once decided.
type instructionTracer struct {
	logger log.Logger
}

// EnableTrace attaches a per-instruction tracer to the system: before
// every CPU.Step call, RunFrame logs the instruction about to execute
// through logger. Passing a nil logger disables tracing again.
func (gb *System) EnableTrace(logger log.Logger) {
	if logger == nil {
		gb.tracer = nil
		return
	}
	gb.tracer = &instructionTracer{logger: logger}
}

// trace logs the instruction at the CPU's current PC before it runs.
// Registers come from CPU.Snapshot and the opcode-byte peek goes
// through Bus.Read, which has no clock side effect, so tracing never perturbs PPU/APU/timer
// sync (unlike routing the peek through ReadCycle).
func (t *instructionTracer) trace(gb *System) {
	pc := gb.CPU.PC
	op0 := gb.Bus.Read(pc)
	op1 := gb.Bus.Read(pc + 1)
	op2 := gb.Bus.Read(pc + 2)
	s := gb.CPU.Snapshot()

	t.logger.Infof(
		"PC:%04X OP:%02X %02X %02X AF:%02X%02X BC:%02X%02X DE:%02X%02X HL:%02X%02X SP:%04X %s",
		pc, op0, op1, op2,
		s.A, s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.SP,
		flagString(s.F),
	)
}

// flagString renders F as the four Z/N/H/C letters, upper case when
// set and lower case when clear, matching the register order the
// teacher's debug dumps already use elsewhere in the engine.
func flagString(f uint8) string {
	bit := func(mask uint8, set, clear byte) byte {
		if f&mask != 0 {
			return set
		}
		return clear
	}
	out := [4]byte{
		bit(0x80, 'Z', 'z'),
		bit(0x40, 'N', 'n'),
		bit(0x20, 'H', 'h'),
		bit(0x10, 'C', 'c'),
	}
	return string(out[:])
}
