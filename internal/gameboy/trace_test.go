package gameboy

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/danhawkins/gopherboy/internal/model"
)

type discardSink struct{}

func (discardSink) PushSample(l, r int16) {}

func blankROM() []byte {
	rom := make([]byte, 0x8000)
	rom[0x147] = 0x00
	rom[0x148] = 0x00
	rom[0x149] = 0x00
	return rom
}

// TestEnableTrace_LogsOneLinePerInstruction exercises spec §6's
// --log-to-file requirement: a stable per-instruction text trace with
// PC, opcode bytes, registers and flags.
func TestEnableTrace_LogsOneLinePerInstruction(t *testing.T) {
	rom := blankROM()
	rom[0x100] = 0x00 // NOP
	rom[0x101] = 0xAF // XOR A

	gb, err := New(rom, discardSink{}, Options{Model: model.DMG})
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := logrus.New()
	logger.Out = &buf
	logger.Formatter = &logrus.TextFormatter{DisableColors: true, DisableTimestamp: true}
	gb.EnableTrace(logger)

	gb.tracer.trace(gb)
	out := buf.String()
	require.Contains(t, out, "PC:0100")
	require.Contains(t, out, "OP:00 AF 00")
	require.Contains(t, out, "AF:01B0")
	require.Contains(t, out, "SP:FFFE")

	buf.Reset()
	gb.EnableTrace(nil)
	require.Nil(t, gb.tracer)
}

func TestFlagString(t *testing.T) {
	require.Equal(t, "znhc", flagString(0x00))
	require.Equal(t, "ZNHC", flagString(0xF0))
	require.Equal(t, "Znhc", flagString(0x80))
}
