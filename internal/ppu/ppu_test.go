package ppu

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/danhawkins/gopherboy/internal/interrupt"
	"github.com/danhawkins/gopherboy/internal/model"
)

func newEnabledPPU() *PPU {
	p := New(model.DMG, interrupt.NewController())
	p.WriteLCDC(0x80) // LCD on, everything else off
	return p
}

// TestModeSequence_VisibleLine exercises spec §8: OAMScan -> Drawing ->
// HBlank across one visible line, 456 dots total.
func TestModeSequence_VisibleLine(t *testing.T) {
	p := newEnabledPPU()
	require.Equal(t, OAMScan, p.Mode())

	p.Tick(dotsOAMScan - 1)
	require.Equal(t, OAMScan, p.Mode(), "still scanning one dot before the boundary")
	p.Tick(1)
	require.Equal(t, Drawing, p.Mode())

	p.Tick(dotsDrawing - 1)
	require.Equal(t, Drawing, p.Mode())
	p.Tick(1)
	require.Equal(t, HBlank, p.Mode())

	p.Tick(dotsHBlank - 1)
	require.Equal(t, HBlank, p.Mode())
	require.Equal(t, uint8(0), p.LY())
	p.Tick(1)
	require.Equal(t, OAMScan, p.Mode())
	require.Equal(t, uint8(1), p.LY())
}

// TestLYAdvancesOnceAcrossFullFrame checks LY sweeps 0..153 exactly once
// per frame and dot count per line is exactly 456.
func TestLYAdvancesOnceAcrossFullFrame(t *testing.T) {
	p := newEnabledPPU()
	seen := []uint8{p.LY()}
	for frame := 0; frame < linesTotal; frame++ {
		p.Tick(dotsPerLine)
		seen = append(seen, p.LY())
	}
	require.Len(t, seen, linesTotal+1)
	for i := 0; i < linesTotal; i++ {
		require.Equal(t, uint8(i), seen[i])
	}
	require.Equal(t, uint8(0), seen[linesTotal], "LY wraps back to 0 after line 153")
}

func TestVBlankEntersAtLine144(t *testing.T) {
	p := newEnabledPPU()
	for p.LY() != 144 {
		p.Tick(dotsPerLine)
	}
	require.Equal(t, VBlank, p.Mode())
	require.True(t, p.HasFrame())
}

// TestOAMLockedDuringOAMScanAndDrawing exercises the CPU-side OAM access
// lock, independent of the bus-level OAM DMA lock.
func TestOAMLockedDuringOAMScanAndDrawing(t *testing.T) {
	p := newEnabledPPU()
	require.Equal(t, OAMScan, p.Mode())
	require.Equal(t, uint8(0xFF), p.ReadOAM(0xFE00))

	p.Tick(dotsOAMScan)
	require.Equal(t, Drawing, p.Mode())
	require.Equal(t, uint8(0xFF), p.ReadOAM(0xFE00))

	p.Tick(dotsDrawing)
	require.Equal(t, HBlank, p.Mode())
	p.WriteOAM(0xFE00, 0x42)
	require.Equal(t, uint8(0x42), p.ReadOAM(0xFE00))
}
