package apu

import "testing"

import "github.com/stretchr/testify/require"

type captureSink struct {
	samples int
}

func (c *captureSink) PushSample(l, r int16) { c.samples++ }

// TestLengthCounter_DisablesChannelAfterNTicks exercises spec §8: a
// channel with length enabled and length N, triggered at frame step 0,
// runs for exactly N length-counter ticks before disabling itself.
func TestLengthCounter_DisablesChannelAfterNTicks(t *testing.T) {
	const n = 5
	s := &square{active: true, lengthEnabled: true, lengthCounter: n}

	for i := 0; i < n-1; i++ {
		s.tickLength()
		require.True(t, s.active, "channel stays active before the Nth tick")
	}
	s.tickLength()
	require.False(t, s.active, "channel disables itself on the Nth length tick")
}

func TestLengthCounter_IgnoredWhenDisabled(t *testing.T) {
	s := &square{active: true, lengthEnabled: false, lengthCounter: 1}
	s.tickLength()
	require.True(t, s.active)
	require.Equal(t, uint16(1), s.lengthCounter, "counter doesn't run unless length is enabled")
}

func TestWriteNR11_LoadsLengthCounterWhilePowerOff(t *testing.T) {
	a := New(&captureSink{}, 44100)
	// NR11 length writes are accepted even while the APU is powered
	// off (spec §4.5's "length-counter writes when the APU is off").
	a.Write(0xFF11, 0x3F) // length data = 0x3F -> counter = 64-63 = 1
	require.Equal(t, uint16(1), a.ch1.lengthCounter)
}

func TestTriggerReloadsLengthWhenZero(t *testing.T) {
	a := New(&captureSink{}, 44100)
	a.WriteNR52(0x80) // power on
	a.ch1.dacEnabled = true
	a.ch1.lengthCounter = 0
	a.Write(0xFF14, 0x80) // trigger bit set
	require.Equal(t, uint16(64), a.ch1.lengthCounter, "trigger reloads a fully-expired length counter to max")
}
