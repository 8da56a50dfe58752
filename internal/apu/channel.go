package apu

var dutyTable = [4][8]uint8{
	{0, 0, 0, 0, 0, 0, 0, 1}, // 12.5%
	{1, 0, 0, 0, 0, 0, 0, 1}, // 25%
	{1, 0, 0, 0, 0, 1, 1, 1}, // 50%
	{0, 1, 1, 1, 1, 1, 1, 0}, // 75%
}

// square implements channel 1 (with frequency sweep) and channel 2
// (without; sweep is a no-op when the sweep field is false).
type square struct {
	sweep bool

	active     bool
	dacEnabled bool

	duty    uint8
	dutyPos uint8
	freq    uint16
	timer   int

	lengthCounter uint16
	lengthEnabled bool

	volume, initVolume uint8
	envDirection       bool
	envPeriod          uint8
	envTimer           uint8

	sweepPeriod    uint8
	sweepDirection bool
	sweepShift     uint8
	sweepTimer     uint8
	sweepEnabled   bool
	shadowFreq     uint16
}

func (s *square) tickFreq() {
	s.timer--
	if s.timer <= 0 {
		s.timer = (2048 - int(s.freq)) * 4
		s.dutyPos = (s.dutyPos + 1) & 7
	}
}

func (s *square) tickLength() {
	if s.lengthEnabled && s.lengthCounter > 0 {
		s.lengthCounter--
		if s.lengthCounter == 0 {
			s.active = false
		}
	}
}

func (s *square) tickEnvelope() {
	if s.envPeriod == 0 {
		return
	}
	if s.envTimer > 0 {
		s.envTimer--
	}
	if s.envTimer == 0 {
		s.envTimer = s.envPeriod
		if s.envDirection && s.volume < 15 {
			s.volume++
		} else if !s.envDirection && s.volume > 0 {
			s.volume--
		}
	}
}

func (s *square) sweepCalc() uint16 {
	delta := s.shadowFreq >> s.sweepShift
	if s.sweepDirection {
		return s.shadowFreq - delta
	}
	return s.shadowFreq + delta
}

func (s *square) tickSweep() {
	if !s.sweep {
		return
	}
	if s.sweepTimer > 0 {
		s.sweepTimer--
	}
	if s.sweepTimer != 0 {
		return
	}
	if s.sweepPeriod > 0 {
		s.sweepTimer = s.sweepPeriod
	} else {
		s.sweepTimer = 8
	}
	if !s.sweepEnabled || s.sweepPeriod == 0 {
		return
	}
	newFreq := s.sweepCalc()
	if newFreq > 2047 {
		s.active = false
		return
	}
	if s.sweepShift > 0 {
		s.shadowFreq = newFreq
		s.freq = newFreq
		if s.sweepCalc() > 2047 {
			s.active = false
		}
	}
}

func (s *square) trigger() {
	s.active = s.dacEnabled
	if s.lengthCounter == 0 {
		s.lengthCounter = 64
	}
	s.timer = (2048 - int(s.freq)) * 4
	s.envTimer = s.envPeriod
	s.volume = s.initVolume
	if s.sweep {
		s.shadowFreq = s.freq
		if s.sweepPeriod > 0 {
			s.sweepTimer = s.sweepPeriod
		} else {
			s.sweepTimer = 8
		}
		s.sweepEnabled = s.sweepPeriod != 0 || s.sweepShift != 0
		if s.sweepShift != 0 && s.sweepCalc() > 2047 {
			s.active = false
		}
	}
}

func (s *square) output() uint8 {
	if !s.active {
		return 0
	}
	if dutyTable[s.duty][s.dutyPos] == 0 {
		return 0
	}
	return s.volume
}

// wave implements channel 3: 32 4-bit samples played back from wave RAM.
type wave struct {
	active     bool
	dacEnabled bool

	freq  uint16
	timer int

	lengthCounter uint16
	lengthEnabled bool

	volumeShift uint8
	ram         [16]byte
	pos         uint8
	sampleBuf   uint8
}

func (w *wave) reset() { *w = wave{} }

func (w *wave) tickFreq() {
	w.timer--
	if w.timer <= 0 {
		w.timer = (2048 - int(w.freq)) * 2
		w.pos = (w.pos + 1) & 31
		b := w.ram[w.pos/2]
		if w.pos%2 == 0 {
			w.sampleBuf = b >> 4
		} else {
			w.sampleBuf = b & 0x0F
		}
	}
}

func (w *wave) tickLength() {
	if w.lengthEnabled && w.lengthCounter > 0 {
		w.lengthCounter--
		if w.lengthCounter == 0 {
			w.active = false
		}
	}
}

func (w *wave) trigger() {
	w.active = w.dacEnabled
	if w.lengthCounter == 0 {
		w.lengthCounter = 256
	}
	w.timer = (2048 - int(w.freq)) * 2
	w.pos = 0
}

func (w *wave) output() uint8 {
	if !w.active {
		return 0
	}
	switch w.volumeShift {
	case 0:
		return 0
	case 1:
		return w.sampleBuf
	case 2:
		return w.sampleBuf >> 1
	default:
		return w.sampleBuf >> 2
	}
}

var noiseDivisors = [8]int{8, 16, 32, 48, 64, 80, 96, 112}

// noise implements channel 4: a 15-bit LFSR clocked by a divisor/shift
// pair, optionally folded into 7-bit mode.
type noise struct {
	active     bool
	dacEnabled bool

	lengthCounter uint16
	lengthEnabled bool

	volume, initVolume uint8
	envDirection       bool
	envPeriod          uint8
	envTimer           uint8

	shiftAmount  uint8
	widthMode    bool
	divisorCode  uint8
	lfsr         uint16
	timer        int
}

func (n *noise) tickFreq() {
	n.timer--
	if n.timer <= 0 {
		n.timer = noiseDivisors[n.divisorCode] << n.shiftAmount
		bit := (n.lfsr ^ (n.lfsr >> 1)) & 1
		n.lfsr = (n.lfsr >> 1) | (bit << 14)
		if n.widthMode {
			n.lfsr = n.lfsr&^(1<<6) | (bit << 6)
		}
	}
}

func (n *noise) tickLength() {
	if n.lengthEnabled && n.lengthCounter > 0 {
		n.lengthCounter--
		if n.lengthCounter == 0 {
			n.active = false
		}
	}
}

func (n *noise) tickEnvelope() {
	if n.envPeriod == 0 {
		return
	}
	if n.envTimer > 0 {
		n.envTimer--
	}
	if n.envTimer == 0 {
		n.envTimer = n.envPeriod
		if n.envDirection && n.volume < 15 {
			n.volume++
		} else if !n.envDirection && n.volume > 0 {
			n.volume--
		}
	}
}

func (n *noise) trigger() {
	n.active = n.dacEnabled
	if n.lengthCounter == 0 {
		n.lengthCounter = 64
	}
	n.envTimer = n.envPeriod
	n.volume = n.initVolume
	n.lfsr = 0x7FFF
	n.timer = noiseDivisors[n.divisorCode] << n.shiftAmount
}

func (n *noise) output() uint8 {
	if !n.active {
		return 0
	}
	if n.lfsr&1 == 0 {
		return n.volume
	}
	return 0
}
