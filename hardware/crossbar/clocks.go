package crossbar

import "github.com/jetsetilly/testfalcon/hardware/clocks"

// the oscillator interval after a reset and before the first write to a
// clock affecting register
const resetCycles = 160.0

// the counter is rebased when it reaches this value so that the float64
// accumulator keeps its precision and the integer counter never wraps
const rebaseThreshold = 1 << 30

// Oscillator is one of the two internal clocks of the crossbar. The interval
// between ticks is usually not a whole number of CPU cycles. The fractional
// part is accumulated in CounterD and the whole cycles already scheduled are
// counted in CounterL
type Oscillator struct {
	Cycles   float64
	CounterD float64
	CounterL uint32
}

func (o *Oscillator) reset(cycles float64) {
	o.Cycles = cycles
	o.CounterD = 0
	o.CounterL = 0
}

// Next returns the number of whole CPU cycles until the next tick
func (o *Oscillator) Next() uint32 {
	o.CounterD += o.Cycles
	n := uint32(o.CounterD) - o.CounterL
	o.CounterL += n

	if o.CounterL >= rebaseThreshold {
		o.CounterD -= float64(o.CounterL)
		o.CounterL = 0
	}

	return n
}

// SampleRate returns the sample rate for the clock source. One of Freq25Mhz
// or Freq32Mhz. In STE mode the rate is the same for both clocks
func (xb *Crossbar) SampleRate(freq uint8) float64 {
	if xb.Config.Divider&dividerMask == 0 {
		return clocks.STE[xb.Config.STEFreq&modeSTEFreq]
	}
	if freq == Freq32Mhz {
		return clocks.Falcon32Mhz[(xb.Config.Divider&dividerMask)-1]
	}
	return clocks.Falcon25Mhz[(xb.Config.Divider&dividerMask)-1]
}

// IsMuted returns true if the divider and STE frequency select a rate that
// the DAC can not play
func IsMuted(divider uint8, steFreq uint8) bool {
	if divider == 0 && steFreq == 0 {
		return true
	}
	switch divider {
	case 6, 8, 10:
		return true
	}
	return divider >= 12
}

func (xb *Crossbar) recalculateClocks() {
	xb.Config.STEMode = xb.Config.Divider == 0

	tracks := float64(max(xb.Config.PlayTracks, 1))

	xb.Clock25.reset(clocks.CPU / xb.SampleRate(Freq25Mhz) / tracks / 2.0)
	xb.Clock32.reset(clocks.CPU / xb.SampleRate(Freq32Mhz) / tracks / 2.0)

	xb.Config.DACMuted = IsMuted(xb.Config.Divider, xb.Config.STEFreq)
}

func (xb *Crossbar) startClock25() {
	xb.sched.Schedule(Event25Mhz, xb.Clock25.Next(), xb.tick25)
}

func (xb *Crossbar) startClock32() {
	xb.sched.Schedule(Event32Mhz, xb.Clock32.Next(), xb.tick32)
}

func (xb *Crossbar) tick25() {
	// in STE mode the 25Mhz clock drives all transfers
	if xb.Config.STEMode {
		xb.transmitDSP()
		xb.playDMA()
		xb.transmitADC()
		xb.startClock25()
		return
	}

	xb.transmitADC()
	if xb.Config.XmitFreq == Freq25Mhz {
		xb.transmitDSP()
	}
	if xb.Config.PlayFreq == Freq25Mhz {
		xb.playDMA()
	}
	xb.startClock25()
}

func (xb *Crossbar) tick32() {
	if xb.Config.STEMode {
		xb.startClock32()
		return
	}

	if xb.Config.XmitFreq == Freq32Mhz {
		xb.transmitDSP()
	}
	if xb.Config.PlayFreq == Freq32Mhz {
		xb.playDMA()
	}
	xb.startClock32()
}
