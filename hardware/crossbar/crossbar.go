package crossbar

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/testfalcon/logger"
)

// the address of the first crossbar register
const Origin = 0xff8900

// the address of the last crossbar register. the area includes the GPIO
// registers at $FF8940 to $FF8943
const Memtop = 0xff8943

// Memory is used by the DMA units to read and write sound frames
type Memory interface {
	Read(address uint32) (uint8, error)
	Write(address uint32, data uint8) error
}

// Scheduler runs a function a number of CPU cycles into the future. An event
// with the same name as an event that is already pending replaces the pending
// event
type Scheduler interface {
	Schedule(event string, cycles uint32, fn func())

	// the number of cycles until the event fires. false if the event is not
	// pending
	Pending(event string) (uint64, bool)
}

// DSP is the SSI port of the DSP as seen from the crossbar
type DSP interface {
	// the transmit register of the SSI
	ReadTransmit() uint32

	// the receive register of the SSI
	WriteReceive(data uint32)

	// the SC2 (transmit frame sync) and SC1 (receive frame sync) lines
	FrameSyncTransmit(frame bool)
	FrameSyncReceive(frame bool)

	// the SCK (transmit clock) and SC0 (receive clock) lines
	ClockTransmit()
	ClockReceive()
}

// Interrupts is the MFP as seen from the crossbar
type Interrupts interface {
	// the value of the Timer A control register
	TimerAControl() uint8

	// an event on the Timer A input
	TimerAEventCount()

	// an edge on GPIP7
	InputOnGPIP7()
}

// Context allows the crossbar to log and to discover the sample rate of the
// host audio device
type Context interface {
	logger.Permission
	AudioFrequency() int
}

// Names of the scheduled events
const (
	Event25Mhz = "crossbar 25Mhz"
	Event32Mhz = "crossbar 32Mhz"
)

// Timer A event count mode in the TACR register of the MFP
const timerAEventCountMode = 0x08

// Crossbar implements the Falcon sound matrix
type Crossbar struct {
	ctx   Context
	mem   Memory
	sched Scheduler
	dsp   DSP
	mfp   Interrupts

	regs [RegisterCount]uint8

	Config  Config
	Play    DMA
	Record  DMA
	Xmit    DSPPort
	Receive DSPPort
	DAC     Codec
	ADC     Codec
	Clock25 Oscillator
	Clock32 Oscillator
}

// Config is the decoded state of the sound mode and clock registers
type Config struct {
	// the frame address registers refer to the record DMA rather than the
	// play DMA
	DMASelected bool

	PlayTracks     uint16
	RecordTracks   uint16
	TrackMonitored uint16

	Is16Bit  bool
	IsStereo bool

	STEFreq uint8
	Divider uint8
	STEMode bool

	// true if the combination of divider and STE frequency would be silent on
	// real hardware
	DACMuted bool

	// clock sources of the DSP transmit and the DMA play. one of the Freq
	// values
	XmitFreq uint8
	PlayFreq uint8

	CodecInputSource uint8
	ADCInput         uint8
	Gain             uint8
	Attenuation      uint8

	// the value of the DMA control register the last time a DMA unit was
	// started or stopped
	SoundControl uint8
}

// Clock sources in the source selector
const (
	Freq25Mhz    = 0
	FreqExternal = 1
	Freq32Mhz    = 2
)

// Route is the set of connections for one crossbar device. For a source device
// the fields say which destination devices receive the samples. For a
// destination device the fields say which source device is being listened to
type Route struct {
	Codec bool
	DSP   bool
	DMA   bool
}

func (r Route) String() string {
	var s []string
	if r.Codec {
		s = append(s, "codec")
	}
	if r.DSP {
		s = append(s, "dsp")
	}
	if r.DMA {
		s = append(s, "dma")
	}
	if len(s) == 0 {
		return "-"
	}
	return strings.Join(s, "+")
}

// Create a new instance of the crossbar. The crossbar is reset but the
// oscillators are not started until the first call to Reset()
func Create(ctx Context, mem Memory, sched Scheduler, dsp DSP, mfp Interrupts) *Crossbar {
	xb := &Crossbar{
		ctx:   ctx,
		mem:   mem,
		sched: sched,
		dsp:   dsp,
		mfp:   mfp,
	}
	return xb
}

func (xb *Crossbar) Label() string {
	return "Crossbar"
}

// Reset the crossbar. A cold reset also clears the registers and the decoded
// connections. Both oscillators are restarted, replacing any pending events
func (xb *Crossbar) Reset(cold bool) {
	if cold {
		clear(xb.regs[:])
		xb.Config = Config{}
		xb.Play = DMA{}
		xb.Record = DMA{}
		xb.Xmit = DSPPort{}
		xb.Receive = DSPPort{}
	}

	xb.regs[regDMAControl] = 0
	xb.Play.reset()
	xb.Record.reset()

	xb.DAC.reset()
	xb.ADC.reset()

	xb.Xmit.WordCount = 0

	xb.Config.DMASelected = false
	xb.Config.TrackMonitored = 0
	xb.Config.STEMode = true
	xb.Config.Divider = 0
	xb.Config.STEFreq = 3
	xb.Config.PlayTracks = 1
	xb.Config.RecordTracks = 1
	xb.Config.Is16Bit = false
	xb.Config.IsStereo = true
	xb.Config.CodecInputSource = 3
	xb.Config.ADCInput = 3
	xb.Config.Gain = 0
	xb.Config.Attenuation = 0
	xb.Config.DACMuted = IsMuted(xb.Config.Divider, xb.Config.STEFreq)

	xb.Clock25.reset(resetCycles)
	xb.Clock32.reset(resetCycles)

	xb.startClock25()
	xb.startClock32()
}

func (xb *Crossbar) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "mode: %s %s, play tracks %d, record tracks %d, monitor %d\n",
		map[bool]string{true: "16bit", false: "8bit"}[xb.Config.Is16Bit],
		map[bool]string{true: "stereo", false: "mono"}[xb.Config.IsStereo],
		xb.Config.PlayTracks, xb.Config.RecordTracks, xb.Config.TrackMonitored)
	fmt.Fprintf(&s, "rate: %.0fHz (25Mhz) %.0fHz (32Mhz)", xb.SampleRate(Freq25Mhz), xb.SampleRate(Freq32Mhz))
	if xb.Config.STEMode {
		s.WriteString(" STE")
	}
	if xb.Config.DACMuted {
		s.WriteString(" muted")
	}
	s.WriteString("\n")
	fmt.Fprintf(&s, "play: %s\n", xb.Play.String())
	fmt.Fprintf(&s, "record: %s\n", xb.Record.String())
	fmt.Fprintf(&s, "dsp xmit: %s\n", xb.Xmit.String())
	fmt.Fprintf(&s, "dsp receive: %s\n", xb.Receive.String())
	fmt.Fprintf(&s, "adc: %s\n", xb.ADC.String())
	fmt.Fprintf(&s, "dac: %s", xb.DAC.String())
	return s.String()
}

// Status returns a single line summary of the crossbar
func (xb *Crossbar) Status() string {
	return fmt.Sprintf("%s: src=%04x dst=%04x div=%d play=%v record=%v pending=%d",
		xb.Label(), xb.word(regSourceHi), xb.word(regDestinationHi), xb.Config.Divider,
		xb.Play.Running, xb.Record.Running, xb.DAC.Pending)
}
