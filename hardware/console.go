package hardware

import (
	"fmt"
	"strings"
	"sync"

	"github.com/jetsetilly/testfalcon/hardware/clocks"
	"github.com/jetsetilly/testfalcon/hardware/crossbar"
	"github.com/jetsetilly/testfalcon/hardware/dsp"
	"github.com/jetsetilly/testfalcon/hardware/memory"
	"github.com/jetsetilly/testfalcon/hardware/mfp"
	"github.com/jetsetilly/testfalcon/hardware/scheduler"
	"github.com/jetsetilly/testfalcon/logger"
	"github.com/jetsetilly/testfalcon/ui"
)

// Context is the environment the console and its chips run in
type Context interface {
	memory.Context
	crossbar.Context
}

// the console is run in slices of this many per second. the microphone is
// read and the monitor is updated once per slice
const sliceHz = 100

// SliceCycles is the number of CPU cycles in one slice of Run()
const SliceCycles = clocks.CPU / sliceHz

// the monitor is updated every few slices
const monitorSlices = 5

type Console struct {
	ctx Context
	ui  *ui.UI

	// emulation and the host audio device run in different goroutines. crit
	// is held while the scheduler advances and while samples are generated
	crit sync.Mutex

	Mem      *memory.Memory
	Sched    *scheduler.Scheduler
	MFP      *mfp.MFP
	DSP      *dsp.SSI
	Crossbar *crossbar.Crossbar

	audio   *audioBuffer
	limiter *limiter

	mic            Microphone
	micWarningDone bool

	slices int
}

// Create a console with the specified amount of ST-RAM. The UI argument can be
// nil, in which case there is no audio output or user input
func Create(ctx Context, u *ui.UI, stram int) *Console {
	con := &Console{
		ctx:     ctx,
		ui:      u,
		Sched:   scheduler.NewScheduler(),
		limiter: newLimiter(sliceHz),
	}

	var addChips memory.AddChips
	con.Mem, addChips = memory.Create(ctx, stram)
	con.MFP = mfp.Create(ctx)
	con.DSP = dsp.NewSSI()
	con.Crossbar = crossbar.Create(ctx, con.Mem.STRam, con.Sched, con.DSP, con.MFP)
	addChips(con.Crossbar, con.MFP)
	con.DSP.Plumb(con.Crossbar)

	con.audio = newAudioBuffer(con)

	con.Reset(true)

	return con
}

// RegisterAudio asks the GUI to start playing the console's audio. It does
// nothing if there is no UI or if the context has no audio frequency
func (con *Console) RegisterAudio() {
	if con.ui == nil {
		return
	}
	freq := con.ctx.AudioFrequency()
	if freq <= 0 {
		return
	}
	select {
	case con.ui.AudioSetup <- ui.AudioSetup{Freq: freq, Read: con.audio}:
	default:
		logger.Log(con.ctx, "audio", "audio setup request dropped")
	}
}

// Reset the console. All pending events are removed and the crossbar
// oscillators are restarted
func (con *Console) Reset(random bool) {
	con.crit.Lock()
	defer con.crit.Unlock()

	con.Sched.Reset()
	con.Mem.Reset(random)
	con.MFP.Reset()
	con.DSP.Reset()
	con.Crossbar.Reset(true)
}

// WarmReset resets the sound system but leaves memory and the crossbar routing
// untouched
func (con *Console) WarmReset() {
	con.crit.Lock()
	defer con.crit.Unlock()

	con.MFP.Reset()
	con.Crossbar.Reset(false)
}

// Step advances the console by the number of CPU cycles
func (con *Console) Step(cycles uint64) {
	con.crit.Lock()
	defer con.crit.Unlock()
	con.Sched.Advance(cycles)
}

// Run the console in real time until the hook function or the user input
// returns an error
func (con *Console) Run(hook func() error) error {
	for {
		err := con.handleInput()
		if err != nil {
			return err
		}

		// microphone samples are fed before the slice is run so that the ADC
		// reads the samples for this slice
		con.feedMicrophone()
		con.Step(SliceCycles)

		if hook != nil {
			err = hook()
			if err != nil {
				return err
			}
		}

		con.slices++
		if con.slices%monitorSlices == 0 {
			con.pushMonitor()
		}

		con.limiter.Wait()
	}
}

// Read a byte from the address in the console memory map
func (con *Console) Read(address uint32) (uint8, error) {
	con.crit.Lock()
	defer con.crit.Unlock()
	return con.Mem.Read(address)
}

// Write a byte to the address in the console memory map
func (con *Console) Write(address uint32, data uint8) error {
	con.crit.Lock()
	defer con.crit.Unlock()
	return con.Mem.Write(address, data)
}

// WriteWord writes a big-endian word to the address in the console memory map
func (con *Console) WriteWord(address uint32, data uint16) error {
	con.crit.Lock()
	defer con.crit.Unlock()
	return con.Mem.WriteWord(address, data)
}

// Cycles returns the number of CPU cycles since the last reset
func (con *Console) Cycles() uint64 {
	con.crit.Lock()
	defer con.crit.Unlock()
	return con.Sched.Cycles()
}

func (con *Console) pushMonitor() {
	if con.ui == nil {
		return
	}

	con.crit.Lock()
	l, r := con.Crossbar.DAC.Level()
	m := ui.Monitor{
		Left:    l,
		Right:   r,
		Routing: con.routing(),
		Status:  con.Crossbar.Status(),
		Muted:   con.Crossbar.Config.DACMuted,
	}
	con.crit.Unlock()

	con.ui.PushMonitor(m)
}

func (con *Console) routing() string {
	xb := con.Crossbar
	return fmt.Sprintf("dma play -> %s\ndsp xmit -> %s\nadc -> %s\ndac <- %s",
		xb.Play.Route, xb.Xmit.Route, xb.ADC.Route, xb.DAC.Route)
}

// Status returns the status line of every chip in the console
func (con *Console) Status() string {
	con.crit.Lock()
	defer con.crit.Unlock()

	var s strings.Builder
	fmt.Fprintf(&s, "cycles: %d\n", con.Sched.Cycles())
	s.WriteString(con.Crossbar.Status())
	s.WriteString("\n")
	s.WriteString(con.MFP.Status())
	s.WriteString("\n")
	s.WriteString(con.DSP.Status())
	return s.String()
}

// String returns the detailed state of the crossbar
func (con *Console) String() string {
	con.crit.Lock()
	defer con.crit.Unlock()
	return con.Crossbar.String()
}
