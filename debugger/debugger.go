// Package debugger drives the console from the terminal. Commands are read
// from stdin and from the GUI, and Lua scripts can be run with the SCRIPT
// command or the -script flag.
package debugger

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/jetsetilly/testfalcon/hardware"
	"github.com/jetsetilly/testfalcon/hardware/memory"
	"github.com/jetsetilly/testfalcon/logger"
	"github.com/jetsetilly/testfalcon/ui"
	"github.com/jetsetilly/testfalcon/version"
)

type input struct {
	s   string
	err error
}

type debugger struct {
	ctx context

	guiQuit chan bool
	sig     chan os.Signal
	input   chan input

	ui *ui.UI

	console *hardware.Console
	watches map[uint32]watch

	// rule for stepping. by default (the field is nil) the step will move
	// forward by stepCycles
	stepRule   func() bool
	postStep   func()
	stepCycles uint64

	// printing styles
	styles styles
	out    io.Writer
}

func newDebugger(guiQuit chan bool, u *ui.UI, audioFrequency int, stram int) *debugger {
	m := &debugger{
		ctx: context{
			audioFrequency: audioFrequency,
		},
		guiQuit:    guiQuit,
		ui:         u,
		sig:        make(chan os.Signal, 1),
		input:      make(chan input, 1),
		watches:    make(map[uint32]watch),
		stepCycles: hardware.SliceCycles,
		styles:     newStyles(),
		out:        os.Stdout,
	}
	m.ctx.Reset()
	m.console = hardware.Create(&m.ctx, u, stram)
	return m
}

func (m *debugger) print(style lipgloss.Style, s string) {
	fmt.Fprintln(m.out, style.Render(s))
}

// setState replaces any state change that the GUI has not yet consumed
func (m *debugger) setState(state ui.State) {
	if m.ui == nil {
		return
	}
	select {
	case <-m.ui.State:
	default:
	}
	select {
	case m.ui.State <- state:
	default:
	}
}

func (m *debugger) reset() {
	m.ctx.Reset()
	m.console.Reset(true)
	m.print(m.styles.debugger, "console reset")
	m.print(m.styles.crossbar, m.console.Crossbar.Status())
}

// step advances the emulation according to the current step rule. the step
// rule will be reset after the step has completed
//
// returns true if quit signal has been received
func (m *debugger) step() bool {
	defer func() {
		m.stepRule = nil
		m.postStep = nil
		m.stepCycles = hardware.SliceCycles
	}()

	start := m.console.Cycles()

	if m.stepRule == nil {
		m.console.Step(m.stepCycles)
	} else {
		var done bool
		for !done {
			select {
			case <-m.sig:
				done = true
				continue // for loop
			case <-m.guiQuit:
				return true
			default:
			}

			m.console.Step(stepQuantum)
			done = m.stepRule()

			if m.console.Cycles()-start >= stepLimit {
				m.print(m.styles.err, "step rule abandoned")
				break // for loop
			}
		}
	}

	w, err := m.checkWatches()
	if err != nil {
		m.print(m.styles.err, err.Error())
	} else if w != nil {
		m.print(m.styles.watch, w.String())
	}

	m.print(m.styles.debugger, fmt.Sprintf("%d cycles stepped", m.console.Cycles()-start))

	if m.postStep == nil {
		m.print(m.styles.crossbar, m.console.Crossbar.Status())
	} else {
		m.postStep()
	}

	return false
}

func (w *watch) String() string {
	return fmt.Sprintf("watch: %06x = %02x -> %02x", w.ma.address, w.prev, w.data)
}

// returns true if quit signal has been received
func (m *debugger) run() bool {
	m.print(m.styles.debugger, "emulation running")

	var (
		watchErr  = errors.New("watch")
		endRunErr = errors.New("end run")
		quitErr   = errors.New("quit")
	)

	// hook is called after every slice of the console
	hook := func() error {
		select {
		case <-m.sig:
			return endRunErr
		case <-m.guiQuit:
			return quitErr
		default:
		}

		w, err := m.checkWatches()
		if err != nil {
			return err
		}
		if w != nil {
			return fmt.Errorf("%w%s", watchErr, strings.TrimPrefix(w.String(), "watch"))
		}

		return nil
	}

	start := m.console.Cycles()
	startTime := time.Now()

	m.setState(ui.StateRunning)
	err := m.console.Run(hook)
	m.setState(ui.StatePaused)

	if errors.Is(err, quitErr) {
		return true
	}

	switch {
	case errors.Is(err, endRunErr), errors.Is(err, hardware.ErrPause):
		m.print(m.styles.debugger, fmt.Sprintf("%d cycles in %.02f seconds",
			m.console.Cycles()-start, time.Since(startTime).Seconds()))
	case errors.Is(err, watchErr):
		m.print(m.styles.watch, err.Error())
	case err != nil:
		m.print(m.styles.err, err.Error())
	}

	m.print(m.styles.crossbar, m.console.Crossbar.Status())

	return false
}

func (m *debugger) loop() {
	var commands chan []string
	if m.ui != nil {
		commands = m.ui.Commands
	}

	for {
		fmt.Fprintf(m.out, "%d> ", m.console.Cycles())

		var cmd []string

		select {
		case input := <-m.input:
			if input.err != nil {
				if !errors.Is(input.err, io.EOF) {
					m.print(m.styles.err, input.err.Error())
				}
				return
			}
			cmd = strings.Fields(input.s)
			if len(cmd) == 0 {
				cmd = []string{"STEP"}
			}
		case cmd = <-commands:
			fmt.Fprintln(m.out, strings.Join(cmd, " "))
		case <-m.sig:
			fmt.Fprint(m.out, "\r")
			return
		case <-m.guiQuit:
			fmt.Fprint(m.out, "\n")
			return
		}

		if m.commands(cmd) {
			return
		}
	}
}

const programName = "testfalcon"

// Launch the debugger with the command line arguments. The function returns
// when the user quits or when a value is received on the guiQuit channel
func Launch(guiQuit chan bool, u *ui.UI, args []string) error {
	var audio int
	var mute bool
	var profile bool
	var script string
	var snapshot string
	var stram int
	var headless bool

	flgs := flag.NewFlagSet(programName, flag.ExitOnError)
	flgs.IntVar(&audio, "audio", 44100, "sample rate of the host audio. zero for no audio")
	flgs.BoolVar(&mute, "mute", false, "start with the host audio muted")
	flgs.BoolVar(&profile, "profile", false, "create CPU profile for emulator")
	flgs.StringVar(&script, "script", "", "Lua script to run on startup")
	flgs.StringVar(&snapshot, "snapshot", "", "snapshot to load on startup")
	flgs.IntVar(&stram, "stram", 4*1024*1024, "amount of ST-RAM in bytes")
	flgs.BoolVar(&headless, "headless", false, "play audio without opening the monitor window")
	err := flgs.Parse(args)
	if err != nil {
		return err
	}
	if len(flgs.Args()) > 0 {
		return fmt.Errorf("too many arguments to debugger")
	}

	if stram <= 0 || stram > memory.MaxSTRam {
		return fmt.Errorf("ST-RAM must be between 1 and %d bytes", memory.MaxSTRam)
	}

	m := newDebugger(guiQuit, u, max(audio, 0), stram)

	signal.Notify(m.sig, syscall.SIGINT)

	go func() {
		r := bufio.NewReader(os.Stdin)
		for {
			s, err := r.ReadString('\n')
			m.input <- input{
				s:   strings.TrimSpace(s),
				err: err,
			}
			if err != nil {
				return
			}
		}
	}()

	m.print(m.styles.debugger, version.Title())
	m.reset()

	m.console.SetMute(mute)
	m.console.RegisterAudio()
	m.setState(ui.StatePaused)

	if snapshot != "" {
		err := m.console.LoadSnapshot(snapshot)
		if err != nil {
			m.print(m.styles.err, err.Error())
		} else {
			m.print(m.styles.debugger, fmt.Sprintf("snapshot %s loaded", snapshot))
		}
	}

	if script != "" {
		err := m.runScriptFile(script)
		if err != nil {
			m.print(m.styles.err, err.Error())
		}
	}

	if profile {
		f, err := os.Create("cpu.profile")
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer func() {
			err := f.Close()
			if err != nil {
				logger.Log(logger.Allow, "performance", err)
			}
		}()

		err = pprof.StartCPUProfile(f)
		if err != nil {
			return fmt.Errorf("performance: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	m.loop()

	return nil
}
