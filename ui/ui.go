// Package ui connects the emulation to the user interface. The debugger and
// the console send state changes, audio setup requests and monitor updates
// through the channels of the UI type and the GUI sends user input and
// commands back.
//
// All channels are buffered. Senders should never block on a full channel
// and instead drop the value, the next value will replace it soon enough.
package ui

import (
	"io"
)

// State of the emulation as seen by the GUI
type State int

const (
	StatePaused State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StateRunning:
		return "running"
	}
	return "unknown"
}

// AudioReader is implemented by the console's audio output. Read() returns
// signed 16bit little-endian stereo samples. Nudge() is called by the audio
// player when its buffer is running low
type AudioReader interface {
	io.Reader
	Nudge()
}

// AudioSetup requests that the GUI start playing audio from the reader at the
// sample rate
type AudioSetup struct {
	Freq int
	Read AudioReader
}

// Monitor is the information shown by the monitor window. It is sent
// periodically by the console while emulation is running
type Monitor struct {
	// most recent DAC samples
	Left  int16
	Right int16

	// crossbar routing and a one line status
	Routing string
	Status  string

	Muted bool
}

type UI struct {
	State      chan State
	AudioSetup chan AudioSetup
	Monitor    chan Monitor
	UserInput  chan Input

	// debugger commands sent from the GUI
	Commands chan []string
}

func NewUI() *UI {
	return &UI{
		State:      make(chan State, 1),
		AudioSetup: make(chan AudioSetup, 1),
		Monitor:    make(chan Monitor, 1),
		UserInput:  make(chan Input, 10),
		Commands:   make(chan []string, 1),
	}
}

// PushMonitor replaces any monitor update that the GUI has not yet consumed
func (u *UI) PushMonitor(m Monitor) {
	select {
	case <-u.Monitor:
	default:
	}
	select {
	case u.Monitor <- m:
	default:
	}
}
