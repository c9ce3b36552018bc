package gui_test

import (
	"testing"

	"github.com/jetsetilly/testfalcon/gui"
	"github.com/jetsetilly/testfalcon/test"
	"github.com/jetsetilly/testfalcon/ui"
)

type reader struct {
	reads  int
	nudges int
}

func (r *reader) Read(buf []uint8) (int, error) {
	r.reads++
	for i := range buf {
		buf[i] = 0xff
	}
	return len(buf), nil
}

func (r *reader) Nudge() {
	r.nudges++
}

func TestPlayerState(t *testing.T) {
	p := gui.NewPlayer()
	buf := make([]uint8, 16)

	// no reader
	n, err := p.Read(buf)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, n, 0)

	// setup without a reader does nothing and does not touch the audio device
	test.ExpectSuccess(t, p.Setup(ui.AudioSetup{Freq: 44100}, nil))
	test.ExpectSuccess(t, p.Close())
}

func TestHeadless(t *testing.T) {
	u := ui.NewUI()
	end := make(chan bool, 1)
	done := make(chan error, 1)

	go func() {
		done <- gui.Headless(end, u)
	}()

	u.PushMonitor(ui.Monitor{})
	u.State <- ui.StateRunning
	end <- true

	test.ExpectSuccess(t, <-done)
}
