package ebiten

import (
	"errors"
	"strings"
	"testing"

	"github.com/jetsetilly/testfalcon/logger"
	"github.com/jetsetilly/testfalcon/test"
	"github.com/jetsetilly/testfalcon/ui"
)

type brokenAudio struct {
	setups int
	state  ui.State
}

func (a *brokenAudio) SetState(state ui.State) {
	a.state = state
}

func (a *brokenAudio) Setup(ui.AudioSetup, chan bool) error {
	a.setups++
	return errors.New("no audio device")
}

func (a *brokenAudio) Close() error {
	return nil
}

func TestAudioSetupFailure(t *testing.T) {
	logger.Clear()
	defer logger.Clear()

	u := ui.NewUI()
	audio := &brokenAudio{}
	eg := &guiEbiten{
		ui:     u,
		endGui: make(chan bool, 1),
		audio:  audio,
	}

	u.AudioSetup <- ui.AudioSetup{Freq: 44100}
	u.State <- ui.StateRunning
	u.PushMonitor(ui.Monitor{Status: "ok"})

	// the failure is logged and the rest of the update continues
	eg.service()
	test.ExpectEquality(t, audio.setups, 1)
	test.ExpectEquality(t, eg.state, ui.StateRunning)
	test.ExpectEquality(t, audio.state, ui.StateRunning)
	test.ExpectEquality(t, eg.monitor.Status, "ok")

	var logged bool
	for _, e := range logger.Entries() {
		if e.Tag == "audio" && strings.Contains(e.Detail, "no audio device") {
			logged = true
		}
	}
	test.ExpectSuccess(t, logged)

	// nothing pending
	eg.service()
	test.ExpectEquality(t, audio.setups, 1)
}
