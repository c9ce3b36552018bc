package gui

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/jetsetilly/testfalcon/ui"
)

// oto only allows one context per process. the context is created on the
// first call to Setup() and reused after that
var (
	otoCtx  *oto.Context
	otoFreq int
)

// Player plays the audio output of the console through the host audio device
type Player struct {
	p *oto.Player
	r ui.AudioReader

	// the state field is accessed by the Read() function via the audio
	// engine, and by the GUI which is in another goroutine. access to the state
	// field therefore, is proctected by a mutex
	crit  sync.Mutex
	state ui.State
}

// NewPlayer returns a player in the paused state
func NewPlayer() *Player {
	return &Player{
		state: ui.StatePaused,
	}
}

// SetState pauses or resumes playback
func (a *Player) SetState(state ui.State) {
	a.crit.Lock()
	defer a.crit.Unlock()
	a.state = state
	if a.p != nil {
		if state == ui.StatePaused {
			a.p.Pause()
		} else {
			a.p.Play()
		}
	}
}

// the minimum number of bytes in the oto buffer before the reader is nudged
const prefetch = 2048

func (a *Player) Read(buf []uint8) (int, error) {
	a.crit.Lock()
	defer a.crit.Unlock()
	if a.state != ui.StateRunning || a.r == nil {
		return 0, nil
	}

	if a.p != nil && a.p.BufferedSize() < prefetch {
		a.r.Nudge()
	}

	n, err := a.r.Read(buf)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Setup starts playback of the audio reader. The function waits for the
// audio device to become ready or for the quit channel
func (a *Player) Setup(s ui.AudioSetup, quit chan bool) error {
	if s.Read == nil {
		return nil
	}

	if otoCtx == nil {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   s.Freq,
			ChannelCount: 2,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			return fmt.Errorf("audio: %w", err)
		}

		select {
		case <-ready:
		case <-quit:
			return nil
		}

		otoCtx = ctx
		otoFreq = s.Freq
	} else if s.Freq != otoFreq {
		return fmt.Errorf("audio: cannot change sample rate from %d to %d", otoFreq, s.Freq)
	}

	err := a.Close()
	if err != nil {
		return err
	}

	p := otoCtx.NewPlayer(a)

	a.crit.Lock()
	a.p = p
	a.r = s.Read
	state := a.state
	a.crit.Unlock()

	if state == ui.StateRunning {
		p.Play()
	}

	return nil
}

// Close stops playback
func (a *Player) Close() error {
	// the player is closed outside of the critical section because closing
	// waits for any Read() in progress
	a.crit.Lock()
	p := a.p
	a.p = nil
	a.crit.Unlock()

	if p == nil {
		return nil
	}
	err := p.Close()
	if err != nil {
		return fmt.Errorf("audio: %w", err)
	}
	return nil
}
