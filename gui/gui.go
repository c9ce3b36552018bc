// Package gui owns the host audio device. The Headless() function plays the
// console audio without opening a window. The monitor window in the ebiten
// sub-package uses the same Player type.
package gui

import (
	"github.com/jetsetilly/testfalcon/logger"
	"github.com/jetsetilly/testfalcon/ui"
)

// Headless services the UI channels without a window. Audio setup requests
// and state changes are handled and monitor updates are discarded. The
// function returns when a value is received on the endGui channel
func Headless(endGui chan bool, u *ui.UI) error {
	p := NewPlayer()
	defer func() {
		err := p.Close()
		if err != nil {
			logger.Log(logger.Allow, "gui", err)
		}
	}()

	for {
		select {
		case <-endGui:
			return nil
		case s := <-u.State:
			p.SetState(s)
		case s := <-u.AudioSetup:
			err := p.Setup(s, endGui)
			if err != nil {
				logger.Log(logger.Allow, "audio", err)
			}
		case <-u.Monitor:
		}
	}
}
