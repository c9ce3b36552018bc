package hardware

import (
	"errors"

	"github.com/jetsetilly/testfalcon/logger"
	"github.com/jetsetilly/testfalcon/ui"
)

// ErrPause is returned by Run() when the user has asked for the emulation to
// be paused
var ErrPause = errors.New("pause requested")

// the name of the snapshot used by the save and load snapshot inputs
const QuickSnapshot = "quick"

func (con *Console) handleInput() error {
	if con.ui == nil {
		return nil
	}

	var drained bool
	for !drained {
		select {
		default:
			drained = true
		case inp := <-con.ui.UserInput:
			switch inp.Action {
			case ui.Pause:
				return ErrPause
			case ui.Mute:
				mute := !con.Muted()
				con.SetMute(mute)
				logger.Logf(logger.Allow, "audio", "mute: %v", mute)
			case ui.Reset:
				con.WarmReset()
				logger.Log(logger.Allow, "console", "warm reset")
			case ui.SaveSnapshot:
				err := con.SaveSnapshot(QuickSnapshot)
				if err != nil {
					logger.Log(logger.Allow, "console", err)
				}
			case ui.LoadSnapshot:
				err := con.LoadSnapshot(QuickSnapshot)
				if err != nil {
					logger.Log(logger.Allow, "console", err)
				}
			}
		}
	}

	return nil
}
