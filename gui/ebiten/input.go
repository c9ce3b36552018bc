package ebiten

import (
	"github.com/jetsetilly/testfalcon/ui"
	input "github.com/quasilyte/ebitengine-input"
)

const (
	ActionPause        = input.Action(ui.Pause)
	ActionMute         = input.Action(ui.Mute)
	ActionReset        = input.Action(ui.Reset)
	ActionSaveSnapshot = input.Action(ui.SaveSnapshot)
	ActionLoadSnapshot = input.Action(ui.LoadSnapshot)

	// quit is not sent to the emulation
	ActionQuit = input.Action(ui.LoadSnapshot + 1)
)

func (eg *guiEbiten) initialiseInput() {
	eg.inputSystem.Init(input.SystemConfig{
		DevicesEnabled: input.AnyDevice,
	})

	keymap := input.Keymap{
		ActionPause:        {input.KeyGamepadStart, input.KeySpace, input.KeyP},
		ActionMute:         {input.KeyM},
		ActionReset:        {input.KeyGamepadBack, input.KeyR},
		ActionSaveSnapshot: {input.KeyS},
		ActionLoadSnapshot: {input.KeyL},
		ActionQuit:         {input.KeyEscape},
	}
	eg.inputHandler = eg.inputSystem.NewHandler(uint8(0), keymap)
}

// handleInput forwards just pressed actions to the emulation. returns false if
// the quit action has been pressed
func (eg *guiEbiten) handleInput() bool {
	eg.inputSystem.Update()

	if eg.inputHandler.ActionIsJustPressed(ActionQuit) {
		return false
	}

	for _, a := range []input.Action{ActionPause, ActionMute, ActionReset, ActionSaveSnapshot, ActionLoadSnapshot} {
		if eg.inputHandler.ActionIsJustPressed(a) {
			eg.send(ui.Action(a))
		}
	}

	return true
}

// send the action to the emulation. the emulation loop does not run when it
// is paused so the pause action is sent to the debugger as a command instead
func (eg *guiEbiten) send(action ui.Action) {
	if action == ui.Pause && eg.state == ui.StatePaused {
		select {
		case eg.ui.Commands <- []string{"RUN"}:
		default:
		}
		return
	}

	select {
	case eg.ui.UserInput <- ui.Input{Action: action}:
	default:
	}
}
