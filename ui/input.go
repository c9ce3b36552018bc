package ui

type Action int

type Input struct {
	Action Action
	Data   any
}

const (
	Nothing Action = iota

	// toggle between the running and paused state
	Pause

	// silence the host audio without changing the emulation
	Mute

	// warm reset of the console
	Reset

	// save and load the quick snapshot
	SaveSnapshot
	LoadSnapshot
)

func (a Action) String() string {
	switch a {
	case Pause:
		return "pause"
	case Mute:
		return "mute"
	case Reset:
		return "reset"
	case SaveSnapshot:
		return "save snapshot"
	case LoadSnapshot:
		return "load snapshot"
	}
	return "nothing"
}
