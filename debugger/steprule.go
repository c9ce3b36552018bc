package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jetsetilly/testfalcon/hardware/clocks"
	"github.com/jetsetilly/testfalcon/hardware/crossbar"
)

// the number of cycles the console is advanced between checks of the step rule
const stepQuantum = 16

// a step rule that has not been met after this many cycles is abandoned
const stepLimit = clocks.CPU * 10

// endOfFrame returns a step rule that is met when the DMA unit reaches the end
// of its frame. the unit either stops or the frame counter is reloaded
func endOfFrame(d *crossbar.DMA) func() bool {
	prev := d.FrameCounter
	return func() bool {
		done := !d.Running || d.FrameCounter < prev
		prev = d.FrameCounter
		return done
	}
}

func (m *debugger) parseStepRule(cmd []string) bool {
	xb := m.console.Crossbar

	rule := strings.ToUpper(cmd[0])
	switch rule {
	case "FRAME", "FR":
		if !xb.Play.Running {
			m.print(m.styles.err, "STEP FRAME: play DMA is not running")
			return false
		}
		m.stepRule = endOfFrame(&xb.Play)
		m.postStep = func() {
			m.print(m.styles.crossbar, fmt.Sprintf("play: %s", xb.Play.String()))
		}
	case "RECORD", "REC":
		if !xb.Record.Running {
			m.print(m.styles.err, "STEP RECORD: record DMA is not running")
			return false
		}
		m.stepRule = endOfFrame(&xb.Record)
		m.postStep = func() {
			m.print(m.styles.crossbar, fmt.Sprintf("record: %s", xb.Record.String()))
		}
	case "SAMPLE", "SA":
		pos := xb.DAC.WritePos
		m.stepRule = func() bool {
			return xb.DAC.WritePos != pos
		}
		m.postStep = func() {
			l, r := xb.DAC.Level()
			m.print(m.styles.crossbar, fmt.Sprintf("DAC: %d %d", l, r))
		}
	default:
		n, err := strconv.ParseUint(cmd[0], 10, 64)
		if err != nil || n == 0 {
			m.print(m.styles.err, fmt.Sprintf("STEP %s is unsupported", rule))
			return false
		}
		m.stepCycles = n
	}
	return true
}
