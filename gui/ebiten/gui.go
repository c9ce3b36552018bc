// Package ebiten is the monitor window. It shows the level of the DAC output
// and the current crossbar routing, and passes keyboard and gamepad input to
// the emulation.
package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jetsetilly/testfalcon/gui"
	"github.com/jetsetilly/testfalcon/logger"
	"github.com/jetsetilly/testfalcon/ui"
	"github.com/jetsetilly/testfalcon/version"
	input "github.com/quasilyte/ebitengine-input"
)

// logical size of the monitor window
const (
	screenWidth  = 320
	screenHeight = 200
)

// geometry of the level meters
const (
	meterX      = 10
	meterY      = 150
	meterWidth  = 300
	meterHeight = 12
	meterGap    = 6
)

var (
	colBackground = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	colMeter      = color.RGBA{R: 40, G: 40, B: 56, A: 255}
	colLevel      = color.RGBA{R: 80, G: 200, B: 120, A: 255}
	colMuted      = color.RGBA{R: 120, G: 120, B: 120, A: 255}
	colPaused     = color.RGBA{R: 0, G: 0, B: 0, A: 160}
)

type guiEbiten struct {
	ui   *ui.UI
	geom windowGeometry

	endGui chan bool

	state   ui.State
	monitor ui.Monitor

	// the audio player can be recreated as required
	audio audioPlayer

	inputHandler *input.Handler
	inputSystem  input.System
}

func (eg *guiEbiten) Update() error {
	// deal with quit condition
	select {
	case <-eg.endGui:
		return ebiten.Termination
	default:
	}

	if !eg.handleInput() {
		return ebiten.Termination
	}

	eg.service()

	return nil
}

// audioPlayer is implemented by gui.Player
type audioPlayer interface {
	SetState(ui.State)
	Setup(ui.AudioSetup, chan bool) error
	Close() error
}

// service the channels from the emulation. a failure to set up the audio
// device is logged and the window carries on without sound
func (eg *guiEbiten) service() {
	// change state if necessary
	select {
	case eg.state = <-eg.ui.State:
		eg.audio.SetState(eg.state)
	default:
	}

	// create audio if necessary
	select {
	case s := <-eg.ui.AudioSetup:
		err := eg.audio.Setup(s, eg.endGui)
		if err != nil {
			logger.Log(logger.Allow, "audio", err)
		}
	default:
	}

	select {
	case eg.monitor = <-eg.ui.Monitor:
	default:
	}
}

// meter returns the width of the level bar for the sample value
func meter(v int16) float64 {
	l := int(v)
	if l < 0 {
		l = -l
	}
	return float64(l) * meterWidth / 32768
}

func (eg *guiEbiten) Draw(screen *ebiten.Image) {
	screen.Fill(colBackground)

	ebitenutil.DebugPrintAt(screen, eg.monitor.Routing, meterX, 10)
	ebitenutil.DebugPrintAt(screen, eg.monitor.Status, meterX, 120)

	level := colLevel
	if eg.monitor.Muted {
		level = colMuted
	}

	for i, v := range []int16{eg.monitor.Left, eg.monitor.Right} {
		y := float64(meterY + i*(meterHeight+meterGap))
		ebitenutil.DrawRect(screen, meterX, y, meterWidth, meterHeight, colMeter)
		ebitenutil.DrawRect(screen, meterX, y, meter(v), meterHeight, level)
	}

	if eg.state == ui.StatePaused {
		ebitenutil.DrawRect(screen, 0, 0, screenWidth, screenHeight, colPaused)
		ebitenutil.DebugPrintAt(screen, "paused", screenWidth/2-18, screenHeight/2-8)
	}

	eg.geom.x, eg.geom.y = ebiten.WindowPosition()
	eg.geom.w, eg.geom.h = ebiten.WindowSize()
}

func (eg *guiEbiten) Layout(width, height int) (int, int) {
	return screenWidth, screenHeight
}

// Launch opens the monitor window. The function returns when the window is
// closed or when a value is received on the endGui channel
func Launch(endGui chan bool, u *ui.UI) error {
	ebiten.SetWindowTitle(version.Title())
	ebiten.SetVsyncEnabled(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowPosition(10, 10)
	ebiten.SetWindowSize(screenWidth*2, screenHeight*2)
	ebiten.SetTPS(ebiten.SyncWithFPS)

	eg := &guiEbiten{
		endGui: endGui,
		ui:     u,
		state:  ui.StatePaused,
		audio:  gui.NewPlayer(),
	}
	eg.initialiseInput()

	// wait for the first state change and a possible quit request
	select {
	case eg.state = <-u.State:
		eg.audio.SetState(eg.state)
	case <-endGui:
		return nil
	}

	var err error

	eg.geom, err = onWindowOpen()
	if err != nil {
		logger.Log(logger.Allow, "gui", err.Error())
	}

	defer func() {
		err := onWindowClose(eg.geom)
		if err != nil {
			logger.Log(logger.Allow, "gui", err.Error())
		}
		err = eg.audio.Close()
		if err != nil {
			logger.Log(logger.Allow, "gui", err.Error())
		}
	}()

	return ebiten.RunGame(eg)
}
