package hardware

import (
	"fmt"
	"math"

	"github.com/jetsetilly/testfalcon/logger"
)

// Microphone is a source of samples from a host input device at the host
// sample rate. Samples() returns at most n stereo samples
type Microphone interface {
	Samples(n int) (left []int16, right []int16, err error)
}

// SetMicrophone attaches a microphone to the console. A nil value detaches the
// current microphone
func (con *Console) SetMicrophone(mic Microphone) {
	con.crit.Lock()
	defer con.crit.Unlock()
	con.mic = mic
	con.micWarningDone = false
}

// feedMicrophone forwards one slice worth of microphone samples to the ADC
func (con *Console) feedMicrophone() {
	con.crit.Lock()
	defer con.crit.Unlock()

	adc := con.Crossbar.ADC.Route
	if !adc.Codec && !adc.DSP && !adc.DMA {
		return
	}

	if con.mic == nil {
		if !con.micWarningDone {
			logger.Log(con.ctx, "audio", "no microphone available: ADC input is silent")
			con.micWarningDone = true
		}
		return
	}

	n := con.ctx.AudioFrequency() / sliceHz
	if n <= 0 {
		return
	}

	l, r, err := con.mic.Samples(n)
	if err != nil {
		logger.Logf(con.ctx, "audio", "microphone: %v", err)
		con.mic = nil
		return
	}

	con.Crossbar.FeedMicrophone(l, r)
}

// Tone is a microphone that generates a sine wave
type Tone struct {
	Freq      float64
	Rate      int
	Amplitude float64

	phase float64
	left  []int16
	right []int16
}

// Samples implements the Microphone interface
func (t *Tone) Samples(n int) ([]int16, []int16, error) {
	if t.Rate <= 0 {
		return nil, nil, fmt.Errorf("tone: sample rate of %d", t.Rate)
	}

	if cap(t.left) < n {
		t.left = make([]int16, n)
		t.right = make([]int16, n)
	}
	t.left = t.left[:n]
	t.right = t.right[:n]

	step := 2 * math.Pi * t.Freq / float64(t.Rate)
	for i := range n {
		v := int16(math.Sin(t.phase) * t.Amplitude)
		t.left[i] = v
		t.right[i] = v
		t.phase += step
		if t.phase >= 2*math.Pi {
			t.phase -= 2 * math.Pi
		}
	}

	return t.left, t.right, nil
}
