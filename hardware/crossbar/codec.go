package crossbar

import (
	"fmt"

	"github.com/jetsetilly/testfalcon/hardware/crossbar/mix"
)

// BufferSize is the number of stereo samples in the DAC and ADC ring buffers
const BufferSize = 8192

// Codec is a ring buffer of stereo samples. The DAC buffer is written by the
// crossbar and read by GenerateSamples(). The ADC buffer is written by
// FeedMicrophone() and read by the crossbar
//
// The writer only moves WritePos and the reader only moves ReadPos. Neither
// side waits for the other; an overrun or underrun wraps around the buffer
type Codec struct {
	Route

	Left  [BufferSize]int16
	Right [BufferSize]int16

	ReadPos  int32
	WritePos int32

	// the number of samples written to the DAC buffer and not yet consumed
	// by GenerateSamples()
	Pending int32

	// the ADC alternates between the left and right channel on each tick
	WordCount uint16
}

func (c *Codec) reset() {
	clear(c.Left[:])
	clear(c.Right[:])
	c.ReadPos = 0
	c.WritePos = 0
	c.Pending = 0
	c.WordCount = 0
}

func (c *Codec) String() string {
	return fmt.Sprintf("%s read %d write %d pending %d", c.Route.String(), c.ReadPos, c.WritePos, c.Pending)
}

// Level returns the most recently written stereo sample
func (c *Codec) Level() (int16, int16) {
	i := (c.WritePos + BufferSize - 1) % BufferSize
	return c.Left[i], c.Right[i]
}

// sendDAC places the value in the DAC buffer if the slot belongs to the
// monitored track. The write position moves on after the right channel
func (xb *Crossbar) sendDAC(value int16, slot uint16) {
	if xb.Config.DACMuted {
		value = 0
	}

	track := xb.Config.TrackMonitored * 2

	switch slot {
	case track:
		xb.DAC.Left[xb.DAC.WritePos] = value
	case track + 1:
		xb.DAC.Right[xb.DAC.WritePos] = value
		xb.DAC.WritePos = (xb.DAC.WritePos + 1) % BufferSize
		xb.DAC.Pending++
	}
}

// transmitADC sends the next microphone sample to every connected
// destination. Each tick sends one channel so a stereo sample takes two ticks
func (xb *Crossbar) transmitADC() {
	var sample int16
	var frame bool

	xb.ADC.WordCount = 1 - xb.ADC.WordCount

	if xb.ADC.WordCount == 0 {
		sample = xb.ADC.Left[xb.ADC.ReadPos]
		frame = true
	} else {
		sample = xb.ADC.Right[xb.ADC.ReadPos]
		xb.ADC.ReadPos = (xb.ADC.ReadPos + 1) % BufferSize
	}

	if xb.ADC.DSP {
		xb.sendDSP(uint32(sample), frame)
	}
	if xb.ADC.DMA {
		xb.recordDMA(sample)
	}
	if xb.ADC.Codec {
		xb.sendDAC(sample, xb.ADC.WordCount)
	}
}

// MixBuffer is a ring of stereo samples owned by the host audio layer
type MixBuffer [][2]int16

// GenerateSamples averages DAC samples into the mix buffer, starting at index
// start and converting from the crossbar sample rate to the host sample rate.
// Generation stops early if the DAC buffer runs out of samples. The number of
// samples generated is returned
func (xb *Crossbar) GenerateSamples(buffer MixBuffer, start int, n int) int {
	if len(buffer) == 0 || n <= 0 {
		return 0
	}

	host := xb.audioFrequency()
	ratio := xb.SampleRate(Freq25Mhz) / float64(host)

	pending := float64(xb.DAC.Pending)
	pos := float64(xb.DAC.ReadPos)

	left, right := mix.Split(xb.Config.Attenuation)

	var i int
	for i = 0; i < n && pending >= 0; i++ {
		b := &buffer[(start+i)%len(buffer)]
		xb.DAC.ReadPos = int32(pos+0.5) % BufferSize

		l := mix.Attenuate(xb.DAC.Left[xb.DAC.ReadPos], left)
		r := mix.Attenuate(xb.DAC.Right[xb.DAC.ReadPos], right)
		b[0] = int16((int32(b[0]) + int32(l)) / 2)
		b[1] = int16((int32(b[1]) + int32(r)) / 2)

		pos += ratio
		pending -= ratio
	}

	xb.DAC.ReadPos = int32(pos+0.5) % BufferSize

	if pending > 0 {
		xb.DAC.Pending = int32(pending)
	} else {
		xb.DAC.Pending = 0
	}

	return i
}

// FeedMicrophone converts samples from the host microphone to the crossbar
// sample rate and places them in the ADC buffer. The left and right slices
// should be the same length
func (xb *Crossbar) FeedMicrophone(left []int16, right []int16) {
	count := min(len(left), len(right))
	if count == 0 {
		return
	}

	host := float64(xb.audioFrequency())
	rate := xb.SampleRate(Freq25Mhz)

	size := int(float64(count) * rate / host)
	step := host / rate

	gl, gr := mix.Split(xb.Config.Gain)

	var pos float64
	var idx int
	for range size {
		xb.ADC.WritePos = (xb.ADC.WritePos + 1) % BufferSize
		idx = min(idx, count-1)
		xb.ADC.Left[xb.ADC.WritePos] = mix.Gain(left[idx], gl)
		xb.ADC.Right[xb.ADC.WritePos] = mix.Gain(right[idx], gr)
		pos += step
		idx = int(pos)
	}
}

// the sample rate of the host audio. a value of zero or less means that there
// is no host audio and a nominal rate is used instead
func (xb *Crossbar) audioFrequency() int {
	const nominal = 44100
	if xb.ctx == nil {
		return nominal
	}
	if f := xb.ctx.AudioFrequency(); f > 0 {
		return f
	}
	return nominal
}
