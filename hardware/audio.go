package hardware

import (
	"encoding/binary"

	"github.com/jetsetilly/testfalcon/hardware/crossbar"
	"github.com/jetsetilly/testfalcon/ui"
)

// the number of bytes in one stereo sample of the output stream
const bytesPerSample = 4

// audioBuffer is an io.Reader implementation that forwards crossbar audio to
// something that can play it back (or store it, etc.). The data is signed
// 16bit little-endian stereo at the host sample rate
type audioBuffer struct {
	con *Console

	// the mix buffer is a ring. the crossbar averages new samples with the
	// contents of the ring
	mix crossbar.MixBuffer
	pos int

	muted bool
}

func newAudioBuffer(con *Console) *audioBuffer {
	return &audioBuffer{
		con: con,
		mix: make(crossbar.MixBuffer, crossbar.BufferSize),
	}
}

func (b *audioBuffer) Read(buf []uint8) (int, error) {
	b.con.crit.Lock()
	defer b.con.crit.Unlock()

	n := min(len(buf)/bytesPerSample, len(b.mix))
	if n == 0 {
		return 0, nil
	}

	// there is no other sound source in the console so the crossbar samples
	// are averaged with silence
	for i := range n {
		b.mix[(b.pos+i)%len(b.mix)] = [2]int16{}
	}

	// the crossbar always generates at least one sample so the number of
	// bytes returned is never zero. returning zero bytes is problematic for
	// some oto backends
	//
	// https://github.com/ebitengine/oto/issues/261
	n = b.con.Crossbar.GenerateSamples(b.mix, b.pos, n)

	for i := range n {
		s := b.mix[(b.pos+i)%len(b.mix)]
		if b.muted {
			s = [2]int16{}
		}
		binary.LittleEndian.PutUint16(buf[i*bytesPerSample:], uint16(s[0]))
		binary.LittleEndian.PutUint16(buf[i*bytesPerSample+2:], uint16(s[1]))
	}
	b.pos = (b.pos + n) % len(b.mix)

	return n * bytesPerSample, nil
}

// Nudge implements the ui.AudioReader interface
func (b *audioBuffer) Nudge() {
	b.con.limiter.Nudge()
}

// SetMute silences the audio output without changing the emulation
func (con *Console) SetMute(mute bool) {
	con.crit.Lock()
	defer con.crit.Unlock()
	con.audio.muted = mute
}

// Muted returns true if the audio output is silenced
func (con *Console) Muted() bool {
	con.crit.Lock()
	defer con.crit.Unlock()
	return con.audio.muted
}

// AudioReader returns the console's audio output
func (con *Console) AudioReader() ui.AudioReader {
	return con.audio
}
