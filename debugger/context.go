package debugger

import (
	"math/rand/v2"
)

type context struct {
	rand *rand.Rand

	// sample rate of the host audio device. a value of zero means that there
	// is no audio device
	audioFrequency int

	// chip logging can be silenced while a script is running
	quiet bool
}

func (ctx *context) Reset() {
	ctx.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

func (ctx *context) Rand8Bit() uint8 {
	return uint8(ctx.rand.IntN(255))
}

func (ctx *context) AllowLogging() bool {
	return !ctx.quiet
}

func (ctx *context) AudioFrequency() int {
	return ctx.audioFrequency
}
