// Package clocks contains the base frequencies of the Falcon and the sample
// rate tables derived from them.
package clocks

const Mhz = 1000000

// the emulated CPU clock. all scheduling in the console is counted in cycles
// of this clock
const CPU = 8012800

// the two internal oscillators of the crossbar. the Falcon rate tables are
// derived from these
const (
	Internal25Mhz = 25.175 * Mhz
	Internal32Mhz = 32 * Mhz
)

// STE compatible sample rates, selected by the lower two bits of the sound
// mode register when the internal divider is zero
var STE = [4]float64{
	6258.0,
	12517.0,
	25033.0,
	50066.0,
}

// Falcon sample rates for the 25.175Mhz oscillator, indexed by internal
// divider minus one
var Falcon25Mhz = [15]float64{
	49170.0,
	32780.0,
	24585.0,
	19668.0,
	16390.0,
	14049.0,
	12292.0,
	10927.0,
	9834.0,
	8940.0,
	8195.0,
	7565.0,
	7024.0,
	6556.0,
	6146.0,
}

// Falcon sample rates for the 32Mhz oscillator, indexed by internal divider
// minus one
var Falcon32Mhz = [15]float64{
	62500.0,
	41666.0,
	31250.0,
	25000.0,
	20833.0,
	17857.0,
	15624.0,
	13889.0,
	12500.0,
	11363.0,
	10416.0,
	9615.0,
	8928.0,
	8333.0,
	7812.0,
}
