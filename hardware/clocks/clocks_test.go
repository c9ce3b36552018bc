package clocks_test

import (
	"testing"

	"github.com/jetsetilly/testfalcon/hardware/clocks"
	"github.com/jetsetilly/testfalcon/test"
)

// every Falcon rate is the oscillator frequency divided by 256 and by one more
// than the divider
func TestFalconRates(t *testing.T) {
	for i := range clocks.Falcon25Mhz {
		div := float64(256 * (i + 2))
		test.ExpectApproximate(t, clocks.Falcon25Mhz[i], clocks.Internal25Mhz/div, 1.0)
		test.ExpectApproximate(t, clocks.Falcon32Mhz[i], clocks.Internal32Mhz/div, 1.0)
	}
}
