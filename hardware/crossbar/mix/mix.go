// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// Package mix contains the sample arithmetic shared by the CODEC paths of the
// crossbar: soft clipping and the 1.5dB step gain and attenuation tables.
package mix

import "math"

var softClip [65536]int16

// gain and attenuation in 1.5dB steps, as 4.12 fixed point multipliers
var gain [16]int32
var attenuation [16]int32

const fixedPoint = 12

// generate the soft clip curve and the step tables
func init() {
	for i := -32768; i <= 32767; i++ {
		x := int32(i)

		// saturator y = x / (1 + |x|/32768)
		abs := x
		if abs < 0 {
			abs = -abs
		}
		scale := 32768 + (abs >> 15)
		y := (x * 32767) / scale

		y = max(min(y, 32767), -32768)
		softClip[uint16(i)] = int16(y)
	}

	for i := range 16 {
		db := 1.5 * float64(i)
		gain[i] = int32(math.Round(math.Pow(10, db/20) * (1 << fixedPoint)))
		attenuation[i] = int32(math.Round(math.Pow(10, -db/20) * (1 << fixedPoint)))
	}
}

// Clip 32bit value so that it doesn't exceed 16bit range
func Clip(x int32) int16 {
	x = max(min(x, 32767), -32768)
	return softClip[uint16(x)]
}

// Gain amplifies the sample by the number of +1.5dB steps. Only the lower
// four bits of steps are used. The result is soft clipped
func Gain(sample int16, steps uint8) int16 {
	if steps&0x0f == 0 {
		return sample
	}
	return Clip((int32(sample) * gain[steps&0x0f]) >> fixedPoint)
}

// Attenuate reduces the sample by the number of -1.5dB steps. Only the lower
// four bits of steps are used
func Attenuate(sample int16, steps uint8) int16 {
	if steps&0x0f == 0 {
		return sample
	}
	return int16((int32(sample) * attenuation[steps&0x0f]) >> fixedPoint)
}

// Split separates a LLLLRRRR codec setting into its left and right values
func Split(v uint8) (uint8, uint8) {
	return v >> 4, v & 0x0f
}
