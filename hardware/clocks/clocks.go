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

// Package clocks defines the nominal speed of the main clock of each H8 chip
// preset. The values are the maximum operating frequencies given by the chip
// datasheets.
//
// The core counts states and has no notion of time. The clock speed is used
// only to express a number of states as the time the real chip would take.
package clocks

import (
	"time"
)

// Nominal clock speeds in MHz.
const (
	H8_325   = 10.0
	H8_3002  = 16.0
	H8_3003  = 16.0
	H8_3006  = 20.0
	H8_3008  = 25.0
	H8S_2320 = 25.0
	H8S_2655 = 20.0
)

var chips = map[string]float64{
	"H8/325":   H8_325,
	"H8/3002":  H8_3002,
	"H8/3003":  H8_3003,
	"H8/3006":  H8_3006,
	"H8/3008":  H8_3008,
	"H8S/2320": H8S_2320,
	"H8S/2655": H8S_2655,
}

// MHz returns the clock speed of the chip preset. The second return value is
// false if the chip is not known.
func MHz(chip string) (float64, bool) {
	mhz, ok := chips[chip]
	return mhz, ok
}

// Duration returns the time taken by the number of states at the clock
// speed.
func Duration(states uint64, mhz float64) time.Duration {
	if mhz <= 0 {
		return 0
	}
	return time.Duration(float64(states) / mhz * float64(time.Microsecond))
}
