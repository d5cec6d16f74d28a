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

package clocks_test

import (
	"testing"
	"time"

	"github.com/jetsetilly/h8core/hardware/clocks"
	"github.com/jetsetilly/h8core/hardware/h8"
	"github.com/jetsetilly/h8core/test"
)

func TestChips(t *testing.T) {
	for _, n := range h8.ChipNames() {
		mhz, ok := clocks.MHz(n)
		test.ExpectSuccess(t, ok, n)
		test.ExpectSuccess(t, mhz > 0, n)
	}
	_, ok := clocks.MHz("Z80")
	test.ExpectFailure(t, ok)
}

func TestDuration(t *testing.T) {
	test.ExpectEquality(t, clocks.Duration(20000000, clocks.H8S_2655), time.Second)
	test.ExpectEquality(t, clocks.Duration(10, clocks.H8_325), time.Microsecond)
	test.ExpectEquality(t, clocks.Duration(100, 0), time.Duration(0))
}
