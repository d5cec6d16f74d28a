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

package registers

import "fmt"

// EXR is the extended control register of the H8S cores.
type EXR uint8

// List of EXR bits. Bits 6 to 3 always read as one.
const (
	FlagT    EXR = 0x80
	EXRMask  EXR = 0x07
	EXRFixed EXR = 0x78
)

// Trace returns true if the trace bit is set.
func (exr EXR) Trace() bool {
	return exr&FlagT == FlagT
}

// Level returns the interrupt mask level.
func (exr EXR) Level() int {
	return int(exr & EXRMask)
}

// WithLevel returns a copy of the register with a new interrupt mask level.
func (exr EXR) WithLevel(level int) EXR {
	return (exr &^ EXRMask) | EXR(level)&EXRMask | EXRFixed
}

// Label returns the canonical name for the register.
func (exr EXR) Label() string {
	return "EXR"
}

func (exr EXR) String() string {
	t := 't'
	if exr.Trace() {
		t = 'T'
	}
	return fmt.Sprintf("%c%d", t, exr.Level())
}
