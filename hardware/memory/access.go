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

package memory

import (
	"fmt"
	"strings"
)

// Access is a single bus transaction.
type Access struct {
	Cycle   uint64
	Address uint32

	// width of the access in bytes. either 1 or 2
	Width int

	Write bool

	// instruction fetches are reads made through Read16i()
	Fetch bool

	Value uint16
}

func (a Access) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%d: ", a.Cycle))
	switch {
	case a.Write:
		s.WriteString("W")
	case a.Fetch:
		s.WriteString("F")
	default:
		s.WriteString("R")
	}
	if a.Width == 1 {
		s.WriteString(fmt.Sprintf("8 %06x %02x", a.Address, a.Value))
	} else {
		s.WriteString(fmt.Sprintf("16 %06x %04x", a.Address, a.Value))
	}
	return s.String()
}

// Clock is used to stamp each Access with the cycle at which it was made.
// The H8 type satisfies this interface.
type Clock interface {
	TotalCycles() uint64
}
