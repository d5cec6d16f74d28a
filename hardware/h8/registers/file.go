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

import (
	"fmt"
	"strings"
)

// SP is the index of the stack pointer in the register file.
const SP = 7

// File is the general register file. R[0] to R[7] are the R registers and
// R[8] to R[15] are the E registers.
type File struct {
	R [16]uint16
}

// R8 returns the byte register. Index 0 to 7 are the high bytes of R0 to R7
// and index 8 to 15 are the low bytes.
func (f *File) R8(n int) uint8 {
	n &= 0x0f
	if n < 8 {
		return uint8(f.R[n] >> 8)
	}
	return uint8(f.R[n&7])
}

// SetR8 sets the byte register.
func (f *File) SetR8(n int, v uint8) {
	n &= 0x0f
	if n < 8 {
		f.R[n] = (f.R[n] & 0x00ff) | uint16(v)<<8
		return
	}
	f.R[n&7] = (f.R[n&7] & 0xff00) | uint16(v)
}

// R16 returns the word register. Index 0 to 7 are R0 to R7 and index 8 to 15
// are E0 to E7.
func (f *File) R16(n int) uint16 {
	return f.R[n&0x0f]
}

// SetR16 sets the word register.
func (f *File) SetR16(n int, v uint16) {
	f.R[n&0x0f] = v
}

// R32 returns the ER register made from the E and R pair.
func (f *File) R32(n int) uint32 {
	n &= 7
	return uint32(f.R[n+8])<<16 | uint32(f.R[n])
}

// SetR32 sets the E and R pair.
func (f *File) SetR32(n int, v uint32) {
	n &= 7
	f.R[n+8] = uint16(v >> 16)
	f.R[n] = uint16(v)
}

// Reset clears all registers.
func (f *File) Reset() {
	f.R = [16]uint16{}
}

// String returns the file as ERn values if extended is true, otherwise as Rn
// values.
func (f File) String(extended bool) string {
	s := strings.Builder{}
	for n := 0; n < 8; n++ {
		if n > 0 {
			s.WriteRune(' ')
		}
		if extended {
			s.WriteString(fmt.Sprintf("ER%d=%08x", n, f.R32(n)))
		} else {
			s.WriteString(fmt.Sprintf("R%d=%04x", n, f.R16(n)))
		}
	}
	return s.String()
}
