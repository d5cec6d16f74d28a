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

// MAC is the multiply-accumulate register of the H8S/2600. It is 42 bits
// wide. MACH holds the upper 10 bits (sign extended to 32 bits when read) and
// MACL the lower 32 bits.
type MAC uint64

const macWidth = 0x3ffffffffff

// Value returns the MAC value as a sign extended 64 bit value.
func (m MAC) Value() int64 {
	v := uint64(m) & macWidth
	if v&0x20000000000 != 0 {
		v |= ^uint64(macWidth)
	}
	return int64(v)
}

// FromValue creates a MAC from a signed value, truncated to the register width.
func FromValue(v int64) MAC {
	return MAC(uint64(v) & macWidth)
}

// High returns MACH. Bits 10 to 31 are a sign extension of bit 9.
func (m MAC) High() uint32 {
	return uint32(uint64(m.Value()) >> 32)
}

// Low returns MACL.
func (m MAC) Low() uint32 {
	return uint32(m)
}

// SetHigh loads MACH. Only the lower 10 bits are kept.
func (m MAC) SetHigh(v uint32) MAC {
	return MAC((uint64(m) & 0xffffffff) | (uint64(v)&0x3ff)<<32)
}

// SetLow loads MACL.
func (m MAC) SetLow(v uint32) MAC {
	return MAC((uint64(m) &^ 0xffffffff) | uint64(v))
}
