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

package alu

import "github.com/jetsetilly/h8core/hardware/h8/registers"

// ShiftOp identifies one of the eight shift and rotate operations.
type ShiftOp int

// List of shift and rotate operations.
const (
	SHAL ShiftOp = iota
	SHAR
	SHLL
	SHLR
	ROTL
	ROTR
	ROTXL
	ROTXR
)

func (op ShiftOp) String() string {
	return [...]string{"SHAL", "SHAR", "SHLL", "SHLR", "ROTL", "ROTR", "ROTXL", "ROTXR"}[op]
}

// shift1 performs a single bit shift. V is only ever set by SHAL and is
// returned separately so that the two bit forms can accumulate it.
func shift1(op ShiftOp, w width, v uint32, cin bool) (res uint32, cout bool, ovf bool) {
	v &= w.mask
	switch op {
	case SHAL:
		res = v << 1
		cout = v&w.msb != 0
		ovf = (v^res)&w.msb != 0
	case SHLL:
		res = v << 1
		cout = v&w.msb != 0
	case SHAR:
		res = v>>1 | v&w.msb
		cout = v&1 != 0
	case SHLR:
		res = v >> 1
		cout = v&1 != 0
	case ROTL:
		cout = v&w.msb != 0
		res = v << 1
		if cout {
			res |= 1
		}
	case ROTR:
		cout = v&1 != 0
		res = v >> 1
		if cout {
			res |= w.msb
		}
	case ROTXL:
		cout = v&w.msb != 0
		res = v << 1
		if cin {
			res |= 1
		}
	case ROTXR:
		cout = v&1 != 0
		res = v >> 1
		if cin {
			res |= w.msb
		}
	}
	return res & w.mask, cout, ovf
}

func shift(ccr registers.CCR, op ShiftOp, w width, v uint32, count int) (uint32, registers.CCR) {
	c := ccr.Is(registers.FlagC)
	var ovf bool
	for i := 0; i < count; i++ {
		var o bool
		v, c, o = shift1(op, w, v, c)
		ovf = ovf || o
	}
	ccr &^= registers.FlagsNZVC
	ccr = ccr.Set(registers.FlagC, c)
	ccr = ccr.Set(registers.FlagV, ovf)
	return v, nz(ccr, w, v)
}

// Shift8 applies the operation to a byte, count times. Count is 1 or 2.
func Shift8(ccr registers.CCR, op ShiftOp, v uint8, count int) (uint8, registers.CCR) {
	r, ccr := shift(ccr, op, byteWidth, uint32(v), count)
	return uint8(r), ccr
}

// Shift16 applies the operation to a word, count times.
func Shift16(ccr registers.CCR, op ShiftOp, v uint16, count int) (uint16, registers.CCR) {
	r, ccr := shift(ccr, op, wordWidth, uint32(v), count)
	return uint16(r), ccr
}

// Shift32 applies the operation to a long, count times.
func Shift32(ccr registers.CCR, op ShiftOp, v uint32, count int) (uint32, registers.CCR) {
	return shift(ccr, op, longWidth, v, count)
}
