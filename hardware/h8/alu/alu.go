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

// width describes an operand size.
type width struct {
	mask uint32
	msb  uint32

	// the low bits that produce the half carry and the bit the half carry
	// appears in
	hlow uint32
	hbit uint32
}

var (
	byteWidth = width{mask: 0xff, msb: 0x80, hlow: 0x0f, hbit: 0x10}
	wordWidth = width{mask: 0xffff, msb: 0x8000, hlow: 0x0fff, hbit: 0x1000}
	longWidth = width{mask: 0xffffffff, msb: 0x80000000, hlow: 0x0fffffff, hbit: 0x10000000}
)

func nz(ccr registers.CCR, w width, res uint32) registers.CCR {
	ccr &^= registers.FlagN | registers.FlagZ
	res &= w.mask
	if res == 0 {
		ccr |= registers.FlagZ
	} else if res&w.msb != 0 {
		ccr |= registers.FlagN
	}
	return ccr
}

func add(ccr registers.CCR, w width, a, b, cin uint32, sticky bool) (uint32, registers.CCR) {
	a &= w.mask
	b &= w.mask
	full := uint64(a) + uint64(b) + uint64(cin)
	res := uint32(full) & w.mask

	z := ccr & registers.FlagZ
	ccr &^= registers.FlagsNZVC | registers.FlagH
	ccr = ccr.Set(registers.FlagH, ((a&w.hlow)+(b&w.hlow)+cin)&w.hbit != 0)
	ccr = ccr.Set(registers.FlagV, ^(a^b)&(a^res)&w.msb != 0)
	ccr = ccr.Set(registers.FlagC, full > uint64(w.mask))
	ccr = nz(ccr, w, res)

	// the extended forms can only clear the zero flag
	if sticky && res == 0 {
		ccr = (ccr &^ registers.FlagZ) | z
	}

	return res, ccr
}

func sub(ccr registers.CCR, w width, a, b, cin uint32, sticky bool) (uint32, registers.CCR) {
	a &= w.mask
	b &= w.mask
	res := (a - b - cin) & w.mask

	z := ccr & registers.FlagZ
	ccr &^= registers.FlagsNZVC | registers.FlagH
	ccr = ccr.Set(registers.FlagH, a&w.hlow < (b&w.hlow)+cin)
	ccr = ccr.Set(registers.FlagV, (a^b)&(a^res)&w.msb != 0)
	ccr = ccr.Set(registers.FlagC, uint64(a) < uint64(b)+uint64(cin))
	ccr = nz(ccr, w, res)

	if sticky && res == 0 {
		ccr = (ccr &^ registers.FlagZ) | z
	}

	return res, ccr
}

// Add8 adds two bytes. All arithmetic flags and the half carry are affected.
func Add8(ccr registers.CCR, a, b uint8) (uint8, registers.CCR) {
	r, ccr := add(ccr, byteWidth, uint32(a), uint32(b), 0, false)
	return uint8(r), ccr
}

// Add16 adds two words.
func Add16(ccr registers.CCR, a, b uint16) (uint16, registers.CCR) {
	r, ccr := add(ccr, wordWidth, uint32(a), uint32(b), 0, false)
	return uint16(r), ccr
}

// Add32 adds two longs.
func Add32(ccr registers.CCR, a, b uint32) (uint32, registers.CCR) {
	return add(ccr, longWidth, a, b, 0, false)
}

// AddX8 adds two bytes and the carry flag. The zero flag is cleared by a non
// zero result and otherwise left alone.
func AddX8(ccr registers.CCR, a, b uint8) (uint8, registers.CCR) {
	r, ccr := add(ccr, byteWidth, uint32(a), uint32(b), ccr.Carry(), true)
	return uint8(r), ccr
}

// Sub8 subtracts b from a. CMP.B uses the same flags.
func Sub8(ccr registers.CCR, a, b uint8) (uint8, registers.CCR) {
	r, ccr := sub(ccr, byteWidth, uint32(a), uint32(b), 0, false)
	return uint8(r), ccr
}

// Sub16 subtracts b from a.
func Sub16(ccr registers.CCR, a, b uint16) (uint16, registers.CCR) {
	r, ccr := sub(ccr, wordWidth, uint32(a), uint32(b), 0, false)
	return uint16(r), ccr
}

// Sub32 subtracts b from a.
func Sub32(ccr registers.CCR, a, b uint32) (uint32, registers.CCR) {
	return sub(ccr, longWidth, a, b, 0, false)
}

// SubX8 subtracts b and the carry flag from a. The zero flag is cleared by a
// non zero result and otherwise left alone.
func SubX8(ccr registers.CCR, a, b uint8) (uint8, registers.CCR) {
	r, ccr := sub(ccr, byteWidth, uint32(a), uint32(b), ccr.Carry(), true)
	return uint8(r), ccr
}

// Neg8 is the two's complement of the byte. Flags are as for 0-v.
func Neg8(ccr registers.CCR, v uint8) (uint8, registers.CCR) {
	return Sub8(ccr, 0, v)
}

// Neg16 is the two's complement of the word.
func Neg16(ccr registers.CCR, v uint16) (uint16, registers.CCR) {
	return Sub16(ccr, 0, v)
}

// Neg32 is the two's complement of the long.
func Neg32(ccr registers.CCR, v uint32) (uint32, registers.CCR) {
	return Sub32(ccr, 0, v)
}

func incdec(ccr registers.CCR, w width, a, b uint32, dec bool) (uint32, registers.CCR) {
	a &= w.mask
	var res uint32
	var v bool
	if dec {
		res = (a - b) & w.mask
		v = (a^b)&(a^res)&w.msb != 0
	} else {
		res = (a + b) & w.mask
		v = ^(a^b)&(a^res)&w.msb != 0
	}
	ccr = ccr.Set(registers.FlagV, v)
	return res, nz(ccr, w, res)
}

// Inc8 increments the byte by n. Only N, Z and V are affected.
func Inc8(ccr registers.CCR, a uint8, n uint8) (uint8, registers.CCR) {
	r, ccr := incdec(ccr, byteWidth, uint32(a), uint32(n), false)
	return uint8(r), ccr
}

// Inc16 increments the word by n.
func Inc16(ccr registers.CCR, a uint16, n uint16) (uint16, registers.CCR) {
	r, ccr := incdec(ccr, wordWidth, uint32(a), uint32(n), false)
	return uint16(r), ccr
}

// Inc32 increments the long by n.
func Inc32(ccr registers.CCR, a uint32, n uint32) (uint32, registers.CCR) {
	return incdec(ccr, longWidth, a, n, false)
}

// Dec8 decrements the byte by n. Only N, Z and V are affected.
func Dec8(ccr registers.CCR, a uint8, n uint8) (uint8, registers.CCR) {
	r, ccr := incdec(ccr, byteWidth, uint32(a), uint32(n), true)
	return uint8(r), ccr
}

// Dec16 decrements the word by n.
func Dec16(ccr registers.CCR, a uint16, n uint16) (uint16, registers.CCR) {
	r, ccr := incdec(ccr, wordWidth, uint32(a), uint32(n), true)
	return uint16(r), ccr
}

// Dec32 decrements the long by n.
func Dec32(ccr registers.CCR, a uint32, n uint32) (uint32, registers.CCR) {
	return incdec(ccr, longWidth, a, n, true)
}

// SetNZV8 sets N and Z for the value and clears V. This is the flag
// behaviour of MOV and the logical instructions.
func SetNZV8(ccr registers.CCR, v uint8) registers.CCR {
	return nz(ccr&^registers.FlagV, byteWidth, uint32(v))
}

// SetNZV16 is the word form of SetNZV8.
func SetNZV16(ccr registers.CCR, v uint16) registers.CCR {
	return nz(ccr&^registers.FlagV, wordWidth, uint32(v))
}

// SetNZV32 is the long form of SetNZV8.
func SetNZV32(ccr registers.CCR, v uint32) registers.CCR {
	return nz(ccr&^registers.FlagV, longWidth, v)
}

// SetNZ16 sets N and Z for the value. V is left alone.
func SetNZ16(ccr registers.CCR, v uint16) registers.CCR {
	return nz(ccr, wordWidth, uint32(v))
}

// SetNZ32 is the long form of SetNZ16.
func SetNZ32(ccr registers.CCR, v uint32) registers.CCR {
	return nz(ccr, longWidth, v)
}

// DAA decimal adjusts the byte after an addition.
func DAA(ccr registers.CCR, v uint8) (uint8, registers.CCR) {
	var adjust uint8
	carry := ccr.Is(registers.FlagC)
	if ccr.Is(registers.FlagH) || v&0x0f > 0x09 {
		adjust |= 0x06
	}
	if carry || v > 0x99 {
		adjust |= 0x60
		carry = true
	}
	res := v + adjust
	ccr = ccr.Set(registers.FlagC, carry)
	return res, nz(ccr, byteWidth, uint32(res))
}

// DAS decimal adjusts the byte after a subtraction. The carry flag is not
// affected.
func DAS(ccr registers.CCR, v uint8) (uint8, registers.CCR) {
	var adjust uint8
	if ccr.Is(registers.FlagH) {
		adjust |= 0x06
	}
	if ccr.Is(registers.FlagC) {
		adjust |= 0x60
	}
	res := v - adjust
	return res, nz(ccr, byteWidth, uint32(res))
}
