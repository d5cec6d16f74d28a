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

import (
	"math"

	"github.com/jetsetilly/h8core/hardware/h8/registers"
)

// MulXS8 is the signed 8x8 multiply. N and Z are set from the 16 bit product.
func MulXS8(ccr registers.CCR, a, b uint8) (uint16, registers.CCR) {
	r := uint16(int16(int8(a)) * int16(int8(b)))
	return r, nz(ccr, wordWidth, uint32(r))
}

// MulXS16 is the signed 16x16 multiply. N and Z are set from the 32 bit product.
func MulXS16(ccr registers.CCR, a, b uint16) (uint32, registers.CCR) {
	r := uint32(int32(int16(a)) * int32(int16(b)))
	return r, nz(ccr, longWidth, r)
}

// DivXU8 divides the 16 bit dividend by the 8 bit divisor. The result is the
// remainder in the high byte and the quotient in the low byte. N is the sign
// of the divisor and Z is set if the divisor is zero.
//
// The ok return value is false if the divisor is zero, in which case the
// dividend should be left unchanged.
func DivXU8(ccr registers.CCR, dividend uint16, divisor uint8) (uint16, registers.CCR, bool) {
	ccr = ccr.Set(registers.FlagN, divisor&0x80 != 0)
	ccr = ccr.Set(registers.FlagZ, divisor == 0)
	if divisor == 0 {
		return dividend, ccr, false
	}
	q := dividend / uint16(divisor)
	r := dividend % uint16(divisor)
	return r<<8 | q&0xff, ccr, true
}

// DivXU16 divides the 32 bit dividend by the 16 bit divisor. The remainder is
// in the high word and the quotient in the low word.
func DivXU16(ccr registers.CCR, dividend uint32, divisor uint16) (uint32, registers.CCR, bool) {
	ccr = ccr.Set(registers.FlagN, divisor&0x8000 != 0)
	ccr = ccr.Set(registers.FlagZ, divisor == 0)
	if divisor == 0 {
		return dividend, ccr, false
	}
	q := dividend / uint32(divisor)
	r := dividend % uint32(divisor)
	return r<<16 | q&0xffff, ccr, true
}

// DivXS8 is the signed form of DivXU8. N is set if the quotient is negative.
func DivXS8(ccr registers.CCR, dividend uint16, divisor uint8) (uint16, registers.CCR, bool) {
	ccr = ccr.Set(registers.FlagZ, divisor == 0)
	if divisor == 0 {
		return dividend, ccr, false
	}
	n := int16(dividend)
	d := int16(int8(divisor))
	if n == math.MinInt16 && d == -1 {
		return dividend, ccr, false
	}
	q := n / d
	r := n % d
	ccr = ccr.Set(registers.FlagN, q < 0)
	return uint16(r)<<8 | uint16(q)&0xff, ccr, true
}

// DivXS16 is the signed form of DivXU16.
func DivXS16(ccr registers.CCR, dividend uint32, divisor uint16) (uint32, registers.CCR, bool) {
	ccr = ccr.Set(registers.FlagZ, divisor == 0)
	if divisor == 0 {
		return dividend, ccr, false
	}
	n := int32(dividend)
	d := int32(int16(divisor))
	if n == math.MinInt32 && d == -1 {
		return dividend, ccr, false
	}
	q := n / d
	r := n % d
	ccr = ccr.Set(registers.FlagN, q < 0)
	return uint32(r)<<16 | uint32(q)&0xffff, ccr, true
}

// MAC accumulates the signed product of two words. If saturating is true the
// result is limited to the signed 32 bit range, otherwise the 42 bit
// accumulator wraps.
func MAC(m registers.MAC, a, b uint16, saturating bool) registers.MAC {
	v := m.Value() + int64(int16(a))*int64(int16(b))
	if saturating {
		if v > math.MaxInt32 {
			v = math.MaxInt32
		} else if v < math.MinInt32 {
			v = math.MinInt32
		}
	}
	return registers.FromValue(v)
}
