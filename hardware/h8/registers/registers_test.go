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

package registers_test

import (
	"testing"

	"github.com/jetsetilly/h8core/hardware/h8/registers"
	"github.com/jetsetilly/h8core/test"
)

func TestByteRegisters(t *testing.T) {
	var f registers.File

	f.SetR16(3, 0x1234)
	test.ExpectEquality(t, f.R8(3), uint8(0x12))
	test.ExpectEquality(t, f.R8(11), uint8(0x34))

	f.SetR8(3, 0xab)
	f.SetR8(11, 0xcd)
	test.ExpectEquality(t, f.R16(3), uint16(0xabcd))

	// E registers are not touched by byte access
	test.ExpectEquality(t, f.R16(11), uint16(0x0000))
}

func TestCompositeRegisters(t *testing.T) {
	var f registers.File

	f.SetR32(2, 0xdeadbeef)
	test.ExpectEquality(t, f.R16(2), uint16(0xbeef))
	test.ExpectEquality(t, f.R16(10), uint16(0xdead))

	f.SetR16(10, 0x0001)
	test.ExpectEquality(t, f.R32(2), uint32(0x0001beef))

	test.ExpectEquality(t, f.String(true)[:12], "ER0=00000000")
}

func TestCCR(t *testing.T) {
	var ccr registers.CCR

	ccr = ccr.Set(registers.FlagI, true)
	ccr = ccr.Set(registers.FlagC, true)
	test.ExpectEquality(t, ccr.String(), "IuhunzvC")
	test.ExpectEquality(t, ccr.Carry(), uint32(1))

	ccr = ccr.Set(registers.FlagC, false)
	test.ExpectEquality(t, ccr.Is(registers.FlagC), false)
	test.ExpectEquality(t, ccr.Is(registers.FlagI), true)
}

func TestConditions(t *testing.T) {
	ccr := registers.FlagZ
	test.ExpectEquality(t, ccr.Condition(0x7), true)  // BEQ
	test.ExpectEquality(t, ccr.Condition(0x6), false) // BNE
	test.ExpectEquality(t, ccr.Condition(0xf), true)  // BLE
	test.ExpectEquality(t, ccr.Condition(0xe), false) // BGT

	ccr = registers.FlagN
	test.ExpectEquality(t, ccr.Condition(0xd), true)  // BLT
	test.ExpectEquality(t, ccr.Condition(0xc), false) // BGE

	ccr = registers.FlagN | registers.FlagV
	test.ExpectEquality(t, ccr.Condition(0xc), true) // BGE

	test.ExpectEquality(t, registers.ConditionMnemonic(0x2), "BHI")
}

func TestEXR(t *testing.T) {
	exr := registers.EXR(0).WithLevel(7)
	test.ExpectEquality(t, exr.Level(), 7)
	test.ExpectEquality(t, exr.Trace(), false)
	test.ExpectEquality(t, exr.String(), "t7")

	exr |= registers.FlagT
	exr = exr.WithLevel(3)
	test.ExpectEquality(t, exr.Level(), 3)
	test.ExpectEquality(t, exr.Trace(), true)
}

func TestMAC(t *testing.T) {
	m := registers.FromValue(-1)
	test.ExpectEquality(t, m.Value(), int64(-1))
	test.ExpectEquality(t, m.High(), uint32(0xffffffff))
	test.ExpectEquality(t, m.Low(), uint32(0xffffffff))

	m = registers.MAC(0).SetHigh(0x1).SetLow(0x80000000)
	test.ExpectEquality(t, m.Value(), int64(0x180000000))

	// bit 9 of MACH is the sign
	m = registers.MAC(0).SetHigh(0x200)
	test.ExpectEquality(t, m.High(), uint32(0xfffffe00))
}
