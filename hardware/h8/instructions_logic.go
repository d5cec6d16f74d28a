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

package h8

import (
	"fmt"

	"github.com/jetsetilly/h8core/hardware/h8/alu"
	"github.com/jetsetilly/h8core/hardware/h8/registers"
)

func andOp(ccr registers.CCR, size int32, a, b uint32) (uint32, registers.CCR) {
	return a & b, setNZV(ccr, size, a&b)
}

func orOp(ccr registers.CCR, size int32, a, b uint32) (uint32, registers.CCR) {
	return a | b, setNZV(ccr, size, a|b)
}

func xorOp(ccr registers.CCR, size int32, a, b uint32) (uint32, registers.CCR) {
	return a ^ b, setNZV(ccr, size, a^b)
}

// logicLong is the program for the long register forms of AND, OR and XOR.
// The registers are in the second opcode word.
func logicLong(f aluOp) []step {
	return []step{
		func(c *H8) {
			w := c.st.IR[1]
			d := rlo(w) & 7
			r, ccr := f(c.st.CCR, 4, c.st.Regs.R32(d), c.st.Regs.R32(rhi(w)&7))
			c.st.CCR = ccr
			c.st.Regs.SetR32(d, r)
			c.prefetchStart()
			c.prefetchDone()
		},
	}
}

func notOp(size int32) func(c *H8, v uint32) uint32 {
	return func(c *H8, v uint32) uint32 {
		v = ^v
		c.st.CCR = setNZV(c.st.CCR, size, v)
		return v
	}
}

func (c *H8) setEXR(v uint8) {
	c.st.EXR = registers.EXR(v) | registers.EXRFixed
}

// the immediate of the EXR forms is in the second opcode word.
func exrImm(c *H8) uint8 {
	return uint8(c.st.IR[1])
}

// controlMemory defines the memory forms of LDC and STC for the control
// register. The operand is a word with the register in the high byte. STC
// writes the register to both bytes.
func controlMemory(isa ISA, pfx uint16, reg string, get func(c *H8) uint8, set func(c *H8, v uint8)) []*instruction {
	ld := func(c *H8, v uint32) {
		set(c, uint8(v>>8))
	}
	st := func(c *H8) uint32 {
		v := uint32(get(c))
		return v<<8 | v
	}

	forms := []struct {
		load, store addressing
		src, dst    string
		mask        uint16
		value       uint16
	}{
		{load: modeIndirect, store: modeIndirect, src: "@ERs", dst: "@ERd", mask: 0xff8f, value: 0x6900},
		{load: modeDisp16, store: modeDisp16, src: "@(d:16,ERs)", dst: "@(d:16,ERd)", mask: 0xff8f, value: 0x6f00},
		{load: modePostInc, store: modePreDec, src: "@ERs+", dst: "@-ERd", mask: 0xff8f, value: 0x6d00},
		{load: modeAbs16, store: modeAbs16, src: "@aa:16", dst: "@aa:16", mask: 0xffff, value: 0x6b00},
		{load: modeAbs24, store: modeAbs24, src: "@aa:32", dst: "@aa:32", mask: 0xffff, value: 0x6b20},
	}

	d := []*instruction{prefix(isa, 0xffff, pfx)}
	for _, f := range forms {
		d = append(d,
			op2(isa, fmt.Sprintf("LDC.W %s,%s", f.src, reg), 0xffff, pfx, f.mask, f.value,
				loadWith(f.load, 1, 2, ld, (*H8).prefetchDoneNoIRQ)...),
			op2(isa, fmt.Sprintf("STC.W %s,%s", reg, f.dst), 0xffff, pfx, f.mask, f.value|0x0080,
				storeWith(f.store, 1, 2, st, nil)...),
		)
	}
	return append(d, op2(isa, fmt.Sprintf("LDC/STC.W @(d:32),%s", reg), 0xffff, pfx, 0xff8f, 0x7800, byNextWord(
		form{mask: 0xffff, value: 0x6b20, steps: loadWith(modeDisp32, 1, 2, ld, (*H8).prefetchDoneNoIRQ)},
		form{mask: 0xffff, value: 0x6ba0, steps: storeWith(modeDisp32, 1, 2, st, nil)},
	)...))
}

func logicInstructions() []*instruction {
	return []*instruction{
		op(ISA300, "AND.B #xx:8,Rd", 0xf000, 0xe000, single(immReg(1, andOp, true, imm8, rtop))...),
		op(ISA300, "AND.B Rs,Rd", 0xff00, 0x1600, single(regReg(1, andOp, true))...),
		op(ISA300H, "AND.W Rs,Rd", 0xff00, 0x6600, single(regReg(2, andOp, true))...),
		op(ISA300H, "AND.W #xx:16,Rd", 0xfff0, 0x7960, withFetches(1, immReg(2, andOp, true, imm16, rlo))...),
		op(ISA300H, "AND.L #xx:32,ERd", 0xfff8, 0x7a60, withFetches(2, immReg(4, andOp, true, imm32, rlo))...),
		op(ISA300, "OR.B #xx:8,Rd", 0xf000, 0xc000, single(immReg(1, orOp, true, imm8, rtop))...),
		op(ISA300, "OR.B Rs,Rd", 0xff00, 0x1400, single(regReg(1, orOp, true))...),
		op(ISA300H, "OR.W Rs,Rd", 0xff00, 0x6400, single(regReg(2, orOp, true))...),
		op(ISA300H, "OR.W #xx:16,Rd", 0xfff0, 0x7940, withFetches(1, immReg(2, orOp, true, imm16, rlo))...),
		op(ISA300H, "OR.L #xx:32,ERd", 0xfff8, 0x7a40, withFetches(2, immReg(4, orOp, true, imm32, rlo))...),
		op(ISA300, "XOR.B #xx:8,Rd", 0xf000, 0xd000, single(immReg(1, xorOp, true, imm8, rtop))...),
		op(ISA300, "XOR.B Rs,Rd", 0xff00, 0x1500, single(regReg(1, xorOp, true))...),
		op(ISA300H, "XOR.W Rs,Rd", 0xff00, 0x6500, single(regReg(2, xorOp, true))...),
		op(ISA300H, "XOR.W #xx:16,Rd", 0xfff0, 0x7950, withFetches(1, immReg(2, xorOp, true, imm16, rlo))...),
		op(ISA300H, "XOR.L #xx:32,ERd", 0xfff8, 0x7a50, withFetches(2, immReg(4, xorOp, true, imm32, rlo))...),

		prefix(ISA300H, 0xffff, 0x01f0),
		op2(ISA300H, "AND.L ERs,ERd", 0xffff, 0x01f0, 0xff88, 0x6600, logicLong(andOp)...),
		op2(ISA300H, "OR.L ERs,ERd", 0xffff, 0x01f0, 0xff88, 0x6400, logicLong(orOp)...),
		op2(ISA300H, "XOR.L ERs,ERd", 0xffff, 0x01f0, 0xff88, 0x6500, logicLong(xorOp)...),

		op(ISA300, "NOT.B Rd", 0xfff0, 0x1700, single(unary(1, notOp(1)))...),
		op(ISA300H, "NOT.W Rd", 0xfff0, 0x1710, single(unary(2, notOp(2)))...),
		op(ISA300H, "NOT.L ERd", 0xfff8, 0x1730, single(unary(4, notOp(4)))...),

		// control registers. interrupts are not accepted after an instruction
		// that changes CCR or EXR
		op(ISA300, "LDC #xx:8,CCR", 0xff00, 0x0700, singleNoIRQ(func(c *H8) {
			c.st.CCR = registers.CCR(c.st.IR[0])
		})...),
		op(ISA300, "LDC Rs,CCR", 0xfff0, 0x0300, singleNoIRQ(func(c *H8) {
			c.st.CCR = registers.CCR(c.st.Regs.R8(rlo(c.st.IR[0])))
		})...),
		op(ISA300, "STC CCR,Rd", 0xfff0, 0x0200, single(func(c *H8) {
			c.st.Regs.SetR8(rlo(c.st.IR[0]), uint8(c.st.CCR))
		})...),
		op(ISA300, "ANDC #xx:8,CCR", 0xff00, 0x0600, singleNoIRQ(func(c *H8) {
			c.st.CCR &= registers.CCR(c.st.IR[0])
		})...),
		op(ISA300, "ORC #xx:8,CCR", 0xff00, 0x0400, singleNoIRQ(func(c *H8) {
			c.st.CCR |= registers.CCR(c.st.IR[0])
		})...),
		op(ISA300, "XORC #xx:8,CCR", 0xff00, 0x0500, singleNoIRQ(func(c *H8) {
			c.st.CCR ^= registers.CCR(c.st.IR[0])
		})...),

		op(ISA2000, "LDC Rs,EXR", 0xfff0, 0x0310, singleNoIRQ(func(c *H8) {
			c.setEXR(c.st.Regs.R8(rlo(c.st.IR[0])))
		})...),
		op(ISA2000, "STC EXR,Rd", 0xfff0, 0x0210, single(func(c *H8) {
			c.st.Regs.SetR8(rlo(c.st.IR[0]), uint8(c.st.EXR))
		})...),
		prefix(ISA2000, 0xffff, 0x0141),
		op2(ISA2000, "LDC #xx:8,EXR", 0xffff, 0x0141, 0xff00, 0x0700, singleNoIRQ(func(c *H8) {
			c.setEXR(exrImm(c))
		})...),
		op2(ISA2000, "ANDC #xx:8,EXR", 0xffff, 0x0141, 0xff00, 0x0600, singleNoIRQ(func(c *H8) {
			c.setEXR(uint8(c.st.EXR) & exrImm(c))
		})...),
		op2(ISA2000, "ORC #xx:8,EXR", 0xffff, 0x0141, 0xff00, 0x0400, singleNoIRQ(func(c *H8) {
			c.setEXR(uint8(c.st.EXR) | exrImm(c))
		})...),
		op2(ISA2000, "XORC #xx:8,EXR", 0xffff, 0x0141, 0xff00, 0x0500, singleNoIRQ(func(c *H8) {
			c.setEXR(uint8(c.st.EXR) ^ exrImm(c))
		})...),
	}
}

// the memory forms of LDC and STC.
func controlInstructions() []*instruction {
	d := controlMemory(ISA300H, 0x0140, "CCR",
		func(c *H8) uint8 { return uint8(c.st.CCR) },
		func(c *H8, v uint8) { c.st.CCR = registers.CCR(v) },
	)

	// the 0141 prefix is defined with the immediate EXR forms
	exr := controlMemory(ISA2000, 0x0141, "EXR",
		func(c *H8) uint8 { return uint8(c.st.EXR) },
		(*H8).setEXR,
	)
	return append(d, exr[1:]...)
}

// the shift and rotate operations for opcodes 10 to 13. bit 7 of the second
// byte selects the second operation of the pair.
var shiftOps = [4][2]alu.ShiftOp{
	{alu.SHLL, alu.SHAL},
	{alu.SHLR, alu.SHAR},
	{alu.ROTXL, alu.ROTL},
	{alu.ROTXR, alu.ROTR},
}

func shiftReg(size int32, op alu.ShiftOp, count int) func(c *H8) {
	return func(c *H8) {
		d := regIndex(size, rlo(c.st.IR[0]))
		v := c.getReg(size, d)
		switch size {
		case 1:
			r, ccr := alu.Shift8(c.st.CCR, op, uint8(v), count)
			v, c.st.CCR = uint32(r), ccr
		case 2:
			r, ccr := alu.Shift16(c.st.CCR, op, uint16(v), count)
			v, c.st.CCR = uint32(r), ccr
		default:
			v, c.st.CCR = alu.Shift32(c.st.CCR, op, v, count)
		}
		c.setReg(size, d, v)
	}
}

func shiftInstructions() []*instruction {
	// bits 6 to 4 of the second byte select the size and count
	forms := []struct {
		field uint16
		size  int32
		count int
		isa   ISA
	}{
		{field: 0x00, size: 1, count: 1, isa: ISA300},
		{field: 0x10, size: 2, count: 1, isa: ISA300H},
		{field: 0x30, size: 4, count: 1, isa: ISA300H},
		{field: 0x40, size: 1, count: 2, isa: ISA2000},
		{field: 0x50, size: 2, count: 2, isa: ISA2000},
		{field: 0x70, size: 4, count: 2, isa: ISA2000},
	}

	var d []*instruction
	for i, pair := range shiftOps {
		for j, sop := range pair {
			for _, f := range forms {
				value := uint16(0x1000+i*0x100) | uint16(j)<<7 | f.field
				mask := uint16(0xfff0)
				reg := "Rd"
				if f.size == 4 {
					mask = 0xfff8
					reg = "ERd"
				}
				if f.count == 2 {
					reg = "#2," + reg
				}
				name := fmt.Sprintf("%s.%c %s", sop, "BW L"[f.size-1], reg)
				d = append(d, op(f.isa, name, mask, value, single(shiftReg(f.size, sop, f.count))...))
			}
		}
	}
	return d
}
