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
	"github.com/jetsetilly/h8core/hardware/h8/alu"
	"github.com/jetsetilly/h8core/hardware/h8/registers"
	"github.com/jetsetilly/h8core/logger"
)

// aluOp is a two operand operation of any size.
type aluOp func(ccr registers.CCR, size int32, a, b uint32) (uint32, registers.CCR)

func addOp(ccr registers.CCR, size int32, a, b uint32) (uint32, registers.CCR) {
	switch size {
	case 1:
		r, ccr := alu.Add8(ccr, uint8(a), uint8(b))
		return uint32(r), ccr
	case 2:
		r, ccr := alu.Add16(ccr, uint16(a), uint16(b))
		return uint32(r), ccr
	}
	return alu.Add32(ccr, a, b)
}

func subOp(ccr registers.CCR, size int32, a, b uint32) (uint32, registers.CCR) {
	switch size {
	case 1:
		r, ccr := alu.Sub8(ccr, uint8(a), uint8(b))
		return uint32(r), ccr
	case 2:
		r, ccr := alu.Sub16(ccr, uint16(a), uint16(b))
		return uint32(r), ccr
	}
	return alu.Sub32(ccr, a, b)
}

func addxOp(ccr registers.CCR, _ int32, a, b uint32) (uint32, registers.CCR) {
	r, ccr := alu.AddX8(ccr, uint8(a), uint8(b))
	return uint32(r), ccr
}

func subxOp(ccr registers.CCR, _ int32, a, b uint32) (uint32, registers.CCR) {
	r, ccr := alu.SubX8(ccr, uint8(a), uint8(b))
	return uint32(r), ccr
}

func incOp(ccr registers.CCR, size int32, a, b uint32) (uint32, registers.CCR) {
	switch size {
	case 1:
		r, ccr := alu.Inc8(ccr, uint8(a), uint8(b))
		return uint32(r), ccr
	case 2:
		r, ccr := alu.Inc16(ccr, uint16(a), uint16(b))
		return uint32(r), ccr
	}
	return alu.Inc32(ccr, a, b)
}

func decOp(ccr registers.CCR, size int32, a, b uint32) (uint32, registers.CCR) {
	switch size {
	case 1:
		r, ccr := alu.Dec8(ccr, uint8(a), uint8(b))
		return uint32(r), ccr
	case 2:
		r, ccr := alu.Dec16(ccr, uint16(a), uint16(b))
		return uint32(r), ccr
	}
	return alu.Dec32(ccr, a, b)
}

// the register index for a four bit field. long operands only use three bits.
func regIndex(size int32, n int) int {
	if size == 4 {
		return n & 7
	}
	return n
}

// regReg applies the operation to the register in bits 7 to 4 and the
// register in bits 3 to 0 of the first opcode word. The result is discarded
// if store is false.
func regReg(size int32, f aluOp, store bool) func(c *H8) {
	return func(c *H8) {
		w := c.st.IR[0]
		d := regIndex(size, rlo(w))
		r, ccr := f(c.st.CCR, size, c.getReg(size, d), c.getReg(size, regIndex(size, rhi(w))))
		c.st.CCR = ccr
		if store {
			c.setReg(size, d, r)
		}
	}
}

// immReg applies the operation to a register and an immediate value.
func immReg(size int32, f aluOp, store bool, imm func(c *H8) uint32, dst func(w uint16) int) func(c *H8) {
	return func(c *H8) {
		d := regIndex(size, dst(c.st.IR[0]))
		r, ccr := f(c.st.CCR, size, c.getReg(size, d), imm(c))
		c.st.CCR = ccr
		if store {
			c.setReg(size, d, r)
		}
	}
}

// the immediate byte of the two byte forms. the register is in bits 11 to 8.
func imm8(c *H8) uint32 {
	return uint32(c.st.IR[0] & 0xff)
}

func imm16(c *H8) uint32 {
	return uint32(c.st.IR[1])
}

func imm32(c *H8) uint32 {
	return uint32(c.st.IR[1])<<16 | uint32(c.st.IR[2])
}

// constant operand for INC, DEC, ADDS and SUBS.
func constant(n uint32) func(c *H8) uint32 {
	return func(c *H8) uint32 {
		return n
	}
}

// unary applies the function to the register in bits 3 to 0.
func unary(size int32, f func(c *H8, v uint32) uint32) func(c *H8) {
	return func(c *H8) {
		d := regIndex(size, rlo(c.st.IR[0]))
		c.setReg(size, d, f(c, c.getReg(size, d)))
	}
}

// ADDS and SUBS change an address register without affecting the flags.
func adjust(delta int32) func(c *H8) {
	return func(c *H8) {
		c.adjustAreg(c.st.IR[0], delta)
	}
}

// mulDiv is the program for the multiply and divide instructions. The
// operation is made after the internal cycles. The opcode word holding the
// registers is IR[k].
func mulDiv(k int, cycles int64, f func(c *H8, w uint16)) []step {
	return multiply(k, cycles, cycles, f)
}

// multiply is mulDiv for the multiply instructions. The H8S/2600 has a
// hardware multiplier and uses the smaller number of internal cycles.
func multiply(k int, cycles int64, h8s2600 int64, f func(c *H8, w uint16)) []step {
	return []step{
		prefetchStep,
		func(c *H8) {
			if c.variant.ISA >= ISA2600 {
				c.internal(h8s2600)
			} else {
				c.internal(cycles)
			}
			f(c, c.st.IR[k])
			c.prefetchDone()
		},
	}
}

func mulxub(c *H8, w uint16) {
	d := rlo(w)
	c.st.Regs.SetR16(d, uint16(c.st.Regs.R8(rhi(w)))*uint16(uint8(c.st.Regs.R16(d))))
}

func mulxuw(c *H8, w uint16) {
	d := rlo(w) & 7
	c.st.Regs.SetR32(d, uint32(c.st.Regs.R16(rhi(w)))*uint32(uint16(c.st.Regs.R32(d))))
}

func mulxsb(c *H8, w uint16) {
	d := rlo(w)
	r, ccr := alu.MulXS8(c.st.CCR, c.st.Regs.R8(rhi(w)), uint8(c.st.Regs.R16(d)))
	c.st.Regs.SetR16(d, r)
	c.st.CCR = ccr
}

func mulxsw(c *H8, w uint16) {
	d := rlo(w) & 7
	r, ccr := alu.MulXS16(c.st.CCR, c.st.Regs.R16(rhi(w)), uint16(c.st.Regs.R32(d)))
	c.st.Regs.SetR32(d, r)
	c.st.CCR = ccr
}

// the result of a division by zero or a signed division that overflows is not
// documented. the registers are left unchanged.
func (c *H8) divisionFailed() {
	logger.Logf(c.perm, "h8", "division by zero or overflow at %06x: result undefined", c.st.PPC)
}

func divxub(c *H8, w uint16) {
	d := rlo(w)
	r, ccr, ok := alu.DivXU8(c.st.CCR, c.st.Regs.R16(d), c.st.Regs.R8(rhi(w)))
	c.st.CCR = ccr
	if !ok {
		c.divisionFailed()
		return
	}
	c.st.Regs.SetR16(d, r)
}

func divxuw(c *H8, w uint16) {
	d := rlo(w) & 7
	r, ccr, ok := alu.DivXU16(c.st.CCR, c.st.Regs.R32(d), c.st.Regs.R16(rhi(w)))
	c.st.CCR = ccr
	if !ok {
		c.divisionFailed()
		return
	}
	c.st.Regs.SetR32(d, r)
}

func divxsb(c *H8, w uint16) {
	d := rlo(w)
	r, ccr, ok := alu.DivXS8(c.st.CCR, c.st.Regs.R16(d), c.st.Regs.R8(rhi(w)))
	c.st.CCR = ccr
	if !ok {
		c.divisionFailed()
		return
	}
	c.st.Regs.SetR16(d, r)
}

func divxsw(c *H8, w uint16) {
	d := rlo(w) & 7
	r, ccr, ok := alu.DivXS16(c.st.CCR, c.st.Regs.R32(d), c.st.Regs.R16(rhi(w)))
	c.st.CCR = ccr
	if !ok {
		c.divisionFailed()
		return
	}
	c.st.Regs.SetR32(d, r)
}

func arithmeticInstructions() []*instruction {
	return []*instruction{
		// addition
		op(ISA300, "ADD.B #xx:8,Rd", 0xf000, 0x8000, single(immReg(1, addOp, true, imm8, rtop))...),
		op(ISA300, "ADD.B Rs,Rd", 0xff00, 0x0800, single(regReg(1, addOp, true))...),
		op(ISA300, "ADD.W Rs,Rd", 0xff00, 0x0900, single(regReg(2, addOp, true))...).withNoE(0x0088),
		op(ISA300H, "ADD.W #xx:16,Rd", 0xfff0, 0x7910, withFetches(1, immReg(2, addOp, true, imm16, rlo))...),
		op(ISA300H, "ADD.L #xx:32,ERd", 0xfff8, 0x7a10, withFetches(2, immReg(4, addOp, true, imm32, rlo))...),
		op(ISA300H, "ADD.L ERs,ERd", 0xff88, 0x0a80, single(regReg(4, addOp, true))...),
		op(ISA300, "ADDX #xx:8,Rd", 0xf000, 0x9000, single(immReg(1, addxOp, true, imm8, rtop))...),
		op(ISA300, "ADDX Rs,Rd", 0xff00, 0x0e00, single(regReg(1, addxOp, true))...),
		op(ISA300, "ADDS #1,ERd", 0xfff8, 0x0b00, single(adjust(1))...),
		op(ISA300, "ADDS #2,ERd", 0xfff8, 0x0b80, single(adjust(2))...),
		op(ISA300H, "ADDS #4,ERd", 0xfff8, 0x0b90, single(adjust(4))...),
		op(ISA300, "INC.B Rd", 0xfff0, 0x0a00, single(immReg(1, incOp, true, constant(1), rlo))...),
		op(ISA300H, "INC.W #1,Rd", 0xfff0, 0x0b50, single(immReg(2, incOp, true, constant(1), rlo))...),
		op(ISA300H, "INC.W #2,Rd", 0xfff0, 0x0bd0, single(immReg(2, incOp, true, constant(2), rlo))...),
		op(ISA300H, "INC.L #1,ERd", 0xfff8, 0x0b70, single(immReg(4, incOp, true, constant(1), rlo))...),
		op(ISA300H, "INC.L #2,ERd", 0xfff8, 0x0bf0, single(immReg(4, incOp, true, constant(2), rlo))...),
		op(ISA300, "DAA Rd", 0xfff0, 0x0f00, single(unary(1, func(c *H8, v uint32) uint32 {
			r, ccr := alu.DAA(c.st.CCR, uint8(v))
			c.st.CCR = ccr
			return uint32(r)
		}))...),

		// subtraction
		op(ISA300, "SUB.B Rs,Rd", 0xff00, 0x1800, single(regReg(1, subOp, true))...),
		op(ISA300, "SUB.W Rs,Rd", 0xff00, 0x1900, single(regReg(2, subOp, true))...).withNoE(0x0088),
		op(ISA300H, "SUB.W #xx:16,Rd", 0xfff0, 0x7930, withFetches(1, immReg(2, subOp, true, imm16, rlo))...),
		op(ISA300H, "SUB.L #xx:32,ERd", 0xfff8, 0x7a30, withFetches(2, immReg(4, subOp, true, imm32, rlo))...),
		op(ISA300H, "SUB.L ERs,ERd", 0xff88, 0x1a80, single(regReg(4, subOp, true))...),
		op(ISA300, "SUBX #xx:8,Rd", 0xf000, 0xb000, single(immReg(1, subxOp, true, imm8, rtop))...),
		op(ISA300, "SUBX Rs,Rd", 0xff00, 0x1e00, single(regReg(1, subxOp, true))...),
		op(ISA300, "SUBS #1,ERd", 0xfff8, 0x1b00, single(adjust(-1))...),
		op(ISA300, "SUBS #2,ERd", 0xfff8, 0x1b80, single(adjust(-2))...),
		op(ISA300H, "SUBS #4,ERd", 0xfff8, 0x1b90, single(adjust(-4))...),
		op(ISA300, "DEC.B Rd", 0xfff0, 0x1a00, single(immReg(1, decOp, true, constant(1), rlo))...),
		op(ISA300H, "DEC.W #1,Rd", 0xfff0, 0x1b50, single(immReg(2, decOp, true, constant(1), rlo))...),
		op(ISA300H, "DEC.W #2,Rd", 0xfff0, 0x1bd0, single(immReg(2, decOp, true, constant(2), rlo))...),
		op(ISA300H, "DEC.L #1,ERd", 0xfff8, 0x1b70, single(immReg(4, decOp, true, constant(1), rlo))...),
		op(ISA300H, "DEC.L #2,ERd", 0xfff8, 0x1bf0, single(immReg(4, decOp, true, constant(2), rlo))...),
		op(ISA300, "DAS Rd", 0xfff0, 0x1f00, single(unary(1, func(c *H8, v uint32) uint32 {
			r, ccr := alu.DAS(c.st.CCR, uint8(v))
			c.st.CCR = ccr
			return uint32(r)
		}))...),

		// comparison
		op(ISA300, "CMP.B #xx:8,Rd", 0xf000, 0xa000, single(immReg(1, subOp, false, imm8, rtop))...),
		op(ISA300, "CMP.B Rs,Rd", 0xff00, 0x1c00, single(regReg(1, subOp, false))...),
		op(ISA300, "CMP.W Rs,Rd", 0xff00, 0x1d00, single(regReg(2, subOp, false))...).withNoE(0x0088),
		op(ISA300H, "CMP.W #xx:16,Rd", 0xfff0, 0x7920, withFetches(1, immReg(2, subOp, false, imm16, rlo))...),
		op(ISA300H, "CMP.L #xx:32,ERd", 0xfff8, 0x7a20, withFetches(2, immReg(4, subOp, false, imm32, rlo))...),
		op(ISA300H, "CMP.L ERs,ERd", 0xff88, 0x1f80, single(regReg(4, subOp, false))...),

		// negation and extension
		op(ISA300, "NEG.B Rd", 0xfff0, 0x1780, single(unary(1, func(c *H8, v uint32) uint32 {
			r, ccr := subOp(c.st.CCR, 1, 0, v)
			c.st.CCR = ccr
			return r
		}))...),
		op(ISA300H, "NEG.W Rd", 0xfff0, 0x1790, single(unary(2, func(c *H8, v uint32) uint32 {
			r, ccr := subOp(c.st.CCR, 2, 0, v)
			c.st.CCR = ccr
			return r
		}))...),
		op(ISA300H, "NEG.L ERd", 0xfff8, 0x17b0, single(unary(4, func(c *H8, v uint32) uint32 {
			r, ccr := subOp(c.st.CCR, 4, 0, v)
			c.st.CCR = ccr
			return r
		}))...),
		op(ISA300H, "EXTU.W Rd", 0xfff0, 0x1750, single(unary(2, func(c *H8, v uint32) uint32 {
			v &= 0xff
			c.st.CCR = setNZV(c.st.CCR, 2, v)
			return v
		}))...),
		op(ISA300H, "EXTU.L ERd", 0xfff8, 0x1770, single(unary(4, func(c *H8, v uint32) uint32 {
			v &= 0xffff
			c.st.CCR = setNZV(c.st.CCR, 4, v)
			return v
		}))...),
		op(ISA300H, "EXTS.W Rd", 0xfff0, 0x17d0, single(unary(2, func(c *H8, v uint32) uint32 {
			v = uint32(uint16(int16(int8(v))))
			c.st.CCR = setNZV(c.st.CCR, 2, v)
			return v
		}))...),
		op(ISA300H, "EXTS.L ERd", 0xfff8, 0x17f0, single(unary(4, func(c *H8, v uint32) uint32 {
			v = uint32(int32(int16(v)))
			c.st.CCR = setNZV(c.st.CCR, 4, v)
			return v
		}))...),

		// multiply and divide
		op(ISA300, "MULXU.B Rs,Rd", 0xff00, 0x5000, multiply(0, 11, 2, mulxub)...).withNoE(0x0008),
		op(ISA300H, "MULXU.W Rs,ERd", 0xff08, 0x5200, multiply(0, 19, 3, mulxuw)...),
		op(ISA300, "DIVXU.B Rs,Rd", 0xff00, 0x5100, mulDiv(0, 11, divxub)...).withNoE(0x0008),
		op(ISA300H, "DIVXU.W Rs,ERd", 0xff08, 0x5300, mulDiv(0, 19, divxuw)...),

		prefix(ISA300H, 0xffff, 0x01c0),
		op2(ISA300H, "MULXS.B Rs,Rd", 0xffff, 0x01c0, 0xff00, 0x5000, multiply(1, 11, 2, mulxsb)...),
		op2(ISA300H, "MULXS.W Rs,ERd", 0xffff, 0x01c0, 0xff08, 0x5200, multiply(1, 19, 3, mulxsw)...),
		prefix(ISA300H, 0xffff, 0x01d0),
		op2(ISA300H, "DIVXS.B Rs,Rd", 0xffff, 0x01d0, 0xff00, 0x5100, mulDiv(1, 11, divxsb)...),
		op2(ISA300H, "DIVXS.W Rs,ERd", 0xffff, 0x01d0, 0xff08, 0x5300, mulDiv(1, 19, divxsw)...),
	}
}
