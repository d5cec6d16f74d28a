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
)

// addressing is the addressing mode of a memory operand.
type addressing int

// List of addressing modes for memory operands.
const (
	modeIndirect addressing = iota // @ERn
	modeDisp16                     // @(d:16,ERn)
	modePostInc                    // @ERn+
	modePreDec                     // @-ERn
	modeAbs8                       // @aa:8
	modeAbs16                      // @aa:16
	modeAbs24                      // @aa:24
	modeDisp32                     // @(d:32,ERn)
)

// number of extension words for the addressing mode.
func (m addressing) extension() int {
	switch m {
	case modeDisp16, modeAbs16:
		return 1
	case modeAbs24, modeDisp32:
		return 2
	}
	return 0
}

// effectiveAddress of a memory operand. The opcode word holding the address
// register field is IR[k] and any extension words follow it. The 32 bit
// displacement follows the opcode word after IR[k]. The register is
// decremented for pre-decrement operands.
func (c *H8) effectiveAddress(m addressing, k int, size int32) uint32 {
	w := c.st.IR[k]
	switch m {
	case modeIndirect, modePostInc:
		return c.areg(w>>4) & c.amask
	case modeDisp16:
		return uint32(int32(c.areg(w>>4))+int32(int16(c.st.IR[k+1]))) & c.amask
	case modePreDec:
		c.adjustAreg(w>>4, -size)
		return c.areg(w>>4) & c.amask
	case modeAbs8:
		return c.shortAddress(w)
	case modeAbs16:
		return c.absolute16(c.st.IR[k+1])
	case modeAbs24:
		return c.absolute24(c.st.IR[k+1], c.st.IR[k+2])
	case modeDisp32:
		return (c.areg(w>>4) + (uint32(c.st.IR[k+2])<<16 | uint32(c.st.IR[k+3]))) & c.amask
	}
	return 0
}

// the data register of a memory transfer. the @aa:8 form has the register
// in bits 11 to 8 and the @(d:32,ERn) form has it in the next opcode word.
func (c *H8) dataRegister(m addressing, k int) int {
	switch m {
	case modeAbs8:
		return rtop(c.st.IR[k])
	case modeDisp32:
		return rlo(c.st.IR[k+1])
	}
	return rlo(c.st.IR[k])
}

func (c *H8) getReg(size int32, n int) uint32 {
	switch size {
	case 1:
		return uint32(c.st.Regs.R8(n))
	case 2:
		return uint32(c.st.Regs.R16(n))
	}
	return c.st.Regs.R32(n)
}

func (c *H8) setReg(size int32, n int, v uint32) {
	switch size {
	case 1:
		c.st.Regs.SetR8(n, uint8(v))
	case 2:
		c.st.Regs.SetR16(n, uint16(v))
	default:
		c.st.Regs.SetR32(n, v)
	}
}

func setNZV(ccr registers.CCR, size int32, v uint32) registers.CCR {
	switch size {
	case 1:
		return alu.SetNZV8(ccr, uint8(v))
	case 2:
		return alu.SetNZV16(ccr, uint16(v))
	}
	return alu.SetNZV32(ccr, v)
}

// load is the program for MOV from memory to a register.
func load(m addressing, k int, size int32) []step {
	return loadWith(m, k, size, func(c *H8, v uint32) {
		c.setReg(size, c.dataRegister(m, k), v)
		c.st.CCR = setNZV(c.st.CCR, size, v)
	}, (*H8).prefetchDone)
}

// loadWith reads the memory operand and gives the value to the set function.
// The done function ends the instruction.
func loadWith(m addressing, k int, size int32, set func(c *H8, v uint32), done func(c *H8)) []step {
	var s []step
	for range m.extension() {
		s = append(s, fetchStep)
	}
	s = append(s, func(c *H8) {
		c.st.TMP2 = c.effectiveAddress(m, k, size)
		c.prefetchStart()
	})

	switch size {
	case 1:
		s = append(s, func(c *H8) {
			c.st.TMP1 = uint32(c.read8(c.st.TMP2))
		})
	case 2:
		s = append(s, func(c *H8) {
			c.st.TMP1 = uint32(c.read16(c.st.TMP2))
		})
	case 4:
		s = append(s, func(c *H8) {
			c.st.TMP1 = uint32(c.read16(c.st.TMP2)) << 16
		}, func(c *H8) {
			c.st.TMP1 |= uint32(c.read16(c.st.TMP2 + 2))
		})
	}

	if m == modePostInc {
		s = append(s, func(c *H8) {
			c.adjustAreg(c.st.IR[k]>>4, size)
			c.internal(1)
		})
	}

	return finishWith(s, func(c *H8) {
		set(c, c.st.TMP1)
	}, done)
}

// store is the program for MOV from a register to memory.
func store(m addressing, k int, size int32) []step {
	return storeWith(m, k, size, func(c *H8) uint32 {
		return c.getReg(size, c.dataRegister(m, k))
	}, func(c *H8, v uint32) {
		c.st.CCR = setNZV(c.st.CCR, size, v)
	})
}

// storeWith writes the value returned by the get function to the memory
// operand. The after function, which can be nil, is given the value once it
// has been written.
func storeWith(m addressing, k int, size int32, get func(c *H8) uint32, after func(c *H8, v uint32)) []step {
	var s []step
	for range m.extension() {
		s = append(s, fetchStep)
	}
	s = append(s, func(c *H8) {
		c.st.TMP2 = c.effectiveAddress(m, k, size)
		c.prefetchStart()
	})

	if m == modePreDec {
		s = append(s, internalStep)
	}

	switch size {
	case 1:
		s = append(s, func(c *H8) {
			c.st.TMP1 = get(c)
			c.write8(c.st.TMP2, uint8(c.st.TMP1))
		})
	case 2:
		s = append(s, func(c *H8) {
			c.st.TMP1 = get(c)
			c.write16(c.st.TMP2, uint16(c.st.TMP1))
		})
	case 4:
		s = append(s, func(c *H8) {
			c.st.TMP1 = get(c)
			c.write16(c.st.TMP2, uint16(c.st.TMP1>>16))
		}, func(c *H8) {
			c.write16(c.st.TMP2+2, uint16(c.st.TMP1))
		})
	}

	return finish(s, func(c *H8) {
		if after != nil {
			after(c, c.st.TMP1)
		}
	})
}

// move between registers, or an immediate to a register.
func move(size int32, src func(c *H8) uint32, dst func(c *H8) int) func(c *H8) {
	return func(c *H8) {
		v := src(c)
		c.setReg(size, dst(c), v)
		c.st.CCR = setNZV(c.st.CCR, size, v)
	}
}

// eepmov copies a block of bytes from @ER5 to @ER6. The count is in R4L, or
// in R4 for the word form, and is zero when the instruction ends. Interrupts
// are not accepted until the block has been copied.
func eepmov(word bool) []step {
	count := func(c *H8) uint16 {
		if word {
			return c.st.Regs.R16(4)
		}
		return uint16(c.st.Regs.R8(12))
	}

	const loop = 4

	return []step{
		func(c *H8) {
			c.opcodeWord(0xffff, 0x598f)
		},
		prefetchStep,
		idleStep,
		idleStep,
		func(c *H8) {
			if count(c) == 0 {
				c.prefetchDone()
				return
			}
			c.st.TMP1 = uint32(c.read8(c.areg(5) & c.amask))
		},
		func(c *H8) {
			c.write8(c.areg(6)&c.amask, uint8(c.st.TMP1))
			c.adjustAreg(5, 1)
			c.adjustAreg(6, 1)
			if word {
				c.st.Regs.SetR16(4, count(c)-1)
			} else {
				c.st.Regs.SetR8(12, uint8(count(c)-1))
			}
			c.jump(loop)
		},
	}
}

// stm pushes the registers from the one named in the second opcode word
// upwards. The first register is pushed first.
func stm(n int) []step {
	s := []step{prefetchStep, internalStep}
	for i := range n {
		s = append(s, func(c *H8) {
			sp := c.sp() - 4
			c.setAreg(registers.SP, sp)
			c.st.TMP1 = c.st.Regs.R32((rlo(c.st.IR[1]) + i) & 7)
			c.write16(sp, uint16(c.st.TMP1>>16))
		}, func(c *H8) {
			c.write16(c.sp()+2, uint16(c.st.TMP1))
		})
	}
	return finish(s, nil)
}

// ldm pops the registers from the one named in the second opcode word
// downwards. The registers are popped in the reverse of the order that STM
// pushes them.
func ldm(n int) []step {
	s := []step{prefetchStep, internalStep}
	for i := range n {
		s = append(s, func(c *H8) {
			c.st.TMP1 = uint32(c.read16(c.sp())) << 16
		}, func(c *H8) {
			sp := c.sp()
			c.st.TMP1 |= uint32(c.read16(sp + 2))
			c.setAreg(registers.SP, sp+4)
			c.st.Regs.SetR32((rlo(c.st.IR[1])-i)&7, c.st.TMP1)
		})
	}
	return finish(s, nil)
}

func transferInstructions() []*instruction {
	return []*instruction{
		// register and immediate
		op(ISA300, "MOV.B Rs,Rd", 0xff00, 0x0c00, single(move(1,
			func(c *H8) uint32 { return c.getReg(1, rhi(c.st.IR[0])) },
			func(c *H8) int { return rlo(c.st.IR[0]) }))...),
		op(ISA300, "MOV.W Rs,Rd", 0xff00, 0x0d00, single(move(2,
			func(c *H8) uint32 { return c.getReg(2, rhi(c.st.IR[0])) },
			func(c *H8) int { return rlo(c.st.IR[0]) }))...).withNoE(0x0088),
		op(ISA300H, "MOV.L ERs,ERd", 0xff88, 0x0f80, single(move(4,
			func(c *H8) uint32 { return c.getReg(4, rhi(c.st.IR[0])&7) },
			func(c *H8) int { return rlo(c.st.IR[0]) & 7 }))...),
		op(ISA300, "MOV.B #xx:8,Rd", 0xf000, 0xf000, single(move(1,
			func(c *H8) uint32 { return uint32(c.st.IR[0] & 0xff) },
			func(c *H8) int { return rtop(c.st.IR[0]) }))...),
		op(ISA300, "MOV.W #xx:16,Rd", 0xfff0, 0x7900, withFetches(1, move(2,
			func(c *H8) uint32 { return uint32(c.st.IR[1]) },
			func(c *H8) int { return rlo(c.st.IR[0]) }))...).withNoE(0x0008),
		op(ISA300H, "MOV.L #xx:32,ERd", 0xfff8, 0x7a00, withFetches(2, move(4,
			func(c *H8) uint32 { return uint32(c.st.IR[1])<<16 | uint32(c.st.IR[2]) },
			func(c *H8) int { return rlo(c.st.IR[0]) & 7 }))...),

		// byte memory
		op(ISA300, "MOV.B @ERs,Rd", 0xff80, 0x6800, load(modeIndirect, 0, 1)...),
		op(ISA300, "MOV.B Rs,@ERd", 0xff80, 0x6880, store(modeIndirect, 0, 1)...),
		op(ISA300, "MOV.B @(d:16,ERs),Rd", 0xff80, 0x6e00, load(modeDisp16, 0, 1)...),
		op(ISA300, "MOV.B Rs,@(d:16,ERd)", 0xff80, 0x6e80, store(modeDisp16, 0, 1)...),
		op(ISA300, "MOV.B @ERs+,Rd", 0xff80, 0x6c00, load(modePostInc, 0, 1)...),
		op(ISA300, "MOV.B Rs,@-ERd", 0xff80, 0x6c80, store(modePreDec, 0, 1)...),
		op(ISA300, "MOV.B @aa:8,Rd", 0xf000, 0x2000, load(modeAbs8, 0, 1)...),
		op(ISA300, "MOV.B Rs,@aa:8", 0xf000, 0x3000, store(modeAbs8, 0, 1)...),
		op(ISA300, "MOV.B @aa:16,Rd", 0xfff0, 0x6a00, load(modeAbs16, 0, 1)...),
		op(ISA300, "MOV.B Rs,@aa:16", 0xfff0, 0x6a80, store(modeAbs16, 0, 1)...),
		op(ISA300H, "MOV.B @aa:24,Rd", 0xfff0, 0x6a20, load(modeAbs24, 0, 1)...),
		op(ISA300H, "MOV.B Rs,@aa:24", 0xfff0, 0x6aa0, store(modeAbs24, 0, 1)...),

		// word memory
		op(ISA300, "MOV.W @ERs,Rd", 0xff80, 0x6900, load(modeIndirect, 0, 2)...).withNoE(0x0008),
		op(ISA300, "MOV.W Rs,@ERd", 0xff80, 0x6980, store(modeIndirect, 0, 2)...).withNoE(0x0008),
		op(ISA300, "MOV.W @(d:16,ERs),Rd", 0xff80, 0x6f00, load(modeDisp16, 0, 2)...).withNoE(0x0008),
		op(ISA300, "MOV.W Rs,@(d:16,ERd)", 0xff80, 0x6f80, store(modeDisp16, 0, 2)...).withNoE(0x0008),
		op(ISA300, "MOV.W @ERs+,Rd", 0xff80, 0x6d00, load(modePostInc, 0, 2)...).withNoE(0x0008),
		op(ISA300, "MOV.W Rs,@-ERd", 0xff80, 0x6d80, store(modePreDec, 0, 2)...).withNoE(0x0008),
		op(ISA300, "MOV.W @aa:16,Rd", 0xfff0, 0x6b00, load(modeAbs16, 0, 2)...).withNoE(0x0008),
		op(ISA300, "MOV.W Rs,@aa:16", 0xfff0, 0x6b80, store(modeAbs16, 0, 2)...).withNoE(0x0008),
		op(ISA300H, "MOV.W @aa:24,Rd", 0xfff0, 0x6b20, load(modeAbs24, 0, 2)...),
		op(ISA300H, "MOV.W Rs,@aa:24", 0xfff0, 0x6ba0, store(modeAbs24, 0, 2)...),

		// long memory
		prefix(ISA300H, 0xffff, 0x0100),
		op2(ISA300H, "MOV.L @ERs,ERd", 0xffff, 0x0100, 0xff88, 0x6900, load(modeIndirect, 1, 4)...),
		op2(ISA300H, "MOV.L ERs,@ERd", 0xffff, 0x0100, 0xff88, 0x6980, store(modeIndirect, 1, 4)...),
		op2(ISA300H, "MOV.L @(d:16,ERs),ERd", 0xffff, 0x0100, 0xff88, 0x6f00, load(modeDisp16, 1, 4)...),
		op2(ISA300H, "MOV.L ERs,@(d:16,ERd)", 0xffff, 0x0100, 0xff88, 0x6f80, store(modeDisp16, 1, 4)...),
		op2(ISA300H, "MOV.L @ERs+,ERd", 0xffff, 0x0100, 0xff88, 0x6d00, load(modePostInc, 1, 4)...),
		op2(ISA300H, "MOV.L ERs,@-ERd", 0xffff, 0x0100, 0xff88, 0x6d80, store(modePreDec, 1, 4)...),
		op2(ISA300H, "MOV.L @aa:16,ERd", 0xffff, 0x0100, 0xfff8, 0x6b00, load(modeAbs16, 1, 4)...),
		op2(ISA300H, "MOV.L ERs,@aa:16", 0xffff, 0x0100, 0xfff8, 0x6b80, store(modeAbs16, 1, 4)...),
		op2(ISA300H, "MOV.L @aa:24,ERd", 0xffff, 0x0100, 0xfff8, 0x6b20, load(modeAbs24, 1, 4)...),
		op2(ISA300H, "MOV.L ERs,@aa:24", 0xffff, 0x0100, 0xfff8, 0x6ba0, store(modeAbs24, 1, 4)...),

		// 32 bit displacement. the long forms have a third opcode word
		prefix(ISA300H, 0xff8f, 0x7800),
		op2(ISA300H, "MOV.B @(d:32,ERs),Rd", 0xff8f, 0x7800, 0xfff0, 0x6a20, load(modeDisp32, 0, 1)...),
		op2(ISA300H, "MOV.B Rs,@(d:32,ERd)", 0xff8f, 0x7800, 0xfff0, 0x6aa0, store(modeDisp32, 0, 1)...),
		op2(ISA300H, "MOV.W @(d:32,ERs),Rd", 0xff8f, 0x7800, 0xfff0, 0x6b20, load(modeDisp32, 0, 2)...),
		op2(ISA300H, "MOV.W Rs,@(d:32,ERd)", 0xff8f, 0x7800, 0xfff0, 0x6ba0, store(modeDisp32, 0, 2)...),
		op2(ISA300H, "MOV.L @(d:32)", 0xffff, 0x0100, 0xff8f, 0x7800, byNextWord(
			form{mask: 0xfff8, value: 0x6b20, steps: load(modeDisp32, 1, 4)},
			form{mask: 0xfff8, value: 0x6ba0, steps: store(modeDisp32, 1, 4)},
		)...),

		// block transfer
		op(ISA300, "EEPMOV.B", 0xffff, 0x7b5c, eepmov(false)...),
		op(ISA300H, "EEPMOV.W", 0xffff, 0x7bd4, eepmov(true)...),

		// multiple registers. the number of registers is in the prefix
		prefix(ISA2000, 0xffff, 0x0110),
		prefix(ISA2000, 0xffff, 0x0120),
		prefix(ISA2000, 0xffff, 0x0130),
		op2(ISA2000, "STM.L (ERn-ERn+1),@-SP", 0xffff, 0x0110, 0xfff8, 0x6df0, stm(2)...),
		op2(ISA2000, "STM.L (ERn-ERn+2),@-SP", 0xffff, 0x0120, 0xfff8, 0x6df0, stm(3)...),
		op2(ISA2000, "STM.L (ERn-ERn+3),@-SP", 0xffff, 0x0130, 0xfff8, 0x6df0, stm(4)...),
		op2(ISA2000, "LDM.L @SP+,(ERn-1-ERn)", 0xffff, 0x0110, 0xfff8, 0x6d70, ldm(2)...),
		op2(ISA2000, "LDM.L @SP+,(ERn-2-ERn)", 0xffff, 0x0120, 0xfff8, 0x6d70, ldm(3)...),
		op2(ISA2000, "LDM.L @SP+,(ERn-3-ERn)", 0xffff, 0x0130, 0xfff8, 0x6d70, ldm(4)...),
	}
}
