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

type bitOp int

const (
	bitSet bitOp = iota
	bitNot
	bitClear
	bitTest
	bitStore
	bitStoreInv
	bitLoad
	bitLoadInv
	bitAnd
	bitAndInv
	bitOr
	bitOrInv
	bitXor
	bitXorInv
)

// operate on bit b of the value. the new value is returned and the carry
// and zero flags are changed as required.
func (c *H8) bitOperate(op bitOp, v uint8, b uint8) uint8 {
	m := uint8(1) << (b & 7)
	bit := v&m != 0
	carry := c.st.CCR.Is(registers.FlagC)

	switch op {
	case bitSet:
		return v | m
	case bitNot:
		return v ^ m
	case bitClear:
		return v &^ m
	case bitTest:
		c.st.CCR = c.st.CCR.Set(registers.FlagZ, !bit)
	case bitStore, bitStoreInv:
		if carry != (op == bitStoreInv) {
			return v | m
		}
		return v &^ m
	case bitLoad:
		c.st.CCR = c.st.CCR.Set(registers.FlagC, bit)
	case bitLoadInv:
		c.st.CCR = c.st.CCR.Set(registers.FlagC, !bit)
	case bitAnd:
		c.st.CCR = c.st.CCR.Set(registers.FlagC, carry && bit)
	case bitAndInv:
		c.st.CCR = c.st.CCR.Set(registers.FlagC, carry && !bit)
	case bitOr:
		c.st.CCR = c.st.CCR.Set(registers.FlagC, carry || bit)
	case bitOrInv:
		c.st.CCR = c.st.CCR.Set(registers.FlagC, carry || !bit)
	case bitXor:
		c.st.CCR = c.st.CCR.Set(registers.FlagC, carry != bit)
	case bitXorInv:
		c.st.CCR = c.st.CCR.Set(registers.FlagC, carry == bit)
	}
	return v
}

// the bit number of a bit instruction. w is the opcode word with the bit
// number field.
func (c *H8) bitNumber(w uint16, fromReg bool) uint8 {
	if fromReg {
		return c.st.Regs.R8(rhi(w)) & 7
	}
	return uint8(w>>4) & 7
}

type bitForm struct {
	name    string
	mask    uint16
	value   uint16
	op      bitOp
	fromReg bool

	// the value is written back to memory
	modify bool
}

var bitForms = []bitForm{
	{name: "BSET", mask: 0xff80, value: 0x7000, op: bitSet, modify: true},
	{name: "BNOT", mask: 0xff80, value: 0x7100, op: bitNot, modify: true},
	{name: "BCLR", mask: 0xff80, value: 0x7200, op: bitClear, modify: true},
	{name: "BTST", mask: 0xff80, value: 0x7300, op: bitTest},
	{name: "BSET", mask: 0xff00, value: 0x6000, op: bitSet, fromReg: true, modify: true},
	{name: "BNOT", mask: 0xff00, value: 0x6100, op: bitNot, fromReg: true, modify: true},
	{name: "BCLR", mask: 0xff00, value: 0x6200, op: bitClear, fromReg: true, modify: true},
	{name: "BTST", mask: 0xff00, value: 0x6300, op: bitTest, fromReg: true},
	{name: "BST", mask: 0xff80, value: 0x6700, op: bitStore, modify: true},
	{name: "BIST", mask: 0xff80, value: 0x6780, op: bitStoreInv, modify: true},
	{name: "BLD", mask: 0xff80, value: 0x7700, op: bitLoad},
	{name: "BILD", mask: 0xff80, value: 0x7780, op: bitLoadInv},
	{name: "BOR", mask: 0xff80, value: 0x7400, op: bitOr},
	{name: "BIOR", mask: 0xff80, value: 0x7480, op: bitOrInv},
	{name: "BXOR", mask: 0xff80, value: 0x7500, op: bitXor},
	{name: "BIXOR", mask: 0xff80, value: 0x7580, op: bitXorInv},
	{name: "BAND", mask: 0xff80, value: 0x7600, op: bitAnd},
	{name: "BIAND", mask: 0xff80, value: 0x7680, op: bitAndInv},
}

func (f bitForm) operand() string {
	if f.fromReg {
		return "Rn"
	}
	return "#xx:3"
}

// register forms operate on the byte register in bits 3 to 0.
func (f bitForm) register() []step {
	return single(func(c *H8) {
		w := c.st.IR[0]
		d := rlo(w)
		c.st.Regs.SetR8(d, c.bitOperate(f.op, c.st.Regs.R8(d), c.bitNumber(w, f.fromReg)))
	})
}

// memory forms. the operation is in the second opcode word and the address
// is made from the first.
func (f bitForm) memory(ea func(c *H8) uint32) []step {
	if !f.modify {
		return []step{
			func(c *H8) {
				c.st.TMP2 = ea(c)
				c.st.TMP1 = uint32(c.read8(c.st.TMP2))
			},
			func(c *H8) {
				c.bitOperate(f.op, uint8(c.st.TMP1), c.bitNumber(c.st.IR[1], f.fromReg))
				c.prefetchStart()
				c.prefetchDone()
			},
		}
	}
	return []step{
		func(c *H8) {
			c.st.TMP2 = ea(c)
			c.st.TMP1 = uint32(c.read8(c.st.TMP2))
		},
		prefetchStep,
		func(c *H8) {
			v := c.bitOperate(f.op, uint8(c.st.TMP1), c.bitNumber(c.st.IR[1], f.fromReg))
			c.write8(c.st.TMP2, v)
			c.prefetchDone()
		},
	}
}

func bitIndirect(c *H8) uint32 {
	return c.areg(c.st.IR[0]>>4) & c.amask
}

func bitAbsolute(c *H8) uint32 {
	return c.shortAddress(c.st.IR[0])
}

func bitInstructions() []*instruction {
	d := []*instruction{
		prefix(ISA300, 0xff8f, 0x7c00),
		prefix(ISA300, 0xff8f, 0x7d00),
		prefix(ISA300, 0xff00, 0x7e00),
		prefix(ISA300, 0xff00, 0x7f00),
	}

	for _, f := range bitForms {
		d = append(d, op(ISA300, fmt.Sprintf("%s %s,Rd", f.name, f.operand()), f.mask, f.value, f.register()...))

		// the modifying forms are under 7D and 7F. the others are under 7C
		// and 7E
		ind := uint16(0x7c00)
		abs := uint16(0x7e00)
		if f.modify {
			ind = 0x7d00
			abs = 0x7f00
		}
		d = append(d,
			op2(ISA300, fmt.Sprintf("%s %s,@ERd", f.name, f.operand()), 0xff8f, ind, f.mask|0x000f, f.value, f.memory(bitIndirect)...),
			op2(ISA300, fmt.Sprintf("%s %s,@aa:8", f.name, f.operand()), 0xff00, abs, f.mask|0x000f, f.value, f.memory(bitAbsolute)...),
		)
	}

	// TAS tests the byte and sets bit 7 in one read-modify-write
	d = append(d,
		prefix(ISA2000, 0xffff, 0x01e0),
		op2(ISA2000, "TAS @ERd", 0xffff, 0x01e0, 0xff8f, 0x7b0c,
			func(c *H8) {
				c.st.TMP2 = c.areg(c.st.IR[1]>>4) & c.amask
				c.prefetchStart()
			},
			func(c *H8) {
				c.st.TMP1 = uint32(c.read8(c.st.TMP2))
			},
			func(c *H8) {
				c.st.CCR = alu.SetNZV8(c.st.CCR, uint8(c.st.TMP1))
				c.write8(c.st.TMP2, uint8(c.st.TMP1)|0x80)
				c.prefetchDone()
			},
		),
	)

	return d
}
