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

	"github.com/jetsetilly/h8core/logger"
)

// step is one part of an instruction program. A step makes at most one bus
// access or one internal operation.
type step func(c *H8)

// instruction is the definition of one instruction. Definitions are shared
// by every H8 instance and must not be changed once created.
type instruction struct {
	name string
	isa  ISA

	// the first opcode word
	mask  uint16
	value uint16

	// bits of the first word that must be clear on the H8/300. they are the
	// bits that select an E register, which the H8/300 does not have
	noE uint16

	// the definition is a prefix. the second word is fetched and the
	// instruction is redispatched to a second level definition
	prefix bool

	// second level definitions also match the second opcode word
	second bool
	mask2  uint16
	value2 uint16

	steps []step
}

func (ins *instruction) String() string {
	return ins.name
}

// op defines a first level instruction.
func op(isa ISA, name string, mask, value uint16, steps ...step) *instruction {
	return &instruction{
		name:  name,
		isa:   isa,
		mask:  mask,
		value: value,
		steps: steps,
	}
}

// op2 defines a second level instruction.
func op2(isa ISA, name string, mask, value, mask2, value2 uint16, steps ...step) *instruction {
	return &instruction{
		name:   name,
		isa:    isa,
		mask:   mask,
		value:  value,
		second: true,
		mask2:  mask2,
		value2: value2,
		steps:  steps,
	}
}

// prefix defines a first level word that introduces a group of second level
// instructions.
func prefix(isa ISA, mask, value uint16) *instruction {
	return &instruction{
		name:   fmt.Sprintf("prefix %04x", value),
		isa:    isa,
		mask:   mask,
		value:  value,
		prefix: true,
		steps:  []step{prefixStep},
	}
}

// withNoE marks the register fields that select E registers.
func (ins *instruction) withNoE(bits uint16) *instruction {
	ins.noE = bits
	return ins
}

// the complete list of definitions in a fixed order. the order of the second
// level definitions is the numbering of the second level dispatch states.
var definitions = func() []*instruction {
	var d []*instruction
	d = append(d, transferInstructions()...)
	d = append(d, arithmeticInstructions()...)
	d = append(d, logicInstructions()...)
	d = append(d, controlInstructions()...)
	d = append(d, shiftInstructions()...)
	d = append(d, bitInstructions()...)
	d = append(d, branchInstructions()...)
	d = append(d, systemInstructions()...)
	d = append(d, macInstructions()...)
	return d
}()

var illegalInstruction = &instruction{
	name:  "illegal",
	steps: []step{illegalStep},
}

// subsets calls f for every value that matches the mask and value.
func subsets(mask, value uint16, f func(w uint16)) {
	free := ^mask
	s := uint16(0)
	for {
		f(value | s)
		if s == free {
			return
		}
		s = (s - free) & free
	}
}

// overlap returns true if there is a pair of opcode words that would match
// both definitions.
func overlap(a, b *instruction) bool {
	if (a.value^b.value)&a.mask&b.mask != 0 {
		return false
	}
	return (a.value2^b.value2)&a.mask2&b.mask2 == 0
}

// buildDecodeTables fills the decode tables for the variant. Overlapping
// definitions are a programming error and cause a panic.
func (c *H8) buildDecodeTables() {
	for i := range c.first {
		c.first[i] = illegalInstruction
	}

	for _, ins := range definitions {
		if ins.isa > c.variant.ISA {
			continue
		}

		if ins.second {
			idx := len(c.second)
			c.second = append(c.second, ins)

			for hb := 0; hb < 256; hb++ {
				if (uint16(hb)<<8^ins.value)&ins.mask&0xff00 != 0 {
					continue
				}
				for _, o := range c.secondIndex[hb] {
					if overlap(c.second[o], ins) {
						panic(fmt.Sprintf("h8: decode: %s overlaps %s", ins, c.second[o]))
					}
				}
				c.secondIndex[hb] = append(c.secondIndex[hb], idx)
			}
			continue
		}

		subsets(ins.mask, ins.value, func(w uint16) {
			if c.variant.ISA == ISA300 && w&ins.noE != 0 {
				return
			}
			if c.first[w] != illegalInstruction {
				panic(fmt.Sprintf("h8: decode: %s overlaps %s at %04x", ins, c.first[w], w))
			}
			c.first[w] = ins
		})
	}
}

// Decodes returns the name of the instruction for the opcode words. The
// second word is only used if the first word is a prefix.
func (c *H8) Decodes(w0, w1 uint16) string {
	ins := c.first[w0]
	if !ins.prefix {
		return ins.name
	}
	if idx, ok := c.matchSecond(w0, w1); ok {
		return c.second[idx].name
	}
	return illegalInstruction.name
}

func (c *H8) matchSecond(w0, w1 uint16) (int, bool) {
	for _, idx := range c.secondIndex[w0>>8] {
		ins := c.second[idx]
		if w0&ins.mask == ins.value && w1&ins.mask2 == ins.value2 {
			return idx, true
		}
	}
	return 0, false
}

// prefixStep fetches the second opcode word and redispatches to the second
// level definition.
func prefixStep(c *H8) {
	w1 := c.fetch()
	idx, ok := c.matchSecond(c.st.IR[0], w1)
	if !ok {
		// the same words will be fetched when the instruction is repeated
		c.st.PC = (c.st.NPC + 2) & c.amask
		c.st.IRLen = 1
		illegalStep(c)
		return
	}
	c.redispatch(idx)
}

// illegalStep halts the core. The dispatch state is not changed so the
// illegal instruction is repeated once the owed cycles have been paid.
func illegalStep(c *H8) {
	if c.prefs.LogIllegal.Get().(bool) {
		logger.Logf(c.perm, "h8", "illegal instruction at address %06x", c.st.PPC)
	}
	c.st.Illegal = true
	c.st.ICount = c.sentinel
	c.finished = true
}
