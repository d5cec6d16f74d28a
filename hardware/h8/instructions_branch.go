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

	"github.com/jetsetilly/h8core/hardware/h8/registers"
)

// the return address is pushed in two steps. in normal mode the second step
// makes no access.

func pushPC1(c *H8) {
	sp := c.sp() - uint32(c.pcSize())
	c.setAreg(registers.SP, sp)
	if c.variant.Advanced() {
		c.write16(sp, uint16(c.st.PC>>16))
	} else {
		c.write16(sp, uint16(c.st.PC))
	}
}

func pushPC2(c *H8) {
	if c.variant.Advanced() {
		c.write16(c.sp()+2, uint16(c.st.PC))
	}
}

// the return address is popped into TMP2.

func popPC1(c *H8) {
	sp := c.sp()
	if c.variant.Advanced() {
		c.st.TMP2 = uint32(c.read16(sp)) << 16
	} else {
		c.st.TMP2 = uint32(c.read16(sp))
	}
	c.setAreg(registers.SP, sp+2)
}

func popPC2(c *H8) {
	if c.variant.Advanced() {
		sp := c.sp()
		c.st.TMP2 |= uint32(c.read16(sp))
		c.setAreg(registers.SP, sp+2)
	}
}

// the condition of a Bcc is in bits 11 to 8 for the 8 bit displacement form
// and bits 7 to 4 for the 16 bit displacement form.
func branch(cond func(w uint16) uint8, disp func(c *H8) int32) func(c *H8) {
	return func(c *H8) {
		if c.st.CCR.Condition(cond(c.st.IR[0])) {
			c.st.PC = uint32(int32(c.st.PC)+disp(c)) & c.amask
		}
		c.prefetchStart()
		c.prefetchDone()
	}
}

func disp8(c *H8) int32 {
	return int32(int8(c.st.IR[0]))
}

func disp16(c *H8) int32 {
	return int32(int16(c.st.IR[1]))
}

// relative target for BSR.
func relative(disp func(c *H8) int32) step {
	return func(c *H8) {
		c.st.TMP2 = uint32(int32(c.st.PC) + disp(c))
		jumpToStep(c)
	}
}

// the targets of JMP and JSR are placed in TMP2.

func targetRegister(c *H8) {
	c.st.TMP2 = c.areg(c.st.IR[0] >> 4)
	c.read16i(c.st.PC)
}

func targetMemory1(c *H8) {
	addr := uint32(c.st.IR[0] & 0xff)
	if c.variant.Advanced() {
		c.st.TMP2 = uint32(c.read16(addr)) << 16
	} else {
		c.st.TMP2 = uint32(c.read16(addr))
	}
}

func targetMemory2(c *H8) {
	if c.variant.Advanced() {
		c.st.TMP2 |= uint32(c.read16(uint32(c.st.IR[0]&0xff) + 2))
	}
}

func targetAbsolute(c *H8) {
	c.st.TMP2 = c.absolute24(c.st.IR[0], c.st.IR[1])
	c.internal(1)
}

func popCCR(c *H8) {
	sp := c.sp()
	w := c.read16(sp)
	c.st.CCR = registers.CCR(w >> 8)
	if c.variant.Advanced() {
		c.st.TMP2 = uint32(w&0xff) << 16
	} else {
		c.st.TMP2 = 0
	}
	c.setAreg(registers.SP, sp+2)
}

func popEXR(c *H8) {
	if c.exrInStack() {
		sp := c.sp()
		c.setEXR(uint8(c.read16(sp) >> 8))
		c.setAreg(registers.SP, sp+2)
	}
}

func popPCLow(c *H8) {
	sp := c.sp()
	c.st.TMP2 |= uint32(c.read16(sp))
	c.setAreg(registers.SP, sp+2)
}

func branchInstructions() []*instruction {
	var d []*instruction

	for cond := range uint16(16) {
		name := registers.ConditionMnemonic(uint8(cond))
		d = append(d,
			op(ISA300, fmt.Sprintf("%s d:8", name), 0xff00, 0x4000|cond<<8,
				dummyFetchStep,
				branch(func(w uint16) uint8 { return uint8(w>>8) & 0x0f }, disp8),
			),
			op(ISA300H, fmt.Sprintf("%s d:16", name), 0xffff, 0x5800|cond<<4,
				fetchStep,
				internalStep,
				branch(func(w uint16) uint8 { return uint8(w>>4) & 0x0f }, disp16),
			),
		)
	}

	d = append(d,
		op(ISA300, "BSR d:8", 0xff00, 0x5500,
			dummyFetchStep,
			pushPC1,
			pushPC2,
			relative(disp8),
		),
		op(ISA300H, "BSR d:16", 0xffff, 0x5c00,
			fetchStep,
			internalStep,
			pushPC1,
			pushPC2,
			relative(disp16),
		),

		op(ISA300, "JMP @ERn", 0xff8f, 0x5900,
			targetRegister,
			jumpToStep,
		),
		op(ISA300, "JMP @aa:24", 0xff00, 0x5a00,
			fetchStep,
			targetAbsolute,
			jumpToStep,
		),
		op(ISA300, "JMP @@aa:8", 0xff00, 0x5b00,
			dummyFetchStep,
			targetMemory1,
			targetMemory2,
			internalStep,
			jumpToStep,
		),

		op(ISA300, "JSR @ERn", 0xff8f, 0x5d00,
			targetRegister,
			pushPC1,
			pushPC2,
			jumpToStep,
		),
		op(ISA300, "JSR @aa:24", 0xff00, 0x5e00,
			fetchStep,
			targetAbsolute,
			pushPC1,
			pushPC2,
			jumpToStep,
		),
		op(ISA300, "JSR @@aa:8", 0xff00, 0x5f00,
			dummyFetchStep,
			targetMemory1,
			targetMemory2,
			pushPC1,
			pushPC2,
			jumpToStep,
		),

		op(ISA300, "RTS", 0xffff, 0x5470,
			dummyFetchStep,
			popPC1,
			popPC2,
			internalStep,
			jumpToStep,
		),
		op(ISA300, "RTE", 0xffff, 0x5670,
			dummyFetchStep,
			popEXR,
			popCCR,
			popPCLow,
			internalStep,
			jumpToStep,
		),
	)

	return d
}
