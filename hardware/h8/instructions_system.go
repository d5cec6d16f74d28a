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
	"github.com/jetsetilly/h8core/logger"
)

// the step that SLEEP waits in.
const sleepStep = 1

// sleepWait ends the SLEEP instruction if there is anything that would be
// taken at an instruction boundary. Otherwise the core consumes cycles until
// the next peripheral event, or the end of the quantum, and tries again.
func sleepWait(c *H8) {
	wake := c.st.Requested != noRequest || c.st.CurrentDMA != -1 || c.st.DTCLen > 0
	if !wake {
		v, _ := c.selectInterrupt()
		wake = v >= 0
	}

	if wake {
		c.st.Sleeping = false
		c.prefetchDone()
		return
	}

	c.st.Sleeping = true
	if c.st.ICount > c.st.BCount {
		c.st.ICount = c.st.BCount
	}
	c.jump(sleepStep)
}

func trapaBegin(c *H8) {
	c.st.TMP1 = c.st.PC
	c.st.TMP3 = TrapVector + uint32(c.st.IR[0]>>4)&3
}

func systemInstructions() []*instruction {
	return []*instruction{
		op(ISA300, "NOP", 0xffff, 0x0000, single(func(c *H8) {})...),
		op(ISA300, "SLEEP", 0xffff, 0x0180, prefetchStep, sleepWait),
		op(ISA300H, "TRAPA #x:2", 0xffcf, 0x5700, entryProgram(trapaBegin, (*H8).trapaSetup, nil)...),
	}
}

// the MAC instruction. TMP1 holds the first operand and TMP3 the saturation
// setting at the start of the instruction.
func macInstruction() []step {
	return []step{
		func(c *H8) {
			c.st.TMP3 = 0
			if c.st.MACSaturating {
				c.st.TMP3 = 1
			}
			c.prefetchStart()
		},
		func(c *H8) {
			n := c.st.IR[1] >> 4
			c.st.TMP1 = uint32(c.read16(c.areg(n)))
			c.adjustAreg(n, 2)
		},
		func(c *H8) {
			m := c.st.IR[1]
			b := c.read16(c.areg(m))
			c.adjustAreg(m, 2)

			saturating := c.st.TMP3 != 0
			if saturating != c.st.MACSaturating {
				logger.Logf(c.perm, "h8", "MACS changed during MAC at %06x", c.st.PPC)
			}
			c.st.MAC = alu.MAC(c.st.MAC, uint16(c.st.TMP1), b, saturating)
			c.prefetchDone()
		},
	}
}

func macInstructions() []*instruction {
	return []*instruction{
		op(ISA2600, "CLRMAC", 0xffff, 0x01a0, single(func(c *H8) {
			c.st.MAC = 0
		})...),
		op(ISA2600, "LDMAC ERs,MACH", 0xfff8, 0x0320, single(func(c *H8) {
			c.st.MAC = c.st.MAC.SetHigh(c.st.Regs.R32(rlo(c.st.IR[0])))
		})...),
		op(ISA2600, "LDMAC ERs,MACL", 0xfff8, 0x0330, single(func(c *H8) {
			c.st.MAC = c.st.MAC.SetLow(c.st.Regs.R32(rlo(c.st.IR[0])))
		})...),
		op(ISA2600, "STMAC MACH,ERd", 0xfff8, 0x0220, single(func(c *H8) {
			v := c.st.MAC.High()
			c.st.Regs.SetR32(rlo(c.st.IR[0]), v)
			c.st.CCR = alu.SetNZ32(c.st.CCR, v)
		})...),
		op(ISA2600, "STMAC MACL,ERd", 0xfff8, 0x0230, single(func(c *H8) {
			v := c.st.MAC.Low()
			c.st.Regs.SetR32(rlo(c.st.IR[0]), v)
			c.st.CCR = alu.SetNZ32(c.st.CCR, v)
		})...),
		prefix(ISA2600, 0xffff, 0x0160),
		op2(ISA2600, "MAC @ERn+,@ERm+", 0xffff, 0x0160, 0xff88, 0x6d00, macInstruction()...),
	}
}
