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

import "github.com/jetsetilly/h8core/hardware/h8/registers"

// TraceVector is the vector taken by the trace exception.
const TraceVector = 5

// TrapVector is the vector of TRAPA #0. TRAPA #n uses TrapVector+n.
const TrapVector = 8

func (c *H8) buildExceptionPrograms() {
	c.exceptions[StateReset-StateReset] = resetProgram()
	c.exceptions[StateIRQ-StateReset] = entryProgram(
		func(c *H8) {
			c.st.TMP1 = c.st.NPC
			c.st.TMP3 = uint32(c.st.TakenVector)
			c.st.Stats.Interrupts++
		},
		(*H8).irqSetup,
		func(c *H8) {
			if c.ack != nil {
				c.ack.InterruptTaken(int(c.st.TMP3))
			}
		},
	)
	c.exceptions[StateTrace-StateReset] = entryProgram(
		func(c *H8) {
			c.st.TMP1 = c.st.NPC
			c.st.TMP3 = TraceVector
			c.st.Stats.Traces++
		},
		(*H8).traceSetup,
		nil,
	)
	c.exceptions[StateDMA-StateReset] = dmaProgram()
	c.exceptions[StateDTC-StateReset] = dtcProgram()
}

// the reset program loads the PC from the reset vector and sets the
// interrupt masks.
func resetProgram() []step {
	return []step{
		func(c *H8) {
			c.st.Sleeping = false
			c.st.TMP1 = uint32(c.read16(0))
		},
		func(c *H8) {
			if c.variant.Advanced() {
				c.st.TMP1 = c.st.TMP1<<16 | uint32(c.read16(2))
			}
			c.st.PC = c.st.TMP1 & c.amask
			c.st.CCR |= registers.FlagI
			if c.variant.UIAsMask {
				c.st.CCR &^= registers.FlagUI
			}
			if c.variant.HasEXR {
				c.st.EXR = (c.st.EXR &^ registers.FlagT).WithLevel(7)
			}
		},
		func(c *H8) {
			c.internal(1)
		},
		func(c *H8) {
			c.st.PPC = c.st.PC
			c.prefetchStart()
			c.prefetchDoneNoIRQNoTrace()
		},
	}
}

// entryProgram is the exception entry sequence shared by interrupts, trace
// and TRAPA. The begin function sets TMP1 to the return address and TMP3 to
// the vector. The setup function changes the interrupt masks. The taken
// function, which can be nil, is called once the vector has been read.
//
// The stack frame, from the lowest address, is: EXR (in the EXR interrupt
// mode only); CCR and the high byte of the PC; the low word of the PC. In
// normal mode the CCR word has the CCR in both bytes.
func entryProgram(begin func(c *H8), setup func(c *H8), taken func(c *H8)) []step {
	return []step{
		func(c *H8) {
			begin(c)
			c.read16i(c.st.TMP1)
		},
		func(c *H8) {
			c.internal(1)
		},
		func(c *H8) {
			sp := c.sp() - 2
			c.setAreg(registers.SP, sp)
			c.write16(sp, uint16(c.st.TMP1))
		},
		func(c *H8) {
			sp := c.sp() - 2
			c.setAreg(registers.SP, sp)
			if c.variant.Advanced() {
				c.write16(sp, uint16(c.st.CCR)<<8|uint16(c.st.TMP1>>16)&0xff)
			} else {
				c.write16(sp, uint16(c.st.CCR)<<8|uint16(c.st.CCR))
			}
		},
		func(c *H8) {
			if c.exrInStack() {
				sp := c.sp() - 2
				c.setAreg(registers.SP, sp)
				c.write16(sp, uint16(c.st.EXR)<<8|uint16(c.st.EXR))
			}
		},
		func(c *H8) {
			setup(c)
			if c.variant.Advanced() {
				c.st.TMP2 = uint32(c.read16(c.st.TMP3*4)) << 16
			} else {
				c.st.TMP2 = uint32(c.read16(c.st.TMP3 * 2))
			}
		},
		func(c *H8) {
			if c.variant.Advanced() {
				c.st.TMP2 |= uint32(c.read16(c.st.TMP3*4 + 2))
			}
			if taken != nil {
				taken(c)
			}
		},
		func(c *H8) {
			c.internal(1)
		},
		func(c *H8) {
			c.st.PC = c.st.TMP2 & c.amask
			c.prefetchStart()
			c.prefetchDone()
		},
	}
}
