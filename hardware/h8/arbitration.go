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

import "github.com/jetsetilly/h8core/logger"

// prefetchStart reads the opcode of the next instruction into PIR. It is the
// last bus access of every program.
func (c *H8) prefetchStart() {
	c.st.NPC = c.st.PC & c.amask
	c.st.PIR = c.read16i(c.st.PC)
	c.st.PC = (c.st.PC + 2) & c.amask
}

// prefetchDone decides what happens at the instruction boundary. In order of
// priority: a requested state; DMA; DTC; an unmasked interrupt; trace; the
// prefetched instruction.
func (c *H8) prefetchDone() {
	c.finished = true

	if c.st.Requested != noRequest {
		state := uint32(c.st.Requested)
		c.st.Requested = noRequest
		if c.takeRequest(state) {
			c.st.InstState = state
			return
		}
	}

	switch {
	case c.st.CurrentDMA != -1:
		c.st.InstState = StateDMA
	case c.st.DTCLen > 0:
		c.st.InstState = StateDTC
	default:
		vector, level := c.selectInterrupt()
		if vector >= 0 {
			if !c.st.TraceWarned && c.traceEligible() {
				c.st.TraceWarned = true
				logger.Logf(c.perm, "h8", "interrupt %d and trace at the same boundary (%06x): taking interrupt first", vector, c.st.NPC)
			}
			c.takeInterrupt(vector, level)
			c.st.InstState = StateIRQ
		} else if c.traceEligible() {
			c.st.InstState = StateTrace
		} else {
			c.dispatchNormal()
		}
	}
}

// takeRequest returns true if the work of a requested state is available.
// A request for an interrupt takes the highest priority pending interrupt. A
// request that can not be satisfied is dropped and the boundary is
// arbitrated as normal.
func (c *H8) takeRequest(state uint32) bool {
	switch state {
	case StateIRQ:
		vector, level := c.selectInterrupt()
		if vector < 0 {
			logger.Logf(c.perm, "h8", "dropping request for interrupt: no interrupt pending (%06x)", c.st.NPC)
			return false
		}
		c.takeInterrupt(vector, level)
	case StateDMA:
		if c.st.CurrentDMA == -1 {
			logger.Logf(c.perm, "h8", "dropping request for DMA: no channel active (%06x)", c.st.NPC)
			return false
		}
	case StateDTC:
		if c.st.DTCLen == 0 {
			logger.Logf(c.perm, "h8", "dropping request for DTC: queue is empty (%06x)", c.st.NPC)
			return false
		}
	}
	return true
}

// prefetchDoneNoIRQ is used at the end of instructions after which interrupts
// are not accepted. DMA and DTC are also held off.
func (c *H8) prefetchDoneNoIRQ() {
	c.finished = true
	if c.traceEligible() {
		c.st.InstState = StateTrace
		return
	}
	c.dispatchNormal()
}

// prefetchDoneNoIRQNoTrace is used at the end of the reset program.
func (c *H8) prefetchDoneNoIRQNoTrace() {
	c.finished = true
	c.dispatchNormal()
}

// dispatchNormal makes the prefetched opcode the current instruction.
func (c *H8) dispatchNormal() {
	c.st.InstState = uint32(c.st.PIR)
	c.st.IR[0] = c.st.PIR
	c.st.IRLen = 1
	c.st.Stats.Instructions++
}

// the EXR is pushed on the stack by exceptions in the EXR interrupt mode.
func (c *H8) exrInStack() bool {
	return c.variant.HasEXR && c.st.Mode == ModeEXR
}

func (c *H8) traceEligible() bool {
	return c.variant.HasTrace && c.exrInStack() && c.st.EXR.Trace()
}
