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

// TotalCycles returns the number of cycles since the H8 was created. The
// value is valid during Run() and between calls to Run().
func (c *H8) TotalCycles() uint64 {
	return c.st.Total + uint64(c.st.Budget-c.st.ICount)
}

// OwedCycles returns the number of cycles that will be deducted from the
// budget of the next call to Run().
func (c *H8) OwedCycles() int64 {
	return c.st.Owed
}

// end of the current quantum on the total cycle clock
func (c *H8) quantumEnd() uint64 {
	return c.st.Total + uint64(c.st.Budget)
}

// internalUpdate brings every peripheral up to date and recomputes the event
// barrier from the nearest peripheral event.
func (c *H8) internalUpdate(now uint64) {
	var event uint64
	for _, p := range c.peripherals {
		e := p.InternalUpdate(now)
		if e != 0 && (event == 0 || e < event) {
			event = e
		}
	}

	// a peripheral that asks for an event at or before the time it has just
	// been updated to would stop the CPU from making progress
	if event != 0 && event <= now {
		logger.Logf(c.perm, "h8", "peripheral event at %d is not in the future (now %d)", event, now)
		event = 0
	}

	c.recomputeBCount(event)
}

func (c *H8) recomputeBCount(event uint64) {
	end := c.quantumEnd()
	if event == 0 || event >= end {
		c.st.BCount = 0
		return
	}
	c.st.BCount = int64(end - event)
}

// internal operations cost one extra cycle on cores without the EXR
func (c *H8) internal(n int64) {
	c.st.ICount -= n
	if !c.variant.HasEXR {
		c.st.ICount--
	}
}

// Run the H8 for the number of cycles in the budget. The return value is the
// number of cycles accounted to this call, which is the budget unless the
// budget is zero or negative.
//
// The final instruction of a call to Run() may overshoot the budget. The
// overshoot is deducted from the budget of the next call.
func (c *H8) Run(budget int64) int64 {
	if budget <= 0 {
		return 0
	}

	c.st.Budget = budget
	c.st.ICount = budget

	c.internalUpdate(c.TotalCycles())

	c.st.ICount -= c.st.Owed
	if c.st.ICount < 0 {
		c.st.Owed = -c.st.ICount
		c.st.ICount = 0
	} else {
		c.st.Owed = 0
	}

	for c.st.BCount != 0 && c.st.ICount <= c.st.BCount {
		c.internalUpdate(c.quantumEnd() - uint64(c.st.BCount))
	}

	// finish the instruction that was suspended at the end of the previous
	// quantum
	if c.st.ICount > 0 && c.st.InstSubstate != 0 {
		c.execute()
	}

	for c.st.ICount > 0 {
		for c.st.ICount > c.st.BCount {
			if c.st.InstState < StateReset {
				c.st.PPC = c.st.NPC
			}
			c.execute()
		}

		if c.st.ICount > 0 {
			for c.st.BCount != 0 && c.st.ICount <= c.st.BCount {
				c.internalUpdate(c.quantumEnd() - uint64(c.st.BCount))
			}
		}

		if c.st.ICount > 0 && c.st.InstSubstate != 0 {
			c.execute()
		}
	}

	if c.st.ICount < 0 {
		c.st.Owed += -c.st.ICount
		c.st.ICount = 0
	}

	consumed := c.st.Budget - c.st.ICount
	c.st.Total += uint64(consumed)
	c.st.Budget = 0
	c.st.ICount = 0
	c.st.BCount = 0

	return consumed
}

// execute steps of the current program until the program finishes or the
// budget reaches the event barrier.
func (c *H8) execute() {
	for {
		prog := c.program()
		i := c.st.InstSubstate

		c.finished = false
		c.redispatched = false
		c.jumpTo = -1

		prog[i](c)

		switch {
		case c.finished:
			c.st.InstSubstate = 0
			return
		case c.redispatched:
			c.st.InstSubstate = 0
		case c.jumpTo >= 0:
			c.st.InstSubstate = c.jumpTo
		default:
			c.st.InstSubstate = i + 1
			if c.st.InstSubstate >= len(prog) {
				// programs end by calling one of the prefetchDone()
				// functions. this is a bad program but the next
				// instruction can still be dispatched normally
				logger.Logf(c.perm, "h8", "program for state %#x ended without prefetch", c.st.InstState)
				c.st.InstSubstate = 0
				c.dispatchNormal()
				return
			}
		}

		if c.st.ICount <= c.st.BCount {
			return
		}
	}
}

// program returns the steps for the current dispatch state.
func (c *H8) program() []step {
	s := c.st.InstState
	switch {
	case s < StateReset:
		return c.first[s].steps
	case s < stateSecond:
		return c.exceptions[s-StateReset]
	}
	return c.second[s-stateSecond].steps
}

// jump to another step of the current program once the current step has
// finished.
func (c *H8) jump(idx int) {
	c.jumpTo = idx
}

// redispatch to the second level instruction at index idx.
func (c *H8) redispatch(idx int) {
	c.st.InstState = stateSecond + uint32(idx)
	c.redispatched = true
}
