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

// helpers for building instruction programs. the number of bus accesses and
// internal operations in a program is the cycle count of the instruction.

func fetchStep(c *H8) {
	c.fetch()
}

func prefetchStep(c *H8) {
	c.prefetchStart()
}

func internalStep(c *H8) {
	c.internal(1)
}

// nothing happens in the step. used where a program has a step that only
// makes an access on some variants.
func emptyStep(c *H8) {}

// the dummy fetch made by branches. the word is discarded.
func dummyFetchStep(c *H8) {
	c.read16i(c.st.PC)
}

// single is the program for instructions that operate only on registers. The
// prefetch of the next instruction is the only access.
func single(f func(c *H8)) []step {
	return []step{
		func(c *H8) {
			f(c)
			c.prefetchStart()
			c.prefetchDone()
		},
	}
}

// singleNoIRQ is like single but interrupts are not accepted at the end of
// the instruction.
func singleNoIRQ(f func(c *H8)) []step {
	return []step{
		func(c *H8) {
			f(c)
			c.prefetchStart()
			c.prefetchDoneNoIRQ()
		},
	}
}

// withFetches is the program for instructions with extension words. The
// extension words are fetched before the operation.
func withFetches(n int, f func(c *H8)) []step {
	s := make([]step, 0, n+1)
	for range n {
		s = append(s, fetchStep)
	}
	return append(s, single(f)...)
}

// finish adds the operation and the instruction boundary to the last step
// of a program. The prefetch must already have been made by an earlier step.
func finish(steps []step, f func(c *H8)) []step {
	return finishWith(steps, f, (*H8).prefetchDone)
}

// finishWith is like finish but the instruction boundary is made by the done
// function.
func finishWith(steps []step, f func(c *H8), done func(c *H8)) []step {
	last := steps[len(steps)-1]
	steps[len(steps)-1] = func(c *H8) {
		last(c)
		if f != nil {
			f(c)
		}
		done(c)
	}
	return steps
}

// a state with no bus access. unlike internalStep it costs one cycle on every
// variant.
func idleStep(c *H8) {
	c.st.ICount--
}

// opcodeWord fetches the next word of an instruction that is not complete
// after decoding. It returns false and halts the core if the word does not
// match.
func (c *H8) opcodeWord(mask, value uint16) bool {
	if c.fetch()&mask == value {
		return true
	}
	c.rejectWord()
	return false
}

// rejectWord halts the core because the word returned by the most recent
// fetch() is not a valid continuation of the instruction. The word will be
// fetched again when the instruction is repeated.
func (c *H8) rejectWord() {
	c.st.PC = (c.st.PC - 2) & c.amask
	c.st.IRLen--
	illegalStep(c)
}

// form is one of the instructions that share a decoding and which are told
// apart by the next opcode word.
type form struct {
	mask  uint16
	value uint16
	steps []step
}

// byNextWord is the program for a group of forms. The next opcode word is
// fetched and execution continues with the program of the matching form.
func byNextWord(forms ...form) []step {
	s := []step{nil}
	start := make([]int, len(forms))
	for i, f := range forms {
		start[i] = len(s)
		s = append(s, f.steps...)
	}

	s[0] = func(c *H8) {
		w := c.fetch()
		for i, f := range forms {
			if w&f.mask == f.value {
				c.jump(start[i])
				return
			}
		}
		c.rejectWord()
	}
	return s
}

// jumpToStep is the final step of instructions that change the PC. TMP2 holds
// the new PC.
func jumpToStep(c *H8) {
	c.st.PC = c.st.TMP2 & c.amask
	c.prefetchStart()
	c.prefetchDone()
}

// register fields of an opcode word

// the low nibble
func rlo(w uint16) int {
	return int(w & 0x0f)
}

// bits 7 to 4
func rhi(w uint16) int {
	return int(w>>4) & 0x0f
}

// bits 11 to 8
func rtop(w uint16) int {
	return int(w>>8) & 0x0f
}
