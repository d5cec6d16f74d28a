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

package rewind_test

import (
	"testing"

	"github.com/jetsetilly/h8core/govern"
	"github.com/jetsetilly/h8core/hardware"
	"github.com/jetsetilly/h8core/rewind"
	"github.com/jetsetilly/h8core/test"
)

// counter increments R0L and writes it to 0x3000 forever
var counter = []uint16{
	0x7a01, 0x0000, 0x3000, // MOV.L #0x3000,ER1
	0x0a08, // loop: INC.B R0L
	0x6898, // MOV.B R0L,@ER1
	0x40fa, // BRA loop
}

func newBoard(t *testing.T) *hardware.Board {
	t.Helper()
	b, err := hardware.NewBoard(nil)
	test.DemandSuccess(t, err)

	img := make([]uint8, 0x1000+len(counter)*2)
	img[2] = 0x10
	for i, w := range counter {
		img[0x1000+i*2] = uint8(w >> 8)
		img[0x1000+i*2+1] = uint8(w)
	}
	test.DemandSuccess(t, b.LoadImage(img))
	test.DemandSuccess(t, b.SetQuantum(50))
	return b
}

func newRewind(t *testing.T, b *hardware.Board) *rewind.Rewind {
	t.Helper()
	p := rewind.DefaultPreferences()
	test.DemandSuccess(t, p.Freq.Set(100))
	test.DemandSuccess(t, p.MaxEntries.Set(10))
	return rewind.NewRewind(b, b, p)
}

func run(t *testing.T, b *hardware.Board, r *rewind.Rewind, cycles uint64) {
	t.Helper()
	err := b.Run(cycles, func() (govern.State, error) {
		r.Check()
		return govern.Running, nil
	})
	test.DemandSuccess(t, err)
}

func peek(t *testing.T, b *hardware.Board, address uint32) uint8 {
	t.Helper()
	v, err := b.Mem.Peek(address)
	test.DemandSuccess(t, err)
	return v
}

// reference runs a separate board to the cycle and returns the CPU state as
// a string.
func reference(t *testing.T, cycle uint64) string {
	t.Helper()
	b := newBoard(t)
	test.DemandSuccess(t, b.RunTo(cycle))
	return b.CPU.String()
}

func TestHistory(t *testing.T) {
	b := newBoard(t)
	r := newRewind(t, b)

	s := r.GetSummary()
	test.ExpectEquality(t, s.Entries, 1)
	test.ExpectEquality(t, s.Start, uint64(0))

	run(t, b, r, 2000)

	// the earliest entries have been forgotten
	s = r.GetSummary()
	test.ExpectEquality(t, s.Entries, 11)
	test.ExpectEquality(t, s.Start, uint64(1000))
	test.ExpectEquality(t, s.End, uint64(2000))
	test.ExpectEquality(t, s.Current, uint64(2000))

	tl := r.GetTimeline()
	test.ExpectEquality(t, len(tl.Cycle), 20)
	test.ExpectEquality(t, tl.Cycle[0], uint64(100))
	test.ExpectEquality(t, tl.AvailableStart, uint64(1000))
	test.ExpectEquality(t, tl.AvailableEnd, uint64(2000))
	for i := 1; i < len(tl.Instructions); i++ {
		test.ExpectSuccess(t, tl.Instructions[i] > tl.Instructions[i-1])
	}
}

func TestGotoCycle(t *testing.T) {
	b := newBoard(t)
	r := newRewind(t, b)
	run(t, b, r, 2000)
	end := b.CPU.String()

	c, err := r.GotoCycle(1234)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c, uint64(1234))
	test.ExpectEquality(t, b.Cycles(), uint64(1234))
	test.ExpectEquality(t, b.CPU.String(), reference(t, 1234))

	// continuing from the rewound position arrives at the same end state
	test.DemandSuccess(t, b.RunTo(2000))
	test.ExpectEquality(t, b.CPU.String(), end)

	// requests outside of the history are clamped
	c, err = r.GotoCycle(10)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c, uint64(1000))
	test.ExpectEquality(t, b.CPU.String(), reference(t, 1000))

	c, err = r.GotoCycle(5000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, c, uint64(2000))
	test.ExpectEquality(t, b.CPU.String(), end)

	// no new entries are created by rewinding
	test.ExpectEquality(t, len(r.GetTimeline().Cycle), 20)

	test.DemandSuccess(t, r.GotoLast())
	test.ExpectEquality(t, b.Cycles(), uint64(2000))
}

func TestExecutionState(t *testing.T) {
	b := newBoard(t)
	r := newRewind(t, b)
	run(t, b, r, 1000)
	test.DemandSuccess(t, b.RunTo(1050))

	// a snapshot was taken by the last check so the execution state is
	// ignored
	r.ExecutionState()
	test.ExpectEquality(t, r.GetSummary().End, uint64(1000))

	r.Check()
	r.ExecutionState()
	test.ExpectEquality(t, r.GetSummary().End, uint64(1050))

	// an execution state is replaced by the next snapshot
	run(t, b, r, 50)
	test.ExpectEquality(t, r.GetSummary().End, uint64(1100))

	// going to the last entry restores the board to the end of the
	// history
	test.DemandSuccess(t, b.RunTo(1130))
	test.DemandSuccess(t, r.GotoLast())
	test.ExpectEquality(t, b.Cycles(), uint64(1100))
}

func TestComparison(t *testing.T) {
	b := newBoard(t)
	r := newRewind(t, b)

	cmp := r.GetComparisonState()
	test.ExpectEquality(t, cmp.State.Cycle(), uint64(0))

	run(t, b, r, 500)
	r.SetComparison(250)
	test.ExpectEquality(t, r.GetComparisonState().State.Cycle(), uint64(200))

	r.LockComparison(true)
	r.UpdateComparison()
	cmp = r.GetComparisonState()
	test.ExpectSuccess(t, cmp.Locked)
	test.ExpectEquality(t, cmp.State.Cycle(), uint64(200))

	r.LockComparison(false)
	r.UpdateComparison()
	test.ExpectEquality(t, r.GetComparisonState().State.Cycle(), uint64(500))
}

func TestSearchMemoryWrite(t *testing.T) {
	b := newBoard(t)
	r := newRewind(t, b)
	run(t, b, r, 1000)

	tgt := r.GetCurrentState()
	last := peek(t, b, 0x3000)

	// the most recent write of the value
	s, err := r.SearchMemoryWrite(tgt, 0x3000, last, 0xff)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, s != nil)
	test.ExpectSuccess(t, s.Cycle() <= 1000)
	test.ExpectSuccess(t, s.Cycle() > 900)
	v, err := s.Mem.Peek(0x3000)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, last)

	// an earlier value has been overwritten by a later write
	s, err = r.SearchMemoryWrite(tgt, 0x3000, last-1, 0xff)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, s == nil)

	// the live board is not changed by a search
	test.ExpectEquality(t, b.Cycles(), uint64(1000))
}

func TestSearchRegisterWrite(t *testing.T) {
	b := newBoard(t)
	r := newRewind(t, b)
	run(t, b, r, 1000)

	tgt := r.GetCurrentState()
	r0, err := b.CPU.Register("r0")
	test.DemandSuccess(t, err)

	s, err := r.SearchRegisterWrite(tgt, "r0", r0)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, s != nil)
	test.ExpectSuccess(t, s.Cycle() <= 1000)

	s, err = r.SearchRegisterWrite(tgt, "r0", r0-1)
	test.ExpectSuccess(t, err)
	test.ExpectSuccess(t, s == nil)

	_, err = r.SearchRegisterWrite(tgt, "xyz", 0)
	test.ExpectFailure(t, err)
}

func TestRunPoke(t *testing.T) {
	b := newBoard(t)
	r := newRewind(t, b)
	run(t, b, r, 1000)

	r.SetComparison(500)
	from := r.GetComparisonState().State
	to := r.GetCurrentState()

	// change the counter register in the history. the counter continues from
	// the new value
	err := r.RunPoke(from, to, func(s *rewind.State) error {
		s.CPU.Regs.SetR16(0, 0x0000)
		return nil
	})
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Cycles(), uint64(1000))

	r0, _ := b.CPU.Register("r0")
	ref := newBoard(t)
	test.DemandSuccess(t, ref.RunTo(1000))
	refR0, _ := ref.CPU.Register("r0")
	test.ExpectSuccess(t, r0 < refR0)

	// history after the changed state has gone
	test.ExpectEquality(t, r.GetSummary().End, uint64(1000))
	test.ExpectEquality(t, r.GetSummary().Entries, 7)

	test.ExpectFailure(t, r.RunPoke(to, from, nil))
}
