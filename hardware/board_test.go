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

package hardware_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/govern"
	"github.com/jetsetilly/h8core/hardware"
	"github.com/jetsetilly/h8core/hardware/preferences"
	"github.com/jetsetilly/h8core/hardware/stimulus"
	"github.com/jetsetilly/h8core/test"
)

// image creates a program image for an advanced mode core. the reset vector
// points to 0x1000, where the program is placed.
func image(program ...uint16) []uint8 {
	img := make([]uint8, 0x1000+len(program)*2)
	img[2] = 0x10
	for i, w := range program {
		img[0x1000+i*2] = uint8(w >> 8)
		img[0x1000+i*2+1] = uint8(w)
	}
	return img
}

// a loop that writes to memory and ends in a branch to itself
var loop = []uint16{
	0x7a01, 0x0000, 0x2000, // MOV.L #0x2000,ER1
	0xf805, // MOV.B #5,R0L
	0x6c98, // loop: MOV.B R0L,@-ER1
	0x5002, // MULXU.B R0H,R2
	0x1a08, // DEC.B R0L
	0x46f8, // BNE loop
	0x40fe, // BRA .
}

func newBoard(t *testing.T, program ...uint16) *hardware.Board {
	t.Helper()
	b, err := hardware.NewBoard(nil)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, b.LoadImage(image(program...)))
	return b
}

func TestNewBoard(t *testing.T) {
	b, err := hardware.NewBoard(nil)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.CPU.Variant().Name, "H8S/2655")
	test.ExpectEquality(t, b.Mem.Size(), 1<<24)

	p := preferences.DefaultPreferences()
	test.DemandSuccess(t, p.Variant.Set("H8/325"))
	b, err = hardware.NewBoard(p)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, b.Mem.Size(), 0x10000)

	test.DemandSuccess(t, p.Variant.Set("Z80"))
	_, err = hardware.NewBoard(p)
	test.ExpectSuccess(t, curated.Is(err, hardware.BoardError))

	test.ExpectFailure(t, b.SetQuantum(0))
	test.ExpectSuccess(t, b.SetQuantum(10))
	test.ExpectEquality(t, b.Quantum(), int64(10))
}

func TestRun(t *testing.T) {
	a := newBoard(t, loop...)
	test.DemandSuccess(t, a.Run(300, nil))
	test.ExpectEquality(t, a.Cycles(), uint64(300))

	// the quantum does not change the result
	b := newBoard(t, loop...)
	test.DemandSuccess(t, b.SetQuantum(7))
	test.DemandSuccess(t, b.Run(300, nil))
	test.ExpectEquality(t, b.Cycles(), uint64(300))

	test.ExpectEquality(t, a.CPU.String(), b.CPU.String())
	test.ExpectEquality(t, a.CPU.LastPC(), uint32(0x1010))
	for i := uint32(0x1ffb); i < 0x2000; i++ {
		v, err := a.Mem.Peek(i)
		test.ExpectSuccess(t, err)
		test.ExpectEquality(t, v, uint8(i-0x1ffa), i)
	}
}

func TestContinueCheck(t *testing.T) {
	b := newBoard(t, loop...)
	test.DemandSuccess(t, b.SetQuantum(10))

	var n int
	err := b.Run(1000, func() (govern.State, error) {
		n++
		if n == 3 {
			return govern.Ending, nil
		}
		return govern.Running, nil
	})
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, b.Cycles(), uint64(30))

	err = b.Run(1000, func() (govern.State, error) {
		return govern.Initialising, nil
	})
	test.ExpectSuccess(t, curated.Is(err, hardware.BoardError))
}

func TestHalt(t *testing.T) {
	b := newBoard(t, 0x0000, 0x0101)
	err := b.Run(1000, nil)
	test.ExpectSuccess(t, curated.Is(err, hardware.HaltError))
	test.ExpectEquality(t, b.CPU.LastPC(), uint32(0x1002))
}

func TestRunTo(t *testing.T) {
	b := newBoard(t, loop...)
	test.DemandSuccess(t, b.RunTo(123))
	test.ExpectEquality(t, b.Cycles(), uint64(123))
	test.DemandSuccess(t, b.RunTo(123))

	err := b.RunTo(100)
	test.ExpectSuccess(t, curated.Is(err, hardware.BoardError))
}

func TestSnapshot(t *testing.T) {
	b := newBoard(t, loop...)
	stm, err := stimulus.Load("test.star", "poke(150, 0x3000, 0x42)")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, b.AttachStimulus(stm))
	test.ExpectFailure(t, b.AttachStimulus(stm))

	test.DemandSuccess(t, b.Run(100, nil))
	snap := b.Snapshot()
	test.ExpectEquality(t, snap.Cycle(), uint64(100))

	test.DemandSuccess(t, b.Run(200, nil))
	cpu := b.CPU.String()
	v, _ := b.Mem.Peek(0x3000)
	test.ExpectEquality(t, v, uint8(0x42))
	test.ExpectEquality(t, stm.Fired(), uint64(1))

	// the stored snapshot is not changed by plumbing it in and running
	test.DemandSuccess(t, b.Plumb(snap.Snapshot()))
	v, _ = b.Mem.Peek(0x3000)
	test.ExpectEquality(t, v, uint8(0))
	test.ExpectEquality(t, stm.Fired(), uint64(0))
	test.ExpectEquality(t, b.Cycles(), uint64(100))

	test.DemandSuccess(t, b.Run(200, nil))
	test.ExpectEquality(t, b.CPU.String(), cpu)
	v, _ = b.Mem.Peek(0x3000)
	test.ExpectEquality(t, v, uint8(0x42))
	test.ExpectEquality(t, snap.Cycle(), uint64(100))

	test.ExpectFailure(t, b.Plumb(nil))
}

func TestSaveRestore(t *testing.T) {
	b := newBoard(t, loop...)
	stm, err := stimulus.Load("test.star", "poke(150, 0x3000, 0x42)")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, b.AttachStimulus(stm))
	test.DemandSuccess(t, b.Run(100, nil))

	var data bytes.Buffer
	test.DemandSuccess(t, b.Save(&data))
	test.DemandSuccess(t, b.Run(200, nil))

	// a new board with the same stimulus continues from the saved cycle
	r := newBoard(t)
	stm, err = stimulus.Load("test.star", "poke(150, 0x3000, 0x42)")
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, r.AttachStimulus(stm))
	test.DemandSuccess(t, r.Restore(bytes.NewReader(data.Bytes())))
	test.ExpectEquality(t, r.Cycles(), uint64(100))
	test.DemandSuccess(t, r.Run(200, nil))
	test.ExpectEquality(t, r.CPU.String(), b.CPU.String())
	v, _ := r.Mem.Peek(0x3000)
	test.ExpectEquality(t, v, uint8(0x42))
	v, _ = r.Mem.Peek(0x1fff)
	test.ExpectEquality(t, v, uint8(5))

	// a board without a stimulus cannot restore the state
	n := newBoard(t)
	err = n.Restore(bytes.NewReader(data.Bytes()))
	test.ExpectSuccess(t, curated.Is(err, hardware.SaveError))
	test.ExpectEquality(t, n.Cycles(), uint64(0))

	err = n.Restore(bytes.NewReader([]byte("H8BD")))
	test.ExpectSuccess(t, curated.Is(err, hardware.SaveError))
}
