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

package hardware

import (
	"fmt"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware/h8"
	"github.com/jetsetilly/h8core/hardware/memory"
	"github.com/jetsetilly/h8core/hardware/stimulus"
)

// State stores the board sub-systems. It is produced by the Snapshot()
// function and can be restored with the Plumb() function.
type State struct {
	CPU      *h8.State
	Mem      *memory.Memory
	Stimulus *stimulus.State
}

// Snapshot creates a copy of a previously snapshotted board State.
func (s *State) Snapshot() *State {
	n := &State{
		Mem: s.Mem.Snapshot(),
	}
	cpu := *s.CPU
	n.CPU = &cpu
	if s.Stimulus != nil {
		stm := *s.Stimulus
		n.Stimulus = &stm
	}
	return n
}

// Cycle returns the value of the total cycle clock at the time of the
// snapshot.
func (s *State) Cycle() uint64 {
	return s.CPU.Total
}

func (s *State) String() string {
	return fmt.Sprintf("%d", s.Cycle())
}

// Snapshot the state of the board sub-systems. Snapshots should be taken
// between calls to Run() or RunTo().
func (b *Board) Snapshot() *State {
	s := &State{
		CPU: b.CPU.Snapshot(),
		Mem: b.Mem.Snapshot(),
	}
	if b.Stimulus != nil {
		s.Stimulus = b.Stimulus.Snapshot()
	}
	return s
}

// Plumb a previously snapshotted board state.
func (b *Board) Plumb(s *State) error {
	if s == nil {
		return curated.Errorf(BoardError, "cannot plumb in a nil state")
	}

	// memory snapshots are copy-on-write so the stored state is not changed
	// by the machine
	if err := b.Mem.Plumb(s.Mem); err != nil {
		return curated.Errorf(BoardError, err)
	}
	b.CPU.Plumb(s.CPU)
	if b.Stimulus != nil && s.Stimulus != nil {
		b.Stimulus.Plumb(s.Stimulus)
	}

	return nil
}
