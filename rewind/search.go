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

package rewind

import (
	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware"
	"github.com/jetsetilly/h8core/hardware/memory"
	"github.com/jetsetilly/h8core/logger"
)

// newSearchBoard creates a board separate from the live board and plumbs in
// the most recent entry before the target state. The search board runs with
// a quantum of one cycle.
func (r *Rewind) newSearchBoard(tgt *State) (*hardware.Board, error) {
	b, err := hardware.NewBoard(r.board.Prefs)
	if err != nil {
		return nil, err
	}
	b.SetLogPermission(logger.Deny)

	if r.board.Stimulus != nil {
		if err := b.AttachStimulus(r.board.Stimulus.Copy()); err != nil {
			return nil, err
		}
		b.Stimulus.SetLogPermission(logger.Deny)
	}

	if err := b.SetQuantum(1); err != nil {
		return nil, err
	}

	idx := r.start
	if tgt.Cycle() > r.entries[r.start].Cycle() {
		idx = r.findCycleIndex(tgt.Cycle() - 1)
	}
	if err := b.Plumb(r.entries[idx].State.Snapshot()); err != nil {
		return nil, err
	}

	return b, nil
}

// SearchMemoryWrite runs an emulation between two states looking for the
// instance when the address is written to with the value (valueMask is
// applied to mask specific bits).
//
// The supplied target state is the upper limit of the search. The lower limit
// of the search is the snapshot before the target State.
//
// Returns the most recent State at which the memory write was found. If a
// more recent write to the address is found but not with the correct value,
// then no state is returned.
func (r *Rewind) SearchMemoryWrite(tgt *State, addr uint32, value uint8, valueMask uint8) (*State, error) {
	b, err := r.newSearchBoard(tgt)
	if err != nil {
		return nil, curated.Errorf("rewind: search: %v", err)
	}

	// matchingState is a snapshot of the the most recent search match
	var matchingState *State
	var mostRecentWrite uint64

	var written, match bool
	b.Mem.SetTracer(func(a memory.Access) {
		if !a.Write {
			return
		}

		var v uint8
		switch {
		case a.Address == addr && a.Width == 1:
			v = uint8(a.Value)
		case a.Address == addr && a.Width == 2:
			v = uint8(a.Value >> 8)
		case a.Address+1 == addr && a.Width == 2:
			v = uint8(a.Value)
		default:
			return
		}

		written = true
		match = v&valueMask == value&valueMask
	})

	for b.Cycles() < tgt.Cycle() {
		err = b.RunTo(b.Cycles() + 1)
		if err != nil {
			return nil, curated.Errorf("rewind: search: %v", err)
		}

		if written {
			written = false
			mostRecentWrite = b.Cycles()
			if match {
				matchingState = &State{level: levelExecution, State: b.Snapshot()}
			}
		}
	}

	// make sure the matching state is the last address match we found
	if matchingState != nil && mostRecentWrite != matchingState.Cycle() {
		matchingState = nil
	}

	return matchingState, nil
}

// SearchRegisterWrite runs an emulation between two states looking for the
// instance when the register is changed to the value.
//
// The supplied target state is the upper limit of the search. The lower limit
// of the search is the snapshot before the target State.
//
// Returns the most recent State at which the register changed to the value.
// If a more recent change of the register is found but not to the correct
// value, then no state is returned.
func (r *Rewind) SearchRegisterWrite(tgt *State, reg string, value uint32) (*State, error) {
	b, err := r.newSearchBoard(tgt)
	if err != nil {
		return nil, curated.Errorf("rewind: search: %v", err)
	}

	var matchingState *State
	var mostRecentChange uint64

	prev, err := b.CPU.Register(reg)
	if err != nil {
		return nil, curated.Errorf("rewind: search: %v", err)
	}

	for b.Cycles() < tgt.Cycle() {
		err = b.RunTo(b.Cycles() + 1)
		if err != nil {
			return nil, curated.Errorf("rewind: search: %v", err)
		}

		v, _ := b.CPU.Register(reg)
		if v != prev {
			prev = v
			mostRecentChange = b.Cycles()
			if v == value {
				matchingState = &State{level: levelExecution, State: b.Snapshot()}
			}
		}
	}

	// make sure the matching state is the last change we found
	if matchingState != nil && mostRecentChange != matchingState.Cycle() {
		matchingState = nil
	}

	return matchingState, nil
}
