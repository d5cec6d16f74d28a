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
)

// PokeHook is applied to a state in the rewind history by RunPoke().
type PokeHook func(res *State) error

// RunPoke changes a state in the rewind history with the supplied PokeHook
// and then runs the emulation from that state to the cycle of the second
// state. History after the changed state is discarded because it no longer
// follows from it.
func (r *Rewind) RunPoke(from *State, to *State, poke PokeHook) error {
	if to.Cycle() < from.Cycle() {
		return curated.Errorf("rewind: poke: cannot run backwards from %d to %d", from.Cycle(), to.Cycle())
	}

	fromIdx := r.start
	if from.Cycle() > r.entries[r.start].Cycle() {
		fromIdx = r.findCycleIndex(from.Cycle())
	}

	if poke != nil {
		err := poke(r.entries[fromIdx])
		if err != nil {
			return curated.Errorf("rewind: poke: %v", err)
		}
	}

	r.curr = fromIdx
	r.truncate()

	err := r.plumb(fromIdx, to.Cycle())
	if err != nil {
		return curated.Errorf("rewind: poke: %v", err)
	}

	r.horizon = r.board.Cycles()
	r.justAddedCycle = false
	r.ExecutionState()

	return nil
}
