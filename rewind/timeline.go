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
	"github.com/jetsetilly/h8core/govern"
)

func (r *Rewind) addTimelineEntry(s *State) {
	// do not alter the timeline information if we're in the rewinding state
	if r.emulationState == govern.Rewinding {
		return
	}

	// the timeline is a record of the emulation as it happened. entries that
	// are now in the future because of a rewind are removed
	for len(r.timeline.Cycle) > 0 && r.timeline.Cycle[len(r.timeline.Cycle)-1] >= s.Cycle() {
		r.timeline.Cycle = r.timeline.Cycle[:len(r.timeline.Cycle)-1]
		r.timeline.Instructions = r.timeline.Instructions[:len(r.timeline.Instructions)-1]
		r.timeline.Interrupts = r.timeline.Interrupts[:len(r.timeline.Interrupts)-1]
		r.timeline.Sleeping = r.timeline.Sleeping[:len(r.timeline.Sleeping)-1]
	}

	r.timeline.Cycle = append(r.timeline.Cycle, s.Cycle())
	r.timeline.Instructions = append(r.timeline.Instructions, s.CPU.Stats.Instructions)
	r.timeline.Interrupts = append(r.timeline.Interrupts, s.CPU.Stats.Interrupts)
	r.timeline.Sleeping = append(r.timeline.Sleeping, s.CPU.Sleeping)
	if len(r.timeline.Cycle) > timelineLength {
		r.timeline.Cycle = r.timeline.Cycle[1:]
		r.timeline.Instructions = r.timeline.Instructions[1:]
		r.timeline.Interrupts = r.timeline.Interrupts[1:]
		r.timeline.Sleeping = r.timeline.Sleeping[1:]
	}
}

// Timeline provides a summary of the emulation at every cycle snapshot.
//
// Useful for presenting the rate of progress of the program over time. Note
// that the timeline is longer than the rewind history.
type Timeline struct {
	Cycle        []uint64
	Instructions []uint64
	Interrupts   []uint64
	Sleeping     []bool

	// These two "available" fields state the earliest and latest cycles that
	// are available in the rewind history.
	AvailableStart uint64
	AvailableEnd   uint64
}

const timelineLength = 1000

func newTimeline() Timeline {
	return Timeline{
		Cycle:        make([]uint64, 0),
		Instructions: make([]uint64, 0),
		Interrupts:   make([]uint64, 0),
		Sleeping:     make([]bool, 0),
	}
}

// GetTimeline returns a copy of the current timeline.
func (r *Rewind) GetTimeline() Timeline {
	tl := Timeline{
		Cycle:          append([]uint64(nil), r.timeline.Cycle...),
		Instructions:   append([]uint64(nil), r.timeline.Instructions...),
		Interrupts:     append([]uint64(nil), r.timeline.Interrupts...),
		Sleeping:       append([]bool(nil), r.timeline.Sleeping...),
		AvailableStart: r.entries[r.start].Cycle(),
		AvailableEnd:   r.entries[r.last()].Cycle(),
	}
	return tl
}
