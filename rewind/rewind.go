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
	"fmt"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/govern"
	"github.com/jetsetilly/h8core/hardware"
	"github.com/jetsetilly/h8core/logger"
)

// Runner provides the rewind package the opportunity to run the emulation.
type Runner interface {
	// RunTo implementations will run the emulation until the total cycle
	// clock reaches the target.
	RunTo(cycle uint64) error
}

// State is a snapshot of the board with the level at which it was taken.
type State struct {
	level snapshotLevel
	*hardware.State
}

// snapshotLevel indicates the level of snapshot.
type snapshotLevel int

// List of valid snapshotLevel values.
const (
	levelReset snapshotLevel = iota
	levelCycle
	levelExecution
)

func (s *State) String() string {
	if s.level == levelExecution {
		return fmt.Sprintf("%dc", s.Cycle())
	}
	return fmt.Sprintf("%d", s.Cycle())
}

func (s *State) snapshot() *State {
	return &State{
		level: s.level,
		State: s.State.Snapshot(),
	}
}

// overhead of two entries to facilitate appending etc.
const overhead = 2

// Rewind contains a history of board states for the emulation.
type Rewind struct {
	board  *hardware.Board
	runner Runner

	Prefs *Preferences

	// state of emulation. no snapshots are taken while rewinding
	emulationState govern.State

	// circular array of snapshotted entries
	entries []*State
	start   int
	end     int

	// the position of the current rewind entry and the position previous to
	// that
	curr int
	prev int

	// cycle of the most recent levelCycle snapshot
	lastCycle uint64

	// the furthest point the emulation has reached since the history was
	// last truncated
	horizon uint64

	// the last call to append() was made by Check(). an immediate call to
	// ExecutionState() is unnecessary
	justAddedCycle bool

	// pointer to the comparison point
	comparison       *State
	comparisonLocked bool

	timeline Timeline
}

// NewRewind is the preferred method of initialisation for the Rewind type.
// The prefs argument can be nil in which case the default preferences are
// used.
func NewRewind(board *hardware.Board, runner Runner, prefs *Preferences) *Rewind {
	if prefs == nil {
		prefs = DefaultPreferences()
	}

	r := &Rewind{
		board:          board,
		runner:         runner,
		Prefs:          prefs,
		emulationState: govern.Running,
	}

	r.allocate()

	return r
}

// allocate memory for rewind entries and reset the history.
func (r *Rewind) allocate() {
	r.entries = make([]*State, max(r.Prefs.MaxEntries.Get().(int), 1)+overhead)
	r.Reset()
}

// Reset rewind system removes all entries and takes a snapshot of the
// current board state. This should be called whenever a new program is
// loaded into the board.
func (r *Rewind) Reset() {
	if len(r.entries) != max(r.Prefs.MaxEntries.Get().(int), 1)+overhead {
		r.entries = make([]*State, max(r.Prefs.MaxEntries.Get().(int), 1)+overhead)
	}

	r.justAddedCycle = true
	r.start = 0
	r.end = 0
	r.curr = len(r.entries) - 1
	r.timeline = newTimeline()

	s := r.snapshot(levelReset)
	r.lastCycle = s.Cycle()
	r.horizon = s.Cycle()
	r.append(s)

	// first comparison is to the snapshot of the reset machine
	r.comparison = r.entries[0]
}

func (r *Rewind) snapshot(level snapshotLevel) *State {
	return &State{
		level: level,
		State: r.board.Snapshot(),
	}
}

// GetCurrentState returns a snapshot of the board as it is now.
func (r *Rewind) GetCurrentState() *State {
	return r.snapshot(levelExecution)
}

// Check should be called between calls to H8.Run(). A snapshot of the board
// is taken if enough cycles have passed since the last snapshot.
func (r *Rewind) Check() {
	if r.emulationState == govern.Rewinding {
		return
	}

	c := r.board.Cycles()
	r.horizon = max(r.horizon, c)

	if c-r.lastCycle < uint64(r.Prefs.Freq.Get().(int)) {
		r.justAddedCycle = false
		return
	}

	r.justAddedCycle = true
	r.lastCycle = c

	s := r.snapshot(levelCycle)
	r.trim()
	r.append(s)
	r.addTimelineEntry(s)
}

// ExecutionState takes a snapshot of the board at the current cycle. It will
// do nothing if the last call to Check() resulted in a snapshot being taken.
func (r *Rewind) ExecutionState() {
	if r.justAddedCycle {
		return
	}
	r.horizon = max(r.horizon, r.board.Cycles())

	s := r.snapshot(levelExecution)
	r.trim()
	r.append(s)
}

func (r *Rewind) append(s *State) {
	n := len(r.entries)

	// append at current position
	e := r.curr + 1
	if e >= n {
		e = 0
	}

	// update entry
	r.entries[e] = s

	// note the previous position
	r.prev = r.curr

	// new position is the update point
	r.curr = e

	// next update point is recent update point plus one
	r.end = r.curr + 1
	if r.end >= n {
		r.end = 0
	}

	// push start index along
	if r.end == r.start {
		r.start++
		if r.start >= n {
			r.start = 0
		}
	}
}

// chop off the most recent entry if it is levelExecution.
func (r *Rewind) trim() {
	if r.entries[r.curr].level == levelExecution {
		r.end = r.curr
		if r.curr == 0 {
			r.curr = len(r.entries) - 1
		} else {
			r.curr--
		}
	}
}

// last returns the index of the most recent entry.
func (r *Rewind) last() int {
	e := r.end - 1
	if e < 0 {
		e += len(r.entries)
	}
	return e
}

// Summary of the current state of the rewind system.
type Summary struct {
	// earliest and latest cycles in the history
	Start uint64
	End   uint64

	// the current cycle of the board
	Current uint64

	Entries int
}

// GetSummary returns the range of cycles available in the rewind history and
// the current cycle of the board.
func (r *Rewind) GetSummary() Summary {
	n := r.end - r.start
	if n <= 0 {
		n += len(r.entries)
	}
	return Summary{
		Start:   r.entries[r.start].Cycle(),
		End:     r.entries[r.last()].Cycle(),
		Current: r.board.Cycles(),
		Entries: n,
	}
}

// plumb the entry at idx into the board and run the emulation until the
// target cycle is reached.
func (r *Rewind) plumb(idx int, cycle uint64) error {
	r.curr = idx

	// take another snapshot of the state before plumbing. we don't want the
	// machine to change what we have stored in our state array
	err := r.board.Plumb(r.entries[idx].State.Snapshot())
	if err != nil {
		return curated.Errorf("rewind: %v", err)
	}
	r.lastCycle = r.entries[idx].Cycle()

	if cycle == r.entries[idx].Cycle() {
		return nil
	}

	// replayed history has already been logged once
	r.emulationState = govern.Rewinding
	r.board.SetLogPermission(logger.Deny)
	defer func() {
		r.emulationState = govern.Running
		r.board.SetLogPermission(logger.Allow)
	}()

	err = r.runner.RunTo(cycle)
	if err != nil {
		return curated.Errorf("rewind: %v", err)
	}

	return nil
}

// GotoLast sets the position to the last in the timeline.
func (r *Rewind) GotoLast() error {
	idx := r.last()
	return r.plumb(idx, r.entries[idx].Cycle())
}

// GotoCycle rewinds the board to the cycle. The nearest snapshot at or
// before the cycle is plumbed in and the emulation run forward from there.
//
// The cycle is clamped to the range of the history. The earliest cycle is
// the oldest snapshot and the latest cycle is the furthest point the
// emulation has reached. The return value is the cycle that the board has
// been rewound to.
func (r *Rewind) GotoCycle(cycle uint64) (uint64, error) {
	r.horizon = max(r.horizon, r.board.Cycles())

	if cycle <= r.entries[r.start].Cycle() {
		return r.entries[r.start].Cycle(), r.plumb(r.start, r.entries[r.start].Cycle())
	}
	cycle = min(cycle, r.horizon)

	idx := r.findCycleIndex(cycle)
	logger.Logf(logger.Allow, "rewind", "rewinding to %d from snapshot at %d", cycle, r.entries[idx].Cycle())

	return cycle, r.plumb(idx, cycle)
}

// findCycleIndex returns the index of the most recent entry at or before the
// cycle. The cycle must be at or after the oldest entry.
func (r *Rewind) findCycleIndex(cycle uint64) int {
	n := len(r.entries)

	// binary search over the logical positions of the circular array
	count := r.end - r.start
	if count <= 0 {
		count += n
	}

	lo, hi := 0, count-1
	for lo < hi {
		m := (lo + hi + 1) / 2
		if r.entries[(r.start+m)%n].Cycle() <= cycle {
			lo = m
		} else {
			hi = m - 1
		}
	}

	return (r.start + lo) % n
}

// truncate removes every entry after the current position.
func (r *Rewind) truncate() {
	r.end = r.curr + 1
	if r.end >= len(r.entries) {
		r.end = 0
	}
	r.horizon = r.board.Cycles()
}
