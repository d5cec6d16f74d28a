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
	"github.com/jetsetilly/h8core/govern"
)

// runQuantum runs the core for the smaller of the board's quantum and the
// number of cycles remaining before the target.
func (b *Board) runQuantum(target uint64) error {
	q := min(b.quantum, int64(target-b.CPU.TotalCycles()))
	b.CPU.Run(q)
	if b.CPU.Illegal() {
		return curated.Errorf(HaltError, b.CPU.LastPC())
	}
	return nil
}

// Run the emulation for the number of cycles. The continueCheck function is
// called after every quantum and can be nil. The emulation stops early if
// continueCheck() returns the Ending state.
//
// An illegal instruction halts the emulation and returns an error matching
// the HaltError pattern.
func (b *Board) Run(cycles uint64, continueCheck func() (govern.State, error)) error {
	if continueCheck == nil {
		continueCheck = func() (govern.State, error) { return govern.Running, nil }
	}

	target := b.CPU.TotalCycles() + cycles

	state := govern.Running
	for state != govern.Ending && b.CPU.TotalCycles() < target {
		switch state {
		case govern.Running, govern.Rewinding:
			if err := b.runQuantum(target); err != nil {
				return err
			}
		default:
			return curated.Errorf(BoardError, fmt.Sprintf("unsupported emulation state (%s) in Run() function", state))
		}

		var err error
		state, err = continueCheck()
		if err != nil {
			return err
		}
	}

	return nil
}

// RunTo runs the emulation until the total cycle clock reaches the target.
// It is an error if the clock has already passed the target.
func (b *Board) RunTo(cycle uint64) error {
	if b.CPU.TotalCycles() > cycle {
		return curated.Errorf(BoardError, fmt.Sprintf("cycle %d is in the past (now %d)", cycle, b.CPU.TotalCycles()))
	}
	for b.CPU.TotalCycles() < cycle {
		if err := b.runQuantum(cycle); err != nil {
			return err
		}
	}
	return nil
}
