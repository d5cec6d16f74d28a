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

package stimulus

import (
	"fmt"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware/h8/savestate"
)

func registry(s *State) *savestate.Registry {
	r := savestate.NewRegistry()
	r.Add("next", &s.Next)
	r.Add("fired", &s.Fired)
	for i := range s.DTCEnabled {
		r.Add(fmt.Sprintf("dtc%d", i), &s.DTCEnabled[i])
	}
	return r
}

// the number of events is part of the ident. a saved state can only be
// restored to a stimulus loaded from the same script
func (stm *Stimulus) ident() string {
	return fmt.Sprintf("stimulus/%d", len(stm.events))
}

// Save the state of the stimulus to a byte buffer.
func (stm *Stimulus) Save() ([]byte, error) {
	st := stm.st
	return registry(&st).Encode(stm.ident())
}

// Restore the state from a buffer created by Save(). If the buffer is not
// valid then the state of the stimulus is not changed.
func (stm *Stimulus) Restore(data []byte) error {
	var st State
	if err := registry(&st).Decode(stm.ident(), data); err != nil {
		return err
	}
	if st.Next < 0 || st.Next > len(stm.events) {
		return curated.Errorf(savestate.Corrupt, fmt.Sprintf("next event out of range (%d)", st.Next))
	}
	stm.st = st
	return nil
}
