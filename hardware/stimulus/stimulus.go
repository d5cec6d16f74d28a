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
	"github.com/jetsetilly/h8core/hardware/h8"
	"github.com/jetsetilly/h8core/logger"
)

// AttachError is the pattern for errors found while attaching the stimulus
// to a core.
const AttachError = "stimulus: attach: %v"

// CPU is the part of the H8 that the stimulus drives.
type CPU interface {
	Raise(vector int, level int)
	RequestInterrupt(vector int, level int, nmi bool)
	CancelInterrupt(vector int)
	TriggerDMA(vector int) bool
	TriggerDTC(vector int) bool
	RequestReset()
	ConfigureDMA(id int, ch h8.DMAChannel) error
}

// Poker is the part of memory that the stimulus writes to.
type Poker interface {
	Poke(address uint32, value uint8) error
}

// State is the part of the Stimulus that changes as the core runs.
type State struct {
	// index of the next event to deliver
	Next int

	// vectors that the DTC services
	DTCEnabled [h8.NumVectors]bool

	Fired uint64
}

// Stimulus delivers scheduled events to an H8 core.
type Stimulus struct {
	cpu CPU
	mem Poker

	perm logger.Permission

	events   []Event
	dma      [h8.NumDMAChannels]*h8.DMAChannel
	dtcLevel [h8.NumVectors]int

	// DTC enable flags as set by the script
	initialDTC [h8.NumVectors]bool

	st State
}

func newStimulus(s *script) *Stimulus {
	stm := &Stimulus{
		perm:       logger.Allow,
		events:     s.events,
		dma:        s.dma,
		dtcLevel:   s.level,
		initialDTC: s.dtc,
	}
	stm.st.DTCEnabled = s.dtc
	return stm
}

// Copy returns a new Stimulus with the same events and configuration. The
// copy is not attached to a core and its state is the state of a newly
// loaded script.
func (stm *Stimulus) Copy() *Stimulus {
	n := &Stimulus{
		perm:       stm.perm,
		events:     stm.events,
		dma:        stm.dma,
		dtcLevel:   stm.dtcLevel,
		initialDTC: stm.initialDTC,
	}
	n.st.DTCEnabled = stm.initialDTC
	return n
}

func (stm *Stimulus) String() string {
	return fmt.Sprintf("%d events (%d delivered)", len(stm.events), stm.st.Next)
}

// Events returns the list of scheduled events in delivery order.
func (stm *Stimulus) Events() []Event {
	return stm.events
}

// Attach the stimulus to a core and its memory. DMA channels configured by
// the script are set in the core. It is the responsibility of the caller to
// add the Stimulus to the core as a peripheral, DTC controller and DMA
// controller.
func (stm *Stimulus) Attach(cpu CPU, mem Poker) error {
	stm.cpu = cpu
	stm.mem = mem
	for id, ch := range stm.dma {
		if ch == nil {
			continue
		}
		if err := cpu.ConfigureDMA(id, *ch); err != nil {
			return curated.Errorf(AttachError, err)
		}
	}
	return nil
}

// SetLogPermission changes the permission used for logging.
func (stm *Stimulus) SetLogPermission(perm logger.Permission) {
	stm.perm = perm
}

// Snapshot creates a copy of the Stimulus state.
func (stm *Stimulus) Snapshot() *State {
	n := stm.st
	return &n
}

// Plumb a previously snapshotted state into the Stimulus.
func (stm *Stimulus) Plumb(s *State) {
	stm.st = *s
}

// Fired returns the number of events that have been delivered.
func (stm *Stimulus) Fired() uint64 {
	return stm.st.Fired
}

// InternalUpdate implements the h8.Peripheral interface.
func (stm *Stimulus) InternalUpdate(now uint64) uint64 {
	for stm.st.Next < len(stm.events) && stm.events[stm.st.Next].Cycle <= now {
		stm.deliver(stm.events[stm.st.Next], now)
		stm.st.Next++
		stm.st.Fired++
	}
	if stm.st.Next >= len(stm.events) {
		return 0
	}
	return stm.events[stm.st.Next].Cycle
}

func (stm *Stimulus) deliver(e Event, now uint64) {
	if stm.cpu == nil {
		return
	}

	logger.Logf(stm.perm, "stimulus", "%s (at %d)", e, now)

	switch e.Kind {
	case IRQ:
		stm.cpu.Raise(e.Vector, e.Level)
	case NMI:
		stm.cpu.RequestInterrupt(e.Vector, 0, true)
	case Cancel:
		stm.cpu.CancelInterrupt(e.Vector)
	case DMA:
		stm.cpu.TriggerDMA(e.Vector)
	case DTC:
		if !stm.cpu.TriggerDTC(e.Vector) {
			logger.Logf(stm.perm, "stimulus", "dtc did not accept vector %d", e.Vector)
		}
	case Reset:
		stm.cpu.RequestReset()
	case Poke:
		if stm.mem == nil {
			return
		}
		if err := stm.mem.Poke(e.Address, e.Value); err != nil {
			logger.Log(stm.perm, "stimulus", err)
		}
	}
}

// DTCEnabled implements the h8.DTCController interface.
func (stm *Stimulus) DTCEnabled(vector int) bool {
	if vector < 0 || vector >= h8.NumVectors {
		return false
	}
	return stm.st.DTCEnabled[vector]
}

// DTCDone implements the h8.DTCController interface.
func (stm *Stimulus) DTCDone(vector int, raise bool) {
	if !raise || vector < 0 || vector >= h8.NumVectors {
		return
	}
	stm.st.DTCEnabled[vector] = false
	if stm.cpu != nil {
		stm.cpu.RequestInterrupt(vector, stm.dtcLevel[vector], false)
	}
}

// DMAEnd implements the h8.DMAController interface.
func (stm *Stimulus) DMAEnd(id int) {
	logger.Logf(stm.perm, "stimulus", "dma channel %d finished", id)
}
