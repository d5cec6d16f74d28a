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

package h8

import (
	"fmt"

	"github.com/jetsetilly/h8core/hardware/h8/registers"
	"github.com/jetsetilly/h8core/hardware/h8/savestate"
)

// List of dispatch states that are not opcodes. Values from stateSecond
// upwards index the second level of the decode table.
const (
	StateReset uint32 = 0x10000 + iota
	StateIRQ
	StateTrace
	StateDMA
	StateDTC

	stateSecond uint32 = 0x20000
)

// the number of exception states, used to size the table of exception
// programs
const numExceptionStates = 5

// noRequest is the value of State.Requested when no state has been requested.
const noRequest = -1

// NumVectors is the size of the interrupt vector table.
const NumVectors = 256

// maxDTCQueue is the number of DTC requests that can be waiting at once.
const maxDTCQueue = 8

// Stats counts notable events. The values are part of the state so that they
// survive a snapshot.
type Stats struct {
	Instructions uint64
	Interrupts   uint64
	Traces       uint64
	DMAUnits     uint64
	DTCTransfers uint64
}

// State is the complete state of the H8. It is a value type so that a copy
// of the state is a snapshot.
type State struct {
	// address of the instruction being executed; address of the prefetched
	// instruction; and the address of the next word to be fetched
	PPC uint32
	NPC uint32
	PC  uint32

	// prefetched instruction word and the words of the current instruction
	PIR   uint16
	IR    [5]uint16
	IRLen int

	Regs registers.File
	CCR  registers.CCR
	EXR  registers.EXR
	MAC  registers.MAC

	// MACS switch
	MACSaturating bool

	Mode InterruptMode

	// the dispatch state and the number of steps completed in the program
	// for that state. a sub-state of zero means that the program has not
	// started
	InstState    uint32
	InstSubstate int

	// state requested by the surrounding machine. taken at the next
	// instruction boundary
	Requested int32

	// pending interrupt requests indexed by vector. zero is no request,
	// otherwise the value is the priority level plus one
	Pending      [NumVectors]uint8
	PendingCount int

	// the interrupt being taken
	TakenVector int
	TakenLevel  int

	CurrentDMA int
	DMA        [NumDMAChannels]DMAChannel

	// DTC request queue and the register information for the transfer in
	// progress
	DTCQueue [maxDTCQueue]uint16
	DTCLen   int
	DTC      DTCRegisters

	// temporaries that survive suspension of a program
	TMP1 uint32
	TMP2 uint32
	TMP3 uint32

	Sleeping bool
	Illegal  bool

	// the undocumented combination of trace and interrupt has been reported
	TraceWarned bool

	// total cycles at the start of the current quantum; the budget of the
	// quantum; the remaining budget; the budget at which the next
	// peripheral event falls due; and cycles owed from the previous quantum
	Total  uint64
	Budget int64
	ICount int64
	BCount int64
	Owed   int64

	Stats Stats
}

// Snapshot creates a copy of the H8 state.
func (c *H8) Snapshot() *State {
	n := c.st
	return &n
}

// Plumb a previously snapshotted state into the live H8.
func (c *H8) Plumb(s *State) {
	c.st = *s
	c.derive()
}

// derive recomputes every value that is cached outside of the State type.
func (c *H8) derive() {
	c.updateActiveDMAChannel()
	c.finished = false
	c.jumpTo = -1
	c.redispatched = false
}

// buildRegistry lists every field of the state in a fixed order.
func (c *H8) buildRegistry() *savestate.Registry {
	r := savestate.NewRegistry()
	s := &c.st

	r.Add("ppc", &s.PPC)
	r.Add("npc", &s.NPC)
	r.Add("pc", &s.PC)
	r.Add("pir", &s.PIR)
	r.Add("ir", s.IR[:])
	r.Add("irlen", &s.IRLen)
	r.Add("regs", s.Regs.R[:])
	r.Add("ccr", (*uint8)(&s.CCR))
	r.Add("exr", (*uint8)(&s.EXR))
	r.Add("mac", (*uint64)(&s.MAC))
	r.Add("macs", &s.MACSaturating)
	r.Add("mode", (*int)(&s.Mode))
	r.Add("inst_state", &s.InstState)
	r.Add("inst_substate", &s.InstSubstate)
	r.Add("requested", &s.Requested)
	r.Add("pending", s.Pending[:])
	r.Add("pending_count", &s.PendingCount)
	r.Add("taken_vector", &s.TakenVector)
	r.Add("taken_level", &s.TakenLevel)
	r.Add("current_dma", &s.CurrentDMA)
	for i := range s.DMA {
		d := &s.DMA[i]
		p := fmt.Sprintf("dma%d_", i)
		r.Add(p+"flags", (*uint8)(&d.Flags))
		r.Add(p+"vector", &d.TriggerVector)
		r.Add(p+"source", &d.Source)
		r.Add(p+"dest", &d.Dest)
		r.Add(p+"source_inc", &d.SourceInc)
		r.Add(p+"dest_inc", &d.DestInc)
		r.Add(p+"count", &d.Count)
	}
	r.Add("dtc_queue", s.DTCQueue[:])
	r.Add("dtc_len", &s.DTCLen)
	r.Add("dtc_base", &s.DTC.Base)
	r.Add("dtc_mra", &s.DTC.MRA)
	r.Add("dtc_sar", &s.DTC.SAR)
	r.Add("dtc_mrb", &s.DTC.MRB)
	r.Add("dtc_dar", &s.DTC.DAR)
	r.Add("dtc_cra", &s.DTC.CRA)
	r.Add("dtc_crb", &s.DTC.CRB)
	r.Add("tmp1", &s.TMP1)
	r.Add("tmp2", &s.TMP2)
	r.Add("tmp3", &s.TMP3)
	r.Add("sleeping", &s.Sleeping)
	r.Add("illegal", &s.Illegal)
	r.Add("trace_warned", &s.TraceWarned)
	r.Add("total", &s.Total)
	r.Add("budget", &s.Budget)
	r.Add("icount", &s.ICount)
	r.Add("bcount", &s.BCount)
	r.Add("owed", &s.Owed)
	r.Add("stats_instructions", &s.Stats.Instructions)
	r.Add("stats_interrupts", &s.Stats.Interrupts)
	r.Add("stats_traces", &s.Stats.Traces)
	r.Add("stats_dma", &s.Stats.DMAUnits)
	r.Add("stats_dtc", &s.Stats.DTCTransfers)

	return r
}

// StateLayout returns the ordered names of the fields written by Save().
func (c *H8) StateLayout() []string {
	return c.registry.Names()
}

// Save the complete state of the H8 to a byte buffer. The buffer can only be
// restored to a H8 of the same variant.
func (c *H8) Save() ([]byte, error) {
	return c.registry.Encode(c.variant.Name)
}

// Restore the state from a buffer created by Save(). If the buffer is not
// valid then the live state is not changed.
func (c *H8) Restore(data []byte) error {
	if err := c.registry.Decode(c.variant.Name, data); err != nil {
		return err
	}
	c.derive()
	return nil
}
