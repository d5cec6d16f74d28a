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

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware/h8/registers"
	"github.com/jetsetilly/h8core/hardware/h8/savestate"
	"github.com/jetsetilly/h8core/hardware/preferences"
	"github.com/jetsetilly/h8core/logger"
)

// H8 implements the H8 microcontroller core.
type H8 struct {
	prefs   *preferences.Preferences
	variant Variant

	mem      Bus
	fetchBus FetchBus
	peekBus  PeekBus

	// logging permission. changed by the rewind package while history is
	// being replayed
	perm logger.Permission

	st State

	amask    uint32
	sentinel int64

	// decode tables. the second level is indexed by the high byte of the
	// prefix word and lists candidates in the order they were defined
	first       [0x10000]*instruction
	second      []*instruction
	secondIndex [256][]int

	exceptions [numExceptionStates][]step

	peripherals []Peripheral
	dtc         DTCController
	dmac        DMAController
	ack         InterruptAcknowledger

	registry *savestate.Registry

	// set by steps during execute()
	finished     bool
	redispatched bool
	jumpTo       int
}

// NewH8 is the preferred method of initialisation for the H8 type. The
// preferences argument can be nil in which case the default values are used.
func NewH8(v Variant, mem Bus, prefs *preferences.Preferences) (*H8, error) {
	if err := v.validate(); err != nil {
		return nil, err
	}
	if mem == nil {
		return nil, curated.Errorf(VariantError, "no bus")
	}
	if v.Name == "" {
		v.Name = v.ISA.String()
	}
	if prefs == nil {
		prefs = preferences.DefaultPreferences()
	}

	c := &H8{
		prefs:    prefs,
		variant:  v,
		mem:      mem,
		perm:     logger.Allow,
		amask:    v.AddressMask(),
		sentinel: int64(prefs.IllegalSentinel.Get().(int)),
		jumpTo:   -1,
	}
	if c.sentinel >= 0 {
		c.sentinel = preferences.DefaultIllegalSentinel
	}

	if fb, ok := mem.(FetchBus); ok {
		c.fetchBus = fb
	}
	if pb, ok := mem.(PeekBus); ok {
		c.peekBus = pb
	}

	mode, err := ParseInterruptMode(prefs.InterruptMode.String())
	if err != nil {
		return nil, err
	}

	c.buildDecodeTables()
	c.buildExceptionPrograms()
	c.registry = c.buildRegistry()

	c.Reset()

	if err := c.SetInterruptMode(mode); err != nil {
		return nil, err
	}
	c.st.MACSaturating = prefs.MACSaturating.Get().(bool)

	return c, nil
}

func (c *H8) String() string {
	return fmt.Sprintf("PC=%06x %s CCR=%s", c.st.PPC, c.st.Regs.String(c.variant.ISA >= ISA300H), c.Flags())
}

// Variant returns the variant the H8 was created with.
func (c *H8) Variant() Variant {
	return c.variant
}

// Reset the H8 to its power-on state. The reset program will be run at the
// start of the next call to Run(). The total cycle clock is not reset.
func (c *H8) Reset() {
	total := c.st.Total
	mode := c.st.Mode
	macs := c.st.MACSaturating
	warned := c.st.TraceWarned

	c.st = State{}
	c.st.Total = total
	c.st.Mode = mode
	c.st.MACSaturating = macs
	c.st.TraceWarned = warned
	c.st.InstState = StateReset
	c.st.Requested = noRequest
	c.st.CurrentDMA = -1
	c.st.TakenVector = -1
	for i := range c.st.DMA {
		c.st.DMA[i].TriggerVector = -1
	}
	if c.variant.HasEXR {
		c.st.EXR = registers.EXRFixed | registers.EXRMask
	}

	c.derive()
}

// RequestState asks for the dispatch state to be changed at the next
// instruction boundary. The state must be one of the non-opcode states.
//
// A request for StateIRQ, StateDMA or StateDTC is dropped at the boundary if
// there is no unmasked interrupt, active DMA channel or queued DTC request.
func (c *H8) RequestState(state uint32) {
	if state < StateReset || state >= StateReset+numExceptionStates {
		logger.Logf(c.perm, "h8", "ignoring request for unknown state %#x", state)
		return
	}
	c.st.Requested = int32(state)
}

// RequestReset asks for the reset program to be run at the next instruction
// boundary. Unlike Reset() the registers are not cleared.
func (c *H8) RequestReset() {
	c.RequestState(StateReset)
}

// AttachPeripheral adds a peripheral to the list of peripherals that are
// updated by the CPU.
func (c *H8) AttachPeripheral(p Peripheral) {
	c.peripherals = append(c.peripherals, p)
}

// AttachDTC binds the DTC controller. A nil value removes the DTC.
func (c *H8) AttachDTC(dtc DTCController) {
	c.dtc = dtc
}

// AttachDMAController binds the DMA controller that is told when a channel's
// count is exhausted.
func (c *H8) AttachDMAController(dmac DMAController) {
	c.dmac = dmac
}

// AttachAcknowledger binds the interrupt acknowledger.
func (c *H8) AttachAcknowledger(ack InterruptAcknowledger) {
	c.ack = ack
}

// SetLogPermission changes the permission used for logging.
func (c *H8) SetLogPermission(perm logger.Permission) {
	c.perm = perm
}

// SetMACSaturating sets the MACS switch of the H8S/2600.
func (c *H8) SetMACSaturating(set bool) {
	c.st.MACSaturating = set
}

// Illegal returns true if an illegal instruction has been executed. The
// surrounding machine should consider the core to be halted.
func (c *H8) Illegal() bool {
	return c.st.Illegal
}

// Sleeping returns true if the core is waiting in a SLEEP instruction.
func (c *H8) Sleeping() bool {
	return c.st.Sleeping
}

// Stats returns the event counters.
func (c *H8) Stats() Stats {
	return c.st.Stats
}

// LastPC returns the address of the instruction most recently started.
func (c *H8) LastPC() uint32 {
	return c.st.PPC
}
