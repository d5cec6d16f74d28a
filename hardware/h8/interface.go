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

// Bus defines the memory operations required by the H8. Addresses have
// already been masked to the width of the address space and word addresses
// are always even.
//
// Each call to the Bus is one bus transaction and costs one cycle. Long word
// accesses are made by the core as two word transactions, high word first.
type Bus interface {
	Read8(address uint32) uint8
	Read16(address uint32) uint16
	Write8(address uint32, data uint8)
	Write16(address uint32, data uint16)
}

// FetchBus is an optional extension to the Bus interface. If the Bus
// implements FetchBus then instruction fetches are made through Read16i
// rather than Read16.
type FetchBus interface {
	Read16i(address uint32) uint16
}

// PeekBus is an optional extension to the Bus interface. Peek16 reads memory
// without side effects and without the access being seen by a bus tracer. It
// is used when the PC is changed from outside of the core.
type PeekBus interface {
	Peek16(address uint32) uint16
}

// Peripheral is an on-chip device that has work to do at specific times.
//
// InternalUpdate() is called with the current value of the total cycle clock.
// The peripheral should bring itself up to date and return the time of its
// next event. A return value of zero indicates that there is no scheduled
// event.
//
// The CPU will not run past the nearest scheduled event without calling
// InternalUpdate() again.
type Peripheral interface {
	InternalUpdate(now uint64) uint64
}

// DTCController is the part of the data transfer controller that decides
// whether an interrupt vector starts a transfer, and which is told when a
// transfer has finished.
type DTCController interface {
	// returns true if the DTC is enabled for the vector
	DTCEnabled(vector int) bool

	// called at the end of the transfer. the raise argument is true if the
	// transfer count was exhausted or if the register information asked for
	// an interrupt after every transfer. the controller should clear its
	// enable bit and raise the vector as an ordinary interrupt in that case
	DTCDone(vector int, raise bool)
}

// DMAController is notified when the transfer count of a DMA channel reaches
// zero.
type DMAController interface {
	DMAEnd(id int)
}

// InterruptAcknowledger is told when an interrupt has been taken by the CPU.
// For the interrupt controller this is the point at which edge-triggered
// sources can be cleared.
type InterruptAcknowledger interface {
	InterruptTaken(vector int)
}
