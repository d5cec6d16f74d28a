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
)

// Kind of Event.
type Kind int

// List of valid Kind values.
const (
	IRQ Kind = iota
	NMI
	Cancel
	DMA
	DTC
	Reset
	Poke
)

func (k Kind) String() string {
	switch k {
	case IRQ:
		return "irq"
	case NMI:
		return "nmi"
	case Cancel:
		return "cancel"
	case DMA:
		return "dma"
	case DTC:
		return "dtc"
	case Reset:
		return "reset"
	case Poke:
		return "poke"
	}
	return "unknown"
}

// Event is a single scheduled stimulus.
type Event struct {
	Cycle uint64
	Kind  Kind

	// interrupt vector and priority level. used by IRQ, NMI, Cancel, DMA and
	// DTC events
	Vector int
	Level  int

	// used by Poke events
	Address uint32
	Value   uint8
}

func (e Event) String() string {
	switch e.Kind {
	case Reset:
		return fmt.Sprintf("%d: %s", e.Cycle, e.Kind)
	case Poke:
		return fmt.Sprintf("%d: %s %06x %02x", e.Cycle, e.Kind, e.Address, e.Value)
	case IRQ:
		return fmt.Sprintf("%d: %s %d level %d", e.Cycle, e.Kind, e.Vector, e.Level)
	}
	return fmt.Sprintf("%d: %s %d", e.Cycle, e.Kind, e.Vector)
}
