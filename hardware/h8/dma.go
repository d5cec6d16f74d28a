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
	"strings"

	"github.com/jetsetilly/h8core/curated"
)

// NumDMAChannels is the number of DMA channels the core can arbitrate.
const NumDMAChannels = 8

// DMAFlags describe the state of a DMA channel.
type DMAFlags uint8

// List of DMA flags.
const (
	// the channel has been armed
	DMAActive DMAFlags = 1 << iota

	// the channel is waiting for its trigger vector
	DMASuspended

	// the interrupt that triggers the channel is not delivered to the CPU
	DMAEatInterrupt

	// transfer units are words rather than bytes
	DMAWord
)

func (f DMAFlags) String() string {
	s := strings.Builder{}
	for i, n := range []string{"active", "suspended", "eat", "word"} {
		if f&(1<<i) != 0 {
			if s.Len() > 0 {
				s.WriteRune('|')
			}
			s.WriteString(n)
		}
	}
	if s.Len() == 0 {
		return "-"
	}
	return s.String()
}

// DMAChannel is the configuration and current state of one DMA channel.
type DMAChannel struct {
	Flags DMAFlags

	// the interrupt vector that triggers a transfer unit. a value of -1
	// indicates an auto-request channel, which runs until the count is
	// exhausted
	TriggerVector int16

	Source    uint32
	Dest      uint32
	SourceInc int32
	DestInc   int32

	// number of units remaining
	Count uint32
}

func (ch DMAChannel) String() string {
	return fmt.Sprintf("%s vec=%d src=%06x%+d dst=%06x%+d count=%d", ch.Flags,
		ch.TriggerVector, ch.Source, ch.SourceInc, ch.Dest, ch.DestInc, ch.Count)
}

func (ch DMAChannel) ready() bool {
	return ch.Flags&(DMAActive|DMASuspended) == DMAActive
}

func (ch DMAChannel) armed() bool {
	return ch.Flags&(DMAActive|DMASuspended) == DMAActive|DMASuspended
}

// ConfigureDMA sets the configuration of a channel. A request-triggered
// channel should be configured as suspended; it is woken by TriggerDMA().
func (c *H8) ConfigureDMA(id int, ch DMAChannel) error {
	if id < 0 || id >= NumDMAChannels {
		return curated.Errorf(DMAError, fmt.Sprintf("no channel %d", id))
	}
	if ch.TriggerVector >= NumVectors || ch.TriggerVector < -1 {
		return curated.Errorf(DMAError, fmt.Sprintf("channel %d: trigger vector out of range: %d", id, ch.TriggerVector))
	}
	if ch.TriggerVector == -1 && ch.Flags&DMASuspended != 0 {
		return curated.Errorf(DMAError, fmt.Sprintf("channel %d: auto-request channel cannot be suspended", id))
	}
	if ch.TriggerVector == -1 && ch.Flags&DMAEatInterrupt != 0 {
		return curated.Errorf(DMAError, fmt.Sprintf("channel %d: auto-request channel has no interrupt to eat", id))
	}
	if ch.Flags&DMAActive != 0 && ch.Count == 0 {
		return curated.Errorf(DMAError, fmt.Sprintf("channel %d: active with a zero count", id))
	}
	if ch.Flags&DMAWord != 0 && (ch.SourceInc|ch.DestInc)&1 != 0 {
		return curated.Errorf(DMAError, fmt.Sprintf("channel %d: word transfer with an odd increment", id))
	}

	c.st.DMA[id] = ch
	c.updateActiveDMAChannel()
	return nil
}

// DMAChannel returns the current state of a channel.
func (c *H8) DMAChannel(id int) DMAChannel {
	if id < 0 || id >= NumDMAChannels {
		return DMAChannel{TriggerVector: -1}
	}
	return c.st.DMA[id]
}

// TriggerDMA wakes every armed channel that is waiting on the vector. The
// return value is true if the interrupt should not be delivered to the CPU,
// either because a channel eats it or because the DTC has taken it.
func (c *H8) TriggerDMA(vector int) bool {
	eaten := false
	triggered := false

	for i := range c.st.DMA {
		ch := &c.st.DMA[i]
		if ch.armed() && int(ch.TriggerVector) == vector {
			ch.Flags &^= DMASuspended
			triggered = true
			if ch.Flags&DMAEatInterrupt != 0 {
				eaten = true
			}
		}
	}

	if !eaten && c.dtc != nil {
		eaten = c.TriggerDTC(vector)
	}

	if triggered {
		c.updateActiveDMAChannel()
	}

	return eaten
}

// the active channel is the lowest numbered channel that is ready to make a
// transfer.
func (c *H8) updateActiveDMAChannel() {
	c.st.CurrentDMA = -1
	for i := range c.st.DMA {
		if c.st.DMA[i].ready() {
			c.st.CurrentDMA = i
			return
		}
	}
}

// the DMA program transfers one unit for the current channel. the channel is
// held in TMP3 because a trigger between the steps can change the current
// channel.
func dmaProgram() []step {
	return []step{
		func(c *H8) {
			c.st.TMP3 = uint32(c.st.CurrentDMA)
			ch := &c.st.DMA[c.st.TMP3]
			if ch.Flags&DMAWord != 0 {
				c.st.TMP1 = uint32(c.read16(ch.Source))
			} else {
				c.st.TMP1 = uint32(c.read8(ch.Source))
			}
		},
		func(c *H8) {
			id := int(c.st.TMP3)
			ch := &c.st.DMA[id]
			if ch.Flags&DMAWord != 0 {
				c.write16(ch.Dest, uint16(c.st.TMP1))
			} else {
				c.write8(ch.Dest, uint8(c.st.TMP1))
			}
			ch.Source = uint32(int32(ch.Source)+ch.SourceInc) & c.amask
			ch.Dest = uint32(int32(ch.Dest)+ch.DestInc) & c.amask
			ch.Count--
			c.st.Stats.DMAUnits++

			if ch.Count == 0 {
				ch.Flags &^= DMAActive | DMASuspended
				if c.dmac != nil {
					c.dmac.DMAEnd(id)
				}
			} else if ch.TriggerVector >= 0 {
				ch.Flags |= DMASuspended
			}

			c.updateActiveDMAChannel()
			c.prefetchDone()
		},
	}
}
