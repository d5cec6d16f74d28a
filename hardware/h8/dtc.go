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

	"github.com/jetsetilly/h8core/logger"
)

// DTCVectorBase is the address of the DTC vector table. Each entry is the
// lower 16 bits of the address of the register information for the vector.
const DTCVectorBase = 0x400

// DTCRegisters is the register information for one DTC transfer, as stored in
// memory.
//
//	+0  MRA  SAR (24 bits)
//	+4  MRB  DAR (24 bits)
//	+8  CRA
//	+10 CRB
type DTCRegisters struct {
	Base uint32
	MRA  uint8
	SAR  uint32
	MRB  uint8
	DAR  uint32
	CRA  uint16
	CRB  uint16
}

// the size of the register information for one transfer.
const dtcInfoSize = 12

// MRA bits.
const (
	dtcSize     = 0x01
	dtcDTS      = 0x02
	dtcModeMask = 0x0c
	dtcRepeat   = 0x04
	dtcBlock    = 0x08
)

// MRB bits.
const (
	dtcChain = 0x80
	dtcDISEL = 0x40
)

func (d DTCRegisters) String() string {
	return fmt.Sprintf("@%06x MRA=%02x SAR=%06x MRB=%02x DAR=%06x CRA=%04x CRB=%04x",
		d.Base, d.MRA, d.SAR, d.MRB, d.DAR, d.CRA, d.CRB)
}

func (d DTCRegisters) unitSize() uint32 {
	if d.MRA&dtcSize != 0 {
		return 2
	}
	return 1
}

// the address step for a two bit mode field. 0x is fixed; 10 increments; 11
// decrements.
func (d DTCRegisters) step(mode uint8) int32 {
	switch mode & 3 {
	case 2:
		return int32(d.unitSize())
	case 3:
		return -int32(d.unitSize())
	}
	return 0
}

func (d DTCRegisters) sourceStep() int32 {
	return d.step(d.MRA >> 6)
}

func (d DTCRegisters) destStep() int32 {
	return d.step(d.MRA >> 4)
}

// TriggerDTC starts a DTC transfer for the vector if the DTC controller has
// the vector enabled. The return value is true if the transfer has been
// queued, in which case the interrupt should not be delivered to the CPU.
func (c *H8) TriggerDTC(vector int) bool {
	if c.dtc == nil || vector < 0 || vector >= NumVectors {
		return false
	}
	if !c.dtc.DTCEnabled(vector) {
		return false
	}
	if c.st.DTCLen >= maxDTCQueue {
		logger.Logf(c.perm, "h8", "dtc queue full: vector %d delivered as an interrupt", vector)
		return false
	}
	c.st.DTCQueue[c.st.DTCLen] = uint16(vector)
	c.st.DTCLen++
	return true
}

// the vector of the transfer in progress.
func (c *H8) dtcVector() int {
	return int(c.st.DTCQueue[0])
}

func (c *H8) dtcPop() {
	copy(c.st.DTCQueue[:], c.st.DTCQueue[1:c.st.DTCLen])
	c.st.DTCLen--
	c.st.DTCQueue[c.st.DTCLen] = 0
}

// index of the first step of the register load. chained transfers jump back
// to here.
const dtcLoadStep = 1

// index of the transfer read step. block transfers jump back to here.
const dtcTransferStep = 7

// the DTC program reads the register information for the vector, makes the
// transfer, and writes the register information back.
//
// TMP1 holds the data being transferred. TMP2 counts the units remaining in
// a block. TMP3 is non-zero if the DTC controller should raise the interrupt
// when the transfer has finished.
func dtcProgram() []step {
	return []step{
		// vector read
		func(c *H8) {
			base := uint32(c.read16(DTCVectorBase + uint32(c.dtcVector())*2))
			if c.variant.Advanced() {
				base |= 0xff0000
			}
			c.st.DTC = DTCRegisters{Base: base & c.amask}
			c.st.TMP3 = 0
		},

		// register load
		func(c *H8) {
			w := c.read16(c.st.DTC.Base)
			c.st.DTC.MRA = uint8(w >> 8)
			c.st.DTC.SAR = uint32(w&0xff) << 16
		},
		func(c *H8) {
			c.st.DTC.SAR |= uint32(c.read16(c.st.DTC.Base + 2))
		},
		func(c *H8) {
			w := c.read16(c.st.DTC.Base + 4)
			c.st.DTC.MRB = uint8(w >> 8)
			c.st.DTC.DAR = uint32(w&0xff) << 16
		},
		func(c *H8) {
			c.st.DTC.DAR |= uint32(c.read16(c.st.DTC.Base + 6))
		},
		func(c *H8) {
			c.st.DTC.CRA = c.read16(c.st.DTC.Base + 8)
		},
		func(c *H8) {
			c.st.DTC.CRB = c.read16(c.st.DTC.Base + 10)
			if c.st.DTC.MRA&dtcModeMask == dtcBlock {
				c.st.TMP2 = uint32(c.st.DTC.CRA >> 8)
			} else {
				c.st.TMP2 = 1
			}
			if c.st.TMP2 == 0 {
				c.st.TMP2 = 256
			}
		},

		// transfer
		func(c *H8) {
			if c.st.DTC.unitSize() == 2 {
				c.st.TMP1 = uint32(c.read16(c.st.DTC.SAR))
			} else {
				c.st.TMP1 = uint32(c.read8(c.st.DTC.SAR))
			}
		},
		func(c *H8) {
			d := &c.st.DTC
			if d.unitSize() == 2 {
				c.write16(d.DAR, uint16(c.st.TMP1))
			} else {
				c.write8(d.DAR, uint8(c.st.TMP1))
			}
			d.SAR = uint32(int32(d.SAR)+d.sourceStep()) & 0xffffff
			d.DAR = uint32(int32(d.DAR)+d.destStep()) & 0xffffff

			c.st.TMP2--
			if c.st.TMP2 > 0 {
				c.jump(dtcTransferStep)
				return
			}

			c.dtcCount()
		},

		// write back
		func(c *H8) {
			d := &c.st.DTC
			c.write16(d.Base, uint16(d.MRA)<<8|uint16(d.SAR>>16)&0xff)
		},
		func(c *H8) {
			c.write16(c.st.DTC.Base+2, uint16(c.st.DTC.SAR))
		},
		func(c *H8) {
			d := &c.st.DTC
			c.write16(d.Base+4, uint16(d.MRB)<<8|uint16(d.DAR>>16)&0xff)
		},
		func(c *H8) {
			c.write16(c.st.DTC.Base+6, uint16(c.st.DTC.DAR))
		},
		func(c *H8) {
			c.write16(c.st.DTC.Base+8, c.st.DTC.CRA)
		},
		func(c *H8) {
			c.write16(c.st.DTC.Base+10, c.st.DTC.CRB)
			c.st.Stats.DTCTransfers++

			if c.st.DTC.MRB&dtcChain != 0 {
				c.st.DTC = DTCRegisters{Base: (c.st.DTC.Base + dtcInfoSize) & c.amask}
				c.jump(dtcLoadStep)
				return
			}

			vector := c.dtcVector()
			c.dtcPop()
			if c.dtc != nil {
				c.dtc.DTCDone(vector, c.st.TMP3 != 0)
			}
			c.prefetchDone()
		},
	}
}

// dtcCount updates the transfer counters at the end of an activation and
// decides whether the interrupt should be raised.
func (c *H8) dtcCount() {
	d := &c.st.DTC

	exhausted := false

	switch d.MRA & dtcModeMask {
	case dtcRepeat:
		// CRAH is the repeat size and CRAL counts down. the repeat area
		// returns to its start when the count reaches zero
		cral := uint8(d.CRA) - 1
		if cral == 0 {
			size := int32(d.CRA >> 8)
			if size == 0 {
				size = 256
			}
			if d.MRA&dtcDTS != 0 {
				d.SAR = uint32(int32(d.SAR)-size*d.sourceStep()) & 0xffffff
			} else {
				d.DAR = uint32(int32(d.DAR)-size*d.destStep()) & 0xffffff
			}
			cral = uint8(d.CRA >> 8)
		}
		d.CRA = d.CRA&0xff00 | uint16(cral)

	case dtcBlock:
		// CRAH is the block size and CRB counts the blocks. the block area
		// returns to its start after every block
		size := int32(d.CRA >> 8)
		if size == 0 {
			size = 256
		}
		if d.MRA&dtcDTS != 0 {
			d.SAR = uint32(int32(d.SAR)-size*d.sourceStep()) & 0xffffff
		} else {
			d.DAR = uint32(int32(d.DAR)-size*d.destStep()) & 0xffffff
		}
		d.CRB--
		exhausted = d.CRB == 0

	case dtcModeMask:
		logger.Logf(c.perm, "h8", "dtc: reserved transfer mode for vector %d: treated as normal mode", c.dtcVector())
		fallthrough

	default:
		d.CRA--
		exhausted = d.CRA == 0
	}

	if exhausted || d.MRB&dtcDISEL != 0 {
		c.st.TMP3 = 1
	}
}
