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

// Package stimulus drives the H8 core from a script. The script is written
// in Starlark and schedules events at specific cycles. For example:
//
//	# configure a DMA channel that copies four bytes when vector 30 is raised
//	dma_channel(0, source=0x5000, dest=0x6000, count=4, vector=30, source_inc=1, dest_inc=1)
//
//	# let the DTC service vector 40. an interrupt of level 2 is raised when
//	# the transfer count is exhausted
//	dtc_enable(40, level=2)
//
//	for i in range(4):
//	    irq(1000 + i*500, 30, level=1)
//
//	nmi(5000)
//	poke(6000, 0x7000, 0xff)
//	reset(9000)
//
// The available functions are:
//
//	irq(at, vector, level=0)     raise the vector. DMA and DTC have the first chance to take it
//	nmi(at, vector=7)            request a non-maskable interrupt
//	cancel(at, vector)           withdraw a pending interrupt request
//	dma(at, vector)              trigger DMA channels waiting on the vector without an interrupt
//	dtc(at, vector)              start a DTC transfer without an interrupt
//	reset(at)                    request the reset sequence
//	poke(at, address, value)     write a byte to memory outside of a bus transaction
//	dma_channel(id, source, dest, count, vector=-1, word=False, source_inc=0, dest_inc=0, eat=False)
//	dtc_enable(vector, level=0)
//
// The Stimulus type is an h8.Peripheral. Events are delivered from
// InternalUpdate() at the first step boundary at or after the scheduled
// cycle. It is also the h8.DTCController and h8.DMAController for the core it
// is attached to.
package stimulus
