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

package h8_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware/h8"
	"github.com/jetsetilly/h8core/test"
)

type dmaController struct {
	ended []int
}

func (d *dmaController) DMAEnd(id int) {
	d.ended = append(d.ended, id)
}

func dmaCore(t *testing.T) (*h8.H8, *mockBus, *dmaController, *acknowledger) {
	t.Helper()
	c, mem := newCore(t, "H8S/2655", "")
	dmac := &dmaController{}
	c.AttachDMAController(dmac)
	ack := &acknowledger{}
	c.AttachAcknowledger(ack)

	mem.putInstructions(origin, opUnmask, opBRA)
	for v := 30; v < 32; v++ {
		setVector(mem, v, 0x3000)
	}
	mem.putInstructions(0x3000, opRTE)

	copy(mem.mem[0x5000:], []uint8{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff})
	return c, mem, dmac, ack
}

func TestDMAEatsInterrupt(t *testing.T) {
	c, mem, dmac, ack := dmaCore(t)

	require.NoError(t, c.ConfigureDMA(0, h8.DMAChannel{
		Flags:         h8.DMAActive | h8.DMASuspended | h8.DMAEatInterrupt,
		TriggerVector: 30,
		Source:        0x5000,
		Dest:          0x6000,
		SourceInc:     1,
		DestInc:       1,
		Count:         2,
	}))

	// the channel waits for its trigger
	c.Run(20)
	assert.Zero(t, c.Stats().DMAUnits)

	c.Raise(30, 1)
	test.ExpectFailure(t, c.InterruptPending(30))
	c.Run(20)
	assert.Equal(t, uint8(0xaa), mem.mem[0x6000])
	assert.Equal(t, uint8(0x00), mem.mem[0x6001])
	assert.Equal(t, uint64(1), c.Stats().DMAUnits)

	ch := c.DMAChannel(0)
	assert.Equal(t, uint32(1), ch.Count)
	assert.Equal(t, uint32(0x5001), ch.Source)
	assert.NotZero(t, ch.Flags&h8.DMASuspended)

	c.Raise(30, 1)
	c.Run(20)
	assert.Equal(t, uint8(0xbb), mem.mem[0x6001])
	assert.Equal(t, []int{0}, dmac.ended)
	assert.Zero(t, c.DMAChannel(0).Flags&h8.DMAActive)
	assert.Empty(t, ack.vectors)

	// the channel has finished so the interrupt is delivered
	c.Raise(30, 1)
	c.Run(50)
	assert.Equal(t, []int{30}, ack.vectors)
	assert.Equal(t, uint64(2), c.Stats().DMAUnits)
}

func TestDMAWithInterrupt(t *testing.T) {
	c, mem, _, ack := dmaCore(t)

	require.NoError(t, c.ConfigureDMA(1, h8.DMAChannel{
		Flags:         h8.DMAActive | h8.DMASuspended,
		TriggerVector: 31,
		Source:        0x5002,
		Dest:          0x6000,
		Count:         4,
	}))

	c.Run(20)
	c.Raise(31, 1)
	test.ExpectSuccess(t, c.InterruptPending(31))

	// the transfer unit is made before the interrupt is taken
	c.Run(50)
	assert.Equal(t, uint8(0xcc), mem.mem[0x6000])
	assert.Equal(t, []int{31}, ack.vectors)

	ch := c.DMAChannel(1)
	assert.Equal(t, uint32(3), ch.Count)
	assert.Equal(t, uint32(0x5002), ch.Source)
}

func TestDMAAutoRequest(t *testing.T) {
	c, mem, dmac, _ := dmaCore(t)

	require.NoError(t, c.ConfigureDMA(2, h8.DMAChannel{
		Flags:         h8.DMAActive | h8.DMAWord,
		TriggerVector: -1,
		Source:        0x5000,
		Dest:          0x6000,
		SourceInc:     2,
		DestInc:       2,
		Count:         3,
	}))

	c.Run(50)
	assert.Equal(t, []uint8{0xaa, 0xbb, 0xcc, 0xdd, 0xee, 0xff}, mem.mem[0x6000:0x6006])
	assert.Equal(t, []int{2}, dmac.ended)
	assert.Equal(t, uint64(3), c.Stats().DMAUnits)
	assert.Zero(t, c.DMAChannel(2).Flags&h8.DMAActive)
}

func TestDMAConfiguration(t *testing.T) {
	c, _, _, _ := dmaCore(t)

	for _, tc := range []struct {
		name string
		id   int
		ch   h8.DMAChannel
	}{
		{name: "channel", id: h8.NumDMAChannels, ch: h8.DMAChannel{TriggerVector: -1}},
		{name: "vector", ch: h8.DMAChannel{TriggerVector: h8.NumVectors}},
		{name: "suspended auto-request", ch: h8.DMAChannel{Flags: h8.DMAActive | h8.DMASuspended, TriggerVector: -1, Count: 1}},
		{name: "eating auto-request", ch: h8.DMAChannel{Flags: h8.DMAActive | h8.DMAEatInterrupt, TriggerVector: -1, Count: 1}},
		{name: "zero count", ch: h8.DMAChannel{Flags: h8.DMAActive, TriggerVector: 30}},
		{name: "odd word increment", ch: h8.DMAChannel{Flags: h8.DMAActive | h8.DMAWord, TriggerVector: -1, SourceInc: 1, Count: 1}},
	} {
		err := c.ConfigureDMA(tc.id, tc.ch)
		test.ExpectFailure(t, err, tc.name)
		test.ExpectSuccess(t, curated.Is(err, h8.DMAError), tc.name)
	}

	// an inactive channel is not checked for a count
	test.ExpectSuccess(t, c.ConfigureDMA(7, h8.DMAChannel{TriggerVector: -1}))
}

type dtcController struct {
	c       *h8.H8
	enabled map[int]bool
	done    [][2]int
}

func (d *dtcController) DTCEnabled(vector int) bool {
	return d.enabled[vector]
}

func (d *dtcController) DTCDone(vector int, raise bool) {
	r := 0
	if raise {
		r = 1
		d.enabled[vector] = false
		if d.c != nil {
			d.c.RequestInterrupt(vector, 1, false)
		}
	}
	d.done = append(d.done, [2]int{vector, r})
}

const dtcInfo = 0xfff000

func dtcCore(t *testing.T, vector int) (*h8.H8, *mockBus, *dtcController, *acknowledger) {
	t.Helper()
	c, mem := newCore(t, "H8S/2655", "")
	dtc := &dtcController{c: c, enabled: map[int]bool{vector: true}}
	c.AttachDTC(dtc)
	ack := &acknowledger{}
	c.AttachAcknowledger(ack)

	mem.putInstructions(origin, opUnmask, opBRA)
	setVector(mem, vector, 0x3000)
	mem.putInstructions(0x3000, opRTE)

	mem.put16(h8.DTCVectorBase+uint32(vector)*2, dtcInfo&0xffff)
	copy(mem.mem[0x5000:], []uint8{0xaa, 0xbb, 0xcc, 0xdd})
	return c, mem, dtc, ack
}

func TestDTCNormalMode(t *testing.T) {
	c, mem, dtc, ack := dtcCore(t, 40)

	// source and destination increment, byte transfers, two transfers
	mem.putInstructions(dtcInfo,
		0xa000, 0x5000, // MRA SAR
		0x0000, 0x6000, // MRB DAR
		0x0002, // CRA
		0x0000, // CRB
	)

	c.Run(20)
	c.Raise(40, 1)
	test.ExpectFailure(t, c.InterruptPending(40))
	c.Run(30)

	assert.Equal(t, uint8(0xaa), mem.mem[0x6000])
	assert.Equal(t, [][2]int{{40, 0}}, dtc.done)
	assert.Equal(t, uint64(1), c.Stats().DTCTransfers)
	assert.Equal(t, uint16(0x5001), mem.get16(dtcInfo+2))
	assert.Equal(t, uint16(0x6001), mem.get16(dtcInfo+6))
	assert.Equal(t, uint16(0x0001), mem.get16(dtcInfo+8))
	assert.Empty(t, ack.vectors)

	// the count is exhausted by the second transfer and the interrupt is
	// raised
	c.Raise(40, 1)
	c.Run(50)
	assert.Equal(t, uint8(0xbb), mem.mem[0x6001])
	assert.Equal(t, [][2]int{{40, 0}, {40, 1}}, dtc.done)
	assert.Equal(t, uint16(0x0000), mem.get16(dtcInfo+8))
	assert.Equal(t, []int{40}, ack.vectors)
}

func TestDTCBlockMode(t *testing.T) {
	c, mem, dtc, _ := dtcCore(t, 41)

	// block of three bytes. the destination is the block area and returns to
	// its start
	mem.putInstructions(dtcInfo,
		0xa800, 0x5000, // MRA SAR
		0x0000, 0x6000, // MRB DAR
		0x0300, // CRA
		0x0001, // CRB
	)

	// the interrupt is not raised by the controller in this test
	dtc.c = nil

	c.Run(20)
	c.Raise(41, 1)
	mem.trace = nil
	c.Run(50)

	// vector read, register load, three transfers and write back. there are
	// no internal operations so the accesses are consecutive
	var transfer []access
	for _, a := range mem.trace {
		if !a.fetch {
			transfer = append(transfer, a)
		}
	}
	require.Len(t, transfer, 19)
	assert.Equal(t, transfer[0].cycle+18, transfer[18].cycle)

	assert.Equal(t, []uint8{0xaa, 0xbb, 0xcc}, mem.mem[0x6000:0x6003])
	assert.Equal(t, uint16(0x5003), mem.get16(dtcInfo+2))
	assert.Equal(t, uint16(0x6000), mem.get16(dtcInfo+6))
	assert.Equal(t, uint16(0x0000), mem.get16(dtcInfo+10))
	assert.Equal(t, [][2]int{{41, 1}}, dtc.done)
}

func TestDTCRepeatMode(t *testing.T) {
	c, mem, dtc, ack := dtcCore(t, 42)

	// repeat area of two bytes at the destination. the count is reloaded and
	// the destination returns to its start after every second transfer
	mem.putInstructions(dtcInfo,
		0xa400, 0x5000, // MRA SAR
		0x0000, 0x6000, // MRB DAR
		0x0202, // CRA
		0x0000, // CRB
	)

	c.Run(20)
	for i := 0; i < 3; i++ {
		c.Raise(42, 1)
		c.Run(50)
	}

	assert.Equal(t, []uint8{0xcc, 0xbb}, mem.mem[0x6000:0x6002])
	assert.Equal(t, uint8(0x00), mem.mem[0x6002])
	assert.Equal(t, uint16(0x5003), mem.get16(dtcInfo+2))
	assert.Equal(t, uint16(0x6001), mem.get16(dtcInfo+6))
	assert.Equal(t, uint16(0x0201), mem.get16(dtcInfo+8))
	assert.Equal(t, uint64(3), c.Stats().DTCTransfers)

	// a repeat transfer never exhausts its count
	assert.Equal(t, [][2]int{{42, 0}, {42, 0}, {42, 0}}, dtc.done)
	assert.Empty(t, ack.vectors)
}

func TestDTCChain(t *testing.T) {
	c, mem, dtc, ack := dtcCore(t, 43)

	// the first transfer has the chain bit set so the register information
	// that follows it is used for a second transfer in the same activation
	mem.putInstructions(dtcInfo,
		0xa000, 0x5000, // MRA SAR
		0x8000, 0x6000, // MRB DAR
		0x0005, // CRA
		0x0000, // CRB
		0xa000, 0x5003, // MRA SAR
		0x0000, 0x7000, // MRB DAR
		0x0001, // CRA
		0x0000, // CRB
	)

	c.Run(20)
	c.Raise(43, 1)
	mem.trace = nil
	c.Run(100)

	// vector read, then register load, transfer and write back for each of
	// the two register blocks. the interrupt entry follows
	var transfer []access
	for _, a := range mem.trace {
		if !a.fetch {
			transfer = append(transfer, a)
		}
	}
	require.Greater(t, len(transfer), 29)
	assert.Equal(t, transfer[0].cycle+28, transfer[28].cycle)
	assert.Equal(t, uint32(dtcInfo+22), transfer[28].address)

	assert.Equal(t, uint8(0xaa), mem.mem[0x6000])
	assert.Equal(t, uint8(0xdd), mem.mem[0x7000])
	assert.Equal(t, uint64(2), c.Stats().DTCTransfers)

	assert.Equal(t, uint16(0x0004), mem.get16(dtcInfo+8))
	assert.Equal(t, uint16(0x5004), mem.get16(dtcInfo+12+2))
	assert.Equal(t, uint16(0x7001), mem.get16(dtcInfo+12+6))
	assert.Equal(t, uint16(0x0000), mem.get16(dtcInfo+12+8))

	// the second transfer exhausts its count and the interrupt is raised
	// once for the activation
	assert.Equal(t, [][2]int{{43, 1}}, dtc.done)
	assert.Equal(t, []int{43}, ack.vectors)
}
