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

package memory_test

import (
	"bytes"
	"testing"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware/memory"
	"github.com/jetsetilly/h8core/test"
)

type clock struct {
	cycles uint64
}

func (c *clock) TotalCycles() uint64 {
	return c.cycles
}

func TestSize(t *testing.T) {
	for _, sz := range []int{0, 100, 0x1800, memory.MaxSize * 2} {
		_, err := memory.NewMemory(sz)
		test.ExpectFailure(t, err, sz)
		test.ExpectSuccess(t, curated.Is(err, memory.SizeError), sz)
	}

	mem, err := memory.NewMemory(0x10000)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, mem.Size(), 0x10000)
}

func TestReadWrite(t *testing.T) {
	mem, err := memory.NewMemory(0x10000)
	test.DemandSuccess(t, err)

	// unwritten memory reads as zero
	test.ExpectEquality(t, mem.Read16(0x2000), uint16(0))

	mem.Write16(0x2000, 0x1234)
	test.ExpectEquality(t, mem.Read8(0x2000), uint8(0x12))
	test.ExpectEquality(t, mem.Read8(0x2001), uint8(0x34))
	test.ExpectEquality(t, mem.Read16i(0x2000), uint16(0x1234))

	// a word that crosses a page
	mem.Write16(0x0fff, 0xabcd)
	test.ExpectEquality(t, mem.Read8(0x0fff), uint8(0xab))
	test.ExpectEquality(t, mem.Read8(0x1000), uint8(0xcd))

	// addresses wrap at the size of memory
	mem.Write8(0x12000, 0x55)
	test.ExpectEquality(t, mem.Read8(0x2000), uint8(0x55))
}

func TestPeekPoke(t *testing.T) {
	mem, err := memory.NewMemory(0x10000)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, mem.Poke(0x1234, 0x99))
	v, err := mem.Peek(0x1234)
	test.ExpectSuccess(t, err)
	test.ExpectEquality(t, v, uint8(0x99))

	_, err = mem.Peek(0x10000)
	test.ExpectSuccess(t, curated.Is(err, memory.AddressError))
	err = mem.Poke(0x10000, 0)
	test.ExpectSuccess(t, curated.Is(err, memory.AddressError))
}

func TestLoad(t *testing.T) {
	mem, err := memory.NewMemory(0x10000)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, mem.Load(0xfffe, []uint8{0x01, 0x02}))
	test.ExpectEquality(t, mem.Read16(0xfffe), uint16(0x0102))

	err = mem.Load(0xfffe, []uint8{0x01, 0x02, 0x03})
	test.ExpectSuccess(t, curated.Is(err, memory.LoadError))
}

func TestTrace(t *testing.T) {
	mem, err := memory.NewMemory(0x10000)
	test.DemandSuccess(t, err)

	clk := &clock{}
	mem.AttachClock(clk)

	var trace []memory.Access
	mem.SetTracer(func(a memory.Access) {
		trace = append(trace, a)
	})

	clk.cycles = 10
	mem.Write16(0x100, 0x4321)
	clk.cycles = 11
	mem.Read16i(0x100)
	clk.cycles = 12
	mem.Read8(0x101)

	// peek and poke are not bus transactions
	test.ExpectSuccess(t, mem.Poke(0x200, 1))
	test.ExpectEquality(t, mem.Peek16(0x100), uint16(0x4321))

	test.DemandEquality(t, len(trace), 3)
	test.ExpectEquality(t, trace[0], memory.Access{Cycle: 10, Address: 0x100, Width: 2, Write: true, Value: 0x4321})
	test.ExpectEquality(t, trace[1], memory.Access{Cycle: 11, Address: 0x100, Width: 2, Fetch: true, Value: 0x4321})
	test.ExpectEquality(t, trace[2], memory.Access{Cycle: 12, Address: 0x101, Width: 1, Value: 0x21})
	test.ExpectEquality(t, trace[0].String(), "10: W16 000100 4321")
	test.ExpectEquality(t, trace[2].String(), "12: R8 000101 21")

	mem.SetTracer(nil)
	mem.Read8(0x100)
	test.ExpectEquality(t, len(trace), 3)
}

func TestSnapshot(t *testing.T) {
	mem, err := memory.NewMemory(0x10000)
	test.DemandSuccess(t, err)

	mem.Write8(0x1000, 1)
	snap := mem.Snapshot()

	// writing to the live memory does not change the snapshot
	mem.Write8(0x1000, 2)
	mem.Write8(0x3000, 3)
	v, _ := snap.Peek(0x1000)
	test.ExpectEquality(t, v, uint8(1))
	v, _ = snap.Peek(0x3000)
	test.ExpectEquality(t, v, uint8(0))

	test.ExpectSuccess(t, mem.Plumb(snap))
	test.ExpectEquality(t, mem.Read8(0x1000), uint8(1))
	test.ExpectEquality(t, mem.Read8(0x3000), uint8(0))

	// and the snapshot can be plumbed in more than once
	mem.Write8(0x1000, 4)
	test.ExpectSuccess(t, mem.Plumb(snap))
	test.ExpectEquality(t, mem.Read8(0x1000), uint8(1))

	small, err := memory.NewMemory(0x1000)
	test.DemandSuccess(t, err)
	err = mem.Plumb(small)
	test.ExpectSuccess(t, curated.Is(err, memory.SizeError))
}

func TestEncode(t *testing.T) {
	mem, err := memory.NewMemory(0x10000)
	test.DemandSuccess(t, err)
	mem.Write16(0x1000, 0x1234)
	mem.Write8(0xffff, 0x56)

	var b bytes.Buffer
	test.DemandSuccess(t, mem.Encode(&b))

	// header and two pages
	test.ExpectEquality(t, b.Len(), 12+2*(4+0x1000))

	dec, err := memory.Decode(bytes.NewReader(b.Bytes()))
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, dec.Size(), 0x10000)

	other, err := memory.NewMemory(0x10000)
	test.DemandSuccess(t, err)
	test.DemandSuccess(t, other.Plumb(dec))
	test.ExpectEquality(t, other.Read16(0x1000), uint16(0x1234))
	test.ExpectEquality(t, other.Read8(0xffff), uint8(0x56))
	test.ExpectEquality(t, other.Read8(0x2000), uint8(0))

	_, err = memory.Decode(bytes.NewReader(b.Bytes()[:100]))
	test.ExpectSuccess(t, curated.Is(err, memory.DecodeError))

	_, err = memory.Decode(bytes.NewReader([]byte("NOPE")))
	test.ExpectSuccess(t, curated.Is(err, memory.DecodeError))
}
