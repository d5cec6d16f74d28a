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

package memory

import (
	"fmt"

	"github.com/jetsetilly/h8core/curated"
)

// Sentinal error patterns.
const (
	SizeError    = "memory: size: %v"
	AddressError = "memory: address out of range: %#x"
	LoadError    = "memory: load: %v"
)

const (
	pageBits = 12
	pageSize = 1 << pageBits
	pageMask = pageSize - 1
)

// MaxSize is the largest address space of any H8 variant.
const MaxSize = 1 << 24

// Memory is a flat RAM bus.
type Memory struct {
	mask uint32

	// pages are allocated on first write
	pages [][]uint8

	// pages that are referenced by a snapshot and must be copied before
	// being written to
	shared []bool

	clk    Clock
	tracer func(Access)
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The size must be a power of two between 4KiB and 16MiB.
func NewMemory(size int) (*Memory, error) {
	if size < pageSize || size > MaxSize || size&(size-1) != 0 {
		return nil, curated.Errorf(SizeError, fmt.Sprintf("%#x is not a power of two between %#x and %#x", size, pageSize, MaxSize))
	}

	n := size / pageSize
	mem := &Memory{
		mask:   uint32(size - 1),
		pages:  make([][]uint8, n),
		shared: make([]bool, n),
	}

	return mem, nil
}

func (mem *Memory) String() string {
	var n int
	for _, p := range mem.pages {
		if p != nil {
			n++
		}
	}
	return fmt.Sprintf("%d bytes (%d of %d pages in use)", mem.Size(), n, len(mem.pages))
}

// Size returns the size of the address space in bytes.
func (mem *Memory) Size() int {
	return int(mem.mask) + 1
}

// AttachClock sets the clock used to stamp bus transactions.
func (mem *Memory) AttachClock(clk Clock) {
	mem.clk = clk
}

// SetTracer sets the function that will be called with every bus
// transaction. A nil value stops tracing.
func (mem *Memory) SetTracer(tracer func(Access)) {
	mem.tracer = tracer
}

func (mem *Memory) record(address uint32, width int, write bool, fetch bool, value uint16) {
	if mem.tracer == nil {
		return
	}
	a := Access{
		Address: address & mem.mask,
		Width:   width,
		Write:   write,
		Fetch:   fetch,
		Value:   value,
	}
	if mem.clk != nil {
		a.Cycle = mem.clk.TotalCycles()
	}
	mem.tracer(a)
}

func (mem *Memory) read(address uint32) uint8 {
	address &= mem.mask
	p := mem.pages[address>>pageBits]
	if p == nil {
		return 0
	}
	return p[address&pageMask]
}

func (mem *Memory) write(address uint32, data uint8) {
	address &= mem.mask
	idx := address >> pageBits
	p := mem.pages[idx]
	if p == nil {
		p = make([]uint8, pageSize)
		mem.pages[idx] = p
	} else if mem.shared[idx] {
		p = append(make([]uint8, 0, pageSize), p...)
		mem.pages[idx] = p
		mem.shared[idx] = false
	}
	p[address&pageMask] = data
}

// Read8 implements the h8.Bus interface.
func (mem *Memory) Read8(address uint32) uint8 {
	v := mem.read(address)
	mem.record(address, 1, false, false, uint16(v))
	return v
}

// Read16 implements the h8.Bus interface. Words are big-endian.
func (mem *Memory) Read16(address uint32) uint16 {
	v := uint16(mem.read(address))<<8 | uint16(mem.read(address+1))
	mem.record(address, 2, false, false, v)
	return v
}

// Read16i implements the h8.FetchBus interface.
func (mem *Memory) Read16i(address uint32) uint16 {
	v := uint16(mem.read(address))<<8 | uint16(mem.read(address+1))
	mem.record(address, 2, false, true, v)
	return v
}

// Peek16 implements the h8.PeekBus interface. The access is not traced.
func (mem *Memory) Peek16(address uint32) uint16 {
	return uint16(mem.read(address))<<8 | uint16(mem.read(address+1))
}

// Write8 implements the h8.Bus interface.
func (mem *Memory) Write8(address uint32, data uint8) {
	mem.write(address, data)
	mem.record(address, 1, true, false, uint16(data))
}

// Write16 implements the h8.Bus interface.
func (mem *Memory) Write16(address uint32, data uint16) {
	mem.write(address, uint8(data>>8))
	mem.write(address+1, uint8(data))
	mem.record(address, 2, true, false, data)
}

// Peek returns the value at the address without making a bus transaction.
func (mem *Memory) Peek(address uint32) (uint8, error) {
	if address > mem.mask {
		return 0, curated.Errorf(AddressError, address)
	}
	return mem.read(address), nil
}

// Poke sets the value at the address without making a bus transaction.
func (mem *Memory) Poke(address uint32, value uint8) error {
	if address > mem.mask {
		return curated.Errorf(AddressError, address)
	}
	mem.write(address, value)
	return nil
}

// Load copies data into memory starting at the origin address.
func (mem *Memory) Load(origin uint32, data []uint8) error {
	if uint64(origin)+uint64(len(data)) > uint64(mem.Size()) {
		return curated.Errorf(LoadError, fmt.Sprintf("%d bytes at %#x does not fit in %d bytes", len(data), origin, mem.Size()))
	}
	for i, v := range data {
		mem.write(origin+uint32(i), v)
	}
	return nil
}

// Snapshot creates a copy of the contents of memory. The clock and tracer
// are not part of the snapshot.
func (mem *Memory) Snapshot() *Memory {
	n := &Memory{
		mask:   mem.mask,
		pages:  make([][]uint8, len(mem.pages)),
		shared: make([]bool, len(mem.pages)),
	}
	copy(n.pages, mem.pages)
	for i, p := range mem.pages {
		if p != nil {
			mem.shared[i] = true
			n.shared[i] = true
		}
	}
	return n
}

// Plumb a previously snapshotted memory into the live memory. The snapshot
// is not changed by subsequent writes to the live memory.
func (mem *Memory) Plumb(s *Memory) error {
	if s.mask != mem.mask {
		return curated.Errorf(SizeError, fmt.Sprintf("snapshot is %d bytes and memory is %d bytes", s.Size(), mem.Size()))
	}
	copy(mem.pages, s.pages)
	for i, p := range s.pages {
		if p != nil {
			s.shared[i] = true
		}
		mem.shared[i] = p != nil
	}
	return nil
}
