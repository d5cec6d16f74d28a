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

	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/h8core/hardware/h8"
	"github.com/jetsetilly/h8core/logger"
	"github.com/jetsetilly/h8core/test"
)

// the address the reset vector points to in every test.
const origin = 0x1000

// the initial stack pointer used by tests that need a stack.
const stackTop = 0x8000

type access struct {
	cycle   uint64
	address uint32
	write   bool
	fetch   bool
	value   uint16
}

// mockBus is big-endian memory that records every access. The cycle stamp of
// an access is the total cycle count of the CPU at the time of the access.
type mockBus struct {
	mem   []uint8
	cpu   *h8.H8
	trace []access
}

func newMockBus(size int) *mockBus {
	return &mockBus{mem: make([]uint8, size)}
}

func (b *mockBus) stamp() uint64 {
	if b.cpu == nil {
		return 0
	}
	return b.cpu.TotalCycles()
}

func (b *mockBus) index(address uint32) uint32 {
	return address % uint32(len(b.mem))
}

func (b *mockBus) get16(address uint32) uint16 {
	a := b.index(address)
	return uint16(b.mem[a])<<8 | uint16(b.mem[b.index(a+1)])
}

func (b *mockBus) put16(address uint32, v uint16) {
	a := b.index(address)
	b.mem[a] = uint8(v >> 8)
	b.mem[b.index(a+1)] = uint8(v)
}

func (b *mockBus) put32(address uint32, v uint32) {
	b.put16(address, uint16(v>>16))
	b.put16(address+2, uint16(v))
}

// putInstructions writes opcode words from the address and returns the
// address following the last word.
func (b *mockBus) putInstructions(address uint32, words ...uint16) uint32 {
	for _, w := range words {
		b.put16(address, w)
		address += 2
	}
	return address
}

func (b *mockBus) Read8(address uint32) uint8 {
	v := b.mem[b.index(address)]
	b.trace = append(b.trace, access{cycle: b.stamp(), address: address, value: uint16(v)})
	return v
}

func (b *mockBus) Read16(address uint32) uint16 {
	v := b.get16(address)
	b.trace = append(b.trace, access{cycle: b.stamp(), address: address, value: v})
	return v
}

func (b *mockBus) Read16i(address uint32) uint16 {
	v := b.get16(address)
	b.trace = append(b.trace, access{cycle: b.stamp(), address: address, fetch: true, value: v})
	return v
}

func (b *mockBus) Peek16(address uint32) uint16 {
	return b.get16(address)
}

func (b *mockBus) Write8(address uint32, data uint8) {
	b.mem[b.index(address)] = data
	b.trace = append(b.trace, access{cycle: b.stamp(), address: address, write: true, value: uint16(data)})
}

func (b *mockBus) Write16(address uint32, data uint16) {
	b.put16(address, data)
	b.trace = append(b.trace, access{cycle: b.stamp(), address: address, write: true, value: data})
}

// newCore creates a core for the named chip with memory covering the whole
// address space. The reset vector points to origin and the stack pointer is
// set to stackTop.
func newCore(t *testing.T, chip string, mode string) (*h8.H8, *mockBus) {
	t.Helper()

	v, err := h8.Chip(chip, mode)
	require.NoError(t, err)

	size := 0x10000
	switch v.Mode {
	case h8.Advanced20:
		size = 0x100000
	case h8.Advanced24:
		size = 0x1000000
	}
	mem := newMockBus(size)

	if v.Advanced() {
		mem.put32(0, origin)
	} else {
		mem.put16(0, origin)
	}

	c, err := h8.NewH8(v, mem, nil)
	require.NoError(t, err)
	mem.cpu = c

	require.NoError(t, c.SetRegister("sp", stackTop))

	return c, mem
}

// boundary runs the core one cycle at a time until the next instruction is
// dispatched. The return value is the time of the dispatch, including any
// cycles that are owed.
func boundary(t *testing.T, c *h8.H8) uint64 {
	t.Helper()
	n := c.Stats().Instructions
	for range 1000 {
		c.Run(1)
		if c.Stats().Instructions != n {
			return c.TotalCycles() + uint64(c.OwedCycles())
		}
	}
	t.Fatalf("no instruction boundary after 1000 cycles")
	return 0
}

// execute runs the core until n more instructions have been dispatched.
func execute(t *testing.T, c *h8.H8, n int) {
	t.Helper()
	for range n {
		boundary(t, c)
	}
}

func register(t *testing.T, c *h8.H8, name string) uint32 {
	t.Helper()
	v, err := c.Register(name)
	require.NoError(t, err)
	return v
}

// captureLog echoes new entries in the central log to the returned writer
// until the end of the test.
func captureLog(t *testing.T) *test.CompareWriter {
	t.Helper()
	b := &test.CompareWriter{}
	logger.SetEcho(b)
	t.Cleanup(func() {
		logger.SetEcho(nil)
	})
	return b
}
