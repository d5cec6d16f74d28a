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

import "github.com/jetsetilly/h8core/hardware/h8/registers"

// every bus transaction costs one cycle

func (c *H8) read8(addr uint32) uint8 {
	c.st.ICount--
	return c.mem.Read8(addr & c.amask)
}

func (c *H8) read16(addr uint32) uint16 {
	c.st.ICount--
	return c.mem.Read16(addr & c.amask &^ 1)
}

func (c *H8) read16i(addr uint32) uint16 {
	c.st.ICount--
	addr = addr & c.amask &^ 1
	if c.fetchBus != nil {
		return c.fetchBus.Read16i(addr)
	}
	return c.mem.Read16(addr)
}

func (c *H8) write8(addr uint32, data uint8) {
	c.st.ICount--
	c.mem.Write8(addr&c.amask, data)
}

func (c *H8) write16(addr uint32, data uint16) {
	c.st.ICount--
	c.mem.Write16(addr&c.amask&^1, data)
}

// fetch the next word of the current instruction.
func (c *H8) fetch() uint16 {
	w := c.read16i(c.st.PC)
	c.st.PC = (c.st.PC + 2) & c.amask
	if c.st.IRLen < len(c.st.IR) {
		c.st.IR[c.st.IRLen] = w
		c.st.IRLen++
	}
	return w
}

// the address register for a three bit register field. in normal mode only
// the lower 16 bits of the register are used.
func (c *H8) areg(n uint16) uint32 {
	if c.variant.Advanced() {
		return c.st.Regs.R32(int(n & 7))
	}
	return uint32(c.st.Regs.R16(int(n & 7)))
}

func (c *H8) setAreg(n uint16, v uint32) {
	if c.variant.Advanced() {
		c.st.Regs.SetR32(int(n&7), v)
		return
	}
	c.st.Regs.SetR16(int(n&7), uint16(v))
}

// adjust an address register by a signed amount. on the H8/300H and later in
// normal mode the full 32 bit register is adjusted.
func (c *H8) adjustAreg(n uint16, delta int32) {
	if c.variant.ISA >= ISA300H {
		c.st.Regs.SetR32(int(n&7), c.st.Regs.R32(int(n&7))+uint32(delta))
		return
	}
	c.st.Regs.SetR16(int(n&7), c.st.Regs.R16(int(n&7))+uint16(delta))
}

func (c *H8) sp() uint32 {
	return c.areg(registers.SP)
}

// the short absolute address used by @aa:8 operands.
func (c *H8) shortAddress(aa uint16) uint32 {
	return (0xffffff00 | uint32(aa&0xff)) & c.amask
}

// the 16 bit absolute address is sign extended in the advanced modes.
func (c *H8) absolute16(aa uint16) uint32 {
	return uint32(int32(int16(aa))) & c.amask
}

// absolute 24 bit address made from the low byte of the first word and the
// second word.
func (c *H8) absolute24(hi, lo uint16) uint32 {
	return (uint32(hi&0xff)<<16 | uint32(lo)) & c.amask
}

// the size of a stack entry for a return address.
func (c *H8) pcSize() int32 {
	if c.variant.Advanced() {
		return 4
	}
	return 2
}
