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
	"strconv"
	"strings"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware/h8/registers"
)

// Register is a register as presented to a debugger.
type Register struct {
	Name  string
	Value uint32
	Bits  int
}

func (r Register) String() string {
	return fmt.Sprintf("%s=%0*x", r.Name, r.Bits/4, r.Value)
}

// Registers returns the registers that exist on the variant. The value of
// the PC is the address of the next instruction to be executed.
func (c *H8) Registers() []Register {
	r := []Register{
		{Name: "pc", Value: c.st.NPC, Bits: 24},
		{Name: "ccr", Value: uint32(c.st.CCR), Bits: 8},
	}
	if c.variant.HasEXR {
		r = append(r, Register{Name: "exr", Value: uint32(c.st.EXR), Bits: 8})
	}
	for n := range 8 {
		if c.variant.ISA >= ISA300H {
			r = append(r, Register{Name: "er" + strconv.Itoa(n), Value: c.st.Regs.R32(n), Bits: 32})
		} else {
			r = append(r, Register{Name: "r" + strconv.Itoa(n), Value: uint32(c.st.Regs.R16(n)), Bits: 16})
		}
	}
	if c.variant.HasMAC {
		r = append(r,
			Register{Name: "mach", Value: c.st.MAC.High(), Bits: 32},
			Register{Name: "macl", Value: c.st.MAC.Low(), Bits: 32},
		)
	}
	return r
}

// the register number of names such as "er3". the prefix has already been
// matched.
func regNumber(name, prefix string) (int, bool) {
	if !strings.HasPrefix(name, prefix) || len(name) != len(prefix)+1 {
		return 0, false
	}
	n := int(name[len(prefix)] - '0')
	return n, n >= 0 && n < 8
}

// Register returns the value of the named register. As well as the names
// used by Registers() the 16 bit halves of the ER registers can be named as
// rN and eN and the stack pointer as sp.
func (c *H8) Register(name string) (uint32, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	extended := c.variant.ISA >= ISA300H

	switch name {
	case "pc":
		return c.st.NPC, nil
	case "ccr":
		return uint32(c.st.CCR), nil
	case "exr":
		if c.variant.HasEXR {
			return uint32(c.st.EXR), nil
		}
	case "sp":
		return c.sp(), nil
	case "mach":
		if c.variant.HasMAC {
			return c.st.MAC.High(), nil
		}
	case "macl":
		if c.variant.HasMAC {
			return c.st.MAC.Low(), nil
		}
	}

	if n, ok := regNumber(name, "er"); ok && extended {
		return c.st.Regs.R32(n), nil
	}
	if n, ok := regNumber(name, "e"); ok && extended {
		return uint32(c.st.Regs.R16(n + 8)), nil
	}
	if n, ok := regNumber(name, "r"); ok {
		return uint32(c.st.Regs.R16(n)), nil
	}

	return 0, curated.Errorf(RegisterError, fmt.Sprintf("%s has no register %q", c.variant.Name, name))
}

// SetRegister changes the named register. Setting the PC restarts execution
// at the new address: the instruction at that address is prefetched without
// cost and the next call to Run() will execute it.
func (c *H8) SetRegister(name string, v uint32) error {
	name = strings.ToLower(strings.TrimSpace(name))
	extended := c.variant.ISA >= ISA300H

	switch name {
	case "pc":
		c.setPC(v)
		return nil
	case "ccr":
		c.st.CCR = registers.CCR(v)
		return nil
	case "exr":
		if c.variant.HasEXR {
			c.setEXR(uint8(v))
			return nil
		}
	case "sp":
		c.setAreg(registers.SP, v)
		return nil
	case "mach":
		if c.variant.HasMAC {
			c.st.MAC = c.st.MAC.SetHigh(v)
			return nil
		}
	case "macl":
		if c.variant.HasMAC {
			c.st.MAC = c.st.MAC.SetLow(v)
			return nil
		}
	}

	if n, ok := regNumber(name, "er"); ok && extended {
		c.st.Regs.SetR32(n, v)
		return nil
	}
	if n, ok := regNumber(name, "e"); ok && extended {
		c.st.Regs.SetR16(n+8, uint16(v))
		return nil
	}
	if n, ok := regNumber(name, "r"); ok {
		c.st.Regs.SetR16(n, uint16(v))
		return nil
	}

	return curated.Errorf(RegisterError, fmt.Sprintf("%s has no register %q", c.variant.Name, name))
}

// setPC abandons the current program and primes the instruction at the
// address. No cycles are consumed and, if the bus implements PeekBus, no bus
// access is seen.
func (c *H8) setPC(v uint32) {
	addr := v & c.amask &^ 1
	c.st.PPC = addr
	c.st.NPC = addr
	if c.peekBus != nil {
		c.st.PIR = c.peekBus.Peek16(addr)
	} else {
		c.st.PIR = c.mem.Read16(addr)
	}
	c.st.PC = (addr + 2) & c.amask
	c.st.InstSubstate = 0
	c.st.Sleeping = false

	// the primed instruction is not counted in the instruction statistics
	c.st.InstState = uint32(c.st.PIR)
	c.st.IR[0] = c.st.PIR
	c.st.IRLen = 1
	c.finished = false
}

// Flags returns the CCR in the form "IUHUNZVC", with clear bits in lower
// case. The EXR trace bit and level follow on variants with EXR.
func (c *H8) Flags() string {
	if c.variant.HasEXR {
		return fmt.Sprintf("%s %s", c.st.CCR, c.st.EXR)
	}
	return c.st.CCR.String()
}
