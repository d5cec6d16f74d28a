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

// Package h8 emulates the Hitachi H8 family of microcontroller cores. The
// H8/300, H8/300H, H8S/2000 and H8S/2600 instruction sets are supported, in
// normal and advanced address modes. See the Variant type and the Chip()
// function.
//
// The core is cycle accurate to the level of bus transactions. Every
// instruction is a program of steps, with each step making at most one bus
// access or one internal operation. The Run() function executes steps until
// the cycle budget is exhausted and can return in the middle of an
// instruction. The next call to Run() continues from exactly that point.
//
// Let's assume mem is an instance of the Bus interface with an H8S program
// loaded.
//
//	v, _ := h8.Chip("H8S/2655", "")
//	mc, _ := h8.NewH8(v, mem, nil)
//
//	for {
//		mc.Run(100)
//		if mc.Illegal() {
//			break
//		}
//	}
//
// Between calls to Run() the surrounding machine can raise interrupts with
// RequestInterrupt() or Raise(), trigger DMA and DTC transfers, and save or
// restore the state of the core.
//
// Peripherals that need to be kept up to date with the CPU should be attached
// with AttachPeripheral(). The CPU will not run past the time of the next
// peripheral event without calling the peripheral.
//
// Interrupts, DMA and DTC requests are only ever considered at instruction
// boundaries. The order of priority is: a requested state (eg. reset); an
// active DMA channel; a DTC transfer; an unmasked interrupt; trace.
package h8
