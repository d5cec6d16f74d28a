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

// Package memory implements a flat RAM bus for the H8 core. It has no
// peripheral registers. Every address in the address space is read/write
// RAM.
//
// The Memory type implements the h8.Bus and h8.FetchBus interfaces. The CPU
// is the only bus master so there is only the one bus. Access from outside
// the normal operation of the machine (loading a program image, a stimulus
// script poking a value) is through the Peek() and Poke() functions, which
// are not recorded in the traffic trace.
//
// RAM is divided into pages that are only allocated when they are first
// written to. Pages are shared between the live memory and any snapshots
// taken with Snapshot() and are copied when the live memory writes to a
// shared page. This means that taking a snapshot of a large address space is
// cheap.
//
// Bus traffic can be recorded by calling SetTrace(). Each transaction is
// stamped with the cycle count of the attached Clock.
package memory
