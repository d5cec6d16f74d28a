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

// Package hardware is the base package for the H8 emulation. It and its
// sub-packages contain everything required for a headless emulation.
//
// The Board type is the root of the emulation and contains references to the
// H8 core, the memory it is attached to and the optional stimulus that drives
// the core's interrupt, DMA and DTC inputs. From here, the emulation can be
// run continuously for a number of cycles (with an optional callback to check
// for continuation) or run to a specific cycle.
package hardware
