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

// Package registers implements the architectural registers of the H8 family.
//
// The general register file is sixteen 16 bit words. The first eight are the
// R registers and the second eight are the E registers. The E:R pair make up
// the 32 bit ER registers on H8/300H and H8S cores. Byte access to the R
// registers is through the RnH and RnL halves:
//
//	index 0 to 7	R0H to R7H
//	index 8 to 15	R0L to R7L
//
// The condition code register (CCR) and the extended control register (EXR)
// are simple byte types with helper functions for each flag.
package registers
