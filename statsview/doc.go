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

// Package statsview serves graphs of the Go runtime while h8core runs a
// program. It is only built with the statsview build tag:
//
//	go build -tags statsview .
//	h8core run -statsview -statsaddr localhost:12600 prog.bin
//
// The graphs are at /debug/statsview on the address and the pprof endpoints
// are at /debug/pprof/. The server is stopped when the run finishes or is
// interrupted.
package statsview

// DefaultAddress is used when Launch() is given an empty address.
const DefaultAddress = "localhost:12600"
