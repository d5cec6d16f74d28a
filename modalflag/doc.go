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

// Package modalflag parses the h8core command line. The program has a small
// number of modes (RUN, PREFS and VERSION) and each mode has its own flags.
//
// The arguments are given once with NewArgs(). Each mode then starts with
// NewMode(), adds its flags and any sub-modes, and calls Parse():
//
//	md := &modalflag.Modes{Output: os.Stdout}
//	md.NewArgs(os.Args[1:])
//	md.AddSubModes("RUN", "PREFS", "VERSION")
//	if p, err := md.Parse(); p != modalflag.ParseContinue {
//		return err
//	}
//
//	switch md.Mode() {
//	case "RUN":
//		md.NewMode()
//		cycles := md.AddUint64("cycles", 1000000, "number of cycles to run")
//		if p, err := md.Parse(); p != modalflag.ParseContinue {
//			return err
//		}
//		image := md.GetArg(0)
//		...
//	}
//
// The first sub-mode is the default and is selected when the argument after
// the flags does not name a sub-mode. Sub-mode names are case insensitive.
//
// A -help flag prints the flags and sub-modes of the current mode to the
// Output writer and Parse() returns ParseHelp.
package modalflag
