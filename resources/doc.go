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

// Package resources contains functions to prepare paths for h8core resources.
//
// The JoinPath() function returns the correct path to the resource directory
// or file. If the directory ".h8core" exists in the current working
// directory then that is used as the base directory. This is the portable
// installation. Otherwise the base directory is "h8core" in the user's
// configuration directory (see os.UserConfigDir()).
//
// Missing directories in the path are created by JoinPath().
package resources
