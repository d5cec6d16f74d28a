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

package modalflag

import (
	"errors"
	"flag"
	"io"
	"strings"
)

const modeSeparator = "/"

// Modes handles the command line of the h8core program. Each mode has its
// own set of flags. The Output field must be set before Parse() is called
// for help messages to be seen.
type Modes struct {
	Output io.Writer

	// a new flagset is created by every call to NewMode(). flags for the
	// mode are added with the Add*() functions
	flags *flag.FlagSet

	args    []string
	argsIdx int

	// arguments left over by the most recent call to Parse()
	remaining []string

	// sub-modes available for the next call to Parse(). the first entry is
	// the default
	subModes []string

	// the modes selected by previous calls to Parse(). never reset
	path []string
}

func (md *Modes) String() string {
	return md.Path()
}

// Mode returns the most recently selected mode.
func (md *Modes) Mode() string {
	if len(md.path) == 0 {
		return ""
	}
	return md.path[len(md.path)-1]
}

// Path returns all the selected modes joined with a slash. eg. "RUN".
func (md *Modes) Path() string {
	return strings.Join(md.path, modeSeparator)
}

// NewArgs sets the arguments to be parsed and starts a new mode.
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.argsIdx = 0
	md.NewMode()
}

// NewMode indicates that the remaining arguments belong to a new mode.
func (md *Modes) NewMode() {
	md.subModes = md.subModes[:0]
	md.remaining = nil
	md.flags = flag.NewFlagSet("", flag.ContinueOnError)
}

// ParseResult is returned from the Parse() function.
type ParseResult int

// List of valid ParseResult values.
const (
	// ParseContinue means the caller should carry on with the selected mode.
	ParseContinue ParseResult = iota

	// ParseHelp means help was requested and has been printed.
	ParseHelp

	// ParseError means the error returned alongside should be reported.
	ParseError
)

// Parse the flags of the current mode. If sub-modes have been added the
// first argument after the flags selects one of them. An unrecognised
// argument selects the default sub-mode and is left in RemainingArgs().
func (md *Modes) Parse() (ParseResult, error) {
	hw := &helpWriter{}
	md.flags.SetOutput(hw)

	args := md.args[md.argsIdx:]
	err := md.flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			hw.help(md.Output, md.Path(), md.subModes)
			return ParseHelp, nil
		}

		// unrecognised flags are left for the default sub-mode if there is
		// one
		if len(md.subModes) == 0 {
			return ParseError, err
		}
		md.path = append(md.path, md.subModes[0])
		md.remaining = args
		return ParseContinue, nil
	}

	md.remaining = md.flags.Args()
	md.argsIdx += len(args) - len(md.remaining)

	if len(md.subModes) > 0 {
		mode := md.subModes[0]
		if len(md.remaining) > 0 {
			arg := strings.ToUpper(md.remaining[0])
			for _, m := range md.subModes {
				if m == arg {
					mode = arg
					md.remaining = md.remaining[1:]
					md.argsIdx++
					break
				}
			}
		}
		md.path = append(md.path, mode)
	}

	return ParseContinue, nil
}

// RemainingArgs returns the arguments after the flags and the selected
// sub-mode.
func (md *Modes) RemainingArgs() []string {
	return md.remaining
}

// GetArg returns the numbered argument from RemainingArgs() or the empty
// string if there is no such argument.
func (md *Modes) GetArg(i int) string {
	if i < 0 || i >= len(md.remaining) {
		return ""
	}
	return md.remaining[i]
}

// AddSubModes to the list of sub-modes for the next call to Parse(). The
// first sub-mode added is the default. Comparisons are case insensitive.
func (md *Modes) AddSubModes(subModes ...string) {
	for _, m := range subModes {
		md.subModes = append(md.subModes, strings.ToUpper(m))
	}
}

// AddBool flag for next call to Parse().
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	return md.flags.Bool(name, value, usage)
}

// AddInt64 flag for next call to Parse().
func (md *Modes) AddInt64(name string, value int64, usage string) *int64 {
	return md.flags.Int64(name, value, usage)
}

// AddUint64 flag for next call to Parse().
func (md *Modes) AddUint64(name string, value uint64, usage string) *uint64 {
	return md.flags.Uint64(name, value, usage)
}

// AddString flag for next call to Parse().
func (md *Modes) AddString(name string, value string, usage string) *string {
	return md.flags.String(name, value, usage)
}
