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

package prefs

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// the command line stack holds groups of preference values that override the
// values on disk. the h8core -prefs flag pushes a group before the
// preferences are loaded and pops it afterwards.
var commandLine struct {
	crit  sync.Mutex
	stack []map[string]string
}

// separators used in a command line preferences string. eg.
// "h8.variant::H8/3002; rewind.snapshotFreq::5000"
const (
	entrySeparator = ";"
	keySeparator   = "::"
)

// PushCommandLineStack parses a preferences string and adds the entries as a
// new group. Entries without a key separator are ignored.
func PushCommandLineStack(prefs string) {
	group := make(map[string]string)
	for _, entry := range strings.Split(prefs, entrySeparator) {
		key, value, ok := strings.Cut(entry, keySeparator)
		if !ok || strings.Contains(value, keySeparator) {
			continue
		}
		group[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()
	commandLine.stack = append(commandLine.stack, group)
}

// PopCommandLineStack removes the most recent group. The entries of the group
// that were never used by GetCommandLinePref() are returned as a preferences
// string sorted by key.
func PopCommandLineStack() string {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	n := len(commandLine.stack)
	if n == 0 {
		return ""
	}
	group := commandLine.stack[n-1]
	commandLine.stack = commandLine.stack[:n-1]

	keys := make([]string, 0, len(group))
	for key := range group {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	unused := make([]string, 0, len(keys))
	for _, key := range keys {
		unused = append(unused, fmt.Sprintf("%s%s%s", key, keySeparator, group[key]))
	}
	return strings.Join(unused, entrySeparator+" ")
}

// GetCommandLinePref returns the value for the key from the most recent
// group. A value can only be used once.
func GetCommandLinePref(key string) (Value, bool) {
	commandLine.crit.Lock()
	defer commandLine.crit.Unlock()

	n := len(commandLine.stack)
	if n == 0 {
		return nil, false
	}
	group := commandLine.stack[n-1]
	v, ok := group[key]
	if ok {
		delete(group, key)
		return v, true
	}
	return nil, false
}
