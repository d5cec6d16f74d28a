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
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
)

// DefaultPrefsFile is the default filename of the global preferences file.
const DefaultPrefsFile = "preferences"

// WarningBoilerPlate is inserted at the beginning of a preferences file.
const WarningBoilerPlate = "*** do not edit this file by hand ***"

// separator between key and value in the preferences file.
const separator = " :: "

// Disk represents preference values as stored on disk. More than one Disk
// instance can use the same file. Saving one instance does not overwrite the
// entries of other instances.
type Disk struct {
	path    string
	entries map[string]pref
}

// NewDisk is the preferred method of initialisation for the Disk type.
func NewDisk(path string) (*Disk, error) {
	return &Disk{
		path:    path,
		entries: make(map[string]pref),
	}, nil
}

// Add preference value to list of values to store/load from Disk. The key
// value is used to identify the value in the file.
func (dsk *Disk) Add(key string, p pref) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.Contains(key, separator) {
		return fmt.Errorf("prefs: illegal key %q", key)
	}
	if _, ok := dsk.entries[key]; ok {
		return fmt.Errorf("prefs: %s: already added", key)
	}
	dsk.entries[key] = p
	return nil
}

// keys returns the keys of the disk instance in sorted order.
func (dsk *Disk) keys() []string {
	k := make([]string, 0, len(dsk.entries))
	for key := range dsk.entries {
		k = append(k, key)
	}
	sort.Strings(k)
	return k
}

// String returns the current values of the disk instance in the same format
// as the preferences file.
func (dsk *Disk) String() string {
	s := strings.Builder{}
	for _, key := range dsk.keys() {
		s.WriteString(fmt.Sprintf("%s%s%s\n", key, separator, dsk.entries[key].String()))
	}
	return s.String()
}

// read the preferences file. the returned map contains every entry in the
// file, not only those that have been added to this instance.
func (dsk *Disk) read() (map[string]string, error) {
	f, err := os.Open(dsk.path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries := make(map[string]string)

	scanner := bufio.NewScanner(f)

	// the first line must be the warning boilerplate
	if !scanner.Scan() {
		return entries, scanner.Err()
	}
	if scanner.Text() != WarningBoilerPlate {
		return nil, fmt.Errorf("prefs: %s: not a valid preferences file", dsk.path)
	}

	for scanner.Scan() {
		kv := strings.SplitN(scanner.Text(), separator, 2)
		if len(kv) == 2 {
			entries[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}

	return entries, scanner.Err()
}

// Save current preference values to disk.
func (dsk *Disk) Save() error {
	entries, err := dsk.read()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		entries = make(map[string]string)
	}

	for key, p := range dsk.entries {
		entries[key] = p.String()
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	s := strings.Builder{}
	s.WriteString(WarningBoilerPlate)
	s.WriteString("\n")
	for _, key := range keys {
		s.WriteString(fmt.Sprintf("%s%s%s\n", key, separator, entries[key]))
	}

	return os.WriteFile(dsk.path, []byte(s.String()), 0600)
}

// Load preference values from disk. If the file does not exist and saveOnFail
// is true then the current values are saved, creating the file.
//
// Values on the command line stack (see PushCommandLineStack()) take
// priority over values in the file.
func (dsk *Disk) Load(saveOnFail bool) error {
	entries, err := dsk.read()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		if saveOnFail {
			if err := dsk.Save(); err != nil {
				return err
			}
		}
		entries = make(map[string]string)
	}

	for key, p := range dsk.entries {
		if v, ok := GetCommandLinePref(key); ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", key, err)
			}
			continue
		}
		if v, ok := entries[key]; ok {
			if err := p.Set(v); err != nil {
				return fmt.Errorf("prefs: %s: %w", key, err)
			}
		}
	}

	return nil
}
