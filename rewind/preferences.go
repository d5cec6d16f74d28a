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

package rewind

import (
	"fmt"

	"github.com/jetsetilly/h8core/prefs"
	"github.com/jetsetilly/h8core/resources"
)

// Preferences for the rewind system.
type Preferences struct {
	dsk *prefs.Disk

	// the maximum number of entries to store before the earliest entries are
	// forgotten
	MaxEntries prefs.Int

	// how often, in cycles, a snapshot of the board is taken. the higher the
	// number, the longer it takes to reach a cycle between two snapshots
	Freq prefs.Int
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return "preferences are not backed by disk"
	}
	return p.dsk.String()
}

// the default maximum number of entries to store.
const maxEntries = 100

// the default number of cycles between snapshots.
const snapshotFreq = 10000

// DefaultPreferences returns an instance of Preferences with default values
// that is not backed by a file.
func DefaultPreferences() *Preferences {
	p := &Preferences{}
	p.SetDefaults()

	p.MaxEntries.SetHookPost(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("rewind: max entries must be at least one")
		}
		return nil
	})
	p.Freq.SetHookPost(func(v prefs.Value) error {
		if v.(int) < 1 {
			return fmt.Errorf("rewind: snapshot frequency must be at least one cycle")
		}
		return nil
	})

	return p
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file in the
// resource directory.
func NewPreferences() (*Preferences, error) {
	p := DefaultPreferences()

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Add("rewind.maxEntries", &p.MaxEntries)
	if err != nil {
		return nil, err
	}
	err = p.dsk.Add("rewind.snapshotFreq", &p.Freq)
	if err != nil {
		return nil, err
	}

	err = p.dsk.Load(true)
	if err != nil {
		return nil, err
	}

	return p, nil
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.MaxEntries.Set(maxEntries)
	p.Freq.Set(snapshotFreq)
}

// Load rewind preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return fmt.Errorf("rewind: preferences not backed by disk")
	}
	return p.dsk.Load(false)
}

// Save current rewind preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return fmt.Errorf("rewind: preferences not backed by disk")
	}
	return p.dsk.Save()
}
