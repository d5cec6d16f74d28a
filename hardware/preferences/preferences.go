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

// Package preferences collates the preference values used by the H8 core.
package preferences

import (
	"fmt"
	"strings"

	"github.com/jetsetilly/h8core/prefs"
	"github.com/jetsetilly/h8core/resources"
)

// DefaultIllegalSentinel is the value the cycle budget is set to when an
// illegal instruction is executed.
const DefaultIllegalSentinel = -10000000

// Preferences defines and collates all the preference values used by the H8
// core.
type Preferences struct {
	dsk *prefs.Disk

	// name of the chip preset. see h8.ChipNames() for the list of names
	Variant prefs.String

	// address mode override. one of "", "normal", "a20" or "a24". the empty
	// string uses the mode of the chip preset
	Mode prefs.String

	// interrupt control mode at reset. one of "ccr", "ccrui" or "exr"
	InterruptMode prefs.String

	// the MACS switch of the H8S/2600. when set the MAC instruction saturates
	// to 32 bits
	MACSaturating prefs.Bool

	// value the cycle budget is set to on an illegal instruction. must be
	// negative
	IllegalSentinel prefs.Int

	// log every illegal instruction. repeated entries are folded by the
	// logger
	LogIllegal prefs.Bool
}

func (p *Preferences) String() string {
	if p.dsk == nil {
		return "preferences are not backed by disk"
	}
	return p.dsk.String()
}

// NewPreferences is the preferred method of initialisation for the
// Preferences type. Values are loaded from the preferences file, which is
// created if it does not exist.
func NewPreferences() (*Preferences, error) {
	p := DefaultPreferences()

	pth, err := resources.JoinPath(prefs.DefaultPrefsFile)
	if err != nil {
		return nil, err
	}
	return p, p.attach(pth)
}

// NewPreferencesFromFile is like NewPreferences() but uses the named file
// rather than the file in the resource directory.
func NewPreferencesFromFile(pth string) (*Preferences, error) {
	p := DefaultPreferences()
	return p, p.attach(pth)
}

// DefaultPreferences returns an instance of Preferences with default values
// that is not backed by a file. Load() and Save() will fail.
func DefaultPreferences() *Preferences {
	p := &Preferences{}
	p.SetDefaults()

	p.IllegalSentinel.SetHookPost(func(v prefs.Value) error {
		if v.(int) >= 0 {
			return fmt.Errorf("illegal sentinel must be negative")
		}
		return nil
	})
	p.InterruptMode.SetHookPost(func(v prefs.Value) error {
		switch strings.ToLower(v.(string)) {
		case "ccr", "ccrui", "exr":
			return nil
		}
		return fmt.Errorf("unknown interrupt mode: %s", v)
	})

	return p
}

func (p *Preferences) attach(pth string) error {
	var err error

	p.dsk, err = prefs.NewDisk(pth)
	if err != nil {
		return err
	}
	err = p.dsk.Add("h8.variant", &p.Variant)
	if err != nil {
		return err
	}
	err = p.dsk.Add("h8.mode", &p.Mode)
	if err != nil {
		return err
	}
	err = p.dsk.Add("h8.interruptMode", &p.InterruptMode)
	if err != nil {
		return err
	}
	err = p.dsk.Add("h8.macSaturating", &p.MACSaturating)
	if err != nil {
		return err
	}
	err = p.dsk.Add("h8.illegalSentinel", &p.IllegalSentinel)
	if err != nil {
		return err
	}
	err = p.dsk.Add("h8.logIllegal", &p.LogIllegal)
	if err != nil {
		return err
	}
	return p.dsk.Load(true)
}

// SetDefaults reverts all settings to default values.
func (p *Preferences) SetDefaults() {
	p.Variant.Set("H8S/2655")
	p.Mode.Set("")
	p.InterruptMode.Set("ccr")
	p.MACSaturating.Set(false)
	p.IllegalSentinel.Set(DefaultIllegalSentinel)
	p.LogIllegal.Set(true)
}

// Load current H8 preferences from disk.
func (p *Preferences) Load() error {
	if p.dsk == nil {
		return fmt.Errorf("preferences: not backed by disk")
	}
	return p.dsk.Load(false)
}

// Save current H8 preferences to disk.
func (p *Preferences) Save() error {
	if p.dsk == nil {
		return fmt.Errorf("preferences: not backed by disk")
	}
	return p.dsk.Save()
}
