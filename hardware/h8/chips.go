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

package h8

import (
	"sort"
	"strings"

	"github.com/jetsetilly/h8core/curated"
)

var chips = map[string]Variant{
	"H8/325": {
		ISA:  ISA300,
		Mode: Normal,
	},
	"H8/3002": {
		ISA:      ISA300H,
		Mode:     Advanced24,
		UIAsMask: true,
	},
	"H8/3003": {
		ISA:      ISA300H,
		Mode:     Advanced24,
		UIAsMask: true,
	},
	"H8/3006": {
		ISA:      ISA300H,
		Mode:     Advanced20,
		UIAsMask: true,
	},
	"H8/3008": {
		ISA:      ISA300H,
		Mode:     Advanced24,
		UIAsMask: true,
	},
	"H8S/2320": {
		ISA:      ISA2000,
		Mode:     Advanced24,
		HasEXR:   true,
		HasTrace: true,
		UIAsMask: true,
	},
	"H8S/2655": {
		ISA:      ISA2600,
		Mode:     Advanced24,
		HasEXR:   true,
		HasTrace: true,
		HasMAC:   true,
		UIAsMask: true,
	},
}

// ChipNames returns the names of all chip presets, sorted.
func ChipNames() []string {
	n := make([]string, 0, len(chips))
	for k := range chips {
		n = append(n, k)
	}
	sort.Strings(n)
	return n
}

// Chip returns the variant for the named chip. The mode argument can be used
// to change the address mode of chips that support more than one. An empty
// string leaves the mode as the preset.
func Chip(name string, mode string) (Variant, error) {
	v, ok := chips[strings.ToUpper(name)]
	if !ok {
		return Variant{}, curated.Errorf(VariantError, "unknown chip: "+name)
	}
	v.Name = strings.ToUpper(name)

	switch strings.ToLower(mode) {
	case "":
	case "normal":
		v.Mode = Normal
	case "a20":
		v.Mode = Advanced20
	case "a24":
		v.Mode = Advanced24
	default:
		return Variant{}, curated.Errorf(VariantError, "unknown address mode: "+mode)
	}

	return v, v.validate()
}
