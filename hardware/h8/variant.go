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
	"fmt"

	"github.com/jetsetilly/h8core/curated"
)

// ISA is the instruction set level of a variant. Each level is a superset of
// the previous level.
type ISA int

// List of instruction set levels.
const (
	ISA300 ISA = iota
	ISA300H
	ISA2000
	ISA2600
)

func (isa ISA) String() string {
	switch isa {
	case ISA300:
		return "H8/300"
	case ISA300H:
		return "H8/300H"
	case ISA2000:
		return "H8S/2000"
	case ISA2600:
		return "H8S/2600"
	}
	return "unknown ISA"
}

// AddressMode is the size of the address space.
type AddressMode int

// List of address modes. Normal mode is a 64KB address space with 16 bit
// vectors and 16 bit stack entries. The advanced modes use 32 bit vectors and
// stack entries and an address space of 20 or 24 bits.
const (
	Normal AddressMode = iota
	Advanced20
	Advanced24
)

func (m AddressMode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Advanced20:
		return "advanced (a20)"
	case Advanced24:
		return "advanced (a24)"
	}
	return "unknown mode"
}

// Variant describes one member of the H8 family.
type Variant struct {
	Name string
	ISA  ISA
	Mode AddressMode

	// H8S cores have the EXR register. the EXR gives a three bit interrupt
	// mask and the trace bit
	HasEXR   bool
	HasTrace bool

	// the H8S/2600 has the MAC register
	HasMAC bool

	// on H8/300H and H8S cores the UI bit of the CCR can be used as a second
	// interrupt mask
	UIAsMask bool
}

func (v Variant) String() string {
	return fmt.Sprintf("%s [%s, %s]", v.Name, v.ISA, v.Mode)
}

// Advanced returns true if the variant is in one of the advanced address
// modes.
func (v Variant) Advanced() bool {
	return v.Mode != Normal
}

// AddressMask returns the mask applied to all bus addresses.
func (v Variant) AddressMask() uint32 {
	switch v.Mode {
	case Advanced20:
		return 0x000fffff
	case Advanced24:
		return 0x00ffffff
	}
	return 0x0000ffff
}

// validate checks that the features of the variant are consistent.
func (v Variant) validate() error {
	if v.ISA < ISA300 || v.ISA > ISA2600 {
		return curated.Errorf(VariantError, fmt.Sprintf("unknown ISA (%d)", v.ISA))
	}
	if v.Mode < Normal || v.Mode > Advanced24 {
		return curated.Errorf(VariantError, fmt.Sprintf("unknown address mode (%d)", v.Mode))
	}
	if v.ISA == ISA300 {
		if v.Advanced() {
			return curated.Errorf(VariantError, "H8/300 does not support advanced mode")
		}
		if v.UIAsMask {
			return curated.Errorf(VariantError, "H8/300 does not support UI as an interrupt mask")
		}
	}
	if v.ISA < ISA2000 && (v.HasEXR || v.HasTrace) {
		return curated.Errorf(VariantError, fmt.Sprintf("%s does not have the EXR register", v.ISA))
	}
	if v.HasTrace && !v.HasEXR {
		return curated.Errorf(VariantError, "trace requires the EXR register")
	}
	if v.HasMAC && v.ISA != ISA2600 {
		return curated.Errorf(VariantError, fmt.Sprintf("%s does not have the MAC register", v.ISA))
	}
	return nil
}
