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

package registers

import "strings"

// CCR is the condition code register.
type CCR uint8

// List of CCR bits.
const (
	FlagI  CCR = 0x80
	FlagUI CCR = 0x40
	FlagH  CCR = 0x20
	FlagU  CCR = 0x10
	FlagN  CCR = 0x08
	FlagZ  CCR = 0x04
	FlagV  CCR = 0x02
	FlagC  CCR = 0x01

	// the arithmetic flags
	FlagsNZVC = FlagN | FlagZ | FlagV | FlagC
)

// Is returns true if all bits in flag are set.
func (ccr CCR) Is(flag CCR) bool {
	return ccr&flag == flag
}

// Set or clear the flag according to the condition.
func (ccr CCR) Set(flag CCR, cond bool) CCR {
	if cond {
		return ccr | flag
	}
	return ccr &^ flag
}

// Carry returns the carry flag as a value suitable for arithmetic.
func (ccr CCR) Carry() uint32 {
	return uint32(ccr & FlagC)
}

// Label returns the canonical name for the register.
func (ccr CCR) Label() string {
	return "CCR"
}

func (ccr CCR) String() string {
	s := strings.Builder{}
	flags := "IUHUNZVC"
	for i := 0; i < 8; i++ {
		if ccr&(0x80>>i) != 0 {
			s.WriteByte(flags[i])
		} else {
			s.WriteByte(flags[i] + ('a' - 'A'))
		}
	}
	return s.String()
}

// Condition evaluates one of the sixteen branch conditions encoded in the low
// nibble of a Bcc opcode.
func (ccr CCR) Condition(cond uint8) bool {
	c := ccr.Is(FlagC)
	z := ccr.Is(FlagZ)
	n := ccr.Is(FlagN)
	v := ccr.Is(FlagV)

	switch cond & 0x0f {
	case 0x0: // BRA
		return true
	case 0x1: // BRN
		return false
	case 0x2: // BHI
		return !c && !z
	case 0x3: // BLS
		return c || z
	case 0x4: // BCC
		return !c
	case 0x5: // BCS
		return c
	case 0x6: // BNE
		return !z
	case 0x7: // BEQ
		return z
	case 0x8: // BVC
		return !v
	case 0x9: // BVS
		return v
	case 0xa: // BPL
		return !n
	case 0xb: // BMI
		return n
	case 0xc: // BGE
		return n == v
	case 0xd: // BLT
		return n != v
	case 0xe: // BGT
		return !z && n == v
	}

	// BLE
	return z || n != v
}

// ConditionMnemonic returns the branch mnemonic for the condition.
func ConditionMnemonic(cond uint8) string {
	return [16]string{
		"BRA", "BRN", "BHI", "BLS", "BCC", "BCS", "BNE", "BEQ",
		"BVC", "BVS", "BPL", "BMI", "BGE", "BLT", "BGT", "BLE",
	}[cond&0x0f]
}
