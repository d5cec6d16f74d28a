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
	"strings"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware/h8/registers"
	"github.com/jetsetilly/h8core/logger"
)

// InterruptMode is the interrupt control mode. It decides how the priority
// level of an interrupt is compared with the interrupt mask.
type InterruptMode int

// List of interrupt control modes.
const (
	// interrupts are masked by the I bit of the CCR
	ModeCCR InterruptMode = iota

	// level 0 interrupts are masked by the I bit and level 1 interrupts are
	// masked only if both I and UI are set
	ModeCCRUI

	// interrupts with a level at or below the EXR mask are masked. EXR
	// variants only
	ModeEXR
)

func (m InterruptMode) String() string {
	switch m {
	case ModeCCR:
		return "ccr"
	case ModeCCRUI:
		return "ccrui"
	case ModeEXR:
		return "exr"
	}
	return "unknown"
}

// ParseInterruptMode converts the name of an interrupt mode, as returned by
// String(), into an InterruptMode.
func ParseInterruptMode(s string) (InterruptMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ccr", "":
		return ModeCCR, nil
	case "ccrui":
		return ModeCCRUI, nil
	case "exr":
		return ModeEXR, nil
	}
	return ModeCCR, curated.Errorf(InterruptModeError, "unknown mode: "+s)
}

// NMILevel is the priority level of the non-maskable interrupt.
const NMILevel = 8

// SetInterruptMode changes the interrupt control mode.
func (c *H8) SetInterruptMode(mode InterruptMode) error {
	switch mode {
	case ModeCCR:
	case ModeCCRUI:
		if !c.variant.UIAsMask {
			return curated.Errorf(InterruptModeError, c.variant.Name+" cannot use UI as an interrupt mask")
		}
	case ModeEXR:
		if !c.variant.HasEXR {
			return curated.Errorf(InterruptModeError, c.variant.Name+" does not have the EXR register")
		}
	default:
		return curated.Errorf(InterruptModeError, "unknown mode")
	}
	c.st.Mode = mode
	return nil
}

// InterruptMode returns the current interrupt control mode.
func (c *H8) InterruptMode() InterruptMode {
	return c.st.Mode
}

// RequestInterrupt latches an interrupt request. The request remains pending
// until it is taken or cancelled. Level is ignored if nmi is true.
func (c *H8) RequestInterrupt(vector int, level int, nmi bool) {
	if vector < 0 || vector >= NumVectors {
		logger.Logf(c.perm, "h8", "interrupt vector out of range: %d", vector)
		return
	}
	if nmi {
		level = NMILevel
	} else if level < 0 || level > 7 {
		logger.Logf(c.perm, "h8", "interrupt level out of range for vector %d: %d", vector, level)
		level = min(max(level, 0), 7)
	}
	if c.st.Pending[vector] == 0 {
		c.st.PendingCount++
	}
	c.st.Pending[vector] = uint8(level + 1)
}

// CancelInterrupt removes a pending request. This is how a level triggered
// source that is no longer asserted is modelled.
func (c *H8) CancelInterrupt(vector int) {
	if vector < 0 || vector >= NumVectors {
		return
	}
	if c.st.Pending[vector] != 0 {
		c.st.Pending[vector] = 0
		c.st.PendingCount--
	}
}

// InterruptPending returns true if there is a pending request for the vector.
func (c *H8) InterruptPending(vector int) bool {
	if vector < 0 || vector >= NumVectors {
		return false
	}
	return c.st.Pending[vector] != 0
}

// Raise delivers an interrupt source in the way an interrupt controller
// would. The vector is offered to DMA and DTC first and is only latched as an
// interrupt request if neither consumes it.
func (c *H8) Raise(vector int, level int) {
	if c.TriggerDMA(vector) {
		return
	}
	c.RequestInterrupt(vector, level, false)
}

// masked returns true if an interrupt of the level would not be accepted.
func (c *H8) masked(level int) bool {
	if level == NMILevel {
		return false
	}
	switch c.st.Mode {
	case ModeCCRUI:
		if level >= 1 {
			return c.st.CCR.Is(registers.FlagI | registers.FlagUI)
		}
		return c.st.CCR.Is(registers.FlagI)
	case ModeEXR:
		return level <= c.st.EXR.Level()
	}
	return c.st.CCR.Is(registers.FlagI)
}

// selectInterrupt returns the best unmasked pending interrupt. NMI wins over
// everything, then the highest level, then the lowest vector. The returned
// vector is -1 if there is nothing to take.
func (c *H8) selectInterrupt() (int, int) {
	if c.st.PendingCount == 0 {
		return -1, 0
	}

	vector := -1
	level := -1
	for v, p := range c.st.Pending {
		if p == 0 {
			continue
		}
		l := int(p) - 1
		if l > level && !c.masked(l) {
			vector = v
			level = l
		}
	}
	return vector, level
}

// takeInterrupt removes the request from the pending table and records it as
// the interrupt being taken.
func (c *H8) takeInterrupt(vector int, level int) {
	c.CancelInterrupt(vector)
	c.st.TakenVector = vector
	c.st.TakenLevel = level
	c.st.Sleeping = false
}

// the mask changes made when an interrupt is accepted.
func (c *H8) irqSetup() {
	c.st.CCR |= registers.FlagI
	switch c.st.Mode {
	case ModeCCRUI:
		if c.st.TakenLevel >= 1 {
			c.st.CCR |= registers.FlagUI
		}
	case ModeEXR:
		c.st.EXR = c.st.EXR.WithLevel(min(c.st.TakenLevel, 7))
	}
	if c.variant.HasEXR {
		c.st.EXR &^= registers.FlagT
	}
}

func (c *H8) traceSetup() {
	c.st.CCR |= registers.FlagI
	c.st.EXR &^= registers.FlagT
}

func (c *H8) trapaSetup() {
	c.st.CCR |= registers.FlagI
	if c.st.Mode == ModeCCRUI {
		c.st.CCR |= registers.FlagUI
	}
	if c.exrInStack() {
		c.st.EXR &^= registers.FlagT
	}
}
