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

package hardware

import (
	"fmt"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware/h8"
	"github.com/jetsetilly/h8core/hardware/memory"
	"github.com/jetsetilly/h8core/hardware/preferences"
	"github.com/jetsetilly/h8core/hardware/stimulus"
	"github.com/jetsetilly/h8core/logger"
)

// Sentinal error patterns.
const (
	BoardError = "board: %v"
	HaltError  = "board: halted: illegal instruction at %#06x"
)

// DefaultQuantum is the number of cycles given to the core by each call to
// H8.Run() made by the board.
const DefaultQuantum = 1000

// Board is the main container for the emulated components.
type Board struct {
	Prefs *preferences.Preferences

	CPU *h8.H8
	Mem *memory.Memory

	// the stimulus is optional and can be nil
	Stimulus *stimulus.Stimulus

	quantum int64
}

// NewBoard creates a new board and everything associated with the hardware.
// The variant is taken from the preferences. The size of memory is the size
// of the variant's address space.
//
// The prefs argument can be nil in which case the default preferences are
// used.
func NewBoard(prefs *preferences.Preferences) (*Board, error) {
	if prefs == nil {
		prefs = preferences.DefaultPreferences()
	}

	v, err := h8.Chip(prefs.Variant.String(), prefs.Mode.String())
	if err != nil {
		return nil, curated.Errorf(BoardError, err)
	}

	b := &Board{
		Prefs:   prefs,
		quantum: DefaultQuantum,
	}

	b.Mem, err = memory.NewMemory(int(v.AddressMask()) + 1)
	if err != nil {
		return nil, curated.Errorf(BoardError, err)
	}

	b.CPU, err = h8.NewH8(v, b.Mem, prefs)
	if err != nil {
		return nil, curated.Errorf(BoardError, err)
	}
	b.Mem.AttachClock(b.CPU)

	return b, nil
}

func (b *Board) String() string {
	return fmt.Sprintf("%s: %s", b.CPU.Variant(), b.CPU)
}

// LoadImage copies the program image to memory at address zero. The image
// should include the vector table.
func (b *Board) LoadImage(data []uint8) error {
	if err := b.Mem.Load(0, data); err != nil {
		return curated.Errorf(BoardError, err)
	}
	return nil
}

// AttachStimulus attaches the stimulus to the core as a peripheral, DTC
// controller and DMA controller. Only one stimulus can be attached.
func (b *Board) AttachStimulus(stm *stimulus.Stimulus) error {
	if b.Stimulus != nil {
		return curated.Errorf(BoardError, "stimulus already attached")
	}
	if err := stm.Attach(b.CPU, b.Mem); err != nil {
		return curated.Errorf(BoardError, err)
	}
	b.CPU.AttachPeripheral(stm)
	b.CPU.AttachDTC(stm)
	b.CPU.AttachDMAController(stm)
	b.Stimulus = stm
	return nil
}

// SetQuantum sets the number of cycles given to the core by each call to
// H8.Run().
func (b *Board) SetQuantum(quantum int64) error {
	if quantum <= 0 {
		return curated.Errorf(BoardError, fmt.Sprintf("quantum must be positive: %d", quantum))
	}
	b.quantum = quantum
	return nil
}

// Quantum returns the current quantum.
func (b *Board) Quantum() int64 {
	return b.quantum
}

// SetLogPermission changes the permission used for logging by every
// component on the board.
func (b *Board) SetLogPermission(perm logger.Permission) {
	b.CPU.SetLogPermission(perm)
	if b.Stimulus != nil {
		b.Stimulus.SetLogPermission(perm)
	}
}

// Cycles returns the current value of the total cycle clock.
func (b *Board) Cycles() uint64 {
	return b.CPU.TotalCycles()
}
