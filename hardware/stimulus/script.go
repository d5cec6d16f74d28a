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

package stimulus

import (
	"fmt"
	"sort"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware/h8"
	"github.com/jetsetilly/h8core/logger"
)

// ScriptError is the pattern for errors found while running a script.
const ScriptError = "stimulus: script: %v"

// the vector used by nmi() when no vector is given.
const defaultNMIVector = 7

// script collects the events and configuration while the script runs.
type script struct {
	events []Event

	dma   [h8.NumDMAChannels]*h8.DMAChannel
	dtc   [h8.NumVectors]bool
	level [h8.NumVectors]int
}

func checkVector(fn string, vector int) error {
	if vector < 0 || vector >= h8.NumVectors {
		return fmt.Errorf("%s: vector out of range: %d", fn, vector)
	}
	return nil
}

func checkLevel(fn string, level int) error {
	if level < 0 || level > 7 {
		return fmt.Errorf("%s: level out of range: %d", fn, level)
	}
	return nil
}

func (s *script) irq(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var at uint64
	var vector, level int
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "at", &at, "vector", &vector, "level?", &level)
	if err != nil {
		return nil, err
	}
	if err := checkVector(fn.Name(), vector); err != nil {
		return nil, err
	}
	if err := checkLevel(fn.Name(), level); err != nil {
		return nil, err
	}
	s.events = append(s.events, Event{Cycle: at, Kind: IRQ, Vector: vector, Level: level})
	return starlark.None, nil
}

// vectorEvent returns a builtin for the events that take a cycle and a
// vector. A negative default indicates that the vector must be given.
func (s *script) vectorEvent(kind Kind, def int) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var at uint64
		vector := def

		var err error
		if def < 0 {
			err = starlark.UnpackArgs(fn.Name(), args, kwargs, "at", &at, "vector", &vector)
		} else {
			err = starlark.UnpackArgs(fn.Name(), args, kwargs, "at", &at, "vector?", &vector)
		}
		if err != nil {
			return nil, err
		}
		if err := checkVector(fn.Name(), vector); err != nil {
			return nil, err
		}
		s.events = append(s.events, Event{Cycle: at, Kind: kind, Vector: vector})
		return starlark.None, nil
	}
}

func (s *script) reset(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var at uint64
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "at", &at)
	if err != nil {
		return nil, err
	}
	s.events = append(s.events, Event{Cycle: at, Kind: Reset})
	return starlark.None, nil
}

func (s *script) poke(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var at uint64
	var address uint32
	var value int
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "at", &at, "address", &address, "value", &value)
	if err != nil {
		return nil, err
	}
	if value < 0 || value > 0xff {
		return nil, fmt.Errorf("%s: value is not a byte: %d", fn.Name(), value)
	}
	s.events = append(s.events, Event{Cycle: at, Kind: Poke, Address: address, Value: uint8(value)})
	return starlark.None, nil
}

func (s *script) dmaChannel(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var id int
	var source, dest, count uint32
	var sourceInc, destInc int32
	var word, eat bool
	vector := -1

	err := starlark.UnpackArgs(fn.Name(), args, kwargs,
		"id", &id, "source", &source, "dest", &dest, "count", &count,
		"vector?", &vector, "word?", &word, "source_inc?", &sourceInc,
		"dest_inc?", &destInc, "eat?", &eat)
	if err != nil {
		return nil, err
	}
	if id < 0 || id >= h8.NumDMAChannels {
		return nil, fmt.Errorf("%s: no channel %d", fn.Name(), id)
	}
	if vector != -1 {
		if err := checkVector(fn.Name(), vector); err != nil {
			return nil, err
		}
	}

	ch := &h8.DMAChannel{
		Flags:         h8.DMAActive,
		TriggerVector: int16(vector),
		Source:        source,
		Dest:          dest,
		SourceInc:     sourceInc,
		DestInc:       destInc,
		Count:         count,
	}
	if vector != -1 {
		ch.Flags |= h8.DMASuspended
	}
	if word {
		ch.Flags |= h8.DMAWord
	}
	if eat {
		ch.Flags |= h8.DMAEatInterrupt
	}
	s.dma[id] = ch

	return starlark.None, nil
}

func (s *script) dtcEnable(_ *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var vector, level int
	err := starlark.UnpackArgs(fn.Name(), args, kwargs, "vector", &vector, "level?", &level)
	if err != nil {
		return nil, err
	}
	if err := checkVector(fn.Name(), vector); err != nil {
		return nil, err
	}
	if err := checkLevel(fn.Name(), level); err != nil {
		return nil, err
	}
	s.dtc[vector] = true
	s.level[vector] = level
	return starlark.None, nil
}

func (s *script) predeclared() starlark.StringDict {
	return starlark.StringDict{
		"irq":         starlark.NewBuiltin("irq", s.irq),
		"nmi":         starlark.NewBuiltin("nmi", s.vectorEvent(NMI, defaultNMIVector)),
		"cancel":      starlark.NewBuiltin("cancel", s.vectorEvent(Cancel, -1)),
		"dma":         starlark.NewBuiltin("dma", s.vectorEvent(DMA, -1)),
		"dtc":         starlark.NewBuiltin("dtc", s.vectorEvent(DTC, -1)),
		"reset":       starlark.NewBuiltin("reset", s.reset),
		"poke":        starlark.NewBuiltin("poke", s.poke),
		"dma_channel": starlark.NewBuiltin("dma_channel", s.dmaChannel),
		"dtc_enable":  starlark.NewBuiltin("dtc_enable", s.dtcEnable),

		"TRACE_VECTOR": starlark.MakeInt(h8.TraceVector),
		"TRAP_VECTOR":  starlark.MakeInt(h8.TrapVector),
		"NMI_VECTOR":   starlark.MakeInt(defaultNMIVector),
	}
}

// Load runs the script and returns a Stimulus with the events it schedules.
// The src argument is the script source and can be anything accepted by
// starlark.ExecFile(). If src is nil the script is read from the named file.
func Load(filename string, src any) (*Stimulus, error) {
	s := &script{}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			logger.Log(logger.Allow, "stimulus", msg)
		},
	}
	opts := &syntax.FileOptions{
		While:           true,
		TopLevelControl: true,
	}

	_, err := starlark.ExecFileOptions(opts, thread, filename, src, s.predeclared())
	if err != nil {
		return nil, curated.Errorf(ScriptError, err)
	}

	// events scheduled for the same cycle are delivered in the order they
	// were scheduled
	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].Cycle < s.events[j].Cycle
	})

	return newStimulus(s), nil
}
