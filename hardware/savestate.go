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
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware/memory"
)

// SaveError is the pattern for errors returned by Save() and Restore().
const SaveError = "board: savestate: %v"

const saveMagic = "H8BD"

// Save writes the state of the CPU, the stimulus and the contents of memory
// to the writer.
func (b *Board) Save(w io.Writer) error {
	cpu, err := b.CPU.Save()
	if err != nil {
		return curated.Errorf(SaveError, err)
	}

	var stm []byte
	if b.Stimulus != nil {
		stm, err = b.Stimulus.Save()
		if err != nil {
			return curated.Errorf(SaveError, err)
		}
	}

	buf := &bytes.Buffer{}
	buf.WriteString(saveMagic)
	for _, s := range [][]byte{cpu, stm} {
		_ = binary.Write(buf, binary.BigEndian, uint32(len(s)))
		buf.Write(s)
	}
	if err := b.Mem.Encode(buf); err != nil {
		return curated.Errorf(SaveError, err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return curated.Errorf(SaveError, err)
	}
	return nil
}

func readSection(rd io.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(rd, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	s := make([]byte, n)
	if _, err := io.ReadFull(rd, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Restore the board from data written by Save(). The state must have been
// saved by a board with the same variant and the same stimulus script. If
// the data is not valid then the board is not changed.
func (b *Board) Restore(r io.Reader) error {
	m := make([]byte, len(saveMagic))
	if _, err := io.ReadFull(r, m); err != nil {
		return curated.Errorf(SaveError, err)
	}
	if string(m) != saveMagic {
		return curated.Errorf(SaveError, "not a board savestate")
	}

	cpu, err := readSection(r)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}
	stm, err := readSection(r)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}

	mem, err := memory.Decode(r)
	if err != nil {
		return curated.Errorf(SaveError, err)
	}
	if mem.Size() != b.Mem.Size() {
		return curated.Errorf(SaveError, fmt.Sprintf("memory size is %d not %d", mem.Size(), b.Mem.Size()))
	}

	switch {
	case len(stm) > 0 && b.Stimulus == nil:
		return curated.Errorf(SaveError, "savestate requires a stimulus")
	case len(stm) == 0 && b.Stimulus != nil:
		return curated.Errorf(SaveError, "savestate has no stimulus")
	}

	if b.Stimulus != nil {
		prev := b.Stimulus.Snapshot()
		if err := b.Stimulus.Restore(stm); err != nil {
			return curated.Errorf(SaveError, err)
		}
		if err := b.CPU.Restore(cpu); err != nil {
			b.Stimulus.Plumb(prev)
			return curated.Errorf(SaveError, err)
		}
	} else if err := b.CPU.Restore(cpu); err != nil {
		return curated.Errorf(SaveError, err)
	}

	return b.Mem.Plumb(mem)
}
