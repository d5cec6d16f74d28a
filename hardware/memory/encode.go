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

package memory

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jetsetilly/h8core/curated"
)

// DecodeError is returned by Decode() for data that is not an encoded
// memory.
const DecodeError = "memory: decode: %v"

const encodeMagic = "H8MM"

// Encode writes the size of memory and every allocated page to the writer.
// Pages that have never been written to are not included.
func (mem *Memory) Encode(w io.Writer) error {
	var n uint32
	for _, p := range mem.pages {
		if p != nil {
			n++
		}
	}

	if _, err := io.WriteString(w, encodeMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, [2]uint32{uint32(mem.Size()), n}); err != nil {
		return err
	}
	for i, p := range mem.pages {
		if p == nil {
			continue
		}
		if err := binary.Write(w, binary.BigEndian, uint32(i)); err != nil {
			return err
		}
		if _, err := w.Write(p); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads memory written by Encode(). The returned memory has no clock
// or tracer and is intended to be plumbed into live memory with Plumb().
func Decode(r io.Reader) (*Memory, error) {
	m := make([]byte, len(encodeMagic))
	if _, err := io.ReadFull(r, m); err != nil {
		return nil, curated.Errorf(DecodeError, err)
	}
	if string(m) != encodeMagic {
		return nil, curated.Errorf(DecodeError, "not an encoded memory")
	}

	var hdr [2]uint32
	if err := binary.Read(r, binary.BigEndian, &hdr); err != nil {
		return nil, curated.Errorf(DecodeError, err)
	}

	mem, err := NewMemory(int(hdr[0]))
	if err != nil {
		return nil, curated.Errorf(DecodeError, err)
	}
	if int(hdr[1]) > len(mem.pages) {
		return nil, curated.Errorf(DecodeError, fmt.Sprintf("too many pages (%d)", hdr[1]))
	}

	for range hdr[1] {
		var idx uint32
		if err := binary.Read(r, binary.BigEndian, &idx); err != nil {
			return nil, curated.Errorf(DecodeError, err)
		}
		if int(idx) >= len(mem.pages) || mem.pages[idx] != nil {
			return nil, curated.Errorf(DecodeError, fmt.Sprintf("bad page index (%d)", idx))
		}
		p := make([]uint8, pageSize)
		if _, err := io.ReadFull(r, p); err != nil {
			return nil, curated.Errorf(DecodeError, err)
		}
		mem.pages[idx] = p
	}

	return mem, nil
}
