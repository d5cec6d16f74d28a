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

// Package savestate is an ordered registry of named fields that can be
// encoded to and decoded from a byte buffer.
//
// The registry does not own the fields. It holds pointers to them and reads
// or writes through those pointers on Encode() and Decode(). The order in
// which fields are added is the layout of the encoded buffer.
//
// Decode() is all or nothing. If the buffer does not match the registry then
// none of the fields are changed.
package savestate

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/jetsetilly/h8core/curated"
)

// Sentinal error patterns.
const (
	// the buffer does not match the layout of the registry
	Mismatch = "savestate: %v"

	// the buffer is truncated or otherwise unreadable
	Corrupt = "savestate: corrupt: %v"
)

// magic identifies an encoded buffer.
const magic = "H8SS"

type kind uint8

const (
	kindUint8 kind = iota
	kindUint16
	kindUint32
	kindUint64
	kindInt8
	kindInt16
	kindInt32
	kindInt64
	kindInt
	kindBool
	kindSliceUint8
	kindSliceUint16
)

func (k kind) String() string {
	return [...]string{"uint8", "uint16", "uint32", "uint64", "int8", "int16",
		"int32", "int64", "int", "bool", "[]uint8", "[]uint16"}[k]
}

type field struct {
	name string
	kind kind
	ptr  any
}

// Registry is an ordered list of named fields.
type Registry struct {
	fields []field
	names  map[string]bool
}

// NewRegistry is the preferred method of initialisation for the Registry type.
func NewRegistry() *Registry {
	return &Registry{
		names: make(map[string]bool),
	}
}

// Add a field to the registry. The ptr argument must be a pointer to one of
// the fixed width integer types, a pointer to int or bool, or a slice of
// uint8 or uint16. Slices should be slices of fixed sized arrays, the length
// of the slice is part of the layout.
//
// Adding an unsupported type or a duplicate name is a programming error and
// will cause a panic.
func (r *Registry) Add(name string, ptr any) {
	if r.names[name] {
		panic(fmt.Sprintf("savestate: duplicate field name: %s", name))
	}

	var k kind
	switch ptr.(type) {
	case *uint8:
		k = kindUint8
	case *uint16:
		k = kindUint16
	case *uint32:
		k = kindUint32
	case *uint64:
		k = kindUint64
	case *int8:
		k = kindInt8
	case *int16:
		k = kindInt16
	case *int32:
		k = kindInt32
	case *int64:
		k = kindInt64
	case *int:
		k = kindInt
	case *bool:
		k = kindBool
	case []uint8:
		k = kindSliceUint8
	case []uint16:
		k = kindSliceUint16
	default:
		panic(fmt.Sprintf("savestate: unsupported type for %s: %T", name, ptr))
	}

	r.names[name] = true
	r.fields = append(r.fields, field{name: name, kind: k, ptr: ptr})
}

// Names returns the field names in layout order.
func (r *Registry) Names() []string {
	n := make([]string, len(r.fields))
	for i, f := range r.fields {
		n[i] = f.name
	}
	return n
}

// Len returns the number of fields in the registry.
func (r *Registry) Len() int {
	return len(r.fields)
}

func writeString(b *bytes.Buffer, s string) {
	b.WriteByte(uint8(len(s)))
	b.WriteString(s)
}

// Encode the current value of every field. The ident argument is written
// into the header and must match on Decode().
func (r *Registry) Encode(ident string) ([]byte, error) {
	if len(ident) > 255 {
		return nil, curated.Errorf(Mismatch, "ident too long")
	}

	b := &bytes.Buffer{}
	b.WriteString(magic)
	writeString(b, ident)
	_ = binary.Write(b, binary.BigEndian, uint16(len(r.fields)))

	for _, f := range r.fields {
		writeString(b, f.name)
		b.WriteByte(uint8(f.kind))

		var v any
		switch f.kind {
		case kindInt:
			v = int64(*f.ptr.(*int))
		case kindSliceUint8:
			s := f.ptr.([]uint8)
			_ = binary.Write(b, binary.BigEndian, uint16(len(s)))
			v = s
		case kindSliceUint16:
			s := f.ptr.([]uint16)
			_ = binary.Write(b, binary.BigEndian, uint16(len(s)))
			v = s
		default:
			v = f.ptr
		}

		if err := binary.Write(b, binary.BigEndian, v); err != nil {
			return nil, curated.Errorf(Mismatch, fmt.Errorf("%s: %w", f.name, err))
		}
	}

	return b.Bytes(), nil
}

func readString(rd *bytes.Reader) (string, error) {
	n, err := rd.ReadByte()
	if err != nil {
		return "", err
	}
	s := make([]byte, n)
	if _, err := io.ReadFull(rd, s); err != nil {
		return "", err
	}
	return string(s), nil
}

// Decode the buffer into the fields of the registry. The layout of the buffer
// must match the registry exactly.
func (r *Registry) Decode(ident string, data []byte) error {
	rd := bytes.NewReader(data)

	m := make([]byte, len(magic))
	if _, err := io.ReadFull(rd, m); err != nil {
		return curated.Errorf(Corrupt, err)
	}
	if string(m) != magic {
		return curated.Errorf(Mismatch, "not a savestate")
	}

	id, err := readString(rd)
	if err != nil {
		return curated.Errorf(Corrupt, err)
	}
	if id != ident {
		return curated.Errorf(Mismatch, fmt.Sprintf("savestate is for %s not %s", id, ident))
	}

	var count uint16
	if err := binary.Read(rd, binary.BigEndian, &count); err != nil {
		return curated.Errorf(Corrupt, err)
	}
	if int(count) != len(r.fields) {
		return curated.Errorf(Mismatch, fmt.Sprintf("savestate has %d fields, expected %d", count, len(r.fields)))
	}

	// values are applied only once the entire buffer has been read
	apply := make([]func(), 0, len(r.fields))

	for _, f := range r.fields {
		name, err := readString(rd)
		if err != nil {
			return curated.Errorf(Corrupt, err)
		}
		if name != f.name {
			return curated.Errorf(Mismatch, fmt.Sprintf("expected field %s but found %s", f.name, name))
		}
		k, err := rd.ReadByte()
		if err != nil {
			return curated.Errorf(Corrupt, err)
		}
		if kind(k) != f.kind {
			return curated.Errorf(Mismatch, fmt.Sprintf("%s: expected %s", f.name, f.kind))
		}

		fn, err := decodeField(rd, f)
		if err != nil {
			return curated.Errorf(Corrupt, fmt.Errorf("%s: %w", f.name, err))
		}
		apply = append(apply, fn)
	}

	if rd.Len() != 0 {
		return curated.Errorf(Corrupt, fmt.Sprintf("%d trailing bytes", rd.Len()))
	}

	for _, fn := range apply {
		fn()
	}

	return nil
}

func decodeValue[T any](rd io.Reader, ptr *T) (func(), error) {
	var v T
	if err := binary.Read(rd, binary.BigEndian, &v); err != nil {
		return nil, err
	}
	return func() { *ptr = v }, nil
}

func decodeSlice[T uint8 | uint16](rd io.Reader, s []T) (func(), error) {
	var n uint16
	if err := binary.Read(rd, binary.BigEndian, &n); err != nil {
		return nil, err
	}
	if int(n) != len(s) {
		return nil, fmt.Errorf("expected length %d but found %d", len(s), n)
	}
	v := make([]T, n)
	if err := binary.Read(rd, binary.BigEndian, v); err != nil {
		return nil, err
	}
	return func() { copy(s, v) }, nil
}

func decodeField(rd io.Reader, f field) (func(), error) {
	switch f.kind {
	case kindUint8:
		return decodeValue(rd, f.ptr.(*uint8))
	case kindUint16:
		return decodeValue(rd, f.ptr.(*uint16))
	case kindUint32:
		return decodeValue(rd, f.ptr.(*uint32))
	case kindUint64:
		return decodeValue(rd, f.ptr.(*uint64))
	case kindInt8:
		return decodeValue(rd, f.ptr.(*int8))
	case kindInt16:
		return decodeValue(rd, f.ptr.(*int16))
	case kindInt32:
		return decodeValue(rd, f.ptr.(*int32))
	case kindInt64:
		return decodeValue(rd, f.ptr.(*int64))
	case kindInt:
		var v int64
		if err := binary.Read(rd, binary.BigEndian, &v); err != nil {
			return nil, err
		}
		ptr := f.ptr.(*int)
		return func() { *ptr = int(v) }, nil
	case kindBool:
		return decodeValue(rd, f.ptr.(*bool))
	case kindSliceUint8:
		return decodeSlice(rd, f.ptr.([]uint8))
	case kindSliceUint16:
		return decodeSlice(rd, f.ptr.([]uint16))
	}
	return nil, fmt.Errorf("unknown kind %d", f.kind)
}
