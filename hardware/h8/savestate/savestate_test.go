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

package savestate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware/h8/savestate"
)

type fixture struct {
	a uint8
	b uint16
	c uint32
	d uint64
	e int32
	f int64
	g int
	h bool
	i [4]uint16
	j [3]uint8
}

func (f *fixture) registry() *savestate.Registry {
	r := savestate.NewRegistry()
	r.Add("a", &f.a)
	r.Add("b", &f.b)
	r.Add("c", &f.c)
	r.Add("d", &f.d)
	r.Add("e", &f.e)
	r.Add("f", &f.f)
	r.Add("g", &f.g)
	r.Add("h", &f.h)
	r.Add("i", f.i[:])
	r.Add("j", f.j[:])
	return r
}

func TestRoundTrip(t *testing.T) {
	src := fixture{
		a: 0x12, b: 0x3456, c: 0x789abcde, d: 0x0123456789abcdef,
		e: -5, f: -10000000, g: -42, h: true,
		i: [4]uint16{1, 2, 3, 0xffff},
		j: [3]uint8{9, 8, 7},
	}
	data, err := src.registry().Encode("H8S/2655")
	require.NoError(t, err)
	assert.Equal(t, "H8SS", string(data[:4]))

	var dst fixture
	require.NoError(t, dst.registry().Decode("H8S/2655", data))
	assert.Equal(t, src, dst)
}

func TestNames(t *testing.T) {
	var f fixture
	r := f.registry()
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}, r.Names())
	assert.Equal(t, 10, r.Len())
}

func TestMismatch(t *testing.T) {
	src := fixture{a: 1, g: 2}
	data, err := src.registry().Encode("H8/3003")
	require.NoError(t, err)

	// wrong ident
	dst := fixture{a: 100}
	err = dst.registry().Decode("H8S/2655", data)
	assert.True(t, curated.Is(err, savestate.Mismatch))
	assert.Equal(t, uint8(100), dst.a)

	// different layout
	r := savestate.NewRegistry()
	r.Add("a", &dst.a)
	err = r.Decode("H8/3003", data)
	assert.True(t, curated.Is(err, savestate.Mismatch))

	// field renamed
	r = savestate.NewRegistry()
	var x fixture
	r.Add("a", &x.a)
	r.Add("B", &x.b)
	r.Add("c", &x.c)
	r.Add("d", &x.d)
	r.Add("e", &x.e)
	r.Add("f", &x.f)
	r.Add("g", &x.g)
	r.Add("h", &x.h)
	r.Add("i", x.i[:])
	r.Add("j", x.j[:])
	err = r.Decode("H8/3003", data)
	assert.True(t, curated.Is(err, savestate.Mismatch))

	// not a savestate at all
	err = dst.registry().Decode("H8/3003", []byte("nothing to see here"))
	assert.True(t, curated.Is(err, savestate.Mismatch))
}

func TestTruncated(t *testing.T) {
	src := fixture{a: 1, b: 2}
	data, err := src.registry().Encode("H8/325")
	require.NoError(t, err)

	dst := fixture{a: 55, b: 66}
	err = dst.registry().Decode("H8/325", data[:len(data)-3])
	assert.True(t, curated.Is(err, savestate.Corrupt))

	// nothing is applied from a partial buffer
	assert.Equal(t, uint8(55), dst.a)
	assert.Equal(t, uint16(66), dst.b)

	err = dst.registry().Decode("H8/325", append(data, 0))
	assert.True(t, curated.Is(err, savestate.Corrupt))
}

func TestBadRegistration(t *testing.T) {
	r := savestate.NewRegistry()
	var a uint8
	r.Add("a", &a)
	assert.Panics(t, func() { r.Add("a", &a) })
	assert.Panics(t, func() { r.Add("s", "string") })
}
