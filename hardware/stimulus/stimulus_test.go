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

package stimulus_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jetsetilly/h8core/curated"
	"github.com/jetsetilly/h8core/hardware/h8"
	"github.com/jetsetilly/h8core/hardware/memory"
	"github.com/jetsetilly/h8core/hardware/stimulus"
)

type fakeCPU struct {
	calls []string
	dma   map[int]h8.DMAChannel
	dtc   bool
}

func (c *fakeCPU) record(s string, args ...any) {
	c.calls = append(c.calls, fmt.Sprintf(s, args...))
}

func (c *fakeCPU) Raise(vector int, level int) {
	c.record("raise %d %d", vector, level)
}

func (c *fakeCPU) RequestInterrupt(vector int, level int, nmi bool) {
	c.record("request %d %d %v", vector, level, nmi)
}

func (c *fakeCPU) CancelInterrupt(vector int) {
	c.record("cancel %d", vector)
}

func (c *fakeCPU) TriggerDMA(vector int) bool {
	c.record("dma %d", vector)
	return false
}

func (c *fakeCPU) TriggerDTC(vector int) bool {
	c.record("dtc %d", vector)
	return c.dtc
}

func (c *fakeCPU) RequestReset() {
	c.record("reset")
}

func (c *fakeCPU) ConfigureDMA(id int, ch h8.DMAChannel) error {
	if c.dma == nil {
		c.dma = make(map[int]h8.DMAChannel)
	}
	c.dma[id] = ch
	return nil
}

const script = `
reset(500)
irq(100, 20, level=3)
nmi(100)
poke(200, 0x1234, 0xab)
for v in range(2):
    dma(300, 30 + v)
cancel(300, 20)
dtc(400, 40)
dma_channel(1, source=0x5000, dest=0x6000, count=4, vector=30, source_inc=1, eat=True)
dma_channel(2, 0x7000, 0x8000, 2, word=True, dest_inc=2)
dtc_enable(40, level=2)
print("loaded")
`

func TestLoad(t *testing.T) {
	stm, err := stimulus.Load("test.star", script)
	require.NoError(t, err)

	var got []string
	for _, e := range stm.Events() {
		got = append(got, e.String())
	}
	assert.Equal(t, []string{
		"100: irq 20 level 3",
		"100: nmi 7",
		"200: poke 001234 ab",
		"300: dma 30",
		"300: dma 31",
		"300: cancel 20",
		"400: dtc 40",
		"500: reset",
	}, got)

	cpu := &fakeCPU{}
	require.NoError(t, stm.Attach(cpu, nil))
	assert.Equal(t, h8.DMAChannel{
		Flags:         h8.DMAActive | h8.DMASuspended | h8.DMAEatInterrupt,
		TriggerVector: 30,
		Source:        0x5000,
		Dest:          0x6000,
		SourceInc:     1,
		Count:         4,
	}, cpu.dma[1])
	assert.Equal(t, h8.DMAChannel{
		Flags:         h8.DMAActive | h8.DMAWord,
		TriggerVector: -1,
		Source:        0x7000,
		Dest:          0x8000,
		DestInc:       2,
		Count:         2,
	}, cpu.dma[2])
	assert.Len(t, cpu.dma, 2)

	assert.True(t, stm.DTCEnabled(40))
	assert.False(t, stm.DTCEnabled(41))
	assert.False(t, stm.DTCEnabled(h8.NumVectors))
}

func TestScriptErrors(t *testing.T) {
	for _, src := range []string{
		"irq(100, 256)",
		"irq(100, 20, level=8)",
		"nmi(100, -1)",
		"poke(100, 0x1000, 0x100)",
		"dma_channel(8, 0, 0, 1)",
		"dtc_enable(40, level=9)",
		"reset()",
		"unknown(1)",
		"irq(100",
	} {
		_, err := stimulus.Load("test.star", src)
		require.Error(t, err, src)
		assert.True(t, curated.Is(err, stimulus.ScriptError), src)
	}
}

func TestInternalUpdate(t *testing.T) {
	stm, err := stimulus.Load("test.star", script)
	require.NoError(t, err)

	cpu := &fakeCPU{}
	mem, err := memory.NewMemory(0x10000)
	require.NoError(t, err)
	require.NoError(t, stm.Attach(cpu, mem))

	assert.Equal(t, uint64(100), stm.InternalUpdate(0))
	assert.Empty(t, cpu.calls)

	assert.Equal(t, uint64(200), stm.InternalUpdate(150))
	assert.Equal(t, []string{"raise 20 3", "request 7 0 true"}, cpu.calls)

	// several events can fall due at once
	cpu.calls = nil
	assert.Equal(t, uint64(400), stm.InternalUpdate(300))
	assert.Equal(t, []string{"dma 30", "dma 31", "cancel 20"}, cpu.calls)
	v, _ := mem.Peek(0x1234)
	assert.Equal(t, uint8(0xab), v)

	cpu.calls = nil
	assert.Equal(t, uint64(0), stm.InternalUpdate(1000))
	assert.Equal(t, []string{"dtc 40", "reset"}, cpu.calls)
	assert.Equal(t, uint64(8), stm.Fired())
}

func TestDTCDone(t *testing.T) {
	stm, err := stimulus.Load("test.star", "dtc_enable(40, level=2)")
	require.NoError(t, err)
	cpu := &fakeCPU{}
	require.NoError(t, stm.Attach(cpu, nil))

	// transfer with count remaining
	stm.DTCDone(40, false)
	assert.True(t, stm.DTCEnabled(40))
	assert.Empty(t, cpu.calls)

	// count exhausted. the vector is raised as an interrupt and the DTC no
	// longer services it
	stm.DTCDone(40, true)
	assert.False(t, stm.DTCEnabled(40))
	assert.Equal(t, []string{"request 40 2 false"}, cpu.calls)
}

func TestSnapshot(t *testing.T) {
	stm, err := stimulus.Load("test.star", script)
	require.NoError(t, err)
	cpu := &fakeCPU{}
	require.NoError(t, stm.Attach(cpu, nil))

	stm.InternalUpdate(150)
	snap := stm.Snapshot()
	stm.InternalUpdate(1000)
	stm.DTCDone(40, true)

	stm.Plumb(snap)
	assert.Equal(t, uint64(2), stm.Fired())
	assert.True(t, stm.DTCEnabled(40))

	cpu.calls = nil
	assert.Equal(t, uint64(300), stm.InternalUpdate(200))
	assert.Empty(t, cpu.calls)
}

func TestSaveRestore(t *testing.T) {
	stm, err := stimulus.Load("test.star", script)
	require.NoError(t, err)
	require.NoError(t, stm.Attach(&fakeCPU{}, nil))

	stm.InternalUpdate(150)
	stm.DTCDone(40, true)
	data, err := stm.Save()
	require.NoError(t, err)

	other, err := stimulus.Load("test.star", script)
	require.NoError(t, err)
	require.NoError(t, other.Restore(data))
	assert.Equal(t, uint64(2), other.Fired())
	assert.False(t, other.DTCEnabled(40))

	// a different script has a different number of events
	short, err := stimulus.Load("short.star", "reset(10)\n")
	require.NoError(t, err)
	assert.Error(t, short.Restore(data))
	assert.Zero(t, short.Fired())
}

// the stimulus delivers an interrupt to a running core.
func TestWithCore(t *testing.T) {
	mem, err := memory.NewMemory(0x10000)
	require.NoError(t, err)

	v, err := h8.Chip("H8/325", "")
	require.NoError(t, err)
	c, err := h8.NewH8(v, mem, nil)
	require.NoError(t, err)
	mem.AttachClock(c)

	require.NoError(t, mem.Load(0x0000, []uint8{0x10, 0x00})) // reset vector
	require.NoError(t, mem.Load(0x0028, []uint8{0x30, 0x00})) // vector 20
	require.NoError(t, mem.Load(0x1000, []uint8{
		0x06, 0x7f, // ANDC #0x7f,CCR
		0x40, 0xfe, // BRA .
	}))
	require.NoError(t, mem.Load(0x3000, []uint8{0x40, 0xfe}))
	require.NoError(t, c.SetRegister("sp", 0x8000))

	stm, err := stimulus.Load("test.star", "irq(100, 20)")
	require.NoError(t, err)
	require.NoError(t, stm.Attach(c, mem))
	c.AttachPeripheral(stm)

	c.Run(90)
	pc, err := c.Register("pc")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1002), pc)

	c.Run(100)
	pc, err = c.Register("pc")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x3000), pc)
	assert.Equal(t, uint64(1), c.Stats().Interrupts)
}
