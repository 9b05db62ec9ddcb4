// This file is part of Gopher86.
//
// Gopher86 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher86 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher86.  If not, see <https://www.gnu.org/licenses/>.

package dbgmem_test

import (
	"testing"

	"github.com/gopher86/gopher86/curated"
	"github.com/gopher86/gopher86/debugger/dbgmem"
	"github.com/gopher86/gopher86/hardware/cpu"
	"github.com/gopher86/gopher86/hardware/memory/memorymap"
	"github.com/gopher86/gopher86/test"
)

// mockCPU answers segment queries from two fixed maps. live wins over
// descriptors, as it does in the real interface.
type mockCPU struct {
	model  cpu.Model
	mode   memorymap.Space
	live   map[uint16]cpu.SegInfo
	descs  map[uint16]cpu.SegInfo
	halted bool
	csSel  uint16
	csIP   uint32
}

func (m *mockCPU) Model() cpu.Model        { return m.model }
func (m *mockCPU) Mode() memorymap.Space   { return m.mode }
func (m *mockCPU) CS() (uint16, uint32)    { return m.csSel, m.csIP }
func (m *mockCPU) Halted() bool            { return m.halted }
func (m *mockCPU) RequestHalt()            { m.halted = true }
func (m *mockCPU) RunBurst(max int) int    { return 0 }

func (m *mockCPU) LiveSegment(sel uint16) (cpu.SegInfo, bool) {
	s, ok := m.live[sel]
	return s, ok
}

func (m *mockCPU) Descriptor(sel uint16, space memorymap.Space) (cpu.SegInfo, bool) {
	s, ok := m.descs[sel]
	return s, ok
}

// mockMem is a sparse physical memory.
type mockMem struct {
	data map[uint32]byte
}

func newMockMem() *mockMem {
	return &mockMem{data: make(map[uint32]byte)}
}

func (m *mockMem) poke(addr uint32, bytes ...byte) {
	for i, b := range bytes {
		m.data[addr+uint32(i)] = b
	}
}

func (m *mockMem) ReadPhysical(addr uint32, width int, mapped bool) (uint32, bool) {
	var v uint32
	for i := 0; i < width; i++ {
		b, ok := m.data[addr+uint32(i)]
		if !ok {
			return 0, false
		}
		v |= uint32(b) << (8 * i)
	}
	return v, true
}

func (m *mockMem) WritePhysical(addr uint32, data uint32, width int, mapped bool) bool {
	for i := 0; i < width; i++ {
		m.data[addr+uint32(i)] = byte(data >> (8 * i))
	}
	return true
}

func realModeMachine() (*mockCPU, *mockMem, *dbgmem.DbgMem) {
	c := &mockCPU{
		model: cpu.Model80386,
		mode:  memorymap.SpaceReal,
		live: map[uint16]cpu.SegInfo{
			0xf000: {Base: 0xf0000, Limit: 0xffff},
		},
		descs: map[uint16]cpu.SegInfo{
			0x1000: {Base: 0x10000, Limit: 0xffff},
		},
		csSel: 0xf000,
	}
	mem := newMockMem()
	dm := &dbgmem.DbgMem{CPU: c, Mem: mem}
	return c, mem, dm
}

func TestResolveLinear(t *testing.T) {
	c, _, dm := realModeMachine()

	a := dbgmem.NewSegmented(memorymap.SpaceReal, 0xf000, 0x0100)
	lin, err := dm.ResolveLinear(&a, false, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, lin, uint32(0xf0100))

	// idempotent while the addressing context is unchanged, even if the
	// underlying segment moves
	c.live[0xf000] = cpu.SegInfo{Base: 0x20000, Limit: 0xffff}
	lin, err = dm.ResolveLinear(&a, false, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, lin, uint32(0xf0100))

	// invalidation picks up the new base
	a.InvalidateLinear()
	lin, err = dm.ResolveLinear(&a, false, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, lin, uint32(0x20100))
}

func TestResolveLinearSyntheticSegment(t *testing.T) {
	_, _, dm := realModeMachine()

	// the selector is not live so the descriptor tables answer
	a := dbgmem.NewSegmented(memorymap.SpaceProt, 0x1000, 0x0020)
	lin, err := dm.ResolveLinear(&a, false, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, lin, uint32(0x10020))

	// a selector nobody knows is an invalid address
	b := dbgmem.NewSegmented(memorymap.SpaceProt, 0xdead, 0x0000)
	_, err = dm.ResolveLinear(&b, false, 1)
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, dbgmem.InvalidAddress))
}

func TestResolveLinearLimitCheck(t *testing.T) {
	_, _, dm := realModeMachine()

	// beyond the segment limit
	a := dbgmem.NewSegmented(memorymap.SpaceProt, 0x1000, 0x10000)
	_, err := dm.ResolveLinear(&a, false, 1)
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, dbgmem.InvalidAddress))

	// the last byte of the segment is fine for a one byte access but not
	// for a word access
	b := dbgmem.NewSegmented(memorymap.SpaceProt, 0x1000, 0xffff)
	_, err = dm.ResolveLinear(&b, false, 1)
	test.ExpectSuccess(t, err)

	b.InvalidateLinear()
	_, err = dm.ResolveLinear(&b, false, 2)
	test.DemandFailure(t, err)
}

func TestLinearAndPhysicalSpaces(t *testing.T) {
	_, _, dm := realModeMachine()

	a := dbgmem.NewLinear(0x000f0100)
	lin, err := dm.ResolveLinear(&a, false, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, lin, uint32(0x000f0100))

	// the top-of-space alias is applied on the way to a physical address
	b := dbgmem.NewLinear(0xffff0100)
	phys, err := dm.Physical(&b, false, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, phys, uint32(0x000f0100))
}

func TestIncrement(t *testing.T) {
	_, _, dm := realModeMachine()

	a := dbgmem.NewSegmented(memorymap.SpaceReal, 0xf000, 0x0100)
	_, err := dm.ResolveLinear(&a, false, 1)
	test.DemandSuccess(t, err)

	// increment carries the cached linear address along
	dm.Increment(&a, 3)
	test.ExpectEquality(t, a.Offset, uint32(0x0103))
	lin, ok := a.Linear()
	test.ExpectSuccess(t, ok)
	test.ExpectEquality(t, lin, uint32(0xf0103))
}

func TestIncrementWraparound(t *testing.T) {
	_, _, dm := realModeMachine()

	// a 16-bit offset wraps to zero and the cache is dropped
	a := dbgmem.NewSegmented(memorymap.SpaceReal, 0xf000, 0xffff)
	_, err := dm.ResolveLinear(&a, false, 1)
	test.DemandSuccess(t, err)

	dm.Increment(&a, 1)
	test.ExpectEquality(t, a.Offset, uint32(0))
	_, ok := a.Linear()
	test.ExpectFailure(t, ok)

	// resolution works from the wrapped offset
	lin, err := dm.ResolveLinear(&a, false, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, lin, uint32(0xf0000))
}

func TestPeekPoke(t *testing.T) {
	_, mem, dm := realModeMachine()
	mem.poke(0xf0100, 0x34, 0x12)

	a := dbgmem.NewSegmented(memorymap.SpaceReal, 0xf000, 0x0100)
	v, err := dm.Peek(&a, 2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x1234))

	err = dm.Poke(&a, 0x5678, 2)
	test.DemandSuccess(t, err)
	v, err = dm.Peek(&a, 2)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, v, uint32(0x5678))

	// unmapped memory is a recoverable error
	b := dbgmem.NewSegmented(memorymap.SpaceReal, 0xf000, 0x0200)
	_, err = dm.Peek(&b, 1)
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, dbgmem.UnmappedMemory))
}
