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

package dbgmem

import (
	"github.com/gopher86/gopher86/curated"
	"github.com/gopher86/gopher86/hardware/cpu"
	"github.com/gopher86/gopher86/hardware/memory/bus"
	"github.com/gopher86/gopher86/hardware/memory/memorymap"
	"github.com/gopher86/gopher86/symbols"
)

// Error patterns raised by this package. All of them are recoverable; the
// caller chooses whether to abort a command or to continue with a best-effort
// address.
const (
	InvalidAddress = "invalid address: %v"
	UnmappedMemory = "unmapped memory: %v"
)

// DbgMem is the debugger's front-end to the emulated machine's memory. It
// translates debugger addresses into linear and physical addresses and
// performs limit-checked reads and writes on behalf of every other debugger
// component.
type DbgMem struct {
	CPU cpu.CPU
	Mem bus.Memory
	Sym *symbols.Symbols
}

// ResolveLinear translates the address into the linear address space and
// caches the result in the Address. An already valid cache is returned as is;
// translation of an unchanged address is idempotent.
//
// The write argument selects the access check to apply and width is the
// number of bytes the caller intends to touch.
func (dm *DbgMem) ResolveLinear(a *Address, write bool, width int) (uint32, error) {
	if lin, ok := a.Linear(); ok {
		return lin, nil
	}

	switch a.Space {
	case memorymap.SpaceLinear, memorymap.SpacePhysical:
		a.linear = a.Offset
		a.hasLinear = true
		return a.linear, nil
	}

	if !a.HasSelector {
		return memorymap.AddrInvalid, curated.Errorf(InvalidAddress, a)
	}

	seg, ok := dm.segmentFor(*a).info()
	if !ok {
		return memorymap.AddrInvalid, curated.Errorf(InvalidAddress, a)
	}

	if !limitCheck(seg, a.Offset, width) {
		return memorymap.AddrInvalid, curated.Errorf(InvalidAddress, a)
	}

	a.linear = seg.Base + a.Offset
	a.hasLinear = true
	return a.linear, nil
}

// Increment advances the address offset by delta bytes, carrying the linear
// cache along when it can. Offset overflow wraps to zero, mirroring the
// hardware wraparound, and drops the cache. An increment beyond the segment
// limit also drops the cache; the next ResolveLinear() reports the failure.
func (dm *DbgMem) Increment(a *Address, delta uint32) {
	off := a.Offset + delta

	// wraparound check respects the address-size attribute
	wrapped := false
	if a.AddressSize32 || !a.Space.Segmented() {
		wrapped = off < a.Offset
	} else {
		if off > 0xffff {
			wrapped = true
		}
	}

	if wrapped {
		a.Offset = 0
		a.InvalidateLinear()
		if !a.Space.Segmented() {
			a.linear = 0
		}
		return
	}

	a.Offset = off

	if !a.Space.Segmented() {
		a.linear = off
		return
	}

	if a.hasLinear {
		seg, ok := dm.segmentFor(*a).info()
		if ok && limitCheck(seg, a.Offset, 1) {
			a.linear += delta
		} else {
			a.hasLinear = false
		}
	}
}

// Physical resolves the address all the way to a normalised physical address,
// with the top-of-space alias applied.
func (dm *DbgMem) Physical(a *Address, write bool, width int) (uint32, error) {
	lin, err := dm.ResolveLinear(a, write, width)
	if err != nil {
		return memorymap.AddrInvalid, err
	}
	return memorymap.MapAddress(lin), nil
}

// Peek returns width bytes at the address without triggering any side
// effects.
func (dm *DbgMem) Peek(a *Address, width int) (uint32, error) {
	phys, err := dm.Physical(a, false, width)
	if err != nil {
		return 0, err
	}

	v, ok := dm.Mem.ReadPhysical(phys, width, true)
	if !ok {
		return 0, curated.Errorf(UnmappedMemory, a)
	}
	return v, nil
}

// Poke writes width bytes at the address. Used by patch/edit operations.
func (dm *DbgMem) Poke(a *Address, data uint32, width int) error {
	phys, err := dm.Physical(a, true, width)
	if err != nil {
		return err
	}

	if !dm.Mem.WritePhysical(phys, data, width, true) {
		return curated.Errorf(UnmappedMemory, a)
	}
	return nil
}

// SymbolQuery builds a symbols.Query for the address, resolving the physical
// component if possible. Resolution failures simply leave the physical
// component unset; a query is always returned.
func (dm *DbgMem) SymbolQuery(a Address) symbols.Query {
	q := symbols.Query{
		Selector:    a.Selector,
		HasSelector: a.HasSelector,
		Offset:      a.Offset,
	}
	if phys, err := dm.Physical(&a, false, 1); err == nil {
		q.Physical = phys
		q.HasPhysical = true
	}
	return q
}
