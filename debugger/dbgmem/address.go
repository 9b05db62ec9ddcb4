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
	"fmt"

	"github.com/gopher86/gopher86/hardware/memory/memorymap"
)

// Address is the debugger's view of a location in the emulated machine. It is
// a cheap value type: every debugger operation (disassembly cursor,
// breakpoint target, symbol resolution) works on its own copy.
//
// For segmented spaces the address is Selector:Offset and the linear field is
// a cache filled in by DbgMem.ResolveLinear(). For the linear and physical
// spaces there is no selector and Offset is the address itself.
type Address struct {
	Offset      uint32
	Selector    uint16
	HasSelector bool
	Space       memorymap.Space

	// size attributes in effect at the address. these drive the decoder's
	// interpretation of WORD-class operands and of 16 vs 32 bit ModRM forms
	OperandSize32 bool
	AddressSize32 bool

	// marks an address used as a single-shot breakpoint target
	TempBreak bool

	// number of redundant prefix bytes absorbed while decoding at this
	// address. reset at the start of every decode
	OverrideCount uint8

	// cached linear address. invalidated whenever the addressing context may
	// have changed
	linear    uint32
	hasLinear bool
}

// NewSegmented creates an Address bound to one of the segmented address
// spaces.
func NewSegmented(space memorymap.Space, sel uint16, off uint32) Address {
	return Address{
		Offset:      off,
		Selector:    sel,
		HasSelector: true,
		Space:       space,
	}
}

// NewLinear creates an Address in the linear address space. Linear addresses
// have no selector so the linear cache is always valid.
func NewLinear(addr uint32) Address {
	return Address{
		Offset:        addr,
		Space:         memorymap.SpaceLinear,
		AddressSize32: true,
		OperandSize32: true,
		linear:        addr,
		hasLinear:     true,
	}
}

// NewPhysical creates an Address in the physical address space.
func NewPhysical(addr uint32) Address {
	return Address{
		Offset:        addr,
		Space:         memorymap.SpacePhysical,
		AddressSize32: true,
		OperandSize32: true,
		linear:        addr,
		hasLinear:     true,
	}
}

// Linear returns the cached linear address. The ok return is false if the
// cache is invalid; use DbgMem.ResolveLinear() to fill it.
func (a Address) Linear() (uint32, bool) {
	return a.linear, a.hasLinear
}

// InvalidateLinear drops the cached linear address. Must be called whenever
// the addressing context (mode, segment base) or the offset may have changed
// underneath the address. For the linear and physical spaces, where the
// offset is the address, the cache is re-synced rather than dropped.
func (a *Address) InvalidateLinear() {
	if a.Space.Segmented() {
		a.hasLinear = false
		return
	}
	a.linear = a.Offset
}

// StripSelector converts the address into a linear address, dropping the
// selector component. Used for temporary breakpoints, which must survive an
// intervening addressing-mode change. Requires a valid linear cache; returns
// false without changing the address if there is none.
func (a *Address) StripSelector() bool {
	if !a.hasLinear {
		return false
	}
	a.Offset = a.linear
	a.HasSelector = false
	a.Space = memorymap.SpaceLinear
	return true
}

func (a Address) String() string {
	switch a.Space {
	case memorymap.SpaceLinear:
		return fmt.Sprintf("%%%08X", a.Offset)
	case memorymap.SpacePhysical:
		return fmt.Sprintf("%%%%%08X", a.Offset)
	}
	return memorymap.FormatSegmented(a.Selector, a.Offset, a.AddressSize32)
}
