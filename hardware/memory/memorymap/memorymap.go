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

package memorymap

import "fmt"

// Space describes how the offset part of an address is to be interpreted.
type Space int

func (s Space) String() string {
	switch s {
	case SpaceNone:
		return "none"
	case SpaceReal:
		return "real"
	case SpaceProt:
		return "protected"
	case SpaceV86:
		return "v86"
	case SpaceLinear:
		return "linear"
	case SpacePhysical:
		return "physical"
	}
	return "unknown address space"
}

// The list of valid address spaces. SpaceNone is used for addresses that have
// not yet been bound to a space.
const (
	SpaceNone Space = iota
	SpaceReal
	SpaceProt
	SpaceV86
	SpaceLinear
	SpacePhysical
)

// Segmented returns true if addresses in the space are formed from a selector
// and an offset. Linear and physical addresses carry no selector.
func (s Space) Segmented() bool {
	switch s {
	case SpaceReal, SpaceProt, SpaceV86:
		return true
	}
	return false
}

// AddrInvalid is the sentinel value returned by address translation when a
// linear or physical address could not be resolved. It is never a valid
// translation result.
const AddrInvalid = uint32(0xffffffff)

// The top 64KB of the physical address space is a hardware alias of the top
// 64KB of the first megabyte. Immediately after reset the CPU executes from
// segment 0xffff with the address lines above bit 19 held high; any address
// in the alias window must be folded down before it is compared with an
// address formed after the first inter-segment jump.
const (
	OriginHighAlias = uint32(0xffff0000)
	AliasMask       = uint32(0xfff00000)
)

// MapAddress folds an address in the top-of-space alias window onto the top
// of the first megabyte. Addresses outside the window are returned unchanged.
// Generally, a physical address should be passed through this function before
// it is compared with another physical address.
func MapAddress(addr uint32) uint32 {
	if addr >= OriginHighAlias {
		return addr &^ AliasMask
	}
	return addr
}

// FormatSegmented returns the normalised selector:offset presentation of a
// segmented address. The number of digits in the offset part depends on
// whether the address-size attribute is 32bit.
func FormatSegmented(sel uint16, off uint32, addrSize32 bool) string {
	if addrSize32 {
		return fmt.Sprintf("%04X:%08X", sel, off)
	}
	return fmt.Sprintf("%04X:%04X", sel, off&0xffff)
}
