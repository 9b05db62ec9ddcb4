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

// Package bus defines the interface between the debugger and the memory/bus
// subsystem of the emulated machine. The debugger owns no memory of its own;
// every byte it inspects or patches moves through these interfaces.
package bus

// AccessKind identifies the type of memory access an installed trap watches
// for.
type AccessKind int

func (k AccessKind) String() string {
	switch k {
	case TrapRead:
		return "read"
	case TrapWrite:
		return "write"
	}
	return "unknown access kind"
}

// The list of valid AccessKind values.
const (
	TrapRead AccessKind = iota
	TrapWrite
)

// Memory is the interface to the emulated machine's bus. Read and Write work
// on physical addresses. The mapped argument indicates whether the access
// should pass through any bus-level remapping (false means raw physical
// access).
//
// Widths of 1, 2 and 4 bytes are supported. The ok return of ReadPhysical is
// false when the address is unmapped; the debugger treats such reads as
// recoverable and substitutes a sentinel value.
type Memory interface {
	ReadPhysical(addr uint32, width int, mapped bool) (uint32, bool)
	WritePhysical(addr uint32, data uint32, width int, mapped bool) bool
}

// Trapper is implemented by buses that can notify the debugger of individual
// memory accesses. InstallTrap and RemoveTrap bracket the lifetime of a
// read/write breakpoint; the bus calls back into the debugger's CheckRead or
// CheckWrite when a trapped address is touched.
type Trapper interface {
	InstallTrap(kind AccessKind, addr uint32)
	RemoveTrap(kind AccessKind, addr uint32)
}

// Labeller is implemented by buses that can name addresses at the hardware
// level (ROM headers, memory mapped device registers, etc). The symbol table
// falls back to this lookup when none of its groups cover an address. An
// empty string means no label.
type Labeller interface {
	Label(addr uint32) string
}
