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

// Package cpu defines the interface between the debugger and the CPU
// execution engine. The debugger never executes instructions itself; it asks
// the CPU to run bursts and observes the results.
package cpu

import (
	"github.com/gopher86/gopher86/hardware/memory/memorymap"
)

// SegInfo describes a segment as the addressing hardware sees it: the flat
// base address, the limit (highest valid offset for expand-up segments,
// lowest invalid offset for expand-down segments) and the default size
// attribute.
type SegInfo struct {
	Base       uint32
	Limit      uint32
	ExpandDown bool
	Size32     bool
}

// CPU is the interface to the execution engine. All functions are called
// synchronously from within the debugger; the implementation must not assume
// it is running on any particular goroutine.
type CPU interface {
	// Model returns the emulated CPU model.
	Model() Model

	// Mode returns the current execution mode of the CPU. One of SpaceReal,
	// SpaceProt or SpaceV86.
	Mode() memorymap.Space

	// Descriptor resolves a selector in the context of the given address
	// space, returning the segment information from the descriptor table (or
	// computed from the selector value in real/v86 mode). The ok return is
	// false if the selector cannot be resolved.
	Descriptor(sel uint16, space memorymap.Space) (SegInfo, bool)

	// LiveSegment returns segment information when the selector is currently
	// loaded into one of the CPU's segment registers. Live segments take
	// precedence over descriptor-table lookups so that addressing after a
	// mode switch reflects what the CPU will actually do.
	LiveSegment(sel uint16) (SegInfo, bool)

	// CS returns the current code segment selector and instruction offset.
	CS() (uint16, uint32)

	// Halted returns true if the CPU is in a halted state. The breakpoint
	// command-script engine uses this to decide whether a script amounts to
	// a stop request.
	Halted() bool

	// RequestHalt asks the CPU to halt at the next instruction boundary.
	RequestHalt()

	// RunBurst executes at most maxInstructions instructions, returning the
	// number actually executed. Execution may end early on a halt or when a
	// breakpoint check reports a stop.
	RunBurst(maxInstructions int) int
}
