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
	"github.com/gopher86/gopher86/hardware/cpu"
)

// segment is the debugger's stand-in for a segment register. There are two
// implementations: liveSegment reflects a segment register currently loaded
// in the CPU, syntheticSegment is built from a descriptor-table lookup for
// selectors the CPU is not currently using.
//
// Live segments take precedence. After a mode switch the descriptor tables
// may describe something quite different from what the CPU is actually
// addressing with and the debugger must reflect reality.
type segment interface {
	info() (cpu.SegInfo, bool)
}

type liveSegment struct {
	cpu cpu.CPU
	sel uint16
}

func (s liveSegment) info() (cpu.SegInfo, bool) {
	return s.cpu.LiveSegment(s.sel)
}

type syntheticSegment struct {
	seg cpu.SegInfo
	ok  bool
}

func (s syntheticSegment) info() (cpu.SegInfo, bool) {
	return s.seg, s.ok
}

// segmentFor selects the segment implementation for an address. The live
// segment is chosen whenever the CPU has the selector loaded.
func (dm *DbgMem) segmentFor(a Address) segment {
	if _, ok := dm.CPU.LiveSegment(a.Selector); ok {
		return liveSegment{cpu: dm.CPU, sel: a.Selector}
	}

	seg, ok := dm.CPU.Descriptor(a.Selector, a.Space)
	return syntheticSegment{seg: seg, ok: ok}
}

// limitCheck applies the expand-up/expand-down limit semantics of the segment
// to an access of width bytes at the given offset.
func limitCheck(seg cpu.SegInfo, off uint32, width int) bool {
	end := off + uint32(width) - 1
	if end < off {
		// access wraps the top of the offset space
		return false
	}

	if seg.ExpandDown {
		// valid offsets are above the limit
		top := uint32(0xffff)
		if seg.Size32 {
			top = 0xffffffff
		}
		return off > seg.Limit && end <= top
	}

	return end <= seg.Limit
}
