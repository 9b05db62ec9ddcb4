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

// Package disassembly decodes x86 machine code into human readable entries.
//
// The decoder is table driven. The instructions sub-package holds the
// descriptor tables and this package walks them, consuming bytes through the
// dbgmem package so that segment limits and address translation are honoured
// without touching the live CPU.
//
// Decoding is tolerant by design. Undefined opcodes become a placeholder
// entry and instructions that need a later CPU model than the configured one
// are decoded and flagged rather than rejected. A disassembly pointed at
// arbitrary data always produces output.
//
// The usual entry points are Decode() for a single instruction and
// DisassembleRange() or Write() for a run of instructions:
//
//	dsm := disassembly.NewDisassembly(dm, sym, cpu.Model80386)
//	addr := dbgmem.NewSegmented(memorymap.SpaceReal, 0xf000, 0x0100)
//	e, err := dsm.Decode(&addr)
package disassembly
