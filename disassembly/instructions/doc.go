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

// Package instructions holds the opcode descriptor tables that drive the
// disassembler. The tables are flat, data-driven and append-only: indices
// map one-to-one to opcode byte values, with secondary tables for the
// two-byte escape, the FPU escapes and the instruction groups.
//
// The only model-dependent difference is opcode 0x0F, handled by selecting
// between two immutable variants of the primary table rather than by
// patching a shared table.
package instructions
