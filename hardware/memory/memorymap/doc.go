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

// Package memorymap describes the address spaces of the emulated machine and
// the normalisation of physical addresses. The MapAddress() function handles
// the post-reset aliasing of the top 64KB of the address space; a physical
// address should be passed through it before being compared with any other
// physical address (breakpoint matching relies on this).
package memorymap
