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

// Package dbgmem is the debugger's front-end to the memory of the emulated
// machine. The Address type carries everything the debugger needs to know
// about a location: segmented or flat, size attributes and the cached linear
// translation. DbgMem performs the translation itself, mirroring the
// addressing modes of the emulated CPU exactly, including segment limit
// semantics and the post-reset top-of-space alias.
package dbgmem
