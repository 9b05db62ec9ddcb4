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

package debugger

// Category is a bitmask of message categories. Categories gate what the
// debugger reports and, for some combinations, what it watches for. Notably,
// enabling both CatInt and CatHalt makes a bare INT3 opcode halt execution
// even without a breakpoint at its address.
type Category uint32

// The list of message categories.
const (
	CatExec Category = 1 << iota
	CatRead
	CatWrite
	CatInt
	CatHalt
	CatMem
	CatCPU
)

// Enable switches the categories on.
func (dbg *Debugger) Enable(cat Category) {
	dbg.messages |= cat
	dbg.reconfigureHistory()
}

// Disable switches the categories off.
func (dbg *Debugger) Disable(cat Category) {
	dbg.messages &^= cat
	dbg.reconfigureHistory()
}

// Enabled returns true if every one of the categories is enabled.
func (dbg *Debugger) Enabled(cat Category) bool {
	return dbg.messages&cat == cat
}
