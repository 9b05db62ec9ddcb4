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

import (
	"github.com/gopher86/gopher86/debugger/dbgmem"
	"github.com/gopher86/gopher86/symbols"
)

// SavedBreakpoint is the persistable form of one breakpoint. Temporary
// breakpoints are not persisted.
type SavedBreakpoint struct {
	Kind   BreakpointKind
	Addr   dbgmem.Address
	Script string
}

// SavedState is the persistable state of a debugging session: the three
// breakpoint lists, the symbol groups, and the disassembly/dump cursors.
// Plain field values throughout; framing and storage are the caller's
// concern.
type SavedState struct {
	Breakpoints []SavedBreakpoint
	Groups      []symbols.Group

	DisassemblyCursor dbgmem.Address
	DumpCursor        dbgmem.Address
}

// SaveState captures the session state.
func (dbg *Debugger) SaveState() SavedState {
	st := SavedState{
		Groups:            dbg.sym.Groups(),
		DisassemblyCursor: dbg.dsmCursor,
		DumpCursor:        dbg.dumpCursor,
	}

	for _, lst := range []*breakpointList{&dbg.exec, &dbg.read, &dbg.write} {
		for _, bp := range lst.bps {
			if bp.addr.TempBreak {
				continue
			}
			sv := SavedBreakpoint{Kind: lst.kind, Addr: bp.addr}
			if bp.script != nil {
				sv.Script = bp.script.source
			}
			st.Breakpoints = append(st.Breakpoints, sv)
		}
	}

	return st
}

// RestoreState replaces the session state with a previously saved one.
// Existing breakpoints are cleared first.
func (dbg *Debugger) RestoreState(st SavedState) error {
	dbg.ClearBreakpoints()

	for _, grp := range st.Groups {
		dbg.sym.AddGroup(grp)
	}

	for _, sv := range st.Breakpoints {
		if err := dbg.AddBreakpoint(sv.Kind, sv.Addr, false, sv.Script); err != nil {
			return err
		}
	}

	dbg.dsmCursor = st.DisassemblyCursor
	dbg.dumpCursor = st.DumpCursor

	return nil
}
