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
	"fmt"
	"io"

	"github.com/gopher86/gopher86/curated"
	"github.com/gopher86/gopher86/debugger/dbgmem"
	"github.com/gopher86/gopher86/hardware/memory/bus"
	"github.com/gopher86/gopher86/hardware/memory/memorymap"
	"github.com/gopher86/gopher86/logger"
)

// error pattern for the curated package.
const BreakpointConflict = "breakpoint already exists: %v"

// BreakpointKind selects one of the three breakpoint lists.
type BreakpointKind int

// The list of valid BreakpointKind values.
const (
	BreakExec BreakpointKind = iota
	BreakRead
	BreakWrite
)

func (k BreakpointKind) String() string {
	switch k {
	case BreakExec:
		return "exec"
	case BreakRead:
		return "read"
	case BreakWrite:
		return "write"
	}
	return "unknown breakpoint kind"
}

// the single-shot nature of a breakpoint is carried on the address itself,
// through the TempBreak flag, rather than duplicated here.
type breakpoint struct {
	addr   dbgmem.Address
	script *commandScript
	hits   int
}

func (bp breakpoint) String() string {
	s := bp.addr.String()
	if bp.addr.TempBreak {
		s = fmt.Sprintf("%s (temporary)", s)
	}
	if bp.script != nil {
		s = fmt.Sprintf("%s {%s}", s, bp.script.source)
	}
	if bp.hits > 0 {
		s = fmt.Sprintf("%s [%d hits]", s, bp.hits)
	}
	return s
}

// breakpointList is one of the three kinds of breakpoint list. The label
// names the list in user-facing output.
type breakpointList struct {
	label string
	kind  BreakpointKind
	bps   []*breakpoint
}

func (dbg *Debugger) list(kind BreakpointKind) *breakpointList {
	switch kind {
	case BreakRead:
		return &dbg.read
	case BreakWrite:
		return &dbg.write
	}
	return &dbg.exec
}

// breakpointLinear recomputes the breakpoint's current linear address. The
// cached translation is never trusted for selector-based breakpoints because
// segment bases can move underneath them.
func (dbg *Debugger) breakpointLinear(bp *breakpoint) (uint32, bool) {
	a := bp.addr
	if a.HasSelector {
		a.InvalidateLinear()
	}
	lin, err := dbg.dm.ResolveLinear(&a, false, 1)
	if err != nil {
		return 0, false
	}
	return memorymap.MapAddress(lin), true
}

// sameTarget returns true if the two addresses identify the same breakpoint
// target. Addresses that resolve compare by aliased linear address, so a
// breakpoint at a physical address and one at its top-of-space alias are the
// same target.
func (dbg *Debugger) sameTarget(a dbgmem.Address, b dbgmem.Address) bool {
	dbg.suppress++
	defer func() { dbg.suppress-- }()

	la, erra := dbg.dm.ResolveLinear(&a, false, 1)
	lb, errb := dbg.dm.ResolveLinear(&b, false, 1)
	if erra == nil && errb == nil {
		return memorymap.MapAddress(la) == memorymap.MapAddress(lb)
	}

	return a.Space == b.Space && a.HasSelector == b.HasSelector &&
		a.Selector == b.Selector && a.Offset == b.Offset
}

// AddBreakpoint adds a breakpoint to the list selected by kind. An optional
// command script, parsed here, runs whenever the breakpoint matches.
//
// Adding a non-temporary breakpoint at an existing target is rejected unless
// a script is supplied, in which case the existing breakpoint's script is
// replaced.
//
// A temporary breakpoint drops its selector component once a linear address
// is known, so that it survives an addressing-mode change before it is hit.
func (dbg *Debugger) AddBreakpoint(kind BreakpointKind, addr dbgmem.Address, temp bool, script string) error {
	lst := dbg.list(kind)

	var scr *commandScript
	if script != "" {
		var err error
		scr, err = parseScript(script)
		if err != nil {
			return err
		}
	}

	if temp {
		dbg.suppress++
		if _, err := dbg.dm.ResolveLinear(&addr, false, 1); err == nil {
			addr.StripSelector()
		}
		dbg.suppress--
		addr.TempBreak = true
	} else {
		for _, bp := range lst.bps {
			if !bp.addr.TempBreak && dbg.sameTarget(bp.addr, addr) {
				if scr == nil {
					return curated.Errorf(BreakpointConflict, addr)
				}
				bp.script = scr
				logger.Logf(logger.Allow, "breakpoint", "%s breakpoint at %s re-set", lst.label, addr)
				return nil
			}
		}
	}

	bp := &breakpoint{addr: addr, script: scr}
	lst.bps = append(lst.bps, bp)

	if kind != BreakExec && dbg.trapper != nil {
		if lin, ok := dbg.breakpointLinear(bp); ok {
			dbg.trapper.InstallTrap(trapKind(kind), lin)
		}
	}

	dbg.reconfigureHistory()

	if !temp {
		dbg.printStyled(dbg.styles.notify, "%s breakpoint added at %s", lst.label, addr)
	}

	return nil
}

// RemoveBreakpoint removes the breakpoint at the target address from the
// list selected by kind. Returns false if no breakpoint matched.
func (dbg *Debugger) RemoveBreakpoint(kind BreakpointKind, addr dbgmem.Address) bool {
	lst := dbg.list(kind)
	for _, bp := range lst.bps {
		if dbg.sameTarget(bp.addr, addr) {
			dbg.removeEntry(lst, bp)
			return true
		}
	}
	return false
}

// removeEntry unhooks and drops the breakpoint. History reconfiguration and
// user notification only happen for non-temporary breakpoints.
func (dbg *Debugger) removeEntry(lst *breakpointList, bp *breakpoint) {
	for i := range lst.bps {
		if lst.bps[i] == bp {
			lst.bps = append(lst.bps[:i], lst.bps[i+1:]...)
			break
		}
	}

	if lst.kind != BreakExec && dbg.trapper != nil {
		if lin, ok := dbg.breakpointLinear(bp); ok {
			dbg.trapper.RemoveTrap(trapKind(lst.kind), lin)
		}
	}

	if !bp.addr.TempBreak {
		dbg.reconfigureHistory()
		dbg.printStyled(dbg.styles.notify, "%s breakpoint removed at %s", lst.label, bp.addr)
	}
}

// ClearBreakpoints empties all three breakpoint lists, releasing any
// installed bus traps.
func (dbg *Debugger) ClearBreakpoints() {
	for _, lst := range []*breakpointList{&dbg.exec, &dbg.read, &dbg.write} {
		for len(lst.bps) > 0 {
			bp := lst.bps[len(lst.bps)-1]
			lst.bps = lst.bps[:len(lst.bps)-1]
			if lst.kind != BreakExec && dbg.trapper != nil {
				if lin, ok := dbg.breakpointLinear(bp); ok {
					dbg.trapper.RemoveTrap(trapKind(lst.kind), lin)
				}
			}
		}
	}
	dbg.reconfigureHistory()
	dbg.printStyled(dbg.styles.notify, "all breakpoints cleared")
}

// ListBreakpoints writes the three breakpoint lists to the io.Writer.
func (dbg *Debugger) ListBreakpoints(w io.Writer) {
	for _, lst := range []*breakpointList{&dbg.exec, &dbg.read, &dbg.write} {
		if len(lst.bps) == 0 {
			continue
		}
		fmt.Fprintf(w, "%s breakpoints:\n", lst.label)
		for i, bp := range lst.bps {
			fmt.Fprintf(w, "  %d: %s\n", i, bp)
		}
	}
}

func trapKind(kind BreakpointKind) bus.AccessKind {
	if kind == BreakWrite {
		return bus.TrapWrite
	}
	return bus.TrapRead
}

// matched handles a breakpoint hit and decides whether execution stops.
// Temporary breakpoints are cleared on their first match.
func (dbg *Debugger) matched(lst *breakpointList, bp *breakpoint) bool {
	bp.hits++

	stop := true
	if bp.script != nil {
		stop = dbg.runScript(bp.script)
	} else if !bp.addr.TempBreak {
		dbg.printStyled(dbg.styles.breakpoint, "%s breakpoint at %s", lst.label, bp.addr)
		if dbg.sym != nil {
			if res, ok := dbg.sym.Resolve(dbg.dm.SymbolQuery(bp.addr), false); ok && res.Exact != nil {
				dbg.printStyled(dbg.styles.symbol, "  %s", res.Exact.Name)
			}
		}
	}

	if bp.addr.TempBreak {
		dbg.removeEntry(lst, bp)
	}

	return stop
}

// CheckExec is called by the CPU collaborator before every instruction when
// tracking is enabled. The linear address is the fetch address of the
// instruction and width is the fetch width. Returns true if execution should
// stop.
//
// The check never matches while another check or an engine-initiated memory
// read is in flight.
func (dbg *Debugger) CheckExec(linear uint32, width uint32) bool {
	if dbg.suppress > 0 {
		return false
	}
	dbg.suppress++
	defer func() { dbg.suppress-- }()

	el := memorymap.MapAddress(linear)

	dbg.recordHistory(el)

	stop := false
	for _, bp := range append([]*breakpoint(nil), dbg.exec.bps...) {
		bl, ok := dbg.breakpointLinear(bp)
		if !ok {
			continue
		}
		if bl >= el && bl < el+width {
			if dbg.matched(&dbg.exec, bp) {
				stop = true
			}
		}
	}

	// a bare INT3 halts when both the Int and Halt categories are enabled,
	// breakpoint or not
	if !stop && dbg.Enabled(CatInt|CatHalt) {
		if v, ok := dbg.mem.ReadPhysical(el, 1, true); ok && byte(v) == 0xcc {
			dbg.printStyled(dbg.styles.breakpoint, "INT3 at %%%%%08X", el)
			stop = true
		}
	}

	if stop {
		dbg.cpu.RequestHalt()
	}
	return stop
}

// CheckRead is called by the bus when a read touches an address with an
// installed read trap. Returns true if execution should stop.
func (dbg *Debugger) CheckRead(linear uint32, width uint32) bool {
	return dbg.checkAccess(&dbg.read, CatRead, linear, width)
}

// CheckWrite is called by the bus when a write touches an address with an
// installed write trap. Returns true if execution should stop.
func (dbg *Debugger) CheckWrite(linear uint32, width uint32) bool {
	return dbg.checkAccess(&dbg.write, CatWrite, linear, width)
}

func (dbg *Debugger) checkAccess(lst *breakpointList, cat Category, linear uint32, width uint32) bool {
	if dbg.suppress > 0 {
		return false
	}
	dbg.suppress++
	defer func() { dbg.suppress-- }()

	el := memorymap.MapAddress(linear)

	stop := false
	for _, bp := range append([]*breakpoint(nil), lst.bps...) {
		bl, ok := dbg.breakpointLinear(bp)
		if !ok {
			continue
		}

		// overlap of [bl, bl+1) with the access [el, el+width)
		if bl >= el && bl < el+width {
			if dbg.matched(lst, bp) {
				stop = true
			}
		}
	}

	if stop && dbg.Enabled(cat) {
		dbg.printStyled(dbg.styles.mem, "%s access at %%%%%08X", lst.label, el)
	}

	if stop {
		dbg.cpu.RequestHalt()
	}
	return stop
}
