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
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gopher86/gopher86/debugger/dbgmem"
	"github.com/gopher86/gopher86/disassembly"
	"github.com/gopher86/gopher86/hardware/cpu"
	"github.com/gopher86/gopher86/hardware/memory/bus"
	"github.com/gopher86/gopher86/logger"
	"github.com/gopher86/gopher86/symbols"
	"github.com/gopher86/gopher86/version"
)

// number of instructions per run burst when the debugger drives execution
// itself. control returns to the caller between bursts
const burstSize = 1000

// Debugger is the context for a single debugging session. All mutable
// debugger state (breakpoint lists, history, symbol table, cursors) hangs
// off this struct; two Debugger instances never share state.
type Debugger struct {
	cpu     cpu.CPU
	mem     bus.Memory
	trapper bus.Trapper

	dm  *dbgmem.DbgMem
	sym *symbols.Symbols
	dsm *disassembly.Disassembly

	exec  breakpointList
	read  breakpointList
	write breakpointList

	history  history
	messages Category
	commands CommandHost

	// non-zero while a check or an engine-initiated memory access is in
	// flight. prevents descriptor reads made during breakpoint resolution
	// from re-entering the checks
	suppress int

	// cursors remembering where the last disassembly/dump left off
	dsmCursor  dbgmem.Address
	dumpCursor dbgmem.Address

	styles styles
	output io.Writer
}

// NewDebugger is the preferred method of initialisation for the Debugger
// type. Styled notifications are written to the output writer; a nil output
// silences them.
//
// If the bus implements the Trapper and Labeller interfaces they are used
// for read/write breakpoints and for symbol fallback respectively.
func NewDebugger(c cpu.CPU, mem bus.Memory, output io.Writer) *Debugger {
	dbg := &Debugger{
		cpu:    c,
		mem:    mem,
		output: output,
		styles: newStyles(),
	}

	if t, ok := mem.(bus.Trapper); ok {
		dbg.trapper = t
	}

	var labels bus.Labeller
	if l, ok := mem.(bus.Labeller); ok {
		labels = l
	}

	dbg.sym = symbols.NewSymbols(labels)
	dbg.dm = &dbgmem.DbgMem{CPU: c, Mem: mem, Sym: dbg.sym}
	dbg.dsm = disassembly.NewDisassembly(dbg.dm, dbg.sym, c.Model())

	dbg.exec = breakpointList{label: "exec", kind: BreakExec}
	dbg.read = breakpointList{label: "read", kind: BreakRead}
	dbg.write = breakpointList{label: "write", kind: BreakWrite}

	dbg.history.capacity = HistoryCapacity

	vrsn, rev, _ := version.Version()
	logger.Logf(logger.Allow, "debugger", "%s %s (%s) session for %s", version.ApplicationName, vrsn, rev, c.Model())

	return dbg
}

// SetCommandHost attaches the command layer used to run breakpoint command
// scripts. Without one, scripted breakpoints behave as plain breakpoints.
func (dbg *Debugger) SetCommandHost(host CommandHost) {
	dbg.commands = host
}

// SetHistoryCapacity resizes the execution history. Takes effect on the next
// reconfiguration; an allocated ring is released.
func (dbg *Debugger) SetHistoryCapacity(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	dbg.history.capacity = capacity
	dbg.history.reconfigure(false)
	dbg.reconfigureHistory()
}

// Memory returns the debugger's translated view of memory.
func (dbg *Debugger) Memory() *dbgmem.DbgMem {
	return dbg.dm
}

// Symbols returns the session's symbol table. Module load/unload
// notifications add and remove groups through this.
func (dbg *Debugger) Symbols() *symbols.Symbols {
	return dbg.sym
}

// Disassembly returns the session's disassembler.
func (dbg *Debugger) Disassembly() *disassembly.Disassembly {
	return dbg.dsm
}

func (dbg *Debugger) printStyled(sty lipgloss.Style, format string, a ...interface{}) {
	if dbg.output == nil {
		return
	}
	s := fmt.Sprintf(format, a...)
	io.WriteString(dbg.output, sty.Render(s))
	io.WriteString(dbg.output, "\n")
}

// tracking is required whenever any breakpoint is set or instruction level
// reporting is on.
func (dbg *Debugger) trackingRequired() bool {
	return len(dbg.exec.bps)+len(dbg.read.bps)+len(dbg.write.bps) > 0 || dbg.Enabled(CatExec)
}

func (dbg *Debugger) reconfigureHistory() {
	dbg.history.reconfigure(dbg.trackingRequired())
}

// recordHistory notes the instruction about to execute. Called from
// CheckExec with recursion already suppressed.
func (dbg *Debugger) recordHistory(linear uint32) {
	if !dbg.history.tracking() {
		return
	}

	var opcode byte
	if v, ok := dbg.mem.ReadPhysical(linear, 1, true); ok {
		opcode = byte(v)
	}

	sel, ip := dbg.cpu.CS()
	addr := dbgmem.NewSegmented(dbg.cpu.Mode(), sel, ip)
	dbg.history.record(addr, opcode)

	if dbg.Enabled(CatExec) {
		dbg.printStyled(dbg.styles.instruction, "%s %02X", addr, opcode)
	}
}

// Disassemble writes lines of disassembly starting at addr. The cursor for
// DisassembleMore is left at the end of the decoded run.
func (dbg *Debugger) Disassemble(w io.Writer, addr dbgmem.Address, lines int) error {
	dbg.dsmCursor = addr
	return dbg.dsm.Write(w, &dbg.dsmCursor, lines)
}

// DisassembleMore continues a previous Disassemble from where it left off.
func (dbg *Debugger) DisassembleMore(w io.Writer, lines int) error {
	return dbg.dsm.Write(w, &dbg.dsmCursor, lines)
}

// DumpMemory writes lines of a hex/ASCII dump, sixteen bytes per line,
// starting at the line containing addr. The cursor for DumpMore is left at
// the end of the dump.
func (dbg *Debugger) DumpMemory(w io.Writer, addr dbgmem.Address, lines int) error {
	addr.Offset = alignDown(addr.Offset, 16)
	addr.InvalidateLinear()
	dbg.dumpCursor = addr
	return dbg.dumpLines(w, lines)
}

// DumpMore continues a previous DumpMemory from where it left off.
func (dbg *Debugger) DumpMore(w io.Writer, lines int) error {
	return dbg.dumpLines(w, lines)
}

func (dbg *Debugger) dumpLines(w io.Writer, lines int) error {
	for i := 0; i < lines; i++ {
		hex := strings.Builder{}
		ascii := strings.Builder{}

		label := dbg.dumpCursor.String()

		for j := 0; j < 16; j++ {
			v, err := dbg.dm.Peek(&dbg.dumpCursor, 1)
			if err != nil {
				return err
			}
			hex.WriteString(fmt.Sprintf("%02X ", v))
			if v >= 0x20 && v < 0x7f {
				ascii.WriteByte(byte(v))
			} else {
				ascii.WriteByte('.')
			}
			dbg.dm.Increment(&dbg.dumpCursor, 1)
		}

		fmt.Fprintf(w, "%s  %s %s\n", label, hex.String(), ascii.String())
	}
	return nil
}

// ResolveSymbol finds a symbol by name. Resolution is case-insensitive.
func (dbg *Debugger) ResolveSymbol(name string) (symbols.Location, bool) {
	return dbg.sym.ResolveByName(name)
}

// ResolveAddress finds the symbol at an address. With nearest, the closest
// named symbols either side of the address are also returned.
func (dbg *Debugger) ResolveAddress(addr dbgmem.Address, nearest bool) (symbols.Resolution, bool) {
	return dbg.sym.Resolve(dbg.dm.SymbolQuery(addr), nearest)
}

// StepN executes up to n instructions, stopping early on a matched
// breakpoint or a halt request.
func (dbg *Debugger) StepN(n int) int {
	done := 0
	for done < n {
		if dbg.cpu.RunBurst(1) == 0 {
			break
		}
		done++
		if dbg.cpu.Halted() {
			break
		}
	}
	return done
}

// StepOver executes the instruction at the current CS:IP, running any call
// it makes to completion. A temporary breakpoint is planted at the next
// sequential instruction; because the breakpoint is temporary it survives an
// addressing-mode change made by the stepped-over code.
func (dbg *Debugger) StepOver() error {
	sel, ip := dbg.cpu.CS()
	addr := dbgmem.NewSegmented(dbg.cpu.Mode(), sel, ip)

	e, err := dbg.dsm.Decode(&addr)
	if err != nil {
		return err
	}

	if err := dbg.AddBreakpoint(BreakExec, e.NextAddress(), true, ""); err != nil {
		return err
	}
	dbg.run()
	return nil
}

// RunTo executes until a breakpoint at addr matches, another breakpoint
// stops execution, or the host requests a halt. The breakpoint at addr is
// temporary and clears itself.
func (dbg *Debugger) RunTo(addr dbgmem.Address) error {
	if err := dbg.AddBreakpoint(BreakExec, addr, true, ""); err != nil {
		return err
	}
	dbg.run()
	return nil
}

// Run executes until something stops the CPU.
func (dbg *Debugger) Run() {
	dbg.run()
}

// run drives the CPU in bursts until it halts or stops making progress. The
// checks called from inside the CPU's own loop are what actually request the
// halt.
func (dbg *Debugger) run() {
	for !dbg.cpu.Halted() {
		if dbg.cpu.RunBurst(burstSize) == 0 {
			return
		}
	}
}
