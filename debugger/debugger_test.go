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

package debugger_test

import (
	"strings"
	"testing"

	"github.com/gopher86/gopher86/curated"
	"github.com/gopher86/gopher86/debugger"
	"github.com/gopher86/gopher86/debugger/dbgmem"
	"github.com/gopher86/gopher86/hardware/cpu"
	"github.com/gopher86/gopher86/hardware/memory/bus"
	"github.com/gopher86/gopher86/hardware/memory/memorymap"
	"github.com/gopher86/gopher86/symbols"
	"github.com/gopher86/gopher86/test"
)

type mockCPU struct {
	model  cpu.Model
	live   map[uint16]cpu.SegInfo
	halted bool
	csSel  uint16
	csIP   uint32

	// burst drives the CPU when RunBurst is called. assigned per test
	burst func(max int) int
}

func (m *mockCPU) Model() cpu.Model      { return m.model }
func (m *mockCPU) Mode() memorymap.Space { return memorymap.SpaceReal }
func (m *mockCPU) CS() (uint16, uint32)  { return m.csSel, m.csIP }
func (m *mockCPU) Halted() bool          { return m.halted }
func (m *mockCPU) RequestHalt()          { m.halted = true }

func (m *mockCPU) RunBurst(max int) int {
	if m.burst == nil {
		return 0
	}
	return m.burst(max)
}

func (m *mockCPU) LiveSegment(sel uint16) (cpu.SegInfo, bool) {
	s, ok := m.live[sel]
	return s, ok
}

func (m *mockCPU) Descriptor(sel uint16, space memorymap.Space) (cpu.SegInfo, bool) {
	return cpu.SegInfo{}, false
}

// mockBus is a sparse memory that also implements the Trapper interface,
// recording installed traps.
type mockBus struct {
	data  map[uint32]byte
	traps map[uint32]bus.AccessKind
}

func newMockBus() *mockBus {
	return &mockBus{
		data:  make(map[uint32]byte),
		traps: make(map[uint32]bus.AccessKind),
	}
}

func (m *mockBus) ReadPhysical(addr uint32, width int, mapped bool) (uint32, bool) {
	var v uint32
	for i := 0; i < width; i++ {
		b, ok := m.data[addr+uint32(i)]
		if !ok {
			return 0, false
		}
		v |= uint32(b) << (8 * i)
	}
	return v, true
}

func (m *mockBus) WritePhysical(addr uint32, data uint32, width int, mapped bool) bool {
	for i := 0; i < width; i++ {
		m.data[addr+uint32(i)] = byte(data >> (8 * i))
	}
	return true
}

func (m *mockBus) InstallTrap(kind bus.AccessKind, addr uint32) {
	m.traps[addr] = kind
}

func (m *mockBus) RemoveTrap(kind bus.AccessKind, addr uint32) {
	delete(m.traps, addr)
}

// mockHost is a CommandHost whose "halt" command halts the CPU, whose "fail"
// command returns an error and whose conditions evaluate to the literal text
// "true".
type mockHost struct {
	c   *mockCPU
	ran []string
}

func (h *mockHost) RunCommand(cmd string) error {
	h.ran = append(h.ran, cmd)
	switch cmd {
	case "halt":
		h.c.halted = true
	case "fail":
		return curated.Errorf("command rejected: %v", cmd)
	}
	return nil
}

func (h *mockHost) Evaluate(cond string) (bool, error) {
	return cond == "true", nil
}

func testSession() (*mockCPU, *mockBus, *debugger.Debugger) {
	c := &mockCPU{
		model: cpu.Model80386,
		live: map[uint16]cpu.SegInfo{
			0xf000: {Base: 0xf0000, Limit: 0xffff},
		},
		csSel: 0xf000,
		csIP:  0x0100,
	}
	mem := newMockBus()
	dbg := debugger.NewDebugger(c, mem, nil)
	return c, mem, dbg
}

func segAddr(sel uint16, off uint32) dbgmem.Address {
	return dbgmem.NewSegmented(memorymap.SpaceReal, sel, off)
}

// styledSession is a testSession that captures the debugger's styled
// notifications.
func styledSession() (*mockCPU, *mockBus, *debugger.Debugger, *strings.Builder) {
	c := &mockCPU{
		model: cpu.Model80386,
		live: map[uint16]cpu.SegInfo{
			0xf000: {Base: 0xf0000, Limit: 0xffff},
		},
		csSel: 0xf000,
		csIP:  0x0100,
	}
	mem := newMockBus()
	out := &strings.Builder{}
	dbg := debugger.NewDebugger(c, mem, out)
	return c, mem, dbg, out
}

func TestExecBreakpoint(t *testing.T) {
	_, _, dbg := testSession()

	err := dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false, "")
	test.DemandSuccess(t, err)

	// a fetch at the translated linear address matches
	test.ExpectSuccess(t, dbg.CheckExec(0xf0100, 1))

	// a fetch elsewhere does not
	test.ExpectFailure(t, dbg.CheckExec(0xf0200, 1))

	// removal reverses the add
	test.ExpectSuccess(t, dbg.RemoveBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100)))
	test.ExpectFailure(t, dbg.CheckExec(0xf0100, 1))
}

func TestBreakpointAliasConsistency(t *testing.T) {
	_, _, dbg := testSession()

	// a breakpoint at a physical address in the alias window matches a
	// fetch made through the top-of-space alias
	err := dbg.AddBreakpoint(debugger.BreakExec, dbgmem.NewPhysical(0x000f0100), false, "")
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, dbg.CheckExec(0xffff0100, 1))
	test.ExpectSuccess(t, dbg.CheckExec(0x000f0100, 1))
}

func TestBreakpointDuplicate(t *testing.T) {
	_, _, dbg := testSession()

	err := dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false, "")
	test.DemandSuccess(t, err)

	// the same target through a different address form is still a duplicate
	err = dbg.AddBreakpoint(debugger.BreakExec, dbgmem.NewPhysical(0x000f0100), false, "")
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, debugger.BreakpointConflict))

	// a re-set with a command script is allowed and replaces the script
	err = dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false, "halt")
	test.ExpectSuccess(t, err)
}

func TestTempBreakpoint(t *testing.T) {
	_, _, dbg := testSession()

	err := dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), true, "")
	test.DemandSuccess(t, err)

	// first hit matches and clears the breakpoint
	test.ExpectSuccess(t, dbg.CheckExec(0xf0100, 1))
	test.ExpectFailure(t, dbg.CheckExec(0xf0100, 1))
}

func TestTempBreakpointSurvivesSegmentMove(t *testing.T) {
	c, _, dbg := testSession()

	err := dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), true, "")
	test.DemandSuccess(t, err)

	// the temporary breakpoint dropped its selector at add time so a
	// change to the segment does not move it
	c.live[0xf000] = cpu.SegInfo{Base: 0x20000, Limit: 0xffff}
	test.ExpectSuccess(t, dbg.CheckExec(0xf0100, 1))
}

func TestListBreakpointsTemporary(t *testing.T) {
	_, _, dbg := testSession()

	test.DemandSuccess(t, dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false, ""))
	test.DemandSuccess(t, dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0200), true, ""))

	s := &strings.Builder{}
	dbg.ListBreakpoints(s)
	lines := strings.Split(strings.TrimSpace(s.String()), "\n")
	test.DemandEquality(t, len(lines), 3)

	// only the single-shot breakpoint is flagged
	test.ExpectFailure(t, strings.Contains(lines[1], "(temporary)"))
	test.ExpectSuccess(t, strings.Contains(lines[2], "(temporary)"))
}

func TestReadWriteBreakpoints(t *testing.T) {
	_, mem, dbg := testSession()

	err := dbg.AddBreakpoint(debugger.BreakWrite, segAddr(0xf000, 0x0200), false, "")
	test.DemandSuccess(t, err)

	// the add installed a bus trap at the resolved linear address
	kind, ok := mem.traps[0xf0200]
	test.DemandSuccess(t, ok)
	test.ExpectEquality(t, kind, bus.TrapWrite)

	// a write overlapping the watched byte matches
	test.ExpectSuccess(t, dbg.CheckWrite(0xf0200, 2))
	test.ExpectSuccess(t, dbg.CheckWrite(0xf01ff, 2))
	test.ExpectFailure(t, dbg.CheckWrite(0xf01fe, 2))

	// clearing releases the trap
	dbg.ClearBreakpoints()
	_, ok = mem.traps[0xf0200]
	test.ExpectFailure(t, ok)
}

func TestScriptSilentObservation(t *testing.T) {
	c, _, dbg := testSession()
	host := &mockHost{c: c}
	dbg.SetCommandHost(host)

	// a script that does not halt makes the breakpoint a silent
	// observation point
	err := dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false, "tally")
	test.DemandSuccess(t, err)

	test.ExpectFailure(t, dbg.CheckExec(0xf0100, 1))
	test.DemandEquality(t, len(host.ran), 1)
	test.ExpectEquality(t, host.ran[0], "tally")
	test.ExpectFailure(t, c.halted)
}

func TestScriptHalt(t *testing.T) {
	c, _, dbg := testSession()
	host := &mockHost{c: c}
	dbg.SetCommandHost(host)

	err := dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false, "halt")
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, dbg.CheckExec(0xf0100, 1))
	test.ExpectSuccess(t, c.halted)
}

func TestScriptIfElse(t *testing.T) {
	c, _, dbg := testSession()
	host := &mockHost{c: c}
	dbg.SetCommandHost(host)

	// the false condition skips forward to the else branch
	err := dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false,
		"if false; taken; else; nottaken")
	test.DemandSuccess(t, err)

	dbg.CheckExec(0xf0100, 1)
	test.DemandEquality(t, len(host.ran), 1)
	test.ExpectEquality(t, host.ran[0], "nottaken")

	// the true condition runs its branch and stops at the else
	host.ran = nil
	err = dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false,
		"if true; taken; else; nottaken")
	test.DemandSuccess(t, err)

	dbg.CheckExec(0xf0100, 1)
	test.DemandEquality(t, len(host.ran), 1)
	test.ExpectEquality(t, host.ran[0], "taken")
}

func TestScriptMalformed(t *testing.T) {
	_, _, dbg := testSession()

	// malformed scripts are rejected at add time
	err := dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false, "else; foo")
	test.DemandFailure(t, err)
	test.ExpectSuccess(t, curated.Is(err, debugger.MalformedScript))

	err = dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false, "if a; if b; foo")
	test.DemandFailure(t, err)
}

func TestScriptAbortNotification(t *testing.T) {
	c, _, dbg, out := styledSession()
	dbg.SetCommandHost(&mockHost{c: c})

	err := dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false, "fail")
	test.DemandSuccess(t, err)

	// a failing command aborts the script, reports the failure and halts
	test.ExpectSuccess(t, dbg.CheckExec(0xf0100, 1))
	test.ExpectSuccess(t, strings.Contains(out.String(), "script aborted"))
}

func TestNotificationOutput(t *testing.T) {
	_, _, dbg, out := styledSession()

	dbg.Symbols().AddGroup(symbols.NewGroup("BIOS", 1, 0xf000, 0x0000, 0x1000, []symbols.Symbol{
		{Name: "reset", Offset: 0x0100},
	}))

	err := dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false, "")
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, strings.Contains(out.String(), "exec breakpoint added"))

	// instruction level reporting traces the fetch address. the hit report
	// carries the symbol at the breakpoint address
	dbg.Enable(debugger.CatExec)
	test.ExpectSuccess(t, dbg.CheckExec(0xf0100, 1))
	test.ExpectSuccess(t, strings.Contains(out.String(), "F000:0100"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "exec breakpoint at"))
	test.ExpectSuccess(t, strings.Contains(out.String(), "reset"))
}

func TestBareINT3(t *testing.T) {
	c, mem, dbg := testSession()
	mem.data[0xf0100] = 0xcc

	// with neither category enabled the INT3 is ignored
	test.ExpectFailure(t, dbg.CheckExec(0xf0100, 1))

	// both categories together make a bare INT3 a halt
	dbg.Enable(debugger.CatInt)
	test.ExpectFailure(t, dbg.CheckExec(0xf0100, 1))
	dbg.Enable(debugger.CatHalt)
	test.ExpectSuccess(t, dbg.CheckExec(0xf0100, 1))
	test.ExpectSuccess(t, c.halted)
}

func TestHistoryRing(t *testing.T) {
	c, _, dbg := testSession()
	dbg.SetHistoryCapacity(4)

	// tracking only happens when something requires it
	dbg.Enable(debugger.CatExec)

	// record five instructions into a ring of four
	for _, off := range []uint32{0x0101, 0x0102, 0x0103, 0x0104, 0x0105} {
		c.csIP = off
		dbg.CheckExec(0xf0000+off, 1)
	}

	b := strings.Builder{}
	dbg.DumpHistory(&b, 3, 4, -1)
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	test.DemandEquality(t, len(lines), 4)

	// the oldest entry was overwritten; the survivors are in order
	test.ExpectSuccess(t, strings.HasPrefix(lines[0], "F000:0102"))
	test.ExpectSuccess(t, strings.HasPrefix(lines[1], "F000:0103"))
	test.ExpectSuccess(t, strings.HasPrefix(lines[2], "F000:0104"))
	test.ExpectSuccess(t, strings.HasPrefix(lines[3], "F000:0105"))

	// tracking stops and the ring is released when no longer required
	dbg.Disable(debugger.CatExec)
	b.Reset()
	dbg.DumpHistory(&b, 3, 4, -1)
	test.ExpectEquality(t, strings.TrimSpace(b.String()), "no history")
}

func TestRunTo(t *testing.T) {
	c, mem, dbg := testSession()

	// a tiny synthetic CPU: each instruction is one byte long
	c.burst = func(max int) int {
		done := 0
		for i := 0; i < max; i++ {
			c.csIP++
			done++
			if dbg.CheckExec(0xf0000+c.csIP, 1) {
				break
			}
		}
		return done
	}
	mem.data[0xf0110] = 0x90

	err := dbg.RunTo(segAddr(0xf000, 0x0110))
	test.DemandSuccess(t, err)
	test.ExpectSuccess(t, c.halted)
	test.ExpectEquality(t, c.csIP, uint32(0x0110))
}

func TestStepN(t *testing.T) {
	c, _, dbg := testSession()

	c.burst = func(max int) int {
		done := 0
		for i := 0; i < max; i++ {
			c.csIP++
			done++
		}
		return done
	}

	test.ExpectEquality(t, dbg.StepN(5), 5)
	test.ExpectEquality(t, c.csIP, uint32(0x0105))
}

func TestSaveRestoreState(t *testing.T) {
	_, _, dbg := testSession()

	err := dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0100), false, "")
	test.DemandSuccess(t, err)
	err = dbg.AddBreakpoint(debugger.BreakWrite, segAddr(0xf000, 0x0200), false, "halt")
	test.DemandSuccess(t, err)

	// temporary breakpoints are not persisted
	err = dbg.AddBreakpoint(debugger.BreakExec, segAddr(0xf000, 0x0300), true, "")
	test.DemandSuccess(t, err)

	st := dbg.SaveState()
	test.ExpectEquality(t, len(st.Breakpoints), 2)

	// restore into a fresh session
	_, _, dbg2 := testSession()
	err = dbg2.RestoreState(st)
	test.DemandSuccess(t, err)

	test.ExpectSuccess(t, dbg2.CheckExec(0xf0100, 1))
	test.ExpectSuccess(t, dbg2.CheckWrite(0xf0200, 1))
}
