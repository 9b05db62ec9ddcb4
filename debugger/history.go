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

	"github.com/gopher86/gopher86/debugger/dbgmem"
)

// History capacities. Development builds keep a much deeper history.
const (
	HistoryCapacity            = 1000
	HistoryCapacityDevelopment = 100000
)

type historyEntry struct {
	addr   dbgmem.Address
	opcode byte
	valid  bool
}

// history is a fixed ring of executed instruction addresses with a parallel
// per-opcode frequency tally. The ring is allocated, pre-filled, only while
// tracking is required, and record() never allocates.
type history struct {
	capacity int
	entries  []historyEntry
	next     int
	total    int
	tally    [256]int
}

// reconfigure allocates or releases the ring as the tracking requirement
// changes. Called on every breakpoint add/remove and on message category
// toggles.
func (hst *history) reconfigure(required bool) {
	if !required {
		hst.entries = nil
		hst.next = 0
		hst.total = 0
		return
	}
	if hst.entries == nil {
		hst.entries = make([]historyEntry, hst.capacity)
	}
}

func (hst *history) tracking() bool {
	return hst.entries != nil
}

// record overwrites the next slot of the ring. Hot path: called once per
// traced instruction.
func (hst *history) record(addr dbgmem.Address, opcode byte) {
	if hst.entries == nil {
		return
	}
	hst.entries[hst.next] = historyEntry{addr: addr, opcode: opcode, valid: true}
	hst.next = (hst.next + 1) % len(hst.entries)
	hst.total++
	hst.tally[opcode]++
}

// depth returns the number of valid entries in the ring.
func (hst *history) depth() int {
	if hst.entries == nil {
		return 0
	}
	if hst.total < len(hst.entries) {
		return hst.total
	}
	return len(hst.entries)
}

// entry returns the i-th most recent entry. entry(0) is the instruction
// recorded last.
func (hst *history) entry(i int) historyEntry {
	n := len(hst.entries)
	return hst.entries[((hst.next-1-i)%n+n)%n]
}

// DumpHistory writes count history entries to the io.Writer, oldest first,
// beginning start entries back from the most recent. A filter of 0 to 255
// limits output to instructions with that first opcode byte; a negative
// filter means no filtering.
func (dbg *Debugger) DumpHistory(w io.Writer, start int, count int, filter int) {
	depth := dbg.history.depth()
	if depth == 0 {
		fmt.Fprintln(w, "no history")
		return
	}

	start = clamp(start, 0, depth-1)
	count = clamp(count, 1, start+1)

	for i := start; i > start-count; i-- {
		e := dbg.history.entry(i)
		if !e.valid {
			continue
		}
		if filter >= 0 && filter <= 0xff && e.opcode != byte(filter) {
			continue
		}
		fmt.Fprintf(w, "%s  %02X\n", e.addr.String(), e.opcode)
	}
}

// TallyHistory writes the per-opcode frequency counts gathered while
// tracking, skipping opcodes that never executed.
func (dbg *Debugger) TallyHistory(w io.Writer) {
	for op, n := range dbg.history.tally {
		if n == 0 {
			continue
		}
		fmt.Fprintf(w, "%02X: %d\n", op, n)
	}
}
