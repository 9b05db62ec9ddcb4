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

package disassembly

import (
	"fmt"
	"io"

	"github.com/gopher86/gopher86/debugger/dbgmem"
	"github.com/gopher86/gopher86/disassembly/instructions"
	"github.com/gopher86/gopher86/hardware/cpu"
	"github.com/gopher86/gopher86/symbols"
)

// Disassembly decodes machine code through the debugger's view of memory.
type Disassembly struct {
	dm  *dbgmem.DbgMem
	sym *symbols.Symbols

	model   cpu.Model
	primary *[256]instructions.Descriptor

	fields fields
}

// NewDisassembly is the preferred method of initialisation for the
// Disassembly type. The symbols argument may be nil, in which case decoded
// branch targets are not annotated.
func NewDisassembly(dm *dbgmem.DbgMem, sym *symbols.Symbols, model cpu.Model) *Disassembly {
	return &Disassembly{
		dm:      dm,
		sym:     sym,
		model:   model,
		primary: instructions.Primary(model),
	}
}

// Model returns the CPU model the disassembly was configured with.
func (dsm *Disassembly) Model() cpu.Model {
	return dsm.model
}

// SetModel changes the CPU model the decoder honours. Descriptor tables are
// switched as required.
func (dsm *Disassembly) SetModel(model cpu.Model) {
	dsm.model = model
	dsm.primary = instructions.Primary(model)
}

// DisassembleRange decodes a run of instructions starting at addr. The
// address is advanced as instructions are decoded.
//
// If the last requested line is an incomplete prefix run, one extra line is
// decoded so that the instruction the prefixes belong to is shown.
func (dsm *Disassembly) DisassembleRange(addr *dbgmem.Address, lines int) ([]*Entry, error) {
	entries := make([]*Entry, 0, lines)

	extended := false
	for i := 0; i < lines; i++ {
		e, err := dsm.Decode(addr)
		if err != nil {
			return entries, err
		}
		entries = append(entries, e)

		if i == lines-1 && !e.Complete && !extended {
			extended = true
			lines++
		}
	}

	return entries, nil
}

// Write disassembles and writes a run of instructions to the io.Writer, one
// entry per line with columns padded to the widest example seen so far.
func (dsm *Disassembly) Write(w io.Writer, addr *dbgmem.Address, lines int) error {
	entries, err := dsm.DisassembleRange(addr, lines)

	for _, e := range entries {
		s := fmt.Sprintf("%s  %s  %s %s",
			dsm.GetField(FldAddress, e),
			dsm.GetField(FldBytecode, e),
			dsm.GetField(FldOperator, e),
			dsm.GetField(FldOperand, e))
		if e.Annotation != "" {
			s = fmt.Sprintf("%s ;%s", s, e.Annotation)
		}
		w.Write([]byte(s))
		w.Write([]byte("\n"))
	}

	return err
}
