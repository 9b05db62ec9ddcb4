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

import "fmt"

// Field identifies a column of disassembly output.
type Field int

// List of valid Field values.
const (
	FldAddress Field = iota
	FldBytecode
	FldOperator
	FldOperand
)

// widths of the individual fields observed so far. used to build the format
// strings for column padding.
type fields struct {
	widths struct {
		address  int
		bytecode int
		operator int
		operand  int
	}
}

// update field widths to accommodate the entry.
func (fld *fields) update(e *Entry) {
	if l := len(e.Address.String()); l > fld.widths.address {
		fld.widths.address = l
	}
	if l := len(e.Bytecode()); l > fld.widths.bytecode {
		fld.widths.bytecode = l
	}
	if l := len(e.Operator); l > fld.widths.operator {
		fld.widths.operator = l
	}
	if l := len(e.Operand); l > fld.widths.operand {
		fld.widths.operand = l
	}
}

// GetField returns the requested field of the entry padded to the widest
// example of that field seen by the Disassembly so far.
func (dsm *Disassembly) GetField(field Field, e *Entry) string {
	var s string
	var w int

	switch field {
	case FldAddress:
		w = dsm.fields.widths.address
		s = e.Address.String()
	case FldBytecode:
		w = dsm.fields.widths.bytecode
		s = e.Bytecode()
	case FldOperator:
		w = dsm.fields.widths.operator
		s = e.Operator
	case FldOperand:
		w = dsm.fields.widths.operand
		s = e.Operand
	}

	return fmt.Sprintf("%-*s", w, s)
}
