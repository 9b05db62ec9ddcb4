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
	"strings"

	"github.com/gopher86/gopher86/debugger/dbgmem"
)

// Entry is a disassembled instruction: the constituent parts of one line of
// disassembly output.
type Entry struct {
	dsm *Disassembly

	// the address the instruction was decoded from
	Address dbgmem.Address

	// the raw opcode bytes consumed by the decode
	Bytes []byte

	// string representations of the decoded instruction.
	// use GetField() for white-space padded columnation
	Operator string
	Operand  string

	// trailing comment. symbol annotations and model notes end up here
	Annotation string

	// false if the decode gave up on a pathological prefix run without
	// reaching an opcode. a caller printing a bounded number of lines can
	// extend by one line to show the instruction the prefixes belong to
	Complete bool

	// false if the instruction requires a later CPU model than the one the
	// disassembly was configured with. the instruction is still decoded
	Supported bool

	// false if the opcode is undefined on every model. undefined opcodes
	// decode to a placeholder so that disassembly of arbitrary memory never
	// fails
	Defined bool
}

// Length returns the number of bytes consumed by the instruction.
func (e *Entry) Length() int {
	return len(e.Bytes)
}

// Bytecode returns the consumed opcode bytes as a hex string.
func (e *Entry) Bytecode() string {
	s := strings.Builder{}
	for _, b := range e.Bytes {
		s.WriteString(fmt.Sprintf("%02X ", b))
	}
	return strings.TrimSpace(s.String())
}

// NextAddress returns the address of the instruction that follows this one.
func (e *Entry) NextAddress() dbgmem.Address {
	a := e.Address
	a.Offset += uint32(len(e.Bytes))
	a.InvalidateLinear()
	return a
}

func (e *Entry) String() string {
	s := strings.Builder{}
	s.WriteString(fmt.Sprintf("%s  %-21s  %s", e.Address.String(), e.Bytecode(), e.Operator))
	if e.Operand != "" {
		s.WriteString(fmt.Sprintf(" %s", e.Operand))
	}
	if e.Annotation != "" {
		s.WriteString(fmt.Sprintf(" ;%s", e.Annotation))
	}
	return s.String()
}
