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

package instructions

import "github.com/gopher86/gopher86/hardware/cpu"

// Descriptor is one entry in the opcode tables: the operator plus up to three
// operand slots. Descriptors are data, not state; the tables are built once
// at package initialisation and never mutate.
type Descriptor struct {
	Operator Operator
	Dst      Operand
	Src      Operand
	Third    Operand
}

// Defined returns false for table entries that do not decode to an
// instruction on any model.
func (d Descriptor) Defined() bool {
	return d.Operator != None
}

// MinModel returns the minimum CPU model on which the instruction exists.
// The gate is carried on the operand slots; an instruction without operands
// carries it on the (otherwise empty) Dst slot.
func (d Descriptor) MinModel() cpu.Model {
	m := d.Dst.MinModel()
	if s := d.Src.MinModel(); s > m {
		m = s
	}
	if t := d.Third.MinModel(); t > m {
		m = t
	}
	return m
}

// UsesModRM returns true if any operand slot requires the ModRM byte.
func (d Descriptor) UsesModRM() bool {
	return d.Dst.UsesModRM() || d.Src.UsesModRM() || d.Third.UsesModRM()
}

// Primary returns the 256-entry one-byte opcode table for the model. There
// are exactly two immutable variants: the 8086 table, where opcode 0x0F is
// POP CS, and the table for every later model, where 0x0F is the two-byte
// escape.
func Primary(model cpu.Model) *[256]Descriptor {
	if model == cpu.Model8086 {
		return &primary8086
	}
	return &primary
}

// TwoByte returns the descriptor for the second byte of a two-byte (0x0F
// escape) instruction. The ok return is false for undefined encodings.
func TwoByte(op byte) (Descriptor, bool) {
	d, ok := twoByte[op]
	return d, ok
}

// Group returns the descriptor selected from a group table by the ModRM reg
// field. The returned descriptor may be undefined.
func Group(o Operator, reg int) Descriptor {
	g, ok := groups[o]
	if !ok {
		return Descriptor{}
	}
	return g[reg&0x07]
}

// Register name tables, indexed by the three-bit register number of the
// instruction encoding.
var (
	Reg8Names  = [8]string{"AL", "CL", "DL", "BL", "AH", "CH", "DH", "BH"}
	Reg16Names = [8]string{"AX", "CX", "DX", "BX", "SP", "BP", "SI", "DI"}
	Reg32Names = [8]string{"EAX", "ECX", "EDX", "EBX", "ESP", "EBP", "ESI", "EDI"}
	SegNames   = [6]string{"ES", "CS", "SS", "DS", "FS", "GS"}
)

// RM16Names are the base register combinations of the 16-bit ModRM memory
// forms, indexed by the rm field.
var RM16Names = [8]string{"BX+SI", "BX+DI", "BP+SI", "BP+DI", "SI", "DI", "BP", "BX"}

// RegName returns the register name for a register number at a resolved bit
// width of 8, 16 or 32.
func RegName(reg int, bits int) string {
	reg &= 0x07
	switch bits {
	case 8:
		return Reg8Names[reg]
	case 32:
		return Reg32Names[reg]
	}
	return Reg16Names[reg]
}

// MemoryKeyword returns the width keyword used when a ModRM memory operand's
// size cannot be inferred from a register operand. An empty string means no
// keyword is needed.
func MemoryKeyword(size Operand, opSize32 bool) string {
	switch size {
	case SizeByte, SizeSByte:
		return "BYTE"
	case SizeShort:
		return "WORD"
	case SizeWord:
		if opSize32 {
			return "DWORD"
		}
		return "WORD"
	case SizeLong:
		return "DWORD"
	case SizeFarPtr:
		return "FAR"
	case SizeShortInt:
		return "INT16"
	case SizeLongInt:
		return "INT32"
	case SizeQuadInt:
		return "INT64"
	case SizeSingleReal:
		return "REAL32"
	case SizeDoubleReal:
		return "REAL64"
	case SizeTempReal:
		return "REAL80"
	case SizeBCD:
		return "BCD80"
	}
	return ""
}
