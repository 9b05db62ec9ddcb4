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

// Operand describes one operand slot of a Descriptor as a bitfield: a size
// class in the low byte, an addressing-mode class in the second byte, an
// implied register number in the third byte and the minimum CPU model in the
// top byte.
type Operand uint32

// Size classes. SizeWord resolves to 16 or 32 bits according to the operand
// size attribute in effect; SizeShort and SizeLong are fixed. The FPU classes
// exist only to annotate memory operands with the right width keyword.
const (
	SizeNone Operand = 0x00
	SizeByte Operand = 0x01

	// a byte immediate sign-extended to (and displayed at) the full operand
	// width
	SizeSByte Operand = 0x02

	SizeShort  Operand = 0x03
	SizeWord   Operand = 0x04
	SizeLong   Operand = 0x05
	SizeFarPtr Operand = 0x06

	SizeShortInt   Operand = 0x07
	SizeLongInt    Operand = 0x08
	SizeQuadInt    Operand = 0x09
	SizeSingleReal Operand = 0x0a
	SizeDoubleReal Operand = 0x0b
	SizeTempReal   Operand = 0x0c
	SizeBCD        Operand = 0x0d
	SizeEnv        Operand = 0x0e
	SizeFPUState   Operand = 0x0f
)

// Addressing-mode classes.
const (
	ModeNone Operand = 0x0000

	// immediate value of the slot's size class
	ModeImm Operand = 0x0100

	// the constant 1 (the implicit shift count of the D0/D1 rotates)
	ModeImmOne Operand = 0x0200

	// memory offset immediate ([disp] forms of MOV AL/AX)
	ModeImmOff Operand = 0x0300

	// signed displacement relative to the next instruction
	ModeRel Operand = 0x0400

	// general ModRM operand: register or memory
	ModeModRM Operand = 0x0500

	// ModRM operand restricted to memory forms
	ModeModMem Operand = 0x0600

	// ModRM operand restricted to register forms
	ModeModReg Operand = 0x0700

	// general register selected by the ModRM reg field
	ModeReg Operand = 0x0800

	// segment register selected by the ModRM reg field
	ModeSegReg Operand = 0x0900

	// register implied by the descriptor (see the Reg* constants)
	ModeImpReg Operand = 0x0a00

	// segment register implied by the descriptor (see the Seg* constants)
	ModeImpSeg Operand = 0x0b00

	// the fixed string-instruction addressing forms
	ModeDSSI Operand = 0x0c00
	ModeESDI Operand = 0x0d00

	// FPU stack operands
	ModeST    Operand = 0x0e00
	ModeSTReg Operand = 0x0f00

	// control, debug and test registers selected by the ModRM reg field.
	// the mod field is ignored for these encodings
	ModeCtlReg Operand = 0x1000
	ModeDbgReg Operand = 0x1100
	ModeTstReg Operand = 0x1200
)

// Implied general registers. With SizeByte these select the byte registers
// (AL, CL...), otherwise the word/dword registers at the current operand
// size.
const (
	RegAX Operand = 0x000000
	RegCX Operand = 0x010000
	RegDX Operand = 0x020000
	RegBX Operand = 0x030000
	RegSP Operand = 0x040000
	RegBP Operand = 0x050000
	RegSI Operand = 0x060000
	RegDI Operand = 0x070000
)

// Implied segment registers.
const (
	SegES Operand = 0x000000
	SegCS Operand = 0x010000
	SegSS Operand = 0x020000
	SegDS Operand = 0x030000
	SegFS Operand = 0x040000
	SegGS Operand = 0x050000
)

// Minimum CPU model gates. The zero value is 8086, meaning no gate.
const (
	CPU86  Operand = 0x00000000
	CPU186 Operand = 0x01000000
	CPU286 Operand = 0x02000000
	CPU386 Operand = 0x03000000
)

const (
	maskSize  Operand = 0x000000ff
	maskMode  Operand = 0x0000ff00
	maskReg   Operand = 0x00ff0000
	maskModel Operand = 0xff000000
)

// Size returns the size class of the operand.
func (op Operand) Size() Operand {
	return op & maskSize
}

// Mode returns the addressing-mode class of the operand.
func (op Operand) Mode() Operand {
	return op & maskMode
}

// Reg returns the implied register number of the operand.
func (op Operand) Reg() int {
	return int((op & maskReg) >> 16)
}

// MinModel returns the minimum CPU model required by the operand.
func (op Operand) MinModel() cpu.Model {
	switch op & maskModel {
	case CPU186:
		return cpu.Model80186
	case CPU286:
		return cpu.Model80286
	case CPU386:
		return cpu.Model80386
	}
	return cpu.Model8086
}

// UsesModRM returns true if decoding the operand requires the ModRM byte.
func (op Operand) UsesModRM() bool {
	switch op.Mode() {
	case ModeModRM, ModeModMem, ModeModReg, ModeReg, ModeSegReg, ModeSTReg,
		ModeCtlReg, ModeDbgReg, ModeTstReg:
		return true
	}
	return false
}
