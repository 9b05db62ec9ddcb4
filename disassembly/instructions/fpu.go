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

// The FPU escape opcodes (0xD8 to 0xDF) pack instruction identity into the
// mod, reg and rm fields of the ModRM byte rather than just the opcode byte.
// Memory forms (mod != 3) are identified by the reg field alone; register
// forms are identified by the full ModRM byte.

// FPU operand shorthands. The memory forms exist mainly to attach the right
// width keyword to the formatted memory expression.
const (
	_ST  = ModeST
	_STi = ModeSTReg

	_Msr  = ModeModMem | SizeSingleReal
	_Mdr  = ModeModMem | SizeDoubleReal
	_Mtr  = ModeModMem | SizeTempReal
	_Mwi  = ModeModMem | SizeShortInt
	_Mdi  = ModeModMem | SizeLongInt
	_Mqi  = ModeModMem | SizeQuadInt
	_Mbcd = ModeModMem | SizeBCD
	_Menv = ModeModMem | SizeEnv
	_Msta = ModeModMem | SizeFPUState
	_Mw2  = ModeModMem | SizeShort

	_AX = ModeImpReg | RegAX | SizeShort
)

// fpuMem holds the memory-form descriptors, indexed by escape opcode (minus
// 0xD8) and the ModRM reg field.
var fpuMem = [8][8]Descriptor{
	{ // 0xD8
		{FADD, _Msr, 0, 0},
		{FMUL, _Msr, 0, 0},
		{FCOM, _Msr, 0, 0},
		{FCOMP, _Msr, 0, 0},
		{FSUB, _Msr, 0, 0},
		{FSUBR, _Msr, 0, 0},
		{FDIV, _Msr, 0, 0},
		{FDIVR, _Msr, 0, 0},
	},
	{ // 0xD9
		{FLD, _Msr, 0, 0},
		{},
		{FST, _Msr, 0, 0},
		{FSTP, _Msr, 0, 0},
		{FLDENV, _Menv, 0, 0},
		{FLDCW, _Mw2, 0, 0},
		{FSTENV, _Menv, 0, 0},
		{FSTCW, _Mw2, 0, 0},
	},
	{ // 0xDA
		{FIADD, _Mdi, 0, 0},
		{FIMUL, _Mdi, 0, 0},
		{FICOM, _Mdi, 0, 0},
		{FICOMP, _Mdi, 0, 0},
		{FISUB, _Mdi, 0, 0},
		{FISUBR, _Mdi, 0, 0},
		{FIDIV, _Mdi, 0, 0},
		{FIDIVR, _Mdi, 0, 0},
	},
	{ // 0xDB
		{FILD, _Mdi, 0, 0},
		{},
		{FIST, _Mdi, 0, 0},
		{FISTP, _Mdi, 0, 0},
		{},
		{FLD, _Mtr, 0, 0},
		{},
		{FSTP, _Mtr, 0, 0},
	},
	{ // 0xDC
		{FADD, _Mdr, 0, 0},
		{FMUL, _Mdr, 0, 0},
		{FCOM, _Mdr, 0, 0},
		{FCOMP, _Mdr, 0, 0},
		{FSUB, _Mdr, 0, 0},
		{FSUBR, _Mdr, 0, 0},
		{FDIV, _Mdr, 0, 0},
		{FDIVR, _Mdr, 0, 0},
	},
	{ // 0xDD
		{FLD, _Mdr, 0, 0},
		{},
		{FST, _Mdr, 0, 0},
		{FSTP, _Mdr, 0, 0},
		{FRSTOR, _Msta, 0, 0},
		{},
		{FSAVE, _Msta, 0, 0},
		{FSTSW, _Mw2, 0, 0},
	},
	{ // 0xDE
		{FIADD, _Mwi, 0, 0},
		{FIMUL, _Mwi, 0, 0},
		{FICOM, _Mwi, 0, 0},
		{FICOMP, _Mwi, 0, 0},
		{FISUB, _Mwi, 0, 0},
		{FISUBR, _Mwi, 0, 0},
		{FIDIV, _Mwi, 0, 0},
		{FIDIVR, _Mwi, 0, 0},
	},
	{ // 0xDF
		{FILD, _Mwi, 0, 0},
		{},
		{FIST, _Mwi, 0, 0},
		{FISTP, _Mwi, 0, 0},
		{FBLD, _Mbcd, 0, 0},
		{FILD, _Mqi, 0, 0},
		{FBSTP, _Mbcd, 0, 0},
		{FISTP, _Mqi, 0, 0},
	},
}

// fpuReg holds the register-form descriptors, indexed by escape opcode
// (minus 0xD8) and keyed by the full ModRM byte. Built once at
// initialisation.
var fpuReg [8]map[byte]Descriptor

func init() {
	for i := range fpuReg {
		fpuReg[i] = make(map[byte]Descriptor)
	}

	// stRange registers all eight ST(i) encodings of a reg slot
	stRange := func(esc int, reg int, d Descriptor) {
		for i := 0; i < 8; i++ {
			fpuReg[esc][byte(0xc0|reg<<3|i)] = d
		}
	}

	// single registers one specific ModRM encoding
	single := func(esc int, modrm byte, d Descriptor) {
		fpuReg[esc][modrm] = d
	}

	// 0xD8: arithmetic on ST,ST(i)
	stRange(0, 0, Descriptor{FADD, _ST, _STi, 0})
	stRange(0, 1, Descriptor{FMUL, _ST, _STi, 0})
	stRange(0, 2, Descriptor{FCOM, _STi, 0, 0})
	stRange(0, 3, Descriptor{FCOMP, _STi, 0, 0})
	stRange(0, 4, Descriptor{FSUB, _ST, _STi, 0})
	stRange(0, 5, Descriptor{FSUBR, _ST, _STi, 0})
	stRange(0, 6, Descriptor{FDIV, _ST, _STi, 0})
	stRange(0, 7, Descriptor{FDIVR, _ST, _STi, 0})

	// 0xD9: stack manipulation, constants and transcendentals
	stRange(1, 0, Descriptor{FLD, _STi, 0, 0})
	stRange(1, 1, Descriptor{FXCH, _STi, 0, 0})
	single(1, 0xd0, Descriptor{FNOP, 0, 0, 0})
	single(1, 0xe0, Descriptor{FCHS, 0, 0, 0})
	single(1, 0xe1, Descriptor{FABS, 0, 0, 0})
	single(1, 0xe4, Descriptor{FTST, 0, 0, 0})
	single(1, 0xe5, Descriptor{FXAM, 0, 0, 0})
	single(1, 0xe8, Descriptor{FLD1, 0, 0, 0})
	single(1, 0xe9, Descriptor{FLDL2T, 0, 0, 0})
	single(1, 0xea, Descriptor{FLDL2E, 0, 0, 0})
	single(1, 0xeb, Descriptor{FLDPI, 0, 0, 0})
	single(1, 0xec, Descriptor{FLDLG2, 0, 0, 0})
	single(1, 0xed, Descriptor{FLDLN2, 0, 0, 0})
	single(1, 0xee, Descriptor{FLDZ, 0, 0, 0})
	single(1, 0xf0, Descriptor{F2XM1, 0, 0, 0})
	single(1, 0xf1, Descriptor{FYL2X, 0, 0, 0})
	single(1, 0xf2, Descriptor{FPTAN, 0, 0, 0})
	single(1, 0xf3, Descriptor{FPATAN, 0, 0, 0})
	single(1, 0xf4, Descriptor{FXTRACT, 0, 0, 0})
	single(1, 0xf6, Descriptor{FDECSTP, 0, 0, 0})
	single(1, 0xf7, Descriptor{FINCSTP, 0, 0, 0})
	single(1, 0xf8, Descriptor{FPREM, 0, 0, 0})
	single(1, 0xf9, Descriptor{FYL2XP1, 0, 0, 0})
	single(1, 0xfa, Descriptor{FSQRT, 0, 0, 0})
	single(1, 0xfc, Descriptor{FRNDINT, 0, 0, 0})
	single(1, 0xfd, Descriptor{FSCALE, 0, 0, 0})

	// 0xDB: control instructions
	single(3, 0xe0, Descriptor{FENI, 0, 0, 0})
	single(3, 0xe1, Descriptor{FDISI, 0, 0, 0})
	single(3, 0xe2, Descriptor{FCLEX, 0, 0, 0})
	single(3, 0xe3, Descriptor{FINIT, 0, 0, 0})
	single(3, 0xe4, Descriptor{FSETPM, CPU286, 0, 0})

	// 0xDC: arithmetic on ST(i),ST
	stRange(4, 0, Descriptor{FADD, _STi, _ST, 0})
	stRange(4, 1, Descriptor{FMUL, _STi, _ST, 0})
	stRange(4, 4, Descriptor{FSUBR, _STi, _ST, 0})
	stRange(4, 5, Descriptor{FSUB, _STi, _ST, 0})
	stRange(4, 6, Descriptor{FDIVR, _STi, _ST, 0})
	stRange(4, 7, Descriptor{FDIV, _STi, _ST, 0})

	// 0xDD: register housekeeping
	stRange(5, 0, Descriptor{FFREE, _STi, 0, 0})
	stRange(5, 2, Descriptor{FST, _STi, 0, 0})
	stRange(5, 3, Descriptor{FSTP, _STi, 0, 0})

	// 0xDE: arithmetic with pop
	stRange(6, 0, Descriptor{FADDP, _STi, _ST, 0})
	stRange(6, 1, Descriptor{FMULP, _STi, _ST, 0})
	single(6, 0xd9, Descriptor{FCOMPP, 0, 0, 0})
	stRange(6, 4, Descriptor{FSUBRP, _STi, _ST, 0})
	stRange(6, 5, Descriptor{FSUBP, _STi, _ST, 0})
	stRange(6, 6, Descriptor{FDIVRP, _STi, _ST, 0})
	stRange(6, 7, Descriptor{FDIVP, _STi, _ST, 0})

	// 0xDF: status word to AX
	single(7, 0xe0, Descriptor{FSTSW, _AX | CPU286, 0, 0})
}

// FPU returns the descriptor for an FPU escape instruction. The ModRM byte
// must already have been read; it is part of the instruction identity. The
// ok return is false for undefined encodings.
func FPU(op byte, modrm byte) (Descriptor, bool) {
	esc := int(op - 0xd8)
	if esc < 0 || esc > 7 {
		return Descriptor{}, false
	}

	if modrm < 0xc0 {
		d := fpuMem[esc][(modrm>>3)&0x07]
		return d, d.Defined()
	}

	d, ok := fpuReg[esc][modrm]
	return d, ok
}
