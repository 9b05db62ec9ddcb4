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

// Operand shorthands for the table literals below. The naming follows the
// conventions of the processor manuals: E is a ModRM operand, G a register
// selected by the reg field, I an immediate, J a relative displacement, O a
// memory offset, A a far pointer, S a segment register.
const (
	_Eb = ModeModRM | SizeByte
	_Ev = ModeModRM | SizeWord
	_Ew = ModeModRM | SizeShort

	_Gb = ModeReg | SizeByte
	_Gv = ModeReg | SizeWord
	_Gw = ModeReg | SizeShort

	_M  = ModeModMem | SizeWord
	_Mb = ModeModMem | SizeByte
	_Mp = ModeModMem | SizeFarPtr

	_Ib  = ModeImm | SizeByte
	_IbS = ModeImm | SizeSByte
	_Iw  = ModeImm | SizeShort
	_Iv  = ModeImm | SizeWord
	_Ap  = ModeImm | SizeFarPtr

	_Jb = ModeRel | SizeSByte
	_Jv = ModeRel | SizeWord

	_Ob = ModeImmOff | SizeByte
	_Ov = ModeImmOff | SizeWord

	_One = ModeImmOne | SizeByte
	_Sw  = ModeSegReg | SizeShort

	_AL  = ModeImpReg | RegAX | SizeByte
	_CL  = ModeImpReg | RegCX | SizeByte
	_DL  = ModeImpReg | RegDX | SizeByte
	_BL  = ModeImpReg | RegBX | SizeByte
	_AH  = ModeImpReg | RegSP | SizeByte
	_CH  = ModeImpReg | RegBP | SizeByte
	_DH  = ModeImpReg | RegSI | SizeByte
	_BH  = ModeImpReg | RegDI | SizeByte
	_eAX = ModeImpReg | RegAX | SizeWord
	_eCX = ModeImpReg | RegCX | SizeWord
	_eDX = ModeImpReg | RegDX | SizeWord
	_eBX = ModeImpReg | RegBX | SizeWord
	_eSP = ModeImpReg | RegSP | SizeWord
	_eBP = ModeImpReg | RegBP | SizeWord
	_eSI = ModeImpReg | RegSI | SizeWord
	_eDI = ModeImpReg | RegDI | SizeWord
	_DX  = ModeImpReg | RegDX | SizeShort

	_ES = ModeImpSeg | SegES | SizeShort
	_CS = ModeImpSeg | SegCS | SizeShort
	_SS = ModeImpSeg | SegSS | SizeShort
	_DS = ModeImpSeg | SegDS | SizeShort
	_FS = ModeImpSeg | SegFS | SizeShort
	_GS = ModeImpSeg | SegGS | SizeShort

	_Xb = ModeDSSI | SizeByte
	_Xv = ModeDSSI | SizeWord
	_Yb = ModeESDI | SizeByte
	_Yv = ModeESDI | SizeWord

	// the 0F 20-26 moves name a 32-bit register through the rm field and a
	// control, debug or test register through the reg field
	_Rd = ModeModReg | SizeLong
	_Cd = ModeCtlReg | SizeLong
	_Dd = ModeDbgReg | SizeLong
	_Td = ModeTstReg | SizeLong
)

// primary is the one-byte opcode table shared by every model after the 8086.
// Zero-valued entries are undefined opcodes and decode to the INVALID
// placeholder.
var primary = [256]Descriptor{
	0x00: {ADD, _Eb, _Gb, 0},
	0x01: {ADD, _Ev, _Gv, 0},
	0x02: {ADD, _Gb, _Eb, 0},
	0x03: {ADD, _Gv, _Ev, 0},
	0x04: {ADD, _AL, _Ib, 0},
	0x05: {ADD, _eAX, _Iv, 0},
	0x06: {PUSH, _ES, 0, 0},
	0x07: {POP, _ES, 0, 0},
	0x08: {OR, _Eb, _Gb, 0},
	0x09: {OR, _Ev, _Gv, 0},
	0x0a: {OR, _Gb, _Eb, 0},
	0x0b: {OR, _Gv, _Ev, 0},
	0x0c: {OR, _AL, _Ib, 0},
	0x0d: {OR, _eAX, _Iv, 0},
	0x0e: {PUSH, _CS, 0, 0},
	0x0f: {TwoByteEscape, 0, 0, 0},

	0x10: {ADC, _Eb, _Gb, 0},
	0x11: {ADC, _Ev, _Gv, 0},
	0x12: {ADC, _Gb, _Eb, 0},
	0x13: {ADC, _Gv, _Ev, 0},
	0x14: {ADC, _AL, _Ib, 0},
	0x15: {ADC, _eAX, _Iv, 0},
	0x16: {PUSH, _SS, 0, 0},
	0x17: {POP, _SS, 0, 0},
	0x18: {SBB, _Eb, _Gb, 0},
	0x19: {SBB, _Ev, _Gv, 0},
	0x1a: {SBB, _Gb, _Eb, 0},
	0x1b: {SBB, _Gv, _Ev, 0},
	0x1c: {SBB, _AL, _Ib, 0},
	0x1d: {SBB, _eAX, _Iv, 0},
	0x1e: {PUSH, _DS, 0, 0},
	0x1f: {POP, _DS, 0, 0},

	0x20: {AND, _Eb, _Gb, 0},
	0x21: {AND, _Ev, _Gv, 0},
	0x22: {AND, _Gb, _Eb, 0},
	0x23: {AND, _Gv, _Ev, 0},
	0x24: {AND, _AL, _Ib, 0},
	0x25: {AND, _eAX, _Iv, 0},
	0x26: {PrefixES, 0, 0, 0},
	0x27: {DAA, 0, 0, 0},
	0x28: {SUB, _Eb, _Gb, 0},
	0x29: {SUB, _Ev, _Gv, 0},
	0x2a: {SUB, _Gb, _Eb, 0},
	0x2b: {SUB, _Gv, _Ev, 0},
	0x2c: {SUB, _AL, _Ib, 0},
	0x2d: {SUB, _eAX, _Iv, 0},
	0x2e: {PrefixCS, 0, 0, 0},
	0x2f: {DAS, 0, 0, 0},

	0x30: {XOR, _Eb, _Gb, 0},
	0x31: {XOR, _Ev, _Gv, 0},
	0x32: {XOR, _Gb, _Eb, 0},
	0x33: {XOR, _Gv, _Ev, 0},
	0x34: {XOR, _AL, _Ib, 0},
	0x35: {XOR, _eAX, _Iv, 0},
	0x36: {PrefixSS, 0, 0, 0},
	0x37: {AAA, 0, 0, 0},
	0x38: {CMP, _Eb, _Gb, 0},
	0x39: {CMP, _Ev, _Gv, 0},
	0x3a: {CMP, _Gb, _Eb, 0},
	0x3b: {CMP, _Gv, _Ev, 0},
	0x3c: {CMP, _AL, _Ib, 0},
	0x3d: {CMP, _eAX, _Iv, 0},
	0x3e: {PrefixDS, 0, 0, 0},
	0x3f: {AAS, 0, 0, 0},

	0x40: {INC, _eAX, 0, 0},
	0x41: {INC, _eCX, 0, 0},
	0x42: {INC, _eDX, 0, 0},
	0x43: {INC, _eBX, 0, 0},
	0x44: {INC, _eSP, 0, 0},
	0x45: {INC, _eBP, 0, 0},
	0x46: {INC, _eSI, 0, 0},
	0x47: {INC, _eDI, 0, 0},
	0x48: {DEC, _eAX, 0, 0},
	0x49: {DEC, _eCX, 0, 0},
	0x4a: {DEC, _eDX, 0, 0},
	0x4b: {DEC, _eBX, 0, 0},
	0x4c: {DEC, _eSP, 0, 0},
	0x4d: {DEC, _eBP, 0, 0},
	0x4e: {DEC, _eSI, 0, 0},
	0x4f: {DEC, _eDI, 0, 0},

	0x50: {PUSH, _eAX, 0, 0},
	0x51: {PUSH, _eCX, 0, 0},
	0x52: {PUSH, _eDX, 0, 0},
	0x53: {PUSH, _eBX, 0, 0},
	0x54: {PUSH, _eSP, 0, 0},
	0x55: {PUSH, _eBP, 0, 0},
	0x56: {PUSH, _eSI, 0, 0},
	0x57: {PUSH, _eDI, 0, 0},
	0x58: {POP, _eAX, 0, 0},
	0x59: {POP, _eCX, 0, 0},
	0x5a: {POP, _eDX, 0, 0},
	0x5b: {POP, _eBX, 0, 0},
	0x5c: {POP, _eSP, 0, 0},
	0x5d: {POP, _eBP, 0, 0},
	0x5e: {POP, _eSI, 0, 0},
	0x5f: {POP, _eDI, 0, 0},

	0x60: {PUSHA, CPU186, 0, 0},
	0x61: {POPA, CPU186, 0, 0},
	0x62: {BOUND, _Gv | CPU186, _M, 0},
	0x63: {ARPL, _Ew | CPU286, _Gw, 0},
	0x64: {PrefixFS, CPU386, 0, 0},
	0x65: {PrefixGS, CPU386, 0, 0},
	0x66: {PrefixOpSize, CPU386, 0, 0},
	0x67: {PrefixAddrSize, CPU386, 0, 0},
	0x68: {PUSH, _Iv | CPU186, 0, 0},
	0x69: {IMUL, _Gv | CPU186, _Ev, _Iv},
	0x6a: {PUSH, _IbS | CPU186, 0, 0},
	0x6b: {IMUL, _Gv | CPU186, _Ev, _IbS},
	0x6c: {INSB, _Yb | CPU186, _DX, 0},
	0x6d: {INSW, _Yv | CPU186, _DX, 0},
	0x6e: {OUTSB, _DX | CPU186, _Xb, 0},
	0x6f: {OUTSW, _DX | CPU186, _Xv, 0},

	0x70: {JO, _Jb, 0, 0},
	0x71: {JNO, _Jb, 0, 0},
	0x72: {JC, _Jb, 0, 0},
	0x73: {JNC, _Jb, 0, 0},
	0x74: {JZ, _Jb, 0, 0},
	0x75: {JNZ, _Jb, 0, 0},
	0x76: {JBE, _Jb, 0, 0},
	0x77: {JA, _Jb, 0, 0},
	0x78: {JS, _Jb, 0, 0},
	0x79: {JNS, _Jb, 0, 0},
	0x7a: {JP, _Jb, 0, 0},
	0x7b: {JNP, _Jb, 0, 0},
	0x7c: {JL, _Jb, 0, 0},
	0x7d: {JGE, _Jb, 0, 0},
	0x7e: {JLE, _Jb, 0, 0},
	0x7f: {JG, _Jb, 0, 0},

	0x80: {Grp1B, 0, 0, 0},
	0x81: {Grp1W, 0, 0, 0},
	0x82: {Grp1B, 0, 0, 0},
	0x83: {Grp1SW, 0, 0, 0},
	0x84: {TEST, _Eb, _Gb, 0},
	0x85: {TEST, _Ev, _Gv, 0},
	0x86: {XCHG, _Eb, _Gb, 0},
	0x87: {XCHG, _Ev, _Gv, 0},
	0x88: {MOV, _Eb, _Gb, 0},
	0x89: {MOV, _Ev, _Gv, 0},
	0x8a: {MOV, _Gb, _Eb, 0},
	0x8b: {MOV, _Gv, _Ev, 0},
	0x8c: {MOV, _Ew, _Sw, 0},
	0x8d: {LEA, _Gv, _M, 0},
	0x8e: {MOV, _Sw, _Ew, 0},
	0x8f: {POP, _Ev, 0, 0},

	0x90: {NOP, 0, 0, 0},
	0x91: {XCHG, _eAX, _eCX, 0},
	0x92: {XCHG, _eAX, _eDX, 0},
	0x93: {XCHG, _eAX, _eBX, 0},
	0x94: {XCHG, _eAX, _eSP, 0},
	0x95: {XCHG, _eAX, _eBP, 0},
	0x96: {XCHG, _eAX, _eSI, 0},
	0x97: {XCHG, _eAX, _eDI, 0},
	0x98: {CBW, 0, 0, 0},
	0x99: {CWD, 0, 0, 0},
	0x9a: {CALL, _Ap, 0, 0},
	0x9b: {WAIT, 0, 0, 0},
	0x9c: {PUSHF, 0, 0, 0},
	0x9d: {POPF, 0, 0, 0},
	0x9e: {SAHF, 0, 0, 0},
	0x9f: {LAHF, 0, 0, 0},

	0xa0: {MOV, _AL, _Ob, 0},
	0xa1: {MOV, _eAX, _Ov, 0},
	0xa2: {MOV, _Ob, _AL, 0},
	0xa3: {MOV, _Ov, _eAX, 0},
	0xa4: {MOVSB, _Yb, _Xb, 0},
	0xa5: {MOVSW, _Yv, _Xv, 0},
	0xa6: {CMPSB, _Xb, _Yb, 0},
	0xa7: {CMPSW, _Xv, _Yv, 0},
	0xa8: {TEST, _AL, _Ib, 0},
	0xa9: {TEST, _eAX, _Iv, 0},
	0xaa: {STOSB, _Yb, _AL, 0},
	0xab: {STOSW, _Yv, _eAX, 0},
	0xac: {LODSB, _AL, _Xb, 0},
	0xad: {LODSW, _eAX, _Xv, 0},
	0xae: {SCASB, _AL, _Yb, 0},
	0xaf: {SCASW, _eAX, _Yv, 0},

	0xb0: {MOV, _AL, _Ib, 0},
	0xb1: {MOV, _CL, _Ib, 0},
	0xb2: {MOV, _DL, _Ib, 0},
	0xb3: {MOV, _BL, _Ib, 0},
	0xb4: {MOV, _AH, _Ib, 0},
	0xb5: {MOV, _CH, _Ib, 0},
	0xb6: {MOV, _DH, _Ib, 0},
	0xb7: {MOV, _BH, _Ib, 0},
	0xb8: {MOV, _eAX, _Iv, 0},
	0xb9: {MOV, _eCX, _Iv, 0},
	0xba: {MOV, _eDX, _Iv, 0},
	0xbb: {MOV, _eBX, _Iv, 0},
	0xbc: {MOV, _eSP, _Iv, 0},
	0xbd: {MOV, _eBP, _Iv, 0},
	0xbe: {MOV, _eSI, _Iv, 0},
	0xbf: {MOV, _eDI, _Iv, 0},

	0xc0: {Grp2B, CPU186, 0, 0},
	0xc1: {Grp2W, CPU186, 0, 0},
	0xc2: {RET, _Iw, 0, 0},
	0xc3: {RET, 0, 0, 0},
	0xc4: {LES, _Gv, _Mp, 0},
	0xc5: {LDS, _Gv, _Mp, 0},
	0xc6: {MOV, _Eb, _Ib, 0},
	0xc7: {MOV, _Ev, _Iv, 0},
	0xc8: {ENTER, _Iw | CPU186, _Ib, 0},
	0xc9: {LEAVE, CPU186, 0, 0},
	0xca: {RETF, _Iw, 0, 0},
	0xcb: {RETF, 0, 0, 0},
	0xcc: {INT3, 0, 0, 0},
	0xcd: {INT, _Ib, 0, 0},
	0xce: {INTO, 0, 0, 0},
	0xcf: {IRET, 0, 0, 0},

	0xd0: {Grp2B1, 0, 0, 0},
	0xd1: {Grp2W1, 0, 0, 0},
	0xd2: {Grp2BCL, 0, 0, 0},
	0xd3: {Grp2WCL, 0, 0, 0},
	0xd4: {AAM, _Ib, 0, 0},
	0xd5: {AAD, _Ib, 0, 0},
	0xd6: {SALC, 0, 0, 0},
	0xd7: {XLAT, 0, 0, 0},
	0xd8: {FPUEscape, 0, 0, 0},
	0xd9: {FPUEscape, 0, 0, 0},
	0xda: {FPUEscape, 0, 0, 0},
	0xdb: {FPUEscape, 0, 0, 0},
	0xdc: {FPUEscape, 0, 0, 0},
	0xdd: {FPUEscape, 0, 0, 0},
	0xde: {FPUEscape, 0, 0, 0},
	0xdf: {FPUEscape, 0, 0, 0},

	0xe0: {LOOPNZ, _Jb, 0, 0},
	0xe1: {LOOPZ, _Jb, 0, 0},
	0xe2: {LOOP, _Jb, 0, 0},
	0xe3: {JCXZ, _Jb, 0, 0},
	0xe4: {IN, _AL, _Ib, 0},
	0xe5: {IN, _eAX, _Ib, 0},
	0xe6: {OUT, _Ib, _AL, 0},
	0xe7: {OUT, _Ib, _eAX, 0},
	0xe8: {CALL, _Jv, 0, 0},
	0xe9: {JMP, _Jv, 0, 0},
	0xea: {JMP, _Ap, 0, 0},
	0xeb: {JMP, _Jb, 0, 0},
	0xec: {IN, _AL, _DX, 0},
	0xed: {IN, _eAX, _DX, 0},
	0xee: {OUT, _DX, _AL, 0},
	0xef: {OUT, _DX, _eAX, 0},

	0xf0: {PrefixLock, 0, 0, 0},
	0xf2: {PrefixRepNZ, 0, 0, 0},
	0xf3: {PrefixRepZ, 0, 0, 0},
	0xf4: {HLT, 0, 0, 0},
	0xf5: {CMC, 0, 0, 0},
	0xf6: {Grp3B, 0, 0, 0},
	0xf7: {Grp3W, 0, 0, 0},
	0xf8: {CLC, 0, 0, 0},
	0xf9: {STC, 0, 0, 0},
	0xfa: {CLI, 0, 0, 0},
	0xfb: {STI, 0, 0, 0},
	0xfc: {CLD, 0, 0, 0},
	0xfd: {STD, 0, 0, 0},
	0xfe: {Grp4, 0, 0, 0},
	0xff: {Grp5, 0, 0, 0},
}

// primary8086 is the 8086 variant of the primary table. The only difference
// is opcode 0x0F, which the 8086 decodes as POP CS rather than as the escape
// to the two-byte opcode space. Built once at initialisation; never patched
// afterwards.
var primary8086 [256]Descriptor

func init() {
	primary8086 = primary
	primary8086[0x0f] = Descriptor{POP, _CS, 0, 0}
}

// twoByte holds the descriptors of the two-byte (0x0F escape) opcode space,
// keyed by the second opcode byte. The space is sparse so a map is used
// rather than an array.
var twoByte = map[byte]Descriptor{
	0x00: {Grp6, CPU286, 0, 0},
	0x01: {Grp7, CPU286, 0, 0},
	0x02: {LAR, _Gv | CPU286, _Ew, 0},
	0x03: {LSL, _Gv | CPU286, _Ew, 0},
	0x05: {LOADALL, CPU286, 0, 0},
	0x06: {CLTS, CPU286, 0, 0},

	0x20: {MOV, _Rd | CPU386, _Cd, 0},
	0x21: {MOV, _Rd | CPU386, _Dd, 0},
	0x22: {MOV, _Cd | CPU386, _Rd, 0},
	0x23: {MOV, _Dd | CPU386, _Rd, 0},
	0x24: {MOV, _Rd | CPU386, _Td, 0},
	0x26: {MOV, _Td | CPU386, _Rd, 0},

	0x80: {JO, _Jv | CPU386, 0, 0},
	0x81: {JNO, _Jv | CPU386, 0, 0},
	0x82: {JC, _Jv | CPU386, 0, 0},
	0x83: {JNC, _Jv | CPU386, 0, 0},
	0x84: {JZ, _Jv | CPU386, 0, 0},
	0x85: {JNZ, _Jv | CPU386, 0, 0},
	0x86: {JBE, _Jv | CPU386, 0, 0},
	0x87: {JA, _Jv | CPU386, 0, 0},
	0x88: {JS, _Jv | CPU386, 0, 0},
	0x89: {JNS, _Jv | CPU386, 0, 0},
	0x8a: {JP, _Jv | CPU386, 0, 0},
	0x8b: {JNP, _Jv | CPU386, 0, 0},
	0x8c: {JL, _Jv | CPU386, 0, 0},
	0x8d: {JGE, _Jv | CPU386, 0, 0},
	0x8e: {JLE, _Jv | CPU386, 0, 0},
	0x8f: {JG, _Jv | CPU386, 0, 0},

	0x90: {SETO, _Eb | CPU386, 0, 0},
	0x91: {SETNO, _Eb | CPU386, 0, 0},
	0x92: {SETC, _Eb | CPU386, 0, 0},
	0x93: {SETNC, _Eb | CPU386, 0, 0},
	0x94: {SETZ, _Eb | CPU386, 0, 0},
	0x95: {SETNZ, _Eb | CPU386, 0, 0},
	0x96: {SETBE, _Eb | CPU386, 0, 0},
	0x97: {SETA, _Eb | CPU386, 0, 0},
	0x98: {SETS, _Eb | CPU386, 0, 0},
	0x99: {SETNS, _Eb | CPU386, 0, 0},
	0x9a: {SETP, _Eb | CPU386, 0, 0},
	0x9b: {SETNP, _Eb | CPU386, 0, 0},
	0x9c: {SETL, _Eb | CPU386, 0, 0},
	0x9d: {SETGE, _Eb | CPU386, 0, 0},
	0x9e: {SETLE, _Eb | CPU386, 0, 0},
	0x9f: {SETG, _Eb | CPU386, 0, 0},

	0xa0: {PUSH, _FS | CPU386, 0, 0},
	0xa1: {POP, _FS | CPU386, 0, 0},
	0xa3: {BT, _Ev | CPU386, _Gv, 0},
	0xa4: {SHLD, _Ev | CPU386, _Gv, _Ib},
	0xa5: {SHLD, _Ev | CPU386, _Gv, _CL},
	0xa8: {PUSH, _GS | CPU386, 0, 0},
	0xa9: {POP, _GS | CPU386, 0, 0},
	0xab: {BTS, _Ev | CPU386, _Gv, 0},
	0xac: {SHRD, _Ev | CPU386, _Gv, _Ib},
	0xad: {SHRD, _Ev | CPU386, _Gv, _CL},
	0xaf: {IMUL, _Gv | CPU386, _Ev, 0},

	0xb2: {LSS, _Gv | CPU386, _Mp, 0},
	0xb4: {LFS, _Gv | CPU386, _Mp, 0},
	0xb5: {LGS, _Gv | CPU386, _Mp, 0},
	0xb6: {MOVZX, _Gv | CPU386, _Eb, 0},
	0xb7: {MOVZX, _Gv | CPU386, _Ew, 0},
	0xba: {Grp8, CPU386, 0, 0},
	0xbb: {BTC, _Ev | CPU386, _Gv, 0},
	0xbc: {BSF, _Gv | CPU386, _Ev, 0},
	0xbd: {BSR, _Gv | CPU386, _Ev, 0},
	0xbe: {MOVSX, _Gv | CPU386, _Eb, 0},
	0xbf: {MOVSX, _Gv | CPU386, _Ew, 0},
}

// groups holds the eight-way descriptor tables of the instruction groups,
// keyed by group operator and indexed by the ModRM reg field.
var groups = map[Operator][8]Descriptor{
	Grp1B: {
		{ADD, _Eb, _Ib, 0},
		{OR, _Eb, _Ib, 0},
		{ADC, _Eb, _Ib, 0},
		{SBB, _Eb, _Ib, 0},
		{AND, _Eb, _Ib, 0},
		{SUB, _Eb, _Ib, 0},
		{XOR, _Eb, _Ib, 0},
		{CMP, _Eb, _Ib, 0},
	},
	Grp1W: {
		{ADD, _Ev, _Iv, 0},
		{OR, _Ev, _Iv, 0},
		{ADC, _Ev, _Iv, 0},
		{SBB, _Ev, _Iv, 0},
		{AND, _Ev, _Iv, 0},
		{SUB, _Ev, _Iv, 0},
		{XOR, _Ev, _Iv, 0},
		{CMP, _Ev, _Iv, 0},
	},
	Grp1SW: {
		{ADD, _Ev, _IbS, 0},
		{OR, _Ev, _IbS, 0},
		{ADC, _Ev, _IbS, 0},
		{SBB, _Ev, _IbS, 0},
		{AND, _Ev, _IbS, 0},
		{SUB, _Ev, _IbS, 0},
		{XOR, _Ev, _IbS, 0},
		{CMP, _Ev, _IbS, 0},
	},
	Grp2B: {
		{ROL, _Eb, _Ib, 0},
		{ROR, _Eb, _Ib, 0},
		{RCL, _Eb, _Ib, 0},
		{RCR, _Eb, _Ib, 0},
		{SHL, _Eb, _Ib, 0},
		{SHR, _Eb, _Ib, 0},
		{},
		{SAR, _Eb, _Ib, 0},
	},
	Grp2W: {
		{ROL, _Ev, _Ib, 0},
		{ROR, _Ev, _Ib, 0},
		{RCL, _Ev, _Ib, 0},
		{RCR, _Ev, _Ib, 0},
		{SHL, _Ev, _Ib, 0},
		{SHR, _Ev, _Ib, 0},
		{},
		{SAR, _Ev, _Ib, 0},
	},
	Grp2B1: {
		{ROL, _Eb, _One, 0},
		{ROR, _Eb, _One, 0},
		{RCL, _Eb, _One, 0},
		{RCR, _Eb, _One, 0},
		{SHL, _Eb, _One, 0},
		{SHR, _Eb, _One, 0},
		{},
		{SAR, _Eb, _One, 0},
	},
	Grp2W1: {
		{ROL, _Ev, _One, 0},
		{ROR, _Ev, _One, 0},
		{RCL, _Ev, _One, 0},
		{RCR, _Ev, _One, 0},
		{SHL, _Ev, _One, 0},
		{SHR, _Ev, _One, 0},
		{},
		{SAR, _Ev, _One, 0},
	},
	Grp2BCL: {
		{ROL, _Eb, _CL, 0},
		{ROR, _Eb, _CL, 0},
		{RCL, _Eb, _CL, 0},
		{RCR, _Eb, _CL, 0},
		{SHL, _Eb, _CL, 0},
		{SHR, _Eb, _CL, 0},
		{},
		{SAR, _Eb, _CL, 0},
	},
	Grp2WCL: {
		{ROL, _Ev, _CL, 0},
		{ROR, _Ev, _CL, 0},
		{RCL, _Ev, _CL, 0},
		{RCR, _Ev, _CL, 0},
		{SHL, _Ev, _CL, 0},
		{SHR, _Ev, _CL, 0},
		{},
		{SAR, _Ev, _CL, 0},
	},
	Grp3B: {
		{TEST, _Eb, _Ib, 0},
		{},
		{NOT, _Eb, 0, 0},
		{NEG, _Eb, 0, 0},
		{MUL, _Eb, 0, 0},
		{IMUL, _Eb, 0, 0},
		{DIV, _Eb, 0, 0},
		{IDIV, _Eb, 0, 0},
	},
	Grp3W: {
		{TEST, _Ev, _Iv, 0},
		{},
		{NOT, _Ev, 0, 0},
		{NEG, _Ev, 0, 0},
		{MUL, _Ev, 0, 0},
		{IMUL, _Ev, 0, 0},
		{DIV, _Ev, 0, 0},
		{IDIV, _Ev, 0, 0},
	},
	Grp4: {
		{INC, _Eb, 0, 0},
		{DEC, _Eb, 0, 0},
		{}, {}, {}, {}, {}, {},
	},
	Grp5: {
		{INC, _Ev, 0, 0},
		{DEC, _Ev, 0, 0},
		{CALL, _Ev, 0, 0},
		{CALL, _Mp, 0, 0},
		{JMP, _Ev, 0, 0},
		{JMP, _Mp, 0, 0},
		{PUSH, _Ev, 0, 0},
		{},
	},
	Grp6: {
		{SLDT, _Ew | CPU286, 0, 0},
		{STR, _Ew | CPU286, 0, 0},
		{LLDT, _Ew | CPU286, 0, 0},
		{LTR, _Ew | CPU286, 0, 0},
		{VERR, _Ew | CPU286, 0, 0},
		{VERW, _Ew | CPU286, 0, 0},
		{}, {},
	},
	Grp7: {
		{SGDT, _M | CPU286, 0, 0},
		{SIDT, _M | CPU286, 0, 0},
		{LGDT, _M | CPU286, 0, 0},
		{LIDT, _M | CPU286, 0, 0},
		{SMSW, _Ew | CPU286, 0, 0},
		{},
		{LMSW, _Ew | CPU286, 0, 0},
		{},
	},
	Grp8: {
		{}, {}, {}, {},
		{BT, _Ev | CPU386, _Ib, 0},
		{BTS, _Ev | CPU386, _Ib, 0},
		{BTR, _Ev | CPU386, _Ib, 0},
		{BTC, _Ev | CPU386, _Ib, 0},
	},
}
