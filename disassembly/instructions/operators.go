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

// Operator identifies the instruction selected by a Descriptor. Most
// operators map directly to a mnemonic. Operators beyond GroupFirst are
// instruction groups: the real descriptor is found in an eight-way table
// keyed by the ModRM reg field.
type Operator int

// The list of direct operators.
const (
	None Operator = iota
	AAA
	AAD
	AAM
	AAS
	ADC
	ADD
	AND
	ARPL
	BOUND
	BSF
	BSR
	BT
	BTC
	BTR
	BTS
	CALL
	CBW
	CLC
	CLD
	CLI
	CLTS
	CMC
	CMP
	CMPSB
	CMPSW
	CWD
	DAA
	DAS
	DEC
	DIV
	ENTER
	HLT
	IDIV
	IMUL
	IN
	INC
	INSB
	INSW
	INT
	INT3
	INTO
	IRET
	JO
	JNO
	JC
	JNC
	JZ
	JNZ
	JBE
	JA
	JS
	JNS
	JP
	JNP
	JL
	JGE
	JLE
	JG
	JCXZ
	JMP
	LAHF
	LAR
	LDS
	LEA
	LEAVE
	LES
	LFS
	LGDT
	LGS
	LIDT
	LLDT
	LMSW
	LOADALL
	LODSB
	LODSW
	LOOP
	LOOPNZ
	LOOPZ
	LSL
	LSS
	LTR
	MOV
	MOVSB
	MOVSW
	MOVSX
	MOVZX
	MUL
	NEG
	NOP
	NOT
	OR
	OUT
	OUTSB
	OUTSW
	POP
	POPA
	POPF
	PUSH
	PUSHA
	PUSHF
	RCL
	RCR
	RET
	RETF
	ROL
	ROR
	SAHF
	SALC
	SAR
	SBB
	SCASB
	SCASW
	SETO
	SETNO
	SETC
	SETNC
	SETZ
	SETNZ
	SETBE
	SETA
	SETS
	SETNS
	SETP
	SETNP
	SETL
	SETGE
	SETLE
	SETG
	SGDT
	SHL
	SHLD
	SHR
	SHRD
	SIDT
	SLDT
	SMSW
	STC
	STD
	STI
	STOSB
	STOSW
	STR
	SUB
	TEST
	VERR
	VERW
	WAIT
	XCHG
	XLAT
	XOR

	// FPU operators
	F2XM1
	FABS
	FADD
	FADDP
	FBLD
	FBSTP
	FCHS
	FCLEX
	FCOM
	FCOMP
	FCOMPP
	FDECSTP
	FDISI
	FDIV
	FDIVP
	FDIVR
	FDIVRP
	FENI
	FFREE
	FIADD
	FICOM
	FICOMP
	FIDIV
	FIDIVR
	FILD
	FIMUL
	FINCSTP
	FINIT
	FIST
	FISTP
	FISUB
	FISUBR
	FLD
	FLD1
	FLDCW
	FLDENV
	FLDL2E
	FLDL2T
	FLDLG2
	FLDLN2
	FLDPI
	FLDZ
	FMUL
	FMULP
	FNOP
	FPATAN
	FPREM
	FPTAN
	FRNDINT
	FRSTOR
	FSAVE
	FSCALE
	FSETPM
	FSQRT
	FST
	FSTCW
	FSTENV
	FSTP
	FSTSW
	FSUB
	FSUBP
	FSUBR
	FSUBRP
	FTST
	FXAM
	FXCH
	FXTRACT
	FYL2X
	FYL2XP1

	// prefix operators. the decoder consumes these before the descriptor
	// table is consulted; they only reach the output when a decode gives up
	// on a pathological prefix run
	PrefixES
	PrefixCS
	PrefixSS
	PrefixDS
	PrefixFS
	PrefixGS
	PrefixOpSize
	PrefixAddrSize
	PrefixLock
	PrefixRepNZ
	PrefixRepZ

	// table escape markers. never formatted
	TwoByteEscape
	FPUEscape
)

// GroupFirst is the boundary between direct operators and group operators. A
// descriptor whose operator is at or beyond GroupFirst does not name an
// instruction; it names the group table holding the real descriptor.
const GroupFirst Operator = 0x1000

// The list of group operators.
const (
	Grp1B Operator = GroupFirst + iota
	Grp1W
	Grp1SW
	Grp2B
	Grp2W
	Grp2B1
	Grp2W1
	Grp2BCL
	Grp2WCL
	Grp3B
	Grp3W
	Grp4
	Grp5
	Grp6
	Grp7
	Grp8
)

// IsGroup returns true if the operator names a group table rather than an
// instruction.
func (o Operator) IsGroup() bool {
	return o >= GroupFirst
}

// IsPrefix returns true if the operator is an instruction prefix.
func (o Operator) IsPrefix() bool {
	return o >= PrefixES && o <= PrefixRepZ
}

// Invalid is the mnemonic given to undefined opcodes. Disassembly of
// arbitrary memory must never fail so undefined opcodes decode to a
// placeholder instruction rather than an error.
const Invalid = "INVALID"

func (o Operator) String() string {
	if s, ok := operatorNames[o]; ok {
		return s
	}
	return Invalid
}

var operatorNames = map[Operator]string{
	AAA:     "AAA",
	AAD:     "AAD",
	AAM:     "AAM",
	AAS:     "AAS",
	ADC:     "ADC",
	ADD:     "ADD",
	AND:     "AND",
	ARPL:    "ARPL",
	BOUND:   "BOUND",
	BSF:     "BSF",
	BSR:     "BSR",
	BT:      "BT",
	BTC:     "BTC",
	BTR:     "BTR",
	BTS:     "BTS",
	CALL:    "CALL",
	CBW:     "CBW",
	CLC:     "CLC",
	CLD:     "CLD",
	CLI:     "CLI",
	CLTS:    "CLTS",
	CMC:     "CMC",
	CMP:     "CMP",
	CMPSB:   "CMPSB",
	CMPSW:   "CMPSW",
	CWD:     "CWD",
	DAA:     "DAA",
	DAS:     "DAS",
	DEC:     "DEC",
	DIV:     "DIV",
	ENTER:   "ENTER",
	HLT:     "HLT",
	IDIV:    "IDIV",
	IMUL:    "IMUL",
	IN:      "IN",
	INC:     "INC",
	INSB:    "INSB",
	INSW:    "INSW",
	INT:     "INT",
	INT3:    "INT3",
	INTO:    "INTO",
	IRET:    "IRET",
	JO:      "JO",
	JNO:     "JNO",
	JC:      "JC",
	JNC:     "JNC",
	JZ:      "JZ",
	JNZ:     "JNZ",
	JBE:     "JBE",
	JA:      "JA",
	JS:      "JS",
	JNS:     "JNS",
	JP:      "JP",
	JNP:     "JNP",
	JL:      "JL",
	JGE:     "JGE",
	JLE:     "JLE",
	JG:      "JG",
	JCXZ:    "JCXZ",
	JMP:     "JMP",
	LAHF:    "LAHF",
	LAR:     "LAR",
	LDS:     "LDS",
	LEA:     "LEA",
	LEAVE:   "LEAVE",
	LES:     "LES",
	LFS:     "LFS",
	LGDT:    "LGDT",
	LGS:     "LGS",
	LIDT:    "LIDT",
	LLDT:    "LLDT",
	LMSW:    "LMSW",
	LOADALL: "LOADALL",
	LODSB:   "LODSB",
	LODSW:   "LODSW",
	LOOP:    "LOOP",
	LOOPNZ:  "LOOPNZ",
	LOOPZ:   "LOOPZ",
	LSL:     "LSL",
	LSS:     "LSS",
	LTR:     "LTR",
	MOV:     "MOV",
	MOVSB:   "MOVSB",
	MOVSW:   "MOVSW",
	MOVSX:   "MOVSX",
	MOVZX:   "MOVZX",
	MUL:     "MUL",
	NEG:     "NEG",
	NOP:     "NOP",
	NOT:     "NOT",
	OR:      "OR",
	OUT:     "OUT",
	OUTSB:   "OUTSB",
	OUTSW:   "OUTSW",
	POP:     "POP",
	POPA:    "POPA",
	POPF:    "POPF",
	PUSH:    "PUSH",
	PUSHA:   "PUSHA",
	PUSHF:   "PUSHF",
	RCL:     "RCL",
	RCR:     "RCR",
	RET:     "RET",
	RETF:    "RETF",
	ROL:     "ROL",
	ROR:     "ROR",
	SAHF:    "SAHF",
	SALC:    "SALC",
	SAR:     "SAR",
	SBB:     "SBB",
	SCASB:   "SCASB",
	SCASW:   "SCASW",
	SETO:    "SETO",
	SETNO:   "SETNO",
	SETC:    "SETC",
	SETNC:   "SETNC",
	SETZ:    "SETZ",
	SETNZ:   "SETNZ",
	SETBE:   "SETBE",
	SETA:    "SETA",
	SETS:    "SETS",
	SETNS:   "SETNS",
	SETP:    "SETP",
	SETNP:   "SETNP",
	SETL:    "SETL",
	SETGE:   "SETGE",
	SETLE:   "SETLE",
	SETG:    "SETG",
	SGDT:    "SGDT",
	SHL:     "SHL",
	SHLD:    "SHLD",
	SHR:     "SHR",
	SHRD:    "SHRD",
	SIDT:    "SIDT",
	SLDT:    "SLDT",
	SMSW:    "SMSW",
	STC:     "STC",
	STD:     "STD",
	STI:     "STI",
	STOSB:   "STOSB",
	STOSW:   "STOSW",
	STR:     "STR",
	SUB:     "SUB",
	TEST:    "TEST",
	VERR:    "VERR",
	VERW:    "VERW",
	WAIT:    "WAIT",
	XCHG:    "XCHG",
	XLAT:    "XLAT",
	XOR:     "XOR",

	F2XM1:   "F2XM1",
	FABS:    "FABS",
	FADD:    "FADD",
	FADDP:   "FADDP",
	FBLD:    "FBLD",
	FBSTP:   "FBSTP",
	FCHS:    "FCHS",
	FCLEX:   "FCLEX",
	FCOM:    "FCOM",
	FCOMP:   "FCOMP",
	FCOMPP:  "FCOMPP",
	FDECSTP: "FDECSTP",
	FDISI:   "FDISI",
	FDIV:    "FDIV",
	FDIVP:   "FDIVP",
	FDIVR:   "FDIVR",
	FDIVRP:  "FDIVRP",
	FENI:    "FENI",
	FFREE:   "FFREE",
	FIADD:   "FIADD",
	FICOM:   "FICOM",
	FICOMP:  "FICOMP",
	FIDIV:   "FIDIV",
	FIDIVR:  "FIDIVR",
	FILD:    "FILD",
	FIMUL:   "FIMUL",
	FINCSTP: "FINCSTP",
	FINIT:   "FINIT",
	FIST:    "FIST",
	FISTP:   "FISTP",
	FISUB:   "FISUB",
	FISUBR:  "FISUBR",
	FLD:     "FLD",
	FLD1:    "FLD1",
	FLDCW:   "FLDCW",
	FLDENV:  "FLDENV",
	FLDL2E:  "FLDL2E",
	FLDL2T:  "FLDL2T",
	FLDLG2:  "FLDLG2",
	FLDLN2:  "FLDLN2",
	FLDPI:   "FLDPI",
	FLDZ:    "FLDZ",
	FMUL:    "FMUL",
	FMULP:   "FMULP",
	FNOP:    "FNOP",
	FPATAN:  "FPATAN",
	FPREM:   "FPREM",
	FPTAN:   "FPTAN",
	FRNDINT: "FRNDINT",
	FRSTOR:  "FRSTOR",
	FSAVE:   "FSAVE",
	FSCALE:  "FSCALE",
	FSETPM:  "FSETPM",
	FSQRT:   "FSQRT",
	FST:     "FST",
	FSTCW:   "FSTCW",
	FSTENV:  "FSTENV",
	FSTP:    "FSTP",
	FSTSW:   "FSTSW",
	FSUB:    "FSUB",
	FSUBP:   "FSUBP",
	FSUBR:   "FSUBR",
	FSUBRP:  "FSUBRP",
	FTST:    "FTST",
	FXAM:    "FXAM",
	FXCH:    "FXCH",
	FXTRACT: "FXTRACT",
	FYL2X:   "FYL2X",
	FYL2XP1: "FYL2XP1",

	PrefixES:       "ES:",
	PrefixCS:       "CS:",
	PrefixSS:       "SS:",
	PrefixDS:       "DS:",
	PrefixFS:       "FS:",
	PrefixGS:       "GS:",
	PrefixOpSize:   "OS:",
	PrefixAddrSize: "AS:",
	PrefixLock:     "LOCK",
	PrefixRepNZ:    "REPNZ",
	PrefixRepZ:     "REPZ",
}

// operandSizeVariants maps the mnemonics whose spelling changes when the
// 32bit operand-size attribute is in effect.
var operandSizeVariants = map[Operator]string{
	CBW:   "CWDE",
	CWD:   "CDQ",
	CMPSW: "CMPSD",
	INSW:  "INSD",
	IRET:  "IRETD",
	JCXZ:  "JECXZ",
	LODSW: "LODSD",
	MOVSW: "MOVSD",
	OUTSW: "OUTSD",
	POPA:  "POPAD",
	POPF:  "POPFD",
	PUSHA: "PUSHAD",
	PUSHF: "PUSHFD",
	SCASW: "SCASD",
	STOSW: "STOSD",
}

// Mnemonic returns the display mnemonic for the operator, accounting for the
// current operand-size attribute.
func (o Operator) Mnemonic(opSize32 bool) string {
	if opSize32 {
		if s, ok := operandSizeVariants[o]; ok {
			return s
		}
	}
	return o.String()
}

// stringOperators enumerates the operators whose implied DS:[SI]/ES:[DI]
// operands are suppressed in the formatted output.
var stringOperators = map[Operator]bool{
	CMPSB: true, CMPSW: true,
	INSB: true, INSW: true,
	LODSB: true, LODSW: true,
	MOVSB: true, MOVSW: true,
	OUTSB: true, OUTSW: true,
	SCASB: true, SCASW: true,
	STOSB: true, STOSW: true,
}

// IsString returns true for the string instructions. String instructions
// suppress their implied operands in the formatted output.
func (o Operator) IsString() bool {
	return stringOperators[o]
}
