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

package disassembly_test

import (
	"testing"

	"github.com/gopher86/gopher86/debugger/dbgmem"
	"github.com/gopher86/gopher86/disassembly"
	"github.com/gopher86/gopher86/hardware/cpu"
	"github.com/gopher86/gopher86/hardware/memory/memorymap"
	"github.com/gopher86/gopher86/symbols"
	"github.com/gopher86/gopher86/test"
)

type mockCPU struct {
	model cpu.Model
	live  map[uint16]cpu.SegInfo
}

func (m *mockCPU) Model() cpu.Model      { return m.model }
func (m *mockCPU) Mode() memorymap.Space { return memorymap.SpaceReal }
func (m *mockCPU) CS() (uint16, uint32)  { return 0, 0 }
func (m *mockCPU) Halted() bool          { return false }
func (m *mockCPU) RequestHalt()          {}
func (m *mockCPU) RunBurst(max int) int  { return 0 }

func (m *mockCPU) LiveSegment(sel uint16) (cpu.SegInfo, bool) {
	s, ok := m.live[sel]
	return s, ok
}

func (m *mockCPU) Descriptor(sel uint16, space memorymap.Space) (cpu.SegInfo, bool) {
	return cpu.SegInfo{}, false
}

type mockMem struct {
	data []byte
}

func (m *mockMem) ReadPhysical(addr uint32, width int, mapped bool) (uint32, bool) {
	var v uint32
	for i := 0; i < width; i++ {
		a := addr + uint32(i)
		if a >= uint32(len(m.data)) {
			return 0, false
		}
		v |= uint32(m.data[a]) << (8 * i)
	}
	return v, true
}

func (m *mockMem) WritePhysical(addr uint32, data uint32, width int, mapped bool) bool {
	for i := 0; i < width; i++ {
		a := addr + uint32(i)
		if a >= uint32(len(m.data)) {
			return false
		}
		m.data[a] = byte(data >> (8 * i))
	}
	return true
}

// a disassembly of the supplied code laid out at linear address zero, with a
// zero-based code segment
func testDisassembly(model cpu.Model, code []byte) *disassembly.Disassembly {
	c := &mockCPU{
		model: model,
		live: map[uint16]cpu.SegInfo{
			0x0000: {Base: 0, Limit: 0xffff},
		},
	}
	mem := &mockMem{data: make([]byte, 0x10000)}
	copy(mem.data, code)
	dm := &dbgmem.DbgMem{CPU: c, Mem: mem}
	return disassembly.NewDisassembly(dm, nil, model)
}

func origin() dbgmem.Address {
	return dbgmem.NewSegmented(memorymap.SpaceReal, 0x0000, 0x0000)
}

func TestDecodeImmediate(t *testing.T) {
	dsm := testDisassembly(cpu.Model80386, []byte{0xb8, 0x34, 0x12})

	addr := origin()
	e, err := dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "MOV")
	test.ExpectEquality(t, e.Operand, "AX,1234")
	test.ExpectEquality(t, e.Length(), 3)
	test.ExpectSuccess(t, e.Complete)
	test.ExpectSuccess(t, e.Supported)
	test.ExpectSuccess(t, e.Defined)

	// cursor advanced past the instruction
	test.ExpectEquality(t, addr.Offset, uint32(3))
}

func TestDecodeOperandSizePrefix(t *testing.T) {
	dsm := testDisassembly(cpu.Model80386, []byte{0x66, 0xb8, 0x78, 0x56, 0x34, 0x12})

	addr := origin()
	e, err := dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "MOV")
	test.ExpectEquality(t, e.Operand, "EAX,12345678")
	test.ExpectEquality(t, e.Length(), 6)
}

func TestDecodeModRM(t *testing.T) {
	dsm := testDisassembly(cpu.Model80386, []byte{
		0x8b, 0x47, 0x08, // MOV AX,[BX+08]
		0x8b, 0x47, 0xf8, // MOV AX,[BX-08]
		0x26, 0x8b, 0x07, // MOV AX,ES:[BX]
		0x83, 0xc3, 0x05, // ADD BX,0005
	})

	addr := origin()

	e, err := dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "MOV")
	test.ExpectEquality(t, e.Operand, "AX,[BX+08]")

	e, err = dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operand, "AX,[BX-08]")

	e, err = dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operand, "AX,ES:[BX]")

	// sign-extended byte immediate displayed at full operand width
	e, err = dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "ADD")
	test.ExpectEquality(t, e.Operand, "BX,0005")

	test.ExpectEquality(t, addr.Offset, uint32(12))
}

func TestDecodeRelative(t *testing.T) {
	// JMP -2 at offset zero. the target is relative to the next instruction
	dsm := testDisassembly(cpu.Model80386, []byte{0xeb, 0xfe})

	addr := origin()
	e, err := dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "JMP")
	test.ExpectEquality(t, e.Operand, "0000")
	test.ExpectEquality(t, e.Length(), 2)
}

func TestDecodeStringOps(t *testing.T) {
	dsm := testDisassembly(cpu.Model80386, []byte{
		0xa5,       // MOVSW
		0x66, 0xa5, // MOVSD
		0xf3, 0xa4, // REPZ MOVSB
	})

	addr := origin()

	e, err := dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "MOVSW")
	test.ExpectEquality(t, e.Operand, "")

	// the operand size attribute renames the mnemonic
	e, err = dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "MOVSD")

	e, err = dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "REPZ MOVSB")
}

func TestDecodeFPU(t *testing.T) {
	dsm := testDisassembly(cpu.Model80386, []byte{
		0xd9, 0xfa, // FSQRT
		0xdc, 0xc1, // FADD ST(1),ST
		0xd8, 0x06, 0x34, 0x12, // FADD REAL32 [1234]
	})

	addr := origin()

	e, err := dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "FSQRT")
	test.ExpectEquality(t, e.Operand, "")

	e, err = dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "FADD")
	test.ExpectEquality(t, e.Operand, "ST(1),ST")

	e, err = dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "FADD")
	test.ExpectEquality(t, e.Operand, "REAL32 [1234]")
}

func TestModelVariants(t *testing.T) {
	// 0x0F pops CS on the 8086
	dsm := testDisassembly(cpu.Model8086, []byte{0x0f})
	addr := origin()
	e, err := dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "POP")
	test.ExpectEquality(t, e.Operand, "CS")
	test.ExpectEquality(t, e.Length(), 1)

	// on later models it is the two-byte escape. 0x0F 0xFF is undefined
	dsm = testDisassembly(cpu.Model80386, []byte{0x0f, 0xff})
	addr = origin()
	e, err = dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "INVALID")
	test.ExpectFailure(t, e.Defined)
	test.ExpectEquality(t, e.Length(), 2)
}

func TestModelGating(t *testing.T) {
	// MOVZX is a 386 instruction. on an 8086 the 0x0F byte is POP CS so the
	// gate is tested on the 286, which has the escape but not the instruction
	dsm := testDisassembly(cpu.Model80286, []byte{0x0f, 0xb6, 0xc3})
	addr := origin()
	e, err := dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "MOVZX")
	test.ExpectFailure(t, e.Supported)
}

func TestModelGatingGroup(t *testing.T) {
	// the 0xC0 shift-with-immediate group arrived with the 80186. its gate
	// sits on the group's table entry, not on the dispatched rows, and must
	// survive the dispatch
	dsm := testDisassembly(cpu.Model8086, []byte{0xc0, 0xe0, 0x05})
	addr := origin()
	e, err := dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "SHL")
	test.ExpectEquality(t, e.Operand, "AL,05")
	test.ExpectFailure(t, e.Supported)
	test.ExpectEquality(t, e.Annotation, " requires 80186")

	dsm = testDisassembly(cpu.Model80186, []byte{0xc0, 0xe0, 0x05})
	addr = origin()
	e, err = dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operator, "SHL")
	test.ExpectSuccess(t, e.Supported)
}

func TestDecodeSystemRegisters(t *testing.T) {
	// the control/debug/test register moves are 386 encodings in the
	// two-byte table. the register operand comes from the rm field and is
	// always 32 bits wide, whatever the operand size attribute
	dsm := testDisassembly(cpu.Model80386, []byte{
		0x0f, 0x20, 0xc0, // MOV EAX,CR0
		0x0f, 0x22, 0xd8, // MOV CR3,EAX
		0x0f, 0x21, 0xf9, // MOV ECX,DR7
		0x0f, 0x26, 0xf3, // MOV TR6,EBX
	})
	addr := origin()

	for _, expected := range []string{"EAX,CR0", "CR3,EAX", "ECX,DR7", "TR6,EBX"} {
		e, err := dsm.Decode(&addr)
		test.DemandSuccess(t, err)
		test.ExpectEquality(t, e.Operator, "MOV")
		test.ExpectEquality(t, e.Operand, expected)
		test.ExpectSuccess(t, e.Supported)
		test.ExpectEquality(t, e.Length(), 3)
	}

	// below the 386 the encoding still decodes but is marked inapplicable
	dsm = testDisassembly(cpu.Model80286, []byte{0x0f, 0x20, 0xc0})
	addr = origin()
	e, err := dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operand, "EAX,CR0")
	test.ExpectFailure(t, e.Supported)
}

func TestDecodeNeverFails(t *testing.T) {
	// every first byte decodes to an entry of length at least one,
	// whatever the model
	for _, model := range []cpu.Model{cpu.Model8086, cpu.Model80186, cpu.Model80286, cpu.Model80386} {
		for op := 0; op < 256; op++ {
			code := make([]byte, 16)
			code[0] = byte(op)
			dsm := testDisassembly(model, code)

			addr := origin()
			e, err := dsm.Decode(&addr)
			test.DemandSuccess(t, err, model, op)
			test.ExpectSuccess(t, e.Length() >= 1, model, op)
		}
	}
}

func TestLengthRoundTrip(t *testing.T) {
	// the sum of decoded lengths equals the address delta of the decode run
	code := make([]byte, 0x1000)
	seed := uint32(0x8086)
	for i := range code {
		seed = seed*1664525 + 1013904223
		code[i] = byte(seed >> 24)
	}

	dsm := testDisassembly(cpu.Model80386, code)
	addr := origin()

	length := 0
	for i := 0; i < 64; i++ {
		e, err := dsm.Decode(&addr)
		test.DemandSuccess(t, err, i)
		length += e.Length()
	}

	test.ExpectEquality(t, uint32(length), addr.Offset)
}

func TestPrefixRun(t *testing.T) {
	// a pathological run of redundant prefixes is given up on rather than
	// followed forever
	code := make([]byte, 32)
	for i := 0; i < 29; i++ {
		code[i] = 0x26
	}
	code[29] = 0xb8
	dsm := testDisassembly(cpu.Model80386, code)

	addr := origin()
	e, err := dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectFailure(t, e.Complete)

	// a range display extends by one line to show where the prefixes lead
	addr = origin()
	entries, err := dsm.DisassembleRange(&addr, 1)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, len(entries), 2)
}

func TestSymbolAnnotation(t *testing.T) {
	sym := symbols.NewSymbols(nil)
	grp := symbols.NewGroup("TEST", 1, 0x0000, 0x0000, 0x1000, []symbols.Symbol{
		{Name: "spin", Offset: 0x0000},
	})
	sym.AddGroup(grp)

	c := &mockCPU{
		model: cpu.Model80386,
		live: map[uint16]cpu.SegInfo{
			0x0000: {Base: 0, Limit: 0xffff},
		},
	}
	mem := &mockMem{data: make([]byte, 0x10000)}
	copy(mem.data, []byte{0xeb, 0xfe})
	dm := &dbgmem.DbgMem{CPU: c, Mem: mem, Sym: sym}
	dsm := disassembly.NewDisassembly(dm, sym, cpu.Model80386)

	addr := origin()
	e, err := dsm.Decode(&addr)
	test.DemandSuccess(t, err)
	test.ExpectEquality(t, e.Operand, "0000")
	test.ExpectEquality(t, e.Annotation, " spin")
}
