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
	"github.com/gopher86/gopher86/disassembly/instructions"
	"github.com/gopher86/gopher86/hardware/cpu"
	"github.com/gopher86/gopher86/symbols"
)

// a prefix that changes nothing is absorbed rather than rejected, up to this
// many repetitions of each kind. beyond that the byte stream is assumed not
// to be code and the decode gives up with Complete set to false
const maxRedundantPrefixes = 4

// decodeState carries the working state of a single instruction decode. one
// is created per Decode() call.
type decodeState struct {
	dsm  *Disassembly
	addr *dbgmem.Address
	e    *Entry

	// effective size attributes. seeded from the address, toggled by the
	// 0x66/0x67 prefixes
	opSize32   bool
	addrSize32 bool

	segOverride string
	rep         instructions.Operator
	lock        bool

	// the ModRM byte is consumed at most once per instruction, whichever
	// operand needs it first
	hasModRM bool
	modrm    byte

	// the memory expression is likewise built at most once. sib and
	// displacement bytes are consumed when it is built
	memDone bool
	memExpr string

	// true when no register operand fixes the instruction's data width, in
	// which case memory operands carry an explicit width keyword
	keyword bool
}

// Decode disassembles the single instruction at the address. The address is
// advanced past the consumed bytes so that repeated calls walk a run of
// instructions.
//
// Decoding never fails on instruction content. Undefined opcodes produce a
// placeholder entry at least one byte long and instructions beyond the
// configured CPU model are decoded but marked unsupported. The only error
// condition is the address itself: unresolvable or unmapped memory.
func (dsm *Disassembly) Decode(addr *dbgmem.Address) (*Entry, error) {
	addr.OverrideCount = 0

	e := &Entry{
		dsm:       dsm,
		Address:   *addr,
		Complete:  true,
		Supported: true,
		Defined:   true,
	}

	d := &decodeState{
		dsm:        dsm,
		addr:       addr,
		e:          e,
		opSize32:   addr.OperandSize32,
		addrSize32: addr.AddressSize32,
	}

	desc, err := d.opcode()
	if err != nil {
		return nil, err
	}

	if !e.Complete {
		dsm.fields.update(e)
		return e, nil
	}

	op := e.Bytes[len(e.Bytes)-1]

	switch desc.Operator {
	case instructions.TwoByteEscape:
		b, err := d.readByte()
		if err != nil {
			return nil, err
		}
		var ok bool
		desc, ok = instructions.TwoByte(b)
		if !ok {
			d.invalid()
			dsm.fields.update(e)
			return e, nil
		}

	case instructions.FPUEscape:
		m, err := d.readByte()
		if err != nil {
			return nil, err
		}
		d.modrm = m
		d.hasModRM = true
		var ok bool
		desc, ok = instructions.FPU(op, m)
		if !ok {
			d.invalid()
			dsm.fields.update(e)
			return e, nil
		}
	}

	// the model gate for a group can sit on the group's own table entry
	// rather than on the dispatched row, so it must be noted before the
	// descriptor is replaced
	var grpMin cpu.Model
	if desc.Operator.IsGroup() {
		if err := d.needModRM(); err != nil {
			return nil, err
		}
		grpMin = desc.MinModel()
		desc = instructions.Group(desc.Operator, int((d.modrm>>3)&0x07))
	}

	if !desc.Defined() {
		d.invalid()
		dsm.fields.update(e)
		return e, nil
	}

	min := desc.MinModel()
	if grpMin > min {
		min = grpMin
	}
	if dsm.model < min {
		e.Supported = false
		e.Annotation = fmt.Sprintf(" requires %s", min)
	}

	d.keyword = true
	for _, slot := range [...]instructions.Operand{desc.Dst, desc.Src, desc.Third} {
		switch slot.Mode() {
		case instructions.ModeReg, instructions.ModeModReg, instructions.ModeImpReg,
			instructions.ModeST, instructions.ModeSTReg,
			instructions.ModeCtlReg, instructions.ModeDbgReg, instructions.ModeTstReg:
			d.keyword = false
		}
	}

	if !desc.Operator.IsString() {
		parts := make([]string, 0, 3)
		for _, slot := range [...]instructions.Operand{desc.Dst, desc.Src, desc.Third} {
			if slot.Mode() == instructions.ModeNone {
				continue
			}
			s, err := d.operandString(slot)
			if err != nil {
				return nil, err
			}
			if s != "" {
				parts = append(parts, s)
			}
		}
		e.Operand = strings.Join(parts, ",")
	}

	m := desc.Operator.Mnemonic(d.opSize32)
	if d.rep != instructions.None {
		m = fmt.Sprintf("%s %s", d.rep.String(), m)
	}
	if d.lock {
		m = fmt.Sprintf("LOCK %s", m)
	}
	e.Operator = m

	dsm.fields.update(e)

	return e, nil
}

// readByte consumes the next byte of the instruction, advancing the cursor.
func (d *decodeState) readByte() (byte, error) {
	v, err := d.dsm.dm.Peek(d.addr, 1)
	if err != nil {
		return 0, err
	}
	d.dsm.dm.Increment(d.addr, 1)
	d.e.Bytes = append(d.e.Bytes, byte(v))
	return byte(v), nil
}

func (d *decodeState) readWord() (uint16, error) {
	lo, err := d.readByte()
	if err != nil {
		return 0, err
	}
	hi, err := d.readByte()
	if err != nil {
		return 0, err
	}
	return uint16(hi)<<8 | uint16(lo), nil
}

func (d *decodeState) readLong() (uint32, error) {
	lo, err := d.readWord()
	if err != nil {
		return 0, err
	}
	hi, err := d.readWord()
	if err != nil {
		return 0, err
	}
	return uint32(hi)<<16 | uint32(lo), nil
}

// opcode consumes prefix bytes until it reaches the opcode, returning the
// opcode's descriptor. the state of the decode (segment override, size
// attributes, rep and lock) is updated as prefixes are absorbed.
func (d *decodeState) opcode() (instructions.Descriptor, error) {
	var redundant [5]int
	opSizeSet := false
	addrSizeSet := false

	for {
		b, err := d.readByte()
		if err != nil {
			return instructions.Descriptor{}, err
		}

		desc := d.dsm.primary[b]

		// bytes that would be prefixes on a later model decode as plain
		// (undefined) opcodes
		if !desc.Operator.IsPrefix() || d.dsm.model < desc.MinModel() {
			return desc, nil
		}

		var kind int
		var dup bool

		switch desc.Operator {
		case instructions.PrefixES, instructions.PrefixCS, instructions.PrefixSS,
			instructions.PrefixDS, instructions.PrefixFS, instructions.PrefixGS:
			name := strings.TrimSuffix(desc.Operator.String(), ":")
			dup = d.segOverride == name
			d.segOverride = name
		case instructions.PrefixOpSize:
			kind = 1
			dup = opSizeSet
			if !opSizeSet {
				d.opSize32 = !d.opSize32
				opSizeSet = true
			}
		case instructions.PrefixAddrSize:
			kind = 2
			dup = addrSizeSet
			if !addrSizeSet {
				d.addrSize32 = !d.addrSize32
				addrSizeSet = true
			}
		case instructions.PrefixLock:
			kind = 3
			dup = d.lock
			d.lock = true
		case instructions.PrefixRepNZ, instructions.PrefixRepZ:
			kind = 4
			dup = d.rep == desc.Operator
			d.rep = desc.Operator
		}

		if dup {
			d.addr.OverrideCount++
			redundant[kind]++
			if redundant[kind] > maxRedundantPrefixes {
				d.e.Complete = false
				d.e.Operator = desc.Operator.String()
				return desc, nil
			}
		}
	}
}

// invalid turns the entry into the undefined-opcode placeholder.
func (d *decodeState) invalid() {
	d.e.Operator = instructions.Invalid
	d.e.Operand = ""
	d.e.Defined = false
}

func (d *decodeState) needModRM() error {
	if d.hasModRM {
		return nil
	}
	m, err := d.readByte()
	if err != nil {
		return err
	}
	d.modrm = m
	d.hasModRM = true
	return nil
}

// bits resolves a size class to a register width.
func (d *decodeState) bits(size instructions.Operand) int {
	switch size {
	case instructions.SizeByte, instructions.SizeSByte:
		return 8
	case instructions.SizeShort:
		return 16
	case instructions.SizeLong:
		return 32
	}
	if d.opSize32 {
		return 32
	}
	return 16
}

func (d *decodeState) operandString(slot instructions.Operand) (string, error) {
	switch slot.Mode() {
	case instructions.ModeImm:
		return d.immediate(slot.Size())

	case instructions.ModeImmOne:
		return "1", nil

	case instructions.ModeImmOff:
		var s string
		if d.addrSize32 {
			off, err := d.readLong()
			if err != nil {
				return "", err
			}
			s = fmt.Sprintf("[%08X]", off)
		} else {
			off, err := d.readWord()
			if err != nil {
				return "", err
			}
			s = fmt.Sprintf("[%04X]", off)
		}
		if d.segOverride != "" {
			s = fmt.Sprintf("%s:%s", d.segOverride, s)
		}
		return s, nil

	case instructions.ModeRel:
		return d.relative(slot.Size())

	case instructions.ModeModRM, instructions.ModeModMem:
		if err := d.needModRM(); err != nil {
			return "", err
		}
		if d.modrm >= 0xc0 {
			return instructions.RegName(int(d.modrm&0x07), d.bits(slot.Size())), nil
		}
		return d.memory(slot.Size())

	case instructions.ModeModReg:
		if err := d.needModRM(); err != nil {
			return "", err
		}
		return instructions.RegName(int(d.modrm&0x07), d.bits(slot.Size())), nil

	case instructions.ModeReg:
		if err := d.needModRM(); err != nil {
			return "", err
		}
		return instructions.RegName(int(d.modrm>>3)&0x07, d.bits(slot.Size())), nil

	case instructions.ModeSegReg:
		if err := d.needModRM(); err != nil {
			return "", err
		}
		reg := int(d.modrm>>3) & 0x07
		if reg >= len(instructions.SegNames) {
			return "??", nil
		}
		return instructions.SegNames[reg], nil

	case instructions.ModeImpReg:
		return instructions.RegName(slot.Reg(), d.bits(slot.Size())), nil

	case instructions.ModeImpSeg:
		return instructions.SegNames[slot.Reg()], nil

	case instructions.ModeDSSI:
		seg := "DS"
		if d.segOverride != "" {
			seg = d.segOverride
		}
		if d.addrSize32 {
			return fmt.Sprintf("%s:[ESI]", seg), nil
		}
		return fmt.Sprintf("%s:[SI]", seg), nil

	case instructions.ModeESDI:
		// the ES:[DI] operand cannot be overridden
		if d.addrSize32 {
			return "ES:[EDI]", nil
		}
		return "ES:[DI]", nil

	case instructions.ModeST:
		return "ST", nil

	case instructions.ModeSTReg:
		return fmt.Sprintf("ST(%d)", d.modrm&0x07), nil

	case instructions.ModeCtlReg:
		if err := d.needModRM(); err != nil {
			return "", err
		}
		return fmt.Sprintf("CR%d", (d.modrm>>3)&0x07), nil

	case instructions.ModeDbgReg:
		if err := d.needModRM(); err != nil {
			return "", err
		}
		return fmt.Sprintf("DR%d", (d.modrm>>3)&0x07), nil

	case instructions.ModeTstReg:
		if err := d.needModRM(); err != nil {
			return "", err
		}
		return fmt.Sprintf("TR%d", (d.modrm>>3)&0x07), nil
	}

	return "", nil
}

func (d *decodeState) immediate(size instructions.Operand) (string, error) {
	switch size {
	case instructions.SizeByte:
		v, err := d.readByte()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%02X", v), nil

	case instructions.SizeSByte:
		// sign-extended and displayed at the full operand width
		v, err := d.readByte()
		if err != nil {
			return "", err
		}
		if d.opSize32 {
			return fmt.Sprintf("%08X", uint32(int32(int8(v)))), nil
		}
		return fmt.Sprintf("%04X", uint16(int16(int8(v)))), nil

	case instructions.SizeShort:
		v, err := d.readWord()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%04X", v), nil

	case instructions.SizeWord:
		if d.opSize32 {
			v, err := d.readLong()
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%08X", v), nil
		}
		v, err := d.readWord()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%04X", v), nil

	case instructions.SizeFarPtr:
		var off uint32
		if d.opSize32 {
			v, err := d.readLong()
			if err != nil {
				return "", err
			}
			off = v
		} else {
			v, err := d.readWord()
			if err != nil {
				return "", err
			}
			off = uint32(v)
		}
		sel, err := d.readWord()
		if err != nil {
			return "", err
		}
		d.annotate(symbols.Query{
			Selector:    sel,
			HasSelector: true,
			Offset:      off,
		})
		if d.opSize32 {
			return fmt.Sprintf("%04X:%08X", sel, off), nil
		}
		return fmt.Sprintf("%04X:%04X", sel, off), nil
	}

	return "", nil
}

// relative decodes a displacement relative to the next instruction and
// formats the resolved target.
func (d *decodeState) relative(size instructions.Operand) (string, error) {
	var disp int32

	switch size {
	case instructions.SizeSByte:
		v, err := d.readByte()
		if err != nil {
			return "", err
		}
		disp = int32(int8(v))
	default:
		if d.opSize32 {
			v, err := d.readLong()
			if err != nil {
				return "", err
			}
			disp = int32(v)
		} else {
			v, err := d.readWord()
			if err != nil {
				return "", err
			}
			disp = int32(int16(v))
		}
	}

	// the cursor now sits at the next instruction, which is what the
	// displacement is relative to
	target := d.addr.Offset + uint32(disp)
	if !d.opSize32 {
		target &= 0xffff
	}

	ta := *d.addr
	ta.Offset = target
	ta.InvalidateLinear()
	d.annotate(d.dsm.dm.SymbolQuery(ta))

	if d.opSize32 {
		return fmt.Sprintf("%08X", target), nil
	}
	return fmt.Sprintf("%04X", target), nil
}

// annotate attaches the name of the symbol at the queried address, if there
// is one, to the entry.
func (d *decodeState) annotate(q symbols.Query) {
	if d.dsm.sym == nil {
		return
	}
	res, ok := d.dsm.sym.Resolve(q, false)
	if !ok || res.Exact == nil {
		return
	}
	d.e.Annotation = fmt.Sprintf("%s %s", d.e.Annotation, res.Exact.Name)
}

// memory returns the formatted memory expression for the current ModRM byte,
// consuming SIB and displacement bytes on first use.
func (d *decodeState) memory(size instructions.Operand) (string, error) {
	if !d.memDone {
		var err error
		if d.addrSize32 {
			d.memExpr, err = d.memory32()
		} else {
			d.memExpr, err = d.memory16()
		}
		if err != nil {
			return "", err
		}
		d.memDone = true
	}

	s := d.memExpr
	if d.segOverride != "" {
		s = fmt.Sprintf("%s:%s", d.segOverride, s)
	}
	if d.keyword {
		if kw := instructions.MemoryKeyword(size, d.opSize32); kw != "" {
			s = fmt.Sprintf("%s %s", kw, s)
		}
	}
	return s, nil
}

func (d *decodeState) memory16() (string, error) {
	mod := d.modrm >> 6
	rm := d.modrm & 0x07

	if mod == 0 && rm == 6 {
		disp, err := d.readWord()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[%04X]", disp), nil
	}

	expr := instructions.RM16Names[rm]

	switch mod {
	case 1:
		v, err := d.readByte()
		if err != nil {
			return "", err
		}
		expr += disp8(v)
	case 2:
		v, err := d.readWord()
		if err != nil {
			return "", err
		}
		expr += fmt.Sprintf("+%04X", v)
	}

	return fmt.Sprintf("[%s]", expr), nil
}

func (d *decodeState) memory32() (string, error) {
	mod := d.modrm >> 6
	rm := d.modrm & 0x07

	if mod == 0 && rm == 5 {
		disp, err := d.readLong()
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("[%08X]", disp), nil
	}

	var expr string

	if rm == 4 {
		sib, err := d.readByte()
		if err != nil {
			return "", err
		}
		scale := sib >> 6
		index := (sib >> 3) & 0x07
		base := sib & 0x07

		if base == 5 && mod == 0 {
			disp, err := d.readLong()
			if err != nil {
				return "", err
			}
			expr = fmt.Sprintf("%08X", disp)
		} else {
			expr = instructions.Reg32Names[base]
		}

		// index 4 encodes no index register
		if index != 4 {
			if expr != "" {
				expr += "+"
			}
			expr += instructions.Reg32Names[index]
			if scale > 0 {
				expr += fmt.Sprintf("*%d", 1<<scale)
			}
		}
	} else {
		expr = instructions.Reg32Names[rm]
	}

	switch mod {
	case 1:
		v, err := d.readByte()
		if err != nil {
			return "", err
		}
		expr += disp8(v)
	case 2:
		v, err := d.readLong()
		if err != nil {
			return "", err
		}
		expr += fmt.Sprintf("+%08X", v)
	}

	return fmt.Sprintf("[%s]", expr), nil
}

// disp8 formats a signed byte displacement.
func disp8(v byte) string {
	s := int16(int8(v))
	if s < 0 {
		return fmt.Sprintf("-%02X", -s)
	}
	return fmt.Sprintf("+%02X", s)
}
