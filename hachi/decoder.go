/*
	Copyright 2015 Franc[e]sco (lolisamurai@tfwno.gf)
	This file is part of go-hachi.
	go-hachi is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.
	go-hachi is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.
	You should have received a copy of the GNU General Public License
	along with go-hachi. If not, see <http://www.gnu.org/licenses/>.
*/

package hachi

// An Opcode is a raw 16-bit instruction word, stored big-endian in memory.
type Opcode uint16

func (o Opcode) Op() uint8   { return uint8(o >> 12) }
func (o Opcode) X() uint8    { return uint8(o>>8) & 0x0F }
func (o Opcode) Y() uint8    { return uint8(o>>4) & 0x0F }
func (o Opcode) N() uint8    { return uint8(o) & 0x0F }
func (o Opcode) NN() uint8   { return uint8(o) }
func (o Opcode) NNN() uint16 { return uint16(o) & 0x0FFF }

// Fetch reads the instruction word at pc.
func Fetch(mem []byte, pc uint16) (Opcode, error) {
	if int(pc)+2 > len(mem) {
		return 0, &AccessErr{Op: "fetch", Address: int(pc), Size: 2}
	}
	return Opcode(uint16(mem[pc])<<8 | uint16(mem[pc+1])), nil
}

// -----------------------------------------------------------------------------

// A Kind classifies an instruction word.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindSys          // 0NNN
	KindCls          // 00E0
	KindRet          // 00EE
	KindJp           // 1NNN
	KindCall         // 2NNN
	KindSeByte       // 3XNN
	KindSneByte      // 4XNN
	KindSeReg        // 5XY0
	KindLdByte       // 6XNN
	KindAddByte      // 7XNN
	KindLdReg        // 8XY0
	KindOr           // 8XY1
	KindAnd          // 8XY2
	KindXor          // 8XY3
	KindAddReg       // 8XY4
	KindSub          // 8XY5
	KindShr          // 8XY6
	KindSubn         // 8XY7
	KindShl          // 8XYE
	KindSneReg       // 9XY0
	KindLdI          // ANNN
	KindJpV0         // BNNN
	KindRnd          // CXNN
	KindDrw          // DXYN
	KindSkp          // EX9E
	KindSknp         // EXA1
	KindLdVxDT       // FX07
	KindLdVxK        // FX0A
	KindLdDTVx       // FX15
	KindLdSTVx       // FX18
	KindAddI         // FX1E
	KindLdF          // FX29
	KindLdB          // FX33
	KindLdMemVx      // FX55
	KindLdVxMem      // FX65
)

var kindNames = [...]string{
	KindUnknown: "DB",
	KindSys:     "SYS",
	KindCls:     "CLS",
	KindRet:     "RET",
	KindJp:      "JP",
	KindCall:    "CALL",
	KindSeByte:  "SE",
	KindSneByte: "SNE",
	KindSeReg:   "SE",
	KindLdByte:  "LD",
	KindAddByte: "ADD",
	KindLdReg:   "LD",
	KindOr:      "OR",
	KindAnd:     "AND",
	KindXor:     "XOR",
	KindAddReg:  "ADD",
	KindSub:     "SUB",
	KindShr:     "SHR",
	KindSubn:    "SUBN",
	KindShl:     "SHL",
	KindSneReg:  "SNE",
	KindLdI:     "LD",
	KindJpV0:    "JP",
	KindRnd:     "RND",
	KindDrw:     "DRW",
	KindSkp:     "SKP",
	KindSknp:    "SKNP",
	KindLdVxDT:  "LD",
	KindLdVxK:   "LD",
	KindLdDTVx:  "LD",
	KindLdSTVx:  "LD",
	KindAddI:    "ADD",
	KindLdF:     "LD",
	KindLdB:     "LD",
	KindLdMemVx: "LD",
	KindLdVxMem: "LD",
}

// String returns the mnemonic of the instruction kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Classify maps the four nibbles of an instruction word to its kind. It is
// defined for every input; words that are not instructions are
// KindUnknown.
func Classify(op, x, y, n uint8) Kind {
	switch op {
	case 0x0:
		switch {
		case x == 0x0 && y == 0xE && n == 0x0:
			return KindCls
		case x == 0x0 && y == 0xE && n == 0xE:
			return KindRet
		}
		return KindSys
	case 0x1:
		return KindJp
	case 0x2:
		return KindCall
	case 0x3:
		return KindSeByte
	case 0x4:
		return KindSneByte
	case 0x5:
		if n == 0x0 {
			return KindSeReg
		}
	case 0x6:
		return KindLdByte
	case 0x7:
		return KindAddByte
	case 0x8:
		switch n {
		case 0x0:
			return KindLdReg
		case 0x1:
			return KindOr
		case 0x2:
			return KindAnd
		case 0x3:
			return KindXor
		case 0x4:
			return KindAddReg
		case 0x5:
			return KindSub
		case 0x6:
			return KindShr
		case 0x7:
			return KindSubn
		case 0xE:
			return KindShl
		}
	case 0x9:
		if n == 0x0 {
			return KindSneReg
		}
	case 0xA:
		return KindLdI
	case 0xB:
		return KindJpV0
	case 0xC:
		return KindRnd
	case 0xD:
		return KindDrw
	case 0xE:
		switch y<<4 | n {
		case 0x9E:
			return KindSkp
		case 0xA1:
			return KindSknp
		}
	case 0xF:
		switch y<<4 | n {
		case 0x07:
			return KindLdVxDT
		case 0x0A:
			return KindLdVxK
		case 0x15:
			return KindLdDTVx
		case 0x18:
			return KindLdSTVx
		case 0x1E:
			return KindAddI
		case 0x29:
			return KindLdF
		case 0x33:
			return KindLdB
		case 0x55:
			return KindLdMemVx
		case 0x65:
			return KindLdVxMem
		}
	}
	return KindUnknown
}

// An Instruction is a decoded instruction word.
type Instruction struct {
	Kind   Kind
	Opcode Opcode
}

// Decode classifies an instruction word.
func Decode(o Opcode) Instruction {
	return Instruction{
		Kind:   Classify(o.Op(), o.X(), o.Y(), o.N()),
		Opcode: o,
	}
}
