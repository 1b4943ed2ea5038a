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

import "fmt"

var descriptions = [...]string{
	KindUnknown: "Unknown / Raw Data",
	KindSys:     "0NNN: Calls RCA 1802 program at address NNN.",
	KindCls:     "00E0: Clears the screen.",
	KindRet:     "00EE: Returns from a subroutine.",
	KindJp:      "1NNN: Jumps to address NNN.",
	KindCall:    "2NNN: Calls subroutine at NNN.",
	KindSeByte:  "3XNN: Skips the next instruction if VX equals NN.",
	KindSneByte: "4XNN: Skips the next instruction if VX doesn't equal NN.",
	KindSeReg:   "5XY0: Skips the next instruction if VX equals VY.",
	KindLdByte:  "6XNN: Sets VX to NN.",
	KindAddByte: "7XNN: Adds NN to VX.",
	KindLdReg:   "8XY0: Sets VX to the value of VY.",
	KindOr:      "8XY1: Sets VX to VX | VY (bit-wise OR).",
	KindAnd:     "8XY2: Sets VX to VX & VY (bit-wise AND).",
	KindXor:     "8XY3: Sets VX to VX ^ VY (bit-wise XOR).",
	KindAddReg:  "8XY4: VX += VY. VF = 1 when there's a carry, 0 when there isn't.",
	KindSub:     "8XY5: VX -= VY. VF = 0 when there's a borrow, 1 when there isn't.",
	KindShr:     "8XY6: VX >>= 1. VF = least significant bit prior to the shift.",
	KindSubn:    "8XY7: VX = VY - VX. VF = 0 when there's a borrow, 1 when there isn't.",
	KindShl:     "8XYE: VX <<= 1. VF = most significant bit prior to the shift.",
	KindSneReg:  "9XY0: Skips the next instruction if VX doesn't equal VY.",
	KindLdI:     "ANNN: Sets I to the address NNN.",
	KindJpV0:    "BNNN: Jumps to the address NNN plus V0.",
	KindRnd:     "CXNN: Sets VX to a random number (0-FF) & NN (bit-wise AND).",
	KindDrw:     "DXYN: Draws N rows of sprite pointed by I at VX,VY.",
	KindSkp:     "EX9E: Skips the next instruction if the key stored in VX is pressed.",
	KindSknp:    "EXA1: Skips the next instruction if the key stored in VX isn't pressed.",
	KindLdVxDT:  "FX07: Sets VX to the value of the delay timer.",
	KindLdVxK:   "FX0A: A key press is awaited, and then key number is stored in VX.",
	KindLdDTVx:  "FX15: Sets the delay timer to VX.",
	KindLdSTVx:  "FX18: Sets the sound timer to VX.",
	KindAddI:    "FX1E: Adds VX to I.",
	KindLdF:     "FX29: Sets I to the location of the sprite for the character in VX.",
	KindLdB:     "FX33: Store BCD representation of VX in memory at I, I+1, and I+2.",
	KindLdMemVx: "FX55: Stores V0 to VX in memory starting at address I.",
	KindLdVxMem: "FX65: Fills V0 to VX with values from memory starting at address I.",
}

// Description returns a detailed description of what the instruction does.
func (in Instruction) Description() string {
	if int(in.Kind) < len(descriptions) {
		return descriptions[in.Kind]
	}
	return descriptions[KindUnknown]
}

// String returns a pseudo-asm representation of the instruction.
func (in Instruction) String() string {
	o := in.Opcode
	x, y := o.X(), o.Y()
	name := in.Kind.String()

	switch in.Kind {
	case KindCls, KindRet:
		return name
	case KindSys, KindJp, KindCall:
		return fmt.Sprintf("%s %03X", name, o.NNN())
	case KindSeByte, KindSneByte, KindLdByte, KindAddByte, KindRnd:
		return fmt.Sprintf("%s V%1X,%02X", name, x, o.NN())
	case KindSeReg, KindSneReg, KindLdReg, KindOr, KindAnd, KindXor,
		KindAddReg, KindSub, KindShr, KindSubn, KindShl:
		return fmt.Sprintf("%s V%1X,V%1X", name, x, y)
	case KindLdI:
		return fmt.Sprintf("LD I,%03X", o.NNN())
	case KindJpV0:
		return fmt.Sprintf("JP V0,%03X", o.NNN())
	case KindDrw:
		return fmt.Sprintf("DRW V%1X,V%1X,%1X", x, y, o.N())
	case KindSkp, KindSknp:
		return fmt.Sprintf("%s V%1X", name, x)
	case KindLdVxDT:
		return fmt.Sprintf("LD V%1X,DT", x)
	case KindLdVxK:
		return fmt.Sprintf("LD V%1X,K", x)
	case KindLdDTVx:
		return fmt.Sprintf("LD DT,V%1X", x)
	case KindLdSTVx:
		return fmt.Sprintf("LD ST,V%1X", x)
	case KindAddI:
		return fmt.Sprintf("ADD I,V%1X", x)
	case KindLdF:
		return fmt.Sprintf("LD I,CHAR V%1X", x)
	case KindLdB:
		return fmt.Sprintf("LD [I],BCD V%1X", x)
	case KindLdMemVx:
		return fmt.Sprintf("LD [I],V%1X", x)
	case KindLdVxMem:
		return fmt.Sprintf("LD V%1X,[I]", x)
	}
	return fmt.Sprintf("DB %02X %02X", uint8(o>>8), uint8(o))
}

// -----------------------------------------------------------------------------

// A Line is one disassembled instruction, or 1 or 2 bytes of raw data.
type Line struct {
	Address     uint16
	Data        []byte
	Instruction Instruction
}

// Opcode returns the data as a 16-bit integer. A single trailing byte is
// returned as is.
func (l Line) Opcode() uint16 {
	if len(l.Data) == 1 {
		return uint16(l.Data[0])
	}
	return uint16(l.Instruction.Opcode)
}

// Size returns the size of the line in bytes.
func (l Line) Size() int { return len(l.Data) }

func (l Line) String() string {
	if len(l.Data) == 1 {
		return fmt.Sprintf("DB %02X", l.Data[0])
	}
	return l.Instruction.String()
}

func (l Line) Description() string { return l.Instruction.Description() }

// ASCII returns the ASCII representation of the raw data for this line.
// Returns an empty string if the data is not printable ascii.
func (l Line) ASCII() (res string) {
	if isPrintableASCII(l.Data) {
		res = string(l.Data)
	}
	return
}

// Disassemble disassembles a program loaded at origin. It assumes every
// instruction is aligned to 2 bytes; a trailing odd byte is emitted as
// raw data.
func Disassemble(b []byte, origin uint16) ([]Line, error) {
	if int(origin)+len(b) > MemorySize {
		return nil, &AccessErr{Op: "disassemble", Address: int(origin), Size: len(b)}
	}

	res := make([]Line, 0, (len(b)+1)/2)
	for i := 0; i < len(b); i += 2 {
		line := Line{Address: origin + uint16(i)}
		if i+1 == len(b) {
			line.Data = b[i : i+1]
			res = append(res, line)
			break
		}
		line.Data = b[i : i+2]
		line.Instruction = Decode(Opcode(uint16(b[i])<<8 | uint16(b[i+1])))
		res = append(res, line)
	}
	return res, nil
}

// DisassembleAt disassembles up to n instructions of c's memory starting at
// pc.
func DisassembleAt(c *Chip8, pc uint16, n int) []Line {
	end := min(int(pc)+2*n, MemorySize)
	if int(pc) >= end {
		return nil
	}
	lines, _ := Disassemble(c.Memory[pc:end], pc)
	return lines
}

func isPrintableASCII(s []byte) bool {
	for _, c := range s {
		if c < 32 || c > 126 {
			return false
		}
	}
	return true
}
