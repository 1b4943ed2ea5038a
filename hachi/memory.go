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

// Memory layout.
const (
	// MemorySize is the size of RAM. Addresses are 12 bits wide.
	MemorySize = 0x1000
	// ProgramStart is where programs are loaded and where execution starts.
	// The original interpreter occupied the first 512 bytes.
	ProgramStart = 0x200
	// MaxProgramSize is the largest program that fits in RAM.
	MaxProgramSize = MemorySize - ProgramStart
	// FontStart is the address of the first font glyph.
	FontStart = 0x000
	// FontGlyphSize is the size in bytes of a font glyph.
	FontGlyphSize = 5
)

// Font holds the 4x5 hexadecimal digit sprites 0-F.
var Font = [16 * FontGlyphSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// -----------------------------------------------------------------------------

// Stack is the bounded call stack holding return addresses.
type Stack struct {
	frames []uint16
	sp     int // number of frames in use
}

// NewStack returns an empty stack that holds up to capacity addresses.
func NewStack(capacity int) *Stack {
	return &Stack{frames: make([]uint16, capacity)}
}

// Push pushes a return address. Returns a StackOverflowErr when the stack
// is full.
func (s *Stack) Push(addr uint16) error {
	if s.sp >= len(s.frames) {
		return &StackOverflowErr{Capacity: len(s.frames)}
	}
	s.frames[s.sp] = addr
	s.sp++
	return nil
}

// Pop pops the last pushed return address. Returns a StackUnderflowErr when
// the stack is empty.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, &StackUnderflowErr{}
	}
	s.sp--
	return s.frames[s.sp], nil
}

// Len returns the number of addresses on the stack.
func (s *Stack) Len() int { return s.sp }

// Cap returns the maximum amount of nested calls.
func (s *Stack) Cap() int { return len(s.frames) }

// Frames returns a copy of the addresses on the stack, bottom first.
func (s *Stack) Frames() []uint16 {
	res := make([]uint16, s.sp)
	copy(res, s.frames[:s.sp])
	return res
}

func (s *Stack) reset() { s.sp = 0 }

// -----------------------------------------------------------------------------

// ReadMemory returns a copy of n bytes of RAM starting at addr.
func (c *Chip8) ReadMemory(addr, n int) ([]byte, error) {
	if err := checkBounds("read", addr, n); err != nil {
		return nil, err
	}
	res := make([]byte, n)
	copy(res, c.Memory[addr:addr+n])
	return res, nil
}

// WriteMemory copies b into RAM starting at addr.
func (c *Chip8) WriteMemory(addr int, b []byte) error {
	if err := checkBounds("write", addr, len(b)); err != nil {
		return err
	}
	copy(c.Memory[addr:], b)
	return nil
}

// checkBounds makes sure [addr, addr+n) lies within RAM.
func checkBounds(op string, addr, n int) error {
	if addr < 0 || n < 0 || addr+n > MemorySize {
		return &AccessErr{Op: op, Address: addr, Size: n}
	}
	return nil
}
