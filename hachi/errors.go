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

// An OutOfMemoryErr is returned upon attempting to load a program that
// exceeds the memory's capacity.
type OutOfMemoryErr struct {
	ProgramSize int64
	Free        int
}

func (e *OutOfMemoryErr) Error() string {
	return fmt.Sprintf("not enough memory (program size: %v, free memory: %v)",
		e.ProgramSize, e.Free)
}

// A StackOverflowErr is returned when a CALL is executed while the stack is
// full.
type StackOverflowErr struct {
	Capacity int
}

func (e *StackOverflowErr) Error() string {
	return fmt.Sprintf("stack overflow (capacity: %v)", e.Capacity)
}

// A StackUnderflowErr is returned when a RET is executed with an empty
// stack.
type StackUnderflowErr struct{}

func (e *StackUnderflowErr) Error() string {
	return "stack underflow: return with empty call stack"
}

// An AccessErr is returned when an instruction fetch or an instruction
// touches memory outside of RAM.
type AccessErr struct {
	// Op names the access, e.g. "fetch", "sprite", "bcd".
	Op      string
	Address int
	Size    int
}

func (e *AccessErr) Error() string {
	return fmt.Sprintf("%s: access of %v bytes at %04X is out of bounds",
		e.Op, e.Size, e.Address)
}

// An UnknownInstructionErr is returned in strict decoding mode when the
// word at the program counter is not a valid CHIP-8 instruction.
type UnknownInstructionErr struct {
	Address uint16
	Opcode  Opcode
}

func (e *UnknownInstructionErr) Error() string {
	return fmt.Sprintf("unknown instruction %04X at %04X",
		uint16(e.Opcode), e.Address)
}
