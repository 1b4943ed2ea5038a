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


// Package options contains the command line options of the programs.
package options

// Quirk presets accepted by the -quirks flag.
const (
	QuirksModern = "modern"
	QuirksCOSMAC = "cosmac"
)

// Program contains the options of the emulator.
type Program struct {
	Input  string
	Driver string

	ClockSpeed int
	Scale      int
	StackSize  int

	Quirks            string
	ShiftFromVY       bool
	LogicResetsVF     bool
	JumpFromVX        bool
	MemoryIncrementsI bool
	Lenient           bool

	Audio bool
	Wav   string

	Debug   bool
	Quiet   bool
	Version bool
}

// Disassembler contains the options of the disassembler.
type Disassembler struct {
	Input  string
	Output string
	Origin uint16
	Labels bool

	Debug bool
	Quiet bool
}
