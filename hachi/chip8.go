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

// Package hachi implements a CHIP-8 virtual machine: memory, registers,
// framebuffer, keypad, timers, the instruction decoder and the execution
// engine, plus a disassembler and the loop that drives the machine in real
// time through a platform driver.
package hachi

import (
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/retroenv/retrogolib/log"
)

// State is the execution state of the engine.
type State uint8

const (
	// Running executes one instruction per step.
	Running State = iota
	// AwaitingKey is entered by LD VX,K and left once a key press arrives.
	AwaitingKey
)

func (s State) String() string {
	if s == AwaitingKey {
		return "awaiting key"
	}
	return "running"
}

// Chip8 holds the state of one CHIP-8 virtual machine. Instances are
// independent of each other and are not safe for concurrent use.
type Chip8 struct {
	// The memory where programs are loaded and executed. The font occupies
	// the start of the interpreter area and programs start at 0x200.
	Memory [MemorySize]byte
	// V[0x0]~V[0xF] are 8-bit registers. V[0xF] doubles as a carry flag.
	V [16]uint8
	// 16-bit address register. Used for memory operations.
	I uint16
	// Program counter. Holds the address of the next instruction.
	PC uint16
	// The call stack, which holds return addresses.
	Stack *Stack
	// Timers count down at 60hz, driven by the caller through TickTimers.
	Timers Timers
	// Keypad is written by the input driver between steps.
	Keypad Keypad
	// Screen is only modified by CLS and DRW.
	Screen *Framebuffer
	// Rand returns the random bytes used by RND. Defaults to math/rand.
	Rand func() uint8

	settings Settings
	state    State
	waitReg  uint8
	program  []byte
	logger   *log.Logger
}

// New initializes a new instance of Chip8 with the given settings. If
// settings is nil, DefaultSettings will be used.
func New(logger *log.Logger, s *Settings) (*Chip8, error) {
	if s == nil {
		s = DefaultSettings()
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	c := &Chip8{
		Stack:    NewStack(s.StackSize),
		Screen:   NewFramebuffer(s.Width, s.Height),
		Rand:     func() uint8 { return uint8(rand.Uint32()) },
		settings: *s,
		logger:   logger,
	}
	c.Reset()

	logger.Debug("Machine initialized",
		log.Int("stack", s.StackSize),
		log.Int("width", int(s.Width)),
		log.Int("height", int(s.Height)),
		log.String("quirks", s.Quirks.String()))
	return c, nil
}

// Settings returns the settings the machine was created with.
func (c *Chip8) Settings() Settings { return c.settings }

// State returns the current execution state.
func (c *Chip8) State() State { return c.state }

// Logger returns the logger the machine was created with.
func (c *Chip8) Logger() *log.Logger { return c.logger }

// Reset restores the power-on state: registers, timers, stack and screen
// are cleared, the font is copied to low memory and the last loaded
// program is copied back to 0x200.
func (c *Chip8) Reset() {
	c.Memory = [MemorySize]byte{}
	copy(c.Memory[FontStart:], Font[:])
	copy(c.Memory[ProgramStart:], c.program)

	c.V = [16]uint8{}
	c.I = 0
	c.PC = ProgramStart
	c.Stack.reset()
	c.Timers = Timers{}
	c.Keypad.ResetLast()
	c.Screen.Clear()
	c.state = Running
	c.waitReg = 0
}

// Load opens a CHIP-8 binary file and loads it into memory.
// Returns the size, in bytes, of the program and an error if any.
func (c *Chip8) Load(path string) (int64, error) {
	program, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("loading program: %w", err)
	}
	if err := c.LoadProgram(program); err != nil {
		return int64(len(program)), err
	}
	return int64(len(program)), nil
}

// LoadProgram copies program to 0x200 and resets the machine.
func (c *Chip8) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return &OutOfMemoryErr{
			ProgramSize: int64(len(program)),
			Free:        MaxProgramSize,
		}
	}
	c.program = append([]byte(nil), program...)
	c.Reset()
	c.logger.Info("Loaded program", log.Int("size", len(program)))
	return nil
}

// Program returns the bytes of the loaded program as they were loaded.
func (c *Chip8) Program() []byte { return c.program }

// TickTimers counts both timers down once. The caller invokes it at
// TimerFrequency, independently of how many instructions run.
func (c *Chip8) TickTimers() { c.Timers.Tick() }

// SoundTimer returns the current value of the sound timer.
func (c *Chip8) SoundTimer() uint8 { return c.Timers.Sound }

// String returns formatted information about the instance of the emulator.
func (c *Chip8) String() string {
	return fmt.Sprintf("Chip8{Registers: [% 02X] I: %04X, "+
		"Stack: % 04X, PC: %04X, DT: %02X, ST: %02X, "+
		"Keypad: %016b, Screen: %v*%v, State: %v}",
		c.V, c.I, c.Stack.Frames(), c.PC, c.Timers.Delay,
		c.Timers.Sound, c.Keypad.Pressed(), c.Screen.Width(),
		c.Screen.Height(), c.state)
}
