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

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestChip8 returns a machine with default settings and program loaded.
func newTestChip8(t *testing.T, program ...byte) *Chip8 {
	t.Helper()
	return newTestChip8WithSettings(t, DefaultSettings(), program...)
}

func newTestChip8WithSettings(t *testing.T, s *Settings, program ...byte) *Chip8 {
	t.Helper()
	c, err := New(log.NewTestLogger(t), s)
	assert.NoError(t, err)
	assert.NoError(t, c.LoadProgram(program))
	return c
}

// run steps the machine n times and fails the test on error.
func run(t *testing.T, c *Chip8, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := c.Step()
		assert.NoError(t, err)
	}
}

func TestNew(t *testing.T) {
	c := newTestChip8(t)
	assert.Equal(t, uint16(ProgramStart), c.PC)
	assert.Equal(t, uint16(0), c.I)
	assert.Equal(t, Running, c.State())
	assert.Equal(t, 0, c.Stack.Len())
	assert.Equal(t, MaxStackSize, c.Stack.Cap())

	if diff := cmp.Diff(Font[:], c.Memory[FontStart:FontStart+len(Font)]); diff != "" {
		t.Errorf("font mismatch (-want +got):\n%s", diff)
	}
}

func TestNewInvalidSettings(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
	}{
		{"zero width", Settings{StackSize: 16, Width: 0, Height: 32}},
		{"unaligned width", Settings{StackSize: 16, Width: 60, Height: 32}},
		{"zero height", Settings{StackSize: 16, Width: 64, Height: 0}},
		{"empty stack", Settings{StackSize: 0, Width: 64, Height: 32}},
		{"deep stack", Settings{StackSize: MaxStackSize + 1, Width: 64, Height: 32}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(log.NewTestLogger(t), &tt.settings)
			assert.Error(t, err)
		})
	}
}

func TestLoadProgram(t *testing.T) {
	c := newTestChip8(t, 0x12, 0x34)
	assert.Equal(t, []byte{0x12, 0x34}, c.Memory[ProgramStart:ProgramStart+2])
	assert.Equal(t, []byte{0x12, 0x34}, c.Program())

	err := c.LoadProgram(make([]byte, MaxProgramSize+1))
	var oom *OutOfMemoryErr
	assert.True(t, errors.As(err, &oom))
	assert.Equal(t, int64(MaxProgramSize+1), oom.ProgramSize)

	// the largest program fits exactly
	assert.NoError(t, c.LoadProgram(make([]byte, MaxProgramSize)))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.ch8")
	assert.NoError(t, os.WriteFile(path, []byte{0x00, 0xE0}, 0o600))

	c := newTestChip8(t)
	size, err := c.Load(path)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), size)
	assert.Equal(t, uint8(0xE0), c.Memory[ProgramStart+1])

	_, err = c.Load(filepath.Join(t.TempDir(), "missing.ch8"))
	assert.ErrorContains(t, err, "loading program")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReset(t *testing.T) {
	c := newTestChip8(t, 0x60, 0x05, 0x22, 0x00)
	run(t, c, 2)
	c.Memory[0x300] = 0xAA
	c.Timers.Delay = 10
	c.Keypad.Press(0x3)

	c.Reset()
	assert.Equal(t, uint16(ProgramStart), c.PC)
	assert.Equal(t, uint8(0), c.V[0])
	assert.Equal(t, 0, c.Stack.Len())
	assert.Equal(t, uint8(0), c.Timers.Delay)
	assert.Equal(t, uint8(0), c.Memory[0x300])
	assert.Equal(t, []byte{0x60, 0x05, 0x22, 0x00}, c.Memory[ProgramStart:ProgramStart+4])
	_, ok := c.Keypad.TakeLast()
	assert.False(t, ok)
}

func TestIndependentInstances(t *testing.T) {
	a := newTestChip8(t, 0x60, 0x01)
	b := newTestChip8(t, 0x60, 0x02)
	run(t, a, 1)
	run(t, b, 1)
	assert.Equal(t, uint8(1), a.V[0])
	assert.Equal(t, uint8(2), b.V[0])
}

func TestString(t *testing.T) {
	c := newTestChip8(t)
	s := c.String()
	assert.True(t, strings.HasPrefix(s, "Chip8{"))
	assert.Contains(t, s, "PC: 0200")
	assert.Contains(t, s, "State: running")
}
