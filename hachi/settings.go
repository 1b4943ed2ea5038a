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

// Quirks selects between the behaviours that differ across CHIP-8
// interpreters. The zero value is the behaviour of most modern
// interpreters.
type Quirks struct {
	// ShiftFromVY makes SHR/SHL shift VY and store the result in VX
	// (original COSMAC VIP). When false, VX is shifted in place.
	ShiftFromVY bool
	// LogicResetsVF makes OR, AND and XOR set VF to 0.
	LogicResetsVF bool
	// JumpFromVX makes BNNN jump to NNN + VX, where X is the top nibble of
	// NNN. When false, V0 is used.
	JumpFromVX bool
	// MemoryIncrementsI makes LD [I],VX and LD VX,[I] leave I pointing
	// past the last register transferred.
	MemoryIncrementsI bool
}

// QuirksModern is the default quirk set.
var QuirksModern = Quirks{}

// QuirksCOSMAC mimicks the original COSMAC VIP interpreter.
var QuirksCOSMAC = Quirks{
	ShiftFromVY:       true,
	LogicResetsVF:     true,
	MemoryIncrementsI: true,
}

// String returns a compact representation of the enabled quirks.
func (q Quirks) String() string {
	return fmt.Sprintf("shift_vy=%v logic_vf=%v jump_vx=%v mem_inc_i=%v",
		q.ShiftFromVY, q.LogicResetsVF, q.JumpFromVX, q.MemoryIncrementsI)
}

// -----------------------------------------------------------------------------

// MaxStackSize is the deepest call stack a Chip8 can be configured with.
const MaxStackSize = 16

// Settings holds the configuration parameters for a Chip8 instance.
type Settings struct {
	// Stack size. Defines the maximum amount of nested calls.
	// The original implementation allowed 12, later ones 16.
	StackSize int
	// Screen width and height in pixels. Width must be a multiple of 8.
	Width, Height uint8
	// Quirks selects the ambiguous instruction behaviours.
	Quirks Quirks
	// StrictDecoding makes unknown instructions fatal. When disabled they are
	// logged and skipped.
	StrictDecoding bool
}

// DefaultSettings returns the settings of a standard 64x32 CHIP-8 with a
// 16 level stack and modern quirks.
func DefaultSettings() *Settings {
	return &Settings{
		StackSize:      16,
		Width:          64,
		Height:         32,
		Quirks:         QuirksModern,
		StrictDecoding: true,
	}
}

// Validate validates the settings.
// Returns an error when the settings aren't valid.
func (s *Settings) Validate() error {
	if s.Width == 0 || s.Width%8 != 0 {
		return fmt.Errorf("width must be a non-zero multiple of 8, got %v", s.Width)
	}
	if s.Height == 0 {
		return fmt.Errorf("height must be >= 1, got %v", s.Height)
	}
	if s.StackSize < 1 || s.StackSize > MaxStackSize {
		return fmt.Errorf("stack size must be in 1..%v, got %v",
			MaxStackSize, s.StackSize)
	}
	return nil
}
