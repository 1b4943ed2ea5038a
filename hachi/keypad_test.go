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
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypad(t *testing.T) {
	var kp Keypad
	kp.Press(0x1)
	kp.Press(0xF)
	assert.Equal(t, uint16(KeyFlag(0x1)|KeyFlag(0xF)), kp.Pressed())
	assert.True(t, kp.IsPressed(0xF))

	kp.Release(0x1)
	assert.False(t, kp.IsPressed(0x1))
	assert.Equal(t, KeyFlag(0xF), kp.Pressed())

	// out of range keys are ignored
	kp.Press(0x10)
	assert.Equal(t, KeyFlag(0xF), kp.Pressed())
}

func TestKeypadLastPressed(t *testing.T) {
	var kp Keypad
	_, ok := kp.TakeLast()
	assert.False(t, ok)

	kp.Press(0x4)
	kp.Press(0x9)
	k, ok := kp.TakeLast()
	assert.True(t, ok)
	assert.Equal(t, uint8(0x9), k)

	// consumed exactly once
	_, ok = kp.TakeLast()
	assert.False(t, ok)

	kp.Press(0x2)
	kp.ResetLast()
	_, ok = kp.TakeLast()
	assert.False(t, ok)
}

func TestKeypadSet(t *testing.T) {
	var kp Keypad
	kp.Set(0xA, true)
	_, ok := kp.TakeLast()
	assert.True(t, ok)

	// holding a key is not a new press
	kp.Set(0xA, true)
	_, ok = kp.TakeLast()
	assert.False(t, ok)

	kp.Set(0xA, false)
	assert.False(t, kp.IsPressed(0xA))
	kp.Set(0xA, true)
	_, ok = kp.TakeLast()
	assert.True(t, ok)
}
