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

// Key flags for the Keypad bitfield.
const (
	Key0 = 1 << iota
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
)

// KeyCount is the number of keys on the hex keypad.
const KeyCount = 16

// Keypad is a hex keyboard with 16 keys. 8, 4, 6 and 2 are typically used
// for directional input.
//
// Only the input driver writes to the keypad; the engine reads it between
// steps.
type Keypad struct {
	keys    uint16
	last    uint8
	hasLast bool
}

// KeyFlag returns the bitfield flag of key k.
func KeyFlag(k uint8) uint16 { return 1 << (k & 0x0F) }

// Press marks key k as held down and records it as the most recently
// pressed key. Keys above 0xF are ignored.
func (kp *Keypad) Press(k uint8) {
	if k >= KeyCount {
		return
	}
	kp.keys |= KeyFlag(k)
	kp.last = k
	kp.hasLast = true
}

// Release marks key k as up.
func (kp *Keypad) Release(k uint8) {
	if k >= KeyCount {
		return
	}
	kp.keys &^= KeyFlag(k)
}

// Set presses or releases key k. Pressing an already held key does not
// generate a new key press notification.
func (kp *Keypad) Set(k uint8, down bool) {
	switch {
	case down && !kp.IsPressed(k):
		kp.Press(k)
	case !down:
		kp.Release(k)
	}
}

// IsPressed reports whether key k is held. Only the low nibble of k is
// considered.
func (kp *Keypad) IsPressed(k uint8) bool {
	return kp.keys&KeyFlag(k) != 0
}

// Pressed returns the bitfield of the keys currently held.
func (kp *Keypad) Pressed() uint16 { return kp.keys }

// TakeLast returns the most recently pressed key and forgets it, so every
// key press is consumed at most once.
func (kp *Keypad) TakeLast() (uint8, bool) {
	if !kp.hasLast {
		return 0, false
	}
	kp.hasLast = false
	return kp.last, true
}

// ResetLast drops a pending key press notification.
func (kp *Keypad) ResetLast() { kp.hasLast = false }
