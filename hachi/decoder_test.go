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
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// pattern describes an instruction as the bits that must match.
type pattern struct {
	kind  Kind
	mask  uint16
	value uint16
}

var patterns = []pattern{
	{KindCls, 0xFFFF, 0x00E0},
	{KindRet, 0xFFFF, 0x00EE},
	{KindJp, 0xF000, 0x1000},
	{KindCall, 0xF000, 0x2000},
	{KindSeByte, 0xF000, 0x3000},
	{KindSneByte, 0xF000, 0x4000},
	{KindSeReg, 0xF00F, 0x5000},
	{KindLdByte, 0xF000, 0x6000},
	{KindAddByte, 0xF000, 0x7000},
	{KindLdReg, 0xF00F, 0x8000},
	{KindOr, 0xF00F, 0x8001},
	{KindAnd, 0xF00F, 0x8002},
	{KindXor, 0xF00F, 0x8003},
	{KindAddReg, 0xF00F, 0x8004},
	{KindSub, 0xF00F, 0x8005},
	{KindShr, 0xF00F, 0x8006},
	{KindSubn, 0xF00F, 0x8007},
	{KindShl, 0xF00F, 0x800E},
	{KindSneReg, 0xF00F, 0x9000},
	{KindLdI, 0xF000, 0xA000},
	{KindJpV0, 0xF000, 0xB000},
	{KindRnd, 0xF000, 0xC000},
	{KindDrw, 0xF000, 0xD000},
	{KindSkp, 0xF0FF, 0xE09E},
	{KindSknp, 0xF0FF, 0xE0A1},
	{KindLdVxDT, 0xF0FF, 0xF007},
	{KindLdVxK, 0xF0FF, 0xF00A},
	{KindLdDTVx, 0xF0FF, 0xF015},
	{KindLdSTVx, 0xF0FF, 0xF018},
	{KindAddI, 0xF0FF, 0xF01E},
	{KindLdF, 0xF0FF, 0xF029},
	{KindLdB, 0xF0FF, 0xF033},
	{KindLdMemVx, 0xF0FF, 0xF055},
	{KindLdVxMem, 0xF0FF, 0xF065},
}

// expectedKind classifies w with the pattern table. Words of the 0 group
// that are neither CLS nor RET are machine code calls.
func expectedKind(t *testing.T, w uint16) Kind {
	t.Helper()
	kind := KindUnknown
	matches := 0
	for _, p := range patterns {
		if w&p.mask == p.value {
			kind = p.kind
			matches++
		}
	}
	if matches > 1 {
		t.Fatalf("word %04X matches %d patterns", w, matches)
	}
	if matches == 0 && w&0xF000 == 0 {
		return KindSys
	}
	return kind
}

func TestDecodeAllWords(t *testing.T) {
	for w := 0; w <= 0xFFFF; w++ {
		o := Opcode(w)
		want := expectedKind(t, uint16(w))
		in := Decode(o)
		if in.Kind != want {
			t.Fatalf("word %04X: expected %v, got %v", w, want, in.Kind)
		}
		assert.Equal(t, o, in.Opcode)
	}
}

func TestOpcodeFields(t *testing.T) {
	o := Opcode(0xD4A7)
	assert.Equal(t, uint8(0xD), o.Op())
	assert.Equal(t, uint8(0x4), o.X())
	assert.Equal(t, uint8(0xA), o.Y())
	assert.Equal(t, uint8(0x7), o.N())
	assert.Equal(t, uint8(0xA7), o.NN())
	assert.Equal(t, uint16(0x4A7), o.NNN())
}

func TestDecodeExamples(t *testing.T) {
	in := Decode(0x00E0)
	assert.Equal(t, KindCls, in.Kind)

	in = Decode(0xA123)
	assert.Equal(t, KindLdI, in.Kind)
	assert.Equal(t, uint16(0x123), in.Opcode.NNN())

	in = Decode(0xD015)
	assert.Equal(t, KindDrw, in.Kind)
	assert.Equal(t, uint8(0), in.Opcode.X())
	assert.Equal(t, uint8(1), in.Opcode.Y())
	assert.Equal(t, uint8(5), in.Opcode.N())
}

func TestFetch(t *testing.T) {
	mem := []byte{0x12, 0x34, 0x56}
	o, err := Fetch(mem, 0)
	assert.NoError(t, err)
	assert.Equal(t, Opcode(0x1234), o)

	// the second byte would be outside of memory
	_, err = Fetch(mem, 2)
	var accessErr *AccessErr
	assert.True(t, errors.As(err, &accessErr))
	assert.Equal(t, "fetch", accessErr.Op)
	assert.Equal(t, 2, accessErr.Address)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "CLS", KindCls.String())
	assert.Equal(t, "DRW", KindDrw.String())
	assert.Equal(t, "DB", KindUnknown.String())
}
