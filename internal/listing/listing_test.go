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


package listing

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"

	"github.com/Francesco149/hachi8/hachi"
)

// 0200 CALL 206, 0202 JP 202, 0204 JP 400, 0206 RET, 0208 'A'
var program = []byte{0x22, 0x06, 0x12, 0x02, 0x14, 0x00, 0x00, 0xEE, 0x41}

func disassemble(t *testing.T) []hachi.Line {
	t.Helper()
	lines, err := hachi.Disassemble(program, hachi.ProgramStart)
	assert.NoError(t, err)
	return lines
}

func TestDestinations(t *testing.T) {
	dests := Destinations(disassemble(t))
	assert.Len(t, dests, 3)
	for _, addr := range []uint16{0x202, 0x206, 0x400} {
		_, ok := dests[addr]
		assert.True(t, ok)
	}
}

func TestUnreached(t *testing.T) {
	if diff := cmp.Diff([]uint16{0x400}, Unreached(disassemble(t))); diff != "" {
		t.Errorf("unreached mismatch (-want +got):\n%s", diff)
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, disassemble(t), true))
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 6)
	assert.True(t, strings.HasPrefix(lines[0], "label"))
	assert.Contains(t, lines[2], "L202:")
	assert.Contains(t, lines[2], "JP 202")
	assert.Contains(t, lines[4], "L206:")
	assert.Contains(t, lines[4], "RET")
	assert.Contains(t, lines[5], "DB 41")
	assert.Contains(t, lines[5], "`A`")
	assert.False(t, strings.Contains(lines[1], "L200:"))

	buf.Reset()
	assert.NoError(t, Write(&buf, disassemble(t), false))
	assert.False(t, strings.Contains(buf.String(), "L202:"))
}
