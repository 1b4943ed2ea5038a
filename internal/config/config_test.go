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


package config

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/Francesco149/hachi8/hachi"
	"github.com/Francesco149/hachi8/internal/options"
)

func TestSettings(t *testing.T) {
	tests := []struct {
		name   string
		opts   options.Program
		quirks hachi.Quirks
		strict bool
		stack  int
	}{
		{
			name:   "defaults",
			opts:   options.Program{},
			quirks: hachi.QuirksModern,
			strict: true,
			stack:  hachi.MaxStackSize,
		},
		{
			name:   "cosmac preset",
			opts:   options.Program{Quirks: options.QuirksCOSMAC},
			quirks: hachi.QuirksCOSMAC,
			strict: true,
			stack:  hachi.MaxStackSize,
		},
		{
			name:   "single quirk on top of modern",
			opts:   options.Program{Quirks: options.QuirksModern, JumpFromVX: true, Lenient: true, StackSize: 12},
			quirks: hachi.Quirks{JumpFromVX: true},
			strict: false,
			stack:  12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Settings(tt.opts)
			assert.NoError(t, err)
			assert.Equal(t, tt.quirks, s.Quirks)
			assert.Equal(t, tt.strict, s.StrictDecoding)
			assert.Equal(t, tt.stack, s.StackSize)
		})
	}
}

func TestSettingsErrors(t *testing.T) {
	_, err := Settings(options.Program{Quirks: "superchip"})
	assert.ErrorContains(t, err, "unsupported quirks preset")

	_, err = Settings(options.Program{StackSize: hachi.MaxStackSize + 1})
	assert.Error(t, err)
}

func TestCreateLogger(t *testing.T) {
	assert.NotNil(t, CreateLogger(true, false))
	assert.NotNil(t, CreateLogger(false, true))
}
