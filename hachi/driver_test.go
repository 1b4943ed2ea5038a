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
	"slices"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDriverRegistry(t *testing.T) {
	factory := func() Driver { return &NullDriver{} }

	assert.NoError(t, RegisterDriver("test", factory))
	assert.ErrorContains(t, RegisterDriver("test", factory), "already exists")
	assert.True(t, slices.Contains(Drivers(), "test"))

	d, err := NewDriver("test")
	assert.NoError(t, err)
	assert.NotNil(t, d)

	assert.NoError(t, UnregisterDriver("test"))
	assert.Error(t, UnregisterDriver("test"))
	_, err = NewDriver("test")
	assert.ErrorContains(t, err, "not found")
}

func TestNullDriverRegistered(t *testing.T) {
	assert.True(t, slices.Contains(Drivers(), "null"))
}
