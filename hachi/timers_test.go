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
	"time"

	"github.com/retroenv/retrogolib/assert"
)

func TestTimersClampAtZero(t *testing.T) {
	timers := Timers{Delay: 2, Sound: 1}
	assert.True(t, timers.Beeping())

	timers.Tick()
	assert.Equal(t, Timers{Delay: 1, Sound: 0}, timers)
	assert.False(t, timers.Beeping())

	for i := 0; i < 5; i++ {
		timers.Tick()
	}
	assert.Equal(t, Timers{}, timers)
}

func TestClock(t *testing.T) {
	c := NewClock(60)
	start := time.Unix(1000, 0)

	assert.Equal(t, 0, c.Due(start))
	assert.Equal(t, 0, c.Due(start.Add(10*time.Millisecond)))
	assert.Equal(t, 1, c.Due(start.Add(20*time.Millisecond)))
	// the remainder carries over
	assert.Equal(t, 1, c.Due(start.Add(40*time.Millisecond)))
	assert.Equal(t, 3, c.Due(start.Add(90*time.Millisecond)))
}

func TestClockCatchUpLimit(t *testing.T) {
	c := NewClock(700)
	start := time.Unix(1000, 0)
	c.Due(start)

	// a stalled host loses everything past a tenth of a second
	assert.Equal(t, 70, c.Due(start.Add(5*time.Second)))
	assert.Equal(t, 0, c.Due(start.Add(5*time.Second)))

	slow := NewClock(5)
	slow.Due(start)
	assert.Equal(t, 1, slow.Due(start.Add(time.Minute)))
}

func TestClockReset(t *testing.T) {
	c := NewClock(60)
	start := time.Unix(1000, 0)
	c.Due(start)
	c.Reset()
	assert.Equal(t, 0, c.Due(start.Add(time.Second)))
}
