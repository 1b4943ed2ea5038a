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

import "time"

// TimerFrequency is the rate in hertz at which the timers count down.
const TimerFrequency = 60

// Timers holds the two countdown timers. Delay is intended to be used for
// timing events in games, while Sound makes a beeping sound as long as its
// value is non-zero.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements both timers once, stopping at zero.
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// Beeping reports whether the tone should currently be playing.
func (t *Timers) Beeping() bool { return t.Sound > 0 }

// -----------------------------------------------------------------------------

// A Clock converts wall clock time into a number of fixed length periods.
// It reports at most a tenth of a second worth of periods per call, so a
// host that stalls loses the excess instead of replaying it.
type Clock struct {
	Interval time.Duration
	limit    int
	last     time.Time
}

// NewClock returns a clock ticking hz times per second.
func NewClock(hz int) *Clock {
	return &Clock{
		Interval: time.Second / time.Duration(hz),
		limit:    max(hz/10, 1),
	}
}

// Due returns how many whole intervals elapsed since the previous call.
// The first call starts the clock and returns 0.
func (c *Clock) Due(now time.Time) int {
	if c.last.IsZero() {
		c.last = now
		return 0
	}

	n := 0
	for now.Sub(c.last) >= c.Interval {
		c.last = c.last.Add(c.Interval)
		n++
		if n == c.limit {
			c.last = now
			break
		}
	}
	return n
}

// Reset restarts the clock on the next call to Due.
func (c *Clock) Reset() { c.last = time.Time{} }
