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
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// DefaultClockSpeed is the default number of instructions per second.
const DefaultClockSpeed = 700

// A Runner drives a Chip8 in real time: it runs instructions at the clock
// speed, counts the timers down at 60hz and hands the screen and the tone
// state to the driver and tone sinks.
type Runner struct {
	c      *Chip8
	logger *log.Logger
	drv    Driver
	tones  []ToneSink

	clockSpeed int
	cpu        *Clock
	timer      *Clock

	paused bool
	halted error
	steps  uint64
}

// A RunnerOption configures a Runner.
type RunnerOption func(r *Runner)

// WithClockSpeed sets the number of instructions run per second.
func WithClockSpeed(hz int) RunnerOption {
	return func(r *Runner) {
		if hz > 0 {
			r.clockSpeed = hz
		}
	}
}

// WithToneSink adds sinks that follow the sound timer, e.g. audio players.
func WithToneSink(sinks ...ToneSink) RunnerOption {
	return func(r *Runner) {
		r.tones = append(r.tones, sinks...)
	}
}

// NewRunner returns a runner for c.
func NewRunner(c *Chip8, logger *log.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		c:          c,
		logger:     logger,
		clockSpeed: DefaultClockSpeed,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.cpu = NewClock(r.clockSpeed)
	r.timer = NewClock(TimerFrequency)
	return r
}

// Machine returns the machine driven by the runner.
func (r *Runner) Machine() *Chip8 { return r.c }

// ClockSpeed returns the number of instructions run per second.
func (r *Runner) ClockSpeed() int { return r.clockSpeed }

// Run initializes drv and hands the calling goroutine over to its loop.
// Returns the error that halted the emulation, if any.
func (r *Runner) Run(ctx context.Context, drv Driver) (err error) {
	if err := drv.OnInit(r.c); err != nil {
		return fmt.Errorf("initializing driver: %w", err)
	}
	r.drv = drv
	defer func() {
		if cerr := drv.Close(); cerr != nil && err == nil {
			err = cerr
		}
		r.drv = nil
	}()

	r.logger.Debug("Starting host loop", log.Int("clock_speed", r.clockSpeed))
	return drv.Loop(ctx, r)
}

// Update runs one host frame: it polls the driver, counts the timers
// down, runs the instructions that are due at now and presents the
// result. Returns the error that halted the emulation, if any.
func (r *Runner) Update(now time.Time) error {
	if r.halted != nil {
		return r.halted
	}
	if r.drv != nil {
		r.drv.OnUpdate(r.c)
	}

	if r.paused {
		r.cpu.Reset()
		r.timer.Reset()
	} else {
		for n := r.timer.Due(now); n > 0; n-- {
			r.c.TickTimers()
		}
		for n := r.cpu.Due(now); n > 0 && r.halted == nil; n-- {
			r.step()
		}
	}

	r.present()
	return r.halted
}

// Step runs exactly one instruction, even while paused.
func (r *Runner) Step() error {
	if r.halted != nil {
		return r.halted
	}
	r.step()
	r.present()
	return r.halted
}

func (r *Runner) step() {
	if _, err := r.c.Step(); err != nil {
		r.halted = err
		r.logger.Error("Emulation halted",
			log.Err(err),
			log.Hex("pc", r.c.PC),
			log.String("state", r.c.String()))
		return
	}
	r.steps++
}

func (r *Runner) present() {
	if r.c.Screen.TakeDirty() && r.drv != nil {
		r.drv.UpdateScreen(r.c.Screen)
	}

	beeping := r.c.Timers.Beeping()
	if r.drv != nil {
		r.drv.SetTone(beeping)
	}
	for _, sink := range r.tones {
		sink.SetTone(beeping)
	}
}

// Pause stops running instructions and counting the timers down.
func (r *Runner) Pause() { r.paused = true }

// Resume continues after Pause.
func (r *Runner) Resume() { r.paused = false }

// Paused reports whether the runner is paused.
func (r *Runner) Paused() bool { return r.paused }

// Halted returns the error that stopped the emulation, or nil.
func (r *Runner) Halted() error { return r.halted }

// Steps returns the number of instructions run.
func (r *Runner) Steps() uint64 { return r.steps }

// Reset resets the machine and clears a halt.
func (r *Runner) Reset() {
	r.c.Reset()
	r.halted = nil
	r.steps = 0
	r.cpu.Reset()
	r.timer.Reset()
}
