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
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// recordingDriver counts the calls a Runner makes.
type recordingDriver struct {
	NullDriver
	inits   int
	updates int
	screens []*Framebuffer
	tones   []bool
	closed  bool
	loop    func(ctx context.Context, r *Runner) error
}

func (d *recordingDriver) OnInit(c *Chip8) error { d.inits++; return nil }
func (d *recordingDriver) OnUpdate(c *Chip8)     { d.updates++ }
func (d *recordingDriver) UpdateScreen(fb *Framebuffer) {
	d.screens = append(d.screens, fb.Snapshot())
}
func (d *recordingDriver) SetTone(on bool) { d.tones = append(d.tones, on) }
func (d *recordingDriver) Close() error    { d.closed = true; return nil }

func (d *recordingDriver) Loop(ctx context.Context, r *Runner) error {
	if d.loop != nil {
		return d.loop(ctx, r)
	}
	return d.NullDriver.Loop(ctx, r)
}

type toneRecorder struct{ tones []bool }

func (s *toneRecorder) SetTone(on bool) { s.tones = append(s.tones, on) }

func TestRunnerUpdate(t *testing.T) {
	// LD V0,03; LD ST,V0; DRW V0,V0,1; JP 206
	c := newTestChip8(t, 0x60, 0x03, 0xF0, 0x18, 0xD0, 0x01, 0x12, 0x06)
	sink := &toneRecorder{}
	r := NewRunner(c, log.NewTestLogger(t), WithClockSpeed(600), WithToneSink(sink))
	assert.Equal(t, 600, r.ClockSpeed())

	drv := &recordingDriver{}
	r.drv = drv

	start := time.Unix(1000, 0)
	assert.NoError(t, r.Update(start))
	assert.Equal(t, uint64(0), r.Steps())

	// 10ms at 600hz are 6 instructions
	assert.NoError(t, r.Update(start.Add(10*time.Millisecond)))
	assert.Equal(t, uint64(6), r.Steps())
	assert.Equal(t, uint8(3), c.SoundTimer())
	// the screen cleared by the reset is presented first
	assert.Len(t, drv.screens, 2)
	assert.True(t, drv.screens[1].Pixel(3, 3))
	assert.Equal(t, []bool{false, true}, drv.tones)
	assert.Equal(t, drv.tones, sink.tones)
	assert.Equal(t, 2, drv.updates)

	// the timers run at 60hz regardless of the clock speed
	assert.NoError(t, r.Update(start.Add(60*time.Millisecond)))
	assert.Equal(t, uint8(0), c.SoundTimer())
	assert.False(t, sink.tones[len(sink.tones)-1])
	// nothing was drawn since
	assert.Len(t, drv.screens, 2)
}

func TestRunnerPause(t *testing.T) {
	// LD V0,01; ADD V0,01; JP 202
	c := newTestChip8(t, 0x60, 0x01, 0x70, 0x01, 0x12, 0x02)
	r := NewRunner(c, log.NewTestLogger(t))
	start := time.Unix(1000, 0)
	c.Timers.Delay = 100

	r.Pause()
	assert.True(t, r.Paused())
	assert.NoError(t, r.Update(start))
	assert.NoError(t, r.Update(start.Add(time.Second)))
	assert.Equal(t, uint64(0), r.Steps())
	assert.Equal(t, uint8(100), c.Timers.Delay)

	// single stepping works while paused
	assert.NoError(t, r.Step())
	assert.NoError(t, r.Step())
	assert.Equal(t, uint8(2), c.V[0])

	// resuming doesn't replay the paused time
	r.Resume()
	assert.NoError(t, r.Update(start.Add(2*time.Second)))
	assert.NoError(t, r.Update(start.Add(2*time.Second+10*time.Millisecond)))
	assert.Equal(t, uint64(2+7), r.Steps())
}

func TestRunnerHalt(t *testing.T) {
	c := newTestChip8(t, 0x00, 0xEE)
	r := NewRunner(c, log.NewTestLogger(t))

	err := r.Step()
	var underflow *StackUnderflowErr
	assert.True(t, errors.As(err, &underflow))
	assert.Equal(t, err, r.Halted())

	// a halted runner stays halted until reset
	assert.Equal(t, err, r.Update(time.Now()))
	assert.Equal(t, err, r.Step())

	r.Reset()
	assert.NoError(t, r.Halted())
	assert.Equal(t, uint16(ProgramStart), c.PC)
}

func TestRunnerRun(t *testing.T) {
	c := newTestChip8(t, 0xFF, 0xFF)
	r := NewRunner(c, log.NewTestLogger(t))

	drv := &recordingDriver{}
	drv.loop = func(ctx context.Context, r *Runner) error {
		start := time.Unix(1000, 0)
		if err := r.Update(start); err != nil {
			return err
		}
		return r.Update(start.Add(time.Second))
	}

	err := r.Run(context.Background(), drv)
	var unknown *UnknownInstructionErr
	assert.True(t, errors.As(err, &unknown))
	assert.Equal(t, 1, drv.inits)
	assert.True(t, drv.closed)
}

func TestNullDriverStopsOnContext(t *testing.T) {
	// JP 200
	c := newTestChip8(t, 0x12, 0x00)
	r := NewRunner(c, log.NewTestLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	drv, err := NewDriver("null")
	assert.NoError(t, err)
	assert.NoError(t, r.Run(ctx, drv))
	assert.True(t, r.Steps() > 0)
}

func TestNullDriverStopsOnHalt(t *testing.T) {
	c := newTestChip8(t, 0x00, 0xEE)
	r := NewRunner(c, log.NewTestLogger(t))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := r.Run(ctx, &NullDriver{})
	var underflow *StackUnderflowErr
	assert.True(t, errors.As(err, &underflow))
}
