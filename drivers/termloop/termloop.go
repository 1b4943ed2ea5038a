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


// Package termloop implements a terminal driver on top of termloop.
//
// The driver shows the screen next to the machine state, the call stack
// and a log of the screen and sound events. Termbox only reports key down
// events, so keys are released automatically 100ms after the last press.
// The host loop ends when the user presses Ctrl+C.
//
// Key mappings can be replaced with SetKeyMap, which takes termloop keys
// and hex key indices (0x0-0xF). Hex digits typed on the keyboard are
// always mapped to the matching key.
package termloop

import (
	"context"
	"fmt"
	"time"

	tl "github.com/JoelOtter/termloop"
	"github.com/retroenv/retrogolib/log"

	"github.com/Francesco149/hachi8/hachi"
)

const (
	screenX    = 20
	screenY    = 5
	eventLines = 10
	releaseAge = 100 * time.Millisecond
)

// DefaultKeyMap is the hex keyboard with 16 keys.
// 8, 4, 6 and 2 are typically used for directional input.
var DefaultKeyMap = map[tl.Key]uint8{
	tl.KeyTab:        0x0,
	tl.KeyF2:         0x1,
	tl.KeyF3:         0x2,
	tl.KeyF4:         0x3,
	tl.KeyF5:         0x4,
	tl.KeyF6:         0x5,
	tl.KeyF7:         0x6,
	tl.KeyF8:         0x7,
	tl.KeyF9:         0x8,
	tl.KeyF10:        0x9,
	tl.KeyCtrlA:      0xA,
	tl.KeyCtrlB:      0xB,
	tl.KeyCtrlD:      0xD,
	tl.KeyCtrlE:      0xE,
	tl.KeyCtrlF:      0xF,
	tl.KeyArrowDown:  0x2,
	tl.KeyArrowLeft:  0x4,
	tl.KeyArrowRight: 0x6,
	tl.KeyArrowUp:    0x8,
	tl.KeyEnter:      0x5,
}

// A Driver is a terminal-based driver that uses the termloop library.
// It shows the current machine state in real time and the screen.
type Driver struct {
	logger *log.Logger
	g      *tl.Game

	memory            *tl.Text
	registers         *tl.Text
	pointersAndTimers *tl.Text
	devices           *tl.Text
	status            *tl.Text
	stack             []*tl.Text
	events            [eventLines]*tl.Text

	pixels     [][]*tl.Rectangle
	lastScreen *hachi.Framebuffer

	keyMap    map[tl.Key]uint8
	pressed   map[uint8]time.Time
	beeping   bool
	haltShown bool
}

// New returns an uninitialized driver.
func New() *Driver {
	return &Driver{
		keyMap:  DefaultKeyMap,
		pressed: map[uint8]time.Time{},
	}
}

// SetKeyMap replaces the key mappings. Must be called before Loop.
func (d *Driver) SetKeyMap(m map[tl.Key]uint8) { d.keyMap = m }

func (d *Driver) logEvent(s string) {
	for i := eventLines - 1; i > 0; i-- {
		d.events[i].SetText(d.events[i-1].Text())
	}
	d.events[0].SetText(s)
}

func newText(x, y int, s string) *tl.Text {
	return tl.NewText(x, y, s, tl.ColorDefault, tl.ColorDefault)
}

// OnInit implements hachi.Driver.
func (d *Driver) OnInit(c *hachi.Chip8) error {
	d.logger = c.Logger()
	d.g = tl.NewGame()
	d.g.Screen().SetFps(hachi.TimerFrequency)
	scr := d.g.Screen()

	scr.AddEntity(newText(0, 0, "Stack   Events"))

	d.stack = make([]*tl.Text, c.Stack.Cap())
	for i := range d.stack {
		d.stack[i] = newText(0, i+1, "")
		scr.AddEntity(d.stack[i])
	}

	for i := range d.events {
		d.events[i] = newText(8, i+1, "")
		scr.AddEntity(d.events[i])
	}

	// machine state
	d.memory = newText(screenX, 0, "")
	d.registers = newText(screenX, 1, "")
	d.pointersAndTimers = newText(screenX, 2, "")
	d.devices = newText(screenX, 3, "")
	d.status = newText(screenX, screenY+int(c.Screen.Height())+1, "")
	for _, t := range []*tl.Text{d.memory, d.registers, d.pointersAndTimers, d.devices, d.status} {
		scr.AddEntity(t)
	}

	// screen preview, a rectangle per pixel that is added while lit
	w, h := int(c.Screen.Width()), int(c.Screen.Height())
	d.pixels = make([][]*tl.Rectangle, w)
	for x := range d.pixels {
		d.pixels[x] = make([]*tl.Rectangle, h)
		for y := range d.pixels[x] {
			d.pixels[x][y] = tl.NewRectangle(screenX+x, screenY+y, 1, 1, tl.ColorWhite)
		}
	}
	d.lastScreen = hachi.NewFramebuffer(c.Screen.Width(), c.Screen.Height())

	d.logger.Debug("Termloop driver initialized")
	return nil
}

// OnUpdate releases the keys that were not repeated recently and refreshes
// the state panel.
func (d *Driver) OnUpdate(c *hachi.Chip8) {
	now := time.Now()
	for k, t := range d.pressed {
		if now.Sub(t) > releaseAge {
			c.Keypad.Release(k)
			delete(d.pressed, k)
		}
	}

	d.memory.SetText(fmt.Sprintf("Memory: %v bytes, program: %v bytes",
		len(c.Memory), len(c.Program())))
	d.registers.SetText(fmt.Sprintf("Registers: % 02X", c.V))
	d.pointersAndTimers.SetText(
		fmt.Sprintf("I: %04X SP: %v, PC: %04X, DT: %02X, ST: %02X",
			c.I, c.Stack.Len(), c.PC, c.Timers.Delay, c.Timers.Sound))
	d.devices.SetText(fmt.Sprintf("Keyboard: %016b, Screen: %v*%v, %v",
		c.Keypad.Pressed(), c.Screen.Width(), c.Screen.Height(), c.State()))

	frames := c.Stack.Frames()
	for i, t := range d.stack {
		if i < len(frames) {
			t.SetText(fmt.Sprintf("%04X", frames[i]))
		} else {
			t.SetText("")
		}
	}
}

// UpdateScreen adds and removes the pixels that changed since the last
// update.
func (d *Driver) UpdateScreen(fb *hachi.Framebuffer) {
	scr := d.g.Screen()
	lit := 0
	for x := range d.pixels {
		for y := range d.pixels[x] {
			now, before := fb.Pixel(x, y), d.lastScreen.Pixel(x, y)
			switch {
			case now && !before:
				scr.AddEntity(d.pixels[x][y])
			case !now && before:
				scr.RemoveEntity(d.pixels[x][y])
			}
			if now {
				lit++
			}
		}
	}
	d.lastScreen = fb.Snapshot()

	if lit == 0 {
		d.logEvent("CLS")
	} else {
		d.logEvent("DRW")
	}
}

// SetTone logs the start of every beep.
func (d *Driver) SetTone(on bool) {
	if on && !d.beeping {
		d.logEvent("BEEP")
	}
	d.beeping = on
}

// Loop runs termloop until the user presses Ctrl+C. termloop can't be
// stopped from the outside, so a halt only shows up in the status line
// and ctx is not observed.
func (d *Driver) Loop(ctx context.Context, r *hachi.Runner) error {
	d.g.Screen().AddEntity(&frame{d: d, r: r})
	d.g.Start()
	return r.Halted()
}

// Close implements hachi.Driver.
func (d *Driver) Close() error { return nil }

func (d *Driver) press(c *hachi.Chip8, k uint8) {
	c.Keypad.Press(k)
	d.pressed[k] = time.Now()
}

// -----------------------------------------------------------------------------

// frame advances the machine on every Draw, since Tick is only called on
// input.
type frame struct {
	d *Driver
	r *hachi.Runner
}

func (f *frame) Draw(s *tl.Screen) {
	err := f.r.Update(time.Now())
	if err != nil && !f.d.haltShown {
		f.d.status.SetText(fmt.Sprintf("HALTED: %v (Ctrl+C to quit)", err))
		f.d.haltShown = true
	}
}

func (f *frame) Tick(ev tl.Event) {
	if ev.Type != tl.EventKey {
		return
	}
	c := f.r.Machine()
	if k, ok := f.d.keyMap[ev.Key]; ok {
		f.d.press(c, k)
		return
	}
	if k, ok := hexDigit(ev.Ch); ok {
		f.d.press(c, k)
	}
}

func hexDigit(ch rune) (uint8, bool) {
	switch {
	case ch >= '0' && ch <= '9':
		return uint8(ch - '0'), true
	case ch >= 'a' && ch <= 'f':
		return uint8(ch-'a') + 0xA, true
	case ch >= 'A' && ch <= 'F':
		return uint8(ch-'A') + 0xA, true
	}
	return 0, false
}

func init() {
	if err := hachi.RegisterDriver("termloop", func() hachi.Driver { return New() }); err != nil {
		panic(err)
	}
}
