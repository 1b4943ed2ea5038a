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


// Package monitor implements a step debugger driver on top of gocui.
//
// The monitor starts paused and shows the screen, the registers, the call
// stack and the code at the program counter. Keys:
//
//	space    run one instruction
//	r        run or pause
//	Ctrl+R   reset the machine
//	0-9 a-f  toggle a hex key
//	q Ctrl+C quit
package monitor

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/retroenv/retrogolib/log"

	"github.com/Francesco149/hachi8/hachi"
)

const disassemblyLines = 16

// A Driver is a terminal debugger driver.
type Driver struct {
	logger *log.Logger
	r      *hachi.Runner
}

// New returns an uninitialized driver.
func New() *Driver { return &Driver{} }

// OnInit implements hachi.Driver.
func (d *Driver) OnInit(c *hachi.Chip8) error {
	d.logger = c.Logger()
	return nil
}

// OnUpdate implements hachi.Driver. Input arrives through keybindings.
func (d *Driver) OnUpdate(c *hachi.Chip8) {}

// UpdateScreen implements hachi.Driver. The views are redrawn from the
// machine state on every layout pass.
func (d *Driver) UpdateScreen(fb *hachi.Framebuffer) {}

// SetTone implements hachi.Driver.
func (d *Driver) SetTone(on bool) {}

// Close implements hachi.Driver.
func (d *Driver) Close() error { return nil }

// Loop runs the gocui main loop until the user quits or ctx is done.
func (d *Driver) Loop(ctx context.Context, r *hachi.Runner) error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return fmt.Errorf("creating gui: %w", err)
	}
	defer g.Close()

	d.r = r
	r.Pause()
	g.SetManagerFunc(d.layout)
	if err := d.bindKeys(g); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	go d.tick(ctx, g, done)

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return fmt.Errorf("running gui: %w", err)
	}
	return r.Halted()
}

// tick advances the runner at 60hz. gocui only allows updating the views
// through Execute, so the runner is always driven from the gui goroutine.
func (d *Driver) tick(ctx context.Context, g *gocui.Gui, done <-chan struct{}) {
	ticker := time.NewTicker(time.Second / hachi.TimerFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			g.Execute(quit)
			return
		case now := <-ticker.C:
			g.Execute(func(g *gocui.Gui) error {
				// a halt is shown in the status view
				_ = d.r.Update(now)
				return nil
			})
		}
	}
}

type binding struct {
	key     any
	handler func(g *gocui.Gui, v *gocui.View) error
}

func (d *Driver) bindKeys(g *gocui.Gui) error {
	bindings := []binding{
		{gocui.KeyCtrlC, quit},
		{'q', quit},
		{gocui.KeySpace, d.step},
		{'r', d.toggleRun},
		{gocui.KeyCtrlR, d.reset},
	}
	for k := uint8(0); k < hachi.KeyCount; k++ {
		bindings = append(bindings, binding{hexRune(k), d.toggleKey(k)})
	}

	for _, b := range bindings {
		if err := g.SetKeybinding("", b.key, gocui.ModNone, b.handler); err != nil {
			return fmt.Errorf("binding key %v: %w", b.key, err)
		}
	}
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}

func (d *Driver) step(g *gocui.Gui, v *gocui.View) error {
	_ = d.r.Step()
	return nil
}

func (d *Driver) toggleRun(g *gocui.Gui, v *gocui.View) error {
	if d.r.Paused() {
		d.r.Resume()
	} else {
		d.r.Pause()
	}
	return nil
}

func (d *Driver) reset(g *gocui.Gui, v *gocui.View) error {
	d.r.Reset()
	d.logger.Info("Machine reset")
	return nil
}

func (d *Driver) toggleKey(k uint8) func(g *gocui.Gui, v *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		kp := &d.r.Machine().Keypad
		kp.Set(k, !kp.IsPressed(k))
		return nil
	}
}

// hexRune returns the lowercase hex digit for k.
func hexRune(k uint8) rune {
	if k < 10 {
		return rune('0' + k)
	}
	return rune('a' + k - 10)
}

// -----------------------------------------------------------------------------

type view struct {
	name           string
	title          string
	x0, y0, x1, y1 int
	render         func(w io.Writer)
}

// layout places the views and redraws them from the machine state.
func (d *Driver) layout(g *gocui.Gui) error {
	c := d.r.Machine()
	maxX, maxY := g.Size()
	screenW := int(c.Screen.Width()) + 1
	screenH := int(c.Screen.Height()) + 1
	sideX := screenW + 1

	views := []view{
		{"screen", "Screen", 0, 0, screenW, screenH,
			func(w io.Writer) { writeScreen(w, c.Screen) }},
		{"status", "Status", 0, screenH + 1, screenW, maxY - 1,
			func(w io.Writer) { writeStatus(w, d.r) }},
		{"registers", "Registers", sideX, 0, maxX - 1, 6,
			func(w io.Writer) { writeRegisters(w, c) }},
		{"stack", "Stack", sideX, 7, sideX + 10, maxY - 1,
			func(w io.Writer) { writeStack(w, c.Stack) }},
		{"code", "Code", sideX + 11, 7, maxX - 1, maxY - 1,
			func(w io.Writer) { writeDisassembly(w, c, disassemblyLines) }},
	}

	for _, vd := range views {
		v, err := g.SetView(vd.name, vd.x0, vd.y0, vd.x1, vd.y1)
		if err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
			v.Title = vd.title
		}
		v.Clear()
		vd.render(v)
	}
	return nil
}

func writeScreen(w io.Writer, fb *hachi.Framebuffer) {
	fmt.Fprint(w, fb.String())
}

func writeStatus(w io.Writer, r *hachi.Runner) {
	c := r.Machine()
	switch {
	case r.Halted() != nil:
		fmt.Fprintf(w, "HALTED: %v\n", r.Halted())
	case r.Paused():
		fmt.Fprintln(w, "paused")
	default:
		fmt.Fprintf(w, "running at %d hz\n", r.ClockSpeed())
	}
	fmt.Fprintf(w, "state: %v, steps: %d, keys: %016b\n",
		c.State(), r.Steps(), c.Keypad.Pressed())
}

func writeRegisters(w io.Writer, c *hachi.Chip8) {
	for i, v := range c.V {
		fmt.Fprintf(w, "V%1X:%02X ", i, v)
		if i%8 == 7 {
			fmt.Fprintln(w)
		}
	}
	fmt.Fprintf(w, "I:%04X PC:%04X SP:%d\n", c.I, c.PC, c.Stack.Len())
	fmt.Fprintf(w, "DT:%02X ST:%02X\n", c.Timers.Delay, c.Timers.Sound)
}

func writeStack(w io.Writer, s *hachi.Stack) {
	frames := s.Frames()
	for i := len(frames) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "%2d %04X\n", i, frames[i])
	}
}

func writeDisassembly(w io.Writer, c *hachi.Chip8, n int) {
	for i, l := range hachi.DisassembleAt(c, c.PC, n) {
		marker := "  "
		if i == 0 {
			marker = "> "
		}
		fmt.Fprintf(w, "%s%04X %04X %v\n", marker, l.Address, l.Opcode(), l)
	}
}

func init() {
	if err := hachi.RegisterDriver("monitor", func() hachi.Driver { return New() }); err != nil {
		panic(err)
	}
}
