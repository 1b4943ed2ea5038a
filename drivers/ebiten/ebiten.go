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


// Package ebiten implements a windowed driver on top of ebiten.
//
// The hex keypad is laid out on the left of a QWERTY keyboard:
//
//	1 2 3 4        1 2 3 C
//	Q W E R   ->   4 5 6 D
//	A S D F        7 8 9 E
//	Z X C V        A 0 B F
//
// P pauses, F10 resets the machine and Escape quits.
package ebiten

import (
	"context"
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/font/basicfont"

	"github.com/Francesco149/hachi8/hachi"
)

// DefaultScale is the default window pixels per machine pixel.
const DefaultScale = 10

// KeyMap maps host keys to hex key indices.
var KeyMap = map[ebiten.Key]uint8{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

var (
	foreground = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	background = color.RGBA{0x00, 0x00, 0x00, 0xFF}
	overlay    = color.RGBA{0xFF, 0x40, 0x40, 0xFF}
)

// A Driver shows the screen in a window scaled by an integer factor.
type Driver struct {
	logger *log.Logger
	scale  int
	width  int
	height int

	// pixels is written by UpdateScreen and read by Draw, which ebiten
	// may call from another goroutine
	mutex  sync.Mutex
	pixels []byte
	image  *ebiten.Image

	beeping bool
}

// New returns an uninitialized driver.
func New() *Driver {
	return &Driver{scale: DefaultScale}
}

// SetScale sets the window pixels per machine pixel. Must be called before
// Loop.
func (d *Driver) SetScale(scale int) {
	if scale > 0 {
		d.scale = scale
	}
}

// OnInit implements hachi.Driver.
func (d *Driver) OnInit(c *hachi.Chip8) error {
	d.logger = c.Logger()
	d.width, d.height = int(c.Screen.Width()), int(c.Screen.Height())
	d.pixels = make([]byte, d.width*d.height*4)
	render(d.pixels, c.Screen)
	d.logger.Debug("Ebiten driver initialized",
		log.Int("width", d.width),
		log.Int("height", d.height),
		log.Int("scale", d.scale))
	return nil
}

// OnUpdate polls the keyboard.
func (d *Driver) OnUpdate(c *hachi.Chip8) {
	for key, k := range KeyMap {
		c.Keypad.Set(k, ebiten.IsKeyPressed(key))
	}
}

// UpdateScreen converts the framebuffer to RGBA pixels.
func (d *Driver) UpdateScreen(fb *hachi.Framebuffer) {
	d.mutex.Lock()
	render(d.pixels, fb)
	d.mutex.Unlock()
}

// SetTone implements hachi.ToneSink. Sound is played by an audio sink; the
// driver only shows an indicator.
func (d *Driver) SetTone(on bool) { d.beeping = on }

// Loop opens the window and runs ebiten until the window is closed, Escape
// is pressed or ctx is done. Must be called from the main goroutine.
func (d *Driver) Loop(ctx context.Context, r *hachi.Runner) error {
	ebiten.SetWindowSize(d.width*d.scale, d.height*d.scale)
	ebiten.SetWindowTitle("hachi8")
	ebiten.SetTPS(hachi.TimerFrequency)

	g := &game{ctx: ctx, d: d, r: r}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running ebiten: %w", err)
	}
	return r.Halted()
}

// Close implements hachi.Driver.
func (d *Driver) Close() error { return nil }

// render writes fb as RGBA pixels to buf.
func render(buf []byte, fb *hachi.Framebuffer) {
	w, h := int(fb.Width()), int(fb.Height())
	for y := range h {
		for x := range w {
			c := background
			if fb.Pixel(x, y) {
				c = foreground
			}
			i := (y*w + x) * 4
			buf[i], buf[i+1], buf[i+2], buf[i+3] = c.R, c.G, c.B, c.A
		}
	}
}

// -----------------------------------------------------------------------------

// game implements ebiten.Game.
type game struct {
	ctx context.Context
	d   *Driver
	r   *hachi.Runner
}

func (g *game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyF10):
		g.r.Reset()
		g.d.UpdateScreen(g.r.Machine().Screen)
		g.d.logger.Info("Machine reset")
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		if g.r.Paused() {
			g.r.Resume()
		} else {
			g.r.Pause()
		}
	}

	// a halted machine keeps the window open so the error can be read
	_ = g.r.Update(time.Now())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	d := g.d
	if d.image == nil {
		d.image = ebiten.NewImage(d.width, d.height)
	}

	d.mutex.Lock()
	d.image.WritePixels(d.pixels)
	d.mutex.Unlock()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(d.scale), float64(d.scale))
	screen.DrawImage(d.image, op)

	if msg := g.status(); msg != "" {
		text.Draw(screen, msg, basicfont.Face7x13, 4, 14, overlay)
	}
}

func (g *game) status() string {
	switch {
	case g.r.Halted() != nil:
		return fmt.Sprintf("HALTED: %v", g.r.Halted())
	case g.r.Paused():
		return "PAUSED"
	case g.d.beeping:
		return "BEEP"
	}
	return ""
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.d.width * g.d.scale, g.d.height * g.d.scale
}

func init() {
	if err := hachi.RegisterDriver("ebiten", func() hachi.Driver { return New() }); err != nil {
		panic(err)
	}
}
