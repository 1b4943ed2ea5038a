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

import "strings"

// Framebuffer is the monochrome display. Each bit is a pixel which can be
// either on or off.
//
// Pixels are packed 8 per byte, row by row:
//
//	                                     x ->
//	  00000000 00000000 00000000 00000000
//	  00000000 01000000 00000000 00000000
//	y 00000000 00000000 00000000 00000000
//	| 00000000 00000000 00000000 00000000
//	v ...
//
// The 1 above is pixel (9, 1): byte y*width/8 + x/8, mask 0x80 >> (x%8).
type Framebuffer struct {
	pixels        []byte
	width, height uint8
	dirty         bool
}

// NewFramebuffer returns a blank framebuffer. width must be a multiple of 8.
func NewFramebuffer(width, height uint8) *Framebuffer {
	return &Framebuffer{
		pixels: make([]byte, int(width)/8*int(height)),
		width:  width,
		height: height,
	}
}

func (f *Framebuffer) Width() uint8  { return f.width }
func (f *Framebuffer) Height() uint8 { return f.height }

func (f *Framebuffer) locate(x, y int) (index int, mask byte) {
	index = y*int(f.width)/8 + x/8
	mask = 0x80 >> uint(x%8)
	return
}

// Pixel reports whether the pixel at x, y is set. Coordinates wrap.
func (f *Framebuffer) Pixel(x, y int) bool {
	x = wrap(x, int(f.width))
	y = wrap(y, int(f.height))
	index, mask := f.locate(x, y)
	return f.pixels[index]&mask != 0
}

// Clear turns off every pixel.
func (f *Framebuffer) Clear() {
	for i := range f.pixels {
		f.pixels[i] = 0
	}
	f.dirty = true
}

// DrawSprite XORs an 8 pixel wide sprite onto the screen with its top left
// corner at x, y. Every pixel wraps around the screen edges independently.
// Returns true if any set pixel was turned off.
func (f *Framebuffer) DrawSprite(x, y uint8, rows []byte) (collision bool) {
	for row, bits := range rows {
		py := (int(y) + row) % int(f.height)
		for col := 0; col < 8; col++ {
			if bits&(0x80>>uint(col)) == 0 {
				continue
			}
			px := (int(x) + col) % int(f.width)
			index, mask := f.locate(px, py)
			if f.pixels[index]&mask != 0 {
				collision = true
			}
			f.pixels[index] ^= mask
		}
	}
	f.dirty = true
	return
}

// Dirty reports whether the framebuffer changed since the last TakeDirty.
func (f *Framebuffer) Dirty() bool { return f.dirty }

// TakeDirty returns the dirty flag and clears it. Renderers call it once
// per host frame.
func (f *Framebuffer) TakeDirty() bool {
	d := f.dirty
	f.dirty = false
	return d
}

// Snapshot returns an independent copy of the framebuffer.
func (f *Framebuffer) Snapshot() *Framebuffer {
	return &Framebuffer{
		pixels: f.Bytes(),
		width:  f.width,
		height: f.height,
	}
}

// Bytes returns a copy of the packed pixel rows.
func (f *Framebuffer) Bytes() []byte {
	res := make([]byte, len(f.pixels))
	copy(res, f.pixels)
	return res
}

// String renders the framebuffer as text, one line per row.
func (f *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((int(f.width) + 1) * int(f.height))
	for y := 0; y < int(f.height); y++ {
		for x := 0; x < int(f.width); x++ {
			if f.Pixel(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
