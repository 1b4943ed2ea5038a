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

// Package audio turns the CHIP-8 sound timer into sound. The machine only
// exposes whether the timer is running; the sinks in this package follow
// that flag through hachi.ToneSink and either play a square wave or record
// it to a wav file.
package audio

// Tone parameters.
const (
	SampleRate    = 44100
	ToneFrequency = 240
	Volume        = 0.25
)

// SquareWave generates a square wave one sample at a time.
type SquareWave struct {
	phase    float32
	phaseInc float32
	volume   float32
}

// NewSquareWave returns a generator for a freq hertz tone.
func NewSquareWave(sampleRate int, freq, volume float32) *SquareWave {
	return &SquareWave{
		phaseInc: freq / float32(sampleRate),
		volume:   volume,
	}
}

// Next returns the next sample, in the range [-volume, volume].
func (w *SquareWave) Next() float32 {
	v := -w.volume
	if w.phase < 0.5 {
		v = w.volume
	}
	w.phase += w.phaseInc
	if w.phase >= 1 {
		w.phase--
	}
	return v
}

// Fill fills buf with the next samples, or with silence when on is false.
// The phase only advances while the tone is on.
func (w *SquareWave) Fill(buf []float32, on bool) {
	for i := range buf {
		if on {
			buf[i] = w.Next()
		} else {
			buf[i] = 0
		}
	}
}
