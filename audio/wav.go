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

package audio

import (
	"fmt"
	"io"
	"math"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/retroenv/retrogolib/log"

	"github.com/Francesco149/hachi8/hachi"
)

const (
	bitDepth       = 16
	samplesPerTick = SampleRate / hachi.TimerFrequency
)

// A WavRecorder records the tone to a 16-bit mono wav file. SetTone must be
// called once per 60hz frame; each call appends 1/60th of a second of
// audio. Samples are buffered in memory and written out on Close.
type WavRecorder struct {
	path    string
	logger  *log.Logger
	wave    *SquareWave
	frame   []float32
	samples []int
}

// NewWavRecorder returns a recorder that will write to path.
func NewWavRecorder(logger *log.Logger, path string) *WavRecorder {
	return &WavRecorder{
		path:   path,
		logger: logger,
		wave:   NewSquareWave(SampleRate, ToneFrequency, Volume),
		frame:  make([]float32, samplesPerTick),
	}
}

// SetTone implements hachi.ToneSink.
func (r *WavRecorder) SetTone(on bool) {
	r.wave.Fill(r.frame, on)
	for _, s := range r.frame {
		r.samples = append(r.samples, int(s*math.MaxInt16))
	}
}

// Duration returns the recorded length in samples.
func (r *WavRecorder) Duration() int { return len(r.samples) }

// Encode writes the recording as a wav stream to w.
func (r *WavRecorder) Encode(w io.WriteSeeker) error {
	enc := wav.NewEncoder(w, SampleRate, bitDepth, 1, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  SampleRate,
		},
		Data:           r.samples,
		SourceBitDepth: bitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	return nil
}

// Close writes the recording to the file.
func (r *WavRecorder) Close() (rerr error) {
	f, err := os.Create(r.path)
	if err != nil {
		return fmt.Errorf("wavwriter: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wavwriter: %w", err)
		}
	}()

	r.logger.Info("Writing audio",
		log.String("file", r.path),
		log.Int("samples", len(r.samples)))
	return r.Encode(f)
}
