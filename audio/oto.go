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
	"encoding/binary"
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/ebitengine/oto/v3"
)

// An OtoPlayer plays the tone on the default audio device while the sound
// timer runs.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	on     atomic.Bool

	// wave and buf are only touched by the oto goroutine through Read
	wave *SquareWave
	buf  []float32

	mutex  sync.Mutex
	closed bool
}

// NewOtoPlayer opens the audio device and starts streaming. The stream is
// silent until SetTone(true).
func NewOtoPlayer() (*OtoPlayer, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	p := &OtoPlayer{
		ctx:  ctx,
		wave: NewSquareWave(SampleRate, ToneFrequency, Volume),
	}
	p.player = ctx.NewPlayer(p)
	p.player.Play()
	return p, nil
}

// SetTone implements hachi.ToneSink.
func (p *OtoPlayer) SetTone(on bool) { p.on.Store(on) }

// Read implements io.Reader, producing mono float32 little endian samples.
func (p *OtoPlayer) Read(b []byte) (int, error) {
	n := len(b) / 4
	if len(p.buf) < n {
		p.buf = make([]float32, n)
	}
	samples := p.buf[:n]
	p.wave.Fill(samples, p.on.Load())

	for i, s := range samples {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(s))
	}
	return n * 4, nil
}

// Close stops playback.
func (p *OtoPlayer) Close() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	return p.player.Close()
}
