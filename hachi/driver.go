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
	"sort"
	"time"
)

// A ToneSink is told once per host frame whether the sound timer is
// running.
type ToneSink interface {
	SetTone(on bool)
}

// A Driver is the platform layer that shows the screen, feeds the keypad
// and owns the host loop. The machine never calls into a driver; the
// Runner does, between steps.
// Drivers should be registered by the RegisterDriver function in init().
type Driver interface {
	ToneSink
	// Called before the host loop starts.
	OnInit(c *Chip8) error
	// Called once per host frame before any instruction runs, should be
	// used for input polling and similar tasks.
	OnUpdate(c *Chip8)
	// Called when the program modified the screen.
	UpdateScreen(fb *Framebuffer)
	// Loop runs the host loop, calling r.Update once per frame, until the
	// user quits, ctx is done or the emulation halts.
	Loop(ctx context.Context, r *Runner) error
	// Releases the driver's resources.
	Close() error
}

// -----------------------------------------------------------------------------

var drivers = map[string]func() Driver{}

// RegisterDriver registers a driver factory to a name. The driver can then
// be created with NewDriver.
// This is not thread-safe, so don't call it concurrently to NewDriver.
func RegisterDriver(name string, factory func() Driver) error {
	if drivers[name] != nil {
		return fmt.Errorf("driver %s already exists", name)
	}
	drivers[name] = factory
	return nil
}

// UnregisterDriver unloads a previously registered driver.
// This is not thread-safe, so don't call it concurrently to NewDriver.
func UnregisterDriver(name string) error {
	if drivers[name] == nil {
		return fmt.Errorf("driver %s does not exist", name)
	}
	delete(drivers, name)
	return nil
}

// NewDriver creates a new instance of the named driver.
func NewDriver(name string) (Driver, error) {
	factory := drivers[name]
	if factory == nil {
		return nil, fmt.Errorf("driver %s not found", name)
	}
	return factory(), nil
}

// Drivers returns the names of the registered drivers, sorted.
func Drivers() []string {
	names := make([]string, 0, len(drivers))
	for name := range drivers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// -----------------------------------------------------------------------------

// A NullDriver is the default driver: it has no screen, no input and no
// sound and runs the machine at 60 frames per second until the context is
// done or the emulation halts.
type NullDriver struct{}

func (d *NullDriver) OnInit(c *Chip8) error        { return nil }
func (d *NullDriver) OnUpdate(c *Chip8)            {}
func (d *NullDriver) UpdateScreen(fb *Framebuffer) {}
func (d *NullDriver) SetTone(on bool)              {}
func (d *NullDriver) Close() error                 { return nil }

func (d *NullDriver) Loop(ctx context.Context, r *Runner) error {
	ticker := time.NewTicker(time.Second / TimerFrequency)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if err := r.Update(now); err != nil {
				return err
			}
		}
	}
}

func init() {
	if err := RegisterDriver("null", func() Driver { return &NullDriver{} }); err != nil {
		panic(err)
	}
}
