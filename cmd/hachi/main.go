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


// Package main implements the hachi CHIP-8 emulator.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/Francesco149/hachi8/audio"
	_ "github.com/Francesco149/hachi8/drivers"
	"github.com/Francesco149/hachi8/hachi"
	"github.com/Francesco149/hachi8/internal/cli"
	"github.com/Francesco149/hachi8/internal/config"
	"github.com/Francesco149/hachi8/internal/options"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("hachi version: %s\n", buildinfo.Version(version, commit, date))
		return
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err := run(ctx, logger, opts); err != nil {
		logger.Fatal("Emulation failed", log.Err(err))
	}
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	if err := cli.CheckTerminal(opts.Driver, int(os.Stdout.Fd())); err != nil {
		return err
	}

	settings, err := config.Settings(opts)
	if err != nil {
		return err
	}

	c, err := hachi.New(logger, settings)
	if err != nil {
		return err
	}
	if _, err := c.Load(opts.Input); err != nil {
		return err
	}

	drv, err := hachi.NewDriver(opts.Driver)
	if err != nil {
		return err
	}
	if s, ok := drv.(interface{ SetScale(int) }); ok {
		s.SetScale(opts.Scale)
	}

	var sinks []hachi.ToneSink
	if opts.Audio {
		player, err := audio.NewOtoPlayer()
		if err != nil {
			logger.Warn("Audio disabled", log.Err(err))
		} else {
			defer closeLogged(logger, "audio player", player.Close)
			sinks = append(sinks, player)
		}
	}
	if opts.Wav != "" {
		rec := audio.NewWavRecorder(logger, opts.Wav)
		defer closeLogged(logger, "wav recorder", rec.Close)
		sinks = append(sinks, rec)
	}

	r := hachi.NewRunner(c, logger,
		hachi.WithClockSpeed(opts.ClockSpeed),
		hachi.WithToneSink(sinks...))

	err = r.Run(ctx, drv)
	logger.Debug("Emulation stopped", log.String("state", c.String()))
	return err
}

func closeLogged(logger *log.Logger, name string, fn func() error) {
	if err := fn(); err != nil {
		logger.Error("Closing failed", log.String("resource", name), log.Err(err))
	}
}
