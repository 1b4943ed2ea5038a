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


// Package config handles application configuration and setup.
package config

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"

	"github.com/Francesco149/hachi8/hachi"
	"github.com/Francesco149/hachi8/internal/options"
)

// CreateLogger creates a logger with appropriate settings.
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Settings builds the machine settings from the program options. The
// individual quirk options are enabled on top of the selected preset.
func Settings(opts options.Program) (*hachi.Settings, error) {
	s := hachi.DefaultSettings()

	switch opts.Quirks {
	case "", options.QuirksModern:
		s.Quirks = hachi.QuirksModern
	case options.QuirksCOSMAC:
		s.Quirks = hachi.QuirksCOSMAC
	default:
		return nil, fmt.Errorf("unsupported quirks preset: %s. Valid options: %s, %s",
			opts.Quirks, options.QuirksModern, options.QuirksCOSMAC)
	}

	s.Quirks.ShiftFromVY = s.Quirks.ShiftFromVY || opts.ShiftFromVY
	s.Quirks.LogicResetsVF = s.Quirks.LogicResetsVF || opts.LogicResetsVF
	s.Quirks.JumpFromVX = s.Quirks.JumpFromVX || opts.JumpFromVX
	s.Quirks.MemoryIncrementsI = s.Quirks.MemoryIncrementsI || opts.MemoryIncrementsI
	s.StrictDecoding = !opts.Lenient

	if opts.StackSize != 0 {
		s.StackSize = opts.StackSize
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}
