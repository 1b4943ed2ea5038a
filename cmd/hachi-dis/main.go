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


// Package main implements hachi-dis, a CHIP-8 program disassembler.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/Francesco149/hachi8/hachi"
	"github.com/Francesco149/hachi8/internal/cli"
	"github.com/Francesco149/hachi8/internal/config"
	"github.com/Francesco149/hachi8/internal/listing"
	"github.com/Francesco149/hachi8/internal/options"
)

func main() {
	opts, err := cli.ParseDisassemblerFlags()
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

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err := disasmFile(logger, opts); err != nil {
		logger.Fatal("Disassembling failed", log.Err(err))
	}
}

func disasmFile(logger *log.Logger, opts options.Disassembler) (rerr error) {
	program, err := os.ReadFile(opts.Input)
	if err != nil {
		return fmt.Errorf("reading file '%s': %w", opts.Input, err)
	}

	lines, err := hachi.Disassemble(program, opts.Origin)
	if err != nil {
		return err
	}
	logger.Debug("Disassembled program",
		log.String("file", opts.Input),
		log.Int("size", len(program)),
		log.Int("lines", len(lines)))

	for _, dest := range listing.Unreached(lines) {
		logger.Warn("Destination outside of program", log.Hex("address", dest))
	}

	var w io.Writer = os.Stdout
	if opts.Output != "" {
		f, err := os.Create(opts.Output)
		if err != nil {
			return fmt.Errorf("creating file '%s': %w", opts.Output, err)
		}
		defer func() {
			if err := f.Close(); err != nil && rerr == nil {
				rerr = fmt.Errorf("closing file '%s': %w", opts.Output, err)
			}
		}()
		w = f
	}

	return listing.Write(w, lines, opts.Labels)
}
