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


// Package cli handles command line interface logic.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/Francesco149/hachi8/hachi"
	"github.com/Francesco149/hachi8/internal/options"
)

// DefaultDriver is the driver used when -driver is not given.
const DefaultDriver = "termloop"

// terminalDrivers take over the terminal and need stdout to be one.
var terminalDrivers = map[string]bool{
	"termloop": true,
	"monitor":  true,
}

// ParseFlags parses the emulator command line flags.
func ParseFlags() (options.Program, error) {
	flags := newFlagSet()
	var opts options.Program
	readOptionFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	if err != nil {
		return opts, &UsageError{flags: flags, usage: "hachi [options] <program.ch8>", msg: err.Error()}
	}
	if opts.Version {
		return opts, nil
	}

	args := flags.Args()
	if len(args) == 0 {
		return opts, &UsageError{flags: flags, usage: "hachi [options] <program.ch8>"}
	}
	if err := validateArgs(args); err != nil {
		return opts, err
	}
	opts.Input = args[0]

	opts.Driver = strings.ToLower(opts.Driver)
	opts.Quirks = strings.ToLower(opts.Quirks)
	if err := validateDriver(opts.Driver); err != nil {
		return opts, err
	}
	if opts.ClockSpeed <= 0 {
		return opts, fmt.Errorf("clock speed must be positive, got %d", opts.ClockSpeed)
	}
	return opts, nil
}

// ParseDisassemblerFlags parses the disassembler command line flags.
func ParseDisassemblerFlags() (options.Disassembler, error) {
	flags := newFlagSet()
	var opts options.Disassembler
	var origin string
	flags.StringVar(&opts.Output, "o", "", "name of the output listing file, printed on console if no name given")
	flags.StringVar(&origin, "origin", fmt.Sprintf("%X", hachi.ProgramStart), "hex address the program is loaded at")
	flags.BoolVar(&opts.Labels, "labels", true, "label jump and call destinations")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	usage := "hachi-dis [options] <program.ch8>"
	if err := flags.Parse(os.Args[1:]); err != nil {
		return opts, &UsageError{flags: flags, usage: usage, msg: err.Error()}
	}
	args := flags.Args()
	if len(args) == 0 {
		return opts, &UsageError{flags: flags, usage: usage}
	}
	if err := validateArgs(args); err != nil {
		return opts, err
	}
	opts.Input = args[0]

	o, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(origin), "0x"), 16, 16)
	if err != nil || o >= hachi.MemorySize {
		return opts, fmt.Errorf("invalid origin %q", origin)
	}
	opts.Origin = uint16(o)
	return opts, nil
}

// newFlagSet returns a flag set that reports errors through UsageError
// instead of printing them.
func newFlagSet() *flag.FlagSet {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	return flags
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	usage string
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and the flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.usage != "" {
		fmt.Printf("usage: %s\n\n", e.usage)
	}
	if e.flags != nil {
		e.flags.SetOutput(os.Stdout)
		e.flags.PrintDefaults()
		fmt.Println()
	}
}

// CheckTerminal returns an error if the driver draws to the terminal but
// the file descriptor is not one.
func CheckTerminal(driver string, fd int) error {
	if terminalDrivers[driver] && !term.IsTerminal(fd) {
		return fmt.Errorf("driver %s needs a terminal", driver)
	}
	return nil
}

// validateArgs checks if arguments are in correct order.
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

func validateDriver(name string) error {
	drivers := hachi.Drivers()
	for _, d := range drivers {
		if d == name {
			return nil
		}
	}
	return fmt.Errorf("unsupported driver: %s. Valid options: %s",
		name, strings.Join(drivers, ", "))
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Driver, "driver", DefaultDriver, "display driver to use ("+strings.Join(hachi.Drivers(), "/")+")")
	flags.IntVar(&opts.ClockSpeed, "hz", hachi.DefaultClockSpeed, "instructions executed per second")
	flags.IntVar(&opts.Scale, "scale", 10, "window pixels per screen pixel for the ebiten driver")
	flags.IntVar(&opts.StackSize, "stack", hachi.MaxStackSize, "maximum number of nested subroutine calls")
	flags.StringVar(&opts.Quirks, "quirks", options.QuirksModern, "quirk preset (modern/cosmac)")
	flags.BoolVar(&opts.ShiftFromVY, "shift-vy", false, "SHR/SHL shift VY into VX")
	flags.BoolVar(&opts.LogicResetsVF, "logic-vf", false, "OR/AND/XOR reset VF")
	flags.BoolVar(&opts.JumpFromVX, "jump-vx", false, "BNNN jumps to NNN+VX")
	flags.BoolVar(&opts.MemoryIncrementsI, "mem-inc-i", false, "FX55/FX65 increment I")
	flags.BoolVar(&opts.Lenient, "lenient", false, "skip unknown instructions instead of halting")
	flags.BoolVar(&opts.Audio, "audio", true, "play the sound timer tone")
	flags.StringVar(&opts.Wav, "wav", "", "record the sound timer tone to a .wav file")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Version, "version", false, "print the version and exit")
}
