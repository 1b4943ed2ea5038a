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


// Package listing writes disassembly listings of programs.
package listing

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/retroenv/retrogolib/set"

	"github.com/Francesco149/hachi8/hachi"
)

// Destinations returns the addresses that lines jump to or call.
func Destinations(lines []hachi.Line) set.Set[uint16] {
	dests := set.New[uint16]()
	for _, l := range lines {
		switch l.Instruction.Kind {
		case hachi.KindJp, hachi.KindCall:
			if l.Size() == 2 {
				dests[l.Instruction.Opcode.NNN()] = struct{}{}
			}
		}
	}
	return dests
}

// Label returns the label name for an address.
func Label(address uint16) string {
	return fmt.Sprintf("L%03X", address)
}

// Write writes a listing of the lines to w. When labels is set, jump and
// call destinations inside the listing get a label column entry.
func Write(w io.Writer, lines []hachi.Line, labels bool) error {
	var dests set.Set[uint16]
	if labels {
		dests = Destinations(lines)
	}

	tw := new(tabwriter.Writer)
	tw.Init(w, 8, 8, 0, '\t', 0)
	fmt.Fprintln(tw, "label\taddr\topcode\tpseudo-code\tascii\tdescription\t")

	for _, l := range lines {
		label := ""
		if _, ok := dests[l.Address]; ok {
			label = Label(l.Address) + ":"
		}

		asciitext := ""
		if ascii := l.ASCII(); len(ascii) != 0 {
			asciitext = fmt.Sprintf("`%s`", ascii)
		}

		opcodeFormatter := "%04X"
		if l.Size() == 1 {
			opcodeFormatter = "%02X"
		}

		fmt.Fprintf(tw, "%s\t%04X\t"+opcodeFormatter+"\t%v\t%s\t%s\n",
			label, l.Address, l.Opcode(), l, asciitext, l.Description())
	}
	return tw.Flush()
}

// Unreached returns the sorted destinations that fall outside the lines,
// e.g. jumps into memory that is not part of the program.
func Unreached(lines []hachi.Line) []uint16 {
	inside := set.New[uint16]()
	for _, l := range lines {
		inside[l.Address] = struct{}{}
	}

	var res []uint16
	for dest := range Destinations(lines) {
		if _, ok := inside[dest]; !ok {
			res = append(res, dest)
		}
	}
	slices.Sort(res)
	return res
}
