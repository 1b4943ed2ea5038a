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
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// EffectKind is the control flow effect of an executed instruction.
type EffectKind uint8

const (
	// Advance moves to the next instruction.
	Advance EffectKind = iota
	// Jump continues at Effect.Addr.
	Jump
	// Call pushes the address of the next instruction and jumps.
	Call
	// Return pops the return address off the stack.
	Return
	// Skip skips the next instruction.
	Skip
	// Wait keeps the program counter on the current instruction.
	Wait
)

var effectNames = [...]string{"advance", "jump", "call", "return", "skip", "wait"}

func (k EffectKind) String() string {
	if int(k) < len(effectNames) {
		return effectNames[k]
	}
	return fmt.Sprintf("EffectKind(%d)", k)
}

// Effect is what an instruction does to the program counter.
type Effect struct {
	Kind EffectKind
	Addr uint16 // target of Jump and Call
}

func (e Effect) String() string {
	if e.Kind == Jump || e.Kind == Call {
		return fmt.Sprintf("%v %03X", e.Kind, e.Addr)
	}
	return e.Kind.String()
}

var advance = Effect{Kind: Advance}

func skipIf(cond bool) Effect {
	if cond {
		return Effect{Kind: Skip}
	}
	return advance
}

func bit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------

// Step runs one instruction: it fetches the word at the program counter,
// decodes it, executes it and updates the program counter. On error the
// machine state is left as it was before the step.
func (c *Chip8) Step() (Effect, error) {
	op, err := Fetch(c.Memory[:], c.PC)
	if err != nil {
		return Effect{}, err
	}

	e, err := c.Execute(Decode(op))
	if err != nil {
		return e, err
	}
	return e, c.Apply(e)
}

// Apply updates the program counter and the stack according to e.
func (c *Chip8) Apply(e Effect) error {
	switch e.Kind {
	case Advance:
		c.PC += 2
	case Skip:
		c.PC += 4
	case Jump:
		if int(e.Addr) >= MemorySize {
			return &AccessErr{Op: "jump", Address: int(e.Addr), Size: 2}
		}
		c.PC = e.Addr
	case Call:
		if int(e.Addr) >= MemorySize {
			return &AccessErr{Op: "call", Address: int(e.Addr), Size: 2}
		}
		if err := c.Stack.Push(c.PC + 2); err != nil {
			return err
		}
		c.PC = e.Addr
	case Return:
		addr, err := c.Stack.Pop()
		if err != nil {
			return err
		}
		c.PC = addr
	case Wait:
	default:
		return fmt.Errorf("invalid effect %v", e.Kind)
	}
	return nil
}

// Execute applies the data side of one instruction to the machine and
// returns its control flow effect. It never touches the program counter
// or the stack; see Apply.
func (c *Chip8) Execute(in Instruction) (Effect, error) {
	o := in.Opcode
	x, y := o.X(), o.Y()
	q := &c.settings.Quirks

	switch in.Kind {
	case KindSys:
		// machine code routines of the original interpreter can't run here
		c.logger.Debug("Ignoring SYS call", log.Hex("address", o.NNN()))
	case KindCls:
		c.Screen.Clear()
	case KindRet:
		return Effect{Kind: Return}, nil
	case KindJp:
		return Effect{Kind: Jump, Addr: o.NNN()}, nil
	case KindCall:
		return Effect{Kind: Call, Addr: o.NNN()}, nil
	case KindSeByte:
		return skipIf(c.V[x] == o.NN()), nil
	case KindSneByte:
		return skipIf(c.V[x] != o.NN()), nil
	case KindSeReg:
		return skipIf(c.V[x] == c.V[y]), nil
	case KindSneReg:
		return skipIf(c.V[x] != c.V[y]), nil
	case KindLdByte:
		c.V[x] = o.NN()
	case KindAddByte:
		c.V[x] += o.NN()
	case KindLdReg:
		c.V[x] = c.V[y]
	case KindOr:
		c.V[x] |= c.V[y]
		if q.LogicResetsVF {
			c.V[0xF] = 0
		}
	case KindAnd:
		c.V[x] &= c.V[y]
		if q.LogicResetsVF {
			c.V[0xF] = 0
		}
	case KindXor:
		c.V[x] ^= c.V[y]
		if q.LogicResetsVF {
			c.V[0xF] = 0
		}
	case KindAddReg:
		sum := uint16(c.V[x]) + uint16(c.V[y])
		c.V[x] = uint8(sum)
		c.V[0xF] = bit(sum > 0xFF)
	case KindSub:
		vx, vy := c.V[x], c.V[y]
		c.V[x] = vx - vy
		c.V[0xF] = bit(vx >= vy)
	case KindSubn:
		vx, vy := c.V[x], c.V[y]
		c.V[x] = vy - vx
		c.V[0xF] = bit(vy >= vx)
	case KindShr:
		src := c.shiftSource(x, y)
		c.V[x] = src >> 1
		c.V[0xF] = src & 0x01 // least significant bit
	case KindShl:
		src := c.shiftSource(x, y)
		c.V[x] = src << 1
		c.V[0xF] = src >> 7 // most significant bit
	case KindLdI:
		c.I = o.NNN()
	case KindJpV0:
		offset := c.V[0]
		if q.JumpFromVX {
			offset = c.V[x]
		}
		return Effect{Kind: Jump, Addr: o.NNN() + uint16(offset)}, nil
	case KindRnd:
		c.V[x] = c.Rand() & o.NN()
	case KindDrw:
		return c.draw(x, y, o.N())
	case KindSkp:
		return skipIf(c.Keypad.IsPressed(c.V[x])), nil
	case KindSknp:
		return skipIf(!c.Keypad.IsPressed(c.V[x])), nil
	case KindLdVxDT:
		c.V[x] = c.Timers.Delay
	case KindLdVxK:
		return c.waitKey(x), nil
	case KindLdDTVx:
		c.Timers.Delay = c.V[x]
	case KindLdSTVx:
		c.Timers.Sound = c.V[x]
	case KindAddI:
		c.I += uint16(c.V[x])
	case KindLdF:
		c.I = FontStart + uint16(c.V[x]&0x0F)*FontGlyphSize
	case KindLdB:
		return c.storeBCD(x)
	case KindLdMemVx:
		return c.storeRegisters(x)
	case KindLdVxMem:
		return c.loadRegisters(x)
	default:
		return c.unknown(o)
	}
	return advance, nil
}

func (c *Chip8) shiftSource(x, y uint8) uint8 {
	if c.settings.Quirks.ShiftFromVY {
		return c.V[y]
	}
	return c.V[x]
}

// DRW VX,VY,N
func (c *Chip8) draw(x, y, rows uint8) (Effect, error) {
	if err := checkBounds("sprite", int(c.I), int(rows)); err != nil {
		return Effect{}, err
	}
	sprite := c.Memory[c.I : int(c.I)+int(rows)]
	collision := c.Screen.DrawSprite(c.V[x], c.V[y], sprite)
	c.V[0xF] = bit(collision)
	return advance, nil
}

// LD VX,K
//
// The first execution only enters AwaitingKey and forgets any key press
// that happened before. Every following execution either finds a new key
// press, stores it and advances, or waits again.
func (c *Chip8) waitKey(x uint8) Effect {
	if c.state != AwaitingKey {
		c.state = AwaitingKey
		c.waitReg = x
		c.Keypad.ResetLast()
		return Effect{Kind: Wait}
	}

	k, ok := c.Keypad.TakeLast()
	if !ok {
		return Effect{Kind: Wait}
	}
	c.V[c.waitReg] = k
	c.state = Running
	return advance
}

// LD [I],BCD VX
func (c *Chip8) storeBCD(x uint8) (Effect, error) {
	if err := checkBounds("bcd", int(c.I), 3); err != nil {
		return Effect{}, err
	}
	value := c.V[x]
	c.Memory[c.I] = value / 100         // hundreds
	c.Memory[c.I+1] = (value / 10) % 10 // tens
	c.Memory[c.I+2] = value % 10        // ones
	return advance, nil
}

// LD [I],VX
func (c *Chip8) storeRegisters(x uint8) (Effect, error) {
	n := int(x) + 1
	if err := checkBounds("store", int(c.I), n); err != nil {
		return Effect{}, err
	}
	copy(c.Memory[c.I:], c.V[:n])
	if c.settings.Quirks.MemoryIncrementsI {
		c.I += uint16(n)
	}
	return advance, nil
}

// LD VX,[I]
func (c *Chip8) loadRegisters(x uint8) (Effect, error) {
	n := int(x) + 1
	if err := checkBounds("load", int(c.I), n); err != nil {
		return Effect{}, err
	}
	copy(c.V[:n], c.Memory[c.I:])
	if c.settings.Quirks.MemoryIncrementsI {
		c.I += uint16(n)
	}
	return advance, nil
}

func (c *Chip8) unknown(o Opcode) (Effect, error) {
	if c.settings.StrictDecoding {
		return Effect{}, &UnknownInstructionErr{Address: c.PC, Opcode: o}
	}
	c.logger.Warn("Skipping unknown instruction",
		log.Hex("address", c.PC),
		log.Hex("opcode", uint16(o)))
	return advance, nil
}
