// Package conform checks the ALU in pkg/cpu against an independently written
// reference model over every input the operations can see.
package conform

import (
	"fmt"

	"github.com/cedricwaltercson/PatBoy/pkg/cpu"
	"github.com/cedricwaltercson/PatBoy/pkg/inst"
)

// Input is one starting point for an operation. 8-bit operations only look at
// the low byte of Acc and Operand.
type Input struct {
	Acc     uint16
	Operand uint16
	F       cpu.Flags
}

// Output is the register value and F after the operation.
type Output struct {
	Value uint16
	F     cpu.Flags
}

// Executor applies an operation to an input.
type Executor interface {
	Exec(op inst.OpCode, in Input) Output
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(op inst.OpCode, in Input) Output

func (fn ExecutorFunc) Exec(op inst.OpCode, in Input) Output {
	return fn(op, in)
}

// Core runs operations through pkg/cpu on a scratch register file, the way
// an instruction dispatcher would.
type Core struct{}

func (Core) Exec(op inst.OpCode, in Input) Output {
	s := cpu.State{F: in.F}

	switch op {
	case inst.INC8:
		s.B = uint8(in.Acc)
		cpu.Inc8(&s.B, &s.F)
		return Output{Value: uint16(s.B), F: s.F}
	case inst.DEC8:
		s.B = uint8(in.Acc)
		cpu.Dec8(&s.B, &s.F)
		return Output{Value: uint16(s.B), F: s.F}
	case inst.ADD8:
		s.A = uint8(in.Acc)
		cpu.Add8(&s.A, uint8(in.Operand), &s.F)
	case inst.ADC8:
		s.A = uint8(in.Acc)
		cpu.Adc8(&s.A, uint8(in.Operand), &s.F)
	case inst.SUB8:
		s.A = uint8(in.Acc)
		cpu.Sub8(&s.A, uint8(in.Operand), &s.F)
	case inst.SBC8:
		s.A = uint8(in.Acc)
		cpu.Sbc8(&s.A, uint8(in.Operand), &s.F)
	case inst.INC16:
		s.SP.Value = in.Acc
		cpu.Inc16(&s.SP)
		return Output{Value: s.SP.Value, F: s.F}
	case inst.DEC16:
		s.SP.Value = in.Acc
		cpu.Dec16(&s.SP)
		return Output{Value: s.SP.Value, F: s.F}
	case inst.ADD16:
		s.SetPair(cpu.PairHL, cpu.Register{Value: in.Acc})
		s.SetPair(cpu.PairDE, cpu.Register{Value: in.Operand})
		hl := s.Pair(cpu.PairHL)
		cpu.Add16(&hl, s.Pair(cpu.PairDE), &s.F)
		s.SetPair(cpu.PairHL, hl)
		return Output{Value: s.Pair(cpu.PairHL).Value, F: s.F}
	default:
		panic(fmt.Sprintf("conform: unknown op %d", uint8(op)))
	}
	return Output{Value: uint16(s.A), F: s.F}
}

// Reference is a second model of the same operations, written with signed
// wide arithmetic instead of unsigned comparisons.
type Reference struct{}

func (Reference) Exec(op inst.OpCode, in Input) Output {
	a, b := int(in.Acc), int(in.Operand)
	if !inst.Is16(op) {
		a, b = a&0xFF, b&0xFF
	}
	carryIn := in.F.Check(cpu.FlagCarry)
	c := 0
	if carryIn {
		c = 1
	}

	switch op {
	case inst.INC8:
		r := (a + 1) & 0xFF
		return pack(r, r == 0, false, a&0xF == 0xF, carryIn)
	case inst.DEC8:
		r := (a - 1) & 0xFF
		return pack(r, r == 0, true, a&0xF == 0, carryIn)
	case inst.ADD8, inst.ADC8:
		if op == inst.ADD8 {
			c = 0
		}
		sum := a + b + c
		half := a&0xF + b&0xF + c
		return pack(sum&0xFF, sum&0xFF == 0, false, half > 0xF, sum > 0xFF)
	case inst.SUB8, inst.SBC8:
		if op == inst.SUB8 {
			c = 0
		}
		// The borrow out of bit 3 is judged on the subtrahend b+c as a whole,
		// so 0xF plus carry-in reduces to nibble 0.
		diff := a - b - c
		half := a%16 - (b+c)%16
		return pack(diff&0xFF, diff == 0, true, half < 0, diff < 0)
	case inst.INC16:
		return Output{Value: uint16(a + 1), F: in.F}
	case inst.DEC16:
		return Output{Value: uint16(a - 1), F: in.F}
	case inst.ADD16:
		sum := a + b
		half := a&0xFFF + b&0xFFF
		return pack(sum&0xFFFF, in.F.Check(cpu.FlagZero), false, half > 0xFFF, sum > 0xFFFF)
	}
	panic(fmt.Sprintf("conform: unknown op %d", uint8(op)))
}

func pack(v int, z, n, h, c bool) Output {
	var f cpu.Flags
	f.Assign(cpu.FlagZero, z)
	f.Assign(cpu.FlagSubtract, n)
	f.Assign(cpu.FlagHalfCarry, h)
	f.Assign(cpu.FlagCarry, c)
	return Output{Value: uint16(v), F: f}
}
