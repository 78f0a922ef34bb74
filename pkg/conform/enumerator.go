package conform

import (
	"github.com/cedricwaltercson/PatBoy/pkg/cpu"
	"github.com/cedricwaltercson/PatBoy/pkg/inst"
)

// flagStates8 is every value F can hold. 8-bit sweeps use all of them so a
// flag leaking from the previous instruction cannot hide.
var flagStates8 = func() []cpu.Flags {
	s := make([]cpu.Flags, 16)
	for i := range s {
		s[i] = cpu.Flags(i << 4)
	}
	return s
}()

// flagStates16 samples F for the 16-bit sweeps, where the value space is
// already large: nothing, C alone, Z alone, everything.
var flagStates16 = []cpu.Flags{0x00, cpu.Flags(cpu.FlagC), cpu.Flags(cpu.FlagZ), 0xF0}

// Add16Operands are the second operands swept for ADD16. The first operand
// covers all 65536 values; these sit on the bit-11 and bit-15 boundaries.
var Add16Operands = []uint16{
	0x0000, 0x0001, 0x0002, 0x000F, 0x00FF, 0x0100,
	0x07FF, 0x0800, 0x0801, 0x0FFE, 0x0FFF, 0x1000,
	0x1111, 0x5555, 0x7FFF, 0x8000, 0x8001, 0x8FFF,
	0xAAAA, 0xF000, 0xF001, 0xFFF0, 0xFFFE, 0xFFFF,
}

// EnumerateInputs calls fn for every input swept for op.
// Returns false if fn requested early termination.
func EnumerateInputs(op inst.OpCode, fn func(Input) bool) bool {
	switch {
	case !inst.Is16(op) && inst.HasOperand(op):
		for _, f := range flagStates8 {
			for a := 0; a < 256; a++ {
				for b := 0; b < 256; b++ {
					if !fn(Input{Acc: uint16(a), Operand: uint16(b), F: f}) {
						return false
					}
				}
			}
		}
	case !inst.Is16(op):
		for _, f := range flagStates8 {
			for a := 0; a < 256; a++ {
				if !fn(Input{Acc: uint16(a), F: f}) {
					return false
				}
			}
		}
	case inst.HasOperand(op):
		for _, f := range flagStates16 {
			for _, b := range Add16Operands {
				for a := 0; a <= 0xFFFF; a++ {
					if !fn(Input{Acc: uint16(a), Operand: b, F: f}) {
						return false
					}
				}
			}
		}
	default:
		for _, f := range flagStates16 {
			for a := 0; a <= 0xFFFF; a++ {
				if !fn(Input{Acc: uint16(a), F: f}) {
					return false
				}
			}
		}
	}
	return true
}

// InputCount returns how many inputs EnumerateInputs produces for op.
func InputCount(op inst.OpCode) int64 {
	switch {
	case !inst.Is16(op) && inst.HasOperand(op):
		return int64(len(flagStates8)) * 256 * 256
	case !inst.Is16(op):
		return int64(len(flagStates8)) * 256
	case inst.HasOperand(op):
		return int64(len(flagStates16)) * int64(len(Add16Operands)) * 0x10000
	default:
		return int64(len(flagStates16)) * 0x10000
	}
}
