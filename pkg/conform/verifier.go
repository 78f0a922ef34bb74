package conform

import (
	"github.com/cedricwaltercson/PatBoy/pkg/inst"
	"github.com/cedricwaltercson/PatBoy/pkg/result"
)

// TestVectors are fixed inputs used for QuickCheck to reject most broken
// executors before a full sweep. They sit on nibble and byte boundaries, with
// and without carry-in.
var TestVectors = []Input{
	{Acc: 0x00, Operand: 0x00, F: 0x00},
	{Acc: 0x00, Operand: 0x01, F: 0x00},
	{Acc: 0x0F, Operand: 0x01, F: 0x00},
	{Acc: 0x10, Operand: 0x01, F: 0x10},
	{Acc: 0x3A, Operand: 0xC6, F: 0x00},
	{Acc: 0x3E, Operand: 0x3E, F: 0xF0},
	{Acc: 0xFF, Operand: 0xFF, F: 0x10},
	{Acc: 0x00, Operand: 0xFF, F: 0x10},
	{Acc: 0x10, Operand: 0x0F, F: 0x10},
	{Acc: 0x80, Operand: 0x7F, F: 0xE0},
	{Acc: 0x0FFF, Operand: 0x0001, F: 0x80},
	{Acc: 0xFFFF, Operand: 0x0001, F: 0x00},
	{Acc: 0x8000, Operand: 0x8000, F: 0x40},
	{Acc: 0x0000, Operand: 0x0000, F: 0xF0},
}

// vectorFor narrows a vector to the operation's width.
func vectorFor(op inst.OpCode, in Input) Input {
	if !inst.Is16(op) {
		in.Acc &= 0xFF
		in.Operand &= 0xFF
	}
	if !inst.HasOperand(op) {
		in.Operand = 0
	}
	return in
}

// QuickCheck runs op on both executors over the test vectors.
// Returns true if they produce identical outputs on all of them.
func QuickCheck(want, got Executor, op inst.OpCode) bool {
	for i := range TestVectors {
		in := vectorFor(op, TestVectors[i])
		if want.Exec(op, in) != got.Exec(op, in) {
			return false
		}
	}
	return true
}

// ExhaustiveCheck verifies equivalence over every input EnumerateInputs
// yields for op.
func ExhaustiveCheck(want, got Executor, op inst.OpCode) bool {
	return EnumerateInputs(op, func(in Input) bool {
		return want.Exec(op, in) == got.Exec(op, in)
	})
}

// Mismatches sweeps op and returns the number of inputs checked along with up
// to limit disagreements. A limit of zero or less records all of them.
func Mismatches(want, got Executor, op inst.OpCode, limit int) (int64, []result.Mismatch) {
	var checked int64
	var out []result.Mismatch
	EnumerateInputs(op, func(in Input) bool {
		checked++
		w, g := want.Exec(op, in), got.Exec(op, in)
		if w != g && (limit <= 0 || len(out) < limit) {
			out = append(out, mismatch(in, w, g))
		}
		return true
	})
	return checked, out
}

// FlagDiff returns the F bits that differ between the executors on any input.
// Zero means the flags always agree (values may still differ).
func FlagDiff(want, got Executor, op inst.OpCode) uint8 {
	var diff uint8
	EnumerateInputs(op, func(in Input) bool {
		diff |= uint8(want.Exec(op, in).F ^ got.Exec(op, in).F)
		return true
	})
	return diff
}

func mismatch(in Input, want, got Output) result.Mismatch {
	return result.Mismatch{
		Acc:     in.Acc,
		Operand: in.Operand,
		F:       uint8(in.F),
		Want:    result.Outcome{Value: want.Value, F: uint8(want.F)},
		Got:     result.Outcome{Value: got.Value, F: uint8(got.F)},
	}
}
