package cpu

import (
	"fmt"
	"testing"
)

// flagStates are the sixteen values F can hold.
var flagStates = func() []Flags {
	s := make([]Flags, 0, 16)
	for hi := 0; hi < 16; hi++ {
		s = append(s, Flags(hi<<4))
	}
	return s
}()

type aluCase struct {
	a, val uint8
	f      Flags
	wantA  uint8
	wantF  Flags
}

func runCases(t *testing.T, name string, op func(*uint8, uint8, *Flags), tests []aluCase) {
	t.Helper()
	for _, tc := range tests {
		a, f := tc.a, tc.f
		op(&a, tc.val, &f)
		if a != tc.wantA {
			t.Errorf("%s A=%02X, %02X (F=%s): got A=%02X, want %02X", name, tc.a, tc.val, tc.f, a, tc.wantA)
		}
		if f != tc.wantF {
			t.Errorf("%s A=%02X, %02X (F=%s): got F=%s, want %s", name, tc.a, tc.val, tc.f, f, tc.wantF)
		}
	}
}

func unary(op func(*uint8, *Flags)) func(*uint8, uint8, *Flags) {
	return func(r *uint8, _ uint8, f *Flags) { op(r, f) }
}

func TestInc8Flags(t *testing.T) {
	runCases(t, "INC", unary(Inc8), []aluCase{
		{a: 0x00, wantA: 0x01},
		{a: 0x42, wantA: 0x43},
		{a: 0x0F, wantA: 0x10, wantF: Flags(FlagH)},
		{a: 0xFF, wantA: 0x00, wantF: Flags(FlagZ | FlagH)},
		// carry is preserved, N is dropped
		{a: 0x01, f: Flags(FlagC | FlagN), wantA: 0x02, wantF: Flags(FlagC)},
		{a: 0xFF, f: 0xF0, wantA: 0x00, wantF: Flags(FlagZ | FlagH | FlagC)},
	})
}

func TestDec8Flags(t *testing.T) {
	runCases(t, "DEC", unary(Dec8), []aluCase{
		{a: 0x42, wantA: 0x41, wantF: Flags(FlagN)},
		{a: 0x01, wantA: 0x00, wantF: Flags(FlagZ | FlagN)},
		{a: 0x10, wantA: 0x0F, wantF: Flags(FlagN | FlagH)},
		{a: 0x00, wantA: 0xFF, wantF: Flags(FlagN | FlagH)},
		{a: 0x02, f: Flags(FlagC | FlagZ), wantA: 0x01, wantF: Flags(FlagN | FlagC)},
	})
}

func TestAdd8Flags(t *testing.T) {
	runCases(t, "ADD", Add8, []aluCase{
		{a: 0x00, val: 0x00, wantA: 0x00, wantF: Flags(FlagZ)},
		{a: 0x01, val: 0x01, wantA: 0x02},
		{a: 0x3A, val: 0xC6, wantA: 0x00, wantF: Flags(FlagZ | FlagH | FlagC)},
		{a: 0x0F, val: 0x01, wantA: 0x10, wantF: Flags(FlagH)},
		{a: 0xF0, val: 0x10, wantA: 0x00, wantF: Flags(FlagZ | FlagC)},
		{a: 0xFF, val: 0xFF, wantA: 0xFE, wantF: Flags(FlagH | FlagC)},
		// previous flags never leak through
		{a: 0x01, val: 0x01, f: 0xF0, wantA: 0x02},
	})
}

func TestAdc8Flags(t *testing.T) {
	c := Flags(FlagC)
	runCases(t, "ADC", Adc8, []aluCase{
		{a: 0x3A, val: 0xC6, wantA: 0x00, wantF: Flags(FlagZ | FlagH | FlagC)},
		{a: 0xE1, val: 0x0F, f: c, wantA: 0xF1, wantF: Flags(FlagH)},
		{a: 0xE1, val: 0x3B, f: c, wantA: 0x1D, wantF: Flags(FlagC)},
		{a: 0xE1, val: 0x1E, f: c, wantA: 0x00, wantF: Flags(FlagZ | FlagH | FlagC)},
		{a: 0xFF, val: 0x00, f: c, wantA: 0x00, wantF: Flags(FlagZ | FlagH | FlagC)},
		{a: 0xFE, val: 0x01, f: c, wantA: 0x00, wantF: Flags(FlagZ | FlagH | FlagC)},
		{a: 0x0E, val: 0x01, f: c, wantA: 0x10, wantF: Flags(FlagH)},
	})
}

func TestSub8Flags(t *testing.T) {
	runCases(t, "SUB", Sub8, []aluCase{
		{a: 0x3E, val: 0x3E, wantA: 0x00, wantF: Flags(FlagZ | FlagN)},
		{a: 0x05, val: 0x03, wantA: 0x02, wantF: Flags(FlagN)},
		{a: 0x00, val: 0x01, wantA: 0xFF, wantF: Flags(FlagN | FlagH | FlagC)},
		{a: 0x10, val: 0x01, wantA: 0x0F, wantF: Flags(FlagN | FlagH)},
		{a: 0x00, val: 0x10, wantA: 0xF0, wantF: Flags(FlagN | FlagC)},
		{a: 0x3E, val: 0x0F, f: 0xF0, wantA: 0x2F, wantF: Flags(FlagN | FlagH)},
	})
}

func TestSbc8Flags(t *testing.T) {
	c := Flags(FlagC)
	runCases(t, "SBC", Sbc8, []aluCase{
		{a: 0x3B, val: 0x2A, f: c, wantA: 0x10, wantF: Flags(FlagN)},
		{a: 0x3B, val: 0x3A, f: c, wantA: 0x00, wantF: Flags(FlagZ | FlagN)},
		{a: 0x3B, val: 0x4F, f: c, wantA: 0xEB, wantF: Flags(FlagN | FlagC)},
		{a: 0x3B, val: 0x4E, f: c, wantA: 0xEC, wantF: Flags(FlagN | FlagH | FlagC)},
		{a: 0x00, val: 0x00, f: c, wantA: 0xFF, wantF: Flags(FlagN | FlagH | FlagC)},
		// value+carry has low nibble 0, so no half borrow.
		{a: 0x10, val: 0x0F, f: c, wantA: 0x00, wantF: Flags(FlagZ | FlagN)},
		{a: 0x00, val: 0x0F, f: c, wantA: 0xF0, wantF: Flags(FlagN | FlagC)},
		// The subtrahend 0xFF+1 is 0x100, never equal to the accumulator.
		{a: 0x00, val: 0xFF, f: c, wantA: 0x00, wantF: Flags(FlagN | FlagC)},
		{a: 0x3E, val: 0x3E, wantA: 0x00, wantF: Flags(FlagZ | FlagN)},
	})
}

// TestAdd8HalfCarryExhaustive checks H against the nibble sum for every pair.
func TestAdd8HalfCarryExhaustive(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			acc := uint8(a)
			var f Flags
			Add8(&acc, uint8(b), &f)

			wantH := (a&0xF)+(b&0xF) > 0xF
			if f.Check(FlagHalfCarry) != wantH {
				t.Fatalf("ADD %02X+%02X: H=%v, want %v", a, b, f.Check(FlagHalfCarry), wantH)
			}
			wantC := a+b > 0xFF
			if f.Check(FlagCarry) != wantC {
				t.Fatalf("ADD %02X+%02X: C=%v, want %v", a, b, f.Check(FlagCarry), wantC)
			}
			if acc != uint8(a+b) {
				t.Fatalf("ADD %02X+%02X: A=%02X", a, b, acc)
			}
		}
	}
}

// TestSub8CarryExhaustive checks C is an unsigned borrow for every pair.
func TestSub8CarryExhaustive(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			acc := uint8(a)
			f := Flags(0xF0)
			Sub8(&acc, uint8(b), &f)

			if f.Check(FlagCarry) != (a < b) {
				t.Fatalf("SUB %02X-%02X: C=%v, want %v", a, b, f.Check(FlagCarry), a < b)
			}
			if f.Check(FlagZero) != (a == b) {
				t.Fatalf("SUB %02X-%02X: Z=%v, want %v", a, b, f.Check(FlagZero), a == b)
			}
			if f.Check(FlagHalfCarry) != (a&0xF < b&0xF) {
				t.Fatalf("SUB %02X-%02X: H=%v", a, b, f.Check(FlagHalfCarry))
			}
			if !f.Check(FlagSubtract) {
				t.Fatalf("SUB %02X-%02X: N not set", a, b)
			}
		}
	}
}

// TestSbc8HalfCarryExhaustive checks H against the low nibble of value+carry
// for every pair with carry-in set.
func TestSbc8HalfCarryExhaustive(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			acc := uint8(a)
			f := Flags(FlagC)
			Sbc8(&acc, uint8(b), &f)

			wantH := a&0xF < (b+1)&0xF
			if f.Check(FlagHalfCarry) != wantH {
				t.Fatalf("SBC %02X-%02X-1: H=%v, want %v", a, b, f.Check(FlagHalfCarry), wantH)
			}
			if f.Check(FlagCarry) != (a < b+1) {
				t.Fatalf("SBC %02X-%02X-1: C=%v", a, b, f.Check(FlagCarry))
			}
			if f.Check(FlagZero) != (a == b+1) {
				t.Fatalf("SBC %02X-%02X-1: Z=%v", a, b, f.Check(FlagZero))
			}
			if acc != uint8(a-b-1) {
				t.Fatalf("SBC %02X-%02X-1: A=%02X", a, b, acc)
			}
		}
	}
}

// TestCarryVariantsWithoutCarry: ADC and SBC with carry-in 0 are ADD and SUB,
// whatever the other flags hold.
func TestCarryVariantsWithoutCarry(t *testing.T) {
	pairs := []struct {
		name      string
		plain     func(*uint8, uint8, *Flags)
		withCarry func(*uint8, uint8, *Flags)
	}{
		{"ADC/ADD", Add8, Adc8},
		{"SBC/SUB", Sub8, Sbc8},
	}
	for _, p := range pairs {
		for _, f0 := range flagStates {
			if f0.Check(FlagCarry) {
				continue
			}
			for a := 0; a < 256; a++ {
				for b := 0; b < 256; b++ {
					a1, f1 := uint8(a), f0
					a2, f2 := uint8(a), f0
					p.plain(&a1, uint8(b), &f1)
					p.withCarry(&a2, uint8(b), &f2)
					if a1 != a2 || f1 != f2 {
						t.Fatalf("%s A=%02X, %02X (F=%s): %02X/%s vs %02X/%s",
							p.name, a, b, f0, a1, f1, a2, f2)
					}
				}
			}
		}
	}
}

// TestIncDecRoundTrip: DEC undoes INC and its own rule decides N, Z and H.
func TestIncDecRoundTrip(t *testing.T) {
	for v := 0; v < 256; v++ {
		for _, f0 := range flagStates {
			r, f := uint8(v), f0
			Inc8(&r, &f)
			if f.Check(FlagSubtract) {
				t.Fatalf("INC %02X: N set", v)
			}
			Dec8(&r, &f)
			if r != uint8(v) {
				t.Fatalf("INC/DEC %02X: got %02X", v, r)
			}
			if !f.Check(FlagSubtract) {
				t.Fatalf("INC/DEC %02X: N not set after DEC", v)
			}
			if f.Check(FlagZero) != (v == 0) {
				t.Fatalf("INC/DEC %02X: Z=%v", v, f.Check(FlagZero))
			}
			if f.Check(FlagHalfCarry) != (v&0xF == 0xF) {
				t.Fatalf("INC/DEC %02X: H=%v", v, f.Check(FlagHalfCarry))
			}
			if f.Check(FlagCarry) != f0.Check(FlagCarry) {
				t.Fatalf("INC/DEC %02X: carry changed", v)
			}
		}
	}
}

// TestAddSubRoundTrip: SUB undoes ADD and its flags match a fresh SUB.
func TestAddSubRoundTrip(t *testing.T) {
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			acc, f := uint8(a), Flags(0)
			Add8(&acc, uint8(b), &f)
			sum := acc

			Sub8(&acc, uint8(b), &f)
			if acc != uint8(a) {
				t.Fatalf("ADD/SUB %02X,%02X: got %02X", a, b, acc)
			}

			fresh, freshF := sum, Flags(0)
			Sub8(&fresh, uint8(b), &freshF)
			if f != freshF {
				t.Fatalf("ADD/SUB %02X,%02X: F=%s, fresh SUB gives %s", a, b, f, freshF)
			}
		}
	}
}

// TestLowNibbleAlwaysZero feeds a dirty F into every 8-bit op.
func TestLowNibbleAlwaysZero(t *testing.T) {
	ops := map[string]func(*uint8, uint8, *Flags){
		"INC": unary(Inc8),
		"DEC": unary(Dec8),
		"ADD": Add8,
		"ADC": Adc8,
		"SUB": Sub8,
		"SBC": Sbc8,
	}
	for name, op := range ops {
		for _, dirty := range []Flags{0x0F, 0xFF, 0x1F} {
			t.Run(fmt.Sprintf("%s/%02X", name, uint8(dirty)), func(t *testing.T) {
				for v := 0; v < 256; v++ {
					a, f := uint8(v), dirty
					op(&a, 0x5A, &f)
					if uint8(f)&0x0F != 0 {
						t.Fatalf("A=%02X: F=%02X has low bits set", v, uint8(f))
					}
				}
			})
		}
	}
}
