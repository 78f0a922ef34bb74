package cpu

import (
	"fmt"

	"github.com/cedricwaltercson/PatBoy/pkg/bits"
)

// Flag identifies one of the four status flags in the F register.
type Flag uint8

const (
	FlagZero      Flag = iota // Z
	FlagSubtract              // N
	FlagHalfCarry             // H
	FlagCarry                 // C

	flagCount
)

// flagPos binds each Flag to its bit in F. Fixed for the lifetime of the program.
var flagPos = [flagCount]uint8{
	FlagZero:      7,
	FlagSubtract:  6,
	FlagHalfCarry: 5,
	FlagCarry:     4,
}

// Flag masks in the F register.
const (
	FlagC uint8 = 0x10 // Carry
	FlagH uint8 = 0x20 // Half-carry
	FlagN uint8 = 0x40 // Subtract
	FlagZ uint8 = 0x80 // Zero

	// FlagMask covers the bits F can hold. The low nibble always reads zero.
	FlagMask = FlagZ | FlagN | FlagH | FlagC
)

// Flags is the F register.
type Flags uint8

// AllFlags lists every flag, most significant bit first.
var AllFlags = [flagCount]Flag{FlagZero, FlagSubtract, FlagHalfCarry, FlagCarry}

// pos returns the bit position of f. Any value outside the four flags is a
// caller bug.
func (f Flag) pos() uint8 {
	if f >= flagCount {
		panic(fmt.Sprintf("cpu: invalid flag %d", uint8(f)))
	}
	return flagPos[f]
}

// Mask returns the single-bit mask of f within F.
func (f Flag) Mask() uint8 {
	return 1 << f.pos()
}

func (f Flag) String() string {
	switch f {
	case FlagZero:
		return "Z"
	case FlagSubtract:
		return "N"
	case FlagHalfCarry:
		return "H"
	case FlagCarry:
		return "C"
	}
	return fmt.Sprintf("Flag(%d)", uint8(f))
}

// Raise sets flag in F.
func (r *Flags) Raise(flag Flag) {
	*r = Flags(bits.Set(uint8(*r), flag.pos()) & FlagMask)
}

// Clear resets flag in F.
func (r *Flags) Clear(flag Flag) {
	*r = Flags(bits.Clear(uint8(*r), flag.pos()) & FlagMask)
}

// Toggle flips flag in F.
func (r *Flags) Toggle(flag Flag) {
	*r = Flags(bits.Toggle(uint8(*r), flag.pos()) & FlagMask)
}

// Assign sets flag when on is true and clears it otherwise.
func (r *Flags) Assign(flag Flag, on bool) {
	if on {
		r.Raise(flag)
	} else {
		r.Clear(flag)
	}
}

// ResetAll clears every flag.
func (r *Flags) ResetAll() {
	*r = 0
}

// Check reports whether flag is set.
func (r Flags) Check(flag Flag) bool {
	return bits.Test(uint8(r), flag.pos())
}

// Val returns flag as 0 or 1, the form carry-in takes in ADC/SBC.
func (r Flags) Val(flag Flag) uint8 {
	return bits.Val(uint8(r), flag.pos())
}

// String renders F as four characters, e.g. "Z-HC".
func (r Flags) String() string {
	var b [flagCount]byte
	for i, flag := range AllFlags {
		b[i] = '-'
		if r.Check(flag) {
			b[i] = flag.String()[0]
		}
	}
	return string(b[:])
}

// zeroTable holds the Z bit for each 8-bit result.
var zeroTable = [256]uint8{0: FlagZ}
