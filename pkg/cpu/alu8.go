package cpu

// The 8-bit operations below mutate the register and F in place. Flags are
// always derived from the operands as they were before the write, using a
// wider intermediate so nothing is evaluated on an already-wrapped value.

// Inc8 implements INC r.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if the low nibble rolled over from 0xF.
//	C - Not affected.
func Inc8(reg *uint8, f *Flags) {
	v := *reg + 1
	*reg = v
	*f = Flags(zeroTable[v] |
		bsel(v&0x0F == 0, FlagH, 0) |
		uint8(*f)&FlagC)
}

// Dec8 implements DEC r.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if the low nibble rolled under from 0x0.
//	C - Not affected.
func Dec8(reg *uint8, f *Flags) {
	v := *reg - 1
	*reg = v
	*f = Flags(zeroTable[v] |
		FlagN |
		bsel(v&0x0F == 0x0F, FlagH, 0) |
		uint8(*f)&FlagC)
}

// Add8 implements ADD A, n.
//
//	Z - Set if result is zero.
//	N - Reset.
//	H - Set if carry from bit 3.
//	C - Set if carry from bit 7.
func Add8(acc *uint8, value uint8, f *Flags) {
	sum := uint16(*acc) + uint16(value)
	half := (*acc & 0x0F) + (value & 0x0F)
	*acc = uint8(sum)
	*f = Flags(zeroTable[uint8(sum)] |
		bsel(half > 0x0F, FlagH, 0) |
		bsel(sum > 0xFF, FlagC, 0))
}

// Adc8 implements ADC A, n: the carry flag is added as a third operand.
func Adc8(acc *uint8, value uint8, f *Flags) {
	carry := f.Val(FlagCarry)
	sum := uint16(*acc) + uint16(carry) + uint16(value)
	half := carry + (value & 0x0F) + (*acc & 0x0F)
	*acc = uint8(sum)
	*f = Flags(zeroTable[uint8(sum)] |
		bsel(half > 0x0F, FlagH, 0) |
		bsel(sum > 0xFF, FlagC, 0))
}

// Sub8 implements SUB n.
//
//	Z - Set if result is zero.
//	N - Set.
//	H - Set if borrow from bit 4.
//	C - Set if borrow.
func Sub8(acc *uint8, value uint8, f *Flags) {
	a := *acc
	*acc = a - value
	*f = Flags(bsel(a == value, FlagZ, 0) |
		FlagN |
		bsel(a&0x0F < value&0x0F, FlagH, 0) |
		bsel(a < value, FlagC, 0))
}

// Sbc8 implements SBC A, n. Zero and carry compare the accumulator against the
// unwrapped subtrahend value+carry, which may be 0x100. Half-carry compares the
// low nibbles of the accumulator and of value+carry, so a subtrahend nibble of
// 0xF with carry-in wraps to 0 and never borrows.
func Sbc8(acc *uint8, value uint8, f *Flags) {
	carry := uint16(f.Val(FlagCarry))
	a := uint16(*acc)
	sub := uint16(value) + carry
	half := sub & 0x0F
	*acc = uint8(a - sub)
	*f = Flags(bsel(a == sub, FlagZ, 0) |
		FlagN |
		bsel(a&0x0F < half, FlagH, 0) |
		bsel(a < sub, FlagC, 0))
}

// bsel returns a if cond is true, else b.
func bsel(cond bool, a, b uint8) uint8 {
	if cond {
		return a
	}
	return b
}
