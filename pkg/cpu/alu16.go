package cpu

// Inc16 implements INC rr. 16-bit increments leave F alone on hardware, so
// there is no flags parameter.
func Inc16(reg *Register) {
	reg.Value++
}

// Dec16 implements DEC rr. Like Inc16 it never touches F.
func Dec16(reg *Register) {
	reg.Value--
}

// Add16 implements ADD HL, rr.
//
//	Z - Not affected.
//	N - Reset.
//	H - Set if carry from bit 11.
//	C - Set if carry from bit 15.
func Add16(dst *Register, value Register, f *Flags) {
	a, b := dst.Value, value.Value
	sum := uint32(a) + uint32(b)
	half := (a & 0x0FFF) + (b & 0x0FFF)
	*f = Flags(uint8(*f)&FlagZ |
		bsel(half > 0x0FFF, FlagH, 0) |
		bsel(sum > 0xFFFF, FlagC, 0))
	dst.Value = uint16(sum)
}
