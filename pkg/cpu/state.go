package cpu

import "fmt"

// Register is a 16-bit register or register pair.
type Register struct {
	Value uint16
}

// Pair names a 16-bit view over two 8-bit registers.
type Pair uint8

const (
	PairAF Pair = iota
	PairBC
	PairDE
	PairHL
)

// State is the register file the ALU operates on. Each emulated processor owns
// exactly one; nothing in this package keeps a reference to it.
type State struct {
	A, B, C, D, E, H, L uint8
	F                   Flags
	SP, PC              Register
}

// Equal returns true if two states are identical.
func (s State) Equal(o State) bool {
	return s == o
}

// Pair returns the 16-bit value of the given register pair.
func (s *State) Pair(p Pair) Register {
	hi, lo := s.pairRegs(p)
	return Register{Value: uint16(*hi)<<8 | uint16(*lo)}
}

// SetPair stores r into the given register pair. Writes to AF drop the low
// nibble of F, as POP AF does on hardware.
func (s *State) SetPair(p Pair, r Register) {
	if p == PairAF {
		s.A = uint8(r.Value >> 8)
		s.F = Flags(uint8(r.Value) & FlagMask)
		return
	}
	hi, lo := s.pairRegs(p)
	*hi = uint8(r.Value >> 8)
	*lo = uint8(r.Value)
}

func (s *State) pairRegs(p Pair) (hi, lo *uint8) {
	switch p {
	case PairAF:
		return &s.A, (*uint8)(&s.F)
	case PairBC:
		return &s.B, &s.C
	case PairDE:
		return &s.D, &s.E
	case PairHL:
		return &s.H, &s.L
	}
	panic(fmt.Sprintf("cpu: invalid register pair %d", uint8(p)))
}

func (s State) String() string {
	return fmt.Sprintf("A=%02X F=%02X[%s] B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X SP=%04X PC=%04X",
		s.A, uint8(s.F), s.F, s.B, s.C, s.D, s.E, s.H, s.L, s.SP.Value, s.PC.Value)
}
