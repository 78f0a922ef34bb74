package inst

// OpCode identifies one ALU operation. It is not a raw opcode byte: every
// register variant of INC r or ADD A, r shares the same OpCode.
type OpCode uint8

// Instruction is an operation plus its resolved operand.
// Imm is ignored by unary operations; 8-bit operations use its low byte.
type Instruction struct {
	Op  OpCode
	Imm uint16
}

const (
	// === 8-bit ===
	INC8 OpCode = iota // INC r
	DEC8               // DEC r
	ADD8               // ADD A, n
	ADC8               // ADC A, n
	SUB8               // SUB n
	SBC8               // SBC A, n

	// === 16-bit ===
	INC16 // INC rr
	DEC16 // DEC rr
	ADD16 // ADD HL, rr

	OpCodeCount
)

// HasOperand returns true if op takes a second operand besides the register
// it mutates.
func HasOperand(op OpCode) bool {
	switch op {
	case ADD8, ADC8, SUB8, SBC8, ADD16:
		return true
	}
	return false
}

// Is16 returns true for operations on 16-bit registers.
func Is16(op OpCode) bool {
	return op >= INC16 && op < OpCodeCount
}

// UsesCarry returns true if op consumes the carry flag as an input.
func UsesCarry(op OpCode) bool {
	return op == ADC8 || op == SBC8
}
