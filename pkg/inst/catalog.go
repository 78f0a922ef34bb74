package inst

import (
	"fmt"
	"strings"

	"github.com/cedricwaltercson/PatBoy/pkg/cpu"
)

// Info holds static metadata for an operation.
type Info struct {
	Name     string // Short name used on the command line, e.g. "adc8"
	Mnemonic string // Assembly form with placeholders, e.g. "ADC A, n"
	Width    int    // Register width in bits
	Reads    uint8  // Flag bits consumed as inputs
	Writes   uint8  // Flag bits the operation may change
}

// Catalog maps each OpCode to its Info.
var Catalog [OpCodeCount]Info

// AllOps returns all valid OpCode values (for enumeration).
func AllOps() []OpCode {
	ops := make([]OpCode, 0, OpCodeCount)
	for i := OpCode(0); i < OpCodeCount; i++ {
		ops = append(ops, i)
	}
	return ops
}

func (op OpCode) String() string {
	if op < OpCodeCount {
		return Catalog[op].Name
	}
	return fmt.Sprintf("OpCode(%d)", uint8(op))
}

// Lookup resolves an operation by name, ignoring case.
func Lookup(name string) (OpCode, error) {
	for op := OpCode(0); op < OpCodeCount; op++ {
		if strings.EqualFold(Catalog[op].Name, strings.TrimSpace(name)) {
			return op, nil
		}
	}
	return 0, fmt.Errorf("unknown operation: %s", name)
}

// Disassemble returns assembly text for an instruction. The trailing "n" or
// "nn" placeholder of the mnemonic is replaced with the operand in hex.
func Disassemble(instr Instruction) string {
	info := &Catalog[instr.Op]
	switch {
	case !HasOperand(instr.Op):
		return info.Mnemonic
	case Is16(instr.Op):
		return strings.TrimSuffix(info.Mnemonic, "nn") + hexImm(fmt.Sprintf("%04X", instr.Imm))
	default:
		return strings.TrimSuffix(info.Mnemonic, "n") + hexImm(fmt.Sprintf("%02X", uint8(instr.Imm)))
	}
}

// hexImm writes digits in assembler form: an h suffix, and a leading 0 when
// the first digit is a letter.
func hexImm(digits string) string {
	if digits[0] >= 'A' {
		return "0" + digits + "h"
	}
	return digits + "h"
}

func init() {
	const all = cpu.FlagMask

	ops := []struct {
		op       OpCode
		name     string
		mnemonic string
		width    int
		reads    uint8
		writes   uint8
	}{
		{INC8, "inc8", "INC r", 8, 0, cpu.FlagZ | cpu.FlagN | cpu.FlagH},
		{DEC8, "dec8", "DEC r", 8, 0, cpu.FlagZ | cpu.FlagN | cpu.FlagH},
		{ADD8, "add8", "ADD A, n", 8, 0, all},
		{ADC8, "adc8", "ADC A, n", 8, cpu.FlagC, all},
		{SUB8, "sub8", "SUB n", 8, 0, all},
		{SBC8, "sbc8", "SBC A, n", 8, cpu.FlagC, all},
		{INC16, "inc16", "INC rr", 16, 0, 0},
		{DEC16, "dec16", "DEC rr", 16, 0, 0},
		{ADD16, "add16", "ADD HL, nn", 16, 0, cpu.FlagN | cpu.FlagH | cpu.FlagC},
	}
	for _, o := range ops {
		Catalog[o.op] = Info{
			Name:     o.name,
			Mnemonic: o.mnemonic,
			Width:    o.width,
			Reads:    o.reads,
			Writes:   o.writes,
		}
	}
}

// MarshalText encodes op by name so reports stay readable.
func (op OpCode) MarshalText() ([]byte, error) {
	if op >= OpCodeCount {
		return nil, fmt.Errorf("invalid opcode %d", uint8(op))
	}
	return []byte(Catalog[op].Name), nil
}

// UnmarshalText decodes an operation name.
func (op *OpCode) UnmarshalText(text []byte) error {
	v, err := Lookup(string(text))
	if err != nil {
		return err
	}
	*op = v
	return nil
}
