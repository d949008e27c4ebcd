package inst

import "fmt"

// Table maps every possible opcode byte to its catalog entry. Entries left
// at the zero value are unimplemented opcodes; the dispatcher checks
// Valid() instead of falling through a conditional chain.
var Table [256]Info

// entry is the registration record used by init below.
type entry struct {
	op   uint8
	name Mnemonic
	mode Mode
}

func register(entries []entry) {
	for _, e := range entries {
		Table[e.op] = Info{Name: e.name, Mode: e.mode}
	}
}

// Implemented returns the number of populated opcodes.
func Implemented() int {
	n := 0
	for _, i := range Table {
		if i.Valid() {
			n++
		}
	}
	return n
}

func init() {
	// Load and store
	register([]entry{
		{0xA9, LDA, ModeImmediate},
		{0xA5, LDA, ModeZeroPage},
		{0xB5, LDA, ModeZeroPageX},
		{0xAD, LDA, ModeAbsolute},
		{0xBD, LDA, ModeAbsoluteX},
		{0xB9, LDA, ModeAbsoluteY},
		{0xA1, LDA, ModeIndirectX},
		{0xB1, LDA, ModeIndirectY},

		{0xA2, LDX, ModeImmediate},
		{0xA6, LDX, ModeZeroPage},
		{0xB6, LDX, ModeZeroPageY},
		{0xAE, LDX, ModeAbsolute},
		{0xBE, LDX, ModeAbsoluteY},

		{0xA0, LDY, ModeImmediate},
		{0xA4, LDY, ModeZeroPage},
		{0xB4, LDY, ModeZeroPageX},
		{0xAC, LDY, ModeAbsolute},
		{0xBC, LDY, ModeAbsoluteX},

		{0x85, STA, ModeZeroPage},
		{0x95, STA, ModeZeroPageX},
		{0x8D, STA, ModeAbsolute},
		{0x9D, STA, ModeAbsoluteX},
		{0x99, STA, ModeAbsoluteY},
		{0x81, STA, ModeIndirectX},
		{0x91, STA, ModeIndirectY},

		{0x86, STX, ModeZeroPage},
		{0x96, STX, ModeZeroPageY},
		{0x8E, STX, ModeAbsolute},

		{0x84, STY, ModeZeroPage},
		{0x94, STY, ModeZeroPageX},
		{0x8C, STY, ModeAbsolute},
	})

	// Register transfers
	register([]entry{
		{0xAA, TAX, ModeImplied},
		{0xA8, TAY, ModeImplied},
		{0x8A, TXA, ModeImplied},
		{0x98, TYA, ModeImplied},
		{0xBA, TSX, ModeImplied},
		{0x9A, TXS, ModeImplied},
	})

	// Stack
	register([]entry{
		{0x48, PHA, ModeImplied},
		{0x08, PHP, ModeImplied},
		{0x68, PLA, ModeImplied},
		{0x28, PLP, ModeImplied},
	})

	// Logic
	register([]entry{
		{0x29, AND, ModeImmediate},
		{0x25, AND, ModeZeroPage},
		{0x35, AND, ModeZeroPageX},
		{0x2D, AND, ModeAbsolute},
		{0x3D, AND, ModeAbsoluteX},
		{0x39, AND, ModeAbsoluteY},
		{0x21, AND, ModeIndirectX},
		{0x31, AND, ModeIndirectY},

		{0x49, EOR, ModeImmediate},
		{0x45, EOR, ModeZeroPage},
		{0x55, EOR, ModeZeroPageX},
		{0x4D, EOR, ModeAbsolute},
		{0x5D, EOR, ModeAbsoluteX},
		{0x59, EOR, ModeAbsoluteY},
		{0x41, EOR, ModeIndirectX},
		{0x51, EOR, ModeIndirectY},

		{0x09, ORA, ModeImmediate},
		{0x05, ORA, ModeZeroPage},
		{0x15, ORA, ModeZeroPageX},
		{0x0D, ORA, ModeAbsolute},
		{0x1D, ORA, ModeAbsoluteX},
		{0x19, ORA, ModeAbsoluteY},
		{0x01, ORA, ModeIndirectX},
		{0x11, ORA, ModeIndirectY},

		{0x24, BIT, ModeZeroPage},
		{0x2C, BIT, ModeAbsolute},
	})

	// Increment and decrement
	register([]entry{
		{0xE6, INC, ModeZeroPage},
		{0xF6, INC, ModeZeroPageX},
		{0xEE, INC, ModeAbsolute},
		{0xFE, INC, ModeAbsoluteX},
		{0xE8, INX, ModeImplied},
		{0xC8, INY, ModeImplied},

		{0xC6, DEC, ModeZeroPage},
		{0xD6, DEC, ModeZeroPageX},
		{0xCE, DEC, ModeAbsolute},
		{0xDE, DEC, ModeAbsoluteX},
		{0xCA, DEX, ModeImplied},
		{0x88, DEY, ModeImplied},
	})

	// Shifts and rotates
	register([]entry{
		{0x0A, ASL, ModeAccumulator},
		{0x06, ASL, ModeZeroPage},
		{0x16, ASL, ModeZeroPageX},
		{0x0E, ASL, ModeAbsolute},
		{0x1E, ASL, ModeAbsoluteX},

		{0x4A, LSR, ModeAccumulator},
		{0x46, LSR, ModeZeroPage},
		{0x56, LSR, ModeZeroPageX},
		{0x4E, LSR, ModeAbsolute},
		{0x5E, LSR, ModeAbsoluteX},

		{0x2A, ROL, ModeAccumulator},
		{0x26, ROL, ModeZeroPage},
		{0x36, ROL, ModeZeroPageX},
		{0x2E, ROL, ModeAbsolute},
		{0x3E, ROL, ModeAbsoluteX},

		{0x6A, ROR, ModeAccumulator},
		{0x66, ROR, ModeZeroPage},
		{0x76, ROR, ModeZeroPageX},
		{0x6E, ROR, ModeAbsolute},
		{0x7E, ROR, ModeAbsoluteX},
	})

	// Jumps
	register([]entry{
		{0x4C, JMP, ModeAbsolute},
		{0x6C, JMP, ModeIndirect},
		{0x20, JSR, ModeAbsolute},
		{0x60, RTS, ModeImplied},
	})

	// Branches
	register([]entry{
		{0x90, BCC, ModeRelative},
		{0xB0, BCS, ModeRelative},
		{0xF0, BEQ, ModeRelative},
		{0x30, BMI, ModeRelative},
		{0xD0, BNE, ModeRelative},
		{0x10, BPL, ModeRelative},
		{0x50, BVC, ModeRelative},
		{0x70, BVS, ModeRelative},
	})

	// Flag set and clear
	register([]entry{
		{0x38, SEC, ModeImplied},
		{0x78, SEI, ModeImplied},
		{0xF8, SED, ModeImplied},
		{0x18, CLC, ModeImplied},
		{0x58, CLI, ModeImplied},
		{0xD8, CLD, ModeImplied},
		{0xB8, CLV, ModeImplied},
	})
}

// Disassemble formats the instruction at pc. operand holds the bytes that
// follow the opcode (OperandBytes of them); relative targets are resolved
// against pc the way the processor resolves them, so branch instructions
// show the destination address rather than the raw offset.
func Disassemble(pc uint16, op uint8, operand []byte) string {
	info := Table[op]
	if !info.Valid() {
		return fmt.Sprintf(".byte $%02X", op)
	}

	name := info.Name.String()
	switch info.Mode {
	case ModeImplied:
		return name
	case ModeAccumulator:
		return name + " A"
	case ModeImmediate:
		return fmt.Sprintf("%s #$%02X", name, operand[0])
	case ModeZeroPage:
		return fmt.Sprintf("%s $%02X", name, operand[0])
	case ModeZeroPageX:
		return fmt.Sprintf("%s $%02X,X", name, operand[0])
	case ModeZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", name, operand[0])
	case ModeRelative:
		target := pc + 2 + uint16(int8(operand[0]))
		return fmt.Sprintf("%s $%04X", name, target)
	case ModeAbsolute:
		return fmt.Sprintf("%s $%04X", name, addr16(operand))
	case ModeAbsoluteX:
		return fmt.Sprintf("%s $%04X,X", name, addr16(operand))
	case ModeAbsoluteY:
		return fmt.Sprintf("%s $%04X,Y", name, addr16(operand))
	case ModeIndirect:
		return fmt.Sprintf("%s ($%04X)", name, addr16(operand))
	case ModeIndirectX:
		return fmt.Sprintf("%s ($%02X,X)", name, operand[0])
	case ModeIndirectY:
		return fmt.Sprintf("%s ($%02X),Y", name, operand[0])
	}
	return name
}

func addr16(operand []byte) uint16 {
	return uint16(operand[0]) | uint16(operand[1])<<8
}
