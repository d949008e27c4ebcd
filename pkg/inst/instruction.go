package inst

// Mode is an addressing mode of the 6502. Exactly one mode is in effect for
// each executed instruction; ModeNone is the "not yet decoded" sentinel and
// never appears in a populated catalog entry.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeImplied
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeRelative
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect
	ModeIndirectX
	ModeIndirectY

	ModeCount
)

var modeNames = [ModeCount]string{
	ModeNone:        "None",
	ModeImplied:     "Implied",
	ModeAccumulator: "Accumulator",
	ModeImmediate:   "Immediate",
	ModeZeroPage:    "ZeroPage",
	ModeZeroPageX:   "ZeroPage,X",
	ModeZeroPageY:   "ZeroPage,Y",
	ModeRelative:    "Relative",
	ModeAbsolute:    "Absolute",
	ModeAbsoluteX:   "Absolute,X",
	ModeAbsoluteY:   "Absolute,Y",
	ModeIndirect:    "Indirect",
	ModeIndirectX:   "Indirect,X",
	ModeIndirectY:   "Indirect,Y",
}

func (m Mode) String() string {
	if m >= ModeCount {
		return "Mode(?)"
	}
	return modeNames[m]
}

// OperandBytes returns how many bytes follow the opcode for this mode.
func (m Mode) OperandBytes() int {
	switch m {
	case ModeImmediate, ModeZeroPage, ModeZeroPageX, ModeZeroPageY,
		ModeRelative, ModeIndirectX, ModeIndirectY:
		return 1
	case ModeAbsolute, ModeAbsoluteX, ModeAbsoluteY, ModeIndirect:
		return 2
	}
	return 0
}

// Mnemonic identifies one of the implemented 6502 instructions. The zero
// value Illegal marks catalog entries with no implemented instruction.
type Mnemonic uint8

const (
	Illegal Mnemonic = iota

	// Load and store
	LDA
	LDX
	LDY
	STA
	STX
	STY

	// Register transfers
	TAX
	TAY
	TXA
	TYA
	TSX
	TXS

	// Stack
	PHA
	PHP
	PLA
	PLP

	// Logic
	AND
	EOR
	ORA
	BIT

	// Increment and decrement
	INC
	INX
	INY
	DEC
	DEX
	DEY

	// Shifts and rotates
	ASL
	LSR
	ROL
	ROR

	// Jumps
	JMP
	JSR
	RTS

	// Branches
	BCC
	BCS
	BEQ
	BMI
	BNE
	BPL
	BVC
	BVS

	// Flag set and clear
	SEC
	SEI
	SED
	CLC
	CLI
	CLD
	CLV

	MnemonicCount
)

var mnemonicNames = [MnemonicCount]string{
	Illegal: "???",
	LDA:     "LDA",
	LDX:     "LDX",
	LDY:     "LDY",
	STA:     "STA",
	STX:     "STX",
	STY:     "STY",
	TAX:     "TAX",
	TAY:     "TAY",
	TXA:     "TXA",
	TYA:     "TYA",
	TSX:     "TSX",
	TXS:     "TXS",
	PHA:     "PHA",
	PHP:     "PHP",
	PLA:     "PLA",
	PLP:     "PLP",
	AND:     "AND",
	EOR:     "EOR",
	ORA:     "ORA",
	BIT:     "BIT",
	INC:     "INC",
	INX:     "INX",
	INY:     "INY",
	DEC:     "DEC",
	DEX:     "DEX",
	DEY:     "DEY",
	ASL:     "ASL",
	LSR:     "LSR",
	ROL:     "ROL",
	ROR:     "ROR",
	JMP:     "JMP",
	JSR:     "JSR",
	RTS:     "RTS",
	BCC:     "BCC",
	BCS:     "BCS",
	BEQ:     "BEQ",
	BMI:     "BMI",
	BNE:     "BNE",
	BPL:     "BPL",
	BVC:     "BVC",
	BVS:     "BVS",
	SEC:     "SEC",
	SEI:     "SEI",
	SED:     "SED",
	CLC:     "CLC",
	CLI:     "CLI",
	CLD:     "CLD",
	CLV:     "CLV",
}

func (m Mnemonic) String() string {
	if m >= MnemonicCount {
		return "???"
	}
	return mnemonicNames[m]
}

// Info is one decoded catalog entry: which instruction an opcode byte names
// and which addressing mode it carries. The zero value is an unpopulated
// (unimplemented opcode) entry.
type Info struct {
	Name Mnemonic
	Mode Mode
}

// Valid reports whether this entry names an implemented instruction.
func (i Info) Valid() bool {
	return i.Name != Illegal
}

// Size returns the full instruction length in bytes, opcode included.
func (i Info) Size() int {
	return 1 + i.Mode.OperandBytes()
}
