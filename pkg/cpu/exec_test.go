package cpu

import "testing"

func TestLoadFlags(t *testing.T) {
	tests := []struct {
		name     string
		value    uint8
		wantZero bool
		wantNeg  bool
	}{
		{"zero", 0x00, true, false},
		{"negative", 0x80, false, true},
		{"plain", 0x01, false, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := loadCPU(t, 0x8000, 0xA9, tc.value) // LDA #imm
			step(t, c)
			if c.A != tc.value {
				t.Errorf("A: got %02X, want %02X", c.A, tc.value)
			}
			if c.Flag(FlagZero) != tc.wantZero {
				t.Errorf("Zero: got %v, want %v", c.Flag(FlagZero), tc.wantZero)
			}
			if c.Flag(FlagNegative) != tc.wantNeg {
				t.Errorf("Negative: got %v, want %v", c.Flag(FlagNegative), tc.wantNeg)
			}
		})
	}
}

func TestStoreWritesWithoutFlags(t *testing.T) {
	c, bus := loadCPU(t, 0x8000, 0x8D, 0x00, 0x02) // STA $0200
	c.A = 0x00 // a zero store must not set the Zero flag
	c.P = FlagCarry | FlagNegative

	step(t, c)
	if bus.mem[0x0200] != 0x00 {
		t.Errorf("stored value: got %02X, want 00", bus.mem[0x0200])
	}
	if c.P != FlagCarry|FlagNegative {
		t.Errorf("P modified by STA: got %08b", c.P)
	}
}

func TestStoreVariants(t *testing.T) {
	tests := []struct {
		name    string
		program []uint8
		set     func(*CPU)
		addr    uint16
		want    uint8
	}{
		{"STX zp", []uint8{0x86, 0x10}, func(c *CPU) { c.X = 0x42 }, 0x0010, 0x42},
		{"STY zp,X", []uint8{0x94, 0x10}, func(c *CPU) { c.Y = 0x55; c.X = 0x01 }, 0x0011, 0x55},
		{"STA (zp,X)", []uint8{0x81, 0x20}, func(c *CPU) { c.A = 0x99; c.X = 0 }, 0x0300, 0x99},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, bus := loadCPU(t, 0x8000, tc.program...)
			bus.mem[0x0020] = 0x00
			bus.mem[0x0021] = 0x03
			tc.set(c)

			step(t, c)
			if bus.mem[tc.addr] != tc.want {
				t.Errorf("mem[%04X]: got %02X, want %02X", tc.addr, bus.mem[tc.addr], tc.want)
			}
		})
	}
}

func TestTransfers(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		set    func(*CPU)
		check  func(*CPU) uint8
		want   uint8
	}{
		{"TAX", 0xAA, func(c *CPU) { c.A = 0x80 }, func(c *CPU) uint8 { return c.X }, 0x80},
		{"TAY", 0xA8, func(c *CPU) { c.A = 0x00 }, func(c *CPU) uint8 { return c.Y }, 0x00},
		{"TXA", 0x8A, func(c *CPU) { c.X = 0x7F }, func(c *CPU) uint8 { return c.A }, 0x7F},
		{"TYA", 0x98, func(c *CPU) { c.Y = 0x01 }, func(c *CPU) uint8 { return c.A }, 0x01},
		{"TSX", 0xBA, func(c *CPU) { c.SP = 0xFD }, func(c *CPU) uint8 { return c.X }, 0xFD},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := loadCPU(t, 0x8000, tc.opcode)
			tc.set(c)
			step(t, c)
			got := tc.check(c)
			if got != tc.want {
				t.Errorf("destination: got %02X, want %02X", got, tc.want)
			}
			if c.Flag(FlagZero) != (tc.want == 0) {
				t.Errorf("Zero: got %v, want %v", c.Flag(FlagZero), tc.want == 0)
			}
			if c.Flag(FlagNegative) != (tc.want&0x80 != 0) {
				t.Errorf("Negative: got %v, want %v", c.Flag(FlagNegative), tc.want&0x80 != 0)
			}
		})
	}
}

func TestTXSSetsNoFlags(t *testing.T) {
	c, _ := loadCPU(t, 0x8000, 0x9A) // TXS
	c.X = 0x00

	step(t, c)
	if c.SP != 0x00 {
		t.Errorf("SP: got %02X, want 00", c.SP)
	}
	if c.P != 0 {
		t.Errorf("TXS modified flags: P=%08b", c.P)
	}
}

func TestPushPullAccumulator(t *testing.T) {
	c, _ := loadCPU(t, 0x8000, 0x48, 0xA9, 0x00, 0x68) // PHA; LDA #$00; PLA
	c.A = 0x80

	step(t, c) // PHA
	step(t, c) // LDA #$00 clobbers A and flags
	step(t, c) // PLA restores
	if c.A != 0x80 {
		t.Errorf("A after PLA: got %02X, want 80", c.A)
	}
	if !c.Flag(FlagNegative) || c.Flag(FlagZero) {
		t.Errorf("PLA flags: N=%v Z=%v, want N=true Z=false",
			c.Flag(FlagNegative), c.Flag(FlagZero))
	}
}

func TestPushPullStatus(t *testing.T) {
	c, _ := loadCPU(t, 0x8000, 0x08, 0x28) // PHP; PLP
	c.P = 0xCC

	step(t, c) // PHP pushes the register verbatim
	c.P = 0x00
	step(t, c) // PLP overwrites the whole register
	if c.P != 0xCC {
		t.Errorf("P after PHP/PLP: got %02X, want CC", c.P)
	}
}

func TestLogicOps(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		a, v   uint8
		want   uint8
	}{
		{"AND", 0x29, 0xFF, 0x0F, 0x0F},
		{"AND zero", 0x29, 0xF0, 0x0F, 0x00},
		{"EOR", 0x49, 0xFF, 0x0F, 0xF0},
		{"ORA", 0x09, 0x01, 0x80, 0x81},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := loadCPU(t, 0x8000, tc.opcode, tc.v)
			c.A = tc.a
			step(t, c)
			if c.A != tc.want {
				t.Errorf("A: got %02X, want %02X", c.A, tc.want)
			}
			if c.Flag(FlagZero) != (tc.want == 0) {
				t.Errorf("Zero: got %v", c.Flag(FlagZero))
			}
			if c.Flag(FlagNegative) != (tc.want&0x80 != 0) {
				t.Errorf("Negative: got %v", c.Flag(FlagNegative))
			}
		})
	}
}

func TestBITFlagsFromOperand(t *testing.T) {
	// Zero comes from A AND operand; Overflow and Negative come from the
	// operand's own bits 6 and 7, regardless of the accumulator.
	c, bus := loadCPU(t, 0x8000, 0x24, 0x10) // BIT $10
	c.A = 0x01
	bus.mem[0x0010] = 0xC0

	step(t, c)
	if !c.Flag(FlagZero) {
		t.Error("Zero should be set: 0x01 AND 0xC0 == 0")
	}
	if !c.Flag(FlagOverflow) {
		t.Error("Overflow should mirror operand bit 6")
	}
	if !c.Flag(FlagNegative) {
		t.Error("Negative should mirror operand bit 7")
	}
	if c.A != 0x01 {
		t.Errorf("BIT stored a result: A=%02X", c.A)
	}
}

func TestIncDecRegisters(t *testing.T) {
	tests := []struct {
		name     string
		opcode   uint8
		set      func(*CPU)
		check    func(*CPU) uint8
		want     uint8
		wantZero bool
		wantNeg  bool
	}{
		{"INX wraps to zero", 0xE8, func(c *CPU) { c.X = 0xFF }, func(c *CPU) uint8 { return c.X }, 0x00, true, false},
		{"DEX wraps to FF", 0xCA, func(c *CPU) { c.X = 0x00 }, func(c *CPU) uint8 { return c.X }, 0xFF, false, true},
		{"INY", 0xC8, func(c *CPU) { c.Y = 0x41 }, func(c *CPU) uint8 { return c.Y }, 0x42, false, false},
		{"DEY to zero", 0x88, func(c *CPU) { c.Y = 0x01 }, func(c *CPU) uint8 { return c.Y }, 0x00, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := loadCPU(t, 0x8000, tc.opcode)
			tc.set(c)
			step(t, c)
			if got := tc.check(c); got != tc.want {
				t.Errorf("register: got %02X, want %02X", got, tc.want)
			}
			if c.Flag(FlagZero) != tc.wantZero {
				t.Errorf("Zero: got %v, want %v", c.Flag(FlagZero), tc.wantZero)
			}
			if c.Flag(FlagNegative) != tc.wantNeg {
				t.Errorf("Negative: got %v, want %v", c.Flag(FlagNegative), tc.wantNeg)
			}
		})
	}
}

func TestIncDecMemory(t *testing.T) {
	c, bus := loadCPU(t, 0x8000, 0xE6, 0x10, 0xC6, 0x10) // INC $10; DEC $10
	bus.mem[0x0010] = 0xFF

	step(t, c) // INC wraps 0xFF -> 0x00
	if bus.mem[0x0010] != 0x00 {
		t.Errorf("INC $10: got %02X, want 00", bus.mem[0x0010])
	}
	if !c.Flag(FlagZero) {
		t.Error("Zero should be set after INC to 0")
	}

	step(t, c) // DEC wraps 0x00 -> 0xFF
	if bus.mem[0x0010] != 0xFF {
		t.Errorf("DEC $10: got %02X, want FF", bus.mem[0x0010])
	}
	if !c.Flag(FlagNegative) {
		t.Error("Negative should be set after DEC to FF")
	}
}

func TestShiftsAndRotates(t *testing.T) {
	tests := []struct {
		name      string
		opcode    uint8
		a         uint8
		carryIn   bool
		wantA     uint8
		wantCarry bool
		wantNeg   bool
	}{
		{"ASL shifts bit 7 to carry", 0x0A, 0x80, false, 0x00, true, false},
		{"ASL sets negative", 0x0A, 0x40, false, 0x80, false, true},
		{"LSR shifts bit 0 to carry", 0x4A, 0x01, false, 0x00, true, false},
		{"ROL feeds old carry into bit 0", 0x2A, 0x80, true, 0x01, true, false},
		{"ROL without carry", 0x2A, 0x80, false, 0x00, true, false},
		{"ROR feeds old carry into bit 7", 0x6A, 0x01, true, 0x80, true, true},
		{"ROR without carry", 0x6A, 0x01, false, 0x00, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := loadCPU(t, 0x8000, tc.opcode)
			c.A = tc.a
			c.SetFlag(FlagCarry, tc.carryIn)

			step(t, c)
			if c.A != tc.wantA {
				t.Errorf("A: got %02X, want %02X", c.A, tc.wantA)
			}
			if c.Flag(FlagCarry) != tc.wantCarry {
				t.Errorf("Carry: got %v, want %v", c.Flag(FlagCarry), tc.wantCarry)
			}
			if c.Flag(FlagNegative) != tc.wantNeg {
				t.Errorf("Negative: got %v, want %v", c.Flag(FlagNegative), tc.wantNeg)
			}
		})
	}
}

func TestShiftsNeverTouchZero(t *testing.T) {
	// The hardware defines no Zero update for this family, even when the
	// result is zero.
	for _, opcode := range []uint8{0x0A, 0x4A, 0x2A, 0x6A} {
		c, _ := loadCPU(t, 0x8000, opcode)
		c.A = 0x80
		if opcode == 0x4A || opcode == 0x6A {
			c.A = 0x01
		}
		c.SetFlag(FlagZero, false)

		step(t, c)
		if c.A != 0x00 {
			t.Fatalf("opcode %02X: expected zero result, got %02X", opcode, c.A)
		}
		if c.Flag(FlagZero) {
			t.Errorf("opcode %02X set Zero on a zero result", opcode)
		}
	}

	// And a preset Zero flag survives a nonzero result.
	c, _ := loadCPU(t, 0x8000, 0x0A) // ASL A
	c.A = 0x01
	c.SetFlag(FlagZero, true)
	step(t, c)
	if c.A != 0x02 || !c.Flag(FlagZero) {
		t.Errorf("ASL cleared a preset Zero flag: A=%02X Z=%v", c.A, c.Flag(FlagZero))
	}
}

func TestShiftMemoryOperand(t *testing.T) {
	c, bus := loadCPU(t, 0x8000, 0x06, 0x10) // ASL $10
	bus.mem[0x0010] = 0xC0

	step(t, c)
	if bus.mem[0x0010] != 0x80 {
		t.Errorf("ASL $10: got %02X, want 80", bus.mem[0x0010])
	}
	if !c.Flag(FlagCarry) || !c.Flag(FlagNegative) {
		t.Errorf("ASL $10 flags: C=%v N=%v, want both set", c.Flag(FlagCarry), c.Flag(FlagNegative))
	}
	if c.A != 0 {
		t.Errorf("memory shift touched the accumulator: A=%02X", c.A)
	}
}

func TestJMPAbsolute(t *testing.T) {
	c, _ := loadCPU(t, 0x8000, 0x4C, 0x34, 0x12) // JMP $1234
	step(t, c)
	if c.PC != 0x1234 {
		t.Errorf("JMP: got PC=%04X, want 1234", c.PC)
	}
}

func TestJSRRTSRoundTrip(t *testing.T) {
	c, bus := loadCPU(t, 0x8000, 0x20, 0x10, 0x80) // JSR $8010
	bus.mem[0x8010] = 0x60                         // RTS

	step(t, c)
	if c.PC != 0x8010 {
		t.Fatalf("JSR: got PC=%04X, want 8010", c.PC)
	}
	if c.SP != 0xFD {
		t.Errorf("SP after JSR: got %02X, want FD", c.SP)
	}
	// Return address minus one, pushed high byte first.
	if bus.mem[0x01FF] != 0x80 || bus.mem[0x01FE] != 0x02 {
		t.Errorf("pushed return address: mem[01FF]=%02X mem[01FE]=%02X, want 80 02",
			bus.mem[0x01FF], bus.mem[0x01FE])
	}

	step(t, c)
	if c.PC != 0x8003 {
		t.Errorf("RTS: got PC=%04X, want 8003 (instruction after the JSR)", c.PC)
	}
	if c.SP != 0xFF {
		t.Errorf("SP after RTS: got %02X, want FF", c.SP)
	}
}

func TestBranches(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		flag   uint8
		on     bool // flag state that takes the branch
	}{
		{"BCC", 0x90, FlagCarry, false},
		{"BCS", 0xB0, FlagCarry, true},
		{"BEQ", 0xF0, FlagZero, true},
		{"BNE", 0xD0, FlagZero, false},
		{"BMI", 0x30, FlagNegative, true},
		{"BPL", 0x10, FlagNegative, false},
		{"BVS", 0x70, FlagOverflow, true},
		{"BVC", 0x50, FlagOverflow, false},
	}
	for _, tc := range tests {
		t.Run(tc.name+" taken", func(t *testing.T) {
			c, _ := loadCPU(t, 0x8000, tc.opcode, 0x06)
			c.SetFlag(tc.flag, tc.on)
			p := c.P

			step(t, c)
			if c.PC != 0x8008 {
				t.Errorf("taken branch: got PC=%04X, want 8008", c.PC)
			}
			if c.P != p {
				t.Errorf("branch modified flags: %08b -> %08b", p, c.P)
			}
		})
		t.Run(tc.name+" not taken", func(t *testing.T) {
			c, _ := loadCPU(t, 0x8000, tc.opcode, 0x06)
			c.SetFlag(tc.flag, !tc.on)

			step(t, c)
			// The operand byte is consumed even when the branch falls
			// through.
			if c.PC != 0x8002 {
				t.Errorf("not-taken branch: got PC=%04X, want 8002", c.PC)
			}
		})
	}
}

func TestFlagInstructions(t *testing.T) {
	tests := []struct {
		name   string
		opcode uint8
		flag   uint8
		want   bool
	}{
		{"SEC", 0x38, FlagCarry, true},
		{"CLC", 0x18, FlagCarry, false},
		{"SEI", 0x78, FlagInterrupt, true},
		{"CLI", 0x58, FlagInterrupt, false},
		{"SED", 0xF8, FlagDecimal, true},
		{"CLD", 0xD8, FlagDecimal, false},
		{"CLV", 0xB8, FlagOverflow, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := loadCPU(t, 0x8000, tc.opcode)
			c.SetFlag(tc.flag, !tc.want)
			others := c.P &^ tc.flag

			step(t, c)
			if c.Flag(tc.flag) != tc.want {
				t.Errorf("flag: got %v, want %v", c.Flag(tc.flag), tc.want)
			}
			if c.P&^tc.flag != others {
				t.Errorf("other flags modified: %08b", c.P)
			}
		})
	}
}

func TestOraIndirectYScenario(t *testing.T) {
	// LDA #$01; LDY #$04; ORA ($03),Y with ($03) -> $0500 and
	// mem[$0504] = $80 leaves A = $81 with Negative set.
	c, bus := loadCPU(t, 0x8000,
		0xA9, 0x01, // LDA #$01
		0xA0, 0x04, // LDY #$04
		0x11, 0x03, // ORA ($03),Y
	)
	bus.mem[0x0003] = 0x00
	bus.mem[0x0004] = 0x05
	bus.mem[0x0504] = 0x80

	step(t, c)
	step(t, c)
	step(t, c)

	if c.A != 0x81 {
		t.Errorf("A: got %02X, want 81", c.A)
	}
	if !c.Flag(FlagNegative) || c.Flag(FlagZero) {
		t.Errorf("flags: N=%v Z=%v, want N=true Z=false",
			c.Flag(FlagNegative), c.Flag(FlagZero))
	}
}
