package cpu

import (
	"fmt"

	"github.com/oisee/nes6502/pkg/inst"
)

// Step executes exactly one instruction: clear the addressing mode, fetch
// the opcode, look up {mode, handler} in the catalog and run the handler.
// An unpopulated table entry is reported after the opcode fetch, with all
// registers beyond the PC untouched. The caller decides whether that is
// fatal.
func (c *CPU) Step() error {
	c.mode = inst.ModeNone
	at := c.PC
	op := c.fetch()

	info := inst.Table[op]
	if !info.Valid() {
		return fmt.Errorf("opcode $%02X at $%04X: %w", op, at, ErrUnknownOpcode)
	}

	c.mode = info.Mode
	return c.execute(info.Name)
}

func (c *CPU) execute(name inst.Mnemonic) error {
	switch name {
	// Load and store
	case inst.LDA:
		return c.load(&c.A)
	case inst.LDX:
		return c.load(&c.X)
	case inst.LDY:
		return c.load(&c.Y)
	case inst.STA:
		return c.store(c.A)
	case inst.STX:
		return c.store(c.X)
	case inst.STY:
		return c.store(c.Y)

	// Register transfers
	case inst.TAX:
		c.X = c.A
		c.setNZ(c.X)
	case inst.TAY:
		c.Y = c.A
		c.setNZ(c.Y)
	case inst.TXA:
		c.A = c.X
		c.setNZ(c.A)
	case inst.TYA:
		c.A = c.Y
		c.setNZ(c.A)
	case inst.TSX:
		c.X = c.SP
		c.setNZ(c.X)
	case inst.TXS:
		// The only transfer that sets no flags.
		c.SP = c.X

	// Stack
	case inst.PHA:
		c.push(c.A)
	case inst.PHP:
		c.push(c.P)
	case inst.PLA:
		c.A = c.pull()
		c.setNZ(c.A)
	case inst.PLP:
		c.P = c.pull()

	// Logic
	case inst.AND:
		v, _, err := c.operand()
		if err != nil {
			return err
		}
		c.A &= v
		c.setNZ(c.A)
	case inst.EOR:
		v, _, err := c.operand()
		if err != nil {
			return err
		}
		c.A ^= v
		c.setNZ(c.A)
	case inst.ORA:
		v, _, err := c.operand()
		if err != nil {
			return err
		}
		c.A |= v
		c.setNZ(c.A)
	case inst.BIT:
		// AND without storing: Zero from the result, Overflow and
		// Negative from bits 6 and 7 of the operand itself.
		v, _, err := c.operand()
		if err != nil {
			return err
		}
		c.SetFlag(FlagZero, c.A&v == 0)
		c.SetFlag(FlagOverflow, v&0x40 != 0)
		c.SetFlag(FlagNegative, v&0x80 != 0)

	// Increment and decrement
	case inst.INC:
		return c.stepMemory(+1)
	case inst.DEC:
		return c.stepMemory(-1)
	case inst.INX:
		c.X++
		c.setNZ(c.X)
	case inst.INY:
		c.Y++
		c.setNZ(c.Y)
	case inst.DEX:
		c.X--
		c.setNZ(c.X)
	case inst.DEY:
		c.Y--
		c.setNZ(c.Y)

	// Shifts and rotates. These set Carry from the bit shifted out and
	// Negative from the result; the hardware defines no Zero update for
	// this family, so none happens here.
	case inst.ASL:
		return c.shift(func(v uint8) (uint8, bool) {
			return v << 1, v&0x80 != 0
		})
	case inst.LSR:
		return c.shift(func(v uint8) (uint8, bool) {
			return v >> 1, v&0x01 != 0
		})
	case inst.ROL:
		return c.shift(func(v uint8) (uint8, bool) {
			out := v << 1
			if c.Flag(FlagCarry) {
				out |= 0x01
			}
			return out, v&0x80 != 0
		})
	case inst.ROR:
		return c.shift(func(v uint8) (uint8, bool) {
			out := v >> 1
			if c.Flag(FlagCarry) {
				out |= 0x80
			}
			return out, v&0x01 != 0
		})

	// Jumps
	case inst.JMP:
		addr, err := c.operandAddress()
		if err != nil {
			return err
		}
		c.PC = addr
	case inst.JSR:
		target, err := c.operandAddress()
		if err != nil {
			return err
		}
		// Push the address of the operand's last byte; RTS adds one.
		c.pushWord(c.PC - 1)
		c.PC = target
	case inst.RTS:
		c.PC = c.pullWord() + 1

	// Branches: the relative operand is always consumed, the PC is only
	// reassigned when the condition holds. Branching itself touches no
	// flags.
	case inst.BCC:
		return c.branchIf(!c.Flag(FlagCarry))
	case inst.BCS:
		return c.branchIf(c.Flag(FlagCarry))
	case inst.BEQ:
		return c.branchIf(c.Flag(FlagZero))
	case inst.BMI:
		return c.branchIf(c.Flag(FlagNegative))
	case inst.BNE:
		return c.branchIf(!c.Flag(FlagZero))
	case inst.BPL:
		return c.branchIf(!c.Flag(FlagNegative))
	case inst.BVC:
		return c.branchIf(!c.Flag(FlagOverflow))
	case inst.BVS:
		return c.branchIf(c.Flag(FlagOverflow))

	// Flag set and clear
	case inst.SEC:
		c.SetFlag(FlagCarry, true)
	case inst.SEI:
		c.SetFlag(FlagInterrupt, true)
	case inst.SED:
		c.SetFlag(FlagDecimal, true)
	case inst.CLC:
		c.SetFlag(FlagCarry, false)
	case inst.CLI:
		c.SetFlag(FlagInterrupt, false)
	case inst.CLD:
		c.SetFlag(FlagDecimal, false)
	case inst.CLV:
		c.SetFlag(FlagOverflow, false)

	default:
		return fmt.Errorf("mnemonic %v: %w", name, ErrUnknownOpcode)
	}
	return nil
}

// load fetches the operand into a register and applies the Zero/Negative
// rule.
func (c *CPU) load(dst *uint8) error {
	v, _, err := c.operand()
	if err != nil {
		return err
	}
	*dst = v
	c.setNZ(v)
	return nil
}

// store writes a register to the resolved address. No flag effect.
func (c *CPU) store(v uint8) error {
	addr, err := c.operandAddress()
	if err != nil {
		return err
	}
	c.bus.Write(addr, v)
	return nil
}

// stepMemory adds delta to the byte at the resolved address with 8-bit
// wraparound.
func (c *CPU) stepMemory(delta int) error {
	v, addr, err := c.operand()
	if err != nil {
		return err
	}
	v += uint8(delta)
	c.bus.Write(addr, v)
	c.setNZ(v)
	return nil
}

// shift runs one shift/rotate on the accumulator or the resolved memory
// byte. op returns the new value and the bit shifted out, which becomes
// Carry. Zero is deliberately left alone.
func (c *CPU) shift(op func(uint8) (uint8, bool)) error {
	v, addr, err := c.operand()
	if err != nil {
		return err
	}
	out, carry := op(v)
	c.SetFlag(FlagCarry, carry)
	c.SetFlag(FlagNegative, out&0x80 != 0)
	c.writeBack(addr, out)
	return nil
}

// branchIf resolves the branch target unconditionally, then reassigns the
// PC when the condition holds.
func (c *CPU) branchIf(cond bool) error {
	addr, err := c.operandAddress()
	if err != nil {
		return err
	}
	if cond {
		c.PC = addr
	}
	return nil
}
