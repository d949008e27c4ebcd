package cpu

import (
	"errors"

	"github.com/oisee/nes6502/pkg/inst"
)

// The two fault classes the core can report. ErrUnknownOpcode means the
// dispatch table has no entry for the fetched byte; ErrNoAddrMode means a
// resolver was called before the dispatcher selected a mode, which is an
// internal contract violation rather than an unimplemented instruction.
var (
	ErrUnknownOpcode = errors.New("unimplemented opcode")
	ErrNoAddrMode    = errors.New("addressing mode not set")
)

// operandAddress resolves the current addressing mode to an absolute
// address, consuming exactly the operand bytes the mode defines. Modes
// without an address component resolve to zero.
func (c *CPU) operandAddress() (uint16, error) {
	switch c.mode {
	case inst.ModeNone:
		return 0, ErrNoAddrMode

	case inst.ModeImplied, inst.ModeAccumulator, inst.ModeImmediate:
		// No absolute address to fetch.
		return 0, nil

	case inst.ModeZeroPage:
		return uint16(c.fetch()), nil

	case inst.ModeZeroPageX:
		// Index addition wraps within the zero page, no carry into the
		// high byte.
		return uint16(c.fetch() + c.X), nil

	case inst.ModeZeroPageY:
		return uint16(c.fetch() + c.Y), nil

	case inst.ModeRelative:
		// Signed 8-bit offset against the PC after the operand byte.
		off := int8(c.fetch())
		return c.PC + uint16(off), nil

	case inst.ModeAbsolute:
		return c.fetch16(), nil

	case inst.ModeAbsoluteX:
		// Page-crossing has a timing cost only, which this core does not
		// model.
		return c.fetch16() + uint16(c.X), nil

	case inst.ModeAbsoluteY:
		return c.fetch16() + uint16(c.Y), nil

	case inst.ModeIndirect:
		ptr := c.fetch16()
		lo := uint16(c.bus.Read(ptr))
		// Hardware defect: when the pointer sits at the end of a page,
		// the high byte is fetched from the start of that same page
		// instead of the next one. Preserved for compatibility.
		var hi uint16
		if ptr&0x00FF == 0x00FF {
			hi = uint16(c.bus.Read(ptr & 0xFF00))
		} else {
			hi = uint16(c.bus.Read(ptr + 1))
		}
		return hi<<8 | lo, nil

	case inst.ModeIndirectX:
		// Zero-page pointer, index added with zero-page wraparound.
		zp := c.fetch() + c.X
		lo := uint16(c.bus.Read(uint16(zp)))
		hi := uint16(c.bus.Read(uint16(zp + 1)))
		return hi<<8 | lo, nil

	case inst.ModeIndirectY:
		// Zero-page pointer to a 16-bit base, then the Y index on top.
		zp := c.fetch()
		lo := uint16(c.bus.Read(uint16(zp)))
		hi := uint16(c.bus.Read(uint16(zp + 1)))
		return (hi<<8 | lo) + uint16(c.Y), nil
	}
	return 0, ErrNoAddrMode
}

// operand resolves the current mode to an 8-bit value, plus the address it
// was read from for read-modify-write instructions. Accumulator mode
// returns the accumulator with no address; Immediate consumes the next
// instruction byte.
func (c *CPU) operand() (uint8, uint16, error) {
	switch c.mode {
	case inst.ModeNone:
		return 0, 0, ErrNoAddrMode
	case inst.ModeImplied, inst.ModeRelative:
		// Nothing sensible to fetch; branches work on addresses only.
		return 0, 0, nil
	case inst.ModeAccumulator:
		return c.A, 0, nil
	case inst.ModeImmediate:
		return c.fetch(), 0, nil
	default:
		addr, err := c.operandAddress()
		if err != nil {
			return 0, 0, err
		}
		return c.bus.Read(addr), addr, nil
	}
}

// writeBack stores a read-modify-write result either to the accumulator or
// to the address the operand came from, depending on the active mode.
func (c *CPU) writeBack(addr uint16, v uint8) {
	if c.mode == inst.ModeAccumulator {
		c.A = v
	} else {
		c.bus.Write(addr, v)
	}
}
