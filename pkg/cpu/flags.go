package cpu

// Status register flag bits. Decimal has no effect on this core (the NES
// variant ships without BCD arithmetic) and Break/Unused have no CPU
// effect, but all eight bits are preserved bit-for-bit for state dumps.
const (
	FlagCarry     uint8 = 1 << 0
	FlagZero      uint8 = 1 << 1
	FlagInterrupt uint8 = 1 << 2
	FlagDecimal   uint8 = 1 << 3
	FlagBreak     uint8 = 1 << 4
	FlagUnused    uint8 = 1 << 5
	FlagOverflow  uint8 = 1 << 6
	FlagNegative  uint8 = 1 << 7
)

// Flag reports whether a status bit is set.
func (c *CPU) Flag(flag uint8) bool {
	return c.P&flag != 0
}

// SetFlag forces a single status bit. Bits not named are never touched;
// instructions only ever modify the flags their rule table lists.
func (c *CPU) SetFlag(flag uint8, on bool) {
	if on {
		c.P |= flag
	} else {
		c.P &^= flag
	}
}

// setNZ applies the shared Zero/Negative rule: Zero when the result byte
// is zero, Negative from bit 7 of the result.
func (c *CPU) setNZ(v uint8) {
	c.SetFlag(FlagZero, v == 0)
	c.SetFlag(FlagNegative, v&0x80 != 0)
}
