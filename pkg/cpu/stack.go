package cpu

// The stack descends through page 0x0100. Pointer wraparound past
// 0x00/0xFF is silent, matching the hardware's lack of guard rails.

func (c *CPU) push(v uint8) {
	c.bus.Write(StackBase|uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pull() uint8 {
	c.SP++
	return c.bus.Read(StackBase | uint16(c.SP))
}

// pushWord pushes high byte first so that pullWord reads low byte first.
func (c *CPU) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pullWord() uint16 {
	lo := uint16(c.pull())
	hi := uint16(c.pull())
	return hi<<8 | lo
}
