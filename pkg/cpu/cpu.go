package cpu

import (
	"fmt"
	"strings"

	"github.com/oisee/nes6502/pkg/inst"
)

const (
	// StackBase is the fixed page the descending stack lives in. OR it with
	// the 8-bit stack pointer to get the absolute address of a slot.
	StackBase uint16 = 0x0100

	// ResetVector is where the little-endian start address is fetched from
	// on power-up and reset.
	ResetVector uint16 = 0xFFFC
)

// Bus is the CPU's only channel to memory-mapped state. Reads and writes
// are byte-granular and happen in strict program order; the CPU never
// inspects the memory layout behind it.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// CPU is a 6502 instruction-execution core. It owns its register file
// outright; the bus is the only shared collaborator. One Step executes
// exactly one instruction.
type CPU struct {
	A  uint8  // accumulator
	X  uint8  // index X
	Y  uint8  // index Y
	SP uint8  // stack pointer, low byte of the next free stack slot
	PC uint16 // program counter
	P  uint8  // status register

	bus Bus

	// mode is the addressing mode of the instruction being executed.
	// Cleared to the sentinel at the start of every step; the resolver
	// refuses to run while it is unset.
	mode inst.Mode
}

// New connects a core to its bus and fetches the initial PC from the
// reset vector, as the silicon does on power-up.
func New(bus Bus) *CPU {
	c := &CPU{bus: bus, SP: 0xFF}
	c.PC = c.readVector(ResetVector)
	return c
}

// Reset restores power-on-equivalent state: registers and flags zeroed,
// stack pointer at the top of the stack page, PC reloaded from the reset
// vector, addressing mode cleared.
func (c *CPU) Reset() {
	c.A, c.X, c.Y = 0, 0, 0
	c.P = 0
	c.SP = 0xFF
	c.PC = c.readVector(ResetVector)
	c.mode = inst.ModeNone
}

func (c *CPU) readVector(addr uint16) uint16 {
	lo := uint16(c.bus.Read(addr))
	hi := uint16(c.bus.Read(addr + 1))
	return hi<<8 | lo
}

// fetch reads the next instruction byte and advances the PC.
func (c *CPU) fetch() uint8 {
	v := c.bus.Read(c.PC)
	c.PC++
	return v
}

// fetch16 reads a little-endian 16-bit value from the instruction stream.
func (c *CPU) fetch16() uint16 {
	lo := uint16(c.fetch())
	hi := uint16(c.fetch())
	return hi<<8 | lo
}

// NextOpcode returns the opcode byte the next Step would fetch, without
// advancing the PC.
func (c *CPU) NextOpcode() uint8 {
	return c.bus.Read(c.PC)
}

// DumpRegisters renders the register file for inspection, in the same
// shape the libre hardware monitors use.
func (c *CPU) DumpRegisters() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PC: 0x%04X\n", c.PC)
	fmt.Fprintf(&b, "X:  0x%02X\n", c.X)
	fmt.Fprintf(&b, "Y:  0x%02X\n", c.Y)
	fmt.Fprintf(&b, "A:  0x%02X\n", c.A)
	fmt.Fprintf(&b, "S:  0x%02X\n", c.SP)
	fmt.Fprintf(&b, "P:  0b%08b\n", c.P)
	return b.String()
}

// StackBytes returns the live stack contents from top (most recently
// pushed) to bottom. Empty when the pointer sits at the top of the page.
func (c *CPU) StackBytes() []uint8 {
	var out []uint8
	ptr := StackBase | uint16(c.SP)
	for ptr < StackBase|0x00FF {
		ptr++
		out = append(out, c.bus.Read(ptr))
	}
	return out
}
