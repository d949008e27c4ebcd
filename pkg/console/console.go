// Package console wires the CPU core to a NES-shaped memory map: 2KB of
// internal RAM mirrored through the low 8KB of the address space and a
// 32KB program window in the upper half, which also holds the reset
// vector. The console is the bus; components talk to each other only
// through Read and Write.
package console

import (
	"errors"
	"fmt"

	"github.com/oisee/nes6502/pkg/cpu"
	"github.com/oisee/nes6502/pkg/inst"
)

const (
	ramSize   = 0x0800 // 2KB internal RAM
	ramMirror = 0x1FFF // RAM is mirrored through this range
	romBase   = 0x8000 // program window up to 0xFFFF
	romSize   = 0x8000
)

// Console owns the memory map and the CPU connected to it.
type Console struct {
	cpu *cpu.CPU
	ram [ramSize]uint8
	rom [romSize]uint8
}

// New builds a console with an empty memory map and a CPU wired to it.
// The CPU fetches its initial PC from the (still empty) reset vector, so
// callers normally Load a program next.
func New() *Console {
	c := &Console{}
	c.cpu = cpu.New(c)
	return c
}

// Read implements the bus. Unmapped regions read as zero.
func (c *Console) Read(addr uint16) uint8 {
	switch {
	case addr <= ramMirror:
		return c.ram[addr&(ramSize-1)]
	case addr >= romBase:
		return c.rom[addr-romBase]
	}
	return 0
}

// Write implements the bus. Writes to the program window and unmapped
// regions are dropped, like writes to cartridge ROM.
func (c *Console) Write(addr uint16, value uint8) {
	if addr <= ramMirror {
		c.ram[addr&(ramSize-1)] = value
	}
}

// Load places a program image in the program window, points the reset
// vector at its origin and resets the CPU.
func (c *Console) Load(program []byte, origin uint16) error {
	if origin < romBase {
		return fmt.Errorf("origin $%04X below program window $%04X", origin, romBase)
	}
	if int(origin)+len(program) > 0x10000 {
		return fmt.Errorf("program of %d bytes does not fit at $%04X", len(program), origin)
	}
	copy(c.rom[origin-romBase:], program)
	c.rom[cpu.ResetVector-romBase] = uint8(origin)
	c.rom[cpu.ResetVector+1-romBase] = uint8(origin >> 8)
	c.cpu.Reset()
	return nil
}

// CPU exposes the core for register inspection and stepping.
func (c *Console) CPU() *cpu.CPU {
	return c.cpu
}

// Step executes one instruction.
func (c *Console) Step() error {
	return c.cpu.Step()
}

// Run steps until maxSteps instructions have executed or the core reports
// an error, returning the number of completed steps. An unimplemented
// opcode surfaces as the error; the caller chooses whether that is fatal.
func (c *Console) Run(maxSteps int) (int, error) {
	for i := 0; i < maxSteps; i++ {
		if err := c.cpu.Step(); err != nil {
			return i, err
		}
	}
	return maxSteps, nil
}

// Disassemble formats the instruction at pc and reports its size, reading
// operand bytes through the bus.
func (c *Console) Disassemble(pc uint16) (string, int) {
	op := c.Read(pc)
	info := inst.Table[op]
	if !info.Valid() {
		return inst.Disassemble(pc, op, nil), 1
	}
	operand := make([]byte, info.Mode.OperandBytes())
	for i := range operand {
		operand[i] = c.Read(pc + 1 + uint16(i))
	}
	return inst.Disassemble(pc, op, operand), info.Size()
}

// ErrBadSnapshot reports a snapshot file that does not decode to a
// console state.
var ErrBadSnapshot = errors.New("invalid snapshot")
