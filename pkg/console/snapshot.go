package console

import (
	"encoding/gob"
	"fmt"
	"os"
)

// snapshot is the gob-encoded on-disk state. The in-flight addressing mode
// is not part of it: snapshots are only taken between steps, where the
// mode is always the cleared sentinel.
type snapshot struct {
	RAM [ramSize]uint8
	ROM [romSize]uint8

	A, X, Y, SP uint8
	P           uint8
	PC          uint16
}

// SaveState writes the full console state to a file.
func (c *Console) SaveState(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	s := snapshot{
		RAM: c.ram,
		ROM: c.rom,
		A:   c.cpu.A, X: c.cpu.X, Y: c.cpu.Y,
		SP: c.cpu.SP, P: c.cpu.P, PC: c.cpu.PC,
	}
	return gob.NewEncoder(f).Encode(&s)
}

// LoadState restores console state previously written by SaveState.
func (c *Console) LoadState(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var s snapshot
	if err := gob.NewDecoder(f).Decode(&s); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	c.ram = s.RAM
	c.rom = s.ROM
	c.cpu.A, c.cpu.X, c.cpu.Y = s.A, s.X, s.Y
	c.cpu.SP, c.cpu.P, c.cpu.PC = s.SP, s.P, s.PC
	return nil
}
