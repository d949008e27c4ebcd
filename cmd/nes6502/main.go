package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/oisee/nes6502/pkg/console"
	"github.com/oisee/nes6502/pkg/cpu"
	"github.com/oisee/nes6502/pkg/inst"
	"github.com/oisee/nes6502/pkg/trace"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "nes6502",
		Short: "nes6502 — run, step and disassemble 6502 program images",
	}

	// run command
	var org uint16
	var steps int
	var tracePath string
	var savePath string
	var loadPath string
	var verbose bool

	runCmd := &cobra.Command{
		Use:   "run [image]",
		Short: "Load a flat binary and execute it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			con := console.New()
			if err := con.Load(data, org); err != nil {
				return err
			}
			if loadPath != "" {
				if err := con.LoadState(loadPath); err != nil {
					return err
				}
			}

			var log trace.Log
			executed := 0
			for steps == 0 || executed < steps {
				pc := con.CPU().PC
				opcode := con.Read(pc)
				text, _ := con.Disassemble(pc)

				if err := con.Step(); err != nil {
					if errors.Is(err, cpu.ErrUnknownOpcode) {
						fmt.Printf("halted after %d steps: %v\n", executed, err)
						break
					}
					return err
				}
				executed++

				c := con.CPU()
				if tracePath != "" {
					log.Add(trace.Entry{
						PC: pc, Opcode: opcode, Disasm: text,
						A: c.A, X: c.X, Y: c.Y, SP: c.SP, P: c.P,
					})
				}
				if verbose {
					fmt.Printf("%04X  %-16s A=%02X X=%02X Y=%02X SP=%02X P=%08b\n",
						pc, text, c.A, c.X, c.Y, c.SP, c.P)
				}
			}

			fmt.Printf("\n%s", con.CPU().DumpRegisters())

			if tracePath != "" {
				f, err := os.Create(tracePath)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := log.WriteJSON(f); err != nil {
					return err
				}
				fmt.Printf("Trace of %d steps written to %s\n", log.Len(), tracePath)
			}
			if savePath != "" {
				if err := con.SaveState(savePath); err != nil {
					return err
				}
				fmt.Printf("State written to %s\n", savePath)
			}
			return nil
		},
	}
	runCmd.Flags().Uint16Var(&org, "org", 0x8000, "Load origin of the image")
	runCmd.Flags().IntVar(&steps, "steps", 0, "Maximum instructions to execute (0 = until halt)")
	runCmd.Flags().StringVar(&tracePath, "trace", "", "Write a JSON execution trace to this file")
	runCmd.Flags().StringVar(&savePath, "save-state", "", "Write a snapshot after the run")
	runCmd.Flags().StringVar(&loadPath, "load-state", "", "Restore a snapshot before the run")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print each executed instruction")

	// disasm command
	var disOrg uint16

	disasmCmd := &cobra.Command{
		Use:   "disasm [image]",
		Short: "Disassemble a flat binary image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			listImage(data, disOrg)
			return nil
		},
	}
	disasmCmd.Flags().Uint16Var(&disOrg, "org", 0x8000, "Address of the first byte")

	rootCmd.AddCommand(runCmd, disasmCmd, monitorCommand())
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// listImage prints a linear disassembly of a raw image. Truncated
// trailing operands are listed as data bytes.
func listImage(data []byte, org uint16) {
	i := 0
	for i < len(data) {
		pc := org + uint16(i)
		op := data[i]
		info := inst.Table[op]

		size := info.Size()
		if !info.Valid() || i+size > len(data) {
			fmt.Printf("%04X  %02X        .byte $%02X\n", pc, op, op)
			i++
			continue
		}

		operand := data[i+1 : i+size]
		raw := fmt.Sprintf("% X", data[i:i+size])
		fmt.Printf("%04X  %-8s  %s\n", pc, raw, inst.Disassemble(pc, op, operand))
		i += size
	}
}
