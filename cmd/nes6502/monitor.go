package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/oisee/nes6502/pkg/console"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func monitorCommand() *cobra.Command {
	var org uint16

	cmd := &cobra.Command{
		Use:   "monitor [image]",
		Short: "Interactively single-step a loaded image",
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
			return runMonitor(con)
		},
	}
	cmd.Flags().Uint16Var(&org, "org", 0x8000, "Load origin of the image")
	return cmd
}

const monitorHelp = "s step  r registers  k stack  o opcode  d disasm  x reset  q quit"

// runMonitor drives the interactive stepper. The terminal is put in raw
// mode so single keypresses act immediately; output therefore uses CRLF
// line endings until the state is restored.
func runMonitor(con *console.Console) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	say := func(s string) {
		fmt.Print(strings.ReplaceAll(s, "\n", "\r\n"))
	}

	say(monitorHelp + "\n")
	buf := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buf); err != nil {
			return err
		}

		switch buf[0] {
		case 's', ' ':
			pc := con.CPU().PC
			text, _ := con.Disassemble(pc)
			if err := con.Step(); err != nil {
				say(fmt.Sprintf("error: %v\n", err))
				continue
			}
			say(fmt.Sprintf("%04X  %s\n", pc, text))
		case 'r':
			say(con.CPU().DumpRegisters())
		case 'k':
			stack := con.CPU().StackBytes()
			parts := make([]string, len(stack))
			for i, v := range stack {
				parts[i] = fmt.Sprintf("0x%02X", v)
			}
			say("[" + strings.Join(parts, " ") + "]\n")
		case 'o':
			say(fmt.Sprintf("Next opcode to be executed: 0x%02X\n", con.CPU().NextOpcode()))
		case 'd':
			text, _ := con.Disassemble(con.CPU().PC)
			say(fmt.Sprintf("%04X  %s\n", con.CPU().PC, text))
		case 'x':
			con.CPU().Reset()
			say("reset\n")
		case 'q', 0x03: // q or Ctrl-C
			return nil
		case 'h', '?':
			say(monitorHelp + "\n")
		}
	}
}
