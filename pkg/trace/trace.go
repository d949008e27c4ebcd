// Package trace records per-instruction execution history for the run
// loop: one entry per completed step, exportable as JSON for offline
// comparison against other emulators.
package trace

import (
	"encoding/json"
	"io"
)

// Entry is the state captured around a single executed instruction.
// Registers reflect the state after the instruction completed.
type Entry struct {
	PC     uint16 `json:"pc"`
	Opcode uint8  `json:"opcode"`
	Disasm string `json:"disasm"`

	A  uint8 `json:"a"`
	X  uint8 `json:"x"`
	Y  uint8 `json:"y"`
	SP uint8 `json:"sp"`
	P  uint8 `json:"p"`
}

// Log collects entries in execution order.
type Log struct {
	entries []Entry
}

// Add appends one entry.
func (l *Log) Add(e Entry) {
	l.entries = append(l.entries, e)
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy of the recorded history.
func (l *Log) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// WriteJSON writes the history as an indented JSON array.
func (l *Log) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(l.entries)
}

// ReadJSON loads a history previously written by WriteJSON.
func ReadJSON(r io.Reader) ([]Entry, error) {
	var entries []Entry
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}
