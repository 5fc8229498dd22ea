package display

import (
	"log"
	"strings"

	"keylock/keypad"
)

// Log implements Display by writing what would be shown to the log. It is
// the default for headless runs and the event pipe simulator.
type Log struct {
	last string
}

// Show implements Display.Show.
func (l *Log) Show(msg string) error {
	l.print("Display: " + msg)
	return nil
}

// RenderKeypad implements Display.RenderKeypad.
func (l *Log) RenderKeypad(layout keypad.Layout, cursor keypad.Cursor) error {
	l.print("Display: keypad\n" + ASCII(layout, cursor))
	return nil
}

// Release implements Display.Release.
func (l *Log) Release() error {
	return nil
}

// print skips output identical to the previous call.
func (l *Log) print(s string) {
	if s == l.last {
		return
	}
	l.last = s
	log.Print(s)
}

// ASCII renders layout as text with the cursor cell in brackets.
func ASCII(layout keypad.Layout, cursor keypad.Cursor) string {
	var b strings.Builder
	for row := 0; row < keypad.Rows; row++ {
		for col := 0; col < keypad.Cols; col++ {
			c := keypad.Cursor{Col: col, Row: row}
			if c == cursor {
				b.WriteString("[" + string(layout.At(c)) + "]")
			} else {
				b.WriteString(" " + string(layout.At(c)) + " ")
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
