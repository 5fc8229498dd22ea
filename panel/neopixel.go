package panel

import (
	"fmt"
	"os"
)

// Neopixel implements Panel by writing solid-color commands to the named
// pipe of an external neopixel tool.
type Neopixel struct {
	pipe *os.File
	gain Gain
}

// NewNeopixel opens the neopixel tool pipe.
func NewNeopixel(pipePath string, gain Gain) (*Neopixel, error) {
	f, err := os.OpenFile(pipePath, os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open neopixel pipe %s: %w", pipePath, err)
	}
	return &Neopixel{pipe: f, gain: gain}, nil
}

// SetColor implements Panel.SetColor.
func (n *Neopixel) SetColor(rgb uint32) error {
	r, g, b := Scale(rgb, n.gain)
	return n.write(command(r, g, b))
}

// Release implements Panel.Release.
func (n *Neopixel) Release() error {
	if n.pipe == nil {
		return nil
	}
	n.write(command(0, 0, 0))
	return n.pipe.Close()
}

// command is a steady fill in the tool's "@<mode> <rrggbb>" syntax.
func command(r, g, b uint8) string {
	return fmt.Sprintf("@0 %02x%02x%02x\n", r, g, b)
}

func (n *Neopixel) write(s string) error {
	if n.pipe == nil {
		return nil
	}
	if _, err := n.pipe.Write([]byte(s)); err != nil {
		return fmt.Errorf("write neopixel pipe: %w", err)
	}
	return nil
}
