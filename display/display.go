// Package display shows the keypad and status messages.
package display

import (
	"errors"
	"fmt"

	"keylock/keypad"
)

// ErrScreenNotCompiled is returned when screen support was not compiled in.
var ErrScreenNotCompiled = errors.New("screen support not compiled in (build with -tags=screen)")

// Display is the interface for display implementations. Every call redraws
// the whole screen.
type Display interface {
	// Show clears the screen and draws msg from the top-left corner.
	Show(msg string) error

	// RenderKeypad draws layout with the cell under cursor highlighted.
	RenderKeypad(layout keypad.Layout, cursor keypad.Cursor) error

	// Release blanks the screen and releases any hardware resources.
	Release() error
}

// Config holds configuration for display implementations.
type Config struct {
	Type    string `yaml:"type"`    // "ssd1306", "framebuffer", "log", "none"
	I2C     string `yaml:"i2c"`     // I2C bus name, empty for the first one
	Width   int    `yaml:"width"`   // ssd1306 panel width
	Height  int    `yaml:"height"`  // ssd1306 panel height
	Rotated bool   `yaml:"rotated"` // ssd1306 mounted upside down
	Device  string `yaml:"device"`  // framebuffer device
	Font    string `yaml:"font"`    // TrueType font for the framebuffer
}

// DefaultConfig logs screen contents instead of drawing them.
var DefaultConfig = Config{
	Type:   "log",
	Width:  128,
	Height: 64,
	Device: "/dev/fb0",
	Font:   "/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
}

// Validate checks the display type and size.
func (c Config) Validate() error {
	switch c.Type {
	case "", "none", "log", "framebuffer":
	case "ssd1306":
		if c.Width <= 0 || c.Height <= 0 {
			return fmt.Errorf("display size %dx%d invalid", c.Width, c.Height)
		}
	default:
		return fmt.Errorf("unknown display type %q", c.Type)
	}
	return nil
}

// New creates a Display based on the provided configuration.
func New(cfg Config) (Display, error) {
	switch cfg.Type {
	case "ssd1306":
		return NewSSD1306(cfg)
	case "framebuffer":
		if !ScreenSupported() {
			return nil, ErrScreenNotCompiled
		}
		return NewFramebuffer(cfg)
	case "log":
		return &Log{}, nil
	case "", "none":
		return &Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown display type %q", cfg.Type)
	}
}

// Noop implements Display but does nothing.
type Noop struct{}

// Show implements Display.Show.
func (n *Noop) Show(msg string) error { return nil }

// RenderKeypad implements Display.RenderKeypad.
func (n *Noop) RenderKeypad(layout keypad.Layout, cursor keypad.Cursor) error { return nil }

// Release implements Display.Release.
func (n *Noop) Release() error { return nil }
