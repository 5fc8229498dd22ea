// Package panel drives the RGB LED matrix used as a large status light.
package panel

import (
	"fmt"
)

// Common colors, packed 0xRRGGBB.
const (
	Off   uint32 = 0x000000
	Red   uint32 = 0xFF0000
	Green uint32 = 0x00FF00
)

// Panel is the interface for LED matrix implementations.
type Panel interface {
	// SetColor fills every pixel with rgb (0xRRGGBB) after applying the
	// configured gain.
	SetColor(rgb uint32) error

	// Release turns the panel off and releases any hardware resources.
	Release() error
}

// Gain scales each channel before it is sent. 1.0 is full brightness.
type Gain struct {
	R float64 `yaml:"r"`
	G float64 `yaml:"g"`
	B float64 `yaml:"b"`
}

// Config holds configuration for panel implementations.
type Config struct {
	Type   string `yaml:"type"`   // "nrzled", "pipe", "none"
	SPI    string `yaml:"spi"`    // SPI port name, empty for the first one
	Pixels int    `yaml:"pixels"` // number of LEDs on the chain
	Pipe   string `yaml:"pipe"`   // neopixel tool pipe path
	Gain   Gain   `yaml:"gain"`
}

// DefaultConfig is a disabled 5x5 matrix at half red and green with blue
// dropped.
var DefaultConfig = Config{
	Type:   "none",
	Pixels: 25,
	Gain:   Gain{R: 0.5, G: 0.5, B: 0},
}

// Validate checks the panel type and gain.
func (c Config) Validate() error {
	for _, g := range []float64{c.Gain.R, c.Gain.G, c.Gain.B} {
		if g < 0 || g > 1 {
			return fmt.Errorf("panel gain %v out of range 0..1", g)
		}
	}
	switch c.Type {
	case "", "none":
	case "nrzled":
		if c.Pixels <= 0 {
			return fmt.Errorf("panel pixels must be positive")
		}
	case "pipe":
		if c.Pipe == "" {
			return fmt.Errorf("panel pipe path required")
		}
	default:
		return fmt.Errorf("unknown panel type %q", c.Type)
	}
	return nil
}

// New creates a Panel based on the provided configuration.
func New(cfg Config) (Panel, error) {
	switch cfg.Type {
	case "nrzled":
		return NewNRZ(cfg.SPI, cfg.Pixels, cfg.Gain)
	case "pipe":
		return NewNeopixel(cfg.Pipe, cfg.Gain)
	case "", "none":
		return &Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown panel type %q", cfg.Type)
	}
}

// Scale splits rgb into channels and applies g, truncating toward zero.
func Scale(rgb uint32, g Gain) (r, gr, b uint8) {
	r = uint8(float64(uint8(rgb>>16)) * g.R)
	gr = uint8(float64(uint8(rgb>>8)) * g.G)
	b = uint8(float64(uint8(rgb)) * g.B)
	return r, gr, b
}

// Noop implements Panel but does nothing.
type Noop struct{}

// SetColor implements Panel.SetColor.
func (n *Noop) SetColor(rgb uint32) error {
	return nil
}

// Release implements Panel.Release.
func (n *Noop) Release() error {
	return nil
}
