// Package indicator drives the green and red status LEDs.
package indicator

import "fmt"

// LED names one of the status LEDs.
type LED int

const (
	Green LED = iota
	Red
)

func (l LED) String() string {
	switch l {
	case Green:
		return "green"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("led(%d)", int(l))
	}
}

// LEDs is the interface for status LED implementations.
type LEDs interface {
	// Set turns one LED on or off.
	Set(id LED, on bool) error

	// Release turns every LED off and releases any hardware resources.
	Release() error
}

// Config holds configuration for the status LEDs.
type Config struct {
	// GPIO LED pins (nil = not configured)
	GreenPin *uint8 `yaml:"green_pin"`
	RedPin   *uint8 `yaml:"red_pin"`
}

// New creates LEDs based on the provided configuration.
func New(cfg Config) (LEDs, error) {
	if cfg.GreenPin == nil && cfg.RedPin == nil {
		return &Noop{}, nil
	}
	return NewGPIO(cfg.GreenPin, cfg.RedPin)
}
