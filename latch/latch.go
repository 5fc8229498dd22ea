// Package latch drives the actuator that physically releases the lock.
package latch

import (
	"fmt"

	"github.com/hjkoskel/govattu"

	"keylock/clock"
)

// Latch is the interface for all lock actuator implementations.
type Latch interface {
	// Open releases the lock.
	Open() error

	// Close engages the lock.
	Close() error

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for latch implementations.
type Config struct {
	Type       string `yaml:"type"`        // "servo", "gpio_high", "gpio_low", "none"
	Pin        *int   `yaml:"pin"`         // GPIO pin number
	ServoOpen  int    `yaml:"servo_open"`  // PWM value for open position
	ServoClose int    `yaml:"servo_close"` // PWM value for closed position
}

// servoPin is the only pin driven by PWM0 in ALT5.
const servoPin = 18

// Validate checks the latch type, pin and servo positions.
func (c Config) Validate() error {
	switch c.Type {
	case "", "none":
		return nil
	case "gpio_high", "gpio_low":
		if c.Pin == nil {
			return fmt.Errorf("%s latch requires pin", c.Type)
		}
	case "servo":
		if c.Pin == nil || *c.Pin != servoPin {
			return fmt.Errorf("servo latch must use pin %d (PWM0)", servoPin)
		}
		if c.ServoOpen <= 0 || c.ServoClose <= 0 {
			return fmt.Errorf("servo_open and servo_close must be positive")
		}
	default:
		return fmt.Errorf("unknown latch type %q", c.Type)
	}
	return nil
}

// New creates a Latch based on the provided configuration.
func New(cfg Config, clk clock.Clock) (Latch, error) {
	if cfg.Type == "" || cfg.Type == "none" {
		return &Noop{}, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	switch cfg.Type {
	case "servo":
		hw.PinMode(servoPin, govattu.ALT5)
		hw.PwmSetMode(true, true, true, true)
		hw.PwmSetClock(19)
		hw.Pwm0SetRange(20000)
		return NewServo(&vattuServo{hw: hw}, cfg.ServoOpen, cfg.ServoClose, clk), nil
	case "gpio_high":
		return NewGPIO(hw, uint8(*cfg.Pin), true), nil
	case "gpio_low":
		return NewGPIO(hw, uint8(*cfg.Pin), false), nil
	default:
		hw.Close()
		return nil, fmt.Errorf("unknown latch type %q", cfg.Type)
	}
}
