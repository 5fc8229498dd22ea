// Package button reads push buttons with a two-phase debounce: a press is
// reported only if the pin is still active after a settle delay.
package button

import (
	"errors"
	"fmt"
	"log"
	"time"

	"keylock/clock"
)

// ErrNotSupported is returned when a backend is not available on this platform.
var ErrNotSupported = errors.New("button backend not supported on this platform")

// Pin is the digital input capability.
type Pin interface {
	// Active reports whether the button is currently held.
	Active() (bool, error)
	Close() error
}

// Config holds configuration for the two buttons.
type Config struct {
	Type          string `yaml:"type"`        // "gpiocdev", "gpiomem", "pipe", "none"
	Chip          string `yaml:"chip"`        // gpiocdev chip, default gpiochip0
	EnterPin      int    `yaml:"enter_pin"`   // selects the highlighted key
	ServicePin    int    `yaml:"service_pin"` // enters maintenance mode
	ActiveHigh    bool   `yaml:"active_high"` // default is active-low with pull-up
	SettleMs      int    `yaml:"settle_ms"`   // debounce settle delay
	ReleasePollMs int    `yaml:"release_poll_ms"`
}

// DefaultConfig matches the reference board: buttons to ground on GPIO 5
// and 6 with pull-ups.
var DefaultConfig = Config{
	Type:          "none",
	Chip:          "gpiochip0",
	EnterPin:      5,
	ServicePin:    6,
	SettleMs:      50,
	ReleasePollMs: 10,
}

// New opens the enter and service pins for the backend selected by cfg.Type.
func New(cfg Config) (enter, service Pin, err error) {
	switch cfg.Type {
	case "gpiocdev":
		return newPair(cfg, func(n int) (Pin, error) { return NewCdev(cfg.Chip, n, cfg.ActiveHigh) })
	case "gpiomem":
		if err := openMem(); err != nil {
			return nil, nil, err
		}
		return newPair(cfg, func(n int) (Pin, error) { return NewMem(n, cfg.ActiveHigh), nil })
	case "", "none":
		return Released{}, Released{}, nil
	default:
		return nil, nil, fmt.Errorf("button: unknown type %q", cfg.Type)
	}
}

func newPair(cfg Config, open func(int) (Pin, error)) (Pin, Pin, error) {
	enter, err := open(cfg.EnterPin)
	if err != nil {
		return nil, nil, fmt.Errorf("enter button: %w", err)
	}
	service, err := open(cfg.ServicePin)
	if err != nil {
		enter.Close()
		return nil, nil, fmt.Errorf("service button: %w", err)
	}
	return enter, service, nil
}

// Button debounces one Pin.
type Button struct {
	name   string
	pin    Pin
	clock  clock.Clock
	settle time.Duration
	poll   time.Duration
}

// NewButton wraps pin with the settle and release-poll delays from cfg.
func NewButton(name string, pin Pin, clk clock.Clock, cfg Config) *Button {
	return &Button{
		name:   name,
		pin:    pin,
		clock:  clk,
		settle: time.Duration(cfg.SettleMs) * time.Millisecond,
		poll:   time.Duration(cfg.ReleasePollMs) * time.Millisecond,
	}
}

// Pressed reports a debounced press. It blocks for the settle delay only
// when the first read is active.
func (b *Button) Pressed() bool {
	if !b.active() {
		return false
	}
	b.clock.Sleep(b.settle)
	return b.active()
}

// WaitRelease blocks until the pin reads inactive.
func (b *Button) WaitRelease() {
	for b.active() {
		b.clock.Sleep(b.poll)
	}
}

// Close releases the pin.
func (b *Button) Close() error {
	return b.pin.Close()
}

func (b *Button) active() bool {
	on, err := b.pin.Active()
	if err != nil {
		log.Printf("Button %s: read: %v", b.name, err)
		return false
	}
	return on
}

// Released implements Pin for an unconnected button.
type Released struct{}

// Active implements Pin.Active.
func (Released) Active() (bool, error) { return false, nil }

// Close implements Pin.Close.
func (Released) Close() error { return nil }
