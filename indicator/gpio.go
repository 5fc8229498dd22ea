package indicator

import (
	"fmt"

	"github.com/hjkoskel/govattu"
)

// GPIO implements LEDs using discrete GPIO LED pins.
type GPIO struct {
	hw   govattu.Vattu
	pins map[LED]uint8
}

// NewGPIO creates GPIO LEDs. A nil pin leaves that LED unwired.
func NewGPIO(greenPin, redPin *uint8) (*GPIO, error) {
	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	g := &GPIO{
		hw:   hw,
		pins: make(map[LED]uint8),
	}
	if greenPin != nil {
		g.pins[Green] = *greenPin
	}
	if redPin != nil {
		g.pins[Red] = *redPin
	}

	// Initialize all pins as outputs, start off
	for _, pin := range g.pins {
		hw.PinMode(pin, govattu.ALToutput)
		hw.PinClear(pin)
	}
	return g, nil
}

// Set implements LEDs.Set.
func (g *GPIO) Set(id LED, on bool) error {
	pin, ok := g.pins[id]
	if !ok {
		return nil
	}
	if on {
		g.hw.PinSet(pin)
	} else {
		g.hw.PinClear(pin)
	}
	return nil
}

// Release implements LEDs.Release.
func (g *GPIO) Release() error {
	for _, pin := range g.pins {
		g.hw.PinClear(pin)
	}
	return g.hw.Close()
}
