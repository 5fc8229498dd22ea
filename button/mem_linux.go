//go:build linux

package button

import (
	"fmt"

	"github.com/warthog618/gpio"
)

// Mem implements Pin through the BCM283x register map in /dev/gpiomem,
// for older kernels without the character device.
type Mem struct {
	pin        *gpio.Pin
	activeHigh bool
}

func openMem() error {
	if err := gpio.Open(); err != nil {
		return fmt.Errorf("open gpiomem: %w", err)
	}
	return nil
}

// NewMem configures pin as an input with the pull matching its polarity.
func NewMem(pin int, activeHigh bool) *Mem {
	p := gpio.NewPin(pin)
	p.Input()
	if activeHigh {
		p.PullDown()
	} else {
		p.PullUp()
	}
	return &Mem{pin: p, activeHigh: activeHigh}
}

// Active implements Pin.Active.
func (m *Mem) Active() (bool, error) {
	high := m.pin.Read() == gpio.High
	return high == m.activeHigh, nil
}

// Close implements Pin.Close. The register map stays open for the other
// button and is released at process exit.
func (m *Mem) Close() error {
	return nil
}
