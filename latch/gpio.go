package latch

import (
	"github.com/hjkoskel/govattu"
)

// output drives one digital line.
type output interface {
	Write(high bool)
	Close() error
}

type vattuOutput struct {
	hw  govattu.Vattu
	pin uint8
}

func (v *vattuOutput) Write(high bool) {
	if high {
		v.hw.PinSet(v.pin)
	} else {
		v.hw.PinClear(v.pin)
	}
}

func (v *vattuOutput) Close() error { return v.hw.Close() }

// GPIO drives a strike or relay from a single output. It starts closed.
type GPIO struct {
	out      output
	openHigh bool
	open     bool
}

// NewGPIO configures pin as an output. With openHigh the latch opens when
// the pin is driven high.
func NewGPIO(hw govattu.Vattu, pin uint8, openHigh bool) *GPIO {
	hw.PinMode(pin, govattu.ALToutput)
	return newGPIO(&vattuOutput{hw: hw, pin: pin}, openHigh)
}

func newGPIO(out output, openHigh bool) *GPIO {
	g := &GPIO{out: out, openHigh: openHigh}
	g.out.Write(!openHigh)
	return g
}

// Open implements Latch.Open.
func (g *GPIO) Open() error {
	g.out.Write(g.openHigh)
	g.open = true
	return nil
}

// Close implements Latch.Close.
func (g *GPIO) Close() error {
	g.out.Write(!g.openHigh)
	g.open = false
	return nil
}

// IsOpen reports the last commanded state.
func (g *GPIO) IsOpen() bool { return g.open }

// Release leaves the latch closed and frees the pin.
func (g *GPIO) Release() error {
	g.Close()
	return g.out.Close()
}
