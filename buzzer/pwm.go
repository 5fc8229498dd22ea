package buzzer

import (
	"fmt"
	"time"

	"github.com/hjkoskel/govattu"

	"keylock/clock"
)

// The PWM clock is the 19.2 MHz oscillator divided by pwmDivisor. The
// divisor matches the latch servo so both channels can share the clock.
const (
	oscillatorHz = 19200000
	pwmDivisor   = 19
	pwmBaseHz    = oscillatorHz / pwmDivisor
)

// PWM implements Tone on one of the hardware PWM channels.
type PWM struct {
	hw      govattu.Vattu
	channel int
	clk     clock.Clock
}

// NewPWM creates a PWM buzzer on pin.
func NewPWM(pin int, clk clock.Clock) (*PWM, error) {
	channel, err := channelForPin(pin)
	if err != nil {
		return nil, err
	}

	hw, err := govattu.Open()
	if err != nil {
		return nil, fmt.Errorf("open gpio: %w", err)
	}

	hw.PinMode(uint8(pin), govattu.ALT5)
	hw.PwmSetMode(true, true, true, true)
	hw.PwmSetClock(pwmDivisor)

	p := &PWM{hw: hw, channel: channel, clk: clk}
	p.set(0, 0)
	return p, nil
}

// Play implements Tone.Play.
func (p *PWM) Play(freqHz int, d time.Duration) error {
	r, err := pwmRange(freqHz)
	if err != nil {
		return err
	}
	p.set(r, r/2)
	p.clk.Sleep(d)
	p.set(0, 0)
	return nil
}

// Release implements Tone.Release.
func (p *PWM) Release() error {
	p.set(0, 0)
	return p.hw.Close()
}

func (p *PWM) set(rng, duty uint32) {
	if p.channel == 0 {
		if rng > 0 {
			p.hw.Pwm0SetRange(rng)
		}
		p.hw.Pwm0Set(duty)
		return
	}
	if rng > 0 {
		p.hw.Pwm1SetRange(rng)
	}
	p.hw.Pwm1Set(duty)
}

// pwmRange returns the PWM period, in clock ticks, for freqHz.
func pwmRange(freqHz int) (uint32, error) {
	if freqHz <= 0 || freqHz > pwmBaseHz/2 {
		return 0, fmt.Errorf("frequency %d Hz out of range", freqHz)
	}
	return uint32(pwmBaseHz / freqHz), nil
}

// channelForPin maps a header pin to its PWM channel in ALT5 mode.
func channelForPin(pin int) (int, error) {
	switch pin {
	case 18:
		return 0, nil
	case 19:
		return 1, nil
	default:
		return 0, fmt.Errorf("pin %d has no hardware PWM in ALT5", pin)
	}
}
