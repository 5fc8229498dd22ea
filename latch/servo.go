package latch

import (
	"time"

	"github.com/hjkoskel/govattu"

	"keylock/clock"
)

// stepDelay is the pause between servo steps; it sets the sweep speed.
const stepDelay = 2 * time.Millisecond

// pwm is the part of the PWM hardware the servo sweep needs.
type pwm interface {
	Set(v uint32)
	Close() error
}

type vattuServo struct {
	hw govattu.Vattu
}

func (v *vattuServo) Set(val uint32) { v.hw.Pwm0Set(val) }
func (v *vattuServo) Close() error   { return v.hw.Close() }

// Servo implements Latch by sweeping a hobby servo between two positions.
type Servo struct {
	out      pwm
	clk      clock.Clock
	openPos  int
	closePos int
	isOpen   bool
}

// NewServo creates a servo latch and moves it to the closed position.
func NewServo(out pwm, openPos, closePos int, clk clock.Clock) *Servo {
	s := &Servo{
		out:      out,
		clk:      clk,
		openPos:  openPos,
		closePos: closePos,
	}
	s.out.Set(uint32(closePos))
	return s
}

// Open implements Latch.Open.
func (s *Servo) Open() error {
	if s.isOpen {
		return nil
	}
	s.moveFromTo(s.closePos, s.openPos)
	s.isOpen = true
	return nil
}

// Close implements Latch.Close.
func (s *Servo) Close() error {
	if !s.isOpen {
		return nil
	}
	s.moveFromTo(s.openPos, s.closePos)
	s.isOpen = false
	return nil
}

// Release implements Latch.Release.
func (s *Servo) Release() error {
	return s.out.Close()
}

func (s *Servo) moveFromTo(from, to int) {
	inc := 1
	if to < from {
		inc = -1
	}
	for i := from; i != to; i += inc {
		s.out.Set(uint32(i))
		s.clk.Sleep(stepDelay)
	}
	s.out.Set(uint32(to))
}
