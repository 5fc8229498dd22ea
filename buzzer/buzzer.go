// Package buzzer plays tones and short melodies on a piezo buzzer.
package buzzer

import (
	"fmt"
	"time"

	"keylock/clock"
)

// Tone is the interface for buzzer implementations.
type Tone interface {
	// Play sounds freqHz for d and returns once the tone has stopped.
	Play(freqHz int, d time.Duration) error

	// Release releases any hardware resources.
	Release() error
}

// Config holds configuration for buzzer implementations.
type Config struct {
	Type string `yaml:"type"` // "pwm", "none"
	Pin  int    `yaml:"pin"`  // 18 (PWM0) or 19 (PWM1)
}

// DefaultConfig leaves the buzzer disabled.
var DefaultConfig = Config{Type: "none", Pin: 19}

// Validate checks the buzzer type and pin.
func (c Config) Validate() error {
	switch c.Type {
	case "", "none":
		return nil
	case "pwm":
		if _, err := channelForPin(c.Pin); err != nil {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unknown buzzer type %q", c.Type)
	}
}

// New creates a Tone based on the provided configuration.
func New(cfg Config, clk clock.Clock) (Tone, error) {
	switch cfg.Type {
	case "pwm":
		return NewPWM(cfg.Pin, clk)
	case "", "none":
		return &Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown buzzer type %q", cfg.Type)
	}
}

// Musical notes used by the melodies, in Hz.
const (
	NoteC5 = 523
	NoteE5 = 659
	NoteG5 = 784
	NoteA5 = 880
)

// Note is one step of a melody. Gap is the silence after the note.
type Note struct {
	Hz  int
	Dur time.Duration
	Gap time.Duration
}

// Success is played when access is granted.
var Success = []Note{
	{NoteC5, 200 * time.Millisecond, 50 * time.Millisecond},
	{NoteE5, 200 * time.Millisecond, 50 * time.Millisecond},
	{NoteG5, 200 * time.Millisecond, 50 * time.Millisecond},
	{NoteA5, 400 * time.Millisecond, 0},
}

// Error is played when a code is rejected.
var Error = []Note{
	{NoteC5, 200 * time.Millisecond, 50 * time.Millisecond},
	{NoteC5, 200 * time.Millisecond, 0},
}

// Melody plays notes on t in order. It stops at the first failing note.
func Melody(t Tone, clk clock.Clock, notes []Note) error {
	for _, n := range notes {
		if err := t.Play(n.Hz, n.Dur); err != nil {
			return fmt.Errorf("play %d Hz: %w", n.Hz, err)
		}
		if n.Gap > 0 {
			clk.Sleep(n.Gap)
		}
	}
	return nil
}

// Length returns how long notes take to play.
func Length(notes []Note) time.Duration {
	var d time.Duration
	for _, n := range notes {
		d += n.Dur + n.Gap
	}
	return d
}
