package buzzer

import "time"

// Noop implements Tone but does nothing.
// Used when no buzzer is configured.
type Noop struct{}

// Play implements Tone.Play.
func (n *Noop) Play(freqHz int, d time.Duration) error {
	return nil
}

// Release implements Tone.Release.
func (n *Noop) Release() error {
	return nil
}
