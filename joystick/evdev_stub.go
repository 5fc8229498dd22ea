//go:build !linux

package joystick

// Evdev is a stub for non-linux platforms.
type Evdev struct{}

// NewEvdev returns ErrNotSupported on non-linux platforms.
func NewEvdev(cfg Config) (*Evdev, error) {
	return nil, ErrNotSupported
}

func (e *Evdev) ReadAxis(channel int) (uint16, error) { return 0, ErrNotSupported }
func (e *Evdev) Close() error                         { return nil }
