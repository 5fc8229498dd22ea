//go:build !linux

package button

// Cdev is a stub for non-linux platforms.
type Cdev struct{}

// NewCdev returns ErrNotSupported on non-linux platforms.
func NewCdev(chip string, offset int, activeHigh bool) (*Cdev, error) {
	return nil, ErrNotSupported
}

func (c *Cdev) Active() (bool, error) { return false, ErrNotSupported }
func (c *Cdev) Close() error          { return nil }
