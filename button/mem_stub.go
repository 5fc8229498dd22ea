//go:build !linux

package button

// Mem is a stub for non-linux platforms.
type Mem struct{}

func openMem() error { return ErrNotSupported }

// NewMem returns an inert pin on non-linux platforms.
func NewMem(pin int, activeHigh bool) *Mem { return &Mem{} }

func (m *Mem) Active() (bool, error) { return false, ErrNotSupported }
func (m *Mem) Close() error          { return nil }
