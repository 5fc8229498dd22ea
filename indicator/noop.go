package indicator

// Noop implements LEDs but does nothing.
// Used when no LEDs are configured.
type Noop struct{}

// Set implements LEDs.Set.
func (n *Noop) Set(id LED, on bool) error {
	return nil
}

// Release implements LEDs.Release.
func (n *Noop) Release() error {
	return nil
}
