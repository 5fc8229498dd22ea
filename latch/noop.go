package latch

// Noop implements Latch but does nothing.
// Used when no actuator is configured.
type Noop struct{}

// Open implements Latch.Open.
func (n *Noop) Open() error {
	return nil
}

// Close implements Latch.Close.
func (n *Noop) Close() error {
	return nil
}

// Release implements Latch.Release.
func (n *Noop) Release() error {
	return nil
}
