//go:build !linux

package platform

// Reboot is a stub on platforms without a reboot syscall.
type Reboot struct{}

// Enter implements Maintenance.Enter.
func (r *Reboot) Enter() error {
	return ErrNotSupported
}
