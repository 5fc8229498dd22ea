//go:build linux

package platform

import (
	"fmt"
	"log"

	"golang.org/x/sys/unix"
)

// Reboot restarts the host. It needs CAP_SYS_BOOT.
type Reboot struct{}

// Enter implements Maintenance.Enter.
func (r *Reboot) Enter() error {
	log.Printf("Platform: rebooting")
	unix.Sync()
	if err := unix.Reboot(unix.LINUX_REBOOT_CMD_RESTART); err != nil {
		return fmt.Errorf("reboot: %w", err)
	}
	return nil
}
