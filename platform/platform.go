// Package platform hands the device over to maintenance: a bootloader, a
// firmware updater or a plain reboot.
package platform

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os/exec"
	"time"
)

// ErrNotSupported is returned when the host cannot reboot itself.
var ErrNotSupported = errors.New("reboot not supported on this platform")

// Maintenance is the interface for maintenance handoff implementations.
type Maintenance interface {
	// Enter starts the handoff. A successful handoff normally never
	// returns; a nil return means the handoff was accepted and will
	// happen asynchronously.
	Enter() error
}

// Config holds configuration for the maintenance handoff.
type Config struct {
	Type        string   `yaml:"type"`         // "command", "reboot", "none"
	Command     []string `yaml:"command"`      // argv for "command"
	TimeoutSecs int      `yaml:"timeout_secs"` // command timeout
}

// DefaultConfig does nothing on maintenance.
var DefaultConfig = Config{Type: "none", TimeoutSecs: 30}

// Validate checks the handoff type.
func (c Config) Validate() error {
	switch c.Type {
	case "", "none", "reboot":
	case "command":
		if len(c.Command) == 0 {
			return fmt.Errorf("maintenance command required")
		}
	default:
		return fmt.Errorf("unknown maintenance type %q", c.Type)
	}
	return nil
}

// New creates a Maintenance based on the provided configuration.
func New(cfg Config) (Maintenance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Type {
	case "command":
		timeout := time.Duration(cfg.TimeoutSecs) * time.Second
		return &Command{argv: cfg.Command, timeout: timeout}, nil
	case "reboot":
		return &Reboot{}, nil
	default:
		return &Noop{}, nil
	}
}

// Command runs an external program, typically one that reboots into a
// bootloader. If the program fails the host is rebooted instead.
type Command struct {
	argv    []string
	timeout time.Duration

	// fallback is used when the command fails; nil means reboot.
	fallback Maintenance
}

// Enter implements Maintenance.Enter.
func (c *Command) Enter() error {
	ctx := context.Background()
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	out, err := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...).CombinedOutput()
	if err == nil {
		log.Printf("Platform: %s accepted maintenance handoff", c.argv[0])
		return nil
	}
	log.Printf("Platform: %s failed: %v: %s", c.argv[0], err, out)

	fallback := c.fallback
	if fallback == nil {
		fallback = &Reboot{}
	}
	if ferr := fallback.Enter(); ferr != nil {
		return fmt.Errorf("maintenance command: %w; fallback: %v", err, ferr)
	}
	return nil
}

// Noop implements Maintenance but does nothing.
type Noop struct{}

// Enter implements Maintenance.Enter.
func (n *Noop) Enter() error {
	log.Printf("Platform: maintenance requested, no handoff configured")
	return nil
}
