// Package access decides whether an entered code opens the lock and tracks
// consecutive failures toward a lockout.
package access

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"keylock/entry"
	"keylock/keypad"
)

// ErrInvalidSecret is returned when the configured secret cannot be typed
// on the keypad.
var ErrInvalidSecret = errors.New("invalid secret")

// Outcome is the result of verifying a code.
type Outcome int

const (
	Denied Outcome = iota
	Granted
)

func (o Outcome) String() string {
	if o == Granted {
		return "granted"
	}
	return "denied"
}

// LockState is the lockout state.
type LockState int

const (
	Unlocked LockState = iota
	Locked
)

func (s LockState) String() string {
	if s == Locked {
		return "locked"
	}
	return "unlocked"
}

// Config holds the secret and the attempt/lockout timing.
type Config struct {
	Secret      string `yaml:"secret"`
	MaxAttempts int    `yaml:"max_attempts"`
	OpenSecs    int    `yaml:"open_secs"`    // how long the lock stays open after a grant
	DeniedSecs  int    `yaml:"denied_secs"`  // how long a denial is shown
	LockoutSecs int    `yaml:"lockout_secs"` // how long entry is refused after MaxAttempts failures
}

// DefaultConfig is the factory setting.
var DefaultConfig = Config{
	Secret:      "1234",
	MaxAttempts: 3,
	OpenSecs:    5,
	DeniedSecs:  2,
	LockoutSecs: 10,
}

// Validate checks the secret is a full-length code made of keys present on
// layout and that the timings make sense.
func (c Config) Validate(layout keypad.Layout) error {
	if len(c.Secret) != entry.Length {
		return fmt.Errorf("%w: must be %d characters, got %d", ErrInvalidSecret, entry.Length, len(c.Secret))
	}
	for i := 0; i < len(c.Secret); i++ {
		if !layout.Contains(c.Secret[i]) {
			return fmt.Errorf("%w: %q is not on the keypad", ErrInvalidSecret, c.Secret[i])
		}
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be at least 1")
	}
	if c.OpenSecs < 0 || c.DeniedSecs < 0 || c.LockoutSecs < 0 {
		return fmt.Errorf("dwell times must not be negative")
	}
	return nil
}

// OpenDwell returns how long the lock stays open.
func (c Config) OpenDwell() time.Duration { return time.Duration(c.OpenSecs) * time.Second }

// DeniedDwell returns how long a denial is shown.
func (c Config) DeniedDwell() time.Duration { return time.Duration(c.DeniedSecs) * time.Second }

// LockoutDuration returns how long a lockout lasts.
func (c Config) LockoutDuration() time.Duration { return time.Duration(c.LockoutSecs) * time.Second }

// Policy holds the secret, the failure counter and the lock state.
type Policy struct {
	secret      []byte
	maxAttempts int
	attempts    int
	state       LockState
}

// NewPolicy returns a Policy for cfg. cfg should already be validated.
func NewPolicy(cfg Config) *Policy {
	return &Policy{
		secret:      []byte(cfg.Secret),
		maxAttempts: cfg.MaxAttempts,
	}
}

// Verify compares code to the secret. The comparison is exact and
// case-sensitive.
func (p *Policy) Verify(code string) Outcome {
	if subtle.ConstantTimeCompare([]byte(code), p.secret) == 1 {
		return Granted
	}
	return Denied
}

// Record updates the failure counter for outcome. It returns true when this
// failure reaches the attempt limit; the policy is then Locked until Unlock.
func (p *Policy) Record(o Outcome) (lockout bool) {
	if o == Granted {
		p.attempts = 0
		return false
	}
	p.attempts++
	if p.attempts >= p.maxAttempts {
		p.state = Locked
		return true
	}
	return false
}

// Unlock ends a lockout and clears the failure counter.
func (p *Policy) Unlock() {
	p.state = Unlocked
	p.attempts = 0
}

// Attempts returns the number of consecutive failures.
func (p *Policy) Attempts() int {
	return p.attempts
}

// State returns the lock state.
func (p *Policy) State() LockState {
	return p.state
}
