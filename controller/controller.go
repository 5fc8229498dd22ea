// Package controller runs the lock: it owns all session state and drives
// it from a single loop.
package controller

import (
	"context"
	"fmt"
	"log"
	"time"

	"keylock/access"
	"keylock/button"
	"keylock/clock"
	"keylock/entry"
	"keylock/feedback"
	"keylock/joystick"
	"keylock/keypad"
	"keylock/platform"
)

// Config holds loop timing.
type Config struct {
	IdleMs        int `yaml:"idle_ms"`        // sleep at the end of every iteration
	DigitShowMs   int `yaml:"digit_show_ms"`  // how long the entered code stays up before the keypad returns
	MaintenanceMs int `yaml:"maintenance_ms"` // notice time before the maintenance handoff
}

// DefaultConfig matches the reference firmware timing.
var DefaultConfig = Config{
	IdleMs:        10,
	DigitShowMs:   200,
	MaintenanceMs: 1000,
}

// Validate checks the timing values.
func (c Config) Validate() error {
	if c.IdleMs < 0 || c.DigitShowMs < 0 || c.MaintenanceMs < 0 {
		return fmt.Errorf("controller timings must not be negative")
	}
	return nil
}

// Deps are the collaborators a Session drives.
type Deps struct {
	Clock       clock.Clock
	Reader      *joystick.Reader
	Navigator   *keypad.Navigator
	Layout      keypad.Layout
	Policy      *access.Policy
	Enter       *button.Button
	Service     *button.Button
	Sink        feedback.Sink
	Maintenance platform.Maintenance
}

// Session is the complete state of the lock. It is not safe for concurrent
// use; only the control loop touches it.
type Session struct {
	Deps
	entry entry.Entry

	idle        time.Duration
	digitShow   time.Duration
	maintenance time.Duration
	open        time.Duration
	denied      time.Duration
	lockout     time.Duration

	// redraw is set while the entered code is on screen.
	redraw   bool
	redrawAt time.Time
}

// New returns a Session. cfg and acfg should already be validated.
func New(cfg Config, acfg access.Config, d Deps) *Session {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return &Session{
		Deps:        d,
		idle:        ms(cfg.IdleMs),
		digitShow:   ms(cfg.DigitShowMs),
		maintenance: ms(cfg.MaintenanceMs),
		open:        acfg.OpenDwell(),
		denied:      acfg.DeniedDwell(),
		lockout:     acfg.LockoutDuration(),
	}
}

// Start draws the initial keypad.
func (s *Session) Start() {
	s.drawKeypad()
}

// Entered returns the code typed so far.
func (s *Session) Entered() string {
	return s.entry.Code()
}

// Tick runs one loop iteration without the trailing idle sleep. It returns
// an error only when the maintenance handoff fails.
func (s *Session) Tick() error {
	now := s.Clock.Now()
	axes := s.Reader.Poll(now)

	if _, moved := s.Navigator.Move(axes.X, axes.Y, now); moved {
		s.drawKeypad()
	} else if s.redraw && !now.Before(s.redrawAt) {
		s.drawKeypad()
	}

	if s.Enter.Pressed() {
		s.press()
	}

	if s.Service.Pressed() {
		if err := s.handoff(); err != nil {
			return err
		}
	}
	return nil
}

// Run starts the session and loops until ctx is cancelled or the
// maintenance handoff fails. A dwell in progress is always completed.
func (s *Session) Run(ctx context.Context) error {
	s.Start()
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		if err := s.Tick(); err != nil {
			return err
		}
		s.Clock.Sleep(s.idle)
	}
}

func (s *Session) press() {
	code, complete := s.entry.Press(s.Layout.At(s.Navigator.Cursor()))
	if !complete {
		code = s.entry.Code()
	}
	s.Sink.DigitEntered(code)
	s.Enter.WaitRelease()

	if !complete {
		s.redraw = true
		s.redrawAt = s.Clock.Now().Add(s.digitShow)
		return
	}

	s.verify(code)
	s.drawKeypad()
}

// verify runs the blocking grant or deny sequence for a complete code.
func (s *Session) verify(code string) {
	outcome := s.Policy.Verify(code)
	lockout := s.Policy.Record(outcome)
	log.Printf("Controller: access %s (failures %d)", outcome, s.Policy.Attempts())

	if outcome == access.Granted {
		s.Sink.Granted()
		s.Clock.Sleep(s.open)
		s.Sink.Closed()
		return
	}

	s.Sink.Denied()
	s.Clock.Sleep(s.denied)
	s.Sink.Cleared()

	if lockout {
		log.Printf("Controller: locked for %v", s.lockout)
		s.Sink.Locked()
		s.Clock.Sleep(s.lockout)
		s.Policy.Unlock()
		s.Sink.Unlocked()
	}
}

func (s *Session) handoff() error {
	log.Printf("Controller: maintenance requested")
	s.Sink.Maintenance()
	s.Clock.Sleep(s.maintenance)
	if err := s.Maintenance.Enter(); err != nil {
		return fmt.Errorf("maintenance: %w", err)
	}
	s.Service.WaitRelease()
	s.drawKeypad()
	return nil
}

func (s *Session) drawKeypad() {
	s.redraw = false
	s.Sink.Keypad(s.Layout, s.Navigator.Cursor())
}
