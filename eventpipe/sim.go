package eventpipe

import (
	"fmt"
	"log"
	"sync"
	"time"

	"keylock/clock"
)

// Sim is a joystick and two buttons whose state is set by pipe events.
type Sim struct {
	clk   clock.Clock
	press time.Duration
	mid   uint16

	mu      sync.Mutex
	x, y    uint16
	held    map[string]bool
	pressed map[string]time.Time // "press" deadline per button
}

// NewSim returns a Sim with both axes at mid.
func NewSim(cfg Config, mid uint16, clk clock.Clock) *Sim {
	return &Sim{
		clk:     clk,
		press:   time.Duration(cfg.PressMs) * time.Millisecond,
		mid:     mid,
		x:       mid,
		y:       mid,
		held:    make(map[string]bool),
		pressed: make(map[string]time.Time),
	}
}

// Handle applies e. It is an EventHandler.
func (s *Sim) Handle(e Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch e.Type {
	case EventAxis:
		if e.Axis == "x" {
			s.x = e.Value
		} else {
			s.y = e.Value
		}
	case EventCenter:
		s.x, s.y = s.mid, s.mid
	case EventPress:
		s.pressed[e.Button] = s.clk.Now().Add(s.press)
	case EventHold:
		s.held[e.Button] = true
	case EventRelease:
		s.held[e.Button] = false
		delete(s.pressed, e.Button)
	}
	log.Printf("Sim: %s", s.stateLocked())
}

func (s *Sim) stateLocked() string {
	return fmt.Sprintf("x=%d y=%d a=%v b=%v", s.x, s.y, s.activeLocked("a"), s.activeLocked("b"))
}

func (s *Sim) activeLocked(button string) bool {
	if s.held[button] {
		return true
	}
	until, ok := s.pressed[button]
	return ok && s.clk.Now().Before(until)
}

// Joystick returns the simulated joystick, reporting X on xChannel and Y on
// yChannel.
func (s *Sim) Joystick(xChannel, yChannel int) *SimJoystick {
	return &SimJoystick{sim: s, xChannel: xChannel, yChannel: yChannel}
}

// Button returns the simulated button "a" or "b".
func (s *Sim) Button(name string) *SimButton {
	return &SimButton{sim: s, name: name}
}

// SimJoystick reads the simulated axes.
type SimJoystick struct {
	sim                *Sim
	xChannel, yChannel int
}

// ReadAxis returns the last value set for the axis on channel.
func (j *SimJoystick) ReadAxis(channel int) (uint16, error) {
	j.sim.mu.Lock()
	defer j.sim.mu.Unlock()
	switch channel {
	case j.xChannel:
		return j.sim.x, nil
	case j.yChannel:
		return j.sim.y, nil
	default:
		return 0, fmt.Errorf("sim joystick has no channel %d", channel)
	}
}

// Close implements the joystick Close.
func (j *SimJoystick) Close() error { return nil }

// SimButton reads one simulated button.
type SimButton struct {
	sim  *Sim
	name string
}

// Active reports whether the button is held or inside a press.
func (b *SimButton) Active() (bool, error) {
	b.sim.mu.Lock()
	defer b.sim.mu.Unlock()
	return b.sim.activeLocked(b.name), nil
}

// Close implements the button Close.
func (b *SimButton) Close() error { return nil }
