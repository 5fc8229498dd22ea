// Package clock provides the time source used by the control loop.
//
// Every wait in the lock (button settle, dwell, lockout) blocks the single
// control loop. Routing them through Clock lets tests run the same code
// against a Fake that advances instantly.
package clock

import (
	"sync"
	"time"
)

// Clock is the time capability consumed by the core.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Real is the wall clock.
type Real struct{}

// Now implements Clock.Now.
func (Real) Now() time.Time { return time.Now() }

// Sleep implements Clock.Sleep.
func (Real) Sleep(d time.Duration) { time.Sleep(d) }

// Fake is a manually driven clock. Sleep advances the current time by d
// and returns immediately.
type Fake struct {
	mu    sync.Mutex
	now   time.Time
	slept time.Duration
	hooks []func(now time.Time)
}

// NewFake returns a Fake starting at start.
func NewFake(start time.Time) *Fake {
	return &Fake{now: start}
}

// Now implements Clock.Now.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Sleep implements Clock.Sleep.
func (f *Fake) Sleep(d time.Duration) {
	f.Advance(d)
	f.mu.Lock()
	f.slept += d
	f.mu.Unlock()
}

// Advance moves the clock forward and runs any registered hooks.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	now := f.now
	hooks := append([]func(time.Time){}, f.hooks...)
	f.mu.Unlock()

	for _, h := range hooks {
		h(now)
	}
}

// Slept returns the total duration passed to Sleep.
func (f *Fake) Slept() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slept
}

// OnAdvance registers fn to run after every time step.
func (f *Fake) OnAdvance(fn func(now time.Time)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks = append(f.hooks, fn)
}
