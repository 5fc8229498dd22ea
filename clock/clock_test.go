package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFakeSleepAdvances(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	f := NewFake(start)

	f.Sleep(50 * time.Millisecond)
	f.Sleep(2 * time.Second)

	assert.Equal(t, start.Add(2050*time.Millisecond), f.Now())
	assert.Equal(t, 2050*time.Millisecond, f.Slept())
}

func TestFakeHooks(t *testing.T) {
	f := NewFake(time.Unix(0, 0))
	var seen []time.Time
	f.OnAdvance(func(now time.Time) { seen = append(seen, now) })

	f.Advance(time.Second)
	f.Sleep(time.Second)

	assert.Equal(t, []time.Time{time.Unix(1, 0), time.Unix(2, 0)}, seen)
	assert.Equal(t, time.Second, f.Slept())
}
