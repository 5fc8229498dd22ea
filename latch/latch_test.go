package latch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keylock/clock"
)

type fakePWM struct {
	vals   []uint32
	closed bool
}

func (f *fakePWM) Set(v uint32) { f.vals = append(f.vals, v) }
func (f *fakePWM) Close() error { f.closed = true; return nil }

func TestServoSweep(t *testing.T) {
	clk := clock.NewFake(time.Unix(0, 0))
	out := &fakePWM{}
	s := NewServo(out, 1010, 1000, clk)

	assert.Equal(t, []uint32{1000}, out.vals)

	require.NoError(t, s.Open())
	assert.Equal(t, uint32(1010), out.vals[len(out.vals)-1])
	assert.Len(t, out.vals, 1+10+1)
	assert.Equal(t, 10*stepDelay, clk.Slept())

	// Already open: no movement.
	require.NoError(t, s.Open())
	assert.Len(t, out.vals, 12)

	require.NoError(t, s.Close())
	assert.Len(t, out.vals, 23)
	assert.Equal(t, uint32(1000), out.vals[len(out.vals)-1])
	for i := 12; i < len(out.vals)-1; i++ {
		assert.Equal(t, out.vals[i]-1, out.vals[i+1])
	}

	require.NoError(t, s.Release())
	assert.True(t, out.closed)
}

type fakeOutput struct {
	levels []bool
	closed bool
}

func (f *fakeOutput) Write(high bool) { f.levels = append(f.levels, high) }
func (f *fakeOutput) Close() error    { f.closed = true; return nil }

func TestGPIOPolarity(t *testing.T) {
	out := &fakeOutput{}
	g := newGPIO(out, true)
	assert.Equal(t, []bool{false}, out.levels)
	assert.False(t, g.IsOpen())

	require.NoError(t, g.Open())
	assert.True(t, g.IsOpen())
	require.NoError(t, g.Close())
	assert.Equal(t, []bool{false, true, false}, out.levels)

	low := &fakeOutput{}
	g = newGPIO(low, false)
	require.NoError(t, g.Open())
	assert.Equal(t, []bool{true, false}, low.levels)
}

func TestGPIOReleaseCloses(t *testing.T) {
	out := &fakeOutput{}
	g := newGPIO(out, true)
	require.NoError(t, g.Open())
	require.NoError(t, g.Release())

	assert.False(t, g.IsOpen())
	assert.False(t, out.levels[len(out.levels)-1])
	assert.True(t, out.closed)
}

func TestNewNone(t *testing.T) {
	l, err := New(Config{}, clock.Real{})
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, l)

	pin := 18
	l, err = New(Config{Type: "none", Pin: &pin}, clock.Real{})
	require.NoError(t, err)
	assert.IsType(t, &Noop{}, l)
}

func TestNewRejectsMissingPin(t *testing.T) {
	_, err := New(Config{Type: "servo", ServoOpen: 1800, ServoClose: 1100}, clock.Real{})
	assert.Error(t, err)

	_, err = New(Config{Type: "gpio_high"}, clock.Real{})
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	pwm0, pwm1, relay := 18, 19, 23

	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"empty", Config{}, true},
		{"none without pin", Config{Type: "none"}, true},
		{"gpio low", Config{Type: "gpio_low", Pin: &relay}, true},
		{"gpio without pin", Config{Type: "gpio_high"}, false},
		{"servo on pwm0", Config{Type: "servo", Pin: &pwm0, ServoOpen: 1800, ServoClose: 1100}, true},
		{"servo on pwm1", Config{Type: "servo", Pin: &pwm1, ServoOpen: 1800, ServoClose: 1100}, false},
		{"servo without pin", Config{Type: "servo", ServoOpen: 1800, ServoClose: 1100}, false},
		{"servo without positions", Config{Type: "servo", Pin: &pwm0}, false},
		{"unknown", Config{Type: "magnet", Pin: &relay}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.ok {
				assert.NoError(t, tt.cfg.Validate())
			} else {
				assert.Error(t, tt.cfg.Validate())
			}
		})
	}
}
