package access

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keylock/keypad"
)

func TestVerify(t *testing.T) {
	p := NewPolicy(DefaultConfig)

	tests := []struct {
		code string
		want Outcome
	}{
		{"1234", Granted},
		{"0000", Denied},
		{"4321", Denied},
		{"123", Denied},
		{"12345", Denied},
		{"", Denied},
		{"123#", Denied},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Verify(tt.code), "code %q", tt.code)
	}
}

func TestVerifyCaseSensitive(t *testing.T) {
	// The default layout has no letters, but the comparison must not fold
	// case for layouts that do.
	p := &Policy{secret: []byte("ab*#"), maxAttempts: 3}
	assert.Equal(t, Granted, p.Verify("ab*#"))
	assert.Equal(t, Denied, p.Verify("AB*#"))
}

func TestThreeFailuresLock(t *testing.T) {
	p := NewPolicy(DefaultConfig)

	assert.False(t, p.Record(Denied))
	assert.False(t, p.Record(Denied))
	assert.Equal(t, Unlocked, p.State())
	assert.True(t, p.Record(Denied))
	assert.Equal(t, Locked, p.State())
	assert.Equal(t, 3, p.Attempts())

	p.Unlock()
	assert.Equal(t, Unlocked, p.State())
	assert.Equal(t, 0, p.Attempts())
}

func TestGrantResetsCounter(t *testing.T) {
	p := NewPolicy(DefaultConfig)

	p.Record(Denied)
	p.Record(Denied)
	assert.False(t, p.Record(Granted))
	assert.Equal(t, 0, p.Attempts())

	assert.False(t, p.Record(Denied))
	assert.False(t, p.Record(Denied))
	assert.True(t, p.Record(Denied))
}

func TestValidate(t *testing.T) {
	require.NoError(t, DefaultConfig.Validate(keypad.Default))

	tests := []struct {
		name   string
		mutate func(*Config)
		secret bool
	}{
		{"short secret", func(c *Config) { c.Secret = "123" }, true},
		{"long secret", func(c *Config) { c.Secret = "12345" }, true},
		{"letter", func(c *Config) { c.Secret = "12a4" }, true},
		{"zero attempts", func(c *Config) { c.MaxAttempts = 0 }, false},
		{"negative lockout", func(c *Config) { c.LockoutSecs = -1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig
			tt.mutate(&cfg)
			err := cfg.Validate(keypad.Default)
			require.Error(t, err)
			assert.Equal(t, tt.secret, errors.Is(err, ErrInvalidSecret))
		})
	}

	cfg := DefaultConfig
	cfg.Secret = "*0#9"
	assert.NoError(t, cfg.Validate(keypad.Default))
}

func TestDurations(t *testing.T) {
	assert.Equal(t, 5*time.Second, DefaultConfig.OpenDwell())
	assert.Equal(t, 2*time.Second, DefaultConfig.DeniedDwell())
	assert.Equal(t, 10*time.Second, DefaultConfig.LockoutDuration())
}
