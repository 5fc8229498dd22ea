package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keylock/access"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keylock.cfg")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadEmptyUsesDefaults(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)
	assert.Equal(t, "1234", cfg.Access.Secret)
	assert.Equal(t, 3, cfg.Access.MaxAttempts)
	assert.Equal(t, 200, cfg.Controller.DigitShowMs)
}

func TestLoadOverridesOnlyGivenFields(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, `
access:
  secret: "7#0*"
  lockout_secs: 30
keypad:
  move_ms: 150
`))
	require.NoError(t, err)
	assert.Equal(t, "7#0*", cfg.Access.Secret)
	assert.Equal(t, 30, cfg.Access.LockoutSecs)
	assert.Equal(t, 3, cfg.Access.MaxAttempts)
	assert.Equal(t, 150, cfg.Keypad.MoveMs)
	assert.Equal(t, uint16(1000), cfg.Keypad.LowThreshold)
}

func TestLoadExampleConfig(t *testing.T) {
	cfg, err := loadConfig("keylock.cfg.example")
	require.NoError(t, err)
	assert.Equal(t, "frontdoor", cfg.ClientID)
	assert.Equal(t, "ads1115", cfg.Joystick.Type)
	assert.Equal(t, "servo", cfg.Latch.Type)
	require.NotNil(t, cfg.Latch.Pin)
	assert.Equal(t, 18, *cfg.Latch.Pin)
	assert.Equal(t, 0.5, cfg.Panel.Gain.R)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.cfg"))
	assert.Error(t, err)
}

func TestLoadBadSecret(t *testing.T) {
	_, err := loadConfig(writeConfig(t, "access:\n  secret: \"12a4\"\n"))
	assert.ErrorIs(t, err, access.ErrInvalidSecret)

	_, err = loadConfig(writeConfig(t, "access:\n  secret: \"123\"\n"))
	assert.ErrorIs(t, err, access.ErrInvalidSecret)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"thresholds reversed", func(c *Config) { c.Keypad.LowThreshold, c.Keypad.HighThreshold = 3000, 1000 }},
		{"threshold above full scale", func(c *Config) { c.Keypad.HighThreshold = 5000 }},
		{"low threshold above midpoint", func(c *Config) { c.Keypad.LowThreshold = 2100 }},
		{"high threshold below midpoint", func(c *Config) { c.Keypad.HighThreshold = 2000 }},
		{"low threshold at midpoint", func(c *Config) { c.Keypad.LowThreshold = 2048 }},
		{"zero move interval", func(c *Config) { c.Keypad.MoveMs = 0 }},
		{"unknown joystick", func(c *Config) { c.Joystick.Type = "trackball" }},
		{"unknown button", func(c *Config) { c.Button.Type = "touch" }},
		{"pipe without path", func(c *Config) { c.Button.Type = "pipe" }},
		{"unknown latch", func(c *Config) { c.Latch.Type = "magnet" }},
		{"mqtt without client id", func(c *Config) { c.MQTT.Host = "broker"; c.ClientID = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.modify(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, defaultConfig().Validate())
}

func TestRedactedHidesSecret(t *testing.T) {
	cfg := defaultConfig()
	cfg.Access.Secret = "9876"
	out, err := cfg.redacted()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "9876")
	assert.Contains(t, string(out), "****")
	assert.Equal(t, "9876", cfg.Access.Secret)
}

func TestCheckCommand(t *testing.T) {
	path := writeConfig(t, "access:\n  secret: \"4321\"\nclient_id: lab\n")
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"check", "--cfg", path})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "client_id: lab")
	assert.NotContains(t, out.String(), "4321")
}
