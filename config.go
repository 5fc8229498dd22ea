package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"keylock/access"
	"keylock/button"
	"keylock/buzzer"
	"keylock/controller"
	"keylock/display"
	"keylock/eventpipe"
	"keylock/indicator"
	"keylock/joystick"
	"keylock/keypad"
	"keylock/latch"
	"keylock/mqtt"
	"keylock/panel"
	"keylock/platform"
)

// Config is the main configuration structure for keylock.
type Config struct {
	// Code, attempt limit and dwell times
	Access access.Config `yaml:"access"`

	// Cursor movement thresholds and rate
	Keypad keypad.Config `yaml:"keypad"`

	// Analog joystick backend and deadzone
	Joystick joystick.Config `yaml:"joystick"`

	// Enter and service buttons
	Button button.Config `yaml:"button"`

	// Outputs
	Display   display.Config   `yaml:"display"`
	Indicator indicator.Config `yaml:"indicator"`
	Panel     panel.Config     `yaml:"panel"`
	Buzzer    buzzer.Config    `yaml:"buzzer"`
	Latch     latch.Config     `yaml:"latch"`

	// Maintenance handoff for the service button
	Maintenance platform.Config `yaml:"maintenance"`

	// MQTT status publishing
	MQTT mqtt.Config `yaml:"mqtt"`

	// Simulated input for "pipe" joystick and buttons
	EventPipe eventpipe.Config `yaml:"event_pipe"`

	// Control loop timing
	Controller controller.Config `yaml:"controller"`

	// General settings
	ClientID string `yaml:"client_id"`
}

// defaultConfig returns the settings used for anything the file leaves out.
func defaultConfig() *Config {
	return &Config{
		Access:      access.DefaultConfig,
		Keypad:      keypad.DefaultConfig,
		Joystick:    joystick.DefaultConfig,
		Button:      button.DefaultConfig,
		Display:     display.DefaultConfig,
		Panel:       panel.DefaultConfig,
		Buzzer:      buzzer.DefaultConfig,
		Latch:       latch.Config{Type: "none"},
		Maintenance: platform.DefaultConfig,
		MQTT:        mqtt.Config{PingSecs: int(mqtt.DefaultPingInterval.Seconds())},
		EventPipe:   eventpipe.DefaultConfig,
		Controller:  controller.DefaultConfig,
		ClientID:    "keylock",
	}
}

// loadConfig reads path over the defaults. An empty file yields the
// defaults.
func loadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg := defaultConfig()
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	if err := c.Access.Validate(keypad.Default); err != nil {
		return fmt.Errorf("access: %w", err)
	}
	if c.Keypad.LowThreshold >= c.Keypad.HighThreshold {
		return fmt.Errorf("keypad: low_threshold %d must be below high_threshold %d",
			c.Keypad.LowThreshold, c.Keypad.HighThreshold)
	}
	if c.Keypad.HighThreshold > c.Joystick.FullScale {
		return fmt.Errorf("keypad: high_threshold %d above joystick full_scale %d",
			c.Keypad.HighThreshold, c.Joystick.FullScale)
	}
	if mid := c.Joystick.Midpoint(); c.Keypad.LowThreshold >= mid || c.Keypad.HighThreshold <= mid {
		return fmt.Errorf("keypad: thresholds %d..%d must bracket joystick midpoint %d",
			c.Keypad.LowThreshold, c.Keypad.HighThreshold, mid)
	}
	if c.Keypad.MoveMs <= 0 {
		return fmt.Errorf("keypad: move_ms must be positive")
	}
	if err := c.Joystick.Validate(); err != nil {
		return err
	}
	switch c.Joystick.Type {
	case "", "none", "ads1115", "ads1015", "evdev", "gamepad", "serial", "pipe":
	default:
		return fmt.Errorf("joystick: unknown type %q", c.Joystick.Type)
	}
	switch c.Button.Type {
	case "", "none", "gpiocdev", "gpiomem", "pipe":
	default:
		return fmt.Errorf("button: unknown type %q", c.Button.Type)
	}
	if c.usesPipe() && c.EventPipe.Path == "" {
		return fmt.Errorf("event_pipe: path required for pipe input")
	}

	checks := []struct {
		name string
		err  error
	}{
		{"display", c.Display.Validate()},
		{"panel", c.Panel.Validate()},
		{"buzzer", c.Buzzer.Validate()},
		{"latch", c.Latch.Validate()},
		{"maintenance", c.Maintenance.Validate()},
		{"controller", c.Controller.Validate()},
	}
	for _, chk := range checks {
		if chk.err != nil {
			return fmt.Errorf("%s: %w", chk.name, chk.err)
		}
	}

	if c.MQTT.Host != "" && c.ClientID == "" {
		return fmt.Errorf("client_id required when mqtt host is set")
	}
	return nil
}

func (c *Config) usesPipe() bool {
	return c.Joystick.Type == "pipe" || c.Button.Type == "pipe"
}

// redacted returns the configuration as YAML with the secret masked.
func (c *Config) redacted() ([]byte, error) {
	cp := *c
	cp.Access.Secret = "****"
	return yaml.Marshal(&cp)
}
