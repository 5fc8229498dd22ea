// Package joystick samples a two-axis analog joystick and filters the raw
// readings into stable values the keypad cursor can act on.
package joystick

import (
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/time/rate"
)

// ErrNotSupported is returned when a backend is not available on this platform.
var ErrNotSupported = errors.New("joystick backend not supported on this platform")

// Analog is the analog input capability. ReadAxis returns a sample scaled to
// the configured full-scale range.
type Analog interface {
	ReadAxis(channel int) (uint16, error)
	Close() error
}

// Axes is one pair of debounced readings.
type Axes struct {
	X uint16
	Y uint16
}

// Config holds configuration for the joystick and its analog backend.
type Config struct {
	Type     string `yaml:"type"`      // "ads1115", "evdev", "serial", "pipe", "none"
	Device   string `yaml:"device"`    // I2C bus name, evdev node or serial port
	Baud     int    `yaml:"baud"`      // serial bridge baud rate
	XChannel int    `yaml:"x_channel"` // ADC channel (or evdev axis index) for X
	YChannel int    `yaml:"y_channel"` // ADC channel (or evdev axis index) for Y

	FullScale    uint16 `yaml:"full_scale"`    // maximum raw value
	DeadzoneLow  uint16 `yaml:"deadzone_low"`  // inclusive lower edge of the deadzone
	DeadzoneHigh uint16 `yaml:"deadzone_high"` // inclusive upper edge of the deadzone
	SampleMs     int    `yaml:"sample_ms"`     // minimum interval between hardware reads

	// evdev only: raw axis range reported by the device.
	AxisMin int32 `yaml:"axis_min"`
	AxisMax int32 `yaml:"axis_max"`
}

// DefaultConfig matches the reference board: 12-bit ADC, X on channel 1,
// Y on channel 0, deadzone of roughly 37-61% of full scale.
var DefaultConfig = Config{
	Type:         "none",
	XChannel:     1,
	YChannel:     0,
	FullScale:    4095,
	DeadzoneLow:  1500,
	DeadzoneHigh: 2500,
	SampleMs:     50,
	AxisMin:      -32768,
	AxisMax:      32767,
}

// Midpoint returns the neutral reading for the configured range.
func (c Config) Midpoint() uint16 {
	return uint16((uint32(c.FullScale) + 1) / 2)
}

// Validate checks the deadzone fits inside the sample range.
func (c Config) Validate() error {
	if c.FullScale == 0 {
		return fmt.Errorf("joystick: full_scale must be positive")
	}
	if c.DeadzoneLow > c.DeadzoneHigh {
		return fmt.Errorf("joystick: deadzone_low %d above deadzone_high %d", c.DeadzoneLow, c.DeadzoneHigh)
	}
	if c.DeadzoneHigh > c.FullScale {
		return fmt.Errorf("joystick: deadzone_high %d above full_scale %d", c.DeadzoneHigh, c.FullScale)
	}
	if c.SampleMs < 0 {
		return fmt.Errorf("joystick: sample_ms must not be negative")
	}
	if c.XChannel == c.YChannel {
		return fmt.Errorf("joystick: x_channel and y_channel are both %d", c.XChannel)
	}
	return nil
}

// Reader throttles hardware reads and applies the deadzone.
type Reader struct {
	in      Analog
	cfg     Config
	mid     uint16
	limiter *rate.Limiter
	axes    Axes
}

// NewReader returns a Reader over in. Until the first sample both axes
// report the midpoint.
func NewReader(in Analog, cfg Config) *Reader {
	every := time.Duration(cfg.SampleMs) * time.Millisecond
	mid := cfg.Midpoint()
	return &Reader{
		in:      in,
		cfg:     cfg,
		mid:     mid,
		limiter: rate.NewLimiter(rate.Every(every), 1),
		axes:    Axes{X: mid, Y: mid},
	}
}

// Poll must be called on every loop iteration. It samples the hardware at
// most once per sampling interval and otherwise returns the stored readings.
func (r *Reader) Poll(now time.Time) Axes {
	if !r.limiter.AllowN(now, 1) {
		return r.axes
	}

	if v, err := r.in.ReadAxis(r.cfg.XChannel); err != nil {
		log.Printf("Joystick: read X: %v", err)
	} else {
		r.axes.X = r.Filter(v)
	}

	if v, err := r.in.ReadAxis(r.cfg.YChannel); err != nil {
		log.Printf("Joystick: read Y: %v", err)
	} else {
		r.axes.Y = r.Filter(v)
	}

	return r.axes
}

// Axes returns the last stored readings without sampling.
func (r *Reader) Axes() Axes {
	return r.axes
}

// Filter snaps raw values inside the deadzone to the midpoint.
func (r *Reader) Filter(raw uint16) uint16 {
	if raw >= r.cfg.DeadzoneLow && raw <= r.cfg.DeadzoneHigh {
		return r.mid
	}
	return raw
}

// Close releases the analog backend.
func (r *Reader) Close() error {
	return r.in.Close()
}

// New creates the analog backend selected by cfg.Type.
func New(cfg Config) (Analog, error) {
	switch cfg.Type {
	case "ads1115", "ads1015":
		return NewADS(cfg)
	case "evdev", "gamepad":
		return NewEvdev(cfg)
	case "serial":
		return NewSerial(cfg)
	case "", "none":
		return &Centered{FullScale: cfg.FullScale}, nil
	default:
		return nil, fmt.Errorf("joystick: unknown type %q", cfg.Type)
	}
}

// Centered implements Analog for a joystick that is never deflected.
type Centered struct {
	FullScale uint16
}

// ReadAxis implements Analog.ReadAxis.
func (c *Centered) ReadAxis(channel int) (uint16, error) {
	return uint16((uint32(c.FullScale) + 1) / 2), nil
}

// Close implements Analog.Close.
func (c *Centered) Close() error { return nil }

// scale maps v from [min,max] onto [0,full].
func scale(v, min, max int32, full uint16) uint16 {
	if max <= min {
		return 0
	}
	if v <= min {
		return 0
	}
	if v >= max {
		return full
	}
	return uint16(int64(v-min) * int64(full) / int64(max-min))
}
