//go:build linux

package button

import (
	"github.com/warthog618/go-gpiocdev"
)

// Cdev implements Pin using the GPIO character device.
type Cdev struct {
	line *gpiocdev.Line
}

// NewCdev requests offset on chip as an input. Active-low buttons get a
// pull-up so an open switch reads inactive.
func NewCdev(chip string, offset int, activeHigh bool) (*Cdev, error) {
	if chip == "" {
		chip = "gpiochip0"
	}

	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithConsumer("keylock")}
	if activeHigh {
		opts = append(opts, gpiocdev.WithPullDown)
	} else {
		opts = append(opts, gpiocdev.WithPullUp, gpiocdev.AsActiveLow)
	}

	line, err := gpiocdev.RequestLine(chip, offset, opts...)
	if err != nil {
		return nil, err
	}
	return &Cdev{line: line}, nil
}

// Active implements Pin.Active.
func (c *Cdev) Active() (bool, error) {
	v, err := c.line.Value()
	if err != nil {
		return false, err
	}
	return v == 1, nil
}

// Close implements Pin.Close.
func (c *Cdev) Close() error {
	return c.line.Close()
}
